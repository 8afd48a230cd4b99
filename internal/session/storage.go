package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/zeebo/blake3"

	"github.com/schoolctl/schoolctl/internal/errors"
)

// StateVersion identifies the persisted record layout. Bump when the
// shape of State changes incompatibly.
const StateVersion = 1

// State is the persisted portion of the session. The loading flag is
// excluded on purpose.
type State struct {
	Token           string `json:"token"`
	User            *User  `json:"user"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// Record is the on-disk envelope around State.
type Record struct {
	State   State `json:"state"`
	Version int   `json:"version"`
}

// Storage is the persistence adapter behind the Store. Load returns
// (nil, nil) when nothing has been persisted yet.
type Storage interface {
	Load() (*Record, error)
	Save(rec *Record) error
}

// FileStorage persists the session record as a JSON file with owner-only
// permissions. Writes go through a temp file and rename so a crash
// mid-write cannot corrupt the session, and are skipped entirely when
// the serialized state is unchanged since the last write.
type FileStorage struct {
	mu         sync.Mutex
	path       string
	lastDigest [32]byte
	hasDigest  bool
}

// NewFileStorage creates a file-backed storage adapter at path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// Load reads and decodes the persisted record, if any.
func (f *FileStorage) Load() (*Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewSessionLoadError(f.path, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.NewSessionLoadError(f.path, err)
	}
	if rec.Version != StateVersion {
		return nil, errors.New(errors.ErrCodeSessionVersion,
			"persisted session has an unsupported version").
			WithSuggestion("Run 'schoolctl auth login' to create a fresh session")
	}

	f.lastDigest = blake3.Sum256(data)
	f.hasDigest = true
	return &rec, nil
}

// Save writes the record to disk, unless it is byte-identical to the
// last persisted state.
func (f *FileStorage) Save(rec *Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeSessionSave, "failed to encode session", err)
	}

	digest := blake3.Sum256(data)
	if f.hasDigest && digest == f.lastDigest {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return errors.Wrap(errors.ErrCodeSessionSave, "failed to create session directory", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeSessionSave, "failed to write session file", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return errors.Wrap(errors.ErrCodeSessionSave, "failed to replace session file", err)
	}

	f.lastDigest = digest
	f.hasDigest = true
	return nil
}

// MemoryStorage keeps the record in memory. Used by tests and by
// commands that must not touch the session file.
type MemoryStorage struct {
	mu    sync.Mutex
	rec   *Record
	saves int
}

// NewMemoryStorage creates an empty in-memory storage adapter.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Load returns the last saved record, or (nil, nil) when empty.
func (m *MemoryStorage) Load() (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rec, nil
}

// Save stores the record and increments the save counter.
func (m *MemoryStorage) Save(rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = rec
	m.saves++
	return nil
}

// SaveCount reports how many times Save has been called. Tests use it
// as a write-count probe.
func (m *MemoryStorage) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
