package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/pbkdf2"

	"github.com/schoolctl/schoolctl/internal/errors"
)

// EncryptedStorage persists the same session record as FileStorage but
// encrypted at rest with AES-GCM under a PBKDF2-derived key. Selected
// when a passphrase is configured.
type EncryptedStorage struct {
	mu         sync.Mutex
	path       string
	key        []byte
	lastDigest [32]byte
	hasDigest  bool
}

// NewEncryptedStorage creates an encrypted storage adapter at path with
// a key derived from passphrase.
func NewEncryptedStorage(path, passphrase string) *EncryptedStorage {
	salt := []byte("schoolctl-session-store") // fixed salt; the file is per-user, not shared
	key := pbkdf2.Key([]byte(passphrase), salt, 100000, 32, sha256.New)
	return &EncryptedStorage{path: path, key: key}
}

// Load reads, decrypts, and decodes the persisted record, if any.
func (e *EncryptedStorage) Load() (*Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	raw, err := os.ReadFile(e.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewSessionLoadError(e.path, err)
	}

	plaintext, err := e.decrypt(string(raw))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSessionDecrypt,
			"failed to decrypt session", err).
			WithSuggestion("Check the configured session passphrase").
			WithSuggestion("Run 'schoolctl auth login' to create a fresh session")
	}

	var rec Record
	if err := json.Unmarshal(plaintext, &rec); err != nil {
		return nil, errors.NewSessionLoadError(e.path, err)
	}
	if rec.Version != StateVersion {
		return nil, errors.New(errors.ErrCodeSessionVersion,
			"persisted session has an unsupported version").
			WithSuggestion("Run 'schoolctl auth login' to create a fresh session")
	}

	e.lastDigest = blake3.Sum256(plaintext)
	e.hasDigest = true
	return &rec, nil
}

// Save encrypts and writes the record, unless the plaintext state is
// unchanged since the last write. The digest is taken over the
// plaintext: GCM nonces make ciphertext differ on every seal.
func (e *EncryptedStorage) Save(rec *Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	plaintext, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSessionSave, "failed to encode session", err)
	}

	digest := blake3.Sum256(plaintext)
	if e.hasDigest && digest == e.lastDigest {
		return nil
	}

	sealed, err := e.encrypt(plaintext)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSessionSave, "failed to encrypt session", err)
	}

	if err := os.MkdirAll(filepath.Dir(e.path), 0o700); err != nil {
		return errors.Wrap(errors.ErrCodeSessionSave, "failed to create session directory", err)
	}

	tmp := e.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(sealed), 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeSessionSave, "failed to write session file", err)
	}
	if err := os.Rename(tmp, e.path); err != nil {
		return errors.Wrap(errors.ErrCodeSessionSave, "failed to replace session file", err)
	}

	e.lastDigest = digest
	e.hasDigest = true
	return nil
}

// encrypt seals plaintext with AES-GCM, nonce prefixed, base64 encoded.
func (e *EncryptedStorage) encrypt(plaintext []byte) (string, error) {
	block, err := aes.NewCipher(e.key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt opens a base64, nonce-prefixed AES-GCM payload.
func (e *EncryptedStorage) decrypt(ciphertext string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(e.key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return nil, errors.New(errors.ErrCodeSessionDecrypt, "ciphertext too short")
	}

	nonce, sealed := data[:nonceSize], data[nonceSize:]
	return gcm.Open(nil, nonce, sealed, nil)
}
