package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() *Record {
	return &Record{
		State: State{
			Token:           "tok-abc",
			User:            testUser(),
			IsAuthenticated: true,
		},
		Version: StateVersion,
	}
}

func TestFileStorage_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	storage := NewFileStorage(path)

	loaded, err := storage.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded, "missing file should load as empty, not error")

	require.NoError(t, storage.Save(sampleRecord()))

	loaded, err = NewFileStorage(path).Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "tok-abc", loaded.State.Token)
	assert.True(t, loaded.State.IsAuthenticated)
	require.NotNil(t, loaded.State.User)
	assert.Equal(t, "Ada Admin", loaded.State.User.Name)
}

func TestFileStorage_OwnerOnlyPermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	storage := NewFileStorage(path)
	require.NoError(t, storage.Save(sampleRecord()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStorage_SkipsUnchangedWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	storage := NewFileStorage(path)
	rec := sampleRecord()
	require.NoError(t, storage.Save(rec))

	// Remove the file behind the adapter's back; a skipped write will
	// leave it missing.
	require.NoError(t, os.Remove(path))
	require.NoError(t, storage.Save(rec))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "identical state should not be rewritten")

	changed := sampleRecord()
	changed.State.Token = "tok-new"
	require.NoError(t, storage.Save(changed))
	_, err = os.Stat(path)
	assert.NoError(t, err, "changed state must be written")
}

func TestFileStorage_RejectsUnsupportedVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"state":{},"version":99}`), 0o600))

	_, err := NewFileStorage(path).Load()
	require.Error(t, err)
}

func TestFileStorage_RejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, err := NewFileStorage(path).Load()
	require.Error(t, err)
}

func TestEncryptedStorage_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.enc")
	storage := NewEncryptedStorage(path, "correct horse battery")

	require.NoError(t, storage.Save(sampleRecord()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "tok-abc", "token must not appear in plaintext on disk")

	loaded, err := NewEncryptedStorage(path, "correct horse battery").Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "tok-abc", loaded.State.Token)
	assert.Equal(t, "admin@school.example", loaded.State.User.Email)
}

func TestEncryptedStorage_WrongPassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.enc")
	require.NoError(t, NewEncryptedStorage(path, "right").Save(sampleRecord()))

	_, err := NewEncryptedStorage(path, "wrong").Load()
	require.Error(t, err)
}

func TestEncryptedStorage_SkipsUnchangedWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.enc")
	storage := NewEncryptedStorage(path, "pass")
	rec := sampleRecord()
	require.NoError(t, storage.Save(rec))

	require.NoError(t, os.Remove(path))
	require.NoError(t, storage.Save(rec))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "identical plaintext should not be resealed")
}
