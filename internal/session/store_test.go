package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testKey() []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

func TestStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.dat")

	store, err := New(path, nil)
	assert.NoError(t, err)
	assert.NoError(t, store.Set(KeyToken, "tok-123"))
	assert.NoError(t, store.SetAll(map[string]string{
		KeySite: "AU",
		KeyURL:  "https://site.test/",
	}))

	reopened, err := New(path, nil)
	assert.NoError(t, err)
	v, err := reopened.Get(KeyToken)
	assert.NoError(t, err)
	assert.Equal(t, "tok-123", v)
	assert.Equal(t, "AU", reopened.GetDefault(KeySite, ""))
}

func TestStore_MissingKey(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "session.dat"), nil)
	assert.NoError(t, err)

	_, err = store.Get(KeyToken)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "fallback", store.GetDefault(KeyToken, "fallback"))
}

func TestStore_EncryptedFileHidesValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.dat")

	store, err := New(path, testKey())
	assert.NoError(t, err)
	assert.NoError(t, store.Set(KeyToken, "very-secret-token"))

	raw, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.NotContains(t, string(raw), "very-secret-token")

	reopened, err := New(path, testKey())
	assert.NoError(t, err)
	v, err := reopened.Get(KeyToken)
	assert.NoError(t, err)
	assert.Equal(t, "very-secret-token", v)
}

func TestStore_WrongKeyFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.dat")

	store, err := New(path, testKey())
	assert.NoError(t, err)
	assert.NoError(t, store.Set(KeyToken, "tok"))

	other := testKey()
	other[0] ^= 0xff
	_, err = New(path, other)
	assert.Error(t, err)
}

func TestStore_BadKeyLength(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "session.dat"), []byte("short"))
	assert.Error(t, err)
}

func TestStore_FailedWriteKeepsMemoryConsistent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.dat")

	store, err := New(path, nil)
	assert.NoError(t, err)
	assert.NoError(t, store.Set(KeyToken, "tok-1"))

	// Turn the target path into a directory so every write fails.
	assert.NoError(t, os.Remove(path))
	assert.NoError(t, os.Mkdir(path, 0o700))

	assert.Error(t, store.Set(KeyToken, "tok-2"))
	assert.Equal(t, "tok-1", store.GetDefault(KeyToken, ""))

	assert.Error(t, store.SetAll(map[string]string{KeySite: "AU"}))
	_, err = store.Get(KeySite)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, store.Delete(KeyToken))
	assert.Equal(t, "tok-1", store.GetDefault(KeyToken, ""))

	assert.Error(t, store.Clear())
	assert.Equal(t, "tok-1", store.GetDefault(KeyToken, ""))
}

func TestStore_DeleteAndClear(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "session.dat"), nil)
	assert.NoError(t, err)

	assert.NoError(t, store.SetAll(map[string]string{KeyToken: "tok", KeySite: "AU"}))
	assert.NoError(t, store.Delete(KeyToken, "never-set"))
	_, err = store.Get(KeyToken)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "AU", store.GetDefault(KeySite, ""))

	assert.NoError(t, store.Clear())
	_, err = store.Get(KeySite)
	assert.ErrorIs(t, err, ErrNotFound)
}
