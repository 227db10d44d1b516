package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

var _ Store = (*FileStore)(nil)

// storedSession is the on-disk shape of the credential slot. A single keyed
// entry, unencrypted, no expiry metadata.
type storedSession struct {
	AccessToken string `json:"access_token"`
}

// FileStore persists the credential as a JSON file on the local filesystem.
// Writes go through a temp file and rename, so a crash mid-write never leaves
// a partial credential behind. Concurrent writers across processes are
// last-write-wins.
type FileStore struct {
	path string
	lock sync.RWMutex
}

// NewFileStore creates a FileStore backed by the file at path. The parent
// directory is created on the first Save, not here.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("[NewFileStore] path is required")
	}
	return &FileStore{path: path}, nil
}

// Load reads the stored credential. A missing file means no credential.
func (fs *FileStore) Load() (string, error) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()

	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrap(err, "[FileStore.Load] read session file")
	}

	var stored storedSession
	if err := json.Unmarshal(data, &stored); err != nil {
		return "", errors.Wrap(err, "[FileStore.Load] parse session file")
	}
	return stored.AccessToken, nil
}

// Save overwrites the stored credential unconditionally.
func (fs *FileStore) Save(credential string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	data, err := json.Marshal(storedSession{AccessToken: credential})
	if err != nil {
		return errors.Wrap(err, "[FileStore.Save] marshal session")
	}

	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrap(err, "[FileStore.Save] create session directory")
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return errors.Wrap(err, "[FileStore.Save] create temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, "[FileStore.Save] write temp file")
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrap(err, "[FileStore.Save] chmod temp file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "[FileStore.Save] close temp file")
	}

	if err := os.Rename(tmpName, fs.path); err != nil {
		os.Remove(tmpName)
		return errors.Wrap(err, "[FileStore.Save] replace session file")
	}
	return nil
}

// Clear removes the stored credential. Idempotent.
func (fs *FileStore) Clear() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[FileStore.Clear] remove session file")
	}
	return nil
}

// DefaultPath returns the conventional location of the session file,
// ~/.meetctl/session.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "[DefaultPath] resolve home directory")
	}
	return filepath.Join(home, ".meetctl", "session.json"), nil
}
