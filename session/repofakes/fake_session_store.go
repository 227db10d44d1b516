package repofakes

import (
	"sync"

	"github.com/jrsteele09/go-meetings-client/session"
)

var _ session.Store = (*FakeSessionStore)(nil)

// FakeSessionStore is an in-memory session.Store for tests.
type FakeSessionStore struct {
	credential string
	lock       sync.RWMutex

	// Optional error injection
	LoadErr  error
	SaveErr  error
	ClearErr error
}

func NewFakeSessionStore() *FakeSessionStore {
	return &FakeSessionStore{}
}

func (fs *FakeSessionStore) Load() (string, error) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()

	if fs.LoadErr != nil {
		return "", fs.LoadErr
	}
	return fs.credential, nil
}

func (fs *FakeSessionStore) Save(credential string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if fs.SaveErr != nil {
		return fs.SaveErr
	}
	fs.credential = credential
	return nil
}

func (fs *FakeSessionStore) Clear() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if fs.ClearErr != nil {
		return fs.ClearErr
	}
	fs.credential = ""
	return nil
}
