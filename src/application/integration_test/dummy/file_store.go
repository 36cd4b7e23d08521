package dummy

import (
	"context"
	"stem-split-worker/src/application/cloud_storage/entity"
	"sync"
)

var _ entity.FileStore = &FileStore{}

func NewDummyFileStore() *FileStore {
	return &FileStore{
		Unavailable:  false,
		State:        make(map[string][]byte),
		ContentTypes: make(map[string]string),
	}
}

type FileStore struct {
	Unavailable bool
	// FailAfterWrites makes every write after the first n fail, 0 disables it
	FailAfterWrites int

	State        map[string][]byte
	ContentTypes map[string]string
	WriteCount   int
	mutex        sync.RWMutex
}

func (t *FileStore) GetFile(_ context.Context, key string) ([]byte, error) {
	if t.Unavailable {
		return nil, NetworkFailure
	}

	t.mutex.RLock()
	defer t.mutex.RUnlock()

	content, ok := t.State[key]
	if !ok {
		return nil, NotFound
	}

	return append([]byte{}, content...), nil
}

func (t *FileStore) WriteFile(_ context.Context, key string, fileContent []byte, contentType string) error {
	if t.Unavailable {
		return NetworkFailure
	}

	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.FailAfterWrites > 0 && t.WriteCount >= t.FailAfterWrites {
		return NetworkFailure
	}

	t.WriteCount++
	t.State[key] = append([]byte{}, fileContent...)
	t.ContentTypes[key] = contentType

	return nil
}

func (t *FileStore) Keys() []string {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	keys := []string{}
	for key := range t.State {
		keys = append(keys, key)
	}

	return keys
}
