package dummy

import (
	"context"
	"stem-split-worker/src/application/job_status/entity"
	"stem-split-worker/src/application/job_status/store"
	"sync"
)

var _ entity.StatusStore = &StatusStore{}

func NewDummyStatusStore() *StatusStore {
	return &StatusStore{
		Unavailable: false,
		State:       make(map[string]entity.JobRecord),
	}
}

type StatusStore struct {
	Unavailable bool
	State       map[string]entity.JobRecord
	// History keeps every status set, in order, per job
	History map[string][]entity.Status
	mutex   sync.RWMutex
}

func (s *StatusStore) GetStatus(_ context.Context, jobID string) (entity.JobRecord, error) {
	if s.Unavailable {
		return entity.JobRecord{}, NetworkFailure
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()

	record, ok := s.State[jobID]
	if !ok {
		return entity.JobRecord{}, store.JobNotFound
	}

	return record, nil
}

func (s *StatusStore) SetStatus(_ context.Context, record entity.JobRecord) error {
	if s.Unavailable {
		return NetworkFailure
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.History == nil {
		s.History = make(map[string][]entity.Status)
	}

	s.State[record.JobID] = record
	s.History[record.JobID] = append(s.History[record.JobID], record.Status)

	return nil
}

func (s *StatusStore) StatusHistory(jobID string) []entity.Status {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return append([]entity.Status{}, s.History[jobID]...)
}
