package store

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryTestCaseStore keeps records in memory. It exists so the HTTP layer
// can be tested without a running Mongo instance; ids stay ObjectID hex so
// the InvalidId path behaves identically.
type MemoryTestCaseStore struct {
	mu    sync.Mutex
	cases []TestCase
}

func NewMemoryTestCaseStore() *MemoryTestCaseStore {
	return &MemoryTestCaseStore{}
}

func (s *MemoryTestCaseStore) Insert(_ context.Context, tc *TestCase) (*TestCase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *tc
	clone.ID = primitive.NewObjectID().Hex()
	clone.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	s.cases = append(s.cases, clone)
	return &clone, nil
}

func (s *MemoryTestCaseStore) ListAll(_ context.Context) ([]TestCase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Newest first, mirroring the Mongo sort.
	out := make([]TestCase, 0, len(s.cases))
	for i := len(s.cases) - 1; i >= 0; i-- {
		out = append(out, s.cases[i])
	}
	return out, nil
}

func (s *MemoryTestCaseStore) DeleteByID(_ context.Context, id string) (bool, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return false, ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, tc := range s.cases {
		if tc.ID == id {
			s.cases = append(s.cases[:i], s.cases[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryTestCaseStore) Ping(_ context.Context) error { return nil }

func (s *MemoryTestCaseStore) Close(_ context.Context) error { return nil }
