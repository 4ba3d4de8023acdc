package contents

import (
	"context"
	"sync"

	"github.com/matzehuels/jsongraph/pkg/errors"
)

// MemorySink keeps every write in order.
type MemorySink struct {
	mu      sync.Mutex
	history []Contents
}

// NewMemorySink creates an empty sink.
func NewMemorySink() *MemorySink { return &MemorySink{} }

// SetContents implements Sink.
func (s *MemorySink) SetContents(_ context.Context, c Contents) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, c)
	return nil
}

// Load implements Source.
func (s *MemorySink) Load(_ context.Context) (*Contents, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.history) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "no contents stored")
	}
	c := s.history[len(s.history)-1]
	return &c, nil
}

// History returns a copy of all writes.
func (s *MemorySink) History() []Contents {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Contents, len(s.history))
	copy(out, s.history)
	return out
}

// Close implements Store.
func (s *MemorySink) Close() error { return nil }

var _ Store = (*MemorySink)(nil)
