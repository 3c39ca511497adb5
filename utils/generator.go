package utils

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// Sequence hands out monotonically increasing numeric ids per collection.
// Ids are never derived from collection size, so removal cannot cause reuse.
type Sequence struct {
	mu   sync.Mutex
	last map[string]uint64
}

func NewSequence() *Sequence {
	return &Sequence{last: make(map[string]uint64)}
}

// Next returns the next id for kind as a decimal string.
func (s *Sequence) Next(kind string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last[kind]++
	return strconv.FormatUint(s.last[kind], 10)
}

// Observe moves the counter for kind past id when id is numeric and larger
// than anything handed out so far. Non-numeric ids are ignored.
func (s *Sequence) Observe(kind, id string) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if n > s.last[kind] {
		s.last[kind] = n
	}
}

func NewSlotID() string {
	return uuid.NewString()
}
