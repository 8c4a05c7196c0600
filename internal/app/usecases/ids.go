package usecases

import (
	"strconv"
	"sync/atomic"
)

// IDSequence mints session-scoped node ids. The first id is prefix+"1"; the
// counter only moves forward and is never reset.
type IDSequence struct {
	prefix string
	next   atomic.Uint64
}

// NewIDSequence creates a sequence starting at 1.
func NewIDSequence(prefix string) *IDSequence {
	s := &IDSequence{prefix: prefix}
	s.next.Store(1)
	return s
}

// Next returns the next id and advances the counter.
func (s *IDSequence) Next() string {
	n := s.next.Add(1) - 1
	return s.prefix + strconv.FormatUint(n, 10)
}
