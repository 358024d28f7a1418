package state

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// sequence hands out stroke IDs.
type sequence struct {
	n uint64
}

func (s *sequence) next() StrokeID {
	return StrokeID(atomic.AddUint64(&s.n, 1))
}

func newSessionID() string {
	return uuid.NewString()
}
