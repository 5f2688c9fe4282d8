package parsing

import (
	"strconv"

	"github.com/google/uuid"
)

// IDSource hands out entry identifiers. A fresh source is created for every
// Parse call, so identifiers only need to be unique within one draft.
type IDSource interface {
	NextID() string
}

// UUIDSource generates random UUIDv4 identifiers
type UUIDSource struct{}

// NextID returns a new random UUID string.
func (UUIDSource) NextID() string {
	return uuid.NewString()
}

// NewUUIDSource is the default IDSource factory.
func NewUUIDSource() IDSource {
	return UUIDSource{}
}

// Sequence generates prefix1, prefix2, ... in order
type Sequence struct {
	prefix string
	next   int
}

// NewSequence returns a Sequence starting at 1.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix, next: 1}
}

// NextID returns the next identifier in the sequence.
func (s *Sequence) NextID() string {
	id := s.prefix + strconv.Itoa(s.next)
	s.next++
	return id
}

// SequentialIDs returns a factory producing a new Sequence per parse, which
// makes identifiers deterministic.
func SequentialIDs(prefix string) func() IDSource {
	return func() IDSource {
		return NewSequence(prefix)
	}
}
