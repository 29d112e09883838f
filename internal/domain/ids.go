package domain

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ID prefixes for generated identifiers.
const (
	PrefixQuiz     = "quiz"
	PrefixQuestion = "q"
	PrefixOption   = "o"
	PrefixAttempt  = "att"
)

// IDGenerator produces unique string identifiers.
type IDGenerator interface {
	NewID(prefix string) string
}

// UUIDGenerator issues ids of the form "<prefix>_<12 hex chars>".
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(prefix string) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "_" + raw[:12]
}

// SequenceGenerator issues "<prefix>_<n>" ids with a counter shared across
// prefixes. Useful for tests and demos.
type SequenceGenerator struct {
	n int
}

func (s *SequenceGenerator) NewID(prefix string) string {
	s.n++
	return prefix + "_" + strconv.Itoa(s.n)
}
