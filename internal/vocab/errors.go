package vocab

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is returned when a lesson has no valid "source - target" line.
	ErrParse = errors.New("vocab: no valid word pairs")

	// ErrNoLessons is returned by LoadDir when no lesson file could be loaded.
	ErrNoLessons = errors.New("vocab: no lessons found")
)

// MalformedLine describes a line that was skipped during parsing.
type MalformedLine struct {
	Line int
	Text string
}

func (m MalformedLine) String() string {
	return fmt.Sprintf("line %d: %q", m.Line, m.Text)
}
