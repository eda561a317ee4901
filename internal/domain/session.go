package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Judgment is the verdict on one typed answer
type Judgment int

const (
	JudgmentIncorrect Judgment = iota
	JudgmentCorrect
)

func (j Judgment) String() string {
	if j == JudgmentCorrect {
		return "correct"
	}
	return "incorrect"
}

// Direction controls which side of a term is asked
type Direction int

const (
	DirectionTD   Direction = iota // question asked, answer expected
	DirectionDT                    // answer asked, question expected
	DirectionBoth                  // starts with TD, flips for later attempts
)

func (d Direction) String() string {
	switch d {
	case DirectionDT:
		return "definition -> term"
	case DirectionBoth:
		return "both"
	default:
		return "term -> definition"
	}
}

// ParseDirection parses a direction flag value
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "td", "":
		return DirectionTD, nil
	case "dt":
		return DirectionDT, nil
	case "both":
		return DirectionBoth, nil
	}
	return DirectionTD, fmt.Errorf("unknown direction %q (want td, dt or both)", s)
}

// Outcome is the per-term result of one practice session
type Outcome struct {
	TermID   uuid.UUID
	Question string
	Attempts int
	Correct  int
	Requeues int
	Mastered bool
}

// Summary is returned by ending a session. Attempted counts distinct
// terms prompted at least once, Correct counts terms whose last
// judgment was correct.
type Summary struct {
	Attempted int
	Correct   int
	Outcomes  map[uuid.UUID]*Outcome
}
