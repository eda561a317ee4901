package session

import (
	"fmt"
	"regexp"
	"strings"

	"wordtrainer/internal/domain"
)

// MatchMode selects how strictly typed answers are compared
type MatchMode int

const (
	// MatchFold trims surrounding whitespace and compares case-insensitively
	MatchFold MatchMode = iota
	// MatchExact trims surrounding whitespace and compares byte-for-byte
	MatchExact
	// MatchLenient is MatchFold, additionally accepting the answer with
	// parenthesized segments dropped or parentheses and spaces stripped
	MatchLenient
)

// ParseMatchMode parses a match-mode flag value
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(s) {
	case "fold", "":
		return MatchFold, nil
	case "exact":
		return MatchExact, nil
	case "lenient":
		return MatchLenient, nil
	}
	return MatchFold, fmt.Errorf("unknown match mode %q (want fold, exact or lenient)", s)
}

var parenthetical = regexp.MustCompile(`\(.*\)`)

// Judge compares typed input against a stored answer. All answer-matching
// policy lives here so future strictness options hook in at one place.
func Judge(mode MatchMode, input, answer string) domain.Judgment {
	input = strings.TrimSpace(input)
	answer = strings.TrimSpace(answer)

	switch mode {
	case MatchExact:
		if input == answer {
			return domain.JudgmentCorrect
		}
	case MatchLenient:
		if strings.EqualFold(input, answer) {
			return domain.JudgmentCorrect
		}
		stripped := strings.TrimSpace(parenthetical.ReplaceAllString(answer, ""))
		if strings.EqualFold(input, stripped) {
			return domain.JudgmentCorrect
		}
		compact := strings.NewReplacer("(", "", ")", "", " ", "").Replace(answer)
		if strings.EqualFold(input, strings.TrimSpace(compact)) {
			return domain.JudgmentCorrect
		}
	default:
		if strings.EqualFold(input, answer) {
			return domain.JudgmentCorrect
		}
	}
	return domain.JudgmentIncorrect
}
