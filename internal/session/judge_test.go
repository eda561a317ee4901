package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wordtrainer/internal/domain"
)

func TestJudge(t *testing.T) {
	tests := []struct {
		name    string
		mode    MatchMode
		input   string
		answer  string
		correct bool
	}{
		{name: "exact match", mode: MatchFold, input: "foo", answer: "foo", correct: true},
		{name: "mixed case", mode: MatchFold, input: "fOo", answer: "FOO", correct: true},
		{name: "surrounding spaces trimmed", mode: MatchFold, input: "  foo bar  ", answer: "foo bar", correct: true},
		{name: "wrong answer", mode: MatchFold, input: "barz", answer: "bar", correct: false},
		{name: "empty input empty answer", mode: MatchFold, input: "", answer: "", correct: true},
		{name: "empty input", mode: MatchFold, input: "", answer: "foo", correct: false},
		{name: "sentence", mode: MatchFold, input: "the quick brown fox, jumped over the lazy dog.", answer: "The quick brown fox, jumped over the lazy dog.", correct: true},

		{name: "exact mode is case sensitive", mode: MatchExact, input: "Foo", answer: "foo", correct: false},
		{name: "exact mode still trims", mode: MatchExact, input: " foo ", answer: "foo", correct: true},

		{name: "lenient full answer", mode: MatchLenient, input: "Such (optional)", answer: "Such (optional)", correct: true},
		{name: "lenient parenthetical dropped", mode: MatchLenient, input: "Such", answer: "Such (optional)", correct: true},
		{name: "lenient compact form", mode: MatchLenient, input: "Suchoptional", answer: "Such (optional)", correct: true},
		{name: "lenient still rejects wrong", mode: MatchLenient, input: "Such (optional)", answer: "Such optional", correct: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := Judge(tt.mode, tt.input, tt.answer)
			if tt.correct {
				assert.Equal(t, domain.JudgmentCorrect, j)
			} else {
				assert.Equal(t, domain.JudgmentIncorrect, j)
			}
		})
	}
}

func TestParseMatchMode(t *testing.T) {
	tests := []struct {
		input    string
		expected MatchMode
		wantErr  bool
	}{
		{input: "", expected: MatchFold},
		{input: "fold", expected: MatchFold},
		{input: "Exact", expected: MatchExact},
		{input: "LENIENT", expected: MatchLenient},
		{input: "fuzzy", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("input "+tt.input, func(t *testing.T) {
			mode, err := ParseMatchMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, mode)
		})
	}
}
