// Package tsv implements the tab-separated import/export format:
// one term per line, question and answer separated by a single tab.
package tsv

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrMalformedRecord marks a line with the wrong number of tab-separated fields
	ErrMalformedRecord = errors.New("malformed record")
	// ErrEncoding marks input that is not valid UTF-8
	ErrEncoding = errors.New("invalid text encoding")
)

// ParseError wraps a codec error with the 1-based line it occurred on
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Pair is one parsed question-answer record
type Pair struct {
	Question string
	Answer   string
}

// Parse reads TSV text into pairs. Blank lines are skipped, field
// whitespace is preserved verbatim, embedded newlines are not supported.
func Parse(raw string) ([]Pair, error) {
	if !utf8.ValidString(raw) {
		return nil, &ParseError{Line: badEncodingLine(raw), Err: ErrEncoding}
	}

	var pairs []Pair
	for n, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			return nil, &ParseError{
				Line: n + 1,
				Err:  fmt.Errorf("%w: want 2 fields, got %d", ErrMalformedRecord, len(fields)),
			}
		}
		pairs = append(pairs, Pair{Question: fields[0], Answer: fields[1]})
	}
	return pairs, nil
}

// Serialize writes pairs as TSV text, one line per pair in input order.
// Round-trip law: Parse(Serialize(x)) == x for fields free of tabs and newlines.
func Serialize(pairs []Pair) string {
	var b strings.Builder
	for _, p := range pairs {
		b.WriteString(p.Question)
		b.WriteByte('\t')
		b.WriteString(p.Answer)
		b.WriteByte('\n')
	}
	return b.String()
}

// badEncodingLine finds the 1-based line containing the first invalid byte
func badEncodingLine(raw string) int {
	line := 1
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRuneInString(raw[i:])
		if r == utf8.RuneError && size <= 1 {
			return line
		}
		if r == '\n' {
			line++
		}
		i += size
	}
	return line
}
