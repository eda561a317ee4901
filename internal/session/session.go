// Package session implements the practice engine: it draws a shuffled
// pool of terms from a scope, judges typed answers and rotates missed
// terms back into the pool.
package session

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/store"
)

// ErrEmptyScope is returned when the chosen scope contains no terms
var ErrEmptyScope = errors.New("no terms in scope")

// Defaults for the rotation policy, overridable per session
const (
	DefaultRotationDistance = 3
	DefaultMaxRequeues      = 3
)

// Options configure one practice session
type Options struct {
	// Seed drives the pool shuffle; 0 picks a time-based seed
	Seed int64
	// RotationDistance is how many prompts ahead a missed term is re-inserted
	RotationDistance int
	// MaxRequeues bounds re-insertions per term per session
	MaxRequeues int
	Match       MatchMode
	Direction   domain.Direction
}

// State of the session state machine
type State int

const (
	StateInProgress State = iota
	StateFinished
)

// Session is one ephemeral practice run over a scope. All learning-state
// mutations land on the live terms in the store, so ending early still
// keeps partial progress.
type Session struct {
	id      uuid.UUID
	store   *store.Store
	opts    Options
	pool    []*domain.Term
	total   int
	settled int
	cursor  int
	state   State
	results map[uuid.UUID]*domain.Outcome
}

// Start builds the pool from every term reachable from scope (a list, a
// folder subtree or the whole store via the root folder) and shuffles it
// with the session seed. Only one session may be active per store.
func Start(st *store.Store, scope uuid.UUID, opts Options) (*Session, error) {
	terms, err := st.CollectTerms(scope)
	if err != nil {
		return nil, err
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("scope %s: %w", scope, ErrEmptyScope)
	}

	if opts.RotationDistance <= 0 {
		opts.RotationDistance = DefaultRotationDistance
	}
	if opts.MaxRequeues <= 0 {
		opts.MaxRequeues = DefaultMaxRequeues
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}

	s := &Session{
		id:      uuid.New(),
		store:   st,
		opts:    opts,
		pool:    terms,
		total:   len(terms),
		results: map[uuid.UUID]*domain.Outcome{},
	}
	if err := st.AcquireSession(s.id); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	rng.Shuffle(len(s.pool), func(i, j int) {
		s.pool[i], s.pool[j] = s.pool[j], s.pool[i]
	})
	return s, nil
}

// ID returns the session id registered with the store
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Seed returns the shuffle seed actually used
func (s *Session) Seed() int64 {
	return s.opts.Seed
}

// State returns the current state machine state
func (s *Session) State() State {
	return s.state
}

// PoolSize returns the number of pending prompts left in the pool
func (s *Session) PoolSize() int {
	return len(s.pool) - s.cursor
}

// Progress returns how many distinct terms are settled out of the total
func (s *Session) Progress() (settled, total int) {
	return s.settled, s.total
}

// NextTerm returns the term at the cursor without advancing it.
// ok is false once the session is finished.
func (s *Session) NextTerm() (*domain.Term, bool) {
	if s.state != StateInProgress {
		return nil, false
	}
	if s.cursor >= len(s.pool) {
		s.finish()
		return nil, false
	}
	return s.pool[s.cursor], true
}

// Prompt returns the asked text and expected answer for the current
// term, honoring the session direction. ok is false when finished.
func (s *Session) Prompt() (ask, answer string, ok bool) {
	t, ok := s.NextTerm()
	if !ok {
		return "", "", false
	}
	ask, answer = s.promptFor(t, s.attemptsOf(t.ID))
	return ask, answer, true
}

// SubmitAnswer judges typed input for the current term and updates its
// learning state. A correct answer advances past the term; an incorrect
// one re-enqueues it RotationDistance prompts ahead until the requeue
// budget is spent, after which the term settles as not mastered.
func (s *Session) SubmitAnswer(termID uuid.UUID, typed string) (domain.Judgment, error) {
	if s.state != StateInProgress {
		return domain.JudgmentIncorrect, fmt.Errorf("session is not in progress")
	}
	cur, ok := s.NextTerm()
	if !ok {
		return domain.JudgmentIncorrect, fmt.Errorf("session is not in progress")
	}
	if cur.ID != termID {
		return domain.JudgmentIncorrect, fmt.Errorf("term %s is not the current prompt", termID)
	}

	o := s.results[termID]
	if o == nil {
		o = &domain.Outcome{TermID: termID, Question: cur.Question, Mastered: true}
		s.results[termID] = o
	}
	_, answer := s.promptFor(cur, o.Attempts)
	o.Attempts++

	j := Judge(s.opts.Match, typed, answer)
	cur.SeenCount++
	s.cursor++
	if j == domain.JudgmentCorrect {
		cur.CorrectStreak++
		o.Correct++
		s.settled++
	} else {
		cur.CorrectStreak = 0
		if o.Requeues < s.opts.MaxRequeues {
			o.Requeues++
			at := s.cursor + s.opts.RotationDistance
			if at > len(s.pool) {
				at = len(s.pool)
			}
			rest := append([]*domain.Term{cur}, s.pool[at:]...)
			s.pool = append(s.pool[:at], rest...)
		} else {
			o.Mastered = false
			s.settled++
		}
	}
	if s.cursor >= len(s.pool) {
		s.finish()
	}
	return j, nil
}

// End aborts or closes the session and returns its summary. Always safe
// to call; partial progress already lives on the store's terms.
func (s *Session) End() *domain.Summary {
	s.finish()
	sum := &domain.Summary{Outcomes: s.results}
	for _, o := range s.results {
		sum.Attempted++
		if o.Correct > 0 {
			sum.Correct++
		}
	}
	return sum
}

func (s *Session) finish() {
	if s.state == StateFinished {
		return
	}
	s.state = StateFinished
	s.store.ReleaseSession(s.id)
}

func (s *Session) attemptsOf(termID uuid.UUID) int {
	if o := s.results[termID]; o != nil {
		return o.Attempts
	}
	return 0
}

// promptFor picks the asked and expected side for a term. With
// DirectionBoth the direction flips once half the requeue budget is used.
func (s *Session) promptFor(t *domain.Term, attempts int) (ask, answer string) {
	dir := s.opts.Direction
	if dir == domain.DirectionBoth {
		if attempts > s.opts.MaxRequeues/2 {
			dir = domain.DirectionDT
		} else {
			dir = domain.DirectionTD
		}
	}
	if dir == domain.DirectionDT {
		return t.Answer, t.Question
	}
	return t.Question, t.Answer
}
