package testutil

import (
	"go.uber.org/zap"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/store"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestTerm creates a term with learning state
func NewTestTerm(question, answer string, streak, seen int) *domain.Term {
	t := domain.NewTerm(question, answer)
	t.CorrectStreak = streak
	t.SeenCount = seen
	return t
}

// NewTestStore builds a small store: a "french" folder holding an
// "animals" list with the chat/cat and chien/dog terms
func NewTestStore() *store.Store {
	st := store.New()
	folder, err := st.CreateFolder(st.RootID(), "french")
	if err != nil {
		panic(err)
	}
	_, err = st.ImportTSV(folder.ID, "animals", "chat\tcat\nchien\tdog\n")
	if err != nil {
		panic(err)
	}
	return st
}
