package service

import (
	"go.uber.org/zap"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/session"
)

// PracticeService starts and finishes practice sessions over the words
// service's store and persists the learning state they produce.
type PracticeService struct {
	words  *WordsService
	logger *zap.Logger
}

// NewPracticeService creates a new practice service
func NewPracticeService(words *WordsService, logger *zap.Logger) *PracticeService {
	return &PracticeService{words: words, logger: logger}
}

// Start begins a session over the folder or list at scopePath
func (s *PracticeService) Start(scopePath string, opts session.Options) (*session.Session, error) {
	scope, _, err := s.words.Store().Resolve(scopePath)
	if err != nil {
		return nil, err
	}
	sess, err := session.Start(s.words.Store(), scope, opts)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Practice session started",
		zap.String("scope", scopePath),
		zap.Int64("seed", sess.Seed()),
		zap.Int("pool", sess.PoolSize()),
	)
	return sess, nil
}

// Finish ends the session, saves partial or full progress and returns
// the summary
func (s *PracticeService) Finish(sess *session.Session) (*domain.Summary, error) {
	sum := sess.End()
	s.logger.Info("Practice session finished",
		zap.Int("attempted", sum.Attempted),
		zap.Int("correct", sum.Correct),
	)
	return sum, s.words.Save()
}
