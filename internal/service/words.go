package service

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/repository"
	"wordtrainer/internal/store"
)

// WordsService owns the live word store and keeps it persisted through
// the repository. CLI commands address entities by slash-separated
// name paths; every mutating call saves before returning.
type WordsService struct {
	repo   repository.StoreRepository
	logger *zap.Logger
	store  *store.Store
}

// NewWordsService creates a new words service
func NewWordsService(repo repository.StoreRepository, logger *zap.Logger) *WordsService {
	return &WordsService{repo: repo, logger: logger}
}

// Open loads the persisted store
func (s *WordsService) Open() error {
	st, err := s.repo.Load()
	if err != nil {
		return fmt.Errorf("load store: %w", err)
	}
	s.store = st
	return nil
}

// Store returns the live store
func (s *WordsService) Store() *store.Store {
	return s.store
}

// Save persists the current store state
func (s *WordsService) Save() error {
	if err := s.repo.Save(s.store); err != nil {
		s.logger.Error("Failed to save store", zap.Error(err))
		return fmt.Errorf("save store: %w", err)
	}
	return nil
}

// resolveFolder resolves a path that must name a folder
func (s *WordsService) resolveFolder(path string) (uuid.UUID, error) {
	id, kind, err := s.store.Resolve(path)
	if err != nil {
		return uuid.Nil, err
	}
	if kind != store.PathFolder {
		return uuid.Nil, fmt.Errorf("%q is a list, not a folder", path)
	}
	return id, nil
}

// resolveList resolves a path that must name a list
func (s *WordsService) resolveList(path string) (uuid.UUID, error) {
	id, kind, err := s.store.Resolve(path)
	if err != nil {
		return uuid.Nil, err
	}
	if kind != store.PathList {
		return uuid.Nil, fmt.Errorf("%q is a folder, not a list", path)
	}
	return id, nil
}

// CreateFolder creates a subfolder under the folder at parentPath
func (s *WordsService) CreateFolder(parentPath, name string) (*domain.Folder, error) {
	parent, err := s.resolveFolder(parentPath)
	if err != nil {
		return nil, err
	}
	f, err := s.store.CreateFolder(parent, name)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Folder created", zap.String("name", name))
	return f, s.Save()
}

// CreateList creates an empty list under the folder at folderPath
func (s *WordsService) CreateList(folderPath, name string) (*domain.List, error) {
	folder, err := s.resolveFolder(folderPath)
	if err != nil {
		return nil, err
	}
	l, err := s.store.CreateList(folder, name, nil)
	if err != nil {
		return nil, err
	}
	s.logger.Info("List created", zap.String("name", name))
	return l, s.Save()
}

// AddTerm appends a question-answer pair to the list at listPath
func (s *WordsService) AddTerm(listPath, question, answer string) (*domain.Term, error) {
	list, err := s.resolveList(listPath)
	if err != nil {
		return nil, err
	}
	t, err := s.store.AddTerm(list, question, answer)
	if err != nil {
		return nil, err
	}
	return t, s.Save()
}

// RemoveTerm deletes the first term in the list whose question matches
func (s *WordsService) RemoveTerm(listPath, question string) error {
	listID, err := s.resolveList(listPath)
	if err != nil {
		return err
	}
	l, err := s.store.FindList(listID)
	if err != nil {
		return err
	}
	for _, t := range l.Terms {
		if t.Question == question {
			if err := s.store.DeleteTerm(t.ID); err != nil {
				return err
			}
			return s.Save()
		}
	}
	return fmt.Errorf("term %q in list %q: %w", question, l.Name, store.ErrNotFound)
}

// ImportTSV creates a list named name under folderPath from TSV text
func (s *WordsService) ImportTSV(folderPath, name, raw string) (*domain.List, error) {
	folder, err := s.resolveFolder(folderPath)
	if err != nil {
		return nil, err
	}
	l, err := s.store.ImportTSV(folder, name, raw)
	if err != nil {
		return nil, err
	}
	s.logger.Info("List imported",
		zap.String("name", name),
		zap.Int("terms", len(l.Terms)),
	)
	return l, s.Save()
}

// ExportTSV serializes the list at listPath to TSV text
func (s *WordsService) ExportTSV(listPath string) (string, error) {
	list, err := s.resolveList(listPath)
	if err != nil {
		return "", err
	}
	return s.store.ExportTSV(list)
}

// Delete removes the folder (recursively) or list at path
func (s *WordsService) Delete(path string) error {
	id, kind, err := s.store.Resolve(path)
	if err != nil {
		return err
	}
	if kind == store.PathList {
		err = s.store.DeleteList(id)
	} else {
		err = s.store.DeleteFolder(id)
	}
	if err != nil {
		return err
	}
	s.logger.Info("Deleted", zap.String("path", path))
	return s.Save()
}

// Move moves the folder or list at src into the folder at destPath
func (s *WordsService) Move(src, destPath string) error {
	dest, err := s.resolveFolder(destPath)
	if err != nil {
		return err
	}
	id, kind, err := s.store.Resolve(src)
	if err != nil {
		return err
	}
	if kind == store.PathList {
		err = s.store.MoveList(id, dest)
	} else {
		err = s.store.MoveFolder(id, dest)
	}
	if err != nil {
		return err
	}
	return s.Save()
}

// Rename renames the folder or list at path
func (s *WordsService) Rename(path, newName string) error {
	id, kind, err := s.store.Resolve(path)
	if err != nil {
		return err
	}
	if kind == store.PathList {
		err = s.store.RenameList(id, newName)
	} else {
		err = s.store.RenameFolder(id, newName)
	}
	if err != nil {
		return err
	}
	return s.Save()
}

// ListFolder returns the subfolders and lists of the folder at path
func (s *WordsService) ListFolder(path string) ([]*domain.Folder, []*domain.List, error) {
	id, err := s.resolveFolder(path)
	if err != nil {
		return nil, nil, err
	}
	folders, err := s.store.ChildFolders(id)
	if err != nil {
		return nil, nil, err
	}
	lists, err := s.store.ChildLists(id)
	if err != nil {
		return nil, nil, err
	}
	return folders, lists, nil
}

// ShowList returns the list at path with its terms
func (s *WordsService) ShowList(path string) (*domain.List, error) {
	id, err := s.resolveList(path)
	if err != nil {
		return nil, err
	}
	return s.store.FindList(id)
}
