package domain

import "github.com/google/uuid"

// Term represents a single question-answer flashcard
type Term struct {
	ID            uuid.UUID
	Question      string
	Answer        string
	CorrectStreak int
	SeenCount     int
}

// NewTerm creates a term with fresh learning state
func NewTerm(question, answer string) *Term {
	return &Term{
		ID:       uuid.New(),
		Question: question,
		Answer:   answer,
	}
}

// List is a named, ordered collection of terms owned by one folder
type List struct {
	ID       uuid.UUID
	FolderID uuid.UUID
	Name     string
	Terms    []*Term
}

// Folder is a named container of lists and subfolders.
// Children are held as id references; the store resolves them.
type Folder struct {
	ID        uuid.UUID
	ParentID  uuid.UUID // uuid.Nil for the root folder
	Name      string
	FolderIDs []uuid.UUID
	ListIDs   []uuid.UUID
}

// IsRoot reports whether the folder is the store root
func (f *Folder) IsRoot() bool {
	return f.ParentID == uuid.Nil
}
