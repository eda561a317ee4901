// Package store holds the in-memory word store: a tree of folders
// owning lists of terms, addressed by generated ids.
package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/tsv"
)

var (
	// ErrDuplicateName is returned when a sibling folder or list already uses the name
	ErrDuplicateName = errors.New("duplicate name")
	// ErrNotFound is returned by lookups for absent ids or paths
	ErrNotFound = errors.New("not found")
	// ErrSessionActive is returned when a second practice session is started
	// while one is already in progress on this store
	ErrSessionActive = errors.New("a practice session is already active")
)

// Store is the root container owning the folder tree. Entities live in
// arenas keyed by id; parent-child relations are id references, so the
// tree stays acyclic and single-owner.
type Store struct {
	rootID  uuid.UUID
	folders map[uuid.UUID]*domain.Folder
	lists   map[uuid.UUID]*domain.List
	terms   map[uuid.UUID]*domain.Term

	activeSession uuid.UUID
}

// New creates an empty store with a root folder
func New() *Store {
	root := &domain.Folder{ID: uuid.New()}
	return &Store{
		rootID:  root.ID,
		folders: map[uuid.UUID]*domain.Folder{root.ID: root},
		lists:   map[uuid.UUID]*domain.List{},
		terms:   map[uuid.UUID]*domain.Term{},
	}
}

// RootID returns the id of the root folder
func (s *Store) RootID() uuid.UUID {
	return s.rootID
}

// FindFolder returns the folder with the given id
func (s *Store) FindFolder(id uuid.UUID) (*domain.Folder, error) {
	f, ok := s.folders[id]
	if !ok {
		return nil, fmt.Errorf("folder %s: %w", id, ErrNotFound)
	}
	return f, nil
}

// FindList returns the list with the given id
func (s *Store) FindList(id uuid.UUID) (*domain.List, error) {
	l, ok := s.lists[id]
	if !ok {
		return nil, fmt.Errorf("list %s: %w", id, ErrNotFound)
	}
	return l, nil
}

// FindTerm returns the term with the given id
func (s *Store) FindTerm(id uuid.UUID) (*domain.Term, error) {
	t, ok := s.terms[id]
	if !ok {
		return nil, fmt.Errorf("term %s: %w", id, ErrNotFound)
	}
	return t, nil
}

// nameTaken reports whether a sibling folder or list of parent uses name.
// Folders and lists share one namespace within a folder.
func (s *Store) nameTaken(parent *domain.Folder, name string) bool {
	for _, id := range parent.FolderIDs {
		if s.folders[id].Name == name {
			return true
		}
	}
	for _, id := range parent.ListIDs {
		if s.lists[id].Name == name {
			return true
		}
	}
	return false
}

// CreateFolder creates a subfolder of parent
func (s *Store) CreateFolder(parent uuid.UUID, name string) (*domain.Folder, error) {
	p, err := s.FindFolder(parent)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("folder name cannot be empty")
	}
	if s.nameTaken(p, name) {
		return nil, fmt.Errorf("folder %q: %w", name, ErrDuplicateName)
	}

	f := &domain.Folder{ID: uuid.New(), ParentID: p.ID, Name: name}
	s.folders[f.ID] = f
	p.FolderIDs = append(p.FolderIDs, f.ID)
	return f, nil
}

// CreateList creates a list in folder with the given terms.
// Terms without an id are assigned one.
func (s *Store) CreateList(folder uuid.UUID, name string, terms []*domain.Term) (*domain.List, error) {
	p, err := s.FindFolder(folder)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("list name cannot be empty")
	}
	if s.nameTaken(p, name) {
		return nil, fmt.Errorf("list %q: %w", name, ErrDuplicateName)
	}

	l := &domain.List{ID: uuid.New(), FolderID: p.ID, Name: name, Terms: terms}
	for _, t := range l.Terms {
		if t.ID == uuid.Nil {
			t.ID = uuid.New()
		}
		s.terms[t.ID] = t
	}
	s.lists[l.ID] = l
	p.ListIDs = append(p.ListIDs, l.ID)
	return l, nil
}

// AddTerm appends a new term to a list
func (s *Store) AddTerm(list uuid.UUID, question, answer string) (*domain.Term, error) {
	l, err := s.FindList(list)
	if err != nil {
		return nil, err
	}
	if question == "" || answer == "" {
		return nil, fmt.Errorf("question and answer cannot be empty")
	}
	t := domain.NewTerm(question, answer)
	l.Terms = append(l.Terms, t)
	s.terms[t.ID] = t
	return t, nil
}

// DeleteTerm removes a term from its list
func (s *Store) DeleteTerm(id uuid.UUID) error {
	t, err := s.FindTerm(id)
	if err != nil {
		return err
	}
	for _, l := range s.lists {
		for i, lt := range l.Terms {
			if lt.ID == t.ID {
				l.Terms = append(l.Terms[:i], l.Terms[i+1:]...)
				delete(s.terms, t.ID)
				return nil
			}
		}
	}
	delete(s.terms, t.ID)
	return nil
}

// ImportTSV parses raw TSV text and creates a list from it. Each pair
// becomes a fresh term with zero learning state. Fails without side
// effects on codec errors or a duplicate name.
func (s *Store) ImportTSV(folder uuid.UUID, name, raw string) (*domain.List, error) {
	pairs, err := tsv.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("import %q: %w", name, err)
	}
	terms := make([]*domain.Term, 0, len(pairs))
	for _, p := range pairs {
		terms = append(terms, domain.NewTerm(p.Question, p.Answer))
	}
	return s.CreateList(folder, name, terms)
}

// ExportTSV serializes a list back to TSV text, dropping learning state
func (s *Store) ExportTSV(list uuid.UUID) (string, error) {
	l, err := s.FindList(list)
	if err != nil {
		return "", err
	}
	pairs := make([]tsv.Pair, 0, len(l.Terms))
	for _, t := range l.Terms {
		pairs = append(pairs, tsv.Pair{Question: t.Question, Answer: t.Answer})
	}
	return tsv.Serialize(pairs), nil
}

// DeleteList removes a list and its terms
func (s *Store) DeleteList(id uuid.UUID) error {
	l, err := s.FindList(id)
	if err != nil {
		return err
	}
	parent := s.folders[l.FolderID]
	parent.ListIDs = removeID(parent.ListIDs, l.ID)
	for _, t := range l.Terms {
		delete(s.terms, t.ID)
	}
	delete(s.lists, l.ID)
	return nil
}

// DeleteFolder removes a folder and its whole subtree
func (s *Store) DeleteFolder(id uuid.UUID) error {
	f, err := s.FindFolder(id)
	if err != nil {
		return err
	}
	if f.IsRoot() {
		return fmt.Errorf("cannot delete the root folder")
	}
	parent := s.folders[f.ParentID]
	parent.FolderIDs = removeID(parent.FolderIDs, f.ID)
	s.deleteSubtree(f)
	return nil
}

func (s *Store) deleteSubtree(f *domain.Folder) {
	for _, id := range f.ListIDs {
		l := s.lists[id]
		for _, t := range l.Terms {
			delete(s.terms, t.ID)
		}
		delete(s.lists, id)
	}
	for _, id := range f.FolderIDs {
		s.deleteSubtree(s.folders[id])
	}
	delete(s.folders, f.ID)
}

// MoveFolder reparents a folder. Moving into the folder's own subtree
// is rejected to keep the tree acyclic.
func (s *Store) MoveFolder(id, newParent uuid.UUID) error {
	f, err := s.FindFolder(id)
	if err != nil {
		return err
	}
	if f.IsRoot() {
		return fmt.Errorf("cannot move the root folder")
	}
	p, err := s.FindFolder(newParent)
	if err != nil {
		return err
	}
	if s.isDescendant(p.ID, f.ID) || p.ID == f.ID {
		return fmt.Errorf("cannot move folder %q into its own subtree", f.Name)
	}
	if p.ID == f.ParentID {
		return nil
	}
	if s.nameTaken(p, f.Name) {
		return fmt.Errorf("folder %q: %w", f.Name, ErrDuplicateName)
	}

	old := s.folders[f.ParentID]
	old.FolderIDs = removeID(old.FolderIDs, f.ID)
	p.FolderIDs = append(p.FolderIDs, f.ID)
	f.ParentID = p.ID
	return nil
}

// MoveList moves a list to another folder
func (s *Store) MoveList(id, newFolder uuid.UUID) error {
	l, err := s.FindList(id)
	if err != nil {
		return err
	}
	p, err := s.FindFolder(newFolder)
	if err != nil {
		return err
	}
	if p.ID == l.FolderID {
		return nil
	}
	if s.nameTaken(p, l.Name) {
		return fmt.Errorf("list %q: %w", l.Name, ErrDuplicateName)
	}

	old := s.folders[l.FolderID]
	old.ListIDs = removeID(old.ListIDs, l.ID)
	p.ListIDs = append(p.ListIDs, l.ID)
	l.FolderID = p.ID
	return nil
}

// RenameFolder renames a folder, keeping sibling names unique
func (s *Store) RenameFolder(id uuid.UUID, name string) error {
	f, err := s.FindFolder(id)
	if err != nil {
		return err
	}
	if f.IsRoot() {
		return fmt.Errorf("cannot rename the root folder")
	}
	if name == "" {
		return fmt.Errorf("folder name cannot be empty")
	}
	if name == f.Name {
		return nil
	}
	if s.nameTaken(s.folders[f.ParentID], name) {
		return fmt.Errorf("folder %q: %w", name, ErrDuplicateName)
	}
	f.Name = name
	return nil
}

// RenameList renames a list, keeping sibling names unique
func (s *Store) RenameList(id uuid.UUID, name string) error {
	l, err := s.FindList(id)
	if err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("list name cannot be empty")
	}
	if name == l.Name {
		return nil
	}
	if s.nameTaken(s.folders[l.FolderID], name) {
		return fmt.Errorf("list %q: %w", name, ErrDuplicateName)
	}
	l.Name = name
	return nil
}

// isDescendant reports whether folder id lives under ancestor
func (s *Store) isDescendant(id, ancestor uuid.UUID) bool {
	for id != uuid.Nil {
		f, ok := s.folders[id]
		if !ok {
			return false
		}
		if f.ParentID == ancestor {
			return true
		}
		id = f.ParentID
	}
	return false
}

// ChildFolders returns the subfolders of a folder in insertion order
func (s *Store) ChildFolders(id uuid.UUID) ([]*domain.Folder, error) {
	f, err := s.FindFolder(id)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Folder, 0, len(f.FolderIDs))
	for _, cid := range f.FolderIDs {
		out = append(out, s.folders[cid])
	}
	return out, nil
}

// ChildLists returns the lists of a folder in insertion order
func (s *Store) ChildLists(id uuid.UUID) ([]*domain.List, error) {
	f, err := s.FindFolder(id)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.List, 0, len(f.ListIDs))
	for _, lid := range f.ListIDs {
		out = append(out, s.lists[lid])
	}
	return out, nil
}

// CollectTerms gathers every term transitively reachable from scope,
// which may name a list or a folder. Order is deterministic: a list's
// terms in insertion order, a folder's lists before its subfolders.
func (s *Store) CollectTerms(scope uuid.UUID) ([]*domain.Term, error) {
	if l, ok := s.lists[scope]; ok {
		return append([]*domain.Term(nil), l.Terms...), nil
	}
	f, ok := s.folders[scope]
	if !ok {
		return nil, fmt.Errorf("scope %s: %w", scope, ErrNotFound)
	}
	var out []*domain.Term
	var walk func(f *domain.Folder)
	walk = func(f *domain.Folder) {
		for _, lid := range f.ListIDs {
			out = append(out, s.lists[lid].Terms...)
		}
		for _, fid := range f.FolderIDs {
			walk(s.folders[fid])
		}
	}
	walk(f)
	return out, nil
}

// AcquireSession marks a session as the store's single active one
func (s *Store) AcquireSession(id uuid.UUID) error {
	if s.activeSession != uuid.Nil {
		return ErrSessionActive
	}
	s.activeSession = id
	return nil
}

// ReleaseSession clears the active session if id owns it
func (s *Store) ReleaseSession(id uuid.UUID) {
	if s.activeSession == id {
		s.activeSession = uuid.Nil
	}
}

// ActiveSession returns the active session id, or uuid.Nil
func (s *Store) ActiveSession() uuid.UUID {
	return s.activeSession
}

// Resolve walks a slash-separated path of names from the root and
// returns the folder or list it names. The empty path, "." and "/"
// name the root folder.
func (s *Store) Resolve(path string) (uuid.UUID, PathKind, error) {
	cur := s.folders[s.rootID]
	path = strings.Trim(path, "/")
	if path == "" || path == "." {
		return cur.ID, PathFolder, nil
	}

	segs := strings.Split(path, "/")
	for i, seg := range segs {
		last := i == len(segs)-1
		next := uuid.Nil
		for _, fid := range cur.FolderIDs {
			if s.folders[fid].Name == seg {
				next = fid
				break
			}
		}
		if next != uuid.Nil {
			cur = s.folders[next]
			continue
		}
		if last {
			for _, lid := range cur.ListIDs {
				if s.lists[lid].Name == seg {
					return lid, PathList, nil
				}
			}
		}
		return uuid.Nil, PathFolder, fmt.Errorf("path %q: %w", path, ErrNotFound)
	}
	return cur.ID, PathFolder, nil
}

// PathKind tells what kind of entity a path resolved to
type PathKind int

const (
	PathFolder PathKind = iota
	PathList
)

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
