package store

import (
	"fmt"

	"github.com/google/uuid"

	"wordtrainer/internal/domain"
)

// Snapshot is the lossless serialized form of a store consumed by the
// persistence gateway. Folders appear parent-before-child, lists in
// folder insertion order; round-tripping through FromSnapshot preserves
// every id and learning-state field.
type Snapshot struct {
	Root    uuid.UUID
	Folders []*domain.Folder
	Lists   []*domain.List
}

// Snapshot captures the full folder tree in deterministic order
func (s *Store) Snapshot() *Snapshot {
	sn := &Snapshot{Root: s.rootID}
	var walk func(f *domain.Folder)
	walk = func(f *domain.Folder) {
		sn.Folders = append(sn.Folders, f)
		for _, lid := range f.ListIDs {
			sn.Lists = append(sn.Lists, s.lists[lid])
		}
		for _, fid := range f.FolderIDs {
			walk(s.folders[fid])
		}
	}
	walk(s.folders[s.rootID])
	return sn
}

// FromSnapshot rebuilds a store from its serialized form
func FromSnapshot(sn *Snapshot) (*Store, error) {
	s := &Store{
		rootID:  sn.Root,
		folders: make(map[uuid.UUID]*domain.Folder, len(sn.Folders)),
		lists:   make(map[uuid.UUID]*domain.List, len(sn.Lists)),
		terms:   map[uuid.UUID]*domain.Term{},
	}
	for _, f := range sn.Folders {
		s.folders[f.ID] = f
	}
	root, ok := s.folders[sn.Root]
	if !ok || !root.IsRoot() {
		return nil, fmt.Errorf("snapshot has no root folder %s", sn.Root)
	}
	for _, l := range sn.Lists {
		if _, ok := s.folders[l.FolderID]; !ok {
			return nil, fmt.Errorf("list %q references missing folder %s", l.Name, l.FolderID)
		}
		s.lists[l.ID] = l
		for _, t := range l.Terms {
			s.terms[t.ID] = t
		}
	}
	for _, f := range s.folders {
		for _, fid := range f.FolderIDs {
			if _, ok := s.folders[fid]; !ok {
				return nil, fmt.Errorf("folder %q references missing subfolder %s", f.Name, fid)
			}
		}
		for _, lid := range f.ListIDs {
			if _, ok := s.lists[lid]; !ok {
				return nil, fmt.Errorf("folder %q references missing list %s", f.Name, lid)
			}
		}
	}
	return s, nil
}
