// Package sqlite implements the persistence gateway on an embedded
// sqlite database.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"wordtrainer/internal/domain"
	"wordtrainer/internal/store"
)

// Repo implements repository.StoreRepository
type Repo struct {
	db     *sql.DB
	logger *zap.Logger
}

// New opens (or creates) the database at path and applies migrations
func New(path string, logger *zap.Logger) (*Repo, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	logger.Info("Database ready", zap.String("path", path))
	return &Repo{db: db, logger: logger}, nil
}

// NewWithDB wraps an existing connection; migrations are the caller's job
func NewWithDB(db *sql.DB, logger *zap.Logger) *Repo {
	return &Repo{db: db, logger: logger}
}

// Close closes the database connection
func (r *Repo) Close() error {
	return r.db.Close()
}

// Save writes the full store, replacing all previous rows in one
// transaction so a failed save never leaves a half-written tree.
func (r *Repo) Save(st *store.Store) error {
	sn := st.Snapshot()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"terms", "lists", "folders"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	positions := childPositions(sn)
	for _, f := range sn.Folders {
		var parent interface{}
		if !f.IsRoot() {
			parent = f.ParentID.String()
		}
		_, err := tx.Exec(
			"INSERT INTO folders (id, parent_id, name, position) VALUES (?, ?, ?, ?)",
			f.ID.String(), parent, f.Name, positions[f.ID],
		)
		if err != nil {
			return fmt.Errorf("insert folder %q: %w", f.Name, err)
		}
	}
	for _, l := range sn.Lists {
		_, err := tx.Exec(
			"INSERT INTO lists (id, folder_id, name, position) VALUES (?, ?, ?, ?)",
			l.ID.String(), l.FolderID.String(), l.Name, positions[l.ID],
		)
		if err != nil {
			return fmt.Errorf("insert list %q: %w", l.Name, err)
		}
		for i, t := range l.Terms {
			_, err := tx.Exec(
				"INSERT INTO terms (id, list_id, question, answer, correct_streak, seen_count, position) VALUES (?, ?, ?, ?, ?, ?, ?)",
				t.ID.String(), l.ID.String(), t.Question, t.Answer, t.CorrectStreak, t.SeenCount, i,
			)
			if err != nil {
				return fmt.Errorf("insert term %q: %w", t.Question, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// childPositions maps every folder and list id to its index within its
// parent's insertion order
func childPositions(sn *store.Snapshot) map[uuid.UUID]int {
	pos := map[uuid.UUID]int{sn.Root: 0}
	for _, f := range sn.Folders {
		for i, fid := range f.FolderIDs {
			pos[fid] = i
		}
		for i, lid := range f.ListIDs {
			pos[lid] = i
		}
	}
	return pos
}

// Load reads the persisted tree back into a store. A database without a
// root folder yields a fresh empty store.
func (r *Repo) Load() (*store.Store, error) {
	sn := &store.Snapshot{}
	folders := map[uuid.UUID]*domain.Folder{}

	rows, err := r.db.Query("SELECT id, parent_id, name FROM folders ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("load folders: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var rawID, name string
		var rawParent sql.NullString
		if err := rows.Scan(&rawID, &rawParent, &name); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("folder id %q: %w", rawID, err)
		}
		f := &domain.Folder{ID: id, Name: name}
		if rawParent.Valid {
			if f.ParentID, err = uuid.Parse(rawParent.String); err != nil {
				return nil, fmt.Errorf("folder parent id %q: %w", rawParent.String, err)
			}
		} else {
			sn.Root = id
		}
		folders[id] = f
		sn.Folders = append(sn.Folders, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load folders: %w", err)
	}
	if sn.Root == uuid.Nil {
		return store.New(), nil
	}
	// rows came out ordered by position, so appending preserves sibling order
	for _, f := range sn.Folders {
		if !f.IsRoot() {
			parent, ok := folders[f.ParentID]
			if !ok {
				return nil, fmt.Errorf("folder %q has unknown parent %s", f.Name, f.ParentID)
			}
			parent.FolderIDs = append(parent.FolderIDs, f.ID)
		}
	}

	lists := map[uuid.UUID]*domain.List{}
	lrows, err := r.db.Query("SELECT id, folder_id, name FROM lists ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("load lists: %w", err)
	}
	defer lrows.Close()
	for lrows.Next() {
		var rawID, rawFolder, name string
		if err := lrows.Scan(&rawID, &rawFolder, &name); err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("list id %q: %w", rawID, err)
		}
		folderID, err := uuid.Parse(rawFolder)
		if err != nil {
			return nil, fmt.Errorf("list folder id %q: %w", rawFolder, err)
		}
		parent, ok := folders[folderID]
		if !ok {
			return nil, fmt.Errorf("list %q has unknown folder %s", name, folderID)
		}
		l := &domain.List{ID: id, FolderID: folderID, Name: name}
		lists[id] = l
		parent.ListIDs = append(parent.ListIDs, id)
		sn.Lists = append(sn.Lists, l)
	}
	if err := lrows.Err(); err != nil {
		return nil, fmt.Errorf("load lists: %w", err)
	}

	trows, err := r.db.Query("SELECT id, list_id, question, answer, correct_streak, seen_count FROM terms ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("load terms: %w", err)
	}
	defer trows.Close()
	for trows.Next() {
		var rawID, rawList string
		t := &domain.Term{}
		if err := trows.Scan(&rawID, &rawList, &t.Question, &t.Answer, &t.CorrectStreak, &t.SeenCount); err != nil {
			return nil, fmt.Errorf("scan term: %w", err)
		}
		var err error
		if t.ID, err = uuid.Parse(rawID); err != nil {
			return nil, fmt.Errorf("term id %q: %w", rawID, err)
		}
		listID, err := uuid.Parse(rawList)
		if err != nil {
			return nil, fmt.Errorf("term list id %q: %w", rawList, err)
		}
		l, ok := lists[listID]
		if !ok {
			return nil, fmt.Errorf("term %q has unknown list %s", t.Question, listID)
		}
		l.Terms = append(l.Terms, t)
	}
	if err := trows.Err(); err != nil {
		return nil, fmt.Errorf("load terms: %w", err)
	}

	return store.FromSnapshot(sn)
}
