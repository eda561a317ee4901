package repository

import "wordtrainer/internal/store"

// StoreRepository persists the full word store, including ids and
// learning state. Load(Save(store)) must reproduce the store
// entity-for-entity.
type StoreRepository interface {
	Load() (*store.Store, error)
	Save(*store.Store) error
}
