package testutil

import (
	"github.com/stretchr/testify/mock"

	"wordtrainer/internal/store"
)

// MockStoreRepository is a mock for repository.StoreRepository
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) Load() (*store.Store, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

func (m *MockStoreRepository) Save(st *store.Store) error {
	args := m.Called(st)
	return args.Error(0)
}
