package memory

import (
	"github.com/secmon-lab/scribe/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	store *storeRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		store: newStoreRepository(),
	}
}

func (m *Memory) Store() interfaces.StoreRepository {
	return m.store
}

func (m *Memory) Close() error {
	return nil
}
