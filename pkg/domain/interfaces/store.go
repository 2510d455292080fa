package interfaces

import (
	"context"
	"encoding/json"

	"github.com/secmon-lab/scribe/pkg/domain/model"
)

// StoreRepository is a namespaced key/value store
type StoreRepository interface {
	// Get retrieves the item at namespace/key. Returns nil without error when absent.
	Get(ctx context.Context, namespace []string, key string) (*model.StoreItem, error)

	// Put creates or replaces the item at namespace/key
	Put(ctx context.Context, namespace []string, key string, value json.RawMessage) (*model.StoreItem, error)

	// Delete removes the item at namespace/key
	Delete(ctx context.Context, namespace []string, key string) error
}
