package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scribe/pkg/domain/model"
)

// storeKey is a composite key for store entries (namespace path + item key)
type storeKey struct {
	namespace string
	key       string
}

type storeRepository struct {
	mu      sync.RWMutex
	entries map[storeKey]*model.StoreItem
}

func newStoreRepository() *storeRepository {
	return &storeRepository{
		entries: make(map[storeKey]*model.StoreItem),
	}
}

func copyStoreItem(item *model.StoreItem) *model.StoreItem {
	copied := &model.StoreItem{
		Key:       item.Key,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
	copied.Namespace = append([]string(nil), item.Namespace...)
	if item.Value != nil {
		copied.Value = append(json.RawMessage(nil), item.Value...)
	}
	return copied
}

func toStoreKey(namespace []string, key string) storeKey {
	return storeKey{namespace: model.NamespacePath(namespace), key: key}
}

func (r *storeRepository) Get(ctx context.Context, namespace []string, key string) (*model.StoreItem, error) {
	if err := model.ValidateStoreKey(namespace, key); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.entries[toStoreKey(namespace, key)]
	if !exists {
		return nil, nil
	}
	return copyStoreItem(item), nil
}

func (r *storeRepository) Put(ctx context.Context, namespace []string, key string, value json.RawMessage) (*model.StoreItem, error) {
	if err := model.ValidateStoreKey(namespace, key); err != nil {
		return nil, err
	}
	if !json.Valid(value) {
		return nil, goerr.New("store value is not valid JSON", goerr.V("namespace", namespace), goerr.V("key", key))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	sk := toStoreKey(namespace, key)
	item := &model.StoreItem{
		Namespace: namespace,
		Key:       key,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if existing, ok := r.entries[sk]; ok {
		item.CreatedAt = existing.CreatedAt
	}

	r.entries[sk] = copyStoreItem(item)
	return copyStoreItem(item), nil
}

func (r *storeRepository) Delete(ctx context.Context, namespace []string, key string) error {
	if err := model.ValidateStoreKey(namespace, key); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	sk := toStoreKey(namespace, key)
	if _, exists := r.entries[sk]; !exists {
		return goerr.Wrap(ErrNotFound, "store item not found", goerr.V("namespace", namespace), goerr.V("key", key))
	}

	delete(r.entries, sk)
	return nil
}
