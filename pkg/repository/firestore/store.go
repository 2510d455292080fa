package firestore

import (
	"context"
	"encoding/json"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/scribe/pkg/domain/interfaces"
	"github.com/secmon-lab/scribe/pkg/domain/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	storeNamespacesCollection = "store_namespaces"
	storeItemsCollection      = "items"
)

type storeRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.StoreRepository = &storeRepository{}

func newStoreRepository(client *firestore.Client) *storeRepository {
	return &storeRepository{
		client: client,
	}
}

// storeDoc is the Firestore persistence model. Value holds the JSON text of the item.
type storeDoc struct {
	Namespace []string  `firestore:"Namespace"`
	Key       string    `firestore:"Key"`
	Value     string    `firestore:"Value"`
	CreatedAt time.Time `firestore:"CreatedAt"`
	UpdatedAt time.Time `firestore:"UpdatedAt"`
}

func fromStoreDoc(d *storeDoc) *model.StoreItem {
	return &model.StoreItem{
		Namespace: d.Namespace,
		Key:       d.Key,
		Value:     json.RawMessage(d.Value),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// itemDoc returns the document path:
// store_namespaces/{namespacePath}/items/{key}
func (r *storeRepository) itemDoc(namespace []string, key string) *firestore.DocumentRef {
	name := storeNamespacesCollection
	if r.collectionPrefix != "" {
		name = r.collectionPrefix + name
	}
	return r.client.Collection(name).Doc(model.NamespacePath(namespace)).
		Collection(storeItemsCollection).Doc(model.ItemID(key))
}

func (r *storeRepository) Get(ctx context.Context, namespace []string, key string) (*model.StoreItem, error) {
	if err := model.ValidateStoreKey(namespace, key); err != nil {
		return nil, err
	}

	doc, err := r.itemDoc(namespace, key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get store item", goerr.V("namespace", namespace), goerr.V("key", key))
	}

	var d storeDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal store item", goerr.V("namespace", namespace), goerr.V("key", key))
	}

	return fromStoreDoc(&d), nil
}

func (r *storeRepository) Put(ctx context.Context, namespace []string, key string, value json.RawMessage) (*model.StoreItem, error) {
	if err := model.ValidateStoreKey(namespace, key); err != nil {
		return nil, err
	}
	if !json.Valid(value) {
		return nil, goerr.New("store value is not valid JSON", goerr.V("namespace", namespace), goerr.V("key", key))
	}

	docRef := r.itemDoc(namespace, key)
	now := time.Now().UTC()
	d := &storeDoc{
		Namespace: namespace,
		Key:       key,
		Value:     string(value),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		existing, err := tx.Get(docRef)
		if err != nil && status.Code(err) != codes.NotFound {
			return goerr.Wrap(err, "failed to read existing store item")
		}
		if err == nil {
			var prev storeDoc
			if err := existing.DataTo(&prev); err != nil {
				return goerr.Wrap(err, "failed to unmarshal existing store item")
			}
			d.CreatedAt = prev.CreatedAt
		}
		return tx.Set(docRef, d)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to put store item", goerr.V("namespace", namespace), goerr.V("key", key))
	}

	return fromStoreDoc(d), nil
}

func (r *storeRepository) Delete(ctx context.Context, namespace []string, key string) error {
	if err := model.ValidateStoreKey(namespace, key); err != nil {
		return err
	}

	docRef := r.itemDoc(namespace, key)
	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "store item not found", goerr.V("namespace", namespace), goerr.V("key", key))
		}
		return goerr.Wrap(err, "failed to get store item", goerr.V("namespace", namespace), goerr.V("key", key))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete store item", goerr.V("namespace", namespace), goerr.V("key", key))
	}

	return nil
}
