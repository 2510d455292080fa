package repository_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/scribe/pkg/domain/interfaces"
	"github.com/secmon-lab/scribe/pkg/domain/model"
	"github.com/secmon-lab/scribe/pkg/repository/firestore"
	"github.com/secmon-lab/scribe/pkg/repository/memory"
)

func runStoreRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	uniqueNamespace := func(t *testing.T) []string {
		return model.ReflectionNamespace(fmt.Sprintf("asst-%d", time.Now().UnixNano()))
	}

	t.Run("Get returns nil for missing item", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		item, err := repo.Store().Get(ctx, uniqueNamespace(t), model.ReflectionKey)
		gt.NoError(t, err).Required()
		gt.Value(t, item).Nil()
	})

	t.Run("Put then Get returns stored value", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		ns := uniqueNamespace(t)

		value := json.RawMessage(`{"styleRules":["a","b"],"content":["c"]}`)
		created, err := repo.Store().Put(ctx, ns, model.ReflectionKey, value)
		gt.NoError(t, err).Required()
		gt.Value(t, created.Key).Equal(model.ReflectionKey)
		gt.Bool(t, created.CreatedAt.IsZero()).False()

		item, err := repo.Store().Get(ctx, ns, model.ReflectionKey)
		gt.NoError(t, err).Required()
		gt.Value(t, item).NotNil()
		gt.Value(t, item.Namespace).Equal(ns)
		gt.Value(t, item.Key).Equal(model.ReflectionKey)

		var reflections model.Reflections
		gt.NoError(t, json.Unmarshal(item.Value, &reflections)).Required()
		gt.A(t, reflections.StyleRules.Items()).Length(2)
		gt.A(t, reflections.Content.Items()).Length(1)
	})

	t.Run("Put overwrites and keeps CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		ns := uniqueNamespace(t)

		first, err := repo.Store().Put(ctx, ns, "k", json.RawMessage(`{"v":1}`))
		gt.NoError(t, err).Required()

		time.Sleep(10 * time.Millisecond)

		second, err := repo.Store().Put(ctx, ns, "k", json.RawMessage(`{"v":2}`))
		gt.NoError(t, err).Required()
		gt.Bool(t, second.CreatedAt.Sub(first.CreatedAt).Abs() < time.Millisecond).True()
		gt.Bool(t, second.UpdatedAt.After(first.UpdatedAt)).True()

		item, err := repo.Store().Get(ctx, ns, "k")
		gt.NoError(t, err).Required()
		gt.String(t, string(item.Value)).Contains("2")
	})

	t.Run("namespaces are isolated", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		ns := uniqueNamespace(t)
		other := append([]string{}, ns...)
		other[1] = other[1] + "-other"

		_, err := repo.Store().Put(ctx, ns, "k", json.RawMessage(`"mine"`))
		gt.NoError(t, err).Required()

		item, err := repo.Store().Get(ctx, other, "k")
		gt.NoError(t, err).Required()
		gt.Value(t, item).Nil()
	})

	t.Run("Put rejects invalid JSON", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Store().Put(context.Background(), uniqueNamespace(t), "k", json.RawMessage(`{broken`))
		gt.Value(t, err).NotNil()
	})

	t.Run("invalid key is rejected", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Store().Get(ctx, []string{"memories", ""}, "k")
		gt.Error(t, err).Is(model.ErrInvalidStoreKey)

		_, err = repo.Store().Put(ctx, uniqueNamespace(t), "", json.RawMessage(`{}`))
		gt.Error(t, err).Is(model.ErrInvalidStoreKey)
	})

	t.Run("Delete removes item", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		ns := uniqueNamespace(t)

		_, err := repo.Store().Put(ctx, ns, "k", json.RawMessage(`{}`))
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Store().Delete(ctx, ns, "k")).Required()

		item, err := repo.Store().Get(ctx, ns, "k")
		gt.NoError(t, err).Required()
		gt.Value(t, item).Nil()
	})

	t.Run("Delete returns error for missing item", func(t *testing.T) {
		repo := newRepo(t)
		err := repo.Store().Delete(context.Background(), uniqueNamespace(t), "k")
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, memory.ErrNotFound) || errors.Is(err, firestore.ErrNotFound)).True()
	})
}

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")
	if databaseID == "" {
		t.Skip("TEST_FIRESTORE_DATABASE_ID not set")
	}

	ctx := context.Background()
	repo, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix("test_"))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}

func TestMemoryStoreRepository(t *testing.T) {
	runStoreRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreStoreRepository(t *testing.T) {
	runStoreRepositoryTest(t, newFirestoreRepository)
}
