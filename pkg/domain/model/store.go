package model

import (
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// ErrInvalidStoreKey is returned for an empty namespace element or key
var ErrInvalidStoreKey = goerr.New("invalid store key")

// StoreItem is a value kept in the namespaced key/value store
type StoreItem struct {
	Namespace []string
	Key       string
	Value     json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Reflection store addressing
const (
	MemoriesNamespace = "memories"
	ReflectionKey     = "reflection"
)

// ReflectionNamespace returns the store namespace holding reflections for an assistant
func ReflectionNamespace(assistantID string) []string {
	return []string{MemoriesNamespace, assistantID}
}

// ValidateStoreKey checks that namespace and key are addressable
func ValidateStoreKey(namespace []string, key string) error {
	if len(namespace) == 0 {
		return goerr.Wrap(ErrInvalidStoreKey, "namespace is empty")
	}
	for i, ns := range namespace {
		if ns == "" {
			return goerr.Wrap(ErrInvalidStoreKey, "namespace element is empty", goerr.V("index", i))
		}
	}
	if key == "" {
		return goerr.Wrap(ErrInvalidStoreKey, "key is empty", goerr.V("namespace", namespace))
	}
	return nil
}

// NamespacePath encodes a namespace into a single path-safe identifier.
// Elements are query-escaped so the separator never appears inside one.
func NamespacePath(namespace []string) string {
	escaped := make([]string, len(namespace))
	for i, ns := range namespace {
		escaped[i] = url.QueryEscape(ns)
	}
	return strings.Join(escaped, ",")
}

// ItemID encodes a key into a path-safe identifier
func ItemID(key string) string {
	return url.QueryEscape(key)
}
