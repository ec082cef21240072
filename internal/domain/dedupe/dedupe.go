// Package dedupe tracks claimed keys so a catalog load can reject
// duplicate identifiers, slugs and ranks.
package dedupe

import (
	"context"
	"strings"
	"sync"
)

// Registry records which owner first claimed a key within a namespace.
// Keys are compared exactly after trimming surrounding space.
type Registry interface {
	// Claim atomically records owner for key in namespace if the key is
	// free. When the key is already held it returns the holder and true.
	Claim(ctx context.Context, namespace, key, owner string) (string, bool)

	// Owner returns the holder of key, if any.
	Owner(ctx context.Context, namespace, key string) (string, bool)
}

type entryKey struct {
	namespace string
	key       string
}

// inMemoryRegistry implements Registry with a single map guarded by a mutex.
type inMemoryRegistry struct {
	mu     sync.RWMutex
	owners map[entryKey]string
}

// NewInMemoryRegistry creates an empty registry.
func NewInMemoryRegistry() Registry {
	return &inMemoryRegistry{owners: make(map[entryKey]string)}
}

func (r *inMemoryRegistry) Claim(ctx context.Context, namespace, key, owner string) (string, bool) {
	k := entryKey{namespace: namespace, key: strings.TrimSpace(key)}

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, exists := r.owners[k]; exists {
		return prev, true
	}
	r.owners[k] = owner
	return "", false
}

func (r *inMemoryRegistry) Owner(ctx context.Context, namespace, key string) (string, bool) {
	k := entryKey{namespace: namespace, key: strings.TrimSpace(key)}

	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, ok := r.owners[k]
	return owner, ok
}
