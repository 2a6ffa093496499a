// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-syncstore.
//
// go-syncstore is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package memory provides an in-memory implementation of the backend
// interface. This is useful for testing, development, and the reference
// dev server.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/jeremyhahn/go-syncstore/pkg/common"
)

// Memory is a backend that stores serialized objects in memory, keyed by
// collection and key.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string][]byte
}

// New creates a new Memory backend.
func New() *Memory {
	return &Memory{
		collections: make(map[string]map[string][]byte),
	}
}

// Configure sets up the backend. The memory backend has no required settings.
func (m *Memory) Configure(settings map[string]string) error {
	return nil
}

// StoreObject serializes v and stores it under collection/key, replacing
// any existing content.
func (m *Memory) StoreObject(ctx context.Context, collection, key string, v any) error {
	if err := validate(collection, key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize %s/%s: %w", collection, key, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	objects, ok := m.collections[collection]
	if !ok {
		objects = make(map[string][]byte)
		m.collections[collection] = objects
	}
	objects[key] = body
	return nil
}

// RetrieveObject fetches the object under collection/key and decodes it
// into out.
func (m *Memory) RetrieveObject(ctx context.Context, collection, key string, out any) error {
	if err := validate(collection, key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.RLock()
	body, exists := m.collections[collection][key]
	m.mu.RUnlock()

	if !exists {
		return fmt.Errorf("%w: %s/%s", common.ErrObjectNotFound, collection, key)
	}
	return json.Unmarshal(body, out)
}

// ListObjects returns the keys in a collection in sorted order. An unknown
// collection yields an empty slice.
func (m *Memory) ListObjects(ctx context.Context, collection string) ([]string, error) {
	if err := common.ValidateCollection(collection); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.collections[collection]))
	for key := range m.collections[collection] {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// DeleteObject removes the object under collection/key.
func (m *Memory) DeleteObject(ctx context.Context, collection, key string) error {
	if err := validate(collection, key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.collections[collection][key]; !exists {
		return fmt.Errorf("%w: %s/%s", common.ErrObjectNotFound, collection, key)
	}
	delete(m.collections[collection], key)
	return nil
}

// IsConnected always reports success for the in-memory backend.
func (m *Memory) IsConnected() bool {
	return true
}

// IsAuthenticated always reports success for the in-memory backend.
func (m *Memory) IsAuthenticated() bool {
	return true
}

// RawObject returns the serialized bytes stored under collection/key.
// Used by the dev server to echo stored documents verbatim.
func (m *Memory) RawObject(collection, key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	body, exists := m.collections[collection][key]
	if !exists {
		return nil, false
	}
	dup := make([]byte, len(body))
	copy(dup, body)
	return dup, true
}

// HasCollection reports whether any object was ever stored in collection.
func (m *Memory) HasCollection(collection string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.collections[collection]
	return ok
}

// Clear removes all objects. This is useful for testing.
func (m *Memory) Clear() {
	m.mu.Lock()
	m.collections = make(map[string]map[string][]byte)
	m.mu.Unlock()
}

// Count returns the total number of stored objects. This is useful for testing.
func (m *Memory) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, objects := range m.collections {
		n += len(objects)
	}
	return n
}

func validate(collection, key string) error {
	if err := common.ValidateCollection(collection); err != nil {
		return err
	}
	return common.ValidateKey(key)
}
