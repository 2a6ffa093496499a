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

package common

import "context"

// Backend is the common interface for all remote object store backends.
// Objects are addressed by (collection, key) and persisted as
// pretty-printed JSON documents.
type Backend interface {
	// Configure sets up the backend with the necessary credentials and settings.
	Configure(settings map[string]string) error

	// StoreObject serializes v and writes it under collection/key.
	// Writes have PUT semantics: repeated calls with the same key replace
	// the stored content.
	StoreObject(ctx context.Context, collection, key string, v any) error

	// RetrieveObject fetches the object under collection/key and decodes
	// it into out.
	RetrieveObject(ctx context.Context, collection, key string, out any) error

	// ListObjects returns the keys present in a collection. A collection
	// that does not exist remotely yields an empty slice, not an error.
	ListObjects(ctx context.Context, collection string) ([]string, error)

	// DeleteObject removes the object under collection/key. Backends that
	// do not support deletion return ErrDeleteNotSupported without
	// performing any I/O.
	DeleteObject(ctx context.Context, collection, key string) error

	// IsConnected reports whether the backend considers itself reachable.
	IsConnected() bool

	// IsAuthenticated reports whether the backend considers itself
	// authenticated.
	IsAuthenticated() bool
}
