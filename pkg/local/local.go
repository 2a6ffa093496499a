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

// Package local provides a filesystem implementation of the backend
// interface. Each object is one file under {path}/{collection}.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"

	"github.com/jeremyhahn/go-syncstore/pkg/common"
)

const (
	dirPerm  = 0o750
	filePerm = 0o600
)

// Local is a backend that stores serialized objects as files on the local
// filesystem.
type Local struct {
	path string
}

// New creates a new Local backend. Configure must be called before use.
func New() *Local {
	return &Local{}
}

// Configure sets up the backend.
// Required settings:
//   - path: root directory for stored objects
func (l *Local) Configure(settings map[string]string) error {
	path := settings["path"]
	if path == "" {
		return common.ErrPathNotSet
	}
	if err := os.MkdirAll(path, dirPerm); err != nil {
		return err
	}
	l.path = path
	return nil
}

// StoreObject serializes v and writes it under collection/key, replacing
// any existing file.
func (l *Local) StoreObject(ctx context.Context, collection, key string, v any) error {
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

	dir := filepath.Join(l.path, collection)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}
	return os.WriteFile(l.objectPath(collection, key), body, filePerm)
}

// RetrieveObject reads the object under collection/key and decodes it
// into out.
func (l *Local) RetrieveObject(ctx context.Context, collection, key string, out any) error {
	if err := validate(collection, key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := os.ReadFile(l.objectPath(collection, key))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s/%s", common.ErrObjectNotFound, collection, key)
		}
		return err
	}
	return json.Unmarshal(body, out)
}

// ListObjects returns the keys in a collection in sorted order. A
// collection directory that does not exist yields an empty slice.
func (l *Local) ListObjects(ctx context.Context, collection string) ([]string, error) {
	if err := common.ValidateCollection(collection); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(l.path, collection))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	keys := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		key, err := url.PathUnescape(entry.Name())
		if err != nil {
			// Files not written by this backend are skipped.
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

// DeleteObject removes the object file under collection/key.
func (l *Local) DeleteObject(ctx context.Context, collection, key string) error {
	if err := validate(collection, key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	err := os.Remove(l.objectPath(collection, key))
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s/%s", common.ErrObjectNotFound, collection, key)
	}
	return err
}

// IsConnected reports whether the root directory is accessible.
func (l *Local) IsConnected() bool {
	if l.path == "" {
		return false
	}
	_, err := os.Stat(l.path)
	return err == nil
}

// IsAuthenticated always reports success for the local backend.
func (l *Local) IsAuthenticated() bool {
	return true
}

// objectPath maps collection/key to a filesystem path. Keys are percent
// encoded so arbitrary key characters survive as a single file name.
func (l *Local) objectPath(collection, key string) string {
	return filepath.Join(l.path, collection, url.PathEscape(key))
}

func validate(collection, key string) error {
	if err := common.ValidateCollection(collection); err != nil {
		return err
	}
	return common.ValidateKey(key)
}
