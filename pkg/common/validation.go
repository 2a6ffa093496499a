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

import (
	"fmt"
	"strings"
)

// ValidateCollection checks that a collection name is safe to use as a
// single path segment.
func ValidateCollection(collection string) error {
	if collection == "" {
		return fmt.Errorf("%w: empty", ErrInvalidCollection)
	}
	if strings.ContainsAny(collection, "/\\") {
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidCollection, collection)
	}
	if collection == "." || collection == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidCollection, collection)
	}
	return nil
}

// ValidateKey checks that an object key is non-empty and is not a bare
// dot name. Keys may contain separators and other characters requiring
// percent encoding; escaping them into a single path segment or file
// name is the backend's responsibility.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	if key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
