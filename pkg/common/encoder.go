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
	"encoding/base64"
	"errors"
	"fmt"
)

// ErrUnsupportedBlobValue is returned when a blob field holds a value the
// encoder cannot represent.
var ErrUnsupportedBlobValue = errors.New("unsupported blob value")

// BlobEncoder converts a raw binary field value into its wire
// representation. Implementations must be pure: no I/O, no retained state.
type BlobEncoder func(v any) (string, error)

// Base64BlobEncoder encodes []byte and string blob values as standard
// base64. It is the default encoder used when none is injected.
func Base64BlobEncoder(v any) (string, error) {
	switch data := v.(type) {
	case []byte:
		return base64.StdEncoding.EncodeToString(data), nil
	case string:
		return base64.StdEncoding.EncodeToString([]byte(data)), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedBlobValue, v)
	}
}
