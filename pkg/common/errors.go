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

import "errors"

var (
	// Configuration errors

	// ErrURLNotSet is returned when the required backend URL is not set.
	ErrURLNotSet = errors.New("url not set")

	// ErrPathNotSet is returned when the required path is not set.
	ErrPathNotSet = errors.New("path not set")

	// ErrBucketNotSet is returned when the required bucket is not set.
	ErrBucketNotSet = errors.New("bucket not set")

	// ErrEndpointNotSet is returned when the required endpoint is not set.
	ErrEndpointNotSet = errors.New("endpoint not set")

	// ErrAccessKeyNotSet is returned when the required access key is not set.
	ErrAccessKeyNotSet = errors.New("accessKey not set")

	// ErrSecretKeyNotSet is returned when the required secret key is not set.
	ErrSecretKeyNotSet = errors.New("secretKey not set")

	// Backend operation errors

	// ErrDeleteNotSupported is returned by backends that do not implement
	// object deletion. Callers must not rely on delete being available.
	ErrDeleteNotSupported = errors.New("delete not implemented")

	// ErrObjectNotFound is returned when an object is not found in a backend.
	ErrObjectNotFound = errors.New("object not found")

	// ErrInvalidCollection is returned when a collection name fails validation.
	ErrInvalidCollection = errors.New("invalid collection name")

	// ErrInvalidKey is returned when an object key fails validation.
	ErrInvalidKey = errors.New("invalid object key")
)
