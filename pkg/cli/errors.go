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

package cli

import "errors"

var (
	// ErrBackendURLRequired is returned when the http backend has no URL.
	ErrBackendURLRequired = errors.New("backend-url is required for the http backend")

	// ErrBackendPathRequired is returned when the local backend has no path.
	ErrBackendPathRequired = errors.New("backend-path is required for the local backend")

	// ErrBackendBucketRequired is returned when the minio backend has no bucket.
	ErrBackendBucketRequired = errors.New("backend-bucket is required for the minio backend")

	// ErrBackendEndpointRequired is returned when the minio backend has no endpoint.
	ErrBackendEndpointRequired = errors.New("backend-endpoint is required for the minio backend")

	// ErrUnsupportedBackend is returned for unknown backend types.
	ErrUnsupportedBackend = errors.New("unsupported backend type")
)
