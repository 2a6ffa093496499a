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

// Package factory creates backend instances by type name.
package factory

import (
	"github.com/jeremyhahn/go-syncstore/pkg/common"
)

// BackendCreator is a function that creates a configured backend.
type BackendCreator func(settings map[string]string) (common.Backend, error)

var backendRegistry = make(map[string]BackendCreator)

// RegisterBackend registers a backend creator under a type name.
func RegisterBackend(backendType string, creator BackendCreator) {
	backendRegistry[backendType] = creator
}

// NewBackend creates a new backend of the given type.
func NewBackend(backendType string, settings map[string]string) (common.Backend, error) {
	creator, exists := backendRegistry[backendType]
	if !exists {
		return nil, ErrUnknownBackend
	}
	return creator(settings)
}
