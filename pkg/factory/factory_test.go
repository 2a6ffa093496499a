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

package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-syncstore/pkg/common"
)

func TestNewBackendMemory(t *testing.T) {
	backend, err := NewBackend("memory", nil)
	require.NoError(t, err)
	require.NotNil(t, backend)

	err = backend.StoreObject(context.Background(), "change-sets", "1", map[string]any{"ok": true})
	assert.NoError(t, err)
}

func TestNewBackendLocal(t *testing.T) {
	backend, err := NewBackend("local", map[string]string{"path": t.TempDir()})
	require.NoError(t, err)
	assert.True(t, backend.IsConnected())
}

func TestNewBackendHTTP(t *testing.T) {
	backend, err := NewBackend("http", map[string]string{"url": "http://localhost:8080"})
	require.NoError(t, err)
	assert.True(t, backend.IsConnected())
}

func TestNewBackendConfigureFailurePropagates(t *testing.T) {
	_, err := NewBackend("http", map[string]string{})
	assert.ErrorIs(t, err, common.ErrURLNotSet)
}

func TestNewBackendUnknownType(t *testing.T) {
	_, err := NewBackend("carrier-pigeon", nil)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestRegisterBackendCustom(t *testing.T) {
	called := false
	RegisterBackend("custom-test", func(settings map[string]string) (common.Backend, error) {
		called = true
		backend, err := NewBackend("memory", settings)
		return backend, err
	})

	backend, err := NewBackend("custom-test", nil)
	require.NoError(t, err)
	assert.NotNil(t, backend)
	assert.True(t, called)
}
