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
	"github.com/jeremyhahn/go-syncstore/pkg/common"
	"github.com/jeremyhahn/go-syncstore/pkg/httpstore"
	"github.com/jeremyhahn/go-syncstore/pkg/local"
	"github.com/jeremyhahn/go-syncstore/pkg/memory"
	"github.com/jeremyhahn/go-syncstore/pkg/minio"
)

func init() {
	RegisterBackend("http", func(settings map[string]string) (common.Backend, error) {
		backend := httpstore.New()
		if err := backend.Configure(settings); err != nil {
			return nil, err
		}
		return backend, nil
	})

	RegisterBackend("memory", func(settings map[string]string) (common.Backend, error) {
		backend := memory.New()
		if err := backend.Configure(settings); err != nil {
			return nil, err
		}
		return backend, nil
	})

	RegisterBackend("local", func(settings map[string]string) (common.Backend, error) {
		backend := local.New()
		if err := backend.Configure(settings); err != nil {
			return nil, err
		}
		return backend, nil
	})

	RegisterBackend("minio", func(settings map[string]string) (common.Backend, error) {
		backend := minio.New()
		if err := backend.Configure(settings); err != nil {
			return nil, err
		}
		return backend, nil
	})
}
