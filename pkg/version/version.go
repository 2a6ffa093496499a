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

package version

// Build metadata, set at build time using:
//
//	go build -ldflags "\
//	  -X github.com/jeremyhahn/go-syncstore/pkg/version.Version=1.0.0 \
//	  -X github.com/jeremyhahn/go-syncstore/pkg/version.GitCommit=$(git rev-parse --short HEAD) \
//	  -X github.com/jeremyhahn/go-syncstore/pkg/version.BuildDate=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	Version   = "0.1.0-alpha" // default version if not set at build time
	GitCommit = ""
	BuildDate = ""
)

// Get returns the bare application version string.
func Get() string {
	return Version
}

// Full returns the version with commit and build date when they were
// stamped at build time.
func Full() string {
	s := Version
	if GitCommit != "" {
		s += "+" + GitCommit
	}
	if BuildDate != "" {
		s += " (" + BuildDate + ")"
	}
	return s
}
