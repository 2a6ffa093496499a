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

package adapters

import "context"

// Reporter is a fire-and-forget sink for non-fatal errors. The change
// classifier reports blob encoding failures here instead of failing the
// batch.
type Reporter interface {
	// Report delivers an error to the sink. Implementations must not block
	// on delivery and must never panic.
	Report(err error)
}

// NoOpReporter discards all reported errors.
type NoOpReporter struct{}

// NewNoOpReporter creates a Reporter that discards everything.
func NewNoOpReporter() Reporter {
	return &NoOpReporter{}
}

func (r *NoOpReporter) Report(err error) {}

// LogReporter forwards reported errors to a Logger at warn level.
type LogReporter struct {
	logger Logger
}

// NewLogReporter creates a Reporter backed by the given logger.
func NewLogReporter(logger Logger) Reporter {
	if logger == nil {
		logger = NewNoOpLogger()
	}
	return &LogReporter{logger: logger}
}

func (r *LogReporter) Report(err error) {
	if err == nil {
		return
	}
	r.logger.Warn(context.Background(), "non-fatal error reported",
		Field{Key: "error", Value: err.Error()})
}
