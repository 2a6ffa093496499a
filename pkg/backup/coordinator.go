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

// Package backup orchestrates one incremental backup cycle: classify the
// change batch, stamp it, and write the resulting documents to a remote
// object store backend.
package backup

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jeremyhahn/go-syncstore/pkg/adapters"
	"github.com/jeremyhahn/go-syncstore/pkg/classify"
	"github.com/jeremyhahn/go-syncstore/pkg/common"
)

// Options control a single backup cycle.
type Options struct {
	// StoreBlobs enables writing the image-set document for the batch.
	// When false, extracted images are dropped and only the change-set
	// document is written.
	StoreBlobs bool
}

// Coordinator runs backup cycles against a backend. It holds no state
// between invocations; each cycle derives its own timestamp key.
type Coordinator struct {
	backend    common.Backend
	classifier *classify.Classifier
	logger     adapters.Logger

	// now is the batch timestamp source. Wall-clock milliseconds are used
	// as object keys; collisions within the same millisecond are an
	// accepted limitation.
	now func() time.Time
}

// CoordinatorOption customizes a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithLogger sets the logger used by the coordinator.
func WithLogger(logger adapters.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the timestamp source. Intended for tests.
func WithClock(now func() time.Time) CoordinatorOption {
	return func(c *Coordinator) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCoordinator creates a Coordinator. A nil classifier falls back to the
// default base64 encoder with a discarding telemetry sink.
func NewCoordinator(backend common.Backend, classifier *classify.Classifier, opts ...CoordinatorOption) *Coordinator {
	if classifier == nil {
		classifier = classify.New(nil, nil)
	}
	c := &Coordinator{
		backend:    backend,
		classifier: classifier,
		logger:     adapters.NewNoOpLogger(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BackupChanges performs one backup cycle. The change-set document is
// written first; a failed change-set write aborts the cycle before the
// image-set write is attempted, so an images-only batch can never exist.
// The converse is possible: callers must treat a change-set document with
// no matching image-set document as a valid, complete state.
func (c *Coordinator) BackupChanges(ctx context.Context, changes []common.ChangeRecord, schemaVersion int, opts Options) error {
	stripped, images := c.classifier.Classify(changes)

	key := strconv.FormatInt(c.now().UnixMilli(), 10)

	changeSet := common.ChangeSetDocument{
		Version: schemaVersion,
		Changes: stripped,
	}
	if err := c.backend.StoreObject(ctx, common.CollectionChangeSets, key, changeSet); err != nil {
		return fmt.Errorf("store change-set %s: %w", key, err)
	}
	c.logger.Info(ctx, "change-set stored",
		adapters.Field{Key: "key", Value: key},
		adapters.Field{Key: "version", Value: schemaVersion},
		adapters.Field{Key: "changes", Value: len(stripped)})

	if !ShouldStoreImages(images, opts.StoreBlobs) {
		return nil
	}

	imageSet := common.ImageSetDocument{
		Version: schemaVersion,
		Images:  images,
	}
	if err := c.backend.StoreObject(ctx, common.CollectionImages, key, imageSet); err != nil {
		return fmt.Errorf("store image-set %s: %w", key, err)
	}
	c.logger.Info(ctx, "image-set stored",
		adapters.Field{Key: "key", Value: key},
		adapters.Field{Key: "images", Value: len(images)})

	return nil
}
