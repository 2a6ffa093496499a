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

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jeremyhahn/go-syncstore/pkg/adapters"
	"github.com/jeremyhahn/go-syncstore/pkg/backup"
	"github.com/jeremyhahn/go-syncstore/pkg/classify"
	"github.com/jeremyhahn/go-syncstore/pkg/common"
	"github.com/jeremyhahn/go-syncstore/pkg/factory"
	"github.com/jeremyhahn/go-syncstore/pkg/journal"
)

// CommandContext holds the context for executing commands.
type CommandContext struct {
	Backend common.Backend
	Config  *Config
	Logger  adapters.Logger
}

// NewCommandContext creates a new command context from the configuration.
func NewCommandContext(cfg *Config) (*CommandContext, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	backend, err := factory.NewBackend(cfg.Backend, cfg.GetBackendSettings())
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Backend: backend,
		Config:  cfg,
		Logger:  adapters.NewDefaultLogger(),
	}, nil
}

// BackupCommand runs one backup cycle over the journaled changes. On
// success the consumed records are dropped from the journal; records
// appended while the cycle ran stay queued for the next one.
func (c *CommandContext) BackupCommand(out io.Writer) error {
	j := journal.Open(c.Config.Journal)
	changes, offset, err := j.Consume()
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		fmt.Fprintln(out, "no changes to back up")
		return nil
	}

	coordinator := backup.NewCoordinator(
		c.Backend,
		classify.New(common.Base64BlobEncoder, adapters.NewLogReporter(c.Logger)),
		backup.WithLogger(c.Logger),
	)

	opts := backup.Options{StoreBlobs: c.Config.StoreBlobs}
	if err := coordinator.BackupChanges(context.Background(), changes, c.Config.SchemaVersion, opts); err != nil {
		return err
	}
	if err := j.Commit(offset); err != nil {
		return err
	}

	fmt.Fprintf(out, "backed up %d change(s)\n", len(changes))
	return nil
}

// ListCommand prints the keys present in a remote collection, one per line.
func (c *CommandContext) ListCommand(out io.Writer, collection string) error {
	keys, err := c.Backend.ListObjects(context.Background(), collection)
	if err != nil {
		return err
	}
	for _, key := range keys {
		fmt.Fprintln(out, key)
	}
	return nil
}

// GetCommand retrieves one remote object and prints it as indented JSON.
func (c *CommandContext) GetCommand(out io.Writer, collection, key string) error {
	var doc json.RawMessage
	if err := c.Backend.RetrieveObject(context.Background(), collection, key, &doc); err != nil {
		return err
	}

	pretty, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(pretty))
	return nil
}

// WatchCommand watches the journal and runs a backup cycle after each
// debounced burst of writes. It blocks until interrupted.
func (c *CommandContext) WatchCommand(out io.Writer) error {
	watcher, err := journal.NewWatcher(c.Config.Journal, journal.WatcherConfig{
		Logger: c.Logger,
	})
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Stop() }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	fmt.Fprintf(out, "watching %s\n", c.Config.Journal)
	for {
		select {
		case <-stop:
			return nil
		case _, ok := <-watcher.Signals():
			if !ok {
				return nil
			}
			if err := c.BackupCommand(out); err != nil {
				// A failed cycle leaves the journal intact; the next
				// signal retries with the same records.
				c.Logger.Error(context.Background(), "backup cycle failed",
					adapters.Field{Key: "error", Value: err.Error()})
			}
		}
	}
}
