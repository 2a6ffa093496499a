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

// Package journal implements a file-backed local change source: an
// append-only NDJSON file of change records, drained once per backup cycle.
package journal

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/jeremyhahn/go-syncstore/pkg/common"
)

const filePerm = 0o600

// Journal is an append-only NDJSON file of change records.
type Journal struct {
	mu   sync.Mutex
	path string
}

// Open returns a Journal backed by the file at path. The file is created
// lazily on the first append.
func Open(path string) *Journal {
	return &Journal{path: path}
}

// Path returns the journal file path.
func (j *Journal) Path() string {
	return j.path
}

// Append writes records to the end of the journal, one JSON document per line.
func (j *Journal) Append(records ...common.ChangeRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, record := range records {
		if err := enc.Encode(record); err != nil {
			return fmt.Errorf("append change record: %w", err)
		}
	}
	return w.Flush()
}

// ReadAll parses every record currently in the journal, in append order.
// A missing journal file yields an empty slice. Blank lines are skipped;
// a malformed line is an error.
func (j *Journal) ReadAll() ([]common.ChangeRecord, error) {
	records, _, err := j.Consume()
	return records, err
}

// Consume parses every record currently in the journal and returns the
// byte offset the read ended at. Records appended after Consume returns
// fall outside that offset, so a later Commit leaves them in place.
func (j *Journal) Consume() ([]common.ChangeRecord, int64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	data, err := os.ReadFile(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []common.ChangeRecord{}, 0, nil
		}
		return nil, 0, err
	}

	records, err := parseRecords(data)
	if err != nil {
		return nil, 0, err
	}
	return records, int64(len(data)), nil
}

// Commit discards the first offset bytes of the journal: the records a
// Consume returned. Records appended between Consume and Commit survive
// for the next cycle, so every record is consumed exactly once.
func (j *Journal) Commit(offset int64) error {
	if offset <= 0 {
		return nil
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.OpenFile(j.path, os.O_RDWR, filePerm)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.Size() <= offset {
		return f.Truncate(0)
	}

	tail := make([]byte, info.Size()-offset)
	if _, err := f.ReadAt(tail, offset); err != nil {
		return err
	}
	if _, err := f.WriteAt(tail, 0); err != nil {
		return err
	}
	return f.Truncate(int64(len(tail)))
}

// Truncate discards all journaled records unconditionally.
func (j *Journal) Truncate() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	err := os.Truncate(j.path, 0)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func parseRecords(data []byte) ([]common.ChangeRecord, error) {
	records := []common.ChangeRecord{}
	line := 0
	for _, raw := range bytes.Split(data, []byte("\n")) {
		line++
		text := bytes.TrimSpace(raw)
		if len(text) == 0 {
			continue
		}
		var record common.ChangeRecord
		if err := json.Unmarshal(text, &record); err != nil {
			return nil, fmt.Errorf("journal line %d: %w", line, err)
		}
		records = append(records, record)
	}
	return records, nil
}
