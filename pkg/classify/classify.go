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

// Package classify splits a heterogeneous change stream into structured
// changes and binary payloads according to per-collection extraction rules.
package classify

import (
	"fmt"

	"github.com/jeremyhahn/go-syncstore/pkg/adapters"
	"github.com/jeremyhahn/go-syncstore/pkg/common"
)

// ruleKind selects how a collection's binary-bearing field is handled.
type ruleKind int

const (
	// ruleExtract pulls the field out as a separate ExtractedImage and
	// clears it from the structured record whether or not encoding
	// succeeds. Used for payloads too large to ship inline.
	ruleExtract ruleKind = iota

	// ruleInline replaces the field's value with its encoded form in
	// place. On encoding failure the field is left untouched. Used for
	// payloads small enough to stay embedded.
	ruleInline
)

// fieldRule describes the binary-bearing field of one collection.
type fieldRule struct {
	field string
	kind  ruleKind
}

// collectionRules is the closed set of collections with binary-bearing
// fields. Collections not listed here pass through unchanged.
var collectionRules = map[string]fieldRule{
	"pages":    {field: "screenshot", kind: ruleExtract},
	"favIcons": {field: "favIcon", kind: ruleInline},
}

// Classifier applies collection-specific extraction rules to change
// records. Encoding failures are reported to the telemetry sink and never
// abort classification.
type Classifier struct {
	encode   common.BlobEncoder
	reporter adapters.Reporter
}

// New creates a Classifier. A nil encoder falls back to
// common.Base64BlobEncoder; a nil reporter discards encoding failures.
func New(encode common.BlobEncoder, reporter adapters.Reporter) *Classifier {
	if encode == nil {
		encode = common.Base64BlobEncoder
	}
	if reporter == nil {
		reporter = adapters.NewNoOpReporter()
	}
	return &Classifier{encode: encode, reporter: reporter}
}

// Classify separates a sequence of change records into structured changes
// and extracted images. Input records are not mutated; records whose
// payload is touched are returned as copies. A record's binary field never
// appears in both outputs: extraction clears the field from the structured
// copy regardless of the encoding outcome.
func (c *Classifier) Classify(changes []common.ChangeRecord) ([]common.ChangeRecord, []common.ExtractedImage) {
	out := make([]common.ChangeRecord, 0, len(changes))
	var images []common.ExtractedImage

	for _, change := range changes {
		rule, ok := collectionRules[change.Collection]
		if !ok || change.Object == nil {
			out = append(out, change)
			continue
		}

		raw, present := change.Object[rule.field]
		if !present || raw == nil {
			out = append(out, change)
			continue
		}

		change.Object = cloneObject(change.Object)

		switch rule.kind {
		case ruleExtract:
			// The field is cleared before encoding is attempted so raw
			// binary data never ships inside the change-set document.
			delete(change.Object, rule.field)
			encoded, err := c.encode(raw)
			if err != nil {
				c.reporter.Report(fmt.Errorf("encode %s/%s %s: %w",
					change.Collection, change.PK, rule.field, err))
				break
			}
			images = append(images, common.ExtractedImage{
				Collection: change.Collection,
				PK:         change.PK,
				Type:       rule.field,
				Data:       encoded,
			})
		case ruleInline:
			encoded, err := c.encode(raw)
			if err != nil {
				c.reporter.Report(fmt.Errorf("encode %s/%s %s: %w",
					change.Collection, change.PK, rule.field, err))
				break
			}
			change.Object[rule.field] = encoded
		}

		out = append(out, change)
	}

	return out, images
}

func cloneObject(obj map[string]any) map[string]any {
	dup := make(map[string]any, len(obj))
	for k, v := range obj {
		dup[k] = v
	}
	return dup
}
