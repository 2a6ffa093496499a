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

package common

// ChangeType identifies the kind of local mutation a ChangeRecord captures.
type ChangeType string

const (
	// ChangeCreate records the creation of an object.
	ChangeCreate ChangeType = "create"

	// ChangeUpdate records an update to an existing object.
	ChangeUpdate ChangeType = "update"

	// ChangeDelete records the deletion of an object.
	ChangeDelete ChangeType = "delete"
)

// Reserved remote collection names used by the backup coordinator.
const (
	// CollectionChangeSets holds one serialized change-set document per
	// backup cycle, keyed by wall-clock milliseconds.
	CollectionChangeSets = "change-sets"

	// CollectionImages holds the extracted binary payloads for a backup
	// cycle, keyed by the same timestamp as the matching change-set.
	CollectionImages = "images"
)

// ChangeRecord represents one captured local mutation. Records are
// immutable once produced and consumed exactly once per backup cycle.
type ChangeRecord struct {
	// Collection is the name of the collection the object belongs to.
	Collection string `json:"collection"`

	// PK is the primary key of the mutated object.
	PK string `json:"pk"`

	// Object is the structured payload of the object, nil for deletes.
	Object map[string]any `json:"object"`

	// Type is the kind of mutation.
	Type ChangeType `json:"changeType"`
}

// ExtractedImage is a binary payload pulled out of a ChangeRecord during
// classification. It exists only within one classify-and-write cycle and
// is never persisted outside its enclosing image-set document.
type ExtractedImage struct {
	// Collection is the collection of the record the image came from.
	Collection string `json:"collection"`

	// PK is the primary key of the record the image came from.
	PK string `json:"pk"`

	// Type is the field name the image was extracted from (e.g. "screenshot").
	Type string `json:"type"`

	// Data is the encoded blob.
	Data string `json:"data"`
}

// ChangeSetDocument is the persisted shape of one batch of structured
// changes. Every document carries exactly one schema version; changes
// captured under different schema versions are never merged.
type ChangeSetDocument struct {
	// Version is the schema version the changes were captured under.
	Version int `json:"version"`

	// Changes are the captured records with binary fields stripped.
	Changes []ChangeRecord `json:"changes"`
}

// ImageSetDocument is the persisted shape of the binary payloads extracted
// from one batch. Its absence for a given change-set timestamp is not data
// loss; it means no blobs were eligible or blob storage was disabled.
type ImageSetDocument struct {
	// Version is the schema version the images were captured under.
	Version int `json:"version"`

	// Images are the extracted payloads.
	Images []ExtractedImage `json:"images"`
}
