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

package local

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/jeremyhahn/go-syncstore/pkg/common"
)

func newConfigured(t *testing.T) *Local {
	t.Helper()
	backend := New()
	if err := backend.Configure(map[string]string{"path": t.TempDir()}); err != nil {
		t.Fatalf("Configure() returned error: %v", err)
	}
	return backend
}

func TestConfigureRequiresPath(t *testing.T) {
	backend := New()
	err := backend.Configure(map[string]string{})
	if !errors.Is(err, common.ErrPathNotSet) {
		t.Fatalf("Configure() should return ErrPathNotSet, got: %v", err)
	}
}

func TestStoreAndRetrieveRoundTrip(t *testing.T) {
	backend := newConfigured(t)
	ctx := context.Background()

	doc := common.ImageSetDocument{
		Version: 1,
		Images: []common.ExtractedImage{
			{Collection: "pages", PK: "p-1", Type: "screenshot", Data: "iVBORw0KGgo="},
		},
	}

	if err := backend.StoreObject(ctx, "images", "1724380000000", doc); err != nil {
		t.Fatalf("StoreObject() returned error: %v", err)
	}

	var got common.ImageSetDocument
	if err := backend.RetrieveObject(ctx, "images", "1724380000000", &got); err != nil {
		t.Fatalf("RetrieveObject() returned error: %v", err)
	}
	if !reflect.DeepEqual(doc, got) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, doc)
	}
}

func TestRetrieveObjectNotFound(t *testing.T) {
	backend := newConfigured(t)
	var out any
	err := backend.RetrieveObject(context.Background(), "images", "missing", &out)
	if !errors.Is(err, common.ErrObjectNotFound) {
		t.Fatalf("RetrieveObject() should return ErrObjectNotFound, got: %v", err)
	}
}

func TestListObjectsMissingCollectionIsEmpty(t *testing.T) {
	backend := newConfigured(t)
	keys, err := backend.ListObjects(context.Background(), "never-written")
	if err != nil {
		t.Fatalf("ListObjects() returned error: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("ListObjects() = %v, want empty", keys)
	}
}

func TestListObjectsSorted(t *testing.T) {
	backend := newConfigured(t)
	ctx := context.Background()

	for _, key := range []string{"20", "10", "30"} {
		if err := backend.StoreObject(ctx, "change-sets", key, "x"); err != nil {
			t.Fatalf("StoreObject() returned error: %v", err)
		}
	}

	keys, err := backend.ListObjects(ctx, "change-sets")
	if err != nil {
		t.Fatalf("ListObjects() returned error: %v", err)
	}
	want := []string{"10", "20", "30"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("ListObjects() = %v, want %v", keys, want)
	}
}

func TestKeysWithSpecialCharacters(t *testing.T) {
	backend := newConfigured(t)
	ctx := context.Background()

	key := "pk with spaces%20and%2Fencodings"
	if err := backend.StoreObject(ctx, "records", key, map[string]any{"ok": true}); err != nil {
		t.Fatalf("StoreObject() returned error: %v", err)
	}

	keys, err := backend.ListObjects(ctx, "records")
	if err != nil {
		t.Fatalf("ListObjects() returned error: %v", err)
	}
	if len(keys) != 1 || keys[0] != key {
		t.Fatalf("ListObjects() = %v, want [%q]", keys, key)
	}

	var got map[string]any
	if err := backend.RetrieveObject(ctx, "records", key, &got); err != nil {
		t.Fatalf("RetrieveObject() returned error: %v", err)
	}
	if got["ok"] != true {
		t.Fatalf("RetrieveObject() decoded wrong document: %+v", got)
	}
}

func TestURLPrimaryKeyRoundTrip(t *testing.T) {
	backend := newConfigured(t)
	ctx := context.Background()

	// Separators in the key collapse into the escaped file name.
	key := "https://example.com/page"
	if err := backend.StoreObject(ctx, "favIcons", key, map[string]any{"favIcon": "aGVsbG8="}); err != nil {
		t.Fatalf("StoreObject() with URL key returned error: %v", err)
	}

	keys, err := backend.ListObjects(ctx, "favIcons")
	if err != nil {
		t.Fatalf("ListObjects() returned error: %v", err)
	}
	if len(keys) != 1 || keys[0] != key {
		t.Fatalf("ListObjects() = %v, want [%q]", keys, key)
	}

	var got map[string]any
	if err := backend.RetrieveObject(ctx, "favIcons", key, &got); err != nil {
		t.Fatalf("RetrieveObject() returned error: %v", err)
	}
	if got["favIcon"] != "aGVsbG8=" {
		t.Fatalf("RetrieveObject() decoded wrong document: %+v", got)
	}
}

func TestDeleteObject(t *testing.T) {
	backend := newConfigured(t)
	ctx := context.Background()

	if err := backend.StoreObject(ctx, "records", "k", "x"); err != nil {
		t.Fatalf("StoreObject() returned error: %v", err)
	}
	if err := backend.DeleteObject(ctx, "records", "k"); err != nil {
		t.Fatalf("DeleteObject() returned error: %v", err)
	}

	err := backend.DeleteObject(ctx, "records", "k")
	if !errors.Is(err, common.ErrObjectNotFound) {
		t.Fatalf("DeleteObject() on missing key should return ErrObjectNotFound, got: %v", err)
	}
}

func TestIsConnected(t *testing.T) {
	backend := New()
	if backend.IsConnected() {
		t.Fatal("IsConnected() should be false before Configure()")
	}
	backend = newConfigured(t)
	if !backend.IsConnected() {
		t.Fatal("IsConnected() should be true after Configure()")
	}
}
