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

package httpstore

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jeremyhahn/go-syncstore/pkg/common"
)

func newConfigured(t *testing.T, baseURL string) *HTTPStore {
	t.Helper()
	store := New()
	if err := store.Configure(map[string]string{"url": baseURL}); err != nil {
		t.Fatalf("Configure() returned error: %v", err)
	}
	return store
}

func TestConfigureRequiresURL(t *testing.T) {
	store := New()
	err := store.Configure(map[string]string{})
	if !errors.Is(err, common.ErrURLNotSet) {
		t.Fatalf("Configure() should return ErrURLNotSet, got: %v", err)
	}
}

func TestConfigureRejectsBadRateLimit(t *testing.T) {
	store := New()
	err := store.Configure(map[string]string{"url": "http://example.com", "rate_limit": "fast"})
	if err == nil {
		t.Fatal("Configure() should reject a non-numeric rate_limit")
	}
}

func TestStoreObjectPutsPrettyJSON(t *testing.T) {
	var gotMethod, gotPath, gotContentType, gotRequestID string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.EscapedPath()
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	store := newConfigured(t, server.URL)
	doc := common.ChangeSetDocument{Version: 2, Changes: []common.ChangeRecord{}}
	if err := store.StoreObject(context.Background(), "change-sets", "1724380000000", doc); err != nil {
		t.Fatalf("StoreObject() returned error: %v", err)
	}

	if gotMethod != http.MethodPut {
		t.Fatalf("StoreObject() used method %s, want PUT", gotMethod)
	}
	if gotPath != "/change-sets/1724380000000" {
		t.Fatalf("StoreObject() hit path %s", gotPath)
	}
	if gotContentType != "application/json" {
		t.Fatalf("StoreObject() sent Content-Type %q", gotContentType)
	}
	if gotRequestID == "" {
		t.Fatal("StoreObject() did not send a request ID")
	}
	if !strings.Contains(string(gotBody), "\n  \"version\": 2") {
		t.Fatalf("StoreObject() body is not pretty-printed: %q", gotBody)
	}
}

func TestStoreObjectDoubleEncodesKey(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	store := newConfigured(t, server.URL)
	if err := store.StoreObject(context.Background(), "records", "a b%20c", "x"); err != nil {
		t.Fatalf("StoreObject() returned error: %v", err)
	}

	// "a b%20c" -> "a%20b%2520c" -> "a%2520b%252520c"
	want := "/records/a%2520b%252520c"
	if gotPath != want {
		t.Fatalf("StoreObject() hit path %s, want %s", gotPath, want)
	}
}

func TestStoreObjectAcceptsURLPrimaryKey(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	store := newConfigured(t, server.URL)
	doc := map[string]any{"favIcon": "aGVsbG8="}
	if err := store.StoreObject(context.Background(), "favIcons", "https://example.com/page", doc); err != nil {
		t.Fatalf("StoreObject() with URL key returned error: %v", err)
	}

	// "https://example.com/page" -> "https:%2F%2Fexample.com%2Fpage"
	// -> "https:%252F%252Fexample.com%252Fpage"
	want := "/favIcons/https:%252F%252Fexample.com%252Fpage"
	if gotPath != want {
		t.Fatalf("StoreObject() hit path %s, want %s", gotPath, want)
	}
}

func TestStoreObjectSurfacesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer server.Close()

	store := newConfigured(t, server.URL)
	err := store.StoreObject(context.Background(), "change-sets", "1", "x")
	if err == nil {
		t.Fatal("StoreObject() should surface a non-success response")
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("StoreObject() error should carry the response body, got: %v", err)
	}
}

func TestRetrieveObjectDecodesBody(t *testing.T) {
	doc := common.ChangeSetDocument{
		Version: 4,
		Changes: []common.ChangeRecord{
			{Collection: "pages", PK: "p-1", Object: map[string]any{"url": "x"}, Type: common.ChangeUpdate},
		},
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(doc)
	}))
	defer server.Close()

	store := newConfigured(t, server.URL)
	var got common.ChangeSetDocument
	if err := store.RetrieveObject(context.Background(), "change-sets", "1", &got); err != nil {
		t.Fatalf("RetrieveObject() returned error: %v", err)
	}
	if got.Version != 4 || len(got.Changes) != 1 || got.Changes[0].PK != "p-1" {
		t.Fatalf("RetrieveObject() decoded wrong document: %+v", got)
	}
}

func TestRetrieveObjectNotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	store := newConfigured(t, server.URL)
	var out any
	err := store.RetrieveObject(context.Background(), "change-sets", "missing", &out)
	if !errors.Is(err, common.ErrObjectNotFound) {
		t.Fatalf("RetrieveObject() should return ErrObjectNotFound, got: %v", err)
	}
}

func TestListObjectsParsesListing(t *testing.T) {
	listing := `<html>
<a href="1234">1234</a>
no link on this line
<a href="5678">5678</a>
</html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/change-sets" {
			t.Errorf("ListObjects() hit path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(listing))
	}))
	defer server.Close()

	store := newConfigured(t, server.URL)
	keys, err := store.ListObjects(context.Background(), "change-sets")
	if err != nil {
		t.Fatalf("ListObjects() returned error: %v", err)
	}

	// The html/body lines contain no href and are discarded; order follows
	// line order.
	want := []string{"1234", "5678"}
	if len(keys) != len(want) {
		t.Fatalf("ListObjects() returned %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("ListObjects() returned %v, want %v", keys, want)
		}
	}
}

func TestListObjectsTreatsNotFoundAsEmpty(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	store := newConfigured(t, server.URL)
	keys, err := store.ListObjects(context.Background(), "images")
	if err != nil {
		t.Fatalf("ListObjects() should treat 404 as an empty collection, got: %v", err)
	}
	if len(keys) != 0 {
		t.Fatalf("ListObjects() returned %v, want empty", keys)
	}
}

func TestListObjectsSurfacesOtherErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	store := newConfigured(t, server.URL)
	_, err := store.ListObjects(context.Background(), "images")
	if err == nil {
		t.Fatal("ListObjects() should surface a 500 response")
	}
	if !strings.Contains(err.Error(), "backend exploded") {
		t.Fatalf("ListObjects() error should carry the response body, got: %v", err)
	}
}

// countingTransport fails the test if any request reaches the wire.
type countingTransport struct {
	calls int
}

func (c *countingTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	c.calls++
	return nil, errors.New("unexpected network call")
}

func TestDeleteObjectNeverTouchesTheNetwork(t *testing.T) {
	transport := &countingTransport{}
	store := New(WithHTTPClient(&http.Client{Transport: transport}))
	if err := store.Configure(map[string]string{"url": "http://example.com"}); err != nil {
		t.Fatalf("Configure() returned error: %v", err)
	}

	err := store.DeleteObject(context.Background(), "change-sets", "1")
	if !errors.Is(err, common.ErrDeleteNotSupported) {
		t.Fatalf("DeleteObject() should return ErrDeleteNotSupported, got: %v", err)
	}
	if transport.calls != 0 {
		t.Fatalf("DeleteObject() performed %d network call(s), want 0", transport.calls)
	}
}

func TestConnectivityProbesAlwaysSucceed(t *testing.T) {
	store := newConfigured(t, "http://example.com")
	if !store.IsConnected() {
		t.Fatal("IsConnected() should report success")
	}
	if !store.IsAuthenticated() {
		t.Fatal("IsAuthenticated() should report success")
	}
}
