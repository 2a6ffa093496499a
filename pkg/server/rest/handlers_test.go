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

package rest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-syncstore/pkg/memory"
)

func newTestServer(t *testing.T) (*httptest.Server, *memory.Memory) {
	t.Helper()
	store := memory.New()
	server := NewServer(Config{Store: store})
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts, store
}

func doRequest(t *testing.T, method, target, body string) *http.Response {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, target, reader)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	var b strings.Builder
	buf := make([]byte, 4096)
	for {
		n, err := resp.Body.Read(buf)
		b.Write(buf[:n])
		if err != nil {
			break
		}
	}
	return b.String()
}

func TestPutAndGetObject(t *testing.T) {
	ts, _ := newTestServer(t)

	doc := `{"version": 1, "changes": []}`
	resp := doRequest(t, http.MethodPut, ts.URL+"/change-sets/1724380000000", doc)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, http.MethodGet, ts.URL+"/change-sets/1724380000000", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), `"version": 1`)
}

func TestPutObjectRejectsInvalidJSON(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doRequest(t, http.MethodPut, ts.URL+"/change-sets/1", "not json at all")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetObjectNotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doRequest(t, http.MethodGet, ts.URL+"/change-sets/missing", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListCollectionReturnsHyperlinkLines(t *testing.T) {
	ts, _ := newTestServer(t)

	for _, key := range []string{"1234", "5678"} {
		resp := doRequest(t, http.MethodPut, ts.URL+"/change-sets/"+key, `{}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := doRequest(t, http.MethodGet, ts.URL+"/change-sets", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := readBody(t, resp)
	assert.Contains(t, body, `<a href="1234">1234</a>`)
	assert.Contains(t, body, `<a href="5678">5678</a>`)
}

func TestListUnknownCollectionIs404(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doRequest(t, http.MethodGet, ts.URL+"/never-written", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteIsNotImplemented(t *testing.T) {
	ts, store := newTestServer(t)

	resp := doRequest(t, http.MethodPut, ts.URL+"/change-sets/1", `{}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doRequest(t, http.MethodDelete, ts.URL+"/change-sets/1", "")
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
	assert.Equal(t, 1, store.Count(), "delete must not remove anything")
}
