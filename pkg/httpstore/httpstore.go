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

// Package httpstore implements the remote object store backend over a
// minimal HTTP PUT/GET protocol against a path-addressed server. The
// server offers no structured listing format; collection contents are
// scraped from hyperlink tokens in the listing body.
package httpstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jeremyhahn/go-syncstore/pkg/adapters"
	"github.com/jeremyhahn/go-syncstore/pkg/common"
)

const requestIDHeader = "X-Request-ID"

// HTTPStore is a backend that stores objects on a remote server speaking
// the minimal PUT/GET/LIST protocol. Deletion has no wire operation and
// always fails with common.ErrDeleteNotSupported.
type HTTPStore struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	logger  adapters.Logger
}

// Option customizes an HTTPStore.
type Option func(*HTTPStore)

// WithHTTPClient sets the HTTP client used for all requests.
func WithHTTPClient(client *http.Client) Option {
	return func(s *HTTPStore) {
		if client != nil {
			s.client = client
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger adapters.Logger) Option {
	return func(s *HTTPStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a new HTTPStore backend. Configure must be called before use.
func New(opts ...Option) *HTTPStore {
	s := &HTTPStore{
		client: http.DefaultClient,
		logger: adapters.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Configure sets up the backend.
// Required settings:
//   - url: base URL of the remote store (e.g., "https://backup.example.com")
//
// Optional settings:
//   - rate_limit: maximum outbound requests per second (float, 0 = unlimited)
func (s *HTTPStore) Configure(settings map[string]string) error {
	base := settings["url"]
	if base == "" {
		return common.ErrURLNotSet
	}
	s.baseURL = strings.TrimRight(base, "/")

	if raw := settings["rate_limit"]; raw != "" {
		rps, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid rate_limit %q: %w", raw, err)
		}
		if rps > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}

	return nil
}

// StoreObject serializes v as pretty-printed JSON and PUTs it under
// collection/key. Transport failures surface to the caller without retry;
// retry policy belongs to the orchestrator, not this layer.
func (s *HTTPStore) StoreObject(ctx context.Context, collection, key string, v any) error {
	if err := common.ValidateCollection(collection); err != nil {
		return err
	}
	if err := common.ValidateKey(key); err != nil {
		return err
	}

	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize %s/%s: %w", collection, key, err)
	}

	req, err := s.newRequest(ctx, http.MethodPut, s.objectURL(collection, key), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		return s.responseError("store", collection, key, resp)
	}

	s.logger.Debug(ctx, "object stored",
		adapters.Field{Key: "collection", Value: collection},
		adapters.Field{Key: "key", Value: key},
		adapters.Field{Key: "bytes", Value: len(body)})
	return nil
}

// RetrieveObject GETs the object under collection/key and decodes the JSON
// body into out.
func (s *HTTPStore) RetrieveObject(ctx context.Context, collection, key string, out any) error {
	if err := common.ValidateCollection(collection); err != nil {
		return err
	}
	if err := common.ValidateKey(key); err != nil {
		return err
	}

	req, err := s.newRequest(ctx, http.MethodGet, s.objectURL(collection, key), nil)
	if err != nil {
		return err
	}

	resp, err := s.do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s/%s", common.ErrObjectNotFound, collection, key)
	}
	if !isSuccess(resp.StatusCode) {
		return s.responseError("retrieve", collection, key, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parse %s/%s: %w", collection, key, err)
	}
	return nil
}

// ListObjects GETs the collection's directory listing and scrapes object
// keys from it. A collection the server reports as not found yields an
// empty slice; any other non-success status is an error carrying the
// response body as diagnostic text.
func (s *HTTPStore) ListObjects(ctx context.Context, collection string) ([]string, error) {
	if err := common.ValidateCollection(collection); err != nil {
		return nil, err
	}

	req, err := s.newRequest(ctx, http.MethodGet, s.baseURL+"/"+url.PathEscape(collection), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return []string{}, nil
	}
	if !isSuccess(resp.StatusCode) {
		return nil, s.responseError("list", collection, "", resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read listing for %s: %w", collection, err)
	}

	return ParseListing(string(body)), nil
}

// DeleteObject always fails: the wire protocol defines no delete
// operation. No network call is attempted.
func (s *HTTPStore) DeleteObject(ctx context.Context, collection, key string) error {
	return fmt.Errorf("%w: delete %s/%s", common.ErrDeleteNotSupported, collection, key)
}

// IsConnected reports connectivity. This backend performs no real
// negotiation and always reports success; other backends may probe.
func (s *HTTPStore) IsConnected() bool {
	return true
}

// IsAuthenticated reports identity. This backend performs no real
// negotiation and always reports success.
func (s *HTTPStore) IsAuthenticated() bool {
	return true
}

// objectURL builds the object address. The key is percent-encoded twice:
// it may itself already contain encoded separators and must survive being
// placed in a path segment.
func (s *HTTPStore) objectURL(collection, key string) string {
	return s.baseURL + "/" + url.PathEscape(collection) + "/" + url.PathEscape(url.PathEscape(key))
}

func (s *HTTPStore) newRequest(ctx context.Context, method, target string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(requestIDHeader, uuid.NewString())
	return req, nil
}

func (s *HTTPStore) do(req *http.Request) (*http.Response, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}
	return s.client.Do(req)
}

func (s *HTTPStore) responseError(op, collection, key string, resp *http.Response) error {
	diag, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	target := collection
	if key != "" {
		target += "/" + key
	}
	return fmt.Errorf("%s %s: server returned %s: %s", op, target, resp.Status, string(diag))
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
