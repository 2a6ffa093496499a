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

// Package rest implements the reference remote object store: the minimal
// PUT/GET/LIST wire surface the HTTP backend speaks, backed by the
// in-memory backend. Listings are plain hyperlink lines, not a structured
// format, matching what the listing parser scrapes.
package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jeremyhahn/go-syncstore/pkg/adapters"
	"github.com/jeremyhahn/go-syncstore/pkg/memory"
)

// Handler handles the wire protocol routes.
type Handler struct {
	store  *memory.Memory
	logger adapters.Logger
}

// NewHandler creates a Handler over the given in-memory store.
func NewHandler(store *memory.Memory, logger adapters.Logger) *Handler {
	if logger == nil {
		logger = adapters.NewNoOpLogger()
	}
	return &Handler{store: store, logger: logger}
}

// PutObject stores the request body under collection/key.
// The body must be a JSON document.
func (h *Handler) PutObject(c *gin.Context) {
	collection := c.Param("collection")
	key := strings.TrimPrefix(c.Param("key"), "/")

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, "read body: %v", err)
		return
	}
	if !json.Valid(body) {
		c.String(http.StatusBadRequest, "body is not a JSON document")
		return
	}

	if err := h.store.StoreObject(c.Request.Context(), collection, key, json.RawMessage(body)); err != nil {
		c.String(http.StatusBadRequest, "store: %v", err)
		return
	}

	h.logger.Debug(c.Request.Context(), "object stored",
		adapters.Field{Key: "collection", Value: collection},
		adapters.Field{Key: "key", Value: key})
	c.Status(http.StatusCreated)
}

// GetObject returns the stored document under collection/key verbatim.
func (h *Handler) GetObject(c *gin.Context) {
	collection := c.Param("collection")
	key := strings.TrimPrefix(c.Param("key"), "/")

	body, ok := h.store.RawObject(collection, key)
	if !ok {
		c.String(http.StatusNotFound, "no such object: %s/%s", collection, key)
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}

// ListCollection returns the collection's contents as one hyperlink line
// per object. A collection nothing was ever stored in is a 404, which
// clients normalize to an empty listing.
func (h *Handler) ListCollection(c *gin.Context) {
	collection := c.Param("collection")

	if !h.store.HasCollection(collection) {
		c.String(http.StatusNotFound, "no such collection: %s", collection)
		return
	}

	keys, err := h.store.ListObjects(c.Request.Context(), collection)
	if err != nil {
		c.String(http.StatusInternalServerError, "list: %v", err)
		return
	}

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "<a href=%q>%s</a>\n", key, key)
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(b.String()))
}

// DeleteObject always rejects: the wire protocol defines no delete operation.
func (h *Handler) DeleteObject(c *gin.Context) {
	c.String(http.StatusNotImplemented, "delete is not supported")
}
