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
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jeremyhahn/go-syncstore/pkg/adapters"
	"github.com/jeremyhahn/go-syncstore/pkg/memory"
)

// Config contains server configuration.
type Config struct {
	// Address is the listen address (e.g., ":8080").
	Address string

	// Store is the backing object store. A nil store gets a fresh one.
	Store *memory.Memory

	// Logger is the structured logger. Defaults to a no-op logger.
	Logger adapters.Logger
}

// Server is the reference remote object store server.
type Server struct {
	httpServer *http.Server
	logger     adapters.Logger
}

// NewServer creates a Server from the given configuration.
func NewServer(config Config) *Server {
	if config.Store == nil {
		config.Store = memory.New()
	}
	if config.Logger == nil {
		config.Logger = adapters.NewNoOpLogger()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	SetupRoutes(router, NewHandler(config.Store, config.Logger))

	return &Server{
		httpServer: &http.Server{
			Addr:              config.Address,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: config.Logger,
	}
}

// Start begins serving. It blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info(context.Background(), "server listening",
		adapters.Field{Key: "address", Value: s.httpServer.Addr})
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the underlying HTTP handler. Useful for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
