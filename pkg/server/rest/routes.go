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

import "github.com/gin-gonic/gin"

// SetupRoutes configures the wire protocol routes.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/:collection", handler.ListCollection)
	router.PUT("/:collection/*key", handler.PutObject)
	router.GET("/:collection/*key", handler.GetObject)
	router.DELETE("/:collection/*key", handler.DeleteObject)
}
