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

package backup

import "github.com/jeremyhahn/go-syncstore/pkg/common"

// ShouldStoreImages decides whether an image-set document should be
// written for a batch. It is a pure gating decision: true iff blob storage
// is enabled and at least one image was extracted.
func ShouldStoreImages(images []common.ExtractedImage, storeBlobs bool) bool {
	return storeBlobs && len(images) > 0
}
