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
	"regexp"
	"strings"
)

// hrefPattern matches the hyperlink token carrying an object key on one
// listing line.
var hrefPattern = regexp.MustCompile(`href="([^"]*)"`)

// ParseListing extracts object keys from a raw directory-listing body.
// The body is split into lines; each line contributes at most one key,
// taken from its first href token. Lines without a token are discarded.
// Key order follows line order and duplicates are kept, echoing exactly
// what the server returned.
func ParseListing(body string) []string {
	keys := []string{}
	for _, line := range strings.Split(body, "\n") {
		m := hrefPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		keys = append(keys, m[1])
	}
	return keys
}
