// Copyright 2026 The Semistruct Merge Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package marker holds the sentinel strings the superimposer splices into
// a terminal's body to tag its three (left, base, right) contributions
// for the content merger to split back apart. Both strings use NUL-led
// control sequences that cannot appear in any legally parsed source file.
package marker

import "strings"

const (
	// SemanticMarker prefixes a tagged body exactly once.
	SemanticMarker = "\x00SEMANTIC-MERGE-MARKER\x00"
	// Separator delimits the left/base/right parts of a tagged body.
	Separator = "\x00SEMANTIC-MERGE-SEP\x00"
)

// Tagged reports whether body already carries the semantic marker, i.e.
// it was produced by a prior superimposition pass.
func Tagged(body string) bool {
	return strings.HasPrefix(body, SemanticMarker)
}
