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

package semerge

import (
	"testing"

	"github.com/andreyvit/diff"
)

// assertRenderedEqual compares two multi-line merge outputs and, on
// mismatch, fails with a line-level diff instead of testify's default
// full-string dump, mirroring the teacher's own serialized-tree test
// helpers.
func assertRenderedEqual(t *testing.T, want, got string) {
	t.Helper()
	if want == got {
		return
	}
	t.Errorf("rendered output mismatch:\n%s", diff.LineDiff(want, got))
}
