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

package marker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaggedRequiresExactPrefix(t *testing.T) {
	assert.True(t, Tagged(SemanticMarker+"left"+Separator+"base"+Separator+"right"))
	assert.False(t, Tagged("left"+Separator+"base"+Separator+"right"))
	assert.False(t, Tagged(""))
}

func TestSentinelsAreDistinct(t *testing.T) {
	assert.NotEqual(t, SemanticMarker, Separator)
}
