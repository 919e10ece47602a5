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

// Package match implements structural compatibility between nodes: the
// sole criterion ("same type, same name") the whole merge pipeline uses
// to decide that a child in one tree denotes the same declaration as a
// child in another.
package match

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/codeforge-dev/semistruct-merge/internal/node"
)

type cacheKey struct {
	parent node.Handle
	typ    string
	name   string
}

// cacheSize bounds the memoization cache; it is a perf nicety, not a
// correctness requirement, so an eviction under this size just costs a
// repeat linear scan.
const cacheSize = 4096

// Matcher memoizes GetCompatibleChild lookups within a single merge run,
// keyed by (parent handle, query type, query name): a repeated probe with
// the same key is answered from the cache instead of a linear scan, and a
// cache miss falls back to the documented linear-scan semantics.
type Matcher struct {
	cache *lru.Cache[cacheKey, node.Node]
}

// New returns a Matcher with a fixed-size LRU cache.
func New() *Matcher {
	c, err := lru.New[cacheKey, node.Node](cacheSize)
	if err != nil {
		// Only returns an error for a non-positive size, which cacheSize
		// never is.
		panic(err)
	}
	return &Matcher{cache: c}
}

// Compatible reports whether a and b share type and name.
func Compatible(a, b node.Node) bool {
	return node.Compatible(a, b)
}

// GetCompatibleChild returns the first child of parent compatible with
// query, or nil. Results are cached per (parent, query type, query name);
// a cache hit returning nil is a valid cached miss.
func (m *Matcher) GetCompatibleChild(parent *node.NonTerminal, query node.Node) node.Node {
	key := cacheKey{parent: parent.Handle(), typ: query.Type(), name: query.Name()}
	if v, ok := m.cache.Get(key); ok {
		return v
	}
	result := parent.GetCompatibleChild(query)
	m.cache.Add(key, result)
	return result
}
