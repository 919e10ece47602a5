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

package node

// Terminal is a leaf node carrying a raw source fragment, e.g. a method
// body or a field initializer.
type Terminal struct {
	handle             Handle
	typ                string
	name               string
	body               string
	specialTokenPrefix string
	mechanism          MergingMechanism
	index              Index
	parent             *NonTerminal
}

// NewTerminal constructs a fresh terminal with IndexUnset and no parent.
func NewTerminal(alloc *Allocator, typ, name, body, specialTokenPrefix string, mechanism MergingMechanism) *Terminal {
	return &Terminal{
		handle:             alloc.Next(),
		typ:                typ,
		name:               name,
		body:               body,
		specialTokenPrefix: specialTokenPrefix,
		mechanism:          mechanism,
		index:              IndexUnset,
	}
}

func (t *Terminal) node() {}

func (t *Terminal) Handle() Handle        { return t.handle }
func (t *Terminal) Type() string          { return t.typ }
func (t *Terminal) Name() string          { return t.name }
func (t *Terminal) Index() Index          { return t.index }
func (t *Terminal) SetIndex(idx Index)    { t.index = idx }
func (t *Terminal) Parent() *NonTerminal  { return t.parent }
func (t *Terminal) SetParent(p *NonTerminal) { t.parent = p }

func (t *Terminal) Mechanism() MergingMechanism { return t.mechanism }

func (t *Terminal) Body() string        { return t.body }
func (t *Terminal) SetBody(body string) { t.body = body }

func (t *Terminal) SpecialTokenPrefix() string     { return t.specialTokenPrefix }
func (t *Terminal) SetSpecialTokenPrefix(s string) { t.specialTokenPrefix = s }

// ShallowClone preserves type/name/mechanism but drops body and prefix,
// stamps a fresh handle, resets index to IndexUnset and parent to nil.
func (t *Terminal) ShallowClone(alloc *Allocator) *Terminal {
	return &Terminal{
		handle:    alloc.Next(),
		typ:       t.typ,
		name:      t.name,
		mechanism: t.mechanism,
		index:     IndexUnset,
	}
}

// DeepClone copies body and prefix along with the shallow attributes.
// The clone's index is reset; callers that need to preserve index
// (e.g. the superimposer when it carries an unmatched child over) copy it
// explicitly.
func (t *Terminal) DeepClone(alloc *Allocator) *Terminal {
	c := t.ShallowClone(alloc)
	c.body = t.body
	c.specialTokenPrefix = t.specialTokenPrefix
	return c
}
