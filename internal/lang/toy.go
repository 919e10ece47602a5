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

package lang

import (
	"fmt"
	"strings"

	"github.com/codeforge-dev/semistruct-merge/internal/node"
)

// ToyParser implements Parser for a minimal flat declaration language:
//
//	field NAME = EXPR;
//	method NAME { BODY }
//	static { BODY }
//	instance { BODY }
//
// BODY may itself contain balanced braces. This is test/demo scaffolding
// standing in for a real target-language front end, not a claim that this
// repo parses any particular curly-brace language.
type ToyParser struct{}

func (ToyParser) Parse(alloc *node.Allocator, file, src string) (*node.NonTerminal, error) {
	root := node.NewNonTerminal(alloc, "File", file)
	s := &toyScanner{src: src, file: file, line: 1}

	staticCount, instanceCount := 0, 0
	for {
		prefix, ok := s.skipPrefix()
		if !ok {
			break
		}
		word, err := s.word()
		if err != nil {
			return nil, &ParseError{File: file, cause: err}
		}
		switch word {
		case "field":
			decl, err := s.parseField(alloc, prefix)
			if err != nil {
				return nil, &ParseError{File: file, cause: err}
			}
			root.AppendChild(decl)
		case "method":
			decl, err := s.parseMethod(alloc, prefix)
			if err != nil {
				return nil, &ParseError{File: file, cause: err}
			}
			root.AppendChild(decl)
		case "static":
			staticCount++
			decl, err := s.parseInitializer(alloc, prefix, "StaticInitializer", fmt.Sprintf("static#%d", staticCount))
			if err != nil {
				return nil, &ParseError{File: file, cause: err}
			}
			root.AppendChild(decl)
		case "instance":
			instanceCount++
			decl, err := s.parseInitializer(alloc, prefix, "InstanceInitializer", fmt.Sprintf("instance#%d", instanceCount))
			if err != nil {
				return nil, &ParseError{File: file, cause: err}
			}
			root.AppendChild(decl)
		default:
			return nil, &ParseError{File: file, cause: &TokenError{File: file, Line: s.line, Token: word}}
		}
	}
	return root, nil
}

type toyScanner struct {
	src  string
	pos  int
	line int
	file string
}

func (s *toyScanner) peek() (byte, bool) {
	if s.pos >= len(s.src) {
		return 0, false
	}
	return s.src[s.pos], true
}

func (s *toyScanner) advance() (byte, bool) {
	c, ok := s.peek()
	if !ok {
		return 0, false
	}
	s.pos++
	if c == '\n' {
		s.line++
	}
	return c, true
}

// skipPrefix consumes leading whitespace (the declaration's
// special-token-prefix) and reports whether another declaration follows.
func (s *toyScanner) skipPrefix() (string, bool) {
	start := s.pos
	for {
		c, ok := s.peek()
		if !ok || (c != ' ' && c != '\t' && c != '\n' && c != '\r') {
			break
		}
		s.advance()
	}
	return s.src[start:s.pos], s.pos < len(s.src)
}

func (s *toyScanner) word() (string, error) {
	start := s.pos
	for {
		c, ok := s.peek()
		if !ok || c == ' ' || c == '\t' || c == '\n' || c == '{' || c == '=' {
			break
		}
		s.advance()
	}
	if s.pos == start {
		tok := "<eof>"
		if c, ok := s.peek(); ok {
			tok = string(rune(c))
		}
		return "", &TokenError{File: s.file, Line: s.line, Token: tok}
	}
	return s.src[start:s.pos], nil
}

func (s *toyScanner) skipSpaces() {
	for {
		c, ok := s.peek()
		if !ok || (c != ' ' && c != '\t' && c != '\n' && c != '\r') {
			return
		}
		s.advance()
	}
}

func (s *toyScanner) expect(c byte) error {
	got, ok := s.advance()
	if !ok || got != c {
		return &TokenError{File: s.file, Line: s.line, Token: string(got)}
	}
	return nil
}

func (s *toyScanner) parseField(alloc *node.Allocator, prefix string) (*node.Terminal, error) {
	s.skipSpaces()
	name, err := s.word()
	if err != nil {
		return nil, err
	}
	s.skipSpaces()
	if err := s.expect('='); err != nil {
		return nil, err
	}
	s.skipSpaces()
	start := s.pos
	for {
		c, ok := s.peek()
		if !ok {
			return nil, &TokenError{File: s.file, Line: s.line, Token: "<eof>"}
		}
		if c == ';' {
			break
		}
		s.advance()
	}
	body := s.src[start:s.pos]
	s.advance() // consume ';'
	return node.NewTerminal(alloc, "Field", name, body, prefix, node.ConflictMerge), nil
}

func (s *toyScanner) parseMethod(alloc *node.Allocator, prefix string) (*node.NonTerminal, error) {
	s.skipSpaces()
	name, err := s.word()
	if err != nil {
		return nil, err
	}
	return s.parseInitializer(alloc, prefix, "Method", name)
}

// parseInitializer reads a "{ BALANCED BODY }" block and wraps it as a
// non-terminal declaration with one content-merging body terminal child.
func (s *toyScanner) parseInitializer(alloc *node.Allocator, prefix, typ, name string) (*node.NonTerminal, error) {
	s.skipSpaces()
	if err := s.expect('{'); err != nil {
		return nil, err
	}
	body, err := s.readBalanced()
	if err != nil {
		return nil, err
	}
	decl := node.NewNonTerminal(alloc, typ, name)
	decl.AppendChild(node.NewTerminal(alloc, typ+"Body", name, body, prefix, node.ConflictMerge))
	return decl, nil
}

// readBalanced reads up to (and consumes) the '}' matching the '{'
// already consumed by the caller, tolerating nested braces in the body.
func (s *toyScanner) readBalanced() (string, error) {
	start := s.pos
	depth := 1
	for {
		c, ok := s.advance()
		if !ok {
			return "", &TokenError{File: s.file, Line: s.line, Token: "<eof>"}
		}
		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s.src[start : s.pos-1], nil
			}
		}
	}
}

// ToyPrettyPrinter serializes a tree parsed by ToyParser back into its
// source form.
type ToyPrettyPrinter struct{}

func (ToyPrettyPrinter) Print(root *node.NonTerminal) (string, error) {
	var b strings.Builder
	for _, c := range root.Children() {
		switch n := c.(type) {
		case *node.Terminal:
			b.WriteString(n.SpecialTokenPrefix())
			fmt.Fprintf(&b, "field %s = %s;", n.Name(), n.Body())
		case *node.NonTerminal:
			printDecl(&b, n)
		}
	}
	return b.String(), nil
}

func printDecl(b *strings.Builder, n *node.NonTerminal) {
	keyword := declKeyword(n.Type())
	var prefix, body string
	if len(n.Children()) > 0 {
		if t, ok := n.Children()[0].(*node.Terminal); ok {
			prefix, body = t.SpecialTokenPrefix(), t.Body()
		}
	}
	b.WriteString(prefix)
	if keyword == "method" {
		fmt.Fprintf(b, "method %s {%s}", n.Name(), body)
		return
	}
	fmt.Fprintf(b, "%s {%s}", keyword, body)
}

func declKeyword(typ string) string {
	switch typ {
	case "Method":
		return "method"
	case "StaticInitializer":
		return "static"
	case "InstanceInitializer":
		return "instance"
	default:
		return strings.ToLower(typ)
	}
}
