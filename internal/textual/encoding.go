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

package textual

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// DetectEncoding sniffs base's byte-order mark, if any, and returns the
// encoding every output of the run should be decoded/re-encoded with.
// Encoding is detected once from the base file (spec.md §7: left and
// right are assumed to share it), never re-derived per side.
func DetectEncoding(base []byte) encoding.Encoding {
	switch {
	case hasBOM(base, 0xEF, 0xBB, 0xBF):
		return unicode.UTF8BOM
	case hasBOM(base, 0xFF, 0xFE):
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case hasBOM(base, 0xFE, 0xFF):
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	default:
		return unicode.UTF8
	}
}

func hasBOM(b []byte, sig ...byte) bool {
	if len(b) < len(sig) {
		return false
	}
	for i, s := range sig {
		if b[i] != s {
			return false
		}
	}
	return true
}

// Decode converts raw bytes in enc to a UTF-8 string for internal
// processing.
func Decode(raw []byte, enc encoding.Encoding) (string, error) {
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Encode converts a UTF-8 internal string back to enc's byte
// representation for output.
func Encode(s string, enc encoding.Encoding) ([]byte, error) {
	return enc.NewEncoder().Bytes([]byte(s))
}
