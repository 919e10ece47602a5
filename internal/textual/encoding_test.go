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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func TestDetectEncodingDefaultsToUTF8(t *testing.T) {
	enc := DetectEncoding([]byte("package main\n"))
	assert.Equal(t, unicode.UTF8, enc)
}

func TestDetectEncodingRecognizesUTF8BOM(t *testing.T) {
	enc := DetectEncoding([]byte{0xEF, 0xBB, 0xBF, 'a'})
	assert.Equal(t, unicode.UTF8BOM, enc)
}

func TestDetectEncodingRecognizesUTF16LittleEndianBOM(t *testing.T) {
	enc := DetectEncoding([]byte{0xFF, 0xFE, 'a', 0})
	assert.Equal(t, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), enc)
}

func TestDetectEncodingRecognizesUTF16BigEndianBOM(t *testing.T) {
	enc := DetectEncoding([]byte{0xFE, 0xFF, 0, 'a'})
	assert.Equal(t, unicode.UTF16(unicode.BigEndian, unicode.UseBOM), enc)
}

func TestDetectEncodingShortInputNoPanic(t *testing.T) {
	enc := DetectEncoding([]byte{0xFF})
	assert.Equal(t, unicode.UTF8, enc)
}

func TestEncodeDecodeUTF8RoundTrip(t *testing.T) {
	enc := unicode.UTF8
	raw, err := Encode("hello, world", enc)
	require.NoError(t, err)
	back, err := Decode(raw, enc)
	require.NoError(t, err)
	assert.Equal(t, "hello, world", back)
}

func TestEncodeDecodeUTF16RoundTrip(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	raw, err := Encode("a\nb\n", enc)
	require.NoError(t, err)
	back, err := Decode(raw, enc)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", back)
}
