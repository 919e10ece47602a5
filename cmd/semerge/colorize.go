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

package main

import (
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
)

const markerWidth = 60

var (
	mineColor  = color.New(color.FgRed, color.Bold)
	baseColor  = color.New(color.FgYellow)
	sepColor   = color.New(color.FgCyan)
	yoursColor = color.New(color.FgGreen, color.Bold)
)

// colorizeIfTerminal highlights conflict-marker lines when the output is
// headed to an interactive terminal rather than a file or a pipe — a
// redirected `semerge a b c > out.txt` must stay byte-for-byte plain.
func colorizeIfTerminal(s, outPath string, noColor bool) string {
	if noColor || outPath != "" || !isatty.IsTerminal(os.Stdout.Fd()) {
		return s
	}
	return colorizeConflicts(s)
}

func colorizeConflicts(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "<<<<<<< MINE"):
			lines[i] = mineColor.Sprint(padMarker(line))
		case strings.HasPrefix(line, "||||||| BASE"):
			lines[i] = baseColor.Sprint(padMarker(line))
		case strings.HasPrefix(line, "======="):
			lines[i] = sepColor.Sprint(padMarker(line))
		case strings.HasPrefix(line, ">>>>>>> YOURS"):
			lines[i] = yoursColor.Sprint(padMarker(line))
		}
	}
	return strings.Join(lines, "\n")
}

// padMarker right-pads a marker line with '-' to a fixed display width so
// conflict banners line up regardless of how wide the marker's own text
// is, accounting for double-width runes in the unlikely case a marker
// carries one (e.g. a branch name slug with CJK characters appended).
func padMarker(line string) string {
	w := runewidth.StringWidth(line)
	if w >= markerWidth {
		return line
	}
	return line + strings.Repeat("-", markerWidth-w)
}
