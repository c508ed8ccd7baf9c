// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package render executes a slide's render-operation program against
// a live terminal: it resolves deferred operations, computes
// alignment and wrapping geometry from the current window size, and
// drives the terminal backend. It also owns the code highlighter the
// builder uses, so formatted output and width bookkeeping stay in one
// place.
package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// CodeLine pairs one highlighted line with the original source line
// it was produced from. Formatted may contain ANSI styling escapes;
// Original never does. The builder needs both to compute a line's
// true visual width after highlighting injects zero-width artifacts.
type CodeLine struct {
	Formatted string
	Original  string
}

// Highlighter turns code blocks into styled terminal lines using a
// chroma style.
type Highlighter struct {
	style string
}

// NewHighlighter creates a highlighter using the named chroma style
// ("monokai", "github", ...). Unknown names fall back to chroma's
// default style.
func NewHighlighter(style string) *Highlighter {
	return &Highlighter{style: style}
}

// Highlight formats a code block, returning one CodeLine per input
// line. Highlighting failures (unknown language, chroma error) are
// not errors: the affected lines come back with Formatted equal to
// Original.
func (highlighter *Highlighter) Highlight(code, language string) []CodeLine {
	originals := strings.Split(strings.TrimSuffix(code, "\n"), "\n")

	formatted := originals
	if language != "" {
		var buffer strings.Builder
		err := quick.Highlight(&buffer, code, language, "terminal256", highlighter.style)
		if err == nil {
			formatted = strings.Split(strings.TrimSuffix(buffer.String(), "\n"), "\n")
		}
	}

	lines := make([]CodeLine, len(originals))
	for index, original := range originals {
		line := CodeLine{Formatted: original, Original: original}
		if index < len(formatted) {
			line.Formatted = formatted[index]
		}
		lines[index] = line
	}
	return lines
}
