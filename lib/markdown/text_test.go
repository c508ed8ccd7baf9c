// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package markdown

import (
	"strings"
	"testing"
)

func TestTextWidthCountsDisplayColumns(t *testing.T) {
	cases := []struct {
		text  string
		width int
	}{
		{"", 0},
		{"abc", 3},
		{"苹果", 4},
		{"a苹b", 4},
		{"café", 4},
	}
	for _, testCase := range cases {
		text := PlainText(testCase.text)
		if width := text.Width(); width != testCase.width {
			t.Errorf("Width(%q) = %d, want %d", testCase.text, width, testCase.width)
		}
	}
}

func TestWeightedLineWidthSumsChunks(t *testing.T) {
	line := NewWeightedLine([]StyledText{
		Plain("ab"),
		Styled("苹果", TextStyle{Bold: true}),
	})
	if line.Width() != 6 {
		t.Errorf("line width %d, want 6", line.Width())
	}
}

func TestSplitShortLineUnchanged(t *testing.T) {
	line := NewWeightedLine([]StyledText{Plain("short")})
	parts := line.Split(80)
	if len(parts) != 1 || parts[0].Width() != 5 {
		t.Errorf("split of fitting line: %v", parts)
	}
}

func TestSplitBreaksWideChunk(t *testing.T) {
	line := NewWeightedLine([]StyledText{Styled(strings.Repeat("x", 25), TextStyle{Italic: true})})
	parts := line.Split(10)
	if len(parts) != 3 {
		t.Fatalf("expected 3 sub-lines, got %d", len(parts))
	}
	widths := []int{parts[0].Width(), parts[1].Width(), parts[2].Width()}
	if widths[0] != 10 || widths[1] != 10 || widths[2] != 5 {
		t.Errorf("sub-line widths %v", widths)
	}
	for index, part := range parts {
		for _, chunk := range part.Chunks {
			if !chunk.Chunk.Style.Italic {
				t.Errorf("sub-line %d lost its style", index)
			}
		}
	}
}

func TestSplitNeverCutsDoubleWidthCharacter(t *testing.T) {
	// Five double-width characters into 5-column lines: exactly two
	// fit per line. A naive byte or rune split would land mid-glyph.
	line := NewWeightedLine([]StyledText{Plain("苹苹苹苹苹")})
	parts := line.Split(5)
	if len(parts) != 3 {
		t.Fatalf("expected 3 sub-lines, got %d", len(parts))
	}
	for index, part := range parts[:2] {
		if part.Width() != 4 {
			t.Errorf("sub-line %d width %d, want 4", index, part.Width())
		}
	}
	if parts[2].Width() != 2 {
		t.Errorf("last sub-line width %d, want 2", parts[2].Width())
	}
}

func TestSplitPreservesChunkBoundaries(t *testing.T) {
	line := NewWeightedLine([]StyledText{
		Styled("aaaa", TextStyle{Bold: true}),
		Plain("bbbb"),
	})
	parts := line.Split(6)
	if len(parts) != 2 {
		t.Fatalf("expected 2 sub-lines, got %d", len(parts))
	}
	first := parts[0]
	if len(first.Chunks) != 2 {
		t.Fatalf("first sub-line has %d chunks", len(first.Chunks))
	}
	if !first.Chunks[0].Chunk.Style.Bold || first.Chunks[1].Chunk.Style.Bold {
		t.Error("styles bled across chunk boundary")
	}
	if first.Chunks[1].Chunk.Text != "bb" {
		t.Errorf("second chunk split as %q", first.Chunks[1].Chunk.Text)
	}
}

func TestApplyStyleMergesOntoChunks(t *testing.T) {
	text := PlainText("plain")
	color := Color("3")
	text.ApplyStyle(TextStyle{Bold: true, Colors: Colors{Foreground: &color}})
	chunk := text.Chunks[0]
	if !chunk.Style.Bold {
		t.Error("bold not applied")
	}
	if chunk.Style.Colors.Foreground == nil || *chunk.Style.Colors.Foreground != "3" {
		t.Error("color not applied")
	}
}

func TestPrepend(t *testing.T) {
	text := PlainText("body")
	text.Prepend(Plain("head "))
	if joined := chunkText(text); joined != "head body" {
		t.Errorf("prepended text %q", joined)
	}
}
