// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package markdown

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"
)

// Width returns the display width of the concatenated chunks, in
// terminal columns. Double-width CJK characters count as two columns;
// this is the measurement all alignment math uses, never byte or
// rune counts.
func (text *Text) Width() int {
	width := 0
	for _, chunk := range text.Chunks {
		width += lipgloss.Width(chunk.Text)
	}
	return width
}

// WeightedText is a styled chunk with its display width computed once
// at build time, so render-time alignment never re-measures.
type WeightedText struct {
	Chunk StyledText
	width int
}

// Weighted wraps a chunk with its measured display width.
func Weighted(chunk StyledText) WeightedText {
	return WeightedText{Chunk: chunk, width: lipgloss.Width(chunk.Text)}
}

// Width returns the chunk's display width in terminal columns.
func (text WeightedText) Width() int {
	return text.width
}

// WeightedLine is a rendering-ready text line: ordered weighted
// chunks plus the line's total display width.
type WeightedLine struct {
	Chunks []WeightedText
	width  int
}

// NewWeightedLine measures chunks into a line.
func NewWeightedLine(chunks []StyledText) WeightedLine {
	line := WeightedLine{}
	for _, chunk := range chunks {
		weighted := Weighted(chunk)
		line.Chunks = append(line.Chunks, weighted)
		line.width += weighted.Width()
	}
	return line
}

// Width returns the line's total display width.
func (line WeightedLine) Width() int {
	return line.width
}

// Split breaks the line into sub-lines of at most maxWidth display
// columns. Chunks are split at grapheme cluster boundaries, so a
// double-width character is never cut in half and combining marks
// stay attached to their base. A chunk wider than maxWidth continues
// onto as many sub-lines as it needs; styles are preserved across
// the cut.
func (line WeightedLine) Split(maxWidth int) []WeightedLine {
	if maxWidth <= 0 || line.width <= maxWidth {
		return []WeightedLine{line}
	}

	var lines []WeightedLine
	var current WeightedLine
	flush := func() {
		if len(current.Chunks) > 0 {
			lines = append(lines, current)
			current = WeightedLine{}
		}
	}

	for _, chunk := range line.Chunks {
		if current.width+chunk.Width() <= maxWidth {
			current.Chunks = append(current.Chunks, chunk)
			current.width += chunk.Width()
			continue
		}

		// The chunk does not fit whole: walk its grapheme clusters
		// and emit width-bounded pieces.
		var piece string
		pieceWidth := 0
		graphemes := uniseg.NewGraphemes(chunk.Chunk.Text)
		for graphemes.Next() {
			clusterWidth := graphemes.Width()
			if current.width+pieceWidth+clusterWidth > maxWidth {
				if piece != "" {
					current.Chunks = append(current.Chunks, WeightedText{
						Chunk: StyledText{Text: piece, Style: chunk.Chunk.Style},
						width: pieceWidth,
					})
					current.width += pieceWidth
					piece = ""
					pieceWidth = 0
				}
				flush()
			}
			piece += graphemes.Str()
			pieceWidth += clusterWidth
		}
		if piece != "" {
			current.Chunks = append(current.Chunks, WeightedText{
				Chunk: StyledText{Text: piece, Style: chunk.Chunk.Style},
				width: pieceWidth,
			})
			current.width += pieceWidth
		}
	}
	flush()

	if len(lines) == 0 {
		return []WeightedLine{{}}
	}
	return lines
}
