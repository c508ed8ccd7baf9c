// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/deck/lib/markdown"
	"github.com/bureau-foundation/deck/lib/presentation"
	"github.com/bureau-foundation/deck/lib/theme"
)

func TestStartColumnLeft(t *testing.T) {
	start, available := startColumn(theme.LeftAligned(4), 10, 80)
	if start != 4 || available != 76 {
		t.Errorf("start=%d available=%d", start, available)
	}
}

func TestStartColumnRight(t *testing.T) {
	start, available := startColumn(theme.RightAligned(2), 10, 80)
	if start != 68 || available != 78 {
		t.Errorf("start=%d available=%d", start, available)
	}
}

func TestStartColumnRightClampsAtZero(t *testing.T) {
	start, _ := startColumn(theme.RightAligned(0), 100, 80)
	if start != 0 {
		t.Errorf("start=%d", start)
	}
}

func TestStartColumnCenter(t *testing.T) {
	start, available := startColumn(theme.Centered(0, 0), 10, 80)
	if start != 35 || available != 80 {
		t.Errorf("start=%d available=%d", start, available)
	}
}

func TestStartColumnCenterFallsBackWhenNarrow(t *testing.T) {
	// 40 columns cannot hold a 50-column minimum plus margins, so the
	// alignment degrades to left with the minimum margin.
	start, available := startColumn(theme.Centered(50, 3), 10, 40)
	if start != 3 || available != 37 {
		t.Errorf("start=%d available=%d", start, available)
	}
}

func newTestOperator(buffer *bytes.Buffer, rows, columns, windowRows int) *Operator {
	terminal := NewTerminal(buffer)
	slideSize := presentation.WindowSize{Rows: rows, Columns: columns}
	return NewOperator(terminal, slideSize, windowRows)
}

func renderAll(t *testing.T, operator *Operator, operations ...presentation.RenderOperation) {
	t.Helper()
	for _, operation := range operations {
		if err := operator.Render(operation); err != nil {
			t.Fatalf("render failed: %v", err)
		}
	}
	if err := operator.terminal.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}
}

func TestRenderTextLinePositionsCursor(t *testing.T) {
	var buffer bytes.Buffer
	operator := newTestOperator(&buffer, 21, 80, 24)

	line := markdown.NewWeightedLine([]markdown.StyledText{markdown.Plain("hi")})
	renderAll(t, operator,
		presentation.RenderLineBreak{},
		presentation.RenderLineBreak{},
		presentation.RenderTextLine{Line: line, Alignment: theme.LeftAligned(5)},
	)

	output := buffer.String()
	// Two line breaks put the line on row 2; zero-based (2,5) is the
	// one-based CSI position (3,6).
	if !strings.Contains(output, "\x1b[3;6H") {
		t.Errorf("cursor position missing from %q", output)
	}
	if !strings.Contains(ansi.Strip(output), "hi") {
		t.Errorf("text missing from %q", output)
	}
}

func TestRenderTextLineWrapsAndAdvancesRows(t *testing.T) {
	var buffer bytes.Buffer
	operator := newTestOperator(&buffer, 21, 10, 24)

	line := markdown.NewWeightedLine([]markdown.StyledText{markdown.Plain(strings.Repeat("x", 25))})
	renderAll(t, operator,
		presentation.RenderTextLine{Line: line, Alignment: theme.LeftAligned(0)},
	)

	output := buffer.String()
	// 25 columns into a 10-column window: three sub-lines on rows
	// 0, 1, and 2.
	for _, position := range []string{"\x1b[1;1H", "\x1b[2;1H", "\x1b[3;1H"} {
		if !strings.Contains(output, position) {
			t.Errorf("missing cursor position %q in %q", position, output)
		}
	}
	if stripped := ansi.Strip(output); strings.Count(stripped, "x") != 25 {
		t.Errorf("wrapped text lost characters: %q", stripped)
	}
}

func TestRenderPreformattedLineAlignsByBlockWidth(t *testing.T) {
	var buffer bytes.Buffer
	operator := newTestOperator(&buffer, 21, 80, 24)

	// A short line in a 20-wide block centers by the block width:
	// start = (80-20)/2 = 30, one-based column 31. The line's own
	// width must not affect placement.
	renderAll(t, operator, presentation.RenderPreformattedLine{
		Text:             "short",
		UnformattedWidth: 5,
		BlockWidth:       20,
		Alignment:        theme.Centered(0, 0),
	})

	if !strings.Contains(buffer.String(), "\x1b[1;31H") {
		t.Errorf("block not centered: %q", buffer.String())
	}
}

func TestRenderPreformattedLineTruncatesOverflow(t *testing.T) {
	var buffer bytes.Buffer
	operator := newTestOperator(&buffer, 21, 10, 24)

	renderAll(t, operator, presentation.RenderPreformattedLine{
		Text:             strings.Repeat("y", 30),
		UnformattedWidth: 30,
		BlockWidth:       30,
		Alignment:        theme.LeftAligned(0),
	})

	if count := strings.Count(ansi.Strip(buffer.String()), "y"); count != 10 {
		t.Errorf("expected truncation to 10 columns, got %d", count)
	}
}

func TestRenderSeparatorSpansWindow(t *testing.T) {
	var buffer bytes.Buffer
	operator := newTestOperator(&buffer, 21, 12, 24)

	renderAll(t, operator, presentation.RenderSeparator{})

	if count := strings.Count(ansi.Strip(buffer.String()), "─"); count != 12 {
		t.Errorf("separator spans %d columns, want 12", count)
	}
}

func TestJumpOperations(t *testing.T) {
	var buffer bytes.Buffer
	operator := newTestOperator(&buffer, 21, 80, 24)

	line := markdown.NewWeightedLine([]markdown.StyledText{markdown.Plain("z")})
	renderAll(t, operator,
		presentation.JumpToVerticalCenter{},
		presentation.RenderTextLine{Line: line, Alignment: theme.LeftAligned(0)},
		presentation.JumpToSlideBottom{},
		presentation.RenderTextLine{Line: line, Alignment: theme.LeftAligned(0)},
		presentation.JumpToWindowBottom{},
		presentation.RenderTextLine{Line: line, Alignment: theme.LeftAligned(0)},
	)

	output := buffer.String()
	// Center of 21 slide rows is row 10 (one-based 11); slide bottom
	// is row 20 (21); window bottom row 23 (24).
	for _, position := range []string{"\x1b[11;1H", "\x1b[21;1H", "\x1b[24;1H"} {
		if !strings.Contains(output, position) {
			t.Errorf("missing cursor position %q in %q", position, output)
		}
	}
}

type staticOperations struct {
	operations []presentation.RenderOperation
}

func (s *staticOperations) Operations(presentation.WindowSize) []presentation.RenderOperation {
	return s.operations
}

func TestRenderDynamicResolvesInPlace(t *testing.T) {
	var buffer bytes.Buffer
	operator := newTestOperator(&buffer, 21, 80, 24)

	line := markdown.NewWeightedLine([]markdown.StyledText{markdown.Plain("deferred")})
	renderAll(t, operator, presentation.RenderDynamic{Source: &staticOperations{
		operations: []presentation.RenderOperation{
			presentation.JumpToWindowBottom{},
			presentation.RenderTextLine{Line: line, Alignment: theme.LeftAligned(0)},
		},
	}})

	output := buffer.String()
	if !strings.Contains(output, "\x1b[24;1H") {
		t.Errorf("deferred jump not executed: %q", output)
	}
	if !strings.Contains(ansi.Strip(output), "deferred") {
		t.Errorf("deferred text not rendered: %q", output)
	}
}

func TestHighlightPairsLines(t *testing.T) {
	highlighter := NewHighlighter("monokai")
	lines := highlighter.Highlight("package main\n\nfunc main() {}\n", "go")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for index, line := range lines {
		if stripped := ansi.Strip(line.Formatted); stripped != line.Original {
			t.Errorf("line %d: stripped %q != original %q", index, stripped, line.Original)
		}
	}
	if lines[0].Formatted == lines[0].Original {
		t.Error("go source was not highlighted")
	}
}

func TestHighlightWithoutLanguage(t *testing.T) {
	highlighter := NewHighlighter("monokai")
	lines := highlighter.Highlight("plain text\n", "")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Formatted != "plain text" || lines[0].Original != "plain text" {
		t.Errorf("line %+v", lines[0])
	}
}
