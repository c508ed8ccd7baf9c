// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/deck/lib/markdown"
	"github.com/bureau-foundation/deck/lib/presentation"
	"github.com/bureau-foundation/deck/lib/theme"
)

// UnsupportedStructureError indicates the IR asked for something the
// operator cannot satisfy against real terminal constraints. It
// signals a builder/operator mismatch bug and is never expected in
// correct operation.
type UnsupportedStructureError struct {
	Reason string
}

func (e *UnsupportedStructureError) Error() string {
	return "unsupported structure: " + e.Reason
}

// Operator executes one slide's render operations in order. It is
// created per draw with the current window geometry: slideSize is the
// window reduced by the reserved chrome rows, windowRows the full
// terminal height (footers jump past the slide area to reach it).
type Operator struct {
	terminal   *Terminal
	slideSize  presentation.WindowSize
	windowRows int

	currentRow    int
	currentColors markdown.Colors
}

// NewOperator creates an operator for one draw pass.
func NewOperator(terminal *Terminal, slideSize presentation.WindowSize, windowRows int) *Operator {
	return &Operator{
		terminal:   terminal,
		slideSize:  slideSize,
		windowRows: windowRows,
	}
}

// Render executes a single operation. Deferred operations are
// resolved against the slide geometry immediately and their produced
// operations executed in place, recursively.
func (operator *Operator) Render(operation presentation.RenderOperation) error {
	switch typed := operation.(type) {
	case presentation.SetColors:
		operator.currentColors = typed.Colors
		operator.terminal.SetColors(typed.Colors)
	case presentation.ClearScreen:
		operator.currentRow = 0
		operator.terminal.ClearScreen()
	case presentation.RenderLineBreak:
		operator.currentRow++
	case presentation.RenderTextLine:
		operator.renderTextLine(typed)
	case presentation.RenderPreformattedLine:
		operator.renderPreformattedLine(typed)
	case presentation.RenderSeparator:
		operator.renderSeparator()
	case presentation.RenderImage:
		if err := operator.renderImage(typed.Image); err != nil {
			return err
		}
	case presentation.JumpToVerticalCenter:
		operator.currentRow = operator.slideSize.Rows / 2
	case presentation.JumpToSlideBottom:
		operator.currentRow = max(operator.slideSize.Rows-1, 0)
	case presentation.JumpToWindowBottom:
		operator.currentRow = max(operator.windowRows-1, 0)
	case presentation.RenderDynamic:
		for _, produced := range typed.Source.Operations(operator.slideSize) {
			if err := operator.Render(produced); err != nil {
				return err
			}
		}
	default:
		return &UnsupportedStructureError{Reason: fmt.Sprintf("unknown operation %T", operation)}
	}
	return nil
}

// startColumn computes where a line of the given display width begins
// under an alignment rule, plus the width actually available to it.
func startColumn(alignment theme.Alignment, lineWidth, columns int) (start, available int) {
	switch alignment.Type {
	case theme.AlignRight:
		available = max(columns-alignment.Margin, 0)
		start = max(columns-alignment.Margin-lineWidth, 0)
	case theme.AlignCenter:
		if columns < alignment.MinimumSize+2*alignment.MinimumMargin {
			// Too narrow to center: fall back to left alignment with
			// the minimum margin.
			available = max(columns-alignment.MinimumMargin, 0)
			start = alignment.MinimumMargin
			return start, available
		}
		available = max(columns-2*alignment.MinimumMargin, 0)
		start = max((columns-lineWidth)/2, alignment.MinimumMargin)
	default:
		available = max(columns-alignment.Margin, 0)
		start = alignment.Margin
	}
	return start, available
}

func (operator *Operator) renderTextLine(operation presentation.RenderTextLine) {
	_, available := startColumn(operation.Alignment, operation.Line.Width(), operator.slideSize.Columns)
	lines := operation.Line.Split(available)
	for index, line := range lines {
		if index > 0 {
			operator.currentRow++
		}
		start, _ := startColumn(operation.Alignment, line.Width(), operator.slideSize.Columns)
		operator.terminal.MoveTo(operator.currentRow, start)
		for _, chunk := range line.Chunks {
			operator.terminal.PrintStyled(chunk.Chunk, operator.currentColors)
		}
	}
}

// renderPreformattedLine aligns the line by the block's shared width,
// not its own, so every line of a multi-line block starts at the same
// column and the block stays visually flush.
func (operator *Operator) renderPreformattedLine(operation presentation.RenderPreformattedLine) {
	start, available := startColumn(operation.Alignment, operation.BlockWidth, operator.slideSize.Columns)
	text := operation.Text
	if operation.UnformattedWidth > available {
		text = ansi.Truncate(text, available, "")
	}
	operator.terminal.MoveTo(operator.currentRow, start)
	operator.terminal.Print(text)
}

func (operator *Operator) renderSeparator() {
	width := operator.slideSize.Columns
	if width <= 0 {
		return
	}
	operator.terminal.MoveTo(operator.currentRow, 0)
	operator.terminal.PrintStyled(markdown.Plain(strings.Repeat("─", width)), operator.currentColors)
}
