// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bufio"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/deck/lib/markdown"
)

// Terminal is the output backend the operator draws through. It
// wraps a buffered writer with termenv cursor/screen control and a
// lipgloss renderer for styled text.
//
// The color profile is forced to ANSI256: slides always target a
// terminal, so auto-detection (which yields uncolored output when
// stdout is not a TTY, as in tests) is bypassed. SetColorProfile is
// required because lipgloss re-detects from the environment unless an
// explicit profile is set.
type Terminal struct {
	writer *bufio.Writer
	output *termenv.Output
	styles *lipgloss.Renderer
}

// NewTerminal creates a terminal backend over a writer. Output is
// buffered; nothing reaches the writer until Flush.
func NewTerminal(writer io.Writer) *Terminal {
	buffered := bufio.NewWriter(writer)
	styles := lipgloss.NewRenderer(buffered, termenv.WithProfile(termenv.ANSI256))
	styles.SetColorProfile(termenv.ANSI256)
	return &Terminal{
		writer: buffered,
		output: termenv.NewOutput(buffered, termenv.WithProfile(termenv.ANSI256)),
		styles: styles,
	}
}

// ClearScreen erases the display and homes the cursor. The erase
// fills with the background color most recently set via SetColors.
func (terminal *Terminal) ClearScreen() {
	terminal.output.ClearScreen()
}

// MoveTo positions the cursor at a zero-based row and column.
func (terminal *Terminal) MoveTo(row, column int) {
	terminal.output.MoveCursor(row+1, column+1)
}

// HideCursor hides the cursor for the render session.
func (terminal *Terminal) HideCursor() {
	terminal.output.HideCursor()
}

// ShowCursor restores the cursor.
func (terminal *Terminal) ShowCursor() {
	terminal.output.ShowCursor()
}

// EnterAltScreen switches to the alternate screen buffer.
func (terminal *Terminal) EnterAltScreen() {
	terminal.output.AltScreen()
}

// ExitAltScreen returns to the primary screen buffer.
func (terminal *Terminal) ExitAltScreen() {
	terminal.output.ExitAltScreen()
}

// SetColors emits persistent foreground/background attributes. These
// stay in effect until the next SetColors, so a following ClearScreen
// floods the background color. Nil fields reset that attribute to the
// terminal default.
func (terminal *Terminal) SetColors(colors markdown.Colors) {
	terminal.writer.WriteString(termenv.CSI + termenv.ResetSeq + "m")
	if colors.Foreground != nil {
		color := terminal.output.Color(string(*colors.Foreground))
		if color != nil {
			terminal.writer.WriteString(termenv.CSI + color.Sequence(false) + "m")
		}
	}
	if colors.Background != nil {
		color := terminal.output.Color(string(*colors.Background))
		if color != nil {
			terminal.writer.WriteString(termenv.CSI + color.Sequence(true) + "m")
		}
	}
}

// Print writes raw text at the current cursor position. The text may
// carry its own styling escapes (highlighted code).
func (terminal *Terminal) Print(text string) {
	terminal.writer.WriteString(text)
}

// PrintStyled writes one styled chunk. The chunk's own colors win;
// defaults fill in whichever side the chunk leaves unset, so text
// blends with the colors currently in effect even though lipgloss
// resets attributes after each render.
func (terminal *Terminal) PrintStyled(chunk markdown.StyledText, defaults markdown.Colors) {
	style := terminal.styles.NewStyle()
	if chunk.Style.Bold {
		style = style.Bold(true)
	}
	if chunk.Style.Italic {
		style = style.Italic(true)
	}
	if chunk.Style.Strikethrough {
		style = style.Strikethrough(true)
	}
	foreground := chunk.Style.Colors.Foreground
	if foreground == nil {
		foreground = defaults.Foreground
	}
	if foreground != nil {
		style = style.Foreground(lipgloss.Color(string(*foreground)))
	}
	background := chunk.Style.Colors.Background
	if background == nil {
		background = defaults.Background
	}
	if background != nil {
		style = style.Background(lipgloss.Color(string(*background)))
	}
	terminal.writer.WriteString(style.Render(chunk.Text))
}

// Flush pushes buffered output to the underlying writer.
func (terminal *Terminal) Flush() error {
	return terminal.writer.Flush()
}
