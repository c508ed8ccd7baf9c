// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/bureau-foundation/deck/lib/markdown"
	"github.com/bureau-foundation/deck/lib/presentation"
	"github.com/bureau-foundation/deck/lib/theme"
)

// reservedRows is the terminal chrome below the slide area: the rows
// footers jump into. Slides lay out against the window height minus
// this.
const reservedRows = 3

// Drawer owns a render session: raw mode, hidden cursor, and the
// alternate screen are process-wide side effects enabled on session
// start and reversed by Close on every exit path. Callers must defer
// Close immediately after New.
type Drawer struct {
	terminal *Terminal
	output   *os.File
	input    *os.File
	rawState *term.State
}

// NewDrawer starts a render session on the given terminal streams.
// Input is put into raw mode so navigation keys arrive unbuffered.
func NewDrawer(output, input *os.File) (*Drawer, error) {
	rawState, err := term.MakeRaw(int(input.Fd()))
	if err != nil {
		return nil, fmt.Errorf("set terminal raw mode: %w", err)
	}
	terminal := NewTerminal(output)
	terminal.EnterAltScreen()
	terminal.HideCursor()
	if err := terminal.Flush(); err != nil {
		term.Restore(int(input.Fd()), rawState)
		return nil, err
	}
	return &Drawer{
		terminal: terminal,
		output:   output,
		input:    input,
		rawState: rawState,
	}, nil
}

// Close reverses the session's side effects. Safe to call more than
// once; later calls are no-ops.
func (drawer *Drawer) Close() {
	if drawer.rawState == nil {
		return
	}
	drawer.terminal.ShowCursor()
	drawer.terminal.ExitAltScreen()
	drawer.terminal.Flush()
	term.Restore(int(drawer.input.Fd()), drawer.rawState)
	drawer.rawState = nil
}

// WindowSize reports the current terminal geometry, including pixel
// dimensions when the terminal provides them.
func (drawer *Drawer) WindowSize() (presentation.WindowSize, error) {
	columns, rows, err := term.GetSize(int(drawer.output.Fd()))
	if err != nil {
		return presentation.WindowSize{}, fmt.Errorf("query window size: %w", err)
	}
	size := presentation.WindowSize{Rows: rows, Columns: columns}
	if winsize, err := unix.IoctlGetWinsize(int(drawer.output.Fd()), unix.TIOCGWINSZ); err == nil {
		size.Width = int(winsize.Xpixel)
		size.Height = int(winsize.Ypixel)
	}
	return size, nil
}

// RenderSlide draws the presentation's current slide against the live
// window size. The slide lays out within the window minus the
// reserved chrome rows; footer operations jump below that on their
// own.
func (drawer *Drawer) RenderSlide(p *presentation.Presentation) error {
	dimensions, err := drawer.WindowSize()
	if err != nil {
		return err
	}
	slideSize := dimensions
	slideSize.Rows = max(dimensions.Rows-reservedRows, 0)

	operator := NewOperator(drawer.terminal, slideSize, dimensions.Rows)
	for _, operation := range p.CurrentSlide().Operations {
		if err := operator.Render(operation); err != nil {
			return err
		}
	}
	return drawer.terminal.Flush()
}

// Fixed error-screen colors. Deliberately not theme-dependent: build
// failures must be displayable even when the theme itself is what
// failed to load.
var (
	errorForeground = markdown.Color("196")
	errorBackground = markdown.Color("16")
)

// RenderError draws a centered error screen, independent of any slide
// or theme state.
func (drawer *Drawer) RenderError(message string) error {
	dimensions, err := drawer.WindowSize()
	if err != nil {
		return err
	}

	heading := markdown.NewWeightedLine([]markdown.StyledText{
		markdown.Styled("Error loading presentation", markdown.TextStyle{Bold: true}),
		markdown.Plain(": "),
	})
	detail := markdown.NewWeightedLine([]markdown.StyledText{markdown.Plain(message)})
	alignment := theme.Centered(0, 5)
	operations := []presentation.RenderOperation{
		presentation.SetColors{Colors: markdown.Colors{
			Foreground: &errorForeground,
			Background: &errorBackground,
		}},
		presentation.ClearScreen{},
		presentation.JumpToVerticalCenter{},
		presentation.RenderTextLine{Line: heading, Alignment: alignment},
		presentation.RenderLineBreak{},
		presentation.RenderLineBreak{},
		presentation.RenderTextLine{Line: detail, Alignment: alignment},
	}

	operator := NewOperator(drawer.terminal, dimensions, dimensions.Rows)
	for _, operation := range operations {
		if err := operator.Render(operation); err != nil {
			return err
		}
	}
	return drawer.terminal.Flush()
}
