// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package presentation defines the intermediate representation a
// built presentation is made of: slides, each an ordered program of
// primitive render operations, executed later against a live
// terminal. Operations whose content depends on render-time values
// (final slide count, current window width) are deferred behind the
// AsRenderOperations interface and resolved on every draw.
package presentation

import (
	"github.com/bureau-foundation/deck/lib/markdown"
	"github.com/bureau-foundation/deck/lib/resource"
	"github.com/bureau-foundation/deck/lib/theme"
)

// WindowSize is the terminal geometry a slide renders against. Rows
// and Columns are character cells; Width and Height are pixels when
// the terminal reports them, zero otherwise.
type WindowSize struct {
	Rows    int
	Columns int
	Width   int
	Height  int
}

// AsRenderOperations is the deferred-operation capability: given the
// live window size, produce a fresh sequence of render operations.
// Implementations must be pure with respect to the IR — they build
// new operations rather than mutating existing ones.
type AsRenderOperations interface {
	Operations(dimensions WindowSize) []RenderOperation
}

// RenderOperation is one primitive instruction in a slide's program.
// The concrete types below are the full instruction set; the render
// operator switches over them.
type RenderOperation interface {
	renderOperation()
}

// SetColors sets the colors applied to subsequently rendered text.
type SetColors struct {
	Colors markdown.Colors
}

// ClearScreen clears the terminal and homes the output cursor.
type ClearScreen struct{}

// RenderTextLine draws one weighted text line with alignment.
type RenderTextLine struct {
	Line      markdown.WeightedLine
	Alignment theme.Alignment
}

// RenderPreformattedLine draws one line of a preformatted block
// (code, block quote). Text may contain styling escapes injected by
// highlighting; UnformattedWidth is the line's true visual width with
// those excluded, and BlockWidth is the display width shared by every
// line of the block so the block aligns as a unit.
type RenderPreformattedLine struct {
	Text             string
	UnformattedWidth int
	BlockWidth       int
	Alignment        theme.Alignment
}

// RenderLineBreak advances the output cursor one row.
type RenderLineBreak struct{}

// RenderSeparator draws a horizontal rule across the window.
type RenderSeparator struct{}

// RenderImage draws a loaded image scaled to the window.
type RenderImage struct {
	Image *resource.Image
}

// JumpToVerticalCenter moves the output cursor to the slide's
// vertical midpoint.
type JumpToVerticalCenter struct{}

// JumpToSlideBottom moves the output cursor to the slide area's last
// row (above any reserved chrome rows).
type JumpToSlideBottom struct{}

// JumpToWindowBottom moves the output cursor to the window's last
// row, below the slide area.
type JumpToWindowBottom struct{}

// RenderDynamic defers to a render-time operation source.
type RenderDynamic struct {
	Source AsRenderOperations
}

func (SetColors) renderOperation()              {}
func (ClearScreen) renderOperation()            {}
func (RenderTextLine) renderOperation()         {}
func (RenderPreformattedLine) renderOperation() {}
func (RenderLineBreak) renderOperation()        {}
func (RenderSeparator) renderOperation()        {}
func (RenderImage) renderOperation()            {}
func (JumpToVerticalCenter) renderOperation()   {}
func (JumpToSlideBottom) renderOperation()      {}
func (JumpToWindowBottom) renderOperation()     {}
func (RenderDynamic) renderOperation()          {}

// Slide is an ordered render-operation program, the unit of display.
// Every slide begins with exactly one SetColors followed by exactly
// one ClearScreen; the builder establishes this prelude once per
// slide and never duplicates it.
type Slide struct {
	Operations []RenderOperation
}

// Presentation is the ordered slides plus a bounds-checked cursor.
type Presentation struct {
	slides  []Slide
	current int
}

// New creates a presentation over the given slides.
func New(slides []Slide) *Presentation {
	return &Presentation{slides: slides}
}

// Slides returns the underlying slides, for inspection and tests.
func (p *Presentation) Slides() []Slide {
	return p.slides
}

// CurrentSlide returns the slide under the cursor.
func (p *Presentation) CurrentSlide() *Slide {
	return &p.slides[p.current]
}

// CurrentSlideIndex returns the cursor position, zero-based.
func (p *Presentation) CurrentSlideIndex() int {
	return p.current
}

// TotalSlides returns the slide count.
func (p *Presentation) TotalSlides() int {
	return len(p.slides)
}

// Advance moves to the next slide. Returns false (cursor unchanged)
// when already on the last slide.
func (p *Presentation) Advance() bool {
	if p.current+1 >= len(p.slides) {
		return false
	}
	p.current++
	return true
}

// Retreat moves to the previous slide. Returns false when already on
// the first slide.
func (p *Presentation) Retreat() bool {
	if p.current == 0 {
		return false
	}
	p.current--
	return true
}

// JumpFirst moves the cursor to the first slide.
func (p *Presentation) JumpFirst() {
	p.current = 0
}

// JumpLast moves the cursor to the last slide.
func (p *Presentation) JumpLast() {
	if len(p.slides) > 0 {
		p.current = len(p.slides) - 1
	}
}

// FooterContext is the state shared by every footer operation across
// all slides of one presentation: the author (set during front-matter
// processing) and the total slide count (finalized exactly once, after
// the whole document has been consumed).
//
// Ordering invariant: the builder calls Finalize before any slide is
// rendered, and nothing writes afterwards. Rendering a presentation
// whose context was never finalized is a usage error; TotalSlides
// reports zero in that state so the misuse is visible rather than
// silently stale.
type FooterContext struct {
	author      string
	totalSlides int
	finalized   bool
}

// SetAuthor records the presentation author. Defaults to empty when
// front matter omits one.
func (context *FooterContext) SetAuthor(author string) {
	context.author = author
}

// Author returns the recorded author, empty if none was set.
func (context *FooterContext) Author() string {
	return context.author
}

// Finalize records the total slide count. Write-once: later calls
// are ignored.
func (context *FooterContext) Finalize(totalSlides int) {
	if context.finalized {
		return
	}
	context.totalSlides = totalSlides
	context.finalized = true
}

// Finalized reports whether the slide count has been recorded.
func (context *FooterContext) Finalized() bool {
	return context.finalized
}

// TotalSlides returns the finalized slide count, zero before
// Finalize.
func (context *FooterContext) TotalSlides() int {
	return context.totalSlides
}
