// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package markdown defines the structural elements a presentation is
// built from, and the styled text model they carry. The parser in
// this package produces a flat, ordered stream of elements; the
// builder consumes that stream exactly once. Elements are plain data:
// all layout and color decisions happen downstream, against a theme.
package markdown

// Color is a terminal color: an ANSI 256-color code ("252") or a hex
// value ("#ff00ff"), in the format lipgloss accepts.
type Color string

// Colors is an optional foreground/background pair. A nil field means
// "leave whatever is currently in effect".
type Colors struct {
	Foreground *Color `yaml:"foreground"`
	Background *Color `yaml:"background"`
}

// TextStyle describes how a chunk of text should be drawn. The Code
// flag marks inline code spans; the builder replaces their colors
// with the theme's code colors before rendering.
type TextStyle struct {
	Bold          bool
	Italic        bool
	Strikethrough bool
	Code          bool
	Colors        Colors
}

// Merge folds another style into this one: boolean attributes combine
// with OR, colors from the other style win when set. Used to apply an
// element-level style (say, bold + heading colors) on top of whatever
// inline styling a chunk already carries.
func (style *TextStyle) Merge(other TextStyle) {
	style.Bold = style.Bold || other.Bold
	style.Italic = style.Italic || other.Italic
	style.Strikethrough = style.Strikethrough || other.Strikethrough
	style.Code = style.Code || other.Code
	if other.Colors.Foreground != nil {
		style.Colors.Foreground = other.Colors.Foreground
	}
	if other.Colors.Background != nil {
		style.Colors.Background = other.Colors.Background
	}
}

// StyledText is one run of text with a uniform style.
type StyledText struct {
	Text  string
	Style TextStyle
}

// Plain creates an unstyled chunk.
func Plain(text string) StyledText {
	return StyledText{Text: text}
}

// Styled creates a chunk with an explicit style.
func Styled(text string, style TextStyle) StyledText {
	return StyledText{Text: text, Style: style}
}

// Text is an ordered sequence of styled chunks, concatenated for
// display. Chunk order is significant: the builder prepends prefixes
// (bullet markers, heading decorations) as leading chunks.
type Text struct {
	Chunks []StyledText
}

// PlainText wraps a single unstyled string as a Text.
func PlainText(text string) Text {
	return Text{Chunks: []StyledText{Plain(text)}}
}

// ApplyStyle merges the given style into every chunk.
func (text *Text) ApplyStyle(style TextStyle) {
	for index := range text.Chunks {
		text.Chunks[index].Style.Merge(style)
	}
}

// Prepend inserts a chunk at the front, before all existing chunks.
func (text *Text) Prepend(chunk StyledText) {
	text.Chunks = append([]StyledText{chunk}, text.Chunks...)
}

// Element is one structural piece of a parsed document. Exactly one
// of the concrete element types below implements this interface; the
// builder switches over them.
type Element interface {
	element()
}

// FrontMatter is the raw text of a leading `---` configuration block.
// Only meaningful as the first element of a document.
type FrontMatter struct {
	Contents string
}

// Heading is an ATX (`#`) heading, level 1 through 6.
type Heading struct {
	Level int
	Text  Text
}

// SlideTitle is a setext heading (text underlined with `===`). It is
// a distinguished heading variant: the builder gives it dedicated
// padding and an optional separator rule.
type SlideTitle struct {
	Text Text
}

// ParagraphElement is one piece of a paragraph: a text run or an
// explicit hard line break.
type ParagraphElement struct {
	Text      Text
	LineBreak bool
}

// Paragraph is an ordered sequence of text runs and break markers.
type Paragraph struct {
	Elements []ParagraphElement
}

// ListItemType tags how a list item's marker renders.
type ListItemType int

const (
	// ListItemUnordered renders a depth-dependent bullet glyph.
	ListItemUnordered ListItemType = iota
	// ListItemOrderedPeriod renders "N. " using the carried number.
	ListItemOrderedPeriod
	// ListItemOrderedParens renders "N) " using the carried number.
	ListItemOrderedParens
)

// ListItem is one item in a (possibly nested) list, flattened: depth
// records the nesting level, Number carries the ordinal for ordered
// items.
type ListItem struct {
	Depth    int
	Type     ListItemType
	Number   int
	Contents Text
}

// List is an ordered sequence of flattened list items.
type List struct {
	Items []ListItem
}

// Code is a fenced or indented code block. Language is the fence info
// string ("go", "rust"); empty means no highlighting.
type Code struct {
	Contents string
	Language string
}

// TableRow is an ordered sequence of cell texts.
type TableRow struct {
	Cells []Text
}

// Table is one header row plus ordered data rows.
type Table struct {
	Header TableRow
	Rows   []TableRow
}

// Columns returns the number of columns, taken from the header.
func (table *Table) Columns() int {
	return len(table.Header.Cells)
}

// ColumnWidth returns the maximum display width of any cell (header
// or data) in the given column.
func (table *Table) ColumnWidth(column int) int {
	width := 0
	if column < len(table.Header.Cells) {
		width = table.Header.Cells[column].Width()
	}
	for _, row := range table.Rows {
		if column >= len(row.Cells) {
			continue
		}
		if cellWidth := row.Cells[column].Width(); cellWidth > width {
			width = cellWidth
		}
	}
	return width
}

// BlockQuote is a quoted block, kept as raw lines: quotes render
// preformatted, so inline styling inside them is ignored.
type BlockQuote struct {
	Lines []string
}

// Image references an image by path, relative to the document.
type Image struct {
	Path string
}

// ThematicBreak is a horizontal rule (`---` outside front matter).
// The builder treats it as a slide boundary.
type ThematicBreak struct{}

// Comment is the trimmed text of an HTML comment. Comments carry
// presentation directives (pause, end_slide); unrecognized text is
// ignored so ordinary annotations pass through harmlessly.
type Comment struct {
	Contents string
}

func (FrontMatter) element()   {}
func (Heading) element()       {}
func (SlideTitle) element()    {}
func (Paragraph) element()     {}
func (List) element()          {}
func (Code) element()          {}
func (Table) element()         {}
func (BlockQuote) element()    {}
func (Image) element()         {}
func (ThematicBreak) element() {}
func (Comment) element()       {}
