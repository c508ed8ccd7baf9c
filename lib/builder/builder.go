// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package builder transforms a parsed document's element stream into
// a presentation: ordered slides of render operations. The builder
// threads theme resolution, unicode-aware width measurement, and
// incremental-reveal splitting through a single pass over the
// elements; content that cannot be known until render time (footer
// slide counts, live window width) is emitted as deferred operations.
package builder

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/deck/lib/markdown"
	"github.com/bureau-foundation/deck/lib/presentation"
	"github.com/bureau-foundation/deck/lib/render"
	"github.com/bureau-foundation/deck/lib/resource"
	"github.com/bureau-foundation/deck/lib/theme"
)

// ErrorKind classifies build failures.
type ErrorKind int

const (
	// InvalidMetadata is malformed front-matter configuration: bad
	// YAML, conflicting theme name/path, or a failed theme merge.
	InvalidMetadata ErrorKind = iota
	// InvalidTheme is a propagated theme-load failure.
	InvalidTheme
	// LoadImage is a propagated image-load failure.
	LoadImage
)

// BuildError is a failed build. Any failure aborts the entire build;
// no partial presentation is returned.
type BuildError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *BuildError) Error() string {
	if e.Cause != nil && e.Message == "" {
		return e.Cause.Error()
	}
	return e.Message
}

func (e *BuildError) Unwrap() error {
	return e.Cause
}

func invalidMetadata(format string, args ...any) *BuildError {
	return &BuildError{
		Kind:    InvalidMetadata,
		Message: "invalid presentation metadata: " + fmt.Sprintf(format, args...),
	}
}

// Metadata is the front-matter configuration block. Pointer fields
// distinguish "absent" from "present but empty": any of title,
// subtitle, or author being present triggers the intro slide.
type Metadata struct {
	Title    *string       `yaml:"title"`
	SubTitle *string       `yaml:"sub_title"`
	Author   *string       `yaml:"author"`
	Theme    ThemeMetadata `yaml:"theme"`
}

// ThemeMetadata selects and customizes the presentation theme. Name
// and Path are mutually exclusive; Override is a partial theme
// document merged onto the resolved theme.
type ThemeMetadata struct {
	Name     string     `yaml:"name"`
	Path     string     `yaml:"path"`
	Override *yaml.Node `yaml:"override"`
}

// PresentationBuilder consumes an ordered element stream and emits a
// presentation. One builder builds one presentation; it is not
// reusable.
type PresentationBuilder struct {
	slideOperations []presentation.RenderOperation
	slides          []presentation.Slide
	theme           *theme.Theme
	highlighter     *render.Highlighter
	resources       *resource.Resources
	footerContext   *presentation.FooterContext

	// ignoreElementLineBreak suppresses the line break normally
	// appended after an element, for elements that manage their own
	// spacing (front matter, slide titles, slide terminations).
	ignoreElementLineBreak bool
	// lastElementIsList lets a pause directive glue consecutive list
	// fragments together without a separating blank line.
	lastElementIsList bool
}

// New creates a builder using the given default theme (front matter
// may replace it) and resource loader.
func New(defaultTheme *theme.Theme, resources *resource.Resources) *PresentationBuilder {
	return &PresentationBuilder{
		theme:         defaultTheme,
		highlighter:   render.NewHighlighter(defaultTheme.Code.Style),
		resources:     resources,
		footerContext: &presentation.FooterContext{},
	}
}

// Build consumes the elements and returns the presentation. Front
// matter is processed before any other element — color and alignment
// choices for all subsequent content depend on it.
func (builder *PresentationBuilder) Build(elements []markdown.Element) (*presentation.Presentation, error) {
	if len(elements) > 0 {
		if frontMatter, ok := elements[0].(markdown.FrontMatter); ok {
			if err := builder.processFrontMatter(frontMatter.Contents); err != nil {
				return nil, err
			}
		}
	}
	if len(builder.slideOperations) == 0 {
		builder.pushSlidePrelude()
	}
	for _, element := range elements {
		builder.ignoreElementLineBreak = false
		if err := builder.processElement(element); err != nil {
			return nil, err
		}
		if !builder.ignoreElementLineBreak {
			builder.pushLineBreak()
		}
	}
	if len(builder.slideOperations) > 0 {
		builder.terminateSlide()
	}
	builder.footerContext.Finalize(len(builder.slides))

	return presentation.New(builder.slides), nil
}

// pushSlidePrelude establishes the per-slide prelude: default colors,
// a screen clear, and the single leading line break every slide
// starts with.
func (builder *PresentationBuilder) pushSlidePrelude() {
	builder.push(presentation.SetColors{Colors: builder.theme.DefaultStyle.Colors})
	builder.push(presentation.ClearScreen{})
	builder.pushLineBreak()
}

func (builder *PresentationBuilder) processElement(element markdown.Element) error {
	_, isList := element.(markdown.List)
	var err error
	switch typed := element.(type) {
	case markdown.FrontMatter:
		// Already processed before the loop; only its line-break
		// bookkeeping remains.
		builder.ignoreElementLineBreak = true
	case markdown.SlideTitle:
		builder.pushSlideTitle(typed.Text)
	case markdown.Heading:
		builder.pushHeading(typed.Level, typed.Text)
	case markdown.Paragraph:
		builder.pushParagraph(typed.Elements)
	case markdown.List:
		builder.pushList(typed.Items)
	case markdown.Code:
		builder.pushCode(typed)
	case markdown.Table:
		builder.pushTable(typed)
	case markdown.ThematicBreak:
		builder.terminateSlide()
	case markdown.Comment:
		builder.processComment(typed.Contents)
	case markdown.BlockQuote:
		builder.pushBlockQuote(typed.Lines)
	case markdown.Image:
		err = builder.pushImage(typed.Path)
	}
	builder.lastElementIsList = isList
	return err
}

func (builder *PresentationBuilder) processFrontMatter(contents string) error {
	var metadata Metadata
	if err := yaml.Unmarshal([]byte(contents), &metadata); err != nil {
		return invalidMetadata("%v", err)
	}

	if metadata.Author != nil {
		builder.footerContext.SetAuthor(*metadata.Author)
	}
	if err := builder.setTheme(&metadata.Theme); err != nil {
		return err
	}
	if metadata.Title != nil || metadata.SubTitle != nil || metadata.Author != nil {
		builder.pushSlidePrelude()
		builder.pushIntroSlide(metadata)
	}
	return nil
}

func (builder *PresentationBuilder) setTheme(metadata *ThemeMetadata) error {
	if metadata.Name != "" && metadata.Path != "" {
		return invalidMetadata("cannot have both theme path and theme name")
	}
	if metadata.Name != "" {
		resolved, ok := theme.LookupByName(metadata.Name)
		if !ok {
			return invalidMetadata("theme '%s' does not exist", metadata.Name)
		}
		builder.theme = resolved
	}
	if metadata.Path != "" {
		resolved, err := theme.LoadFromPath(metadata.Path)
		if err != nil {
			return &BuildError{Kind: InvalidTheme, Cause: err}
		}
		builder.theme = resolved
	}
	if metadata.Override != nil {
		merged, err := theme.Merge(builder.theme, metadata.Override)
		if err != nil {
			return invalidMetadata("invalid theme: %v", err)
		}
		builder.theme = merged
	}
	builder.highlighter = render.NewHighlighter(builder.theme.Code.Style)
	return nil
}

func (builder *PresentationBuilder) pushIntroSlide(metadata Metadata) {
	styles := builder.theme.IntroSlide

	title := markdown.PlainText(stringValue(metadata.Title))
	title.ApplyStyle(markdown.TextStyle{Bold: true, Colors: styles.Title.Colors})

	builder.push(presentation.JumpToVerticalCenter{})
	builder.pushText(title, theme.ElementPresentationTitle)
	builder.pushLineBreak()

	if metadata.SubTitle != nil {
		subtitle := markdown.PlainText(*metadata.SubTitle)
		subtitle.ApplyStyle(markdown.TextStyle{Colors: styles.Subtitle.Colors})
		builder.pushText(subtitle, theme.ElementPresentationSubTitle)
		builder.pushLineBreak()
	}
	if metadata.Author != nil {
		author := markdown.PlainText(*metadata.Author)
		author.ApplyStyle(markdown.TextStyle{Colors: styles.Author.Colors})
		switch styles.Author.Positioning {
		case theme.AuthorPageBottom:
			builder.push(presentation.JumpToSlideBottom{})
		default:
			builder.pushLineBreak()
			builder.pushLineBreak()
			builder.pushLineBreak()
		}
		builder.pushText(author, theme.ElementPresentationAuthor)
	}
	builder.terminateSlide()
}

func (builder *PresentationBuilder) processComment(comment string) {
	switch strings.TrimSpace(comment) {
	case "pause":
		builder.processPause()
	case "end_slide":
		builder.terminateSlide()
	default:
		// Not a directive. Deliberately ignored so unrelated
		// annotations pass through without failing the build.
	}
}

// processPause splits the in-progress slide for incremental reveal:
// the current operations become a completed slide, and the next slide
// starts already containing everything rendered so far. N pauses in
// one logical slide produce N+1 physical slides, each a strict,
// growing prefix of the last one's content.
func (builder *PresentationBuilder) processPause() {
	// If the previous element was a list, drop its trailing line
	// break so consecutive list fragments read as one visually
	// contiguous block across the reveal.
	if builder.lastElementIsList && len(builder.slideOperations) > 0 {
		last := builder.slideOperations[len(builder.slideOperations)-1]
		if _, isBreak := last.(presentation.RenderLineBreak); isBreak {
			builder.slideOperations = builder.slideOperations[:len(builder.slideOperations)-1]
		}
	}

	nextOperations := slices.Clone(builder.slideOperations)
	builder.terminateSlide()
	builder.slideOperations = nextOperations
}

func (builder *PresentationBuilder) pushSlideTitle(text markdown.Text) {
	style := builder.theme.SlideTitle
	text.ApplyStyle(markdown.TextStyle{Bold: true, Colors: style.Colors})

	for padding := 0; padding < style.PaddingTop; padding++ {
		builder.pushLineBreak()
	}
	builder.pushText(text, theme.ElementSlideTitle)
	builder.pushLineBreak()

	for padding := 0; padding < style.PaddingBottom; padding++ {
		builder.pushLineBreak()
	}
	if style.Separator {
		builder.push(presentation.RenderSeparator{})
	}
	builder.pushLineBreak()
	builder.ignoreElementLineBreak = true
}

func (builder *PresentationBuilder) pushHeading(level int, text markdown.Text) {
	style, elementType := builder.theme.HeadingLevel(level)
	if style.Prefix != "" {
		text.Prepend(markdown.Plain(style.Prefix + " "))
	}
	text.ApplyStyle(markdown.TextStyle{Bold: true, Colors: style.Colors})

	builder.pushText(text, elementType)
	builder.pushLineBreak()
}

func (builder *PresentationBuilder) pushParagraph(elements []markdown.ParagraphElement) {
	for _, element := range elements {
		if element.LineBreak {
			// Line breaks are already pushed after every text run.
			continue
		}
		builder.pushText(element.Text, theme.ElementParagraph)
		builder.pushLineBreak()
	}
}

func (builder *PresentationBuilder) pushImage(path string) error {
	image, err := builder.resources.Image(path)
	if err != nil {
		return &BuildError{Kind: LoadImage, Cause: err}
	}
	builder.push(presentation.RenderImage{Image: image})
	return nil
}

func (builder *PresentationBuilder) pushList(items []markdown.ListItem) {
	for _, item := range items {
		builder.pushListItem(item)
	}
}

func (builder *PresentationBuilder) pushListItem(item markdown.ListItem) {
	prefix := strings.Repeat(" ", (item.Depth+1)*2)
	switch item.Type {
	case markdown.ListItemUnordered:
		switch item.Depth {
		case 0:
			prefix += "•"
		case 1:
			prefix += "◦"
		default:
			prefix += "▪"
		}
	case markdown.ListItemOrderedParens:
		prefix += fmt.Sprintf("%d) ", item.Number)
	case markdown.ListItemOrderedPeriod:
		prefix += fmt.Sprintf("%d. ", item.Number)
	}
	prefix += " "

	text := item.Contents
	text.Prepend(markdown.Plain(prefix))
	builder.pushText(text, theme.ElementList)
	builder.pushLineBreak()
}

func (builder *PresentationBuilder) pushBlockQuote(lines []string) {
	prefix := builder.theme.BlockQuote.Prefix
	prefixWidth := lipgloss.Width(prefix)
	blockWidth := 0
	for _, line := range lines {
		if width := lipgloss.Width(line) + prefixWidth; width > blockWidth {
			blockWidth = width
		}
	}

	alignment := builder.theme.Alignment(theme.ElementBlockQuote)
	builder.push(presentation.SetColors{Colors: builder.theme.BlockQuote.Colors})
	for _, line := range lines {
		prefixed := prefix + line
		builder.push(presentation.RenderPreformattedLine{
			Text:             prefixed,
			UnformattedWidth: lipgloss.Width(prefixed),
			BlockWidth:       blockWidth,
			Alignment:        alignment,
		})
		builder.pushLineBreak()
	}
	builder.push(presentation.SetColors{Colors: builder.theme.DefaultStyle.Colors})
}

// pushText resolves the element's alignment and inline-code colors,
// measures each chunk, and emits one text line. Empty text emits
// nothing.
func (builder *PresentationBuilder) pushText(text markdown.Text, elementType theme.ElementType) {
	alignment := builder.theme.Alignment(elementType)
	chunks := make([]markdown.StyledText, 0, len(text.Chunks))
	for _, chunk := range text.Chunks {
		if chunk.Style.Code {
			chunk.Style.Colors = builder.theme.Code.Colors
		}
		chunks = append(chunks, chunk)
	}
	if len(chunks) == 0 {
		return
	}
	builder.push(presentation.RenderTextLine{
		Line:      markdown.NewWeightedLine(chunks),
		Alignment: alignment,
	})
}

func (builder *PresentationBuilder) pushCode(code markdown.Code) {
	horizontalPadding := builder.theme.Code.Padding.Horizontal
	verticalPadding := builder.theme.Code.Padding.Vertical

	contents := code.Contents
	if horizontalPadding > 0 || verticalPadding > 0 {
		var padded strings.Builder
		if verticalPadding > 0 {
			padded.WriteByte('\n')
		}
		if horizontalPadding > 0 {
			padding := strings.Repeat(" ", horizontalPadding)
			for _, line := range strings.Split(strings.TrimSuffix(contents, "\n"), "\n") {
				padded.WriteString(padding)
				padded.WriteString(line)
				padded.WriteByte('\n')
			}
		} else {
			padded.WriteString(contents)
		}
		if verticalPadding > 0 {
			padded.WriteByte('\n')
		}
		contents = padded.String()
	}

	blockWidth := 0
	for _, line := range strings.Split(strings.TrimSuffix(contents, "\n"), "\n") {
		if width := lipgloss.Width(line); width > blockWidth {
			blockWidth = width
		}
	}
	blockWidth += horizontalPadding

	alignment := builder.theme.Alignment(theme.ElementCode)
	for _, line := range builder.highlighter.Highlight(contents, code.Language) {
		trimmed := strings.TrimRight(line.Formatted, " \t")
		// Highlighting injects zero-visual-width styling escapes; the
		// line's true width is the original's, reduced only by what
		// the trim actually removed.
		unformattedWidth := lipgloss.Width(line.Original) - (lipgloss.Width(line.Formatted) - lipgloss.Width(trimmed))
		builder.push(presentation.RenderPreformattedLine{
			Text:             trimmed,
			UnformattedWidth: unformattedWidth,
			BlockWidth:       blockWidth,
			Alignment:        alignment,
		})
		builder.pushLineBreak()
	}
}

func (builder *PresentationBuilder) pushTable(table markdown.Table) {
	widths := make([]int, table.Columns())
	for column := range widths {
		widths[column] = table.ColumnWidth(column)
	}

	builder.pushText(prepareTableRow(table.Header, widths), theme.ElementTable)
	builder.pushLineBreak()

	// Separator row: box-drawing dashes per column, joined with ┼.
	// The extra dash widths account for the cell separator glyphs
	// around each column boundary.
	var separator markdown.Text
	for index, width := range widths {
		contents := ""
		extra := 1
		if index > 0 {
			contents = "┼"
			extra = 2
		}
		contents += strings.Repeat("─", width+extra)
		separator.Chunks = append(separator.Chunks, markdown.Plain(contents))
	}
	builder.pushText(separator, theme.ElementTable)
	builder.pushLineBreak()

	for _, row := range table.Rows {
		builder.pushText(prepareTableRow(row, widths), theme.ElementTable)
		builder.pushLineBreak()
	}
}

// prepareTableRow flattens a row into a single text line: cells
// separated by " │ ", each right-padded to its column width so
// subsequent columns stay aligned.
func prepareTableRow(row markdown.TableRow, widths []int) markdown.Text {
	var flattened markdown.Text
	for column, cell := range row.Cells {
		if column > 0 {
			flattened.Chunks = append(flattened.Chunks, markdown.Plain(" │ "))
		}
		cellWidth := cell.Width()
		flattened.Chunks = append(flattened.Chunks, cell.Chunks...)
		if column < len(widths) && cellWidth < widths[column] {
			flattened.Chunks = append(flattened.Chunks, markdown.Plain(strings.Repeat(" ", widths[column]-cellWidth)))
		}
	}
	return flattened
}

// terminateSlide closes the in-progress slide: appends its footer
// operation, stores the accumulated operations as a completed slide,
// and re-establishes the prelude for whatever follows.
func (builder *PresentationBuilder) terminateSlide() {
	builder.pushFooter()

	operations := builder.slideOperations
	builder.slideOperations = nil
	builder.slides = append(builder.slides, presentation.Slide{Operations: operations})
	builder.pushSlidePrelude()
	builder.ignoreElementLineBreak = true
}

func (builder *PresentationBuilder) pushFooter() {
	builder.push(presentation.RenderDynamic{Source: &FooterGenerator{
		style:        builder.theme.Footer,
		currentSlide: len(builder.slides),
		context:      builder.footerContext,
	}})
}

func (builder *PresentationBuilder) push(operation presentation.RenderOperation) {
	builder.slideOperations = append(builder.slideOperations, operation)
}

func (builder *PresentationBuilder) pushLineBreak() {
	builder.push(presentation.RenderLineBreak{})
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
