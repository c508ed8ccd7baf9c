// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package markdown

import (
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// parserInstance is initialized once and reused. The parser
// configuration never changes and the goldmark Parser is safe to
// share — parsing creates per-call state via Parse(reader).
var (
	parserInstance goldmark.Markdown
	parserOnce     sync.Once
)

func getParser() goldmark.Markdown {
	parserOnce.Do(func() {
		parserInstance = goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		)
	})
	return parserInstance
}

// Parse turns a raw document into its ordered element stream. A
// leading `---` block is split off as FrontMatter before goldmark
// sees the source (goldmark has no front-matter concept at this
// layer and would parse the fence as a thematic break).
func Parse(source []byte) []Element {
	var elements []Element
	frontMatter, rest, hasFrontMatter := splitFrontMatter(source)
	if hasFrontMatter {
		elements = append(elements, FrontMatter{Contents: frontMatter})
		source = rest
	}

	document := getParser().Parser().Parse(text.NewReader(source))
	extractor := &elementExtractor{source: source}
	for node := document.FirstChild(); node != nil; node = node.NextSibling() {
		elements = append(elements, extractor.extract(node)...)
	}
	return elements
}

// ParseString is Parse over a string.
func ParseString(source string) []Element {
	return Parse([]byte(source))
}

// splitFrontMatter detects a document-leading `---` fence and returns
// the raw text between it and its closing `---` line, plus the
// remaining source.
func splitFrontMatter(source []byte) (string, []byte, bool) {
	lines := strings.SplitAfter(string(source), "\n")
	if len(lines) == 0 || strings.TrimRight(lines[0], "\r\n") != "---" {
		return "", nil, false
	}
	for index := 1; index < len(lines); index++ {
		if strings.TrimRight(lines[index], "\r\n") == "---" {
			contents := strings.Join(lines[1:index], "")
			rest := strings.Join(lines[index+1:], "")
			return contents, []byte(rest), true
		}
	}
	return "", nil, false
}

// elementExtractor converts top-level goldmark AST nodes into
// elements. It holds the raw source because goldmark nodes reference
// text as segments into it.
type elementExtractor struct {
	source []byte
}

func (extractor *elementExtractor) extract(node ast.Node) []Element {
	switch typed := node.(type) {
	case *ast.Heading:
		heading := extractor.extractHeading(typed)
		return []Element{heading}
	case *ast.Paragraph:
		return extractor.extractParagraph(typed)
	case *ast.List:
		list := List{}
		extractor.collectListItems(typed, 0, &list.Items)
		return []Element{list}
	case *ast.FencedCodeBlock:
		return []Element{Code{
			Contents: extractor.nodeLines(typed),
			Language: string(typed.Language(extractor.source)),
		}}
	case *ast.CodeBlock:
		return []Element{Code{Contents: extractor.nodeLines(typed)}}
	case *ast.Blockquote:
		return []Element{BlockQuote{Lines: extractor.blockLines(typed)}}
	case *ast.ThematicBreak:
		return []Element{ThematicBreak{}}
	case *ast.HTMLBlock:
		if comment, ok := commentContents(extractor.nodeLines(typed)); ok {
			return []Element{Comment{Contents: comment}}
		}
		return nil
	case *extast.Table:
		return []Element{extractor.extractTable(typed)}
	default:
		return nil
	}
}

// extractHeading distinguishes setext headings (slide titles) from
// ATX headings. Goldmark does not record which syntax produced a
// heading, so we inspect the source: an ATX heading's line starts
// with '#', a setext heading's does not.
func (extractor *elementExtractor) extractHeading(heading *ast.Heading) Element {
	headingText := extractor.inlineText(heading, true)
	if heading.Lines().Len() > 0 {
		segment := heading.Lines().At(0)
		if !lineStartsWithHash(extractor.source, segment.Start) {
			return SlideTitle{Text: headingText}
		}
	}
	return Heading{Level: heading.Level, Text: headingText}
}

// lineStartsWithHash reports whether the line containing byte offset
// position begins (after indentation) with '#'.
func lineStartsWithHash(source []byte, position int) bool {
	start := position
	for start > 0 && source[start-1] != '\n' {
		start--
	}
	for start < len(source) && (source[start] == ' ' || source[start] == '\t') {
		start++
	}
	return start < len(source) && source[start] == '#'
}

func (extractor *elementExtractor) extractParagraph(paragraph *ast.Paragraph) []Element {
	// A paragraph holding exactly one image is treated as a block
	// image, not inline text.
	if paragraph.ChildCount() == 1 {
		if image, ok := paragraph.FirstChild().(*ast.Image); ok {
			return []Element{Image{Path: string(image.Destination)}}
		}
	}

	collector := &inlineCollector{source: extractor.source}
	collector.collect(paragraph)
	collector.finishRun(false)
	if len(collector.runs) == 0 {
		return nil
	}
	return []Element{Paragraph{Elements: collector.runs}}
}

func (extractor *elementExtractor) collectListItems(list *ast.List, depth int, items *[]ListItem) {
	itemType := ListItemUnordered
	if list.IsOrdered() {
		itemType = ListItemOrderedPeriod
		if list.Marker == ')' {
			itemType = ListItemOrderedParens
		}
	}
	number := list.Start
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		var contents Text
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			switch typed := child.(type) {
			case *ast.List:
				// Flush the item before its nested list so order is
				// preserved, then recurse a level deeper.
				if len(contents.Chunks) > 0 {
					*items = append(*items, ListItem{Depth: depth, Type: itemType, Number: number, Contents: contents})
					contents = Text{}
					number++
				}
				extractor.collectListItems(typed, depth+1, items)
			default:
				inline := extractor.inlineText(child, true)
				contents.Chunks = append(contents.Chunks, inline.Chunks...)
			}
		}
		if len(contents.Chunks) > 0 {
			*items = append(*items, ListItem{Depth: depth, Type: itemType, Number: number, Contents: contents})
			number++
		}
	}
}

func (extractor *elementExtractor) extractTable(table *extast.Table) Table {
	result := Table{}
	for child := table.FirstChild(); child != nil; child = child.NextSibling() {
		row := TableRow{}
		for cell := child.FirstChild(); cell != nil; cell = cell.NextSibling() {
			row.Cells = append(row.Cells, extractor.inlineText(cell, true))
		}
		switch child.Kind() {
		case extast.KindTableHeader:
			result.Header = row
		case extast.KindTableRow:
			result.Rows = append(result.Rows, row)
		}
	}
	return result
}

// inlineText collects a node's inline children into a single Text,
// with soft and hard breaks flattened to spaces.
func (extractor *elementExtractor) inlineText(node ast.Node, flattenBreaks bool) Text {
	collector := &inlineCollector{source: extractor.source, flattenBreaks: flattenBreaks}
	collector.collect(node)
	collector.finishRun(false)
	var merged Text
	for _, run := range collector.runs {
		merged.Chunks = append(merged.Chunks, run.Text.Chunks...)
	}
	return merged
}

// nodeLines concatenates a block node's raw source lines.
func (extractor *elementExtractor) nodeLines(node ast.Node) string {
	var contents strings.Builder
	lines := node.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		contents.Write(segment.Value(extractor.source))
	}
	return contents.String()
}

// blockLines collects the raw source lines of every block inside a
// container (used for block quotes, which render preformatted).
func (extractor *elementExtractor) blockLines(node ast.Node) []string {
	var collected []string
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		lines := child.Lines()
		for index := 0; index < lines.Len(); index++ {
			segment := lines.At(index)
			line := strings.TrimRight(string(segment.Value(extractor.source)), "\r\n")
			collected = append(collected, line)
		}
	}
	return collected
}

// commentContents extracts the inner text of an HTML comment block,
// or reports false for any other HTML.
func commentContents(html string) (string, bool) {
	trimmed := strings.TrimSpace(html)
	if !strings.HasPrefix(trimmed, "<!--") || !strings.HasSuffix(trimmed, "-->") {
		return "", false
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(trimmed, "<!--"), "-->")
	return strings.TrimSpace(inner), true
}

// inlineCollector walks inline nodes building styled text runs. Runs
// split at soft line breaks (each source line of a paragraph becomes
// its own run); hard breaks additionally record an explicit break
// marker. Style counters rather than booleans handle nested emphasis.
type inlineCollector struct {
	source        []byte
	flattenBreaks bool

	runs    []ParagraphElement
	current Text

	boldCount          int
	italicCount        int
	strikethroughCount int
}

func (collector *inlineCollector) style() TextStyle {
	return TextStyle{
		Bold:          collector.boldCount > 0,
		Italic:        collector.italicCount > 0,
		Strikethrough: collector.strikethroughCount > 0,
	}
}

func (collector *inlineCollector) append(text string, style TextStyle) {
	if text == "" {
		return
	}
	collector.current.Chunks = append(collector.current.Chunks, Styled(text, style))
}

func (collector *inlineCollector) finishRun(explicitBreak bool) {
	if len(collector.current.Chunks) > 0 {
		collector.runs = append(collector.runs, ParagraphElement{Text: collector.current})
		collector.current = Text{}
	}
	if explicitBreak {
		collector.runs = append(collector.runs, ParagraphElement{LineBreak: true})
	}
}

func (collector *inlineCollector) collect(node ast.Node) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *ast.Text:
			collector.append(string(typed.Segment.Value(collector.source)), collector.style())
			if typed.SoftLineBreak() {
				if collector.flattenBreaks {
					collector.append(" ", collector.style())
				} else {
					collector.finishRun(false)
				}
			}
			if typed.HardLineBreak() {
				if collector.flattenBreaks {
					collector.append(" ", collector.style())
				} else {
					collector.finishRun(true)
				}
			}
		case *ast.String:
			collector.append(string(typed.Value), collector.style())
		case *ast.Emphasis:
			if typed.Level >= 2 {
				collector.boldCount++
				collector.collect(typed)
				collector.boldCount--
			} else {
				collector.italicCount++
				collector.collect(typed)
				collector.italicCount--
			}
		case *extast.Strikethrough:
			collector.strikethroughCount++
			collector.collect(typed)
			collector.strikethroughCount--
		case *ast.CodeSpan:
			style := collector.style()
			style.Code = true
			collector.append(collector.codeSpanText(typed), style)
		case *ast.Link:
			collector.collect(typed)
		case *ast.AutoLink:
			collector.append(string(typed.URL(collector.source)), collector.style())
		default:
			collector.collect(child)
		}
	}
}

func (collector *inlineCollector) codeSpanText(node *ast.CodeSpan) string {
	var code strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch typed := child.(type) {
		case *ast.Text:
			code.Write(typed.Segment.Value(collector.source))
		case *ast.String:
			code.Write(typed.Value)
		}
	}
	return code.String()
}
