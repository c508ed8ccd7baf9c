// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package builder

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/deck/lib/markdown"
	"github.com/bureau-foundation/deck/lib/presentation"
	"github.com/bureau-foundation/deck/lib/theme"
)

// FooterGenerator is the deferred footer operation. One generator is
// created per slide at build time, capturing the footer style, the
// slide's index, and a reference to the footer context shared across
// the whole presentation. The total slide count is only known after
// the entire document has been consumed, and the window width only at
// render time — so the footer's operations are produced fresh on
// every draw.
type FooterGenerator struct {
	style        theme.FooterStyle
	currentSlide int
	context      *presentation.FooterContext
}

// Operations produces the footer's render operations for the current
// window size.
func (generator *FooterGenerator) Operations(dimensions presentation.WindowSize) []presentation.RenderOperation {
	switch generator.style.Style {
	case theme.FooterTemplate:
		return generator.templateOperations()
	case theme.FooterProgressBar:
		return generator.progressBarOperations(dimensions)
	default:
		return nil
	}
}

func (generator *FooterGenerator) templateOperations() []presentation.RenderOperation {
	var operations []presentation.RenderOperation
	if generator.style.Left != "" {
		operations = append(operations,
			presentation.JumpToWindowBottom{},
			presentation.RenderTextLine{
				Line:      generator.renderTemplate(generator.style.Left),
				Alignment: theme.LeftAligned(1),
			},
		)
	}
	if generator.style.Right != "" {
		operations = append(operations,
			presentation.JumpToWindowBottom{},
			presentation.RenderTextLine{
				Line:      generator.renderTemplate(generator.style.Right),
				Alignment: theme.RightAligned(1),
			},
		)
	}
	return operations
}

// renderTemplate substitutes the slide position (1-indexed), total
// slide count, and author into a footer template.
func (generator *FooterGenerator) renderTemplate(template string) markdown.WeightedLine {
	contents := strings.ReplaceAll(template, "{current_slide}", strconv.Itoa(generator.currentSlide+1))
	contents = strings.ReplaceAll(contents, "{total_slides}", strconv.Itoa(generator.context.TotalSlides()))
	contents = strings.ReplaceAll(contents, "{author}", generator.context.Author())
	return markdown.NewWeightedLine([]markdown.StyledText{
		markdown.Styled(contents, markdown.TextStyle{Colors: generator.style.Colors}),
	})
}

func (generator *FooterGenerator) progressBarOperations(dimensions presentation.WindowSize) []presentation.RenderOperation {
	totalSlides := generator.context.TotalSlides()
	if totalSlides == 0 {
		// Unfinalized context: rendering before the build finished is
		// a usage error; draw nothing rather than divide by zero.
		return nil
	}

	character := generator.style.Character
	if character == "" {
		character = "█"
	}
	glyphWidth := lipgloss.Width(character)
	if glyphWidth == 0 {
		return nil
	}
	totalColumns := dimensions.Columns / glyphWidth
	progressRatio := float64(generator.currentSlide+1) / float64(totalSlides)
	barLength := int(math.Ceil(float64(totalColumns) * progressRatio))

	bar := markdown.NewWeightedLine([]markdown.StyledText{
		markdown.Styled(strings.Repeat(character, barLength), markdown.TextStyle{Colors: generator.style.Colors}),
	})
	return []presentation.RenderOperation{
		presentation.JumpToWindowBottom{},
		presentation.RenderTextLine{Line: bar, Alignment: theme.LeftAligned(0)},
	}
}
