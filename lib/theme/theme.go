// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package theme defines presentation themes: colors, alignment, and
// per-element styling for every structural element a slide can
// contain. Built-in themes are embedded YAML files; user themes load
// from YAML or JSONC paths. Front matter can override individual
// fields of a resolved theme via a structural merge.
package theme

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/deck/lib/markdown"
)

//go:embed themes/*.yaml
var builtinFiles embed.FS

// ElementType identifies which element's styling is being resolved.
type ElementType int

const (
	ElementParagraph ElementType = iota
	ElementSlideTitle
	ElementHeading1
	ElementHeading2
	ElementHeading3
	ElementHeading4
	ElementHeading5
	ElementHeading6
	ElementList
	ElementCode
	ElementTable
	ElementBlockQuote
	ElementPresentationTitle
	ElementPresentationSubTitle
	ElementPresentationAuthor
)

// AlignmentType selects the horizontal placement rule for a line.
type AlignmentType string

const (
	// AlignLeft indents by Margin columns from the left edge.
	AlignLeft AlignmentType = "left"
	// AlignRight aligns the right edge with Margin columns of
	// right-hand space.
	AlignRight AlignmentType = "right"
	// AlignCenter centers within the available width, falling back
	// to left alignment with MinimumMargin when the window is
	// narrower than MinimumSize plus both margins.
	AlignCenter AlignmentType = "center"
)

// Alignment is the horizontal placement rule for rendered lines.
// Preformatted blocks align as a unit using their shared block width.
type Alignment struct {
	Type          AlignmentType `yaml:"type"`
	Margin        int           `yaml:"margin"`
	MinimumSize   int           `yaml:"minimum_size"`
	MinimumMargin int           `yaml:"minimum_margin"`
}

// LeftAligned is a left alignment with the given margin.
func LeftAligned(margin int) Alignment {
	return Alignment{Type: AlignLeft, Margin: margin}
}

// RightAligned is a right alignment with the given margin.
func RightAligned(margin int) Alignment {
	return Alignment{Type: AlignRight, Margin: margin}
}

// Centered is a center alignment with a minimum size and margin.
func Centered(minimumSize, minimumMargin int) Alignment {
	return Alignment{Type: AlignCenter, MinimumSize: minimumSize, MinimumMargin: minimumMargin}
}

// BasicStyle is the common element style: colors plus an optional
// alignment override.
type BasicStyle struct {
	Colors    markdown.Colors `yaml:"colors"`
	Alignment *Alignment      `yaml:"alignment"`
}

// HeadingStyle styles one heading level. Prefix, when set, is
// prepended (plus one space) before the heading text.
type HeadingStyle struct {
	Prefix    string          `yaml:"prefix"`
	Colors    markdown.Colors `yaml:"colors"`
	Alignment *Alignment      `yaml:"alignment"`
}

// HeadingStyles collects the six heading levels.
type HeadingStyles struct {
	H1 HeadingStyle `yaml:"h1"`
	H2 HeadingStyle `yaml:"h2"`
	H3 HeadingStyle `yaml:"h3"`
	H4 HeadingStyle `yaml:"h4"`
	H5 HeadingStyle `yaml:"h5"`
	H6 HeadingStyle `yaml:"h6"`
}

// SlideTitleStyle styles setext slide titles: explicit vertical
// padding and an optional horizontal separator rule beneath.
type SlideTitleStyle struct {
	Colors        markdown.Colors `yaml:"colors"`
	Alignment     *Alignment      `yaml:"alignment"`
	PaddingTop    int             `yaml:"padding_top"`
	PaddingBottom int             `yaml:"padding_bottom"`
	Separator     bool            `yaml:"separator"`
}

// PaddingConfig is horizontal/vertical padding in columns and rows.
type PaddingConfig struct {
	Horizontal int `yaml:"horizontal"`
	Vertical   int `yaml:"vertical"`
}

// CodeStyle styles code blocks. Style names a chroma style ("monokai",
// "github"); unknown names fall back to chroma's default.
type CodeStyle struct {
	Colors    markdown.Colors `yaml:"colors"`
	Alignment *Alignment      `yaml:"alignment"`
	Padding   PaddingConfig   `yaml:"padding"`
	Style     string          `yaml:"style"`
}

// BlockQuoteStyle styles block quotes: a per-line prefix and the
// colors applied to the whole block.
type BlockQuoteStyle struct {
	Prefix    string          `yaml:"prefix"`
	Colors    markdown.Colors `yaml:"colors"`
	Alignment *Alignment      `yaml:"alignment"`
}

// AuthorPositioning places the intro slide's author line.
type AuthorPositioning string

const (
	// AuthorBelowTitle puts the author a fixed distance below the title.
	AuthorBelowTitle AuthorPositioning = "below_title"
	// AuthorPageBottom pins the author to the slide's bottom row.
	AuthorPageBottom AuthorPositioning = "page_bottom"
)

// IntroSlideStyle styles the synthesized title slide.
type IntroSlideStyle struct {
	Title    BasicStyle  `yaml:"title"`
	Subtitle BasicStyle  `yaml:"subtitle"`
	Author   AuthorStyle `yaml:"author"`
}

// AuthorStyle styles the intro slide author line.
type AuthorStyle struct {
	Colors      markdown.Colors   `yaml:"colors"`
	Alignment   *Alignment        `yaml:"alignment"`
	Positioning AuthorPositioning `yaml:"positioning"`
}

// FooterStyleType selects how the footer renders.
type FooterStyleType string

const (
	// FooterTemplate substitutes {current_slide}, {total_slides} and
	// {author} into the left/right template strings.
	FooterTemplate FooterStyleType = "template"
	// FooterProgressBar draws a glyph bar proportional to progress.
	FooterProgressBar FooterStyleType = "progress_bar"
	// FooterEmpty renders nothing.
	FooterEmpty FooterStyleType = "empty"
)

// FooterStyle configures the per-slide footer. The zero value (empty
// Style) renders nothing.
type FooterStyle struct {
	Style     FooterStyleType `yaml:"style"`
	Left      string          `yaml:"left"`
	Right     string          `yaml:"right"`
	Character string          `yaml:"character"`
	Colors    markdown.Colors `yaml:"colors"`
}

// Theme is a complete presentation theme. The zero value is usable:
// no colors, left alignment, no padding, no footer.
type Theme struct {
	DefaultStyle BasicStyle      `yaml:"default"`
	SlideTitle   SlideTitleStyle `yaml:"slide_title"`
	Headings     HeadingStyles   `yaml:"headings"`
	Paragraph    BasicStyle      `yaml:"paragraph"`
	List         BasicStyle      `yaml:"list"`
	Code         CodeStyle       `yaml:"code"`
	Table        BasicStyle      `yaml:"table"`
	BlockQuote   BlockQuoteStyle `yaml:"block_quote"`
	IntroSlide   IntroSlideStyle `yaml:"intro_slide"`
	Footer       FooterStyle     `yaml:"footer"`
}

// Alignment resolves the alignment for an element type, falling back
// to left alignment with no margin when the theme does not override
// it.
func (theme *Theme) Alignment(element ElementType) Alignment {
	var configured *Alignment
	switch element {
	case ElementParagraph:
		configured = theme.Paragraph.Alignment
	case ElementSlideTitle:
		configured = theme.SlideTitle.Alignment
	case ElementHeading1:
		configured = theme.Headings.H1.Alignment
	case ElementHeading2:
		configured = theme.Headings.H2.Alignment
	case ElementHeading3:
		configured = theme.Headings.H3.Alignment
	case ElementHeading4:
		configured = theme.Headings.H4.Alignment
	case ElementHeading5:
		configured = theme.Headings.H5.Alignment
	case ElementHeading6:
		configured = theme.Headings.H6.Alignment
	case ElementList:
		configured = theme.List.Alignment
	case ElementCode:
		configured = theme.Code.Alignment
	case ElementTable:
		configured = theme.Table.Alignment
	case ElementBlockQuote:
		configured = theme.BlockQuote.Alignment
	case ElementPresentationTitle:
		configured = theme.IntroSlide.Title.Alignment
	case ElementPresentationSubTitle:
		configured = theme.IntroSlide.Subtitle.Alignment
	case ElementPresentationAuthor:
		configured = theme.IntroSlide.Author.Alignment
	}
	if configured != nil {
		return *configured
	}
	return LeftAligned(0)
}

// HeadingLevel returns the style and element type for a heading
// level. Levels outside 1..6 clamp to the nearest valid level.
func (theme *Theme) HeadingLevel(level int) (HeadingStyle, ElementType) {
	switch {
	case level <= 1:
		return theme.Headings.H1, ElementHeading1
	case level == 2:
		return theme.Headings.H2, ElementHeading2
	case level == 3:
		return theme.Headings.H3, ElementHeading3
	case level == 4:
		return theme.Headings.H4, ElementHeading4
	case level == 5:
		return theme.Headings.H5, ElementHeading5
	default:
		return theme.Headings.H6, ElementHeading6
	}
}

// LoadError is a theme file that could not be read or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading theme %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

var (
	builtinThemes map[string]*Theme
	builtinOnce   sync.Once
)

// loadBuiltins parses the embedded theme files. The embedded files
// are part of the binary; a parse failure is a programming error and
// panics at first use rather than surfacing on every lookup.
func loadBuiltins() map[string]*Theme {
	builtinOnce.Do(func() {
		builtinThemes = make(map[string]*Theme)
		entries, err := builtinFiles.ReadDir("themes")
		if err != nil {
			panic(fmt.Sprintf("embedded themes unreadable: %v", err))
		}
		for _, entry := range entries {
			data, err := builtinFiles.ReadFile("themes/" + entry.Name())
			if err != nil {
				panic(fmt.Sprintf("embedded theme %s unreadable: %v", entry.Name(), err))
			}
			parsed := new(Theme)
			if err := yaml.Unmarshal(data, parsed); err != nil {
				panic(fmt.Sprintf("embedded theme %s invalid: %v", entry.Name(), err))
			}
			name := strings.TrimSuffix(entry.Name(), ".yaml")
			builtinThemes[name] = parsed
		}
	})
	return builtinThemes
}

// LookupByName returns a copy of the built-in theme with the given
// name, or false if none exists.
func LookupByName(name string) (*Theme, bool) {
	builtin, ok := loadBuiltins()[name]
	if !ok {
		return nil, false
	}
	copied, err := deepCopy(builtin)
	if err != nil {
		return nil, false
	}
	return copied, true
}

// Names returns the built-in theme names, for help output.
func Names() []string {
	var names []string
	for name := range loadBuiltins() {
		names = append(names, name)
	}
	return names
}

// Default returns the theme used when neither the command line nor
// front matter picks one.
func Default() *Theme {
	if parsed, ok := LookupByName("dark"); ok {
		return parsed
	}
	return new(Theme)
}

// LoadFromPath reads a theme file. YAML is the native format; files
// ending in .json or .jsonc are accepted by stripping comments and
// trailing commas first (YAML is a JSON superset, so the result
// parses with the same decoder).
func LoadFromPath(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	switch filepath.Ext(path) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}
	parsed := new(Theme)
	if err := yaml.Unmarshal(data, parsed); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return parsed, nil
}

// Merge applies overrides onto a base theme and returns the result as
// a new theme; neither input is modified. The merge is structural and
// recursive: fields present in the override document replace the
// base's, absent fields fall through. Implemented by deep-copying the
// base and decoding the override document onto the copy — the YAML
// decoder only touches fields the document mentions.
func Merge(base *Theme, overrides *yaml.Node) (*Theme, error) {
	merged, err := deepCopy(base)
	if err != nil {
		return nil, err
	}
	if overrides != nil {
		if err := overrides.Decode(merged); err != nil {
			return nil, fmt.Errorf("applying theme overrides: %w", err)
		}
	}
	return merged, nil
}

func deepCopy(base *Theme) (*Theme, error) {
	raw, err := yaml.Marshal(base)
	if err != nil {
		return nil, fmt.Errorf("copying theme: %w", err)
	}
	copied := new(Theme)
	if err := yaml.Unmarshal(raw, copied); err != nil {
		return nil, fmt.Errorf("copying theme: %w", err)
	}
	return copied, nil
}
