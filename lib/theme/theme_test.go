// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package theme

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/deck/lib/markdown"
)

func TestBuiltinThemesLoad(t *testing.T) {
	names := Names()
	for _, required := range []string{"dark", "light"} {
		if !slices.Contains(names, required) {
			t.Errorf("built-in theme %q missing from %v", required, names)
		}
	}
}

func TestLookupByNameReturnsCopy(t *testing.T) {
	first, ok := LookupByName("dark")
	if !ok {
		t.Fatal("dark theme not found")
	}
	first.Footer.Left = "scribbled"

	second, ok := LookupByName("dark")
	if !ok {
		t.Fatal("dark theme not found on second lookup")
	}
	if second.Footer.Left == "scribbled" {
		t.Error("lookup returned a shared instance")
	}
}

func TestLookupByNameUnknown(t *testing.T) {
	if _, ok := LookupByName("no-such-theme"); ok {
		t.Error("lookup of unknown theme succeeded")
	}
}

func TestDefaultIsDark(t *testing.T) {
	dark, ok := LookupByName("dark")
	if !ok {
		t.Fatal("dark theme not found")
	}
	if Default().Code.Style != dark.Code.Style {
		t.Error("default theme is not dark")
	}
}

func TestAlignmentFallback(t *testing.T) {
	empty := new(Theme)
	alignment := empty.Alignment(ElementParagraph)
	if alignment.Type != AlignLeft || alignment.Margin != 0 {
		t.Errorf("fallback alignment %+v", alignment)
	}
}

func TestHeadingLevelClamps(t *testing.T) {
	themed := new(Theme)
	themed.Headings.H1.Prefix = "one"
	themed.Headings.H6.Prefix = "six"

	if style, _ := themed.HeadingLevel(0); style.Prefix != "one" {
		t.Errorf("level 0 resolved to %q", style.Prefix)
	}
	if style, element := themed.HeadingLevel(9); style.Prefix != "six" || element != ElementHeading6 {
		t.Errorf("level 9 resolved to %q (%v)", style.Prefix, element)
	}
}

func TestMergeIsRecursive(t *testing.T) {
	base := new(Theme)
	foreground := markdown.Color("1")
	background := markdown.Color("2")
	base.DefaultStyle.Colors = markdown.Colors{Foreground: &foreground, Background: &background}
	base.Code.Style = "monokai"
	base.Code.Padding = PaddingConfig{Horizontal: 3, Vertical: 1}

	document := "default:\n  colors:\n    foreground: \"9\"\ncode:\n  padding:\n    horizontal: 5\n"
	var override yaml.Node
	if err := yaml.Unmarshal([]byte(document), &override); err != nil {
		t.Fatalf("parsing override: %v", err)
	}

	merged, err := Merge(base, &override)
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	if merged.DefaultStyle.Colors.Foreground == nil || *merged.DefaultStyle.Colors.Foreground != "9" {
		t.Errorf("foreground not overridden: %+v", merged.DefaultStyle.Colors)
	}
	// Sibling fields the override never mentions survive the merge.
	if merged.DefaultStyle.Colors.Background == nil || *merged.DefaultStyle.Colors.Background != "2" {
		t.Errorf("background lost: %+v", merged.DefaultStyle.Colors)
	}
	if merged.Code.Style != "monokai" {
		t.Errorf("code style lost: %q", merged.Code.Style)
	}
	if merged.Code.Padding.Horizontal != 5 || merged.Code.Padding.Vertical != 1 {
		t.Errorf("padding merge wrong: %+v", merged.Code.Padding)
	}
	// The base is untouched.
	if *base.DefaultStyle.Colors.Foreground != "1" {
		t.Error("merge modified the base theme")
	}
}

func TestMergeNilOverride(t *testing.T) {
	base := new(Theme)
	base.Code.Style = "github"
	merged, err := Merge(base, nil)
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}
	if merged.Code.Style != "github" {
		t.Errorf("nil override changed the theme: %q", merged.Code.Style)
	}
}

func TestLoadFromPathYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	contents := "code:\n  style: github\nfooter:\n  style: progress_bar\n  character: \"=\"\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Code.Style != "github" {
		t.Errorf("code style %q", loaded.Code.Style)
	}
	if loaded.Footer.Style != FooterProgressBar || loaded.Footer.Character != "=" {
		t.Errorf("footer %+v", loaded.Footer)
	}
}

func TestLoadFromPathJSONC(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.jsonc")
	contents := `{
	// the highlighting style
	"code": {"style": "github"},
	"headings": {"h1": {"prefix": "#"}},
}`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Code.Style != "github" {
		t.Errorf("code style %q", loaded.Code.Style)
	}
	if loaded.Headings.H1.Prefix != "#" {
		t.Errorf("h1 prefix %q", loaded.Headings.H1.Prefix)
	}
}

func TestLoadFromPathMissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	loadError, ok := err.(*LoadError)
	if !ok {
		t.Fatalf("expected LoadError, got %T", err)
	}
	if loadError.Path == "" {
		t.Error("load error does not carry the path")
	}
}
