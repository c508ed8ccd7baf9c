// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package presentation

import "testing"

func threeSlides() *Presentation {
	return New([]Slide{{}, {}, {}})
}

func TestNavigationBounds(t *testing.T) {
	deck := threeSlides()

	if deck.CurrentSlideIndex() != 0 {
		t.Fatalf("initial index %d", deck.CurrentSlideIndex())
	}
	if deck.Retreat() {
		t.Error("retreat from the first slide succeeded")
	}
	if deck.CurrentSlideIndex() != 0 {
		t.Error("failed retreat moved the cursor")
	}

	if !deck.Advance() || deck.CurrentSlideIndex() != 1 {
		t.Errorf("advance landed on %d", deck.CurrentSlideIndex())
	}
	if !deck.Advance() || deck.CurrentSlideIndex() != 2 {
		t.Errorf("second advance landed on %d", deck.CurrentSlideIndex())
	}
	if deck.Advance() {
		t.Error("advance past the last slide succeeded")
	}
	if deck.CurrentSlideIndex() != 2 {
		t.Error("failed advance moved the cursor")
	}

	if !deck.Retreat() || deck.CurrentSlideIndex() != 1 {
		t.Errorf("retreat landed on %d", deck.CurrentSlideIndex())
	}
}

func TestJumps(t *testing.T) {
	deck := threeSlides()
	deck.JumpLast()
	if deck.CurrentSlideIndex() != 2 {
		t.Errorf("jump last landed on %d", deck.CurrentSlideIndex())
	}
	deck.JumpFirst()
	if deck.CurrentSlideIndex() != 0 {
		t.Errorf("jump first landed on %d", deck.CurrentSlideIndex())
	}
}

func TestJumpLastOnEmptyPresentation(t *testing.T) {
	deck := New(nil)
	deck.JumpLast()
	if deck.CurrentSlideIndex() != 0 {
		t.Errorf("jump last on empty presentation landed on %d", deck.CurrentSlideIndex())
	}
}

func TestFooterContextFinalizeIsWriteOnce(t *testing.T) {
	context := &FooterContext{}
	if context.Finalized() {
		t.Fatal("fresh context claims to be finalized")
	}
	if context.TotalSlides() != 0 {
		t.Fatalf("unfinalized total %d", context.TotalSlides())
	}

	context.Finalize(7)
	if !context.Finalized() || context.TotalSlides() != 7 {
		t.Fatalf("finalize did not take: %d", context.TotalSlides())
	}

	context.Finalize(99)
	if context.TotalSlides() != 7 {
		t.Errorf("second finalize overwrote the count: %d", context.TotalSlides())
	}
}

func TestFooterContextAuthor(t *testing.T) {
	context := &FooterContext{}
	if context.Author() != "" {
		t.Errorf("default author %q", context.Author())
	}
	context.SetAuthor("bob")
	if context.Author() != "bob" {
		t.Errorf("author %q", context.Author())
	}
}
