// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// deck renders a markdown file as terminal slides.
//
// Usage:
//
//	deck [flags] <presentation.md>
//
// Slides separate on thematic breaks (---) and <!-- end_slide -->
// comments; <!-- pause --> reveals a slide incrementally. Front
// matter configures title, author, and theme.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/bureau-foundation/deck/lib/builder"
	"github.com/bureau-foundation/deck/lib/markdown"
	"github.com/bureau-foundation/deck/lib/presentation"
	"github.com/bureau-foundation/deck/lib/render"
	"github.com/bureau-foundation/deck/lib/resource"
	"github.com/bureau-foundation/deck/lib/theme"
)

// newLogger creates the command logger. Human-readable text when
// stderr is a terminal, JSON when piped or redirected.
func newLogger() *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}

func main() {
	logger := newLogger()
	if err := run(logger); err != nil {
		logger.Error("deck failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	var themeName string
	flags := pflag.NewFlagSet("deck", pflag.ContinueOnError)
	flags.StringVar(&themeName, "theme", "", "built-in theme name (overridden by front matter); one of: "+strings.Join(theme.Names(), ", "))
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: deck [flags] <presentation.md>\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return fmt.Errorf("expected exactly one presentation file")
	}
	path := flags.Arg(0)

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal")
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading presentation: %w", err)
	}

	defaultTheme := theme.Default()
	if themeName != "" {
		resolved, ok := theme.LookupByName(themeName)
		if !ok {
			return fmt.Errorf("theme '%s' does not exist (available: %s)", themeName, strings.Join(theme.Names(), ", "))
		}
		defaultTheme = resolved
	}

	elements := markdown.Parse(source)
	resources := resource.New(filepath.Dir(path))
	built, buildErr := builder.New(defaultTheme, resources).Build(elements)

	drawer, err := render.NewDrawer(os.Stdout, os.Stdin)
	if err != nil {
		return err
	}
	defer drawer.Close()

	if buildErr != nil {
		// Show the failure on the fixed-style error screen, wait for
		// a key, then surface the error after the terminal is
		// restored.
		if renderErr := drawer.RenderError(buildErr.Error()); renderErr != nil {
			return errors.Join(buildErr, renderErr)
		}
		<-readKeys(os.Stdin)
		return buildErr
	}

	return present(built, drawer)
}

// present runs the navigation loop: draw the current slide, then
// redraw on every navigation key or window resize until quit.
func present(built *presentation.Presentation, drawer *render.Drawer) error {
	resize := make(chan os.Signal, 1)
	signal.Notify(resize, unix.SIGWINCH)
	defer signal.Stop(resize)

	keys := readKeys(os.Stdin)
	if err := drawer.RenderSlide(built); err != nil {
		return err
	}

	for {
		redraw := false
		select {
		case <-resize:
			redraw = true
		case pressed, ok := <-keys:
			if !ok {
				return nil
			}
			switch pressed {
			case keyQuit:
				return nil
			case keyNext:
				redraw = built.Advance()
			case keyPrevious:
				redraw = built.Retreat()
			case keyFirst:
				built.JumpFirst()
				redraw = true
			case keyLast:
				built.JumpLast()
				redraw = true
			}
		}
		if redraw {
			if err := drawer.RenderSlide(built); err != nil {
				return err
			}
		}
	}
}
