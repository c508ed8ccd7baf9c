// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package resource loads external resources referenced by a
// presentation. Today that means images: decoded once, cached by
// path, and handed to the render pipeline as opaque handles.
package resource

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
)

// Image is a decoded image handle. The pixel data is immutable after
// loading; the render pipeline samples it when drawing.
type Image struct {
	Path   string
	Pixels image.Image
}

// Bounds returns the pixel dimensions.
func (img *Image) Bounds() (width, height int) {
	bounds := img.Pixels.Bounds()
	return bounds.Dx(), bounds.Dy()
}

// LoadImageError is an image that could not be read or decoded.
type LoadImageError struct {
	Path string
	Err  error
}

func (e *LoadImageError) Error() string {
	return fmt.Sprintf("loading image %s: %v", e.Path, e.Err)
}

func (e *LoadImageError) Unwrap() error {
	return e.Err
}

// Resources resolves and caches resources relative to a base
// directory (normally the presentation file's directory).
type Resources struct {
	basePath string
	images   map[string]*Image
}

// New creates a resource loader rooted at basePath.
func New(basePath string) *Resources {
	return &Resources{
		basePath: basePath,
		images:   make(map[string]*Image),
	}
}

// Image loads and decodes the image at path (relative paths resolve
// against the base directory). Repeated loads of the same path return
// the cached handle.
func (resources *Resources) Image(path string) (*Image, error) {
	if cached, ok := resources.images[path]; ok {
		return cached, nil
	}

	resolved := path
	if !filepath.IsAbs(path) {
		resolved = filepath.Join(resources.basePath, path)
	}
	file, err := os.Open(resolved)
	if err != nil {
		return nil, &LoadImageError{Path: path, Err: err}
	}
	defer file.Close()

	decoded, _, err := image.Decode(file)
	if err != nil {
		return nil, &LoadImageError{Path: path, Err: err}
	}
	loaded := &Image{Path: path, Pixels: decoded}
	resources.images[path] = loaded
	return loaded, nil
}
