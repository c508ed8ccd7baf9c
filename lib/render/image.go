// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/deck/lib/resource"
)

// renderImage draws an image as half-block cells: each terminal cell
// shows two vertically stacked pixels, the top as the foreground of
// '▀' and the bottom as its background. The image is scaled with
// nearest-neighbor sampling to fit the remaining slide area and
// centered horizontally.
func (operator *Operator) renderImage(img *resource.Image) error {
	columns := operator.slideSize.Columns
	rowsLeft := operator.slideSize.Rows - operator.currentRow
	if columns <= 0 || rowsLeft <= 0 {
		return &UnsupportedStructureError{Reason: "no room to render image"}
	}

	pixelWidth, pixelHeight := img.Bounds()
	if pixelWidth == 0 || pixelHeight == 0 {
		return &UnsupportedStructureError{Reason: "empty image"}
	}

	// A cell holds one pixel horizontally and two vertically.
	cellColumns := min(columns, pixelWidth)
	cellRows := cellColumns * pixelHeight / (pixelWidth * 2)
	if cellRows > rowsLeft {
		cellRows = rowsLeft
		cellColumns = min(cellRows*2*pixelWidth/pixelHeight, columns)
	}
	if cellColumns <= 0 || cellRows <= 0 {
		return &UnsupportedStructureError{Reason: "window too small for image"}
	}

	startColumn := (columns - cellColumns) / 2
	bounds := img.Pixels.Bounds()
	sample := func(cellX, cellY int) color.Color {
		x := bounds.Min.X + cellX*pixelWidth/cellColumns
		y := bounds.Min.Y + cellY*pixelHeight/(cellRows*2)
		return img.Pixels.At(x, y)
	}

	for row := 0; row < cellRows; row++ {
		operator.terminal.MoveTo(operator.currentRow, startColumn)
		var line strings.Builder
		for column := 0; column < cellColumns; column++ {
			top := hexColor(sample(column, row*2))
			bottom := hexColor(sample(column, row*2+1))
			style := operator.terminal.styles.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom))
			line.WriteString(style.Render("▀"))
		}
		operator.terminal.Print(line.String())
		operator.currentRow++
	}
	return nil
}

func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
