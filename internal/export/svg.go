package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/dotsprite/internal/braille"
	"github.com/san-kum/dotsprite/internal/grid"
)

const (
	background = "#0a0a0a"
	dotColour  = "#00ff00"
	frameGap   = 2 // dots between filmstrip frames
)

// CanvasToSVG draws every lit dot of a braille canvas as a circle.
func CanvasToSVG(canvas *braille.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}
	return PoseToSVG(canvas.Dots(), canvas.Width, canvas.Height, scale)
}

// PoseToSVG draws one pose of a w × h dot grid, scale pixels per dot.
func PoseToSVG(dots []grid.Coord, w, h int, scale float64) string {
	return FramesToSVG([][]grid.Coord{dots}, w, h, scale)
}

// FramesToSVG lays poses out left to right as a filmstrip.
func FramesToSVG(poses [][]grid.Coord, w, h int, scale float64) string {
	if len(poses) == 0 || w <= 0 || h <= 0 {
		return ""
	}
	if scale <= 0 {
		scale = 1
	}

	stride := float64(w+frameGap) * scale
	width := stride*float64(len(poses)) - float64(frameGap)*scale
	height := float64(h) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, width, height, width, height, background, dotColour))

	dotRadius := scale * 0.4
	for i, pose := range poses {
		offset := stride * float64(i)
		for _, d := range pose {
			if !d.In(w, h) {
				continue
			}
			cx := offset + float64(d.Col)*scale + scale/2
			cy := float64(d.Row)*scale + scale/2
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
