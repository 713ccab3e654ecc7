// Package export renders saved trajectories to SVG.
package export

import (
	"fmt"
	"os"
	"strings"
)

// TrajectorySVG draws the first two state components of a trajectory as
// a polyline with start and end markers. One-dimensional states are
// plotted against the step index.
func TrajectorySVG(states [][]float64, width, height int, strokeColor string) string {
	points := planarPoints(states)
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0][0], points[0][0]
	minY, maxY := points[0][1], points[0][1]
	for _, p := range points {
		if p[0] < minX {
			minX = p[0]
		}
		if p[0] > maxX {
			maxX = p[0]
		}
		if p[1] < minY {
			minY = p[1]
		}
		if p[1] > maxY {
			maxY = p[1]
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	toPixel := func(p [2]float64) (float64, float64) {
		x := (p[0] - minX) / rangeX * float64(width)
		y := float64(height) - (p[1]-minY)/rangeY*float64(height)
		return x, y
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range points {
		x, y := toPixel(p)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")

	sx, sy := toPixel(points[0])
	ex, ey := toPixel(points[len(points)-1])
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="4" fill="#00ff88"/>
<circle cx="%.1f" cy="%.1f" r="4" fill="#ff4444"/>
</svg>`, sx, sy, ex, ey))
	return sb.String()
}

// WriteTrajectorySVG renders the trajectory and writes it to a file.
func WriteTrajectorySVG(path string, states [][]float64, width, height int) error {
	svg := TrajectorySVG(states, width, height, "#00ccff")
	if svg == "" {
		return fmt.Errorf("export: trajectory too short to plot")
	}
	return os.WriteFile(path, []byte(svg), 0644)
}

func planarPoints(states [][]float64) [][2]float64 {
	points := make([][2]float64, 0, len(states))
	for k, row := range states {
		switch {
		case len(row) >= 2:
			points = append(points, [2]float64{row[0], row[1]})
		case len(row) == 1:
			points = append(points, [2]float64{float64(k), row[0]})
		}
	}
	return points
}
