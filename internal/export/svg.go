package export

import (
	"fmt"
	"strings"

	"github.com/soham-b/orbitlab/internal/orbit"
)

// OrbitSVG renders the (xi, yi) phase-plane projection of one orbit as
// an SVG polyline. Component indices follow the Phase layout, so xi=0,
// yi=1 is the x-y plane and xi=0, yi=ndim is the x-vx plane.
func OrbitSVG(tr *orbit.Trajectory, orbitIdx, xi, yi, width, height int, strokeColor string) string {
	points := make([][2]float64, tr.Len())
	for k, b := range tr.States {
		w := b.Orbit(orbitIdx)
		points[k] = [2]float64{w[xi], w[yi]}
	}
	return polyline(points, width, height, strokeColor)
}

// SeriesSVG renders a running Lyapunov-exponent series against time.
func SeriesSVG(s orbit.LyapunovSeries, width, height int, strokeColor string) string {
	points := make([][2]float64, s.Len())
	for k := range s.Times {
		points[k] = [2]float64{s.Times[k], s.Exponents[k]}
	}
	return polyline(points, width, height, strokeColor)
}

func polyline(points [][2]float64, width, height int, strokeColor string) string {
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

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range points {
		x := (p[0] - minX) / rangeX * float64(width)
		y := float64(height) - (p[1]-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
