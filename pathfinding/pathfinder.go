// Package pathfinding routes orthogonal connectors between two shapes on a
// grid fitted exactly between their anchors, stepping around obstacle shapes.
package pathfinding

import (
	"fmt"
	"math"
	"strings"

	"gridroute/core"
	"gridroute/geometry"
)

// IsOrthogonal reports whether every segment of the polyline is horizontal
// or vertical.
func IsOrthogonal(points []core.Point) bool {
	for i := 1; i < len(points); i++ {
		if !geometry.AlmostEqual(points[i].X, points[i-1].X) &&
			!geometry.AlmostEqual(points[i].Y, points[i-1].Y) {
			return false
		}
	}
	return true
}

// PolylineLength returns the sum of the segment lengths of the polyline.
func PolylineLength(points []core.Point) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += math.Hypot(points[i].X-points[i-1].X, points[i].Y-points[i-1].Y)
	}
	return total
}

// PathToString converts a result to a string representation for debugging.
func PathToString(result Result) string {
	if len(result.Points) == 0 {
		return "empty path"
	}

	var sb strings.Builder
	status := "found"
	if !result.Found {
		status = "partial"
	}
	fmt.Fprintf(&sb, "Path (%s, expanded=%d): ", status, result.Expanded)
	for i, p := range result.Points {
		if i > 0 {
			sb.WriteString(" → ")
		}
		fmt.Fprintf(&sb, "(%g,%g)", p.X, p.Y)
	}
	return sb.String()
}
