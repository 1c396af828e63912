package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"honnef.co/go/curve"
)

type Point = curve.Point

func finite(p Point) bool {
	return !p.IsInf() && !p.IsNaN()
}

// Path is a Bézier path stored in diagram documents in space separated SVG
// syntax ("M 100 100 Q 200 100 300 100").
type Path curve.BezPath

func (p Path) String() string {
	var sb strings.Builder
	for i, el := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch el.Kind {
		case curve.MoveToKind:
			fmt.Fprintf(&sb, "M %s %s", formatCoord(el.P0.X), formatCoord(el.P0.Y))
		case curve.LineToKind:
			fmt.Fprintf(&sb, "L %s %s", formatCoord(el.P0.X), formatCoord(el.P0.Y))
		case curve.QuadToKind:
			fmt.Fprintf(&sb, "Q %s %s %s %s",
				formatCoord(el.P0.X), formatCoord(el.P0.Y),
				formatCoord(el.P1.X), formatCoord(el.P1.Y))
		case curve.CubicToKind:
			fmt.Fprintf(&sb, "C %s %s %s %s %s %s",
				formatCoord(el.P0.X), formatCoord(el.P0.Y),
				formatCoord(el.P1.X), formatCoord(el.P1.Y),
				formatCoord(el.P2.X), formatCoord(el.P2.Y))
		}
	}
	return sb.String()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Start returns the first point of the path.
func (p Path) Start() (Point, bool) {
	if len(p) == 0 {
		return Point{}, false
	}
	return p[0].P0, true
}

// End returns the point where rendering of the path finishes.
func (p Path) End() (Point, bool) {
	if len(p) == 0 {
		return Point{}, false
	}
	return p[len(p)-1].EndPoint()
}

// Polylines flattens the path to within tolerance pixels, one point slice per
// subpath.
func (p Path) Polylines(tolerance float64) [][]Point {
	var out [][]Point
	var cur []Point
	for el := range curve.BezPath(p).Flatten(tolerance) {
		switch el.Kind {
		case curve.MoveToKind:
			if len(cur) > 0 {
				out = append(out, cur)
			}
			cur = []Point{el.P0}
		case curve.LineToKind:
			cur = append(cur, el.P0)
		}
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// Distance returns how far pt is from the nearest point on the path. A path
// without segments is infinitely far away.
func (p Path) Distance(pt Point) float64 {
	best := math.Inf(1)
	for seg := range curve.BezPath(p).Segments() {
		d, _ := seg.Nearest(pt, 1e-3)
		best = math.Min(best, d)
	}
	return math.Sqrt(best)
}

var errBadPath = errors.New("malformed path data")

// ParsePath reads absolute M, L, Q and C commands as produced by
// Path.String.
func ParsePath(s string) (Path, error) {
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	var path curve.BezPath
	for i := 0; i < len(fields); {
		cmd := fields[i]
		i++
		var n int
		switch cmd {
		case "M", "L":
			n = 2
		case "Q":
			n = 4
		case "C":
			n = 6
		default:
			return nil, fmt.Errorf("%w: unknown command %q", errBadPath, cmd)
		}
		if i+n > len(fields) {
			return nil, fmt.Errorf("%w: %s needs %d coordinates", errBadPath, cmd, n)
		}
		pts := make([]Point, n/2)
		for j := range pts {
			x, err := strconv.ParseFloat(fields[i+2*j], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", errBadPath, err)
			}
			y, err := strconv.ParseFloat(fields[i+2*j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", errBadPath, err)
			}
			pts[j] = curve.Pt(x, y)
		}
		i += n
		switch cmd {
		case "M":
			path.MoveTo(pts[0])
		case "L":
			path.LineTo(pts[0])
		case "Q":
			path.QuadTo(pts[0], pts[1])
		case "C":
			path.CubicTo(pts[0], pts[1], pts[2])
		}
	}
	if len(path) > 0 && path[0].Kind != curve.MoveToKind {
		return nil, fmt.Errorf("%w: path must start with M", errBadPath)
	}
	return Path(path), nil
}

// BuildPath turns captured curve points into a path. Two points give a
// straight segment and three a single quadratic through the middle control
// point. Longer runs are grouped in threes after the first point, each group
// emitted as a cubic; one leftover point becomes a line and two leftover
// points a quadratic.
func BuildPath(points []Point) Path {
	if len(points) < 2 {
		return nil
	}
	var path curve.BezPath
	path.MoveTo(points[0])
	switch len(points) {
	case 2:
		path.LineTo(points[1])
		return Path(path)
	case 3:
		path.QuadTo(points[1], points[2])
		return Path(path)
	}

	rest := points[1:]
	for i := 0; i < len(rest)-2; i += 3 {
		path.CubicTo(rest[i], rest[i+1], rest[i+2])
	}
	switch len(rest) % 3 {
	case 1:
		path.LineTo(rest[len(rest)-1])
	case 2:
		path.QuadTo(rest[len(rest)-2], rest[len(rest)-1])
	}
	return Path(path)
}

// BuildArrowhead returns two strokes leaving tip at ±halfAngle from the
// reverse of the prev→tip direction. Coincident points fall back to the +x
// direction.
func BuildArrowhead(tip, prev Point, length, halfAngle float64) Path {
	dir := curve.Vec(1, 0)
	if tip.Distance(prev) > 1e-9 {
		dir = tip.Sub(prev)
	}
	th := dir.Angle()
	var head curve.BezPath
	head.MoveTo(tip)
	head.LineTo(tip.Translate(curve.VecFromAngle(th - halfAngle).Mul(-length)))
	head.MoveTo(tip)
	head.LineTo(tip.Translate(curve.VecFromAngle(th + halfAngle).Mul(-length)))
	return Path(head)
}

// curveArrowhead builds the arrowhead for the last two points of a curve.
func curveArrowhead(points []Point, length float64) Path {
	if len(points) < 2 {
		return nil
	}
	return BuildArrowhead(points[len(points)-1], points[len(points)-2], length, arrowHeadAngle)
}

// passArrowHead returns the triangle drawn at the end of a pass arrow: tip,
// then the two base corners.
func passArrowHead(from, to Point) [3]Point {
	d := to.Sub(from)
	if d.Hypot() < 1e-9 {
		d = curve.Vec(1, 0)
	}
	dir := d.Normalize()
	perp := curve.Vec(-dir.Y, dir.X)
	half := passHeadHeight / 2
	base := to.Translate(dir.Mul(-half))
	return [3]Point{
		to.Translate(dir.Mul(half)),
		base.Translate(perp.Mul(passHeadWidth / 2)),
		base.Translate(perp.Mul(-passHeadWidth / 2)),
	}
}

func validCurvePoints(points []Point) bool {
	if len(points) < 2 {
		return false
	}
	for _, p := range points {
		if !finite(p) {
			return false
		}
	}
	return true
}
