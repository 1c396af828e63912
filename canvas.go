package main

import (
	"image"
	"math"
	"slices"

	"github.com/google/uuid"
	"honnef.co/go/curve"
)

type ObjectKind string

const (
	KindImage     ObjectKind = "image"
	KindRect      ObjectKind = "rect"
	KindLine      ObjectKind = "line"
	KindCircle    ObjectKind = "circle"
	KindPlayer    ObjectKind = "player"
	KindPassArrow ObjectKind = "pass-arrow"
	KindText      ObjectKind = "text"
	KindPath      ObjectKind = "path"
)

// Object is one drawable on the scene. Position fields are interpreted by
// kind: circles, players and anchors are centred on (X, Y); rects, images and
// text use it as the top-left corner; lines and pass arrows run from (X, Y)
// to (X2, Y2). Paths carry their own geometry.
type Object struct {
	ID   string
	Kind ObjectKind

	X, Y   float64
	X2, Y2 float64
	W, H   float64
	Radius float64

	Stroke      string
	Fill        string
	StrokeWidth float64
	Dash        []float64
	Opacity     float64

	Text     string
	FontSize float64

	Path  Path
	Image image.Image
	Src   string

	Selectable bool
	Evented    bool
	// Transient objects (tool previews) are never serialized.
	Transient bool

	CourtElement    bool
	CourtBackground bool

	EditableCurve bool
	CurvePoints   []Point
	ArrowHeadID   string
	AnchorIDs     []string

	Anchor     bool
	PointIndex int
	CurveID    string
}

func (o *Object) Position() Point {
	return curve.Pt(o.X, o.Y)
}

func (o *Object) SetPosition(p Point) {
	switch o.Kind {
	case KindLine, KindPassArrow:
		d := p.Sub(o.Position())
		o.X2 += d.X
		o.Y2 += d.Y
	}
	o.X, o.Y = p.X, p.Y
}

// Bounds returns the axis-aligned bounding box of the object.
func (o *Object) Bounds() (min, max Point) {
	switch o.Kind {
	case KindCircle, KindPlayer:
		return curve.Pt(o.X-o.Radius, o.Y-o.Radius), curve.Pt(o.X+o.Radius, o.Y+o.Radius)
	case KindRect, KindImage:
		return curve.Pt(o.X, o.Y), curve.Pt(o.X+o.W, o.Y+o.H)
	case KindText:
		w := float64(len([]rune(o.Text))) * o.FontSize * 0.6
		return curve.Pt(o.X, o.Y), curve.Pt(o.X+w, o.Y+o.FontSize)
	case KindLine, KindPassArrow:
		return curve.Pt(math.Min(o.X, o.X2), math.Min(o.Y, o.Y2)), curve.Pt(math.Max(o.X, o.X2), math.Max(o.Y, o.Y2))
	case KindPath:
		if len(o.Path) < 2 {
			start, _ := o.Path.Start()
			return start, start
		}
		box := curve.BezPath(o.Path).BoundingBox()
		return curve.Pt(box.MinX(), box.MinY()), curve.Pt(box.MaxX(), box.MaxY())
	}
	return min, max
}

// Contains reports whether p hits the object, allowing slop pixels of slack.
func (o *Object) Contains(p Point, slop float64) bool {
	switch o.Kind {
	case KindCircle, KindPlayer:
		return p.Distance(o.Position()) <= o.Radius+slop
	case KindLine, KindPassArrow:
		distSq, _ := curve.Line{P0: o.Position(), P1: curve.Pt(o.X2, o.Y2)}.Nearest(p, 1e-3)
		return math.Sqrt(distSq) <= o.StrokeWidth/2+slop
	case KindPath:
		return o.Path.Distance(p) <= o.StrokeWidth/2+slop
	}
	min, max := o.Bounds()
	return p.X >= min.X-slop && p.X <= max.X+slop && p.Y >= min.Y-slop && p.Y <= max.Y+slop
}

// Scene is the retained drawing surface: an arena of objects keyed by ID plus
// the paint order. All methods are meant to be called from the single UI
// goroutine.
type Scene struct {
	objects  map[string]*Object
	order    []string
	selected []string
	moving   map[string][]func(*Object)
	deferred []func()

	Width, Height    float64
	SelectionEnabled bool
}

func NewScene() *Scene {
	return &Scene{
		objects: make(map[string]*Object),
		order:   make([]string, 0),
		moving:  make(map[string][]func(*Object)),
		Width:   courtLeft*2 + courtWidth,
		Height:  courtTop*2 + courtWidth*courtAspect,
	}
}

// Add appends obj to the top of the paint order, assigning an ID if it has
// none.
func (s *Scene) Add(obj *Object) *Object {
	if obj.ID == "" {
		obj.ID = uuid.NewString()
	}
	if _, exists := s.objects[obj.ID]; exists {
		s.Remove(obj.ID)
	}
	s.objects[obj.ID] = obj
	s.order = append(s.order, obj.ID)
	return obj
}

func (s *Scene) Remove(id string) bool {
	if _, ok := s.objects[id]; !ok {
		return false
	}
	delete(s.objects, id)
	delete(s.moving, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	if i := slices.Index(s.selected, id); i >= 0 {
		s.selected = slices.Delete(s.selected, i, i+1)
	}
	return true
}

func (s *Scene) Get(id string) *Object {
	return s.objects[id]
}

func (s *Scene) Len() int {
	return len(s.order)
}

// Objects returns the objects in paint order, bottom first.
func (s *Scene) Objects() []*Object {
	objs := make([]*Object, 0, len(s.order))
	for _, id := range s.order {
		objs = append(objs, s.objects[id])
	}
	return objs
}

func (s *Scene) IndexOf(id string) int {
	return slices.Index(s.order, id)
}

// MoveTo places the object at index in the paint order, clamped to the valid
// range.
func (s *Scene) MoveTo(id string, index int) {
	cur := s.IndexOf(id)
	if cur < 0 {
		return
	}
	s.order = slices.Delete(s.order, cur, cur+1)
	index = max(0, min(index, len(s.order)))
	s.order = slices.Insert(s.order, index, id)
}

func (s *Scene) BringToFront(id string) {
	s.MoveTo(id, len(s.order))
}

func (s *Scene) SendToBack(id string) {
	s.MoveTo(id, 0)
}

// ObjectAt returns the topmost evented object under p.
func (s *Scene) ObjectAt(p Point, slop float64) *Object {
	for i := len(s.order) - 1; i >= 0; i-- {
		obj := s.objects[s.order[i]]
		if obj.Evented && obj.Contains(p, slop) {
			return obj
		}
	}
	return nil
}

func (s *Scene) Select(ids ...string) {
	s.selected = s.selected[:0]
	for _, id := range ids {
		if obj := s.objects[id]; obj != nil && obj.Selectable {
			s.selected = append(s.selected, id)
		}
	}
}

func (s *Scene) Selected() []*Object {
	objs := make([]*Object, 0, len(s.selected))
	for _, id := range s.selected {
		if obj := s.objects[id]; obj != nil {
			objs = append(objs, obj)
		}
	}
	return objs
}

func (s *Scene) IsSelected(id string) bool {
	return slices.Contains(s.selected, id)
}

func (s *Scene) DiscardSelection() {
	s.selected = s.selected[:0]
}

// OnMoving subscribes fn to drag moves of the object.
func (s *Scene) OnMoving(id string, fn func(*Object)) {
	s.moving[id] = append(s.moving[id], fn)
}

// MoveObject repositions the object and runs its moving handlers before
// returning.
func (s *Scene) MoveObject(id string, p Point) {
	obj := s.objects[id]
	if obj == nil {
		return
	}
	obj.SetPosition(p)
	for _, fn := range s.moving[id] {
		fn(obj)
	}
}

// Defer queues fn to run on the next frame, after the current event has been
// handled and before the scene is drawn again.
func (s *Scene) Defer(fn func()) {
	s.deferred = append(s.deferred, fn)
}

func (s *Scene) Pending() bool {
	return len(s.deferred) > 0
}

// RunDeferred drains the next-frame queue, including tasks queued by the
// tasks themselves, and returns how many ran.
func (s *Scene) RunDeferred() int {
	n := 0
	for len(s.deferred) > 0 {
		tasks := s.deferred
		s.deferred = nil
		for _, fn := range tasks {
			fn()
			n++
		}
	}
	return n
}

type cell struct {
	ch rune
	fg string
	bg string
}

// Render rasterises the scene into a width x height grid of terminal cells,
// with (panX, panY) as the cell offset of the viewport.
func (s *Scene) Render(width, height, panX, panY int) [][]cell {
	grid := make([][]cell, height)
	for y := range grid {
		grid[y] = make([]cell, width)
		for x := range grid[y] {
			grid[y][x] = cell{ch: ' '}
		}
	}
	put := func(p Point, ch rune, fg string) {
		cx := int(math.Floor(p.X/cellWidth)) - panX
		cy := int(math.Floor(p.Y/cellHeight)) - panY
		if cy < 0 || cy >= height || cx < 0 || cx >= width {
			return
		}
		grid[cy][cx].ch = ch
		grid[cy][cx].fg = fg
	}
	fill := func(min, max Point, bg string) {
		for y := int(math.Floor(min.Y/cellHeight)) - panY; y <= int(math.Floor(max.Y/cellHeight))-panY; y++ {
			for x := int(math.Floor(min.X/cellWidth)) - panX; x <= int(math.Floor(max.X/cellWidth))-panX; x++ {
				if y >= 0 && y < height && x >= 0 && x < width {
					grid[y][x].bg = bg
				}
			}
		}
	}
	polyline := func(pts []Point, ch rune, fg string) {
		for i := 1; i < len(pts); i++ {
			plotSegment(pts[i-1], pts[i], func(p Point) { put(p, ch, fg) })
		}
		if len(pts) == 1 {
			put(pts[0], ch, fg)
		}
	}

	for _, obj := range s.Objects() {
		switch obj.Kind {
		case KindImage:
			// bitmaps only show up in exports; the cells get the floor colour
			min, max := obj.Bounds()
			fill(min, max, colorCourt)
		case KindRect:
			min, max := obj.Bounds()
			if obj.CourtBackground {
				fill(min, max, obj.Fill)
				continue
			}
			polyline([]Point{min, curve.Pt(max.X, min.Y), max, curve.Pt(min.X, max.Y), min}, '·', obj.Stroke)
		case KindLine:
			polyline([]Point{obj.Position(), curve.Pt(obj.X2, obj.Y2)}, '·', obj.Stroke)
		case KindCircle:
			if obj.Anchor {
				glyph := '○'
				if obj.Fill == colorAnchorPoint {
					glyph = '◆'
				}
				put(obj.Position(), glyph, obj.Fill)
				continue
			}
			var ring []Point
			for i := 0; i <= 32; i++ {
				a := float64(i) / 32 * 2 * math.Pi
				ring = append(ring, obj.Position().Translate(curve.VecFromAngle(a).Mul(obj.Radius)))
			}
			polyline(ring, '·', obj.Stroke)
		case KindPlayer:
			min, max := obj.Bounds()
			fill(min, max, obj.Fill)
			label := []rune(obj.Text)
			start := obj.Position().Translate(curve.Vec(-float64(len(label))*cellWidth/2, 0))
			for i, r := range label {
				put(start.Translate(curve.Vec(float64(i)*cellWidth+cellWidth/2, 0)), r, colorCourt)
			}
		case KindPassArrow:
			ch := '╌'
			if obj.Transient {
				ch = '┄'
			}
			polyline([]Point{obj.Position(), curve.Pt(obj.X2, obj.Y2)}, ch, obj.Stroke)
			if !obj.Transient {
				put(curve.Pt(obj.X2, obj.Y2), '▲', obj.Stroke)
			}
		case KindText:
			for i, r := range []rune(obj.Text) {
				put(curve.Pt(obj.X+float64(i)*cellWidth, obj.Y), r, obj.Fill)
			}
		case KindPath:
			ch := '•'
			if obj.Transient {
				ch = '∙'
			}
			for _, poly := range obj.Path.Polylines(cellWidth / 4) {
				polyline(poly, ch, obj.Stroke)
			}
		}
	}
	return grid
}

// plotSegment visits points along a-b at roughly half-cell spacing.
func plotSegment(a, b Point, visit func(Point)) {
	d := b.Sub(a)
	steps := int(math.Max(math.Abs(d.X)/(cellWidth/2), math.Abs(d.Y)/(cellHeight/2)))
	if steps < 1 {
		steps = 1
	}
	for i := 0; i <= steps; i++ {
		visit(a.Lerp(b, float64(i)/float64(steps)))
	}
}
