package main

// Tool reacts to pointer events while its mode is active. Every variant
// implements every hook; baseTool supplies the no-op defaults.
type Tool interface {
	OnPointerDown(p Point)
	OnPointerMove(p Point)
	OnPointerUp(p Point)
	OnActivate()
	OnDeactivate()
}

type baseTool struct{}

func (baseTool) OnPointerDown(Point) {}
func (baseTool) OnPointerMove(Point) {}
func (baseTool) OnPointerUp(Point)   {}
func (baseTool) OnActivate()         {}
func (baseTool) OnDeactivate()       {}

type selectTool struct {
	baseTool
	scene *Scene
}

func (t *selectTool) OnActivate() {
	t.scene.SelectionEnabled = true
}

func (t *selectTool) OnDeactivate() {
	t.scene.SelectionEnabled = false
}

type Side int

const (
	SideAlly Side = iota
	SideOpponent
)

type playerTool struct {
	baseTool
	factory *ObjectFactory
	state   *EditorState
	side    Side
	color   string
}

func (t *playerTool) OnPointerDown(p Point) {
	t.factory.CreatePlayer(p, t.state.nextPlayerNumber(t.side), t.color)
}

// curveArrowTool collects up to maxCurvePoints clicks, previewing the curve
// through the pointer, and commits automatically on the last one.
type curveArrowTool struct {
	baseTool
	factory *ObjectFactory
	scene   *Scene
	state   *EditorState
	points  []Point
	preview string
}

func (t *curveArrowTool) OnPointerDown(p Point) {
	t.points = append(t.points, p)
	if len(t.points) >= 2 {
		t.updatePreview(t.points)
	}
	if len(t.points) == maxCurvePoints {
		if _, err := t.Finalize(); err != nil {
			t.factory.log.Error("finalize curve", "err", err)
		}
	}
}

func (t *curveArrowTool) OnPointerMove(p Point) {
	if len(t.points) > 0 && len(t.points) < maxCurvePoints {
		t.updatePreview(append(append([]Point(nil), t.points...), p))
	}
}

func (t *curveArrowTool) updatePreview(points []Point) {
	t.clearPreview()
	preview := t.scene.Add(&Object{
		Kind:        KindPath,
		Path:        BuildPath(points),
		Stroke:      t.state.previewColor(),
		StrokeWidth: arrowWidth,
		Dash:        curvePreviewDash,
		Opacity:     previewOpacity,
		Transient:   true,
	})
	t.preview = preview.ID
}

func (t *curveArrowTool) clearPreview() {
	if t.preview != "" {
		t.scene.Remove(t.preview)
		t.preview = ""
	}
}

// Finalize commits the captured points as a curved arrow and returns the tool
// to idle. The points are kept if there are too few to build a curve.
func (t *curveArrowTool) Finalize() (*Object, error) {
	arrow, err := t.factory.CreateCurvedArrow(t.points)
	if err != nil {
		return nil, err
	}
	t.clearPreview()
	t.points = nil
	return arrow, nil
}

func (t *curveArrowTool) OnDeactivate() {
	t.clearPreview()
	t.points = nil
}

func (t *curveArrowTool) Captured() int {
	return len(t.points)
}

type passArrowTool struct {
	baseTool
	factory *ObjectFactory
	scene   *Scene
	start   *Point
	preview string
}

func (t *passArrowTool) OnPointerDown(p Point) {
	if t.start == nil {
		t.start = &p
		return
	}
	t.factory.CreatePassArrow(*t.start, p)
	t.reset()
}

func (t *passArrowTool) OnPointerMove(p Point) {
	if t.start == nil {
		return
	}
	if t.preview != "" {
		t.scene.Remove(t.preview)
	}
	preview := t.scene.Add(&Object{
		Kind:        KindPassArrow,
		X:           t.start.X,
		Y:           t.start.Y,
		X2:          p.X,
		Y2:          p.Y,
		Stroke:      colorPass,
		StrokeWidth: 2,
		Dash:        passPreviewDash,
		Opacity:     passPreviewAlpha,
		Transient:   true,
	})
	t.preview = preview.ID
}

func (t *passArrowTool) reset() {
	t.start = nil
	if t.preview != "" {
		t.scene.Remove(t.preview)
		t.preview = ""
	}
}

func (t *passArrowTool) OnDeactivate() {
	t.reset()
}

type textTool struct {
	baseTool
	factory *ObjectFactory
	placed  func(*Object)
}

func (t *textTool) OnPointerDown(p Point) {
	text := t.factory.CreateText(p)
	if t.placed != nil {
		t.placed(text)
	}
}
