package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
)

var ErrTooFewPoints = errors.New("a curve needs at least 2 points")

// ObjectFactory creates annotations and registers them with the layer
// manager. Curved arrows additionally get one draggable anchor per point.
type ObjectFactory struct {
	scene  *Scene
	layers *LayerManager
	state  *EditorState
	log    *slog.Logger
}

func NewObjectFactory(scene *Scene, layers *LayerManager, state *EditorState, log *slog.Logger) *ObjectFactory {
	return &ObjectFactory{
		scene:  scene,
		layers: layers,
		state:  state,
		log:    log,
	}
}

func (f *ObjectFactory) CreatePlayer(at Point, number int, color string) *Object {
	player := &Object{
		Kind:        KindPlayer,
		X:           at.X,
		Y:           at.Y,
		Radius:      playerRadius,
		Fill:        color,
		Stroke:      colorLine,
		StrokeWidth: 2,
		Text:        strconv.Itoa(number),
		FontSize:    textFontSize,
		Selectable:  true,
		Evented:     true,
	}
	f.addToCanvas(player)
	return player
}

// CreateCurvedArrow materialises a curve, its arrowhead and its anchors from
// the captured points, taking the next pastel colour.
func (f *ObjectFactory) CreateCurvedArrow(points []Point) (*Object, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("create curved arrow from %d points: %w", len(points), ErrTooFewPoints)
	}
	pts := append([]Point(nil), points...)
	color := f.state.nextArrowColor()

	head := f.newArrowhead(pts, color, arrowHeadLength)
	arrow := &Object{
		Kind:          KindPath,
		Path:          BuildPath(pts),
		Stroke:        color,
		StrokeWidth:   arrowWidth,
		EditableCurve: true,
		CurvePoints:   pts,
		ArrowHeadID:   head.ID,
	}
	f.scene.Add(arrow)
	f.scene.Add(head)
	f.attachAnchors(arrow)
	f.layers.ArrangeLayer(head)
	f.layers.ArrangeLayer(arrow)

	f.log.Debug("curved arrow created", "id", arrow.ID, "points", len(pts), "color", color)
	return arrow, nil
}

func (f *ObjectFactory) newArrowhead(points []Point, color string, length float64) *Object {
	return &Object{
		ID:          uuid.NewString(),
		Kind:        KindPath,
		Path:        curveArrowhead(points, length),
		Stroke:      color,
		StrokeWidth: arrowWidth,
	}
}

// attachAnchors creates an anchor per curve point, binds each to the shared
// update routine and stacks them on top.
func (f *ObjectFactory) attachAnchors(arrow *Object) {
	for _, id := range arrow.AnchorIDs {
		f.scene.Remove(id)
	}
	arrow.AnchorIDs = arrow.AnchorIDs[:0]

	last := len(arrow.CurvePoints) - 1
	for i, p := range arrow.CurvePoints {
		endpoint := i == 0 || i == last
		anchor := &Object{
			Kind:        KindCircle,
			X:           p.X,
			Y:           p.Y,
			Radius:      handleRadius,
			Fill:        colorHandlePoint,
			Stroke:      colorLine,
			StrokeWidth: 1,
			Selectable:  true,
			Evented:     true,
			Anchor:      true,
			PointIndex:  i,
			CurveID:     arrow.ID,
		}
		if endpoint {
			anchor.Radius = anchorRadius
			anchor.Fill = colorAnchorPoint
		}
		f.scene.Add(anchor)
		curveID := arrow.ID
		f.scene.OnMoving(anchor.ID, func(*Object) {
			f.updateCurvedArrow(curveID)
		})
		arrow.AnchorIDs = append(arrow.AnchorIDs, anchor.ID)
	}
	f.layers.RaiseAnchors(arrow.AnchorIDs)
}

// updateCurvedArrow rereads the curve's anchors in index order and rebuilds
// the path and arrowhead from their positions.
func (f *ObjectFactory) updateCurvedArrow(curveID string) {
	arrow := f.scene.Get(curveID)
	if arrow == nil || !arrow.EditableCurve {
		return
	}
	points := make([]Point, 0, len(arrow.AnchorIDs))
	for _, id := range arrow.AnchorIDs {
		anchor := f.scene.Get(id)
		if anchor == nil {
			f.log.Warn("curve lost an anchor", "curve", curveID, "anchor", id)
			return
		}
		points = append(points, anchor.Position())
	}
	if len(points) < 2 {
		return
	}

	arrow.CurvePoints = points
	arrow.Path = BuildPath(points)
	if head := f.scene.Get(arrow.ArrowHeadID); head != nil {
		head.Path = curveArrowhead(points, arrowHeadLength)
	}
	f.layers.RaiseAnchors(arrow.AnchorIDs)
}

func (f *ObjectFactory) CreatePassArrow(from, to Point) *Object {
	pass := &Object{
		Kind:        KindPassArrow,
		X:           from.X,
		Y:           from.Y,
		X2:          to.X,
		Y2:          to.Y,
		Stroke:      colorPass,
		Fill:        colorPass,
		StrokeWidth: passArrowWidth,
		Dash:        passArrowDash,
		Selectable:  true,
		Evented:     true,
	}
	f.addToCanvas(pass)
	return pass
}

func (f *ObjectFactory) CreateText(at Point) *Object {
	text := &Object{
		Kind:       KindText,
		X:          at.X,
		Y:          at.Y,
		Text:       defaultTextLabel,
		FontSize:   textFontSize,
		Fill:       colorText,
		Selectable: true,
		Evented:    true,
	}
	f.addToCanvas(text)
	f.scene.Select(text.ID)
	return text
}

func (f *ObjectFactory) addToCanvas(obj *Object) {
	f.scene.Add(obj)
	f.layers.ArrangeLayer(obj)
}
