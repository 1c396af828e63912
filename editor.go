package main

import (
	"errors"
	"fmt"
	"log/slog"

	"honnef.co/go/curve"
)

var ErrUnknownObject = errors.New("unknown object")

// EditorState is the per-editor mutable state shared with the tools.
type EditorState struct {
	Mode          ToolMode
	AllyCount     int
	OpponentCount int
	ColorIndex    int
}

func newEditorState() EditorState {
	return EditorState{
		Mode:          ToolSelect,
		AllyCount:     1,
		OpponentCount: 1,
	}
}

func (s *EditorState) reset() {
	s.AllyCount = 1
	s.OpponentCount = 1
	s.ColorIndex = 0
}

func (s *EditorState) previewColor() string {
	return pastelColors[s.ColorIndex]
}

func (s *EditorState) nextArrowColor() string {
	c := pastelColors[s.ColorIndex]
	s.ColorIndex = (s.ColorIndex + 1) % len(pastelColors)
	return c
}

func (s *EditorState) nextPlayerNumber(side Side) int {
	if side == SideOpponent {
		n := s.OpponentCount
		s.OpponentCount++
		return n
	}
	n := s.AllyCount
	s.AllyCount++
	return n
}

type dragState struct {
	id     string
	offset curve.Vec2
}

// Editor owns the scene and the editor state, routes pointer events to the
// active tool and implements the whole-diagram operations.
type Editor struct {
	scene   *Scene
	layers  *LayerManager
	factory *ObjectFactory
	court   *CourtDrawer
	state   EditorState
	tools   map[ToolMode]Tool
	drag    *dragState
	log     *slog.Logger

	// HitSlop is the pick tolerance in canvas pixels.
	HitSlop float64
	// OnTextPlaced is called after the text tool places a label.
	OnTextPlaced func(*Object)
}

func NewEditor(log *slog.Logger) *Editor {
	if log == nil {
		log = slog.Default()
	}
	e := &Editor{
		scene:   NewScene(),
		state:   newEditorState(),
		log:     log.With("component", "editor"),
		HitSlop: 4,
	}
	e.layers = NewLayerManager(e.scene)
	e.factory = NewObjectFactory(e.scene, e.layers, &e.state, e.log)
	e.court = NewCourtDrawer(e.scene, e.layers, e.log)
	e.tools = map[ToolMode]Tool{
		ToolSelect:     &selectTool{scene: e.scene},
		ToolAlly:       &playerTool{factory: e.factory, state: &e.state, side: SideAlly, color: colorAlly},
		ToolOpponent:   &playerTool{factory: e.factory, state: &e.state, side: SideOpponent, color: colorOpponent},
		ToolCurveArrow: &curveArrowTool{factory: e.factory, scene: e.scene, state: &e.state},
		ToolPassArrow:  &passArrowTool{factory: e.factory, scene: e.scene},
		ToolText: &textTool{factory: e.factory, placed: func(obj *Object) {
			if e.OnTextPlaced != nil {
				e.OnTextPlaced(obj)
			}
		}},
	}
	e.tools[e.state.Mode].OnActivate()
	return e
}

// DrawCourt establishes the court background. An empty path or an image that
// cannot be read falls back to a drawn court.
func (e *Editor) DrawCourt(imagePath string) error {
	return e.court.Draw(imagePath)
}

func (e *Editor) Scene() *Scene {
	return e.scene
}

func (e *Editor) State() EditorState {
	return e.state
}

func (e *Editor) Mode() ToolMode {
	return e.state.Mode
}

func (e *Editor) SetMode(mode ToolMode) {
	if _, ok := e.tools[mode]; !ok {
		return
	}
	e.tools[e.state.Mode].OnDeactivate()
	e.state.Mode = mode
	e.tools[mode].OnActivate()
	e.log.Debug("tool changed", "mode", mode.String())
}

// Dragging reports whether a pointer-down grabbed an object that is still
// held.
func (e *Editor) Dragging() bool {
	return e.drag != nil
}

// CurvePointsCaptured returns how many points the curve tool is holding.
func (e *Editor) CurvePointsCaptured() int {
	return e.tools[ToolCurveArrow].(*curveArrowTool).Captured()
}

func (e *Editor) HandlePointerDown(p Point) {
	if target := e.scene.ObjectAt(p, e.HitSlop); target != nil && !target.CourtElement {
		if target.Selectable {
			e.scene.Select(target.ID)
			e.drag = &dragState{id: target.ID, offset: target.Position().Sub(p)}
		}
		return
	}
	if e.state.Mode == ToolSelect {
		e.scene.DiscardSelection()
	}
	e.tools[e.state.Mode].OnPointerDown(p)
}

func (e *Editor) HandlePointerMove(p Point) {
	if e.drag != nil {
		e.scene.MoveObject(e.drag.id, p.Translate(e.drag.offset))
		return
	}
	e.tools[e.state.Mode].OnPointerMove(p)
}

func (e *Editor) HandlePointerUp(p Point) {
	if e.drag != nil {
		e.drag = nil
		return
	}
	e.tools[e.state.Mode].OnPointerUp(p)
}

// FinalizeCurve commits the curve being drawn without waiting for the last
// point.
func (e *Editor) FinalizeCurve() (*Object, error) {
	return e.tools[ToolCurveArrow].(*curveArrowTool).Finalize()
}

// DragAnchor moves one anchor of a curve as a drag would.
func (e *Editor) DragAnchor(anchorID string, to Point) error {
	anchor := e.scene.Get(anchorID)
	if anchor == nil || !anchor.Anchor {
		return fmt.Errorf("drag anchor %s: %w", anchorID, ErrUnknownObject)
	}
	e.scene.MoveObject(anchorID, to)
	return nil
}

// Frame runs the work deferred to the next frame. Call it once the current
// event has been handled and before drawing.
func (e *Editor) Frame() int {
	return e.scene.RunDeferred()
}

// SetText replaces the label of a text object.
func (e *Editor) SetText(id, text string) error {
	obj := e.scene.Get(id)
	if obj == nil || obj.Kind != KindText {
		return fmt.Errorf("set text on %s: %w", id, ErrUnknownObject)
	}
	obj.Text = text
	return nil
}

// DeleteSelected removes every selected object. Anchors and curves take their
// whole curved arrow with them. It returns the number of objects removed.
func (e *Editor) DeleteSelected() int {
	removed := 0
	for _, obj := range e.scene.Selected() {
		switch {
		case obj.Anchor && obj.CurveID != "":
			if arrow := e.scene.Get(obj.CurveID); arrow != nil {
				removed += e.deleteCurvedArrow(arrow)
			} else if e.scene.Remove(obj.ID) {
				removed++
			}
		case obj.EditableCurve:
			removed += e.deleteCurvedArrow(obj)
		default:
			if e.scene.Remove(obj.ID) {
				removed++
			}
		}
	}
	e.scene.DiscardSelection()
	e.drag = nil
	if removed > 0 {
		e.log.Debug("deleted selection", "objects", removed)
	}
	return removed
}

func (e *Editor) deleteCurvedArrow(arrow *Object) int {
	removed := 0
	for _, id := range arrow.AnchorIDs {
		if e.scene.Remove(id) {
			removed++
		}
	}
	if arrow.ArrowHeadID != "" && e.scene.Remove(arrow.ArrowHeadID) {
		removed++
	}
	if e.scene.Remove(arrow.ID) {
		removed++
	}
	return removed
}

// Clear removes every annotation, keeping the court, and resets numbering
// and the colour rotation.
func (e *Editor) Clear() {
	e.tools[e.state.Mode].OnDeactivate()
	for _, obj := range e.scene.Objects() {
		if obj.CourtElement || e.scene.Get(obj.ID) == nil {
			continue
		}
		if obj.EditableCurve {
			e.deleteCurvedArrow(obj)
			continue
		}
		e.scene.Remove(obj.ID)
	}
	e.drag = nil
	e.state.reset()
	e.tools[e.state.Mode].OnActivate()
	e.log.Info("diagram cleared")
}
