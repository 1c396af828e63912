package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"honnef.co/go/curve"
)

const documentVersion = 1

var ErrInvalidDocument = errors.New("invalid diagram document")

// DiagramDocument is the persisted form of a diagram. Anchors and tool
// previews are never written; the court is redrawn on load and court records
// from other producers are ignored.
type DiagramDocument struct {
	Version int            `json:"version"`
	Objects []ObjectRecord `json:"objects"`
}

// ObjectRecord is one annotation. Curves keep their raw points and the ID of
// their arrowhead so anchors and arrowhead can be regenerated.
type ObjectRecord struct {
	ID              string     `json:"id"`
	Type            ObjectKind `json:"type"`
	Left            float64    `json:"left"`
	Top             float64    `json:"top"`
	X2              float64    `json:"x2,omitempty"`
	Y2              float64    `json:"y2,omitempty"`
	Width           float64    `json:"width,omitempty"`
	Height          float64    `json:"height,omitempty"`
	Radius          float64    `json:"radius,omitempty"`
	Stroke          string     `json:"stroke,omitempty"`
	Fill            string     `json:"fill,omitempty"`
	StrokeWidth     float64    `json:"strokeWidth,omitempty"`
	StrokeDashArray []float64  `json:"strokeDashArray,omitempty"`
	Opacity         float64    `json:"opacity,omitempty"`
	Text            string     `json:"text,omitempty"`
	FontSize        float64    `json:"fontSize,omitempty"`
	Path            string     `json:"path,omitempty"`
	Selectable      bool       `json:"selectable"`
	Evented         bool       `json:"evented"`

	CurvePoints     []pointRecord `json:"curvePoints,omitempty"`
	IsEditableCurve bool          `json:"isEditableCurve,omitempty"`
	IsCourtElement  bool          `json:"isCourtElement,omitempty"`
	ArrowHeadPath   string        `json:"arrowHeadPath,omitempty"`
}

type pointRecord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func pointRecords(points []Point) []pointRecord {
	out := make([]pointRecord, len(points))
	for i, p := range points {
		out[i] = pointRecord{X: p.X, Y: p.Y}
	}
	return out
}

func (rec ObjectRecord) points() []Point {
	if rec.CurvePoints == nil {
		return nil
	}
	out := make([]Point, len(rec.CurvePoints))
	for i, p := range rec.CurvePoints {
		out[i] = curve.Pt(p.X, p.Y)
	}
	return out
}

func recordFromObject(obj *Object) ObjectRecord {
	rec := ObjectRecord{
		ID:              obj.ID,
		Type:            obj.Kind,
		Left:            obj.X,
		Top:             obj.Y,
		X2:              obj.X2,
		Y2:              obj.Y2,
		Width:           obj.W,
		Height:          obj.H,
		Radius:          obj.Radius,
		Stroke:          obj.Stroke,
		Fill:            obj.Fill,
		StrokeWidth:     obj.StrokeWidth,
		StrokeDashArray: append([]float64(nil), obj.Dash...),
		Opacity:         obj.Opacity,
		Text:            obj.Text,
		FontSize:        obj.FontSize,
		Selectable:      obj.Selectable,
		Evented:         obj.Evented,
		IsEditableCurve: obj.EditableCurve,
		IsCourtElement:  obj.CourtElement,
		ArrowHeadPath:   obj.ArrowHeadID,
	}
	if len(obj.Path) > 0 {
		rec.Path = obj.Path.String()
	}
	if obj.EditableCurve {
		rec.CurvePoints = pointRecords(obj.CurvePoints)
	}
	return rec
}

func (rec ObjectRecord) object() (*Object, error) {
	switch rec.Type {
	case KindRect, KindLine, KindCircle, KindPlayer, KindPassArrow, KindText, KindPath:
	default:
		return nil, fmt.Errorf("record %s: unsupported type %q", rec.ID, rec.Type)
	}
	obj := &Object{
		ID:            rec.ID,
		Kind:          rec.Type,
		X:             rec.Left,
		Y:             rec.Top,
		X2:            rec.X2,
		Y2:            rec.Y2,
		W:             rec.Width,
		H:             rec.Height,
		Radius:        rec.Radius,
		Stroke:        rec.Stroke,
		Fill:          rec.Fill,
		StrokeWidth:   rec.StrokeWidth,
		Dash:          rec.StrokeDashArray,
		Opacity:       rec.Opacity,
		Text:          rec.Text,
		FontSize:      rec.FontSize,
		Selectable:    rec.Selectable,
		Evented:       rec.Evented,
		EditableCurve: rec.IsEditableCurve,
		CurvePoints:   rec.points(),
		ArrowHeadID:   rec.ArrowHeadPath,
	}
	if rec.Path != "" {
		path, err := ParsePath(rec.Path)
		if err != nil {
			return obj, fmt.Errorf("record %s: %w", rec.ID, err)
		}
		obj.Path = path
	}
	return obj, nil
}

// Serialize writes every user annotation to a DiagramDocument.
func (e *Editor) Serialize() ([]byte, error) {
	doc := DiagramDocument{
		Version: documentVersion,
		Objects: make([]ObjectRecord, 0, e.scene.Len()),
	}
	for _, obj := range e.scene.Objects() {
		if obj.Anchor || obj.Transient || obj.CourtElement {
			continue
		}
		doc.Objects = append(doc.Objects, recordFromObject(obj))
	}
	return json.Marshal(doc)
}

// Deserialize replaces the annotations with those in data and rebuilds the
// curve anchors and arrowheads. A document that cannot be parsed leaves the
// diagram untouched; individual broken records are skipped.
func (e *Editor) Deserialize(data []byte) error {
	var doc DiagramDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	e.tools[e.state.Mode].OnDeactivate()
	e.drag = nil
	e.scene.DiscardSelection()
	for _, obj := range e.scene.Objects() {
		if !obj.CourtElement {
			e.scene.Remove(obj.ID)
		}
	}

	var curves []*Object
	for _, rec := range doc.Objects {
		if rec.IsCourtElement {
			continue
		}
		obj, err := rec.object()
		if obj == nil {
			e.log.Warn("skipping record", "err", err)
			continue
		}
		if err != nil {
			if !obj.EditableCurve {
				e.log.Warn("skipping record", "err", err)
				continue
			}
			e.log.Warn("curve path unreadable, rebuilding from points", "err", err)
		}
		if obj.ID != "" && e.scene.Get(obj.ID) != nil {
			e.log.Warn("skipping record with duplicate id", "id", obj.ID)
			continue
		}
		e.scene.Add(obj)
		if obj.EditableCurve {
			curves = append(curves, obj)
		}
	}

	// curves are never anyone's arrowhead, even once demoted to static paths
	claimed := make(map[string]bool, len(curves))
	for _, arrow := range curves {
		claimed[arrow.ID] = true
	}
	var anchors []string
	for _, arrow := range curves {
		if e.scene.Get(arrow.ID) != arrow {
			continue
		}
		e.rebuildCurve(arrow, claimed)
		anchors = append(anchors, arrow.AnchorIDs...)
	}
	e.layers.RaiseAnchors(anchors)
	e.layers.FixCourtBackground()
	e.tools[e.state.Mode].OnActivate()
	e.log.Info("diagram loaded", "objects", len(doc.Objects), "curves", len(curves))
	return nil
}

// arrowheadFor resolves the arrowhead a curve refers to. Only a path that is
// neither a curve nor claimed by an earlier curve qualifies.
func (e *Editor) arrowheadFor(arrow *Object, claimed map[string]bool) *Object {
	head := e.scene.Get(arrow.ArrowHeadID)
	if head == nil || claimed[head.ID] || head.Kind != KindPath || len(head.Path) == 0 {
		return nil
	}
	claimed[head.ID] = true
	return head
}

// rebuildCurve restores the links a plain reload loses: the arrowhead
// reference, the anchors and their drag bindings. Objects the curve wrongly
// refers to are left alone.
func (e *Editor) rebuildCurve(arrow *Object, claimed map[string]bool) {
	head := e.arrowheadFor(arrow, claimed)
	if !validCurvePoints(arrow.CurvePoints) {
		e.log.Warn("curve has no usable points, leaving it static", "id", arrow.ID, "points", len(arrow.CurvePoints))
		arrow.EditableCurve = false
		if len(arrow.Path) == 0 {
			e.scene.Remove(arrow.ID)
			if head != nil {
				e.scene.Remove(head.ID)
			}
		}
		return
	}
	if len(arrow.Path) == 0 {
		arrow.Path = BuildPath(arrow.CurvePoints)
	}

	if head == nil {
		head = e.factory.newArrowhead(arrow.CurvePoints, colorArrow, defaultHeadLength)
		e.scene.Add(head)
		claimed[head.ID] = true
		arrow.ArrowHeadID = head.ID
		e.log.Debug("arrowhead regenerated", "curve", arrow.ID)
	}

	e.factory.attachAnchors(arrow)
}
