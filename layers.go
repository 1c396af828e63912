package main

// LayerManager keeps court elements below every annotation and curve anchors
// above everything else.
type LayerManager struct {
	scene *Scene
}

func NewLayerManager(scene *Scene) *LayerManager {
	return &LayerManager{scene: scene}
}

// ArrangeLayer lifts a freshly added annotation above the highest court
// element and schedules its anchors, if any, to be raised on the next frame.
func (lm *LayerManager) ArrangeLayer(obj *Object) {
	if obj.CourtElement {
		return
	}

	target := lm.courtMaxIndex() + 1
	if cur := lm.scene.IndexOf(obj.ID); cur >= 0 && cur < target {
		// removing obj shifts the court block down by one
		lm.scene.MoveTo(obj.ID, target-1)
	}

	if len(obj.AnchorIDs) > 0 {
		anchors := append([]string(nil), obj.AnchorIDs...)
		lm.scene.Defer(func() {
			lm.RaiseAnchors(anchors)
		})
	}
}

// RaiseAnchors brings the given anchors to the top of the paint order,
// skipping any that have been removed in the meantime.
func (lm *LayerManager) RaiseAnchors(ids []string) {
	for _, id := range ids {
		if lm.scene.Get(id) != nil {
			lm.scene.BringToFront(id)
		}
	}
}

func (lm *LayerManager) courtMaxIndex() int {
	maxIndex := -1
	for i, obj := range lm.scene.Objects() {
		if obj.CourtElement {
			maxIndex = i
		}
	}
	return maxIndex
}

// FixCourtBackground pins the court background to the very bottom.
func (lm *LayerManager) FixCourtBackground() {
	for _, obj := range lm.scene.Objects() {
		if obj.CourtElement && obj.CourtBackground {
			lm.scene.SendToBack(obj.ID)
			return
		}
	}
}
