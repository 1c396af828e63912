package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"

	"golang.org/x/image/draw"
)

// CourtDrawer puts the court on the scene as court elements: a background
// bitmap when an image is configured, otherwise a white floor with painted
// markings.
type CourtDrawer struct {
	scene  *Scene
	layers *LayerManager
	log    *slog.Logger
}

func NewCourtDrawer(scene *Scene, layers *LayerManager, log *slog.Logger) *CourtDrawer {
	return &CourtDrawer{scene: scene, layers: layers, log: log}
}

// Draw replaces any existing court elements. A court image that cannot be
// loaded is reported and the drawn court is used instead.
func (cd *CourtDrawer) Draw(imagePath string) error {
	for _, obj := range cd.scene.Objects() {
		if obj.CourtElement {
			cd.scene.Remove(obj.ID)
		}
	}

	var err error
	if imagePath != "" {
		if err = cd.drawImage(imagePath); err == nil {
			cd.layers.FixCourtBackground()
			return nil
		}
		cd.log.Warn("court image unavailable, drawing plain court", "path", imagePath, "err", err)
	}
	cd.drawPlain()
	cd.layers.FixCourtBackground()
	return err
}

func (cd *CourtDrawer) drawImage(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open court image: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("decode court image: %w", err)
	}
	b := src.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return fmt.Errorf("decode court image: empty image")
	}

	// keep the aspect ratio, fit to the configured width
	scale := courtWidth / float64(b.Dx())
	w, h := int(courtWidth), int(float64(b.Dy())*scale)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	cd.scene.Width = courtLeft + courtWidth + courtLeft
	cd.scene.Height = courtTop + float64(h) + courtTop
	cd.scene.Add(&Object{
		Kind:            KindImage,
		X:               courtLeft,
		Y:               courtTop,
		W:               float64(w),
		H:               float64(h),
		Image:           dst,
		Src:             path,
		CourtElement:    true,
		CourtBackground: true,
	})
	return nil
}

func (cd *CourtDrawer) drawPlain() {
	w := courtWidth
	h := courtWidth * courtAspect
	cd.scene.Width = courtLeft + w + courtLeft
	cd.scene.Height = courtTop + h + courtTop

	// metres to pixels
	m := w / 28
	midY := courtTop + h/2
	line := func(obj *Object) {
		obj.Stroke = colorLine
		obj.StrokeWidth = 2
		obj.CourtElement = true
		cd.scene.Add(obj)
	}

	cd.scene.Add(&Object{
		Kind:            KindRect,
		X:               courtLeft,
		Y:               courtTop,
		W:               w,
		H:               h,
		Fill:            colorCourt,
		CourtElement:    true,
		CourtBackground: true,
	})
	line(&Object{Kind: KindRect, X: courtLeft, Y: courtTop, W: w, H: h})
	line(&Object{Kind: KindLine, X: courtLeft + w/2, Y: courtTop, X2: courtLeft + w/2, Y2: courtTop + h})
	line(&Object{Kind: KindCircle, X: courtLeft + w/2, Y: midY, Radius: 1.8 * m})

	keyW, keyH := 5.8*m, 4.9*m
	line(&Object{Kind: KindRect, X: courtLeft, Y: midY - keyH/2, W: keyW, H: keyH})
	line(&Object{Kind: KindRect, X: courtLeft + w - keyW, Y: midY - keyH/2, W: keyW, H: keyH})
	line(&Object{Kind: KindCircle, X: courtLeft + 1.575*m, Y: midY, Radius: 0.225 * m})
	line(&Object{Kind: KindCircle, X: courtLeft + w - 1.575*m, Y: midY, Radius: 0.225 * m})
}
