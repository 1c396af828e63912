package main

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"honnef.co/go/curve"
)

var ErrNothingToExport = errors.New("nothing to export")

// exportable reports whether obj belongs in a rendered diagram. Editing aids
// are left out.
func exportable(obj *Object) bool {
	return !obj.Anchor && !obj.Transient
}

func checkExportable(scene *Scene) error {
	for _, obj := range scene.Objects() {
		if exportable(obj) && !obj.CourtElement {
			return nil
		}
	}
	return ErrNothingToExport
}

func alphaOf(obj *Object) float64 {
	if obj.Opacity <= 0 || obj.Opacity > 1 {
		return 1
	}
	return obj.Opacity
}

// ExportPNG renders the scene at its canvas size to a PNG file.
func ExportPNG(scene *Scene, filename string) error {
	if err := checkExportable(scene); err != nil {
		return err
	}

	dc := gg.NewContext(int(scene.Width), int(scene.Height))
	dc.SetHexColor(colorCourt)
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	faces := map[float64]font.Face{}
	setFont := func(size float64) {
		if size <= 0 {
			size = textFontSize
		}
		face, ok := faces[size]
		if !ok {
			face = truetype.NewFace(ttfFont, &truetype.Options{
				Size:    size,
				DPI:     72,
				Hinting: font.HintingFull,
			})
			faces[size] = face
		}
		dc.SetFontFace(face)
	}
	setColor := func(hex string, alpha float64) bool {
		r, g, b, ok := parseHexColor(hex)
		if !ok {
			return false
		}
		dc.SetRGBA255(int(r), int(g), int(b), int(alpha*255))
		return true
	}
	paint := func(obj *Object) {
		a := alphaOf(obj)
		if setColor(obj.Fill, a) {
			dc.FillPreserve()
		}
		if obj.StrokeWidth > 0 && setColor(obj.Stroke, a) {
			dc.SetLineWidth(obj.StrokeWidth)
			dc.SetDash(obj.Dash...)
			dc.StrokePreserve()
			dc.SetDash()
		}
		dc.ClearPath()
	}

	for _, obj := range scene.Objects() {
		if !exportable(obj) {
			continue
		}
		switch obj.Kind {
		case KindImage:
			if obj.Image != nil {
				dc.DrawImage(obj.Image, int(obj.X), int(obj.Y))
			}
		case KindRect:
			dc.DrawRectangle(obj.X, obj.Y, obj.W, obj.H)
			paint(obj)
		case KindLine:
			dc.DrawLine(obj.X, obj.Y, obj.X2, obj.Y2)
			paint(obj)
		case KindCircle:
			dc.DrawCircle(obj.X, obj.Y, obj.Radius)
			paint(obj)
		case KindPlayer:
			dc.DrawCircle(obj.X, obj.Y, obj.Radius)
			paint(obj)
			setFont(obj.FontSize)
			setColor(colorCourt, 1)
			dc.DrawStringAnchored(obj.Text, obj.X, obj.Y, 0.5, 0.35)
		case KindPassArrow:
			dc.DrawLine(obj.X, obj.Y, obj.X2, obj.Y2)
			paint(obj)
			head := passArrowHead(obj.Position(), curve.Pt(obj.X2, obj.Y2))
			dc.MoveTo(head[0].X, head[0].Y)
			dc.LineTo(head[1].X, head[1].Y)
			dc.LineTo(head[2].X, head[2].Y)
			dc.ClosePath()
			setColor(obj.Stroke, alphaOf(obj))
			dc.Fill()
		case KindText:
			setFont(obj.FontSize)
			setColor(obj.Fill, alphaOf(obj))
			dc.DrawStringAnchored(obj.Text, obj.X, obj.Y, 0, 1)
		case KindPath:
			for _, el := range obj.Path {
				switch el.Kind {
				case curve.MoveToKind:
					dc.NewSubPath()
					dc.MoveTo(el.P0.X, el.P0.Y)
				case curve.LineToKind:
					dc.LineTo(el.P0.X, el.P0.Y)
				case curve.QuadToKind:
					dc.QuadraticTo(el.P0.X, el.P0.Y, el.P1.X, el.P1.Y)
				case curve.CubicToKind:
					dc.CubicTo(el.P0.X, el.P0.Y, el.P1.X, el.P1.Y, el.P2.X, el.P2.Y)
				}
			}
			paint(obj)
		}
	}

	return dc.SavePNG(filename)
}

// ExportPDF writes the scene to a single-page PDF sized to the canvas, one
// point per canvas pixel.
func ExportPDF(scene *Scene, filename string) error {
	if err := checkExportable(scene); err != nil {
		return err
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: scene.Width, Ht: scene.Height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	drawColor := func(hex string) bool {
		r, g, b, ok := parseHexColor(hex)
		if ok {
			pdf.SetDrawColor(int(r), int(g), int(b))
		}
		return ok
	}
	fillColor := func(hex string) bool {
		r, g, b, ok := parseHexColor(hex)
		if ok {
			pdf.SetFillColor(int(r), int(g), int(b))
		}
		return ok
	}
	// style picks the gofpdf paint operator for the object and sets its
	// colours and dash pattern.
	style := func(obj *Object) string {
		s := ""
		if fillColor(obj.Fill) {
			s += "F"
		}
		if obj.StrokeWidth > 0 && drawColor(obj.Stroke) {
			pdf.SetLineWidth(obj.StrokeWidth)
			s += "D"
		}
		pdf.SetDashPattern(obj.Dash, 0)
		pdf.SetAlpha(alphaOf(obj), "Normal")
		return s
	}

	for _, obj := range scene.Objects() {
		if !exportable(obj) {
			continue
		}
		switch obj.Kind {
		case KindImage:
			if obj.Image == nil {
				continue
			}
			var buf bytes.Buffer
			if err := png.Encode(&buf, obj.Image); err != nil {
				return fmt.Errorf("encode court image: %w", err)
			}
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader(obj.ID, opts, &buf)
			pdf.ImageOptions(obj.ID, obj.X, obj.Y, obj.W, obj.H, false, opts, 0, "")
		case KindRect:
			if s := style(obj); s != "" {
				pdf.Rect(obj.X, obj.Y, obj.W, obj.H, s)
			}
		case KindLine:
			if style(obj) != "" {
				pdf.Line(obj.X, obj.Y, obj.X2, obj.Y2)
			}
		case KindCircle:
			if s := style(obj); s != "" {
				pdf.Circle(obj.X, obj.Y, obj.Radius, s)
			}
		case KindPlayer:
			if s := style(obj); s != "" {
				pdf.Circle(obj.X, obj.Y, obj.Radius, s)
			}
			size := obj.FontSize
			if size <= 0 {
				size = textFontSize
			}
			pdf.SetFont("Helvetica", "B", size)
			pdf.SetTextColor(255, 255, 255)
			w := pdf.GetStringWidth(obj.Text)
			pdf.Text(obj.X-w/2, obj.Y+size*0.35, obj.Text)
		case KindPassArrow:
			style(obj)
			pdf.Line(obj.X, obj.Y, obj.X2, obj.Y2)
			pdf.SetDashPattern(nil, 0)
			fillColor(obj.Stroke)
			head := passArrowHead(obj.Position(), curve.Pt(obj.X2, obj.Y2))
			pdf.Polygon([]gofpdf.PointType{
				{X: head[0].X, Y: head[0].Y},
				{X: head[1].X, Y: head[1].Y},
				{X: head[2].X, Y: head[2].Y},
			}, "F")
		case KindText:
			size := obj.FontSize
			if size <= 0 {
				size = textFontSize
			}
			pdf.SetAlpha(alphaOf(obj), "Normal")
			pdf.SetFont("Helvetica", "", size)
			if r, g, b, ok := parseHexColor(obj.Fill); ok {
				pdf.SetTextColor(int(r), int(g), int(b))
			}
			pdf.Text(obj.X, obj.Y+size, obj.Text)
		case KindPath:
			s := style(obj)
			if s == "" || len(obj.Path) == 0 {
				continue
			}
			for _, el := range obj.Path {
				switch el.Kind {
				case curve.MoveToKind:
					pdf.MoveTo(el.P0.X, el.P0.Y)
				case curve.LineToKind:
					pdf.LineTo(el.P0.X, el.P0.Y)
				case curve.QuadToKind:
					pdf.CurveTo(el.P0.X, el.P0.Y, el.P1.X, el.P1.Y)
				case curve.CubicToKind:
					pdf.CurveBezierCubicTo(el.P0.X, el.P0.Y, el.P1.X, el.P1.Y, el.P2.X, el.P2.Y)
				}
			}
			pdf.DrawPath(s)
		}
	}
	pdf.SetDashPattern(nil, 0)
	pdf.SetAlpha(1, "Normal")

	return pdf.OutputFileAndClose(filename)
}
