package main

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"honnef.co/go/curve"
)

func sampleDiagram(t *testing.T) *Editor {
	t.Helper()
	e := newTestEditor(t)
	drawCurve(t, e, curve.Pt(100, 100), curve.Pt(200, 200), curve.Pt(300, 100), curve.Pt(400, 200), curve.Pt(500, 100))
	e.factory.CreatePlayer(curve.Pt(600, 300), 4, colorAlly)
	e.factory.CreatePassArrow(curve.Pt(100, 400), curve.Pt(400, 400))
	e.factory.CreateText(curve.Pt(700, 100))
	return e
}

func TestExportPNG(t *testing.T) {
	e := sampleDiagram(t)
	path := filepath.Join(t.TempDir(), "play.png")
	if err := ExportPNG(e.Scene(), path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	b := img.Bounds()
	if b.Dx() != int(e.Scene().Width) || b.Dy() != int(e.Scene().Height) {
		t.Errorf("image is %dx%d", b.Dx(), b.Dy())
	}
	// inside the player, clear of its number
	r, g, bl, _ := img.At(588, 300).RGBA()
	if r>>8 > 10 || g>>8 > 10 || bl>>8 < 245 {
		t.Errorf("player fill colour = %d,%d,%d", r>>8, g>>8, bl>>8)
	}
}

func TestExportPDF(t *testing.T) {
	e := sampleDiagram(t)
	path := filepath.Join(t.TempDir(), "play.pdf")
	if err := ExportPDF(e.Scene(), path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("not a PDF: %q", data[:min(len(data), 8)])
	}
}

func TestExportPDFWithCourtImage(t *testing.T) {
	e := NewEditor(discardLogger())
	if err := e.DrawCourt(writeTestPNG(t, 90, 48)); err != nil {
		t.Fatal(err)
	}
	e.factory.CreatePlayer(curve.Pt(200, 200), 1, colorOpponent)
	if err := ExportPDF(e.Scene(), filepath.Join(t.TempDir(), "court.pdf")); err != nil {
		t.Fatal(err)
	}
}

func TestExportNothing(t *testing.T) {
	e := newTestEditor(t)
	dir := t.TempDir()
	if err := ExportPNG(e.Scene(), filepath.Join(dir, "a.png")); !errors.Is(err, ErrNothingToExport) {
		t.Errorf("PNG: got %v", err)
	}
	if err := ExportPDF(e.Scene(), filepath.Join(dir, "a.pdf")); !errors.Is(err, ErrNothingToExport) {
		t.Errorf("PDF: got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "a.png")); !os.IsNotExist(err) {
		t.Error("file written for an empty diagram")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b uint8
		ok      bool
	}{
		{"#FF6B00", 0xFF, 0x6B, 0x00, true},
		{"#abc", 0xAA, 0xBB, 0xCC, true},
		{"333333", 0x33, 0x33, 0x33, true},
		{"", 0, 0, 0, false},
		{"#GGGGGG", 0, 0, 0, false},
	}
	for _, tt := range tests {
		r, g, b, ok := parseHexColor(tt.in)
		if r != tt.r || g != tt.g || b != tt.b || ok != tt.ok {
			t.Errorf("parseHexColor(%q) = %d,%d,%d,%v", tt.in, r, g, b, ok)
		}
	}
}
