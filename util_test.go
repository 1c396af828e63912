package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

var approx = cmpopts.EquateApprox(0, 1e-9)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestEditor returns an editor on a drawn court with no pending frame work.
func newTestEditor(t *testing.T) *Editor {
	t.Helper()
	e := NewEditor(discardLogger())
	if err := e.DrawCourt(""); err != nil {
		t.Fatalf("DrawCourt: %v", err)
	}
	e.Frame()
	return e
}

func countObjects(s *Scene, match func(*Object) bool) int {
	n := 0
	for _, obj := range s.Objects() {
		if match(obj) {
			n++
		}
	}
	return n
}

func isAnchor(obj *Object) bool { return obj.Anchor }

func isCurve(obj *Object) bool { return obj.EditableCurve }
