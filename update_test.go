package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"honnef.co/go/curve"
)

func newTestModel(t *testing.T, server string) model {
	t.Helper()
	config := defaultConfig()
	if server != "" {
		config.ServerURL = server
	}
	m := initialModel(config, discardLogger())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(model)
}

func press(t *testing.T, m model, keys ...string) (model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, c := m.Update(msg)
		m, cmd = next.(model), c
	}
	return m, cmd
}

func TestModelPlacesPlayersWithKeyboard(t *testing.T) {
	m := newTestModel(t, "")
	m, _ = press(t, m, "1")
	if m.editor.Mode() != ToolAlly {
		t.Fatalf("mode = %s", m.editor.Mode())
	}
	m.cursorX, m.cursorY = 20, 10
	m, _ = press(t, m, " ")

	var player *Object
	for _, obj := range m.editor.Scene().Objects() {
		if obj.Kind == KindPlayer {
			player = obj
		}
	}
	if player == nil {
		t.Fatal("no player placed")
	}
	diff(t, curve.Pt(20*cellWidth+cellWidth/2, 10*cellHeight+cellHeight/2), player.Position())
}

func TestModelDragsWithKeyboard(t *testing.T) {
	m := newTestModel(t, "")
	m, _ = press(t, m, "1")
	m.cursorX, m.cursorY = 20, 10
	m, _ = press(t, m, " ", " ")
	if !m.holding {
		t.Fatal("second click on the player did not pick it up")
	}
	m, _ = press(t, m, "l", "l", " ")
	if m.holding {
		t.Error("player not dropped")
	}
	for _, obj := range m.editor.Scene().Objects() {
		if obj.Kind == KindPlayer && obj.X != 22*cellWidth+cellWidth/2 {
			t.Errorf("player at x=%g", obj.X)
		}
	}
}

func TestModelTextEditing(t *testing.T) {
	m := newTestModel(t, "")
	m, _ = press(t, m, "t")
	m.cursorX, m.cursorY = 30, 5
	m, _ = press(t, m, " ")
	if m.mode != ModeTextInput || m.inputText != defaultTextLabel {
		t.Fatalf("mode %d, input %q", m.mode, m.inputText)
	}
	m.inputText = ""
	m, _ = press(t, m, "P", "i", "c", "k", "enter")
	if m.mode != ModeNormal {
		t.Errorf("still in mode %d", m.mode)
	}
	found := false
	for _, obj := range m.editor.Scene().Objects() {
		if obj.Kind == KindText && obj.Text == "Pick" {
			found = true
		}
	}
	if !found {
		t.Error("label not updated")
	}
}

func TestModelSaveFlow(t *testing.T) {
	var req SaveRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&req)
		w.Write([]byte(`{"status": "success", "id": 9}`))
	}))
	defer srv.Close()

	m := newTestModel(t, srv.URL)
	m, _ = press(t, m, "w", "enter")
	if m.mode != ModeNameInput || m.errorMessage == "" {
		t.Fatalf("empty name accepted: mode %d", m.mode)
	}
	m, cmd := press(t, m, "H", "o", "r", "n", "s", "enter", "x", "enter")
	if m.mode != ModeNormal || cmd == nil {
		t.Fatal("save not started")
	}

	// the editor keeps taking input while the request is out
	m, _ = press(t, m, "o")
	if m.mode != ModeIDInput {
		t.Errorf("load prompt refused during save: mode %d", m.mode)
	}
	m, _ = press(t, m, "esc")

	next, _ := m.Update(cmd())
	m = next.(model)
	if m.playID != "9" || m.errorMessage != "" {
		t.Errorf("after save: id=%q err=%q", m.playID, m.errorMessage)
	}
	if req.Name != "Horns" || req.Description != "x" {
		t.Errorf("request = %+v", req)
	}
	var doc DiagramDocument
	if err := json.Unmarshal([]byte(req.DiagramData), &doc); err != nil {
		t.Errorf("diagram data is not a document: %v", err)
	}
}

func TestModelLoadFlow(t *testing.T) {
	source := newTestEditor(t)
	drawCurve(t, source, curve.Pt(100, 100), curve.Pt(200, 200), curve.Pt(300, 100))
	data, err := source.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id":           5,
			"name":         "Floppy",
			"description":  "",
			"diagram_data": string(data),
		})
	}))
	defer srv.Close()

	m := newTestModel(t, srv.URL)
	m, cmd := press(t, m, "o", "5", "enter")
	if cmd == nil {
		t.Fatal("load not started")
	}
	next, _ := m.Update(cmd())
	m = next.(model)
	if m.errorMessage != "" || m.playName != "Floppy" {
		t.Fatalf("after load: name=%q err=%q", m.playName, m.errorMessage)
	}
	if n := countObjects(m.editor.Scene(), isAnchor); n != 3 {
		t.Errorf("got %d anchors after load, want 3", n)
	}
}

func TestModelClearConfirm(t *testing.T) {
	m := newTestModel(t, "")
	court := m.editor.Scene().Len()
	m, _ = press(t, m, "2", " ", "C")
	if m.mode != ModeConfirm {
		t.Fatal("clear not confirmed")
	}
	m, _ = press(t, m, "n")
	if m.editor.Scene().Len() == court {
		t.Fatal("declined clear removed objects")
	}
	m, _ = press(t, m, "C", "y")
	if m.editor.Scene().Len() != court {
		t.Error("diagram not cleared")
	}
}

func TestToolbarHit(t *testing.T) {
	col := 0
	for _, mode := range toolModes {
		got, ok := toolbarHit(col)
		if !ok || got != mode {
			t.Errorf("column %d: got %s, want %s", col, got, mode)
		}
		col += len(toolLabel(mode))
	}
	if _, ok := toolbarHit(col); ok {
		t.Error("hit past the last tool")
	}
}

func TestModelView(t *testing.T) {
	m := newTestModel(t, "")
	m, _ = press(t, m, "a")
	if v := m.View(); v == "" {
		t.Error("empty view")
	}
	m, _ = press(t, m, "?")
	if !m.help {
		t.Fatal("help not shown")
	}
	m, _ = press(t, m, "esc")
	if m.help {
		t.Error("help not closed")
	}
}
