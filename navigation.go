package main

import tea "github.com/charmbracelet/bubbletea"

func (m *model) handleNavigation(key string, speed int) (tea.Model, tea.Cmd) {
	if m.zPanMode {
		return m.handlePan(key, speed), nil
	}
	return m.handleCursorMove(key, speed), nil
}

func (m *model) handlePan(key string, speed int) tea.Model {
	switch key {
	case "h", "left", "H", "shift+left":
		m.panX -= speed
	case "l", "right", "L", "shift+right":
		m.panX += speed
	case "k", "up", "K", "shift+up":
		m.panY -= speed
	case "j", "down", "J", "shift+down":
		m.panY += speed
	}
	m.panX = max(0, m.panX)
	m.panY = max(0, m.panY)
	return m
}

// handleCursorMove moves the keyboard cursor and reports the move to the
// editor as pointer motion, so previews and drags follow the cursor.
func (m *model) handleCursorMove(key string, speed int) tea.Model {
	switch key {
	case "h", "left", "H", "shift+left":
		m.cursorX -= speed
	case "l", "right", "L", "shift+right":
		m.cursorX += speed
	case "k", "up", "K", "shift+up":
		m.cursorY -= speed
	case "j", "down", "J", "shift+down":
		m.cursorY += speed
	}
	m.ensureCursorInBounds()
	m.editor.HandlePointerMove(m.cursorPoint())
	return m
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 4
	default:
		return 1
	}
}

func (m *model) ensureCursorInBounds() {
	if m.cursorX < 0 {
		m.cursorX = 0
	}
	if m.cursorY < 0 {
		m.cursorY = 0
	}
	if m.width > 0 && m.cursorX >= m.width {
		m.cursorX = m.width - 1
	}
	if maxY := m.canvasRows() - 1; m.cursorY > maxY {
		m.cursorY = maxY
	}
}

// clickAtCursor presses the pointer at the cursor. A press that grabs an
// object holds it until the next click so the cursor keys can drag it.
func (m *model) clickAtCursor() {
	p := m.cursorPoint()
	if m.holding {
		m.editor.HandlePointerUp(p)
		m.holding = false
		return
	}
	m.pointerDown(p)
	if m.editor.Dragging() {
		m.holding = true
		return
	}
	m.editor.HandlePointerUp(p)
}

// pointerDown forwards a press and opens the label editor when the press
// placed a text object.
func (m *model) pointerDown(p Point) {
	var placed *Object
	m.editor.OnTextPlaced = func(obj *Object) { placed = obj }
	m.editor.HandlePointerDown(p)
	m.editor.OnTextPlaced = nil
	if placed != nil {
		m.editingTextID = placed.ID
		m.inputText = placed.Text
		m.mode = ModeTextInput
	}
}
