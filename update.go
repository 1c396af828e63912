package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

var toolKeys = map[ToolMode]string{
	ToolSelect:     "s",
	ToolAlly:       "1",
	ToolOpponent:   "2",
	ToolCurveArrow: "a",
	ToolPassArrow:  "p",
	ToolText:       "t",
}

// Update handles one message and then runs the editor's next-frame work, so
// the view always sees the settled scene.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.editor.Frame()
	return m, cmd
}

func (m *model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorInBounds()
		return nil

	case tea.MouseMsg:
		if m.mode != ModeNormal || m.help {
			return nil
		}
		m.handleMouse(msg)
		return nil

	case playSavedMsg:
		if msg.err != nil {
			m.log.Error("save play failed", "name", m.playName, "err", msg.err)
			m.errorMessage = "Error saving play: " + msg.err.Error()
			return nil
		}
		m.playID = msg.id
		m.successMessage = fmt.Sprintf("Play saved (id %s)", msg.id)
		m.log.Info("play saved", "id", msg.id, "name", m.playName)
		return nil

	case playLoadedMsg:
		if msg.err != nil {
			m.log.Error("load play failed", "err", msg.err)
			m.errorMessage = "Error loading play: " + msg.err.Error()
			return nil
		}
		if err := m.editor.Deserialize(msg.play.DiagramData); err != nil {
			m.log.Error("load play failed", "id", msg.play.ID, "err", err)
			m.errorMessage = "Error loading play: " + err.Error()
			return nil
		}
		m.holding = false
		m.playID = msg.play.ID
		m.playName = msg.play.Name
		m.playDesc = msg.play.Description
		m.successMessage = fmt.Sprintf("Loaded %q", msg.play.Name)
		return nil

	case tea.KeyMsg:
		if m.help {
			return m.handleHelpKey(msg)
		}
		switch m.mode {
		case ModeNormal:
			return m.handleNormalKey(msg)
		case ModeConfirm:
			return m.handleConfirmKey(msg)
		default:
			return m.handleInputKey(msg)
		}
	}
	return nil
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	// row 0 is the tool bar
	if msg.Y == 0 {
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if mode, ok := toolbarHit(msg.X); ok {
				m.setTool(mode)
			}
		}
		return
	}
	row := msg.Y - 1
	if row >= m.canvasRows() {
		return
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.panY = max(0, m.panY-1)
		return
	case tea.MouseButtonWheelDown:
		m.panY++
		return
	}

	m.cursorX, m.cursorY = msg.X, row
	p := m.cursorPoint()
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.clearMessages()
			m.holding = false
			m.pointerDown(p)
		}
	case tea.MouseActionMotion:
		m.editor.HandlePointerMove(p)
	case tea.MouseActionRelease:
		m.editor.HandlePointerUp(p)
	}
}

func (m *model) clearMessages() {
	m.errorMessage = ""
	m.successMessage = ""
}

func (m *model) setTool(mode ToolMode) {
	if m.holding {
		m.editor.HandlePointerUp(m.cursorPoint())
		m.holding = false
	}
	m.editor.SetMode(mode)
}

func (m *model) handleNormalKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	m.clearMessages()

	for mode, k := range toolKeys {
		if key == k {
			m.setTool(mode)
			return nil
		}
	}

	switch key {
	case "ctrl+c":
		return tea.Quit
	case "q":
		m.mode = ModeConfirm
		m.confirmAction = ConfirmQuit
	case "?":
		m.help = true
		m.helpScroll = 0
	case "h", "left", "H", "shift+left",
		"l", "right", "L", "shift+right",
		"k", "up", "K", "shift+up",
		"j", "down", "J", "shift+down":
		m.handleNavigation(key, m.getMoveSpeed(key))
	case "z":
		m.zPanMode = !m.zPanMode
	case " ", "enter":
		m.clickAtCursor()
	case "esc":
		if m.holding {
			m.editor.HandlePointerUp(m.cursorPoint())
			m.holding = false
		}
		m.editor.SetMode(m.editor.Mode())
		m.editor.Scene().DiscardSelection()
	case "f":
		if _, err := m.editor.FinalizeCurve(); err != nil {
			m.errorMessage = err.Error()
		}
	case "x", "delete", "backspace":
		m.holding = false
		if n := m.editor.DeleteSelected(); n > 0 {
			m.successMessage = fmt.Sprintf("Deleted %d objects", n)
		}
	case "T":
		for _, obj := range m.editor.Scene().Selected() {
			if obj.Kind == KindText {
				m.editingTextID = obj.ID
				m.inputText = obj.Text
				m.mode = ModeTextInput
				break
			}
		}
	case "C":
		m.mode = ModeConfirm
		m.confirmAction = ConfirmClear
	case "w":
		m.mode = ModeNameInput
		m.inputText = m.playName
	case "o":
		m.mode = ModeIDInput
		m.inputText = m.playID
	case "O":
		m.mode = ModeFileInput
		m.fileOp = FileOpOpen
		m.inputText = ""
	case "e", "E":
		m.mode = ModeFileInput
		m.fileOp = FileOpExportPNG
		if key == "E" {
			m.fileOp = FileOpExportPDF
		}
		m.inputText = m.playName
		if m.inputText == "" {
			m.inputText = "play"
		}
	case "y":
		data, err := m.editor.Serialize()
		if err == nil {
			err = writeClipboardText(string(data))
		}
		if err != nil {
			m.errorMessage = "Copy failed: " + err.Error()
			return nil
		}
		m.successMessage = "Diagram copied to clipboard"
	case "Y":
		text, err := readClipboardText()
		if err == nil {
			err = m.editor.Deserialize([]byte(strings.TrimSpace(text)))
		}
		if err != nil {
			m.errorMessage = "Paste failed: " + err.Error()
			return nil
		}
		m.holding = false
		m.successMessage = "Diagram pasted from clipboard"
	}
	return nil
}

func (m *model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.inputText = ""
		m.editingTextID = ""
		m.errorMessage = ""
		return nil
	case tea.KeyEnter:
		return m.submitInput()
	case tea.KeyBackspace:
		if r := []rune(m.inputText); len(r) > 0 {
			m.inputText = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.inputText += " "
	case tea.KeyRunes:
		m.inputText += string(msg.Runes)
	case tea.KeyCtrlC:
		return tea.Quit
	}
	return nil
}

func (m *model) submitInput() tea.Cmd {
	switch m.mode {
	case ModeTextInput:
		text := m.inputText
		if strings.TrimSpace(text) == "" {
			text = defaultTextLabel
		}
		if err := m.editor.SetText(m.editingTextID, text); err != nil {
			m.errorMessage = err.Error()
		}
		m.editingTextID = ""

	case ModeNameInput:
		name := strings.TrimSpace(m.inputText)
		if name == "" {
			m.errorMessage = "Please enter a play name"
			return nil
		}
		m.playName = name
		m.inputText = m.playDesc
		m.errorMessage = ""
		m.mode = ModeDescriptionInput
		return nil

	case ModeDescriptionInput:
		m.playDesc = strings.TrimSpace(m.inputText)
		data, err := m.editor.Serialize()
		if err != nil {
			m.errorMessage = err.Error()
			break
		}
		m.successMessage = "Saving..."
		m.mode = ModeNormal
		m.inputText = ""
		return m.savePlayCmd(SaveRequest{
			Name:        m.playName,
			Description: m.playDesc,
			DiagramData: string(data),
		})

	case ModeIDInput:
		id := strings.TrimSpace(m.inputText)
		if id == "" {
			m.errorMessage = "Please enter a play id"
			return nil
		}
		m.successMessage = "Loading..."
		m.mode = ModeNormal
		m.inputText = ""
		return m.loadPlayCmd(id)

	case ModeFileInput:
		name := strings.TrimSpace(m.inputText)
		if name == "" {
			m.errorMessage = "Please enter a filename"
			return nil
		}
		if err := m.runFileOp(name); err != nil {
			m.errorMessage = err.Error()
			if !errors.Is(err, ErrNothingToExport) {
				return nil
			}
		}
	}
	m.mode = ModeNormal
	m.inputText = ""
	return nil
}

func (m *model) runFileOp(name string) error {
	switch m.fileOp {
	case FileOpExportPNG, FileOpExportPDF:
		ext := ".png"
		export := ExportPNG
		if m.fileOp == FileOpExportPDF {
			ext = ".pdf"
			export = ExportPDF
		}
		if !strings.EqualFold(filepath.Ext(name), ext) {
			name += ext
		}
		path := m.config.GetSavePath(name)
		if err := export(m.editor.Scene(), path); err != nil {
			return err
		}
		m.successMessage = "Exported to " + path
	case FileOpOpen:
		if err := m.openDocument(name); err != nil {
			return err
		}
		m.holding = false
		m.successMessage = "Opened " + name
	}
	return nil
}

func (m *model) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmClear:
			m.holding = false
			m.editor.Clear()
			m.successMessage = "Diagram cleared"
		case ConfirmQuit:
			return tea.Quit
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
	case "ctrl+c":
		return tea.Quit
	}
	return nil
}

func (m *model) handleHelpKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q", "?":
		m.help = false
	case "j", "down":
		if m.helpScroll < len(helpLines)-1 {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	case "ctrl+c":
		return tea.Quit
	}
	return nil
}
