package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	toolStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	activeToolStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorCourt)).Background(lipgloss.Color(colorAlly))
	cursorStyle     = lipgloss.NewStyle().Reverse(true)
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(colorOpponent)).Bold(true)
	successStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E8B57"))
	promptStyle     = lipgloss.NewStyle().Bold(true)
)

func toolLabel(mode ToolMode) string {
	return fmt.Sprintf(" %s %s ", toolKeys[mode], mode)
}

// toolbarHit maps a tool bar column to the tool drawn there.
func toolbarHit(x int) (ToolMode, bool) {
	col := 0
	for _, mode := range toolModes {
		w := lipgloss.Width(toolLabel(mode))
		if x >= col && x < col+w {
			return mode, true
		}
		col += w
	}
	return 0, false
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	width := max(1, m.width)
	rows := m.canvasRows()

	var result strings.Builder
	result.WriteString(m.toolbarView())
	result.WriteString("\n")

	grid := m.editor.Scene().Render(width, rows, m.panX, m.panY)
	for y, row := range grid {
		cursorX := -1
		if m.mode == ModeNormal && y == m.cursorY {
			cursorX = m.cursorX
		}
		result.WriteString(renderRow(row, cursorX))
		result.WriteString("\n")
	}

	result.WriteString(m.statusView())
	return result.String()
}

func (m model) toolbarView() string {
	var bar strings.Builder
	for _, mode := range toolModes {
		if mode == m.editor.Mode() {
			bar.WriteString(activeToolStyle.Render(toolLabel(mode)))
		} else {
			bar.WriteString(toolStyle.Render(toolLabel(mode)))
		}
	}
	if m.editor.Mode() == ToolCurveArrow {
		bar.WriteString(fmt.Sprintf("  points %d/%d", m.editor.CurvePointsCaptured(), maxCurvePoints))
	}
	if m.playName != "" {
		bar.WriteString("  " + m.playName)
		if m.playID != "" {
			bar.WriteString(" #" + m.playID)
		}
	}
	return bar.String()
}

// renderRow styles runs of cells that share colours as one segment.
func renderRow(row []cell, cursorX int) string {
	var out strings.Builder
	start := 0
	flush := func(end int) {
		if end <= start {
			return
		}
		runes := make([]rune, 0, end-start)
		for _, c := range row[start:end] {
			runes = append(runes, c.ch)
		}
		style := lipgloss.NewStyle()
		if fg := row[start].fg; fg != "" {
			style = style.Foreground(lipgloss.Color(fg))
		}
		if bg := row[start].bg; bg != "" {
			style = style.Background(lipgloss.Color(bg))
		}
		if start == cursorX {
			style = style.Inherit(cursorStyle)
		}
		out.WriteString(style.Render(string(runes)))
		start = end
	}
	for x := 1; x <= len(row); x++ {
		if x == len(row) || x == cursorX || x-1 == cursorX ||
			row[x].fg != row[start].fg || row[x].bg != row[start].bg {
			flush(x)
		}
	}
	return out.String()
}

func (m model) statusView() string {
	switch m.mode {
	case ModeTextInput:
		return promptStyle.Render("Text: ") + m.inputText + "█  Enter=apply, Esc=cancel"
	case ModeNameInput:
		return m.withError(promptStyle.Render("Play name: ") + m.inputText + "█  Enter=next, Esc=cancel")
	case ModeDescriptionInput:
		return promptStyle.Render("Description: ") + m.inputText + "█  Enter=save, Esc=cancel"
	case ModeIDInput:
		return m.withError(promptStyle.Render("Load play id: ") + m.inputText + "█  Enter=load, Esc=cancel")
	case ModeFileInput:
		var op string
		switch m.fileOp {
		case FileOpExportPNG:
			op = "Export PNG"
		case FileOpExportPDF:
			op = "Export PDF"
		case FileOpOpen:
			op = "Open document"
		}
		return m.withError(promptStyle.Render(op+" filename: ") + m.inputText + "█  Enter=confirm, Esc=cancel")
	case ModeConfirm:
		switch m.confirmAction {
		case ConfirmClear:
			return promptStyle.Render("Clear the whole diagram? (y/n)")
		case ConfirmQuit:
			return promptStyle.Render("Quit courtboard? (y/n)")
		}
	}

	modeStr := "CURSOR"
	if m.zPanMode {
		modeStr = "PAN"
	}
	status := fmt.Sprintf("%s | Tool: %s | Cursor: (%d,%d)", modeStr, m.editor.Mode(), m.cursorX, m.cursorY)
	if m.holding {
		status += " | Dragging (space to drop)"
	}
	if n := len(m.editor.Scene().Selected()); n > 0 {
		status += fmt.Sprintf(" | Selected: %d", n)
	}
	if m.successMessage != "" {
		status += " | " + successStyle.Render(m.successMessage)
	}
	if m.errorMessage != "" {
		status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
	} else if m.successMessage == "" {
		status += " | ? for help | q to quit"
	}
	return status
}

func (m model) withError(line string) string {
	if m.errorMessage == "" {
		return line
	}
	return errorStyle.Render("ERROR: "+m.errorMessage) + " | " + line
}

var helpLines = []string{
	"courtboard help",
	"===============",
	"",
	"Navigation:",
	"-----------",
	"  h/←/j/↓/k/↑/l/→  Move cursor (the mouse works too)",
	"  Shift+h/j/k/l    Move cursor faster",
	"  z                Toggle pan mode (cursor keys scroll the court)",
	"  Space/Enter      Click at the cursor; on an object, pick it up",
	"                   and drop it with the next click",
	"",
	"Tools:",
	"------",
	"  s                Select and move objects",
	"  1                Place an ally player (numbered)",
	"  2                Place an opponent player (numbered)",
	"  a                Curved arrow: click up to 5 points",
	"  f                Finish the curved arrow early (2 points or more)",
	"  p                Pass arrow: click start, then end",
	"  t                Place a text label",
	"  T                Edit the selected text label",
	"  Esc              Cancel the current tool action",
	"",
	"Curves:",
	"-------",
	"  Drag a ◆ endpoint or ○ handle to reshape its arrow.",
	"  Deleting an anchor deletes the whole arrow.",
	"",
	"Editing:",
	"--------",
	"  x/Delete         Delete the selection",
	"  C                Clear the diagram (court is kept)",
	"",
	"Plays and files:",
	"----------------",
	"  w                Save play to the server (name, description)",
	"  o                Load play by id from the server",
	"  O                Open a diagram document file",
	"  e                Export PNG",
	"  E                Export PDF",
	"  y                Copy diagram document to the clipboard",
	"  Y                Load diagram document from the clipboard",
	"",
	"General:",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m model) helpView() string {
	visibleHeight := max(1, m.height-1)

	startLine := min(m.helpScroll, max(0, len(helpLines)-visibleHeight))
	endLine := min(startLine+visibleHeight, len(helpLines))

	result := strings.Join(helpLines[startLine:endLine], "\n")
	result += "\n" + fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return result
}
