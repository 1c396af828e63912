package main

import "log/slog"

type model struct {
	width      int
	height     int
	cursorX    int
	cursorY    int
	panX       int
	panY       int
	zPanMode   bool
	holding    bool
	mode       Mode
	help       bool
	helpScroll int

	editor *Editor
	client *PlayClient
	config *Config
	log    *slog.Logger

	inputText     string
	playName      string
	playDesc      string
	playID        string
	fileOp        FileOperation
	confirmAction ConfirmAction
	editingTextID string

	errorMessage   string
	successMessage string
}

type playSavedMsg struct {
	id  string
	err error
}

type playLoadedMsg struct {
	play *Play
	err  error
}
