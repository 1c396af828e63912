package main

import "math"

type Mode int

const (
	ModeNormal Mode = iota
	ModeTextInput
	ModeNameInput
	ModeDescriptionInput
	ModeIDInput
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpExportPNG FileOperation = iota
	FileOpExportPDF
	FileOpOpen
)

type ConfirmAction int

const (
	ConfirmClear ConfirmAction = iota
	ConfirmQuit
)

// ToolMode selects which tool receives pointer events.
type ToolMode int

const (
	ToolSelect ToolMode = iota
	ToolAlly
	ToolOpponent
	ToolCurveArrow
	ToolPassArrow
	ToolText
)

func (t ToolMode) String() string {
	switch t {
	case ToolSelect:
		return "select"
	case ToolAlly:
		return "player"
	case ToolOpponent:
		return "opponent"
	case ToolCurveArrow:
		return "arrow"
	case ToolPassArrow:
		return "pass"
	case ToolText:
		return "text"
	default:
		return "unknown"
	}
}

var toolModes = []ToolMode{ToolSelect, ToolAlly, ToolOpponent, ToolCurveArrow, ToolPassArrow, ToolText}

const (
	colorCourt       = "#FFFFFF"
	colorLine        = "#333333"
	colorAlly        = "#0000FF"
	colorOpponent    = "#FF0000"
	colorArrow       = "#333333"
	colorPass        = "#FF6B00"
	colorText        = "#333333"
	colorAnchorPoint = "#FF00FF"
	colorHandlePoint = "#00FFFF"
)

// pastelColors is rotated through, one entry per new curved arrow.
var pastelColors = []string{
	"#FFB3BA",
	"#FFDFBA",
	"#FFFFBA",
	"#BAFFC9",
	"#BAE1FF",
	"#E0BBE4",
	"#FFD1DC",
	"#C7CEEA",
}

const (
	courtLeft  = 30.0
	courtTop   = 30.0
	courtWidth = 900.0
	// courtAspect is height/width of a 28m x 15m court.
	courtAspect = 15.0 / 28.0
)

const (
	maxCurvePoints    = 5
	playerRadius      = 20.0
	arrowWidth        = 1.0
	passArrowWidth    = 3.0
	anchorRadius      = 2.0
	handleRadius      = 3.0
	arrowHeadLength   = 20.0
	defaultHeadLength = 15.0
	passHeadWidth     = 15.0
	passHeadHeight    = 20.0
	textFontSize      = 16.0
	defaultTextLabel  = "Text"
	previewOpacity    = 0.6
	passPreviewAlpha  = 0.5
)

const arrowHeadAngle = math.Pi / 6

var (
	curvePreviewDash = []float64{8, 4}
	passArrowDash    = []float64{10, 5}
	passPreviewDash  = []float64{5, 5}
)

// Terminal cell size in canvas pixels.
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)
