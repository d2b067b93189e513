package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// ViewState is the screen the members model is showing.
type ViewState int

const (
	// ViewStateLoading shows a spinner while the member document is fetched.
	ViewStateLoading ViewState = iota
	// ViewStateList shows the paginated table.
	ViewStateList
	// ViewStateEdit shows the inline editor for one record.
	ViewStateEdit
	// ViewStateGoto shows the page number prompt.
	ViewStateGoto
	// ViewStateQuitting is entered right before the program exits.
	ViewStateQuitting
	// ViewStateError shows a fatal error.
	ViewStateError
)

// String returns the state name used in logs.
func (s ViewState) String() string {
	switch s {
	case ViewStateLoading:
		return "loading"
	case ViewStateList:
		return "list"
	case ViewStateEdit:
		return "edit"
	case ViewStateGoto:
		return "goto"
	case ViewStateQuitting:
		return "quitting"
	case ViewStateError:
		return "error"
	default:
		return "unknown"
	}
}

// Key bindings.
const (
	keyQuit       = "q"
	keyCtrlC      = "ctrl+c"
	keyEnter      = "enter"
	keyEsc        = "esc"
	keyTab        = "tab"
	keyShiftTab   = "shift+tab"
	keySlash      = "/"
	keySpace      = " "
	keySelectAll  = "a"
	keySelectPage = "A"
	keyEdit       = "e"
	keyDelete     = "d"
	keyDeleteSel  = "D"
	keyLeft       = "left"
	keyRight      = "right"
	keyH          = "h"
	keyL          = "l"
	keyColon      = ":"
)

// Layout defaults used until the first tea.WindowSizeMsg arrives.
const (
	defaultWidth  = 100
	defaultHeight = 24
	minHeight     = 5

	searchInputCharLimit = 100
	searchInputWidth     = 40
	editInputCharLimit   = 256
	editInputWidth       = 40
	gotoInputCharLimit   = 6
	gotoInputWidth       = 8
)

// Color palette.
const (
	ColorHeader   = lipgloss.Color("99")
	ColorSelected = lipgloss.Color("57")
	ColorAccent   = lipgloss.Color("229")
	ColorSubtle   = lipgloss.Color("241")
	ColorWarning  = lipgloss.Color("214")
	ColorError    = lipgloss.Color("196")
	ColorBorder   = lipgloss.Color("240")
)

// Shared styles.
//
//nolint:gochecknoglobals // Styles are package-level like the rest of the lipgloss ecosystem.
var (
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	LabelStyle   = lipgloss.NewStyle().Bold(true)
	SubtleStyle  = lipgloss.NewStyle().Foreground(ColorSubtle)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	ErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorError)

	TableHeaderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorBorder).
				BorderBottom(true).
				Bold(true)
	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Background(ColorSelected).
				Bold(false)

	ActivePageStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent).Background(ColorSelected)
	EditingRowStyle = lipgloss.NewStyle().Foreground(ColorWarning)
)

// LoadingState wraps the spinner shown while the fetch runs.
type LoadingState struct {
	spinner spinner.Model
	message string
}

// NewLoadingState returns a spinner with the default message.
func NewLoadingState() *LoadingState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorHeader)
	return &LoadingState{spinner: s, message: "Loading members..."}
}

// Init starts the spinner.
func (l *LoadingState) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner.
func (l *LoadingState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// RenderLoading renders the spinner line.
func RenderLoading(l *LoadingState) string {
	if l == nil {
		return "Loading..."
	}
	return l.spinner.View() + " " + l.message
}

// OutputMode selects how a command renders.
type OutputMode int

const (
	// OutputModePlain prints text without styling.
	OutputModePlain OutputMode = iota
	// OutputModeStyled prints lipgloss-styled text.
	OutputModeStyled
	// OutputModeInteractive runs the Bubble Tea program.
	OutputModeInteractive
)

// DetectOutputMode picks the richest mode w supports. forcePlain and
// NO_COLOR downgrade to plain; a non-terminal writer never gets the
// interactive program.
func DetectOutputMode(w io.Writer, forcePlain bool) OutputMode {
	if forcePlain || os.Getenv("NO_COLOR") != "" {
		return OutputModePlain
	}
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return OutputModePlain
	}
	if os.Getenv("TERM") == "dumb" {
		return OutputModeStyled
	}
	return OutputModeInteractive
}

// IsTerminal reports whether v is an *os.File attached to a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the width of w, or defaultWidth if it is not a terminal.
func TerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}
