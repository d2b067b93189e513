package tui

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/rshade/adminui/internal/logging"
	"github.com/rshade/adminui/internal/members"
)

// Table column widths.
const (
	colWidthCheck = 3
	colWidthID    = 6
	colWidthName  = 24
	colWidthEmail = 32
	colWidthRole  = 10

	// chromeHeight is the number of lines around the table (search, footer, help).
	chromeHeight = 6
)

// editFields are the fields offered by the inline editor, in tab order.
//
//nolint:gochecknoglobals // Fixed tab order for the editor inputs.
var editFields = []members.Field{members.FieldName, members.FieldEmail, members.FieldRole}

// MembersFetcher loads the member list. It should honour ctx cancellation.
type MembersFetcher func(ctx context.Context) ([]members.Record, error)

// membersLoadedMsg carries the result of the single fetch.
type membersLoadedMsg struct {
	records []members.Record
	err     error
}

// MembersOptions configures a MembersModel.
type MembersOptions struct {
	// PageSize is the number of records per page; zero uses the default.
	PageSize int

	// Timeout bounds the fetch; zero means no timeout beyond ctx.
	Timeout time.Duration

	// Strict turns a failed fetch into an error screen instead of an empty list.
	Strict bool

	// Width is the terminal width before the first resize message; zero uses
	// a default.
	Width int
}

// MembersModel is the Bubble Tea model for the interactive member table.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type MembersModel struct {
	// View state
	state ViewState
	list  *members.State
	ctx   context.Context
	opts  MembersOptions

	// Interactive components
	table       table.Model
	pager       paginator.Model
	searchInput textinput.Model
	gotoInput   textinput.Model
	editInputs  []textinput.Model
	editFocus   int
	editingID   string
	showSearch  bool

	// Display configuration
	width  int
	height int

	// Loading state
	loadingState *LoadingState
	fetchCmd     tea.Cmd

	// status is a one-line message about the last action.
	status string

	err error
}

// NewMembersModel creates a model that starts in the loading state and runs
// fetch once from Init.
func NewMembersModel(ctx context.Context, fetch MembersFetcher, opts MembersOptions) MembersModel {
	m := newMembersModel(ctx, opts)
	m.state = ViewStateLoading
	m.loadingState = NewLoadingState()
	m.fetchCmd = func() tea.Msg {
		fetchCtx := ctx
		if opts.Timeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
			defer cancel()
		}
		records, err := fetch(fetchCtx)
		return membersLoadedMsg{records: records, err: err}
	}
	return m
}

// NewMembersModelWithRecords creates a model already showing records.
func NewMembersModelWithRecords(ctx context.Context, records []members.Record, opts MembersOptions) MembersModel {
	m := newMembersModel(ctx, opts)
	m.list.Load(records)
	m.state = ViewStateList
	m.refresh()
	return m
}

func newMembersModel(ctx context.Context, opts MembersOptions) MembersModel {
	m := MembersModel{
		list:        members.NewState(opts.PageSize),
		ctx:         ctx,
		opts:        opts,
		searchInput: newSearchInput(),
		gotoInput:   newGotoInput(),
		width:       defaultWidth,
		height:      defaultHeight,
		pager:       newPager(),
	}
	if opts.Width > 0 {
		m.width = opts.Width
	}
	m.table = m.buildMembersTable()
	return m
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search by name, email or role"
	ti.CharLimit = searchInputCharLimit
	ti.Width = searchInputWidth
	return ti
}

func newGotoInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "page"
	ti.CharLimit = gotoInputCharLimit
	ti.Width = gotoInputWidth
	ti.Prompt = ":"
	return ti
}

func newEditInput(field members.Field, value string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = string(field) + ": "
	ti.CharLimit = editInputCharLimit
	ti.Width = editInputWidth
	ti.SetValue(value)
	return ti
}

func newPager() paginator.Model {
	p := paginator.New()
	p.Type = paginator.Arabic
	return p
}

// Init starts the spinner and the fetch when loading.
func (m MembersModel) Init() tea.Cmd {
	if m.state == ViewStateLoading {
		return tea.Batch(m.loadingState.Init(), m.fetchCmd)
	}
	return nil
}

// Update handles messages and updates the model state.
func (m MembersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if winMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = winMsg.Width
		m.height = winMsg.Height
		m.table = m.buildMembersTable()
		m.refresh()
		return m, nil
	}

	if loadMsg, ok := msg.(membersLoadedMsg); ok {
		return m.handleLoadingComplete(loadMsg)
	}

	if m.showSearch {
		return m.handleSearchInput(msg)
	}

	switch m.state {
	case ViewStateLoading:
		return m.handleLoadingUpdate(msg)
	case ViewStateList:
		return m.handleListUpdate(msg)
	case ViewStateEdit:
		return m.handleEditInput(msg)
	case ViewStateGoto:
		return m.handleGotoInput(msg)
	case ViewStateQuitting, ViewStateError:
		return m.handleQuitUpdate(msg)
	default:
		return m, nil
	}
}

func (m MembersModel) handleLoadingComplete(msg membersLoadedMsg) (tea.Model, tea.Cmd) {
	logger := m.logger()
	if msg.err != nil {
		if m.opts.Strict {
			m.err = msg.err
			m.state = ViewStateError
			return m, tea.Quit
		}
		logger.Warn().Ctx(m.ctx).Err(msg.err).Msg("member load failed, showing empty list")
		msg.records = nil
	}

	m.logChange(m.list.Load(msg.records))
	m.state = ViewStateList
	m.refresh()
	return m, nil
}

func (m MembersModel) handleLoadingUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == keyCtrlC {
		m.state = ViewStateQuitting
		return m, tea.Quit
	}
	return m, m.loadingState.Update(msg)
}

// handleSearchInput forwards keys to the search box and re-runs the search
// whenever its value changes.
func (m MembersModel) handleSearchInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEnter, keyEsc:
			m.showSearch = false
			m.searchInput.Blur()
			m.table.Focus()
			return m, nil
		case keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if value := m.searchInput.Value(); value != before {
		m.applySearch(value)
	}
	return m, cmd
}

func (m MembersModel) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m.handleListKeypress(keyMsg)
}

//nolint:cyclop,funlen // One case per key binding.
func (m MembersModel) handleListKeypress(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	key := keyMsg.String()

	switch key {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keySlash:
		m.showSearch = true
		m.table.Blur()
		cmd := m.searchInput.Focus()
		return m, cmd
	case keyEsc:
		if m.searchInput.Value() != "" {
			m.searchInput.SetValue("")
			m.applySearch("")
		}
		return m, nil
	case keySpace:
		if r, ok := m.cursorRecord(); ok {
			m.apply(m.list.ToggleSelect(r.ID))
		}
		return m, nil
	case keySelectAll:
		m.apply(m.list.SelectAll(!m.list.AllSelected()))
		return m, nil
	case keySelectPage:
		m.apply(m.list.SelectPage(!m.pageSelected()))
		return m, nil
	case keyEdit:
		if r, ok := m.cursorRecord(); ok {
			return m.startEdit(r)
		}
		return m, nil
	case keyDelete:
		if r, ok := m.cursorRecord(); ok {
			m.apply(m.list.Delete(r.ID))
			m.status = "Deleted " + r.Name
		}
		return m, nil
	case keyDeleteSel:
		ch := m.list.DeleteSelected()
		m.apply(ch)
		if ch.Applied {
			m.status = printer.Sprintf("Deleted %d members", len(ch.IDs))
		}
		return m, nil
	case keyLeft, keyH:
		m.apply(m.list.PrevPage())
		return m, nil
	case keyRight, keyL:
		m.apply(m.list.NextPage())
		return m, nil
	case keyColon:
		m.state = ViewStateGoto
		m.gotoInput.SetValue("")
		m.table.Blur()
		cmd := m.gotoInput.Focus()
		return m, cmd
	}

	if page, ok := pageButton(key); ok {
		if page <= m.list.PageCount() {
			m.apply(m.list.GoTo(page))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(keyMsg)
	return m, cmd
}

// pageButton maps the digit keys 1-9 to page numbers.
func pageButton(key string) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	return int(key[0] - '0'), true
}

func (m MembersModel) startEdit(r members.Record) (tea.Model, tea.Cmd) {
	m.logChange(m.list.ToggleEditing(r.ID, true))
	m.editingID = r.ID
	m.editInputs = make([]textinput.Model, len(editFields))
	for i, f := range editFields {
		m.editInputs[i] = newEditInput(f, r.Value(f))
	}
	m.editFocus = 0
	m.state = ViewStateEdit
	m.table.Blur()
	m.refresh()
	cmd := m.editInputs[0].Focus()
	return m, cmd
}

func (m MembersModel) handleEditInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		case keyEsc:
			m.logChange(m.list.ToggleEditing(m.editingID, false))
			m.status = "Edit cancelled"
			return m.finishEdit(), nil
		case keyEnter:
			values := make(map[members.Field]string, len(editFields))
			for i, f := range editFields {
				values[f] = m.editInputs[i].Value()
			}
			ch, err := m.list.Save(m.editingID, values)
			if err != nil {
				m.status = err.Error()
			} else {
				m.logChange(ch)
				m.status = "Saved " + values[members.FieldName]
			}
			return m.finishEdit(), nil
		case keyTab, keyShiftTab:
			step := 1
			if keyMsg.String() == keyShiftTab {
				step = len(m.editInputs) - 1
			}
			m.editInputs[m.editFocus].Blur()
			m.editFocus = (m.editFocus + step) % len(m.editInputs)
			cmd := m.editInputs[m.editFocus].Focus()
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.editInputs[m.editFocus], cmd = m.editInputs[m.editFocus].Update(msg)
	return m, cmd
}

func (m MembersModel) finishEdit() MembersModel {
	m.editingID = ""
	m.editInputs = nil
	m.editFocus = 0
	m.state = ViewStateList
	m.table.Focus()
	m.refresh()
	return m
}

func (m MembersModel) handleGotoInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		case keyEsc:
			m.closeGoto()
			return m, nil
		case keyEnter:
			raw := strings.TrimSpace(m.gotoInput.Value())
			page, err := strconv.Atoi(raw)
			if err != nil {
				m.status = "Not a page number: " + raw
			} else {
				m.apply(m.list.GoTo(page))
			}
			m.closeGoto()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	return m, cmd
}

func (m *MembersModel) closeGoto() {
	m.gotoInput.Blur()
	m.gotoInput.SetValue("")
	m.state = ViewStateList
	m.table.Focus()
}

func (m MembersModel) handleQuitUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyQuit, keyCtrlC, keyEnter, keyEsc:
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
	}
	return m, nil
}

// applySearch runs a search and returns the cursor to the top of page 1.
func (m *MembersModel) applySearch(term string) {
	m.logChange(m.list.Search(term))
	m.table.SetCursor(0)
	m.refresh()
}

// apply logs ch and redraws. A page move puts the cursor on the first row.
func (m *MembersModel) apply(ch members.Change) {
	m.logChange(ch)
	if ch.PageChanged() {
		m.table.SetCursor(0)
	}
	m.refresh()
}

func (m *MembersModel) logChange(ch members.Change) {
	logger := m.logger()
	logger.Debug().Ctx(m.ctx).
		Stringer("op", ch.Kind).
		Bool("applied", ch.Applied).
		Int("touched", len(ch.IDs)).
		Int("page", ch.PageAfter).
		Int("size", ch.Size).
		Msg("list changed")
}

func (m MembersModel) logger() zerolog.Logger {
	return logging.ComponentLogger(*logging.FromContext(m.ctx), "tui")
}

// cursorRecord returns the record under the table cursor.
func (m MembersModel) cursorRecord() (members.Record, bool) {
	window := m.list.Window()
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(window) {
		return members.Record{}, false
	}
	return window[cursor], true
}

// pageSelected reports whether every record on the current page is selected.
func (m MembersModel) pageSelected() bool {
	window := m.list.Window()
	if len(window) == 0 {
		return false
	}
	for _, r := range window {
		if !r.IsSelected {
			return false
		}
	}
	return true
}

// refresh rebuilds the table rows and the pager from the list state.
func (m *MembersModel) refresh() {
	window := m.list.Window()
	rows := make([]table.Row, len(window))
	for i, r := range window {
		rows[i] = table.Row{checkbox(r), r.ID, r.Name, r.Email, r.Role}
	}
	m.table.SetRows(rows)
	switch cursor := m.table.Cursor(); {
	case len(rows) == 0:
	case cursor < 0:
		m.table.SetCursor(0)
	case cursor >= len(rows):
		m.table.SetCursor(len(rows) - 1)
	}

	m.pager.PerPage = m.list.PageSize()
	m.pager.SetTotalPages(m.list.Len())
	m.pager.Page = m.list.Page() - 1
}

func checkbox(r members.Record) string {
	switch {
	case r.IsEditing:
		return "[~]"
	case r.IsSelected:
		return "[x]"
	default:
		return "[ ]"
	}
}

// buildMembersTable creates the table sized for the current window.
func (m MembersModel) buildMembersTable() table.Model {
	emailWidth := colWidthEmail
	if extra := m.width - (colWidthCheck + colWidthID + colWidthName + colWidthEmail + colWidthRole) - 2*5; extra > 0 {
		emailWidth += extra / 2 //nolint:mnd // Half of the spare width goes to email.
	}

	columns := []table.Column{
		{Title: "[ ]", Width: colWidthCheck},
		{Title: "ID", Width: colWidthID},
		{Title: "Name", Width: colWidthName},
		{Title: "Email", Width: emailWidth},
		{Title: "Role", Width: colWidthRole},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(m.tableHeight()),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)

	return t
}

// tableHeight fits one page plus the header into the terminal.
func (m MembersModel) tableHeight() int {
	want := m.list.PageSize() + 2 //nolint:mnd // Header line plus its border.
	avail := m.height - chromeHeight
	if avail < minHeight {
		avail = minHeight
	}
	if want > avail {
		return avail
	}
	return want
}

// List returns the list state the model operates on.
func (m MembersModel) List() *members.State {
	return m.list
}

// State returns the current view state.
func (m MembersModel) State() ViewState {
	return m.state
}

// Err returns the error that ended the session, if any.
func (m MembersModel) Err() error {
	return m.err
}
