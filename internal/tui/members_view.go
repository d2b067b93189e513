package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/adminui/internal/members"
	"github.com/rshade/adminui/internal/pagination"
)

// printer formats counts with thousand separators.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

const helpText = "[/] Search  [space] Select  [a/A] Select all/page  [e] Edit  [d/D] Delete/selected  " +
	"[←→] Page  [1-9/:] Go to page  [q] Quit"

// View renders the current view.
func (m MembersModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateError:
		return ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	case ViewStateLoading:
		return RenderLoading(m.loadingState)
	case ViewStateList, ViewStateEdit, ViewStateGoto:
		return m.renderListView()
	default:
		return ""
	}
}

func (m MembersModel) renderListView() string {
	sections := []string{m.renderSearchBar(), m.table.View()}

	if m.list.Len() == 0 {
		sections = append(sections, SubtleStyle.Render(m.emptyMessage()))
	}

	sections = append(sections, m.renderFooter(), m.renderCounts())

	switch m.state {
	case ViewStateEdit:
		sections = append(sections, m.renderEditor())
	case ViewStateGoto:
		sections = append(sections, LabelStyle.Render("Go to page ")+m.gotoInput.View())
	default:
	}

	if m.status != "" {
		sections = append(sections, WarningStyle.Render(m.status))
	}
	sections = append(sections, SubtleStyle.Render(helpText))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m MembersModel) renderSearchBar() string {
	if m.showSearch || m.searchInput.Value() != "" {
		return LabelStyle.Render("Search: ") + m.searchInput.View()
	}
	return SubtleStyle.Render("Press / to search")
}

func (m MembersModel) emptyMessage() string {
	if m.list.Query() != "" {
		return fmt.Sprintf("No members match %q", m.list.Query())
	}
	return "No members"
}

func (m MembersModel) renderEditor() string {
	var sb strings.Builder
	_, _ = sb.WriteString(EditingRowStyle.Render("[~] Editing member " + m.editingID))
	for i := range m.editInputs {
		_, _ = sb.WriteString("\n" + m.editInputs[i].View())
	}
	_, _ = sb.WriteString("\n" + SubtleStyle.Render("[tab] Next field  [enter] Save  [esc] Cancel"))
	return sb.String()
}

// renderFooter draws the page buttons. When they are wider than the
// terminal the paginator's compact "page/total" view is used instead.
func (m MembersModel) renderFooter() string {
	footer := RenderPageButtons(m.list.Page(), m.list.PageCount())
	if lipgloss.Width(footer) <= m.width {
		return footer
	}
	return arrow("<<", pagination.HasPrevious(m.list.Page())) + " " +
		m.pager.View() + " " +
		arrow(">>", pagination.HasNext(m.list.Page(), m.list.PageCount()))
}

// RenderPageButtons renders "<<  1  2 [3]  >>" with the current page
// highlighted and the arrows dimmed at the boundaries.
func RenderPageButtons(page, pageCount int) string {
	buttons := pagination.Buttons(pageCount)
	parts := make([]string, 0, len(buttons)+2) //nolint:mnd // Two arrows.
	parts = append(parts, arrow("<<", pagination.HasPrevious(page)))
	for _, b := range buttons {
		label := strconv.Itoa(b)
		if b == page {
			parts = append(parts, ActivePageStyle.Render("["+label+"]"))
		} else {
			parts = append(parts, " "+label+" ")
		}
	}
	parts = append(parts, arrow(">>", pagination.HasNext(page, pageCount)))
	return strings.Join(parts, " ")
}

func arrow(label string, enabled bool) string {
	if enabled {
		return LabelStyle.Render(label)
	}
	return SubtleStyle.Render(label)
}

func (m MembersModel) renderCounts() string {
	return SubtleStyle.Render(CountsLine(m.list))
}

// CountsLine describes the visible window, for example
// "Showing 11-20 of 1,024 members (3 selected)".
func CountsLine(list *members.State) string {
	total := list.Len()
	if total == 0 {
		return printer.Sprintf("Showing 0 of %d members", len(list.Full()))
	}

	meta := pagination.NewMeta(list.Page(), list.PageSize(), total)
	line := printer.Sprintf("Showing %d-%d of %d members", meta.FirstItem, meta.LastItem, total)
	if list.Query() != "" {
		line += printer.Sprintf(" (filtered from %d)", len(list.Full()))
	}
	if n := len(list.Selected()); n > 0 {
		line += printer.Sprintf(" (%d selected)", n)
	}
	return line
}
