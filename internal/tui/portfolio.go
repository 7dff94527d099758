package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.uber.org/zap"

	"github.com/jask/portfoliodesk/internal/format"
	"github.com/jask/portfoliodesk/internal/portfolio"
	"github.com/jask/portfoliodesk/internal/service"
)

const (
	nameWidth    = 20
	addressWidth = 25
)

func (a *App) handlePortfolioKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Search):
		a.searching = true
		a.search.SetValue(a.table.Query())
		a.search.CursorEnd()
		return a, a.search.Focus()
	case key.Matches(m, a.keys.NextFilter):
		a.table = a.table.SetFilter(a.shiftFilter(1))
		a.clampCursor()
	case key.Matches(m, a.keys.PrevFilter):
		a.table = a.table.SetFilter(a.shiftFilter(-1))
		a.clampCursor()
	case key.Matches(m, a.keys.NextColumn):
		if a.sortCursor < len(portfolio.Columns)-1 {
			a.sortCursor++
		}
	case key.Matches(m, a.keys.PrevColumn):
		if a.sortCursor > 0 {
			a.sortCursor--
		}
	case key.Matches(m, a.keys.Sort):
		a.table = a.table.ToggleSort(portfolio.Columns[a.sortCursor])
	case key.Matches(m, a.keys.Up):
		if a.rowCursor > 0 {
			a.rowCursor--
		}
	case key.Matches(m, a.keys.Down):
		if a.rowCursor < len(a.table.View().Rows)-1 {
			a.rowCursor++
		}
	case key.Matches(m, a.keys.Toggle):
		rows := a.table.View().Rows
		if a.rowCursor < len(rows) {
			a.table = a.table.ToggleRow(rows[a.rowCursor].ID)
		}
	case key.Matches(m, a.keys.SelectAll):
		a.table = a.table.SelectAll()
	case key.Matches(m, a.keys.Clear):
		a.table = a.table.ClearSelection()
	case key.Matches(m, a.keys.NextPage):
		a.table = a.table.NextPage()
		a.clampCursor()
	case key.Matches(m, a.keys.PrevPage):
		a.table = a.table.PrevPage()
		a.clampCursor()
	case key.Matches(m, a.keys.Upload):
		return a, requestUpload
	case key.Matches(m, a.keys.Notice):
		return a, a.noticeCmd(service.NoticePreSarfaesi)
	case key.Matches(m, a.keys.DeclareNPA):
		return a, a.noticeCmd(service.NoticeNPA)
	}
	return a, nil
}

func (a *App) handleSearchKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEnter:
		a.searching = false
		a.search.Blur()
		return a, nil
	case tea.KeyEsc:
		a.searching = false
		a.search.Blur()
		a.search.SetValue("")
		a.table = a.table.SetQuery("")
		a.clampCursor()
		return a, nil
	}
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(m)
	a.table = a.table.SetQuery(a.search.Value())
	a.clampCursor()
	return a, cmd
}

func (a *App) shiftFilter(step int) portfolio.Filter {
	i := slices.Index(portfolio.Filters, a.table.Filter())
	n := len(portfolio.Filters)
	return portfolio.Filters[((i+step)%n+n)%n]
}

func (a *App) clampCursor() {
	rows := len(a.table.View().Rows)
	if a.rowCursor >= rows {
		a.rowCursor = max(rows-1, 0)
	}
}

func (a *App) noticeCmd(kind service.NoticeKind) tea.Cmd {
	if a.table.Filter() != portfolio.FilterPreSarfaesi {
		a.status = "notice actions are available on the Pre Sarfaesi tab"
		return nil
	}
	selected := a.table.Selected()
	if len(selected) == 0 {
		a.status = "select loans first"
		return nil
	}
	if a.services.Notices == nil {
		return func() tea.Msg { return errMsg{fmt.Errorf("notice service not configured")} }
	}
	a.status = "writing register..."
	return func() tea.Msg {
		res, err := a.services.Notices.Generate(a.ctx, kind, selected)
		return noticeDoneMsg{kind: kind, result: res, err: err}
	}
}

func (a *App) finishNotice(m noticeDoneMsg) {
	if m.err != nil {
		a.status = "error: " + m.err.Error()
		a.logger.Error("notice.failed", zap.String("kind", string(m.kind)), zap.Error(m.err))
		return
	}
	a.status = fmt.Sprintf("%s written for %d loans: %s", m.kind.Title(), m.result.Count, m.result.Path)
	a.table = a.table.ClearSelection()
}

func (a *App) renderPortfolio() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Portfolio"))
	b.WriteString("\n")
	b.WriteString(a.renderFilterTabs())
	b.WriteString("\n")

	if a.searching {
		b.WriteString(a.search.View())
	} else {
		q := a.table.Query()
		if q == "" {
			q = mutedStyle.Render("(none)")
		}
		b.WriteString("Search loan no.: " + q)
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(a.table.Status()))
	b.WriteString("\n")

	if a.table.Filter() == portfolio.FilterPreSarfaesi {
		n := a.table.Selection().Len()
		b.WriteString(fmt.Sprintf("[g] Generate Pre Sarfaesi Notice (%d)   [x] Declare NPA (%d)\n", n, n))
	}

	if !a.loaded {
		b.WriteString("loading portfolio...\n")
		return b.String()
	}

	v := a.table.View()
	if len(v.Rows) == 0 {
		b.WriteString("\n" + a.table.EmptyMessage() + "\n")
	} else {
		b.WriteString(a.renderLoanTable(v))
		b.WriteString("\n")
	}

	footer := v.Summary()
	if v.Total > 0 {
		footer += fmt.Sprintf("   page %d/%d", v.Page+1, v.Pages())
	}
	b.WriteString(footer + "   [u] Upload Document\n")
	b.WriteString(a.help.ShortHelpView(a.keys.portfolioHelp()))
	return b.String()
}

func (a *App) renderFilterTabs() string {
	tabs := make([]string, 0, len(portfolio.Filters))
	for _, f := range portfolio.Filters {
		label := f.Label()
		if f == a.table.Filter() {
			tabs = append(tabs, activeStyle.Render("["+label+"]"))
			continue
		}
		tabs = append(tabs, " "+label+" ")
	}
	return strings.Join(tabs, " ")
}

func (a *App) renderLoanTable(v portfolio.View) string {
	headers := make([]string, 0, len(portfolio.Columns)+1)
	check := "[ ]"
	if a.table.AllSelected() {
		check = "[x]"
	}
	headers = append(headers, check)
	for i, c := range portfolio.Columns {
		h := c.Title()
		if c == a.table.SortColumn() {
			if a.table.SortDirection() == portfolio.Desc {
				h += " ↓"
			} else {
				h += " ↑"
			}
		}
		if i == a.sortCursor {
			h = "›" + h
		}
		headers = append(headers, h)
	}

	rows := make([][]string, 0, len(v.Rows))
	sel := a.table.Selection()
	for _, l := range v.Rows {
		mark := "[ ]"
		if sel.Has(l.ID) {
			mark = "[x]"
		}
		rows = append(rows, []string{
			mark,
			l.ID,
			l.LoanType,
			format.Truncate(l.Borrower, nameWidth),
			format.Truncate(l.BorrowerAddress, addressWidth),
			format.Truncate(l.CoBorrowerName, nameWidth),
			format.Truncate(l.CoBorrowerAddress, addressWidth),
			l.CurrentDPD.String(),
			format.Currency(a.cfg.UI.CurrencySymbol, l.SanctionAmount),
			l.Region,
			l.Status,
		})
	}

	cursor := a.rowCursor
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
			switch {
			case row == table.HeaderRow:
				return s.Bold(true)
			case row == cursor:
				return s.Inherit(selectedStyle)
			}
			return s
		})
	return t.Render()
}
