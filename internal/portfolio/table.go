package portfolio

import (
	"fmt"
	"strings"
)

// Table holds the view state of the portfolio page together with the loans
// it renders. It is a value type: every method that changes state returns
// the updated Table.
type Table struct {
	loans     []Loan
	query     string
	filter    Filter
	sortCol   Column
	sortDir   Direction
	page      int
	pageSize  int
	selection Selection
}

// NewTable starts a table over loans sorted by ID ascending on page 0.
func NewTable(loans []Loan, pageSize int) Table {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return Table{
		loans:     loans,
		filter:    FilterAll,
		sortCol:   ColumnID,
		sortDir:   Asc,
		pageSize:  pageSize,
		selection: NewSelection(),
	}
}

func (t Table) Loans() []Loan { return t.loans }
func (t Table) Query() string { return t.query }
func (t Table) Filter() Filter { return t.filter }
func (t Table) SortColumn() Column { return t.sortCol }
func (t Table) SortDirection() Direction { return t.sortDir }
func (t Table) Page() int { return t.page }
func (t Table) PageSize() int { return t.pageSize }
func (t Table) Selection() Selection { return t.selection }

// SetLoans replaces the data set. Selection and view state are kept.
func (t Table) SetLoans(loans []Loan) Table {
	t.loans = loans
	return t
}

// SetQuery trims q and, when it differs from the current query, stores it
// and returns to the first page.
func (t Table) SetQuery(q string) Table {
	q = strings.TrimSpace(q)
	if q != t.query {
		t.query = q
		t.page = 0
	}
	return t
}

// SetFilter switches category and returns to the first page when it changes.
func (t Table) SetFilter(f Filter) Table {
	f = FilterByID(string(f))
	if f != t.filter {
		t.filter = f
		t.page = 0
	}
	return t
}

// SetSort sets the sort column and direction directly.
func (t Table) SetSort(col Column, dir Direction) Table {
	t.sortCol = col
	if dir != Desc {
		dir = Asc
	}
	t.sortDir = dir
	return t
}

// ToggleSort flips direction on the current column, or sorts a new column
// ascending.
func (t Table) ToggleSort(col Column) Table {
	if col == t.sortCol {
		t.sortDir = t.sortDir.Flip()
		return t
	}
	t.sortCol = col
	t.sortDir = Asc
	return t
}

// NextPage advances when a later page has rows.
func (t Table) NextPage() Table {
	if t.View().HasNext() {
		t.page++
	}
	return t
}

// PrevPage steps back when not on the first page.
func (t Table) PrevPage() Table {
	if t.page > 0 {
		t.page--
	}
	return t
}

// ToggleRow flips selection of a single loan.
func (t Table) ToggleRow(id string) Table {
	t.selection = t.selection.Toggle(id)
	return t
}

// SelectAll toggles the selection of the filtered set.
func (t Table) SelectAll() Table {
	t.selection = t.selection.SelectAll(t.Filtered())
	return t
}

// ClearSelection drops every selected ID.
func (t Table) ClearSelection() Table {
	t.selection = NewSelection()
	return t
}

// AllSelected reports the header checkbox state.
func (t Table) AllSelected() bool {
	return t.selection.AllSelected(t.Filtered())
}

// Filtered returns the loans matching query and filter, unsorted.
func (t Table) Filtered() []Loan {
	return Apply(t.loans, t.query, t.filter)
}

// Selected returns the selected loans that are visible under the current
// query and filter.
func (t Table) Selected() []Loan {
	return t.selection.Pick(t.Filtered())
}

// View computes the current page.
func (t Table) View() View {
	return ComputeView(t.loans, t.query, t.filter, t.sortCol, t.sortDir, t.page, t.pageSize)
}

// EmptyMessage is shown in place of rows when the view is empty.
func (t Table) EmptyMessage() string {
	if t.query != "" {
		msg := fmt.Sprintf("No loans found matching %q", t.query)
		if id, ok := Suggest(t.loans, t.query); ok {
			msg += fmt.Sprintf(". Did you mean %s?", id)
		}
		return msg
	}
	return fmt.Sprintf("No loans found in %s category", t.filter.Label())
}

// Status is the header line, e.g. "3 loans selected • Category: NPA".
func (t Table) Status() string {
	parts := []string{fmt.Sprintf("%d loans selected", t.selection.Len())}
	if t.query != "" {
		parts = append(parts, "Filtering by ID: "+t.query)
	}
	if t.filter != FilterAll {
		parts = append(parts, "Category: "+t.filter.Label())
	}
	return strings.Join(parts, " • ")
}
