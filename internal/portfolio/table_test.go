package portfolio_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/portfoliodesk/internal/portfolio"
	"github.com/jask/portfoliodesk/internal/testdata"
)

func TestTableDefaults(t *testing.T) {
	t.Parallel()

	tbl := portfolio.NewTable(testdata.CoercedLoans(5, 1), 0)
	require.Equal(t, portfolio.ColumnID, tbl.SortColumn())
	require.Equal(t, portfolio.Asc, tbl.SortDirection())
	require.Equal(t, portfolio.FilterAll, tbl.Filter())
	require.Equal(t, portfolio.DefaultPageSize, tbl.PageSize())
	require.Equal(t, 0, tbl.Page())
	require.Equal(t, "0 loans selected", tbl.Status())
}

func TestTableQueryAndFilterResetPage(t *testing.T) {
	t.Parallel()

	tbl := portfolio.NewTable(testdata.CoercedLoans(35, 2), 10)
	tbl = tbl.NextPage().NextPage()
	require.Equal(t, 2, tbl.Page())

	// same value after trimming keeps the page
	tbl = tbl.SetQuery("   ")
	require.Equal(t, 2, tbl.Page())

	tbl = tbl.SetQuery(" LN ")
	require.Equal(t, "LN", tbl.Query())
	require.Equal(t, 0, tbl.Page())

	tbl = tbl.NextPage()
	tbl = tbl.SetFilter(portfolio.FilterAll)
	require.Equal(t, 1, tbl.Page())
	tbl = tbl.SetFilter(portfolio.FilterResponses)
	require.Equal(t, 0, tbl.Page())
}

func TestTableSortToggle(t *testing.T) {
	t.Parallel()

	tbl := portfolio.NewTable(nil, 10)
	tbl = tbl.ToggleSort(portfolio.ColumnID)
	require.Equal(t, portfolio.Desc, tbl.SortDirection())
	tbl = tbl.ToggleSort(portfolio.ColumnRegion)
	require.Equal(t, portfolio.ColumnRegion, tbl.SortColumn())
	require.Equal(t, portfolio.Asc, tbl.SortDirection())
	tbl = tbl.ToggleSort(portfolio.ColumnRegion)
	require.Equal(t, portfolio.Desc, tbl.SortDirection())
}

func TestTablePagingBounds(t *testing.T) {
	t.Parallel()

	tbl := portfolio.NewTable(testdata.CoercedLoans(20, 4), 10)
	tbl = tbl.PrevPage()
	require.Equal(t, 0, tbl.Page())
	tbl = tbl.NextPage().NextPage().NextPage()
	require.Equal(t, 1, tbl.Page())
	require.Equal(t, "Showing 11-20 of 20 rows", tbl.View().Summary())
}

func TestTableSelectionSurvivesFilter(t *testing.T) {
	t.Parallel()

	loans := []portfolio.Loan{loan("LN-1", "10"), loan("LN-2", "150"), loan("LN-3", "20")}
	tbl := portfolio.NewTable(loans, 10)
	tbl = tbl.ToggleRow("LN-2")
	tbl = tbl.SetFilter(portfolio.FilterPreSarfaesi)
	require.True(t, tbl.Selection().Has("LN-2"))
	require.False(t, tbl.AllSelected())
	require.Empty(t, tbl.Selected())

	tbl = tbl.SelectAll()
	require.Equal(t, []string{"LN-1", "LN-3"}, tbl.Selection().IDs())
	require.True(t, tbl.AllSelected())
	require.Equal(t, "2 loans selected • Category: Pre Sarfaesi", tbl.Status())

	tbl = tbl.SelectAll()
	require.Equal(t, 0, tbl.Selection().Len())
}

func TestTableEmptyMessage(t *testing.T) {
	t.Parallel()

	loans := []portfolio.Loan{loan("LN-00042", "10")}
	tbl := portfolio.NewTable(loans, 10).SetFilter(portfolio.FilterNPA)
	require.Empty(t, tbl.View().Rows)
	require.Equal(t, "No loans found in NPA category", tbl.EmptyMessage())

	tbl = tbl.SetFilter(portfolio.FilterAll).SetQuery("zzz")
	require.Equal(t, `No loans found matching "zzz"`, tbl.EmptyMessage())

	tbl = tbl.SetQuery("LN-00024")
	require.Equal(t, `No loans found matching "LN-00024". Did you mean LN-00042?`, tbl.EmptyMessage())
	require.Equal(t, "0 loans selected • Filtering by ID: LN-00024", tbl.Status())
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	loans := []portfolio.Loan{loan("LN-100", "1"), loan("LN-200", "1")}
	id, ok := portfolio.Suggest(loans, "ln-109")
	require.True(t, ok)
	require.Equal(t, "LN-100", id)

	_, ok = portfolio.Suggest(loans, "completely different")
	require.False(t, ok)
	_, ok = portfolio.Suggest(loans, "LN-1")
	require.False(t, ok)
	_, ok = portfolio.Suggest(loans, "")
	require.False(t, ok)
}
