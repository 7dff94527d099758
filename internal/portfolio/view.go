package portfolio

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Column names a sortable loan field. Values match the JSON keys.
type Column string

const (
	ColumnID                Column = "id"
	ColumnLoanType          Column = "loanType"
	ColumnBorrower          Column = "borrower"
	ColumnBorrowerAddress   Column = "borrowerAddress"
	ColumnCoBorrowerName    Column = "coBorrowerName"
	ColumnCoBorrowerAddress Column = "coBorrowerAddress"
	ColumnCurrentDPD        Column = "currentDPD"
	ColumnSanctionAmount    Column = "sanctionAmount"
	ColumnRegion            Column = "region"
	ColumnStatus            Column = "status"
)

// Columns lists the table columns in display order.
var Columns = []Column{
	ColumnID,
	ColumnLoanType,
	ColumnBorrower,
	ColumnBorrowerAddress,
	ColumnCoBorrowerName,
	ColumnCoBorrowerAddress,
	ColumnCurrentDPD,
	ColumnSanctionAmount,
	ColumnRegion,
	ColumnStatus,
}

var columnTitles = map[Column]string{
	ColumnID:                "Loan No.",
	ColumnLoanType:          "Loan Type",
	ColumnBorrower:          "Borrower",
	ColumnBorrowerAddress:   "Borrower Address",
	ColumnCoBorrowerName:    "Co-Borrower",
	ColumnCoBorrowerAddress: "Co-Borrower Address",
	ColumnCurrentDPD:        "DPD",
	ColumnSanctionAmount:    "Sanction Amount",
	ColumnRegion:            "Region",
	ColumnStatus:            "Status",
}

// Title is the column header.
func (c Column) Title() string {
	if t, ok := columnTitles[c]; ok {
		return t
	}
	return string(c)
}

// Numeric reports whether the column compares as a number.
func (c Column) Numeric() bool { return c == ColumnCurrentDPD }

// Text returns the display text of the column for l.
func (c Column) Text(l Loan) string {
	switch c {
	case ColumnLoanType:
		return l.LoanType
	case ColumnBorrower:
		return l.Borrower
	case ColumnBorrowerAddress:
		return l.BorrowerAddress
	case ColumnCoBorrowerName:
		return l.CoBorrowerName
	case ColumnCoBorrowerAddress:
		return l.CoBorrowerAddress
	case ColumnCurrentDPD:
		return l.CurrentDPD.String()
	case ColumnSanctionAmount:
		return l.SanctionAmount
	case ColumnRegion:
		return l.Region
	case ColumnStatus:
		return l.Status
	default:
		return l.ID
	}
}

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

// DefaultPageSize is the number of rows per page.
const DefaultPageSize = 10

// View is one rendered page of the portfolio.
type View struct {
	Rows     []Loan
	Total    int
	Page     int
	PageSize int
}

// Summary is the footer caption, e.g. "Showing 11-20 of 42 rows".
func (v View) Summary() string {
	if v.Total == 0 || len(v.Rows) == 0 || v.Page >= v.Pages() {
		return "No results"
	}
	start := v.Page*v.PageSize + 1
	end := start + len(v.Rows) - 1
	return fmt.Sprintf("Showing %d-%d of %d rows", start, end, v.Total)
}

// HasNext reports whether a later page has rows.
func (v View) HasNext() bool { return v.Total > 0 && v.Page < v.Pages()-1 }

// HasPrev reports whether an earlier page exists.
func (v View) HasPrev() bool { return v.Page > 0 }

// Pages is the number of pages the filtered set spans.
func (v View) Pages() int {
	if v.PageSize <= 0 || v.Total == 0 {
		return 1
	}
	return (v.Total-1)/v.PageSize + 1
}

// Apply returns the loans that match query and filter, in input order.
// The query is trimmed and matched case-insensitively against the loan ID.
func Apply(loans []Loan, query string, filter Filter) []Loan {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Loan, 0, len(loans))
	for _, l := range loans {
		if q != "" && !strings.Contains(strings.ToLower(l.ID), q) {
			continue
		}
		if !filter.Match(l) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// Sort orders loans in place by column and direction. The sort is stable.
// Invalid DPD values go last whichever way the column is sorted.
func Sort(loans []Loan, col Column, dir Direction) {
	if col.Numeric() {
		slices.SortStableFunc(loans, func(a, b Loan) int {
			av, aok := a.CurrentDPD.Int()
			bv, bok := b.CurrentDPD.Int()
			switch {
			case !aok && !bok:
				return 0
			case !aok:
				return 1
			case !bok:
				return -1
			}
			if dir == Desc {
				return cmp.Compare(bv, av)
			}
			return cmp.Compare(av, bv)
		})
		return
	}

	coll := collate.New(language.English)
	slices.SortStableFunc(loans, func(a, b Loan) int {
		c := coll.CompareString(col.Text(a), col.Text(b))
		if dir == Desc {
			return -c
		}
		return c
	})
}

// ComputeView filters, sorts and pages loans. The input slice is not
// modified. A page past the end yields no rows.
func ComputeView(loans []Loan, query string, filter Filter, col Column, dir Direction, page, pageSize int) View {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 0 {
		page = 0
	}
	filtered := Apply(loans, query, filter)
	Sort(filtered, col, dir)

	v := View{Total: len(filtered), Page: page, PageSize: pageSize}
	if len(filtered) == 0 || page >= v.Pages() {
		v.Rows = []Loan{}
		return v
	}
	start := page * pageSize
	end := min(start+pageSize, len(filtered))
	v.Rows = filtered[start:end]
	return v
}
