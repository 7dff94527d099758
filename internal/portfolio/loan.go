// Package portfolio is the view model behind the loan table: coercion of raw
// loan documents, category filters, sorting, paging and row selection.
package portfolio

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// RawLoan is the loan shape as stored and shipped in the static document.
// Every field is a string; CurrentDPD is coerced when converted to a Loan.
type RawLoan struct {
	ID                string `json:"id"`
	LoanType          string `json:"loanType"`
	Borrower          string `json:"borrower"`
	BorrowerAddress   string `json:"borrowerAddress"`
	CoBorrowerName    string `json:"coBorrowerName"`
	CoBorrowerAddress string `json:"coBorrowerAddress"`
	CurrentDPD        string `json:"currentDPD"`
	SanctionAmount    string `json:"sanctionAmount"`
	Region            string `json:"region"`
	Status            string `json:"status"`
}

// Loan is a RawLoan with its day-past-due count parsed.
type Loan struct {
	ID                string
	LoanType          string
	Borrower          string
	BorrowerAddress   string
	CoBorrowerName    string
	CoBorrowerAddress string
	CurrentDPD        DPD
	SanctionAmount    string
	Region            string
	Status            string
}

// Loan coerces the raw record.
func (r RawLoan) Loan() Loan {
	return Loan{
		ID:                r.ID,
		LoanType:          r.LoanType,
		Borrower:          r.Borrower,
		BorrowerAddress:   r.BorrowerAddress,
		CoBorrowerName:    r.CoBorrowerName,
		CoBorrowerAddress: r.CoBorrowerAddress,
		CurrentDPD:        ParseDPD(r.CurrentDPD),
		SanctionAmount:    r.SanctionAmount,
		Region:            r.Region,
		Status:            r.Status,
	}
}

// DecodeRawLoans reads a JSON array of raw loans. Values are kept as
// shipped; coercion happens in RawLoan.Loan.
func DecodeRawLoans(r io.Reader) ([]RawLoan, error) {
	var raw []RawLoan
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode loans: %w", err)
	}
	return raw, nil
}

// DPD is a day-past-due count. The zero value is a valid 0; values that
// failed to parse are invalid and render as NaN.
type DPD struct {
	days    int64
	invalid bool
}

// NaN is the invalid DPD.
var NaN = DPD{invalid: true}

// Days builds a valid DPD.
func Days(n int64) DPD { return DPD{days: n} }

// ParseDPD reads an optional sign and the leading decimal digits of s after
// any leading whitespace. Trailing garbage is ignored; no digits at all gives
// NaN. Out-of-range values saturate.
func ParseDPD(s string) DPD {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return NaN
	}
	// ParseInt saturates on ErrRange, which is what we want.
	n, _ := strconv.ParseInt(s[:end], 10, 64)
	return DPD{days: n}
}

// Valid reports whether the count parsed.
func (d DPD) Valid() bool { return !d.invalid }

// Int returns the count and whether it is valid.
func (d DPD) Int() (int64, bool) { return d.days, !d.invalid }

func (d DPD) String() string {
	if d.invalid {
		return "NaN"
	}
	return strconv.FormatInt(d.days, 10)
}

// AtLeast reports d >= n. Invalid counts never satisfy a threshold.
func (d DPD) AtLeast(n int64) bool { return !d.invalid && d.days >= n }

// Below reports d < n. Invalid counts never satisfy a threshold.
func (d DPD) Below(n int64) bool { return !d.invalid && d.days < n }
