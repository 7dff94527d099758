package service

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jask/portfoliodesk/internal/database/repository"
	"github.com/jask/portfoliodesk/internal/portfolio"
)

// IngestService loads loan rows into the loan store.
type IngestService struct {
	Loans *repository.LoanRepo
}

type IngestResult struct {
	Imported int
	Skipped  int
	Errors   []error
}

// header aliases accepted for each loan field, compared lower-case.
var loanHeaders = map[string]portfolio.Column{
	"id":                  portfolio.ColumnID,
	"loan_no":             portfolio.ColumnID,
	"loanno":              portfolio.ColumnID,
	"loantype":            portfolio.ColumnLoanType,
	"loan_type":           portfolio.ColumnLoanType,
	"borrower":            portfolio.ColumnBorrower,
	"borroweraddress":     portfolio.ColumnBorrowerAddress,
	"borrower_address":    portfolio.ColumnBorrowerAddress,
	"coborrowername":      portfolio.ColumnCoBorrowerName,
	"co_borrower_name":    portfolio.ColumnCoBorrowerName,
	"coborroweraddress":   portfolio.ColumnCoBorrowerAddress,
	"co_borrower_address": portfolio.ColumnCoBorrowerAddress,
	"currentdpd":          portfolio.ColumnCurrentDPD,
	"current_dpd":         portfolio.ColumnCurrentDPD,
	"dpd":                 portfolio.ColumnCurrentDPD,
	"sanctionamount":      portfolio.ColumnSanctionAmount,
	"sanction_amount":     portfolio.ColumnSanctionAmount,
	"region":              portfolio.ColumnRegion,
	"status":              portfolio.ColumnStatus,
}

// ImportLoansCSV reads a loan register with a header line. Columns are matched
// by name; unknown columns are ignored. Rows whose ID already exists are
// skipped, not overwritten.
func (s *IngestService) ImportLoansCSV(ctx context.Context, r io.Reader) (IngestResult, error) {
	res := IngestResult{}
	csvr := csv.NewReader(bufio.NewReader(r))
	csvr.TrimLeadingSpace = true
	csvr.FieldsPerRecord = -1

	header, err := csvr.Read()
	if errors.Is(err, io.EOF) {
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("read header: %w", err)
	}
	cols := make([]portfolio.Column, len(header))
	hasID := false
	for i, h := range header {
		cols[i] = loanHeaders[strings.ToLower(strings.TrimSpace(h))]
		if cols[i] == portfolio.ColumnID {
			hasID = true
		}
	}
	if !hasID {
		return res, fmt.Errorf("loan register has no id column")
	}

	line := 1
	for {
		line++
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		raw := rawFromRecord(cols, rec)
		if raw.ID == "" {
			res.Errors = append(res.Errors, fmt.Errorf("line %d: missing id", line))
			continue
		}
		ok, err := s.Loans.Insert(ctx, repository.LoanFromRaw(raw))
		if err != nil {
			res.Errors = append(res.Errors, fmt.Errorf("line %d insert: %w", line, err))
			continue
		}
		if !ok {
			res.Skipped++
			continue
		}
		res.Imported++
	}
	return res, nil
}

func rawFromRecord(cols []portfolio.Column, rec []string) portfolio.RawLoan {
	var raw portfolio.RawLoan
	for i, col := range cols {
		if i >= len(rec) || col == "" {
			continue
		}
		v := strings.TrimSpace(rec[i])
		switch col {
		case portfolio.ColumnID:
			raw.ID = v
		case portfolio.ColumnLoanType:
			raw.LoanType = v
		case portfolio.ColumnBorrower:
			raw.Borrower = v
		case portfolio.ColumnBorrowerAddress:
			raw.BorrowerAddress = v
		case portfolio.ColumnCoBorrowerName:
			raw.CoBorrowerName = v
		case portfolio.ColumnCoBorrowerAddress:
			raw.CoBorrowerAddress = v
		case portfolio.ColumnCurrentDPD:
			raw.CurrentDPD = v
		case portfolio.ColumnSanctionAmount:
			raw.SanctionAmount = v
		case portfolio.ColumnRegion:
			raw.Region = v
		case portfolio.ColumnStatus:
			raw.Status = v
		}
	}
	return raw
}
