package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jask/portfoliodesk/internal/portfolio"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Loan represents a loan row. Values are stored exactly as received.
type Loan struct {
	ID                string
	LoanType          string
	Borrower          string
	BorrowerAddress   string
	CoBorrowerName    string
	CoBorrowerAddress string
	CurrentDPD        string
	SanctionAmount    string
	Region            string
	Status            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// LoanFromRaw maps a loan document entry to a row.
func LoanFromRaw(r portfolio.RawLoan) Loan {
	return Loan{
		ID:                r.ID,
		LoanType:          r.LoanType,
		Borrower:          r.Borrower,
		BorrowerAddress:   r.BorrowerAddress,
		CoBorrowerName:    r.CoBorrowerName,
		CoBorrowerAddress: r.CoBorrowerAddress,
		CurrentDPD:        r.CurrentDPD,
		SanctionAmount:    r.SanctionAmount,
		Region:            r.Region,
		Status:            r.Status,
	}
}

// Raw maps the row back to the document shape.
func (l Loan) Raw() portfolio.RawLoan {
	return portfolio.RawLoan{
		ID:                l.ID,
		LoanType:          l.LoanType,
		Borrower:          l.Borrower,
		BorrowerAddress:   l.BorrowerAddress,
		CoBorrowerName:    l.CoBorrowerName,
		CoBorrowerAddress: l.CoBorrowerAddress,
		CurrentDPD:        l.CurrentDPD,
		SanctionAmount:    l.SanctionAmount,
		Region:            l.Region,
		Status:            l.Status,
	}
}

// Upload represents one accepted submission in the upload journal.
type Upload struct {
	ID           string
	Category     string
	FileName     string
	DocumentType string
	Remark       string
	RowCount     int
	SampleJSON   string
	SubmittedAt  time.Time
}

// Notice represents an exported notice register.
type Notice struct {
	ID        string
	Kind      string
	Path      string
	LoanCount int
	CreatedAt time.Time
}

type scanner interface {
	Scan(dest ...interface{}) error
}
