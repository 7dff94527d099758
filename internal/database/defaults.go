package database

import (
	"bytes"
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"io"

	"github.com/jask/portfoliodesk/internal/database/repository"
	"github.com/jask/portfoliodesk/internal/portfolio"
)

//go:embed defaults/loans.json
var defaultLoans []byte

// DefaultLoans returns the bundled sample loan document.
func DefaultLoans() io.Reader {
	return bytes.NewReader(defaultLoans)
}

// SeedLoans imports the loan document from src when the loans table is
// empty. It is idempotent and safe to run on every startup. It returns the
// number of loans inserted.
func SeedLoans(ctx context.Context, db *sql.DB, src io.Reader) (int, error) {
	repo := repository.NewLoanRepo(db)
	n, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count loans: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	raw, err := portfolio.DecodeRawLoans(src)
	if err != nil {
		return 0, fmt.Errorf("seed loans: %w", err)
	}
	err = WithTx(ctx, db, func(tx *sql.Tx) error {
		txRepo := repository.NewLoanRepo(tx)
		for _, rl := range raw {
			if err := txRepo.Upsert(ctx, repository.LoanFromRaw(rl)); err != nil {
				return fmt.Errorf("seed loan %s: %w", rl.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(raw), nil
}
