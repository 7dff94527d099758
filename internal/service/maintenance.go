package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/portfoliodesk/internal/database"
	"github.com/jask/portfoliodesk/internal/database/repository"
)

// MaintenanceService houses destructive/ops actions surfaced through the CLI.
type MaintenanceService struct {
	DB *sql.DB
}

// Reset clears the upload journal and notice history. With loans set it also
// empties the loan store so the next start reseeds it. The schema is kept.
func (s *MaintenanceService) Reset(ctx context.Context, loans bool) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	if err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		for _, t := range []string{"uploads", "notices"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("reset table %s: %w", t, err)
			}
		}
		if loans {
			if err := repository.NewLoanRepo(tx).DeleteAll(ctx); err != nil {
				return fmt.Errorf("reset table loans: %w", err)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return nil
}
