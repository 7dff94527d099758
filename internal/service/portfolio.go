package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jask/portfoliodesk/internal/database/repository"
	"github.com/jask/portfoliodesk/internal/metrics"
	"github.com/jask/portfoliodesk/internal/portfolio"
)

// PortfolioService is the static record source for the loan table.
type PortfolioService struct {
	Loans  *repository.LoanRepo
	Logger *zap.Logger
}

// Load returns every stored loan with its DPD coerced.
func (s *PortfolioService) Load(ctx context.Context) ([]portfolio.Loan, error) {
	rows, err := s.Loans.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	out := make([]portfolio.Loan, 0, len(rows))
	invalid := 0
	for _, row := range rows {
		l := row.Raw().Loan()
		if !l.CurrentDPD.Valid() {
			invalid++
		}
		out = append(out, l)
	}
	metrics.LoansLoaded.Set(float64(len(out)))
	logger(s.Logger).Info("portfolio.loaded", zap.Int("loans", len(out)), zap.Int("invalid_dpd", invalid))
	return out, nil
}

func logger(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
