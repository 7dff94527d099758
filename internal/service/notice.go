package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/jask/portfoliodesk/internal/database"
	"github.com/jask/portfoliodesk/internal/database/repository"
	"github.com/jask/portfoliodesk/internal/format"
	"github.com/jask/portfoliodesk/internal/metrics"
	"github.com/jask/portfoliodesk/internal/portfolio"
)

// NoticeKind selects the register exported from the pre-SARFAESI tab.
type NoticeKind string

const (
	NoticePreSarfaesi NoticeKind = "pre_sarfaesi"
	NoticeNPA         NoticeKind = "npa"
)

// Title is the register heading.
func (k NoticeKind) Title() string {
	switch k {
	case NoticeNPA:
		return "NPA Declaration Register"
	default:
		return "Pre Sarfaesi Notice Register"
	}
}

const noticeSheet = "Register"

var noticeColumns = []string{"Loan No.", "Borrower", "Borrower Address", "Co-Borrower", "Co-Borrower Address", "DPD", "Sanction Amount", "Region", "Status"}

// NoticeResult describes a written register.
type NoticeResult struct {
	ID    string
	Path  string
	Count int
}

// NoticeService writes notice registers as spreadsheets.
type NoticeService struct {
	Notices        *repository.NoticeRepo
	OutputDir      string
	CurrencySymbol string
	Logger         *zap.Logger
	Now            func() time.Time
}

// Generate writes one register row per loan and records the export.
func (s *NoticeService) Generate(ctx context.Context, kind NoticeKind, loans []portfolio.Loan) (NoticeResult, error) {
	if len(loans) == 0 {
		return NoticeResult{}, fmt.Errorf("notice: no loans selected")
	}
	now := database.Now()
	if s.Now != nil {
		now = s.Now().UTC()
	}
	if err := os.MkdirAll(s.OutputDir, 0o755); err != nil {
		return NoticeResult{}, fmt.Errorf("mkdir notice dir: %w", err)
	}

	id := uuid.NewString()
	name := fmt.Sprintf("%s_%s_%s.xlsx", kind, now.Format("20060102-150405"), id[:8])
	path := filepath.Join(s.OutputDir, name)

	if err := s.write(path, kind, now, loans); err != nil {
		return NoticeResult{}, err
	}

	if s.Notices != nil {
		if err := s.Notices.Insert(ctx, repository.Notice{
			ID:        id,
			Kind:      string(kind),
			Path:      path,
			LoanCount: len(loans),
			CreatedAt: now,
		}); err != nil {
			_ = os.Remove(path)
			return NoticeResult{}, fmt.Errorf("record notice: %w", err)
		}
	}
	metrics.NoticesTotal.WithLabelValues(string(kind)).Inc()
	logger(s.Logger).Info("notice.generated",
		zap.String("kind", string(kind)),
		zap.String("path", path),
		zap.Int("loans", len(loans)),
	)
	return NoticeResult{ID: id, Path: path, Count: len(loans)}, nil
}

func (s *NoticeService) write(path string, kind NoticeKind, now time.Time, loans []portfolio.Loan) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", noticeSheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	if err := f.SetCellValue(noticeSheet, "A1", kind.Title()); err != nil {
		return err
	}
	if err := f.SetCellValue(noticeSheet, "A2", "Generated "+now.Format(time.RFC3339)); err != nil {
		return err
	}

	header := make([]interface{}, len(noticeColumns))
	for i, c := range noticeColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(noticeSheet, "A4", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, l := range loans {
		cell, err := excelize.CoordinatesToCellName(1, 5+i)
		if err != nil {
			return err
		}
		row := []interface{}{
			l.ID,
			l.Borrower,
			l.BorrowerAddress,
			l.CoBorrowerName,
			l.CoBorrowerAddress,
			l.CurrentDPD.String(),
			format.Currency(s.CurrencySymbol, l.SanctionAmount),
			l.Region,
			l.Status,
		}
		if err := f.SetSheetRow(noticeSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save register: %w", err)
	}
	return nil
}
