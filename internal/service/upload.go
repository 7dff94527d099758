package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/portfoliodesk/internal/database"
	"github.com/jask/portfoliodesk/internal/database/repository"
	"github.com/jask/portfoliodesk/internal/metrics"
	"github.com/jask/portfoliodesk/internal/upload"
)

// UploadService is the ingestion collaborator. It journals every accepted
// submission.
type UploadService struct {
	Uploads *repository.UploadRepo
	Logger  *zap.Logger
}

var _ upload.Sink = (*UploadService)(nil)

// Submit records sub in the upload journal.
func (s *UploadService) Submit(ctx context.Context, sub upload.Submission) error {
	if strings.TrimSpace(sub.Category) == "" {
		return fmt.Errorf("upload: empty category")
	}
	sample, err := json.Marshal(sub.Sample)
	if err != nil {
		return fmt.Errorf("encode sample: %w", err)
	}
	at := sub.SubmittedAt
	if at.IsZero() {
		at = database.Now()
	}
	row := repository.Upload{
		ID:           uuid.NewString(),
		Category:     sub.Category,
		FileName:     sub.FileName,
		DocumentType: sub.DocumentType,
		Remark:       sub.Remark,
		RowCount:     sub.RowCount,
		SampleJSON:   string(sample),
		SubmittedAt:  at.UTC(),
	}
	if err := s.Uploads.Insert(ctx, row); err != nil {
		metrics.UploadErrorsTotal.WithLabelValues(metrics.ErrKindSink).Inc()
		return fmt.Errorf("journal upload: %w", err)
	}
	metrics.UploadsTotal.WithLabelValues(sub.Category).Inc()
	logger(s.Logger).Info("upload.submitted",
		zap.String("upload_id", row.ID),
		zap.String("category", sub.Category),
		zap.String("file", sub.FileName),
		zap.String("document_type", sub.DocumentType),
		zap.Int("rows", sub.RowCount),
	)
	return nil
}

// History returns the most recent submissions, newest first.
func (s *UploadService) History(ctx context.Context, limit int) ([]repository.Upload, error) {
	out, err := s.Uploads.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	return out, nil
}
