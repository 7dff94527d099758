package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jask/portfoliodesk/internal/csvpreview"
	"github.com/jask/portfoliodesk/internal/database"
	"github.com/jask/portfoliodesk/internal/database/repository"
	"github.com/jask/portfoliodesk/internal/metrics"
	"github.com/jask/portfoliodesk/internal/portfolio"
	"github.com/jask/portfoliodesk/internal/testdata"
	"github.com/jask/portfoliodesk/internal/upload"
)

func setupDB(t *testing.T) (context.Context, *sql.DB) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return ctx, db
}

func TestUploadServiceSubmit(t *testing.T) {
	ctx, db := setupDB(t)
	core, logs := observer.New(zap.InfoLevel)
	svc := &UploadService{Uploads: repository.NewUploadRepo(db), Logger: zap.New(core)}

	recs, err := csvpreview.Parse("borrower,amount\nAsha,100\nRavi,200\nMeena,300\nKiran,400\n")
	require.NoError(t, err)

	before := testutil.ToFloat64(metrics.UploadsTotal.WithLabelValues("loans"))
	at := time.Date(2026, 4, 2, 8, 30, 0, 0, time.UTC)
	require.NoError(t, svc.Submit(ctx, upload.Submission{
		Category:     "loans",
		FileName:     "april.csv",
		DocumentType: "csv",
		Remark:       "first batch",
		RowCount:     len(recs),
		Sample:       recs[:3],
		SubmittedAt:  at,
	}))
	require.Equal(t, before+1, testutil.ToFloat64(metrics.UploadsTotal.WithLabelValues("loans")))

	hist, err := svc.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	got := hist[0]
	require.NotEmpty(t, got.ID)
	require.Equal(t, "april.csv", got.FileName)
	require.Equal(t, 4, got.RowCount)
	require.True(t, at.Equal(got.SubmittedAt))
	require.Equal(t, `[{"id":"1","borrower":"Asha","amount":"100"},{"id":"2","borrower":"Ravi","amount":"200"},{"id":"3","borrower":"Meena","amount":"300"}]`, got.SampleJSON)

	var sample []map[string]string
	require.NoError(t, json.Unmarshal([]byte(got.SampleJSON), &sample))
	require.Len(t, sample, 3)

	entries := logs.FilterMessage("upload.submitted").All()
	require.Len(t, entries, 1)
	require.Equal(t, "loans", entries[0].ContextMap()["category"])
	require.EqualValues(t, 4, entries[0].ContextMap()["rows"])
}

func TestUploadServiceRejectsEmptyCategory(t *testing.T) {
	ctx, db := setupDB(t)
	svc := &UploadService{Uploads: repository.NewUploadRepo(db)}
	require.Error(t, svc.Submit(ctx, upload.Submission{FileName: "a.csv", RowCount: 1}))

	n, err := repository.NewUploadRepo(db).Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestPortfolioServiceLoad(t *testing.T) {
	t.Parallel()

	ctx, db := setupDB(t)
	loans := repository.NewLoanRepo(db)
	require.NoError(t, testdata.Seed(ctx, testdata.Repos{Loans: loans}, 21, 9))

	svc := &PortfolioService{Loans: loans}
	got, err := svc.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 21)
	require.Equal(t, "LN-00001", got[0].ID)
	// every seventh generated loan has no numeric DPD
	require.False(t, got[6].CurrentDPD.Valid())
	require.True(t, got[5].CurrentDPD.Valid())
}

func TestIngestLoansCSV(t *testing.T) {
	t.Parallel()

	ctx, db := setupDB(t)
	loans := repository.NewLoanRepo(db)
	svc := &IngestService{Loans: loans}

	data := strings.Join([]string{
		"Loan_No,Borrower,current_dpd,sanction_amount,Unknown",
		"LN-1,Asha Rao,95,500000,x",
		"LN-2,Ravi Iyer,12,250000,y",
		",Nobody,1,1,z",
		"LN-1,Duplicate,1,1,z",
	}, "\n")
	res, err := svc.ImportLoansCSV(ctx, strings.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 2, res.Imported)
	require.Equal(t, 1, res.Skipped)
	require.Len(t, res.Errors, 1)
	require.Contains(t, res.Errors[0].Error(), "line 4")

	rows, err := loans.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Asha Rao", rows[0].Borrower)
	require.Equal(t, "95", rows[0].CurrentDPD)
	require.Equal(t, "500000", rows[0].SanctionAmount)
}

func TestIngestLoansCSVNeedsID(t *testing.T) {
	t.Parallel()

	ctx, db := setupDB(t)
	svc := &IngestService{Loans: repository.NewLoanRepo(db)}
	_, err := svc.ImportLoansCSV(ctx, strings.NewReader("borrower,dpd\nAsha,1\n"))
	require.Error(t, err)

	res, err := svc.ImportLoansCSV(ctx, strings.NewReader(""))
	require.NoError(t, err)
	require.Zero(t, res.Imported)
}

func TestNoticeServiceGenerate(t *testing.T) {
	ctx, db := setupDB(t)
	dir := filepath.Join(t.TempDir(), "notices")
	core, logs := observer.New(zap.InfoLevel)
	svc := &NoticeService{
		Notices:        repository.NewNoticeRepo(db),
		OutputDir:      dir,
		CurrencySymbol: "₹",
		Logger:         zap.New(core),
		Now:            func() time.Time { return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC) },
	}

	selected := []portfolio.Loan{
		portfolio.RawLoan{ID: "LN-1", Borrower: "Asha", CurrentDPD: "45", SanctionAmount: "1250000"}.Loan(),
		portfolio.RawLoan{ID: "LN-2", Borrower: "Ravi", CurrentDPD: "x", SanctionAmount: ""}.Loan(),
	}
	res, err := svc.Generate(ctx, NoticePreSarfaesi, selected)
	require.NoError(t, err)
	require.Equal(t, 2, res.Count)
	require.Equal(t, dir, filepath.Dir(res.Path))

	f, err := excelize.OpenFile(res.Path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	title, err := f.GetCellValue(noticeSheet, "A1")
	require.NoError(t, err)
	require.Equal(t, "Pre Sarfaesi Notice Register", title)
	rows, err := f.GetRows(noticeSheet)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	require.Equal(t, "Loan No.", rows[3][0])
	require.Equal(t, []string{"LN-1", "Asha", "", "", "", "45", "₹12,50,000"}, rows[4][:7])
	require.Equal(t, "NaN", rows[5][5])
	require.Equal(t, "—", rows[5][6])

	recorded, err := repository.NewNoticeRepo(db).List(ctx)
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	require.Equal(t, res.ID, recorded[0].ID)
	require.Len(t, logs.FilterMessage("notice.generated").All(), 1)
}

func TestNoticeServiceRemovesFileWhenRecordFails(t *testing.T) {
	ctx, db := setupDB(t)
	dir := filepath.Join(t.TempDir(), "notices")
	require.NoError(t, db.Close())

	svc := &NoticeService{Notices: repository.NewNoticeRepo(db), OutputDir: dir}
	_, err := svc.Generate(ctx, NoticeNPA, testdata.CoercedLoans(3, 1))
	require.ErrorContains(t, err, "record notice")

	written, err := filepath.Glob(filepath.Join(dir, "*.xlsx"))
	require.NoError(t, err)
	require.Empty(t, written)
}

func TestNoticeServiceNeedsSelection(t *testing.T) {
	t.Parallel()

	svc := &NoticeService{OutputDir: t.TempDir()}
	_, err := svc.Generate(context.Background(), NoticeNPA, nil)
	require.Error(t, err)
	require.Equal(t, "NPA Declaration Register", NoticeNPA.Title())
}

func TestMaintenanceReset(t *testing.T) {
	t.Parallel()

	ctx, db := setupDB(t)
	loans := repository.NewLoanRepo(db)
	require.NoError(t, testdata.Seed(ctx, testdata.Repos{Loans: loans}, 5, 1))
	uploads := repository.NewUploadRepo(db)
	require.NoError(t, uploads.Insert(ctx, repository.Upload{ID: "u1", Category: "loans", FileName: "a.csv", RowCount: 1, SampleJSON: "[]", SubmittedAt: time.Now().UTC()}))

	svc := &MaintenanceService{DB: db}
	require.NoError(t, svc.Reset(ctx, false))
	n, err := uploads.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
	n, err = loans.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, n)

	require.NoError(t, svc.Reset(ctx, true))
	n, err = loans.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	require.Error(t, (&MaintenanceService{}).Reset(ctx, false))
}
