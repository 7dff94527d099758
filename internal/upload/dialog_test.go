package upload

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/portfoliodesk/internal/csvpreview"
)

func parsed(t *testing.T, raw string) []csvpreview.Record {
	t.Helper()
	recs, err := csvpreview.Parse(raw)
	require.NoError(t, err)
	return recs
}

func openDialog() *Dialog {
	d := New(Settings{})
	d.Open()
	return d
}

func TestNewDialogIdle(t *testing.T) {
	t.Parallel()

	d := New(Settings{})
	require.Equal(t, StateIdle, d.State())
	require.False(t, d.IsOpen())
	require.False(t, d.CanSubmit())
	require.Equal(t, NoFileName, d.FileName())
	require.Equal(t, DefaultSettings(), d.Settings())
}

func TestChooseFileExtensions(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path        string
		wantRead    bool
		spreadsheet bool
	}{
		{"/tmp/loans.csv", true, false},
		{"/tmp/LOANS.CSV", true, false},
		{"/tmp/book.xlsx", false, true},
		{"/tmp/book.XLS", false, true},
		{"/tmp/notes.txt", false, false},
		{"/tmp/archive.csv.gz", false, false},
		{"/tmp/noext", false, false},
	}
	for _, tc := range cases {
		d := openDialog()
		req, ok := d.ChooseFile(tc.path)
		require.Equal(t, tc.wantRead, ok, tc.path)
		require.Equal(t, StateFileChosen, d.State(), tc.path)
		require.Equal(t, filepath.Base(tc.path), d.FileName())
		if ok {
			require.Equal(t, tc.path, req.Path)
			require.True(t, d.Reading())
			require.NoError(t, d.Err())
			continue
		}
		var ue *UnsupportedFormatError
		require.True(t, errors.As(d.Err(), &ue), tc.path)
		require.Equal(t, tc.spreadsheet, ue.Spreadsheet, tc.path)
		if tc.spreadsheet {
			require.Equal(t, "Excel parsing is not implemented. Please use CSV.", d.Err().Error())
		} else {
			require.Equal(t, "Please upload a CSV or Excel file (.csv, .xlsx, .xls)", d.Err().Error())
		}
	}
}

func TestChooseFileClearsPreviousState(t *testing.T) {
	t.Parallel()

	d := openDialog()
	req, ok := d.ChooseFile("a.csv")
	require.True(t, ok)
	d.CompleteRead(req.Seq, parsed(t, "x\n1\n"), nil)
	require.Equal(t, StatePreviewReady, d.State())

	_, ok = d.ChooseFile("b.txt")
	require.False(t, ok)
	require.Empty(t, d.Records())
	require.Error(t, d.Err())

	_, ok = d.ChooseFile("c.csv")
	require.True(t, ok)
	require.NoError(t, d.Err())
}

func TestCompleteReadSuccessAndPreviewCap(t *testing.T) {
	t.Parallel()

	d := openDialog()
	req, _ := d.ChooseFile("big.csv")

	raw := "n\n"
	for i := 0; i < 40; i++ {
		raw += "v\n"
	}
	require.True(t, d.CompleteRead(req.Seq, parsed(t, raw), nil))
	require.Equal(t, StatePreviewReady, d.State())
	require.False(t, d.Reading())
	require.Len(t, d.Records(), 40)
	require.Len(t, d.Preview(), 15)
	require.Equal(t, "Showing first 15 of 40 records", d.PreviewCaption())

	req, _ = d.ChooseFile("small.csv")
	d.CompleteRead(req.Seq, parsed(t, "n\nv\nw\n"), nil)
	require.Len(t, d.Preview(), 2)
	require.Equal(t, "Showing 2 records", d.PreviewCaption())
}

func TestCompleteReadFailure(t *testing.T) {
	t.Parallel()

	d := openDialog()
	req, _ := d.ChooseFile("bad.csv")
	require.True(t, d.CompleteRead(req.Seq, nil, &csvpreview.ParseError{}))
	require.Equal(t, StateParseFailed, d.State())
	require.Equal(t, csvpreview.ParseErrorMessage, d.Err().Error())
	require.Empty(t, d.Preview())
}

func TestCompleteReadStaleOrClosed(t *testing.T) {
	t.Parallel()

	d := openDialog()
	first, _ := d.ChooseFile("one.csv")
	second, _ := d.ChooseFile("two.csv")
	require.False(t, d.CompleteRead(first.Seq, parsed(t, "a\n1\n"), nil))
	require.Equal(t, StateFileChosen, d.State())
	require.True(t, d.Reading())

	d.Close()
	require.False(t, d.CompleteRead(second.Seq, parsed(t, "a\n1\n"), nil))
	require.Equal(t, StateIdle, d.State())
	require.Empty(t, d.Records())
}

func TestSubmitWithoutFile(t *testing.T) {
	t.Parallel()

	d := openDialog()
	d.SetCategory("loans")
	sub, timers, err := d.Submit(time.Now())

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	require.Equal(t, "Please select a data category and upload a file", err.Error())
	require.Equal(t, Submission{}, sub)
	require.Nil(t, timers)
	require.True(t, d.IsOpen())
	require.Equal(t, StateIdle, d.State())
	require.False(t, d.Banner())
}

func TestSubmitWithoutCategory(t *testing.T) {
	t.Parallel()

	d := openDialog()
	req, _ := d.ChooseFile("a.csv")
	d.CompleteRead(req.Seq, parsed(t, "x\n1\n"), nil)
	_, _, err := d.Submit(time.Now())
	require.EqualError(t, err, "Please select a data category and upload a file")
	require.Equal(t, StatePreviewReady, d.State())
}

func TestSubmitWithEmptyRecords(t *testing.T) {
	t.Parallel()

	d := openDialog()
	d.SetCategory("customers")
	req, _ := d.ChooseFile("empty.csv")
	d.CompleteRead(req.Seq, parsed(t, "id,name\n"), nil)
	require.False(t, d.CanSubmit())
	_, _, err := d.Submit(time.Now())
	require.EqualError(t, err, "No valid data found in the file")
	require.Equal(t, StatePreviewReady, d.State())
}

func TestSubmitSuccessAndTimers(t *testing.T) {
	t.Parallel()

	d := openDialog()
	d.SetCategory("loans")
	d.SetDocumentType("csv")
	d.SetRemark("march batch")
	req, _ := d.ChooseFile("/data/march.csv")
	d.CompleteRead(req.Seq, parsed(t, "id,amount\n1,100\n2,200\n3,300\n4,400\n"), nil)
	require.True(t, d.CanSubmit())

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	sub, timers, err := d.Submit(now)
	require.NoError(t, err)
	require.Equal(t, "loans", sub.Category)
	require.Equal(t, "march.csv", sub.FileName)
	require.Equal(t, "csv", sub.DocumentType)
	require.Equal(t, "march batch", sub.Remark)
	require.Equal(t, 4, sub.RowCount)
	require.Len(t, sub.Sample, 3)
	require.Equal(t, now, sub.SubmittedAt)

	require.Equal(t, StateSuccessNotice, d.State())
	require.True(t, d.Banner())
	require.Equal(t, "", d.Category())
	require.Equal(t, NoFileName, d.FileName())
	require.Empty(t, d.Records())

	require.Len(t, timers, 2)
	require.Equal(t, TimerClose, timers[0].Token.Kind)
	require.Equal(t, 2*time.Second, timers[0].Delay)
	require.Equal(t, TimerBanner, timers[1].Token.Kind)
	require.Equal(t, 3*time.Second, timers[1].Delay)

	d.Fire(timers[0].Token)
	require.False(t, d.IsOpen())
	require.False(t, d.Banner())
	require.Equal(t, StateIdle, d.State())

	// banner timer after close is stale
	d.Open()
	d.SetCategory("loans")
	d.Fire(timers[1].Token)
	require.Equal(t, "loans", d.Category())
}

func TestBannerTimerBeforeClose(t *testing.T) {
	t.Parallel()

	d := New(Settings{CloseDelay: 5 * time.Second, BannerDelay: time.Second})
	d.Open()
	d.SetCategory("loans")
	req, _ := d.ChooseFile("a.csv")
	d.CompleteRead(req.Seq, parsed(t, "x\n1\n"), nil)
	_, timers, err := d.Submit(time.Now())
	require.NoError(t, err)

	d.Fire(timers[1].Token)
	require.False(t, d.Banner())
	require.Equal(t, StateIdle, d.State())
	require.True(t, d.IsOpen())
}

func TestCloseCancelsTimers(t *testing.T) {
	t.Parallel()

	d := openDialog()
	d.SetCategory("loans")
	req, _ := d.ChooseFile("a.csv")
	d.CompleteRead(req.Seq, parsed(t, "x\n1\n"), nil)
	_, timers, err := d.Submit(time.Now())
	require.NoError(t, err)

	d.Close()
	d.Open()
	for _, s := range timers {
		d.Fire(s.Token)
	}
	require.True(t, d.IsOpen())
	require.Equal(t, StateIdle, d.State())
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,amount\n1,100\n,200\n3,\n"), 0o600))

	recs, err := Load(t.Context(), path)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	_, err = Load(t.Context(), filepath.Join(dir, "missing.csv"))
	var pe *csvpreview.ParseError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, csvpreview.ParseErrorMessage, err.Error())
}

func TestLabelFor(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Loan Details", LabelFor(Categories, "loans"))
	require.Equal(t, "Excel", LabelFor(DocumentTypes, "excel"))
	require.Equal(t, "other", LabelFor(Categories, "other"))
}
