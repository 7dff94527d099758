package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/portfoliodesk/internal/testdata"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PORTFOLIODESK_CONFIG", filepath.Join(home, "config.toml"))
	return home
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func TestPreviewCommand(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "loans.csv")
	require.NoError(t, os.WriteFile(path, []byte(testdata.CSV(20, 3)), 0o600))

	out, err := run(t, "preview", path)
	require.NoError(t, err)
	require.Contains(t, out, "Showing first 15 of 20 records")
	require.Contains(t, out, "loan_no")
	require.Contains(t, out, "LN-00015")
	require.NotContains(t, out, "LN-00016")
}

func TestPreviewCommandRejectsSpreadsheet(t *testing.T) {
	isolate(t)
	_, err := run(t, "preview", "book.xlsx")
	require.EqualError(t, err, "Excel parsing is not implemented. Please use CSV.")
}

func TestImportAndReset(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "more.csv")
	require.NoError(t, os.WriteFile(path, []byte(testdata.CSV(5, 4)), 0o600))

	out, err := run(t, "import", path)
	require.NoError(t, err)
	require.Contains(t, out, "imported 5 loans, skipped 0 duplicates")

	out, err = run(t, "import", path)
	require.NoError(t, err)
	require.Contains(t, out, "imported 0 loans, skipped 5 duplicates")

	out, err = run(t, "reset", "--loans")
	require.NoError(t, err)
	require.Contains(t, out, "reset complete: cleared 0 uploads")

	// the empty store is reseeded from the bundled document, so the
	// imported rows can be loaded again
	out, err = run(t, "import", path)
	require.NoError(t, err)
	require.Contains(t, out, "imported 5 loans, skipped 0 duplicates")
}

func TestConfigInit(t *testing.T) {
	home := isolate(t)
	out, err := run(t, "config", "init")
	require.NoError(t, err)
	require.Contains(t, out, "config.toml")
	require.FileExists(t, filepath.Join(home, "config.toml"))
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	require.Contains(t, out, "portfoliodesk dev")
}
