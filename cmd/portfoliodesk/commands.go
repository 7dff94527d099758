package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/portfoliodesk/internal/config"
	"github.com/jask/portfoliodesk/internal/csvpreview"
	"github.com/jask/portfoliodesk/internal/database/repository"
	"github.com/jask/portfoliodesk/internal/format"
	"github.com/jask/portfoliodesk/internal/service"
	"github.com/jask/portfoliodesk/internal/upload"
)

func newPreviewCmd() *cobra.Command {
	var rows int
	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Parse a delimited file and print the upload preview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := upload.New(upload.Settings{PreviewRows: rows})
			d.Open()
			req, ok := d.ChooseFile(args[0])
			if !ok {
				return d.Err()
			}
			recs, err := upload.Load(cmd.Context(), req.Path)
			d.CompleteRead(req.Seq, recs, err)
			if err := d.Err(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(d.Records()) == 0 {
				fmt.Fprintln(out, "No valid data found in the file")
				return nil
			}
			fmt.Fprintln(out, d.PreviewCaption())
			fmt.Fprintln(out, renderRecords(d.Preview()))
			return nil
		},
	}
	cmd.Flags().IntVar(&rows, "rows", 0, "preview row cap (default 15)")
	return cmd
}

func renderRecords(recs []csvpreview.Record) string {
	cols := csvpreview.Columns(recs)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(cols...)
	for _, r := range recs {
		row := make([]string, 0, len(cols))
		for _, c := range cols {
			v, _ := r.Get(c)
			row = append(row, format.Truncate(v, format.DefaultTruncate))
		}
		t.Row(row...)
	}
	return t.Render()
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Import loans from a CSV file into the loan store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := setup(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer f.Close()

			ingest := &service.IngestService{Loans: repository.NewLoanRepo(e.db)}
			res, err := ingest.ImportLoansCSV(ctx, f)
			if err != nil {
				return err
			}
			for _, rowErr := range res.Errors {
				fmt.Fprintln(cmd.ErrOrStderr(), "warn:", rowErr)
			}
			e.logger.Info("loans.imported",
				zap.String("file", args[0]),
				zap.Int("imported", res.Imported),
				zap.Int("skipped", res.Skipped),
				zap.Int("errors", len(res.Errors)),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d loans, skipped %d duplicates\n", res.Imported, res.Skipped)
			return nil
		},
	}
}

func newResetCmd() *cobra.Command {
	var loans bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the upload journal and notice history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			e, err := setup(ctx)
			if err != nil {
				return err
			}
			defer e.Close()

			cleared, err := repository.NewUploadRepo(e.db).Count(ctx)
			if err != nil {
				return fmt.Errorf("count uploads: %w", err)
			}
			m := &service.MaintenanceService{DB: e.db}
			if err := m.Reset(ctx, loans); err != nil {
				return err
			}
			e.logger.Info("store.reset", zap.Bool("loans", loans), zap.Int("uploads", cleared))
			fmt.Fprintf(cmd.OutOrStdout(), "reset complete: cleared %d uploads\n", cleared)
			return nil
		},
	}
	cmd.Flags().BoolVar(&loans, "loans", false, "also empty the loan store")
	return cmd
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or write the configuration file",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the configuration file location",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), config.Path())
			},
		},
		&cobra.Command{
			Use:   "init",
			Short: "Write the effective configuration to the configuration file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				if err := config.Save(cfg); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "wrote", config.Path())
				return nil
			},
		},
	)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "portfoliodesk %s (%s)\n", version, runtime.Version())
		},
	}
}
