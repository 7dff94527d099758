package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/portfoliodesk/internal/config"
	"github.com/jask/portfoliodesk/internal/database"
	"github.com/jask/portfoliodesk/internal/database/repository"
	"github.com/jask/portfoliodesk/internal/logging"
	"github.com/jask/portfoliodesk/internal/metrics"
	"github.com/jask/portfoliodesk/internal/prefs"
	"github.com/jask/portfoliodesk/internal/service"
	"github.com/jask/portfoliodesk/internal/tui"
)

// set at build time with -ldflags "-X main.version=..."
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "portfoliodesk",
		Short:         "Loan portfolio console",
		Long:          "portfoliodesk browses the loan portfolio, previews delimited uploads and exports notice registers.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConsole(cmd.Context())
		},
	}
	root.AddCommand(
		newPreviewCmd(),
		newImportCmd(),
		newResetCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

// env is the opened store plus the ambient pieces every command needs.
type env struct {
	cfg    config.Config
	db     *sql.DB
	logger *zap.Logger
}

func (e *env) Close() {
	_ = e.logger.Sync()
	if e.db != nil {
		_ = e.db.Close()
	}
}

func setup(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	src, closeSrc, err := loanDocument(cfg.Data.LoansPath)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	defer closeSrc()
	n, err := database.SeedLoans(ctx, db, src)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed loans: %w", err)
	}
	if n > 0 {
		logger.Info("loans.seeded", zap.Int("count", n))
	}
	return &env{cfg: cfg, db: db, logger: logger}, nil
}

// loanDocument opens the configured loan document, or the bundled one.
func loanDocument(path string) (io.Reader, func(), error) {
	if path == "" {
		return database.DefaultLoans(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open loan document: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func runConsole(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	e, err := setup(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	if addr := e.cfg.Metrics.Addr; addr != "" {
		go func() {
			if err := metrics.Serve(ctx, addr); err != nil {
				e.logger.Error("metrics.serve", zap.String("addr", addr), zap.Error(err))
			}
		}()
	}

	loans := &service.PortfolioService{Loans: repository.NewLoanRepo(e.db), Logger: e.logger}
	uploads := &service.UploadService{Uploads: repository.NewUploadRepo(e.db), Logger: e.logger}
	notices := &service.NoticeService{
		Notices:        repository.NewNoticeRepo(e.db),
		OutputDir:      e.cfg.Notice.OutputDir,
		CurrencySymbol: e.cfg.UI.CurrencySymbol,
		Logger:         e.logger,
	}

	app := tui.New(ctx, e.cfg, tui.Services{Loans: loans, Uploads: uploads, Notices: notices}, e.logger)
	if v, ok, err := prefs.LoadView(); err != nil {
		e.logger.Warn("prefs.load", zap.Error(err))
	} else if ok {
		app.RestoreTable(v.Apply)
	}

	e.logger.Info("console.start", zap.String("version", version))
	if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run console: %w", err)
	}

	if err := prefs.SaveView(prefs.FromTable(app.Table())); err != nil {
		e.logger.Warn("prefs.save", zap.Error(err))
	}
	return nil
}
