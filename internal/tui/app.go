package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/portfoliodesk/internal/config"
	"github.com/jask/portfoliodesk/internal/csvpreview"
	"github.com/jask/portfoliodesk/internal/database/repository"
	"github.com/jask/portfoliodesk/internal/portfolio"
	"github.com/jask/portfoliodesk/internal/service"
	"github.com/jask/portfoliodesk/internal/upload"
)

// LoanSource supplies the portfolio loans.
type LoanSource interface {
	Load(ctx context.Context) ([]portfolio.Loan, error)
}

// UploadJournal accepts submissions and lists past ones.
type UploadJournal interface {
	upload.Sink
	History(ctx context.Context, limit int) ([]repository.Upload, error)
}

// NoticeWriter exports notice registers for selected loans.
type NoticeWriter interface {
	Generate(ctx context.Context, kind service.NoticeKind, loans []portfolio.Loan) (service.NoticeResult, error)
}

type Services struct {
	Loans   LoanSource
	Uploads UploadJournal
	Notices NoticeWriter
}

const historyLimit = 20

// App ties together views.
type App struct {
	ctx      context.Context
	cfg      config.Config
	services Services
	logger   *zap.Logger
	keys     keyMap
	help     help.Model

	route       route
	width       int
	sidebarOpen bool
	status      string

	// portfolio page
	table      portfolio.Table
	loaded     bool
	rowCursor  int
	sortCursor int
	search     textinput.Model
	searching  bool

	// upload dialog
	dialog    *upload.Dialog
	focus     uploadField
	pathInput textinput.Model
	remark    textarea.Model
	spin      spinner.Model

	history []repository.Upload
}

func New(ctx context.Context, cfg config.Config, services Services, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}

	search := textinput.New()
	search.Prompt = "Search loan no.: "
	search.Placeholder = "e.g. LN2024"
	search.CharLimit = 64

	pathInput := textinput.New()
	pathInput.Prompt = "File: "
	pathInput.Placeholder = "/path/to/data.csv"
	pathInput.CharLimit = 1024

	remark := textarea.New()
	remark.Placeholder = "Document remark"
	remark.SetHeight(3)
	remark.SetWidth(48)
	remark.ShowLineNumbers = false

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &App{
		ctx:       ctx,
		cfg:       cfg,
		services:  services,
		logger:    logger,
		keys:      defaultKeys(),
		help:      help.New(),
		route:     routePortfolio,
		table:     portfolio.NewTable(nil, cfg.UI.PageSize),
		search:    search,
		dialog:    upload.New(uploadSettings(cfg.Upload)),
		pathInput: pathInput,
		remark:    remark,
		spin:      spin,
	}
}

func uploadSettings(c config.UploadConfig) upload.Settings {
	return upload.Settings{
		PreviewRows: c.PreviewRows,
		SampleRows:  c.SampleRows,
		CloseDelay:  c.CloseDelay,
		BannerDelay: c.BannerDelay,
	}
}

// Table returns the portfolio view state, used to persist preferences on exit.
func (a *App) Table() portfolio.Table { return a.table }

// RestoreTable seeds the view state before the program starts.
func (a *App) RestoreTable(fn func(portfolio.Table) portfolio.Table) {
	a.table = fn(a.table)
	for i, c := range portfolio.Columns {
		if c == a.table.SortColumn() {
			a.sortCursor = i
		}
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadLoans(), a.loadHistory())
}

func (a *App) loadLoans() tea.Cmd {
	return func() tea.Msg {
		if a.services.Loans == nil {
			return loansMsg(nil)
		}
		loans, err := a.services.Loans.Load(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return loansMsg(loans)
	}
}

func (a *App) loadHistory() tea.Cmd {
	return func() tea.Msg {
		if a.services.Uploads == nil {
			return historyMsg(nil)
		}
		list, err := a.services.Uploads.History(a.ctx, historyLimit)
		if err != nil {
			return errMsg{err}
		}
		return historyMsg(list)
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.help.Width = m.Width
		if !a.narrow() {
			a.sidebarOpen = false
		}
	case tea.KeyMsg:
		if m.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.dialog.IsOpen() {
			return a.handleUploadKey(m)
		}
		if a.searching {
			return a.handleSearchKey(m)
		}
		return a.handleKey(m)
	case loansMsg:
		a.table = a.table.SetLoans([]portfolio.Loan(m))
		a.loaded = true
		a.clampCursor()
	case historyMsg:
		a.history = []repository.Upload(m)
	case openUploadMsg:
		return a, a.openUpload()
	case fileReadMsg:
		return a, a.finishRead(m)
	case submitDoneMsg:
		return a, a.finishSubmit(m)
	case timerMsg:
		a.dialog.Fire(upload.TimerToken(m))
		if !a.dialog.IsOpen() {
			a.blurUploadFields()
		}
	case noticeDoneMsg:
		a.finishNotice(m)
	case spinner.TickMsg:
		if a.dialog.Reading() {
			var cmd tea.Cmd
			a.spin, cmd = a.spin.Update(m)
			return a, cmd
		}
	case statusMsg:
		a.status = string(m)
	case errMsg:
		a.status = "error: " + m.Error()
		a.logger.Error("ui.error", zap.Error(m.error))
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Sidebar):
		if a.narrow() {
			a.sidebarOpen = !a.sidebarOpen
		}
		return a, nil
	case key.Matches(m, a.keys.Close):
		a.sidebarOpen = false
		return a, nil
	case key.Matches(m, a.keys.NextRoute):
		return a, a.goTo(a.route.next())
	case key.Matches(m, a.keys.PrevRoute):
		return a, a.goTo(a.route.prev())
	}
	if r, ok := routeForKey(m.String()); ok {
		return a, a.goTo(r)
	}

	switch a.route {
	case routePortfolio:
		return a.handlePortfolioKey(m)
	case routeDataUpload:
		switch {
		case key.Matches(m, a.keys.Upload):
			return a, requestUpload
		case key.Matches(m, a.keys.Refresh):
			return a, a.loadHistory()
		}
	}
	return a, nil
}

func (a *App) goTo(r route) tea.Cmd {
	a.route = r
	a.status = ""
	if a.narrow() {
		a.sidebarOpen = false
	}
	if r == routeDataUpload {
		return a.loadHistory()
	}
	return nil
}

func (a *App) narrow() bool {
	return a.width > 0 && a.width < a.cfg.UI.NarrowWidth
}

func (a *App) sidebarVisible() bool {
	return !a.narrow() || a.sidebarOpen
}

func (a *App) View() string {
	if a.dialog.IsOpen() {
		return a.renderShell(a.renderUpload())
	}
	var body string
	switch a.route {
	case routePortfolio:
		body = a.renderPortfolio()
	case routeDataUpload:
		body = a.renderHistory()
	default:
		body = renderComingSoon(a.route.Label()) + "\n" + a.help.ShortHelpView(a.keys.pageHelp())
	}
	return a.renderShell(body)
}

// messages
type loansMsg []portfolio.Loan

type historyMsg []repository.Upload

type openUploadMsg struct{}

type fileReadMsg struct {
	seq     uint64
	path    string
	records []csvpreview.Record
	err     error
	elapsed time.Duration
}

type submitDoneMsg struct {
	sub upload.Submission
	err error
}

type timerMsg upload.TimerToken

type noticeDoneMsg struct {
	kind   service.NoticeKind
	result service.NoticeResult
	err    error
}

type statusMsg string

type errMsg struct{ error }

func requestUpload() tea.Msg { return openUploadMsg{} }
