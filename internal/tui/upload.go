package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	bubbletable "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/jask/portfoliodesk/internal/csvpreview"
	"github.com/jask/portfoliodesk/internal/metrics"
	"github.com/jask/portfoliodesk/internal/upload"
)

type uploadField int

const (
	fieldCategory uploadField = iota
	fieldDocType
	fieldFile
	fieldRemark
	fieldSubmit
	fieldCount
)

const previewCellWidth = 14

func (a *App) openUpload() tea.Cmd {
	a.dialog.Open()
	a.focus = fieldCategory
	a.pathInput.SetValue("")
	a.remark.Reset()
	a.blurUploadFields()
	return nil
}

func (a *App) blurUploadFields() {
	a.pathInput.Blur()
	a.remark.Blur()
}

func (a *App) focusField(f uploadField) tea.Cmd {
	a.focus = f
	a.blurUploadFields()
	switch f {
	case fieldFile:
		return a.pathInput.Focus()
	case fieldRemark:
		return a.remark.Focus()
	}
	return nil
}

func (a *App) handleUploadKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, a.keys.Close):
		a.dialog.Close()
		a.blurUploadFields()
		return a, nil
	case key.Matches(m, a.keys.Submit):
		return a, a.submitUpload()
	case key.Matches(m, a.keys.NextField):
		return a, a.focusField((a.focus + 1) % fieldCount)
	case key.Matches(m, a.keys.PrevField):
		return a, a.focusField((a.focus + fieldCount - 1) % fieldCount)
	}

	switch a.focus {
	case fieldCategory, fieldDocType:
		opts, get, set := upload.Categories, a.dialog.Category, a.dialog.SetCategory
		if a.focus == fieldDocType {
			opts, get, set = upload.DocumentTypes, a.dialog.DocumentType, a.dialog.SetDocumentType
		}
		switch {
		case key.Matches(m, a.keys.OptionLeft):
			set(cycleOption(opts, get(), -1))
		case key.Matches(m, a.keys.OptionRight), key.Matches(m, a.keys.Choose):
			set(cycleOption(opts, get(), 1))
		}
	case fieldFile:
		if key.Matches(m, a.keys.Choose) {
			return a, a.chooseFile()
		}
		var cmd tea.Cmd
		a.pathInput, cmd = a.pathInput.Update(m)
		return a, cmd
	case fieldRemark:
		var cmd tea.Cmd
		a.remark, cmd = a.remark.Update(m)
		a.dialog.SetRemark(a.remark.Value())
		return a, cmd
	case fieldSubmit:
		if key.Matches(m, a.keys.Choose) {
			return a, a.submitUpload()
		}
	}
	return a, nil
}

// cycleOption steps through "" followed by opts.
func cycleOption(opts []upload.Option, current string, step int) string {
	values := make([]string, 0, len(opts)+1)
	values = append(values, "")
	idx := 0
	for i, o := range opts {
		values = append(values, o.Value)
		if o.Value == current {
			idx = i + 1
		}
	}
	n := len(values)
	return values[((idx+step)%n+n)%n]
}

func (a *App) chooseFile() tea.Cmd {
	path := strings.TrimSpace(a.pathInput.Value())
	if path == "" {
		a.status = "enter a file path"
		return nil
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	req, ok := a.dialog.ChooseFile(path)
	if !ok {
		metrics.UploadErrorsTotal.WithLabelValues(metrics.ErrKindUnsupported).Inc()
		return nil
	}
	return tea.Batch(a.spin.Tick, a.readFileCmd(req))
}

func (a *App) readFileCmd(req upload.ReadRequest) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		recs, err := upload.Load(a.ctx, req.Path)
		return fileReadMsg{seq: req.Seq, path: req.Path, records: recs, err: err, elapsed: time.Since(start)}
	}
}

func (a *App) finishRead(m fileReadMsg) tea.Cmd {
	if !a.dialog.CompleteRead(m.seq, m.records, m.err) {
		return nil
	}
	if m.err != nil {
		metrics.UploadErrorsTotal.WithLabelValues(metrics.ErrKindParse).Inc()
		fields := []zap.Field{zap.String("file", filepath.Base(m.path))}
		var pe *csvpreview.ParseError
		if errors.As(m.err, &pe) && pe.Err != nil {
			fields = append(fields, zap.NamedError("cause", pe.Err))
		}
		a.logger.Warn("upload.parse_failed", fields...)
		return nil
	}
	metrics.RecordParse(len(m.records), m.elapsed)
	return nil
}

func (a *App) submitUpload() tea.Cmd {
	sub, schedules, err := a.dialog.Submit(time.Now())
	if err != nil {
		metrics.UploadErrorsTotal.WithLabelValues(metrics.ErrKindValidation).Inc()
		return nil
	}
	a.pathInput.SetValue("")
	a.remark.Reset()
	a.focus = fieldCategory
	a.blurUploadFields()

	cmds := make([]tea.Cmd, 0, len(schedules)+1)
	cmds = append(cmds, a.sinkCmd(sub))
	for _, s := range schedules {
		tok := s.Token
		cmds = append(cmds, tea.Tick(s.Delay, func(time.Time) tea.Msg { return timerMsg(tok) }))
	}
	return tea.Batch(cmds...)
}

func (a *App) sinkCmd(sub upload.Submission) tea.Cmd {
	return func() tea.Msg {
		if a.services.Uploads == nil {
			return submitDoneMsg{sub: sub, err: fmt.Errorf("upload journal not configured")}
		}
		return submitDoneMsg{sub: sub, err: a.services.Uploads.Submit(a.ctx, sub)}
	}
}

func (a *App) finishSubmit(m submitDoneMsg) tea.Cmd {
	if m.err != nil {
		a.status = "error: " + m.err.Error()
		a.logger.Error("upload.journal_failed", zap.String("file", m.sub.FileName), zap.Error(m.err))
		return nil
	}
	return a.loadHistory()
}

func (a *App) renderUpload() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Upload Document"))
	b.WriteString("\n\n")

	if a.dialog.Banner() {
		b.WriteString(successStyle.Render("✓ "+a.dialog.BannerText()) + "\n\n")
	}

	b.WriteString(a.fieldLine(fieldCategory, "Data category", optionText(upload.Categories, a.dialog.Category(), "Select category")))
	b.WriteString(a.fieldLine(fieldDocType, "Document type", optionText(upload.DocumentTypes, a.dialog.DocumentType(), "Select type")))

	file := a.dialog.FileName()
	if a.dialog.Reading() {
		file += " " + a.spin.View() + " reading"
	}
	b.WriteString(a.fieldLine(fieldFile, "Chosen file", file))
	b.WriteString(a.marker(fieldFile) + a.pathInput.View() + "\n")

	b.WriteString(a.marker(fieldRemark) + "Remark\n")
	b.WriteString(a.remark.View() + "\n")

	if err := a.dialog.Err(); err != nil {
		b.WriteString(errorStyle.Render("! "+err.Error()) + "\n")
	}

	if recs := a.dialog.Preview(); len(recs) > 0 {
		b.WriteString("\n" + a.dialog.PreviewCaption() + "\n")
		b.WriteString(renderPreview(recs) + "\n")
	}

	submit := "[ Submit ]"
	if !a.dialog.CanSubmit() {
		submit = mutedStyle.Render(submit + " choose a category and a CSV file with records")
	}
	b.WriteString("\n" + a.marker(fieldSubmit) + submit + "\n")
	b.WriteString(a.help.ShortHelpView(a.keys.uploadHelp()))
	return cardStyle.Render(b.String())
}

func (a *App) marker(f uploadField) string {
	if a.focus == f {
		return activeStyle.Render("› ")
	}
	return "  "
}

func (a *App) fieldLine(f uploadField, label, value string) string {
	return fmt.Sprintf("%s%-14s %s\n", a.marker(f), label+":", value)
}

func optionText(opts []upload.Option, value, placeholder string) string {
	if value == "" {
		return mutedStyle.Render("‹ " + placeholder + " ›")
	}
	return "‹ " + upload.LabelFor(opts, value) + " ›"
}

// renderPreview lays records out under the first record's columns.
func renderPreview(recs []csvpreview.Record) string {
	keys := csvpreview.Columns(recs)
	cols := make([]bubbletable.Column, 0, len(keys))
	for _, k := range keys {
		cols = append(cols, bubbletable.Column{Title: k, Width: previewCellWidth})
	}
	rows := make([]bubbletable.Row, 0, len(recs))
	for _, r := range recs {
		row := make(bubbletable.Row, 0, len(keys))
		for _, k := range keys {
			v, _ := r.Get(k)
			row = append(row, v)
		}
		rows = append(rows, row)
	}
	t := bubbletable.New(
		bubbletable.WithColumns(cols),
		bubbletable.WithRows(rows),
		bubbletable.WithHeight(len(rows)+1),
	)
	return t.View()
}
