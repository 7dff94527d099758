package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/table"

	"github.com/jask/portfoliodesk/internal/format"
	"github.com/jask/portfoliodesk/internal/upload"
)

const historyTimeLayout = "2006-01-02 15:04"

// renderHistory lists the upload journal on the Data Upload page.
func (a *App) renderHistory() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Data Upload"))
	b.WriteString("\n\n")

	if len(a.history) == 0 {
		b.WriteString(mutedStyle.Render("No uploads yet."))
	} else {
		t := table.New().
			Headers("Submitted", "Category", "Type", "File", "Rows", "Remark")
		for _, u := range a.history {
			t.Row(
				u.SubmittedAt.Local().Format(historyTimeLayout),
				upload.LabelFor(upload.Categories, u.Category),
				upload.LabelFor(upload.DocumentTypes, u.DocumentType),
				format.Truncate(u.FileName, 28),
				fmt.Sprintf("%d", u.RowCount),
				format.Truncate(u.Remark, format.DefaultTruncate),
			)
		}
		b.WriteString(t.Render())
	}
	b.WriteString("\n\n")
	b.WriteString(a.help.ShortHelpView(a.keys.historyHelp()))
	return b.String()
}
