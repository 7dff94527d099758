package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/jask/portfoliodesk/internal/portfolio"
)

const viewFile = "view.json"

// View is the portfolio table state restored on the next start.
type View struct {
	SortColumn    portfolio.Column    `json:"sortColumn"`
	SortDirection portfolio.Direction `json:"sortDirection"`
	Filter        portfolio.Filter    `json:"filter"`
}

func viewPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "portfoliodesk")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, viewFile), nil
}

func SaveView(v View) error {
	path, err := viewPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadView returns the saved view, or ok=false when none was saved. Unknown
// columns or filters are dropped in favour of the defaults.
func LoadView() (View, bool, error) {
	path, err := viewPath()
	if err != nil {
		return View{}, false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return View{}, false, nil
		}
		return View{}, false, err
	}
	var v View
	if err := json.Unmarshal(data, &v); err != nil {
		return View{}, false, err
	}
	if !knownColumn(v.SortColumn) {
		v.SortColumn = portfolio.ColumnID
	}
	if v.SortDirection != portfolio.Desc {
		v.SortDirection = portfolio.Asc
	}
	v.Filter = portfolio.FilterByID(string(v.Filter))
	return v, true, nil
}

// Apply restores v onto t.
func (v View) Apply(t portfolio.Table) portfolio.Table {
	return t.SetSort(v.SortColumn, v.SortDirection).SetFilter(v.Filter)
}

// FromTable captures the persistent parts of t.
func FromTable(t portfolio.Table) View {
	return View{SortColumn: t.SortColumn(), SortDirection: t.SortDirection(), Filter: t.Filter()}
}

func knownColumn(c portfolio.Column) bool {
	for _, col := range portfolio.Columns {
		if col == c {
			return true
		}
	}
	return false
}
