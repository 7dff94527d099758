package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit        key.Binding
	Sidebar     key.Binding
	NextRoute   key.Binding
	PrevRoute   key.Binding
	Search      key.Binding
	NextFilter  key.Binding
	PrevFilter  key.Binding
	NextColumn  key.Binding
	PrevColumn  key.Binding
	Sort        key.Binding
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	SelectAll   key.Binding
	Clear       key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	Upload      key.Binding
	Notice      key.Binding
	DeclareNPA  key.Binding
	Refresh     key.Binding
	Close       key.Binding
	NextField   key.Binding
	PrevField   key.Binding
	Choose      key.Binding
	Submit      key.Binding
	OptionLeft  key.Binding
	OptionRight key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Sidebar:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		NextRoute:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next page")),
		PrevRoute:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev page")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		NextFilter:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next tab")),
		PrevFilter:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev tab")),
		NextColumn:  key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "next column")),
		PrevColumn:  key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "prev column")),
		Sort:        key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sort")),
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		SelectAll:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
		Clear:       key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		NextPage:    key.NewBinding(key.WithKeys("n", "pgdown"), key.WithHelp("n", "next")),
		PrevPage:    key.NewBinding(key.WithKeys("p", "pgup"), key.WithHelp("p", "prev")),
		Upload:      key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upload")),
		Notice:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "pre sarfaesi notice")),
		DeclareNPA:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "declare NPA")),
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Close:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		NextField:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Choose:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
		Submit:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
		OptionLeft:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "option")),
		OptionRight: key.NewBinding(key.WithKeys("right")),
	}
}

func (k keyMap) portfolioHelp() []key.Binding {
	return []key.Binding{k.Search, k.PrevFilter, k.NextFilter, k.PrevColumn, k.NextColumn, k.Sort, k.Toggle, k.SelectAll, k.NextPage, k.PrevPage, k.Upload, k.Quit}
}

func (k keyMap) uploadHelp() []key.Binding {
	return []key.Binding{k.NextField, k.OptionLeft, k.Choose, k.Submit, k.Close}
}

func (k keyMap) pageHelp() []key.Binding {
	return []key.Binding{k.PrevRoute, k.NextRoute, k.Sidebar, k.Quit}
}

func (k keyMap) historyHelp() []key.Binding {
	return []key.Binding{k.Upload, k.Refresh, k.PrevRoute, k.NextRoute, k.Quit}
}
