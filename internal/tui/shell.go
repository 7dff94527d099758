package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type route string

const (
	routeDashboard      route = "dashboard"
	routePortfolio      route = "portfolio"
	routeNotifications  route = "notifications"
	routeNotices        route = "notices"
	routeAuction        route = "auction"
	routeDataUpload     route = "dataUpload"
	routeControlPanel   route = "controlPanel"
	routeUserManagement route = "userManagement"
	routePermissions    route = "permissions"
)

var routes = []route{
	routeDashboard,
	routePortfolio,
	routeNotifications,
	routeNotices,
	routeAuction,
	routeDataUpload,
	routeControlPanel,
	routeUserManagement,
	routePermissions,
}

var routeLabels = map[route]string{
	routeDashboard:      "Dashboard",
	routePortfolio:      "Portfolio",
	routeNotifications:  "Notifications",
	routeNotices:        "Notices",
	routeAuction:        "Auction",
	routeDataUpload:     "Data Upload",
	routeControlPanel:   "Control Panel",
	routeUserManagement: "User Management",
	routePermissions:    "Permissions",
}

func (r route) Label() string { return routeLabels[r] }

func (r route) index() int {
	for i, x := range routes {
		if x == r {
			return i
		}
	}
	return 0
}

func (r route) next() route { return routes[(r.index()+1)%len(routes)] }

func (r route) prev() route { return routes[(r.index()+len(routes)-1)%len(routes)] }

// routeForKey maps the digits 1-9 onto the sidebar entries.
func routeForKey(k string) (route, bool) {
	if len(k) != 1 || k[0] < '1' || k[0] > '9' {
		return "", false
	}
	i := int(k[0] - '1')
	if i >= len(routes) {
		return "", false
	}
	return routes[i], true
}

const brand = "Resollect"

// styles
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	brandStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	topBarStyle   = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).PaddingLeft(1).PaddingRight(1)
	sidebarStyle  = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderRight(true).PaddingRight(1).MarginRight(1)
	activeStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true)
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
)

func (a *App) renderShell(body string) string {
	top := topBarStyle.Render(brandStyle.Render(brand) + "   " +
		mutedStyle.Render(a.cfg.UI.OperatorName+" <"+a.cfg.UI.OperatorEmail+">"))

	main := body
	if a.status != "" {
		main += "\n" + a.status
	}
	if a.sidebarVisible() {
		main = lipgloss.JoinHorizontal(lipgloss.Top, a.renderSidebar(), main)
	} else {
		main = mutedStyle.Render("[m] menu") + "\n" + main
	}
	return top + "\n" + main
}

func (a *App) renderSidebar() string {
	var b strings.Builder
	for i, r := range routes {
		line := string(rune('1'+i)) + " " + r.Label()
		if r == a.route {
			line = activeStyle.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		if i < len(routes)-1 {
			b.WriteByte('\n')
		}
	}
	return sidebarStyle.Render(b.String())
}

func renderComingSoon(title string) string {
	body := titleStyle.Render(title) + "\n\n" +
		"Coming Soon\n" +
		"This feature is currently in development and will be available soon.\n" +
		mutedStyle.Render("Check back later for updates on this exciting new feature!")
	return cardStyle.Render(body)
}
