package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/anarchistempire/empire/internal/console"
	"github.com/anarchistempire/empire/internal/router"
	"github.com/anarchistempire/empire/pkg/domain"
)

// noticeTTL is how long a toast stays on screen.
const noticeTTL = 4 * time.Second

// App is the root Bubbletea model.
type App struct {
	console   *console.Console
	siteURL   string
	version   string
	landing   landingModel
	features  featuresModel
	store     storeModel
	admin     adminModel
	helpOpen  bool
	notice    domain.Notice
	noticeSeq int
	width     int
	height    int
	frame     int // logo shimmer animation frame
}

// NewApp creates the TUI around an already wired console.
func NewApp(c *console.Console, siteURL, version string) App {
	return App{
		console:  c,
		siteURL:  siteURL,
		version:  version,
		landing:  newLandingModel(siteURL),
		features: newFeaturesModel(),
		store:    newStoreModel(c),
		admin:    newAdminModel(c),
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(shimmerTickCmd(), a.open())
}

// open restores the saved session and loads the first view.
func (a App) open() tea.Cmd {
	c := a.console
	return func() tea.Msg {
		notices := c.Open(context.Background())
		return enteredMsg{view: c.Router.Current(), notices: notices}
	}
}

func (a App) current() router.View {
	return a.console.Router.Current()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Chrome: header(2) + tabs(1) + notice(1) + help(1) = 5 lines
		bodyMsg := tea.WindowSizeMsg{Width: msg.Width, Height: msg.Height - 5}
		a.landing, _ = a.landing.Update(bodyMsg)
		a.features, _ = a.features.Update(bodyMsg)
		a.store, _ = a.store.Update(bodyMsg)
		a.admin, _ = a.admin.Update(bodyMsg)
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case navigateMsg:
		return a.navigate(msg.view)

	case enteredMsg:
		a = a.sync()
		return a.show(msg.notices...)

	case opDoneMsg:
		a.store, _ = a.store.Update(msg)
		a.admin, _ = a.admin.Update(msg)
		a = a.sync()
		return a.show(append([]domain.Notice{msg.notice}, msg.notices...)...)

	case noticeExpiredMsg:
		if msg.seq == a.noticeSeq {
			a.notice = domain.Notice{}
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.helpOpen {
			switch msg.String() {
			case "h", "esc", "?":
				a.helpOpen = false
			case "q":
				return a, tea.Quit
			}
			return a, nil
		}

		if !a.isEditing() {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "h", "?":
				a.helpOpen = true
				return a, nil
			case "1":
				return a.navigate(router.Landing)
			case "2":
				return a.navigate(router.Features)
			case "3":
				return a.navigate(router.Privileges)
			case "4":
				return a.navigate(router.Admin)
			}
		}
	}

	var cmd tea.Cmd
	switch a.current() {
	case router.Landing:
		a.landing, cmd = a.landing.Update(msg)
	case router.Features:
		a.features, cmd = a.features.Update(msg)
	case router.Privileges:
		a.store, cmd = a.store.Update(msg)
	case router.Admin:
		a.admin, cmd = a.admin.Update(msg)
	}
	return a, cmd
}

// navigate switches views right away and loads the new view's lists in the
// background.
func (a App) navigate(v router.View) (tea.Model, tea.Cmd) {
	if !a.console.Router.Navigate(v) {
		return a, nil
	}
	return a, enterCmd(a.console, v)
}

// sync copies the console's current state into the views.
func (a App) sync() App {
	snap := takeSnapshot(a.console)
	a.store, _ = a.store.Update(snap)
	a.admin, _ = a.admin.Update(snap)
	return a
}

// show puts the first notice worth showing on screen.
func (a App) show(notices ...domain.Notice) (tea.Model, tea.Cmd) {
	var shown []domain.Notice
	for _, n := range notices {
		if !n.IsZero() {
			shown = append(shown, n)
		}
	}
	if len(shown) == 0 {
		return a, nil
	}
	a.notice = shown[0]
	if len(shown) > 1 {
		a.notice.Message += fmt.Sprintf(" (+%d more)", len(shown)-1)
	}
	a.noticeSeq++
	seq := a.noticeSeq
	return a, tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

func (a App) isEditing() bool {
	switch a.current() {
	case router.Privileges:
		return a.store.checkoutOpen()
	case router.Admin:
		return a.admin.editing()
	}
	return false
}

func (a App) View() string {
	header := centerLine(renderShimmerLogo(a.frame), a.width)
	if a.admin.authenticated {
		header += "\n" + centerLine(metaStyle.Render("admin session"), a.width)
	} else {
		header += "\n"
	}

	type tabEntry struct {
		key  string
		name string
		v    router.View
	}
	tabs := []tabEntry{
		{"1", "Home", router.Landing},
		{"2", "Features", router.Features},
		{"3", "Privileges", router.Privileges},
	}
	if a.admin.authenticated || a.current() == router.Admin {
		tabs = append(tabs, tabEntry{"4", "Admin", router.Admin})
	}

	colWidth := a.width / len(tabs)
	var tabBar strings.Builder
	for _, t := range tabs {
		var label string
		if t.v == a.current() {
			label = accentStyle.Render(t.key) + " " + selectedStyle.Underline(true).Render(t.name)
		} else {
			label = metaStyle.Render(t.key) + " " + dimStyle.Render(t.name)
		}
		labelWidth := lipgloss.Width(label)
		leftPad := max((colWidth-labelWidth)/2, 0)
		rightPad := max(colWidth-labelWidth-leftPad, 0)
		tabBar.WriteString(strings.Repeat(" ", leftPad) + label + strings.Repeat(" ", rightPad))
	}

	var body, help string
	switch a.current() {
	case router.Landing:
		body = a.landing.View()
		help = " " + helpEntry("1-4", "tabs") + "  " + helpEntry("f", "features") + "  " + helpEntry("p", "privileges") + "  " + helpEntry("o", "website") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
	case router.Features:
		body = a.features.View()
		help = " " + helpEntry("1-4", "tabs") + "  " + helpEntry("j/k", "scroll") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
	case router.Privileges:
		body = a.store.View()
		if a.store.checkoutOpen() {
			help = " " + helpEntry("tab", "field") + "  " + helpEntry("ctrl+s", "confirm") + "  " + helpEntry("esc", "cancel")
		} else {
			help = " " + helpEntry("1-4", "tabs") + "  " + helpEntry("j/k", "nav") + "  " + helpEntry("enter", "buy") + "  " + helpEntry("r", "reload") + "  " + helpEntry("h", "help") + "  " + helpEntry("q", "quit")
		}
	case router.Admin:
		body = a.admin.View()
		help = " " + a.admin.helpKeys()
	}

	if a.helpOpen {
		body = helpView(a.siteURL)
		help = " " + helpEntry("esc", "close") + "  " + metaStyle.Render(a.version)
	}

	chrome := 5
	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")
	noticeLine := " " + renderNotice(a.notice)

	return fmt.Sprintf("%s\n%s\n%s\n%s\n%s", header, tabBar.String(), body, noticeLine, help)
}
