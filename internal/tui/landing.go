package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/anarchistempire/empire/internal/browser"
	"github.com/anarchistempire/empire/internal/router"
)

const serverAddress = "play.anarchist-empire.ru"

// openResultMsg carries the outcome of opening the website.
type openResultMsg struct {
	err error
}

type landingModel struct {
	siteURL string
	width   int
	height  int
	status  string
}

func newLandingModel(siteURL string) landingModel {
	return landingModel{siteURL: siteURL}
}

func (m landingModel) Update(msg tea.Msg) (landingModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case openResultMsg:
		if msg.err != nil {
			m.status = "could not open browser: " + msg.err.Error()
		} else {
			m.status = "opened " + m.siteURL
		}

	case tea.KeyMsg:
		m.status = ""
		switch msg.String() {
		case "f":
			return m, navigateCmd(router.Features)
		case "p", "enter":
			return m, navigateCmd(router.Privileges)
		case "o":
			url := m.siteURL
			return m, func() tea.Msg {
				return openResultMsg{err: browser.Open(url)}
			}
		}
	}
	return m, nil
}

func (m landingModel) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerLine(primaryStyle.Render("A N A R C H I S T"), m.width) + "\n")
	b.WriteString(centerLine(priceStyle.Render("E M P I R E"), m.width) + "\n\n")
	b.WriteString(centerLine(dimStyle.Render("A server without rules or borders. Build your empire in a world of absolute anarchy."), m.width) + "\n\n")
	b.WriteString(centerLine(sectionHeaderStyle.Render("server  ")+selectedStyle.Render(serverAddress), m.width) + "\n\n")

	stats := []struct{ value, label string }{
		{"500+", "active players"},
		{"24/7", "online, no lag"},
		{"0", "rules and limits"},
	}
	parts := make([]string, 0, len(stats))
	for _, s := range stats {
		parts = append(parts, primaryStyle.Render(s.value)+" "+dimStyle.Render(s.label))
	}
	b.WriteString(centerLine(strings.Join(parts, metaStyle.Render("   ·   ")), m.width) + "\n\n")

	actions := fmt.Sprintf("%s   %s   %s",
		helpEntry("f", "features"), helpEntry("p", "privileges"), helpEntry("o", "website"))
	b.WriteString(centerLine(actions, m.width) + "\n")

	if m.status != "" {
		b.WriteString("\n" + centerLine(dimStyle.Render(m.status), m.width) + "\n")
	}
	return b.String()
}
