package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/anarchistempire/empire/internal/console"
	"github.com/anarchistempire/empire/pkg/domain"
)

const (
	checkoutNickname = iota
	checkoutEmail
	numCheckoutFields
)

// storeModel is the public privileges storefront with its checkout dialog.
type storeModel struct {
	console    *console.Console
	privileges []domain.Privilege
	loaded     bool
	cursor     int
	draft      domain.OrderDraft
	focus      int
	submitting bool
	width      int
	height     int
}

func newStoreModel(c *console.Console) storeModel {
	return storeModel{console: c}
}

// checkoutOpen reports whether the purchase dialog has the keyboard.
func (m storeModel) checkoutOpen() bool {
	return m.draft.Open()
}

func (m storeModel) Update(msg tea.Msg) (storeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case snapshotMsg:
		m.privileges = msg.privileges
		m.loaded = msg.privilegesLoaded
		if m.cursor >= len(m.privileges) {
			m.cursor = max(len(m.privileges)-1, 0)
		}

	case opDoneMsg:
		if msg.op == opSubmitOrder {
			m.submitting = false
			if msg.done {
				m.draft = domain.OrderDraft{}
				m.focus = checkoutNickname
			}
		}

	case tea.KeyMsg:
		if m.checkoutOpen() {
			return m.updateCheckout(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m storeModel) updateList(msg tea.KeyMsg) (storeModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down", "l", "right":
		if m.cursor < len(m.privileges)-1 {
			m.cursor++
		}
	case "k", "up", "left":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter", "b":
		if m.cursor < len(m.privileges) {
			p := m.privileges[m.cursor]
			m.draft = domain.OrderDraft{Privilege: &p}
			m.focus = checkoutNickname
		}
	case "r":
		c := m.console
		return m, func() tea.Msg {
			return opDoneMsg{op: opRefresh, notice: c.RefreshPrivileges(context.Background())}
		}
	}
	return m, nil
}

func (m storeModel) updateCheckout(msg tea.KeyMsg) (storeModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.draft = domain.OrderDraft{}
	case "tab", "down", "shift+tab", "up":
		m.focus = (m.focus + 1) % numCheckoutFields
	case "enter", "ctrl+s":
		if msg.String() == "enter" && m.focus == checkoutNickname {
			m.focus = checkoutEmail
			return m, nil
		}
		return m.submit()
	default:
		if m.focus == checkoutNickname {
			m.draft.Nickname = editKey(m.draft.Nickname, msg)
		} else {
			m.draft.Email = editKey(m.draft.Email, msg)
		}
	}
	return m, nil
}

func (m storeModel) submit() (storeModel, tea.Cmd) {
	m.submitting = true
	c := m.console
	draft := m.draft
	return m, func() tea.Msg {
		n, done := c.SubmitOrder(context.Background(), draft)
		return opDoneMsg{op: opSubmitOrder, notice: n, done: done}
	}
}

func (m storeModel) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerLine(primaryStyle.Render("PRIVILEGES"), m.width) + "\n")
	b.WriteString(centerLine(dimStyle.Render("Get an edge on the server"), m.width) + "\n\n")

	switch {
	case !m.loaded && len(m.privileges) == 0:
		b.WriteString("  " + dimStyle.Render("loading...") + "\n")
		return b.String()
	case len(m.privileges) == 0:
		b.WriteString("  " + dimStyle.Render("no privileges on sale yet") + "\n")
		return b.String()
	}

	if m.checkoutOpen() {
		b.WriteString(m.checkoutView())
		return b.String()
	}

	cards := make([]string, 0, len(m.privileges))
	for i, p := range m.privileges {
		cards = append(cards, m.cardView(p, i == m.cursor))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n")
	return b.String()
}

func (m storeModel) cardView(p domain.Privilege, selected bool) string {
	var b strings.Builder
	b.WriteString(primaryStyle.Render(p.Name) + "\n")
	if p.Description != "" {
		b.WriteString(dimStyle.Render(truncStr(p.Description, 40)) + "\n")
	}
	b.WriteString(priceStyle.Render(formatPrice(p.Price)))
	if p.Duration != "" {
		b.WriteString("  " + metaStyle.Render(p.Duration))
	}
	b.WriteString("\n")
	for _, f := range p.Features {
		b.WriteString(checkStyle.Render("✓ ") + normalStyle.Render(truncStr(f, 36)) + "\n")
	}
	style := cardStyle
	if selected {
		b.WriteString("\n" + accentStyle.Render("[ enter buy ]"))
		style = cardSelectedStyle
	} else {
		b.WriteString("\n" + metaStyle.Render("[ buy ]"))
	}
	return style.Render(b.String())
}

func (m storeModel) checkoutView() string {
	p := m.draft.Privilege
	var b strings.Builder
	b.WriteString("  " + selectedStyle.Render("Checkout") + "\n")
	fmt.Fprintf(&b, "  %s\n\n", priceStyle.Render(fmt.Sprintf("%s - %s", p.Name, formatPrice(p.Price))))
	b.WriteString(renderForm([]formField{
		{label: "nickname *", placeholder: "Steve", value: m.draft.Nickname},
		{label: "email (optional)", placeholder: "your@email.com", value: m.draft.Email},
	}, m.focus))
	b.WriteString("\n")
	if m.submitting {
		b.WriteString("  " + dimStyle.Render("processing..."))
	} else {
		b.WriteString("  " + helpEntry("ctrl+s", "confirm") + "  " + helpEntry("esc", "cancel"))
	}
	b.WriteString("\n")
	return b.String()
}
