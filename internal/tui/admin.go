package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/anarchistempire/empire/internal/console"
	"github.com/anarchistempire/empire/internal/router"
	"github.com/anarchistempire/empire/pkg/domain"
)

type adminSection int

const (
	sectionOrders adminSection = iota
	sectionPrivileges
	sectionAdmins
	numSections
)

type adminForm int

const (
	formNone adminForm = iota
	formPrivilege
	formAdmin
)

const (
	privName = iota
	privDescription
	privPrice
	privFeatures
	privDuration
	numPrivFields
)

const (
	credUsername = iota
	credPassword
	numCredFields
)

// copyResultMsg carries the outcome of copying a nickname to the clipboard.
type copyResultMsg struct {
	text string
	err  error
}

// adminModel is the admin panel: a sign-in form while logged out, and the
// orders, privileges and admins sections once signed in.
type adminModel struct {
	console       *console.Console
	authenticated bool
	section       adminSection

	orders       []domain.Order
	ordersLoaded bool
	admins       []domain.Admin
	adminsLoaded bool
	privileges   []domain.Privilege
	cursor       int

	login      [numCredFields]string
	loginFocus int
	signingIn  bool

	form        adminForm
	privFields  [numPrivFields]string
	adminFields [numCredFields]string
	formFocus   int
	saving      bool
	updating    bool

	status string
	width  int
	height int
}

func newAdminModel(c *console.Console) adminModel {
	return adminModel{console: c}
}

// editing reports whether keystrokes belong to a form.
func (m adminModel) editing() bool {
	return !m.authenticated || m.form != formNone
}

func (m adminModel) Update(msg tea.Msg) (adminModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case snapshotMsg:
		if m.authenticated && !msg.authenticated {
			m.form = formNone
			m.section = sectionOrders
		}
		m.authenticated = msg.authenticated
		m.orders = msg.orders
		m.ordersLoaded = msg.ordersLoaded
		m.admins = msg.admins
		m.adminsLoaded = msg.adminsLoaded
		m.privileges = msg.privileges
		if m.cursor >= len(m.orders) {
			m.cursor = max(len(m.orders)-1, 0)
		}

	case opDoneMsg:
		switch msg.op {
		case opLogin:
			m.signingIn = false
			if msg.done {
				m.login = [numCredFields]string{}
				m.loginFocus = credUsername
			}
		case opOrderStatus:
			m.updating = false
		case opCreatePrivilege:
			m.saving = false
			if msg.done {
				m.privFields = [numPrivFields]string{}
				m.form = formNone
			}
		case opCreateAdmin:
			m.saving = false
			if msg.done {
				m.adminFields = [numCredFields]string{}
				m.form = formNone
			}
		}

	case copyResultMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
		} else {
			m.status = "copied " + msg.text
		}

	case tea.KeyMsg:
		m.status = ""
		switch {
		case !m.authenticated:
			return m.updateLogin(msg)
		case m.form == formPrivilege:
			return m.updatePrivilegeForm(msg)
		case m.form == formAdmin:
			return m.updateAdminForm(msg)
		}
		return m.updateNav(msg)
	}
	return m, nil
}

func (m adminModel) updateLogin(msg tea.KeyMsg) (adminModel, tea.Cmd) {
	if m.signingIn {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		return m, navigateCmd(router.Landing)
	case "tab", "shift+tab", "up", "down":
		m.loginFocus = (m.loginFocus + 1) % numCredFields
	case "enter":
		if m.loginFocus == credUsername {
			m.loginFocus = credPassword
			return m, nil
		}
		m.signingIn = true
		c := m.console
		username, password := m.login[credUsername], m.login[credPassword]
		return m, func() tea.Msg {
			n := c.Login(context.Background(), username, password)
			return opDoneMsg{op: opLogin, notice: n, done: !n.Failed()}
		}
	default:
		m.login[m.loginFocus] = editKey(m.login[m.loginFocus], msg)
	}
	return m, nil
}

func (m adminModel) updateNav(msg tea.KeyMsg) (adminModel, tea.Cmd) {
	c := m.console
	switch msg.String() {
	case "tab":
		m.section = (m.section + 1) % numSections
	case "shift+tab":
		m.section = (m.section - 1 + numSections) % numSections
	case "r":
		return m, enterCmd(c, router.Admin)
	case "L":
		return m, func() tea.Msg {
			return opDoneMsg{op: opLogout, notice: c.Logout()}
		}
	case "n":
		switch m.section {
		case sectionPrivileges:
			m.form = formPrivilege
			m.formFocus = privName
		case sectionAdmins:
			m.form = formAdmin
			m.formFocus = credUsername
		}
	}
	if m.section == sectionOrders {
		return m.updateOrders(msg)
	}
	return m, nil
}

func (m adminModel) updateOrders(msg tea.KeyMsg) (adminModel, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.orders)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "d":
		return m.setStatus(domain.OrderCompleted)
	case "x":
		return m.setStatus(domain.OrderCancelled)
	case "c":
		if m.cursor < len(m.orders) {
			nick := m.orders[m.cursor].Nickname
			return m, func() tea.Msg {
				return copyResultMsg{text: nick, err: clipboard.WriteAll(nick)}
			}
		}
	}
	return m, nil
}

func (m adminModel) setStatus(status domain.OrderStatus) (adminModel, tea.Cmd) {
	if m.updating || m.cursor >= len(m.orders) {
		return m, nil
	}
	o := m.orders[m.cursor]
	if o.Status == status {
		m.status = fmt.Sprintf("order #%d is already %s", o.ID, status)
		return m, nil
	}
	m.updating = true
	c := m.console
	return m, func() tea.Msg {
		return opDoneMsg{op: opOrderStatus, notice: c.UpdateOrderStatus(context.Background(), o.ID, status)}
	}
}

func (m adminModel) updatePrivilegeForm(msg tea.KeyMsg) (adminModel, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.form = formNone
	case "tab", "down":
		m.formFocus = (m.formFocus + 1) % numPrivFields
	case "shift+tab", "up":
		m.formFocus = (m.formFocus - 1 + numPrivFields) % numPrivFields
	case "ctrl+s":
		return m.submitPrivilege()
	case "enter":
		switch m.formFocus {
		case privFeatures:
			m.privFields[privFeatures] += "\n"
		case privDuration:
			return m.submitPrivilege()
		default:
			m.formFocus++
		}
	default:
		m.privFields[m.formFocus] = editKey(m.privFields[m.formFocus], msg)
	}
	return m, nil
}

func (m adminModel) submitPrivilege() (adminModel, tea.Cmd) {
	var price float64
	if raw := strings.TrimSpace(m.privFields[privPrice]); raw != "" {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			m.status = "price must be a number"
			m.formFocus = privPrice
			return m, nil
		}
		price = p
	}
	draft := domain.PrivilegeDraft{
		Name:        m.privFields[privName],
		Description: m.privFields[privDescription],
		Price:       price,
		Features:    m.privFields[privFeatures],
		Duration:    m.privFields[privDuration],
	}
	m.saving = true
	c := m.console
	return m, func() tea.Msg {
		n, done := c.CreatePrivilege(context.Background(), draft)
		return opDoneMsg{op: opCreatePrivilege, notice: n, done: done}
	}
}

func (m adminModel) updateAdminForm(msg tea.KeyMsg) (adminModel, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	switch msg.String() {
	case "esc":
		m.form = formNone
	case "tab", "shift+tab", "up", "down":
		m.formFocus = (m.formFocus + 1) % numCredFields
	case "enter", "ctrl+s":
		if msg.String() == "enter" && m.formFocus == credUsername {
			m.formFocus = credPassword
			return m, nil
		}
		draft := domain.AdminDraft{Username: m.adminFields[credUsername], Password: m.adminFields[credPassword]}
		m.saving = true
		c := m.console
		return m, func() tea.Msg {
			n, done := c.CreateAdmin(context.Background(), draft)
			return opDoneMsg{op: opCreateAdmin, notice: n, done: done}
		}
	default:
		m.adminFields[m.formFocus] = editKey(m.adminFields[m.formFocus], msg)
	}
	return m, nil
}

func (m adminModel) helpKeys() string {
	switch {
	case !m.authenticated:
		return helpEntry("tab", "field") + "  " + helpEntry("enter", "sign in") + "  " + helpEntry("esc", "back")
	case m.form != formNone:
		return helpEntry("tab", "field") + "  " + helpEntry("ctrl+s", "save") + "  " + helpEntry("esc", "cancel")
	case m.section == sectionOrders:
		return helpEntry("1-4", "tabs") + "  " + helpEntry("tab", "section") + "  " + helpEntry("j/k", "nav") + "  " +
			helpEntry("d", "completed") + "  " + helpEntry("x", "cancelled") + "  " + helpEntry("c", "copy nick") + "  " +
			helpEntry("r", "reload") + "  " + helpEntry("L", "sign out")
	default:
		return helpEntry("1-4", "tabs") + "  " + helpEntry("tab", "section") + "  " + helpEntry("n", "new") + "  " +
			helpEntry("r", "reload") + "  " + helpEntry("L", "sign out")
	}
}

func (m adminModel) View() string {
	var b strings.Builder
	b.WriteString("\n  " + primaryStyle.Render("ADMIN PANEL") + "\n\n")

	if !m.authenticated {
		b.WriteString("  " + selectedStyle.Render("Sign in") + "\n\n")
		b.WriteString(renderForm([]formField{
			{label: "username", placeholder: "admin", value: m.login[credUsername]},
			{label: "password", value: m.login[credPassword], secret: true},
		}, m.loginFocus))
		if m.signingIn {
			b.WriteString("\n  " + dimStyle.Render("signing in..."))
		}
		return b.String()
	}

	b.WriteString("  " + m.sectionBar() + "\n\n")
	switch m.section {
	case sectionOrders:
		b.WriteString(m.ordersView())
	case sectionPrivileges:
		b.WriteString(m.privilegesView())
	case sectionAdmins:
		b.WriteString(m.adminsView())
	}
	if m.status != "" {
		b.WriteString("\n  " + goldStyle.Render(m.status) + "\n")
	}
	return b.String()
}

func (m adminModel) sectionBar() string {
	labels := [numSections]string{
		fmt.Sprintf("Orders (%d)", len(m.orders)),
		fmt.Sprintf("Privileges (%d)", len(m.privileges)),
		fmt.Sprintf("Admins (%d)", len(m.admins)),
	}
	parts := make([]string, 0, len(labels))
	for i, l := range labels {
		if adminSection(i) == m.section {
			parts = append(parts, selectedStyle.Underline(true).Render(l))
		} else {
			parts = append(parts, dimStyle.Render(l))
		}
	}
	return strings.Join(parts, "   ")
}

func (m adminModel) ordersView() string {
	if !m.ordersLoaded && len(m.orders) == 0 {
		return "  " + dimStyle.Render("loading...") + "\n"
	}
	if len(m.orders) == 0 {
		return "  " + dimStyle.Render("no orders yet") + "\n"
	}
	var b strings.Builder
	for i, o := range m.orders {
		cursor := "  "
		nick := normalStyle.Render(o.Nickname)
		if i == m.cursor {
			cursor = accentStyle.Render("> ")
			nick = selectedStyle.Render(o.Nickname)
		}
		row := fmt.Sprintf("%s%s %s  %s  %s  %s  %s",
			cursor,
			metaStyle.Render(fmt.Sprintf("#%d", o.ID)),
			nick,
			StatusStyle(o.Status).Render(string(o.Status)),
			normalStyle.Render(o.PrivilegeName),
			priceStyle.Render(formatPrice(o.Price)),
			metaStyle.Render(formatDate(o.CreatedAt)),
		)
		if i == m.cursor {
			row = selectedRowBg.Render(row)
		}
		b.WriteString(row + "\n")
		if o.Email != "" {
			b.WriteString("      " + dimStyle.Render(o.Email) + "\n")
		}
	}
	if m.cursor < len(m.orders) {
		b.WriteString("\n  " + orderAction("d", "completed", m.orders[m.cursor].Status == domain.OrderCompleted) +
			"  " + orderAction("x", "cancelled", m.orders[m.cursor].Status == domain.OrderCancelled))
		if m.updating {
			b.WriteString("  " + dimStyle.Render("updating..."))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// orderAction renders a status button, greyed out when it would not change anything.
func orderAction(key, label string, disabled bool) string {
	if disabled {
		return metaStyle.Render("[" + key + " " + label + "]")
	}
	return "[" + helpEntry(key, label) + "]"
}

func (m adminModel) privilegesView() string {
	var b strings.Builder
	if m.form == formPrivilege {
		b.WriteString("  " + selectedStyle.Render("New privilege") + "\n\n")
		b.WriteString(renderForm([]formField{
			{label: "name", placeholder: "VIP", value: m.privFields[privName]},
			{label: "description", placeholder: "Basic privilege", value: m.privFields[privDescription]},
			{label: "price (₽)", placeholder: "0", value: m.privFields[privPrice]},
			{label: "features (one per line)", placeholder: "/kit vip", value: m.privFields[privFeatures], multiline: true},
			{label: "duration", placeholder: "30 days", value: m.privFields[privDuration]},
		}, m.formFocus))
		if m.saving {
			b.WriteString("\n  " + dimStyle.Render("saving..."))
		}
		return b.String()
	}
	if len(m.privileges) == 0 {
		return "  " + dimStyle.Render("no privileges yet, press n to add one") + "\n"
	}
	for _, p := range m.privileges {
		fmt.Fprintf(&b, "  %s  %s  %s  %s\n",
			primaryStyle.Render(p.Name),
			priceStyle.Render(formatPrice(p.Price)),
			metaStyle.Render(p.Duration),
			dimStyle.Render(fmt.Sprintf("%d features", len(p.Features))),
		)
	}
	return b.String()
}

func (m adminModel) adminsView() string {
	var b strings.Builder
	if m.form == formAdmin {
		b.WriteString("  " + selectedStyle.Render("New admin") + "\n\n")
		b.WriteString(renderForm([]formField{
			{label: "username", placeholder: "moderator", value: m.adminFields[credUsername]},
			{label: "password", value: m.adminFields[credPassword], secret: true},
		}, m.formFocus))
		if m.saving {
			b.WriteString("\n  " + dimStyle.Render("saving..."))
		}
		return b.String()
	}
	if !m.adminsLoaded && len(m.admins) == 0 {
		return "  " + dimStyle.Render("loading...") + "\n"
	}
	for _, a := range m.admins {
		fmt.Fprintf(&b, "  %s %s\n", metaStyle.Render(fmt.Sprintf("#%d", a.ID)), normalStyle.Render(a.Username))
	}
	return b.String()
}
