package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/anarchistempire/empire/internal/console"
	"github.com/anarchistempire/empire/internal/router"
	"github.com/anarchistempire/empire/pkg/domain"
)

type operation int

const (
	opLogin operation = iota + 1
	opLogout
	opOrderStatus
	opCreatePrivilege
	opCreateAdmin
	opSubmitOrder
	opRefresh
)

// opDoneMsg carries the outcome of a console operation. done reports whether
// the form that started it should be cleared.
type opDoneMsg struct {
	op      operation
	notice  domain.Notice
	notices []domain.Notice
	done    bool
}

// enteredMsg carries the notices of the refreshes a view started.
type enteredMsg struct {
	view    router.View
	notices []domain.Notice
}

// navigateMsg asks the App to switch views.
type navigateMsg struct {
	view router.View
}

// snapshotMsg hands the current list snapshots and session state to the views.
type snapshotMsg struct {
	authenticated    bool
	privileges       []domain.Privilege
	privilegesLoaded bool
	orders           []domain.Order
	ordersLoaded     bool
	admins           []domain.Admin
	adminsLoaded     bool
}

// noticeExpiredMsg hides the toast it belongs to.
type noticeExpiredMsg struct {
	seq int
}

func navigateCmd(v router.View) tea.Cmd {
	return func() tea.Msg { return navigateMsg{view: v} }
}

func takeSnapshot(c *console.Console) snapshotMsg {
	return snapshotMsg{
		authenticated:    c.Session.Authenticated(),
		privileges:       c.Privileges.Items(),
		privilegesLoaded: c.Privileges.Loaded(),
		orders:           c.Orders.Items(),
		ordersLoaded:     c.Orders.Loaded(),
		admins:           c.Admins.Items(),
		adminsLoaded:     c.Admins.Loaded(),
	}
}

func enterCmd(c *console.Console, v router.View) tea.Cmd {
	return func() tea.Msg {
		return enteredMsg{view: v, notices: c.Enter(context.Background(), v)}
	}
}
