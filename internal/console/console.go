// Package console ties the session, the list synchronizers and the router
// together and runs every user-facing operation against the service.
//
// Operations never fail: every outcome, good or bad, comes back as a
// domain.Notice for the caller to display.
package console

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/anarchistempire/empire/internal/lists"
	"github.com/anarchistempire/empire/internal/router"
	"github.com/anarchistempire/empire/internal/session"
	"github.com/anarchistempire/empire/pkg/client"
	"github.com/anarchistempire/empire/pkg/domain"
)

// API is the part of the service client the console drives. *client.Client
// satisfies it.
type API interface {
	lists.Source
	session.Authenticator
	UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error
	CreatePrivilege(ctx context.Context, p client.CreatePrivilegeRequest) (int64, error)
	CreateAdmin(ctx context.Context, a client.CreateAdminRequest) (int64, error)
	SubmitOrder(ctx context.Context, o client.SubmitOrderRequest) (int64, error)
}

// Console owns the application state. Its fields are safe to read from any
// goroutine.
type Console struct {
	Session    *session.Store
	Router     *router.Router
	Orders     *lists.List[domain.Order]
	Admins     *lists.List[domain.Admin]
	Privileges *lists.List[domain.Privilege]

	api API
	log zerolog.Logger
}

// New wires a Console around api and sess. Logging in shows the admin panel;
// logging out returns to the landing page and forgets the admin lists.
func New(api API, sess *session.Store, log zerolog.Logger) *Console {
	c := &Console{
		Session:    sess,
		Router:     router.New(),
		Orders:     lists.NewOrders(api, sess, log),
		Admins:     lists.NewAdmins(api, sess, log),
		Privileges: lists.NewPrivileges(api, log),
		api:        api,
		log:        log,
	}
	c.Router.Bind(sess)
	sess.OnChange(func(ev session.Event) {
		if ev.Kind == session.LoggedOut {
			c.Orders.Reset()
			c.Admins.Reset()
		}
	})
	return c
}

// Open restores a persisted session and loads whatever the current view needs.
func (c *Console) Open(ctx context.Context) []domain.Notice {
	if c.Session.Restore() {
		c.log.Debug().Msg("console: resumed saved session")
	}
	return c.Enter(ctx, c.Router.Current())
}

// Navigate switches to v and, when the view changed, loads what it needs.
func (c *Console) Navigate(ctx context.Context, v router.View) []domain.Notice {
	if !c.Router.Navigate(v) {
		return nil
	}
	return c.Enter(ctx, v)
}

// Enter refreshes the lists shown by v: the catalogue for the storefront and
// the admin panel, plus orders and admins when signed in on the admin panel.
// Failed refreshes are returned as notices in a stable order.
func (c *Console) Enter(ctx context.Context, v router.View) []domain.Notice {
	var refreshes []func(context.Context) domain.Notice
	switch v {
	case router.Privileges:
		refreshes = append(refreshes, c.RefreshPrivileges)
	case router.Admin:
		refreshes = append(refreshes, c.RefreshPrivileges)
		if c.Session.Authenticated() {
			refreshes = append(refreshes, c.RefreshOrders, c.RefreshAdmins)
		}
	}
	return c.runAll(ctx, refreshes)
}

func (c *Console) runAll(ctx context.Context, refreshes []func(context.Context) domain.Notice) []domain.Notice {
	if len(refreshes) == 0 {
		return nil
	}
	results := make([]domain.Notice, len(refreshes))
	g, gctx := errgroup.WithContext(ctx)
	for i, refresh := range refreshes {
		g.Go(func() error {
			results[i] = refresh(gctx)
			return nil // one list failing must not cancel the others
		})
	}
	g.Wait() //nolint:errcheck // goroutines never return an error

	var notices []domain.Notice
	for _, n := range results {
		if !n.IsZero() {
			notices = append(notices, n)
		}
	}
	return notices
}

// RefreshOrders reloads the orders list.
func (c *Console) RefreshOrders(ctx context.Context) domain.Notice {
	return NoticeFor("Could not load orders", c.Orders.Refresh(ctx))
}

// RefreshAdmins reloads the admins list.
func (c *Console) RefreshAdmins(ctx context.Context) domain.Notice {
	return NoticeFor("Could not load admins", c.Admins.Refresh(ctx))
}

// RefreshPrivileges reloads the catalogue.
func (c *Console) RefreshPrivileges(ctx context.Context) domain.Notice {
	return NoticeFor("Could not load privileges", c.Privileges.Refresh(ctx))
}

type loginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// Login signs in and loads the admin panel.
func (c *Console) Login(ctx context.Context, username, password string) domain.Notice {
	form := loginForm{Username: strings.TrimSpace(username), Password: password}
	if err := check(form); err != nil {
		return NoticeFor("Sign in failed", err)
	}
	if _, err := c.Session.Login(ctx, c.api, form.Username, form.Password); err != nil {
		if client.IsStatus(err, http.StatusUnauthorized) || client.IsStatus(err, http.StatusForbidden) {
			return failure("Invalid credentials", "Wrong username or password")
		}
		return NoticeFor("Sign in failed", err)
	}
	notices := c.Enter(ctx, router.Admin)
	return followUp(success("Signed in", "Welcome, "+form.Username), notices...)
}

// Logout signs out. It cannot fail.
func (c *Console) Logout() domain.Notice {
	c.Session.Logout()
	return domain.Notice{Title: "Signed out", Severity: domain.SeverityInfo}
}

type statusForm struct {
	OrderID int64              `validate:"required"`
	Status  domain.OrderStatus `validate:"oneof=completed cancelled"`
}

// UpdateOrderStatus moves an order to completed or cancelled and reloads the
// orders list once the service has answered. The request is sent even when
// the order already has that status.
func (c *Console) UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) domain.Notice {
	const op = "Could not update status"
	if !c.Session.Authenticated() {
		return NoticeFor(op, lists.ErrNoSession)
	}
	if err := check(statusForm{OrderID: orderID, Status: status}); err != nil {
		return NoticeFor(op, err)
	}
	if err := c.api.UpdateOrderStatus(ctx, orderID, status); err != nil {
		c.log.Warn().Err(err).Int64("order_id", orderID).Msg("update order status")
		return NoticeFor(op, err)
	}
	c.log.Info().Int64("order_id", orderID).Str("status", string(status)).Msg("order status updated")
	n := success("Status updated", fmt.Sprintf("Order #%d is now %s", orderID, status))
	return followUp(n, c.RefreshOrders(ctx))
}

type privilegeForm struct {
	Name        string  `validate:"required"`
	Description string
	Price       float64 `validate:"min=0"`
	Features    []string
	Duration    string
}

// CreatePrivilege adds a privilege to the catalogue. The bool reports whether
// the form should be cleared.
func (c *Console) CreatePrivilege(ctx context.Context, draft domain.PrivilegeDraft) (domain.Notice, bool) {
	const op = "Could not create privilege"
	if !c.Session.Authenticated() {
		return NoticeFor(op, lists.ErrNoSession), false
	}
	form := privilegeForm{
		Name:        strings.TrimSpace(draft.Name),
		Description: strings.TrimSpace(draft.Description),
		Price:       draft.Price,
		Features:    domain.SplitFeatures(draft.Features),
		Duration:    strings.TrimSpace(draft.Duration),
	}
	if err := check(form); err != nil {
		return NoticeFor(op, err), false
	}
	_, err := c.api.CreatePrivilege(ctx, client.CreatePrivilegeRequest{
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		Features:    form.Features,
		Duration:    form.Duration,
	})
	if err != nil {
		c.log.Warn().Err(err).Str("name", form.Name).Msg("create privilege")
		return NoticeFor(op, err), false
	}
	c.log.Info().Str("name", form.Name).Msg("privilege created")
	return followUp(success("Privilege created", form.Name), c.RefreshPrivileges(ctx)), true
}

type adminForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// CreateAdmin adds an admin account. The bool reports whether the form should
// be cleared.
func (c *Console) CreateAdmin(ctx context.Context, draft domain.AdminDraft) (domain.Notice, bool) {
	const op = "Could not add admin"
	if !c.Session.Authenticated() {
		return NoticeFor(op, lists.ErrNoSession), false
	}
	form := adminForm{Username: strings.TrimSpace(draft.Username), Password: draft.Password}
	if err := check(form); err != nil {
		return NoticeFor(op, err), false
	}
	if _, err := c.api.CreateAdmin(ctx, client.CreateAdminRequest{Username: form.Username, Password: form.Password}); err != nil {
		c.log.Warn().Err(err).Str("username", form.Username).Msg("create admin")
		return NoticeFor(op, err), false
	}
	c.log.Info().Str("username", form.Username).Msg("admin created")
	return followUp(success("Admin added", form.Username), c.RefreshAdmins(ctx)), true
}

type orderForm struct {
	Privilege *domain.Privilege `validate:"required"`
	Nickname  string            `validate:"required"`
	Email     string
}

// SubmitOrder places a storefront order. No session is needed. The bool
// reports whether the draft should be discarded; on failure it is kept so the
// buyer can retry.
func (c *Console) SubmitOrder(ctx context.Context, draft domain.OrderDraft) (domain.Notice, bool) {
	const op = "Could not place the order"
	d := draft.Normalized()
	if err := check(orderForm{Privilege: d.Privilege, Nickname: d.Nickname, Email: d.Email}); err != nil {
		return NoticeFor(op, err), false
	}
	id, err := c.api.SubmitOrder(ctx, client.SubmitOrderRequest{
		PrivilegeID: d.Privilege.ID,
		Nickname:    d.Nickname,
		Email:       d.Email,
	})
	if err != nil {
		c.log.Warn().Err(err).Int64("privilege_id", d.Privilege.ID).Msg("submit order")
		return NoticeFor(op, err), false
	}
	c.log.Info().Int64("order_id", id).Str("nickname", d.Nickname).Msg("order placed")
	msg := "Your order is accepted. The privilege will be issued shortly"
	if id > 0 {
		msg = fmt.Sprintf("Order #%d is accepted. The privilege will be issued shortly", id)
	}
	return success("Order placed", msg), true
}

// followUp keeps n as the headline and appends the failures of the refreshes
// that followed it.
func followUp(n domain.Notice, after ...domain.Notice) domain.Notice {
	for _, a := range after {
		if a.IsZero() {
			continue
		}
		n.Message += fmt.Sprintf(" (%s: %s)", strings.ToLower(a.Title), a.Message)
	}
	return n
}
