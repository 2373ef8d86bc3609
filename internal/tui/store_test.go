package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/anarchistempire/empire/pkg/client"
	"github.com/anarchistempire/empire/pkg/domain"
)

func testPrivileges() []domain.Privilege {
	return []domain.Privilege{
		{ID: 1, Name: "VIP", Description: "Starter kit", Price: 199, Features: []string{"/kit vip", "Prefix"}, Duration: "30 days"},
		{ID: 2, Name: "Premium", Price: 399, Features: []string{"/fly"}, Duration: "30 days"},
	}
}

func newTestStore() storeModel {
	m := newStoreModel(nil)
	m.width = 100
	m.height = 30
	m, _ = m.Update(snapshotMsg{privileges: testPrivileges(), privilegesLoaded: true})
	return m
}

func storeKey(m storeModel, key tea.KeyMsg) storeModel {
	m, _ = m.Update(key)
	return m
}

func storeType(m storeModel, s string) storeModel {
	for _, r := range s {
		m = storeKey(m, keyRunes(string(r)))
	}
	return m
}

func TestStoreLoadingAndEmpty(t *testing.T) {
	m := newStoreModel(nil)
	if !strings.Contains(m.View(), "loading...") {
		t.Errorf("unloaded store should say loading: %q", m.View())
	}

	m, _ = m.Update(snapshotMsg{privilegesLoaded: true})
	if !strings.Contains(m.View(), "no privileges on sale yet") {
		t.Errorf("empty catalogue should say so: %q", m.View())
	}
}

func TestStoreRendersCards(t *testing.T) {
	m := newTestStore()
	view := m.View()
	for _, want := range []string{"VIP", "Premium", "199₽", "399₽", "/kit vip", "30 days", "Starter kit"} {
		if !strings.Contains(view, want) {
			t.Errorf("store view missing %q", want)
		}
	}
	if got := strings.Count(view, "[ enter buy ]"); got != 1 {
		t.Errorf("exactly one card should be selected, got %d", got)
	}
}

func TestStoreCursorBounds(t *testing.T) {
	m := newTestStore()

	m = storeKey(m, keyRunes("k"))
	if m.cursor != 0 {
		t.Errorf("k at top: cursor = %d, want 0", m.cursor)
	}
	m = storeKey(m, keyRunes("j"))
	m = storeKey(m, keyRunes("j"))
	if m.cursor != 1 {
		t.Errorf("j past the end: cursor = %d, want 1", m.cursor)
	}
	m = storeKey(m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.cursor != 0 {
		t.Errorf("left: cursor = %d, want 0", m.cursor)
	}
}

func TestStoreCursorClampedWhenCatalogueShrinks(t *testing.T) {
	m := newTestStore()
	m = storeKey(m, keyRunes("j"))
	m, _ = m.Update(snapshotMsg{privileges: testPrivileges()[:1], privilegesLoaded: true})
	if m.cursor != 0 {
		t.Errorf("cursor = %d after shrink, want 0", m.cursor)
	}
}

func TestStoreEnterOpensCheckout(t *testing.T) {
	m := newTestStore()
	m = storeKey(m, keyRunes("j"))
	m = storeKey(m, tea.KeyMsg{Type: tea.KeyEnter})

	if !m.checkoutOpen() {
		t.Fatal("enter should open the checkout")
	}
	if m.draft.Privilege == nil || m.draft.Privilege.Name != "Premium" {
		t.Fatalf("checkout should hold the selected privilege, got %+v", m.draft.Privilege)
	}
	view := m.View()
	if !strings.Contains(view, "Checkout") || !strings.Contains(view, "Premium - 399₽") {
		t.Errorf("checkout view = %q", view)
	}

	// The draft holds a copy; a refreshed catalogue does not change it.
	m, _ = m.Update(snapshotMsg{privileges: []domain.Privilege{{ID: 2, Name: "Renamed"}}, privilegesLoaded: true})
	if m.draft.Privilege.Name != "Premium" {
		t.Error("refresh changed the privilege being bought")
	}
}

func TestStoreCheckoutTyping(t *testing.T) {
	m := newTestStore()
	m = storeKey(m, keyRunes("b"))

	m = storeType(m, "Stevee")
	m = storeKey(m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = storeKey(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.focus != checkoutEmail {
		t.Fatalf("enter on nickname should move to email, focus = %d", m.focus)
	}
	m = storeType(m, "s@e.ru")

	if m.draft.Nickname != "Steve" {
		t.Errorf("nickname = %q, want Steve", m.draft.Nickname)
	}
	if m.draft.Email != "s@e.ru" {
		t.Errorf("email = %q, want s@e.ru", m.draft.Email)
	}
}

func TestStoreEscClosesCheckout(t *testing.T) {
	m := newTestStore()
	m = storeKey(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = storeType(m, "Steve")
	m = storeKey(m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.checkoutOpen() {
		t.Error("esc should close the checkout")
	}
	if m.draft.Nickname != "" {
		t.Error("esc should drop the draft")
	}
}

func TestStoreSubmitPlacesOrder(t *testing.T) {
	c, svc := newTestConsole(t, "")
	m := newTestStore()
	m.console = c

	m = storeKey(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = storeType(m, "  Steve ")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("ctrl+s should submit")
	}
	if !m.submitting || !strings.Contains(m.View(), "processing...") {
		t.Error("checkout should show it is processing")
	}

	// Keys are ignored while the order is in flight.
	m = storeKey(m, keyRunes("x"))
	if m.draft.Nickname != "  Steve " {
		t.Errorf("typing while submitting changed the draft: %q", m.draft.Nickname)
	}

	msg, ok := cmd().(opDoneMsg)
	if !ok {
		t.Fatalf("expected opDoneMsg, got %T", cmd())
	}
	if msg.notice.Failed() || !msg.done {
		t.Fatalf("order should be placed, got %+v", msg)
	}
	if !strings.Contains(msg.notice.Message, "Order #7") {
		t.Errorf("notice should carry the order id: %q", msg.notice.Message)
	}
	if svc.seen(client.ActionOrder) != 1 {
		t.Error("expected exactly one order request")
	}

	m, _ = m.Update(msg)
	if m.checkoutOpen() || m.submitting {
		t.Error("a placed order should close the checkout")
	}
}

func TestStoreSubmitBlankNicknameKeepsDraft(t *testing.T) {
	c, svc := newTestConsole(t, "")
	m := newTestStore()
	m.console = c

	m = storeKey(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = storeType(m, "   ")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	msg := cmd().(opDoneMsg)

	if !msg.notice.Failed() || msg.done {
		t.Fatalf("blank nickname should be refused, got %+v", msg)
	}
	if svc.seen(client.ActionOrder) != 0 {
		t.Error("a refused form must not reach the service")
	}

	m, _ = m.Update(msg)
	if !m.checkoutOpen() || m.submitting {
		t.Error("a refused order should keep the checkout open for a retry")
	}
}

func TestStoreIgnoresOtherOperations(t *testing.T) {
	m := newTestStore()
	m = storeKey(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = storeType(m, "Steve")

	m, _ = m.Update(opDoneMsg{op: opCreatePrivilege, done: true})
	if !m.checkoutOpen() {
		t.Error("another form finishing should not close the checkout")
	}
}

func TestStoreRefreshKey(t *testing.T) {
	c, svc := newTestConsole(t, "")
	m := newTestStore()
	m.console = c

	_, cmd := m.Update(keyRunes("r"))
	if cmd == nil {
		t.Fatal("r should reload the catalogue")
	}
	msg := cmd().(opDoneMsg)
	if msg.op != opRefresh || !msg.notice.IsZero() {
		t.Errorf("reload = %+v, want a quiet refresh", msg)
	}
	if svc.seen(client.ActionPrivileges) != 1 {
		t.Error("expected one privileges request")
	}
}
