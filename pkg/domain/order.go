package domain

import "strings"

// OrderStatus is the lifecycle state of a purchase.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known order states.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// Settable reports whether an admin may move an order into s.
// Orders are created pending by the storefront; the console only closes them.
func (s OrderStatus) Settable() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// Order is a storefront purchase as listed by the admin console.
// PrivilegeName and Price are denormalized by the service; the console never
// joins orders back to privileges.
type Order struct {
	ID            int64       `json:"id"`
	Nickname      string      `json:"nickname"`
	Email         string      `json:"email,omitempty"`
	Status        OrderStatus `json:"status"`
	CreatedAt     Timestamp   `json:"created_at"`
	PrivilegeName string      `json:"privilege_name"`
	Price         float64     `json:"price"`
}

// OrderDraft is the pending purchase captured by the storefront dialog.
// It lives only while the dialog is open and is never persisted.
type OrderDraft struct {
	Privilege *Privilege
	Nickname  string
	Email     string
}

// Normalized returns a copy with nickname and email trimmed.
func (d OrderDraft) Normalized() OrderDraft {
	d.Nickname = strings.TrimSpace(d.Nickname)
	d.Email = strings.TrimSpace(d.Email)
	return d
}

// Open reports whether a privilege has been picked for purchase.
func (d OrderDraft) Open() bool {
	return d.Privilege != nil
}
