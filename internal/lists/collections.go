package lists

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/anarchistempire/empire/pkg/domain"
)

// Source is the slice of the API client the synchronizers read from.
type Source interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	ListAdmins(ctx context.Context) ([]domain.Admin, error)
	ListPrivileges(ctx context.Context) ([]domain.Privilege, error)
}

// NewOrders returns the orders synchronizer. It needs a session.
func NewOrders(src Source, gate Gate, log zerolog.Logger) *List[domain.Order] {
	return New[domain.Order]("orders", src.ListOrders, gate, log)
}

// NewAdmins returns the admins synchronizer. It needs a session.
func NewAdmins(src Source, gate Gate, log zerolog.Logger) *List[domain.Admin] {
	return New[domain.Admin]("admins", src.ListAdmins, gate, log)
}

// NewPrivileges returns the public catalogue synchronizer.
func NewPrivileges(src Source, log zerolog.Logger) *List[domain.Privilege] {
	return New[domain.Privilege]("privileges", src.ListPrivileges, nil, log)
}
