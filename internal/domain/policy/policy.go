// Package policy resolves what an authenticated caller may do. A Policy is
// built once per request from the token identity and answers Can(action,
// resource); the tenant partition it carries is the only one the caller's
// repositories will see.
package policy

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/gopos-api/internal/domain/enum"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionReturn Action = "return"
	ActionRefund Action = "refund"
	ActionPrint  Action = "print"
)

type Resource string

const (
	ResourceCatalog   Resource = "catalog"
	ResourceOrders    Resource = "orders"
	ResourceReports   Resource = "reports"
	ResourceEmployees Resource = "employees"
	ResourceClients   Resource = "clients"
	ResourcePrinter   Resource = "printer"
)

var crud = []Action{ActionRead, ActionCreate, ActionUpdate, ActionDelete}

var orderActions = []Action{ActionRead, ActionCreate, ActionReturn, ActionRefund, ActionPrint}

var grants = map[enum.Role]map[Resource][]Action{
	enum.RoleSuperAdmin: {
		ResourceCatalog:   crud,
		ResourceOrders:    orderActions,
		ResourceReports:   {ActionRead},
		ResourceEmployees: crud,
		ResourceClients:   crud,
		ResourcePrinter:   {ActionRead},
	},
	enum.RoleClient: {
		ResourceCatalog:   crud,
		ResourceOrders:    orderActions,
		ResourceReports:   {ActionRead},
		ResourceEmployees: crud,
		ResourcePrinter:   {ActionRead},
	},
	enum.RoleStaff: {
		ResourceCatalog: {ActionRead},
		ResourceOrders:  orderActions,
		ResourceReports: {ActionRead},
		ResourcePrinter: {ActionRead},
	},
}

// Identity is the authenticated caller.
type Identity struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	Role     enum.Role
	Name     string
	Phone    string
}

// Policy answers authorization questions for one identity.
type Policy struct {
	identity Identity
	allowed  map[Resource]map[Action]bool
}

// For resolves the policy of an identity. Unknown roles get no grants.
func For(id Identity) *Policy {
	allowed := make(map[Resource]map[Action]bool)
	for res, actions := range grants[id.Role] {
		set := make(map[Action]bool, len(actions))
		for _, a := range actions {
			set[a] = true
		}
		allowed[res] = set
	}
	return &Policy{identity: id, allowed: allowed}
}

// Can reports whether the caller may perform action on resource.
func (p *Policy) Can(action Action, resource Resource) bool {
	if p == nil {
		return false
	}
	return p.allowed[resource][action]
}

func (p *Policy) Identity() Identity {
	return p.identity
}

func (p *Policy) TenantID() uuid.UUID {
	return p.identity.TenantID
}

func (p *Policy) UserID() uuid.UUID {
	return p.identity.UserID
}

func (p *Policy) Role() enum.Role {
	return p.identity.Role
}

type ctxKey struct{}

// WithPolicy stores p in ctx.
func WithPolicy(ctx context.Context, p *Policy) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// FromContext returns the policy stored by WithPolicy, if any.
func FromContext(ctx context.Context) (*Policy, bool) {
	p, ok := ctx.Value(ctxKey{}).(*Policy)
	return p, ok && p != nil
}
