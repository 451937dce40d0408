package policy

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/gopos-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyGrants(t *testing.T) {
	tests := []struct {
		role     enum.Role
		action   Action
		resource Resource
		want     bool
	}{
		{enum.RoleSuperAdmin, ActionCreate, ResourceClients, true},
		{enum.RoleSuperAdmin, ActionDelete, ResourceCatalog, true},
		{enum.RoleClient, ActionCreate, ResourceClients, false},
		{enum.RoleClient, ActionRead, ResourceClients, false},
		{enum.RoleClient, ActionDelete, ResourceEmployees, true},
		{enum.RoleClient, ActionRefund, ResourceOrders, true},
		{enum.RoleStaff, ActionRead, ResourceCatalog, true},
		{enum.RoleStaff, ActionCreate, ResourceCatalog, false},
		{enum.RoleStaff, ActionUpdate, ResourceCatalog, false},
		{enum.RoleStaff, ActionCreate, ResourceOrders, true},
		{enum.RoleStaff, ActionReturn, ResourceOrders, true},
		{enum.RoleStaff, ActionRead, ResourceReports, true},
		{enum.RoleStaff, ActionRead, ResourceEmployees, false},
		{enum.RoleStaff, ActionDelete, ResourceOrders, false},
		{enum.Role("guest"), ActionRead, ResourceCatalog, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.action)+"/"+string(tt.resource), func(t *testing.T) {
			p := For(Identity{UserID: uuid.New(), Role: tt.role})
			assert.Equal(t, tt.want, p.Can(tt.action, tt.resource))
		})
	}
}

func TestNilPolicyDeniesEverything(t *testing.T) {
	var p *Policy
	assert.False(t, p.Can(ActionRead, ResourceCatalog))
}

func TestPolicyContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	tenant := uuid.New()
	p := For(Identity{UserID: uuid.New(), TenantID: tenant, Role: enum.RoleStaff})
	got, ok := FromContext(WithPolicy(context.Background(), p))
	require.True(t, ok)
	assert.Equal(t, tenant, got.TenantID())
}
