package tenant

import (
	"context"
	"time"

	"github.com/orris-inc/warden/internal/domain/organization"
	"github.com/orris-inc/warden/internal/domain/permission"
	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/domain/subscription"
	"github.com/orris-inc/warden/internal/shared/errors"
)

// memOrgs is an in-memory organizations table
type memOrgs struct {
	rows []*organization.Organization
}

func (m *memOrgs) Create(ctx context.Context, org *organization.Organization) error {
	for _, r := range m.rows {
		if r.NameKey() == org.NameKey() {
			return errors.NewAlreadyExistsError("an organization with this name already exists").Loc("org_name", org.Name(), "unique")
		}
	}
	if err := org.SetID(uint(len(m.rows) + 1)); err != nil {
		return err
	}
	m.rows = append(m.rows, org)
	return nil
}

func (m *memOrgs) GetByUID(ctx context.Context, uid string) (*organization.Organization, error) {
	for _, r := range m.rows {
		if r.UID() == uid && !r.IsDeleted() {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memOrgs) GetByID(ctx context.Context, id uint) (*organization.Organization, error) {
	for _, r := range m.rows {
		if r.ID() == id && !r.IsDeleted() {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memOrgs) ExistsByNameKey(ctx context.Context, nameKey string) (bool, error) {
	for _, r := range m.rows {
		if r.NameKey() == nameKey {
			return true, nil
		}
	}
	return false, nil
}

func (m *memOrgs) CountByAdmin(ctx context.Context, adminID uint) (int64, error) {
	var n int64
	for _, r := range m.rows {
		if r.AdminID() == adminID && !r.IsDeleted() {
			n++
		}
	}
	return n, nil
}

func (m *memOrgs) ListByCustomer(ctx context.Context, customerID uint) ([]*organization.Organization, error) {
	var out []*organization.Organization
	for _, r := range m.rows {
		if r.AdminID() == customerID && !r.IsDeleted() {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memOrgs) SoftDelete(ctx context.Context, id uint) error {
	for i, r := range m.rows {
		if r.ID() == id {
			d := r.Data()
			at := time.Now()
			d.DeletedAt = &at
			org, err := organization.ReconstructOrganization(d)
			if err != nil {
				return err
			}
			m.rows[i] = org
		}
	}
	return nil
}

// memMemberships is an in-memory memberships table unique on (organization, customer)
type memMemberships struct {
	rows []*organization.Membership
}

func (m *memMemberships) Create(ctx context.Context, mb *organization.Membership) error {
	for _, r := range m.rows {
		if r.OrganizationID() == mb.OrganizationID() && r.CustomerID() == mb.CustomerID() {
			return errors.NewAlreadyExistsError("already a member").Loc("orguid", "", "already_member")
		}
	}
	if err := mb.SetID(uint(len(m.rows) + 1)); err != nil {
		return err
	}
	m.rows = append(m.rows, mb)
	return nil
}

func (m *memMemberships) Get(ctx context.Context, organizationID, customerID uint, includeDeleted bool) (*organization.Membership, error) {
	for _, r := range m.rows {
		if r.OrganizationID() == organizationID && r.CustomerID() == customerID && (includeDeleted || !r.IsDeleted()) {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memMemberships) GetByUID(ctx context.Context, organizationID uint, uid string) (*organization.Membership, error) {
	for _, r := range m.rows {
		if r.OrganizationID() == organizationID && r.UID() == uid && !r.IsDeleted() {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memMemberships) Update(ctx context.Context, mb *organization.Membership) error {
	return nil
}

func (m *memMemberships) SoftDelete(ctx context.Context, id uint) error {
	for i, r := range m.rows {
		if r.ID() == id {
			at := time.Now()
			deleted, err := organization.ReconstructMembership(r.ID(), r.UID(), r.OrganizationID(), r.CustomerID(), r.RoleID(), r.IsActive(), &at, r.CreatedAt(), r.UpdatedAt())
			if err != nil {
				return err
			}
			m.rows[i] = deleted
		}
	}
	return nil
}

func (m *memMemberships) CountActive(ctx context.Context, organizationID uint) (int64, error) {
	var n int64
	for _, r := range m.rows {
		if r.OrganizationID() == organizationID && r.HoldsQuotaSlot() {
			n++
		}
	}
	return n, nil
}

func (m *memMemberships) List(ctx context.Context, organizationID uint, filter organization.ListFilter) ([]*organization.Membership, int64, error) {
	var out []*organization.Membership
	for _, r := range m.rows {
		if r.OrganizationID() != organizationID || r.IsDeleted() {
			continue
		}
		if filter.ActiveOnly && !r.IsActive() {
			continue
		}
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

type mockCustomerRepository struct {
	principal.CustomerRepository
	byID map[uint]*principal.Customer
}

func (m *mockCustomerRepository) GetByID(ctx context.Context, id uint) (*principal.Customer, error) {
	return m.byID[id], nil
}

// memRoles is an in-memory roles table
type memRoles struct {
	permission.RoleRepository
	rows []*permission.Role
}

func (m *memRoles) Create(ctx context.Context, role *permission.Role) error {
	if err := role.SetID(uint(len(m.rows) + 100)); err != nil {
		return err
	}
	m.rows = append(m.rows, role)
	return nil
}

func (m *memRoles) GetByUID(ctx context.Context, uid string) (*permission.Role, error) {
	for _, r := range m.rows {
		if r.UID() == uid {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memRoles) GetByName(ctx context.Context, scope permission.Scope, name string) (*permission.Role, error) {
	for _, r := range m.rows {
		if r.Scope() == scope && r.Name() == name {
			return r, nil
		}
	}
	return nil, nil
}

type mockPermissionRepository struct {
	permission.PermissionRepository
	roleGrants   map[uint][]uint
	memberGrants map[uint][]uint
	memberCodes  map[uint][]string
}

func newMockPermissionRepository() *mockPermissionRepository {
	return &mockPermissionRepository{
		roleGrants:   make(map[uint][]uint),
		memberGrants: make(map[uint][]uint),
		memberCodes:  make(map[uint][]string),
	}
}

func (m *mockPermissionRepository) ReplaceRolePermissions(ctx context.Context, roleID uint, ids []uint) error {
	m.roleGrants[roleID] = ids
	return nil
}

func (m *mockPermissionRepository) ReplaceMemberPermissions(ctx context.Context, membershipID uint, ids []uint) error {
	m.memberGrants[membershipID] = ids
	return nil
}

func (m *mockPermissionRepository) MemberCodenames(ctx context.Context, membershipID uint) ([]string, error) {
	return m.memberCodes[membershipID], nil
}

type mockRoleAdmin struct {
	RolePermissionsFunc        func(ctx context.Context, roleID uint) (permission.Set, error)
	CreateRoleFunc             func(ctx context.Context, creator principal.Principal, scope permission.Scope, name string, codenames []string) (*permission.Role, error)
	ListRolesFunc              func(ctx context.Context, scope permission.Scope) ([]*permission.Role, error)
	ReplaceRolePermissionsFunc func(ctx context.Context, role *permission.Role, heldRoleID *uint, codenames []string) error
}

func (m *mockRoleAdmin) RolePermissions(ctx context.Context, roleID uint) (permission.Set, error) {
	if m.RolePermissionsFunc != nil {
		return m.RolePermissionsFunc(ctx, roleID)
	}
	return permission.Set{}, nil
}

func (m *mockRoleAdmin) CreateRole(ctx context.Context, creator principal.Principal, scope permission.Scope, name string, codenames []string) (*permission.Role, error) {
	if m.CreateRoleFunc != nil {
		return m.CreateRoleFunc(ctx, creator, scope, name, codenames)
	}
	return nil, nil
}

func (m *mockRoleAdmin) ListRoles(ctx context.Context, scope permission.Scope) ([]*permission.Role, error) {
	if m.ListRolesFunc != nil {
		return m.ListRolesFunc(ctx, scope)
	}
	return nil, nil
}

func (m *mockRoleAdmin) ListPermissions(ctx context.Context, scope permission.ScopeType) ([]*permission.Permission, error) {
	return nil, nil
}

func (m *mockRoleAdmin) ReplaceRolePermissions(ctx context.Context, role *permission.Role, heldRoleID *uint, codenames []string) error {
	if m.ReplaceRolePermissionsFunc != nil {
		return m.ReplaceRolePermissionsFunc(ctx, role, heldRoleID, codenames)
	}
	return nil
}

// PermissionIDs numbers codenames from 1 in the order given
func (m *mockRoleAdmin) PermissionIDs(ctx context.Context, scope permission.ScopeType, codenames []string) ([]uint, error) {
	ids := make([]uint, 0, len(codenames))
	for i := range codenames {
		ids = append(ids, uint(i+1))
	}
	return ids, nil
}

type slotKey struct {
	feature string
	scope   string
	ref     string
}

// mockGate grants every feature with the quantities in quota and records slots
type mockGate struct {
	quota         map[string]int64
	enrollmentErr error
	slots         map[slotKey]struct{}
}

func newMockGate(quota map[string]int64) *mockGate {
	return &mockGate{quota: quota, slots: make(map[slotKey]struct{})}
}

func (m *mockGate) RequireEnrollment(ctx context.Context, c *principal.Customer) (*subscription.Plan, *subscription.Enrollment, error) {
	return nil, nil, m.enrollmentErr
}

func (m *mockGate) CheckQuota(ctx context.Context, c *principal.Customer, featureCode string, live int64) (*subscription.PlanFeature, error) {
	if m.enrollmentErr != nil {
		return nil, m.enrollmentErr
	}
	qty, ok := m.quota[featureCode]
	if !ok {
		return nil, errors.NewFeatureUnavailableError("feature unavailable")
	}
	if live >= qty {
		return nil, errors.NewQuotaExceededError("quota exceeded")
	}
	return &subscription.PlanFeature{FeatureCode: featureCode, Quantity: qty}, nil
}

func (m *mockGate) Reserve(ctx context.Context, c *principal.Customer, feature *subscription.PlanFeature, scope, resourceRef string) error {
	m.slots[slotKey{feature.FeatureCode, scope, resourceRef}] = struct{}{}
	return nil
}

func (m *mockGate) Release(ctx context.Context, featureCode, scope, resourceRef string) error {
	delete(m.slots, slotKey{featureCode, scope, resourceRef})
	return nil
}

func (m *mockGate) holds(feature, scope, ref string) bool {
	_, ok := m.slots[slotKey{feature, scope, ref}]
	return ok
}
