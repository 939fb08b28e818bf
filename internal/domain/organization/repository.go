package organization

import "context"

// Repository defines persistence operations for organizations
type Repository interface {
	// Create inserts the organization. A name clash, including soft-deleted
	// organizations, returns AlreadyExists located at org_name.
	Create(ctx context.Context, org *Organization) error
	// GetByUID returns nil, nil for a missing or soft-deleted organization
	GetByUID(ctx context.Context, uid string) (*Organization, error)
	GetByID(ctx context.Context, id uint) (*Organization, error)
	// ExistsByNameKey also considers soft-deleted organizations
	ExistsByNameKey(ctx context.Context, nameKey string) (bool, error)
	// CountByAdmin counts the non-deleted organizations administered by adminID
	CountByAdmin(ctx context.Context, adminID uint) (int64, error)
	// ListByCustomer returns the organizations the customer administers or belongs to
	ListByCustomer(ctx context.Context, customerID uint) ([]*Organization, error)
	SoftDelete(ctx context.Context, id uint) error
}

// MembershipRepository defines persistence operations for memberships
type MembershipRepository interface {
	// Create inserts the membership. An existing (organization, customer) row,
	// even a soft-deleted one, returns AlreadyExists.
	Create(ctx context.Context, m *Membership) error
	// Get returns the membership of customer in the organization. Soft-deleted
	// rows are returned only when includeDeleted is set.
	Get(ctx context.Context, organizationID, customerID uint, includeDeleted bool) (*Membership, error)
	// GetByUID looks the membership up within one organization only
	GetByUID(ctx context.Context, organizationID uint, uid string) (*Membership, error)
	Update(ctx context.Context, m *Membership) error
	SoftDelete(ctx context.Context, id uint) error
	// CountActive counts active, non-deleted memberships of the organization
	CountActive(ctx context.Context, organizationID uint) (int64, error)
	List(ctx context.Context, organizationID uint, filter ListFilter) ([]*Membership, int64, error)
}

// ListFilter represents filtering and pagination options for membership lists
type ListFilter struct {
	Page       int
	PageSize   int
	ActiveOnly bool
}
