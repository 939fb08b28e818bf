package subscription

import "context"

// PlanRepository defines persistence operations for plans
type PlanRepository interface {
	// Create inserts the plan and its feature rows. A name clash returns AlreadyExists.
	Create(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, id uint) (*Plan, error)
	GetByUID(ctx context.Context, uid string) (*Plan, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]*Plan, error)
	// Update writes the plan row and replaces its feature rows. Run it inside
	// a transaction so readers never see a partial feature set.
	Update(ctx context.Context, plan *Plan) error
	// SoftDelete hides the plan from every lookup and listing
	SoftDelete(ctx context.Context, id uint) error
}

// FeatureRepository defines persistence operations for catalog features
type FeatureRepository interface {
	// CreateIfMissing inserts the feature unless its code exists
	CreateIfMissing(ctx context.Context, f *Feature) (bool, error)
	List(ctx context.Context) ([]*Feature, error)
	GetByCodes(ctx context.Context, codes []string) ([]*Feature, error)
}

// EnrollmentRepository defines persistence operations for enrollments
type EnrollmentRepository interface {
	// Get returns the enrollment of customer on plan, nil when absent
	Get(ctx context.Context, customerID, planID uint) (*Enrollment, error)
	// Save inserts a new enrollment or updates the expiry of an existing one
	Save(ctx context.Context, e *Enrollment) error
}
