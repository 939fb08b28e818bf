package principal

import "context"

// OperatorRepository defines persistence operations for operators.
// Lookups return nil, nil when no row matches.
type OperatorRepository interface {
	// Create inserts the operator. A uniqueness clash returns AlreadyExists
	// located at the clashing field.
	Create(ctx context.Context, o *Operator) error
	GetByID(ctx context.Context, id uint) (*Operator, error)
	GetByUUID(ctx context.Context, uuid string) (*Operator, error)
	// GetByLogin matches the canonical username or email
	GetByLogin(ctx context.Context, usernameOrEmail string) (*Operator, error)
	GetByVerificationToken(ctx context.Context, token string) (*Operator, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, o *Operator) error
	List(ctx context.Context, filter ListFilter) ([]*Operator, int64, error)
	// HasSuperuser reports whether any operator holds a superuser role
	HasSuperuser(ctx context.Context) (bool, error)
}

// CustomerRepository defines persistence operations for customers
type CustomerRepository interface {
	Create(ctx context.Context, c *Customer) error
	GetByID(ctx context.Context, id uint) (*Customer, error)
	GetByUUID(ctx context.Context, uuid string) (*Customer, error)
	GetByLogin(ctx context.Context, usernameOrEmail string) (*Customer, error)
	GetByVerificationToken(ctx context.Context, token string) (*Customer, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, c *Customer) error
	List(ctx context.Context, filter ListFilter) ([]*Customer, int64, error)
}

// ListFilter represents filtering and pagination options for principal lists
type ListFilter struct {
	Page     int
	PageSize int
	Search   string
	IsActive *bool
}
