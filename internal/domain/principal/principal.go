// Package principal models the two classes of authenticated accounts:
// operators (platform staff) and customers (tenant-facing users).
package principal

import (
	"fmt"
	"strings"
	"time"

	"github.com/orris-inc/warden/internal/shared/id"
	"github.com/orris-inc/warden/internal/shared/utils"
)

// Kind distinguishes the principal classes. Tokens, roles and lookups are
// always keyed by kind plus id, never by id alone.
type Kind string

const (
	KindOperator Kind = "operator"
	KindCustomer Kind = "customer"
)

// IsValid checks if the kind is known
func (k Kind) IsValid() bool {
	return k == KindOperator || k == KindCustomer
}

func (k Kind) String() string {
	return string(k)
}

// Principal is the read view shared by operators and customers
type Principal interface {
	ID() uint
	UUID() string
	Kind() Kind
	Username() string
	Email() string
	IsActive() bool
	IsDeleted() bool
	RoleID() *uint
	EmailVerifiedAt() *time.Time
	PasswordHash() string
}

// AccountData carries persisted account state into Reconstruct functions
type AccountData struct {
	ID                uint
	UUID              string
	Username          string
	Email             string
	FirstName         string
	LastName          string
	PasswordHash      string
	RoleID            *uint
	IsActive          bool
	EmailVerifiedAt   *time.Time
	VerificationToken *string
	DeletedAt         *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewAccount describes a principal about to be registered
type NewAccount struct {
	Username          string
	Email             string
	FirstName         string
	LastName          string
	PasswordHash      string
	VerificationToken string
}

type account struct {
	id                uint
	uuid              string
	username          string
	email             string
	firstName         string
	lastName          string
	passwordHash      string
	roleID            *uint
	isActive          bool
	emailVerifiedAt   *time.Time
	verificationToken *string
	deletedAt         *time.Time
	createdAt         time.Time
	updatedAt         time.Time
}

func newAccount(a NewAccount, now time.Time) (account, error) {
	username := utils.CanonicalIdentifier(a.Username)
	email := utils.CanonicalIdentifier(a.Email)
	if username == "" {
		return account{}, fmt.Errorf("username is required")
	}
	if !strings.Contains(email, "@") {
		return account{}, fmt.Errorf("invalid email: %s", a.Email)
	}
	if a.PasswordHash == "" {
		return account{}, fmt.Errorf("password hash is required")
	}

	acc := account{
		uuid:         id.NewPrincipalUUID(),
		username:     username,
		email:        email,
		firstName:    utils.DisplayName(a.FirstName),
		lastName:     utils.DisplayName(a.LastName),
		passwordHash: a.PasswordHash,
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}
	if a.VerificationToken != "" {
		t := a.VerificationToken
		acc.verificationToken = &t
	}
	return acc, nil
}

func reconstructAccount(d AccountData) (account, error) {
	if d.ID == 0 {
		return account{}, fmt.Errorf("principal ID cannot be zero")
	}
	if d.UUID == "" {
		return account{}, fmt.Errorf("principal UUID is required")
	}
	return account{
		id:                d.ID,
		uuid:              d.UUID,
		username:          d.Username,
		email:             d.Email,
		firstName:         d.FirstName,
		lastName:          d.LastName,
		passwordHash:      d.PasswordHash,
		roleID:            d.RoleID,
		isActive:          d.IsActive,
		emailVerifiedAt:   d.EmailVerifiedAt,
		verificationToken: d.VerificationToken,
		deletedAt:         d.DeletedAt,
		createdAt:         d.CreatedAt,
		updatedAt:         d.UpdatedAt,
	}, nil
}

func (a *account) ID() uint                    { return a.id }
func (a *account) UUID() string                { return a.uuid }
func (a *account) Username() string            { return a.username }
func (a *account) Email() string               { return a.email }
func (a *account) FirstName() string           { return a.firstName }
func (a *account) LastName() string            { return a.lastName }
func (a *account) PasswordHash() string        { return a.passwordHash }
func (a *account) RoleID() *uint               { return a.roleID }
func (a *account) IsActive() bool              { return a.isActive }
func (a *account) IsDeleted() bool             { return a.deletedAt != nil }
func (a *account) EmailVerifiedAt() *time.Time { return a.emailVerifiedAt }
func (a *account) VerificationToken() *string  { return a.verificationToken }
func (a *account) DeletedAt() *time.Time       { return a.deletedAt }
func (a *account) CreatedAt() time.Time        { return a.createdAt }
func (a *account) UpdatedAt() time.Time        { return a.updatedAt }
func (a *account) IsEmailVerified() bool       { return a.emailVerifiedAt != nil }

// Data exports the account state for persistence
func (a *account) Data() AccountData {
	return AccountData{
		ID:                a.id,
		UUID:              a.uuid,
		Username:          a.username,
		Email:             a.email,
		FirstName:         a.firstName,
		LastName:          a.lastName,
		PasswordHash:      a.passwordHash,
		RoleID:            a.roleID,
		IsActive:          a.isActive,
		EmailVerifiedAt:   a.emailVerifiedAt,
		VerificationToken: a.verificationToken,
		DeletedAt:         a.deletedAt,
		CreatedAt:         a.createdAt,
		UpdatedAt:         a.updatedAt,
	}
}

// SetID sets the principal ID (only for persistence layer use)
func (a *account) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("principal ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("principal ID cannot be zero")
	}
	a.id = id
	return nil
}

// CanAuthenticate reports whether the account may log in
func (a *account) CanAuthenticate() bool {
	return a.isActive && !a.IsDeleted() && a.IsEmailVerified()
}

// SetRole replaces the platform role. nil removes it.
func (a *account) SetRole(roleID *uint, now time.Time) {
	a.roleID = roleID
	a.updatedAt = now
}

// SetActive enables or suspends the account
func (a *account) SetActive(active bool, now time.Time) {
	a.isActive = active
	a.updatedAt = now
}

// SetPasswordHash replaces the stored password hash
func (a *account) SetPasswordHash(hash string, now time.Time) {
	a.passwordHash = hash
	a.updatedAt = now
}

// SetVerificationToken stores a single-use token for a later confirmation
func (a *account) SetVerificationToken(token string, now time.Time) {
	a.verificationToken = &token
	a.updatedAt = now
}

// ClearVerificationToken consumes the outstanding token
func (a *account) ClearVerificationToken(now time.Time) {
	a.verificationToken = nil
	a.updatedAt = now
}

// MarkEmailVerified stamps the verification time and consumes the token
func (a *account) MarkEmailVerified(now time.Time) {
	a.emailVerifiedAt = &now
	a.verificationToken = nil
	a.updatedAt = now
}

// Operator is a platform staff account
type Operator struct {
	account
}

// NewOperator creates an unverified, active operator
func NewOperator(a NewAccount, now time.Time) (*Operator, error) {
	acc, err := newAccount(a, now)
	if err != nil {
		return nil, err
	}
	return &Operator{account: acc}, nil
}

// ReconstructOperator reconstructs an operator from persistence
func ReconstructOperator(d AccountData) (*Operator, error) {
	acc, err := reconstructAccount(d)
	if err != nil {
		return nil, err
	}
	return &Operator{account: acc}, nil
}

func (o *Operator) Kind() Kind { return KindOperator }

// Customer is a tenant-facing account
type Customer struct {
	account
	activePlanID *uint
}

// NewCustomer creates an unverified, active customer without a plan
func NewCustomer(a NewAccount, now time.Time) (*Customer, error) {
	acc, err := newAccount(a, now)
	if err != nil {
		return nil, err
	}
	return &Customer{account: acc}, nil
}

// ReconstructCustomer reconstructs a customer from persistence
func ReconstructCustomer(d AccountData, activePlanID *uint) (*Customer, error) {
	acc, err := reconstructAccount(d)
	if err != nil {
		return nil, err
	}
	return &Customer{account: acc, activePlanID: activePlanID}, nil
}

func (c *Customer) Kind() Kind { return KindCustomer }

// ActivePlanID returns the plan the customer is currently enrolled on
func (c *Customer) ActivePlanID() *uint {
	return c.activePlanID
}

// SetActivePlan switches the customer's active plan
func (c *Customer) SetActivePlan(planID uint, now time.Time) {
	c.activePlanID = &planID
	c.updatedAt = now
}

var (
	_ Principal = (*Operator)(nil)
	_ Principal = (*Customer)(nil)
)
