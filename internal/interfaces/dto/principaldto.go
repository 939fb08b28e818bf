// Package dto holds the HTTP request and response shapes and their mapping
// from domain objects.
package dto

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/warden/internal/domain/permission"
	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/shared/errors"
)

// RegisterRequest creates a customer, or an operator on the backend
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=30"`
	Email     string `json:"email" binding:"required,email,max=254"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
}

// LoginRequest carries credentials and free-form client details linked to
// the issued token
type LoginRequest struct {
	UsernameOrEmail string         `json:"username_or_email" binding:"required,max=254"`
	Password        string         `json:"password" binding:"required"`
	Details         map[string]any `json:"details"`
}

type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

// UpdateUserStatusRequest changes an operator's role and/or activation.
// Omitted fields are left untouched.
type UpdateUserStatusRequest struct {
	UserUID  string  `json:"user_uid" binding:"required"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// UpdateCustomerStatusRequest suspends or reactivates a customer
type UpdateCustomerStatusRequest struct {
	UserUID  string `json:"user_uid" binding:"required"`
	IsActive *bool  `json:"is_active" binding:"required"`
}

// PasswordResetRequest asks for a reset token to be mailed
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email,max=254"`
}

// PasswordResetConfirmRequest exchanges a mailed token for a new password
type PasswordResetConfirmRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// UserResponse is the public view of a principal
type UserResponse struct {
	UUID            string     `json:"uuid"`
	Kind            string     `json:"kind"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	IsActive        bool       `json:"is_active"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ProfileResponse is the caller's own account plus their platform permissions.
// AllPermissions is set instead of listing codenames for superusers.
type ProfileResponse struct {
	User           UserResponse `json:"user"`
	Permissions    []string     `json:"permissions"`
	AllPermissions bool         `json:"all_permissions"`
}

// TokenResponse is returned by login. The plain token is only ever shown here.
type TokenResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

type named interface {
	FirstName() string
	LastName() string
}

type timestamped interface {
	CreatedAt() time.Time
}

func ToUserResponse(p principal.Principal) UserResponse {
	resp := UserResponse{
		UUID:            p.UUID(),
		Kind:            p.Kind().String(),
		Username:        p.Username(),
		Email:           p.Email(),
		IsActive:        p.IsActive(),
		EmailVerifiedAt: p.EmailVerifiedAt(),
	}
	if n, ok := p.(named); ok {
		resp.FirstName = n.FirstName()
		resp.LastName = n.LastName()
	}
	if ts, ok := p.(timestamped); ok {
		resp.CreatedAt = ts.CreatedAt()
	}
	return resp
}

func ToUserResponses(ps []principal.Principal) []UserResponse {
	out := make([]UserResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, ToUserResponse(p))
	}
	return out
}

func ToProfileResponse(p principal.Principal, set permission.Set) ProfileResponse {
	codenames := set.Codenames()
	if codenames == nil {
		codenames = []string{}
	}
	return ProfileResponse{
		User:           ToUserResponse(p),
		Permissions:    codenames,
		AllPermissions: set.IsAll(),
	}
}

// ListUsersRequest is parsed from the query string
type ListUsersRequest struct {
	Page     int
	PageSize int
	Search   string
	IsActive *bool
}

// ParseListUsersRequest parses query parameters for listing users
func ParseListUsersRequest(c *gin.Context) (*ListUsersRequest, error) {
	req := &ListUsersRequest{Search: c.Query("search")}

	if pageStr := c.Query("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return nil, errors.NewValidationError("Invalid page parameter").Loc("page", pageStr, "gte")
		}
		req.Page = page
	}

	if pageSizeStr := c.Query("page_size"); pageSizeStr != "" {
		pageSize, err := strconv.Atoi(pageSizeStr)
		if err != nil || pageSize < 1 {
			return nil, errors.NewValidationError("Invalid page_size parameter").Loc("page_size", pageSizeStr, "gte")
		}
		req.PageSize = pageSize
	}

	if activeStr := c.Query("is_active"); activeStr != "" {
		active, err := strconv.ParseBool(activeStr)
		if err != nil {
			return nil, errors.NewValidationError("Invalid is_active parameter").Loc("is_active", activeStr, "bool")
		}
		req.IsActive = &active
	}

	return req, nil
}
