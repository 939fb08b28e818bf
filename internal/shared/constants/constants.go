package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// Context keys
	ContextKeyPrincipal       = "principal"
	ContextKeyAuthToken       = "auth_token"
	ContextKeyOrganization    = "organization"
	ContextKeyOrgPermissions  = "org_permissions"
	ContextKeyRequiredFeature = "subscription_feature"

	// Database table names
	TableOperators         = "operators"
	TableCustomers         = "customers"
	TableAuthTokens        = "auth_tokens"
	TableRoles             = "roles"
	TablePermissions       = "permissions"
	TableRolePermissions   = "role_permissions"
	TableOrganizations     = "organizations"
	TableMemberships       = "organization_memberships"
	TableMemberPermissions = "member_permissions"
	TablePlans             = "subscription_plans"
	TableFeatures          = "features"
	TablePlanFeatures      = "subscription_features"
	TableEnrollments       = "subscription_enrollments"
	TableQuotaSlots        = "quota_slots"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
)
