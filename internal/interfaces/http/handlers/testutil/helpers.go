package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/warden/internal/domain/organization"
	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/shared/constants"
	"github.com/orris-inc/warden/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Now is the fixed instant used by fixtures
var Now = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

// NewTestContext creates a test gin.Context with the given method, path, and optional body.
func NewTestContext(method, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()

	var req *http.Request
	if body != nil {
		var raw []byte
		if s, ok := body.(string); ok {
			raw = []byte(s)
		} else {
			raw, _ = json.Marshal(body)
		}
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	return c, w
}

// SetPrincipal simulates AuthMiddleware
func SetPrincipal(c *gin.Context, p principal.Principal) {
	c.Set(constants.ContextKeyPrincipal, p)
}

// SetOrganization simulates TenantMiddleware
func SetOrganization(c *gin.Context, org *organization.Organization) {
	c.Set(constants.ContextKeyOrganization, org)
}

// SetQueryParams sets query parameters on the gin context.
func SetQueryParams(c *gin.Context, params map[string]string) {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	c.Request.URL.RawQuery = q.Encode()
}

// ParseResponse parses the JSON response body into the target struct.
func ParseResponse(w *httptest.ResponseRecorder, target any) error {
	return json.Unmarshal(w.Body.Bytes(), target)
}

// APIResponse mirrors utils.APIResponse for test assertions.
type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// ErrorBody mirrors utils.ErrorBody for test assertions.
type ErrorBody struct {
	Detail []struct {
		Type  string            `json:"type"`
		Loc   []string          `json:"loc"`
		Msg   string            `json:"msg"`
		Input any               `json:"input"`
		Ctx   map[string]string `json:"ctx"`
	} `json:"detail"`
}

// ParseError decodes an error payload and requires at least one entry
func ParseError(t *testing.T, w *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body ErrorBody
	require.NoError(t, ParseResponse(w, &body))
	require.NotEmpty(t, body.Detail)
	return body
}

// NewMockLogger returns a no-op logger.Interface for tests.
func NewMockLogger() logger.Interface {
	return &mockLogger{}
}

type mockLogger struct{}

func (m *mockLogger) Debugw(msg string, keysAndValues ...any) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...any)  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...any) {}
func (m *mockLogger) With(args ...any) logger.Interface       { return m }
func (m *mockLogger) Named(name string) logger.Interface      { return m }

// NewCustomer builds a verified customer with the given id
func NewCustomer(t *testing.T, id uint, username string) *principal.Customer {
	t.Helper()
	c, err := principal.NewCustomer(principal.NewAccount{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
	}, Now)
	require.NoError(t, err)
	c.MarkEmailVerified(Now)
	require.NoError(t, c.SetID(id))
	return c
}

// NewOperator builds a verified operator with the given id
func NewOperator(t *testing.T, id uint, username string) *principal.Operator {
	t.Helper()
	o, err := principal.NewOperator(principal.NewAccount{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
	}, Now)
	require.NoError(t, err)
	o.MarkEmailVerified(Now)
	require.NoError(t, o.SetID(id))
	return o
}

// NewOrganization builds a persisted-looking organization administered by adminID
func NewOrganization(t *testing.T, id uint, name string, adminID uint) *organization.Organization {
	t.Helper()
	org, err := organization.NewOrganization(name, adminID, organization.RegistrationOpen, Now)
	require.NoError(t, err)
	require.NoError(t, org.SetID(id))
	return org
}
