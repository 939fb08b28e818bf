// Package handlers implements the gin handlers of the operator, customer and
// organization surfaces.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/warden/internal/application/auth"
	principalapp "github.com/orris-inc/warden/internal/application/principal"
	"github.com/orris-inc/warden/internal/domain/principal"
	"github.com/orris-inc/warden/internal/interfaces/dto"
	"github.com/orris-inc/warden/internal/interfaces/http/middleware"
	"github.com/orris-inc/warden/internal/shared/errors"
	"github.com/orris-inc/warden/internal/shared/logger"
	"github.com/orris-inc/warden/internal/shared/utils"
)

// AuthHandler serves the account endpoints of one principal kind. The backend
// and frontend surfaces each get their own instance.
type AuthHandler struct {
	kind     principal.Kind
	login    loginUseCase
	register registerUseCase
	verify   verifyEmailUseCase
	reset    passwordResetUseCase
	sessions sessionStore
	perms    permissionReader
	logger   logger.Interface
}

func NewAuthHandler(
	kind principal.Kind,
	login loginUseCase,
	register registerUseCase,
	verify verifyEmailUseCase,
	reset passwordResetUseCase,
	sessions sessionStore,
	perms permissionReader,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		kind:     kind,
		login:    login,
		register: register,
		verify:   verify,
		reset:    reset,
		sessions: sessions,
		perms:    perms,
		logger:   logger,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for register", "kind", h.kind, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	p, err := h.register.Execute(c.Request.Context(), principalapp.RegisterCommand{
		Kind:      h.kind,
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.ToUserResponse(p), "Registration successful, please verify your email")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for login", "kind", h.kind, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.login.Execute(c.Request.Context(), auth.LoginCommand{
		Kind:            h.kind,
		UsernameOrEmail: req.UsernameOrEmail,
		Password:        req.Password,
		ClientMeta:      withClientInfo(c, req.Details),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", dto.TokenResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
		User:      dto.ToUserResponse(result.Principal),
	})
}

// Logout revokes the token the request was made with
func (h *AuthHandler) Logout(c *gin.Context) {
	tok, ok := middleware.CurrentToken(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authentication credentials were not provided"))
		return
	}

	if err := h.sessions.Revoke(c.Request.Context(), tok); err != nil {
		h.logger.Errorw("logout failed", "token_id", tok.ID(), "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// LogoutAll revokes every token of the caller, including the current one
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authentication credentials were not provided"))
		return
	}

	if err := h.sessions.RevokeAll(c.Request.Context(), p); err != nil {
		h.logger.Errorw("logout-all failed", "principal_id", p.ID(), "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *AuthHandler) Profile(c *gin.Context) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authentication credentials were not provided"))
		return
	}

	set, err := h.perms.EffectivePermissions(c.Request.Context(), p)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.ToProfileResponse(p, set))
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p, err := h.verify.Execute(c.Request.Context(), principalapp.VerifyEmailCommand{
		Kind:  h.kind,
		Token: req.Token,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Email verified successfully", dto.ToUserResponse(p))
}

// RequestPasswordReset mails a reset token to the account behind the address
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for password reset", "kind", h.kind, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	err := h.reset.RequestPasswordReset(c.Request.Context(), principalapp.RequestPasswordResetCommand{
		Kind:  h.kind,
		Email: req.Email,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Email sent successfully", nil)
}

// ResetPassword sets a new password from a mailed token. Every token of the
// account is revoked.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.PasswordResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for password reset confirm", "kind", h.kind, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	p, err := h.reset.ResetPassword(c.Request.Context(), principalapp.ResetPasswordCommand{
		Kind:     h.kind,
		Token:    req.Token,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password changed successfully", dto.ToUserResponse(p))
}

// withClientInfo records the remote address and user agent next to the
// client supplied details
func withClientInfo(c *gin.Context, details map[string]any) map[string]any {
	meta := make(map[string]any, len(details)+2)
	for k, v := range details {
		meta[k] = v
	}
	meta["ip_address"] = c.ClientIP()
	if ua := c.Request.UserAgent(); ua != "" {
		meta["user_agent"] = ua
	}
	return meta
}
