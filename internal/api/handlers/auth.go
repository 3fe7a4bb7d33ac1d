package handlers

import (
	"net/http"

	"recruit-api/internal/api/middleware"
	"recruit-api/internal/services"
	"recruit-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// AuthHandler holds dependencies for account and session operations.
type AuthHandler struct {
	service   services.AccountService
	validator *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.AccountService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{service: service, validator: validate}
}

// Register godoc
// @Summary      Register a new account
// @Description  Creates a candidate or recruiter account and sends an email verification code. Recruiters name an existing company or a new one.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        account body      dto.RegisterRequest true  "Account details"
// @Success      201 {object}  dto.AuthResponse "Account created"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      409 {object}  map[string]string "Conflict - Email or company already exists"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "register account")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary      Log in
// @Description  Authenticates a user and returns a session token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body      dto.LoginRequest true  "Login credentials"
// @Success      200 {object}  dto.AuthResponse "Login successful"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized - Invalid credentials"
// @Failure      403 {object}  map[string]string "Account suspended or banned"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "log in")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SendVerification godoc
// @Summary      Resend the verification code
// @Tags         auth
// @Produce      json
// @Success      200 {object}  dto.VerificationSentResponse "Code sent"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      409 {object}  map[string]string "Email already verified"
// @Router       /auth/verification [post]
// @Security     BearerAuth
func (h *AuthHandler) SendVerification(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	resp, err := h.service.SendVerification(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err, "send verification code")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyEmail godoc
// @Summary      Verify the email address
// @Description  Checks the 6-digit code and returns a fresh token carrying the verified flag.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        code body      dto.VerifyEmailRequest true  "Verification code"
// @Success      200 {object}  dto.AuthResponse "Email verified"
// @Failure      400 {object}  map[string]string "Invalid or expired code"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Router       /auth/verify-email [post]
// @Security     BearerAuth
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req dto.VerifyEmailRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	resp, err := h.service.VerifyEmail(c.Request.Context(), identity, &req)
	if err != nil {
		respondError(c, err, "verify email")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary      Log out
// @Description  Revokes the current token.
// @Tags         auth
// @Success      204 "Logged out"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Router       /auth/logout [post]
// @Security     BearerAuth
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.GetClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if err := h.service.Logout(c.Request.Context(), claims); err != nil {
		respondError(c, err, "log out")
		return
	}
	c.Status(http.StatusNoContent)
}

// Me godoc
// @Summary      Current account
// @Description  Returns the authenticated user with its role profile.
// @Tags         auth
// @Produce      json
// @Success      200 {object}  dto.MeResponse
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	resp, err := h.service.Me(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err, "load account")
		return
	}
	c.JSON(http.StatusOK, resp)
}
