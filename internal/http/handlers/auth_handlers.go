package handlers

import (
	"net/http"

	"github.com/Rathore23/auth-microservice/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandlers handles login, logout and token refresh
type AuthHandlers struct {
	authSvc  domain.AuthService
	otpSvc   domain.OTPService
	logger   *zap.Logger
	echoCode bool
}

// NewAuthHandlers creates new auth handlers. echoCode returns login codes in the
// send-otp response and must stay off outside development.
func NewAuthHandlers(authSvc domain.AuthService, otpSvc domain.OTPService, logger *zap.Logger, echoCode bool) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc, otpSvc: otpSvc, logger: logger, echoCode: echoCode}
}

// SendOTPRequest represents login OTP request
type SendOTPRequest struct {
	Phone string `json:"phone" binding:"required,e164"`
}

// LoginRequest accepts either email+password or phone+otp.
// The email field also matches usernames.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone" binding:"omitempty,e164"`
	OTP      *int   `json:"otp"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// SendOTP issues a login code and delivers it by SMS
func (h *AuthHandlers) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	record, err := h.otpSvc.SendLoginOTP(c.Request.Context(), req.Phone)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	body := gin.H{"detail": "OTP send successfully."}
	if h.echoCode {
		body["otp"] = record.Code
	}
	c.JSON(http.StatusOK, body)
}

// Login handles user login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), domain.LoginCredentials{
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		OTP:      req.OTP,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		userResponse: presentUser(result.User),
		Refresh:      result.Tokens.RefreshToken,
		Access:       result.Tokens.AccessToken,
	})
}

// Logout blacklists the presented refresh token (requires authentication)
func (h *AuthHandlers) Logout(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), req.Refresh); err != nil {
		writeError(c, h.logger, err, tokenAsBadRequest)
		return
	}

	c.Status(http.StatusResetContent)
}

// Refresh exchanges a refresh token for a new access token
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	access, err := h.authSvc.RefreshToken(c.Request.Context(), req.Refresh)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access})
}
