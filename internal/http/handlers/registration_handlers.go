package handlers

import (
	"errors"
	"net/http"

	"github.com/Rathore23/auth-microservice/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegistrationHandlers serves sign-up, email verification and password reset
type RegistrationHandlers struct {
	authSvc domain.AuthService
	otpSvc  domain.OTPService
	logger  *zap.Logger
}

// NewRegistrationHandlers creates new registration handlers
func NewRegistrationHandlers(authSvc domain.AuthService, otpSvc domain.OTPService, logger *zap.Logger) *RegistrationHandlers {
	return &RegistrationHandlers{authSvc: authSvc, otpSvc: otpSvc, logger: logger}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required,e164"`
	Password  string `json:"password" binding:"required,password"`
	FirstName string `json:"first_name" binding:"required,max=30"`
	LastName  string `json:"last_name" binding:"required,max=150"`
	Username  string `json:"username" binding:"required,max=150"`
	Role      string `json:"role" binding:"required,role"`
}

// EmailRequest carries a single email address
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyOTPRequest represents email verification request
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   *int   `json:"otp" binding:"required"`
}

// ResetPasswordRequest carries the replacement password
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,password"`
}

// Register handles user registration
func (h *RegistrationHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	_, err := h.authSvc.Register(c.Request.Context(), domain.Registration{
		Username:  req.Username,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      domain.Role(req.Role),
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"detail": "OTP send successfully."})
}

// ResendOTP issues a fresh verification code
func (h *RegistrationHandlers) ResendOTP(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	if _, err := h.otpSvc.Resend(c.Request.Context(), req.Email); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "OTP resend successfully."})
}

// VerifyOTP marks the email verified when the latest code matches
func (h *RegistrationHandlers) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	if _, err := h.otpSvc.VerifyEmail(c.Request.Context(), req.Email, *req.OTP); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Email verified successfully."})
}

// ResetPasswordEmail mails a reset link. Unknown emails answer 404.
func (h *RegistrationHandlers) ResetPasswordEmail(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	_, err := h.authSvc.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		writeError(c, h.logger, err, statusOverride{func(e error) bool { return errors.Is(e, domain.ErrUserNotFound) }, http.StatusNotFound})
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Email has been sent."})
}

// ResetPassword consumes a reset ticket and replaces the password
func (h *RegistrationHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	if err := h.authSvc.ConfirmPasswordReset(c.Request.Context(), c.Param("id"), req.Password); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Password has been reset."})
}
