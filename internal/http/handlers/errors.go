package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Rathore23/auth-microservice/domain"
	"github.com/Rathore23/auth-microservice/internal/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// errorMapping pairs a domain error with its default status
type errorMapping struct {
	err    error
	status int
}

// statusOverride remaps a class of domain errors for a single endpoint
type statusOverride struct {
	match  func(error) bool
	status int
}

// errorStatus is the default status of every domain error the handlers surface
var errorStatus = []errorMapping{
	{domain.ErrUserNotFound, http.StatusBadRequest},
	{domain.ErrInvalidCredentials, http.StatusBadRequest},
	{domain.ErrUserAlreadyExists, http.StatusBadRequest},
	{domain.ErrUserInactive, http.StatusBadRequest},
	{domain.ErrInvalidCombination, http.StatusBadRequest},
	{domain.ErrOTPMissing, http.StatusBadRequest},
	{domain.ErrOTPExpired, http.StatusBadRequest},
	{domain.ErrOTPMismatch, http.StatusBadRequest},
	{domain.ErrOTPAlreadyConsumed, http.StatusBadRequest},
	{domain.ErrAlreadyVerified, http.StatusBadRequest},
	{domain.ErrInvalidEmail, http.StatusBadRequest},
	{domain.ErrResetTicketNotFound, http.StatusNotFound},
	{domain.ErrResetTicketExpired, http.StatusBadRequest},
	{domain.ErrTokenInvalid, http.StatusUnauthorized},
	{domain.ErrTokenExpired, http.StatusUnauthorized},
	{domain.ErrTokenMalformed, http.StatusUnauthorized},
	{domain.ErrTokenRevoked, http.StatusUnauthorized},
	{domain.ErrUnauthenticated, http.StatusUnauthorized},
	{domain.ErrPermissionDenied, http.StatusForbidden},
	{domain.ErrResourceNotFound, http.StatusNotFound},
}

// tokenAsBadRequest is used where a bad token is an input error rather than an auth failure
var tokenAsBadRequest = statusOverride{domain.IsTokenError, http.StatusBadRequest}

// writeError answers with the status mapped to err. Unknown errors are logged and hidden.
func writeError(c *gin.Context, logger *zap.Logger, err error, overrides ...statusOverride) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
		return
	}

	for _, m := range errorStatus {
		if !errors.Is(err, m.err) {
			continue
		}
		status := m.status
		for _, o := range overrides {
			if o.match(err) {
				status = o.status
				break
			}
		}
		c.JSON(status, gin.H{"error": m.err.Error()})
		return
	}

	logger.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// writeBindError reports the first violated binding rule
func writeBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		c.JSON(http.StatusBadRequest, gin.H{"error": fieldMessage(fe), "field": fe.Field()})
		return
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid value for %s.", typeErr.Field), "field": typeErr.Field})
	case errors.Is(err, io.EOF):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body is required."})
	case errors.As(err, &syntaxErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed JSON body."})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "e164":
		return "Enter a valid phone number."
	case "role":
		return fmt.Sprintf("\"%v\" is not a valid choice.", fe.Value())
	case "password":
		if s, ok := fe.Value().(string); ok {
			if err := middleware.ValidatePassword(s); err != nil {
				var verr *domain.ValidationError
				if errors.As(err, &verr) {
					return verr.Message
				}
			}
		}
		return "This password is invalid."
	case "oneof":
		return fmt.Sprintf("Must be one of: %s.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	default:
		return fmt.Sprintf("Failed on the '%s' rule.", fe.Tag())
	}
}
