package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Rathore23/auth-microservice/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const callerKey = "caller"

// AuthMW resolves the bearer access token into a caller
type AuthMW struct {
	sessionSvc domain.SessionService
	userRepo   domain.UserRepository
	logger     *zap.Logger
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(sessionSvc domain.SessionService, userRepo domain.UserRepository, logger *zap.Logger) *AuthMW {
	return &AuthMW{sessionSvc: sessionSvc, userRepo: userRepo, logger: logger}
}

// RequireAuth rejects requests without a valid access token
func (mw *AuthMW) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			abortUnauthorized(c, domain.ErrUnauthenticated.Error())
			return
		}
		if mw.authenticate(c) {
			c.Next()
		}
	}
}

// OptionalAuth lets anonymous requests through but still rejects a bad token
func (mw *AuthMW) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		if mw.authenticate(c) {
			c.Next()
		}
	}
}

// RequireStaff admits only staff callers; it must run after RequireAuth
func (mw *AuthMW) RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := CallerFrom(c)
		if caller == nil {
			abortUnauthorized(c, domain.ErrUnauthenticated.Error())
			return
		}
		if !caller.IsStaff {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": domain.ErrPermissionDenied.Error()})
			return
		}
		c.Next()
	}
}

// authenticate sets the caller or aborts with 401
func (mw *AuthMW) authenticate(c *gin.Context) bool {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		abortUnauthorized(c, "Invalid authorization header format")
		return false
	}

	claims, err := mw.sessionSvc.VerifyAccess(parts[1])
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			abortUnauthorized(c, "Token expired")
		} else {
			abortUnauthorized(c, "Invalid token")
		}
		return false
	}

	user, err := mw.userRepo.FindByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			mw.logger.Error("failed to load token user", zap.Uint("user_id", claims.UserID), zap.Error(err))
		}
		abortUnauthorized(c, "User not found")
		return false
	}
	if !user.IsActive {
		abortUnauthorized(c, "User is inactive")
		return false
	}

	SetCaller(c, &domain.Caller{UserID: user.ID, Role: user.Role, IsStaff: user.IsStaff})
	return true
}

// SetCaller attaches caller to the request context
func SetCaller(c *gin.Context, caller *domain.Caller) {
	c.Set(callerKey, caller)
}

// CallerFrom returns the authenticated caller, or nil for anonymous requests
func CallerFrom(c *gin.Context) *domain.Caller {
	v, ok := c.Get(callerKey)
	if !ok {
		return nil
	}
	caller, _ := v.(*domain.Caller)
	return caller
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}
