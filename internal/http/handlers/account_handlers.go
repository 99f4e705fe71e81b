package handlers

import (
	"net/http"
	"strconv"

	"github.com/Rathore23/auth-microservice/domain"
	"github.com/Rathore23/auth-microservice/internal/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccountHandlers serves self-service profile operations
type AccountHandlers struct {
	accountSvc domain.AccountService
	logger     *zap.Logger
}

// NewAccountHandlers creates new account handlers
func NewAccountHandlers(accountSvc domain.AccountService, logger *zap.Logger) *AccountHandlers {
	return &AccountHandlers{accountSvc: accountSvc, logger: logger}
}

// UpdateAccountRequest lists the writable profile fields. Read-only fields
// in the body are ignored.
type UpdateAccountRequest struct {
	FirstName *string `json:"first_name" binding:"omitempty,max=30"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
	Phone     *string `json:"phone" binding:"omitempty,e164"`
	Password  *string `json:"password" binding:"omitempty,password"`
}

// Get returns the caller's own profile
func (h *AccountHandlers) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user, err := h.accountSvc.Get(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, presentUser(user))
}

// Update applies a partial profile update
func (h *AccountHandlers) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	user, err := h.accountSvc.Update(c.Request.Context(), middleware.CallerFrom(c), id, domain.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Password:  req.Password,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, presentUser(user))
}

// Delete deactivates the caller's account
func (h *AccountHandlers) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.accountSvc.Deactivate(c.Request.Context(), middleware.CallerFrom(c), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// pathID parses the :id segment; anything but a positive integer is 404
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": domain.ErrResourceNotFound.Error()})
		return 0, false
	}
	return uint(id), true
}
