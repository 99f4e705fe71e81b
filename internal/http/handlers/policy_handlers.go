package handlers

import (
	"net/http"

	"github.com/Rathore23/auth-microservice/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PolicyHandlers administers the role grants behind the role predicate
type PolicyHandlers struct {
	policySvc domain.PolicyService
	logger    *zap.Logger
}

// NewPolicyHandlers creates new policy handlers
func NewPolicyHandlers(policySvc domain.PolicyService, logger *zap.Logger) *PolicyHandlers {
	return &PolicyHandlers{policySvc: policySvc, logger: logger}
}

// PolicyRequest names one grant; act "*" grants every action on the resource
type PolicyRequest struct {
	Sub string `json:"sub" binding:"required,role"`
	Obj string `json:"obj" binding:"required,oneof=product"`
	Act string `json:"act" binding:"required,oneof=list retrieve create update partial_update destroy *"`
}

// List returns every grant as [sub, obj, act]
func (h *PolicyHandlers) List(c *gin.Context) {
	policies := h.policySvc.GetPolicies()
	if policies == nil {
		policies = [][]string{}
	}
	c.JSON(http.StatusOK, policies)
}

// Add installs a grant; adding an existing grant is a no-op
func (h *PolicyHandlers) Add(c *gin.Context) {
	var r PolicyRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		writeBindError(c, err)
		return
	}
	if err := h.policySvc.AddPolicy(r.Sub, r.Obj, r.Act); err != nil {
		writeError(c, h.logger, err)
		return
	}
	h.logger.Info("policy added", zap.String("sub", r.Sub), zap.String("obj", r.Obj), zap.String("act", r.Act))
	c.Status(http.StatusNoContent)
}

// Remove drops a grant
func (h *PolicyHandlers) Remove(c *gin.Context) {
	var r PolicyRequest
	if err := c.ShouldBindJSON(&r); err != nil {
		writeBindError(c, err)
		return
	}
	if err := h.policySvc.RemovePolicy(r.Sub, r.Obj, r.Act); err != nil {
		writeError(c, h.logger, err)
		return
	}
	h.logger.Info("policy removed", zap.String("sub", r.Sub), zap.String("obj", r.Obj), zap.String("act", r.Act))
	c.Status(http.StatusNoContent)
}
