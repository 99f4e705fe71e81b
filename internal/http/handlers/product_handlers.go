package handlers

import (
	"context"
	"net/http"

	"github.com/Rathore23/auth-microservice/domain"
	"github.com/Rathore23/auth-microservice/internal/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductHandlers serves product CRUD
type ProductHandlers struct {
	productSvc domain.ProductService
	logger     *zap.Logger
}

// NewProductHandlers creates new product handlers
func NewProductHandlers(productSvc domain.ProductService, logger *zap.Logger) *ProductHandlers {
	return &ProductHandlers{productSvc: productSvc, logger: logger}
}

// ProductRequest is shared by create, replace and partial update.
// Price accepts a JSON number or a decimal string.
type ProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=100"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
}

func (r ProductRequest) input() (domain.ProductInput, error) {
	if r.Price != nil && r.Price.IsNegative() {
		return domain.ProductInput{}, domain.NewValidationError("price", "Ensure this value is greater than or equal to 0.")
	}
	return domain.ProductInput{Name: r.Name, Description: r.Description, Price: r.Price}, nil
}

// List returns every product
func (h *ProductHandlers) List(c *gin.Context) {
	products, err := h.productSvc.List(c.Request.Context(), middleware.CallerFrom(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, presentProducts(products))
}

// Get returns one product
func (h *ProductHandlers) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	product, err := h.productSvc.Get(c.Request.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, presentProduct(product))
}

// Create stores a product owned by the caller
func (h *ProductHandlers) Create(c *gin.Context) {
	in, ok := h.bind(c)
	if !ok {
		return
	}
	product, err := h.productSvc.Create(c.Request.Context(), middleware.CallerFrom(c), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, presentProduct(product))
}

// Replace overwrites every writable field
func (h *ProductHandlers) Replace(c *gin.Context) {
	h.update(c, h.productSvc.Replace)
}

// PartialUpdate changes only the fields present in the body
func (h *ProductHandlers) PartialUpdate(c *gin.Context) {
	h.update(c, h.productSvc.PartialUpdate)
}

// Delete removes a product
func (h *ProductHandlers) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.productSvc.Delete(c.Request.Context(), middleware.CallerFrom(c), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type productUpdateFunc func(ctx context.Context, caller *domain.Caller, id uint, in domain.ProductInput) (*domain.Product, error)

func (h *ProductHandlers) update(c *gin.Context, fn productUpdateFunc) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	in, ok := h.bind(c)
	if !ok {
		return
	}
	product, err := fn(c.Request.Context(), middleware.CallerFrom(c), id, in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, presentProduct(product))
}

func (h *ProductHandlers) bind(c *gin.Context) (domain.ProductInput, bool) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return domain.ProductInput{}, false
	}
	in, err := req.input()
	if err != nil {
		writeError(c, h.logger, err)
		return domain.ProductInput{}, false
	}
	return in, true
}
