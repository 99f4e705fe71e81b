package handlers

import (
	"context"
	"net/http"
	"sort"
	"testing"

	"github.com/Rathore23/auth-microservice/domain"
	"github.com/Rathore23/auth-microservice/internal/mocks"
	"github.com/Rathore23/auth-microservice/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	ownerCaller    = &domain.Caller{UserID: 10, Role: domain.RoleEmployee}
	managerCaller  = &domain.Caller{UserID: 20, Role: domain.RoleManager}
	employeeCaller = &domain.Caller{UserID: 21, Role: domain.RoleEmployee}
	adminCaller    = &domain.Caller{UserID: 22, Role: domain.RoleAdmin}
	staffCaller    = &domain.Caller{UserID: 23, Role: domain.RoleEmployee, IsStaff: true}
)

// productStore is a map-backed product repository built on the func-field mock
type productStore struct {
	*mocks.MockProductRepository
	rows   map[uint]domain.Product
	nextID uint
}

func newProductStore() *productStore {
	s := &productStore{MockProductRepository: mocks.NewMockProductRepository(), rows: map[uint]domain.Product{}, nextID: 1}
	s.CreateFunc = func(ctx context.Context, p *domain.Product) error {
		p.ID = s.nextID
		s.nextID++
		s.rows[p.ID] = *p
		return nil
	}
	s.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Product, error) {
		p, ok := s.rows[id]
		if !ok {
			return nil, domain.ErrResourceNotFound
		}
		return &p, nil
	}
	s.ListFunc = func(ctx context.Context) ([]*domain.Product, error) {
		out := make([]*domain.Product, 0, len(s.rows))
		for id := range s.rows {
			p := s.rows[id]
			out = append(out, &p)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		return out, nil
	}
	s.UpdateFunc = func(ctx context.Context, p *domain.Product) error {
		s.rows[p.ID] = *p
		return nil
	}
	s.DeleteFunc = func(ctx context.Context, id uint) error {
		delete(s.rows, id)
		return nil
	}
	return s
}

func (s *productStore) seed(name string, price string, owner uint) uint {
	p := &domain.Product{Name: name, Price: decimal.RequireFromString(price), OwnerID: owner}
	_ = s.Create(context.Background(), p)
	return p.ID
}

func productRouter(store *productStore, caller *domain.Caller) *gin.Engine {
	policies := mocks.NewMockPolicyService()
	_, _ = services.SeedPolicies(policies)
	authz := services.NewAuthorizationService(policies, zap.NewNop())
	h := NewProductHandlers(services.NewProductService(store, authz), zap.NewNop())

	r := gin.New()
	prod := r.Group("/products", asCaller(caller))
	prod.GET("", h.List)
	prod.POST("", h.Create)
	prod.GET("/:id", h.Get)
	prod.PUT("/:id", h.Replace)
	prod.PATCH("/:id", h.PartialUpdate)
	prod.DELETE("/:id", h.Delete)
	return r
}

func TestProductHandlers_ReadIsPublic(t *testing.T) {
	store := newProductStore()
	id := store.seed("Widget", "9.99", ownerCaller.UserID)
	r := productRouter(store, nil)

	w := perform(r, http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Widget","description":"","price":"9.99","owner":10,
		"created_at":"0001-01-01T00:00:00Z","updated_at":"0001-01-01T00:00:00Z"}]`, w.Body.String())

	w = perform(r, http.MethodGet, "/products/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(1), id)

	w = perform(r, http.MethodGet, "/products/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductHandlers_Create(t *testing.T) {
	tests := []struct {
		name       string
		caller     *domain.Caller
		body       interface{}
		wantStatus int
	}{
		{"manager", managerCaller, map[string]interface{}{"name": "Gadget", "price": 12.5}, http.StatusCreated},
		{"admin with string price", adminCaller, map[string]interface{}{"name": "Gadget", "price": "12.50"}, http.StatusCreated},
		{"employee", employeeCaller, map[string]interface{}{"name": "Gadget", "price": 12.5}, http.StatusForbidden},
		{"anonymous", nil, map[string]interface{}{"name": "Gadget", "price": 12.5}, http.StatusUnauthorized},
		{"missing price", managerCaller, map[string]interface{}{"name": "Gadget"}, http.StatusBadRequest},
		{"negative price", managerCaller, map[string]interface{}{"name": "Gadget", "price": -1}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newProductStore()

			w := perform(productRouter(store, tt.caller), http.MethodPost, "/products", tt.body)

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus == http.StatusCreated {
				resp := decode(t, w)
				assert.Equal(t, float64(tt.caller.UserID), resp["owner"])
				assert.Equal(t, "12.5", resp["price"])
				return
			}
			assert.Empty(t, store.rows)
		})
	}
}

func TestProductHandlers_PartialUpdateAndDelete(t *testing.T) {
	tests := []struct {
		name       string
		caller     *domain.Caller
		wantStatus int
	}{
		{"owner", ownerCaller, http.StatusOK},
		{"admin via policy", adminCaller, http.StatusOK},
		{"staff", staffCaller, http.StatusOK},
		{"manager without grant", managerCaller, http.StatusForbidden},
		{"other employee", employeeCaller, http.StatusForbidden},
		{"anonymous", nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run("patch/"+tt.name, func(t *testing.T) {
			store := newProductStore()
			id := store.seed("Widget", "9.99", ownerCaller.UserID)

			w := perform(productRouter(store, tt.caller), http.MethodPatch, "/products/1", map[string]interface{}{"name": "Renamed"})

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			want := "Widget"
			if tt.wantStatus == http.StatusOK {
				want = "Renamed"
			}
			assert.Equal(t, want, store.rows[id].Name)
			assert.True(t, store.rows[id].Price.Equal(decimal.RequireFromString("9.99")))
		})

		t.Run("delete/"+tt.name, func(t *testing.T) {
			store := newProductStore()
			id := store.seed("Widget", "9.99", ownerCaller.UserID)

			w := perform(productRouter(store, tt.caller), http.MethodDelete, "/products/1", nil)

			wantStatus := tt.wantStatus
			if wantStatus == http.StatusOK {
				wantStatus = http.StatusNoContent
			}
			require.Equal(t, wantStatus, w.Code, w.Body.String())
			_, exists := store.rows[id]
			assert.Equal(t, wantStatus != http.StatusNoContent, exists)
		})
	}
}

func TestProductHandlers_ReplaceIsStaffOnly(t *testing.T) {
	body := map[string]interface{}{"name": "Replaced", "description": "new", "price": "1.00"}
	tests := []struct {
		name       string
		caller     *domain.Caller
		wantStatus int
	}{
		{"staff", staffCaller, http.StatusOK},
		{"owner", ownerCaller, http.StatusForbidden},
		{"admin role without staff flag", adminCaller, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newProductStore()
			store.seed("Widget", "9.99", ownerCaller.UserID)

			w := perform(productRouter(store, tt.caller), http.MethodPut, "/products/1", body)

			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}
