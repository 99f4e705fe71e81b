package handlers

import (
	"time"

	"github.com/Rathore23/auth-microservice/domain"
	"github.com/shopspring/decimal"
)

type userResponse struct {
	ID              uint        `json:"id"`
	Username        string      `json:"username"`
	Email           string      `json:"email"`
	Phone           string      `json:"phone"`
	FirstName       string      `json:"first_name"`
	LastName        string      `json:"last_name"`
	Role            domain.Role `json:"role"`
	IsEmailVerified bool        `json:"is_email_verified"`
	DateJoined      time.Time   `json:"date_joined"`
}

func presentUser(u *domain.User) userResponse {
	return userResponse{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		Phone:           u.Phone,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Role:            u.Role,
		IsEmailVerified: u.IsEmailVerified,
		DateJoined:      u.DateJoined,
	}
}

// loginResponse flattens the profile next to the token pair
type loginResponse struct {
	userResponse
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

type productResponse struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Owner       uint            `json:"owner"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func presentProduct(p *domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Owner:       p.OwnerID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func presentProducts(ps []*domain.Product) []productResponse {
	out := make([]productResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, presentProduct(p))
	}
	return out
}
