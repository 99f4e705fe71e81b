package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Rathore23/auth-microservice/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DBProduct represents the database model for Product
type DBProduct struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"size:255;not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	OwnerID     uint            `gorm:"index;not null"`
	Owner       DBUser          `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (DBProduct) TableName() string {
	return "products"
}

// ProductRepositoryImpl implements domain.ProductRepository using GORM
type ProductRepositoryImpl struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domain.ProductRepository {
	return &ProductRepositoryImpl{db: db}
}

// Create implements domain.ProductRepository
func (r *ProductRepositoryImpl) Create(ctx context.Context, product *domain.Product) error {
	row := productToDB(product)
	if err := r.db.WithContext(ctx).Omit("Owner").Create(row).Error; err != nil {
		return err
	}
	product.ID = row.ID
	product.CreatedAt = row.CreatedAt
	product.UpdatedAt = row.UpdatedAt
	return nil
}

// FindByID implements domain.ProductRepository
func (r *ProductRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var row DBProduct
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrResourceNotFound
		}
		return nil, err
	}
	return productToDomain(&row), nil
}

// List implements domain.ProductRepository
func (r *ProductRepositoryImpl) List(ctx context.Context) ([]*domain.Product, error) {
	var rows []DBProduct
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(rows))
	for i := range rows {
		products = append(products, productToDomain(&rows[i]))
	}
	return products, nil
}

// Update implements domain.ProductRepository
func (r *ProductRepositoryImpl) Update(ctx context.Context, product *domain.Product) error {
	row := productToDB(product)
	if err := r.db.WithContext(ctx).Omit("Owner").Save(row).Error; err != nil {
		return err
	}
	product.UpdatedAt = row.UpdatedAt
	return nil
}

// Delete implements domain.ProductRepository
func (r *ProductRepositoryImpl) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&DBProduct{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrResourceNotFound
	}
	return nil
}

func productToDB(p *domain.Product) *DBProduct {
	return &DBProduct{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		OwnerID:     p.OwnerID,
		CreatedAt:   p.CreatedAt,
	}
}

func productToDomain(row *DBProduct) *domain.Product {
	return &domain.Product{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Price:       row.Price,
		OwnerID:     row.OwnerID,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
