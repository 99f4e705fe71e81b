package services

import (
	"context"
	"fmt"

	"github.com/Rathore23/auth-microservice/domain"
)

// ProductServiceImpl implements domain.ProductService
type ProductServiceImpl struct {
	productRepo domain.ProductRepository
	authz       domain.Authorizer
}

// NewProductService creates the product service
func NewProductService(productRepo domain.ProductRepository, authz domain.Authorizer) domain.ProductService {
	return &ProductServiceImpl{productRepo: productRepo, authz: authz}
}

// List implements domain.ProductService
func (s *ProductServiceImpl) List(ctx context.Context, caller *domain.Caller) ([]*domain.Product, error) {
	if err := s.authz.AuthorizeProduct(caller, domain.ActionList, nil); err != nil {
		return nil, err
	}
	return s.productRepo.List(ctx)
}

// Get implements domain.ProductService
func (s *ProductServiceImpl) Get(ctx context.Context, caller *domain.Caller, id uint) (*domain.Product, error) {
	return s.load(ctx, caller, domain.ActionRetrieve, id)
}

// Create implements domain.ProductService; the caller becomes the owner
func (s *ProductServiceImpl) Create(ctx context.Context, caller *domain.Caller, in domain.ProductInput) (*domain.Product, error) {
	if err := s.authz.AuthorizeProduct(caller, domain.ActionCreate, nil); err != nil {
		return nil, err
	}
	if err := requireFull(in); err != nil {
		return nil, err
	}
	product := &domain.Product{OwnerID: caller.UserID}
	apply(product, in)
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

// Replace implements domain.ProductService
func (s *ProductServiceImpl) Replace(ctx context.Context, caller *domain.Caller, id uint, in domain.ProductInput) (*domain.Product, error) {
	product, err := s.load(ctx, caller, domain.ActionUpdate, id)
	if err != nil {
		return nil, err
	}
	if err := requireFull(in); err != nil {
		return nil, err
	}
	apply(product, in)
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// PartialUpdate implements domain.ProductService
func (s *ProductServiceImpl) PartialUpdate(ctx context.Context, caller *domain.Caller, id uint, in domain.ProductInput) (*domain.Product, error) {
	product, err := s.load(ctx, caller, domain.ActionPartialUpdate, id)
	if err != nil {
		return nil, err
	}
	apply(product, in)
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// Delete implements domain.ProductService
func (s *ProductServiceImpl) Delete(ctx context.Context, caller *domain.Caller, id uint) error {
	if _, err := s.load(ctx, caller, domain.ActionDestroy, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// load fetches the object first because ownership rules need it
func (s *ProductServiceImpl) load(ctx context.Context, caller *domain.Caller, action domain.Action, id uint) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.AuthorizeProduct(caller, action, product); err != nil {
		return nil, err
	}
	return product, nil
}

func requireFull(in domain.ProductInput) error {
	if in.Name == nil || *in.Name == "" {
		return domain.NewValidationError("name", "This field is required.")
	}
	if in.Price == nil {
		return domain.NewValidationError("price", "This field is required.")
	}
	return nil
}

func apply(p *domain.Product, in domain.ProductInput) {
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
}
