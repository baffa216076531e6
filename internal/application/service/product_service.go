package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/internal/application/billing"
	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/sangkips/billbook-api/pkg/apperror"
	"github.com/sangkips/billbook-api/pkg/logger"
)

const productListCacheKey = "products:all"

// ProductService handles catalog operations
type ProductService struct {
	productRepo repository.ProductRepository
	cache       Cache
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, cache Cache) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		cache:       cache,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name  string
	Price *float64
}

// UpdateProductInput holds the fields to change; nil means unchanged
type UpdateProductInput struct {
	Name  *string
	Price *float64
}

// ListProducts returns the whole catalog sorted by name
func (s *ProductService) ListProducts(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	hit, err := s.cache.GetObject(ctx, productListCacheKey, &products)
	if err != nil {
		logger.LogError("service", "ListProducts", "cache read", nil, err)
	}
	if hit {
		return products, nil
	}

	products, err = s.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetObject(ctx, productListCacheKey, products); err != nil {
		logger.LogError("service", "ListProducts", "cache write", nil, err)
	}
	return products, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// CreateProduct validates and stores a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	name, err := validateProductName(input.Name)
	if err != nil {
		return nil, err
	}
	if input.Price == nil {
		return nil, invalidPrice()
	}
	price, err := billing.ParseAmount("price", input.Price)
	if err != nil {
		return nil, invalidPrice()
	}

	product := &entity.Product{Name: name, Price: price}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return product, nil
}

// UpdateProduct applies a partial update
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name, err := validateProductName(*input.Name)
		if err != nil {
			return nil, err
		}
		product.Name = name
	}
	if input.Price != nil {
		price, err := billing.ParseAmount("price", input.Price)
		if err != nil {
			return nil, invalidPrice()
		}
		product.Price = price
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return product, nil
}

// DeleteProduct removes a product. Bills keep their own copy of its name and price.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NewNotFoundError("Product")
	}
	s.invalidate(ctx)
	return nil
}

func (s *ProductService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, productListCacheKey); err != nil {
		logger.LogError("service", "invalidate", "cache delete", productListCacheKey, err)
	}
}

func validateProductName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperror.NewValidationError(apperror.FieldError{Field: "name", Message: "Product name is required"})
	}
	return name, nil
}

func invalidPrice() error {
	return apperror.NewValidationError(apperror.FieldError{Field: "price", Message: "Price must be a non-negative number"})
}
