package service

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/internal/infrastructure/database/dbtest"
	"github.com/sangkips/billbook-api/internal/infrastructure/repository"
	"github.com/sangkips/billbook-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductService(t *testing.T) (*ProductService, *memCache) {
	c := newMemCache()
	return NewProductService(repository.NewProductRepository(dbtest.New(t)), c), c
}

func TestCreateProductPriceRules(t *testing.T) {
	ctx := context.Background()
	svc, _ := newProductService(t)

	tests := []struct {
		name    string
		input   CreateProductInput
		wantErr bool
	}{
		{"zero price", CreateProductInput{Name: "Bag", Price: f64(0)}, false},
		{"positive price", CreateProductInput{Name: "Rice", Price: f64(49.5)}, false},
		{"negative price", CreateProductInput{Name: "Rice", Price: f64(-1)}, true},
		{"missing price", CreateProductInput{Name: "Rice"}, true},
		{"nan price", CreateProductInput{Name: "Rice", Price: f64(math.NaN())}, true},
		{"infinite price", CreateProductInput{Name: "Rice", Price: f64(math.Inf(1))}, true},
		{"blank name", CreateProductInput{Name: "   ", Price: f64(10)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			p, err := svc.CreateProduct(ctx, &input)
			if tt.wantErr {
				requireKind(t, err, apperror.KindValidation)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, p.ID)
			assert.True(t, p.Price.Equal(p.Price.Abs()))
		})
	}
}

func TestUpdateProductPartial(t *testing.T) {
	ctx := context.Background()
	svc, _ := newProductService(t)

	p, err := svc.CreateProduct(ctx, &CreateProductInput{Name: "Rice", Price: f64(40)})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(ctx, p.ID, &UpdateProductInput{Price: f64(45)})
	require.NoError(t, err)
	assert.Equal(t, "Rice", updated.Name)
	assert.Equal(t, "45", updated.Price.String())

	_, err = svc.UpdateProduct(ctx, p.ID, &UpdateProductInput{Name: str("")})
	requireKind(t, err, apperror.KindValidation)

	_, err = svc.UpdateProduct(ctx, uuid.New(), &UpdateProductInput{Price: f64(1)})
	requireKind(t, err, apperror.KindNotFound)
}

func TestListProductsUsesCache(t *testing.T) {
	ctx := context.Background()
	svc, c := newProductService(t)

	_, err := svc.CreateProduct(ctx, &CreateProductInput{Name: "Sugar", Price: f64(30)})
	require.NoError(t, err)

	products, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Contains(t, c.data, productListCacheKey)

	_, err = svc.CreateProduct(ctx, &CreateProductInput{Name: "Flour", Price: f64(25)})
	require.NoError(t, err)
	assert.NotContains(t, c.data, productListCacheKey)

	products, err = svc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Flour", products[0].Name)
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	svc, c := newProductService(t)

	p, err := svc.CreateProduct(ctx, &CreateProductInput{Name: "Salt", Price: f64(10)})
	require.NoError(t, err)
	before := c.deletes

	require.NoError(t, svc.DeleteProduct(ctx, p.ID))
	assert.Greater(t, c.deletes, before)

	err = svc.DeleteProduct(ctx, p.ID)
	requireKind(t, err, apperror.KindNotFound)
}
