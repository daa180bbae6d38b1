package catalog

import (
	"context"
	"time"

	"github.com/verdantly/verdantly-backend/internal/cart"
	"github.com/verdantly/verdantly-backend/pkg/db/models"
)

// CartAdapter exposes the catalog through the lookup interfaces the cart
// service consumes. Missing, inactive or out-of-window rows surface as nil
// so the cart can reject them with its own failure codes.
type CartAdapter struct {
	repo  Repository
	clock func() time.Time
}

// NewCartAdapter builds the adapter. A nil clock defaults to time.Now.
func NewCartAdapter(repo Repository, clock func() time.Time) *CartAdapter {
	if clock == nil {
		clock = time.Now
	}
	return &CartAdapter{repo: repo, clock: clock}
}

func (a *CartAdapter) GetProduct(ctx context.Context, productID string) (*cart.Product, error) {
	product, err := a.repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	resolved := toCartProduct(*product)
	return &resolved, nil
}

func (a *CartAdapter) GetCoupon(ctx context.Context, code string) (*cart.Coupon, error) {
	coupon, err := a.repo.GetCoupon(ctx, code, a.clock())
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, nil
	}
	return &cart.Coupon{
		Code:        coupon.Code,
		Kind:        coupon.Kind,
		Value:       coupon.Value,
		Description: coupon.Description,
	}, nil
}

func (a *CartAdapter) GetShippingMethod(ctx context.Context, methodID string) (*cart.ShippingMethod, error) {
	method, err := a.repo.GetShippingMethod(ctx, methodID)
	if err != nil {
		return nil, err
	}
	if method == nil {
		return nil, nil
	}
	resolved := cart.ShippingMethod{
		ID:            method.ID,
		DisplayName:   method.DisplayName,
		Price:         method.Price,
		EstimatedDays: method.EstimatedDays,
	}
	if method.MinimumOrderAmount != nil {
		min := *method.MinimumOrderAmount
		resolved.MinimumOrderAmount = &min
	}
	return &resolved, nil
}

func toCartProduct(product models.Product) cart.Product {
	resolved := cart.Product{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Category: product.Category,
	}
	if product.OriginalPrice != nil {
		resolved.OriginalPrice = *product.OriginalPrice
	}
	if product.ImageURL != nil {
		resolved.ImageURL = *product.ImageURL
	}
	return resolved
}
