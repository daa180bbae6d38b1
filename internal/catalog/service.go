package catalog

import (
	"context"
	"fmt"

	"github.com/verdantly/verdantly-backend/pkg/db/models"
	"github.com/verdantly/verdantly-backend/pkg/enums"
	pkgerrors "github.com/verdantly/verdantly-backend/pkg/errors"
	"github.com/verdantly/verdantly-backend/pkg/pagination"
)

// Service exposes the read-side catalog the storefront renders.
type Service interface {
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductPage, error)
	GetProduct(ctx context.Context, id string) (*ProductView, error)
	ListShippingMethods(ctx context.Context) ([]ShippingMethodView, error)
}

// ListProductsInput carries the listing filters from the API layer.
type ListProductsInput struct {
	Category string
	Search   string
	Limit    int
	Cursor   string
}

// ProductView is the API shape of a catalog listing.
type ProductView struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Category      string   `json:"category"`
	Price         string   `json:"price"`
	OriginalPrice *string  `json:"originalPrice,omitempty"`
	Variants      []string `json:"variants"`
	ImageURL      string   `json:"imageUrl,omitempty"`
}

// ProductPage is one page of listings plus the cursor for the next one.
type ProductPage struct {
	Products   []ProductView `json:"products"`
	NextCursor *string       `json:"nextCursor,omitempty"`
}

// ShippingMethodView is the API shape of a delivery option.
type ShippingMethodView struct {
	ID                 string  `json:"id"`
	DisplayName        string  `json:"displayName"`
	Price              string  `json:"price"`
	EstimatedDays      string  `json:"estimatedDays"`
	MinimumOrderAmount *string `json:"minimumOrderAmount,omitempty"`
}

type service struct {
	repo Repository
}

// NewService builds the catalog read service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductPage, error) {
	filter := ProductFilter{
		Search: input.Search,
		Limit:  pagination.LimitWithBuffer(input.Limit),
	}

	if input.Category != "" {
		category, err := enums.ParseProductCategory(input.Category)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("unknown category %q", input.Category))
		}
		filter.Category = &category
	}

	cursor, err := pagination.ParseCursor(input.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
	}
	filter.Cursor = cursor

	products, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}

	limit := pagination.NormalizeLimit(input.Limit)
	page := &ProductPage{Products: make([]ProductView, 0, len(products))}
	if len(products) > limit {
		last := products[limit-1]
		next := pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		page.NextCursor = &next
		products = products[:limit]
	}
	for _, product := range products {
		page.Products = append(page.Products, newProductView(product))
	}
	return page, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*ProductView, error) {
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %q not found", id))
	}
	view := newProductView(*product)
	return &view, nil
}

func (s *service) ListShippingMethods(ctx context.Context) ([]ShippingMethodView, error) {
	methods, err := s.repo.ListShippingMethods(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing shipping methods")
	}
	views := make([]ShippingMethodView, 0, len(methods))
	for _, method := range methods {
		views = append(views, newShippingMethodView(method))
	}
	return views, nil
}

func newProductView(product models.Product) ProductView {
	view := ProductView{
		ID:       product.ID,
		Name:     product.Name,
		Category: product.Category.String(),
		Price:    product.Price.String(),
		Variants: product.Variants,
	}
	if view.Variants == nil {
		view.Variants = []string{}
	}
	if product.Description != nil {
		view.Description = *product.Description
	}
	if product.OriginalPrice != nil {
		original := product.OriginalPrice.String()
		view.OriginalPrice = &original
	}
	if product.ImageURL != nil {
		view.ImageURL = *product.ImageURL
	}
	return view
}

func newShippingMethodView(method models.ShippingMethod) ShippingMethodView {
	view := ShippingMethodView{
		ID:            method.ID,
		DisplayName:   method.DisplayName,
		Price:         method.Price.String(),
		EstimatedDays: method.EstimatedDays,
	}
	if method.MinimumOrderAmount != nil {
		min := method.MinimumOrderAmount.String()
		view.MinimumOrderAmount = &min
	}
	return view
}
