package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/verdantly/verdantly-backend/pkg/db/models"
	"github.com/verdantly/verdantly-backend/pkg/enums"
	pkgerrors "github.com/verdantly/verdantly-backend/pkg/errors"
)

type fakeRepo struct {
	products []models.Product
	coupons  map[string]models.Coupon
	methods  []models.ShippingMethod
}

func (f *fakeRepo) ListProducts(_ context.Context, filter ProductFilter) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range f.products {
		if filter.Category != nil && p.Category != *filter.Category {
			continue
		}
		out = append(out, p)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeRepo) GetProduct(_ context.Context, id string) (*models.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) GetCoupon(_ context.Context, code string, _ time.Time) (*models.Coupon, error) {
	c, ok := f.coupons[code]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (f *fakeRepo) ListShippingMethods(_ context.Context) ([]models.ShippingMethod, error) {
	return f.methods, nil
}

func (f *fakeRepo) GetShippingMethod(_ context.Context, id string) (*models.ShippingMethod, error) {
	for _, m := range f.methods {
		if m.ID == id {
			method := m
			return &method, nil
		}
	}
	return nil, nil
}

func fixtureRepo() *fakeRepo {
	description := "Air-purifying classic."
	original := decimal.RequireFromString("399")
	return &fakeRepo{
		products: []models.Product{
			{
				ID:            "peace-lily",
				Name:          "Peace Lily",
				Description:   &description,
				Category:      enums.ProductCategoryPlants,
				Price:         decimal.RequireFromString("325"),
				OriginalPrice: &original,
				Variants:      []string{"default", "white-pot"},
			},
			{
				ID:       "basil-seeds",
				Name:     "Basil Seed Pack",
				Category: enums.ProductCategorySeeds,
				Price:    decimal.RequireFromString("49"),
			},
		},
		coupons: map[string]models.Coupon{
			"SAVE100": {Code: "SAVE100", Kind: enums.CouponKindFixedAmount, Value: decimal.RequireFromString("100")},
		},
		methods: []models.ShippingMethod{
			{ID: "standard", DisplayName: "Standard Delivery", Price: decimal.RequireFromString("99"), EstimatedDays: "5-7 days"},
		},
	}
}

func TestServiceListProductsMapsViews(t *testing.T) {
	t.Parallel()

	svc, err := NewService(fixtureRepo())
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	page, err := svc.ListProducts(context.Background(), ListProductsInput{})
	if err != nil {
		t.Fatalf("ListProducts failed: %v", err)
	}
	if len(page.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(page.Products))
	}
	first := page.Products[0]
	if first.Price != "325" || first.OriginalPrice == nil || *first.OriginalPrice != "399" {
		t.Fatalf("unexpected pricing fields: %+v", first)
	}
	if first.Description == "" {
		t.Fatal("description not mapped")
	}
}

func TestServiceListProductsRejectsUnknownCategory(t *testing.T) {
	t.Parallel()

	svc, err := NewService(fixtureRepo())
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	_, err = svc.ListProducts(context.Background(), ListProductsInput{Category: "gadgets"})
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("error = %v, want VALIDATION", err)
	}
}

func TestServiceListProductsRejectsGarbageCursor(t *testing.T) {
	t.Parallel()

	svc, err := NewService(fixtureRepo())
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	_, err = svc.ListProducts(context.Background(), ListProductsInput{Cursor: "not-base64!"})
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("error = %v, want VALIDATION", err)
	}
}

func TestServiceGetProductNotFound(t *testing.T) {
	t.Parallel()

	svc, err := NewService(fixtureRepo())
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	_, err = svc.GetProduct(context.Background(), "no-such-product")
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("error = %v, want NOT_FOUND", err)
	}
}

func TestCartAdapterResolvesCatalogRows(t *testing.T) {
	t.Parallel()

	adapter := NewCartAdapter(fixtureRepo(), nil)
	ctx := context.Background()

	product, err := adapter.GetProduct(ctx, "peace-lily")
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	if product == nil || !product.Price.Equal(decimal.RequireFromString("325")) {
		t.Fatalf("unexpected product: %+v", product)
	}
	if !product.OriginalPrice.Equal(decimal.RequireFromString("399")) {
		t.Fatalf("original price not mapped: %s", product.OriginalPrice)
	}

	missing, err := adapter.GetProduct(ctx, "no-such-product")
	if err != nil || missing != nil {
		t.Fatalf("missing product should resolve to nil, got %+v, %v", missing, err)
	}

	coupon, err := adapter.GetCoupon(ctx, "SAVE100")
	if err != nil || coupon == nil {
		t.Fatalf("GetCoupon failed: %+v, %v", coupon, err)
	}
	if coupon.Kind != enums.CouponKindFixedAmount {
		t.Fatalf("coupon kind = %q", coupon.Kind)
	}

	method, err := adapter.GetShippingMethod(ctx, "standard")
	if err != nil || method == nil {
		t.Fatalf("GetShippingMethod failed: %+v, %v", method, err)
	}
	if method.Price.String() != "99" {
		t.Fatalf("method price = %s, want 99", method.Price)
	}
}
