package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/verdantly/verdantly-backend/internal/cart"
	"github.com/verdantly/verdantly-backend/internal/catalog"
	"github.com/verdantly/verdantly-backend/internal/wishlist"
	"github.com/verdantly/verdantly-backend/pkg/config"
	"github.com/verdantly/verdantly-backend/pkg/enums"
)

type staticProducts struct{}

func (staticProducts) GetProduct(_ context.Context, id string) (*cart.Product, error) {
	if id != "peace-lily" {
		return nil, nil
	}
	return &cart.Product{
		ID:            "peace-lily",
		Name:          "Peace Lily",
		Price:         decimal.RequireFromString("325"),
		OriginalPrice: decimal.RequireFromString("399"),
		Category:      enums.ProductCategoryPlants,
	}, nil
}

type staticCoupons struct{}

func (staticCoupons) GetCoupon(_ context.Context, code string) (*cart.Coupon, error) {
	if code != "SAVE100" {
		return nil, nil
	}
	return &cart.Coupon{
		Code:  "SAVE100",
		Kind:  enums.CouponKindFixedAmount,
		Value: decimal.RequireFromString("100"),
	}, nil
}

type staticShipping struct{}

func (staticShipping) GetShippingMethod(_ context.Context, id string) (*cart.ShippingMethod, error) {
	if id != "express" {
		return nil, nil
	}
	return &cart.ShippingMethod{
		ID:          "express",
		DisplayName: "Express Delivery",
		Price:       decimal.RequireFromString("199"),
	}, nil
}

type staticCatalogService struct{}

func (staticCatalogService) ListProducts(context.Context, catalog.ListProductsInput) (*catalog.ProductPage, error) {
	return &catalog.ProductPage{Products: []catalog.ProductView{{ID: "peace-lily", Name: "Peace Lily", Price: "325", Category: "plants", Variants: []string{}}}}, nil
}

func (staticCatalogService) GetProduct(_ context.Context, id string) (*catalog.ProductView, error) {
	return &catalog.ProductView{ID: id, Name: "Peace Lily", Price: "325", Category: "plants", Variants: []string{}}, nil
}

func (staticCatalogService) ListShippingMethods(context.Context) ([]catalog.ShippingMethodView, error) {
	return []catalog.ShippingMethodView{{ID: "express", DisplayName: "Express Delivery", Price: "199", EstimatedDays: "2-3 days"}}, nil
}

type staticWishlistService struct{}

func (staticWishlistService) List(context.Context, string) ([]wishlist.ItemView, error) {
	return []wishlist.ItemView{}, nil
}

func (staticWishlistService) Add(context.Context, string, string) ([]wishlist.ItemView, error) {
	return []wishlist.ItemView{{ProductID: "peace-lily"}}, nil
}

func (staticWishlistService) Remove(context.Context, string, string) ([]wishlist.ItemView, error) {
	return []wishlist.ItemView{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "dev"},
		Session: config.SessionConfig{
			CookieName: "verdantly_session",
			Header:     "X-Session-Id",
			CookieTTL:  168 * time.Hour,
		},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cartSvc, err := cart.NewService(cart.ServiceParams{
		Products: staticProducts{},
		Coupons:  staticCoupons{},
		Shipping: staticShipping{},
	})
	if err != nil {
		t.Fatalf("cart.NewService failed: %v", err)
	}
	return NewRouter(Deps{
		Config:   testConfig(),
		Catalog:  staticCatalogService{},
		Cart:     cartSvc,
		Wishlist: staticWishlistService{},
	})
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func doJSON(t *testing.T, router http.Handler, method, path, sessionID, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.Header.Set("X-Session-Id", sessionID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not an envelope: %v\n%s", err, rec.Body.String())
	}
	return rec, env
}

func TestHealthLive(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec, _ := doJSON(t, router, http.MethodGet, "/health/live", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("X-Verdantly-Env"); got != "dev" {
		t.Fatalf("env header = %q", got)
	}
}

func TestGetCartMintsSession(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec, env := doJSON(t, router, http.MethodGet, "/api/v1/cart", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Session-Id") == "" {
		t.Fatal("session id header not set")
	}

	var view cart.CartView
	if err := json.Unmarshal(env.Data, &view); err != nil {
		t.Fatalf("decoding cart view: %v", err)
	}
	if !view.IsEmpty || view.GrandTotal != "0" {
		t.Fatalf("expected empty cart, got %+v", view)
	}
}

func TestAddItemFlow(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec, env := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", "sess-1",
		`{"productId":"peace-lily","quantity":2}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201\n%s", rec.Code, rec.Body.String())
	}

	var view cart.CartView
	if err := json.Unmarshal(env.Data, &view); err != nil {
		t.Fatalf("decoding cart view: %v", err)
	}
	if view.Subtotal != "650" || view.Tax != "117" || view.GrandTotal != "866" {
		t.Fatalf("unexpected totals: %+v", view)
	}

	// Same session sees the cart on a plain GET.
	_, env = doJSON(t, router, http.MethodGet, "/api/v1/cart", "sess-1", "")
	if err := json.Unmarshal(env.Data, &view); err != nil {
		t.Fatalf("decoding cart view: %v", err)
	}
	if view.ItemCount != 2 {
		t.Fatalf("item count = %d, want 2", view.ItemCount)
	}
}

func TestAddItemValidation(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec, env := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", "sess-1",
		`{"productId":"peace-lily","quantity":0}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("unexpected error envelope: %+v", env.Error)
	}

	rec, env = doJSON(t, router, http.MethodPost, "/api/v1/cart/items", "sess-1",
		`{"productId":"plastic-flamingo","quantity":1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "INVALID_PRODUCT" {
		t.Fatalf("unexpected error envelope: %+v", env.Error)
	}
}

func TestUpdateQuantityOutOfRange(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	if rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", "sess-1",
		`{"productId":"peace-lily","quantity":2}`); rec.Code != http.StatusCreated {
		t.Fatalf("setup add failed: %d", rec.Code)
	}

	rec, env := doJSON(t, router, http.MethodPatch, "/api/v1/cart/items/peace-lily", "sess-1",
		`{"quantity":150}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "QUANTITY_OUT_OF_RANGE" {
		t.Fatalf("unexpected error envelope: %+v", env.Error)
	}
}

func TestCouponEndpoints(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	if rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", "sess-1",
		`{"productId":"peace-lily","quantity":3}`); rec.Code != http.StatusCreated {
		t.Fatalf("setup add failed: %d", rec.Code)
	}

	rec, env := doJSON(t, router, http.MethodPost, "/api/v1/cart/coupon", "sess-1",
		`{"code":"SAVE100"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", rec.Code, rec.Body.String())
	}
	var view cart.CartView
	if err := json.Unmarshal(env.Data, &view); err != nil {
		t.Fatalf("decoding cart view: %v", err)
	}
	if view.Discount != "100" || view.GrandTotal != "1150" {
		t.Fatalf("unexpected totals: %+v", view)
	}

	rec, env = doJSON(t, router, http.MethodPost, "/api/v1/cart/coupon", "sess-1",
		`{"code":"BOGUS"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "INVALID_COUPON" {
		t.Fatalf("unexpected error envelope: %+v", env.Error)
	}

	rec, _ = doJSON(t, router, http.MethodDelete, "/api/v1/cart/coupon", "sess-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestShippingMethodEndpoint(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	if rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", "sess-1",
		`{"productId":"peace-lily","quantity":1}`); rec.Code != http.StatusCreated {
		t.Fatalf("setup add failed: %d", rec.Code)
	}

	rec, env := doJSON(t, router, http.MethodPut, "/api/v1/cart/shipping-method", "sess-1",
		`{"methodId":"express"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\n%s", rec.Code, rec.Body.String())
	}
	var view cart.CartView
	if err := json.Unmarshal(env.Data, &view); err != nil {
		t.Fatalf("decoding cart view: %v", err)
	}
	if view.ShippingCost != "199" {
		t.Fatalf("shipping cost = %s, want 199", view.ShippingCost)
	}

	rec, env = doJSON(t, router, http.MethodPut, "/api/v1/cart/shipping-method", "sess-1",
		`{"methodId":"drone"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "NOT_FOUND" {
		t.Fatalf("unexpected error envelope: %+v", env.Error)
	}
}

func TestProductsEndpoint(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec, env := doJSON(t, router, http.MethodGet, "/api/v1/products", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var page catalog.ProductPage
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("decoding product page: %v", err)
	}
	if len(page.Products) != 1 || page.Products[0].ID != "peace-lily" {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestWishlistEndpoints(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	rec, _ := doJSON(t, router, http.MethodPost, "/api/v1/wishlist/items", "sess-1",
		`{"productId":"peace-lily"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201\n%s", rec.Code, rec.Body.String())
	}

	rec, _ = doJSON(t, router, http.MethodDelete, "/api/v1/wishlist/items/peace-lily", "sess-1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
