package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/verdantly/verdantly-backend/pkg/db/models"
	"github.com/verdantly/verdantly-backend/pkg/enums"
	"github.com/verdantly/verdantly-backend/pkg/pagination"
)

// Repository reads the catalog tables. All lookups see active rows only;
// deactivated products and coupons disappear from the storefront without
// being deleted.
type Repository interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	GetCoupon(ctx context.Context, code string, at time.Time) (*models.Coupon, error)
	ListShippingMethods(ctx context.Context) ([]models.ShippingMethod, error)
	GetShippingMethod(ctx context.Context, id string) (*models.ShippingMethod, error)
}

// ProductFilter narrows the product listing. Limit is a buffered page size;
// callers pass pagination.LimitWithBuffer so the extra row signals a next page.
type ProductFilter struct {
	Category *enums.ProductCategory
	Search   string
	Cursor   *pagination.Cursor
	Limit    int
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds the catalog repository.
func NewRepository(db *gorm.DB) (Repository, error) {
	if db == nil {
		return nil, fmt.Errorf("db handle required")
	}
	return &repository{db: db}, nil
}

func (r *repository) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("is_active = ?", true)

	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if filter.Cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id > ?)",
			filter.Cursor.CreatedAt, filter.Cursor.CreatedAt, filter.Cursor.ID,
		)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = pagination.LimitWithBuffer(0)
	}

	var products []models.Product
	err := query.
		Order("created_at DESC").
		Order("id ASC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return products, nil
}

func (r *repository) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading product %q: %w", id, err)
	}
	return &product, nil
}

// GetCoupon returns the coupon only when it is active and inside its validity
// window at the given instant.
func (r *repository) GetCoupon(ctx context.Context, code string, at time.Time) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.db.WithContext(ctx).
		Where("code = ? AND is_active = ?", code, true).
		First(&coupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading coupon %q: %w", code, err)
	}
	if coupon.StartsAt != nil && at.Before(*coupon.StartsAt) {
		return nil, nil
	}
	if coupon.ExpiresAt != nil && at.After(*coupon.ExpiresAt) {
		return nil, nil
	}
	return &coupon, nil
}

func (r *repository) ListShippingMethods(ctx context.Context) ([]models.ShippingMethod, error) {
	var methods []models.ShippingMethod
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("position ASC").
		Find(&methods).Error
	if err != nil {
		return nil, fmt.Errorf("listing shipping methods: %w", err)
	}
	return methods, nil
}

func (r *repository) GetShippingMethod(ctx context.Context, id string) (*models.ShippingMethod, error) {
	var method models.ShippingMethod
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&method).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading shipping method %q: %w", id, err)
	}
	return &method, nil
}
