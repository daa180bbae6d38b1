package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/verdantly/verdantly-backend/pkg/enums"
)

// Product represents a catalog listing. The ID is the storefront slug
// (e.g. "peace-lily") and doubles as the cart line item product identifier.
type Product struct {
	ID            string                `gorm:"column:id;primaryKey"`
	Name          string                `gorm:"column:name;not null"`
	Description   *string               `gorm:"column:description"`
	Category      enums.ProductCategory `gorm:"column:category;not null;default:'plants'"`
	Price         decimal.Decimal       `gorm:"column:price;type:numeric(12,2);not null"`
	OriginalPrice *decimal.Decimal      `gorm:"column:original_price;type:numeric(12,2)"`
	Variants      []string              `gorm:"column:variants;serializer:json"`
	ImageURL      *string               `gorm:"column:image_url"`
	IsActive      bool                  `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
