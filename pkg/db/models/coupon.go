package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/verdantly/verdantly-backend/pkg/enums"
)

// Coupon is a cart-wide discount or shipping-waiver rule keyed by its code.
type Coupon struct {
	Code        string           `gorm:"column:code;primaryKey"`
	Kind        enums.CouponKind `gorm:"column:kind;not null"`
	Value       decimal.Decimal  `gorm:"column:value;type:numeric(12,2);not null"`
	Description string           `gorm:"column:description;not null"`
	IsActive    bool             `gorm:"column:is_active;not null;default:true"`
	StartsAt    *time.Time       `gorm:"column:starts_at"`
	ExpiresAt   *time.Time       `gorm:"column:expires_at"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
