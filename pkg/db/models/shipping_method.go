package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShippingMethod is a selectable delivery option. MinimumOrderAmount is a
// display-layer hint only; selection is never validated against it.
type ShippingMethod struct {
	ID                 string           `gorm:"column:id;primaryKey"`
	DisplayName        string           `gorm:"column:display_name;not null"`
	Price              decimal.Decimal  `gorm:"column:price;type:numeric(12,2);not null"`
	EstimatedDays      string           `gorm:"column:estimated_days;not null"`
	MinimumOrderAmount *decimal.Decimal `gorm:"column:minimum_order_amount;type:numeric(12,2)"`
	Position           int              `gorm:"column:position;not null;default:0"`
	IsActive           bool             `gorm:"column:is_active;not null;default:true"`
	CreatedAt          time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
