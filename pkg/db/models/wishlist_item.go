package models

import (
	"time"

	"github.com/google/uuid"
)

// WishlistItem links a storefront session to a liked product.
type WishlistItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	SessionID string    `gorm:"column:session_id;not null;uniqueIndex:idx_wishlist_session_product"`
	ProductID string    `gorm:"column:product_id;not null;uniqueIndex:idx_wishlist_session_product"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
