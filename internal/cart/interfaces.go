package cart

import (
	"context"
)

// ProductCatalog resolves product IDs against the live catalog.
// Implementations return a nil product when the ID is unknown or inactive.
type ProductCatalog interface {
	GetProduct(ctx context.Context, productID string) (*Product, error)
}

// CouponCatalog resolves coupon codes. Implementations return a nil coupon
// when the code is unknown, inactive or outside its validity window.
type CouponCatalog interface {
	GetCoupon(ctx context.Context, code string) (*Coupon, error)
}

// ShippingCatalog resolves shipping method IDs.
type ShippingCatalog interface {
	GetShippingMethod(ctx context.Context, methodID string) (*ShippingMethod, error)
}

// SnapshotStore persists cart snapshots keyed by session ID. Load returns
// (nil, nil) when no snapshot exists for the session.
type SnapshotStore interface {
	Save(ctx context.Context, sessionID string, snap Snapshot) error
	Load(ctx context.Context, sessionID string) (*Snapshot, error)
	Delete(ctx context.Context, sessionID string) error
}
