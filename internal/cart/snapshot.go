package cart

import (
	"time"
)

// SnapshotVersion identifies the serialized cart layout. Bump when the
// Snapshot shape changes incompatibly; older versions are discarded on
// restore rather than migrated.
const SnapshotVersion = 1

// Snapshot is the serializable state of a cart, the unit of persistence for
// session continuity. It captures items, coupon and shipping selection;
// totals are derived and never stored.
type Snapshot struct {
	Version        int             `json:"version"`
	Items          []LineItem      `json:"items"`
	Coupon         *Coupon         `json:"coupon,omitempty"`
	ShippingMethod *ShippingMethod `json:"shipping_method,omitempty"`
	LastModifiedAt time.Time       `json:"last_modified_at"`
}

// Snapshot captures the cart's current state for persistence.
func (c *Cart) Snapshot() Snapshot {
	return Snapshot{
		Version:        SnapshotVersion,
		Items:          c.Items(),
		Coupon:         c.AppliedCoupon(),
		ShippingMethod: c.SelectedShippingMethod(),
		LastModifiedAt: c.lastModifiedAt,
	}
}

// Restore replaces the cart's state with the snapshot's, unless the snapshot
// is from an unknown version or older than maxAge, in which case the cart is
// left empty and Restore reports false. A zero maxAge disables the age check.
func (c *Cart) Restore(snap Snapshot, maxAge time.Duration) bool {
	if snap.Version != SnapshotVersion {
		return false
	}
	if maxAge > 0 && c.now().Sub(snap.LastModifiedAt) > maxAge {
		return false
	}

	items := make([]LineItem, len(snap.Items))
	copy(items, snap.Items)
	c.items = items
	c.coupon = nil
	if snap.Coupon != nil {
		cp := *snap.Coupon
		c.coupon = &cp
	}
	c.shipping = nil
	if snap.ShippingMethod != nil {
		m := *snap.ShippingMethod
		c.shipping = &m
	}
	c.lastModifiedAt = snap.LastModifiedAt
	return true
}
