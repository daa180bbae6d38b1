package enums

import "fmt"

// CouponKind represents the discount mechanics a coupon applies to the cart.
type CouponKind string

const (
	CouponKindPercentage   CouponKind = "percentage"
	CouponKindFixedAmount  CouponKind = "fixed_amount"
	CouponKindFreeShipping CouponKind = "free_shipping"
)

var validCouponKinds = []CouponKind{
	CouponKindPercentage,
	CouponKindFixedAmount,
	CouponKindFreeShipping,
}

// String implements fmt.Stringer.
func (k CouponKind) String() string {
	return string(k)
}

// IsValid reports whether the kind is recognized.
func (k CouponKind) IsValid() bool {
	for _, candidate := range validCouponKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseCouponKind converts a raw string into a CouponKind.
func ParseCouponKind(value string) (CouponKind, error) {
	for _, candidate := range validCouponKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid coupon kind %q", value)
}
