package cart

import (
	"github.com/shopspring/decimal"

	"github.com/verdantly/verdantly-backend/pkg/enums"
)

// Pricing holds the tunable pricing rules applied to every cart. Zero values
// fall back to the defaults via normalized, so an uninitialized Pricing still
// prices carts sensibly.
type Pricing struct {
	// TaxRate is the flat fraction applied to the subtotal, e.g. 0.18.
	TaxRate decimal.Decimal
	// FlatShippingFee is charged when no method is selected and the subtotal
	// does not clear FreeShippingThreshold.
	FlatShippingFee decimal.Decimal
	// FreeShippingThreshold waives the flat fee for subtotals strictly above
	// it. It never affects an explicitly selected method's price.
	FreeShippingThreshold decimal.Decimal
}

// DefaultPricing returns the storefront's standard rules.
func DefaultPricing() Pricing {
	return Pricing{
		TaxRate:               decimal.RequireFromString("0.18"),
		FlatShippingFee:       decimal.NewFromInt(99),
		FreeShippingThreshold: decimal.NewFromInt(999),
	}
}

func (p Pricing) normalized() Pricing {
	def := DefaultPricing()
	if p.TaxRate.IsZero() {
		p.TaxRate = def.TaxRate
	}
	if p.FlatShippingFee.IsZero() {
		p.FlatShippingFee = def.FlatShippingFee
	}
	if p.FreeShippingThreshold.IsZero() {
		p.FreeShippingThreshold = def.FreeShippingThreshold
	}
	return p
}

// ItemCount is the sum of all line item quantities.
func (c *Cart) ItemCount() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// Subtotal is the sum of unit price times quantity across all items, before
// any discount, tax or shipping.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// Tax applies the flat rate to the subtotal, rounded half up to whole
// currency units. It is computed before the coupon discount.
func (c *Cart) Tax() decimal.Decimal {
	return roundHalfUp(c.Subtotal().Mul(c.rules.TaxRate))
}

// ShippingCost is the nominal shipping charge: the selected method's price,
// or the flat fee unless the subtotal clears the free-shipping threshold.
// An empty cart ships for nothing.
func (c *Cart) ShippingCost() decimal.Decimal {
	if c.IsEmpty() {
		return decimal.Zero
	}
	if c.shipping != nil {
		return c.shipping.Price
	}
	if c.Subtotal().GreaterThan(c.rules.FreeShippingThreshold) {
		return decimal.Zero
	}
	return c.rules.FlatShippingFee
}

// EffectiveShipping is what the customer actually pays for shipping: the
// nominal cost, forced to zero when a free-shipping coupon is applied.
func (c *Cart) EffectiveShipping() decimal.Decimal {
	if c.coupon != nil && c.coupon.Kind == enums.CouponKindFreeShipping {
		return decimal.Zero
	}
	return c.ShippingCost()
}

// Discount is the amount the applied coupon takes off the subtotal.
// Percentage coupons round half up; fixed-amount coupons clamp to the
// subtotal so the discount never exceeds it. Free-shipping coupons discount
// nothing here; they act through EffectiveShipping.
func (c *Cart) Discount() decimal.Decimal {
	if c.coupon == nil || c.IsEmpty() {
		return decimal.Zero
	}
	subtotal := c.Subtotal()
	switch c.coupon.Kind {
	case enums.CouponKindPercentage:
		return roundHalfUp(subtotal.Mul(c.coupon.Value).Div(decimal.NewFromInt(100)))
	case enums.CouponKindFixedAmount:
		if c.coupon.Value.GreaterThan(subtotal) {
			return subtotal
		}
		return c.coupon.Value
	default:
		return decimal.Zero
	}
}

// GrandTotal is subtotal plus tax plus effective shipping minus discount,
// clamped at zero.
func (c *Cart) GrandTotal() decimal.Decimal {
	total := c.Subtotal().
		Add(c.Tax()).
		Add(c.EffectiveShipping()).
		Sub(c.Discount())
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// TotalSavings is the markdown savings versus original prices plus the coupon
// discount, for display.
func (c *Cart) TotalSavings() decimal.Decimal {
	savings := decimal.Zero
	for _, item := range c.items {
		perUnit := item.OriginalUnitPrice.Sub(item.UnitPrice)
		if perUnit.IsPositive() {
			savings = savings.Add(perUnit.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
	}
	return savings.Add(c.Discount())
}

// roundHalfUp rounds to whole units with .5 going away from zero, which for
// the non-negative amounts used here is half-up.
func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}
