package cart

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/verdantly/verdantly-backend/pkg/enums"
	pkgerrors "github.com/verdantly/verdantly-backend/pkg/errors"
)

const (
	// DefaultVariant is assigned when a product is added without one.
	DefaultVariant = "default"

	// MinQuantity and MaxQuantity bound every line item quantity.
	MinQuantity = 1
	MaxQuantity = 99
)

// Product carries the resolved catalog values the cart consumes. The cart
// never fetches catalog data itself; the caller supplies it.
type Product struct {
	ID            string
	Name          string
	Price         decimal.Decimal
	OriginalPrice decimal.Decimal
	Category      enums.ProductCategory
	ImageURL      string
}

// LineItem is one distinct (product, variant) entry in the cart.
// Identity is the (ProductID, Variant) pair; adding the same pair again
// merges quantities instead of duplicating the row.
type LineItem struct {
	ProductID         string                `json:"product_id"`
	Variant           string                `json:"variant"`
	Name              string                `json:"name"`
	UnitPrice         decimal.Decimal       `json:"unit_price"`
	OriginalUnitPrice decimal.Decimal       `json:"original_unit_price"`
	Quantity          int                   `json:"quantity"`
	Category          enums.ProductCategory `json:"category"`
	ImageURL          string                `json:"image_url,omitempty"`
}

// Coupon is a cart-wide discount or shipping-waiver rule. At most one coupon
// is applied at a time; applying a new one replaces the prior one.
type Coupon struct {
	Code        string           `json:"code"`
	Kind        enums.CouponKind `json:"kind"`
	Value       decimal.Decimal  `json:"value"`
	Description string           `json:"description"`
}

// ShippingMethod is the selected delivery option. MinimumOrderAmount is never
// validated at set-time; surfacing it is a display-layer concern.
type ShippingMethod struct {
	ID                 string           `json:"id"`
	DisplayName        string           `json:"display_name"`
	Price              decimal.Decimal  `json:"price"`
	EstimatedDays      string           `json:"estimated_days"`
	MinimumOrderAmount *decimal.Decimal `json:"minimum_order_amount,omitempty"`
}

// Cart is the pricing state machine for one storefront session. Mutations are
// total functions: they either succeed and bump LastModifiedAt, or fail with a
// typed error and leave the state untouched. Totals are never stored; they are
// recomputed from items, coupon and shipping method on every query.
//
// Cart is not safe for concurrent use; Service serializes access.
type Cart struct {
	items          []LineItem
	coupon         *Coupon
	shipping       *ShippingMethod
	lastModifiedAt time.Time
	rules          Pricing
	now            func() time.Time
}

// Option customizes cart construction.
type Option func(*Cart)

// WithClock overrides the time source, primarily for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cart) {
		if now != nil {
			c.now = now
		}
	}
}

// New returns an empty cart governed by the provided pricing rules.
func New(rules Pricing, opts ...Option) *Cart {
	c := &Cart{
		rules: rules.normalized(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddItem appends the product to the cart, or merges quantities when the same
// (product, variant) pair is already present. Merged quantities cap silently
// at MaxQuantity; the excess is dropped.
func (c *Cart) AddItem(p Product, quantity int, variantOverride string) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if quantity < MinQuantity || quantity > MaxQuantity {
		return pkgerrors.New(pkgerrors.CodeInvalidQuantity,
			fmt.Sprintf("quantity must be between %d and %d", MinQuantity, MaxQuantity))
	}

	variant := normalizeVariant(variantOverride)

	if idx := c.indexOf(p.ID, variant); idx >= 0 {
		merged := c.items[idx].Quantity + quantity
		if merged > MaxQuantity {
			merged = MaxQuantity
		}
		c.items[idx].Quantity = merged
		c.touch()
		return nil
	}

	original := p.OriginalPrice
	if original.LessThan(p.Price) {
		original = p.Price
	}
	category := p.Category
	if category == "" {
		category = enums.ProductCategoryDefault
	}

	c.items = append(c.items, LineItem{
		ProductID:         p.ID,
		Variant:           variant,
		Name:              p.Name,
		UnitPrice:         p.Price,
		OriginalUnitPrice: original,
		Quantity:          quantity,
		Category:          category,
		ImageURL:          p.ImageURL,
	})
	c.touch()
	return nil
}

// RemoveItem drops the matching line item. Removing an absent item is a no-op,
// not an error.
func (c *Cart) RemoveItem(productID, variant string) {
	idx := c.indexOf(productID, normalizeVariant(variant))
	if idx < 0 {
		return
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	c.touch()
}

// SetQuantity updates the matching item's quantity. A quantity of zero or less
// removes the item; anything above MaxQuantity is rejected with the state
// unchanged. Updating an absent item is a no-op.
func (c *Cart) SetQuantity(productID, variant string, quantity int) error {
	if quantity <= 0 {
		c.RemoveItem(productID, variant)
		return nil
	}
	if quantity > MaxQuantity {
		return pkgerrors.New(pkgerrors.CodeQuantityOutOfRange,
			fmt.Sprintf("quantity %d exceeds the maximum of %d", quantity, MaxQuantity))
	}
	idx := c.indexOf(productID, normalizeVariant(variant))
	if idx < 0 {
		return nil
	}
	c.items[idx].Quantity = quantity
	c.touch()
	return nil
}

// Clear empties the cart and drops the coupon and shipping selection.
func (c *Cart) Clear() {
	c.items = nil
	c.coupon = nil
	c.shipping = nil
	c.touch()
}

// ApplyCoupon replaces the applied coupon. The caller resolves the code
// against the coupon catalog first; an unrecognized kind is rejected here as a
// defense against malformed catalog rows.
func (c *Cart) ApplyCoupon(coupon Coupon) error {
	if strings.TrimSpace(coupon.Code) == "" || !coupon.Kind.IsValid() {
		return pkgerrors.New(pkgerrors.CodeInvalidCoupon, "coupon is malformed")
	}
	cp := coupon
	c.coupon = &cp
	c.touch()
	return nil
}

// RemoveCoupon clears the applied coupon unconditionally.
func (c *Cart) RemoveCoupon() {
	c.coupon = nil
	c.touch()
}

// SetShippingMethod replaces the selected shipping method unconditionally.
func (c *Cart) SetShippingMethod(method ShippingMethod) {
	m := method
	if m.MinimumOrderAmount != nil {
		min := *method.MinimumOrderAmount
		m.MinimumOrderAmount = &min
	}
	c.shipping = &m
	c.touch()
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []LineItem {
	items := make([]LineItem, len(c.items))
	copy(items, c.items)
	return items
}

// AppliedCoupon returns a copy of the applied coupon, or nil.
func (c *Cart) AppliedCoupon() *Coupon {
	if c.coupon == nil {
		return nil
	}
	cp := *c.coupon
	return &cp
}

// SelectedShippingMethod returns a copy of the selected method, or nil.
func (c *Cart) SelectedShippingMethod() *ShippingMethod {
	if c.shipping == nil {
		return nil
	}
	m := *c.shipping
	if c.shipping.MinimumOrderAmount != nil {
		min := *c.shipping.MinimumOrderAmount
		m.MinimumOrderAmount = &min
	}
	return &m
}

// LastModifiedAt reports when the cart last mutated successfully.
func (c *Cart) LastModifiedAt() time.Time {
	return c.lastModifiedAt
}

// IsEmpty reports whether the cart holds no line items.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Cart) indexOf(productID, variant string) int {
	for i, item := range c.items {
		if item.ProductID == productID && item.Variant == variant {
			return i
		}
	}
	return -1
}

// lineValue reports the extended price of the matching line and whether it
// exists.
func (c *Cart) lineValue(productID, variant string) (decimal.Decimal, bool) {
	idx := c.indexOf(productID, normalizeVariant(variant))
	if idx < 0 {
		return decimal.Zero, false
	}
	item := c.items[idx]
	return item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))), true
}

func (c *Cart) touch() {
	c.lastModifiedAt = c.now()
}

func validateProduct(p Product) error {
	if strings.TrimSpace(p.ID) == "" {
		return pkgerrors.New(pkgerrors.CodeInvalidProduct, "product id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeInvalidProduct, "product name is required")
	}
	if p.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeInvalidProduct, "product price cannot be negative")
	}
	return nil
}

func normalizeVariant(variant string) string {
	if strings.TrimSpace(variant) == "" {
		return DefaultVariant
	}
	return variant
}
