package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemView is the API shape of a cart line, with the line total
// precomputed so clients never do money math.
type LineItemView struct {
	ProductID         string `json:"productId"`
	Variant           string `json:"variant"`
	Name              string `json:"name"`
	UnitPrice         string `json:"unitPrice"`
	OriginalUnitPrice string `json:"originalUnitPrice"`
	Quantity          int    `json:"quantity"`
	LineTotal         string `json:"lineTotal"`
	Category          string `json:"category"`
	ImageURL          string `json:"imageUrl,omitempty"`
}

// CouponView is the API shape of the applied coupon.
type CouponView struct {
	Code        string `json:"code"`
	Kind        string `json:"kind"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// ShippingMethodView is the API shape of the selected shipping method.
type ShippingMethodView struct {
	ID                 string  `json:"id"`
	DisplayName        string  `json:"displayName"`
	Price              string  `json:"price"`
	EstimatedDays      string  `json:"estimatedDays"`
	MinimumOrderAmount *string `json:"minimumOrderAmount,omitempty"`
}

// CartView is the full derived state of a cart, returned by every service
// operation. Money fields are decimal strings in whole currency units.
type CartView struct {
	SessionID         string              `json:"sessionId"`
	Items             []LineItemView      `json:"items"`
	ItemCount         int                 `json:"itemCount"`
	Subtotal          string              `json:"subtotal"`
	Tax               string              `json:"tax"`
	ShippingCost      string              `json:"shippingCost"`
	EffectiveShipping string              `json:"effectiveShipping"`
	Discount          string              `json:"discount"`
	GrandTotal        string              `json:"grandTotal"`
	TotalSavings      string              `json:"totalSavings"`
	Coupon            *CouponView         `json:"coupon,omitempty"`
	ShippingMethod    *ShippingMethodView `json:"shippingMethod,omitempty"`
	IsEmpty           bool                `json:"isEmpty"`
	LastModifiedAt    time.Time           `json:"lastModifiedAt"`
}

// NewCartView derives the complete API view from a cart.
func NewCartView(sessionID string, c *Cart) *CartView {
	items := c.Items()
	views := make([]LineItemView, 0, len(items))
	for _, item := range items {
		lineTotal := item.UnitPrice.Mul(quantityDecimal(item.Quantity))
		views = append(views, LineItemView{
			ProductID:         item.ProductID,
			Variant:           item.Variant,
			Name:              item.Name,
			UnitPrice:         item.UnitPrice.String(),
			OriginalUnitPrice: item.OriginalUnitPrice.String(),
			Quantity:          item.Quantity,
			LineTotal:         lineTotal.String(),
			Category:          item.Category.String(),
			ImageURL:          item.ImageURL,
		})
	}

	view := &CartView{
		SessionID:         sessionID,
		Items:             views,
		ItemCount:         c.ItemCount(),
		Subtotal:          c.Subtotal().String(),
		Tax:               c.Tax().String(),
		ShippingCost:      c.ShippingCost().String(),
		EffectiveShipping: c.EffectiveShipping().String(),
		Discount:          c.Discount().String(),
		GrandTotal:        c.GrandTotal().String(),
		TotalSavings:      c.TotalSavings().String(),
		IsEmpty:           c.IsEmpty(),
		LastModifiedAt:    c.LastModifiedAt(),
	}

	if coupon := c.AppliedCoupon(); coupon != nil {
		view.Coupon = &CouponView{
			Code:        coupon.Code,
			Kind:        coupon.Kind.String(),
			Value:       coupon.Value.String(),
			Description: coupon.Description,
		}
	}
	if method := c.SelectedShippingMethod(); method != nil {
		mv := &ShippingMethodView{
			ID:            method.ID,
			DisplayName:   method.DisplayName,
			Price:         method.Price.String(),
			EstimatedDays: method.EstimatedDays,
		}
		if method.MinimumOrderAmount != nil {
			min := method.MinimumOrderAmount.String()
			mv.MinimumOrderAmount = &min
		}
		view.ShippingMethod = mv
	}

	return view
}

func quantityDecimal(quantity int) decimal.Decimal {
	return decimal.NewFromInt(int64(quantity))
}
