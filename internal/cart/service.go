package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/verdantly/verdantly-backend/internal/analytics"
	"github.com/verdantly/verdantly-backend/pkg/enums"
	pkgerrors "github.com/verdantly/verdantly-backend/pkg/errors"
	"github.com/verdantly/verdantly-backend/pkg/logger"
	"github.com/verdantly/verdantly-backend/pkg/metrics"
)

// Service exposes all cart operations for a storefront session. Every call
// returns the full derived cart view so clients always render from one
// consistent state.
type Service interface {
	View(ctx context.Context, sessionID string) (*CartView, error)
	AddItem(ctx context.Context, sessionID, productID string, quantity int, variant string) (*CartView, error)
	SetQuantity(ctx context.Context, sessionID, productID, variant string, quantity int) (*CartView, error)
	RemoveItem(ctx context.Context, sessionID, productID, variant string) (*CartView, error)
	Clear(ctx context.Context, sessionID string) (*CartView, error)
	ApplyCoupon(ctx context.Context, sessionID, code string) (*CartView, error)
	RemoveCoupon(ctx context.Context, sessionID string) (*CartView, error)
	SetShippingMethod(ctx context.Context, sessionID, methodID string) (*CartView, error)
}

// ServiceParams wires the service's collaborators. Products, Coupons and
// Shipping are required; the rest degrade gracefully when nil.
type ServiceParams struct {
	Products  ProductCatalog
	Coupons   CouponCatalog
	Shipping  ShippingCatalog
	Snapshots SnapshotStore
	Analytics analytics.Sink
	Metrics   *metrics.CartMetrics
	Logger    *logger.Logger
	Rules     Pricing
	// MaxAge bounds how long a persisted cart survives without mutations.
	// Snapshots older than this are discarded on restore. Zero disables
	// the check.
	MaxAge time.Duration
	Clock  func() time.Time
}

type service struct {
	products  ProductCatalog
	coupons   CouponCatalog
	shipping  ShippingCatalog
	snapshots SnapshotStore
	analytics analytics.Sink
	metrics   *metrics.CartMetrics
	logger    *logger.Logger
	rules     Pricing
	maxAge    time.Duration
	clock     func() time.Time

	mu    sync.Mutex
	carts map[string]*Cart
}

// NewService builds the session-scoped cart service.
func NewService(params ServiceParams) (Service, error) {
	if params.Products == nil {
		return nil, fmt.Errorf("product catalog required")
	}
	if params.Coupons == nil {
		return nil, fmt.Errorf("coupon catalog required")
	}
	if params.Shipping == nil {
		return nil, fmt.Errorf("shipping catalog required")
	}
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}
	return &service{
		products:  params.Products,
		coupons:   params.Coupons,
		shipping:  params.Shipping,
		snapshots: params.Snapshots,
		analytics: params.Analytics,
		metrics:   params.Metrics,
		logger:    params.Logger,
		rules:     params.Rules.normalized(),
		maxAge:    params.MaxAge,
		clock:     clock,
		carts:     map[string]*Cart{},
	}, nil
}

func (s *service) View(ctx context.Context, sessionID string) (*CartView, error) {
	return s.withCart(ctx, "view", sessionID, false, nil)
}

func (s *service) AddItem(ctx context.Context, sessionID, productID string, quantity int, variant string) (*CartView, error) {
	return s.withCart(ctx, "add_item", sessionID, true, func(ctx context.Context, c *Cart) (*analytics.Event, error) {
		product, err := s.resolveProduct(ctx, productID)
		if err != nil {
			return nil, err
		}
		if err := c.AddItem(*product, quantity, variant); err != nil {
			return nil, err
		}
		event := analytics.NewEvent(enums.CartEventItemAdded, sessionID)
		event.ProductID = productID
		event.Variant = normalizeVariant(variant)
		event.Quantity = quantity
		event.Value = product.Price.Mul(decimal.NewFromInt(int64(quantity)))
		return &event, nil
	})
}

func (s *service) SetQuantity(ctx context.Context, sessionID, productID, variant string, quantity int) (*CartView, error) {
	return s.withCart(ctx, "set_quantity", sessionID, true, func(ctx context.Context, c *Cart) (*analytics.Event, error) {
		removed, hadItem := c.lineValue(productID, variant)
		if err := c.SetQuantity(productID, variant, quantity); err != nil {
			return nil, err
		}
		if hadItem && quantity <= 0 {
			event := analytics.NewEvent(enums.CartEventItemRemoved, sessionID)
			event.ProductID = productID
			event.Variant = normalizeVariant(variant)
			event.Value = removed
			return &event, nil
		}
		return nil, nil
	})
}

func (s *service) RemoveItem(ctx context.Context, sessionID, productID, variant string) (*CartView, error) {
	return s.withCart(ctx, "remove_item", sessionID, true, func(ctx context.Context, c *Cart) (*analytics.Event, error) {
		removed, hadItem := c.lineValue(productID, variant)
		c.RemoveItem(productID, variant)
		if !hadItem {
			return nil, nil
		}
		event := analytics.NewEvent(enums.CartEventItemRemoved, sessionID)
		event.ProductID = productID
		event.Variant = normalizeVariant(variant)
		event.Value = removed
		return &event, nil
	})
}

func (s *service) Clear(ctx context.Context, sessionID string) (*CartView, error) {
	return s.withCart(ctx, "clear", sessionID, true, func(ctx context.Context, c *Cart) (*analytics.Event, error) {
		wasEmpty := c.IsEmpty()
		cleared := c.Subtotal()
		c.Clear()
		if wasEmpty {
			return nil, nil
		}
		event := analytics.NewEvent(enums.CartEventCleared, sessionID)
		event.Value = cleared
		return &event, nil
	})
}

func (s *service) ApplyCoupon(ctx context.Context, sessionID, code string) (*CartView, error) {
	return s.withCart(ctx, "apply_coupon", sessionID, true, func(ctx context.Context, c *Cart) (*analytics.Event, error) {
		trimmed := strings.ToUpper(strings.TrimSpace(code))
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidCoupon, "coupon code is required")
		}
		coupon, err := s.coupons.GetCoupon(ctx, trimmed)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving coupon")
		}
		if coupon == nil {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidCoupon,
				fmt.Sprintf("coupon %q is not valid", trimmed))
		}
		return nil, c.ApplyCoupon(*coupon)
	})
}

func (s *service) RemoveCoupon(ctx context.Context, sessionID string) (*CartView, error) {
	return s.withCart(ctx, "remove_coupon", sessionID, true, func(ctx context.Context, c *Cart) (*analytics.Event, error) {
		c.RemoveCoupon()
		return nil, nil
	})
}

func (s *service) SetShippingMethod(ctx context.Context, sessionID, methodID string) (*CartView, error) {
	return s.withCart(ctx, "set_shipping_method", sessionID, true, func(ctx context.Context, c *Cart) (*analytics.Event, error) {
		trimmed := strings.TrimSpace(methodID)
		if trimmed == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping method id is required")
		}
		method, err := s.shipping.GetShippingMethod(ctx, trimmed)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving shipping method")
		}
		if method == nil {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound,
				fmt.Sprintf("shipping method %q not found", trimmed))
		}
		c.SetShippingMethod(*method)
		return nil, nil
	})
}

// mutation runs against a locked cart and reports the analytics event to
// emit, if any.
type mutation func(ctx context.Context, c *Cart) (*analytics.Event, error)

// withCart loads (or lazily restores) the session's cart, applies the
// mutation under the session lock, and on success persists the snapshot and
// publishes analytics in the background.
func (s *service) withCart(ctx context.Context, operation, sessionID string, persist bool, fn mutation) (*CartView, error) {
	started := s.clock()
	defer func() {
		s.metrics.ObserveDuration(operation, s.clock().Sub(started))
	}()

	if strings.TrimSpace(sessionID) == "" {
		s.metrics.IncFailure(operation)
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.carts[sessionID]
	if c == nil {
		c = s.restore(ctx, sessionID)
		s.carts[sessionID] = c
	}

	var event *analytics.Event
	if fn != nil {
		ev, err := fn(ctx, c)
		if err != nil {
			s.metrics.IncFailure(operation)
			return nil, err
		}
		event = ev
	}

	s.metrics.IncSuccess(operation)

	if persist {
		s.persistAsync(ctx, sessionID, c.Snapshot())
	}
	if event != nil {
		s.publishAsync(ctx, *event)
	}

	return NewCartView(sessionID, c), nil
}

// restore rebuilds the session's cart from its persisted snapshot, falling
// back to an empty cart when no usable snapshot exists. Store failures are
// logged and swallowed; a broken store must not take the storefront down.
func (s *service) restore(ctx context.Context, sessionID string) *Cart {
	c := New(s.rules, WithClock(s.clock))
	if s.snapshots == nil {
		return c
	}

	snap, err := s.snapshots.Load(ctx, sessionID)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn(s.logger.WithSessionID(ctx, sessionID), "cart snapshot load failed")
		}
		return c
	}
	if snap == nil {
		return c
	}
	if !c.Restore(*snap, s.maxAge) {
		if s.logger != nil {
			s.logger.Debug(s.logger.WithSessionID(ctx, sessionID), "discarded stale cart snapshot")
		}
		s.deleteAsync(ctx, sessionID)
	}
	return c
}

func (s *service) persistAsync(ctx context.Context, sessionID string, snap Snapshot) {
	if s.snapshots == nil {
		return
	}
	go func() {
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := s.snapshots.Save(saveCtx, sessionID, snap); err != nil && s.logger != nil {
			s.logger.Error(s.logger.WithSessionID(saveCtx, sessionID), "cart snapshot save failed", err)
		}
	}()
}

func (s *service) deleteAsync(ctx context.Context, sessionID string) {
	if s.snapshots == nil {
		return
	}
	go func() {
		delCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := s.snapshots.Delete(delCtx, sessionID); err != nil && s.logger != nil {
			s.logger.Warn(s.logger.WithSessionID(delCtx, sessionID), "cart snapshot delete failed")
		}
	}()
}

func (s *service) publishAsync(ctx context.Context, event analytics.Event) {
	if s.analytics == nil {
		return
	}
	go func() {
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := s.analytics.Publish(pubCtx, event); err != nil && s.logger != nil {
			s.logger.Warn(s.logger.WithSessionID(pubCtx, event.SessionID), "analytics publish failed")
		}
	}()
}

func (s *service) resolveProduct(ctx context.Context, productID string) (*Product, error) {
	trimmed := strings.TrimSpace(productID)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidProduct, "product id is required")
	}
	product, err := s.products.GetProduct(ctx, trimmed)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving product")
	}
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidProduct,
			fmt.Sprintf("product %q not found", trimmed))
	}
	return product, nil
}
