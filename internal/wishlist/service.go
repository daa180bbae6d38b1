package wishlist

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/verdantly/verdantly-backend/internal/catalog"
	pkgerrors "github.com/verdantly/verdantly-backend/pkg/errors"
)

// Service manages a session's saved-for-later products. Items carry no
// quantity or variant; moving one into the cart is the cart service's job.
type Service interface {
	List(ctx context.Context, sessionID string) ([]ItemView, error)
	Add(ctx context.Context, sessionID, productID string) ([]ItemView, error)
	Remove(ctx context.Context, sessionID, productID string) ([]ItemView, error)
}

// ItemView is the API shape of a wishlist entry, carrying enough catalog
// data to render the saved card without a second lookup.
type ItemView struct {
	ID            string  `json:"id"`
	ProductID     string  `json:"productId"`
	Name          string  `json:"name"`
	Price         string  `json:"price"`
	OriginalPrice *string `json:"originalPrice,omitempty"`
	Category      string  `json:"category"`
	ImageURL      string  `json:"imageUrl,omitempty"`
}

type productResolver interface {
	GetProduct(ctx context.Context, id string) (*catalog.ProductView, error)
}

type service struct {
	repo     Repository
	products productResolver
}

// NewService builds the wishlist service.
func NewService(repo Repository, products productResolver) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("wishlist repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product resolver required")
	}
	return &service{repo: repo, products: products}, nil
}

func (s *service) List(ctx context.Context, sessionID string) ([]ItemView, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	return s.list(ctx, sessionID)
}

// Add saves the product for the session. Saving an already-saved product is
// idempotent; the current list is returned either way.
func (s *service) Add(ctx context.Context, sessionID, productID string) ([]ItemView, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(productID)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidProduct, "product id is required")
	}

	// Resolving first keeps unknown products out of the table and reuses the
	// catalog's NOT_FOUND handling.
	if _, err := s.products.GetProduct(ctx, trimmed); err != nil {
		if pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidProduct,
				fmt.Sprintf("product %q not found", trimmed))
		}
		return nil, err
	}

	if err := s.repo.Upsert(ctx, sessionID, trimmed, uuid.NewString()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving wishlist item")
	}
	return s.list(ctx, sessionID)
}

// Remove deletes the saved product. Removing an absent product is a no-op.
func (s *service) Remove(ctx context.Context, sessionID, productID string) ([]ItemView, error) {
	if err := requireSession(sessionID); err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, sessionID, strings.TrimSpace(productID)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "removing wishlist item")
	}
	return s.list(ctx, sessionID)
}

func (s *service) list(ctx context.Context, sessionID string) ([]ItemView, error) {
	entries, err := s.repo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing wishlist")
	}

	views := make([]ItemView, 0, len(entries))
	for _, entry := range entries {
		view := ItemView{
			ID:        entry.ID.String(),
			ProductID: entry.ProductID,
		}
		product, err := s.products.GetProduct(ctx, entry.ProductID)
		if err != nil {
			// Products retired after being saved still show as bare entries.
			if pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
				views = append(views, view)
				continue
			}
			return nil, err
		}
		view.Name = product.Name
		view.Price = product.Price
		view.OriginalPrice = product.OriginalPrice
		view.Category = product.Category
		view.ImageURL = product.ImageURL
		views = append(views, view)
	}
	return views, nil
}

func requireSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return nil
}
