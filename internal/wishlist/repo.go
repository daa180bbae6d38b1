package wishlist

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/verdantly/verdantly-backend/pkg/db/models"
)

// Repository persists wishlist entries.
type Repository interface {
	ListBySession(ctx context.Context, sessionID string) ([]models.WishlistItem, error)
	Upsert(ctx context.Context, sessionID, productID, id string) error
	Delete(ctx context.Context, sessionID, productID string) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds the wishlist repository.
func NewRepository(db *gorm.DB) (Repository, error) {
	if db == nil {
		return nil, fmt.Errorf("db handle required")
	}
	return &repository{db: db}, nil
}

func (r *repository) ListBySession(ctx context.Context, sessionID string) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("listing wishlist for session: %w", err)
	}
	return items, nil
}

// Upsert inserts the entry, silently keeping the existing row when the
// session already saved the product.
func (r *repository) Upsert(ctx context.Context, sessionID, productID, id string) error {
	entryID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("parsing wishlist entry id: %w", err)
	}
	item := models.WishlistItem{
		ID:        entryID,
		SessionID: sessionID,
		ProductID: productID,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(&item).Error
}

func (r *repository) Delete(ctx context.Context, sessionID, productID string) error {
	return r.db.WithContext(ctx).
		Where("session_id = ? AND product_id = ?", sessionID, productID).
		Delete(&models.WishlistItem{}).Error
}
