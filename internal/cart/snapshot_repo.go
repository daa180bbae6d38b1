package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/verdantly/verdantly-backend/pkg/db/models"
)

// DBSnapshotStore persists cart snapshots in the relational database. It is
// the fallback when Redis is not configured; expiry is enforced on restore
// rather than by the store.
type DBSnapshotStore struct {
	db *gorm.DB
}

// NewDBSnapshotStore builds the store.
func NewDBSnapshotStore(db *gorm.DB) (*DBSnapshotStore, error) {
	if db == nil {
		return nil, errors.New("db handle required")
	}
	return &DBSnapshotStore{db: db}, nil
}

func (s *DBSnapshotStore) Save(ctx context.Context, sessionID string, snap Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding cart snapshot: %w", err)
	}
	record := models.CartSnapshot{
		SessionID:      sessionID,
		Payload:        payload,
		LastModifiedAt: snap.LastModifiedAt,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "last_modified_at", "updated_at"}),
		}).
		Create(&record).Error
}

func (s *DBSnapshotStore) Load(ctx context.Context, sessionID string) (*Snapshot, error) {
	var record models.CartSnapshot
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading cart snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(record.Payload, &snap); err != nil {
		return nil, nil
	}
	return &snap, nil
}

func (s *DBSnapshotStore) Delete(ctx context.Context, sessionID string) error {
	return s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&models.CartSnapshot{}).Error
}
