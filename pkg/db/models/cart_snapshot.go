package models

import "time"

// CartSnapshot persists the serialized cart state for a session. Payload is
// the JSON snapshot the cart core emits; LastModifiedAt drives the expiry
// check when the snapshot is restored.
type CartSnapshot struct {
	SessionID      string    `gorm:"column:session_id;primaryKey"`
	Payload        []byte    `gorm:"column:payload;not null"`
	LastModifiedAt time.Time `gorm:"column:last_modified_at;not null"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
