package entity

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyKey remembers the response to a tax invoice generation so a
// retried request does not issue a second invoice
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Key          string    `gorm:"uniqueIndex:idx_idempotency_user_key;size:255;not null"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_idempotency_user_key"`
	Endpoint     string    `gorm:"size:255;not null"` // e.g. "POST /api/v1/tax-invoices"
	RequestHash  string    `gorm:"size:64"`           // sha256 of the request body
	ResponseCode int       `gorm:"not null"`
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired reports whether the key is past its retention window at now
func (i *IdempotencyKey) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// MatchesRequest reports whether a replayed request carries the same body
func (i *IdempotencyKey) MatchesRequest(hash string) bool {
	return i.RequestHash == "" || i.RequestHash == hash
}
