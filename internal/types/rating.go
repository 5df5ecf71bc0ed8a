package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Rating is an append-only feedback row for a batch of proposed hymns.
// There is no update or delete path.
type Rating struct {
	ID                  uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Rating              string        `gorm:"not null;column:rating" json:"rating"`
	ProposedHymnNumbers pq.Int64Array `gorm:"type:integer[];not null;column:proposed_hymn_numbers" json:"proposed_hymn_numbers"`
	ClientFingerprint   string        `gorm:"not null;column:client_fingerprint" json:"client_fingerprint"`
	UserID              *uuid.UUID    `gorm:"type:uuid;index" json:"user_id"`
	CreatedAt           time.Time     `gorm:"not null" json:"created_at"`
}

func (Rating) TableName() string {
	return "ratings"
}

const (
	RatingUp   = "up"
	RatingDown = "down"
)
