package types

import (
	"time"

	"github.com/google/uuid"
)

// Set is a named, user-owned grouping of hymn choices across the five
// liturgical slots. (user_id, name) is unique; every read and write is
// scoped to the owning user.
type Set struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sets_user_name" json:"-"`
	Name        string    `gorm:"size:200;not null;uniqueIndex:idx_sets_user_name" json:"name"`
	Entrance    string    `gorm:"size:200;not null;default:''" json:"entrance"`
	Offertory   string    `gorm:"size:200;not null;default:''" json:"offertory"`
	Communion   string    `gorm:"size:200;not null;default:''" json:"communion"`
	Adoration   string    `gorm:"size:200;not null;default:''" json:"adoration"`
	Recessional string    `gorm:"size:200;not null;default:''" json:"recessional"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Set) TableName() string {
	return "sets"
}
