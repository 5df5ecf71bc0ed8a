package types

import (
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// EmbeddingDim is the dimensionality of the hymn embedding column and of
// every vector produced by an EmbeddingProvider.
const EmbeddingDim = 768

// Hymn is read-only reference data. The table is owned and populated outside
// this service's write path; nothing here ever mutates it.
type Hymn struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Number    string          `gorm:"not null;column:number" json:"number"`
	Name      string          `gorm:"not null;column:name" json:"name"`
	Category  string          `gorm:"not null;column:category" json:"category"`
	Text      string          `gorm:"not null;column:text" json:"text"`
	Embedding pgvector.Vector `gorm:"type:vector(768)" json:"-"`
}

func (Hymn) TableName() string {
	return "hymns"
}
