package types

import (
	"time"

	"github.com/google/uuid"
)

// Commands are validated request payloads handed from handlers to services;
// DTOs are the row projections serialized back to clients.

type CreateSetCommand struct {
	Name string
}

type UpdateSetCommand struct {
	Name        string
	Entrance    string
	Offertory   string
	Communion   string
	Adoration   string
	Recessional string
}

type ListSetsQuery struct {
	Search string
	Page   int
	Limit  int
	Sort   string
	Order  string
}

type SubmitRatingCommand struct {
	Rating              string
	ProposedHymnNumbers []string
	ClientFingerprint   string
}

type GenerateSuggestionsCommand struct {
	Text  string
	Count int
}

type SetDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Entrance    string    `json:"entrance"`
	Offertory   string    `json:"offertory"`
	Communion   string    `json:"communion"`
	Adoration   string    `json:"adoration"`
	Recessional string    `json:"recessional"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewSetDTO(s *Set) SetDTO {
	return SetDTO{
		ID:          s.ID,
		Name:        s.Name,
		Entrance:    s.Entrance,
		Offertory:   s.Offertory,
		Communion:   s.Communion,
		Adoration:   s.Adoration,
		Recessional: s.Recessional,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// SuggestionDTO is the transient projection returned by similarity search;
// gorm scans the selected hymn columns straight into it.
type SuggestionDTO struct {
	Number   string `gorm:"column:number" json:"number"`
	Name     string `gorm:"column:name" json:"name"`
	Category string `gorm:"column:category" json:"category"`
}
