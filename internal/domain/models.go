package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SearchResult is one ranked hit from the documentation search endpoint.
type SearchResult struct {
	RankOrder int    `json:"rank_order"`
	URL       string `json:"url"`
	Title     string `json:"title"`
	Context   string `json:"context,omitempty"`
}

// RecommendationResult is one related page suggested for a documentation URL.
type RecommendationResult struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Context string `json:"context,omitempty"`
}

type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeInvalid Outcome = "invalid"
	OutcomeError   Outcome = "error"
)

// Invocation records a single tool call.
type Invocation struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ToolID     string    `gorm:"index;type:text"`
	Arguments  string    `gorm:"type:text"`
	Outcome    Outcome   `gorm:"type:text"`
	Error      string    `gorm:"type:text"`
	ResultSize int
	Duration   time.Duration
	CreatedAt  time.Time `gorm:"index"`
}

func (i *Invocation) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
