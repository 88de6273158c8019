package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ComponentNotStarted = "not started"
	ComponentInProgress = "in progress"
	ComponentCompleted  = "completed"
)

// DefaultComponents is the fixed set of research components every new canvas
// starts with, in display order.
var DefaultComponents = []string{
	"Problem Identification",
	"Literature Search",
	"Existing Solutions",
	"Market Landscape",
	"Novelty",
	"Research Question",
	"Research Methodology",
	"Key Resources",
	"Funding",
	"Team Capacities",
	"Research Outcome",
}

type Canvas struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;unique" json:"user_id"`
	ResearchTitle string    `gorm:"size:255;not null" json:"research_title"`
	AuthorName    string    `gorm:"size:255" json:"author_name"`

	Components []CanvasComponent `gorm:"foreignkey:CanvasID" json:"components"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CanvasComponent struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CanvasID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_canvas_component" json:"canvas_id"`
	Name     string    `gorm:"size:100;not null;uniqueIndex:idx_canvas_component" json:"name"`
	Status   string    `gorm:"size:20;not null;default:'not started'" json:"status"`
	Position int       `gorm:"not null" json:"position"`
}

func (c *Canvas) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c *CanvasComponent) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
