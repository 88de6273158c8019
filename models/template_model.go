package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TemplateEntry holds a student's answers for one data-entry template of a
// canvas. Answers are a map of field keys to strings; the allowed keys come from the
// template registry and are checked when answers are saved.
type TemplateEntry struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	CanvasID      uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_canvas_template" json:"canvas_id"`
	TemplateID    string            `gorm:"size:50;not null;uniqueIndex:idx_canvas_template" json:"template_id"`
	ComponentName string            `gorm:"size:100;not null" json:"component_name"`
	ChecklistStep int               `gorm:"not null" json:"checklist_step"`
	Content       datatypes.JSONMap `json:"content"`
	Completed     bool              `gorm:"default:false" json:"completed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *TemplateEntry) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type StepDescription struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ComponentName string    `gorm:"size:100;not null;index" json:"component_name"`
	StepNumber    int       `gorm:"not null" json:"step_number"`
	Description   string    `gorm:"type:text;not null" json:"description"`
}

func (s *StepDescription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
