package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment tracks a hosted-checkout session against the card processor.
// Manual Easypaisa submissions live in EasypaisaPayment instead.
type Payment struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CourseID          uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Provider          string    `gorm:"size:50;not null" json:"provider"`
	ProviderSessionID *string   `gorm:"size:255;unique" json:"provider_session_id,omitempty"`
	Amount            float64   `gorm:"type:numeric(10,2);not null" json:"amount"`
	Currency          string    `gorm:"size:3" json:"currency"`
	Status            string    `gorm:"size:20;not null" json:"status"`

	User   User   `gorm:"foreignkey:UserID" json:"-"`
	Course Course `gorm:"foreignkey:CourseID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
