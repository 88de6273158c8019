package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EasypaisaPayment is a manual proof-of-payment: the student uploads a
// transaction id plus a screenshot and an admin verifies it by hand.
type EasypaisaPayment struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CourseID      uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	FullName      string    `gorm:"size:255" json:"full_name"`
	TransactionID string    `gorm:"size:255;not null" json:"transaction_id"`
	ScreenshotURL string    `gorm:"size:255;not null" json:"screenshot_url"`
	IsVerified    bool      `gorm:"default:false" json:"is_verified"`

	User   User   `gorm:"foreignkey:UserID" json:"user,omitempty"`
	Course Course `gorm:"foreignkey:CourseID" json:"course,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *EasypaisaPayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
