package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Duplicate (student, course) rows are possible: the direct enroll path
// pre-checks in the handler, but payment approval inserts without a check.
type Enrollment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	CourseID  uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	Progress  int       `gorm:"not null;default:0" json:"progress"`
	Completed bool      `gorm:"default:false" json:"completed"`

	CertificateURL *string `gorm:"size:255" json:"certificate_url,omitempty"`
	ReceiptNumber  *string `gorm:"size:20" json:"receipt_number,omitempty"`

	Student User   `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Course  Course `gorm:"foreignkey:CourseID" json:"course,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
