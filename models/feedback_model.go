package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Feedback struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudentID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_feedback_student_course" json:"student_id"`
	CourseID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_feedback_student_course" json:"course_id"`
	InstructorID uuid.UUID `gorm:"type:uuid;not null;index" json:"instructor_id"`
	Rating       int       `gorm:"not null" json:"rating"`
	Comment      string    `gorm:"type:text" json:"comment"`

	Student    User   `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Course     Course `gorm:"foreignkey:CourseID" json:"course,omitempty"`
	Instructor User   `gorm:"foreignkey:InstructorID" json:"instructor,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
