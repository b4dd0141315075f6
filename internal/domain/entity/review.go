package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review is a patient's post-close rating of a doctor. At most one review
// per consultation (unique index); rows are immutable.
type Review struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ConsultationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"consultation_id"`
	DoctorID       uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID      uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	Rating         int       `gorm:"not null" json:"rating"`
	Comment        *string   `gorm:"type:varchar(1000)" json:"comment,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"-"`
}

func (Review) TableName() string {
	return "doctor_reviews"
}
