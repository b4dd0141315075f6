package entity

import (
	"time"

	"github.com/google/uuid"
)

// CaseStatus tracks a skin case alongside the consultation lifecycle
type CaseStatus string

const (
	CaseStatusAIDone          CaseStatus = "AI_DONE"
	CaseStatusRequestedDoctor CaseStatus = "REQUESTED_DOCTOR"
	CaseStatusInConsultation  CaseStatus = "IN_CONSULTATION"
	CaseStatusClosed          CaseStatus = "CLOSED"
)

// DiseaseCase is the AI-scored skin-image record a consultation is
// requested against.
type DiseaseCase struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	ImagePath   string     `gorm:"type:varchar(300);not null" json:"image_path"`
	AiDiagnosis string     `gorm:"type:varchar(255);not null" json:"ai_diagnosis"`
	Confidence  float64    `gorm:"not null" json:"confidence"`
	Notes       string     `gorm:"type:text" json:"notes,omitempty"`
	Status      CaseStatus `gorm:"type:varchar(30);not null;default:'AI_DONE';index" json:"status"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (DiseaseCase) TableName() string {
	return "disease_cases"
}
