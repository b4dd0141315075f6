package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateConsultationRequest struct {
	DiseaseCaseID uuid.UUID `json:"disease_case_id" validate:"required"`
	Notes         string    `json:"notes" validate:"omitempty,max=2000"`
}

type FinalizeConsultationRequest struct {
	FinalDiagnosis   string `json:"final_diagnosis" validate:"required,min=2"`
	DoctorFinalNotes string `json:"doctor_final_notes" validate:"omitempty,max=4000"`
}

// Response DTOs

type ConsultationResponse struct {
	ID               uuid.UUID        `json:"id"`
	PatientID        uuid.UUID        `json:"patient_id"`
	DoctorID         *uuid.UUID       `json:"doctor_id,omitempty"`
	DoctorName       string           `json:"doctor_name,omitempty"`
	DiseaseCaseID    uuid.UUID        `json:"disease_case_id"`
	Status           string           `json:"status"`
	Price            *decimal.Decimal `json:"price,omitempty"`
	IsPaid           bool             `json:"is_paid"`
	Notes            string           `json:"notes,omitempty"`
	SelectedOfferID  *uuid.UUID       `json:"selected_offer_id,omitempty"`
	FinalDiagnosis   string           `json:"final_diagnosis,omitempty"`
	DoctorFinalNotes string           `json:"doctor_final_notes,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	ClosedAt         *time.Time       `json:"closed_at,omitempty"`
}

// OpenConsultationResponse is the doctor-facing projection of an open
// request, annotated with the AI case summary.
type OpenConsultationResponse struct {
	ID          uuid.UUID `json:"id"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	Notes       string    `json:"notes,omitempty"`
	PatientID   uuid.UUID `json:"patient_id"`
	PatientName string    `json:"patient_name"`
	CaseID      uuid.UUID `json:"disease_case_id"`
	AiDiagnosis string    `json:"ai_diagnosis"`
	Confidence  float64   `json:"confidence"`
	ImageURL    string    `json:"image_url"`
}

type ConsultationListResponse struct {
	Consultations []ConsultationResponse `json:"consultations"`
	Total         int                    `json:"total"`
}

// RecentConsultationResponse is the patient dashboard projection.
type RecentConsultationResponse struct {
	ConsultationID uuid.UUID `json:"consultation_id"`
	DoctorName     string    `json:"doctor_name"`
	AiDiagnosis    string    `json:"ai_diagnosis"`
	Confidence     float64   `json:"confidence_percent"`
	Status         string    `json:"status"`
	Badge          string    `json:"badge"`
	CreatedAt      time.Time `json:"created_at"`
}
