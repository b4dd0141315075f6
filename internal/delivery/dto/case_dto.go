package dto

import (
	"time"

	"github.com/google/uuid"
)

// Response DTOs

type DiseaseCaseResponse struct {
	ID          uuid.UUID `json:"id"`
	ImageURL    string    `json:"image_url"`
	AiDiagnosis string    `json:"ai_diagnosis"`
	Confidence  float64   `json:"confidence"`
	Notes       string    `json:"notes,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type DiseaseCaseListResponse struct {
	Cases []DiseaseCaseResponse `json:"cases"`
	Total int                   `json:"total"`
}
