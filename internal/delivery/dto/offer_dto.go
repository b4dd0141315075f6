package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateOfferRequest struct {
	Price decimal.Decimal `json:"price" validate:"required"`
	Notes string          `json:"notes" validate:"omitempty,max=2000"`
}

// Response DTOs

type OfferResponse struct {
	ID             uuid.UUID       `json:"id"`
	ConsultationID uuid.UUID       `json:"consultation_id"`
	DoctorID       uuid.UUID       `json:"doctor_id"`
	DoctorName     string          `json:"doctor_name"`
	Price          decimal.Decimal `json:"price"`
	Notes          string          `json:"notes,omitempty"`
	Status         string          `json:"status"`
	AverageRating  float64         `json:"average_rating"`
	TotalReviews   int             `json:"total_reviews"`
	ClosedCases    int64           `json:"closed_cases"`
	CreatedAt      time.Time       `json:"created_at"`
}

type OfferListResponse struct {
	Offers []OfferResponse `json:"offers"`
	Total  int             `json:"total"`
}

type SelectOfferResponse struct {
	ConsultationID uuid.UUID `json:"consultation_id"`
	OfferID        uuid.UUID `json:"offer_id"`
	Message        string    `json:"message"`
}
