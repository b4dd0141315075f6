package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type SimulatePaymentRequest struct {
	ConsultationID uuid.UUID `json:"consultation_id" validate:"required"`
	Method         string    `json:"method" validate:"required,oneof=CASH CARD WALLET"`
}

// Response DTOs

type PaymentResponse struct {
	ID             uuid.UUID       `json:"id"`
	ConsultationID uuid.UUID       `json:"consultation_id"`
	Amount         decimal.Decimal `json:"amount"`
	Method         string          `json:"method"`
	Status         string          `json:"status"`
	Provider       string          `json:"provider"`
	ReferenceNo    string          `json:"reference_no"`
	CreatedAt      time.Time       `json:"created_at"`
}

type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
	Total    int               `json:"total"`
}
