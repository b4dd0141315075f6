package converter

import (
	"skinconsult-api/internal/delivery/dto"
	"skinconsult-api/internal/domain/entity"
)

// PaymentToResponse converts a Payment entity to its response DTO
func PaymentToResponse(payment *entity.Payment) *dto.PaymentResponse {
	if payment == nil {
		return nil
	}

	return &dto.PaymentResponse{
		ID:             payment.ID,
		ConsultationID: payment.ConsultationID,
		Amount:         payment.Amount,
		Method:         string(payment.Method),
		Status:         string(payment.Status),
		Provider:       payment.Provider,
		ReferenceNo:    payment.ReferenceNo,
		CreatedAt:      payment.CreatedAt,
	}
}

// PaymentsToResponses converts a slice of payments
func PaymentsToResponses(payments []entity.Payment) []dto.PaymentResponse {
	responses := make([]dto.PaymentResponse, len(payments))
	for i, payment := range payments {
		responses[i] = *PaymentToResponse(&payment)
	}
	return responses
}
