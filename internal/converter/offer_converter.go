package converter

import (
	"skinconsult-api/internal/delivery/dto"
	"skinconsult-api/internal/domain/entity"
)

// OfferToResponse converts an Offer entity, annotated with the doctor's
// aggregate rating and closed-case count.
func OfferToResponse(offer *entity.Offer, closedCases int64) *dto.OfferResponse {
	if offer == nil {
		return nil
	}

	return &dto.OfferResponse{
		ID:             offer.ID,
		ConsultationID: offer.ConsultationID,
		DoctorID:       offer.DoctorID,
		DoctorName:     offer.Doctor.User.FullName,
		Price:          offer.Price,
		Notes:          offer.Notes,
		Status:         string(offer.Status),
		AverageRating:  offer.Doctor.AverageRating,
		TotalReviews:   offer.Doctor.TotalReviews,
		ClosedCases:    closedCases,
		CreatedAt:      offer.CreatedAt,
	}
}
