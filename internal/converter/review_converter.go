package converter

import (
	"skinconsult-api/internal/delivery/dto"
	"skinconsult-api/internal/domain/entity"
)

// ReviewToResponse converts a Review entity to its response DTO
func ReviewToResponse(review *entity.Review) *dto.ReviewResponse {
	if review == nil {
		return nil
	}

	response := &dto.ReviewResponse{
		ID:             review.ID,
		ConsultationID: review.ConsultationID,
		DoctorID:       review.DoctorID,
		Rating:         review.Rating,
		CreatedAt:      review.CreatedAt,
	}
	if review.Comment != nil {
		response.Comment = *review.Comment
	}
	return response
}

// ReviewsToResponses converts a slice of reviews
func ReviewsToResponses(reviews []entity.Review) []dto.ReviewResponse {
	responses := make([]dto.ReviewResponse, len(reviews))
	for i, review := range reviews {
		responses[i] = *ReviewToResponse(&review)
	}
	return responses
}
