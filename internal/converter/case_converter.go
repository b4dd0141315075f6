package converter

import (
	"skinconsult-api/internal/delivery/dto"
	"skinconsult-api/internal/domain/entity"
)

// DiseaseCaseToResponse converts a DiseaseCase entity to its response DTO
func DiseaseCaseToResponse(diseaseCase *entity.DiseaseCase, baseURL string) *dto.DiseaseCaseResponse {
	if diseaseCase == nil {
		return nil
	}

	return &dto.DiseaseCaseResponse{
		ID:          diseaseCase.ID,
		ImageURL:    baseURL + diseaseCase.ImagePath,
		AiDiagnosis: diseaseCase.AiDiagnosis,
		Confidence:  diseaseCase.Confidence,
		Notes:       diseaseCase.Notes,
		Status:      string(diseaseCase.Status),
		CreatedAt:   diseaseCase.CreatedAt,
	}
}

// DiseaseCasesToResponses converts a slice of disease cases
func DiseaseCasesToResponses(cases []entity.DiseaseCase, baseURL string) []dto.DiseaseCaseResponse {
	responses := make([]dto.DiseaseCaseResponse, len(cases))
	for i, diseaseCase := range cases {
		responses[i] = *DiseaseCaseToResponse(&diseaseCase, baseURL)
	}
	return responses
}
