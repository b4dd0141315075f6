package converter

import (
	"skinconsult-api/internal/delivery/dto"
	"skinconsult-api/internal/domain/entity"
)

// DoctorToResponse converts a DoctorProfile entity to its response DTO
func DoctorToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	return &dto.DoctorResponse{
		UserID:            profile.UserID,
		FullName:          profile.User.FullName,
		LicenseNumber:     profile.LicenseNumber,
		Specialization:    profile.Specialization,
		YearsOfExperience: profile.YearsOfExperience,
		IsApproved:        profile.IsApproved,
		AverageRating:     profile.AverageRating,
		TotalReviews:      profile.TotalReviews,
	}
}

// DoctorsToResponses converts a slice of doctor profiles
func DoctorsToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i, profile := range profiles {
		responses[i] = *DoctorToResponse(&profile)
	}
	return responses
}
