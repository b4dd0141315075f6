package dto

import "github.com/google/uuid"

type DoctorResponse struct {
	UserID            uuid.UUID `json:"user_id"`
	FullName          string    `json:"full_name"`
	LicenseNumber     string    `json:"license_number,omitempty"`
	Specialization    string    `json:"specialization,omitempty"`
	YearsOfExperience int       `json:"years_of_experience"`
	IsApproved        bool      `json:"is_approved"`
	AverageRating     float64   `json:"average_rating"`
	TotalReviews      int       `json:"total_reviews"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
