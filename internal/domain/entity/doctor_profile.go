package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DoctorProfile represents doctor-specific profile data.
// AverageRating and TotalReviews are eagerly maintained aggregates,
// recomputed whenever a review is created.
type DoctorProfile struct {
	UserID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	LicenseNumber     string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	Specialization    string          `gorm:"type:varchar(100);index" json:"specialization"`
	YearsOfExperience int             `gorm:"not null;default:0" json:"years_of_experience"`
	IsApproved        bool            `gorm:"not null;default:false;index" json:"is_approved"`
	ConsultationPrice decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"consultation_price"`
	AverageRating     float64         `gorm:"not null;default:0" json:"average_rating"`
	TotalReviews      int             `gorm:"not null;default:0" json:"total_reviews"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}
