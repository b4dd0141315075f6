package repository

import (
	"context"

	"skinconsult-api/internal/domain/entity"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindUserIDsByRole(ctx context.Context, roleID int) ([]uuid.UUID, error)
}

type DoctorProfileRepository interface {
	Create(ctx context.Context, profile *entity.DoctorProfile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error)
	FindApproved(ctx context.Context) ([]entity.DoctorProfile, error)
	SetApproved(ctx context.Context, userID uuid.UUID, approved bool) (int64, error)
	UpdateAggregates(ctx context.Context, userID uuid.UUID, totalReviews int, averageRating float64) error
}

type PatientProfileRepository interface {
	Create(ctx context.Context, profile *entity.PatientProfile) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.PatientProfile, error)
}
