package repository

import (
	"context"

	"skinconsult-api/internal/domain/entity"

	"github.com/google/uuid"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	ExistsForConsultation(ctx context.Context, consultationID uuid.UUID) (bool, error)
	// FindByDoctorID returns reviews newest first.
	FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Review, error)
	FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Review, error)
	// AggregateByDoctor recomputes (count, mean) over all ratings of the
	// doctor; mean is 0 when no reviews exist.
	AggregateByDoctor(ctx context.Context, doctorID uuid.UUID) (int, float64, error)
}
