package repository

import (
	"context"

	"skinconsult-api/internal/domain/entity"

	"github.com/google/uuid"
)

type ConsultationRepository interface {
	Create(ctx context.Context, consultation *entity.Consultation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Consultation, error)
	// ExistsActiveForCase reports whether a non-terminal consultation
	// already occupies the disease case.
	ExistsActiveForCase(ctx context.Context, diseaseCaseID uuid.UUID) (bool, error)
	FindOpen(ctx context.Context) ([]entity.Consultation, error)
	FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Consultation, error)
	FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Consultation, error)
	Save(ctx context.Context, consultation *entity.Consultation) error
	// UpdateStatusIf moves the consultation to `to` only while its current
	// status is one of `from`, returning affected rows. This is the
	// compare-and-swap used to keep transitions forward-only under
	// concurrent writers.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from []entity.ConsultationStatus, to entity.ConsultationStatus) (int64, error)
	// MarkPaid flips is_paid and opens the chat phase in one statement,
	// guarded on the status still being OFFER_SELECTED and the flag still
	// being unset. Affected rows == 0 means another payment won the race.
	MarkPaid(ctx context.Context, id uuid.UUID) (int64, error)
	CountClosedByDoctor(ctx context.Context, doctorID uuid.UUID) (int64, error)
}
