package repository

import (
	"context"

	"skinconsult-api/internal/domain/entity"

	"github.com/google/uuid"
)

type DiseaseCaseRepository interface {
	Create(ctx context.Context, diseaseCase *entity.DiseaseCase) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.DiseaseCase, error)
	FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.DiseaseCase, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.CaseStatus) error
}
