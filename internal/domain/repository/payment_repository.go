package repository

import (
	"context"

	"skinconsult-api/internal/domain/entity"

	"github.com/google/uuid"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Payment, error)
}
