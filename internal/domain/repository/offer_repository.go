package repository

import (
	"context"

	"skinconsult-api/internal/domain/entity"

	"github.com/google/uuid"
)

type OfferRepository interface {
	Create(ctx context.Context, offer *entity.Offer) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error)
	// FindActiveByConsultation returns ACTIVE offers cheapest first.
	FindActiveByConsultation(ctx context.Context, consultationID uuid.UUID) ([]entity.Offer, error)
	HasActiveOffer(ctx context.Context, consultationID, doctorID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OfferStatus) error
	// RejectSiblings marks every other offer of the consultation REJECTED.
	RejectSiblings(ctx context.Context, consultationID, keepOfferID uuid.UUID) error
}
