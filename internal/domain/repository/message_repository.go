package repository

import (
	"context"

	"skinconsult-api/internal/domain/entity"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	// FindByConsultation returns the full history ordered by timestamp
	// ascending.
	FindByConsultation(ctx context.Context, consultationID uuid.UUID) ([]entity.Message, error)
	// MarkReadForReceiver flips IsRead on every message of the
	// consultation not sent by readerID.
	MarkReadForReceiver(ctx context.Context, consultationID, readerID uuid.UUID) error
}
