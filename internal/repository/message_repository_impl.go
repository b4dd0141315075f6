package repository

import (
	"context"

	"skinconsult-api/internal/domain/entity"
	domainRepo "skinconsult-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) domainRepo.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *entity.Message) error {
	return dbFrom(ctx, r.db).Create(message).Error
}

func (r *messageRepository) FindByConsultation(ctx context.Context, consultationID uuid.UUID) ([]entity.Message, error) {
	var messages []entity.Message
	err := dbFrom(ctx, r.db).
		Preload("Sender").
		Where("consultation_id = ?", consultationID).
		Order("timestamp ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) MarkReadForReceiver(ctx context.Context, consultationID, readerID uuid.UUID) error {
	return dbFrom(ctx, r.db).Model(&entity.Message{}).
		Where("consultation_id = ? AND sender_id <> ? AND is_read = false", consultationID, readerID).
		Update("is_read", true).Error
}
