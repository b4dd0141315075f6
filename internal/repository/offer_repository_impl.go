package repository

import (
	"context"
	"errors"

	"skinconsult-api/internal/domain/entity"
	domainRepo "skinconsult-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type offerRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) domainRepo.OfferRepository {
	return &offerRepository{db: db}
}

func (r *offerRepository) Create(ctx context.Context, offer *entity.Offer) error {
	return dbFrom(ctx, r.db).Create(offer).Error
}

func (r *offerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error) {
	var offer entity.Offer
	err := dbFrom(ctx, r.db).
		Preload("Consultation").
		Preload("Doctor.User").
		Where("id = ?", id).
		First(&offer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &offer, nil
}

func (r *offerRepository) FindActiveByConsultation(ctx context.Context, consultationID uuid.UUID) ([]entity.Offer, error) {
	var offers []entity.Offer
	err := dbFrom(ctx, r.db).
		Preload("Doctor.User").
		Where("consultation_id = ? AND status = ?", consultationID, entity.OfferStatusActive).
		Order("price ASC").
		Find(&offers).Error
	if err != nil {
		return nil, err
	}
	return offers, nil
}

func (r *offerRepository) HasActiveOffer(ctx context.Context, consultationID, doctorID uuid.UUID) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&entity.Offer{}).
		Where("consultation_id = ? AND doctor_id = ? AND status = ?", consultationID, doctorID, entity.OfferStatusActive).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *offerRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OfferStatus) error {
	return dbFrom(ctx, r.db).Model(&entity.Offer{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *offerRepository) RejectSiblings(ctx context.Context, consultationID, keepOfferID uuid.UUID) error {
	return dbFrom(ctx, r.db).Model(&entity.Offer{}).
		Where("consultation_id = ? AND id <> ?", consultationID, keepOfferID).
		Update("status", entity.OfferStatusRejected).Error
}
