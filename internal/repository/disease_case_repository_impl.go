package repository

import (
	"context"
	"errors"

	"skinconsult-api/internal/domain/entity"
	domainRepo "skinconsult-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type diseaseCaseRepository struct {
	db *gorm.DB
}

func NewDiseaseCaseRepository(db *gorm.DB) domainRepo.DiseaseCaseRepository {
	return &diseaseCaseRepository{db: db}
}

func (r *diseaseCaseRepository) Create(ctx context.Context, diseaseCase *entity.DiseaseCase) error {
	return dbFrom(ctx, r.db).Create(diseaseCase).Error
}

func (r *diseaseCaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.DiseaseCase, error) {
	var diseaseCase entity.DiseaseCase
	err := dbFrom(ctx, r.db).Where("id = ?", id).First(&diseaseCase).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &diseaseCase, nil
}

func (r *diseaseCaseRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.DiseaseCase, error) {
	var cases []entity.DiseaseCase
	err := dbFrom(ctx, r.db).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&cases).Error
	if err != nil {
		return nil, err
	}
	return cases, nil
}

func (r *diseaseCaseRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.CaseStatus) error {
	return dbFrom(ctx, r.db).Model(&entity.DiseaseCase{}).
		Where("id = ?", id).
		Update("status", status).Error
}
