package repository

import (
	"context"

	"skinconsult-api/internal/domain/entity"
	domainRepo "skinconsult-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) domainRepo.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	return dbFrom(ctx, r.db).Create(review).Error
}

func (r *reviewRepository) ExistsForConsultation(ctx context.Context, consultationID uuid.UUID) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&entity.Review{}).
		Where("consultation_id = ?", consultationID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *reviewRepository) FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Review, error) {
	var reviews []entity.Review
	err := dbFrom(ctx, r.db).
		Where("doctor_id = ?", doctorID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Review, error) {
	var reviews []entity.Review
	err := dbFrom(ctx, r.db).
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) AggregateByDoctor(ctx context.Context, doctorID uuid.UUID) (int, float64, error) {
	var row struct {
		Total int
		Avg   *float64
	}
	err := dbFrom(ctx, r.db).Model(&entity.Review{}).
		Select("COUNT(*) AS total, AVG(rating) AS avg").
		Where("doctor_id = ?", doctorID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	avg := 0.0
	if row.Avg != nil {
		avg = *row.Avg
	}
	return row.Total, avg, nil
}
