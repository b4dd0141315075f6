package repository

import (
	"context"
	"errors"

	"skinconsult-api/internal/domain/entity"
	domainRepo "skinconsult-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type consultationRepository struct {
	db *gorm.DB
}

func NewConsultationRepository(db *gorm.DB) domainRepo.ConsultationRepository {
	return &consultationRepository{db: db}
}

func (r *consultationRepository) Create(ctx context.Context, consultation *entity.Consultation) error {
	return dbFrom(ctx, r.db).Create(consultation).Error
}

func (r *consultationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Consultation, error) {
	var consultation entity.Consultation
	err := dbFrom(ctx, r.db).
		Preload("DiseaseCase").
		Preload("Patient.User").
		Preload("Doctor.User").
		Where("id = ?", id).
		First(&consultation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &consultation, nil
}

func (r *consultationRepository) ExistsActiveForCase(ctx context.Context, diseaseCaseID uuid.UUID) (bool, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&entity.Consultation{}).
		Where("disease_case_id = ? AND status NOT IN ?", diseaseCaseID,
			[]entity.ConsultationStatus{entity.ConsultationStatusClosed, entity.ConsultationStatusCancelled}).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *consultationRepository) FindOpen(ctx context.Context) ([]entity.Consultation, error) {
	var consultations []entity.Consultation
	err := dbFrom(ctx, r.db).
		Preload("DiseaseCase").
		Preload("Patient.User").
		Where("status IN ?", []entity.ConsultationStatus{entity.ConsultationStatusOpen, entity.ConsultationStatusOffering}).
		Order("created_at DESC").
		Find(&consultations).Error
	if err != nil {
		return nil, err
	}
	return consultations, nil
}

func (r *consultationRepository) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Consultation, error) {
	var consultations []entity.Consultation
	err := dbFrom(ctx, r.db).
		Preload("DiseaseCase").
		Preload("Doctor.User").
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&consultations).Error
	if err != nil {
		return nil, err
	}
	return consultations, nil
}

func (r *consultationRepository) FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Consultation, error) {
	var consultations []entity.Consultation
	err := dbFrom(ctx, r.db).
		Preload("DiseaseCase").
		Preload("Patient.User").
		Where("doctor_id = ?", doctorID).
		Order("created_at DESC").
		Find(&consultations).Error
	if err != nil {
		return nil, err
	}
	return consultations, nil
}

func (r *consultationRepository) Save(ctx context.Context, consultation *entity.Consultation) error {
	return dbFrom(ctx, r.db).Save(consultation).Error
}

func (r *consultationRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, from []entity.ConsultationStatus, to entity.ConsultationStatus) (int64, error) {
	result := dbFrom(ctx, r.db).Model(&entity.Consultation{}).
		Where("id = ? AND status IN ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *consultationRepository) MarkPaid(ctx context.Context, id uuid.UUID) (int64, error) {
	// Single-statement compare-and-swap: the one-shot payment guarantee is
	// re-validated here at commit time, not only at the initial check.
	result := dbFrom(ctx, r.db).Model(&entity.Consultation{}).
		Where("id = ? AND status = ? AND is_paid = false", id, entity.ConsultationStatusOfferSelected).
		Updates(map[string]interface{}{
			"is_paid": true,
			"status":  entity.ConsultationStatusInChat,
		})
	return result.RowsAffected, result.Error
}

func (r *consultationRepository) CountClosedByDoctor(ctx context.Context, doctorID uuid.UUID) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&entity.Consultation{}).
		Where("doctor_id = ? AND status = ?", doctorID, entity.ConsultationStatusClosed).
		Count(&count).Error
	return count, err
}
