package usecase

import (
	"context"

	"skinconsult-api/internal/converter"
	"skinconsult-api/internal/delivery/dto"
	"skinconsult-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type DoctorUsecase interface {
	ListApproved(ctx context.Context) (*dto.DoctorListResponse, error)
	SetApproval(ctx context.Context, doctorUserID uuid.UUID, approved bool) error
}

type doctorUsecase struct {
	log        *logrus.Logger
	doctorRepo repository.DoctorProfileRepository
}

func NewDoctorUsecase(log *logrus.Logger, doctorRepo repository.DoctorProfileRepository) DoctorUsecase {
	return &doctorUsecase{
		log:        log,
		doctorRepo: doctorRepo,
	}
}

// ListApproved returns the public directory of approved doctors
func (u *doctorUsecase) ListApproved(ctx context.Context) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindApproved(ctx)
	if err != nil {
		u.log.Warnf("Failed to find approved doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

// SetApproval flips a doctor's approval flag. Admin only, enforced by the
// role middleware.
func (u *doctorUsecase) SetApproval(ctx context.Context, doctorUserID uuid.UUID, approved bool) error {
	rows, err := u.doctorRepo.SetApproved(ctx, doctorUserID, approved)
	if err != nil {
		u.log.Warnf("Failed to set approval for doctor %s: %+v", doctorUserID, err)
		return err
	}
	if rows == 0 {
		return ErrDoctorNotFound
	}
	return nil
}
