package usecase

import (
	"context"
	"errors"

	"skinconsult-api/internal/converter"
	"skinconsult-api/internal/delivery/dto"
	"skinconsult-api/internal/delivery/http/middleware"
	"skinconsult-api/internal/domain/entity"
	"skinconsult-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrConsultationNotClosed = errors.New("consultation is not closed yet")
	ErrAlreadyReviewed       = errors.New("consultation has already been reviewed")
	ErrDoctorNotFound        = errors.New("doctor not found")
)

type ReviewUsecase interface {
	CreateReview(ctx context.Context, consultationID uuid.UUID, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	GetDoctorReviews(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorReviewsResponse, error)
	GetMyReviews(ctx context.Context) (*dto.ReviewListResponse, error)
}

type reviewUsecase struct {
	log              *logrus.Logger
	tx               repository.TxManager
	reviewRepo       repository.ReviewRepository
	consultationRepo repository.ConsultationRepository
	doctorRepo       repository.DoctorProfileRepository
}

func NewReviewUsecase(
	log *logrus.Logger,
	tx repository.TxManager,
	reviewRepo repository.ReviewRepository,
	consultationRepo repository.ConsultationRepository,
	doctorRepo repository.DoctorProfileRepository,
) ReviewUsecase {
	return &reviewUsecase{
		log:              log,
		tx:               tx,
		reviewRepo:       reviewRepo,
		consultationRepo: consultationRepo,
		doctorRepo:       doctorRepo,
	}
}

// CreateReview records the patient's one-time rating of a closed
// consultation and refreshes the doctor's stored aggregates in the same
// transaction.
func (u *reviewUsecase) CreateReview(ctx context.Context, consultationID uuid.UUID, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	consultation, err := u.consultationRepo.FindByID(ctx, consultationID)
	if err != nil {
		u.log.Warnf("Failed to find consultation %s: %+v", consultationID, err)
		return nil, err
	}
	if consultation == nil {
		return nil, ErrConsultationNotFound
	}
	if consultation.PatientID != userID {
		return nil, ErrNotConsultationOwner
	}
	if consultation.Status != entity.ConsultationStatusClosed || consultation.DoctorID == nil {
		return nil, ErrConsultationNotClosed
	}

	reviewed, err := u.reviewRepo.ExistsForConsultation(ctx, consultationID)
	if err != nil {
		u.log.Warnf("Failed to check existing review: %+v", err)
		return nil, err
	}
	if reviewed {
		return nil, ErrAlreadyReviewed
	}

	review := &entity.Review{
		ConsultationID: consultationID,
		DoctorID:       *consultation.DoctorID,
		PatientID:      userID,
		Rating:         req.Rating,
	}
	if req.Comment != "" {
		review.Comment = &req.Comment
	}

	err = u.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := u.reviewRepo.Create(txCtx, review); err != nil {
			return err
		}

		total, average, err := u.reviewRepo.AggregateByDoctor(txCtx, review.DoctorID)
		if err != nil {
			return err
		}
		return u.doctorRepo.UpdateAggregates(txCtx, review.DoctorID, total, average)
	})
	if err != nil {
		// unique index on consultation_id backs up the existence check
		if repository.IsUniqueViolation(err, "idx_doctor_reviews_consultation_id") {
			return nil, ErrAlreadyReviewed
		}
		u.log.Warnf("Failed to create review for consultation %s: %+v", consultationID, err)
		return nil, err
	}

	return converter.ReviewToResponse(review), nil
}

// GetDoctorReviews returns a doctor's public review sheet. The count and
// mean are recomputed from the review rows rather than read from the
// profile aggregates, so any drift in the stored columns never leaks out.
func (u *reviewUsecase) GetDoctorReviews(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorReviewsResponse, error) {
	doctor, err := u.doctorRepo.FindByUserID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	reviews, err := u.reviewRepo.FindByDoctorID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find reviews for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	total, average, err := u.reviewRepo.AggregateByDoctor(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to aggregate reviews for doctor %s: %+v", doctorID, err)
		return nil, err
	}

	return &dto.DoctorReviewsResponse{
		DoctorID:      doctorID,
		TotalReviews:  total,
		AverageRating: average,
		Reviews:       converter.ReviewsToResponses(reviews),
	}, nil
}

// GetMyReviews returns all reviews written by the logged-in patient
func (u *reviewUsecase) GetMyReviews(ctx context.Context) (*dto.ReviewListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	reviews, err := u.reviewRepo.FindByPatientID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find reviews for patient %s: %+v", userID, err)
		return nil, err
	}

	return &dto.ReviewListResponse{
		Reviews: converter.ReviewsToResponses(reviews),
		Total:   len(reviews),
	}, nil
}
