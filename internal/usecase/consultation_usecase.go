package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skinconsult-api/internal/converter"
	"skinconsult-api/internal/delivery/dto"
	"skinconsult-api/internal/delivery/http/middleware"
	"skinconsult-api/internal/domain/entity"
	"skinconsult-api/internal/domain/repository"
	"skinconsult-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrConsultationNotFound       = errors.New("consultation not found")
	ErrCaseNotFound               = errors.New("disease case not found")
	ErrCaseNotOwned               = errors.New("disease case does not belong to you")
	ErrCaseOccupied               = errors.New("an active consultation already exists for this case")
	ErrNotConsultationOwner       = errors.New("consultation does not belong to you")
	ErrNotAssignedDoctor          = errors.New("you are not the assigned doctor for this consultation")
	ErrNotParticipant             = errors.New("you are not a participant of this consultation")
	ErrConsultationNotFinalizable = errors.New("consultation cannot be finalized in its current status")
	ErrConsultationNotCancellable = errors.New("consultation can no longer be cancelled")
)

type ConsultationUsecase interface {
	CreateRequest(ctx context.Context, req *dto.CreateConsultationRequest) (*dto.ConsultationResponse, error)
	GetOpenRequests(ctx context.Context) ([]dto.OpenConsultationResponse, error)
	GetMyConsultations(ctx context.Context) (*dto.ConsultationListResponse, error)
	GetAssignedConsultations(ctx context.Context) (*dto.ConsultationListResponse, error)
	GetByID(ctx context.Context, consultationID uuid.UUID) (*dto.ConsultationResponse, error)
	Finalize(ctx context.Context, consultationID uuid.UUID, req *dto.FinalizeConsultationRequest) (*dto.ConsultationResponse, error)
	Cancel(ctx context.Context, consultationID uuid.UUID) error
	GetRecent(ctx context.Context) ([]dto.RecentConsultationResponse, error)
}

type consultationUsecase struct {
	log              *logrus.Logger
	tx               repository.TxManager
	consultationRepo repository.ConsultationRepository
	caseRepo         repository.DiseaseCaseRepository
	offerRepo        repository.OfferRepository
	userRepo         repository.UserRepository
	notifier         service.Notifier
	baseURL          string
}

func NewConsultationUsecase(
	log *logrus.Logger,
	tx repository.TxManager,
	consultationRepo repository.ConsultationRepository,
	caseRepo repository.DiseaseCaseRepository,
	offerRepo repository.OfferRepository,
	userRepo repository.UserRepository,
	notifier service.Notifier,
	baseURL string,
) ConsultationUsecase {
	return &consultationUsecase{
		log:              log,
		tx:               tx,
		consultationRepo: consultationRepo,
		caseRepo:         caseRepo,
		offerRepo:        offerRepo,
		userRepo:         userRepo,
		notifier:         notifier,
		baseURL:          baseURL,
	}
}

// CreateRequest opens a consultation for an AI-scored case. A case can back
// at most one active consultation at a time.
func (u *consultationUsecase) CreateRequest(ctx context.Context, req *dto.CreateConsultationRequest) (*dto.ConsultationResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	diseaseCase, err := u.caseRepo.FindByID(ctx, req.DiseaseCaseID)
	if err != nil {
		u.log.Warnf("Failed to find disease case %s: %+v", req.DiseaseCaseID, err)
		return nil, err
	}
	if diseaseCase == nil {
		return nil, ErrCaseNotFound
	}
	if diseaseCase.PatientID != userID {
		return nil, ErrCaseNotOwned
	}

	occupied, err := u.consultationRepo.ExistsActiveForCase(ctx, req.DiseaseCaseID)
	if err != nil {
		u.log.Warnf("Failed to check active consultation for case %s: %+v", req.DiseaseCaseID, err)
		return nil, err
	}
	if occupied {
		return nil, ErrCaseOccupied
	}

	consultation := &entity.Consultation{
		PatientID:     userID,
		DiseaseCaseID: req.DiseaseCaseID,
		Status:        entity.ConsultationStatusOpen,
	}
	if req.Notes != "" {
		consultation.Notes = &req.Notes
	}

	err = u.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := u.consultationRepo.Create(txCtx, consultation); err != nil {
			return err
		}
		return u.caseRepo.UpdateStatus(txCtx, req.DiseaseCaseID, entity.CaseStatusRequestedDoctor)
	})
	if err != nil {
		u.log.Warnf("Failed to create consultation request: %+v", err)
		return nil, err
	}

	u.notifyDoctorsOfNewRequest(ctx, consultation, diseaseCase)

	return converter.ConsultationToResponse(consultation), nil
}

// notifyDoctorsOfNewRequest fans one intent out to every doctor account.
func (u *consultationUsecase) notifyDoctorsOfNewRequest(ctx context.Context, consultation *entity.Consultation, diseaseCase *entity.DiseaseCase) {
	doctorIDs, err := u.userRepo.FindUserIDsByRole(ctx, entity.RoleIDDoctor)
	if err != nil {
		u.log.Warnf("Failed to list doctors for notification: %+v", err)
		return
	}

	id := consultation.ID
	for _, doctorID := range doctorIDs {
		u.notifier.Notify(service.NotificationIntent{
			UserID:            doctorID,
			Title:             "New Consultation Request",
			Message:           fmt.Sprintf("A patient is requesting a consultation for: %s", diseaseCase.AiDiagnosis),
			Type:              entity.NotificationNewConsultationRequest,
			RelatedEntityID:   &id,
			RelatedEntityType: "consultation",
			ActionURL:         fmt.Sprintf("/consultations/%s", id),
		})
	}
}

// GetOpenRequests lists requests doctors can still bid on, annotated with
// the AI case summary.
func (u *consultationUsecase) GetOpenRequests(ctx context.Context) ([]dto.OpenConsultationResponse, error) {
	consultations, err := u.consultationRepo.FindOpen(ctx)
	if err != nil {
		u.log.Warnf("Failed to find open consultations: %+v", err)
		return nil, err
	}

	responses := make([]dto.OpenConsultationResponse, len(consultations))
	for i := range consultations {
		responses[i] = *converter.ConsultationToOpenResponse(&consultations[i], u.baseURL)
	}
	return responses, nil
}

// GetMyConsultations returns all consultations of the logged-in patient
func (u *consultationUsecase) GetMyConsultations(ctx context.Context) (*dto.ConsultationListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	consultations, err := u.consultationRepo.FindByPatientID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find consultations for patient %s: %+v", userID, err)
		return nil, err
	}

	return &dto.ConsultationListResponse{
		Consultations: converter.ConsultationsToResponses(consultations),
		Total:         len(consultations),
	}, nil
}

// GetAssignedConsultations returns consultations assigned to the logged-in doctor
func (u *consultationUsecase) GetAssignedConsultations(ctx context.Context) (*dto.ConsultationListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	consultations, err := u.consultationRepo.FindByDoctorID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find consultations for doctor %s: %+v", userID, err)
		return nil, err
	}

	return &dto.ConsultationListResponse{
		Consultations: converter.ConsultationsToResponses(consultations),
		Total:         len(consultations),
	}, nil
}

// GetByID returns one consultation; only its patient or assigned doctor may
// read it.
func (u *consultationUsecase) GetByID(ctx context.Context, consultationID uuid.UUID) (*dto.ConsultationResponse, error) {
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
	if consultation.PatientID != userID && (consultation.DoctorID == nil || *consultation.DoctorID != userID) {
		return nil, ErrNotParticipant
	}

	return converter.ConsultationToResponse(consultation), nil
}

// Finalize closes a consultation with the doctor's diagnosis. Only the
// assigned doctor may close, and only while the chat phase is open.
func (u *consultationUsecase) Finalize(ctx context.Context, consultationID uuid.UUID, req *dto.FinalizeConsultationRequest) (*dto.ConsultationResponse, error) {
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
	if consultation.DoctorID == nil || *consultation.DoctorID != userID {
		return nil, ErrNotAssignedDoctor
	}
	if !consultation.CanFinalize() {
		return nil, ErrConsultationNotFinalizable
	}

	now := time.Now().UTC()
	err = u.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		rows, err := u.consultationRepo.UpdateStatusIf(txCtx, consultationID,
			[]entity.ConsultationStatus{entity.ConsultationStatusInChat, entity.ConsultationStatusPaid},
			entity.ConsultationStatusClosed)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrConsultationNotFinalizable
		}

		consultation.Status = entity.ConsultationStatusClosed
		consultation.FinalDiagnosis = &req.FinalDiagnosis
		if req.DoctorFinalNotes != "" {
			consultation.DoctorFinalNotes = &req.DoctorFinalNotes
		}
		consultation.ClosedAt = &now
		if err := u.consultationRepo.Save(txCtx, consultation); err != nil {
			return err
		}

		return u.caseRepo.UpdateStatus(txCtx, consultation.DiseaseCaseID, entity.CaseStatusClosed)
	})
	if err != nil {
		if !errors.Is(err, ErrConsultationNotFinalizable) {
			u.log.Warnf("Failed to finalize consultation %s: %+v", consultationID, err)
		}
		return nil, err
	}

	u.notifier.Notify(service.NotificationIntent{
		UserID:            consultation.PatientID,
		Title:             "Diagnosis Completed",
		Message:           "Your doctor has completed the final diagnosis for your consultation.",
		Type:              entity.NotificationDiagnosisCompleted,
		RelatedEntityID:   &consultation.ID,
		RelatedEntityType: "consultation",
		ActionURL:         fmt.Sprintf("/consultations/%s", consultation.ID),
	})

	return converter.ConsultationToResponse(consultation), nil
}

// Cancel withdraws a request before the chat phase. Active offers are
// rejected and the case becomes requestable again.
func (u *consultationUsecase) Cancel(ctx context.Context, consultationID uuid.UUID) error {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return errors.New("user not found in context")
	}

	consultation, err := u.consultationRepo.FindByID(ctx, consultationID)
	if err != nil {
		u.log.Warnf("Failed to find consultation %s: %+v", consultationID, err)
		return err
	}
	if consultation == nil {
		return ErrConsultationNotFound
	}
	if consultation.PatientID != userID {
		return ErrNotConsultationOwner
	}
	if !consultation.CanCancel() {
		return ErrConsultationNotCancellable
	}

	err = u.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		rows, err := u.consultationRepo.UpdateStatusIf(txCtx, consultationID,
			[]entity.ConsultationStatus{
				entity.ConsultationStatusOpen,
				entity.ConsultationStatusOffering,
				entity.ConsultationStatusOfferSelected,
			},
			entity.ConsultationStatusCancelled)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrConsultationNotCancellable
		}

		// keepOfferID uuid.Nil matches no row, so every offer is rejected
		if err := u.offerRepo.RejectSiblings(txCtx, consultationID, uuid.Nil); err != nil {
			return err
		}

		return u.caseRepo.UpdateStatus(txCtx, consultation.DiseaseCaseID, entity.CaseStatusAIDone)
	})
	if err != nil {
		if !errors.Is(err, ErrConsultationNotCancellable) {
			u.log.Warnf("Failed to cancel consultation %s: %+v", consultationID, err)
		}
		return err
	}

	if consultation.DoctorID != nil {
		u.notifier.Notify(service.NotificationIntent{
			UserID:            *consultation.DoctorID,
			Title:             "Consultation Cancelled",
			Message:           "The patient has cancelled the consultation request.",
			Type:              entity.NotificationConsultationCancelled,
			RelatedEntityID:   &consultation.ID,
			RelatedEntityType: "consultation",
		})
	}

	return nil
}

// GetRecent returns the patient's dashboard feed, newest first.
func (u *consultationUsecase) GetRecent(ctx context.Context) ([]dto.RecentConsultationResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	consultations, err := u.consultationRepo.FindByPatientID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find recent consultations for patient %s: %+v", userID, err)
		return nil, err
	}

	responses := make([]dto.RecentConsultationResponse, len(consultations))
	for i := range consultations {
		responses[i] = *converter.ConsultationToRecentResponse(&consultations[i])
	}
	return responses, nil
}
