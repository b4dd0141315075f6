package usecase

import (
	"context"
	"errors"
	"fmt"

	"skinconsult-api/internal/converter"
	"skinconsult-api/internal/delivery/dto"
	"skinconsult-api/internal/delivery/http/middleware"
	"skinconsult-api/internal/domain/entity"
	"skinconsult-api/internal/domain/repository"
	"skinconsult-api/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrOfferNotFound        = errors.New("offer not found")
	ErrOfferPriceInvalid    = errors.New("offer price must be greater than zero")
	ErrOffersClosed         = errors.New("consultation no longer accepts offers")
	ErrDuplicateOffer       = errors.New("you already have an active offer on this consultation")
	ErrDoctorNotApproved    = errors.New("doctor account is not approved yet")
	ErrOfferNotSelectable   = errors.New("offer can no longer be selected")
	ErrOfferAlreadySelected = errors.New("an offer has already been selected for this consultation")
)

type OfferUsecase interface {
	CreateOffer(ctx context.Context, consultationID uuid.UUID, req *dto.CreateOfferRequest) (*dto.OfferResponse, error)
	ListOffers(ctx context.Context, consultationID uuid.UUID) (*dto.OfferListResponse, error)
	SelectOffer(ctx context.Context, offerID uuid.UUID) (*dto.SelectOfferResponse, error)
}

type offerUsecase struct {
	log              *logrus.Logger
	tx               repository.TxManager
	offerRepo        repository.OfferRepository
	consultationRepo repository.ConsultationRepository
	doctorRepo       repository.DoctorProfileRepository
	notifier         service.Notifier
}

func NewOfferUsecase(
	log *logrus.Logger,
	tx repository.TxManager,
	offerRepo repository.OfferRepository,
	consultationRepo repository.ConsultationRepository,
	doctorRepo repository.DoctorProfileRepository,
	notifier service.Notifier,
) OfferUsecase {
	return &offerUsecase{
		log:              log,
		tx:               tx,
		offerRepo:        offerRepo,
		consultationRepo: consultationRepo,
		doctorRepo:       doctorRepo,
		notifier:         notifier,
	}
}

// CreateOffer places a doctor's bid on an open request. The first offer
// moves the consultation from OPEN to OFFERING.
func (u *offerUsecase) CreateOffer(ctx context.Context, consultationID uuid.UUID, req *dto.CreateOfferRequest) (*dto.OfferResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	if !req.Price.GreaterThan(decimal.Zero) {
		return nil, ErrOfferPriceInvalid
	}

	doctor, err := u.doctorRepo.FindByUserID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile %s: %+v", userID, err)
		return nil, err
	}
	if doctor == nil || !doctor.IsApproved {
		return nil, ErrDoctorNotApproved
	}

	consultation, err := u.consultationRepo.FindByID(ctx, consultationID)
	if err != nil {
		u.log.Warnf("Failed to find consultation %s: %+v", consultationID, err)
		return nil, err
	}
	if consultation == nil {
		return nil, ErrConsultationNotFound
	}
	if !consultation.AcceptsOffers() {
		return nil, ErrOffersClosed
	}

	exists, err := u.offerRepo.HasActiveOffer(ctx, consultationID, userID)
	if err != nil {
		u.log.Warnf("Failed to check existing offer: %+v", err)
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateOffer
	}

	offer := &entity.Offer{
		ConsultationID: consultationID,
		DoctorID:       userID,
		Price:          req.Price,
		Notes:          req.Notes,
		Status:         entity.OfferStatusActive,
	}

	err = u.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := u.offerRepo.Create(txCtx, offer); err != nil {
			return err
		}
		// first offer advances OPEN -> OFFERING; zero rows just means a
		// sibling offer got there first
		_, err := u.consultationRepo.UpdateStatusIf(txCtx, consultationID,
			[]entity.ConsultationStatus{entity.ConsultationStatusOpen},
			entity.ConsultationStatusOffering)
		return err
	})
	if err != nil {
		// the partial unique index closes the check-then-insert window
		if repository.IsUniqueViolation(err, "idx_offers_active_per_doctor") {
			return nil, ErrDuplicateOffer
		}
		u.log.Warnf("Failed to create offer for consultation %s: %+v", consultationID, err)
		return nil, err
	}
	offer.Doctor = *doctor

	u.notifier.Notify(service.NotificationIntent{
		UserID:            consultation.PatientID,
		Title:             "New Offer Received",
		Message:           fmt.Sprintf("Dr. %s sent you an offer of %s.", doctor.User.FullName, req.Price.StringFixed(2)),
		Type:              entity.NotificationNewOffer,
		RelatedEntityID:   &consultation.ID,
		RelatedEntityType: "consultation",
		ActionURL:         fmt.Sprintf("/consultations/%s/offers", consultation.ID),
	})

	closedCases, err := u.consultationRepo.CountClosedByDoctor(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to count closed cases for doctor %s: %+v", userID, err)
		closedCases = 0
	}

	return converter.OfferToResponse(offer, closedCases), nil
}

// ListOffers returns the active offers on a consultation, cheapest first.
// Only the requesting patient may see them.
func (u *offerUsecase) ListOffers(ctx context.Context, consultationID uuid.UUID) (*dto.OfferListResponse, error) {
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

	offers, err := u.offerRepo.FindActiveByConsultation(ctx, consultationID)
	if err != nil {
		u.log.Warnf("Failed to find offers for consultation %s: %+v", consultationID, err)
		return nil, err
	}

	responses := make([]dto.OfferResponse, len(offers))
	for i := range offers {
		closedCases, err := u.consultationRepo.CountClosedByDoctor(ctx, offers[i].DoctorID)
		if err != nil {
			u.log.Warnf("Failed to count closed cases for doctor %s: %+v", offers[i].DoctorID, err)
			closedCases = 0
		}
		responses[i] = *converter.OfferToResponse(&offers[i], closedCases)
	}

	return &dto.OfferListResponse{
		Offers: responses,
		Total:  len(responses),
	}, nil
}

// SelectOffer commits the patient to one offer. In a single transaction the
// chosen offer becomes SELECTED, every sibling becomes REJECTED, and the
// consultation records the doctor and the agreed price.
func (u *offerUsecase) SelectOffer(ctx context.Context, offerID uuid.UUID) (*dto.SelectOfferResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	offer, err := u.offerRepo.FindByID(ctx, offerID)
	if err != nil {
		u.log.Warnf("Failed to find offer %s: %+v", offerID, err)
		return nil, err
	}
	if offer == nil {
		return nil, ErrOfferNotFound
	}

	consultation, err := u.consultationRepo.FindByID(ctx, offer.ConsultationID)
	if err != nil {
		u.log.Warnf("Failed to find consultation %s: %+v", offer.ConsultationID, err)
		return nil, err
	}
	if consultation == nil {
		return nil, ErrConsultationNotFound
	}
	if consultation.PatientID != userID {
		return nil, ErrNotConsultationOwner
	}
	if consultation.Status == entity.ConsultationStatusOfferSelected || consultation.SelectedOfferID != nil {
		return nil, ErrOfferAlreadySelected
	}
	if !offer.IsActive() || !consultation.AcceptsOffers() {
		return nil, ErrOfferNotSelectable
	}

	err = u.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		// the CAS decides the race between two concurrent selections;
		// the loser sees zero rows and rolls back
		rows, err := u.consultationRepo.UpdateStatusIf(txCtx, consultation.ID,
			[]entity.ConsultationStatus{entity.ConsultationStatusOpen, entity.ConsultationStatusOffering},
			entity.ConsultationStatusOfferSelected)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrOfferAlreadySelected
		}

		if err := u.offerRepo.UpdateStatus(txCtx, offerID, entity.OfferStatusSelected); err != nil {
			return err
		}
		if err := u.offerRepo.RejectSiblings(txCtx, consultation.ID, offerID); err != nil {
			return err
		}

		consultation.Status = entity.ConsultationStatusOfferSelected
		consultation.DoctorID = &offer.DoctorID
		price := offer.Price
		consultation.Price = &price
		consultation.SelectedOfferID = &offer.ID
		return u.consultationRepo.Save(txCtx, consultation)
	})
	if err != nil {
		if !errors.Is(err, ErrOfferAlreadySelected) {
			u.log.Warnf("Failed to select offer %s: %+v", offerID, err)
		}
		return nil, err
	}

	u.notifier.Notify(service.NotificationIntent{
		UserID:            offer.DoctorID,
		Title:             "Offer Accepted",
		Message:           "The patient accepted your offer. The chat opens once payment completes.",
		Type:              entity.NotificationOfferAccepted,
		RelatedEntityID:   &consultation.ID,
		RelatedEntityType: "consultation",
		ActionURL:         fmt.Sprintf("/consultations/%s", consultation.ID),
	})

	return &dto.SelectOfferResponse{
		ConsultationID: consultation.ID,
		OfferID:        offer.ID,
		Message:        "Offer selected. Complete the payment to start the consultation.",
	}, nil
}
