package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"skinconsult-api/internal/converter"
	"skinconsult-api/internal/delivery/dto"
	"skinconsult-api/internal/delivery/http/middleware"
	"skinconsult-api/internal/domain/entity"
	"skinconsult-api/internal/domain/repository"
	"skinconsult-api/internal/service"

	"github.com/sirupsen/logrus"
)

var (
	ErrAlreadyPaid  = errors.New("consultation has already been paid")
	ErrNothingToPay = errors.New("consultation is not awaiting payment")
)

type PaymentUsecase interface {
	SimulatePay(ctx context.Context, req *dto.SimulatePaymentRequest) (*dto.PaymentResponse, error)
	GetMyPayments(ctx context.Context) (*dto.PaymentListResponse, error)
}

type paymentUsecase struct {
	log              *logrus.Logger
	tx               repository.TxManager
	paymentRepo      repository.PaymentRepository
	consultationRepo repository.ConsultationRepository
	caseRepo         repository.DiseaseCaseRepository
	notifier         service.Notifier
}

func NewPaymentUsecase(
	log *logrus.Logger,
	tx repository.TxManager,
	paymentRepo repository.PaymentRepository,
	consultationRepo repository.ConsultationRepository,
	caseRepo repository.DiseaseCaseRepository,
	notifier service.Notifier,
) PaymentUsecase {
	return &paymentUsecase{
		log:              log,
		tx:               tx,
		paymentRepo:      paymentRepo,
		consultationRepo: consultationRepo,
		caseRepo:         caseRepo,
		notifier:         notifier,
	}
}

// SimulatePay settles an accepted offer and opens the chat phase. The
// is_paid flip is a single guarded statement, so at most one call can ever
// succeed per consultation.
func (u *paymentUsecase) SimulatePay(ctx context.Context, req *dto.SimulatePaymentRequest) (*dto.PaymentResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	consultation, err := u.consultationRepo.FindByID(ctx, req.ConsultationID)
	if err != nil {
		u.log.Warnf("Failed to find consultation %s: %+v", req.ConsultationID, err)
		return nil, err
	}
	if consultation == nil {
		return nil, ErrConsultationNotFound
	}
	if consultation.PatientID != userID {
		return nil, ErrNotConsultationOwner
	}
	if consultation.IsPaid {
		return nil, ErrAlreadyPaid
	}
	if consultation.Status != entity.ConsultationStatusOfferSelected {
		return nil, ErrNothingToPay
	}
	if consultation.DoctorID == nil || consultation.Price == nil {
		return nil, ErrNothingToPay
	}

	payment := &entity.Payment{
		ConsultationID: consultation.ID,
		PatientID:      consultation.PatientID,
		DoctorID:       *consultation.DoctorID,
		Amount:         *consultation.Price,
		Method:         entity.PaymentMethod(req.Method),
		Status:         entity.PaymentStatusSuccess,
		Provider:       "SIMULATED",
		ReferenceNo:    generatePaymentReference(),
	}

	err = u.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		rows, err := u.consultationRepo.MarkPaid(txCtx, consultation.ID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrAlreadyPaid
		}

		if err := u.paymentRepo.Create(txCtx, payment); err != nil {
			return err
		}

		return u.caseRepo.UpdateStatus(txCtx, consultation.DiseaseCaseID, entity.CaseStatusInConsultation)
	})
	if err != nil {
		// unique index on consultation_id backs up the CAS
		if repository.IsUniqueViolation(err, "idx_payments_consultation_id") {
			return nil, ErrAlreadyPaid
		}
		if !errors.Is(err, ErrAlreadyPaid) {
			u.log.Warnf("Failed to settle payment for consultation %s: %+v", consultation.ID, err)
		}
		return nil, err
	}

	amount := consultation.Price.StringFixed(2)
	u.notifier.Notify(service.NotificationIntent{
		UserID:            consultation.PatientID,
		Title:             "Payment Successful",
		Message:           fmt.Sprintf("Your payment of %s was received. The consultation chat is now open.", amount),
		Type:              entity.NotificationPaymentSuccess,
		RelatedEntityID:   &consultation.ID,
		RelatedEntityType: "consultation",
		ActionURL:         fmt.Sprintf("/chat/consultations/%s", consultation.ID),
	})
	u.notifier.Notify(service.NotificationIntent{
		UserID:            *consultation.DoctorID,
		Title:             "Payment Received",
		Message:           fmt.Sprintf("The patient paid %s. The consultation chat is now open.", amount),
		Type:              entity.NotificationPaymentSuccess,
		RelatedEntityID:   &consultation.ID,
		RelatedEntityType: "consultation",
		ActionURL:         fmt.Sprintf("/chat/consultations/%s", consultation.ID),
	})

	return converter.PaymentToResponse(payment), nil
}

// GetMyPayments returns all payments of the logged-in patient
func (u *paymentUsecase) GetMyPayments(ctx context.Context) (*dto.PaymentListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	payments, err := u.paymentRepo.FindByPatientID(ctx, userID)
	if err != nil {
		u.log.Warnf("Failed to find payments for patient %s: %+v", userID, err)
		return nil, err
	}

	return &dto.PaymentListResponse{
		Payments: converter.PaymentsToResponses(payments),
		Total:    len(payments),
	}, nil
}

// generatePaymentReference produces a reference like SIM-5F3A9C01B2D4.
func generatePaymentReference() string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "SIM-000000000000"
	}
	return "SIM-" + strings.ToUpper(hex.EncodeToString(buf))
}
