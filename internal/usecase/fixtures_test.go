package usecase

import (
	"context"
	"testing"
	"time"

	"skinconsult-api/internal/delivery/http/middleware"
	"skinconsult-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// env bundles every fake a usecase test might need so individual tests only
// touch the pieces they assert on.
type env struct {
	consultations *memConsultationRepo
	offers        *memOfferRepo
	cases         *memCaseRepo
	messages      *memMessageRepo
	payments      *memPaymentRepo
	reviews       *memReviewRepo
	users         *memUserRepo
	doctors       *memDoctorRepo
	notifications *memNotificationRepo
	notifier      *recordNotifier
	broadcaster   *recordBroadcaster
	store         *memStore
}

func newEnv() *env {
	return &env{
		consultations: newMemConsultationRepo(),
		offers:        newMemOfferRepo(),
		cases:         newMemCaseRepo(),
		messages:      newMemMessageRepo(),
		payments:      newMemPaymentRepo(),
		reviews:       newMemReviewRepo(),
		users:         newMemUserRepo(),
		doctors:       newMemDoctorRepo(),
		notifications: newMemNotificationRepo(),
		notifier:      &recordNotifier{},
		broadcaster:   newRecordBroadcaster(),
		store:         newMemStore(),
	}
}

func asUser(userID uuid.UUID) context.Context {
	return context.WithValue(context.Background(), middleware.UserIDKey, userID)
}

func (e *env) addPatient(t *testing.T, name string) uuid.UUID {
	t.Helper()
	active := true
	u := &entity.User{
		ID:       uuid.New(),
		RoleID:   entity.RoleIDPatient,
		FullName: name,
		Email:    name + "@example.com",
		IsActive: &active,
	}
	if err := e.users.Create(context.Background(), u); err != nil {
		t.Fatalf("create patient: %v", err)
	}
	return u.ID
}

func (e *env) addDoctor(t *testing.T, name string, approved bool) uuid.UUID {
	t.Helper()
	active := true
	u := &entity.User{
		ID:       uuid.New(),
		RoleID:   entity.RoleIDDoctor,
		FullName: name,
		Email:    name + "@example.com",
		IsActive: &active,
	}
	if err := e.users.Create(context.Background(), u); err != nil {
		t.Fatalf("create doctor user: %v", err)
	}
	profile := &entity.DoctorProfile{
		UserID:        u.ID,
		LicenseNumber: "LIC-" + u.ID.String()[:8],
		IsApproved:    approved,
		User:          *u,
	}
	if err := e.doctors.Create(context.Background(), profile); err != nil {
		t.Fatalf("create doctor profile: %v", err)
	}
	return u.ID
}

func (e *env) addCase(t *testing.T, patientID uuid.UUID, status entity.CaseStatus) uuid.UUID {
	t.Helper()
	c := &entity.DiseaseCase{
		ID:          uuid.New(),
		PatientID:   patientID,
		ImagePath:   "/uploads/cases/fixture.jpg",
		AiDiagnosis: "Eczema",
		Confidence:  0.91,
		Status:      status,
		CreatedAt:   time.Now(),
	}
	if err := e.cases.Create(context.Background(), c); err != nil {
		t.Fatalf("create case: %v", err)
	}
	return c.ID
}

func (e *env) addConsultation(t *testing.T, patientID uuid.UUID, status entity.ConsultationStatus) *entity.Consultation {
	t.Helper()
	caseID := e.addCase(t, patientID, entity.CaseStatusRequestedDoctor)
	c := &entity.Consultation{
		ID:            uuid.New(),
		PatientID:     patientID,
		DiseaseCaseID: caseID,
		Status:        status,
		CreatedAt:     time.Now(),
	}
	if err := e.consultations.Create(context.Background(), c); err != nil {
		t.Fatalf("create consultation: %v", err)
	}
	return c
}

func (e *env) addOffer(t *testing.T, consultationID, doctorID uuid.UUID, price int64) *entity.Offer {
	t.Helper()
	o := &entity.Offer{
		ID:             uuid.New(),
		ConsultationID: consultationID,
		DoctorID:       doctorID,
		Price:          decimal.NewFromInt(price),
		Status:         entity.OfferStatusActive,
		CreatedAt:      time.Now(),
	}
	if err := e.offers.Create(context.Background(), o); err != nil {
		t.Fatalf("create offer: %v", err)
	}
	return o
}
