package usecase

import (
	"context"
	"testing"

	"skinconsult-api/internal/delivery/dto"
	"skinconsult-api/internal/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *env) offerUsecase() OfferUsecase {
	return NewOfferUsecase(testLogger(), fakeTxManager{}, e.offers,
		e.consultations, e.doctors, e.notifier)
}

func TestCreateOfferAdvancesOpenToOffering(t *testing.T) {
	e := newEnv()
	uc := e.offerUsecase()
	patientID := e.addPatient(t, "amira")
	doctorID := e.addDoctor(t, "dr-sari", true)
	consultation := e.addConsultation(t, patientID, entity.ConsultationStatusOpen)

	resp, err := uc.CreateOffer(asUser(doctorID), consultation.ID, &dto.CreateOfferRequest{
		Price: decimal.NewFromInt(120),
		Notes: "Video call included",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.OfferStatusActive), resp.Status)
	assert.Equal(t, doctorID, resp.DoctorID)

	stored, _ := e.consultations.FindByID(context.Background(), consultation.ID)
	assert.Equal(t, entity.ConsultationStatusOffering, stored.Status)
	assert.True(t, e.notifier.sentTo(patientID, entity.NotificationNewOffer))
}

func TestCreateOfferRejectsNonPositivePrice(t *testing.T) {
	e := newEnv()
	uc := e.offerUsecase()
	patientID := e.addPatient(t, "amira")
	doctorID := e.addDoctor(t, "dr-sari", true)
	consultation := e.addConsultation(t, patientID, entity.ConsultationStatusOpen)

	for _, price := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		_, err := uc.CreateOffer(asUser(doctorID), consultation.ID, &dto.CreateOfferRequest{Price: price})
		assert.ErrorIs(t, err, ErrOfferPriceInvalid)
	}
}

func TestCreateOfferRequiresApprovedDoctor(t *testing.T) {
	e := newEnv()
	uc := e.offerUsecase()
	patientID := e.addPatient(t, "amira")
	doctorID := e.addDoctor(t, "dr-sari", false)
	consultation := e.addConsultation(t, patientID, entity.ConsultationStatusOpen)

	_, err := uc.CreateOffer(asUser(doctorID), consultation.ID, &dto.CreateOfferRequest{Price: decimal.NewFromInt(100)})
	assert.ErrorIs(t, err, ErrDoctorNotApproved)
}

func TestCreateOfferRejectsSecondActiveOffer(t *testing.T) {
	e := newEnv()
	uc := e.offerUsecase()
	patientID := e.addPatient(t, "amira")
	doctorID := e.addDoctor(t, "dr-sari", true)
	consultation := e.addConsultation(t, patientID, entity.ConsultationStatusOpen)

	_, err := uc.CreateOffer(asUser(doctorID), consultation.ID, &dto.CreateOfferRequest{Price: decimal.NewFromInt(100)})
	require.NoError(t, err)

	_, err = uc.CreateOffer(asUser(doctorID), consultation.ID, &dto.CreateOfferRequest{Price: decimal.NewFromInt(90)})
	assert.ErrorIs(t, err, ErrDuplicateOffer)
}

func TestCreateOfferClosedAfterSelection(t *testing.T) {
	e := newEnv()
	uc := e.offerUsecase()
	patientID := e.addPatient(t, "amira")
	doctorID := e.addDoctor(t, "dr-sari", true)

	for _, status := range []entity.ConsultationStatus{
		entity.ConsultationStatusOfferSelected,
		entity.ConsultationStatusInChat,
		entity.ConsultationStatusClosed,
		entity.ConsultationStatusCancelled,
	} {
		consultation := e.addConsultation(t, patientID, status)
		_, err := uc.CreateOffer(asUser(doctorID), consultation.ID, &dto.CreateOfferRequest{Price: decimal.NewFromInt(100)})
		assert.ErrorIs(t, err, ErrOffersClosed, "status %s", status)
	}
}

func TestListOffersOwnerOnly(t *testing.T) {
	e := newEnv()
	uc := e.offerUsecase()
	patientID := e.addPatient(t, "amira")
	stranger := e.addPatient(t, "citra")
	doctorID := e.addDoctor(t, "dr-sari", true)
	consultation := e.addConsultation(t, patientID, entity.ConsultationStatusOffering)
	e.addOffer(t, consultation.ID, doctorID, 100)

	resp, err := uc.ListOffers(asUser(patientID), consultation.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	_, err = uc.ListOffers(asUser(stranger), consultation.ID)
	assert.ErrorIs(t, err, ErrNotConsultationOwner)
}

func TestSelectOfferPicksOneAndRejectsSiblings(t *testing.T) {
	e := newEnv()
	uc := e.offerUsecase()
	patientID := e.addPatient(t, "amira")
	doctorA := e.addDoctor(t, "dr-sari", true)
	doctorB := e.addDoctor(t, "dr-budi", true)
	consultation := e.addConsultation(t, patientID, entity.ConsultationStatusOffering)
	offerA := e.addOffer(t, consultation.ID, doctorA, 100)
	offerB := e.addOffer(t, consultation.ID, doctorB, 80)

	resp, err := uc.SelectOffer(asUser(patientID), offerB.ID)
	require.NoError(t, err)
	assert.Equal(t, consultation.ID, resp.ConsultationID)
	assert.Equal(t, offerB.ID, resp.OfferID)

	storedB, _ := e.offers.FindByID(context.Background(), offerB.ID)
	assert.Equal(t, entity.OfferStatusSelected, storedB.Status)
	storedA, _ := e.offers.FindByID(context.Background(), offerA.ID)
	assert.Equal(t, entity.OfferStatusRejected, storedA.Status)

	stored, _ := e.consultations.FindByID(context.Background(), consultation.ID)
	assert.Equal(t, entity.ConsultationStatusOfferSelected, stored.Status)
	require.NotNil(t, stored.DoctorID)
	assert.Equal(t, doctorB, *stored.DoctorID)
	require.NotNil(t, stored.Price)
	assert.True(t, stored.Price.Equal(decimal.NewFromInt(80)))
	require.NotNil(t, stored.SelectedOfferID)
	assert.Equal(t, offerB.ID, *stored.SelectedOfferID)

	assert.True(t, e.notifier.sentTo(doctorB, entity.NotificationOfferAccepted))
}

func TestSelectOfferTwiceFails(t *testing.T) {
	e := newEnv()
	uc := e.offerUsecase()
	patientID := e.addPatient(t, "amira")
	doctorA := e.addDoctor(t, "dr-sari", true)
	doctorB := e.addDoctor(t, "dr-budi", true)
	consultation := e.addConsultation(t, patientID, entity.ConsultationStatusOffering)
	offerA := e.addOffer(t, consultation.ID, doctorA, 100)
	offerB := e.addOffer(t, consultation.ID, doctorB, 80)

	_, err := uc.SelectOffer(asUser(patientID), offerA.ID)
	require.NoError(t, err)

	_, err = uc.SelectOffer(asUser(patientID), offerB.ID)
	assert.ErrorIs(t, err, ErrOfferAlreadySelected)
}

func TestSelectOfferOwnerOnly(t *testing.T) {
	e := newEnv()
	uc := e.offerUsecase()
	patientID := e.addPatient(t, "amira")
	stranger := e.addPatient(t, "citra")
	doctorID := e.addDoctor(t, "dr-sari", true)
	consultation := e.addConsultation(t, patientID, entity.ConsultationStatusOffering)
	offer := e.addOffer(t, consultation.ID, doctorID, 100)

	_, err := uc.SelectOffer(asUser(stranger), offer.ID)
	assert.ErrorIs(t, err, ErrNotConsultationOwner)
}

func TestSelectRejectedOfferFails(t *testing.T) {
	e := newEnv()
	uc := e.offerUsecase()
	patientID := e.addPatient(t, "amira")
	doctorID := e.addDoctor(t, "dr-sari", true)
	consultation := e.addConsultation(t, patientID, entity.ConsultationStatusOffering)
	offer := e.addOffer(t, consultation.ID, doctorID, 100)
	offer.Status = entity.OfferStatusRejected

	_, err := uc.SelectOffer(asUser(patientID), offer.ID)
	assert.ErrorIs(t, err, ErrOfferNotSelectable)
}

func TestCreateOfferTranslatesUniqueViolation(t *testing.T) {
	e := newEnv()
	uc := e.offerUsecase()
	patientID := e.addPatient(t, "amira")
	doctorID := e.addDoctor(t, "dr-sari", true)
	consultation := e.addConsultation(t, patientID, entity.ConsultationStatusOpen)

	// partial unique index fires when two inserts race past HasActiveOffer
	e.offers.createErr = uniqueViolation("idx_offers_active_per_doctor")

	_, err := uc.CreateOffer(asUser(doctorID), consultation.ID, &dto.CreateOfferRequest{Price: decimal.NewFromInt(100)})
	assert.ErrorIs(t, err, ErrDuplicateOffer)
}
