package usecase

import (
	"context"
	"testing"

	"skinconsult-api/internal/delivery/dto"
	"skinconsult-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *env) consultationUsecase() ConsultationUsecase {
	return NewConsultationUsecase(testLogger(), fakeTxManager{}, e.consultations,
		e.cases, e.offers, e.users, e.notifier, "http://localhost:8080")
}

func TestCreateRequest(t *testing.T) {
	e := newEnv()
	uc := e.consultationUsecase()
	patientID := e.addPatient(t, "amira")
	doctorID := e.addDoctor(t, "dr-sari", true)
	caseID := e.addCase(t, patientID, entity.CaseStatusAIDone)

	resp, err := uc.CreateRequest(asUser(patientID), &dto.CreateConsultationRequest{
		DiseaseCaseID: caseID,
		Notes:         "itchy for two weeks",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.ConsultationStatusOpen), resp.Status)
	assert.Equal(t, patientID, resp.PatientID)
	assert.Equal(t, "itchy for two weeks", resp.Notes)

	diseaseCase, _ := e.cases.FindByID(context.Background(), caseID)
	assert.Equal(t, entity.CaseStatusRequestedDoctor, diseaseCase.Status)

	// every doctor account gets a request notification
	assert.True(t, e.notifier.sentTo(doctorID, entity.NotificationNewConsultationRequest))
}

func TestCreateRequestRejectsForeignCase(t *testing.T) {
	e := newEnv()
	uc := e.consultationUsecase()
	owner := e.addPatient(t, "owner")
	intruder := e.addPatient(t, "intruder")
	caseID := e.addCase(t, owner, entity.CaseStatusAIDone)

	_, err := uc.CreateRequest(asUser(intruder), &dto.CreateConsultationRequest{DiseaseCaseID: caseID})
	assert.ErrorIs(t, err, ErrCaseNotOwned)
}

func TestCreateRequestRejectsOccupiedCase(t *testing.T) {
	e := newEnv()
	uc := e.consultationUsecase()
	patientID := e.addPatient(t, "amira")
	caseID := e.addCase(t, patientID, entity.CaseStatusAIDone)

	_, err := uc.CreateRequest(asUser(patientID), &dto.CreateConsultationRequest{DiseaseCaseID: caseID})
	require.NoError(t, err)

	_, err = uc.CreateRequest(asUser(patientID), &dto.CreateConsultationRequest{DiseaseCaseID: caseID})
	assert.ErrorIs(t, err, ErrCaseOccupied)
}

func TestCreateRequestUnknownCase(t *testing.T) {
	e := newEnv()
	uc := e.consultationUsecase()
	patientID := e.addPatient(t, "amira")

	_, err := uc.CreateRequest(asUser(patientID), &dto.CreateConsultationRequest{DiseaseCaseID: uuid.New()})
	assert.ErrorIs(t, err, ErrCaseNotFound)
}

func TestFinalize(t *testing.T) {
	e := newEnv()
	uc := e.consultationUsecase()
	patientID := e.addPatient(t, "amira")
	doctorID := e.addDoctor(t, "dr-sari", true)

	consultation := e.addConsultation(t, patientID, entity.ConsultationStatusInChat)
	consultation.DoctorID = &doctorID

	resp, err := uc.Finalize(asUser(doctorID), consultation.ID, &dto.FinalizeConsultationRequest{
		FinalDiagnosis:   "Atopic dermatitis",
		DoctorFinalNotes: "Apply emollient twice daily.",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.ConsultationStatusClosed), resp.Status)
	assert.Equal(t, "Atopic dermatitis", resp.FinalDiagnosis)
	require.NotNil(t, resp.ClosedAt)

	diseaseCase, _ := e.cases.FindByID(context.Background(), consultation.DiseaseCaseID)
	assert.Equal(t, entity.CaseStatusClosed, diseaseCase.Status)
	assert.True(t, e.notifier.sentTo(patientID, entity.NotificationDiagnosisCompleted))
}

func TestFinalizeRejectsOtherDoctor(t *testing.T) {
	e := newEnv()
	uc := e.consultationUsecase()
	patientID := e.addPatient(t, "amira")
	assigned := e.addDoctor(t, "dr-sari", true)
	other := e.addDoctor(t, "dr-budi", true)

	consultation := e.addConsultation(t, patientID, entity.ConsultationStatusInChat)
	consultation.DoctorID = &assigned

	_, err := uc.Finalize(asUser(other), consultation.ID, &dto.FinalizeConsultationRequest{FinalDiagnosis: "x"})
	assert.ErrorIs(t, err, ErrNotAssignedDoctor)
}

func TestFinalizeRequiresChatPhase(t *testing.T) {
	e := newEnv()
	uc := e.consultationUsecase()
	patientID := e.addPatient(t, "amira")
	doctorID := e.addDoctor(t, "dr-sari", true)

	for _, status := range []entity.ConsultationStatus{
		entity.ConsultationStatusOpen,
		entity.ConsultationStatusOffering,
		entity.ConsultationStatusOfferSelected,
		entity.ConsultationStatusClosed,
		entity.ConsultationStatusCancelled,
	} {
		consultation := e.addConsultation(t, patientID, status)
		consultation.DoctorID = &doctorID

		_, err := uc.Finalize(asUser(doctorID), consultation.ID, &dto.FinalizeConsultationRequest{FinalDiagnosis: "x"})
		assert.ErrorIs(t, err, ErrConsultationNotFinalizable, "status %s", status)
	}
}

func TestCancelFreesCaseAndRejectsOffers(t *testing.T) {
	e := newEnv()
	uc := e.consultationUsecase()
	patientID := e.addPatient(t, "amira")
	doctorID := e.addDoctor(t, "dr-sari", true)

	consultation := e.addConsultation(t, patientID, entity.ConsultationStatusOffering)
	offer := e.addOffer(t, consultation.ID, doctorID, 150)

	err := uc.Cancel(asUser(patientID), consultation.ID)
	require.NoError(t, err)

	stored, _ := e.consultations.FindByID(context.Background(), consultation.ID)
	assert.Equal(t, entity.ConsultationStatusCancelled, stored.Status)

	storedOffer, _ := e.offers.FindByID(context.Background(), offer.ID)
	assert.Equal(t, entity.OfferStatusRejected, storedOffer.Status)

	// the case is free for a new request again
	diseaseCase, _ := e.cases.FindByID(context.Background(), consultation.DiseaseCaseID)
	assert.Equal(t, entity.CaseStatusAIDone, diseaseCase.Status)
}

func TestCancelRejectedAfterChatOpens(t *testing.T) {
	e := newEnv()
	uc := e.consultationUsecase()
	patientID := e.addPatient(t, "amira")

	for _, status := range []entity.ConsultationStatus{
		entity.ConsultationStatusInChat,
		entity.ConsultationStatusClosed,
		entity.ConsultationStatusCancelled,
	} {
		consultation := e.addConsultation(t, patientID, status)
		err := uc.Cancel(asUser(patientID), consultation.ID)
		assert.ErrorIs(t, err, ErrConsultationNotCancellable, "status %s", status)
	}
}

func TestCancelOnlyByOwner(t *testing.T) {
	e := newEnv()
	uc := e.consultationUsecase()
	patientID := e.addPatient(t, "amira")
	other := e.addPatient(t, "citra")

	consultation := e.addConsultation(t, patientID, entity.ConsultationStatusOpen)
	err := uc.Cancel(asUser(other), consultation.ID)
	assert.ErrorIs(t, err, ErrNotConsultationOwner)
}

func TestGetByIDParticipantsOnly(t *testing.T) {
	e := newEnv()
	uc := e.consultationUsecase()
	patientID := e.addPatient(t, "amira")
	doctorID := e.addDoctor(t, "dr-sari", true)
	stranger := e.addPatient(t, "citra")

	consultation := e.addConsultation(t, patientID, entity.ConsultationStatusInChat)
	consultation.DoctorID = &doctorID

	_, err := uc.GetByID(asUser(patientID), consultation.ID)
	assert.NoError(t, err)

	_, err = uc.GetByID(asUser(doctorID), consultation.ID)
	assert.NoError(t, err)

	_, err = uc.GetByID(asUser(stranger), consultation.ID)
	assert.ErrorIs(t, err, ErrNotParticipant)
}

func TestGetRecentBadges(t *testing.T) {
	e := newEnv()
	uc := e.consultationUsecase()
	patientID := e.addPatient(t, "amira")

	want := map[entity.ConsultationStatus]string{
		entity.ConsultationStatusOpen:          "FINDING_DOCTOR",
		entity.ConsultationStatusOffering:      "OFFERS",
		entity.ConsultationStatusOfferSelected: "WAITING_PAYMENT",
		entity.ConsultationStatusInChat:        "ACTIVE",
		entity.ConsultationStatusClosed:        "COMPLETED",
		entity.ConsultationStatusCancelled:     "CANCELLED",
	}
	byID := map[uuid.UUID]entity.ConsultationStatus{}
	for status := range want {
		c := e.addConsultation(t, patientID, status)
		byID[c.ID] = status
	}

	recent, err := uc.GetRecent(asUser(patientID))
	require.NoError(t, err)
	require.Len(t, recent, len(want))
	for _, r := range recent {
		assert.Equal(t, want[byID[r.ConsultationID]], r.Badge)
	}

	// no offer selected yet, so the dashboard shows the placeholder
	assert.Equal(t, "Finding Doctor...", recent[0].DoctorName)
}
