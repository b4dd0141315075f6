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

func (e *env) reviewUsecase() ReviewUsecase {
	return NewReviewUsecase(testLogger(), fakeTxManager{}, e.reviews,
		e.consultations, e.doctors)
}

func (e *env) closedConsultation(t *testing.T, patientID, doctorID uuid.UUID) *entity.Consultation {
	t.Helper()
	consultation := e.addConsultation(t, patientID, entity.ConsultationStatusClosed)
	consultation.DoctorID = &doctorID
	consultation.IsPaid = true
	return consultation
}

func TestCreateReviewUpdatesAggregates(t *testing.T) {
	e := newEnv()
	uc := e.reviewUsecase()
	patientID := e.addPatient(t, "amira")
	doctorID := e.addDoctor(t, "dr-sari", true)
	consultation := e.closedConsultation(t, patientID, doctorID)

	resp, err := uc.CreateReview(asUser(patientID), consultation.ID, &dto.CreateReviewRequest{
		Rating:  5,
		Comment: "Clear diagnosis, quick replies.",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, resp.Rating)
	assert.Equal(t, doctorID, resp.DoctorID)

	profile, _ := e.doctors.FindByUserID(context.Background(), doctorID)
	assert.Equal(t, 1, profile.TotalReviews)
	assert.Equal(t, 5.0, profile.AverageRating)
}

func TestCreateReviewAveragesAcrossConsultations(t *testing.T) {
	e := newEnv()
	uc := e.reviewUsecase()
	patientID := e.addPatient(t, "amira")
	doctorID := e.addDoctor(t, "dr-sari", true)

	first := e.closedConsultation(t, patientID, doctorID)
	second := e.closedConsultation(t, patientID, doctorID)

	_, err := uc.CreateReview(asUser(patientID), first.ID, &dto.CreateReviewRequest{Rating: 5})
	require.NoError(t, err)
	_, err = uc.CreateReview(asUser(patientID), second.ID, &dto.CreateReviewRequest{Rating: 2})
	require.NoError(t, err)

	profile, _ := e.doctors.FindByUserID(context.Background(), doctorID)
	assert.Equal(t, 2, profile.TotalReviews)
	assert.InDelta(t, 3.5, profile.AverageRating, 0.001)
}

func TestCreateReviewOncePerConsultation(t *testing.T) {
	e := newEnv()
	uc := e.reviewUsecase()
	patientID := e.addPatient(t, "amira")
	doctorID := e.addDoctor(t, "dr-sari", true)
	consultation := e.closedConsultation(t, patientID, doctorID)

	_, err := uc.CreateReview(asUser(patientID), consultation.ID, &dto.CreateReviewRequest{Rating: 4})
	require.NoError(t, err)

	_, err = uc.CreateReview(asUser(patientID), consultation.ID, &dto.CreateReviewRequest{Rating: 1})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestCreateReviewRequiresClosedConsultation(t *testing.T) {
	e := newEnv()
	uc := e.reviewUsecase()
	patientID := e.addPatient(t, "amira")
	doctorID := e.addDoctor(t, "dr-sari", true)

	for _, status := range []entity.ConsultationStatus{
		entity.ConsultationStatusOpen,
		entity.ConsultationStatusOfferSelected,
		entity.ConsultationStatusInChat,
		entity.ConsultationStatusCancelled,
	} {
		consultation := e.addConsultation(t, patientID, status)
		consultation.DoctorID = &doctorID

		_, err := uc.CreateReview(asUser(patientID), consultation.ID, &dto.CreateReviewRequest{Rating: 4})
		assert.ErrorIs(t, err, ErrConsultationNotClosed, "status %s", status)
	}
}

func TestCreateReviewOwnerOnly(t *testing.T) {
	e := newEnv()
	uc := e.reviewUsecase()
	patientID := e.addPatient(t, "amira")
	stranger := e.addPatient(t, "citra")
	doctorID := e.addDoctor(t, "dr-sari", true)
	consultation := e.closedConsultation(t, patientID, doctorID)

	_, err := uc.CreateReview(asUser(stranger), consultation.ID, &dto.CreateReviewRequest{Rating: 4})
	assert.ErrorIs(t, err, ErrNotConsultationOwner)
}

func TestGetDoctorReviewsRecomputesAggregates(t *testing.T) {
	e := newEnv()
	uc := e.reviewUsecase()
	patientID := e.addPatient(t, "amira")
	doctorID := e.addDoctor(t, "dr-sari", true)
	consultation := e.closedConsultation(t, patientID, doctorID)

	_, err := uc.CreateReview(asUser(patientID), consultation.ID, &dto.CreateReviewRequest{Rating: 4})
	require.NoError(t, err)

	// drift the stored columns; the public sheet must not echo them
	profile, _ := e.doctors.FindByUserID(context.Background(), doctorID)
	profile.TotalReviews = 99
	profile.AverageRating = 1.0

	resp, err := uc.GetDoctorReviews(context.Background(), doctorID)
	require.NoError(t, err)
	assert.Equal(t, doctorID, resp.DoctorID)
	assert.Equal(t, 1, resp.TotalReviews)
	assert.Equal(t, 4.0, resp.AverageRating)
	require.Len(t, resp.Reviews, 1)
}

func TestCreateReviewTranslatesUniqueViolation(t *testing.T) {
	e := newEnv()
	uc := e.reviewUsecase()
	patientID := e.addPatient(t, "amira")
	doctorID := e.addDoctor(t, "dr-sari", true)
	consultation := e.closedConsultation(t, patientID, doctorID)

	e.reviews.createErr = uniqueViolation("idx_doctor_reviews_consultation_id")

	_, err := uc.CreateReview(asUser(patientID), consultation.ID, &dto.CreateReviewRequest{Rating: 4})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}
