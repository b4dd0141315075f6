package converter

import (
	"skinconsult-api/internal/delivery/dto"
	"skinconsult-api/internal/domain/entity"
)

// ConsultationToResponse converts a Consultation entity to its response DTO
func ConsultationToResponse(consultation *entity.Consultation) *dto.ConsultationResponse {
	if consultation == nil {
		return nil
	}

	response := &dto.ConsultationResponse{
		ID:              consultation.ID,
		PatientID:       consultation.PatientID,
		DoctorID:        consultation.DoctorID,
		DiseaseCaseID:   consultation.DiseaseCaseID,
		Status:          string(consultation.Status),
		Price:           consultation.Price,
		IsPaid:          consultation.IsPaid,
		SelectedOfferID: consultation.SelectedOfferID,
		CreatedAt:       consultation.CreatedAt,
		ClosedAt:        consultation.ClosedAt,
	}

	if consultation.Notes != nil {
		response.Notes = *consultation.Notes
	}
	if consultation.FinalDiagnosis != nil {
		response.FinalDiagnosis = *consultation.FinalDiagnosis
	}
	if consultation.DoctorFinalNotes != nil {
		response.DoctorFinalNotes = *consultation.DoctorFinalNotes
	}
	if consultation.Doctor != nil {
		response.DoctorName = consultation.Doctor.User.FullName
	}

	return response
}

// ConsultationsToResponses converts a slice of consultations
func ConsultationsToResponses(consultations []entity.Consultation) []dto.ConsultationResponse {
	responses := make([]dto.ConsultationResponse, len(consultations))
	for i, consultation := range consultations {
		responses[i] = *ConsultationToResponse(&consultation)
	}
	return responses
}

// ConsultationToOpenResponse builds the doctor-facing open-request
// projection with the AI case summary.
func ConsultationToOpenResponse(consultation *entity.Consultation, baseURL string) *dto.OpenConsultationResponse {
	if consultation == nil {
		return nil
	}

	response := &dto.OpenConsultationResponse{
		ID:          consultation.ID,
		Status:      string(consultation.Status),
		CreatedAt:   consultation.CreatedAt,
		PatientID:   consultation.PatientID,
		PatientName: consultation.Patient.User.FullName,
		CaseID:      consultation.DiseaseCaseID,
		AiDiagnosis: consultation.DiseaseCase.AiDiagnosis,
		Confidence:  consultation.DiseaseCase.Confidence,
		ImageURL:    baseURL + consultation.DiseaseCase.ImagePath,
	}
	if consultation.Notes != nil {
		response.Notes = *consultation.Notes
	}
	return response
}

// badge labels for the patient dashboard
var consultationBadges = map[entity.ConsultationStatus]string{
	entity.ConsultationStatusOpen:          "FINDING_DOCTOR",
	entity.ConsultationStatusOffering:      "OFFERS",
	entity.ConsultationStatusOfferSelected: "WAITING_PAYMENT",
	entity.ConsultationStatusPaid:          "WAITING_PAYMENT",
	entity.ConsultationStatusInChat:        "ACTIVE",
	entity.ConsultationStatusClosed:        "COMPLETED",
	entity.ConsultationStatusCancelled:     "CANCELLED",
}

// ConsultationToRecentResponse builds the patient dashboard projection.
func ConsultationToRecentResponse(consultation *entity.Consultation) *dto.RecentConsultationResponse {
	if consultation == nil {
		return nil
	}

	doctorName := "Finding Doctor..."
	if consultation.Doctor != nil {
		doctorName = consultation.Doctor.User.FullName
	}

	badge, ok := consultationBadges[consultation.Status]
	if !ok {
		badge = "UNKNOWN"
	}

	return &dto.RecentConsultationResponse{
		ConsultationID: consultation.ID,
		DoctorName:     doctorName,
		AiDiagnosis:    consultation.DiseaseCase.AiDiagnosis,
		Confidence:     consultation.DiseaseCase.Confidence,
		Status:         string(consultation.Status),
		Badge:          badge,
		CreatedAt:      consultation.CreatedAt,
	}
}
