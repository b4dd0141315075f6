package handler

import (
	"encoding/json"
	"net/http"

	"skinconsult-api/internal/delivery/dto"
	"skinconsult-api/internal/usecase"
	"skinconsult-api/pkg/response"
	"skinconsult-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ConsultationHandler struct {
	consultationUsecase usecase.ConsultationUsecase
	validator           *validator.CustomValidator
}

func NewConsultationHandler(consultationUsecase usecase.ConsultationUsecase, validator *validator.CustomValidator) *ConsultationHandler {
	return &ConsultationHandler{
		consultationUsecase: consultationUsecase,
		validator:           validator,
	}
}

func (h *ConsultationHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	consultation, err := h.consultationUsecase.CreateRequest(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrCaseNotFound:
			response.NotFound(w, "Disease case not found")
		case usecase.ErrCaseNotOwned:
			response.Forbidden(w, "Disease case does not belong to you")
		case usecase.ErrCaseOccupied:
			response.Conflict(w, "An active consultation already exists for this case")
		default:
			response.InternalServerError(w, "Failed to create consultation request")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Consultation request created successfully", consultation)
}

func (h *ConsultationHandler) GetOpenRequests(w http.ResponseWriter, r *http.Request) {
	consultations, err := h.consultationUsecase.GetOpenRequests(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get open consultations")
		return
	}

	response.Success(w, http.StatusOK, "Open consultations retrieved successfully", consultations)
}

func (h *ConsultationHandler) GetMyConsultations(w http.ResponseWriter, r *http.Request) {
	consultations, err := h.consultationUsecase.GetMyConsultations(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get consultations")
		return
	}

	response.Success(w, http.StatusOK, "Consultations retrieved successfully", consultations)
}

func (h *ConsultationHandler) GetAssignedConsultations(w http.ResponseWriter, r *http.Request) {
	consultations, err := h.consultationUsecase.GetAssignedConsultations(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get assigned consultations")
		return
	}

	response.Success(w, http.StatusOK, "Assigned consultations retrieved successfully", consultations)
}

func (h *ConsultationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	consultationID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid consultation ID", nil)
		return
	}

	consultation, err := h.consultationUsecase.GetByID(r.Context(), consultationID)
	if err != nil {
		switch err {
		case usecase.ErrConsultationNotFound:
			response.NotFound(w, "Consultation not found")
		case usecase.ErrNotParticipant:
			response.Forbidden(w, "You are not a participant of this consultation")
		default:
			response.InternalServerError(w, "Failed to get consultation")
		}
		return
	}

	response.Success(w, http.StatusOK, "Consultation retrieved successfully", consultation)
}

func (h *ConsultationHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	consultationID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid consultation ID", nil)
		return
	}

	var req dto.FinalizeConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	consultation, err := h.consultationUsecase.Finalize(r.Context(), consultationID, &req)
	if err != nil {
		switch err {
		case usecase.ErrConsultationNotFound:
			response.NotFound(w, "Consultation not found")
		case usecase.ErrNotAssignedDoctor:
			response.Forbidden(w, "You are not the assigned doctor for this consultation")
		case usecase.ErrConsultationNotFinalizable:
			response.UnprocessableEntity(w, "Consultation cannot be finalized in its current status")
		default:
			response.InternalServerError(w, "Failed to finalize consultation")
		}
		return
	}

	response.Success(w, http.StatusOK, "Consultation finalized successfully", consultation)
}

func (h *ConsultationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	consultationID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid consultation ID", nil)
		return
	}

	err = h.consultationUsecase.Cancel(r.Context(), consultationID)
	if err != nil {
		switch err {
		case usecase.ErrConsultationNotFound:
			response.NotFound(w, "Consultation not found")
		case usecase.ErrNotConsultationOwner:
			response.Forbidden(w, "Consultation does not belong to you")
		case usecase.ErrConsultationNotCancellable:
			response.UnprocessableEntity(w, "Consultation can no longer be cancelled")
		default:
			response.InternalServerError(w, "Failed to cancel consultation")
		}
		return
	}

	response.Success(w, http.StatusOK, "Consultation cancelled successfully", nil)
}

func (h *ConsultationHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	consultations, err := h.consultationUsecase.GetRecent(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get recent consultations")
		return
	}

	response.Success(w, http.StatusOK, "Recent consultations retrieved successfully", consultations)
}
