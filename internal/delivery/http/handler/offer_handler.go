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

type OfferHandler struct {
	offerUsecase usecase.OfferUsecase
	validator    *validator.CustomValidator
}

func NewOfferHandler(offerUsecase usecase.OfferUsecase, validator *validator.CustomValidator) *OfferHandler {
	return &OfferHandler{
		offerUsecase: offerUsecase,
		validator:    validator,
	}
}

func (h *OfferHandler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	consultationID, err := uuid.Parse(mux.Vars(r)["consultationId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid consultation ID", nil)
		return
	}

	var req dto.CreateOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	offer, err := h.offerUsecase.CreateOffer(r.Context(), consultationID, &req)
	if err != nil {
		switch err {
		case usecase.ErrConsultationNotFound:
			response.NotFound(w, "Consultation not found")
		case usecase.ErrOfferPriceInvalid:
			response.Error(w, http.StatusBadRequest, "Offer price must be greater than zero", nil)
		case usecase.ErrDoctorNotApproved:
			response.Forbidden(w, "Doctor account is not approved yet")
		case usecase.ErrOffersClosed:
			response.UnprocessableEntity(w, "Consultation no longer accepts offers")
		case usecase.ErrDuplicateOffer:
			response.Conflict(w, "You already have an active offer on this consultation")
		default:
			response.InternalServerError(w, "Failed to create offer")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Offer created successfully", offer)
}

func (h *OfferHandler) ListOffers(w http.ResponseWriter, r *http.Request) {
	consultationID, err := uuid.Parse(mux.Vars(r)["consultationId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid consultation ID", nil)
		return
	}

	offers, err := h.offerUsecase.ListOffers(r.Context(), consultationID)
	if err != nil {
		switch err {
		case usecase.ErrConsultationNotFound:
			response.NotFound(w, "Consultation not found")
		case usecase.ErrNotConsultationOwner:
			response.Forbidden(w, "Consultation does not belong to you")
		default:
			response.InternalServerError(w, "Failed to get offers")
		}
		return
	}

	response.Success(w, http.StatusOK, "Offers retrieved successfully", offers)
}

func (h *OfferHandler) SelectOffer(w http.ResponseWriter, r *http.Request) {
	offerID, err := uuid.Parse(mux.Vars(r)["offerId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid offer ID", nil)
		return
	}

	result, err := h.offerUsecase.SelectOffer(r.Context(), offerID)
	if err != nil {
		switch err {
		case usecase.ErrOfferNotFound:
			response.NotFound(w, "Offer not found")
		case usecase.ErrConsultationNotFound:
			response.NotFound(w, "Consultation not found")
		case usecase.ErrNotConsultationOwner:
			response.Forbidden(w, "Consultation does not belong to you")
		case usecase.ErrOfferAlreadySelected:
			response.Conflict(w, "An offer has already been selected for this consultation")
		case usecase.ErrOfferNotSelectable:
			response.UnprocessableEntity(w, "Offer can no longer be selected")
		default:
			response.InternalServerError(w, "Failed to select offer")
		}
		return
	}

	response.Success(w, http.StatusOK, "Offer selected successfully", result)
}
