package handler

import (
	"encoding/json"
	"net/http"

	"skinconsult-api/internal/delivery/dto"
	"skinconsult-api/internal/usecase"
	"skinconsult-api/pkg/response"
	"skinconsult-api/pkg/validator"
)

type PaymentHandler struct {
	paymentUsecase usecase.PaymentUsecase
	validator      *validator.CustomValidator
}

func NewPaymentHandler(paymentUsecase usecase.PaymentUsecase, validator *validator.CustomValidator) *PaymentHandler {
	return &PaymentHandler{
		paymentUsecase: paymentUsecase,
		validator:      validator,
	}
}

func (h *PaymentHandler) SimulatePay(w http.ResponseWriter, r *http.Request) {
	var req dto.SimulatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	payment, err := h.paymentUsecase.SimulatePay(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrConsultationNotFound:
			response.NotFound(w, "Consultation not found")
		case usecase.ErrNotConsultationOwner:
			response.Forbidden(w, "Consultation does not belong to you")
		case usecase.ErrAlreadyPaid:
			response.Conflict(w, "Consultation has already been paid")
		case usecase.ErrNothingToPay:
			response.UnprocessableEntity(w, "Consultation is not awaiting payment")
		default:
			response.InternalServerError(w, "Failed to process payment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Payment successful", payment)
}

func (h *PaymentHandler) GetMyPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.paymentUsecase.GetMyPayments(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get payments")
		return
	}

	response.Success(w, http.StatusOK, "Payments retrieved successfully", payments)
}
