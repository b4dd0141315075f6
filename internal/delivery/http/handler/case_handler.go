package handler

import (
	"io"
	"net/http"

	"skinconsult-api/internal/usecase"
	"skinconsult-api/pkg/response"
)

type CaseHandler struct {
	skinCaseUsecase usecase.SkinCaseUsecase
}

func NewCaseHandler(skinCaseUsecase usecase.SkinCaseUsecase) *CaseHandler {
	return &CaseHandler{
		skinCaseUsecase: skinCaseUsecase,
	}
}

func (h *CaseHandler) AnalyzeImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form", nil)
		return
	}

	_, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Image file is required", nil)
		return
	}

	upload := &usecase.Upload{
		Filename: header.Filename,
		Size:     header.Size,
		Open: func() (io.ReadSeekCloser, error) {
			return header.Open()
		},
	}

	diseaseCase, err := h.skinCaseUsecase.AnalyzeImage(r.Context(), upload, r.FormValue("notes"))
	if err != nil {
		switch err {
		case usecase.ErrImageTooLarge:
			response.Error(w, http.StatusBadRequest, "Case image exceeds the 8MB limit", nil)
		case usecase.ErrImageNotValid:
			response.Error(w, http.StatusBadRequest, "Case image must be a jpg or png file", nil)
		case usecase.ErrPredictionDown:
			response.Error(w, http.StatusServiceUnavailable, "Diagnosis service is unavailable, try again later", nil)
		default:
			response.InternalServerError(w, "Failed to analyze image")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Image analyzed successfully", diseaseCase)
}

func (h *CaseHandler) GetMyCases(w http.ResponseWriter, r *http.Request) {
	cases, err := h.skinCaseUsecase.GetMyCases(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get cases")
		return
	}

	response.Success(w, http.StatusOK, "Cases retrieved successfully", cases)
}
