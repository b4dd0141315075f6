package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"skinconsult-api/internal/delivery/dto"
	"skinconsult-api/internal/usecase"
	"skinconsult-api/pkg/response"
	"skinconsult-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// multipart form memory ceiling; larger parts spill to disk
const maxUploadMemory = 32 << 20

type ChatHandler struct {
	chatUsecase usecase.ChatUsecase
	validator   *validator.CustomValidator
}

func NewChatHandler(chatUsecase usecase.ChatUsecase, validator *validator.CustomValidator) *ChatHandler {
	return &ChatHandler{
		chatUsecase: chatUsecase,
		validator:   validator,
	}
}

func (h *ChatHandler) SendText(w http.ResponseWriter, r *http.Request) {
	consultationID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid consultation ID", nil)
		return
	}

	var req dto.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	message, err := h.chatUsecase.SendText(r.Context(), consultationID, &req)
	if err != nil {
		h.writeChatError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Message sent successfully", message)
}

func (h *ChatHandler) SendVoice(w http.ResponseWriter, r *http.Request) {
	consultationID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid consultation ID", nil)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("voice")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Voice file is required", nil)
		return
	}
	defer file.Close()

	durationSec, _ := strconv.Atoi(r.FormValue("duration_sec"))

	upload := &usecase.Upload{
		Filename: header.Filename,
		Size:     header.Size,
		Open: func() (io.ReadSeekCloser, error) {
			return header.Open()
		},
	}

	message, err := h.chatUsecase.SendVoice(r.Context(), consultationID, upload, durationSec)
	if err != nil {
		h.writeChatError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Voice message sent successfully", message)
}

func (h *ChatHandler) SendFile(w http.ResponseWriter, r *http.Request) {
	consultationID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid consultation ID", nil)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "File is required", nil)
		return
	}
	defer file.Close()

	upload := &usecase.Upload{
		Filename: header.Filename,
		Size:     header.Size,
		Open: func() (io.ReadSeekCloser, error) {
			return header.Open()
		},
	}

	message, err := h.chatUsecase.SendFile(r.Context(), consultationID, upload)
	if err != nil {
		h.writeChatError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "File sent successfully", message)
}

func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	consultationID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid consultation ID", nil)
		return
	}

	messages, err := h.chatUsecase.ListMessages(r.Context(), consultationID)
	if err != nil {
		h.writeChatError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Messages retrieved successfully", messages)
}

func (h *ChatHandler) writeChatError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrConsultationNotFound:
		response.NotFound(w, "Consultation not found")
	case usecase.ErrChatClosed:
		response.UnprocessableEntity(w, "Consultation chat has ended")
	case usecase.ErrChatNotActive:
		response.UnprocessableEntity(w, "Consultation chat is not active yet")
	case usecase.ErrNotChatParticipant:
		response.Forbidden(w, "You are not a participant of this chat")
	case usecase.ErrMessageEmpty:
		response.Error(w, http.StatusBadRequest, "Message text must not be empty", nil)
	case usecase.ErrVoiceTooLarge:
		response.Error(w, http.StatusBadRequest, "Voice message exceeds the 10MB limit", nil)
	case usecase.ErrVoiceNotAudio:
		response.Error(w, http.StatusBadRequest, "Voice message must be an audio file", nil)
	case usecase.ErrFileTooLarge:
		response.Error(w, http.StatusBadRequest, "Attachment exceeds the 20MB limit", nil)
	case usecase.ErrFileTypeNotAllowed:
		response.Error(w, http.StatusBadRequest, "Attachment type is not allowed", nil)
	default:
		response.InternalServerError(w, "Failed to process chat request")
	}
}
