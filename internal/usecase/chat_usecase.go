package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"skinconsult-api/internal/converter"
	"skinconsult-api/internal/delivery/dto"
	"skinconsult-api/internal/delivery/http/middleware"
	"skinconsult-api/internal/domain/entity"
	"skinconsult-api/internal/domain/repository"
	"skinconsult-api/internal/service"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	maxVoiceSize = 10 << 20
	maxFileSize  = 20 << 20
)

var (
	ErrChatClosed         = errors.New("consultation chat has ended")
	ErrChatNotActive      = errors.New("consultation chat is not active yet")
	ErrNotChatParticipant = errors.New("you are not a participant of this chat")
	ErrMessageEmpty       = errors.New("message text must not be empty")
	ErrVoiceTooLarge      = errors.New("voice message exceeds the 10MB limit")
	ErrVoiceNotAudio      = errors.New("voice message must be an audio file")
	ErrFileTooLarge       = errors.New("attachment exceeds the 20MB limit")
	ErrFileTypeNotAllowed = errors.New("attachment type is not allowed")
)

var allowedVoiceExtensions = map[string]bool{
	".m4a": true,
	".mp3": true,
	".wav": true,
	".aac": true,
	".ogg": true,
}

var allowedFileExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".docx": true,
}

// ChatBroadcaster pushes a persisted message to the consultation's
// realtime subscribers.
type ChatBroadcaster interface {
	BroadcastMessage(consultationID uuid.UUID, event interface{})
}

// Upload is one incoming multipart file, already opened by the handler.
type Upload struct {
	Filename string
	Size     int64
	Open     func() (io.ReadSeekCloser, error)
}

type ChatUsecase interface {
	SendText(ctx context.Context, consultationID uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	SendVoice(ctx context.Context, consultationID uuid.UUID, upload *Upload, durationSec int) (*dto.MessageResponse, error)
	SendFile(ctx context.Context, consultationID uuid.UUID, upload *Upload) (*dto.MessageResponse, error)
	ListMessages(ctx context.Context, consultationID uuid.UUID) (*dto.MessageListResponse, error)
}

type chatUsecase struct {
	log              *logrus.Logger
	messageRepo      repository.MessageRepository
	consultationRepo repository.ConsultationRepository
	userRepo         repository.UserRepository
	store            service.AssetStore
	broadcaster      ChatBroadcaster
	notifier         service.Notifier
}

func NewChatUsecase(
	log *logrus.Logger,
	messageRepo repository.MessageRepository,
	consultationRepo repository.ConsultationRepository,
	userRepo repository.UserRepository,
	store service.AssetStore,
	broadcaster ChatBroadcaster,
	notifier service.Notifier,
) ChatUsecase {
	return &chatUsecase{
		log:              log,
		messageRepo:      messageRepo,
		consultationRepo: consultationRepo,
		userRepo:         userRepo,
		store:            store,
		broadcaster:      broadcaster,
		notifier:         notifier,
	}
}

// validateAccess is the shared gate of every chat operation. Check order
// matters: a closed chat reports ErrChatClosed even to a non-participant,
// matching what the clients expect.
func (u *chatUsecase) validateAccess(ctx context.Context, consultationID, userID uuid.UUID) (*entity.Consultation, uuid.UUID, error) {
	consultation, err := u.consultationRepo.FindByID(ctx, consultationID)
	if err != nil {
		u.log.Warnf("Failed to find consultation %s: %+v", consultationID, err)
		return nil, uuid.Nil, err
	}
	if consultation == nil {
		return nil, uuid.Nil, ErrConsultationNotFound
	}
	if consultation.IsTerminal() {
		return nil, uuid.Nil, ErrChatClosed
	}
	if !consultation.ChatOpen() {
		return nil, uuid.Nil, ErrChatNotActive
	}

	switch {
	case consultation.PatientID == userID:
		return consultation, *consultation.DoctorID, nil
	case consultation.DoctorID != nil && *consultation.DoctorID == userID:
		return consultation, consultation.PatientID, nil
	}
	return nil, uuid.Nil, ErrNotChatParticipant
}

// SendText posts a text message into an active consultation chat
func (u *chatUsecase) SendText(ctx context.Context, consultationID uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	consultation, receiverID, err := u.validateAccess(ctx, consultationID, userID)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrMessageEmpty
	}
	message := &entity.Message{
		ConsultationID: consultationID,
		SenderID:       userID,
		Type:           entity.MessageTypeText,
		Text:           &text,
		Timestamp:      time.Now().UTC(),
	}

	return u.deliver(ctx, consultation, message, receiverID)
}

// SendVoice stores an uploaded audio clip and posts it as a voice message.
// The payload is sniffed, not trusted: non-audio bytes are rejected no
// matter the extension.
func (u *chatUsecase) SendVoice(ctx context.Context, consultationID uuid.UUID, upload *Upload, durationSec int) (*dto.MessageResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	consultation, receiverID, err := u.validateAccess(ctx, consultationID, userID)
	if err != nil {
		return nil, err
	}

	if upload.Size > maxVoiceSize {
		return nil, ErrVoiceTooLarge
	}
	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if !allowedVoiceExtensions[ext] {
		return nil, ErrVoiceNotAudio
	}

	f, err := upload.Open()
	if err != nil {
		u.log.Warnf("Failed to open voice upload: %+v", err)
		return nil, err
	}
	defer f.Close()

	mime, err := mimetype.DetectReader(f)
	if err != nil {
		u.log.Warnf("Failed to detect voice mime type: %+v", err)
		return nil, err
	}
	if !strings.HasPrefix(mime.String(), "audio/") && mime.String() != "video/mp4" {
		// m4a files sniff as video/mp4 containers
		return nil, ErrVoiceNotAudio
	}
	if _, err := f.Seek(0, 0); err != nil {
		return nil, err
	}

	voiceURL, err := u.store.Save(ctx, "voice", uuid.NewString()+ext, f)
	if err != nil {
		u.log.Warnf("Failed to store voice upload: %+v", err)
		return nil, err
	}

	message := &entity.Message{
		ConsultationID: consultationID,
		SenderID:       userID,
		Type:           entity.MessageTypeVoice,
		VoiceURL:       &voiceURL,
		VoiceDuration:  &durationSec,
		Timestamp:      time.Now().UTC(),
	}

	return u.deliver(ctx, consultation, message, receiverID)
}

// SendFile stores an uploaded document and posts it as a file message
func (u *chatUsecase) SendFile(ctx context.Context, consultationID uuid.UUID, upload *Upload) (*dto.MessageResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	consultation, receiverID, err := u.validateAccess(ctx, consultationID, userID)
	if err != nil {
		return nil, err
	}

	if upload.Size > maxFileSize {
		return nil, ErrFileTooLarge
	}
	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if !allowedFileExtensions[ext] {
		return nil, ErrFileTypeNotAllowed
	}

	f, err := upload.Open()
	if err != nil {
		u.log.Warnf("Failed to open file upload: %+v", err)
		return nil, err
	}
	defer f.Close()

	fileURL, err := u.store.Save(ctx, "files", uuid.NewString()+ext, f)
	if err != nil {
		u.log.Warnf("Failed to store file upload: %+v", err)
		return nil, err
	}

	fileName := filepath.Base(upload.Filename)
	fileSize := upload.Size
	message := &entity.Message{
		ConsultationID: consultationID,
		SenderID:       userID,
		Type:           entity.MessageTypeFile,
		FileURL:        &fileURL,
		FileName:       &fileName,
		FileSize:       &fileSize,
		Timestamp:      time.Now().UTC(),
	}

	return u.deliver(ctx, consultation, message, receiverID)
}

// deliver persists the message, then broadcasts to the consultation's
// realtime group and notifies the receiver. Broadcast only ever happens
// after the row exists.
func (u *chatUsecase) deliver(ctx context.Context, consultation *entity.Consultation, message *entity.Message, receiverID uuid.UUID) (*dto.MessageResponse, error) {
	if err := u.messageRepo.Create(ctx, message); err != nil {
		u.log.Warnf("Failed to create message for consultation %s: %+v", consultation.ID, err)
		return nil, err
	}

	if sender, err := u.userRepo.FindByID(ctx, message.SenderID); err == nil && sender != nil {
		message.Sender = *sender
	}

	response := converter.MessageToResponse(message)
	u.broadcaster.BroadcastMessage(consultation.ID, response)

	u.notifier.Notify(service.NotificationIntent{
		UserID:            receiverID,
		Title:             "New Message",
		Message:           fmt.Sprintf("You have a new message from %s.", message.Sender.FullName),
		Type:              entity.NotificationNewMessage,
		RelatedEntityID:   &consultation.ID,
		RelatedEntityType: "consultation",
		ActionURL:         fmt.Sprintf("/chat/consultations/%s", consultation.ID),
	})

	return response, nil
}

// ListMessages returns the full history oldest first. Reading marks every
// message from the other side as read.
func (u *chatUsecase) ListMessages(ctx context.Context, consultationID uuid.UUID) (*dto.MessageListResponse, error) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("user not found in context")
	}

	if _, _, err := u.validateAccess(ctx, consultationID, userID); err != nil {
		return nil, err
	}

	if err := u.messageRepo.MarkReadForReceiver(ctx, consultationID, userID); err != nil {
		u.log.Warnf("Failed to mark messages read for consultation %s: %+v", consultationID, err)
	}

	messages, err := u.messageRepo.FindByConsultation(ctx, consultationID)
	if err != nil {
		u.log.Warnf("Failed to find messages for consultation %s: %+v", consultationID, err)
		return nil, err
	}

	return &dto.MessageListResponse{
		Messages: converter.MessagesToResponses(messages),
		Total:    len(messages),
	}, nil
}
