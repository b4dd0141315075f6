package converter

import (
	"skinconsult-api/internal/delivery/dto"
	"skinconsult-api/internal/domain/entity"
)

// MessageToResponse converts a Message entity to its response DTO
func MessageToResponse(message *entity.Message) *dto.MessageResponse {
	if message == nil {
		return nil
	}

	response := &dto.MessageResponse{
		ID:             message.ID,
		ConsultationID: message.ConsultationID,
		SenderID:       message.SenderID,
		SenderName:     message.Sender.FullName,
		Type:           string(message.Type),
		Timestamp:      message.Timestamp,
		IsRead:         message.IsRead,
	}

	if message.Text != nil {
		response.Text = *message.Text
	}
	if message.VoiceURL != nil {
		response.VoiceURL = *message.VoiceURL
	}
	if message.VoiceDuration != nil {
		response.VoiceDuration = *message.VoiceDuration
	}
	if message.FileURL != nil {
		response.FileURL = *message.FileURL
	}
	if message.FileName != nil {
		response.FileName = *message.FileName
	}
	if message.FileSize != nil {
		response.FileSize = *message.FileSize
	}

	return response
}

// MessagesToResponses converts a slice of messages
func MessagesToResponses(messages []entity.Message) []dto.MessageResponse {
	responses := make([]dto.MessageResponse, len(messages))
	for i, message := range messages {
		responses[i] = *MessageToResponse(&message)
	}
	return responses
}
