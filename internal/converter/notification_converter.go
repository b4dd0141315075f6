package converter

import (
	"skinconsult-api/internal/delivery/dto"
	"skinconsult-api/internal/domain/entity"
)

// NotificationToResponse converts a Notification entity to its response DTO
func NotificationToResponse(notification *entity.Notification) *dto.NotificationResponse {
	if notification == nil {
		return nil
	}

	response := &dto.NotificationResponse{
		ID:              notification.ID,
		Title:           notification.Title,
		Message:         notification.Message,
		Type:            string(notification.Type),
		IsRead:          notification.IsRead,
		ReadAt:          notification.ReadAt,
		RelatedEntityID: notification.RelatedEntityID,
		CreatedAt:       notification.CreatedAt,
	}
	if notification.RelatedEntityType != nil {
		response.RelatedEntityType = *notification.RelatedEntityType
	}
	if notification.ActionURL != nil {
		response.ActionURL = *notification.ActionURL
	}
	return response
}

// NotificationsToResponses converts a slice of notifications
func NotificationsToResponses(notifications []entity.Notification) []dto.NotificationResponse {
	responses := make([]dto.NotificationResponse, len(notifications))
	for i, notification := range notifications {
		responses[i] = *NotificationToResponse(&notification)
	}
	return responses
}
