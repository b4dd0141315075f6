package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType tags what triggered a notification
type NotificationType string

const (
	NotificationNewConsultationRequest NotificationType = "NEW_CONSULTATION_REQUEST"
	NotificationNewOffer               NotificationType = "NEW_OFFER"
	NotificationOfferAccepted          NotificationType = "OFFER_ACCEPTED"
	NotificationPaymentSuccess         NotificationType = "PAYMENT_SUCCESS"
	NotificationNewMessage             NotificationType = "NEW_MESSAGE"
	NotificationDiagnosisCompleted     NotificationType = "DIAGNOSIS_COMPLETED"
	NotificationConsultationCancelled  NotificationType = "CONSULTATION_CANCELLED"
)

// Notification is a persisted user-facing event, written by the dispatch
// worker after the triggering state change has committed.
type Notification struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID            uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Title             string           `gorm:"type:varchar(200);not null" json:"title"`
	Message           string           `gorm:"type:varchar(1000);not null" json:"message"`
	Type              NotificationType `gorm:"type:varchar(40);not null" json:"type"`
	IsRead            bool             `gorm:"not null;default:false;index" json:"is_read"`
	ReadAt            *time.Time       `json:"read_at,omitempty"`
	RelatedEntityID   *uuid.UUID       `gorm:"type:uuid" json:"related_entity_id,omitempty"`
	RelatedEntityType *string          `gorm:"type:varchar(50)" json:"related_entity_type,omitempty"`
	ActionURL         *string          `gorm:"type:varchar(100)" json:"action_url,omitempty"`
	CreatedAt         time.Time        `gorm:"autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
