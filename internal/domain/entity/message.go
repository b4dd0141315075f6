package entity

import (
	"time"

	"github.com/google/uuid"
)

// MessageType discriminates the payload of a chat message
type MessageType string

const (
	MessageTypeText  MessageType = "TEXT"
	MessageTypeVoice MessageType = "VOICE"
	MessageTypeFile  MessageType = "FILE"
)

// Message is a single chat entry inside a consultation. Only IsRead is ever
// mutated after creation.
type Message struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ConsultationID uuid.UUID   `gorm:"type:uuid;not null;index" json:"consultation_id"`
	SenderID       uuid.UUID   `gorm:"type:uuid;not null;index" json:"sender_id"`
	Type           MessageType `gorm:"type:varchar(10);not null;default:'TEXT'" json:"type"`
	Text           *string     `gorm:"type:varchar(2000)" json:"text,omitempty"`
	VoiceURL       *string     `gorm:"type:varchar(300)" json:"voice_url,omitempty"`
	VoiceDuration  *int        `gorm:"column:voice_duration_sec" json:"voice_duration_sec,omitempty"`
	FileURL        *string     `gorm:"type:varchar(300)" json:"file_url,omitempty"`
	FileName       *string     `gorm:"type:varchar(255)" json:"file_name,omitempty"`
	FileSize       *int64      `json:"file_size,omitempty"`
	Timestamp      time.Time   `gorm:"not null;index" json:"timestamp"`
	IsRead         bool        `gorm:"not null;default:false" json:"is_read"`

	// Relationships
	Consultation Consultation `gorm:"foreignKey:ConsultationID" json:"-"`
	Sender       User         `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

func (Message) TableName() string {
	return "consultation_messages"
}
