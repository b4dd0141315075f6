package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is the simulated settlement channel
type PaymentMethod string

const (
	PaymentMethodCash   PaymentMethod = "CASH"
	PaymentMethodCard   PaymentMethod = "CARD"
	PaymentMethodWallet PaymentMethod = "WALLET"
)

// PaymentStatus is the state of a settlement
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// Payment records a settlement. Exactly one payment may exist per
// consultation (unique index on ConsultationID); rows are immutable.
type Payment struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ConsultationID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"consultation_id"`
	PatientID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Amount         decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Method         PaymentMethod   `gorm:"type:varchar(10);not null" json:"method"`
	Status         PaymentStatus   `gorm:"type:varchar(10);not null;default:'PENDING'" json:"status"`
	Provider       string          `gorm:"type:varchar(50);not null;default:'SIMULATED'" json:"provider"`
	ReferenceNo    string          `gorm:"type:varchar(50);not null" json:"reference_no"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Consultation Consultation `gorm:"foreignKey:ConsultationID" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}
