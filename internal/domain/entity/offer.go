package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OfferStatus is the state of a doctor's bid
type OfferStatus string

const (
	OfferStatusActive   OfferStatus = "ACTIVE"
	OfferStatusSelected OfferStatus = "SELECTED"
	OfferStatusRejected OfferStatus = "REJECTED"
)

// Offer is a doctor's priced bid on an open consultation. At most one offer
// per (consultation, doctor) may be ACTIVE, enforced by a partial unique
// index; within a consultation at most one offer is ever SELECTED.
type Offer struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ConsultationID uuid.UUID       `gorm:"type:uuid;not null;index" json:"consultation_id"`
	DoctorID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Price          decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Notes          string          `gorm:"type:text" json:"notes,omitempty"`
	Status         OfferStatus     `gorm:"type:varchar(10);not null;default:'ACTIVE';index" json:"status"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Consultation Consultation  `gorm:"foreignKey:ConsultationID" json:"consultation,omitempty"`
	Doctor       DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Offer) TableName() string {
	return "consultation_offers"
}

func (o *Offer) IsActive() bool {
	return o.Status == OfferStatusActive
}
