package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConsultationStatus is the lifecycle phase of a consultation. The status
// only ever advances forward through the order below; the single exception
// is CANCELLED, reachable from any pre-IN_CHAT phase.
type ConsultationStatus string

const (
	ConsultationStatusOpen          ConsultationStatus = "OPEN"
	ConsultationStatusOffering      ConsultationStatus = "OFFERING"
	ConsultationStatusOfferSelected ConsultationStatus = "OFFER_SELECTED"
	// PAID exists for compatibility with the payment flow but is never
	// entered: payment jumps straight from OFFER_SELECTED to IN_CHAT.
	ConsultationStatusPaid      ConsultationStatus = "PAID"
	ConsultationStatusInChat    ConsultationStatus = "IN_CHAT"
	ConsultationStatusClosed    ConsultationStatus = "CLOSED"
	ConsultationStatusCancelled ConsultationStatus = "CANCELLED"
)

// rank gives the forward ordering of the lifecycle. Terminal states have no
// successor.
var consultationStatusRank = map[ConsultationStatus]int{
	ConsultationStatusOpen:          0,
	ConsultationStatusOffering:      1,
	ConsultationStatusOfferSelected: 2,
	ConsultationStatusPaid:          3,
	ConsultationStatusInChat:        4,
	ConsultationStatusClosed:        5,
}

// Consultation is the aggregate root tracking one patient/doctor engagement
// tied to one disease case, from request to close. DoctorID, Price and
// SelectedOfferID are set together when an offer is selected.
type Consultation struct {
	ID               uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID         *uuid.UUID         `gorm:"type:uuid;index" json:"doctor_id,omitempty"`
	DiseaseCaseID    uuid.UUID          `gorm:"type:uuid;not null;index" json:"disease_case_id"`
	Status           ConsultationStatus `gorm:"type:varchar(20);not null;default:'OPEN';index" json:"status"`
	Price            *decimal.Decimal   `gorm:"type:numeric(10,2)" json:"price,omitempty"`
	IsPaid           bool               `gorm:"not null;default:false" json:"is_paid"`
	Notes            *string            `gorm:"type:text" json:"notes,omitempty"`
	SelectedOfferID  *uuid.UUID         `gorm:"type:uuid" json:"selected_offer_id,omitempty"`
	FinalDiagnosis   *string            `gorm:"type:text" json:"final_diagnosis,omitempty"`
	DoctorFinalNotes *string            `gorm:"type:text" json:"doctor_final_notes,omitempty"`
	CreatedAt        time.Time          `gorm:"autoCreateTime" json:"created_at"`
	ClosedAt         *time.Time         `json:"closed_at,omitempty"`

	// Relationships
	Patient     PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor      *DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	DiseaseCase DiseaseCase    `gorm:"foreignKey:DiseaseCaseID" json:"disease_case,omitempty"`
}

func (Consultation) TableName() string {
	return "consultations"
}

// IsTerminal reports whether no further transition is possible.
func (c *Consultation) IsTerminal() bool {
	return c.Status == ConsultationStatusClosed || c.Status == ConsultationStatusCancelled
}

// IsActiveRequest reports whether the consultation still occupies its
// disease case (anything not CLOSED/CANCELLED).
func (c *Consultation) IsActiveRequest() bool {
	return !c.IsTerminal()
}

// CanTransitionTo enforces the forward-only ordering. CANCELLED is allowed
// from OPEN, OFFERING and OFFER_SELECTED only.
func (c *Consultation) CanTransitionTo(next ConsultationStatus) bool {
	if c.IsTerminal() {
		return false
	}
	if next == ConsultationStatusCancelled {
		return c.CanCancel()
	}
	cur, ok := consultationStatusRank[c.Status]
	if !ok {
		return false
	}
	nxt, ok := consultationStatusRank[next]
	if !ok {
		return false
	}
	return nxt > cur
}

// CanCancel reports whether the patient may still withdraw the request.
func (c *Consultation) CanCancel() bool {
	switch c.Status {
	case ConsultationStatusOpen, ConsultationStatusOffering, ConsultationStatusOfferSelected:
		return true
	}
	return false
}

// ChatOpen reports whether message exchange is permitted.
func (c *Consultation) ChatOpen() bool {
	return c.Status == ConsultationStatusInChat
}

// AcceptsOffers reports whether doctors may still bid.
func (c *Consultation) AcceptsOffers() bool {
	return c.Status == ConsultationStatusOpen || c.Status == ConsultationStatusOffering
}

// CanFinalize reports whether the assigned doctor may close with a final
// diagnosis. PAID is accepted alongside IN_CHAT even though the normal flow
// never stops there.
func (c *Consultation) CanFinalize() bool {
	return c.Status == ConsultationStatusInChat || c.Status == ConsultationStatusPaid
}
