package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Inquiry statuses. OPEN -> CLOSED is one-way.
const (
	InquiryOpen   = "OPEN"
	InquiryClosed = "CLOSED"
)

// InquiryDB represents an inquiry row: the negotiation between a customer
// and a business around a service. NegotiatedPrice is set when the service
// carried a fixed price charged on open.
type InquiryDB struct {
	InquiryID       uuid.UUID           `json:"inquiry_id" db:"inquiry_id"`
	CustomerID      uuid.UUID           `json:"customer_id" db:"customer_id"`
	ServiceID       uuid.UUID           `json:"service_id" db:"service_id"`
	BusinessID      uuid.UUID           `json:"business_id" db:"business_id"`
	ModeratorID     *uuid.UUID          `json:"moderator_id,omitempty" db:"moderator_id"`
	Subject         string              `json:"subject" db:"subject"`
	Status          string              `json:"status" db:"status"`
	NegotiatedPrice decimal.NullDecimal `json:"negotiated_price,omitempty" db:"negotiated_price"`
	ClosedBy        *uuid.UUID          `json:"closed_by,omitempty" db:"closed_by"`
	CreatedAt       time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at" db:"updated_at"`
}

// InquiryMessageDB represents a single message inside an inquiry.
type InquiryMessageDB struct {
	MessageID uuid.UUID `json:"message_id" db:"message_id"`
	InquiryID uuid.UUID `json:"inquiry_id" db:"inquiry_id"`
	SenderID  uuid.UUID `json:"sender_id" db:"sender_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ServiceInfo is what the external service catalog reports for a service.
type ServiceInfo struct {
	ServiceID  uuid.UUID       `json:"service_id"`
	BusinessID uuid.UUID       `json:"business_id"`
	FixedPrice decimal.Decimal `json:"fixed_price"` // Zero means the service has no up-front charge
}
