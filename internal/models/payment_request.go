package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment request statuses. PENDING is the only non-terminal state.
const (
	PaymentRequestPending  = "PENDING"
	PaymentRequestAccepted = "ACCEPTED"
	PaymentRequestDeclined = "DECLINED"
)

// Payment request response actions.
const (
	ActionAccept  = "accept"
	ActionDecline = "decline"
)

// PaymentRequestDB represents a payment request row. At most one PENDING
// request exists per inquiry, enforced by a partial unique index.
type PaymentRequestDB struct {
	RequestID   uuid.UUID       `json:"request_id" db:"request_id"`
	InquiryID   uuid.UUID       `json:"inquiry_id" db:"inquiry_id"`
	RequesterID uuid.UUID       `json:"requester_id" db:"requester_id"` // Business or moderator asking for payment
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Description string          `json:"description" db:"description"`
	Status      string          `json:"status" db:"status"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}
