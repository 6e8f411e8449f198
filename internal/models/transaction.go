package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ledger operation names used in published transaction events.
const (
	OperationDeposit  = "deposit"
	OperationWithdraw = "withdraw"
	OperationTransfer = "transfer"
)

// TransactionDB represents an immutable ledger row. A nil FromUser means an
// external deposit, a nil ToUser means an external withdrawal; a transfer
// carries both. InquiryID links the movement to the inquiry that caused it.
type TransactionDB struct {
	TransactionID uuid.UUID       `json:"transaction_id" db:"transaction_id"`
	FromUser      *uuid.UUID      `json:"from_user,omitempty" db:"from_user"`
	ToUser        *uuid.UUID      `json:"to_user,omitempty" db:"to_user"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	InquiryID     *uuid.UUID      `json:"inquiry_id,omitempty" db:"inquiry_id"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}

// TransactionEvent is the payload published to Kafka after a ledger
// operation commits.
type TransactionEvent struct {
	TransactionID string          `json:"transaction_id"` // Unique identifier of the ledger row
	Operation     string          `json:"operation"`      // "deposit", "withdraw" or "transfer"
	FromUser      string          `json:"from_user,omitempty"`
	ToUser        string          `json:"to_user,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	InquiryID     string          `json:"inquiry_id,omitempty"`
	Timestamp     int64           `json:"timestamp"` // Unix timestamp of the operation
}
