package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Caller roles, issued by the external identity provider.
const (
	RoleCustomer  = "CUSTOMER"
	RoleBusiness  = "BUSINESS"
	RoleModerator = "MODERATOR"
)

// WalletDB represents a wallet row in the database.
// There is exactly one wallet per user; rows are created lazily on the
// first credit, and a missing row reads as zero balance.
type WalletDB struct {
	UserID    uuid.UUID       `json:"user_id" db:"user_id"`       // Identifier of the wallet's owner
	Balance   decimal.Decimal `json:"balance" db:"balance"`       // Current balance, never negative
	CreatedAt time.Time       `json:"created_at" db:"created_at"` // Timestamp when the wallet was created
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"` // Timestamp of the last balance change
}
