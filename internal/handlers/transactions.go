package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"marketwallet/internal/jwt"
	"marketwallet/internal/logger"
	"marketwallet/internal/models"
)

// TransactionsTokener defines only the methods needed by this handler.
type TransactionsTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// TransactionsReader defines the interface that the service must implement.
type TransactionsReader interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.TransactionDB, error)
}

// TransactionView represents one ledger row in API responses
// swagger:model TransactionView
type TransactionView struct {
	TransactionID uuid.UUID       `json:"transaction_id"`
	FromUser      *uuid.UUID      `json:"from_user,omitempty"`
	ToUser        *uuid.UUID      `json:"to_user,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	InquiryID     *uuid.UUID      `json:"inquiry_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TransactionsResponse represents the transaction history of a wallet
// swagger:model TransactionsResponse
type TransactionsResponse struct {
	Transactions []TransactionView `json:"transactions"`
}

// TransactionsErrorResponse represents an error response for the history
// swagger:model TransactionsErrorResponse
type TransactionsErrorResponse struct {
	// Error message
	// default: Unauthorized
	Error string `json:"error"`
}

// NewListTransactionsHandler returns an HTTP handler for the wallet history.
// @Summary List wallet transactions
// @Description Returns every ledger row touching the wallet, newest first.
// @Tags wallet
// @Produce json
// @Param user_id path string true "Wallet owner ID"
// @Success 200 {object} handlers.TransactionsResponse "Transaction history"
// @Failure 401 {object} handlers.TransactionsErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.TransactionsErrorResponse "Forbidden"
// @Router /wallet/{user_id}/transactions [get]
// @Security BearerAuth
func NewListTransactionsHandler(
	svc TransactionsReader,
	tokenGetter TransactionsTokener,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokenStr, err := tokenGetter.GetTokenFromRequest(ctx, r)
		if err != nil {
			logger.Log.Errorw("failed to get token from request", "error", err)
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(TransactionsErrorResponse{Error: "Unauthorized"})
			return
		}

		claims, err := tokenGetter.GetClaims(ctx, tokenStr)
		if err != nil {
			logger.Log.Errorw("failed to get claims from token", "error", err)
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(TransactionsErrorResponse{Error: "Unauthorized"})
			return
		}

		userID, err := uuid.Parse(chi.URLParam(r, "user_id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(TransactionsErrorResponse{Error: "Invalid user id"})
			return
		}

		if claims.UserID != userID && claims.Role != models.RoleModerator {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(TransactionsErrorResponse{Error: "Forbidden"})
			return
		}

		txns, err := svc.ListByUser(ctx, userID)
		if err != nil {
			logger.Log.Errorw("failed to list transactions", "userID", userID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(TransactionsErrorResponse{Error: "Internal server error"})
			return
		}

		views := make([]TransactionView, 0, len(txns))
		for _, txn := range txns {
			views = append(views, TransactionView{
				TransactionID: txn.TransactionID,
				FromUser:      txn.FromUser,
				ToUser:        txn.ToUser,
				Amount:        txn.Amount,
				InquiryID:     txn.InquiryID,
				CreatedAt:     txn.CreatedAt,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(TransactionsResponse{Transactions: views})
	}
}
