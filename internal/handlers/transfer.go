package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"marketwallet/internal/jwt"
	"marketwallet/internal/logger"
	"marketwallet/internal/services"
)

// TransferTokener defines only the methods needed by this handler.
type TransferTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// TransferWriter defines the interface that the service must implement.
type TransferWriter interface {
	Transfer(ctx context.Context, fromUser, toUser uuid.UUID, amount decimal.Decimal, inquiryID *uuid.UUID) (decimal.Decimal, decimal.Decimal, error)
}

// TransferRequest represents the JSON body for a wallet-to-wallet transfer
// swagger:model TransferRequest
type TransferRequest struct {
	// Destination wallet owner
	// required: true
	ToUserID uuid.UUID `json:"to_user_id"`

	// Amount to move
	// required: true
	// default: "25.00"
	Amount decimal.Decimal `json:"amount"`
}

// TransferResponse represents a successful transfer response
// swagger:model TransferResponse
type TransferResponse struct {
	// Success message
	// default: Transfer completed successfully
	Message string `json:"message"`

	// Sender's balance after the transfer
	FromBalance decimal.Decimal `json:"from_balance"`

	// Receiver's balance after the transfer
	ToBalance decimal.Decimal `json:"to_balance"`
}

// TransferErrorResponse represents an error response for transfer
// swagger:model TransferErrorResponse
type TransferErrorResponse struct {
	// Error message
	// default: Insufficient funds
	Error string `json:"error"`
}

// NewTransferHandler returns an HTTP handler for direct wallet transfers.
// @Summary Transfer funds
// @Description Atomically move funds from the caller's wallet to another wallet. Either both balances change and a ledger row appears, or nothing does.
// @Tags wallet
// @Accept json
// @Produce json
// @Param request body handlers.TransferRequest true "Transfer Request"
// @Success 200 {object} handlers.TransferResponse "Transfer completed successfully"
// @Failure 400 {object} handlers.TransferErrorResponse "Invalid amount or destination"
// @Failure 401 {object} handlers.TransferErrorResponse "Unauthorized"
// @Failure 402 {object} handlers.TransferErrorResponse "Insufficient funds"
// @Router /wallet/transfer [post]
// @Security BearerAuth
func NewTransferHandler(
	svc TransferWriter,
	tokenGetter TransferTokener,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokenStr, err := tokenGetter.GetTokenFromRequest(ctx, r)
		if err != nil {
			logger.Log.Errorw("failed to get token from request", "error", err)
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(TransferErrorResponse{Error: "Unauthorized"})
			return
		}

		claims, err := tokenGetter.GetClaims(ctx, tokenStr)
		if err != nil {
			logger.Log.Errorw("failed to get claims from token", "error", err)
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(TransferErrorResponse{Error: "Unauthorized"})
			return
		}

		var req TransferRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Errorw("failed to decode transfer request", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(TransferErrorResponse{Error: "Invalid request body"})
			return
		}

		fromBalance, toBalance, err := svc.Transfer(ctx, claims.UserID, req.ToUserID, req.Amount, nil)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidAmount), errors.Is(err, services.ErrSameWallet):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(TransferErrorResponse{Error: "Invalid amount or destination"})
			case errors.Is(err, services.ErrInsufficientFunds):
				w.WriteHeader(http.StatusPaymentRequired)
				json.NewEncoder(w).Encode(TransferErrorResponse{Error: "Insufficient funds"})
			default:
				logger.Log.Errorw("failed to transfer funds", "from", claims.UserID, "to", req.ToUserID, "amount", req.Amount, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(TransferErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(TransferResponse{
			Message:     "Transfer completed successfully",
			FromBalance: fromBalance,
			ToBalance:   toBalance,
		})
	}
}
