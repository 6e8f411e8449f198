package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"marketwallet/internal/jwt"
	"marketwallet/internal/logger"
	"marketwallet/internal/models"
)

// BalanceTokener defines only the methods needed by this handler.
type BalanceTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// BalanceReader defines the interface that the service must implement.
type BalanceReader interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
}

// BalanceResponse represents a successful response with the wallet balance
// swagger:model BalanceResponse
type BalanceResponse struct {
	// Wallet owner
	UserID uuid.UUID `json:"user_id"`

	// Current balance
	// default: "100.00"
	Balance decimal.Decimal `json:"balance"`
}

// BalanceErrorResponse represents an error response when fetching balance
// swagger:model BalanceErrorResponse
type BalanceErrorResponse struct {
	// Error message
	// default: Unauthorized
	Error string `json:"error"`
}

// NewGetBalanceHandler returns an HTTP handler for fetching a wallet balance.
// A wallet that was never written to reads as zero.
// @Summary Get wallet balance
// @Description Returns the current balance of the wallet. Only the owner or a moderator may read it.
// @Tags wallet
// @Produce json
// @Param user_id path string true "Wallet owner ID"
// @Success 200 {object} handlers.BalanceResponse "Wallet balance"
// @Failure 401 {object} handlers.BalanceErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.BalanceErrorResponse "Forbidden"
// @Failure 500 {object} handlers.BalanceErrorResponse "Internal server error"
// @Router /wallet/{user_id} [get]
// @Security BearerAuth
func NewGetBalanceHandler(
	svc BalanceReader,
	tokenGetter BalanceTokener,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokenStr, err := tokenGetter.GetTokenFromRequest(ctx, r)
		if err != nil {
			logger.Log.Error("unauthorized balance request: missing or invalid token")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(BalanceErrorResponse{Error: "Unauthorized"})
			return
		}

		claims, err := tokenGetter.GetClaims(ctx, tokenStr)
		if err != nil {
			logger.Log.Errorw("failed to parse token claims", "error", err)
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(BalanceErrorResponse{Error: "Unauthorized"})
			return
		}

		userID, err := uuid.Parse(chi.URLParam(r, "user_id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(BalanceErrorResponse{Error: "Invalid user id"})
			return
		}

		if claims.UserID != userID && claims.Role != models.RoleModerator {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(BalanceErrorResponse{Error: "Forbidden"})
			return
		}

		balance, err := svc.GetBalance(ctx, userID)
		if err != nil {
			logger.Log.Errorw("failed to get balance", "userID", userID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(BalanceErrorResponse{Error: "Internal server error"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(BalanceResponse{UserID: userID, Balance: balance})
	}
}
