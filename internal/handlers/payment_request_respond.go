package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"marketwallet/internal/jwt"
	"marketwallet/internal/logger"
	"marketwallet/internal/models"
	"marketwallet/internal/services"
)

// PaymentRequestRespondTokener defines only the methods needed by this handler.
type PaymentRequestRespondTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// PaymentRequestResponder defines the interface that the service must implement.
type PaymentRequestResponder interface {
	Respond(ctx context.Context, requestID, responderID uuid.UUID, action string) (*models.PaymentRequestDB, error)
}

// RespondPaymentRequestRequest represents the JSON body for resolving a request
// swagger:model RespondPaymentRequestRequest
type RespondPaymentRequestRequest struct {
	// Either "accept" or "decline"
	// required: true
	// default: accept
	Action string `json:"action"`
}

// NewRespondPaymentRequestHandler returns an HTTP handler for accepting or
// declining a payment request.
// @Summary Respond to payment request
// @Description Only the inquiry's customer may respond. Accepting moves the funds in the same transaction as the status change; on insufficient funds the request stays PENDING.
// @Tags payment-requests
// @Accept json
// @Produce json
// @Param id path string true "Payment request ID"
// @Param request body handlers.RespondPaymentRequestRequest true "Respond Request"
// @Success 200 {object} handlers.PaymentRequestView "Payment request resolved"
// @Failure 400 {object} handlers.PaymentRequestErrorResponse "Invalid action"
// @Failure 401 {object} handlers.PaymentRequestErrorResponse "Unauthorized"
// @Failure 402 {object} handlers.PaymentRequestErrorResponse "Insufficient funds"
// @Failure 403 {object} handlers.PaymentRequestErrorResponse "Forbidden"
// @Failure 404 {object} handlers.PaymentRequestErrorResponse "Payment request not found"
// @Failure 409 {object} handlers.PaymentRequestErrorResponse "Already resolved"
// @Router /payment-requests/{id}/respond [post]
// @Security BearerAuth
func NewRespondPaymentRequestHandler(
	svc PaymentRequestResponder,
	tokenGetter PaymentRequestRespondTokener,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokenStr, err := tokenGetter.GetTokenFromRequest(ctx, r)
		if err != nil {
			logger.Log.Errorw("failed to get token from request", "error", err)
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(PaymentRequestErrorResponse{Error: "Unauthorized"})
			return
		}

		claims, err := tokenGetter.GetClaims(ctx, tokenStr)
		if err != nil {
			logger.Log.Errorw("failed to get claims from token", "error", err)
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(PaymentRequestErrorResponse{Error: "Unauthorized"})
			return
		}

		requestID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(PaymentRequestErrorResponse{Error: "Invalid request id"})
			return
		}

		var req RespondPaymentRequestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Errorw("failed to decode respond body", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(PaymentRequestErrorResponse{Error: "Invalid request body"})
			return
		}

		resolved, err := svc.Respond(ctx, requestID, claims.UserID, req.Action)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidAction):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(PaymentRequestErrorResponse{Error: "Invalid action"})
			case errors.Is(err, services.ErrPaymentRequestNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(PaymentRequestErrorResponse{Error: "Payment request not found"})
			case errors.Is(err, services.ErrNotAllowed):
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(PaymentRequestErrorResponse{Error: "Forbidden"})
			case errors.Is(err, services.ErrPaymentRequestResolved):
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(PaymentRequestErrorResponse{Error: "Already resolved"})
			case errors.Is(err, services.ErrInsufficientFunds):
				w.WriteHeader(http.StatusPaymentRequired)
				json.NewEncoder(w).Encode(PaymentRequestErrorResponse{Error: "Insufficient funds"})
			default:
				logger.Log.Errorw("failed to respond to payment request", "requestID", requestID, "responderID", claims.UserID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(PaymentRequestErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(paymentRequestView(resolved))
	}
}
