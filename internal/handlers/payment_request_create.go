package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"marketwallet/internal/jwt"
	"marketwallet/internal/logger"
	"marketwallet/internal/models"
	"marketwallet/internal/services"
)

// PaymentRequestCreateTokener defines only the methods needed by this handler.
type PaymentRequestCreateTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// PaymentRequestCreator defines the interface that the service must implement.
type PaymentRequestCreator interface {
	Create(ctx context.Context, inquiryID, requesterID uuid.UUID, requesterRole string, amount decimal.Decimal, description string) (*models.PaymentRequestDB, error)
}

// CreatePaymentRequestRequest represents the JSON body for a new payment request
// swagger:model CreatePaymentRequestRequest
type CreatePaymentRequestRequest struct {
	// Inquiry the request belongs to
	// required: true
	InquiryID uuid.UUID `json:"inquiry_id"`

	// Amount requested
	// required: true
	// default: "150.00"
	Amount decimal.Decimal `json:"amount"`

	// What the payment is for
	Description string `json:"description"`
}

// PaymentRequestView represents a payment request in API responses
// swagger:model PaymentRequestView
type PaymentRequestView struct {
	RequestID   uuid.UUID       `json:"request_id"`
	InquiryID   uuid.UUID       `json:"inquiry_id"`
	RequesterID uuid.UUID       `json:"requester_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PaymentRequestErrorResponse represents an error response for payment requests
// swagger:model PaymentRequestErrorResponse
type PaymentRequestErrorResponse struct {
	// Error message
	// default: Pending request already exists
	Error string `json:"error"`
}

func paymentRequestView(req *models.PaymentRequestDB) PaymentRequestView {
	return PaymentRequestView{
		RequestID:   req.RequestID,
		InquiryID:   req.InquiryID,
		RequesterID: req.RequesterID,
		Amount:      req.Amount,
		Description: req.Description,
		Status:      req.Status,
		CreatedAt:   req.CreatedAt,
		UpdatedAt:   req.UpdatedAt,
	}
}

// NewCreatePaymentRequestHandler returns an HTTP handler for opening a
// payment request on an inquiry.
// @Summary Create payment request
// @Description Opens a PENDING payment request. Businesses may request on their own inquiries, moderators on any. At most one PENDING request per inquiry.
// @Tags payment-requests
// @Accept json
// @Produce json
// @Param request body handlers.CreatePaymentRequestRequest true "Payment Request"
// @Success 201 {object} handlers.PaymentRequestView "Payment request created"
// @Failure 400 {object} handlers.PaymentRequestErrorResponse "Invalid amount"
// @Failure 401 {object} handlers.PaymentRequestErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.PaymentRequestErrorResponse "Forbidden"
// @Failure 404 {object} handlers.PaymentRequestErrorResponse "Inquiry not found"
// @Failure 409 {object} handlers.PaymentRequestErrorResponse "Pending request already exists or inquiry closed"
// @Router /payment-requests [post]
// @Security BearerAuth
func NewCreatePaymentRequestHandler(
	svc PaymentRequestCreator,
	tokenGetter PaymentRequestCreateTokener,
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

		var req CreatePaymentRequestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Errorw("failed to decode payment request body", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(PaymentRequestErrorResponse{Error: "Invalid request body"})
			return
		}

		created, err := svc.Create(ctx, req.InquiryID, claims.UserID, claims.Role, req.Amount, req.Description)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidAmount):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(PaymentRequestErrorResponse{Error: "Invalid amount"})
			case errors.Is(err, services.ErrInquiryNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(PaymentRequestErrorResponse{Error: "Inquiry not found"})
			case errors.Is(err, services.ErrNotAllowed):
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(PaymentRequestErrorResponse{Error: "Forbidden"})
			case errors.Is(err, services.ErrInquiryClosed):
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(PaymentRequestErrorResponse{Error: "Inquiry is closed"})
			case errors.Is(err, services.ErrPendingRequestExists):
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(PaymentRequestErrorResponse{Error: "Pending request already exists"})
			default:
				logger.Log.Errorw("failed to create payment request", "inquiryID", req.InquiryID, "requesterID", claims.UserID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(PaymentRequestErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(paymentRequestView(created))
	}
}
