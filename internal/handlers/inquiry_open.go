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

// InquiryOpenTokener defines only the methods needed by this handler.
type InquiryOpenTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// InquiryOpener defines the interface that the service must implement.
type InquiryOpener interface {
	Open(ctx context.Context, customerID, serviceID uuid.UUID, subject, initialMessage string) (*models.InquiryDB, error)
}

// OpenInquiryRequest represents the JSON body for opening an inquiry
// swagger:model OpenInquiryRequest
type OpenInquiryRequest struct {
	// Service being inquired about
	// required: true
	ServiceID uuid.UUID `json:"service_id"`

	// Short subject line
	// default: Logo design
	Subject string `json:"subject"`

	// First message of the conversation, optional
	InitialMessage string `json:"initial_message"`
}

// InquiryView represents an inquiry in API responses
// swagger:model InquiryView
type InquiryView struct {
	InquiryID       uuid.UUID        `json:"inquiry_id"`
	CustomerID      uuid.UUID        `json:"customer_id"`
	ServiceID       uuid.UUID        `json:"service_id"`
	BusinessID      uuid.UUID        `json:"business_id"`
	ModeratorID     *uuid.UUID       `json:"moderator_id,omitempty"`
	Subject         string           `json:"subject"`
	Status          string           `json:"status"`
	NegotiatedPrice *decimal.Decimal `json:"negotiated_price,omitempty"`
	ClosedBy        *uuid.UUID       `json:"closed_by,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// InquiryErrorResponse represents an error response for inquiries
// swagger:model InquiryErrorResponse
type InquiryErrorResponse struct {
	// Error message
	// default: Service not found
	Error string `json:"error"`
}

func inquiryView(inq *models.InquiryDB) InquiryView {
	view := InquiryView{
		InquiryID:   inq.InquiryID,
		CustomerID:  inq.CustomerID,
		ServiceID:   inq.ServiceID,
		BusinessID:  inq.BusinessID,
		ModeratorID: inq.ModeratorID,
		Subject:     inq.Subject,
		Status:      inq.Status,
		ClosedBy:    inq.ClosedBy,
		CreatedAt:   inq.CreatedAt,
		UpdatedAt:   inq.UpdatedAt,
	}
	if inq.NegotiatedPrice.Valid {
		price := inq.NegotiatedPrice.Decimal
		view.NegotiatedPrice = &price
	}
	return view
}

// NewOpenInquiryHandler returns an HTTP handler for opening an inquiry.
// @Summary Open inquiry
// @Description Opens an OPEN inquiry against a catalog service. For fixed-price services the customer is charged up front; on insufficient funds nothing is created.
// @Tags inquiries
// @Accept json
// @Produce json
// @Param request body handlers.OpenInquiryRequest true "Open Inquiry Request"
// @Success 201 {object} handlers.InquiryView "Inquiry opened"
// @Failure 400 {object} handlers.InquiryErrorResponse "Invalid request body"
// @Failure 401 {object} handlers.InquiryErrorResponse "Unauthorized"
// @Failure 402 {object} handlers.InquiryErrorResponse "Insufficient funds"
// @Failure 404 {object} handlers.InquiryErrorResponse "Service not found"
// @Router /inquiries [post]
// @Security BearerAuth
func NewOpenInquiryHandler(
	svc InquiryOpener,
	tokenGetter InquiryOpenTokener,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokenStr, err := tokenGetter.GetTokenFromRequest(ctx, r)
		if err != nil {
			logger.Log.Errorw("failed to get token from request", "error", err)
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Unauthorized"})
			return
		}

		claims, err := tokenGetter.GetClaims(ctx, tokenStr)
		if err != nil {
			logger.Log.Errorw("failed to get claims from token", "error", err)
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Unauthorized"})
			return
		}

		var req OpenInquiryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Errorw("failed to decode open inquiry request", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Invalid request body"})
			return
		}
		if req.ServiceID == uuid.Nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "service_id is required"})
			return
		}

		inq, err := svc.Open(ctx, claims.UserID, req.ServiceID, req.Subject, req.InitialMessage)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrServiceNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Service not found"})
			case errors.Is(err, services.ErrInsufficientFunds):
				w.WriteHeader(http.StatusPaymentRequired)
				json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Insufficient funds"})
			default:
				logger.Log.Errorw("failed to open inquiry", "customerID", claims.UserID, "serviceID", req.ServiceID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(inquiryView(inq))
	}
}
