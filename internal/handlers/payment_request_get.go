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

// PaymentRequestGetTokener defines only the methods needed by these handlers.
type PaymentRequestGetTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// PaymentRequestGetter defines the interface that the service must implement.
type PaymentRequestGetter interface {
	GetByID(ctx context.Context, requestID uuid.UUID) (*models.PaymentRequestDB, error)
	ListForInquiry(ctx context.Context, inquiryID uuid.UUID) ([]models.PaymentRequestDB, error)
	ListPendingForUser(ctx context.Context, userID uuid.UUID) ([]models.PaymentRequestDB, error)
}

// PaymentRequestListResponse represents a list of payment requests
// swagger:model PaymentRequestListResponse
type PaymentRequestListResponse struct {
	PaymentRequests []PaymentRequestView `json:"payment_requests"`
}

func paymentRequestViews(reqs []models.PaymentRequestDB) []PaymentRequestView {
	views := make([]PaymentRequestView, 0, len(reqs))
	for i := range reqs {
		views = append(views, paymentRequestView(&reqs[i]))
	}
	return views
}

// NewGetPaymentRequestHandler returns an HTTP handler for a single request.
// @Summary Get payment request
// @Tags payment-requests
// @Produce json
// @Param id path string true "Payment request ID"
// @Success 200 {object} handlers.PaymentRequestView "Payment request"
// @Failure 401 {object} handlers.PaymentRequestErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.PaymentRequestErrorResponse "Payment request not found"
// @Router /payment-requests/{id} [get]
// @Security BearerAuth
func NewGetPaymentRequestHandler(
	svc PaymentRequestGetter,
	tokenGetter PaymentRequestGetTokener,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokenStr, err := tokenGetter.GetTokenFromRequest(ctx, r)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(PaymentRequestErrorResponse{Error: "Unauthorized"})
			return
		}
		if _, err := tokenGetter.GetClaims(ctx, tokenStr); err != nil {
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

		req, err := svc.GetByID(ctx, requestID)
		if err != nil {
			if errors.Is(err, services.ErrPaymentRequestNotFound) {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(PaymentRequestErrorResponse{Error: "Payment request not found"})
				return
			}
			logger.Log.Errorw("failed to get payment request", "requestID", requestID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(PaymentRequestErrorResponse{Error: "Internal server error"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(paymentRequestView(req))
	}
}

// NewListPaymentRequestsHandler returns an HTTP handler that lists payment
// requests either for one inquiry (?inquiry_id=) or the caller's PENDING
// queue (?pending=true).
// @Summary List payment requests
// @Description With inquiry_id, lists every request on the inquiry. With pending=true, lists PENDING requests awaiting the caller's answer.
// @Tags payment-requests
// @Produce json
// @Param inquiry_id query string false "Inquiry ID"
// @Param pending query bool false "Only the caller's pending queue"
// @Success 200 {object} handlers.PaymentRequestListResponse "Payment requests"
// @Failure 400 {object} handlers.PaymentRequestErrorResponse "Missing filter"
// @Failure 401 {object} handlers.PaymentRequestErrorResponse "Unauthorized"
// @Router /payment-requests [get]
// @Security BearerAuth
func NewListPaymentRequestsHandler(
	svc PaymentRequestGetter,
	tokenGetter PaymentRequestGetTokener,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokenStr, err := tokenGetter.GetTokenFromRequest(ctx, r)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(PaymentRequestErrorResponse{Error: "Unauthorized"})
			return
		}
		claims, err := tokenGetter.GetClaims(ctx, tokenStr)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(PaymentRequestErrorResponse{Error: "Unauthorized"})
			return
		}

		var reqs []models.PaymentRequestDB

		switch {
		case r.URL.Query().Get("pending") == "true":
			reqs, err = svc.ListPendingForUser(ctx, claims.UserID)
		case r.URL.Query().Get("inquiry_id") != "":
			inquiryID, parseErr := uuid.Parse(r.URL.Query().Get("inquiry_id"))
			if parseErr != nil {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(PaymentRequestErrorResponse{Error: "Invalid inquiry id"})
				return
			}
			reqs, err = svc.ListForInquiry(ctx, inquiryID)
		default:
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(PaymentRequestErrorResponse{Error: "Either inquiry_id or pending=true is required"})
			return
		}

		if err != nil {
			logger.Log.Errorw("failed to list payment requests", "userID", claims.UserID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(PaymentRequestErrorResponse{Error: "Internal server error"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(PaymentRequestListResponse{PaymentRequests: paymentRequestViews(reqs)})
	}
}
