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

// InquiryGetTokener defines only the methods needed by these handlers.
type InquiryGetTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// InquiryViewer defines the interface that the service must implement.
type InquiryViewer interface {
	Get(ctx context.Context, inquiryID uuid.UUID) (*models.InquiryDB, error)
	GetServiceForInquiry(ctx context.Context, inquiryID uuid.UUID) (uuid.UUID, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.InquiryDB, error)
	IsVerifiedCustomer(ctx context.Context, customerID, serviceID uuid.UUID) (bool, error)
}

// InquiryListResponse represents a list of inquiries
// swagger:model InquiryListResponse
type InquiryListResponse struct {
	Inquiries []InquiryView `json:"inquiries"`
}

// InquiryServiceResponse points at the service an inquiry charges against
// swagger:model InquiryServiceResponse
type InquiryServiceResponse struct {
	ServiceID uuid.UUID `json:"service_id"`
}

// VerifiedCustomerResponse reports review eligibility
// swagger:model VerifiedCustomerResponse
type VerifiedCustomerResponse struct {
	// Whether the inquiry's customer may review the service
	Verified bool `json:"verified"`
}

// canSeeInquiry limits inquiry reads to its participants and moderators.
func canSeeInquiry(claims *jwt.Claims, inq *models.InquiryDB) bool {
	return claims.Role == models.RoleModerator ||
		claims.UserID == inq.CustomerID ||
		claims.UserID == inq.BusinessID
}

// NewGetInquiryHandler returns an HTTP handler for a single inquiry.
// @Summary Get inquiry
// @Tags inquiries
// @Produce json
// @Param id path string true "Inquiry ID"
// @Success 200 {object} handlers.InquiryView "Inquiry"
// @Failure 401 {object} handlers.InquiryErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.InquiryErrorResponse "Forbidden"
// @Failure 404 {object} handlers.InquiryErrorResponse "Inquiry not found"
// @Router /inquiries/{id} [get]
// @Security BearerAuth
func NewGetInquiryHandler(
	svc InquiryViewer,
	tokenGetter InquiryGetTokener,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims, ok := authorize(ctx, w, r, tokenGetter)
		if !ok {
			return
		}

		inquiryID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Invalid inquiry id"})
			return
		}

		inq, err := svc.Get(ctx, inquiryID)
		if err != nil {
			if errors.Is(err, services.ErrInquiryNotFound) {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Inquiry not found"})
				return
			}
			logger.Log.Errorw("failed to get inquiry", "inquiryID", inquiryID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Internal server error"})
			return
		}

		if !canSeeInquiry(claims, inq) {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Forbidden"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(inquiryView(inq))
	}
}

// NewListInquiriesHandler returns an HTTP handler listing the caller's
// inquiries on either side of the table.
// @Summary List inquiries
// @Tags inquiries
// @Produce json
// @Success 200 {object} handlers.InquiryListResponse "Inquiries"
// @Failure 401 {object} handlers.InquiryErrorResponse "Unauthorized"
// @Router /inquiries [get]
// @Security BearerAuth
func NewListInquiriesHandler(
	svc InquiryViewer,
	tokenGetter InquiryGetTokener,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		claims, ok := authorize(ctx, w, r, tokenGetter)
		if !ok {
			return
		}

		inqs, err := svc.ListForUser(ctx, claims.UserID)
		if err != nil {
			logger.Log.Errorw("failed to list inquiries", "userID", claims.UserID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Internal server error"})
			return
		}

		views := make([]InquiryView, 0, len(inqs))
		for i := range inqs {
			views = append(views, inquiryView(&inqs[i]))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(InquiryListResponse{Inquiries: views})
	}
}

// NewGetInquiryServiceHandler returns an HTTP handler resolving the service
// an inquiry was opened against.
// @Summary Get inquiry service
// @Tags inquiries
// @Produce json
// @Param id path string true "Inquiry ID"
// @Success 200 {object} handlers.InquiryServiceResponse "Service reference"
// @Failure 401 {object} handlers.InquiryErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.InquiryErrorResponse "Inquiry not found"
// @Router /inquiries/{id}/service [get]
// @Security BearerAuth
func NewGetInquiryServiceHandler(
	svc InquiryViewer,
	tokenGetter InquiryGetTokener,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if _, ok := authorize(ctx, w, r, tokenGetter); !ok {
			return
		}

		inquiryID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Invalid inquiry id"})
			return
		}

		serviceID, err := svc.GetServiceForInquiry(ctx, inquiryID)
		if err != nil {
			if errors.Is(err, services.ErrInquiryNotFound) {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Inquiry not found"})
				return
			}
			logger.Log.Errorw("failed to get inquiry service", "inquiryID", inquiryID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Internal server error"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(InquiryServiceResponse{ServiceID: serviceID})
	}
}

// NewGetVerifiedCustomerHandler returns an HTTP handler reporting whether the
// inquiry's customer earned review eligibility for its service.
// @Summary Check verified customer
// @Description True once a moderator has closed an inquiry from this customer for this service.
// @Tags inquiries
// @Produce json
// @Param id path string true "Inquiry ID"
// @Success 200 {object} handlers.VerifiedCustomerResponse "Eligibility"
// @Failure 401 {object} handlers.InquiryErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.InquiryErrorResponse "Inquiry not found"
// @Router /inquiries/{id}/verified [get]
// @Security BearerAuth
func NewGetVerifiedCustomerHandler(
	svc InquiryViewer,
	tokenGetter InquiryGetTokener,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if _, ok := authorize(ctx, w, r, tokenGetter); !ok {
			return
		}

		inquiryID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Invalid inquiry id"})
			return
		}

		inq, err := svc.Get(ctx, inquiryID)
		if err != nil {
			if errors.Is(err, services.ErrInquiryNotFound) {
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Inquiry not found"})
				return
			}
			logger.Log.Errorw("failed to get inquiry", "inquiryID", inquiryID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Internal server error"})
			return
		}

		verified, err := svc.IsVerifiedCustomer(ctx, inq.CustomerID, inq.ServiceID)
		if err != nil {
			logger.Log.Errorw("failed to check verified customer", "inquiryID", inquiryID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Internal server error"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(VerifiedCustomerResponse{Verified: verified})
	}
}

// authorize extracts and validates the bearer token, writing the 401 itself
// when it fails.
func authorize(ctx context.Context, w http.ResponseWriter, r *http.Request, tokenGetter InquiryGetTokener) (*jwt.Claims, bool) {
	tokenStr, err := tokenGetter.GetTokenFromRequest(ctx, r)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Unauthorized"})
		return nil, false
	}
	claims, err := tokenGetter.GetClaims(ctx, tokenStr)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Unauthorized"})
		return nil, false
	}
	return claims, true
}
