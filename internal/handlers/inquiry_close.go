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

// InquiryCloseTokener defines only the methods needed by this handler.
type InquiryCloseTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// InquiryCloser defines the interface that the service must implement.
type InquiryCloser interface {
	Close(ctx context.Context, inquiryID, closedBy uuid.UUID) (*models.InquiryDB, error)
}

// NewCloseInquiryHandler returns an HTTP handler for closing an inquiry.
// Closing is a moderation action.
// @Summary Close inquiry
// @Description Moves the inquiry to CLOSED and marks its customer as a verified reviewer of the service. Moderator only; a second close is rejected.
// @Tags inquiries
// @Produce json
// @Param id path string true "Inquiry ID"
// @Success 200 {object} handlers.InquiryView "Inquiry closed"
// @Failure 401 {object} handlers.InquiryErrorResponse "Unauthorized"
// @Failure 403 {object} handlers.InquiryErrorResponse "Forbidden"
// @Failure 404 {object} handlers.InquiryErrorResponse "Inquiry not found"
// @Failure 409 {object} handlers.InquiryErrorResponse "Inquiry already closed"
// @Router /inquiries/{id}/close [post]
// @Security BearerAuth
func NewCloseInquiryHandler(
	svc InquiryCloser,
	tokenGetter InquiryCloseTokener,
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

		if claims.Role != models.RoleModerator {
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Forbidden"})
			return
		}

		inquiryID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Invalid inquiry id"})
			return
		}

		inq, err := svc.Close(ctx, inquiryID, claims.UserID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInquiryNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Inquiry not found"})
			case errors.Is(err, services.ErrInquiryClosed):
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Inquiry already closed"})
			default:
				logger.Log.Errorw("failed to close inquiry", "inquiryID", inquiryID, "moderatorID", claims.UserID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(inquiryView(inq))
	}
}
