package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"marketwallet/internal/jwt"
	"marketwallet/internal/logger"
	"marketwallet/internal/models"
	"marketwallet/internal/services"
)

// InquiryMessageTokener defines only the methods needed by these handlers.
type InquiryMessageTokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// InquiryMessenger defines the interface that the service must implement.
type InquiryMessenger interface {
	SendMessage(ctx context.Context, inquiryID, senderID uuid.UUID, content string) (*models.InquiryMessageDB, error)
	ListMessages(ctx context.Context, inquiryID uuid.UUID) ([]models.InquiryMessageDB, error)
}

// SendMessageRequest represents the JSON body for an inquiry message
// swagger:model SendMessageRequest
type SendMessageRequest struct {
	// Message text
	// required: true
	// default: Can you start next week?
	Content string `json:"content"`
}

// InquiryMessageView represents a message in API responses
// swagger:model InquiryMessageView
type InquiryMessageView struct {
	MessageID uuid.UUID `json:"message_id"`
	InquiryID uuid.UUID `json:"inquiry_id"`
	SenderID  uuid.UUID `json:"sender_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// InquiryMessageListResponse represents the inquiry conversation
// swagger:model InquiryMessageListResponse
type InquiryMessageListResponse struct {
	Messages []InquiryMessageView `json:"messages"`
}

func inquiryMessageView(msg *models.InquiryMessageDB) InquiryMessageView {
	return InquiryMessageView{
		MessageID: msg.MessageID,
		InquiryID: msg.InquiryID,
		SenderID:  msg.SenderID,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

// NewSendInquiryMessageHandler returns an HTTP handler for appending a
// message to an open inquiry.
// @Summary Send inquiry message
// @Tags inquiries
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Param request body handlers.SendMessageRequest true "Message"
// @Success 201 {object} handlers.InquiryMessageView "Message sent"
// @Failure 400 {object} handlers.InquiryErrorResponse "Invalid request body"
// @Failure 401 {object} handlers.InquiryErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.InquiryErrorResponse "Inquiry not found"
// @Failure 409 {object} handlers.InquiryErrorResponse "Inquiry is closed"
// @Router /inquiries/{id}/messages [post]
// @Security BearerAuth
func NewSendInquiryMessageHandler(
	svc InquiryMessenger,
	tokenGetter InquiryMessageTokener,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokenStr, err := tokenGetter.GetTokenFromRequest(ctx, r)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Unauthorized"})
			return
		}
		claims, err := tokenGetter.GetClaims(ctx, tokenStr)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Unauthorized"})
			return
		}

		inquiryID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Invalid inquiry id"})
			return
		}

		var req SendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Errorw("failed to decode message body", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Invalid request body"})
			return
		}
		if req.Content == "" {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "content is required"})
			return
		}

		msg, err := svc.SendMessage(ctx, inquiryID, claims.UserID, req.Content)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInquiryNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Inquiry not found"})
			case errors.Is(err, services.ErrInquiryClosed):
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Inquiry is closed"})
			default:
				logger.Log.Errorw("failed to send inquiry message", "inquiryID", inquiryID, "senderID", claims.UserID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(inquiryMessageView(msg))
	}
}

// NewListInquiryMessagesHandler returns an HTTP handler for the inquiry
// conversation, oldest first.
// @Summary List inquiry messages
// @Tags inquiries
// @Produce json
// @Param id path string true "Inquiry ID"
// @Success 200 {object} handlers.InquiryMessageListResponse "Messages"
// @Failure 401 {object} handlers.InquiryErrorResponse "Unauthorized"
// @Router /inquiries/{id}/messages [get]
// @Security BearerAuth
func NewListInquiryMessagesHandler(
	svc InquiryMessenger,
	tokenGetter InquiryMessageTokener,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		tokenStr, err := tokenGetter.GetTokenFromRequest(ctx, r)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Unauthorized"})
			return
		}
		if _, err := tokenGetter.GetClaims(ctx, tokenStr); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Unauthorized"})
			return
		}

		inquiryID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Invalid inquiry id"})
			return
		}

		msgs, err := svc.ListMessages(ctx, inquiryID)
		if err != nil {
			logger.Log.Errorw("failed to list inquiry messages", "inquiryID", inquiryID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(InquiryErrorResponse{Error: "Internal server error"})
			return
		}

		views := make([]InquiryMessageView, 0, len(msgs))
		for i := range msgs {
			views = append(views, inquiryMessageView(&msgs[i]))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(InquiryMessageListResponse{Messages: views})
	}
}
