package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"marketwallet/internal/logger"
	"marketwallet/internal/models"
	"marketwallet/internal/repositories"
)

var (
	// ErrPaymentRequestNotFound is returned when the request does not exist.
	ErrPaymentRequestNotFound = errors.New("payment request not found")
	// ErrPaymentRequestResolved is returned when responding to a request
	// that is no longer PENDING.
	ErrPaymentRequestResolved = errors.New("payment request already resolved")
	// ErrPendingRequestExists is returned when an inquiry already has a
	// PENDING request.
	ErrPendingRequestExists = errors.New("pending payment request already exists for inquiry")
	// ErrNotAllowed is returned when the caller may not act on the entity.
	ErrNotAllowed = errors.New("operation not allowed for this user")
	// ErrInvalidAction is returned for a respond action other than accept/decline.
	ErrInvalidAction = errors.New("action must be accept or decline")
)

// PaymentRequestWriter defines payment request writes.
type PaymentRequestWriter interface {
	Save(ctx context.Context, req models.PaymentRequestDB) error
	SetStatusIfPending(ctx context.Context, requestID uuid.UUID, status string) (bool, error)
}

// PaymentRequestReader defines payment request lookups.
type PaymentRequestReader interface {
	GetByID(ctx context.Context, requestID uuid.UUID) (*models.PaymentRequestDB, error)
	ListByInquiry(ctx context.Context, inquiryID uuid.UUID) ([]models.PaymentRequestDB, error)
	ListPendingForCustomer(ctx context.Context, customerID uuid.UUID) ([]models.PaymentRequestDB, error)
}

// InquiryGetter looks up the inquiry a request belongs to.
type InquiryGetter interface {
	GetByID(ctx context.Context, inquiryID uuid.UUID) (*models.InquiryDB, error)
}

// FundsMover is the Wallet Store transfer primitive. Payment requests never
// touch balances directly; acceptance always goes through it.
type FundsMover interface {
	Transfer(ctx context.Context, fromUser, toUser uuid.UUID, amount decimal.Decimal, inquiryID *uuid.UUID) (decimal.Decimal, decimal.Decimal, error)
}

// PaymentRequestService owns the PENDING -> ACCEPTED/DECLINED state machine.
type PaymentRequestService struct {
	writeRepo PaymentRequestWriter
	readRepo  PaymentRequestReader
	inquiries InquiryGetter
	funds     FundsMover
	tx        TxRunner
}

// NewPaymentRequestService creates a new PaymentRequestService.
func NewPaymentRequestService(
	writeRepo PaymentRequestWriter,
	readRepo PaymentRequestReader,
	inquiries InquiryGetter,
	funds FundsMover,
	tx TxRunner,
) *PaymentRequestService {
	return &PaymentRequestService{
		writeRepo: writeRepo,
		readRepo:  readRepo,
		inquiries: inquiries,
		funds:     funds,
		tx:        tx,
	}
}

// Create opens a new PENDING request on an inquiry. A business may only
// request payment on its own inquiries; moderators may request on any.
// At most one PENDING request per inquiry exists at a time.
func (s *PaymentRequestService) Create(ctx context.Context, inquiryID, requesterID uuid.UUID, requesterRole string, amount decimal.Decimal, description string) (*models.PaymentRequestDB, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	inq, err := s.inquiries.GetByID(ctx, inquiryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInquiryNotFound
		}
		logger.Log.Errorw("failed to get inquiry for payment request", "inquiryID", inquiryID, "error", err)
		return nil, err
	}
	if inq.Status != models.InquiryOpen {
		return nil, ErrInquiryClosed
	}
	if requesterRole != models.RoleModerator && requesterID != inq.BusinessID {
		return nil, ErrNotAllowed
	}

	req := models.PaymentRequestDB{
		RequestID:   uuid.New(),
		InquiryID:   inquiryID,
		RequesterID: requesterID,
		Amount:      amount,
		Description: description,
		Status:      models.PaymentRequestPending,
	}

	if err := s.writeRepo.Save(ctx, req); err != nil {
		if errors.Is(err, repositories.ErrDuplicatePendingRequest) {
			return nil, ErrPendingRequestExists
		}
		logger.Log.Errorw("failed to save payment request", "inquiryID", inquiryID, "requesterID", requesterID, "error", err)
		return nil, err
	}

	return &req, nil
}

// Respond resolves a PENDING request. Only the inquiry's customer may
// respond. Accepting transfers the amount from the customer to the
// requester in the same database transaction as the status change, so a
// failed transfer leaves the request PENDING. Of two concurrent accepts,
// exactly one wins; the other observes the terminal status.
func (s *PaymentRequestService) Respond(ctx context.Context, requestID, responderID uuid.UUID, action string) (*models.PaymentRequestDB, error) {
	var status string
	switch action {
	case models.ActionAccept:
		status = models.PaymentRequestAccepted
	case models.ActionDecline:
		status = models.PaymentRequestDeclined
	default:
		return nil, ErrInvalidAction
	}

	var out *models.PaymentRequestDB

	err := s.tx.RunTx(ctx, func(ctx context.Context) error {
		req, err := s.readRepo.GetByID(ctx, requestID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrPaymentRequestNotFound
			}
			return err
		}

		inq, err := s.inquiries.GetByID(ctx, req.InquiryID)
		if err != nil {
			return err
		}
		if inq.CustomerID != responderID {
			return ErrNotAllowed
		}

		ok, err := s.writeRepo.SetStatusIfPending(ctx, requestID, status)
		if err != nil {
			return err
		}
		if !ok {
			return ErrPaymentRequestResolved
		}

		if status == models.PaymentRequestAccepted {
			if _, _, err := s.funds.Transfer(ctx, inq.CustomerID, req.RequesterID, req.Amount, &req.InquiryID); err != nil {
				// Rolls back the ACCEPTED status together with any balance change.
				return err
			}
		}

		req.Status = status
		out = req
		return nil
	})
	if err != nil {
		logger.Log.Errorw("failed to respond to payment request", "requestID", requestID, "responderID", responderID, "action", action, "error", err)
		return nil, err
	}

	return out, nil
}

// GetByID returns a single request.
func (s *PaymentRequestService) GetByID(ctx context.Context, requestID uuid.UUID) (*models.PaymentRequestDB, error) {
	req, err := s.readRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentRequestNotFound
		}
		logger.Log.Errorw("failed to get payment request", "requestID", requestID, "error", err)
		return nil, err
	}
	return req, nil
}

// ListForInquiry returns all requests on an inquiry.
func (s *PaymentRequestService) ListForInquiry(ctx context.Context, inquiryID uuid.UUID) ([]models.PaymentRequestDB, error) {
	reqs, err := s.readRepo.ListByInquiry(ctx, inquiryID)
	if err != nil {
		logger.Log.Errorw("failed to list payment requests", "inquiryID", inquiryID, "error", err)
		return nil, err
	}
	return reqs, nil
}

// ListPendingForUser returns the PENDING requests awaiting the user's answer.
func (s *PaymentRequestService) ListPendingForUser(ctx context.Context, userID uuid.UUID) ([]models.PaymentRequestDB, error) {
	reqs, err := s.readRepo.ListPendingForCustomer(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list pending payment requests", "userID", userID, "error", err)
		return nil, err
	}
	return reqs, nil
}
