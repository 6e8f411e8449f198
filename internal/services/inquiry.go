package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"marketwallet/internal/facades"
	"marketwallet/internal/logger"
	"marketwallet/internal/models"
)

var (
	// ErrInquiryNotFound is returned when the inquiry does not exist.
	ErrInquiryNotFound = errors.New("inquiry not found")
	// ErrInquiryClosed is returned when acting on an already closed inquiry.
	ErrInquiryClosed = errors.New("inquiry is closed")
	// ErrServiceNotFound is returned when the catalog does not know the service.
	ErrServiceNotFound = errors.New("service not found")
)

// InquiryWriter defines inquiry writes.
type InquiryWriter interface {
	Save(ctx context.Context, inq models.InquiryDB) error
	CloseIfOpen(ctx context.Context, inquiryID, closedBy uuid.UUID) (bool, error)
	SaveMessage(ctx context.Context, msg models.InquiryMessageDB) error
	MarkVerifiedCustomer(ctx context.Context, customerID, serviceID uuid.UUID) error
}

// InquiryReader defines inquiry lookups.
type InquiryReader interface {
	GetByID(ctx context.Context, inquiryID uuid.UUID) (*models.InquiryDB, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]models.InquiryDB, error)
	ListMessages(ctx context.Context, inquiryID uuid.UUID) ([]models.InquiryMessageDB, error)
	IsVerifiedCustomer(ctx context.Context, customerID, serviceID uuid.UUID) (bool, error)
}

// CatalogReader reads service data from the external catalog.
type CatalogReader interface {
	GetService(ctx context.Context, serviceID uuid.UUID) (*models.ServiceInfo, error)
}

// CatalogCacheReader caches catalog lookups.
type CatalogCacheReader interface {
	GetService(ctx context.Context, serviceID uuid.UUID) (*models.ServiceInfo, error)
	SetService(ctx context.Context, info models.ServiceInfo) error
}

// InquiryService owns the OPEN -> CLOSED lifecycle. Opening an inquiry
// against a fixed-price service charges the customer atomically with the
// inquiry insert; closing records review eligibility.
type InquiryService struct {
	writeRepo InquiryWriter
	readRepo  InquiryReader
	catalog   CatalogReader
	cache     CatalogCacheReader
	funds     FundsMover
	tx        TxRunner
}

// NewInquiryService creates a new InquiryService.
func NewInquiryService(
	writeRepo InquiryWriter,
	readRepo InquiryReader,
	catalog CatalogReader,
	cache CatalogCacheReader,
	funds FundsMover,
	tx TxRunner,
) *InquiryService {
	return &InquiryService{
		writeRepo: writeRepo,
		readRepo:  readRepo,
		catalog:   catalog,
		cache:     cache,
		funds:     funds,
		tx:        tx,
	}
}

// getService resolves a service through the cache, falling back to the catalog.
func (s *InquiryService) getService(ctx context.Context, serviceID uuid.UUID) (*models.ServiceInfo, error) {
	if s.cache != nil {
		if info, err := s.cache.GetService(ctx, serviceID); err == nil {
			return info, nil
		}
	}

	info, err := s.catalog.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, facades.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetService(ctx, *info); err != nil {
			logger.Log.Errorw("failed to cache catalog entry", "serviceID", serviceID, "error", err)
		}
	}

	return info, nil
}

// Open creates a new OPEN inquiry with its initial message. When the service
// carries a fixed price, the customer is charged in the same database
// transaction: on insufficient funds neither the inquiry nor the message
// survives.
func (s *InquiryService) Open(ctx context.Context, customerID, serviceID uuid.UUID, subject, initialMessage string) (*models.InquiryDB, error) {
	info, err := s.getService(ctx, serviceID)
	if err != nil {
		logger.Log.Errorw("failed to resolve service", "serviceID", serviceID, "error", err)
		return nil, err
	}

	inq := models.InquiryDB{
		InquiryID:  uuid.New(),
		CustomerID: customerID,
		ServiceID:  serviceID,
		BusinessID: info.BusinessID,
		Subject:    subject,
		Status:     models.InquiryOpen,
	}
	if info.FixedPrice.IsPositive() {
		inq.NegotiatedPrice = decimal.NewNullDecimal(info.FixedPrice)
	}

	err = s.tx.RunTx(ctx, func(ctx context.Context) error {
		if err := s.writeRepo.Save(ctx, inq); err != nil {
			return err
		}

		if initialMessage != "" {
			msg := models.InquiryMessageDB{
				MessageID: uuid.New(),
				InquiryID: inq.InquiryID,
				SenderID:  customerID,
				Content:   initialMessage,
			}
			if err := s.writeRepo.SaveMessage(ctx, msg); err != nil {
				return err
			}
		}

		if info.FixedPrice.IsPositive() {
			if _, _, err := s.funds.Transfer(ctx, customerID, info.BusinessID, info.FixedPrice, &inq.InquiryID); err != nil {
				// Rolls back the inquiry row together with any balance change.
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Log.Errorw("failed to open inquiry", "customerID", customerID, "serviceID", serviceID, "error", err)
		return nil, err
	}

	return &inq, nil
}

// Close moves an inquiry to CLOSED and marks the customer as a verified
// reviewer of the service. A second close fails with ErrInquiryClosed and
// leaves the first closer recorded.
func (s *InquiryService) Close(ctx context.Context, inquiryID, closedBy uuid.UUID) (*models.InquiryDB, error) {
	var out *models.InquiryDB

	err := s.tx.RunTx(ctx, func(ctx context.Context) error {
		inq, err := s.readRepo.GetByID(ctx, inquiryID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrInquiryNotFound
			}
			return err
		}

		ok, err := s.writeRepo.CloseIfOpen(ctx, inquiryID, closedBy)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInquiryClosed
		}

		if err := s.writeRepo.MarkVerifiedCustomer(ctx, inq.CustomerID, inq.ServiceID); err != nil {
			return err
		}

		inq.Status = models.InquiryClosed
		inq.ClosedBy = &closedBy
		inq.ModeratorID = &closedBy
		out = inq
		return nil
	})
	if err != nil {
		logger.Log.Errorw("failed to close inquiry", "inquiryID", inquiryID, "closedBy", closedBy, "error", err)
		return nil, err
	}

	return out, nil
}

// Get returns a single inquiry.
func (s *InquiryService) Get(ctx context.Context, inquiryID uuid.UUID) (*models.InquiryDB, error) {
	inq, err := s.readRepo.GetByID(ctx, inquiryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInquiryNotFound
		}
		logger.Log.Errorw("failed to get inquiry", "inquiryID", inquiryID, "error", err)
		return nil, err
	}
	return inq, nil
}

// GetServiceForInquiry returns the service an inquiry charges against.
func (s *InquiryService) GetServiceForInquiry(ctx context.Context, inquiryID uuid.UUID) (uuid.UUID, error) {
	inq, err := s.Get(ctx, inquiryID)
	if err != nil {
		return uuid.Nil, err
	}
	return inq.ServiceID, nil
}

// ListForUser returns the inquiries the user participates in.
func (s *InquiryService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.InquiryDB, error) {
	inqs, err := s.readRepo.ListForUser(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list inquiries", "userID", userID, "error", err)
		return nil, err
	}
	return inqs, nil
}

// SendMessage appends a message to an OPEN inquiry.
func (s *InquiryService) SendMessage(ctx context.Context, inquiryID, senderID uuid.UUID, content string) (*models.InquiryMessageDB, error) {
	inq, err := s.Get(ctx, inquiryID)
	if err != nil {
		return nil, err
	}
	if inq.Status != models.InquiryOpen {
		return nil, ErrInquiryClosed
	}

	msg := models.InquiryMessageDB{
		MessageID: uuid.New(),
		InquiryID: inquiryID,
		SenderID:  senderID,
		Content:   content,
	}
	if err := s.writeRepo.SaveMessage(ctx, msg); err != nil {
		logger.Log.Errorw("failed to save inquiry message", "inquiryID", inquiryID, "senderID", senderID, "error", err)
		return nil, err
	}
	return &msg, nil
}

// ListMessages returns the inquiry conversation in chronological order.
func (s *InquiryService) ListMessages(ctx context.Context, inquiryID uuid.UUID) ([]models.InquiryMessageDB, error) {
	msgs, err := s.readRepo.ListMessages(ctx, inquiryID)
	if err != nil {
		logger.Log.Errorw("failed to list inquiry messages", "inquiryID", inquiryID, "error", err)
		return nil, err
	}
	return msgs, nil
}

// IsVerifiedCustomer reports whether the customer may review the service.
func (s *InquiryService) IsVerifiedCustomer(ctx context.Context, customerID, serviceID uuid.UUID) (bool, error) {
	verified, err := s.readRepo.IsVerifiedCustomer(ctx, customerID, serviceID)
	if err != nil {
		logger.Log.Errorw("failed to check verified customer", "customerID", customerID, "serviceID", serviceID, "error", err)
		return false, err
	}
	return verified, nil
}
