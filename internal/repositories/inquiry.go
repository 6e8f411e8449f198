package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"marketwallet/internal/logger"
	"marketwallet/internal/models"
)

// InquiryWriteRepository handles inquiry state, messages and the
// verified-customer capability.
type InquiryWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewInquiryWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *InquiryWriteRepository {
	return &InquiryWriteRepository{db: db, txGetter: txGetter}
}

func (r *InquiryWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a new OPEN inquiry.
func (r *InquiryWriteRepository) Save(ctx context.Context, inq models.InquiryDB) error {
	const query = `
		INSERT INTO inquiries (inquiry_id, customer_id, service_id, business_id, subject, status, negotiated_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`

	_, err := r.executor(ctx).ExecContext(ctx, query,
		inq.InquiryID, inq.CustomerID, inq.ServiceID, inq.BusinessID, inq.Subject, inq.Status, inq.NegotiatedPrice)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{inq.InquiryID, inq.CustomerID, inq.ServiceID, inq.BusinessID, inq.Status},
		"error", err,
	)

	return err
}

// CloseIfOpen moves the inquiry to CLOSED and records who closed it. The
// conditional UPDATE makes OPEN -> CLOSED one-way: a second close matches
// zero rows and returns ok=false while the first closer's closed_by stays.
func (r *InquiryWriteRepository) CloseIfOpen(ctx context.Context, inquiryID, closedBy uuid.UUID) (bool, error) {
	const query = `
		UPDATE inquiries
		SET status = 'CLOSED', closed_by = $2, moderator_id = $2, updated_at = NOW()
		WHERE inquiry_id = $1 AND status = 'OPEN'
	`

	res, err := r.executor(ctx).ExecContext(ctx, query, inquiryID, closedBy)

	var affected int64
	if err == nil {
		affected, err = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{inquiryID, closedBy},
		"result", affected,
		"error", err,
	)

	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// SaveMessage appends a message to the inquiry conversation.
func (r *InquiryWriteRepository) SaveMessage(ctx context.Context, msg models.InquiryMessageDB) error {
	const query = `
		INSERT INTO inquiry_messages (message_id, inquiry_id, sender_id, content, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`

	_, err := r.executor(ctx).ExecContext(ctx, query,
		msg.MessageID, msg.InquiryID, msg.SenderID, msg.Content)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{msg.MessageID, msg.InquiryID, msg.SenderID},
		"error", err,
	)

	return err
}

// MarkVerifiedCustomer records that the customer's inquiry for the service
// was closed, which is what entitles them to leave a review. Idempotent.
func (r *InquiryWriteRepository) MarkVerifiedCustomer(ctx context.Context, customerID, serviceID uuid.UUID) error {
	const query = `
		INSERT INTO verified_customers (customer_id, service_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (customer_id, service_id) DO NOTHING
	`

	_, err := r.executor(ctx).ExecContext(ctx, query, customerID, serviceID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{customerID, serviceID},
		"error", err,
	)

	return err
}

// InquiryReadRepository handles inquiry lookups.
type InquiryReadRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewInquiryReadRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *InquiryReadRepository {
	return &InquiryReadRepository{db: db, txGetter: txGetter}
}

func (r *InquiryReadRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// GetByID returns the inquiry or sql.ErrNoRows.
func (r *InquiryReadRepository) GetByID(ctx context.Context, inquiryID uuid.UUID) (*models.InquiryDB, error) {
	const query = `
		SELECT inquiry_id, customer_id, service_id, business_id, moderator_id, subject, status, negotiated_price, closed_by, created_at, updated_at
		FROM inquiries
		WHERE inquiry_id = $1
	`

	var inq models.InquiryDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &inq, query, inquiryID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{inquiryID},
		"result", inq,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &inq, nil
}

// ListForUser returns inquiries where the user is the customer or the
// business, newest first.
func (r *InquiryReadRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.InquiryDB, error) {
	const query = `
		SELECT inquiry_id, customer_id, service_id, business_id, moderator_id, subject, status, negotiated_price, closed_by, created_at, updated_at
		FROM inquiries
		WHERE customer_id = $1 OR business_id = $1
		ORDER BY created_at DESC
	`

	var inqs []models.InquiryDB
	err := r.db.SelectContext(ctx, &inqs, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", len(inqs),
		"error", err,
	)

	return inqs, err
}

// ListMessages returns the inquiry conversation in chronological order.
func (r *InquiryReadRepository) ListMessages(ctx context.Context, inquiryID uuid.UUID) ([]models.InquiryMessageDB, error) {
	const query = `
		SELECT message_id, inquiry_id, sender_id, content, created_at
		FROM inquiry_messages
		WHERE inquiry_id = $1
		ORDER BY created_at
	`

	var msgs []models.InquiryMessageDB
	err := r.db.SelectContext(ctx, &msgs, query, inquiryID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{inquiryID},
		"result", len(msgs),
		"error", err,
	)

	return msgs, err
}

// IsVerifiedCustomer reports whether the customer has a closed inquiry for
// the service. Consumed by the external review subsystem.
func (r *InquiryReadRepository) IsVerifiedCustomer(ctx context.Context, customerID, serviceID uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM verified_customers
			WHERE customer_id = $1 AND service_id = $2
		)
	`

	var verified bool
	err := r.db.GetContext(ctx, &verified, query, customerID, serviceID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{customerID, serviceID},
		"result", verified,
		"error", err,
	)

	return verified, err
}
