package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"marketwallet/internal/logger"
	"marketwallet/internal/models"
)

// ErrDuplicatePendingRequest is returned by Save when the partial unique
// index rejects a second PENDING request for the same inquiry.
var ErrDuplicatePendingRequest = errors.New("pending payment request already exists for inquiry")

const pgUniqueViolation = "23505"

// PaymentRequestWriteRepository handles payment request writes.
type PaymentRequestWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewPaymentRequestWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *PaymentRequestWriteRepository {
	return &PaymentRequestWriteRepository{db: db, txGetter: txGetter}
}

func (r *PaymentRequestWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a new PENDING request. The partial unique index on
// (inquiry_id) WHERE status = 'PENDING' closes the create/create race at
// the storage level.
func (r *PaymentRequestWriteRepository) Save(ctx context.Context, req models.PaymentRequestDB) error {
	const query = `
		INSERT INTO payment_requests (request_id, inquiry_id, requester_id, amount, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`

	_, err := r.executor(ctx).ExecContext(ctx, query,
		req.RequestID, req.InquiryID, req.RequesterID, req.Amount, req.Description, req.Status)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{req.RequestID, req.InquiryID, req.RequesterID, req.Amount, req.Status},
		"error", err,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrDuplicatePendingRequest
	}
	return err
}

// SetStatusIfPending moves a request out of PENDING. The conditional UPDATE
// is the atomic check-and-transition: of two concurrent accepts, exactly one
// matches the row, the other gets ok=false after the first commits.
func (r *PaymentRequestWriteRepository) SetStatusIfPending(ctx context.Context, requestID uuid.UUID, status string) (bool, error) {
	const query = `
		UPDATE payment_requests
		SET status = $2, updated_at = NOW()
		WHERE request_id = $1 AND status = 'PENDING'
	`

	res, err := r.executor(ctx).ExecContext(ctx, query, requestID, status)

	var affected int64
	if err == nil {
		affected, err = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{requestID, status},
		"result", affected,
		"error", err,
	)

	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// PaymentRequestReadRepository handles payment request lookups.
type PaymentRequestReadRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewPaymentRequestReadRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *PaymentRequestReadRepository {
	return &PaymentRequestReadRepository{db: db, txGetter: txGetter}
}

func (r *PaymentRequestReadRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// GetByID returns the request or sql.ErrNoRows.
func (r *PaymentRequestReadRepository) GetByID(ctx context.Context, requestID uuid.UUID) (*models.PaymentRequestDB, error) {
	const query = `
		SELECT request_id, inquiry_id, requester_id, amount, description, status, created_at, updated_at
		FROM payment_requests
		WHERE request_id = $1
	`

	var req models.PaymentRequestDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &req, query, requestID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{requestID},
		"result", req,
		"error", err,
	)

	if err != nil {
		return nil, err
	}
	return &req, nil
}

// ListByInquiry returns every request ever made on the inquiry, newest first.
func (r *PaymentRequestReadRepository) ListByInquiry(ctx context.Context, inquiryID uuid.UUID) ([]models.PaymentRequestDB, error) {
	const query = `
		SELECT request_id, inquiry_id, requester_id, amount, description, status, created_at, updated_at
		FROM payment_requests
		WHERE inquiry_id = $1
		ORDER BY created_at DESC
	`

	var reqs []models.PaymentRequestDB
	err := r.db.SelectContext(ctx, &reqs, query, inquiryID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{inquiryID},
		"result", len(reqs),
		"error", err,
	)

	return reqs, err
}

// ListPendingForCustomer returns the PENDING requests awaiting the given
// customer's answer, i.e. requests on inquiries the customer opened. This is
// the query the UI polls.
func (r *PaymentRequestReadRepository) ListPendingForCustomer(ctx context.Context, customerID uuid.UUID) ([]models.PaymentRequestDB, error) {
	const query = `
		SELECT pr.request_id, pr.inquiry_id, pr.requester_id, pr.amount, pr.description, pr.status, pr.created_at, pr.updated_at
		FROM payment_requests pr
		JOIN inquiries i ON i.inquiry_id = pr.inquiry_id
		WHERE i.customer_id = $1 AND pr.status = 'PENDING'
		ORDER BY pr.created_at DESC
	`

	var reqs []models.PaymentRequestDB
	err := r.db.SelectContext(ctx, &reqs, query, customerID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{customerID},
		"result", len(reqs),
		"error", err,
	)

	return reqs, err
}
