package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"marketwallet/internal/logger"
	"marketwallet/internal/models"
)

// TransactionWriteRepository appends ledger rows. The table is append-only:
// no update or delete statement exists anywhere in this package, which is
// what makes the history auditable.
type TransactionWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewTransactionWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db, txGetter: txGetter}
}

func (r *TransactionWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save appends one ledger row.
func (r *TransactionWriteRepository) Save(ctx context.Context, txn models.TransactionDB) error {
	const query = `
		INSERT INTO transactions (transaction_id, from_user, to_user, amount, inquiry_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`

	_, err := r.executor(ctx).ExecContext(ctx, query,
		txn.TransactionID, txn.FromUser, txn.ToUser, txn.Amount, txn.InquiryID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{txn.TransactionID, txn.FromUser, txn.ToUser, txn.Amount, txn.InquiryID},
		"error", err,
	)

	return err
}

// TransactionReadRepository lists ledger history.
type TransactionReadRepository struct {
	db *sqlx.DB
}

func NewTransactionReadRepository(db *sqlx.DB) *TransactionReadRepository {
	return &TransactionReadRepository{db: db}
}

// ListByUser returns every transaction touching the user's wallet,
// newest first (the order the UI shows).
func (r *TransactionReadRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.TransactionDB, error) {
	const query = `
		SELECT transaction_id, from_user, to_user, amount, inquiry_id, created_at
		FROM transactions
		WHERE from_user = $1 OR to_user = $1
		ORDER BY created_at DESC, transaction_id
	`

	var txns []models.TransactionDB
	err := r.db.SelectContext(ctx, &txns, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", len(txns),
		"error", err,
	)

	return txns, err
}
