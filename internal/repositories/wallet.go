package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"marketwallet/internal/logger"
)

// WalletWriteRepository handles balance mutations. Every method expects to
// run inside the transaction provided by the txGetter; the service layer is
// responsible for wrapping calls in one.
type WalletWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewWalletWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *WalletWriteRepository {
	return &WalletWriteRepository{db: db, txGetter: txGetter}
}

func (r *WalletWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// LockPair takes row locks on both wallets of a transfer, always in
// user_id order so two opposite transfers cannot deadlock. Missing rows are
// simply not locked; a missing source row fails later in Debit.
func (r *WalletWriteRepository) LockPair(ctx context.Context, a, b uuid.UUID) error {
	const query = `
		SELECT user_id
		FROM wallets
		WHERE user_id IN ($1, $2)
		ORDER BY user_id
		FOR UPDATE
	`

	var ids []uuid.UUID
	err := sqlx.SelectContext(ctx, r.executor(ctx), &ids, query, a, b)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{a, b},
		"result", ids,
		"error", err,
	)

	return err
}

// Credit performs an UPSERT: creates the wallet if it does not exist,
// otherwise increases the balance. Returns the new balance.
func (r *WalletWriteRepository) Credit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	const query = `
		INSERT INTO wallets (user_id, balance, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET balance = wallets.balance + EXCLUDED.balance, updated_at = NOW()
		RETURNING balance
	`

	var balance decimal.Decimal
	err := sqlx.GetContext(ctx, r.executor(ctx), &balance, query, userID, amount)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, amount},
		"result", balance,
		"error", err,
	)

	return balance, err
}

// Debit decreases the balance only when it covers the amount. Returns
// sql.ErrNoRows when the wallet is missing or the balance is short; the
// service layer maps that to InsufficientFunds.
func (r *WalletWriteRepository) Debit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	const query = `
		UPDATE wallets
		SET balance = balance - $2, updated_at = NOW()
		WHERE user_id = $1 AND balance >= $2
		RETURNING balance
	`

	var balance decimal.Decimal
	err := sqlx.GetContext(ctx, r.executor(ctx), &balance, query, userID, amount)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, amount},
		"result", balance,
		"error", err,
	)

	return balance, err
}

// WalletReadRepository handles wallet read operations.
type WalletReadRepository struct {
	db *sqlx.DB
}

func NewWalletReadRepository(db *sqlx.DB) *WalletReadRepository {
	return &WalletReadRepository{db: db}
}

// GetBalance returns the wallet balance, or zero for a wallet that has not
// been created yet.
func (r *WalletReadRepository) GetBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	const query = `
		SELECT COALESCE(
			(SELECT balance FROM wallets WHERE user_id = $1),
			0
		) AS balance
	`

	var balance decimal.Decimal
	err := r.db.GetContext(ctx, &balance, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", balance,
		"error", err,
	)

	return balance, err
}
