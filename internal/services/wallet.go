package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"marketwallet/internal/logger"
	"marketwallet/internal/models"
)

var (
	// ErrInsufficientFunds is returned when a debit exceeds the wallet balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInvalidAmount is returned for non-positive amounts.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrSameWallet is returned for a transfer where source and destination match.
	ErrSameWallet = errors.New("cannot transfer to the same wallet")
)

// WalletWriter defines the balance mutations the service needs.
type WalletWriter interface {
	LockPair(ctx context.Context, a, b uuid.UUID) error                                       // Locks both wallet rows in deterministic order
	Credit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) // Adds funds, creating the wallet if needed
	Debit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)  // Removes funds, sql.ErrNoRows when short
}

// WalletReader defines balance reads.
type WalletReader interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) // Returns the balance, zero for a missing wallet
}

// TransactionWriter appends ledger rows.
type TransactionWriter interface {
	Save(ctx context.Context, txn models.TransactionDB) error
}

// TxRunner runs a function inside a single database transaction.
type TxRunner interface {
	RunTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// WalletService is the single owner of balance mutation: deposits,
// withdrawals and transfers all go through it, each paired with exactly one
// ledger row inside one database transaction.
type WalletService struct {
	writeRepo   WalletWriter
	readRepo    WalletReader
	txnRepo     TransactionWriter
	tx          TxRunner
	kafkaWriter KafkaWriter
}

// NewWalletService creates a new WalletService.
func NewWalletService(
	writeRepo WalletWriter,
	readRepo WalletReader,
	txnRepo TransactionWriter,
	tx TxRunner,
	kafkaWriter KafkaWriter,
) *WalletService {
	return &WalletService{
		writeRepo:   writeRepo,
		readRepo:    readRepo,
		txnRepo:     txnRepo,
		tx:          tx,
		kafkaWriter: kafkaWriter,
	}
}

// publishTransaction publishes a committed ledger operation to Kafka.
// Best effort: a publish failure never fails the money movement.
func (s *WalletService) publishTransaction(ctx context.Context, event models.TransactionEvent) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "transaction_id", event.TransactionID)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal transaction for Kafka", "transaction_id", event.TransactionID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.TransactionID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish transaction to Kafka", "transaction_id", event.TransactionID, "error", err)
	} else {
		logger.Log.Infow("Transaction published to Kafka", "transaction_id", event.TransactionID, "amount", event.Amount)
	}
}

// GetBalance returns the user's current balance.
func (s *WalletService) GetBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	balance, err := s.readRepo.GetBalance(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get balance", "userID", userID, "error", err)
		return decimal.Zero, err
	}
	return balance, nil
}

// Deposit adds external funds to a user's wallet and appends a ledger row
// with no source wallet.
func (s *WalletService) Deposit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}

	txnID := uuid.New()
	var balance decimal.Decimal

	err := s.tx.RunTx(ctx, func(ctx context.Context) error {
		var err error
		balance, err = s.writeRepo.Credit(ctx, userID, amount)
		if err != nil {
			return err
		}
		return s.txnRepo.Save(ctx, models.TransactionDB{
			TransactionID: txnID,
			ToUser:        &userID,
			Amount:        amount,
		})
	})
	if err != nil {
		logger.Log.Errorw("failed to deposit", "userID", userID, "amount", amount, "error", err)
		return decimal.Zero, err
	}

	s.publishTransaction(ctx, models.TransactionEvent{
		TransactionID: txnID.String(),
		Operation:     models.OperationDeposit,
		ToUser:        userID.String(),
		Amount:        amount,
		Timestamp:     time.Now().Unix(),
	})

	return balance, nil
}

// Withdraw removes funds from a user's wallet and appends a ledger row with
// no destination wallet. Fails with ErrInsufficientFunds on a short balance.
func (s *WalletService) Withdraw(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}

	txnID := uuid.New()
	var balance decimal.Decimal

	err := s.tx.RunTx(ctx, func(ctx context.Context) error {
		var err error
		balance, err = s.writeRepo.Debit(ctx, userID, amount)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrInsufficientFunds
			}
			return err
		}
		return s.txnRepo.Save(ctx, models.TransactionDB{
			TransactionID: txnID,
			FromUser:      &userID,
			Amount:        amount,
		})
	})
	if err != nil {
		logger.Log.Errorw("failed to withdraw", "userID", userID, "amount", amount, "error", err)
		return decimal.Zero, err
	}

	s.publishTransaction(ctx, models.TransactionEvent{
		TransactionID: txnID.String(),
		Operation:     models.OperationWithdraw,
		FromUser:      userID.String(),
		Amount:        amount,
		Timestamp:     time.Now().Unix(),
	})

	return balance, nil
}

// Transfer atomically moves funds between two wallets and appends one ledger
// row referencing both, optionally linked to an inquiry. Either all three
// writes commit or none do.
func (s *WalletService) Transfer(ctx context.Context, fromUser, toUser uuid.UUID, amount decimal.Decimal, inquiryID *uuid.UUID) (fromBalance, toBalance decimal.Decimal, err error) {
	if !amount.IsPositive() {
		return decimal.Zero, decimal.Zero, ErrInvalidAmount
	}
	if fromUser == toUser {
		return decimal.Zero, decimal.Zero, ErrSameWallet
	}

	txnID := uuid.New()

	err = s.tx.RunTx(ctx, func(ctx context.Context) error {
		if err := s.writeRepo.LockPair(ctx, fromUser, toUser); err != nil {
			return err
		}

		var err error
		fromBalance, err = s.writeRepo.Debit(ctx, fromUser, amount)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrInsufficientFunds
			}
			return err
		}

		toBalance, err = s.writeRepo.Credit(ctx, toUser, amount)
		if err != nil {
			return err
		}

		return s.txnRepo.Save(ctx, models.TransactionDB{
			TransactionID: txnID,
			FromUser:      &fromUser,
			ToUser:        &toUser,
			Amount:        amount,
			InquiryID:     inquiryID,
		})
	})
	if err != nil {
		logger.Log.Errorw("failed to transfer", "from", fromUser, "to", toUser, "amount", amount, "error", err)
		return decimal.Zero, decimal.Zero, err
	}

	event := models.TransactionEvent{
		TransactionID: txnID.String(),
		Operation:     models.OperationTransfer,
		FromUser:      fromUser.String(),
		ToUser:        toUser.String(),
		Amount:        amount,
		Timestamp:     time.Now().Unix(),
	}
	if inquiryID != nil {
		event.InquiryID = inquiryID.String()
	}
	s.publishTransaction(ctx, event)

	return fromBalance, toBalance, nil
}
