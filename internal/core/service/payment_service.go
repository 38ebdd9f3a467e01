package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/estatehub/realty-platform/internal/auth/token"
	"github.com/estatehub/realty-platform/internal/core/domain"
	"github.com/estatehub/realty-platform/internal/core/ports"
)

// PaymentNotifier reports settled transactions to the agents.
type PaymentNotifier interface {
	Send(ctx context.Context, recipient, channel, message string) error
}

// PaymentService creates transactions against a mocked processor:
// every transaction settles as success immediately.
type PaymentService struct {
	repo     ports.TransactionRepository
	notifier PaymentNotifier
	log      zerolog.Logger
}

func NewPaymentService(repo ports.TransactionRepository, notifier PaymentNotifier, log zerolog.Logger) *PaymentService {
	return &PaymentService{repo: repo, notifier: notifier, log: log}
}

func (s *PaymentService) CreateTransaction(ctx context.Context, claims token.Claims, amount float64, currency string, propertyID int64) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	if currency == "" {
		currency = "EUR"
	}

	txn := &domain.Transaction{
		TransactionID: newTransactionID(),
		UserID:        claims.UserID,
		Amount:        amount,
		Currency:      currency,
		Status:        domain.PaymentSuccess,
		PropertyID:    propertyID,
		CreatedAt:     time.Now().UTC(),
	}
	created, err := s.repo.Create(ctx, txn)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		msg := fmt.Sprintf("Payment received: %.2f %s from %s (transaction %s)",
			created.Amount, created.Currency, claims.Email, created.TransactionID)
		if err := s.notifier.Send(ctx, domain.RecipientAgents, domain.ChannelPush, msg); err != nil {
			s.log.Warn().Err(err).Str("transaction_id", created.TransactionID).Msg("payment notification failed")
		}
	}
	return created, nil
}

// ListTransactions scopes by caller: agents see all, users their own.
func (s *PaymentService) ListTransactions(ctx context.Context, claims token.Claims) ([]domain.Transaction, error) {
	if claims.Role == domain.RoleAgent {
		return s.repo.List(ctx)
	}
	return s.repo.ListByUser(ctx, claims.UserID)
}

func newTransactionID() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
