package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/estatehub/realty-platform/internal/auth/token"
	"github.com/estatehub/realty-platform/internal/core/domain"
	"github.com/estatehub/realty-platform/internal/core/ports"
)

// NotificationService records messages and mock-delivers them: the real
// SMTP/SMS/push integration is an external collaborator, so the send is
// a structured log line and the stored row is the audit trail.
type NotificationService struct {
	repo ports.NotificationRepository
	log  zerolog.Logger
}

func NewNotificationService(repo ports.NotificationRepository, log zerolog.Logger) *NotificationService {
	return &NotificationService{repo: repo, log: log}
}

func (s *NotificationService) Send(ctx context.Context, recipient, channel, message string) (*domain.Notification, error) {
	recipient = strings.TrimSpace(recipient)
	if channel == "" {
		channel = domain.ChannelEmail
	}
	if recipient == "" || message == "" {
		return nil, domain.ErrInvalidInput
	}
	if !domain.ValidChannel(channel) {
		return nil, domain.ErrInvalidInput
	}

	created, err := s.repo.Create(ctx, &domain.Notification{
		Recipient: recipient,
		Channel:   channel,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	// Mock send.
	s.log.Info().
		Str("recipient", created.Recipient).
		Str("channel", created.Channel).
		Str("message", created.Message).
		Msg("notification sent")

	return created, nil
}

// List scopes results by caller role: agents see everything, users see
// messages addressed to them plus the broadcast recipients.
func (s *NotificationService) List(ctx context.Context, claims token.Claims) ([]domain.Notification, error) {
	if claims.Role == domain.RoleAgent {
		return s.repo.List(ctx)
	}
	return s.repo.ListForRecipient(ctx, []string{claims.Email, domain.RecipientAgents, domain.RecipientAllUsers})
}
