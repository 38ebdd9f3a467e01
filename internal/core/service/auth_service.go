package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/estatehub/realty-platform/internal/api/metrics"
	"github.com/estatehub/realty-platform/internal/auth/token"
	"github.com/estatehub/realty-platform/internal/core/domain"
	"github.com/estatehub/realty-platform/internal/core/ports"
)

// WelcomeNotifier delivers the post-registration greeting. Implemented
// by the notification client; failures are never surfaced to the caller.
type WelcomeNotifier interface {
	Send(ctx context.Context, recipient, channel, message string) error
}

var welcomeByRole = map[string]string{
	domain.RoleUser:  "Welcome to the agency! You are registered as a user.",
	domain.RoleAgent: "Welcome to the agency! You are registered as an agent.",
	domain.RoleAdmin: "Welcome to the agency! You are registered as an administrator.",
}

// AuthService implements registration, login and identity lookup.
type AuthService struct {
	repo     ports.UserRepository
	issuer   *token.Issuer
	notifier WelcomeNotifier
	log      zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, issuer *token.Issuer, notifier WelcomeNotifier, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, issuer: issuer, notifier: notifier, log: log}
}

// Register creates an identity and returns it with a freshly issued
// token. The welcome notification is best-effort: its failure is logged
// and discarded.
func (s *AuthService) Register(ctx context.Context, email, password, role string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domain.ErrInvalidInput
	}
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, "", domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	if s.notifier != nil {
		if err := s.notifier.Send(ctx, created.Email, domain.ChannelPush, welcomeByRole[created.Role]); err != nil {
			s.log.Warn().Err(err).Str("email", created.Email).Msg("welcome notification failed")
		}
	}

	tok, err := s.issuer.Issue(created)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	metrics.AuthIssuedTotal.WithLabelValues(created.Role).Inc()
	return created, tok, nil
}

// Login authenticates by email and password. A missing user and a wrong
// password return the identical error so callers cannot tell which failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		metrics.AuthFailuresTotal.WithLabelValues("unknown_user").Inc()
		return nil, "", domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.AuthFailuresTotal.WithLabelValues("bad_password").Inc()
		return nil, "", domain.ErrInvalidCredentials
	}

	tok, err := s.issuer.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	metrics.AuthIssuedTotal.WithLabelValues(user.Role).Inc()
	return user, tok, nil
}

func (s *AuthService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}
