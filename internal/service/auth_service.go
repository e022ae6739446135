package service

import (
	"context"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-portal/internal/auth"
	"github.com/spec-kit/complaint-portal/internal/config"
	"github.com/spec-kit/complaint-portal/internal/domain"
	"github.com/spec-kit/complaint-portal/internal/repository"
	apperrors "github.com/spec-kit/complaint-portal/pkg/util/errorutil"
)

// AuthService coordinates registration, login and logout over the durable
// session store.
type AuthService struct {
	users      repository.UserRepository
	sessions   auth.SessionStore
	tokenMgr   *auth.TokenManager
	bcryptCost int
	sessionTTL time.Duration
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo     repository.UserRepository
	SessionStore auth.SessionStore
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	Username string
	Password string
	FullName string
	Email    string
}

// Session describes an issued login session: the signed cookie value and
// its expiry.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		sessions:   deps.SessionStore,
		tokenMgr:   auth.NewTokenManager(cfg.SessionSecret, cfg.SessionTTL()),
		bcryptCost: cfg.BcryptCost,
		sessionTTL: cfg.SessionTTL(),
	}
}

// Register creates a new citizen account and starts a session. Role flags
// are never settable at registration; only an admin mutates them later.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, *Session, error) {
	var fields []apperrors.FieldError
	if strings.TrimSpace(input.Username) == "" {
		fields = append(fields, apperrors.FieldError{Field: "username", Message: "username is required"})
	}
	if utf8.RuneCountInString(input.Password) < 6 {
		fields = append(fields, apperrors.FieldError{Field: "password", Message: "password must be at least 6 characters"})
	}
	if utf8.RuneCountInString(strings.TrimSpace(input.FullName)) < 3 {
		fields = append(fields, apperrors.FieldError{Field: "fullName", Message: "full name is required"})
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		fields = append(fields, apperrors.FieldError{Field: "email", Message: "invalid email address"})
	}
	if len(fields) > 0 {
		return nil, nil, apperrors.NewValidationError("invalid registration", fields)
	}

	username := strings.TrimSpace(input.Username)
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, nil, apperrors.NewValidationError("username already exists", []apperrors.FieldError{{
			Field:   "username",
			Message: "username already exists",
		}})
	} else if err != pgx.ErrNoRows {
		return nil, nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(input.FullName),
		Email:        input.Email,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, apperrors.MapError(err)
	}

	session, err := s.startSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Login verifies credentials and starts a session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, *Session, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil, apperrors.NewUnauthenticated("invalid credentials")
		}
		return nil, nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, apperrors.NewUnauthenticated("invalid credentials")
	}

	session, err := s.startSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Logout deletes the server-side session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) startSession(ctx context.Context, userID int64) (*Session, error) {
	sessionID, err := s.sessions.Create(ctx, userID, s.sessionTTL)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	token, expiresAt, err := s.tokenMgr.SignSessionID(sessionID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &Session{Token: token, ExpiresAt: expiresAt}, nil
}
