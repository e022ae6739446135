package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-portal/internal/domain"
	"github.com/spec-kit/complaint-portal/internal/repository"
	apperrors "github.com/spec-kit/complaint-portal/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller for the current request.
type Principal struct {
	SessionID string
	User      *domain.User
}

// AuthMiddleware validates session cookies and loads principals.
type AuthMiddleware struct {
	tokens     *TokenManager
	sessions   SessionStore
	users      repository.UserRepository
	cookieName string
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, sessions SessionStore, users repository.UserRepository, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, sessions: sessions, users: users, cookieName: cookieName}
}

// Handle resolves the session cookie into a Principal when present. It never
// rejects on its own; the capability middlewares decide whether an
// unauthenticated request may proceed.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	cookie := c.Cookies(m.cookieName)
	if cookie == "" {
		return c.Next()
	}

	sessionID, err := m.tokens.SessionIDFromToken(cookie)
	if err != nil {
		return c.Next()
	}

	userID, err := m.sessions.Get(c.UserContext(), sessionID)
	if err != nil {
		if err == ErrSessionNotFound {
			return c.Next()
		}
		return apperrors.MapError(err)
	}

	user, err := m.users.GetByID(c.UserContext(), userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return c.Next()
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{SessionID: sessionID, User: user})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
