package service

import (
	"context"
	"testing"

	"github.com/spec-kit/complaint-portal/internal/config"
)

func newAuthService(users *fakeUserRepo, sessions *fakeSessionStore) *AuthService {
	cfg := config.AuthConfig{
		SessionSecret:   "test-secret",
		SessionTTLHours: 1,
		CookieName:      "portal_session",
		BcryptCost:      4,
	}
	return NewAuthService(cfg, AuthDependencies{UserRepo: users, SessionStore: sessions})
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Username: "maria",
		Password: "secret123",
		FullName: "María García",
		Email:    "maria@example.com",
	}
}

func TestRegisterCreatesUserAndSession(t *testing.T) {
	users := newFakeUserRepo()
	sessions := newFakeSessionStore()
	svc := newAuthService(users, sessions)

	user, session, err := svc.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected assigned user id")
	}
	if user.IsAdmin || user.IsDepartmentHead {
		t.Error("registration must never grant role capabilities")
	}
	if user.PasswordHash == "secret123" {
		t.Error("password must be hashed")
	}
	if session.Token == "" {
		t.Error("expected session token")
	}
	if len(sessions.sessions) != 1 {
		t.Errorf("expected one live session, got %d", len(sessions.sessions))
	}
}

func TestRegisterValidationItemizesFields(t *testing.T) {
	svc := newAuthService(newFakeUserRepo(), newFakeSessionStore())

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Username: "",
		Password: "short",
		FullName: "ab",
		Email:    "not-an-email",
	})
	domainErr := assertDomainError(t, err, "VALIDATION_FAILED", 400)
	if len(domainErr.FieldErrors) != 4 {
		t.Errorf("expected 4 field errors, got %+v", domainErr.FieldErrors)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users, newFakeSessionStore())

	if _, _, err := svc.Register(context.Background(), validRegistration()); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	_, _, err := svc.Register(context.Background(), validRegistration())
	assertDomainError(t, err, "VALIDATION_FAILED", 400)
}

func TestLoginGoodAndBadCredentials(t *testing.T) {
	users := newFakeUserRepo()
	sessions := newFakeSessionStore()
	svc := newAuthService(users, sessions)

	if _, _, err := svc.Register(context.Background(), validRegistration()); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	user, session, err := svc.Login(context.Background(), "maria", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Username != "maria" || session.Token == "" {
		t.Errorf("unexpected login result: %+v", user)
	}

	_, _, err = svc.Login(context.Background(), "maria", "wrongpass")
	assertDomainError(t, err, "UNAUTHENTICATED", 401)

	_, _, err = svc.Login(context.Background(), "nobody", "secret123")
	assertDomainError(t, err, "UNAUTHENTICATED", 401)
}

func TestLogoutDeletesSession(t *testing.T) {
	users := newFakeUserRepo()
	sessions := newFakeSessionStore()
	svc := newAuthService(users, sessions)

	if _, _, err := svc.Register(context.Background(), validRegistration()); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	var sessionID string
	for id := range sessions.sessions {
		sessionID = id
	}
	if err := svc.Logout(context.Background(), sessionID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if len(sessions.sessions) != 0 {
		t.Error("logout must delete the server-side session")
	}
}
