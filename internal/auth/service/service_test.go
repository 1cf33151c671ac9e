package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/artmafra/notas/internal/auth/domain"
	"github.com/artmafra/notas/internal/auth/repository"
	"github.com/artmafra/notas/pkg/db"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (authdomain.Service, authdomain.SessionRepository, *snowflake.Node) {
	t.Helper()

	dbConn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbConn.AutoMigrate(&authdomain.User{}, &authdomain.Session{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	repo, sessionRepo := repository.New(dbConn)
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	return New(zap.NewNop(), repo, sessionRepo, node), sessionRepo, node
}

func TestCreateUserHashesPassword(t *testing.T) {
	svc, _, _ := newTestService(t)

	user, err := svc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		Email:    "alice@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	if user.PasswordHash == "" || user.PasswordHash == "correct-password" {
		t.Fatalf("expected argon2 hash, got %q", user.PasswordHash)
	}
	if !user.IsActive {
		t.Fatalf("expected new user active")
	}

	_, err = svc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		Email:    "alice@example.com",
		Password: "another-password",
	})
	if !errors.Is(err, authdomain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestCreateUserRejectsWeakPassword(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		Email:    "weak@example.com",
		Password: "short",
	})
	if !errors.Is(err, authdomain.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)

	if _, err := svc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		Email:    "bob@example.com",
		Password: "correct-password",
	}); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	_, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "bob@example.com",
		Password: "wrong-password",
	})
	if !errors.Is(err, authdomain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmailLooksLikeBadPassword(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever-password",
	})
	if !errors.Is(err, authdomain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginIssuesSession(t *testing.T) {
	svc, _, _ := newTestService(t)

	user, err := svc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		Email:    "carol@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	result, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "carol@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.RawToken == "" {
		t.Fatalf("expected raw session token")
	}
	if !result.ExpiresAt.After(time.Now()) {
		t.Fatalf("expected future expiry, got %v", result.ExpiresAt)
	}

	session, err := svc.Authenticate(context.Background(), result.RawToken)
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if session.UserID != user.ID {
		t.Fatalf("expected session for user %v, got %v", user.ID, session.UserID)
	}

	// Only the hash is at rest.
	sum := sha256.Sum256([]byte(result.RawToken))
	if session.SessionTokenHash != hex.EncodeToString(sum[:]) {
		t.Fatalf("stored token hash mismatch")
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _, _ := newTestService(t)

	if _, err := svc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		Email:    "dave@example.com",
		Password: "correct-password",
	}); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	result, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "dave@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.Logout(context.Background(), result.RawToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	_, err = svc.Authenticate(context.Background(), result.RawToken)
	if !errors.Is(err, authdomain.ErrSessionRevoked) {
		t.Fatalf("expected ErrSessionRevoked, got %v", err)
	}
}

func TestAuthenticateExpiredSession(t *testing.T) {
	svc, sessionRepo, node := newTestService(t)

	user, err := svc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		Email:    "erin@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	raw := "expired-session-token"
	sum := sha256.Sum256([]byte(raw))
	now := time.Now().UTC()
	if err := sessionRepo.CreateSession(context.Background(), &authdomain.Session{
		ID:               node.Generate(),
		UserID:           user.ID,
		SessionTokenHash: hex.EncodeToString(sum[:]),
		ExpiresAt:        now.Add(-time.Minute),
		CreatedAt:        now.Add(-time.Hour),
		LastSeenAt:       now.Add(-time.Hour),
	}); err != nil {
		t.Fatalf("failed to insert session: %v", err)
	}

	_, err = svc.Authenticate(context.Background(), raw)
	if !errors.Is(err, authdomain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestDeactivateUserRevokesSessions(t *testing.T) {
	svc, _, _ := newTestService(t)

	user, err := svc.CreateUser(context.Background(), authdomain.CreateUserRequest{
		Email:    "frank@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	result, err := svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "frank@example.com",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	inactive := false
	if _, err := svc.UpdateUser(context.Background(), authdomain.UpdateUserRequest{
		ID:       user.ID.String(),
		IsActive: &inactive,
	}); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	_, err = svc.Authenticate(context.Background(), result.RawToken)
	if !errors.Is(err, authdomain.ErrSessionRevoked) {
		t.Fatalf("expected ErrSessionRevoked, got %v", err)
	}

	_, err = svc.Login(context.Background(), authdomain.LoginRequest{
		Email:    "frank@example.com",
		Password: "correct-password",
	})
	if !errors.Is(err, authdomain.ErrUserInactive) {
		t.Fatalf("expected ErrUserInactive, got %v", err)
	}
}
