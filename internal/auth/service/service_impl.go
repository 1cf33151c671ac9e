package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/artmafra/notas/internal/auth/domain"
	"github.com/artmafra/notas/internal/auth/password"
	"github.com/artmafra/notas/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
)

const (
	sessionTokenBytes = 32
	sessionTTL        = 7 * 24 * time.Hour

	minPasswordLength = 8
)

type Service struct {
	log         *zap.Logger
	repo        domain.Repository
	sessionRepo domain.SessionRepository
	genID       *snowflake.Node
}

func New(log *zap.Logger, repo domain.Repository, sessionRepo domain.SessionRepository, genID *snowflake.Node) domain.Service {
	return &Service{
		log:         log.Named("auth.service"),
		repo:        repo,
		sessionRepo: sessionRepo,
		genID:       genID,
	}
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		users = append(users, *item)
	}
	return users, nil
}

func (s *Service) GetUser(ctx context.Context, req domain.GetUserRequest) (domain.User, error) {
	id, err := parseUserID(req.ID)
	if err != nil {
		return domain.User{}, err
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	return *user, nil
}

func (s *Service) CreateUser(ctx context.Context, req domain.CreateUserRequest) (domain.User, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return domain.User{}, domain.ErrInvalidEmail
	}
	if len(strings.TrimSpace(req.Password)) < minPasswordLength {
		return domain.User{}, domain.ErrWeakPassword
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           s.genID.Generate(),
		Email:        email,
		PasswordHash: hashed,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, &user); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.User{}, domain.ErrUserExists
		}
		return domain.User{}, err
	}

	return user, nil
}

func (s *Service) UpdateUser(ctx context.Context, req domain.UpdateUserRequest) (domain.User, error) {
	id, err := parseUserID(req.ID)
	if err != nil {
		return domain.User{}, err
	}

	fields := map[string]any{}
	if req.Email != nil {
		email, err := normalizeEmail(*req.Email)
		if err != nil {
			return domain.User{}, domain.ErrInvalidEmail
		}
		fields["email"] = email
	}
	if req.Password != nil {
		if len(strings.TrimSpace(*req.Password)) < minPasswordLength {
			return domain.User{}, domain.ErrWeakPassword
		}
		hashed, err := password.Hash(*req.Password)
		if err != nil {
			return domain.User{}, err
		}
		fields["password_hash"] = hashed
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}

	if len(fields) > 0 {
		fields["updated_at"] = time.Now().UTC()
		if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.User{}, domain.ErrUserExists
			}
			return domain.User{}, err
		}
	}

	// Deactivation invalidates every open session.
	if req.IsActive != nil && !*req.IsActive {
		if err := s.sessionRepo.RevokeSessionsForUser(ctx, id, time.Now().UTC()); err != nil {
			return domain.User{}, err
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	return *user, nil
}

func (s *Service) DeleteUser(ctx context.Context, req domain.DeleteUserRequest) error {
	id, err := parseUserID(req.ID)
	if err != nil {
		return err
	}
	if err := s.sessionRepo.RevokeSessionsForUser(ctx, id, time.Now().UTC()); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if strings.TrimSpace(req.Password) == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}

	rawToken, err := newSessionToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &domain.Session{
		ID:               s.genID.Generate(),
		UserID:           user.ID,
		SessionTokenHash: hashToken(rawToken),
		UserAgent:        strings.TrimSpace(req.UserAgent),
		IPAddress:        strings.TrimSpace(req.IPAddress),
		ExpiresAt:        now.Add(sessionTTL),
		CreatedAt:        now,
		LastSeenAt:       now,
	}
	if err := s.sessionRepo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	return &domain.LoginResult{
		User:      *user,
		RawToken:  rawToken,
		ExpiresAt: session.ExpiresAt,
		SessionID: session.ID,
	}, nil
}

func (s *Service) Logout(ctx context.Context, rawToken string) error {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return domain.ErrInvalidSession
	}

	session, err := s.sessionRepo.GetSessionByTokenHash(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return domain.ErrInvalidSession
		}
		return err
	}

	now := time.Now().UTC()
	return s.sessionRepo.RevokeSession(ctx, session.ID, now)
}

func (s *Service) Authenticate(ctx context.Context, rawToken string) (*domain.Session, error) {
	token := strings.TrimSpace(rawToken)
	if token == "" {
		return nil, domain.ErrInvalidSession
	}

	session, err := s.sessionRepo.GetSessionByTokenHash(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrInvalidSession
		}
		return nil, err
	}

	now := time.Now().UTC()
	if session.RevokedAt != nil {
		return nil, domain.ErrSessionRevoked
	}
	if now.After(session.ExpiresAt) {
		return nil, domain.ErrSessionExpired
	}

	if err := s.sessionRepo.UpdateLastSeen(ctx, session.ID, now); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *Service) UserByID(ctx context.Context, id snowflake.ID) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	return *user, nil
}

func parseUserID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidUserID
	}
	return id, nil
}

func normalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(addr.Address)), nil
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
