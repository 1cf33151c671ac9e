package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	// User registry.
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, req GetUserRequest) (User, error)
	CreateUser(ctx context.Context, req CreateUserRequest) (User, error)
	UpdateUser(ctx context.Context, req UpdateUserRequest) (User, error)
	DeleteUser(ctx context.Context, req DeleteUserRequest) error

	// Sessions.
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string) error
	Authenticate(ctx context.Context, rawToken string) (*Session, error)
	UserByID(ctx context.Context, id snowflake.ID) (User, error)
}

type GetUserRequest struct {
	ID string
}

type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest carries a partial update keyed by ID. A present password
// is re-hashed; nil fields are left untouched.
type UpdateUserRequest struct {
	ID       string  `json:"id"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	IsActive *bool   `json:"is_active"`
}

type DeleteUserRequest struct {
	ID string `json:"id"`
}

type LoginRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	UserAgent string `json:"-"`
	IPAddress string `json:"-"`
}

type LoginResult struct {
	User      User
	RawToken  string
	ExpiresAt time.Time
	SessionID snowflake.ID
}
