// Package identity issues and validates bearer tokens for accounts.
package identity

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"Radio_Community/internal/model"
	"Radio_Community/internal/pkg"
)

var (
	ErrEmailTaken         = errors.New("User already registered")
	ErrInvalidCredentials = errors.New("Invalid login credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrWeakPassword       = errors.New("Password should be at least 6 characters")
	ErrInvalidEmail       = errors.New("Unable to validate email address: invalid format")
)

const MinPasswordLength = 6

// Account 令牌解析出的身份
type Account struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Provider 身份提供方能力
type Provider interface {
	SignUp(ctx context.Context, email, password string) (*Account, error)
	SignInWithPassword(ctx context.Context, email, password string) (*Account, *pkg.Pair, error)
	GetUser(ctx context.Context, token string) (*Account, error)
	Refresh(ctx context.Context, refreshToken string) (*Account, *pkg.Pair, error)
	SignOut(ctx context.Context, userID string) error
}

type AccountStore interface {
	Create(ctx context.Context, acc *model.Account) error
	FindByID(ctx context.Context, id string) (*model.Account, error)
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
}

// SessionStore 每个账号当前有效的 access/refresh
type SessionStore interface {
	Save(ctx context.Context, userID, accessToken, refreshToken string) error
	Get(ctx context.Context, userID string) (string, error)
	GetRefresh(ctx context.Context, userID string) (string, error)
	Extend(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID string) error
}

// NormalizeEmail 小写并去掉首尾空白
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail 只接受裸地址，不接受 "Name <addr>" 形式
func ValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
