package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Radio_Community/internal/model"
	"Radio_Community/internal/pkg"
	"Radio_Community/internal/repository/rdb"
	rrepo "Radio_Community/internal/repository/redis"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Local 本地身份提供方：账号存关系库，密码 bcrypt，令牌 JWT，会话存 redis
type Local struct {
	accounts AccountStore
	sessions SessionStore
	tokens   *pkg.TokenIssuer
	cost     int
	now      func() time.Time
}

func NewLocal(accounts AccountStore, sessions SessionStore, tokens *pkg.TokenIssuer) *Local {
	return &Local{
		accounts: accounts,
		sessions: sessions,
		tokens:   tokens,
		cost:     bcrypt.DefaultCost,
		now:      time.Now,
	}
}

func (l *Local) SignUp(ctx context.Context, email, password string) (*Account, error) {
	email = NormalizeEmail(email)
	if !ValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), l.cost)
	if err != nil {
		return nil, err
	}

	acc := &model.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    l.now().UTC(),
	}
	if err := l.accounts.Create(ctx, acc); err != nil {
		if rdb.IsDuplicate(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create account: %w", err)
	}
	return &Account{ID: acc.ID, Email: acc.Email}, nil
}

func (l *Local) SignInWithPassword(ctx context.Context, email, password string) (*Account, *pkg.Pair, error) {
	acc, err := l.accounts.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if rdb.IsNotFound(err) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("find account: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}
	return l.issue(ctx, acc.ID, acc.Email)
}

// GetUser 校验签名后再比对 redis 中的 token，通过则顺延会话
func (l *Local) GetUser(ctx context.Context, token string) (*Account, error) {
	claims, err := l.tokens.ParseAccess(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	current, err := l.sessions.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, rrepo.ErrTokenNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if current != token {
		// 账号已在别处登录或已退出
		return nil, ErrInvalidToken
	}

	if err := l.sessions.Extend(ctx, claims.UserID); err != nil {
		return nil, err
	}
	return &Account{ID: claims.UserID, Email: claims.Email}, nil
}

func (l *Local) Refresh(ctx context.Context, refreshToken string) (*Account, *pkg.Pair, error) {
	claims, err := l.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, nil, ErrInvalidToken
	}
	// 只认最近一次签发的 refresh，退出或轮换后旧的失效
	current, err := l.sessions.GetRefresh(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, rrepo.ErrTokenNotFound) {
			return nil, nil, ErrInvalidToken
		}
		return nil, nil, err
	}
	if current != refreshToken {
		return nil, nil, ErrInvalidToken
	}
	// 账号被删除后 refresh 不再有效
	acc, err := l.accounts.FindByID(ctx, claims.UserID)
	if err != nil {
		if rdb.IsNotFound(err) {
			return nil, nil, ErrInvalidToken
		}
		return nil, nil, fmt.Errorf("find account: %w", err)
	}
	return l.issue(ctx, acc.ID, acc.Email)
}

func (l *Local) SignOut(ctx context.Context, userID string) error {
	return l.sessions.Delete(ctx, userID)
}

func (l *Local) issue(ctx context.Context, userID, email string) (*Account, *pkg.Pair, error) {
	pair, err := l.tokens.GeneratePair(userID, email)
	if err != nil {
		return nil, nil, err
	}
	if err := l.sessions.Save(ctx, userID, pair.AccessToken, pair.RefreshToken); err != nil {
		return nil, nil, err
	}
	return &Account{ID: userID, Email: email}, pair, nil
}
