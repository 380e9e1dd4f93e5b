package middleware

import (
	"context"
	"errors"
	"strings"

	"Radio_Community/internal/auth"
	"Radio_Community/internal/identity"
	"Radio_Community/internal/pkg"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserIDKey  = "user_id"
	ContextAccountKey = "account"
)

// Guard 解析 bearer token 并判断管理员权限。策略自身负责热更新
type Guard struct {
	provider identity.Provider
	policy   auth.AdminPolicy
}

func NewGuard(provider identity.Provider, policy auth.AdminPolicy) *Guard {
	return &Guard{provider: provider, policy: policy}
}

func (g *Guard) IsAdmin(ctx context.Context, acc identity.Account) (bool, error) {
	return g.policy.IsAdmin(ctx, acc)
}

// RequireAuth 任意已登录账号
func (g *Guard) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := g.authenticate(c); !ok {
			return
		}
		c.Next()
	}
}

// RequireAdmin 已登录且为管理员
func (g *Guard) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		acc, ok := g.authenticate(c)
		if !ok {
			return
		}

		isAdmin, err := g.policy.IsAdmin(c.Request.Context(), *acc)
		if err != nil {
			pkg.Fail(c, pkg.Store(err))
			return
		}
		if !isAdmin {
			pkg.Fail(c, pkg.ErrForbidden)
			return
		}
		c.Next()
	}
}

func (g *Guard) authenticate(c *gin.Context) (*identity.Account, bool) {
	token, ok := bearerToken(c.GetHeader("Authorization"))
	if !ok {
		pkg.Fail(c, pkg.ErrUnauthenticated)
		return nil, false
	}

	acc, err := g.provider.GetUser(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidToken) {
			pkg.Fail(c, pkg.ErrInvalidToken)
		} else {
			pkg.Fail(c, pkg.Store(err))
		}
		return nil, false
	}

	// 注入账号
	c.Set(ContextUserIDKey, acc.ID)
	c.Set(ContextAccountKey, *acc)
	return acc, true
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// CurrentAccount 取出中间件注入的账号
func CurrentAccount(c *gin.Context) (identity.Account, bool) {
	v, ok := c.Get(ContextAccountKey)
	if !ok {
		return identity.Account{}, false
	}
	acc, ok := v.(identity.Account)
	return acc, ok
}
