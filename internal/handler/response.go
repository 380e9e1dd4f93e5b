package handler

import (
	"context"
	"strconv"

	"Radio_Community/internal/identity"
	"Radio_Community/internal/middleware"
	"Radio_Community/internal/pkg"

	"github.com/gin-gonic/gin"
)

// AdminChecker 查询当前账号是否为管理员
type AdminChecker interface {
	IsAdmin(ctx context.Context, acc identity.Account) (bool, error)
}

func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		pkg.Fail(c, pkg.ErrInvalidID)
		return 0, false
	}
	return id, true
}

// caller 路由必须挂了鉴权中间件
func caller(c *gin.Context) (identity.Account, bool) {
	acc, ok := middleware.CurrentAccount(c)
	if !ok {
		pkg.Fail(c, pkg.ErrUnauthenticated)
	}
	return acc, ok
}

func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		pkg.Fail(c, pkg.ErrInvalidParams)
		return false
	}
	return true
}
