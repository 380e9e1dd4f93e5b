package pkg

import (
	"net/http"

	"Radio_Community/internal/logger"

	"github.com/gin-gonic/gin"
)

// Fail 统一错误出口，5xx 附带下游原始信息
func Fail(c *gin.Context, err error) {
	appErr := AsAppError(err)
	status := appErr.Kind.Status()

	body := gin.H{
		"success": false,
		"error":   appErr.Message,
		"code":    appErr.Kind.String(),
	}
	if status >= http.StatusInternalServerError {
		if d := appErr.Detail(); d != "" {
			body["detail"] = d
		}
		logger.Log.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"kind", appErr.Kind.String(),
			"error", err,
		)
	}
	c.AbortWithStatusJSON(status, body)
}

// OK 成功响应，extra 合并进外层
func OK(c *gin.Context, status int, data any, extra gin.H) {
	body := gin.H{"success": true}
	if data != nil {
		body["data"] = data
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(status, body)
}
