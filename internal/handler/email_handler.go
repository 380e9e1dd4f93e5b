package handler

import (
	"context"
	"net/http"

	"Radio_Community/internal/pkg"

	"github.com/gin-gonic/gin"
)

type CodeSender interface {
	SendRegisterCode(ctx context.Context, email string) error
}

type EmailHandler struct {
	svc CodeSender
}

type SendCodeReq struct {
	Email string `json:"email"`
}

func NewEmailHandler(svc CodeSender) *EmailHandler {
	return &EmailHandler{svc: svc}
}

// SendCode 发送注册验证码
func (h *EmailHandler) SendCode(c *gin.Context) {
	var req SendCodeReq
	if !bind(c, &req) {
		return
	}

	if err := h.svc.SendRegisterCode(c.Request.Context(), req.Email); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusOK, nil, gin.H{"message": "Código de verificación enviado"})
}
