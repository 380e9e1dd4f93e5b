package handler

import (
	"context"
	"net/http"

	"Radio_Community/internal/identity"
	"Radio_Community/internal/model"
	"Radio_Community/internal/pkg"
	"Radio_Community/internal/service"

	"github.com/gin-gonic/gin"
)

type ContactService interface {
	Send(ctx context.Context, sender identity.Account, in service.ContactInput) (*model.ContactMessage, error)
	List(ctx context.Context) ([]model.ContactMessageView, error)
}

type ContactHandler struct {
	svc ContactService
}

type ContactReq struct {
	Nombre  string `json:"nombre"`
	Correo  string `json:"correo"`
	Asunto  string `json:"asunto"`
	Mensaje string `json:"mensaje"`
}

func NewContactHandler(svc ContactService) *ContactHandler {
	return &ContactHandler{svc: svc}
}

// Send 保存联系消息并转发邮件
func (h *ContactHandler) Send(c *gin.Context) {
	acc, ok := caller(c)
	if !ok {
		return
	}
	var req ContactReq
	if !bind(c, &req) {
		return
	}

	msg, err := h.svc.Send(c.Request.Context(), acc, service.ContactInput{
		Nombre:  req.Nombre,
		Correo:  req.Correo,
		Asunto:  req.Asunto,
		Mensaje: req.Mensaje,
	})
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusOK, msg, gin.H{"message": "Mensaje enviado correctamente"})
}

func (h *ContactHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusOK, list, gin.H{"count": len(list)})
}
