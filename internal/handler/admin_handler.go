package handler

import (
	"net/http"

	"Radio_Community/internal/pkg"
	"Radio_Community/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	registry service.AdminRegistry
}

type AdminEmailReq struct {
	Email string `json:"email"`
}

func NewAdminHandler(registry service.AdminRegistry) *AdminHandler {
	return &AdminHandler{registry: registry}
}

func (h *AdminHandler) List(c *gin.Context) {
	emails, err := h.registry.List(c.Request.Context())
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusOK, emails, nil)
}

// Add 返回更新后的管理员列表
func (h *AdminHandler) Add(c *gin.Context) {
	acc, ok := caller(c)
	if !ok {
		return
	}
	var req AdminEmailReq
	if !bind(c, &req) {
		return
	}

	emails, err := h.registry.Add(c.Request.Context(), acc, req.Email)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusOK, emails, nil)
}

func (h *AdminHandler) Remove(c *gin.Context) {
	acc, ok := caller(c)
	if !ok {
		return
	}
	var req AdminEmailReq
	if !bind(c, &req) {
		return
	}

	if err := h.registry.Remove(c.Request.Context(), acc, req.Email); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusOK, nil, nil)
}
