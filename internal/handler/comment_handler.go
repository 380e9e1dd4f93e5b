package handler

import (
	"context"
	"net/http"

	"Radio_Community/internal/identity"
	"Radio_Community/internal/model"
	"Radio_Community/internal/pkg"

	"github.com/gin-gonic/gin"
)

type CommentService interface {
	Create(ctx context.Context, author identity.Account, publicationID uint64, body string) (*model.Comment, error)
	ListForPublication(ctx context.Context, publicationID uint64) ([]model.CommentView, error)
	ListAll(ctx context.Context) ([]model.CommentView, error)
	Delete(ctx context.Context, actor identity.Account, id uint64) (*model.Comment, error)
}

type CommentHandler struct {
	svc CommentService
}

type CreateCommentReq struct {
	Contenido string `json:"contenido"`
}

func NewCommentHandler(svc CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// Create 只有登录用户可以评论
func (h *CommentHandler) Create(c *gin.Context) {
	acc, ok := caller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req CreateCommentReq
	if !bind(c, &req) {
		return
	}

	comment, err := h.svc.Create(c.Request.Context(), acc, id, req.Contenido)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusCreated, comment, nil)
}

func (h *CommentHandler) ListForPublication(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	list, err := h.svc.ListForPublication(c.Request.Context(), id)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusOK, list, gin.H{"count": len(list)})
}

func (h *CommentHandler) ListAll(c *gin.Context) {
	list, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusOK, list, gin.H{"count": len(list)})
}

func (h *CommentHandler) Delete(c *gin.Context) {
	acc, ok := caller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	comment, err := h.svc.Delete(c.Request.Context(), acc, id)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusOK, comment, gin.H{"message": "Comentario eliminado"})
}
