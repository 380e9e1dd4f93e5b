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

type PublicationService interface {
	Create(ctx context.Context, author identity.Account, in service.PublicationInput) (*model.Publication, error)
	List(ctx context.Context, tipo string) ([]model.Publication, error)
	Get(ctx context.Context, id uint64) (*model.PublicationDetail, error)
	Update(ctx context.Context, actor identity.Account, id uint64, patch service.PublicationPatch) (*model.Publication, error)
	Delete(ctx context.Context, actor identity.Account, id uint64) (*model.Publication, error)
}

type PostHandler struct {
	svc PublicationService
}

type CreatePostReq struct {
	Tipo      string `json:"tipo"`
	Titulo    string `json:"titulo"`
	Contenido string `json:"contenido"`
	Imagen    string `json:"imagen"`
}

// UpdatePostReq 未出现的字段保持不变
type UpdatePostReq struct {
	Titulo    *string `json:"titulo"`
	Contenido *string `json:"contenido"`
	Imagen    *string `json:"imagen"`
}

func NewPostHandler(svc PublicationService) *PostHandler {
	return &PostHandler{svc: svc}
}

// CreatePost 新建内容
func (h *PostHandler) CreatePost(c *gin.Context) {
	acc, ok := caller(c)
	if !ok {
		return
	}
	var req CreatePostReq
	if !bind(c, &req) {
		return
	}

	p, err := h.svc.Create(c.Request.Context(), acc, service.PublicationInput{
		Tipo:      req.Tipo,
		Titulo:    req.Titulo,
		Contenido: req.Contenido,
		Imagen:    req.Imagen,
	})
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusCreated, p, nil)
}

// ListPosts ?tipo= 可选
func (h *PostHandler) ListPosts(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), c.Query("tipo"))
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusOK, list, gin.H{"count": len(list)})
}

func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusOK, p, nil)
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	acc, ok := caller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdatePostReq
	if !bind(c, &req) {
		return
	}

	p, err := h.svc.Update(c.Request.Context(), acc, id, service.PublicationPatch{
		Titulo:    req.Titulo,
		Contenido: req.Contenido,
		Imagen:    req.Imagen,
	})
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusOK, p, nil)
}

// DeletePost 删除内容及其评论
func (h *PostHandler) DeletePost(c *gin.Context) {
	acc, ok := caller(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	p, err := h.svc.Delete(c.Request.Context(), acc, id)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusOK, p, gin.H{"message": "Publicación eliminada"})
}
