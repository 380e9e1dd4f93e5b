package handler

import (
	"context"
	"net/http"

	"Radio_Community/internal/identity"
	"Radio_Community/internal/pkg"
	"Radio_Community/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthService interface {
	Register(ctx context.Context, email, password, nombre, code string) (*service.UserView, error)
	Login(ctx context.Context, email, password string) (*service.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*service.Session, error)
	Logout(ctx context.Context, acc identity.Account) error
	Me(ctx context.Context, acc identity.Account) (*service.UserView, error)
}

type UserHandler struct {
	svc    AuthService
	admins AdminChecker
}

// RegisterReq 注册请求体
type RegisterReq struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	NombreUsuario string `json:"nombre_usuario"`
	Code          string `json:"code"`
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

func NewUserHandler(svc AuthService, admins AdminChecker) *UserHandler {
	return &UserHandler{svc: svc, admins: admins}
}

// Register 注册接口
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterReq
	if !bind(c, &req) {
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req.Email, req.Password, req.NombreUsuario, req.Code)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusCreated, user, gin.H{"message": "Usuario registrado correctamente"})
}

// Login 登录接口
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginReq
	if !bind(c, &req) {
		return
	}

	sess, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusOK, sess, nil)
}

// TokenRefresh 利用 refresh 换新的 token 对
func (h *UserHandler) TokenRefresh(c *gin.Context) {
	var req RefreshReq
	if !bind(c, &req) {
		return
	}

	sess, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusOK, sess, nil)
}

func (h *UserHandler) Logout(c *gin.Context) {
	acc, ok := caller(c)
	if !ok {
		return
	}
	if err := h.svc.Logout(c.Request.Context(), acc); err != nil {
		pkg.Fail(c, err)
		return
	}
	pkg.OK(c, http.StatusOK, nil, gin.H{"message": "Sesión cerrada"})
}

func (h *UserHandler) Me(c *gin.Context) {
	acc, ok := caller(c)
	if !ok {
		return
	}

	user, err := h.svc.Me(c.Request.Context(), acc)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	isAdmin, err := h.admins.IsAdmin(c.Request.Context(), acc)
	if err != nil {
		pkg.Fail(c, pkg.Store(err))
		return
	}

	pkg.OK(c, http.StatusOK, gin.H{
		"id":             user.ID,
		"email":          user.Email,
		"nombre_usuario": user.NombreUsuario,
		"is_admin":       isAdmin,
	}, nil)
}
