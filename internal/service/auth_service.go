package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"Radio_Community/internal/identity"
	"Radio_Community/internal/logger"
	"Radio_Community/internal/model"
	"Radio_Community/internal/pkg"
	"Radio_Community/internal/repository/rdb"
	rrepo "Radio_Community/internal/repository/redis"
)

var (
	errEmailTaken         = pkg.Validation("El correo ya está registrado.")
	errWeakPassword       = pkg.Validation("La contraseña debe tener al menos 6 caracteres.")
	errInvalidCredentials = pkg.Validation("Credenciales inválidas.")
	errCredentialsMissing = pkg.Validation("Correo y contraseña son obligatorios.")
)

type ProfileStore interface {
	Create(ctx context.Context, p *model.Profile) error
	FindByID(ctx context.Context, id string) (*model.Profile, error)
}

// CodeVerifier 注册前校验邮箱验证码
type CodeVerifier interface {
	VerifyCode(ctx context.Context, scope, email, code string) error
}

// AdminBootstrapper 管理员表为空时按配置写入初始管理员
type AdminBootstrapper interface {
	Bootstrap(ctx context.Context) (int, error)
}

// UserView 返回给客户端的用户信息
type UserView struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	NombreUsuario string `json:"nombre_usuario"`
}

type Session struct {
	User    UserView  `json:"user"`
	Session *pkg.Pair `json:"session"`
}

type AuthService struct {
	provider  identity.Provider
	profiles  ProfileStore
	codes     CodeVerifier
	bootstrap AdminBootstrapper
	now       func() time.Time
}

func NewAuthService(provider identity.Provider, profiles ProfileStore, codes CodeVerifier, bootstrap AdminBootstrapper) *AuthService {
	return &AuthService{
		provider:  provider,
		profiles:  profiles,
		codes:     codes,
		bootstrap: bootstrap,
		now:       time.Now,
	}
}

// Register 校验邮箱验证码后创建账号再写资料，后两步不在同一事务内。
// 只有证明拥有邮箱的账号才会触发管理员初始化
func (s *AuthService) Register(ctx context.Context, email, password, nombre, code string) (*UserView, error) {
	email = identity.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, errCredentialsMissing
	}
	// 验证码一次性，先排除必然失败的请求
	if !identity.ValidEmail(email) {
		return nil, pkg.ErrInvalidEmail
	}
	if len(password) < identity.MinPasswordLength {
		return nil, errWeakPassword
	}
	if err := s.codes.VerifyCode(ctx, rrepo.ScopeRegister, email, strings.TrimSpace(code)); err != nil {
		return nil, err
	}

	acc, err := s.provider.SignUp(ctx, email, password)
	if err != nil {
		return nil, mapIdentityError(err)
	}

	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		nombre, _, _ = strings.Cut(acc.Email, "@")
	}

	profile := &model.Profile{
		ID:            acc.ID,
		NombreUsuario: nombre,
		Email:         acc.Email,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		logger.Log.Error("profile insert failed, account left without profile",
			"account_id", acc.ID, "email", acc.Email, "error", err)
		return nil, pkg.Store(err)
	}

	if s.bootstrap != nil {
		if n, err := s.bootstrap.Bootstrap(ctx); err != nil {
			logger.Log.Warn("admin bootstrap failed", "error", err)
		} else if n > 0 {
			logger.Log.Info("admin table seeded", "count", n)
		}
	}

	return &UserView{ID: acc.ID, Email: acc.Email, NombreUsuario: nombre}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, errCredentialsMissing
	}

	acc, pair, err := s.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, mapIdentityError(err)
	}

	view, err := s.view(ctx, *acc)
	if err != nil {
		return nil, err
	}
	return &Session{User: *view, Session: pair}, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, pkg.ErrInvalidToken
	}

	acc, pair, err := s.provider.Refresh(ctx, refreshToken)
	if err != nil {
		return nil, mapIdentityError(err)
	}

	view, err := s.view(ctx, *acc)
	if err != nil {
		return nil, err
	}
	return &Session{User: *view, Session: pair}, nil
}

func (s *AuthService) Logout(ctx context.Context, acc identity.Account) error {
	if err := s.provider.SignOut(ctx, acc.ID); err != nil {
		return pkg.Store(err)
	}
	return nil
}

// Me 当前登录用户
func (s *AuthService) Me(ctx context.Context, acc identity.Account) (*UserView, error) {
	return s.view(ctx, acc)
}

// view 资料缺失时昵称留空
func (s *AuthService) view(ctx context.Context, acc identity.Account) (*UserView, error) {
	v := &UserView{ID: acc.ID, Email: acc.Email}
	profile, err := s.profiles.FindByID(ctx, acc.ID)
	switch {
	case err == nil:
		v.NombreUsuario = profile.NombreUsuario
	case rdb.IsNotFound(err):
		logger.Log.Warn("account without profile", "account_id", acc.ID)
	default:
		return nil, pkg.Store(err)
	}
	return v, nil
}

func mapIdentityError(err error) error {
	switch {
	case errors.Is(err, identity.ErrEmailTaken):
		return errEmailTaken
	case errors.Is(err, identity.ErrWeakPassword):
		return errWeakPassword
	case errors.Is(err, identity.ErrInvalidEmail):
		return pkg.ErrInvalidEmail
	case errors.Is(err, identity.ErrInvalidCredentials):
		return errInvalidCredentials
	case errors.Is(err, identity.ErrInvalidToken):
		return pkg.ErrInvalidToken
	default:
		return pkg.Store(err)
	}
}
