package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"Radio_Community/internal/identity"
	"Radio_Community/internal/logger"
	"Radio_Community/internal/pkg"
	"Radio_Community/internal/repository/rdb"
	rrepo "Radio_Community/internal/repository/redis"
)

const (
	codeLength      = 6
	maxCodeAttempts = 5
)

var (
	errCodeInvalid  = pkg.Validation("Código de verificación inválido o expirado.")
	errCodeRequired = pkg.Validation("El código de verificación es obligatorio.")
)

// CodeStore 验证码两阶段存储
type CodeStore interface {
	SavePending(ctx context.Context, scope, email, code string) error
	Confirm(ctx context.Context, scope, email string) error
	DeletePending(ctx context.Context, scope, email string) error
	Get(ctx context.Context, scope, email string) (string, error)
	IncrAttempts(ctx context.Context, scope, email string) (int64, error)
	Delete(ctx context.Context, scope, email string) error
	TTL() time.Duration
}

type EmailService struct {
	codes    CodeStore
	mailer   pkg.Mailer
	accounts AccountFinder
}

func NewEmailService(codes CodeStore, mailer pkg.Mailer, accounts AccountFinder) *EmailService {
	return &EmailService{codes: codes, mailer: mailer, accounts: accounts}
}

// SendRegisterCode 发送注册验证码，邮件发出后才可用于校验
func (s *EmailService) SendRegisterCode(ctx context.Context, email string) error {
	email = identity.NormalizeEmail(email)
	if !identity.ValidEmail(email) {
		return pkg.ErrInvalidEmail
	}

	_, err := s.accounts.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return errEmailTaken
	case !rdb.IsNotFound(err):
		return pkg.Store(err)
	}

	code, err := pkg.RandDigits(codeLength)
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}
	if err := s.codes.SavePending(ctx, rrepo.ScopeRegister, email, code); err != nil {
		return pkg.Store(err)
	}

	html := pkg.VerificationCodeHTML("registro", code, s.codes.TTL())
	if err := s.mailer.Send(ctx, email, pkg.VerificationMailSubject, html); err != nil {
		_ = s.codes.DeletePending(ctx, rrepo.ScopeRegister, email)
		logger.Log.Warn("verification mail failed", "email", email, "error", err)
		return pkg.Mail(err)
	}

	if err := s.codes.Confirm(ctx, rrepo.ScopeRegister, email); err != nil {
		_ = s.codes.DeletePending(ctx, rrepo.ScopeRegister, email)
		return pkg.Store(err)
	}
	return nil
}

// VerifyCode 校验成功即删除；连续失败达到上限后验证码作废
func (s *EmailService) VerifyCode(ctx context.Context, scope, email, code string) error {
	if code == "" {
		return errCodeRequired
	}
	email = identity.NormalizeEmail(email)

	want, err := s.codes.Get(ctx, scope, email)
	if err != nil {
		if errors.Is(err, rrepo.ErrCodeNotFound) {
			return errCodeInvalid
		}
		return pkg.Store(err)
	}

	if subtle.ConstantTimeCompare([]byte(want), []byte(code)) != 1 {
		n, err := s.codes.IncrAttempts(ctx, scope, email)
		if err != nil {
			return pkg.Store(err)
		}
		if n >= maxCodeAttempts {
			logger.Log.Warn("verification code burned after failed attempts", "email", email, "attempts", n)
			_ = s.codes.Delete(ctx, scope, email)
		}
		return errCodeInvalid
	}

	if err := s.codes.Delete(ctx, scope, email); err != nil {
		return pkg.Store(err)
	}
	return nil
}
