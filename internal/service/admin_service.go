package service

import (
	"context"
	"errors"
	"time"

	"Radio_Community/internal/auth"
	"Radio_Community/internal/identity"
	"Radio_Community/internal/model"
	"Radio_Community/internal/pkg"
	"Radio_Community/internal/repository/rdb"
)

// AdminRegistry 管理员名单的增删查
type AdminRegistry interface {
	List(ctx context.Context) ([]string, error)
	Add(ctx context.Context, caller identity.Account, email string) ([]string, error)
	Remove(ctx context.Context, caller identity.Account, email string) error
}

type AdminStore interface {
	List(ctx context.Context) ([]model.AdminRecord, error)
	FindByEmail(ctx context.Context, email string) (*model.AdminRecord, error)
	Create(ctx context.Context, rec *model.AdminRecord) error
	DeleteByEmail(ctx context.Context, email string) (*model.AdminRecord, error)
	SeedIfEmpty(ctx context.Context, recs []model.AdminRecord) (int, error)
}

type AccountFinder interface {
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
}

// AdminService admins 表为准
type AdminService struct {
	admins   AdminStore
	accounts AccountFinder
	events   EventPublisher
	seed     []string
	now      func() time.Time
}

func NewAdminService(admins AdminStore, accounts AccountFinder, events EventPublisher, seed []string) *AdminService {
	return &AdminService{
		admins:   admins,
		accounts: accounts,
		events:   events,
		seed:     seed,
		now:      time.Now,
	}
}

func (s *AdminService) List(ctx context.Context) ([]string, error) {
	recs, err := s.admins.List(ctx)
	if err != nil {
		return nil, pkg.Store(err)
	}
	emails := make([]string, 0, len(recs))
	for _, r := range recs {
		emails = append(emails, r.Email)
	}
	return emails, nil
}

func (s *AdminService) Add(ctx context.Context, caller identity.Account, email string) ([]string, error) {
	email = identity.NormalizeEmail(email)
	if email == "" {
		return nil, pkg.ErrInvalidEmail
	}

	acc, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if rdb.IsNotFound(err) {
			return nil, pkg.ErrAccountGone
		}
		return nil, pkg.Store(err)
	}

	if _, err := s.admins.FindByEmail(ctx, acc.Email); err == nil {
		return nil, pkg.ErrAlreadyAdmin
	} else if !rdb.IsNotFound(err) {
		return nil, pkg.Store(err)
	}

	rec := &model.AdminRecord{UserID: acc.ID, Email: acc.Email, CreatedAt: s.now().UTC()}
	if err := s.admins.Create(ctx, rec); err != nil {
		// 并发添加同一账号
		if rdb.IsDuplicate(err) {
			return nil, pkg.ErrAlreadyAdmin
		}
		return nil, pkg.Store(err)
	}
	publish(ctx, s.events, pkg.EventAdminAdded, caller.Email, rec.Email, rec, rec.CreatedAt)

	return s.List(ctx)
}

func (s *AdminService) Remove(ctx context.Context, caller identity.Account, email string) error {
	email = identity.NormalizeEmail(email)
	if email == "" {
		return pkg.ErrInvalidEmail
	}
	if email == identity.NormalizeEmail(caller.Email) {
		return pkg.ErrSelfRemoval
	}

	rec, err := s.admins.DeleteByEmail(ctx, email)
	if err != nil {
		switch {
		case rdb.IsNotFound(err):
			return pkg.ErrAdminGone
		case errors.Is(err, rdb.ErrLastAdmin):
			return pkg.ErrLastAdmin
		default:
			return pkg.Store(err)
		}
	}
	publish(ctx, s.events, pkg.EventAdminRemoved, caller.Email, rec.Email, rec, s.now())
	return nil
}

// Bootstrap admins 表为空时，把配置中已注册的邮箱写入，未注册的跳过
func (s *AdminService) Bootstrap(ctx context.Context) (int, error) {
	if len(s.seed) == 0 {
		return 0, nil
	}

	recs := make([]model.AdminRecord, 0, len(s.seed))
	for _, email := range s.seed {
		acc, err := s.accounts.FindByEmail(ctx, email)
		if err != nil {
			if rdb.IsNotFound(err) {
				continue
			}
			return 0, err
		}
		recs = append(recs, model.AdminRecord{UserID: acc.ID, Email: acc.Email, CreatedAt: s.now().UTC()})
	}
	return s.admins.SeedIfEmpty(ctx, recs)
}

// StaticAdminRegistry 名单来自配置，只读
type StaticAdminRegistry struct {
	policy *auth.StaticPolicy
}

func NewStaticAdminRegistry(policy *auth.StaticPolicy) *StaticAdminRegistry {
	return &StaticAdminRegistry{policy: policy}
}

func (r *StaticAdminRegistry) List(context.Context) ([]string, error) {
	return r.policy.Emails(), nil
}

func (r *StaticAdminRegistry) Add(context.Context, identity.Account, string) ([]string, error) {
	return nil, pkg.ErrReadOnlyRegistry
}

func (r *StaticAdminRegistry) Remove(context.Context, identity.Account, string) error {
	return pkg.ErrReadOnlyRegistry
}
