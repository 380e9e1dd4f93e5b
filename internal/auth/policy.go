// Package auth decides whether an authenticated account is privileged.
//
// Two backends exist: a static e-mail allow-list loaded from configuration and
// a live lookup in the admins table. A deployment picks exactly one and every
// admin-gated route asks the same policy.
package auth

import (
	"context"
	"strings"
	"sync/atomic"

	"Radio_Community/internal/identity"
)

// AdminPolicy 判断账号是否为管理员
type AdminPolicy interface {
	IsAdmin(ctx context.Context, acc identity.Account) (bool, error)
}

// StaticAllowList 启动时加载的邮箱白名单，创建后不可变
type StaticAllowList struct {
	emails  map[string]struct{}
	ordered []string
}

func NewStaticAllowList(emails []string) *StaticAllowList {
	l := &StaticAllowList{emails: make(map[string]struct{}, len(emails))}
	for _, e := range emails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if _, ok := l.emails[e]; ok {
			continue
		}
		l.emails[e] = struct{}{}
		l.ordered = append(l.ordered, e)
	}
	return l
}

func (l *StaticAllowList) Contains(email string) bool {
	_, ok := l.emails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// Emails 按配置顺序返回副本
func (l *StaticAllowList) Emails() []string {
	out := make([]string, len(l.ordered))
	copy(out, l.ordered)
	return out
}

// StaticPolicy 基于白名单的策略。Reload 整体替换白名单，读取方无需加锁
type StaticPolicy struct {
	list atomic.Pointer[StaticAllowList]
}

func NewStaticPolicy(emails []string) *StaticPolicy {
	p := &StaticPolicy{}
	p.list.Store(NewStaticAllowList(emails))
	return p
}

func (p *StaticPolicy) IsAdmin(_ context.Context, acc identity.Account) (bool, error) {
	return p.list.Load().Contains(acc.Email), nil
}

func (p *StaticPolicy) Emails() []string {
	return p.list.Load().Emails()
}

func (p *StaticPolicy) Reload(emails []string) {
	p.list.Store(NewStaticAllowList(emails))
}

// AdminLookup admins 表查询
type AdminLookup interface {
	ExistsByUserID(ctx context.Context, userID string) (bool, error)
}

// TablePolicy 每次请求实时查询 admins 表，增删立即生效
type TablePolicy struct {
	admins AdminLookup
}

func NewTablePolicy(admins AdminLookup) *TablePolicy {
	return &TablePolicy{admins: admins}
}

func (p *TablePolicy) IsAdmin(ctx context.Context, acc identity.Account) (bool, error) {
	if acc.ID == "" {
		return false, nil
	}
	return p.admins.ExistsByUserID(ctx, acc.ID)
}
