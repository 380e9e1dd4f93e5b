package service

import (
	"context"
	"testing"

	"Radio_Community/internal/auth"
	"Radio_Community/internal/identity"
	"Radio_Community/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminService(e *testEnv, seed ...string) *AdminService {
	s := NewAdminService(e.admins, e.accounts, e.events, seed)
	s.now = e.clock.Now
	return s
}

func TestAdminService_AddAndList(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	s := newAdminService(e)

	ana := e.addAccount(t, "ana@radio.com", "Ana")
	e.addAdmin(t, ana)
	e.addAccount(t, "luis@radio.com", "Luis")
	caller := identity.Account{ID: ana.ID, Email: ana.Email}

	list, err := s.Add(ctx, caller, " Luis@Radio.com ")
	require.NoError(t, err)
	assert.Equal(t, []string{"ana@radio.com", "luis@radio.com"}, list)

	_, err = s.Add(ctx, caller, "luis@radio.com")
	assert.ErrorIs(t, err, pkg.ErrAlreadyAdmin)

	_, err = s.Add(ctx, caller, "nadie@radio.com")
	assert.ErrorIs(t, err, pkg.ErrAccountGone)

	_, err = s.Add(ctx, caller, "  ")
	assert.ErrorIs(t, err, pkg.ErrInvalidEmail)

	assert.Equal(t, []string{pkg.EventAdminAdded}, e.events.types())
}

func TestAdminService_RemoveInvariants(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	s := newAdminService(e)

	a := e.addAccount(t, "a@radio.com", "A")
	b := e.addAccount(t, "b@radio.com", "B")
	e.addAdmin(t, a)
	callerA := identity.Account{ID: a.ID, Email: a.Email}
	callerB := identity.Account{ID: b.ID, Email: b.Email}

	// 唯一的管理员删除自己
	err := s.Remove(ctx, callerA, "A@radio.com")
	assert.ErrorIs(t, err, pkg.ErrSelfRemoval)

	// 删除最后一个管理员
	err = s.Remove(ctx, callerB, "a@radio.com")
	assert.ErrorIs(t, err, pkg.ErrLastAdmin)

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a@radio.com"}, list)

	_, err = s.Add(ctx, callerA, "b@radio.com")
	require.NoError(t, err)

	// 有其他管理员时也不能删除自己
	err = s.Remove(ctx, callerA, "a@radio.com")
	assert.ErrorIs(t, err, pkg.ErrSelfRemoval)

	err = s.Remove(ctx, callerB, "a@radio.com")
	require.NoError(t, err)

	list, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b@radio.com"}, list)

	err = s.Remove(ctx, callerB, "nadie@radio.com")
	assert.ErrorIs(t, err, pkg.ErrAdminGone)

	assert.Equal(t, []string{pkg.EventAdminAdded, pkg.EventAdminRemoved}, e.events.types())
}

func TestAdminService_Bootstrap(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	s := newAdminService(e, "ana@radio.com", "pendiente@radio.com")

	n, err := s.Bootstrap(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	e.addAccount(t, "ana@radio.com", "Ana")
	n, err = s.Bootstrap(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// 表非空后不再写入
	e.addAccount(t, "pendiente@radio.com", "")
	n, err = s.Bootstrap(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ana@radio.com"}, list)
}

func TestAdminService_EventFailureDoesNotFailRequest(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	e.events.err = assert.AnError
	s := newAdminService(e)

	a := e.addAccount(t, "a@radio.com", "A")
	e.addAccount(t, "b@radio.com", "B")
	e.addAdmin(t, a)

	list, err := s.Add(ctx, identity.Account{ID: a.ID, Email: a.Email}, "b@radio.com")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestStaticAdminRegistry(t *testing.T) {
	ctx := context.Background()
	r := NewStaticAdminRegistry(auth.NewStaticPolicy([]string{"ana@radio.com", "luis@radio.com"}))
	caller := identity.Account{ID: "1", Email: "ana@radio.com"}

	list, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ana@radio.com", "luis@radio.com"}, list)

	_, err = r.Add(ctx, caller, "otro@radio.com")
	assert.ErrorIs(t, err, pkg.ErrReadOnlyRegistry)
	assert.ErrorIs(t, r.Remove(ctx, caller, "luis@radio.com"), pkg.ErrReadOnlyRegistry)
}
