package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodes(t *testing.T) (*CodeRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCodeRepository(client, 5*time.Minute), mr
}

func TestCodeRepository_PendingThenConfirmed(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestCodes(t)

	require.NoError(t, repo.SavePending(ctx, ScopeRegister, "a@radio.com", "123456"))

	// 未确认前不能用于校验
	_, err := repo.Get(ctx, ScopeRegister, "a@radio.com")
	assert.ErrorIs(t, err, ErrCodeNotFound)

	require.NoError(t, repo.Confirm(ctx, ScopeRegister, "a@radio.com"))
	assert.False(t, mr.Exists(codeKey(ScopeRegister, PendingSuffix, "a@radio.com")))
	assert.Equal(t, 5*time.Minute, mr.TTL(codeKey(ScopeRegister, ConfirmedSuffix, "a@radio.com")))

	got, err := repo.Get(ctx, ScopeRegister, "a@radio.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", got)

	require.NoError(t, repo.Delete(ctx, ScopeRegister, "a@radio.com"))
	_, err = repo.Get(ctx, ScopeRegister, "a@radio.com")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestCodeRepository_ConfirmWithoutPending(t *testing.T) {
	repo, _ := newTestCodes(t)
	err := repo.Confirm(context.Background(), ScopeRegister, "nadie@radio.com")
	assert.ErrorIs(t, err, ErrCodeConfirmedFailed)
}

func TestCodeRepository_Expires(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestCodes(t)

	require.NoError(t, repo.SavePending(ctx, ScopeRegister, "a@radio.com", "123456"))
	require.NoError(t, repo.Confirm(ctx, ScopeRegister, "a@radio.com"))
	mr.FastForward(6 * time.Minute)

	_, err := repo.Get(ctx, ScopeRegister, "a@radio.com")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestCodeRepository_Attempts(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestCodes(t)

	n, err := repo.IncrAttempts(ctx, ScopeRegister, "a@radio.com")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, err = repo.IncrAttempts(ctx, ScopeRegister, "a@radio.com")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	// 重新发码清零
	require.NoError(t, repo.SavePending(ctx, ScopeRegister, "a@radio.com", "654321"))
	n, err = repo.IncrAttempts(ctx, ScopeRegister, "a@radio.com")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
