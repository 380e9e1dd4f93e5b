package service

import (
	"context"
	"sync"
	"testing"

	"Radio_Community/internal/model"
	"Radio_Community/internal/pkg"
	"Radio_Community/internal/repository/rdb"
	"Radio_Community/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []pkg.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev pkg.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

type mockMailer struct {
	SendFunc func(ctx context.Context, to, subject, htmlBody string) error
}

func (m *mockMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, to, subject, htmlBody)
	}
	return nil
}

type testEnv struct {
	db       *gorm.DB
	clock    *testutil.Clock
	events   *recordingPublisher
	accounts *rdb.AccountRepository
	profiles *rdb.ProfileRepository
	admins   *rdb.AdminRepository
	pubs     *rdb.PublicationRepository
	comments *rdb.CommentRepository
	contacts *rdb.ContactRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.TestDB(t)
	return &testEnv{
		db:       db,
		clock:    testutil.NewClock(),
		events:   &recordingPublisher{},
		accounts: &rdb.AccountRepository{DB: db},
		profiles: &rdb.ProfileRepository{DB: db},
		admins:   &rdb.AdminRepository{DB: db},
		pubs:     &rdb.PublicationRepository{DB: db},
		comments: &rdb.CommentRepository{DB: db},
		contacts: &rdb.ContactRepository{DB: db},
	}
}

// addAccount 直接写入账号和资料
func (e *testEnv) addAccount(t *testing.T, email, nombre string) *model.Account {
	t.Helper()
	ctx := context.Background()
	acc := &model.Account{ID: uuid.NewString(), Email: email, PasswordHash: "x", CreatedAt: e.clock.Now()}
	require.NoError(t, e.accounts.Create(ctx, acc))
	if nombre != "" {
		require.NoError(t, e.profiles.Create(ctx, &model.Profile{
			ID: acc.ID, NombreUsuario: nombre, Email: email, CreatedAt: e.clock.Now(),
		}))
	}
	return acc
}

func (e *testEnv) addAdmin(t *testing.T, acc *model.Account) {
	t.Helper()
	require.NoError(t, e.admins.Create(context.Background(), &model.AdminRecord{
		UserID: acc.ID, Email: acc.Email, CreatedAt: e.clock.Now(),
	}))
}
