package service

import (
	"context"
	"testing"
	"time"

	"Radio_Community/internal/identity"
	"Radio_Community/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stalledPublisher 模拟 broker 无响应，只在 ctx 结束时返回
type stalledPublisher struct {
	deadline chan bool
}

func (p *stalledPublisher) Publish(ctx context.Context, _ pkg.Event) error {
	_, ok := ctx.Deadline()
	p.deadline <- ok
	<-ctx.Done()
	return ctx.Err()
}

func TestPublish_StalledBrokerDoesNotHoldRequest(t *testing.T) {
	old := eventTimeout
	eventTimeout = 50 * time.Millisecond
	t.Cleanup(func() { eventTimeout = old })

	e := newTestEnv(t)
	pub := &stalledPublisher{deadline: make(chan bool, 1)}
	s := NewPublicationService(e.pubs, e.profiles, pub, testDefaultImage)
	admin := identity.Account{ID: "1", Email: "ana@radio.com"}

	start := time.Now()
	p, err := s.Create(context.Background(), admin, PublicationInput{Tipo: "noticia", Titulo: "t", Contenido: "c"})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Less(t, time.Since(start), time.Second)
	assert.True(t, <-pub.deadline, "publish must run under a deadline")
}

func TestPublish_SurvivesCanceledRequest(t *testing.T) {
	pub := &recordingPublisher{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// 变更已提交，请求断开也要尝试投递
	var got error
	publish(ctx, contextChecker{pub: pub, err: &got}, pkg.EventCommentCreated, "a@radio.com", "comment:1", nil, time.Now())
	assert.NoError(t, got)
	assert.Equal(t, []string{pkg.EventCommentCreated}, pub.types())
}

type contextChecker struct {
	pub *recordingPublisher
	err *error
}

func (c contextChecker) Publish(ctx context.Context, ev pkg.Event) error {
	*c.err = ctx.Err()
	return c.pub.Publish(ctx, ev)
}
