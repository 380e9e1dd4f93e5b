package service

import (
	"context"
	"time"

	"Radio_Community/internal/logger"
	"Radio_Community/internal/pkg"
)

// eventTimeout 单次投递上限，超时即放弃
var eventTimeout = 2 * time.Second

// EventPublisher 领域事件出口，kafka 或空实现
type EventPublisher interface {
	Publish(ctx context.Context, ev pkg.Event) error
}

// publish 尽力投递，失败只记日志，不影响请求结果
func publish(ctx context.Context, pub EventPublisher, typ, actor, subject string, payload any, at time.Time) {
	if pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), eventTimeout)
	defer cancel()

	ev := pkg.Event{Type: typ, Actor: actor, Subject: subject, Payload: payload, At: at.UTC()}
	if err := pub.Publish(ctx, ev); err != nil {
		logger.Log.Warn("publish event failed", "type", typ, "subject", subject, "error", err)
	}
}
