package pkg

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// Event 领域事件，写入 kafka 时以 Subject 作为 key 保证同一对象有序
type Event struct {
	Type    string    `json:"type"`
	Actor   string    `json:"actor,omitempty"`
	Subject string    `json:"subject"`
	Payload any       `json:"payload,omitempty"`
	At      time.Time `json:"at"`
}

const (
	EventAdminAdded         = "admin.added"
	EventAdminRemoved       = "admin.removed"
	EventPublicationCreated = "publication.created"
	EventPublicationUpdated = "publication.updated"
	EventPublicationDeleted = "publication.deleted"
	EventCommentCreated     = "comment.created"
	EventCommentDeleted     = "comment.deleted"
	EventContactReceived    = "contact.received"
)

type KafkaProducer struct {
	writer *kafka.Writer
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func NewKafkaProducer(cfg KafkaConfig) (*KafkaProducer, error) {
	w := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		// 投递在请求路径上，broker 不可用时尽快放弃
		WriteTimeout: 2 * time.Second,
		MaxAttempts:  2,
	}
	return &KafkaProducer{writer: w}, nil
}

func (p *KafkaProducer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

func (p *KafkaProducer) Send(ctx context.Context, key string, value []byte) error {
	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *KafkaProducer) Publish(ctx context.Context, ev Event) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.Send(ctx, ev.Subject, value)
}

// NopPublisher 未配置 kafka 时使用
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
