package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"Radio_Community/internal/identity"
	"Radio_Community/internal/model"
	"Radio_Community/internal/pkg"
)

type ContactStore interface {
	Create(ctx context.Context, m *model.ContactMessage) error
	List(ctx context.Context) ([]model.ContactMessageView, error)
}

// ContactInput 联系表单
type ContactInput struct {
	Nombre  string
	Correo  string
	Asunto  string
	Mensaje string
}

type ContactService struct {
	messages  ContactStore
	mailer    pkg.Mailer
	events    EventPublisher
	recipient string
	now       func() time.Time
}

func NewContactService(messages ContactStore, mailer pkg.Mailer, events EventPublisher, recipient string) *ContactService {
	return &ContactService{
		messages:  messages,
		mailer:    mailer,
		events:    events,
		recipient: recipient,
		now:       time.Now,
	}
}

// Send 先落库再发邮件；邮件失败时记录保留
func (s *ContactService) Send(ctx context.Context, sender identity.Account, in ContactInput) (*model.ContactMessage, error) {
	nombre := strings.TrimSpace(in.Nombre)
	correo := strings.TrimSpace(in.Correo)
	asunto := strings.TrimSpace(in.Asunto)
	mensaje := strings.TrimSpace(in.Mensaje)
	if nombre == "" || correo == "" || asunto == "" || mensaje == "" {
		return nil, pkg.ErrAllFieldsNeeded
	}
	if addr, err := mail.ParseAddress(correo); err != nil || addr.Address != correo {
		return nil, pkg.ErrInvalidEmail
	}

	m := &model.ContactMessage{
		UserID:           sender.ID,
		Nombre:           nombre,
		Asunto:           asunto,
		CuerpoMensaje:    mensaje,
		Email:            correo,
		FechaPublicacion: s.now().UTC(),
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, pkg.Store(err)
	}

	body := pkg.ContactMailHTML(pkg.ContactMail{
		Name:    nombre,
		Email:   correo,
		Subject: asunto,
		Body:    mensaje,
		UserID:  sender.ID,
		SentAt:  m.FechaPublicacion,
	})
	if err := s.mailer.Send(ctx, s.recipient, pkg.ContactMailSubject(asunto), body); err != nil {
		return nil, pkg.Mail(err)
	}

	publish(ctx, s.events, pkg.EventContactReceived, sender.Email, contactSubject(m.ID), m, m.FechaPublicacion)
	return m, nil
}

func (s *ContactService) List(ctx context.Context) ([]model.ContactMessageView, error) {
	list, err := s.messages.List(ctx)
	if err != nil {
		return nil, pkg.Store(err)
	}
	return list, nil
}
