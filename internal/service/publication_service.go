package service

import (
	"context"
	"strings"
	"time"

	"Radio_Community/internal/identity"
	"Radio_Community/internal/logger"
	"Radio_Community/internal/model"
	"Radio_Community/internal/pkg"
	"Radio_Community/internal/repository/rdb"
)

type PublicationStore interface {
	Create(ctx context.Context, p *model.Publication) error
	FindByID(ctx context.Context, id uint64) (*model.Publication, error)
	List(ctx context.Context, tipo model.PublicationType) ([]model.Publication, error)
	Update(ctx context.Context, id uint64, fields map[string]any) (*model.Publication, error)
	DeleteWithComments(ctx context.Context, id uint64) (*model.Publication, error)
}

type ProfileFinder interface {
	FindByEmail(ctx context.Context, email string) (*model.Profile, error)
}

// PublicationInput 新建内容
type PublicationInput struct {
	Tipo      string
	Titulo    string
	Contenido string
	Imagen    string
}

// PublicationPatch nil 表示不修改该字段
type PublicationPatch struct {
	Titulo    *string
	Contenido *string
	Imagen    *string
}

type PublicationService struct {
	pubs         PublicationStore
	profiles     ProfileFinder
	events       EventPublisher
	defaultImage string
	now          func() time.Time
}

func NewPublicationService(pubs PublicationStore, profiles ProfileFinder, events EventPublisher, defaultImage string) *PublicationService {
	return &PublicationService{
		pubs:         pubs,
		profiles:     profiles,
		events:       events,
		defaultImage: defaultImage,
		now:          time.Now,
	}
}

func (s *PublicationService) Create(ctx context.Context, author identity.Account, in PublicationInput) (*model.Publication, error) {
	tipo, ok := model.ParsePublicationType(in.Tipo)
	if !ok {
		return nil, pkg.ErrInvalidType
	}
	titulo := strings.TrimSpace(in.Titulo)
	if titulo == "" {
		return nil, pkg.ErrTitleRequired
	}
	contenido := strings.TrimSpace(in.Contenido)
	if contenido == "" {
		return nil, pkg.ErrContentRequired
	}

	p := &model.Publication{
		Tipo:       tipo,
		Titulo:     titulo,
		Contenido:  contenido,
		Imagen:     s.image(in.Imagen),
		AutorEmail: author.Email,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.pubs.Create(ctx, p); err != nil {
		return nil, pkg.Store(err)
	}
	publish(ctx, s.events, pkg.EventPublicationCreated, author.Email, publicationSubject(p.ID), p, p.CreatedAt)
	return p, nil
}

// List 无法识别的 tipo 视为不过滤
func (s *PublicationService) List(ctx context.Context, tipo string) ([]model.Publication, error) {
	t, _ := model.ParsePublicationType(tipo)
	list, err := s.pubs.List(ctx, t)
	if err != nil {
		return nil, pkg.Store(err)
	}
	return list, nil
}

// Get 附带作者昵称，查不到资料时用邮箱代替
func (s *PublicationService) Get(ctx context.Context, id uint64) (*model.PublicationDetail, error) {
	p, err := s.pubs.FindByID(ctx, id)
	if err != nil {
		if rdb.IsNotFound(err) {
			return nil, pkg.ErrPublicationGone
		}
		return nil, pkg.Store(err)
	}

	detail := &model.PublicationDetail{Publication: *p, NombreUsuario: p.AutorEmail}
	profile, err := s.profiles.FindByEmail(ctx, p.AutorEmail)
	if err == nil && profile.NombreUsuario != "" {
		detail.NombreUsuario = profile.NombreUsuario
	} else if err != nil && !rdb.IsNotFound(err) {
		logger.Log.Warn("author lookup failed", "publication_id", id, "error", err)
	}
	return detail, nil
}

func (s *PublicationService) Update(ctx context.Context, actor identity.Account, id uint64, patch PublicationPatch) (*model.Publication, error) {
	fields := map[string]any{}
	if patch.Titulo != nil {
		titulo := strings.TrimSpace(*patch.Titulo)
		if titulo == "" {
			return nil, pkg.ErrTitleRequired
		}
		fields["titulo"] = titulo
	}
	if patch.Contenido != nil {
		contenido := strings.TrimSpace(*patch.Contenido)
		if contenido == "" {
			return nil, pkg.ErrContentRequired
		}
		fields["contenido"] = contenido
	}
	if patch.Imagen != nil {
		fields["imagen"] = s.image(*patch.Imagen)
	}
	now := s.now().UTC()
	fields["updated_at"] = now

	p, err := s.pubs.Update(ctx, id, fields)
	if err != nil {
		if rdb.IsNotFound(err) {
			return nil, pkg.ErrPublicationGone
		}
		return nil, pkg.Store(err)
	}
	publish(ctx, s.events, pkg.EventPublicationUpdated, actor.Email, publicationSubject(p.ID), p, now)
	return p, nil
}

// Delete 评论一并删除
func (s *PublicationService) Delete(ctx context.Context, actor identity.Account, id uint64) (*model.Publication, error) {
	p, err := s.pubs.DeleteWithComments(ctx, id)
	if err != nil {
		if rdb.IsNotFound(err) {
			return nil, pkg.ErrPublicationGone
		}
		return nil, pkg.Store(err)
	}
	publish(ctx, s.events, pkg.EventPublicationDeleted, actor.Email, publicationSubject(p.ID), p, s.now())
	return p, nil
}

func (s *PublicationService) image(raw string) string {
	if img := strings.TrimSpace(raw); img != "" {
		return img
	}
	return s.defaultImage
}
