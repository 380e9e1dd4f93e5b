package service

import (
	"context"
	"strings"
	"time"

	"Radio_Community/internal/identity"
	"Radio_Community/internal/model"
	"Radio_Community/internal/pkg"
	"Radio_Community/internal/repository/rdb"
)

type CommentStore interface {
	Create(ctx context.Context, c *model.Comment) error
	ListByPublication(ctx context.Context, publicationID uint64) ([]model.CommentView, error)
	ListAll(ctx context.Context) ([]model.CommentView, error)
	Delete(ctx context.Context, id uint64) (*model.Comment, error)
}

type PublicationFinder interface {
	FindByID(ctx context.Context, id uint64) (*model.Publication, error)
}

type CommentService struct {
	comments CommentStore
	pubs     PublicationFinder
	events   EventPublisher
	now      func() time.Time
}

func NewCommentService(comments CommentStore, pubs PublicationFinder, events EventPublisher) *CommentService {
	return &CommentService{
		comments: comments,
		pubs:     pubs,
		events:   events,
		now:      time.Now,
	}
}

// Create 只有 entrada 可以评论；空内容在访问存储前拒绝
func (s *CommentService) Create(ctx context.Context, author identity.Account, publicationID uint64, body string) (*model.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, pkg.ErrCommentRequired
	}

	p, err := s.pubs.FindByID(ctx, publicationID)
	if err != nil {
		if rdb.IsNotFound(err) {
			return nil, pkg.ErrPublicationGone
		}
		return nil, pkg.Store(err)
	}
	if p.Tipo != model.TypePost {
		return nil, pkg.ErrWrongContentType
	}

	c := &model.Comment{
		PublicacionID: publicationID,
		UserID:        author.ID,
		Contenido:     body,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, pkg.Store(err)
	}
	publish(ctx, s.events, pkg.EventCommentCreated, author.Email, commentSubject(c.ID), c, c.CreatedAt)
	return c, nil
}

// ListForPublication 不校验文章是否存在，未知 id 返回空列表
func (s *CommentService) ListForPublication(ctx context.Context, publicationID uint64) ([]model.CommentView, error) {
	list, err := s.comments.ListByPublication(ctx, publicationID)
	if err != nil {
		return nil, pkg.Store(err)
	}
	return list, nil
}

func (s *CommentService) ListAll(ctx context.Context) ([]model.CommentView, error) {
	list, err := s.comments.ListAll(ctx)
	if err != nil {
		return nil, pkg.Store(err)
	}
	return list, nil
}

func (s *CommentService) Delete(ctx context.Context, actor identity.Account, id uint64) (*model.Comment, error) {
	c, err := s.comments.Delete(ctx, id)
	if err != nil {
		if rdb.IsNotFound(err) {
			return nil, pkg.ErrCommentGone
		}
		return nil, pkg.Store(err)
	}
	publish(ctx, s.events, pkg.EventCommentDeleted, actor.Email, commentSubject(c.ID), c, s.now())
	return c, nil
}
