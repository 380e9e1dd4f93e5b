package service

import (
	"context"
	"errors"
	"testing"

	"Radio_Community/internal/identity"
	"Radio_Community/internal/model"
	"Radio_Community/internal/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCommentService(e *testEnv) *CommentService {
	s := NewCommentService(e.comments, e.pubs, e.events)
	s.now = e.clock.Now
	return s
}

func TestCommentService_CreateRules(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	pubs := newPublicationService(e)
	s := newCommentService(e)
	admin := identity.Account{ID: "admin", Email: "ana@radio.com"}
	oyente := identity.Account{ID: "oyente", Email: "oyente@radio.com"}

	entrada, err := pubs.Create(ctx, admin, PublicationInput{Tipo: "post", Titulo: "Blog", Contenido: "c"})
	require.NoError(t, err)
	noticia, err := pubs.Create(ctx, admin, PublicationInput{Tipo: "news", Titulo: "Noticia", Contenido: "c"})
	require.NoError(t, err)

	_, err = s.Create(ctx, oyente, noticia.ID, "hola")
	assert.ErrorIs(t, err, pkg.ErrWrongContentType)

	_, err = s.Create(ctx, oyente, entrada.ID+100, "hola")
	assert.ErrorIs(t, err, pkg.ErrPublicationGone)

	c, err := s.Create(ctx, oyente, entrada.ID, "  ¡Buen programa!  ")
	require.NoError(t, err)
	assert.Equal(t, "¡Buen programa!", c.Contenido)
	assert.Equal(t, "oyente", c.UserID)
	assert.Equal(t, entrada.ID, c.PublicacionID)
}

type failingPublications struct{}

func (failingPublications) FindByID(context.Context, uint64) (*model.Publication, error) {
	return nil, errors.New("should not be called")
}

func TestCommentService_BlankBodyNeverTouchesStore(t *testing.T) {
	e := newTestEnv(t)
	s := NewCommentService(e.comments, failingPublications{}, e.events)

	_, err := s.Create(context.Background(), identity.Account{ID: "u"}, 1, " \n ")
	assert.ErrorIs(t, err, pkg.ErrCommentRequired)

	all, err := s.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCommentService_ListsAndDelete(t *testing.T) {
	ctx := context.Background()
	e := newTestEnv(t)
	pubs := newPublicationService(e)
	s := newCommentService(e)

	ana := e.addAccount(t, "ana@radio.com", "Ana")
	luis := e.addAccount(t, "luis@radio.com", "Luis")
	admin := identity.Account{ID: ana.ID, Email: ana.Email}

	blog, err := pubs.Create(ctx, admin, PublicationInput{Tipo: "entrada", Titulo: "Blog", Contenido: "c"})
	require.NoError(t, err)
	otro, err := pubs.Create(ctx, admin, PublicationInput{Tipo: "entrada", Titulo: "Otro", Contenido: "c"})
	require.NoError(t, err)

	first, err := s.Create(ctx, admin, blog.ID, "primero")
	require.NoError(t, err)
	second, err := s.Create(ctx, identity.Account{ID: luis.ID, Email: luis.Email}, blog.ID, "segundo")
	require.NoError(t, err)
	third, err := s.Create(ctx, admin, otro.ID, "tercero")
	require.NoError(t, err)

	list, err := s.ListForPublication(ctx, blog.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, "Ana", list[0].NombreUsuario)
	assert.Equal(t, second.ID, list[1].ID)
	assert.Equal(t, "Luis", list[1].NombreUsuario)

	empty, err := s.ListForPublication(ctx, 9999)
	require.NoError(t, err)
	assert.Empty(t, empty)

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, third.ID, all[0].ID)
	assert.Equal(t, "Otro", all[0].TituloPublicacion)
	assert.Equal(t, first.ID, all[2].ID)
	assert.Equal(t, "Blog", all[2].TituloPublicacion)

	deleted, err := s.Delete(ctx, admin, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "segundo", deleted.Contenido)

	_, err = s.Delete(ctx, admin, second.ID)
	assert.ErrorIs(t, err, pkg.ErrCommentGone)

	list, err = s.ListForPublication(ctx, blog.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
