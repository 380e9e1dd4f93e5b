package rdb_test

import (
	"context"
	"testing"
	"time"

	"Radio_Community/internal/model"
	"Radio_Community/internal/repository/rdb"
	"Radio_Community/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicationRepository_ListAndUpdate(t *testing.T) {
	ctx := context.Background()
	db := testutil.TestDB(t)
	repo := &rdb.PublicationRepository{DB: db}
	clock := testutil.NewClock()

	mk := func(tipo model.PublicationType, titulo string) *model.Publication {
		p := &model.Publication{Tipo: tipo, Titulo: titulo, Contenido: "c", AutorEmail: "a@radio.com", CreatedAt: clock.Now()}
		require.NoError(t, repo.Create(ctx, p))
		return p
	}
	e1 := mk(model.TypeEvent, "e1")
	mk(model.TypeNews, "n1")
	e2 := mk(model.TypeEvent, "e2")

	events, err := repo.List(ctx, model.TypeEvent)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, e2.ID, events[0].ID)
	assert.Equal(t, e1.ID, events[1].ID)

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	stamp := clock.Now()
	updated, err := repo.Update(ctx, e1.ID, map[string]any{"titulo": "nuevo", "updated_at": stamp})
	require.NoError(t, err)
	assert.Equal(t, "nuevo", updated.Titulo)
	assert.Equal(t, "c", updated.Contenido)
	require.NotNil(t, updated.UpdatedAt)
	assert.WithinDuration(t, stamp, *updated.UpdatedAt, time.Second)

	_, err = repo.Update(ctx, 9999, map[string]any{"titulo": "x"})
	assert.True(t, rdb.IsNotFound(err))
}

func TestPublicationRepository_DeleteWithComments(t *testing.T) {
	ctx := context.Background()
	db := testutil.TestDB(t)
	pubs := &rdb.PublicationRepository{DB: db}
	comments := &rdb.CommentRepository{DB: db}
	clock := testutil.NewClock()

	keep := &model.Publication{Tipo: model.TypePost, Titulo: "keep", Contenido: "c", AutorEmail: "a@radio.com", CreatedAt: clock.Now()}
	drop := &model.Publication{Tipo: model.TypePost, Titulo: "drop", Contenido: "c", AutorEmail: "a@radio.com", CreatedAt: clock.Now()}
	require.NoError(t, pubs.Create(ctx, keep))
	require.NoError(t, pubs.Create(ctx, drop))
	require.NoError(t, comments.Create(ctx, &model.Comment{PublicacionID: keep.ID, UserID: "u", Contenido: "k", CreatedAt: clock.Now()}))
	require.NoError(t, comments.Create(ctx, &model.Comment{PublicacionID: drop.ID, UserID: "u", Contenido: "d", CreatedAt: clock.Now()}))

	deleted, err := pubs.DeleteWithComments(ctx, drop.ID)
	require.NoError(t, err)
	assert.Equal(t, "drop", deleted.Titulo)

	all, err := comments.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "k", all[0].Contenido)
	assert.Equal(t, "keep", all[0].TituloPublicacion)

	_, err = pubs.FindByID(ctx, drop.ID)
	assert.True(t, rdb.IsNotFound(err))

	_, err = pubs.DeleteWithComments(ctx, drop.ID)
	assert.True(t, rdb.IsNotFound(err))
}
