package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tcg-pocket-engine/internal/engine/rng"
	"tcg-pocket-engine/internal/engine/state"
)

func TestCreateGetDelete(t *testing.T) {
	repo := NewGameRepository()
	ctx := context.Background()

	s := &state.GameState{}
	src := rng.New(1)

	sess := repo.Create(ctx, s, src)
	require.NotEmpty(t, sess.ID)

	got, err := repo.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Same(t, s, got.State)

	require.NoError(t, repo.Delete(ctx, sess.ID))

	_, err = repo.Get(ctx, sess.ID)
	assert.Error(t, err)
}

func TestGetUnknownIDErrors(t *testing.T) {
	repo := NewGameRepository()
	_, err := repo.Get(context.Background(), "does-not-exist")
	assert.Error(t, err)
}

func TestListReturnsAllSessions(t *testing.T) {
	repo := NewGameRepository()
	ctx := context.Background()

	repo.Create(ctx, &state.GameState{}, rng.New(1))
	repo.Create(ctx, &state.GameState{}, rng.New(2))

	assert.Len(t, repo.List(ctx), 2)
}
