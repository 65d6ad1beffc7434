package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	drepo "MarketPulse/internal/domain/repository"
)

func TestFileModelStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	store := NewFileModelStore(path)
	ctx := context.Background()

	state := []byte(`{"weights":{"rsi":0.2},"bias":0.1}`)
	require.NoError(t, store.Save(ctx, state))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, state, got)
}

func TestFileModelStoreLoadAbsent(t *testing.T) {
	store := NewFileModelStore(filepath.Join(t.TempDir(), "missing.json"))

	_, err := store.Load(context.Background())
	assert.True(t, errors.Is(err, drepo.ErrNoState))
}

func TestFileModelStoreCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "model.json")
	store := NewFileModelStore(path)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []byte(`{}`)))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{}`), got)
}

func TestFileModelStoreOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	store := NewFileModelStore(path)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []byte(`{"bias":0.1}`)))
	require.NoError(t, store.Save(ctx, []byte(`{"bias":0.2}`)))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"bias":0.2}`), got)
}
