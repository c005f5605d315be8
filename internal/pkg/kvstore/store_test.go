package kvstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetSetDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "k", "v"))
	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_IncrResetsAfterWindow(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	n, _ := s.Incr(ctx, "rate", time.Minute)
	assert.Equal(t, int64(1), n)
	n, _ = s.Incr(ctx, "rate", time.Minute)
	assert.Equal(t, int64(2), n)

	now = now.Add(time.Minute)
	n, _ = s.Incr(ctx, "rate", time.Minute)
	assert.Equal(t, int64(1), n)
}

func TestDocument_LoadSeedsOnce(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	calls := 0
	doc := NewDocument(s, "ctrlshirt_settings", func() map[string]string {
		calls++
		return map[string]string{"storeName": "CtrlShirt"}
	}, 0)

	v, err := doc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "CtrlShirt", v["storeName"])

	require.NoError(t, doc.Save(ctx, map[string]string{"storeName": "Outra"}))
	v, err = doc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Outra", v["storeName"])
	assert.Equal(t, 1, calls)
}

func TestDocument_GetWithoutSeed(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	doc := NewDocument[[]string](s, "ctrlshirt_cart", nil, 0)

	_, ok, err := doc.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, doc.Save(ctx, []string{"a"}))
	v, ok, err := doc.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"a"}, v)

	require.NoError(t, doc.Clear(ctx))
	_, ok, _ = doc.Get(ctx)
	assert.False(t, ok)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "ctrlshirt_products", Key("ctrlshirt_", KeyProducts))
}
