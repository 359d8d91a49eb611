package history

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glow/internal/pkg/logger"
)

func TestStore_LoadAbsentIsEmpty(t *testing.T) {
	s := NewStore(NewMemoryStorage(), zerolog.Nop())
	require.NoError(t, s.Load(context.Background()))
	assert.Empty(t, s.Entries())
}

func TestStore_RecordDedupesToFront(t *testing.T) {
	ctx := context.Background()
	s := NewStore(NewMemoryStorage(), zerolog.Nop())

	for _, q := range []string{"lipstick", "toner", "lipstick"} {
		require.NoError(t, s.Record(ctx, q))
	}
	assert.Equal(t, []string{"lipstick", "toner"}, s.Entries())
}

func TestStore_RecordBlankIsNoop(t *testing.T) {
	st := NewMemoryStorage()
	s := NewStore(st, zerolog.Nop())

	require.NoError(t, s.Record(context.Background(), "   "))
	assert.Empty(t, s.Entries())
	_, ok, _ := st.Get(context.Background(), StorageKey)
	assert.False(t, ok)
}

func TestStore_SeventhEvictsOldest(t *testing.T) {
	ctx := context.Background()
	s := NewStore(NewMemoryStorage(), zerolog.Nop())

	for i := 1; i <= 7; i++ {
		require.NoError(t, s.Record(ctx, fmt.Sprintf("q%d", i)))
	}
	assert.Equal(t, []string{"q7", "q6", "q5", "q4", "q3", "q2"}, s.Entries())
}

func TestStore_SurvivesReload(t *testing.T) {
	ctx := context.Background()
	st := NewFileStorage(t.TempDir())

	s := NewStore(st, zerolog.Nop())
	require.NoError(t, s.Record(ctx, "serum"))
	require.NoError(t, s.Record(ctx, "mask"))

	reloaded := NewStore(st, zerolog.Nop())
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, []string{"mask", "serum"}, reloaded.Entries())
}

func TestStore_ClearErasesStorage(t *testing.T) {
	ctx := context.Background()
	st := NewFileStorage(t.TempDir())
	s := NewStore(st, zerolog.Nop())
	require.NoError(t, s.Record(ctx, "serum"))

	require.NoError(t, s.Clear(ctx))
	assert.Empty(t, s.Entries())

	_, ok, err := st.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.False(t, ok)

	reloaded := NewStore(st, zerolog.Nop())
	require.NoError(t, reloaded.Load(ctx))
	assert.Empty(t, reloaded.Entries())
}

func TestStore_CorruptPayloadIsEmpty(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStorage()
	require.NoError(t, st.Set(ctx, StorageKey, []byte("{not json")))

	s := NewStore(st, zerolog.Nop())
	require.NoError(t, s.Load(ctx))
	assert.Empty(t, s.Entries())
}

func TestStore_LoadNormalizesPayload(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStorage()
	require.NoError(t, st.Set(ctx, StorageKey, []byte(`["a","a"," ","b","c","d","e","f","g"]`)))

	s := NewStore(st, zerolog.Nop())
	require.NoError(t, s.Load(ctx))
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, s.Entries())
}

func TestFileStorage_RejectsPathKeys(t *testing.T) {
	st := NewFileStorage(t.TempDir())
	assert.Error(t, st.Set(context.Background(), "../escape", []byte("x")))
}

func TestRedisStorage_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	st := NewRedisStorage(client, "glow:guest:")
	defer st.Close()
	ctx := context.Background()

	s := NewStore(st, zerolog.Nop())
	require.NoError(t, s.Record(ctx, "cushion"))
	assert.True(t, mr.Exists("glow:guest:search_history"))

	reloaded := NewStore(st, zerolog.Nop())
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, []string{"cushion"}, reloaded.Entries())

	require.NoError(t, reloaded.Clear(ctx))
	assert.False(t, mr.Exists("glow:guest:search_history"))
}

func TestOpenRedisStorage_FromURL(t *testing.T) {
	mr := miniredis.RunT(t)
	st, err := OpenRedisStorage(context.Background(), "redis://"+mr.Addr()+"/0", "glow:")
	require.NoError(t, err)
	defer st.Close()

	_, ok, err := st.Get(context.Background(), StorageKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_CorruptPayloadLogsWarning(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStorage()
	require.NoError(t, st.Set(ctx, StorageKey, []byte("[1,")))

	var buf bytes.Buffer
	s := NewStore(st, logger.NewWithWriter(&buf, "glow-test", "warn"))
	require.NoError(t, s.Load(ctx))

	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "discarding corrupt search history")
}
