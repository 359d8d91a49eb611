package favorites

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glow/internal/domain/model"
	"glow/internal/pkg/logger"
)

type fakeBackend struct {
	mu      sync.Mutex
	ids     []model.ID
	listErr error
	addErr  error
	rmErr   error
	adds    int
	removes int
	gate    chan struct{} // nil なら即時応答
	entered chan struct{}
}

func (f *fakeBackend) List(ctx context.Context, user string) ([]model.ID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.ID(nil), f.ids...), nil
}

func (f *fakeBackend) Add(ctx context.Context, user string, id model.ID) error {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.adds++
	return f.addErr
}

func (f *fakeBackend) Remove(ctx context.Context, user string, id model.ID) error {
	f.wait()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removes++
	return f.rmErr
}

func (f *fakeBackend) wait() {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.gate != nil {
		<-f.gate
	}
}

func newStore(b Backend) *Store {
	return NewStore(b, model.GuestUser, zerolog.Nop())
}

func TestStore_LoadReplacesSet(t *testing.T) {
	b := &fakeBackend{ids: []model.ID{"2", "1"}}
	s := newStore(b)

	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, []model.ID{"1", "2"}, s.IDs())
	assert.True(t, s.Loaded())

	b.ids = []model.ID{"3"}
	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, []model.ID{"3"}, s.IDs())
}

func TestStore_LoadFailureKeepsSet(t *testing.T) {
	b := &fakeBackend{ids: []model.ID{"1"}}
	s := newStore(b)
	require.NoError(t, s.Load(context.Background()))

	b.listErr = errors.New("offline")
	assert.Error(t, s.Load(context.Background()))
	assert.Equal(t, []model.ID{"1"}, s.IDs())
}

func TestStore_AddThenRemove(t *testing.T) {
	b := &fakeBackend{}
	s := newStore(b)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "p1"))
	require.NoError(t, s.Remove(ctx, "p1"))

	assert.False(t, s.Has("p1"))
	assert.Equal(t, NotFavorited, s.State("p1"))
}

func TestStore_RemoveThenAdd(t *testing.T) {
	b := &fakeBackend{ids: []model.ID{"p1"}}
	s := newStore(b)
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))

	require.NoError(t, s.Remove(ctx, "p1"))
	require.NoError(t, s.Add(ctx, "p1"))

	assert.True(t, s.Has("p1"))
	assert.Equal(t, Favorited, s.State("p1"))
}

func TestStore_AddIsIdempotent(t *testing.T) {
	b := &fakeBackend{}
	s := newStore(b)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, "p1"))
	require.NoError(t, s.Add(ctx, "p1"))

	assert.Equal(t, 1, b.adds)
	assert.Equal(t, []model.ID{"p1"}, s.IDs())
}

func TestStore_NumericAndStringIDsAreOneKey(t *testing.T) {
	b := &fakeBackend{}
	s := newStore(b)

	require.NoError(t, s.Add(context.Background(), model.ID("007")))
	assert.True(t, s.Has("7"))
	assert.Equal(t, 1, s.Len())
}

func TestStore_AddFailureRollsBack(t *testing.T) {
	b := &fakeBackend{ids: []model.ID{"p1", "p2"}, addErr: errors.New("boom")}
	s := newStore(b)
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))
	before := s.IDs()

	assert.Error(t, s.Add(ctx, "p3"))
	assert.Equal(t, before, s.IDs())
}

func TestStore_RemoveFailureRollsBack(t *testing.T) {
	b := &fakeBackend{ids: []model.ID{"p1", "p2"}, rmErr: errors.New("boom")}
	s := newStore(b)
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))
	before := s.IDs()

	assert.Error(t, s.Remove(ctx, "p1"))
	assert.Equal(t, before, s.IDs())
}

func TestStore_OptimisticBeforeBackendResolves(t *testing.T) {
	b := &fakeBackend{gate: make(chan struct{}), entered: make(chan struct{}, 1)}
	s := newStore(b)

	done := make(chan error, 1)
	go func() { done <- s.Add(context.Background(), "p1") }()

	<-b.entered
	assert.True(t, s.Has("p1"))
	assert.Equal(t, Pending, s.State("p1"))
	assert.Equal(t, []model.ID{"p1"}, s.IDs())

	close(b.gate)
	require.NoError(t, <-done)
	assert.Equal(t, Favorited, s.State("p1"))
}

func TestStore_StaleRollbackIgnored(t *testing.T) {
	b := &fakeBackend{gate: make(chan struct{}), entered: make(chan struct{}, 2), addErr: errors.New("boom")}
	s := newStore(b)

	addDone := make(chan error, 1)
	go func() { addDone <- s.Add(context.Background(), "p1") }()
	<-b.entered

	// add 応答前に remove を発行
	rmDone := make(chan error, 1)
	go func() { rmDone <- s.Remove(context.Background(), "p1") }()
	<-b.entered
	assert.False(t, s.Has("p1"))

	close(b.gate)
	assert.Error(t, <-addDone)
	require.NoError(t, <-rmDone)

	assert.False(t, s.Has("p1"))
}

func TestStore_LoadKeepsPendingLocalState(t *testing.T) {
	b := &fakeBackend{gate: make(chan struct{}), entered: make(chan struct{}, 1)}
	s := newStore(b)

	done := make(chan error, 1)
	go func() { done <- s.Add(context.Background(), "p1") }()
	<-b.entered

	require.NoError(t, s.Load(context.Background()))
	assert.True(t, s.Has("p1"))

	close(b.gate)
	require.NoError(t, <-done)
}

func TestStore_Toggle(t *testing.T) {
	b := &fakeBackend{}
	s := newStore(b)
	ctx := context.Background()

	require.NoError(t, s.Toggle(ctx, "p1"))
	assert.True(t, s.Has("p1"))
	require.NoError(t, s.Toggle(ctx, "p1"))
	assert.False(t, s.Has("p1"))
	assert.Equal(t, 1, b.adds)
	assert.Equal(t, 1, b.removes)
}

func TestStore_SubscribeSignalsChanges(t *testing.T) {
	s := newStore(&fakeBackend{})
	ch, cancel := s.Subscribe()
	defer cancel()

	require.NoError(t, s.Add(context.Background(), "p1"))

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no change signal")
	}
}

func TestStore_CloseRejectsMutations(t *testing.T) {
	s := newStore(&fakeBackend{})
	ch, _ := s.Subscribe()
	s.Close()

	assert.ErrorIs(t, s.Add(context.Background(), "p1"), ErrClosed)
	_, open := <-ch
	assert.False(t, open)
}

func TestStore_StartWithInvalidReconcileSpec(t *testing.T) {
	s := NewStore(&fakeBackend{ids: []model.ID{"1"}}, model.GuestUser, zerolog.Nop(), WithReconcile("not a spec"))
	defer s.Close()

	assert.Error(t, s.Start(context.Background()))
	assert.Equal(t, []model.ID{"1"}, s.IDs())
}

func TestStore_StartWithReconcile(t *testing.T) {
	s := NewStore(&fakeBackend{ids: []model.ID{"1"}}, model.GuestUser, zerolog.Nop(), WithReconcile("@every 1h"))
	require.NoError(t, s.Start(context.Background()))
	s.Close()

	assert.Equal(t, []model.ID{"1"}, s.IDs())
}

type fakeRequester struct {
	getRaw   json.RawMessage
	lastPath string
	lastBody any
	lastQ    url.Values
}

func (f *fakeRequester) Get(ctx context.Context, path string, q url.Values) (json.RawMessage, error) {
	f.lastPath, f.lastQ = path, q
	return f.getRaw, nil
}

func (f *fakeRequester) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	f.lastPath, f.lastBody = path, body
	return json.RawMessage(`{}`), nil
}

func (f *fakeRequester) Delete(ctx context.Context, path string, q url.Values) (json.RawMessage, error) {
	f.lastPath, f.lastQ = path, q
	return json.RawMessage(`null`), nil
}

func TestAPI_ListDecodesNumericAndStringIDs(t *testing.T) {
	r := &fakeRequester{getRaw: json.RawMessage(`[{"id":"a","user_name":"guest","product_id":1},{"id":"b","user_name":"guest","product_id":"x"}]`)}
	ids, err := NewAPI(r).List(context.Background(), "guest")

	require.NoError(t, err)
	assert.Equal(t, []model.ID{"1", "x"}, ids)
	assert.Equal(t, "/api/favorites", r.lastPath)
	assert.Equal(t, "guest", r.lastQ.Get("user"))
}

func TestAPI_AddAndRemovePaths(t *testing.T) {
	r := &fakeRequester{}
	a := NewAPI(r)

	require.NoError(t, a.Add(context.Background(), "guest", "5"))
	assert.Equal(t, "/api/favorites", r.lastPath)
	assert.Equal(t, map[string]any{"user_name": "guest", "product_id": model.ID("5")}, r.lastBody)

	require.NoError(t, a.Remove(context.Background(), "guest", "5"))
	assert.Equal(t, "/api/favorites/5", r.lastPath)
}

func TestStore_SubscribeAfterCloseIsClosed(t *testing.T) {
	s := newStore(&fakeBackend{})
	s.Close()

	ch, cancel := s.Subscribe()
	defer cancel()

	select {
	case _, open := <-ch:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("subscription after Close was not closed")
	}
}

func TestStore_AddFailureLogsRollback(t *testing.T) {
	var buf bytes.Buffer
	b := &fakeBackend{addErr: errors.New("boom")}
	s := NewStore(b, model.GuestUser, logger.NewWithWriter(&buf, "glow-test", "info"))

	assert.Error(t, s.Add(context.Background(), "p1"))
	assert.Contains(t, buf.String(), "add favorite failed")
	assert.Contains(t, buf.String(), `"rolled_back":true`)
}
