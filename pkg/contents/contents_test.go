package contents

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/jsongraph/pkg/document"
	"github.com/matzehuels/jsongraph/pkg/errors"
)

func TestObserverForwardsInternalChanges(t *testing.T) {
	ctx := context.Background()
	sink := NewMemorySink()
	store := document.New(document.WithObservers(Observer(sink)))

	require.NoError(t, store.Replace(ctx, `{"a":1}`))
	assert.Empty(t, sink.History(), "external text is not written back")

	_, err := store.Mutate(ctx, "b", json.Number("2"))
	require.NoError(t, err)
	require.NoError(t, store.Clear(ctx))

	history := sink.History()
	require.Len(t, history, 1)
	assert.JSONEq(t, `{"a":1,"b":2}`, history[0].Text)
	assert.False(t, history[0].HasExternalChanges)
	assert.False(t, history[0].SkipDerivedUpdate)
	_, err = uuid.Parse(history[0].Revision)
	assert.NoError(t, err, "revision should be a UUID")
	assert.WithinDuration(t, time.Now(), history[0].UpdatedAt, time.Minute)
}

func TestObserverSkipsDerivedOnlyChanges(t *testing.T) {
	sink := NewMemorySink()
	obs := Observer(sink)

	err := obs.DocumentChanged(context.Background(), &document.Change{Text: "{}", SkipDerivedUpdate: true})
	require.NoError(t, err)
	assert.Empty(t, sink.History())
}

func TestFromChangeRevisionsDiffer(t *testing.T) {
	c := &document.Change{Text: `{"x":1}`}
	assert.NotEqual(t, FromChange(c).Revision, FromChange(c).Revision)
}

func TestMemorySinkLoad(t *testing.T) {
	ctx := context.Background()
	sink := NewMemorySink()

	_, err := sink.Load(ctx)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))

	require.NoError(t, sink.SetContents(ctx, Contents{Text: "1"}))
	require.NoError(t, sink.SetContents(ctx, Contents{Text: "2"}))
	c, err := sink.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2", c.Text)
}

func TestFileSink(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "doc.json")
	sink, err := NewFileSink(path)
	require.NoError(t, err)

	_, err = sink.Load(ctx)
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))

	require.NoError(t, sink.SetContents(ctx, Contents{Text: "{\n  \"a\": 1\n}"}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}\n", string(data))

	c, err := sink.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, string(data), c.Text)
	assert.True(t, c.HasExternalChanges)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files should be renamed away")
}

func TestFileSinkRejectsBadPath(t *testing.T) {
	_, err := NewFileSink("")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidPath))
}

func TestFileSinkWithStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"user":{"name":"Alice"}}`), 0o644))

	sink, err := NewFileSink(path)
	require.NoError(t, err)
	loaded, err := sink.Load(ctx)
	require.NoError(t, err)

	store := document.New(document.WithObservers(Observer(sink)))
	require.NoError(t, store.Replace(ctx, loaded.Text))

	_, err = store.Mutate(ctx, "user.name", "Bob")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"user":{"name":"Bob"}}`, string(data))
}

func TestNewRedisSinkValidatesID(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	_, err := NewRedisSink(client, "", "../etc")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))

	sink, err := NewRedisSink(client, "", "doc-1")
	require.NoError(t, err)
	assert.Equal(t, DefaultRedisPrefix+"doc-1", sink.Key())
}

func TestRedisSinkIntegration(t *testing.T) {
	addr := os.Getenv("JSONGRAPH_REDIS_ADDR")
	if addr == "" {
		t.Skip("JSONGRAPH_REDIS_ADDR not set")
	}
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	sink, err := NewRedisSink(client, "jsongraph-test:", uuid.NewString())
	require.NoError(t, err)
	defer sink.Close()
	defer client.Del(ctx, sink.Key())

	_, err = sink.Load(ctx)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))

	want := Contents{Text: `{"a":1}`, Revision: uuid.NewString(), UpdatedAt: time.Now().UTC().Truncate(time.Second)}
	require.NoError(t, sink.SetContents(ctx, want))

	got, err := sink.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want.Text, got.Text)
	assert.Equal(t, want.Revision, got.Revision)
	assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt))
}

func TestMongoSinkIntegration(t *testing.T) {
	uri := os.Getenv("JSONGRAPH_MONGO_URI")
	if uri == "" {
		t.Skip("JSONGRAPH_MONGO_URI not set")
	}
	ctx := context.Background()
	sink, err := ConnectMongo(ctx, uri, "jsongraph_test", "", uuid.NewString())
	require.NoError(t, err)
	defer sink.Close()
	defer sink.coll.Drop(ctx)

	_, err = sink.Load(ctx)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))

	require.NoError(t, sink.SetContents(ctx, Contents{Text: `{"a":1}`, Revision: "r1"}))
	require.NoError(t, sink.SetContents(ctx, Contents{Text: `{"a":2}`, Revision: "r2"}))

	got, err := sink.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, got.Text)
	assert.Equal(t, "r2", got.Revision)
}
