package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/jsongraph/pkg/config"
	"github.com/matzehuels/jsongraph/pkg/contents"
	"github.com/matzehuels/jsongraph/pkg/document"
	"github.com/matzehuels/jsongraph/pkg/errors"
	"github.com/matzehuels/jsongraph/pkg/graph"
	"github.com/matzehuels/jsongraph/pkg/pipeline"
)

// backendTimeout bounds connecting to a remote persistence backend.
const backendTimeout = 5 * time.Second

// workspace is one document file loaded into a store, with the graph view
// and (optionally) a persistence backend registered as observers.
type workspace struct {
	path   string
	file   *contents.FileSink
	sink   contents.Store
	store  *document.Store
	view   *graph.View
	runner *pipeline.Runner
	logger *log.Logger

	// cached reports whether the last derivation was a cache hit.
	cached bool
}

type openOptions struct {
	// create starts from "{}" when the file does not exist.
	create bool
	// persist registers the configured backend as an observer.
	persist bool
	noCache bool
}

// openWorkspace loads path into a new store. With a redis or mongo backend
// and persist set, contents already stored in the backend take precedence
// over the file.
func (c *CLI) openWorkspace(ctx context.Context, path string, opts openOptions) (*workspace, error) {
	if err := errors.ValidateFilePath(path); err != nil {
		return nil, err
	}
	file, err := contents.NewFileSink(path)
	if err != nil {
		return nil, err
	}
	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return nil, err
	}

	ws := &workspace{path: path, file: file, runner: runner, logger: c.Logger}
	ws.view = graph.NewView(graph.DeriverFunc(ws.derive), c.Logger)
	ws.store = document.New(document.WithLogger(c.Logger), document.WithObservers(ws.view))

	var sources []contents.Source
	if opts.persist {
		sink, err := c.openSink(ctx, file)
		if err != nil {
			runner.Close()
			return nil, err
		}
		ws.sink = sink
		if sink != nil && sink != contents.Store(file) {
			sources = append(sources, sink)
		}
	}
	sources = append(sources, file)

	text, err := loadText(ctx, sources, opts.create)
	if err != nil {
		ws.Close()
		return nil, err
	}
	if err := ws.store.Replace(ctx, text); err != nil {
		ws.Close()
		return nil, err
	}

	if ws.sink != nil {
		ws.store.Observe(contents.Observer(ws.sink))
	}
	c.Logger.Debug("document loaded", "path", path, "bytes", len(text), "nodes", ws.view.Graph().NodeCount())
	return ws, nil
}

func (ws *workspace) derive(ctx context.Context, text string) (*graph.Graph, error) {
	g, hit, err := ws.runner.Deriver.DeriveWithCacheInfo(ctx, text)
	ws.cached = hit
	return g, err
}

// Close releases the backend connection and the cache.
func (ws *workspace) Close() error {
	var err error
	if ws.sink != nil {
		err = ws.sink.Close()
	}
	if cerr := ws.runner.Close(); err == nil {
		err = cerr
	}
	return err
}

// loadText returns the first stored contents found, or "{}" when none is
// found and create is set.
func loadText(ctx context.Context, sources []contents.Source, create bool) (string, error) {
	var last error
	for _, src := range sources {
		c, err := src.Load(ctx)
		if err == nil {
			return c.Text, nil
		}
		if !errors.Is(err, errors.ErrCodeNotFound) && !errors.Is(err, errors.ErrCodeFileNotFound) {
			return "", err
		}
		last = err
	}
	if create {
		return document.Empty, nil
	}
	return "", last
}

// openSink connects the configured persistence backend. It returns nil for
// the "none" backend.
func (c *CLI) openSink(ctx context.Context, file *contents.FileSink) (contents.Store, error) {
	cfg := c.config()
	switch cfg.Persistence.Backend {
	case config.BackendNone:
		return nil, nil
	case config.BackendRedis:
		client := newRedisClient(cfg)
		pingCtx, cancel := context.WithTimeout(ctx, backendTimeout)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			client.Close()
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to redis at %s", cfg.Redis.Addr)
		}
		sink, err := contents.NewRedisSink(client, cfg.Redis.Key, cfg.Redis.DocumentID)
		if err != nil {
			client.Close()
			return nil, err
		}
		c.Logger.Debug("persisting to redis", "key", sink.Key())
		return sink, nil
	case config.BackendMongo:
		connCtx, cancel := context.WithTimeout(ctx, backendTimeout)
		defer cancel()
		sink, err := contents.ConnectMongo(connCtx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection, cfg.Mongo.DocumentID)
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("persisting to mongo", "database", cfg.Mongo.Database, "collection", cfg.Mongo.Collection)
		return sink, nil
	}
	return file, nil
}

func newRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
