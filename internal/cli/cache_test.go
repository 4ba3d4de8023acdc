package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/jsongraph/pkg/cache"
	"github.com/matzehuels/jsongraph/pkg/config"
)

func TestCountEntries(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"ab/one.json", "ab/two.json", "cd/three.json"} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	if got := countEntries(dir); got != 3 {
		t.Errorf("countEntries() = %d, want 3", got)
	}
	if got := countEntries(filepath.Join(dir, "missing")); got != 0 {
		t.Errorf("countEntries(missing) = %d, want 0", got)
	}
}

func TestCacheClearCommand(t *testing.T) {
	env := newTestEnv(t)
	entry := filepath.Join(env.cacheDir, "ab", "entry.json")
	if err := os.MkdirAll(filepath.Dir(entry), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(entry, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := env.run("cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if _, err := os.Stat(entry); !os.IsNotExist(err) {
		t.Errorf("entry should be removed, stat error = %v", err)
	}
	if _, err := os.Stat(env.cacheDir); err != nil {
		t.Errorf("cache dir should be recreated: %v", err)
	}
}

func TestNewCacheBackends(t *testing.T) {
	newTestEnv(t)
	ctx := context.Background()
	c := New(io.Discard, LogInfo)

	cfg := config.Default()
	ch, err := c.newCache(ctx, cfg, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := ch.(*cache.FileCache); !ok {
		t.Errorf("file backend: got %T", ch)
	}

	ch, _ = c.newCache(ctx, cfg, true)
	if _, ok := ch.(*cache.NullCache); !ok {
		t.Errorf("--no-cache: got %T", ch)
	}

	cfg.Cache.Backend = config.BackendRedis
	cfg.Redis.Addr = "127.0.0.1:1"
	ch, err = c.newCache(ctx, cfg, false)
	if err != nil {
		t.Fatalf("unreachable redis should degrade, got %v", err)
	}
	if _, ok := ch.(*cache.NullCache); !ok {
		t.Errorf("unreachable redis: got %T", ch)
	}
}

func TestNewRunnerNamespace(t *testing.T) {
	newTestEnv(t)
	c := New(io.Discard, LogInfo)
	c.Config = config.Default()
	c.Config.Cache.Namespace = "team-a"

	r, err := c.newRunner(context.Background(), true)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	key := r.Keyer.GraphKey("abc", cache.GraphKeyOpts{Version: 1})
	if !strings.HasPrefix(key, "team-a:") {
		t.Errorf("GraphKey() = %q, want team-a: prefix", key)
	}
}
