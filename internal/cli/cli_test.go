package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/jsongraph/pkg/config"
	"github.com/matzehuels/jsongraph/pkg/graph"
)

// testEnv isolates config and cache directories for command tests.
type testEnv struct {
	t        *testing.T
	dir      string
	cacheDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	return &testEnv{t: t, dir: dir, cacheDir: filepath.Join(dir, "cache", appName)}
}

func (e *testEnv) run(args ...string) error {
	e.t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func (e *testEnv) writeDoc(name, text string) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		e.t.Fatal(err)
	}
	return path
}

func (e *testEnv) readJSON(path string) map[string]any {
	e.t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		e.t.Fatal(err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		e.t.Fatalf("parse %s: %v\n%s", path, err, data)
	}
	return out
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"show", "get", "set", "clear", "graph", "render", "edit", "serve", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestSetMergesAndWritesBack(t *testing.T) {
	env := newTestEnv(t)
	doc := env.writeDoc("doc.json", `{"user":{"name":"Alice"}}`)

	if err := env.run("set", doc, "user", `{"name":"Bob","age":30}`); err != nil {
		t.Fatalf("set: %v", err)
	}

	got := env.readJSON(doc)
	user := got["user"].(map[string]any)
	if user["name"] != "Bob" || user["age"] != float64(30) {
		t.Errorf("user = %v, want name Bob age 30", user)
	}
}

func TestSetCreatesMissingFile(t *testing.T) {
	env := newTestEnv(t)
	doc := filepath.Join(env.dir, "new.json")

	if err := env.run("set", doc, "a.b[0].c", "5"); err != nil {
		t.Fatalf("set: %v", err)
	}
	data, _ := os.ReadFile(doc)
	want := "{\n  \"a\": {\n    \"b\": [\n      {\n        \"c\": 5\n      }\n    ]\n  }\n}\n"
	if string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}
}

func TestSetModes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want any
	}{
		{"default raw number", []string{"42"}, float64(42)},
		{"scalar keeps braces as text", []string{"{x", "--mode", "scalar"}, "{x"},
		{"strict string", []string{`"7"`, "--mode", "strict"}, "7"},
		{"boolean", []string{"true"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			doc := env.writeDoc("doc.json", `{}`)
			args := append([]string{"set", doc, "v"}, tt.args...)
			if err := env.run(args...); err != nil {
				t.Fatalf("set: %v", err)
			}
			if got := env.readJSON(doc)["v"]; got != tt.want {
				t.Errorf("v = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestSetErrorsLeaveFileUntouched(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"empty accessor", []string{"", "1"}},
		{"bad raw json", []string{"a", "{oops"}},
		{"bad mode", []string{"a", "1", "--mode", "loose"}},
		{"through primitive", []string{"s.x", "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			doc := env.writeDoc("doc.json", `{"s":"text"}`)
			args := append([]string{"set", doc}, tt.args...)
			if err := env.run(args...); err == nil {
				t.Fatal("expected an error")
			}
			data, _ := os.ReadFile(doc)
			if string(data) != `{"s":"text"}` {
				t.Errorf("file changed to %s", data)
			}
		})
	}
}

func TestSetDryRun(t *testing.T) {
	env := newTestEnv(t)
	doc := env.writeDoc("doc.json", `{"a":1}`)

	if err := env.run("set", doc, "a", "2", "--dry-run"); err != nil {
		t.Fatalf("set --dry-run: %v", err)
	}
	data, _ := os.ReadFile(doc)
	if string(data) != `{"a":1}` {
		t.Errorf("dry run wrote the file: %s", data)
	}
}

func TestSetWithNoneBackend(t *testing.T) {
	env := newTestEnv(t)
	cfg := config.Default()
	cfg.Persistence.Backend = config.BackendNone
	cfgPath := filepath.Join(env.dir, "jsongraph.toml")
	if err := cfg.Write(cfgPath); err != nil {
		t.Fatal(err)
	}
	doc := env.writeDoc("doc.json", `{"a":1}`)

	if err := env.run("--config", cfgPath, "set", doc, "a", "2"); err != nil {
		t.Fatalf("set: %v", err)
	}
	data, _ := os.ReadFile(doc)
	if string(data) != `{"a":1}` {
		t.Errorf("none backend wrote the file: %s", data)
	}
}

func TestMissingConfigFile(t *testing.T) {
	env := newTestEnv(t)
	doc := env.writeDoc("doc.json", `{}`)
	if err := env.run("--config", filepath.Join(env.dir, "nope.toml"), "show", doc); err == nil {
		t.Error("expected an error for a missing explicit config file")
	}
}

func TestClearCommand(t *testing.T) {
	env := newTestEnv(t)
	doc := env.writeDoc("doc.json", `{"a":[1,2]}`)

	if err := env.run("clear", doc); err != nil {
		t.Fatalf("clear: %v", err)
	}
	data, _ := os.ReadFile(doc)
	if strings.TrimSpace(string(data)) != "{}" {
		t.Errorf("file = %q, want {}", data)
	}
}

func TestShowAndGetRequireExistingFile(t *testing.T) {
	env := newTestEnv(t)
	missing := filepath.Join(env.dir, "missing.json")
	if err := env.run("show", missing); err == nil {
		t.Error("show: expected an error for a missing file")
	}
	if err := env.run("get", missing, "a"); err == nil {
		t.Error("get: expected an error for a missing file")
	}
}

func TestGetMissingValue(t *testing.T) {
	env := newTestEnv(t)
	doc := env.writeDoc("doc.json", `{"a":1}`)
	if err := env.run("get", doc, "b"); err == nil {
		t.Error("expected an error for a missing value")
	}
	if err := env.run("get", doc, "a", "-o", "xml"); err == nil {
		t.Error("expected an error for an unknown output format")
	}
}

func TestGraphCommand(t *testing.T) {
	env := newTestEnv(t)
	doc := env.writeDoc("doc.json", `{"user":{"name":"Bob"},"tags":["x","y"]}`)
	out := filepath.Join(env.dir, "graph.json")

	if err := env.run("graph", doc, "-o", out); err != nil {
		t.Fatalf("graph: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	g, err := graph.Read(f)
	if err != nil {
		t.Fatalf("read graph: %v", err)
	}
	if _, ok := g.Node(`$["tags"][1]`); !ok {
		t.Errorf("graph is missing the second tag node: %+v", g.Nodes)
	}
}

func TestRenderCommandDOT(t *testing.T) {
	env := newTestEnv(t)
	doc := env.writeDoc("doc.json", `{"user":{"name":"Bob"}}`)
	out := filepath.Join(env.dir, "doc.dot")

	if err := env.run("render", doc, "-o", out, "--detailed"); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "digraph") {
		t.Errorf("expected DOT output, got:\n%s", data)
	}
}

func TestRenderDefaultOutputPath(t *testing.T) {
	env := newTestEnv(t)
	doc := env.writeDoc("doc.json", `{"a":1}`)

	if err := env.run("render", doc, "-f", "json", "--no-cache"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := env.readJSON(doc); got["a"] != float64(1) {
		t.Errorf("input was overwritten: %v", got)
	}
	data, err := os.ReadFile(filepath.Join(env.dir, "doc.graph.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"nodes"`) {
		t.Errorf("expected graph JSON, got:\n%s", data)
	}
}

func TestDefaultOutput(t *testing.T) {
	tests := []struct {
		input  string
		format string
		want   string
	}{
		{"doc.json", "svg", "doc.svg"},
		{"dir/doc.json", "dot", "dir/doc.dot"},
		{"doc.json", "json", "doc.graph.json"},
		{"doc", "json", "doc.json"},
	}
	for _, tt := range tests {
		f, _ := formatFor(tt.format, "")
		if got := defaultOutput(tt.input, f); got != tt.want {
			t.Errorf("defaultOutput(%q, %s) = %q, want %q", tt.input, tt.format, got, tt.want)
		}
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		flag, output string
		want         string
		wantErr      bool
	}{
		{"", "", "svg", false},
		{"", "out.dot", "dot", false},
		{"", "out.JSON", "json", false},
		{"", "out.png", "svg", false},
		{"dot", "out.svg", "dot", false},
		{"gif", "", "", true},
	}
	for _, tt := range tests {
		got, err := formatFor(tt.flag, tt.output)
		if (err != nil) != tt.wantErr {
			t.Errorf("formatFor(%q, %q) error = %v, wantErr %v", tt.flag, tt.output, err, tt.wantErr)
			continue
		}
		if string(got) != tt.want {
			t.Errorf("formatFor(%q, %q) = %q, want %q", tt.flag, tt.output, got, tt.want)
		}
	}
}

func TestBasePath(t *testing.T) {
	if got := basePath("dir/doc.json"); got != "dir/doc" {
		t.Errorf("basePath() = %q, want dir/doc", got)
	}
	if got := basePath("doc"); got != "doc" {
		t.Errorf("basePath() = %q, want doc", got)
	}
}
