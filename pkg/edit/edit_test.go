package edit

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/jsongraph/pkg/document"
	"github.com/matzehuels/jsongraph/pkg/errors"
	"github.com/matzehuels/jsongraph/pkg/graph"
	"github.com/matzehuels/jsongraph/pkg/jsonvalue"
)

func TestCoerceScalar(t *testing.T) {
	tests := []struct {
		in   string
		want jsonvalue.Value
	}{
		{"true", true},
		{"false", false},
		{"null", nil},
		{" true", " true"},
		{"", ""},
		{"   ", ""},
		{" 42 ", json.Number("42")},
		{"1e3", json.Number("1000")},
		{"-0", json.Number("0")},
		{".5", json.Number("0.5")},
		{"1.50", json.Number("1.5")},
		{"1e21", json.Number("1e+21")},
		{"+3e-2", json.Number("0.03")},
		{"+", "+"},
		{"1.", json.Number("1")},
		{"0x10", "0x10"},
		{"1e400", "1e400"},
		{"Infinity", "Infinity"},
		{"hello world", "hello world"},
		{`{"a":1}`, `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Coerce(tt.in, ModeScalar)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceRaw(t *testing.T) {
	got, err := Coerce(` {"a":1,"b":[true]} `, ModeRaw)
	require.NoError(t, err)
	obj, ok := got.(*jsonvalue.Object)
	require.True(t, ok, "got %T", got)
	assert.Equal(t, []string{"a", "b"}, obj.Keys())

	got, err = Coerce("[1,2]", ModeRaw)
	require.NoError(t, err)
	assert.Equal(t, []any{json.Number("1"), json.Number("2")}, got)

	for in, want := range map[string]jsonvalue.Value{
		" hi ":  "hi",
		"null":  nil,
		" 7 ":   json.Number("7"),
		"false": false,
		"":      "",
	} {
		got, err := Coerce(in, ModeRaw)
		require.NoError(t, err)
		assert.Equal(t, want, got, "Coerce(%q)", in)
	}

	_, err = Coerce(`{bad`, ModeRaw)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestCoerceStrict(t *testing.T) {
	got, err := Coerce(` "hi" `, ModeStrict)
	require.NoError(t, err)
	assert.Equal(t, "hi", got)

	got, err = Coerce(" 5 ", ModeStrict)
	require.NoError(t, err)
	assert.Equal(t, json.Number("5"), got)

	_, err = Coerce("hi", ModeStrict)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" RAW ")
	require.NoError(t, err)
	assert.Equal(t, ModeRaw, m)

	_, err = ParseMode("loose")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidMode))

	_, err = Coerce("x", Mode("loose"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidMode))
}

func TestNodeValueAndText(t *testing.T) {
	objectRows := []graph.Row{
		{Key: "name", Value: "Bob", Type: graph.TypeString},
		{Key: "tags", Type: graph.TypeArray, ChildrenCount: 2},
		{Key: "age", Value: json.Number("30"), Type: graph.TypeNumber},
	}
	keyless := []graph.Row{{Value: json.Number("2.50"), Type: graph.TypeNumber}}

	assert.Nil(t, NodeValue(nil))
	assert.Equal(t, json.Number("2.50"), NodeValue(keyless))

	obj, ok := NodeValue(objectRows).(*jsonvalue.Object)
	require.True(t, ok)
	assert.Equal(t, []string{"name", "age"}, obj.Keys())

	assert.Equal(t, "{}", NodeText(nil))
	assert.Equal(t, "2.5", NodeText(keyless))
	assert.Equal(t, "{\n  \"name\": \"Bob\",\n  \"age\": 30\n}", NodeText(objectRows))
	assert.Equal(t, "{}", NodeText([]graph.Row{{Key: "o", Type: graph.TypeObject}}))
	assert.Equal(t, "null", NodeText([]graph.Row{{Type: graph.TypeNull}}))
}

func TestDisplayString(t *testing.T) {
	assert.Equal(t, "", DisplayString(nil))
	assert.Equal(t, "false", DisplayString(false))
	assert.Equal(t, "3", DisplayString(json.Number("3")))
	assert.Equal(t, "text", DisplayString("text"))
}

// fixture wires a store to a graph view the way the editor does.
type fixture struct {
	store *document.Store
	view  *graph.View
}

func newFixture(t *testing.T, text string) *fixture {
	t.Helper()
	view := graph.NewView(nil, nil)
	store := document.New(document.WithObservers(view))
	require.NoError(t, store.Replace(context.Background(), text))
	return &fixture{store: store, view: view}
}

func TestScalarEditorSave(t *testing.T) {
	f := newFixture(t, `{"user":{"age":"30"}}`)
	ed := NewScalarEditor(f.store, nil)

	ed.Open("user.age", "30")
	assert.True(t, ed.IsOpen())
	assert.Equal(t, "30", ed.Input())

	ed.SetInput("31")
	change, err := ed.Save(context.Background())
	require.NoError(t, err)
	require.NotNil(t, change)
	assert.False(t, ed.IsOpen())
	assert.JSONEq(t, `{"user":{"age":31}}`, f.store.Read())
}

func TestScalarEditorOpensEmptyForNull(t *testing.T) {
	ed := NewScalarEditor(document.New(), nil)
	ed.Open("a", nil)
	assert.Equal(t, "", ed.Input())
}

func TestScalarEditorStaysOpenOnError(t *testing.T) {
	f := newFixture(t, `{"a":"text"}`)
	ed := NewScalarEditor(f.store, nil)

	ed.Open("a.b", nil)
	ed.SetInput("1")
	_, err := ed.Save(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeUnresolvableAccessor))
	assert.True(t, ed.IsOpen())
	assert.Equal(t, "1", ed.Input())

	ed.Cancel()
	assert.False(t, ed.IsOpen())
	_, err = ed.Save(context.Background())
	assert.Error(t, err)
}

func TestSubtreeEditorMergesAndRefreshes(t *testing.T) {
	f := newFixture(t, `{"user":{"name":"Alice","address":{"city":"Oslo"}}}`)
	ed, err := NewSubtreeEditor(f.store, f.view, `$["user"]`)
	require.NoError(t, err)

	assert.Equal(t, `$["user"]`, ed.DisplayPath())
	assert.Equal(t, "user", ed.Accessor())
	assert.Equal(t, "{\n  \"name\": \"Alice\"\n}", ed.Content())

	ed.Edit()
	assert.True(t, ed.Editing())
	ed.SetText(`{"name":"Bob","age":30}`)
	_, err = ed.Save(context.Background())
	require.NoError(t, err)

	assert.False(t, ed.Editing())
	assert.JSONEq(t, `{"user":{"name":"Bob","address":{"city":"Oslo"},"age":30}}`, f.store.Read())
	assert.Equal(t, "{\n  \"name\": \"Bob\",\n  \"age\": 30\n}", ed.Content())
	assert.True(t, ed.Exists())
}

func TestSubtreeEditorReplace(t *testing.T) {
	f := newFixture(t, `{"user":{"name":"Alice","address":{"city":"Oslo"}}}`)
	ed, err := NewSubtreeEditor(f.store, f.view, `$["user"]`, WithReplace())
	require.NoError(t, err)

	ed.Edit()
	ed.SetText(`{"name":"Bob"}`)
	_, err = ed.Save(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"user":{"name":"Bob"}}`, f.store.Read())
}

func TestSubtreeEditorPrimitiveNode(t *testing.T) {
	f := newFixture(t, `{"tags":["a","b"]}`)
	ed, err := NewSubtreeEditor(f.store, f.view, `$["tags"][1]`)
	require.NoError(t, err)
	assert.Equal(t, "b", ed.Content())

	ed.Edit()
	ed.SetText("  12 ")
	_, err = ed.Save(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"tags":["a",12]}`, f.store.Read())
	assert.Equal(t, "12", ed.Content())
}

func TestSubtreeEditorInvalidJSON(t *testing.T) {
	f := newFixture(t, `{"user":{"name":"Alice"}}`)
	ed, err := NewSubtreeEditor(f.store, f.view, `$["user"]`)
	require.NoError(t, err)
	before := f.store.Read()

	ed.Edit()
	ed.SetText(`{"name":`)
	_, err = ed.Save(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
	assert.True(t, ed.Editing())
	assert.Equal(t, before, f.store.Read())

	ed.Cancel()
	assert.False(t, ed.Editing())
	assert.Equal(t, ed.Content(), ed.Text())
}

func TestSubtreeEditorRootNode(t *testing.T) {
	f := newFixture(t, `{"a":1}`)
	ed, err := NewSubtreeEditor(f.store, f.view, `$`)
	require.NoError(t, err)

	ed.Edit()
	ed.SetText(`{"a":2}`)
	_, err = ed.Save(context.Background())
	assert.True(t, errors.Is(err, errors.ErrCodeUnresolvableAccessor))
	assert.JSONEq(t, `{"a":1}`, f.store.Read())
}

func TestSubtreeEditorNodeGone(t *testing.T) {
	f := newFixture(t, `{"user":{"name":"Alice"}}`)
	ed, err := NewSubtreeEditor(f.store, f.view, `$["user"]`)
	require.NoError(t, err)

	ed.Edit()
	ed.SetText("nobody")
	_, err = ed.Save(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"user":"nobody"}`, f.store.Read())
	assert.False(t, ed.Exists())

	_, err = NewSubtreeEditor(f.store, f.view, `$["missing"]`)
	assert.True(t, errors.Is(err, errors.ErrCodeNodeNotFound))
}

func TestPortalClick(t *testing.T) {
	ed := NewScalarEditor(document.New(), nil)
	p := NewPortal(ed)

	raw := `42`
	require.True(t, p.Click(Target{Path: "a.b", RawValue: &raw}))
	assert.Equal(t, "a.b", ed.Accessor())
	assert.Equal(t, "42", ed.Input())

	bad := `{oops`
	require.True(t, p.Click(Target{Path: "x", RawValue: &bad}))
	assert.Equal(t, "{oops", ed.Input())

	require.True(t, p.Click(Target{Path: "y", Text: "  null  "}))
	assert.Equal(t, "", ed.Input())

	require.True(t, p.Click(Target{Path: "z", Text: " hi there "}))
	assert.Equal(t, "hi there", ed.Input())

	ed.Cancel()
	assert.False(t, p.Click(Target{Text: "1"}))
	assert.False(t, ed.IsOpen())
}

func TestPortalOpenNodeAndSave(t *testing.T) {
	f := newFixture(t, `{"list":[1,2]}`)
	p := NewPortal(NewScalarEditor(f.store, nil))

	assert.False(t, p.OpenNode("", 1))
	require.True(t, p.OpenNode("list[1]", json.Number("2")))
	p.Editor().SetInput("true")
	_, err := p.Editor().Save(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"list":[1,true]}`, f.store.Read())
}

func TestTargetFor(t *testing.T) {
	f := newFixture(t, `{"user":{"name":"Bob","tags":["a"]}}`)
	n, ok := f.view.Node(`$["user"]`)
	require.True(t, ok)

	target := TargetFor(n)
	assert.Equal(t, "user", target.Path)
	require.NotNil(t, target.RawValue)
	assert.JSONEq(t, `{"name":"Bob"}`, *target.RawValue)
	assert.Equal(t, "name: Bob\ntags [1 items]", target.Text)
}
