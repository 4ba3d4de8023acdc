package accessor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		path Path
		want string
	}{
		{"root", Path{}, ""},
		{"single key", Path{Key("user")}, "user"},
		{"nested keys", Path{Key("user"), Key("name")}, "user.name"},
		{"key then index", Path{Key("tags"), Index(0)}, "tags[0]"},
		{"leading index", Path{Index(0), Key("a")}, "[0].a"},
		{"mixed", Path{Key("a"), Index(2), Key("b"), Index(10)}, "a[2].b[10]"},
		{"consecutive indices", Path{Key("m"), Index(1), Index(2)}, "m[1][2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.path))
			assert.Equal(t, tt.want, tt.path.String())
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Path
	}{
		{"empty", "", Path{}},
		{"single key", "user", Path{Key("user")}},
		{"nested", "user.name", Path{Key("user"), Key("name")}},
		{"index", "tags[0]", Path{Key("tags"), Index(0)}},
		{"leading index", "[0].a", Path{Index(0), Key("a")}},
		{"stray separators", "..a..[[1]]", Path{Key("a"), Index(1)}},
		{"only separators", ".[].", Path{}},
		{"numeric key becomes index", "years.2024", Path{Key("years"), Index(2024)}},
		{"mixed alnum stays key", "v2", Path{Key("v2")}},
		{"negative stays key", "a[-1]", Path{Key("a"), Key("-1")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.in))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	paths := []Path{
		{Key("a")},
		{Key("a"), Key("b"), Index(0), Key("c")},
		{Index(3)},
		{Index(0), Index(1), Key("x")},
		{Key("user"), Key("address"), Key("city")},
	}

	for _, p := range paths {
		t.Run(Encode(p), func(t *testing.T) {
			assert.True(t, p.Equal(Decode(Encode(p))), "Decode(Encode(%v)) = %v", p, Decode(Encode(p)))
		})
	}
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "$", Display(nil))
	assert.Equal(t, "$", Display(Path{}))
	assert.Equal(t, `$["customer"][0]`, Display(Path{Key("customer"), Index(0)}))
	assert.Equal(t, `$[1]["a"]["b"]`, Display(Path{Index(1), Key("a"), Key("b")}))
	assert.Equal(t, `$["say \"hi\""]`, Display(Path{Key(`say "hi"`)}))
}

func TestDisplayIsInjective(t *testing.T) {
	nested := Path{Key("a"), Key("b")}
	tricky := Path{Key(`a"]["b`)}
	assert.Equal(t, `$["a"]["b"]`, Display(nested))
	assert.Equal(t, `$["a\"][\"b"]`, Display(tricky))
	assert.NotEqual(t, Display(nested), Display(tricky))
}

func TestPathHelpers(t *testing.T) {
	p := Path{Key("a"), Index(1)}

	child := p.Append(Key("b"))
	assert.Equal(t, "a[1].b", child.String())
	assert.Equal(t, "a[1]", p.String(), "Append must not modify the receiver")

	assert.Equal(t, p, child.Parent())
	assert.True(t, Path{}.Parent().IsRoot())

	last, ok := child.Last()
	assert.True(t, ok)
	assert.Equal(t, "b", last.Key())
	assert.False(t, last.IsIndex())

	_, ok = Path{}.Last()
	assert.False(t, ok)

	assert.True(t, p.Equal(Path{Key("a"), Index(1)}))
	assert.False(t, p.Equal(Path{Key("a"), Key("1")}))
	assert.False(t, p.Equal(Path{Key("a")}))
}

func TestSegment(t *testing.T) {
	idx := Index(7)
	assert.True(t, idx.IsIndex())
	assert.Equal(t, 7, idx.Index())
	assert.Equal(t, "7", idx.Key())

	key := Key("name")
	assert.False(t, key.IsIndex())
	assert.Equal(t, -1, key.Index())
	assert.Equal(t, "name", key.String())
}

func TestPathJSON(t *testing.T) {
	p := Path{Key("user"), Index(0), Key("name")}

	data, err := json.Marshal(p)
	assert.NoError(t, err)
	assert.Equal(t, `["user",0,"name"]`, string(data))

	var back Path
	assert.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, p.Equal(back))

	assert.Error(t, json.Unmarshal([]byte(`[1.5]`), &back))
	assert.Error(t, json.Unmarshal([]byte(`[-1]`), &back))
	assert.Error(t, json.Unmarshal([]byte(`[true]`), &back))
}
