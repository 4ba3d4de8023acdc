package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	// ErrTrailingData is returned when text continues after the first JSON value.
	ErrTrailingData = errors.New("unexpected data after top-level value")

	// ErrUnexpectedEnd is returned for empty or truncated input.
	ErrUnexpectedEnd = errors.New("unexpected end of JSON input")

	// ErrUnsupportedType is returned by Marshal for Go values outside the model.
	ErrUnsupportedType = errors.New("unsupported value type")
)

// Parse decodes text into a Value. Numbers are kept as json.Number and object
// key order is preserved. A repeated key keeps its first position and its
// last value.
func Parse(text string) (Value, error) {
	return ParseBytes([]byte(text))
}

// ParseBytes is Parse for a byte slice.
func ParseBytes(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, ErrTrailingData
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, ErrUnexpectedEnd
		}
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		obj := NewObject()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, unexpectedEOF(err)
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("invalid object key %v", keyTok)
			}
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj.Set(key, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, unexpectedEOF(err)
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, unexpectedEOF(err)
		}
		return arr, nil
	}
	return nil, fmt.Errorf("unexpected delimiter %q", delim)
}

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return ErrUnexpectedEnd
	}
	return err
}

// Marshal writes v as JSON with two-space indentation. Empty containers are
// written as {} and [].
func Marshal(v Value) ([]byte, error) {
	e := &encoder{indent: "  "}
	if err := e.encode(v, 0); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

// MarshalCompact writes v as JSON without insignificant whitespace.
func MarshalCompact(v Value) ([]byte, error) {
	e := &encoder{}
	if err := e.encode(v, 0); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

// Format is Marshal returning a string.
func Format(v Value) (string, error) {
	b, err := Marshal(v)
	return string(b), err
}

type encoder struct {
	buf    bytes.Buffer
	indent string
}

func (e *encoder) newline(depth int) {
	if e.indent == "" {
		return
	}
	e.buf.WriteByte('\n')
	for i := 0; i < depth; i++ {
		e.buf.WriteString(e.indent)
	}
}

func (e *encoder) colon() {
	e.buf.WriteByte(':')
	if e.indent != "" {
		e.buf.WriteByte(' ')
	}
}

func (e *encoder) encode(v Value, depth int) error {
	switch t := v.(type) {
	case nil:
		e.buf.WriteString("null")
	case bool:
		e.buf.WriteString(strconv.FormatBool(t))
	case string:
		writeString(&e.buf, t)
	case json.Number:
		// Out-of-range literals parse to ±Inf (or 0) with ErrRange and are
		// written the way JSON.stringify writes them.
		f, err := strconv.ParseFloat(string(t), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return fmt.Errorf("invalid number %q: %w", string(t), err)
		}
		e.buf.WriteString(FormatNumber(f))
	case float64:
		e.buf.WriteString(FormatNumber(t))
	case float32:
		e.buf.WriteString(FormatNumber(float64(t)))
	case int:
		e.buf.WriteString(strconv.Itoa(t))
	case int64:
		e.buf.WriteString(strconv.FormatInt(t, 10))
	case []any:
		if len(t) == 0 {
			e.buf.WriteString("[]")
			return nil
		}
		e.buf.WriteByte('[')
		for i, el := range t {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			e.newline(depth + 1)
			if err := e.encode(el, depth+1); err != nil {
				return err
			}
		}
		e.newline(depth)
		e.buf.WriteByte(']')
	case *Object:
		if t == nil {
			e.buf.WriteString("null")
			return nil
		}
		return e.encodeMembers(t.keys, func(k string) Value { return t.vals[k] }, depth)
	case map[string]any:
		return e.encodeMembers(sortedKeys(t), func(k string) Value { return t[k] }, depth)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
	return nil
}

func (e *encoder) encodeMembers(keys []string, get func(string) Value, depth int) error {
	if len(keys) == 0 {
		e.buf.WriteString("{}")
		return nil
	}
	e.buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.newline(depth + 1)
		writeString(&e.buf, k)
		e.colon()
		if err := e.encode(get(k), depth+1); err != nil {
			return err
		}
	}
	e.newline(depth)
	e.buf.WriteByte('}')
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

const hexDigits = "0123456789abcdef"

// writeString quotes s, escaping only what JSON requires. HTML characters and
// U+2028/U+2029 are left as-is.
func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch c {
			case '"':
				buf.WriteString(`\"`)
			case '\\':
				buf.WriteString(`\\`)
			case '\b':
				buf.WriteString(`\b`)
			case '\f':
				buf.WriteString(`\f`)
			case '\n':
				buf.WriteString(`\n`)
			case '\r':
				buf.WriteString(`\r`)
			case '\t':
				buf.WriteString(`\t`)
			default:
				if c < 0x20 {
					buf.WriteString(`\u00`)
					buf.WriteByte(hexDigits[c>>4])
					buf.WriteByte(hexDigits[c&0xf])
				} else {
					buf.WriteByte(c)
				}
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune(utf8.RuneError)
		} else {
			buf.WriteString(s[i : i+size])
		}
		i += size
	}
	buf.WriteByte('"')
}

// Quote returns s as a JSON string literal.
func Quote(s string) string {
	var buf bytes.Buffer
	writeString(&buf, s)
	return buf.String()
}

// Valid reports whether text is a single well-formed JSON value.
func Valid(text string) bool {
	_, err := Parse(strings.TrimSpace(text))
	return err == nil
}
