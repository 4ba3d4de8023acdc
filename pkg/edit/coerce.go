package edit

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/jsongraph/pkg/errors"
	"github.com/matzehuels/jsongraph/pkg/jsonvalue"
)

// Mode selects how Coerce interprets text.
type Mode string

const (
	// ModeScalar is the single-value input: literals and numbers are typed,
	// everything else is kept as the string typed.
	ModeScalar Mode = "scalar"

	// ModeRaw is the subtree input: trimmed, JSON when it starts with '{' or
	// '[', otherwise scalar rules on the trimmed text.
	ModeRaw Mode = "raw"

	// ModeStrict requires the trimmed text to be a JSON document.
	ModeStrict Mode = "strict"
)

// Modes lists the valid modes.
var Modes = []Mode{ModeScalar, ModeRaw, ModeStrict}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Modes {
		if m == known {
			return m, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidMode, "unknown mode %q (want scalar, raw or strict)", s)
}

// decimalRe matches the decimal numbers a JavaScript Number() call accepts,
// e.g. "1", "-2.5", ".5", "1.", "+3e-2".
var decimalRe = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// Coerce converts text into a JSON value according to mode.
//
// Errors:
//   - INVALID_INPUT: ModeRaw text starting with '{' or '[' that is not JSON,
//     or ModeStrict text that is not JSON. The parser message is kept.
//   - INVALID_MODE: unknown mode
func Coerce(text string, mode Mode) (jsonvalue.Value, error) {
	switch mode {
	case ModeScalar:
		return coerceScalar(text), nil
	case ModeRaw:
		trimmed := strings.TrimSpace(text)
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			return parseJSON(trimmed)
		}
		return coerceLiteral(trimmed), nil
	case ModeStrict:
		return parseJSON(strings.TrimSpace(text))
	}
	return nil, errors.New(errors.ErrCodeInvalidMode, "unknown mode %q", mode)
}

func parseJSON(text string) (jsonvalue.Value, error) {
	v, err := jsonvalue.Parse(text)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid JSON")
	}
	return v, nil
}

// coerceScalar matches literals exactly and keeps other text as typed.
func coerceScalar(text string) jsonvalue.Value {
	switch text {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}
	if n, ok := number(trimmed); ok {
		return n
	}
	return text
}

// coerceLiteral applies the literal and number rules to already trimmed text.
func coerceLiteral(trimmed string) jsonvalue.Value {
	switch trimmed {
	case "true":
		return true
	case "false":
		return false
	case "null":
		return nil
	}
	if n, ok := number(trimmed); ok {
		return n
	}
	return trimmed
}

// number parses s as a finite decimal number in canonical form.
func number(s string) (jsonvalue.Value, bool) {
	if !decimalRe.MatchString(s) {
		return nil, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return nil, false
	}
	return jsonvalue.Number(f), true
}
