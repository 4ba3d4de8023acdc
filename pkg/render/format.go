package render

import (
	"fmt"
	"strings"
)

// Format is a rendered output format.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
)

// Formats lists the supported formats in the order they are documented.
var Formats = []Format{FormatSVG, FormatDOT, FormatJSON}

// ParseFormat parses a format name, ignoring case and surrounding space.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want svg, dot or json)", s)
}

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatJSON:
		return "application/json"
	}
	return "text/vnd.graphviz"
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string { return "." + string(f) }
