package render

import "testing"

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"svg", FormatSVG, false},
		{" DOT ", FormatDOT, false},
		{"Json", FormatJSON, false},
		{"pdf", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatContentType(t *testing.T) {
	if FormatSVG.ContentType() != "image/svg+xml" {
		t.Errorf("svg content type = %s", FormatSVG.ContentType())
	}
	if FormatDOT.Ext() != ".dot" {
		t.Errorf("dot ext = %s", FormatDOT.Ext())
	}
}
