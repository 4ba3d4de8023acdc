package errors

import (
	"strings"
	"testing"
)

func TestValidateAccessor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple key", "user", false},
		{"nested", "user.address.city", false},
		{"indexed", "items[0].name", false},
		{"unicode key", "naïve.café", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 5000), true},
		{"null byte", "a\x00b", true},
		{"newline", "a\nb", true},
		{"tab", "a\tb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAccessor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAccessor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidAccessor) {
				t.Errorf("ValidateAccessor(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidAccessor)
			}
		})
	}
}

func TestValidateFilePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "data.json", false},
		{"absolute", "/tmp/data.json", false},
		{"nested", "fixtures/users/data.json", false},

		{"empty", "", true},
		{"null byte", "data\x00.json", true},
		{"control char", "data\x01.json", true},
		{"too long", strings.Repeat("a", 5000), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDocumentID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "default", false},
		{"with colon", "team:settings", false},
		{"with dash and dot", "user-1.v2", false},

		{"empty", "", true},
		{"traversal", "a..b", true},
		{"leading dash", "-x", true},
		{"space", "a b", true},
		{"slash", "a/b", true},
		{"too long", strings.Repeat("a", 300), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocumentID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDocumentID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
