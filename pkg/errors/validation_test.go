package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		wantErr       bool
	}{
		{"typical", 800, 600, false},
		{"zero means default", 0, 0, false},
		{"negative width", -1, 100, true},
		{"negative height", 100, -5, true},
		{"nan", math.NaN(), 100, true},
		{"inf", 100, math.Inf(1), true},
		{"too large", 50000, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(tt.width, tt.height)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimensions(%v, %v) error = %v, wantErr %v", tt.width, tt.height, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidOption) {
				t.Errorf("expected INVALID_OPTION, got %v", GetCode(err))
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"#a855f7", false},
		{"#fff", false},
		{"#0f172a80", false},
		{"steelblue", false},
		{"rgb(10, 20, 30)", false},
		{"hsl(214.3 31.8% 91.4%)", false},

		{"", true},
		{"#ggg", true},
		{"#12345", true},
		{`red" onload="x`, true},
		{"<script>", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePalette(t *testing.T) {
	if err := ValidatePalette([]string{"#a855f7", "#ec4899"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidatePalette([]string{"#a855f7", "nope!"}); err == nil {
		t.Error("expected error for invalid palette entry")
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "revenue", false},
		{"with spaces", "Monthly Revenue", false},
		{"empty", "", true},
		{"too long", strings.Repeat("k", 200), true},
		{"control char", "rev\x01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple file", "sales.csv", false},
		{"nested", "data/2024/sales.csv", false},

		{"empty", "", true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "../secrets.csv", true},
		{"backslash", "data\\sales.csv", true},
		{"null byte", "sales\x00.csv", true},
		{"too long", strings.Repeat("a", 600), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
