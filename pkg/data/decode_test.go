package data

import (
	"strings"
	"testing"

	"github.com/matzehuels/waffle/pkg/errors"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"json array", FormatJSON, `[{"month":"Jan","sales":120},{"month":"Feb","sales":95}]`},
		{"json envelope", FormatJSON, `{"rows":[{"month":"Jan","sales":120},{"month":"Feb","sales":95}]}`},
		{"yaml sequence", FormatYAML, "- month: Jan\n  sales: 120\n- month: Feb\n  sales: 95\n"},
		{"yaml envelope", FormatYAML, "rows:\n  - month: Jan\n    sales: 120\n  - month: Feb\n    sales: 95\n"},
		{"toml tables", FormatTOML, "[[rows]]\nmonth = \"Jan\"\nsales = 120\n\n[[rows]]\nmonth = \"Feb\"\nsales = 95\n"},
		{"csv", FormatCSV, "month,sales\nJan,120\nFeb,95\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Decode(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if len(d) != 2 {
				t.Fatalf("got %d rows, want 2", len(d))
			}
			if got := String("month")(d[0]); got != "Jan" {
				t.Errorf("month = %q, want Jan", got)
			}
			if got := Number("sales")(d[1]); got != 95 {
				t.Errorf("sales = %v, want 95", got)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"rows": [`), FormatJSON)
	if !errors.Is(err, errors.ErrCodeInvalidDataset) {
		t.Errorf("malformed json: got %v, want INVALID_DATASET", err)
	}

	_, err = Decode(strings.NewReader("a,b"), Format("xlsx"))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unknown format: got %v, want INVALID_FORMAT", err)
	}
}

func TestDecodeCSVSparseCells(t *testing.T) {
	d, err := Decode(strings.NewReader("a,b\n1,\n,x\n"), FormatCSV)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, ok := d[0]["b"]; ok {
		t.Error("empty cell should be absent from the row")
	}
	if Number("a")(d[1]) != 0 {
		t.Error("missing numeric cell should read as zero")
	}
	if String("b")(d[1]) != "x" {
		t.Error("non-numeric cell should stay a string")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		err  bool
	}{
		{"sales.json", FormatJSON, false},
		{"dir/sales.YML", FormatYAML, false},
		{"sales.yaml", FormatYAML, false},
		{"sales.toml", FormatTOML, false},
		{"sales.csv", FormatCSV, false},
		{"sales.xlsx", "", true},
	}

	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.err {
			t.Errorf("FormatFromPath(%q) error = %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
