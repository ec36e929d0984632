package demo

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/waffle/pkg/chart"
	"github.com/matzehuels/waffle/pkg/errors"
)

func TestEveryKindBuilds(t *testing.T) {
	for _, k := range chart.Kinds {
		t.Run(string(k), func(t *testing.T) {
			doc, err := Document(k, DefaultSeed)
			if err != nil {
				t.Fatalf("Document: %v", err)
			}
			c, err := doc.Chart()
			if err != nil {
				t.Fatalf("Chart: %v", err)
			}
			scene, err := c.Build(chart.Size{Width: Width, Height: Height})
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if scene.Empty() {
				t.Errorf("%s demo produced an empty scene", k)
			}
		})
	}
}

func TestDocumentIsDeterministic(t *testing.T) {
	for _, k := range []chart.Kind{chart.KindScatter, chart.KindBubble, chart.KindHeatmap} {
		a, _ := Document(k, 7)
		b, _ := Document(k, 7)
		c, _ := Document(k, 8)
		if a.Hash() != b.Hash() {
			t.Errorf("%s: same seed produced different documents", k)
		}
		if a.Hash() == c.Hash() {
			t.Errorf("%s: different seeds produced the same document", k)
		}
	}
}

func TestDocumentUnknownKind(t *testing.T) {
	if _, err := Document("gauge", 1); !errors.Is(err, errors.ErrCodeInvalidKind) {
		t.Errorf("Document(gauge) error = %v, want INVALID_KIND", err)
	}
}

func TestGalleryAndFilter(t *testing.T) {
	entries := Gallery(DefaultSeed)
	if len(entries) != len(chart.Kinds) {
		t.Fatalf("Gallery has %d entries, want %d", len(entries), len(chart.Kinds))
	}
	if entries[0].Kind != chart.Kinds[0] {
		t.Errorf("first entry = %s, want gallery order", entries[0].Kind)
	}

	tests := []struct {
		query, tag string
		want       int
	}{
		{"", "", len(entries)},
		{"chart", "Time-Series", 2},
		{"SANKEY", "", 1},
		{"", "flow", 2},
		{"nothing", "", 0},
	}
	for _, tt := range tests {
		if got := len(Filter(entries, tt.query, tt.tag)); got != tt.want {
			t.Errorf("Filter(%q, %q) = %d entries, want %d", tt.query, tt.tag, got, tt.want)
		}
	}

	tags := Tags(entries)
	for i := 1; i < len(tags); i++ {
		if tags[i-1] >= tags[i] {
			t.Fatalf("Tags not sorted and unique: %v", tags)
		}
	}
}

func TestWriteIndex(t *testing.T) {
	entries := Gallery(DefaultSeed)
	cards := Cards(entries, func(e Entry) string { return string(e.Kind) + ".svg" })

	var buf bytes.Buffer
	if err := WriteIndex(&buf, "Gallery <demo>", cards); err != nil {
		t.Fatalf("WriteIndex: %v", err)
	}
	html := buf.String()
	for _, want := range []string{
		"<title>Gallery &lt;demo&gt;</title>",
		`<img src="radial-bar.svg" alt="Radial Bar">`,
		`data-tags="Flow,Process"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("index missing %q", want)
		}
	}
}
