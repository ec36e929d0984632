// Package document reads chart documents: a chart kind, the fields that map
// data onto visual channels, display options and the data itself, encoded
// as JSON, YAML or TOML.
//
// A minimal document:
//
//	kind: bar
//	keys: {x: month, series: [revenue]}
//	data:
//	  - {month: Jan, revenue: 120}
//	  - {month: Feb, revenue: 90}
//
// Tabular data may live in a separate file referenced by data_file,
// resolved relative to the document. Treemaps take a hierarchy, sankey
// diagrams a flow and chord diagrams a matrix instead of rows.
package document

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/waffle/pkg/chart"
	"github.com/matzehuels/waffle/pkg/data"
	"github.com/matzehuels/waffle/pkg/errors"
)

// Document is a decoded chart document.
type Document struct {
	Kind     string       `json:"kind" yaml:"kind" toml:"kind"`
	Title    string       `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Width    float64      `json:"width,omitempty" yaml:"width,omitempty" toml:"width,omitempty"`
	Height   float64      `json:"height,omitempty" yaml:"height,omitempty" toml:"height,omitempty"`
	Keys     Keys         `json:"keys" yaml:"keys" toml:"keys"`
	Options  Options      `json:"options" yaml:"options" toml:"options"`
	Data     data.Dataset `json:"data,omitempty" yaml:"data,omitempty" toml:"data,omitempty"`
	DataFile string       `json:"data_file,omitempty" yaml:"data_file,omitempty" toml:"data_file,omitempty"`

	Hierarchy *data.Node    `json:"hierarchy,omitempty" yaml:"hierarchy,omitempty" toml:"hierarchy,omitempty"`
	Flow      *data.Flow    `json:"flow,omitempty" yaml:"flow,omitempty" toml:"flow,omitempty"`
	Matrix    [][]float64   `json:"matrix,omitempty" yaml:"matrix,omitempty" toml:"matrix,omitempty"`
	Labels    []string      `json:"labels,omitempty" yaml:"labels,omitempty" toml:"labels,omitempty"`
}

// Keys names the dataset fields behind each visual channel. Which keys a
// kind needs is listed by [Required].
type Keys struct {
	X      string   `json:"x,omitempty" yaml:"x,omitempty" toml:"x,omitempty"`
	Y      string   `json:"y,omitempty" yaml:"y,omitempty" toml:"y,omitempty"`
	Z      string   `json:"z,omitempty" yaml:"z,omitempty" toml:"z,omitempty"`
	Series []string `json:"series,omitempty" yaml:"series,omitempty" toml:"series,omitempty"`
	Value  string   `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
	Label  string   `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Step   string   `json:"step,omitempty" yaml:"step,omitempty" toml:"step,omitempty"`
	Angle  string   `json:"angle,omitempty" yaml:"angle,omitempty" toml:"angle,omitempty"`
	Radius string   `json:"radius,omitempty" yaml:"radius,omitempty" toml:"radius,omitempty"`
	Column string   `json:"column,omitempty" yaml:"column,omitempty" toml:"column,omitempty"`
	Row    string   `json:"row,omitempty" yaml:"row,omitempty" toml:"row,omitempty"`
	Count  string   `json:"count,omitempty" yaml:"count,omitempty" toml:"count,omitempty"`
	Bins   string   `json:"bins,omitempty" yaml:"bins,omitempty" toml:"bins,omitempty"`
	Open   string   `json:"open,omitempty" yaml:"open,omitempty" toml:"open,omitempty"`
	High   string   `json:"high,omitempty" yaml:"high,omitempty" toml:"high,omitempty"`
	Low    string   `json:"low,omitempty" yaml:"low,omitempty" toml:"low,omitempty"`
	Close  string   `json:"close,omitempty" yaml:"close,omitempty" toml:"close,omitempty"`
	Bar    string   `json:"bar,omitempty" yaml:"bar,omitempty" toml:"bar,omitempty"`
	Line   string   `json:"line,omitempty" yaml:"line,omitempty" toml:"line,omitempty"`
}

// Options holds the display options. Zero values select each kind's
// defaults.
type Options struct {
	Colors    []string       `json:"colors,omitempty" yaml:"colors,omitempty" toml:"colors,omitempty"`
	Margins   *chart.Margins `json:"margins,omitempty" yaml:"margins,omitempty" toml:"margins,omitempty"`
	HideXAxis bool           `json:"hide_x_axis,omitempty" yaml:"hide_x_axis,omitempty" toml:"hide_x_axis,omitempty"`
	HideYAxis bool           `json:"hide_y_axis,omitempty" yaml:"hide_y_axis,omitempty" toml:"hide_y_axis,omitempty"`
	HideGrid  bool           `json:"hide_grid,omitempty" yaml:"hide_grid,omitempty" toml:"hide_grid,omitempty"`
	XLabel    string         `json:"x_label,omitempty" yaml:"x_label,omitempty" toml:"x_label,omitempty"`
	YLabel    string         `json:"y_label,omitempty" yaml:"y_label,omitempty" toml:"y_label,omitempty"`

	Mode        string  `json:"mode,omitempty" yaml:"mode,omitempty" toml:"mode,omitempty"`
	Padding     float64 `json:"padding,omitempty" yaml:"padding,omitempty" toml:"padding,omitempty"`
	Time        bool    `json:"time,omitempty" yaml:"time,omitempty" toml:"time,omitempty"`
	Curve       string  `json:"curve,omitempty" yaml:"curve,omitempty" toml:"curve,omitempty"`
	HideArea    bool    `json:"hide_area,omitempty" yaml:"hide_area,omitempty" toml:"hide_area,omitempty"`
	ShowColumns bool    `json:"show_columns,omitempty" yaml:"show_columns,omitempty" toml:"show_columns,omitempty"`

	InnerRadius    float64 `json:"inner_radius,omitempty" yaml:"inner_radius,omitempty" toml:"inner_radius,omitempty"`
	PadAngle       float64 `json:"pad_angle,omitempty" yaml:"pad_angle,omitempty" toml:"pad_angle,omitempty"`
	CornerRadius   float64 `json:"corner_radius,omitempty" yaml:"corner_radius,omitempty" toml:"corner_radius,omitempty"`
	ActiveOffset   float64 `json:"active_offset,omitempty" yaml:"active_offset,omitempty" toml:"active_offset,omitempty"`
	StartAngle     float64 `json:"start_angle,omitempty" yaml:"start_angle,omitempty" toml:"start_angle,omitempty"`
	EndAngle       float64 `json:"end_angle,omitempty" yaml:"end_angle,omitempty" toml:"end_angle,omitempty"`
	CenterTitle    string  `json:"center_title,omitempty" yaml:"center_title,omitempty" toml:"center_title,omitempty"`
	CenterSubtitle string  `json:"center_subtitle,omitempty" yaml:"center_subtitle,omitempty" toml:"center_subtitle,omitempty"`

	Levels    int     `json:"levels,omitempty" yaml:"levels,omitempty" toml:"levels,omitempty"`
	Color     string  `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Radius    float64 `json:"radius,omitempty" yaml:"radius,omitempty" toml:"radius,omitempty"`
	MinRadius float64 `json:"min_radius,omitempty" yaml:"min_radius,omitempty" toml:"min_radius,omitempty"`
	MaxRadius float64 `json:"max_radius,omitempty" yaml:"max_radius,omitempty" toml:"max_radius,omitempty"`

	ColorRange []string `json:"color_range,omitempty" yaml:"color_range,omitempty" toml:"color_range,omitempty"`
	Gap        float64  `json:"gap,omitempty" yaml:"gap,omitempty" toml:"gap,omitempty"`

	Tile        string  `json:"tile,omitempty" yaml:"tile,omitempty" toml:"tile,omitempty"`
	NodeWidth   float64 `json:"node_width,omitempty" yaml:"node_width,omitempty" toml:"node_width,omitempty"`
	NodePadding float64 `json:"node_padding,omitempty" yaml:"node_padding,omitempty" toml:"node_padding,omitempty"`
	Iterations  int     `json:"iterations,omitempty" yaml:"iterations,omitempty" toml:"iterations,omitempty"`

	Rows     int     `json:"rows,omitempty" yaml:"rows,omitempty" toml:"rows,omitempty"`
	Columns  int     `json:"columns,omitempty" yaml:"columns,omitempty" toml:"columns,omitempty"`
	Total    float64 `json:"total,omitempty" yaml:"total,omitempty" toml:"total,omitempty"`
	Rounding float64 `json:"rounding,omitempty" yaml:"rounding,omitempty" toml:"rounding,omitempty"`
	Max      float64 `json:"max,omitempty" yaml:"max,omitempty" toml:"max,omitempty"`

	UpColor   string `json:"up_color,omitempty" yaml:"up_color,omitempty" toml:"up_color,omitempty"`
	DownColor string `json:"down_color,omitempty" yaml:"down_color,omitempty" toml:"down_color,omitempty"`
	BarColor  string `json:"bar_color,omitempty" yaml:"bar_color,omitempty" toml:"bar_color,omitempty"`
	LineColor string `json:"line_color,omitempty" yaml:"line_color,omitempty" toml:"line_color,omitempty"`
}

// Format is a document encoding.
type Format string

// Supported document encodings.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath infers the document encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	f, err := data.FormatFromPath(path)
	if err != nil {
		return "", err
	}
	if f == data.FormatCSV {
		return "", errors.New(errors.ErrCodeInvalidFormat, "csv holds data, not documents: use data_file")
	}
	return Format(f), nil
}

// Decode reads a document. Referenced data files are not resolved; use
// [Load] or [Document.Resolve].
func Decode(r io.Reader, format Format) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "read document")
	}
	var doc Document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		err = dec.Decode(&doc)
		if err == io.EOF {
			err = nil
		}
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.Decode(string(raw), &doc)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				err = errors.New(errors.ErrCodeInvalidDocument, "unknown field %q", undecoded[0].String())
			}
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported document format %q", format)
	}
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode %s document", format)
	}
	doc.normalize()
	return &doc, nil
}

// Load reads the document at path and resolves its data file.
func Load(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open document %s", path)
	}
	defer f.Close()

	doc, err := Decode(f, format)
	if err != nil {
		return nil, err
	}
	if err := doc.Resolve(filepath.Dir(path)); err != nil {
		return nil, err
	}
	return doc, nil
}

// Resolve loads DataFile, relative to dir, into Data. Data given inline
// takes precedence.
func (d *Document) Resolve(dir string) error {
	if d.DataFile == "" || len(d.Data) > 0 {
		return nil
	}
	if err := errors.ValidatePath(d.DataFile); err != nil {
		return err
	}
	path := filepath.Join(dir, filepath.FromSlash(d.DataFile))
	format, err := data.FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "data file %s", d.DataFile)
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "open data file %s", d.DataFile)
	}
	defer f.Close()

	rows, err := data.Decode(f, format)
	if err != nil {
		return err
	}
	d.Data = rows
	return nil
}

// normalize converts decoder-specific value types so that every encoding
// yields the same rows.
func (d *Document) normalize() {
	for i, r := range d.Data {
		for k, v := range r {
			switch x := v.(type) {
			case int:
				r[k] = float64(x)
			case int64:
				r[k] = float64(x)
			case json.Number:
				r[k] = data.ToFloat(x)
			}
		}
		d.Data[i] = r
	}
}

// Hash returns a stable content hash of the document, including resolved
// data.
func (d *Document) Hash() string {
	raw, _ := json.Marshal(d)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// Size returns the document's preferred size, or def for unset dimensions.
func (d *Document) Size(def chart.Size) chart.Size {
	s := def
	if d.Width > 0 {
		s.Width = d.Width
	}
	if d.Height > 0 {
		s.Height = d.Height
	}
	return s
}

// Encode writes d as JSON.
func (d *Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
