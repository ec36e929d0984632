package data

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/waffle/pkg/errors"
)

// Format identifies a tabular encoding.
type Format string

// Supported dataset encodings.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatCSV  Format = "csv"
)

// FormatFromPath infers the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer data format from %q", filepath.Base(path))
	}
}

// rowsEnvelope is the keyed form accepted by json, yaml and toml:
// a top-level "rows" array of records.
type rowsEnvelope struct {
	Rows []map[string]any `json:"rows" yaml:"rows" toml:"rows"`
}

// Decode reads a dataset. JSON and YAML accept either a bare array of
// records or an object with a "rows" array; TOML requires [[rows]] tables;
// CSV requires a header row and parses numeric cells as float64.
func Decode(r io.Reader, format Format) (Dataset, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read dataset")
	}

	switch format {
	case FormatJSON:
		return decodeJSON(raw)
	case FormatYAML:
		return decodeYAML(raw)
	case FormatTOML:
		var env rowsEnvelope
		if _, err := toml.Decode(string(raw), &env); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode toml dataset")
		}
		return fromMaps(env.Rows), nil
	case FormatCSV:
		return decodeCSV(raw)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported data format %q", format)
	}
}

func decodeJSON(raw []byte) (Dataset, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var env rowsEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode json dataset")
		}
		return fromMaps(env.Rows), nil
	}
	var rows []map[string]any
	if err := json.Unmarshal(trimmed, &rows); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode json dataset")
	}
	return fromMaps(rows), nil
}

func decodeYAML(raw []byte) (Dataset, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode yaml dataset")
	}
	if len(node.Content) == 0 {
		return Dataset{}, nil
	}
	if node.Content[0].Kind == yaml.MappingNode {
		var env rowsEnvelope
		if err := node.Decode(&env); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode yaml dataset")
		}
		return fromMaps(env.Rows), nil
	}
	var rows []map[string]any
	if err := node.Decode(&rows); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode yaml dataset")
	}
	return fromMaps(rows), nil
}

func decodeCSV(raw []byte) (Dataset, error) {
	rd := csv.NewReader(bytes.NewReader(raw))
	rd.TrimLeadingSpace = true
	records, err := rd.ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode csv dataset")
	}
	if len(records) == 0 {
		return Dataset{}, nil
	}

	header := records[0]
	out := make(Dataset, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(Row, len(header))
		for i, name := range header {
			if i >= len(rec) || rec[i] == "" {
				continue
			}
			if f, err := strconv.ParseFloat(rec[i], 64); err == nil {
				row[name] = f
			} else {
				row[name] = rec[i]
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func fromMaps(rows []map[string]any) Dataset {
	out := make(Dataset, len(rows))
	for i, r := range rows {
		out[i] = Row(r)
	}
	return out
}
