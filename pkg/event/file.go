package event

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a dataset file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the encoding from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("event: unsupported dataset file %q (want .json, .yaml or .yml)", path)
	}
}

// Marshal encodes d.
func Marshal(d *Dataset, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return json.MarshalIndent(d, "", "  ")
	case FormatYAML:
		return yaml.Marshal(d)
	default:
		return nil, fmt.Errorf("event: unknown format %q", f)
	}
}

// Unmarshal decodes a dataset.
func Unmarshal(data []byte, f Format) (*Dataset, error) {
	var d Dataset
	var err error
	switch f {
	case FormatJSON:
		err = json.Unmarshal(data, &d)
	case FormatYAML:
		err = yaml.Unmarshal(data, &d)
	default:
		return nil, fmt.Errorf("event: unknown format %q", f)
	}
	if err != nil {
		return nil, fmt.Errorf("event: decode %s dataset: %w", f, err)
	}
	return NewDataset(d.Events, d.Regions), nil
}

// WriteFile saves d to path in the format its extension names.
func WriteFile(path string, d *Dataset) error {
	f, err := FormatFor(path)
	if err != nil {
		return err
	}
	data, err := Marshal(d, f)
	if err != nil {
		return fmt.Errorf("event: encode dataset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("event: write %s: %w", path, err)
	}
	return nil
}

// ReadFile loads a dataset from path.
func ReadFile(path string) (*Dataset, error) {
	f, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("event: read %s: %w", path, err)
	}
	return Unmarshal(data, f)
}
