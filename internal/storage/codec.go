package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/valter-silva-au/smart-task-manager/pkg/models"
	"gopkg.in/yaml.v3"
)

// Codec turns the persisted task collection into bytes and back.
type Codec interface {
	Name() string
	Extension() string
	Encode(records []TaskRecord) ([]byte, error)
	Decode(data []byte) ([]TaskRecord, error)
}

// NewCodec returns the codec registered under format.
func NewCodec(format string) (Codec, error) {
	switch format {
	case "", models.FormatJSON:
		return jsonCodec{}, nil
	case models.FormatYAML:
		return yamlCodec{}, nil
	case models.FormatTOML:
		return tomlCodec{}, nil
	default:
		return nil, fmt.Errorf("unsupported storage format %q (use json, yaml, or toml)", format)
	}
}

// jsonCodec stores the collection as one top-level JSON array.
type jsonCodec struct{}

func (jsonCodec) Name() string      { return models.FormatJSON }
func (jsonCodec) Extension() string { return "json" }

func (jsonCodec) Encode(records []TaskRecord) ([]byte, error) {
	if records == nil {
		records = []TaskRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encoding JSON: %w", err)
	}
	return data, nil
}

func (jsonCodec) Decode(data []byte) ([]TaskRecord, error) {
	var records []TaskRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	return records, nil
}

// yamlCodec stores the collection as one top-level YAML sequence.
type yamlCodec struct{}

func (yamlCodec) Name() string      { return models.FormatYAML }
func (yamlCodec) Extension() string { return "yaml" }

func (yamlCodec) Encode(records []TaskRecord) ([]byte, error) {
	if records == nil {
		records = []TaskRecord{}
	}
	data, err := yaml.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}
	return data, nil
}

func (yamlCodec) Decode(data []byte) ([]TaskRecord, error) {
	var records []TaskRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding YAML: %w", err)
	}
	return records, nil
}

// tomlDocument wraps the collection because a TOML document must be a table.
type tomlDocument struct {
	Tasks []TaskRecord `toml:"tasks"`
}

// tomlCodec stores the collection as a [[tasks]] array of tables.
type tomlCodec struct{}

func (tomlCodec) Name() string      { return models.FormatTOML }
func (tomlCodec) Extension() string { return "toml" }

func (tomlCodec) Encode(records []TaskRecord) ([]byte, error) {
	if records == nil {
		records = []TaskRecord{}
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(tomlDocument{Tasks: records}); err != nil {
		return nil, fmt.Errorf("encoding TOML: %w", err)
	}
	return buf.Bytes(), nil
}

func (tomlCodec) Decode(data []byte) ([]TaskRecord, error) {
	var doc tomlDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding TOML: %w", err)
	}
	return doc.Tasks, nil
}
