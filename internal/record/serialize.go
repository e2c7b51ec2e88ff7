// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package record

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ameshkin/superlogger/internal/config"
)

// Serializer renders structured values as indented text.
type Serializer interface {
	Serialize(v any) (string, error)
}

var (
	_ Serializer = jsonSerializer{}
	_ Serializer = yamlSerializer{}
)

type jsonSerializer struct{}

func (jsonSerializer) Serialize(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type yamlSerializer struct{}

func (yamlSerializer) Serialize(v any) (string, error) {
	builder := new(strings.Builder)
	encoder := yaml.NewEncoder(builder)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return "", err
	}
	if err := encoder.Close(); err != nil {
		return "", err
	}
	return strings.TrimSuffix(builder.String(), "\n"), nil
}

// NewSerializer returns the serializer for format, or nil for the plain format.
func NewSerializer(format config.PayloadFormat) Serializer {
	switch format {
	case config.FormatJSON:
		return jsonSerializer{}
	case config.FormatYAML:
		return yamlSerializer{}
	default:
		return nil
	}
}
