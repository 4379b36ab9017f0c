package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tjjh89017/graylog-manage-go/internal/config"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedOutput = errors.New("unsupported output format")
)

// Serializer writes a result document.
type Serializer interface {
	Serialize(w io.Writer, v any) error
}

var _ Serializer = &JSONSerializer{}
var _ Serializer = &YAMLSerializer{}

func NewSerializer(format string) (Serializer, error) {
	switch format {
	case config.OutputJSON, "":
		return &JSONSerializer{Indent: "  "}, nil
	case config.OutputYAML:
		return &YAMLSerializer{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedOutput, format)
	}
}

type JSONSerializer struct {
	Indent string
}

func (s *JSONSerializer) Serialize(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", s.Indent)
	return encoder.Encode(v)
}

// YAMLSerializer renders the JSON form of a value as block style YAML,
// keeping the key order of the JSON document.
type YAMLSerializer struct{}

func (s *YAMLSerializer) Serialize(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	blockStyle(&doc)

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return err
	}
	return encoder.Close()
}

func blockStyle(node *yaml.Node) {
	node.Style = 0
	for _, child := range node.Content {
		blockStyle(child)
	}
}
