package fs

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/richardhadden/metakit/pkg/core"
)

// Serializer defines how to read a manifest from a specific file format.
type Serializer interface {
	// Parse reads from r and returns a Manifest.
	Parse(r io.Reader) (*core.Manifest, error)
}

// DefaultSerializers returns the standard set of serializers keyed by file
// extension.
func DefaultSerializers(strict bool) map[string]Serializer {
	return map[string]Serializer{
		".json": NewJSONSerializer(strict),
		".yaml": NewYAMLSerializer(),
		".yml":  NewYAMLSerializer(),
	}
}

// --- YAML Serializer ---

// YAMLSerializer reads YAML manifest files.
type YAMLSerializer struct{}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{}
}

func (s *YAMLSerializer) Parse(r io.Reader) (*core.Manifest, error) {
	var m core.Manifest
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// --- JSON Serializer ---

// JSONSerializer reads JSON manifest files.
type JSONSerializer struct {
	// Strict enables strict number parsing (as json.Number) to avoid
	// precision loss on large integers. Manifest building coerces the
	// numbers back to int/float per field kind.
	Strict bool
}

// NewJSONSerializer creates a new JSON serializer.
func NewJSONSerializer(strict bool) *JSONSerializer {
	return &JSONSerializer{Strict: strict}
}

func (s *JSONSerializer) Parse(r io.Reader) (*core.Manifest, error) {
	var m core.Manifest
	dec := json.NewDecoder(r)
	if s.Strict {
		dec.UseNumber()
	}
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}
