package testutil

import (
	"embed"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// TestdataFS holds the embedded test data files.
//
//go:embed testdata
var TestdataFS embed.FS

// ReadTestData reads and returns the content of an embedded test file.
func ReadTestData(name string) ([]byte, error) {
	path := fmt.Sprintf("testdata/%s", name)
	data, err := fs.ReadFile(TestdataFS, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read test data file '%s': %w", name, err)
	}
	return data, nil
}

// Case is one entry of a YAML case table.
type Case struct {
	Name  string `yaml:"name"`
	Input string `yaml:"input"`
	// Valid reports whether Input is expected to parse.
	Valid bool `yaml:"valid"`
	// Type is the expected kind of the parsed value, by its Type name.
	Type string `yaml:"type,omitempty"`
	// Compact is the expected compact rendering of a valid input.
	Compact string `yaml:"compact,omitempty"`
	// Reason is a fragment of the expected error message of an invalid input.
	Reason string `yaml:"reason,omitempty"`
}

// LoadCases decodes the YAML case table stored in the embedded file name.
func LoadCases(name string) ([]Case, error) {
	data, err := ReadTestData(name)
	if err != nil {
		return nil, err
	}
	var doc struct {
		Cases []Case `yaml:"cases"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode case table '%s': %w", name, err)
	}
	return doc.Cases, nil
}
