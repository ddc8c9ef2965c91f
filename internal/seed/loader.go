package seed

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type YAMLLoader struct {
	reader io.Reader
}

func NewYAMLLoader(reader io.Reader) *YAMLLoader {
	return &YAMLLoader{reader: reader}
}

func (l *YAMLLoader) Load(validate bool) (*Fixtures, error) {
	decoder := yaml.NewDecoder(l.reader)
	decoder.KnownFields(true)

	var fixtures Fixtures
	if err := decoder.Decode(&fixtures); err != nil {
		return nil, fmt.Errorf("failed to decode fixtures: %w", err)
	}
	if validate {
		if err := fixtures.Validate(); err != nil {
			return nil, fmt.Errorf("invalid fixtures: %w", err)
		}
	}
	return &fixtures, nil
}

// LoadFile reads and validates the fixture file at path.
func LoadFile(path string) (*Fixtures, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return NewYAMLLoader(file).Load(true)
}
