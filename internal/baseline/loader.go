package baseline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"planet-randomizer/internal/shared/errors"
)

// Load reads and validates a baseline from a YAML file.
func Load(path string) (*Baseline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading baseline file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML baseline.
func Parse(data []byte) (*Baseline, error) {
	var b Baseline
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, errors.WrapValidation("parsing baseline YAML", err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Marshal encodes a baseline as YAML.
func Marshal(b *Baseline) ([]byte, error) {
	data, err := yaml.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("encoding baseline YAML: %w", err)
	}
	return data, nil
}

// Resolve returns the baseline at path, or the stock Kerbol system when path is empty.
func Resolve(path string) (*Baseline, error) {
	if path == "" {
		return Kerbol(), nil
	}
	return Load(path)
}
