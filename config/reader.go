package config

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"io"
	"os"
)

func ReadYAMLFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Failed to open a config file, path=%q, error: %v", path, err)
	}
	defer file.Close()

	c, err := ReadYAML(file)
	if err != nil {
		return nil, fmt.Errorf("Failed to parse a YAML config file, path=%q, error: %v", path, err)
	}
	return c, nil
}

// ReadYAML decodes a config over the defaults. An empty document yields the defaults.
func ReadYAML(r io.Reader) (*Config, error) {
	c := NewConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return nil, err
	}
	return c, nil
}
