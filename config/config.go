package config

import (
	"fmt"
	"github.com/go-playground/validator/v10"
	"time"
)

type Config struct {
	Http  HttpConfig  `yaml:"http"`
	Files FilesConfig `yaml:"files"`
	Log   LogConfig   `yaml:"log"`
}

type HttpConfig struct {
	Listen          string        `yaml:"listen" validate:"required"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gte=0"`
}

// FilesConfig describes the fixture directory.
type FilesConfig struct {
	Dir string `yaml:"dir" validate:"required,dir"`

	// Marker is the extension which adds the X-Num-Entries header.
	Marker     string `yaml:"marker" validate:"required,startswith=.,excludesall=/\\"`
	NumEntries int    `yaml:"num_entries" validate:"gte=0"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=panic fatal error warn warning info debug trace"`

	// File enables rotated file output, stdout is used when empty.
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `yaml:"max_backups" validate:"gte=0"`
}

func NewConfig() *Config {
	return &Config{
		Http: HttpConfig{
			Listen:          ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Files: FilesConfig{
			Marker:     ".protobuf",
			NumEntries: 3,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("Invalid config, error: %v", err)
	}
	return nil
}
