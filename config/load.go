/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"dirpx.dev/meta/apis"
	"dirpx.dev/meta/policy"
)

// File is the YAML representation of a configuration.
//
// Every field is optional; absent fields keep their defaults.
//
//	small_buffer_size: 32
//	strict: true
//	check_base_cycles: true
//	default_policy: cref
//	log_level: debug
type File struct {
	SmallBufferSize *int           `yaml:"small_buffer_size"`
	Strict          *bool          `yaml:"strict"`
	CheckBaseCycles *bool          `yaml:"check_base_cycles"`
	DefaultPolicy   *policy.Policy `yaml:"default_policy"`
	LogLevel        string         `yaml:"log_level"`
}

// LoadFile reads and parses a YAML configuration file from the given path.
func LoadFile(path string) (apis.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return apis.Config{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses YAML data into an apis.Config, starting from DefaultConfig.
func Parse(data []byte) (apis.Config, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return apis.Config{}, fmt.Errorf("config: failed to parse YAML: %w", err)
	}
	return f.Options()
}

// Options converts the file into a configuration.
func (f File) Options() (apis.Config, error) {
	var opts []Option
	if f.SmallBufferSize != nil {
		opts = append(opts, WithSmallBufferSize(*f.SmallBufferSize))
	}
	if f.Strict != nil {
		opts = append(opts, WithStrict(*f.Strict))
	}
	if f.CheckBaseCycles != nil {
		opts = append(opts, WithCheckBaseCycles(*f.CheckBaseCycles))
	}
	if f.DefaultPolicy != nil {
		opts = append(opts, WithDefaultPolicy(*f.DefaultPolicy))
	}
	if f.LogLevel != "" {
		level, err := parseLevel(f.LogLevel)
		if err != nil {
			return apis.Config{}, err
		}
		opts = append(opts, WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))))
	}
	return NewConfig(opts...), nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("config: unknown log level %q", s)
	}
}
