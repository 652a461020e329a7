// Copyright 2025 Ahmet Alp Balkan
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

const configEnv = "RELDATE_CONFIG"

// Config is the optional YAML config file. Unset fields leave the flag
// defaults in place and flags given on the command line always win.
type Config struct {
	Pattern       *string  `yaml:"pattern,omitempty"`
	NarrowPattern string   `yaml:"narrowPattern,omitempty"`
	WidePattern   string   `yaml:"widePattern,omitempty"`
	Width         *string  `yaml:"width,omitempty"`
	EndOfDay      *bool    `yaml:"endOfDay,omitempty"`
	Position      *string  `yaml:"position,omitempty"`
	Color         *string  `yaml:"color,omitempty"`
	Keys          []string `yaml:"keys,omitempty"`
}

// loadConfig reads the config file at path. An empty path returns an empty
// config.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	klog.V(1).InfoS("loaded config", "path", path)
	return cfg, nil
}
