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

// Package config holds the two configurations of the module: apis.Config,
// the runtime knobs of a Registry, and Generator, the settings of rttigen.
// Both are built with functional options and can be read from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"dirpx.dev/rtti/apis"
)

const (
	// DefaultIncludeBuiltins lets predeclared types resolve to their own name.
	DefaultIncludeBuiltins = true
	// DefaultMaxUnwrap is the unwrap depth used when none is set.
	DefaultMaxUnwrap = 8
	// MaxUnwrapLimit caps MaxUnwrap.
	MaxUnwrapLimit = 64
	// DefaultMapPreferElem prefers map value types as owners.
	DefaultMapPreferElem = true
)

// Option mutates an apis.Config under construction.
type Option func(*apis.Config)

// DefaultConfig returns the runtime defaults.
func DefaultConfig() apis.Config {
	return apis.Config{
		IncludeBuiltins: DefaultIncludeBuiltins,
		MaxUnwrap:       DefaultMaxUnwrap,
		MapPreferElem:   DefaultMapPreferElem,
	}
}

// NewConfig applies opts over DefaultConfig. The result is clamped: a
// negative MaxUnwrap becomes DefaultMaxUnwrap and anything above
// MaxUnwrapLimit becomes MaxUnwrapLimit.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return clamp(cfg)
}

func clamp(cfg apis.Config) apis.Config {
	switch {
	case cfg.MaxUnwrap < 0:
		cfg.MaxUnwrap = DefaultMaxUnwrap
	case cfg.MaxUnwrap > MaxUnwrapLimit:
		cfg.MaxUnwrap = MaxUnwrapLimit
	}
	return cfg
}

// WithIncludeBuiltins sets IncludeBuiltins.
func WithIncludeBuiltins(include bool) Option {
	return func(c *apis.Config) { c.IncludeBuiltins = include }
}

// WithMaxUnwrap sets MaxUnwrap. Zero keeps the depth chosen by Normalize.
func WithMaxUnwrap(depth int) Option {
	return func(c *apis.Config) { c.MaxUnwrap = depth }
}

// WithMapPreferElem sets MapPreferElem.
func WithMapPreferElem(prefer bool) Option {
	return func(c *apis.Config) { c.MapPreferElem = prefer }
}

// LoadConfig reads runtime knobs from a YAML file. Missing keys keep their
// default; unknown keys are an error. The result is clamped like NewConfig.
func LoadConfig(path string) (apis.Config, error) {
	cfg := DefaultConfig()
	if err := decodeFile(path, &cfg); err != nil {
		return DefaultConfig(), err
	}
	return clamp(cfg), nil
}

// decodeFile strictly decodes the YAML document in path into out.
// An empty file leaves out untouched.
func decodeFile(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("rtti(config): open %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("rtti(config): decode %s: %w", path, err)
	}
	return nil
}
