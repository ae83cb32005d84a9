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
	"log/slog"

	"dirpx.dev/meta/apis"
	"dirpx.dev/meta/policy"
)

const (
	// DefaultSmallBufferSize is the default for SmallBufferSize: two machine
	// words, enough for a string header, an interface or a pair of float64.
	DefaultSmallBufferSize = 16
	// DefaultStrict represents the default for Strict.
	// When false, contract violations fail soft.
	DefaultStrict = false
	// DefaultCheckBaseCycles represents the default for CheckBaseCycles.
	DefaultCheckBaseCycles = true
	// DefaultPolicy represents the default for DefaultPolicy.
	DefaultPolicy = policy.AsIs
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure SmallBufferSize is valid.
	if cfg.SmallBufferSize < 0 {
		cfg.SmallBufferSize = DefaultSmallBufferSize
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		SmallBufferSize: DefaultSmallBufferSize,
		Strict:          DefaultStrict,
		CheckBaseCycles: DefaultCheckBaseCycles,
		DefaultPolicy:   DefaultPolicy,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithSmallBufferSize sets the SmallBufferSize option.
// A negative value resets to the default; zero forces every value onto the heap.
func WithSmallBufferSize(size int) Option {
	return func(c *apis.Config) {
		if size < 0 {
			c.SmallBufferSize = DefaultSmallBufferSize
			return
		}
		c.SmallBufferSize = size
	}
}

// WithStrict sets the Strict option.
func WithStrict(strict bool) Option {
	return func(c *apis.Config) {
		c.Strict = strict
	}
}

// WithCheckBaseCycles sets the CheckBaseCycles option.
func WithCheckBaseCycles(check bool) Option {
	return func(c *apis.Config) {
		c.CheckBaseCycles = check
	}
}

// WithDefaultPolicy sets the DefaultPolicy option.
func WithDefaultPolicy(p policy.Policy) Option {
	return func(c *apis.Config) {
		c.DefaultPolicy = p
	}
}

// WithLogger sets the Logger option.
func WithLogger(l *slog.Logger) Option {
	return func(c *apis.Config) {
		c.Logger = l
	}
}

// Logger returns cfg.Logger, or a logger that discards everything.
func Logger(cfg apis.Config) *slog.Logger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	return slog.New(slog.DiscardHandler)
}
