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

package meta

import (
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/meta/apis"
	"dirpx.dev/meta/builder"
	"dirpx.dev/meta/config"
	"dirpx.dev/meta/node"
)

// init publishes the default context.
func init() {
	def.Store(NewContext())
}

// Context is one reflection universe: a registry of type nodes plus the
// resolver used to cast between them. A Context is an immutable snapshot;
// its registry is the only mutable part.
type Context struct {
	// cfg is the configuration the context was built with.
	cfg apis.Config
	// ext is the extension payload handed to the builder.
	ext any
	// reg maps type identities to nodes.
	reg apis.Registry
	// res casts values between nodes.
	res apis.Resolver
	// bld built reg and res.
	bld apis.Builder
	// log is tagged with component=meta.
	log *slog.Logger
}

// NewContext builds an independent context from options.
func NewContext(opts ...config.Option) *Context {
	return NewContextWith(config.NewConfig(opts...), nil, nil)
}

// NewContextWith builds an independent context with a custom builder.
// A nil builder selects the default one. ext is passed to the builder as-is.
func NewContextWith(cfg apis.Config, bld apis.Builder, ext any) *Context {
	if bld == nil {
		bld = builder.New()
	}
	return build(cfg, bld, nil, ext)
}

// build assembles a context, migrating nodes from prev when set.
func build(cfg apis.Config, bld apis.Builder, prev apis.Registry, ext any) *Context {
	reg := bld.BuildRegistry(cfg, prev, ext)
	if reg == nil {
		panic(ErrNilRegistry)
	}
	res := bld.BuildResolver(cfg, reg, nil, ext)
	if res == nil {
		panic(ErrNilResolver)
	}
	c := &Context{
		cfg: cfg,
		ext: ext,
		reg: reg,
		res: res,
		bld: bld,
		log: config.Logger(cfg).With("component", "meta"),
	}
	c.log.Debug("context built", "nodes", reg.Count())
	return c
}

// Config returns the configuration of c.
func (c *Context) Config() apis.Config { return c.cfg }

// Registry returns the node registry of c.
func (c *Context) Registry() apis.Registry { return c.reg }

// Resolver returns the cast resolver of c.
func (c *Context) Resolver() apis.Resolver { return c.res }

// Builder returns the builder that produced c.
func (c *Context) Builder() apis.Builder { return c.bld }

// With returns a new context for cfg. Nodes registered in c move to the new
// context; c must not be used for registration afterwards.
func (c *Context) With(cfg apis.Config) *Context {
	return build(cfg, c.bld, c.reg, c.ext)
}

// WithBuilder returns a new context rebuilt by b with the extension ext.
// Nodes registered in c move to the new context.
func (c *Context) WithBuilder(b apis.Builder, ext any) *Context {
	if b == nil {
		b = c.bld
	}
	return build(c.cfg, b, c.reg, ext)
}

// node returns the node for t, falling back to a detached node when t was
// reset so values of t can still be wrapped.
func (c *Context) node(t reflect.Type) *node.Type {
	if n := c.reg.Resolve(t); n != nil {
		return n
	}
	return c.reg.Detached(t)
}

// strict reports whether contract violations panic.
func (c *Context) strict() bool { return c.cfg.Strict }

// buildMu serializes writers of the default context so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// def is the default ambient context.
var def atomic.Pointer[Context]

// Default returns the ambient context used when a nil *Context is passed.
func Default() *Context {
	return def.Load()
}

// SetDefault replaces the ambient context. A nil c installs a fresh one.
func SetDefault(c *Context) {
	buildMu.Lock()
	defer buildMu.Unlock()
	if c == nil {
		c = NewContext()
	}
	def.Store(c)
}

// Configure rebuilds the ambient context with options applied on top of its
// current configuration. Registered nodes are kept.
func Configure(opts ...config.Option) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := def.Load()
	cfg := old.cfg
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	def.Store(old.With(cfg))
}

// orDefault returns c, or the ambient context when c is nil.
func orDefault(c *Context) *Context {
	if c != nil {
		return c
	}
	return Default()
}
