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

package builder

import (
	"dirpx.dev/meta/apis"
	"dirpx.dev/meta/registry"
	"dirpx.dev/meta/resolver"
	"dirpx.dev/meta/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds and returns a new apis.Registry based on the provided configuration
// and pre-existing registry. If a pre-existing registry is provided, its nodes are moved
// into the new registry as-is, so edges between them stay valid.
func (b *builder) BuildRegistry(cfg apis.Config, preg apis.Registry, _ any) apis.Registry {
	nreg := registry.New(cfg)
	if preg != nil {
		for _, n := range preg.Entries() {
			_ = nreg.Import(n)
		}
	}
	return nreg
}

// BuildResolver builds and returns a new apis.Resolver chaining the builtin cast
// strategies: identity, registered conversion, arithmetic, interface boxing and
// base traversal. ext may carry an apis.Strategy or []apis.Strategy appended
// after the builtins.
func (b *builder) BuildResolver(_ apis.Config, _ apis.Registry, _ apis.Resolver, ext any) apis.Resolver {
	strats := []apis.Strategy{
		strategy.NewIdentityStrategy(),
		strategy.NewConvStrategy(),
		strategy.NewArithmeticStrategy(),
		strategy.NewInterfaceStrategy(),
		strategy.NewBaseStrategy(),
	}
	switch x := ext.(type) {
	case apis.Strategy:
		strats = append(strats, x)
	case []apis.Strategy:
		strats = append(strats, x...)
	}
	return resolver.New(strats...)
}
