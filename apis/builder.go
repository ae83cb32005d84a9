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

package apis

// Builder assembles the Registry and Resolver behind a context. It runs
// whenever a context is derived through With, WithBuilder or Configure.
type Builder interface {
	// BuildRegistry returns the registry for a derived context. When reg is
	// non-nil the type nodes it holds are carried over by identity, in
	// registration order, so base edges and template arguments that point
	// at them stay canonical in the result. Tombstones left by a reset are
	// not carried over. ext is passed through from WithBuilder.
	BuildRegistry(cfg Config, reg Registry, ext any) Registry
	// BuildResolver returns the cast resolver for reg. res is the resolver
	// of the context being derived, or nil for a fresh one. ext may add
	// strategies after the builtin chain.
	BuildResolver(cfg Config, reg Registry, res Resolver, ext any) Resolver
}
