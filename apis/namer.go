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

// Namer lets a type choose the name its reflection node is identified by.
//
// # Overview
//
// When a type implements Namer, its node's default identifier is the hash
// of TypeName() instead of the hash of the Go type path. This keeps ids
// stable when a type moves between packages:
//
//	type User struct{ ID string }
//
//	func (User) TypeName() string { return "domain.user" }
//
// An explicit Factory.Type(id) call always overrides the default.
//
// # Contract
//
//   - The returned name MUST be non-empty and deterministic for a given
//     concrete type; it MUST NOT depend on instance state.
//   - TypeName is called on the zero value of the type, so it MUST NOT
//     dereference fields that are nil in the zero value.
//   - Implementations MUST NOT perform blocking operations or I/O.
type Namer interface {
	// TypeName returns the canonical, type-level name for the type.
	TypeName() string
}
