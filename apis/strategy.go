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

import (
	"reflect"

	"dirpx.dev/meta/node"
)

// Strategy is one pluggable cast step. A Resolver chains strategies in order
// (e.g., Identity -> Conv -> Arithmetic -> Interface -> Base).
type Strategy interface {
	// TryCast attempts to produce a value of type dst from v, whose node is
	// src. It returns (value, true) if handled; otherwise (invalid, false)
	// to fall through.
	TryCast(src *node.Type, v reflect.Value, dst reflect.Type) (reflect.Value, bool)
	// CanCast reports whether TryCast could handle the pair without
	// producing a value.
	CanCast(src *node.Type, dst reflect.Type) bool
}
