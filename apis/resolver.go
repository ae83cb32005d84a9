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

// Resolver coordinates strategies to cast erased values between types.
// Typical chain: Identity -> Conv -> Arithmetic -> Interface -> Base.
type Resolver interface {
	// Cast returns v converted to dst, or (invalid, false) if no strategy
	// handled the pair.
	Cast(src *node.Type, v reflect.Value, dst reflect.Type) (reflect.Value, bool)
	// CanCast reports whether Cast would succeed for values of src.
	CanCast(src *node.Type, dst reflect.Type) bool
}
