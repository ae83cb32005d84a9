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

package strategy

import (
	"reflect"

	"dirpx.dev/meta/apis"
	"dirpx.dev/meta/node"
)

// NewIdentityStrategy creates an apis.Strategy that accepts values already of
// the destination type.
func NewIdentityStrategy() apis.Strategy {
	return identityStrategy{}
}

// identityStrategy is a zero-cost fast path: same type, same storage.
type identityStrategy struct{}

// Ensure identityStrategy implements apis.Strategy.
var _ apis.Strategy = identityStrategy{}

// TryCast returns v unchanged when src describes dst.
func (identityStrategy) TryCast(src *node.Type, v reflect.Value, dst reflect.Type) (reflect.Value, bool) {
	if !src.Is(dst) || !v.IsValid() {
		return reflect.Value{}, false
	}
	return v, true
}

// CanCast reports whether src describes dst.
func (identityStrategy) CanCast(src *node.Type, dst reflect.Type) bool {
	return src.Is(dst)
}
