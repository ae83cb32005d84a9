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

// NewConvStrategy creates an apis.Strategy that applies conversions
// registered directly on the source node.
func NewConvStrategy() apis.Strategy {
	return convStrategy{}
}

type convStrategy struct{}

var _ apis.Strategy = convStrategy{}

// TryCast runs the registered conversion to dst. A conversion that fails
// leaves the cast unhandled.
func (convStrategy) TryCast(src *node.Type, v reflect.Value, dst reflect.Type) (reflect.Value, bool) {
	if src == nil || !v.IsValid() {
		return reflect.Value{}, false
	}
	c := src.Conv(dst)
	if c == nil {
		return reflect.Value{}, false
	}
	out, err := c.Conv(v)
	if err != nil || !out.IsValid() {
		return reflect.Value{}, false
	}
	return owned(out), true
}

// CanCast reports whether src has a registered conversion to dst.
func (convStrategy) CanCast(src *node.Type, dst reflect.Type) bool {
	return src != nil && src.Conv(dst) != nil
}
