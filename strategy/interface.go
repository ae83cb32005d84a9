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

// NewInterfaceStrategy creates an apis.Strategy boxing values into the
// interfaces they implement.
func NewInterfaceStrategy() apis.Strategy {
	return interfaceStrategy{}
}

// interfaceStrategy prefers the value's own method set and falls back to
// the pointer method set when the value is addressable, so the interface
// aliases the original storage.
type interfaceStrategy struct{}

var _ apis.Strategy = interfaceStrategy{}

// TryCast boxes v (or its address) into a new value of interface type dst.
func (interfaceStrategy) TryCast(src *node.Type, v reflect.Value, dst reflect.Type) (reflect.Value, bool) {
	if src == nil || !v.IsValid() || dst == nil || dst.Kind() != reflect.Interface {
		return reflect.Value{}, false
	}
	out := reflect.New(dst).Elem()
	switch {
	case src.Info.Implements(dst):
		out.Set(v)
	case v.CanAddr() && reflect.PointerTo(src.Info).Implements(dst):
		out.Set(v.Addr())
	default:
		return reflect.Value{}, false
	}
	return out, true
}

// CanCast reports whether src or *src implements dst.
func (interfaceStrategy) CanCast(src *node.Type, dst reflect.Type) bool {
	if src == nil || dst == nil || dst.Kind() != reflect.Interface {
		return false
	}
	return src.Info.Implements(dst) || reflect.PointerTo(src.Info).Implements(dst)
}
