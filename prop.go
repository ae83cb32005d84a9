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
	"reflect"

	"dirpx.dev/meta/node"
)

// Prop is a read-only view of a key/value property.
type Prop struct {
	ctx  *Context
	prop *node.Prop
}

// Valid reports whether p refers to a property.
func (p Prop) Valid() bool {
	return p.prop != nil
}

// Key returns the property key.
func (p Prop) Key() Any {
	if !p.Valid() {
		return Any{}
	}
	return Wrap(p.ctx, p.prop.Key)
}

// Value returns the property value, or an empty Any for key-only properties.
func (p Prop) Value() Any {
	if !p.Valid() || !p.prop.HasValue {
		return Any{}
	}
	return Wrap(p.ctx, p.prop.Value)
}

// findProp returns the first property whose key equals key.
func findProp(ctx *Context, props []node.Prop, key any) Prop {
	if a, ok := key.(Any); ok {
		key = a.Interface()
	}
	for i := range props {
		if sameKey(props[i].Key, key) {
			return Prop{ctx: ctx, prop: &props[i]}
		}
	}
	return Prop{}
}

func allProps(ctx *Context, props []node.Prop) []Prop {
	out := make([]Prop, 0, len(props))
	for i := range props {
		out = append(out, Prop{ctx: ctx, prop: &props[i]})
	}
	return out
}

// sameKey compares keys with == when their dynamic types match and both
// values are comparable.
func sameKey(x, y any) bool {
	tx, ty := reflect.TypeOf(x), reflect.TypeOf(y)
	if tx != ty {
		return false
	}
	if tx == nil {
		return true
	}
	vx, vy := reflect.ValueOf(x), reflect.ValueOf(y)
	return vx.Comparable() && vy.Comparable() && vx.Equal(vy)
}
