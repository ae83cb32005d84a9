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
	"dirpx.dev/meta/policy"
)

// Data is a read-only view of a data member.
type Data struct {
	ctx   *Context
	owner *node.Type
	data  *node.Data
}

// Valid reports whether d refers to a data member.
func (d Data) Valid() bool {
	return d.data != nil
}

// ID returns the member id.
func (d Data) ID() ID {
	if !d.Valid() {
		return 0
	}
	return d.data.ID
}

// Name returns the field or accessor name the member was registered from.
func (d Data) Name() string {
	if !d.Valid() {
		return ""
	}
	return d.data.Name
}

// IsConst reports whether the member is read-only.
func (d Data) IsConst() bool {
	return d.Valid() && d.data.Const
}

// IsStatic reports whether the member ignores the instance.
func (d Data) IsStatic() bool {
	return d.Valid() && d.data.Static
}

// Type returns the type read by Get.
func (d Data) Type() Type {
	if !d.Valid() {
		return Type{}
	}
	return d.ctx.typ(d.ctx.node(d.data.Type))
}

// Owner returns the type declaring the member.
func (d Data) Owner() Type {
	if !d.Valid() {
		return Type{}
	}
	return d.ctx.typ(d.owner)
}

// Policy returns the wrapping policy applied by Get.
func (d Data) Policy() policy.Policy {
	if !d.Valid() {
		return policy.AsIs
	}
	return d.data.Policy
}

// Arity returns the number of setters.
func (d Data) Arity() int {
	if !d.Valid() {
		return 0
	}
	return d.data.Arity()
}

// Arg returns the argument type of the i-th setter.
func (d Data) Arg(i int) Type {
	if !d.Valid() || i < 0 || i >= len(d.data.Setters) {
		return Type{}
	}
	return d.ctx.typ(d.ctx.node(d.data.Setters[i].Arg))
}

// Get reads the member from h. Instances are cast to the declaring type
// through bases; reference policies degrade to read-only for const members
// and read-only instances. It returns an empty Any on any failure.
func (d Data) Get(h Handle) Any {
	if !d.Valid() {
		return Any{}
	}
	var inst reflect.Value
	ro := d.data.Const
	if !d.data.Static {
		v, ok := h.instance(d.owner.Info)
		if !ok {
			return Any{}
		}
		inst, ro = v, ro || h.readOnly()
	}
	v, err := d.data.Get(inst)
	if err != nil {
		return Any{}
	}
	return d.ctx.result(v, d.data.Policy, ro)
}

// Set writes v into the member of h. Setters taking exactly the type of v
// are preferred; otherwise the first setter v can be cast to is used.
func (d Data) Set(h Handle, v any) bool {
	if !d.Valid() || d.data.Const || len(d.data.Setters) == 0 {
		return false
	}
	var inst reflect.Value
	if !d.data.Static {
		iv, ok := h.instance(d.owner.Info)
		if !ok || h.readOnly() {
			return false
		}
		inst = iv
	}
	val := Wrap(d.ctx, v)
	if !val.Valid() {
		return false
	}
	for _, s := range d.data.Setters {
		if val.node.Info == s.Arg {
			return s.Set(inst, val.val) == nil
		}
	}
	for _, s := range d.data.Setters {
		if out, ok := d.ctx.res.Cast(val.node, val.val, s.Arg); ok {
			return s.Set(inst, out) == nil
		}
	}
	return false
}

// Prop returns the first property with the given key.
func (d Data) Prop(key any) Prop {
	if !d.Valid() {
		return Prop{}
	}
	return findProp(d.ctx, d.data.Props, key)
}

// Props returns every property of the member.
func (d Data) Props() []Prop {
	if !d.Valid() {
		return nil
	}
	return allProps(d.ctx, d.data.Props)
}
