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

// Type is a read-only view of a type node. The zero Type is invalid and
// every lookup on it misses.
type Type struct {
	ctx  *Context
	node *node.Type
}

// Valid reports whether t refers to a type node.
func (t Type) Valid() bool {
	return t.node != nil
}

// Equal reports whether both views refer to the same node.
func (t Type) Equal(other Type) bool {
	return t.node == other.node
}

// Info returns the Go type described by t.
func (t Type) Info() reflect.Type {
	if !t.Valid() {
		return nil
	}
	return t.node.Info
}

// ID returns the assigned identifier.
func (t Type) ID() ID {
	if !t.Valid() {
		return 0
	}
	return t.node.ID
}

// Hash returns the identifier derived from the Go type.
func (t Type) Hash() ID {
	if !t.Valid() {
		return 0
	}
	return t.node.Hash
}

// Name returns the display name.
func (t Type) Name() string {
	if !t.Valid() {
		return ""
	}
	return t.node.Name
}

// String returns the display name, or "<invalid>".
func (t Type) String() string {
	if !t.Valid() {
		return "<invalid>"
	}
	return t.node.Name
}

// Size returns the size of a value in bytes.
func (t Type) Size() uintptr {
	if !t.Valid() {
		return 0
	}
	return t.node.Size
}

// Traits returns the trait mask.
func (t Type) Traits() node.Traits {
	if !t.Valid() {
		return 0
	}
	return t.node.Traits
}

// Is reports whether every trait of mask is set.
func (t Type) Is(mask node.Traits) bool {
	return t.Traits().Has(mask)
}

// RemovePointer returns the pointee type for pointers and t otherwise. The
// pointee is resolved in the context t belongs to.
func (t Type) RemovePointer() Type {
	if !t.Valid() {
		return Type{}
	}
	if t.node.Info.Kind() != reflect.Ptr {
		return t
	}
	return t.ctx.typ(t.ctx.node(t.node.Info.Elem()))
}

// IsTemplateSpecialization reports whether t is a generic instantiation.
func (t Type) IsTemplateSpecialization() bool {
	return t.Valid() && t.node.Template != nil
}

// TemplateName returns the generic name without parameters.
func (t Type) TemplateName() string {
	if !t.IsTemplateSpecialization() {
		return ""
	}
	return t.node.Template.Name
}

// TemplateArity returns the number of registered type arguments.
func (t Type) TemplateArity() int {
	if !t.IsTemplateSpecialization() {
		return 0
	}
	return t.node.Template.Arity()
}

// TemplateArg returns the i-th registered type argument.
func (t Type) TemplateArg(i int) Type {
	if !t.IsTemplateSpecialization() || i < 0 || i >= t.node.Template.Arity() {
		return Type{}
	}
	return t.ctx.typ(t.node.Template.Args[i])
}

// Base returns the base, at any depth, whose id equals id.
func (t Type) Base(id ID) Type {
	if !t.Valid() {
		return Type{}
	}
	b := node.FindBase(t.node, id)
	if b == nil {
		return Type{}
	}
	return t.ctx.typ(b.Type)
}

// Bases returns the direct bases in registration order.
func (t Type) Bases() []Type {
	if !t.Valid() {
		return nil
	}
	out := make([]Type, 0, len(t.node.Bases))
	for _, b := range t.node.Bases {
		out = append(out, t.ctx.typ(b.Type))
	}
	return out
}

// Data returns the data member id of t or of one of its bases.
func (t Type) Data(id ID) Data {
	if !t.Valid() {
		return Data{}
	}
	owner, d := node.FindData(t.node, id)
	if d == nil {
		return Data{}
	}
	return Data{ctx: t.ctx, owner: owner, data: d}
}

// AllData returns the data members of t followed by those of its bases.
func (t Type) AllData() []Data {
	var out []Data
	if !t.Valid() {
		return out
	}
	node.Walk(t.node, func(curr *node.Type) bool {
		for _, d := range curr.Data {
			out = append(out, Data{ctx: t.ctx, owner: curr, data: d})
		}
		return true
	})
	return out
}

// Func returns the first overload of the function id. Functions declared on
// t shadow same-id functions of its bases.
func (t Type) Func(id ID) Func {
	if !t.Valid() {
		return Func{}
	}
	owner, funcs := node.FindFuncs(t.node, id)
	if len(funcs) == 0 {
		return Func{}
	}
	return Func{ctx: t.ctx, owner: owner, fn: funcs[0]}
}

// Funcs returns every function of t followed by those of its bases.
func (t Type) Funcs() []Func {
	var out []Func
	if !t.Valid() {
		return out
	}
	node.Walk(t.node, func(curr *node.Type) bool {
		for _, f := range curr.Funcs {
			out = append(out, Func{ctx: t.ctx, owner: curr, fn: f})
		}
		return true
	})
	return out
}

// Ctor returns the constructor taking exactly args.
func (t Type) Ctor(args ...reflect.Type) Ctor {
	if !t.Valid() {
		return Ctor{}
	}
	hash := node.HashArgs(args)
	for _, c := range t.node.Ctors {
		if c.Hash == hash {
			return Ctor{ctx: t.ctx, owner: t.node, ctor: c}
		}
	}
	return Ctor{}
}

// Ctors returns the constructors in registration order.
func (t Type) Ctors() []Ctor {
	if !t.Valid() {
		return nil
	}
	out := make([]Ctor, 0, len(t.node.Ctors))
	for _, c := range t.node.Ctors {
		out = append(out, Ctor{ctx: t.ctx, owner: t.node, ctor: c})
	}
	return out
}

// Construct builds a value from args using the best matching constructor.
// Without arguments and without a nullary constructor the zero value is
// returned. It returns ErrNoMatch or ErrAmbiguous when resolution fails.
func (t Type) Construct(args ...any) (Any, error) {
	if !t.Valid() {
		return Any{}, ErrInvalid
	}
	return t.ctx.construct(t.node, t.node.Ctors, args)
}

// Invoke calls the best overload of the function id on h. Static functions
// accept the zero Handle.
func (t Type) Invoke(id ID, h Handle, args ...any) (Any, error) {
	if !t.Valid() {
		return Any{}, ErrInvalid
	}
	owner, funcs := node.FindFuncs(t.node, id)
	if len(funcs) == 0 {
		return Any{}, ErrNoMatch
	}
	return t.ctx.call(owner, funcs, h, args)
}

// Get reads the data member id of h.
func (t Type) Get(id ID, h Handle) Any {
	return t.Data(id).Get(h)
}

// Set writes the data member id of h.
func (t Type) Set(id ID, h Handle, v any) bool {
	return t.Data(id).Set(h, v)
}

// Prop returns the first property with the given key on t or its bases.
func (t Type) Prop(key any) Prop {
	if !t.Valid() {
		return Prop{}
	}
	var found Prop
	node.Walk(t.node, func(curr *node.Type) bool {
		found = findProp(t.ctx, curr.Props, key)
		return !found.Valid()
	})
	return found
}

// Props returns the properties of t followed by those of its bases.
func (t Type) Props() []Prop {
	var out []Prop
	if !t.Valid() {
		return out
	}
	node.Walk(t.node, func(curr *node.Type) bool {
		out = append(out, allProps(t.ctx, curr.Props)...)
		return true
	})
	return out
}

// CanCast reports whether values of t can be seen as other without
// conversion: same type or a registered base at any depth.
func (t Type) CanCast(other Type) bool {
	if !t.Valid() || !other.Valid() {
		return false
	}
	return t.node.Info == other.node.Info || node.HasBase(t.node, other.node.Info)
}

// CanConvert reports whether AllowCast from t to other can succeed.
func (t Type) CanConvert(other Type) bool {
	if !t.Valid() || !other.Valid() {
		return false
	}
	return t.ctx.res.CanCast(t.node, other.node.Info)
}
