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

// Package node holds the plain records that make up the reflection graph.
//
// Records carry no behavior beyond small lookup helpers; every thunk works on
// reflect.Value so the graph does not depend on the opaque wrapper built on
// top of it. Nodes are mutated only during registration and must not be
// mutated concurrently with lookups.
package node

import (
	"reflect"

	"dirpx.dev/meta/policy"
)

// Void is the result type of functions that return nothing.
type Void struct{}

// VoidInfo is the reflect type of Void.
var VoidInfo = reflect.TypeOf(Void{})

// Prop is a key/value property attached to a type or one of its members.
// Keys are not required to be unique.
type Prop struct {
	Key      any
	Value    any
	HasValue bool
}

// Base is a directed edge from a derived type to one of its direct bases.
type Base struct {
	// Type is the node of the base.
	Type *Type
	// Cast returns the addressable base sub-object of an addressable derived
	// value, or an invalid value if the sub-object is not reachable (nil
	// embedded pointer).
	Cast func(derived reflect.Value) reflect.Value
}

// Conv is a value-producing conversion to another type.
type Conv struct {
	// Type is the destination type.
	Type reflect.Type
	// Conv produces a new value of Type from the source value.
	Conv func(src reflect.Value) (reflect.Value, error)
}

// Ctor is a constructor-like callable producing values of the parent type.
type Ctor struct {
	// Hash identifies the argument-type list.
	Hash  ID
	Args  []reflect.Type
	Props []Prop
	// Invoke receives arguments already cast to Args.
	Invoke func(args []reflect.Value) (reflect.Value, error)
}

// Arity returns the number of arguments accepted by the constructor.
func (c *Ctor) Arity() int { return len(c.Args) }

// Dtor is the destruction thunk of a type.
type Dtor struct {
	Props   []Prop
	Destroy func(v reflect.Value)
}

// Setter is one way of writing a data member.
type Setter struct {
	Arg reflect.Type
	Set func(instance, value reflect.Value) error
}

// Data is a data member: a field, a getter/setter pair or a free variable.
type Data struct {
	ID     ID
	Name   string
	Const  bool
	Static bool
	// Type is the type produced by Get.
	Type    reflect.Type
	Policy  policy.Policy
	Props   []Prop
	Setters []Setter
	// Get returns the member value. For fields reached through an
	// addressable instance the result is addressable too.
	Get func(instance reflect.Value) (reflect.Value, error)
}

// Arity returns the number of registered setters.
func (d *Data) Arity() int { return len(d.Setters) }

// Func is a member or free function.
type Func struct {
	ID   ID
	Name string
	// Key identifies the underlying callable so re-registering the same
	// function replaces the entry instead of adding an overload.
	Key    uintptr
	Const  bool
	Static bool
	// Ret is nil for functions that return nothing (or only an error).
	Ret    reflect.Type
	Args   []reflect.Type
	Policy policy.Policy
	Props  []Prop
	// Invoke receives arguments already cast to Args. The returned value is
	// invalid when the function produced no result.
	Invoke func(instance reflect.Value, args []reflect.Value) (reflect.Value, error)
}

// Arity returns the number of arguments accepted by the function.
func (f *Func) Arity() int { return len(f.Args) }

// Template describes a generic instantiation.
type Template struct {
	// Name is the type name with instantiation parameters stripped.
	Name string
	Args []*Type
}

// Arity returns the number of template arguments.
func (t *Template) Arity() int { return len(t.Args) }

// Type is the canonical record for one reflected type within one context.
type Type struct {
	Info   reflect.Type
	Hash   ID
	ID     ID
	Name   string
	Traits Traits
	Size   uintptr

	// Default builds a new addressable zero value.
	Default func() reflect.Value
	// ToFloat and FromFloat are set for arithmetic and enum types.
	ToFloat   func(v reflect.Value) float64
	FromFloat func(f float64) reflect.Value
	// Deref is set for pointer-like types and returns the addressable
	// pointee, or an invalid value for nil.
	Deref    func(v reflect.Value) reflect.Value
	Template *Template

	Props []Prop
	Bases []*Base
	Convs []*Conv
	Ctors []*Ctor
	Data  []*Data
	Funcs []*Func
	Dtor  *Dtor
}

// Is reports whether the node describes exactly info.
func (t *Type) Is(info reflect.Type) bool {
	return t != nil && t.Info == info
}

// SetBase appends b or replaces the existing edge to the same base type.
func (t *Type) SetBase(b *Base) *Base {
	for i, curr := range t.Bases {
		if curr.Type.Info == b.Type.Info {
			t.Bases[i] = b
			return b
		}
	}
	t.Bases = append(t.Bases, b)
	return b
}

// SetConv appends c or replaces the conversion to the same destination.
func (t *Type) SetConv(c *Conv) *Conv {
	for i, curr := range t.Convs {
		if curr.Type == c.Type {
			t.Convs[i] = c
			return c
		}
	}
	t.Convs = append(t.Convs, c)
	return c
}

// SetCtor appends c or replaces the constructor with the same argument list.
func (t *Type) SetCtor(c *Ctor) *Ctor {
	for i, curr := range t.Ctors {
		if curr.Hash == c.Hash {
			c.Props = curr.Props
			t.Ctors[i] = c
			return c
		}
	}
	t.Ctors = append(t.Ctors, c)
	return c
}

// SetData appends d or replaces the data member with the same id.
func (t *Type) SetData(d *Data) *Data {
	for i, curr := range t.Data {
		if curr.ID == d.ID {
			d.Props = curr.Props
			t.Data[i] = d
			return d
		}
	}
	t.Data = append(t.Data, d)
	return d
}

// SetFunc appends f as an overload of its id, or replaces the entry
// registered for the same id and callable.
func (t *Type) SetFunc(f *Func) *Func {
	for i, curr := range t.Funcs {
		if curr.ID == f.ID && curr.Key == f.Key {
			f.Props = curr.Props
			t.Funcs[i] = f
			return f
		}
	}
	t.Funcs = append(t.Funcs, f)
	return f
}

// Conv returns the direct conversion to dst, if any.
func (t *Type) Conv(dst reflect.Type) *Conv {
	for _, c := range t.Convs {
		if c.Type == dst {
			return c
		}
	}
	return nil
}

// Overloads returns the functions declared on t itself under id, in
// registration order.
func (t *Type) Overloads(id ID) []*Func {
	var out []*Func
	for _, f := range t.Funcs {
		if f.ID == id {
			out = append(out, f)
		}
	}
	return out
}
