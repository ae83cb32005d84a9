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
	"dirpx.dev/meta/node"
	"dirpx.dev/meta/policy"
)

// Func is a read-only view of one function overload.
type Func struct {
	ctx   *Context
	owner *node.Type
	fn    *node.Func
}

// Valid reports whether f refers to a function.
func (f Func) Valid() bool {
	return f.fn != nil
}

// ID returns the function id shared by all its overloads.
func (f Func) ID() ID {
	if !f.Valid() {
		return 0
	}
	return f.fn.ID
}

// Name returns the Go name of the registered callable, if known.
func (f Func) Name() string {
	if !f.Valid() {
		return ""
	}
	return f.fn.Name
}

// Arity returns the number of arguments, not counting the instance.
func (f Func) Arity() int {
	if !f.Valid() {
		return 0
	}
	return f.fn.Arity()
}

// IsConst reports whether the function may be invoked on read-only instances.
func (f Func) IsConst() bool {
	return f.Valid() && f.fn.Const
}

// IsStatic reports whether the function ignores the instance.
func (f Func) IsStatic() bool {
	return f.Valid() && f.fn.Static
}

// Policy returns the wrapping policy applied to results.
func (f Func) Policy() policy.Policy {
	if !f.Valid() {
		return policy.AsIs
	}
	return f.fn.Policy
}

// Ret returns the result type; functions without a result report the void
// type.
func (f Func) Ret() Type {
	if !f.Valid() {
		return Type{}
	}
	if f.fn.Ret == nil {
		return f.ctx.typ(f.ctx.node(node.VoidInfo))
	}
	return f.ctx.typ(f.ctx.node(f.fn.Ret))
}

// Arg returns the type of the i-th argument.
func (f Func) Arg(i int) Type {
	if !f.Valid() || i < 0 || i >= len(f.fn.Args) {
		return Type{}
	}
	return f.ctx.typ(f.ctx.node(f.fn.Args[i]))
}

// Owner returns the type declaring the function.
func (f Func) Owner() Type {
	if !f.Valid() {
		return Type{}
	}
	return f.ctx.typ(f.owner)
}

// Invoke calls exactly this overload on h. Arguments are cast to the
// declared parameter types; errors returned by the callable propagate
// unchanged.
func (f Func) Invoke(h Handle, args ...any) (Any, error) {
	if !f.Valid() {
		return Any{}, ErrInvalid
	}
	return f.ctx.call(f.owner, []*node.Func{f.fn}, h, args)
}

// Next returns the next overload sharing the id of f, or an invalid Func.
func (f Func) Next() Func {
	if !f.Valid() {
		return Func{}
	}
	seen := false
	for _, curr := range f.owner.Funcs {
		if curr == f.fn {
			seen = true
			continue
		}
		if seen && curr.ID == f.fn.ID {
			return Func{ctx: f.ctx, owner: f.owner, fn: curr}
		}
	}
	return Func{}
}

// Prop returns the first property with the given key.
func (f Func) Prop(key any) Prop {
	if !f.Valid() {
		return Prop{}
	}
	return findProp(f.ctx, f.fn.Props, key)
}

// Props returns every property of the function.
func (f Func) Props() []Prop {
	if !f.Valid() {
		return nil
	}
	return allProps(f.ctx, f.fn.Props)
}

// Ctor is a read-only view of one constructor.
type Ctor struct {
	ctx   *Context
	owner *node.Type
	ctor  *node.Ctor
}

// Valid reports whether c refers to a constructor.
func (c Ctor) Valid() bool {
	return c.ctor != nil
}

// Arity returns the number of arguments.
func (c Ctor) Arity() int {
	if !c.Valid() {
		return 0
	}
	return c.ctor.Arity()
}

// Arg returns the type of the i-th argument.
func (c Ctor) Arg(i int) Type {
	if !c.Valid() || i < 0 || i >= len(c.ctor.Args) {
		return Type{}
	}
	return c.ctx.typ(c.ctx.node(c.ctor.Args[i]))
}

// Owner returns the constructed type.
func (c Ctor) Owner() Type {
	if !c.Valid() {
		return Type{}
	}
	return c.ctx.typ(c.owner)
}

// Invoke calls exactly this constructor.
func (c Ctor) Invoke(args ...any) (Any, error) {
	if !c.Valid() {
		return Any{}, ErrInvalid
	}
	if len(args) != c.ctor.Arity() {
		return Any{}, ErrNoMatch
	}
	return c.ctx.construct(c.owner, []*node.Ctor{c.ctor}, args)
}

// Prop returns the first property with the given key.
func (c Ctor) Prop(key any) Prop {
	if !c.Valid() {
		return Prop{}
	}
	return findProp(c.ctx, c.ctor.Props, key)
}

// Props returns every property of the constructor.
func (c Ctor) Props() []Prop {
	if !c.Valid() {
		return nil
	}
	return allProps(c.ctx, c.ctor.Props)
}
