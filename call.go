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
	"errors"
	"reflect"

	"dirpx.dev/meta/node"
	"dirpx.dev/meta/policy"
	"dirpx.dev/meta/resolver"
)

// wrapAll wraps call-site arguments. Arguments that already are an Any are
// used as-is.
func (c *Context) wrapAll(args []any) []Any {
	out := make([]Any, len(args))
	for i, arg := range args {
		out[i] = Wrap(c, arg)
	}
	return out
}

func argNodes(args []Any) []*node.Type {
	out := make([]*node.Type, len(args))
	for i, a := range args {
		out[i] = a.node
	}
	return out
}

// castArgs casts every argument to the matching parameter type.
func (c *Context) castArgs(params []reflect.Type, args []Any) ([]reflect.Value, bool) {
	if len(params) != len(args) {
		return nil, false
	}
	out := make([]reflect.Value, len(params))
	for i, p := range params {
		if !args[i].Valid() {
			return nil, false
		}
		v, ok := c.res.Cast(args[i].node, args[i].val, p)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// call picks the best overload among funcs and invokes it on h.
func (c *Context) call(owner *node.Type, funcs []*node.Func, h Handle, args []any) (Any, error) {
	vals := c.wrapAll(args)
	params := make([][]reflect.Type, len(funcs))
	for i, f := range funcs {
		params[i] = f.Args
	}
	i, err := resolver.Best(c.res, params, argNodes(vals))
	if err != nil {
		return Any{}, err
	}
	fn := funcs[i]

	var (
		inst reflect.Value
		ro   bool
	)
	if !fn.Static {
		v, ok := h.instance(owner.Info)
		if !ok {
			return Any{}, ErrInstance
		}
		if h.readOnly() && !fn.Const {
			return Any{}, ErrReadOnly
		}
		inst, ro = v, h.readOnly()
	}

	in, ok := c.castArgs(fn.Args, vals)
	if !ok {
		return Any{}, ErrNoMatch
	}
	out, err := fn.Invoke(inst, in)
	if err != nil {
		return Any{}, err
	}
	if fn.Ret == nil {
		return c.void(), nil
	}
	return c.result(out, fn.Policy, ro), nil
}

// construct picks the best constructor of n and invokes it. With no
// arguments and no nullary constructor it falls back to the zero value.
func (c *Context) construct(n *node.Type, ctors []*node.Ctor, args []any) (Any, error) {
	vals := c.wrapAll(args)
	params := make([][]reflect.Type, len(ctors))
	for i, ctor := range ctors {
		params[i] = ctor.Args
	}
	i, err := resolver.Best(c.res, params, argNodes(vals))
	if err != nil {
		if len(args) == 0 && errors.Is(err, ErrNoMatch) {
			return c.adoptAs(n.Default(), n), nil
		}
		return Any{}, err
	}
	ctor := ctors[i]
	in, ok := c.castArgs(ctor.Args, vals)
	if !ok {
		return Any{}, ErrNoMatch
	}
	out, err := ctor.Invoke(in)
	if err != nil {
		return Any{}, err
	}
	return c.adoptAs(copyOf(out), n), nil
}

// result wraps a value crossing the reflection boundary according to pol.
// Reference policies alias addressable values and pointees of pointers;
// anything else degrades to a copy. ro forces read-only aliases.
func (c *Context) result(v reflect.Value, pol policy.Policy, ro bool) Any {
	if pol == policy.AsVoid {
		return c.void()
	}
	if !v.IsValid() {
		return Any{}
	}
	if !pol.IsRef() {
		return c.own(v)
	}
	ro = ro || pol == policy.AsCRef
	if v.Kind() == reflect.Ptr && !v.CanAddr() {
		if v.IsNil() {
			return Any{}
		}
		return c.alias(v.Elem(), ro)
	}
	return c.alias(v, ro)
}
