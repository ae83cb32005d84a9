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

// ID identifies types, data members and functions.
type ID = node.ID

// Hash returns the ID of a string, e.g. Hash("x") for a member named x.
func Hash(s string) ID {
	return node.Hash(s)
}

// TypeOf returns the reflect type of T, including interface types.
func TypeOf[T any]() reflect.Type {
	return typeOf[T]()
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Resolve returns the type of T, creating its node on first use. After
// Reset[T] it returns an invalid Type until T is registered again.
func Resolve[T any](ctx *Context) Type {
	ctx = orDefault(ctx)
	return ctx.typ(ctx.reg.Resolve(typeOf[T]()))
}

// ResolveType returns the registered type for t, or an invalid Type. It
// never creates nodes.
func ResolveType(ctx *Context, t reflect.Type) Type {
	ctx = orDefault(ctx)
	n, _ := ctx.reg.Lookup(t)
	return ctx.typ(n)
}

// ResolveID returns the first registered type whose id equals id, or an
// invalid Type.
func ResolveID(ctx *Context, id ID) Type {
	ctx = orDefault(ctx)
	n, _ := ctx.reg.LookupID(id)
	return ctx.typ(n)
}

// ResolveAll returns every registered type in registration order.
func ResolveAll(ctx *Context) []Type {
	ctx = orDefault(ctx)
	entries := ctx.reg.Entries()
	out := make([]Type, 0, len(entries))
	for _, n := range entries {
		out = append(out, ctx.typ(n))
	}
	return out
}

// Reset removes the node of T. Values and proxies referring to the old
// node keep working on it but are no longer reachable from ctx.
func Reset[T any](ctx *Context) bool {
	return orDefault(ctx).reg.ResetType(typeOf[T]())
}

// ResetID removes every type whose id equals id and returns how many were
// removed.
func ResetID(ctx *Context, id ID) int {
	return orDefault(ctx).reg.ResetID(id)
}

// ResetAll clears ctx.
func ResetAll(ctx *Context) {
	orDefault(ctx).reg.Reset()
}

func (c *Context) typ(n *node.Type) Type {
	if n == nil {
		return Type{}
	}
	return Type{ctx: c, node: n}
}
