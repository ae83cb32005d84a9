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
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"dirpx.dev/meta/node"
)

// Description is a plain snapshot of a type, for inspection tools.
type Description struct {
	Name     string
	ID       string
	Traits   string
	Size     uintptr
	Template []string
	Bases    []string
	Convs    []string
	Ctors    []string
	// Data maps member names (or ids when unnamed) to their types.
	Data map[string]string
	// Funcs maps function names to the signatures of their overloads.
	Funcs map[string][]string
	// Members lists the keys of Data and Funcs, sorted.
	Members []string
	Props   map[string]string
}

// Describe returns a description of t. An invalid Type gives a zero
// Description.
func Describe(t Type) Description {
	if !t.Valid() {
		return Description{}
	}
	n := t.node
	d := Description{
		Name:   n.Name,
		ID:     n.ID.String(),
		Traits: n.Traits.String(),
		Size:   n.Size,
		Data:   map[string]string{},
		Funcs:  map[string][]string{},
		Props:  map[string]string{},
	}
	if n.Template != nil {
		for _, a := range n.Template.Args {
			d.Template = append(d.Template, a.Name)
		}
	}
	for _, b := range n.Bases {
		d.Bases = append(d.Bases, b.Type.Name)
	}
	for _, c := range n.Convs {
		d.Convs = append(d.Convs, c.Type.String())
	}
	for _, c := range n.Ctors {
		d.Ctors = append(d.Ctors, signatureOf(c.Args, nil))
	}
	for _, m := range n.Data {
		d.Data[memberName(m.Name, m.ID)] = m.Type.String()
	}
	for _, f := range n.Funcs {
		name := memberName(f.Name, f.ID)
		d.Funcs[name] = append(d.Funcs[name], signatureOf(f.Args, f))
	}
	for _, p := range n.Props {
		if p.HasValue {
			d.Props[fmt.Sprint(p.Key)] = fmt.Sprint(p.Value)
		} else {
			d.Props[fmt.Sprint(p.Key)] = ""
		}
	}
	d.Members = append(maps.Keys(d.Data), maps.Keys(d.Funcs)...)
	slices.Sort(d.Members)
	d.Members = slices.Compact(d.Members)
	return d
}

func memberName(name string, id ID) string {
	if name != "" {
		return name
	}
	return id.String()
}

func signatureOf(args []reflect.Type, f *node.Func) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	sig := "(" + strings.Join(parts, ", ") + ")"
	if f == nil {
		return sig
	}
	if f.Ret != nil {
		sig += " " + f.Ret.String()
	}
	switch {
	case f.Static:
		sig = "static " + sig
	case f.Const:
		sig += " const"
	}
	return sig
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dump writes the description of every type registered in ctx, sorted by
// name.
func Dump(w io.Writer, ctx *Context) error {
	types := ResolveAll(ctx)
	slices.SortFunc(types, func(a, b Type) bool {
		return a.Name() < b.Name()
	})
	for _, t := range types {
		if _, err := fmt.Fprintf(w, "# %s\n", t.Name()); err != nil {
			return err
		}
		dumpConfig.Fdump(w, Describe(t))
	}
	return nil
}
