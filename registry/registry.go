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

package registry

import (
	"log/slog"
	"reflect"
	"sync"

	"golang.org/x/exp/slices"

	"dirpx.dev/meta/apis"
	"dirpx.dev/meta/config"
	"dirpx.dev/meta/node"
	uref "dirpx.dev/meta/utils/reflect"
)

var namerType = reflect.TypeOf((*apis.Namer)(nil)).Elem()

// New constructs an empty Registry.
func New(cfg apis.Config) apis.Registry {
	return &registry{
		cfg:    cfg,
		log:    config.Logger(cfg).With("component", "registry"),
		byType: make(map[reflect.Type]*node.Type),
		reset:  make(map[reflect.Type]struct{}),
	}
}

// registry is a Registry backed by a map and an insertion-ordered slice.
type registry struct {
	cfg apis.Config
	log *slog.Logger

	// mu guards every field below.
	mu sync.RWMutex
	// byType maps reflect.Type to its canonical node.
	byType map[reflect.Type]*node.Type
	// order keeps nodes in registration order.
	order []*node.Type
	// reset holds tombstones of types removed by ResetType/ResetID.
	reset map[reflect.Type]struct{}
}

// Ensure registry implements apis.Registry.
var _ apis.Registry = (*registry)(nil)

// Resolve returns the node for t, creating it on first use.
func (r *registry) Resolve(t reflect.Type) *node.Type {
	if t == nil {
		return nil
	}

	// Fast read path.
	r.mu.RLock()
	n, ok := r.byType[t]
	_, dead := r.reset[t]
	r.mu.RUnlock()
	if ok {
		return n
	}
	if dead {
		return nil
	}
	return r.store(t, false)
}

// Register returns the node for t, clearing any tombstone.
func (r *registry) Register(t reflect.Type) *node.Type {
	if t == nil {
		return nil
	}
	return r.store(t, true)
}

// store creates the node for t under the write lock.
func (r *registry) store(t reflect.Type, revive bool) *node.Type {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if n, ok := r.byType[t]; ok {
		return n
	}
	if _, dead := r.reset[t]; dead {
		if !revive {
			return nil
		}
		delete(r.reset, t)
	}

	n := r.build(t)
	r.byType[t] = n
	r.order = append(r.order, n)
	r.log.Debug("type node created", "type", n.Name, "id", n.ID)
	return n
}

// Detached builds a node for t without storing it.
func (r *registry) Detached(t reflect.Type) *node.Type {
	if t == nil {
		return nil
	}
	return r.build(t)
}

// build populates the intrinsic part of a node: identity, traits, size and
// the thunks derived from the Go type itself.
func (r *registry) build(t reflect.Type) *node.Type {
	n := &node.Type{
		Info:   t,
		Hash:   node.Hash(node.TypeKey(t)),
		Name:   uref.Name(t),
		Traits: uref.Traits(t),
		Size:   t.Size(),
	}
	n.ID = n.Hash
	if name, ok := typeName(t); ok {
		n.ID = node.Hash(name)
	}
	if t == node.VoidInfo {
		n.Traits = node.VoidKind
	}

	n.Default = func() reflect.Value { return reflect.New(t).Elem() }

	if uref.IsNumeric(t) {
		n.ToFloat = uref.ToFloat64
		n.FromFloat = func(f float64) reflect.Value { return uref.FromFloat64(t, f) }
	}

	if t.Kind() == reflect.Ptr {
		n.Deref = func(v reflect.Value) reflect.Value {
			if v.IsNil() {
				return reflect.Value{}
			}
			return v.Elem()
		}
	}

	if name := uref.TemplateName(t); name != "" {
		n.Template = &node.Template{Name: name}
	}
	return n
}

// typeName returns the self-reported name of t when *t implements
// apis.Namer. Interfaces and pointers never self-report.
func typeName(t reflect.Type) (string, bool) {
	switch t.Kind() {
	case reflect.Interface, reflect.Ptr:
		return "", false
	}
	if !reflect.PointerTo(t).Implements(namerType) {
		return "", false
	}
	name := reflect.New(t).Interface().(apis.Namer).TypeName()
	return name, name != ""
}

// Lookup returns the node for t if present.
func (r *registry) Lookup(t reflect.Type) (*node.Type, bool) {
	if t == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	n, ok := r.byType[t]
	return n, ok
}

// LookupID returns the first node, in registration order, with the given id.
func (r *registry) LookupID(id node.ID) (*node.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := slices.IndexFunc(r.order, func(n *node.Type) bool { return n.ID == id })
	if i < 0 {
		return nil, false
	}
	return r.order[i], true
}

// Import stores n as-is.
func (r *registry) Import(n *node.Type) bool {
	if n == nil || n.Info == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byType[n.Info]; ok {
		return false
	}
	delete(r.reset, n.Info)
	r.byType[n.Info] = n
	r.order = append(r.order, n)
	return true
}

// Entries returns a snapshot in registration order.
func (r *registry) Entries() []*node.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Count returns the number of stored nodes.
func (r *registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Reset clears all nodes and tombstones.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byType = make(map[reflect.Type]*node.Type)
	r.reset = make(map[reflect.Type]struct{})
	r.order = nil
	r.log.Debug("registry reset")
}

// ResetID removes every node whose id equals id.
func (r *registry) ResetID(id node.ID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.order[:0]
	for _, n := range r.order {
		if n.ID == id {
			r.bury(n)
			continue
		}
		kept = append(kept, n)
	}
	removed := len(r.order) - len(kept)
	clear(r.order[len(kept):])
	r.order = kept
	return removed
}

// ResetType removes the node for t.
func (r *registry) ResetType(t reflect.Type) bool {
	if t == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.byType[t]
	if !ok {
		return false
	}
	r.bury(n)
	if i := slices.Index(r.order, n); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	return true
}

// bury drops n from the type index and leaves a tombstone. Caller holds mu.
func (r *registry) bury(n *node.Type) {
	delete(r.byType, n.Info)
	r.reset[n.Info] = struct{}{}
	r.log.Debug("type node reset", "type", n.Name, "id", n.ID)
}
