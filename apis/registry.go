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

package apis

import (
	"reflect"

	"dirpx.dev/meta/node"
)

// Registry maps type identities to their canonical nodes within one context.
//
// Implementations create nodes lazily. A node removed by ResetType or
// ResetID leaves a tombstone: Resolve no longer recreates it until the type
// is explicitly registered again. Removing a node never fixes up base or
// conversion edges of other nodes that still point at it.
type Registry interface {
	// Resolve returns the node for t, creating it on first use. It returns
	// nil for a nil type or for a type reset since its last registration.
	Resolve(t reflect.Type) *node.Type
	// Register returns the node for t, creating it if needed and clearing
	// any tombstone left by a previous reset.
	Register(t reflect.Type) *node.Type
	// Detached builds a node for t that is not stored in the registry.
	Detached(t reflect.Type) *node.Type
	// Lookup returns the node for t if present. It never creates nodes.
	Lookup(t reflect.Type) (*node.Type, bool)
	// LookupID scans nodes in registration order and returns the first one
	// whose assigned id equals id.
	LookupID(id node.ID) (*node.Type, bool)
	// Import stores an existing node, typically migrated from another
	// registry. It returns false if a node for the same type is present.
	Import(n *node.Type) bool
	// Entries returns a snapshot of the nodes in registration order.
	Entries() []*node.Type
	// Count returns the number of stored nodes.
	Count() int
	// Reset removes every node and tombstone.
	Reset()
	// ResetID removes every node whose assigned id equals id and returns
	// how many were removed.
	ResetID(id node.ID) int
	// ResetType removes the node for t, reporting whether one was present.
	ResetType(t reflect.Type) bool
	// Cycles returns the groups of nodes that form cycles through base
	// edges. The result is empty for a well-formed graph.
	Cycles() [][]*node.Type
	// Reachable reports whether to can be reached from from through base
	// edges. A node always reaches itself.
	Reachable(from, to *node.Type) bool
}
