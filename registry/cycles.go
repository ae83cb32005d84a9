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
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"dirpx.dev/meta/node"
)

// typeNode adapts a *node.Type to graph.Node.
type typeNode struct {
	t  *node.Type
	id int64
}

func (n *typeNode) ID() int64 {
	return n.id
}

// baseGraph is the derived -> base graph of a set of nodes.
type baseGraph struct {
	g     *simple.DirectedGraph
	nodes map[*node.Type]*typeNode
	// loops holds nodes listing themselves as a base. Self edges are not
	// representable in a simple graph.
	loops []*node.Type
}

func newBaseGraph(roots []*node.Type) *baseGraph {
	bg := &baseGraph{
		g:     simple.NewDirectedGraph(),
		nodes: make(map[*node.Type]*typeNode, len(roots)),
	}
	for _, t := range roots {
		bg.add(t)
	}
	return bg
}

// add inserts t and, transitively, every base reachable from it.
func (bg *baseGraph) add(t *node.Type) *typeNode {
	if n, ok := bg.nodes[t]; ok {
		return n
	}
	n := &typeNode{t: t, id: int64(len(bg.nodes))}
	bg.nodes[t] = n
	bg.g.AddNode(n)
	for _, b := range t.Bases {
		if b.Type == nil {
			continue
		}
		if b.Type == t {
			bg.loops = append(bg.loops, t)
			continue
		}
		bg.g.SetEdge(bg.g.NewEdge(n, bg.add(b.Type)))
	}
	return n
}

// Cycles returns the groups of nodes forming base cycles.
func (r *registry) Cycles() [][]*node.Type {
	bg := newBaseGraph(r.Entries())

	var out [][]*node.Type
	for _, t := range bg.loops {
		out = append(out, []*node.Type{t})
	}
	if _, err := topo.Sort(bg.g); err != nil {
		if groups, ok := err.(topo.Unorderable); ok {
			for _, group := range groups {
				out = append(out, collect(group))
			}
		}
	}
	if len(out) > 0 {
		r.log.Warn("base cycles detected", "count", len(out))
	}
	return out
}

// Reachable reports whether to is reachable from from through base edges.
func (r *registry) Reachable(from, to *node.Type) bool {
	if from == nil || to == nil {
		return false
	}
	if from == to {
		return true
	}
	bg := newBaseGraph([]*node.Type{from})
	dst, ok := bg.nodes[to]
	if !ok {
		return false
	}
	return topo.PathExistsIn(bg.g, bg.nodes[from], dst)
}

// collect maps a gonum component back to type nodes, ordered by name so
// reports are stable.
func collect(group []graph.Node) []*node.Type {
	out := make([]*node.Type, 0, len(group))
	for _, n := range group {
		out = append(out, n.(*typeNode).t)
	}
	slices.SortFunc(out, func(a, b *node.Type) bool { return a.Name < b.Name })
	return out
}
