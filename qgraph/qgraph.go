// Copyright (C) 2023 RedisGraph, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package qgraph describes the pattern of a graph query:
// the nodes and edges named by the MATCH clause, keyed by
// their alias. It is read-only to the optimizer stages.
package qgraph

import (
	"fmt"

	"github.com/google/uuid"
)

// InfiniteHops is the MaxHops value of an unbounded
// variable-length edge, e.g. (a)-[:R*2..]->(b).
const InfiniteHops = 1<<31 - 1

// Node is a pattern node. Label is empty when the node
// is unlabeled.
type Node struct {
	Alias string
	Label string
}

// Labeled returns whether n carries a label.
func (n *Node) Labeled() bool { return n.Label != "" }

// Edge is a pattern edge between two pattern nodes.
type Edge struct {
	Alias string
	Src   string
	Dest  string
	// Reltypes are the relationship types the edge may
	// traverse; empty means any type.
	Reltypes []string
	// MinHops and MaxHops bound the traversal length;
	// both are 1 for a fixed-length edge.
	MinHops int
	MaxHops int
	// Bidirectional is set for edges written without
	// a direction, e.g. (a)-[:R]-(b).
	Bidirectional bool
}

// VariableLength returns whether e traverses a variable
// number of hops.
func (e *Edge) VariableLength() bool {
	return e.MinHops != 1 || e.MaxHops != 1
}

// Graph is a query pattern: alias-addressable nodes and
// edges. The zero value is not usable; call New.
type Graph struct {
	nodes map[string]*Node
	edges map[string]*Edge

	// insertion order, for deterministic iteration
	nodeOrder []string
	edgeOrder []string
}

// New constructs an empty query graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		edges: make(map[string]*Edge),
	}
}

// AddNode inserts n into g and returns its alias.
// A node with an empty alias is given a fresh anonymous
// alias. Re-adding an existing alias returns the alias
// without replacing the node already present.
func (g *Graph) AddNode(n *Node) string {
	if n.Alias == "" {
		n.Alias = "anon_" + uuid.NewString()
	}
	if _, ok := g.nodes[n.Alias]; !ok {
		g.nodes[n.Alias] = n
		g.nodeOrder = append(g.nodeOrder, n.Alias)
	}
	return n.Alias
}

// AddEdge inserts e into g. Both endpoints must already
// be present.
func (g *Graph) AddEdge(e *Edge) error {
	if _, ok := g.nodes[e.Src]; !ok {
		return fmt.Errorf("qgraph: edge %q references unknown source %q", e.Alias, e.Src)
	}
	if _, ok := g.nodes[e.Dest]; !ok {
		return fmt.Errorf("qgraph: edge %q references unknown destination %q", e.Alias, e.Dest)
	}
	if e.Alias == "" {
		e.Alias = "anon_" + uuid.NewString()
	}
	if _, ok := g.edges[e.Alias]; ok {
		return fmt.Errorf("qgraph: duplicate edge alias %q", e.Alias)
	}
	if e.MinHops == 0 && e.MaxHops == 0 {
		e.MinHops, e.MaxHops = 1, 1
	}
	g.edges[e.Alias] = e
	g.edgeOrder = append(g.edgeOrder, e.Alias)
	return nil
}

// NodeByAlias returns the node registered under alias.
func (g *Graph) NodeByAlias(alias string) (*Node, bool) {
	n, ok := g.nodes[alias]
	return n, ok
}

// EdgeByAlias returns the edge registered under alias.
func (g *Graph) EdgeByAlias(alias string) (*Edge, bool) {
	e, ok := g.edges[alias]
	return e, ok
}

// Nodes returns the pattern nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.nodeOrder))
	for i, alias := range g.nodeOrder {
		out[i] = g.nodes[alias]
	}
	return out
}

// Edges returns the pattern edges in insertion order.
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, len(g.edgeOrder))
	for i, alias := range g.edgeOrder {
		out[i] = g.edges[alias]
	}
	return out
}
