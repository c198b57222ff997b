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

package plan

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/tomerhekredis/RedisGraph/algebra"
	"github.com/tomerhekredis/RedisGraph/qgraph"
)

// Operator is one step of a traversal chain.
type Operator interface {
	fmt.Stringer
}

// AllNodeScan scans every node in the graph, producing
// candidates for Alias.
type AllNodeScan struct {
	Alias string
}

func (s *AllNodeScan) String() string {
	return fmt.Sprintf("All Node Scan | (%s)", s.Alias)
}

// NodeByLabelScan scans the nodes carrying Label.
type NodeByLabelScan struct {
	Alias string
	Label string
}

func (s *NodeByLabelScan) String() string {
	return fmt.Sprintf("Node By Label Scan | (%s:%s)", s.Alias, s.Label)
}

// ConditionalTraverse extends resolved sources to new
// destinations by evaluating Expr.
type ConditionalTraverse struct {
	Expr *algebra.Expr
}

func (t *ConditionalTraverse) String() string {
	return fmt.Sprintf("Conditional Traverse | %s", t.Expr)
}

// VarLenTraverse extends resolved sources across a
// variable number of hops.
type VarLenTraverse struct {
	Expr *algebra.Expr
	Edge *qgraph.Edge
}

func (t *VarLenTraverse) String() string {
	max := fmt.Sprintf("%d", t.Edge.MaxHops)
	if t.Edge.MaxHops == qgraph.InfiniteHops {
		max = "INF"
	}
	return fmt.Sprintf("Conditional Variable Length Traverse | %s [%d..%s]", t.Expr, t.Edge.MinHops, max)
}

// ExpandInto checks for an edge between two endpoints that
// are both already resolved.
type ExpandInto struct {
	Expr *algebra.Expr
}

func (t *ExpandInto) String() string {
	return fmt.Sprintf("Expand Into | %s", t.Expr)
}

// BuildTraversal lowers an ordered expression array to its
// traversal operator chain: a scan for the opening source,
// then one traversal per expression, except that a
// single-operand self-loop opener is realized by the scan
// alone and gets no traversal of its own. An expression whose
// endpoints are both resolved by predecessors becomes an
// ExpandInto; a variable-length edge becomes a
// VarLenTraverse.
//
// exprs must already be arranged by OrderExpressions;
// BuildTraversal errors if some expression's source is not
// resolved by a predecessor.
func BuildTraversal(g *qgraph.Graph, exprs []*algebra.Expr) ([]Operator, error) {
	if len(exprs) == 0 {
		return nil, fmt.Errorf("plan: cannot build a traversal from zero expressions")
	}
	ops := make([]Operator, 0, len(exprs)+1)
	opener := exprs[0].Source()
	if n, ok := g.NodeByAlias(opener); ok && n.Labeled() {
		ops = append(ops, &NodeByLabelScan{Alias: opener, Label: n.Label})
	} else {
		ops = append(ops, &AllNodeScan{Alias: opener})
	}
	resolved := map[string]struct{}{opener: {}}
	for i, e := range exprs {
		src, dest := e.Source(), e.Destination()
		if _, ok := resolved[src]; !ok {
			return nil, fmt.Errorf("plan: expression %d (%s): source %q is not resolved by a predecessor", i, e, src)
		}
		if i == 0 && e.NumOperands() == 1 && src == dest {
			// the opening scan realizes a lone self-loop
			// expression by itself
			continue
		}
		_, destResolved := resolved[dest]
		switch {
		case i > 0 && destResolved:
			ops = append(ops, &ExpandInto{Expr: e})
		case variableLength(g, e):
			edge, _ := g.EdgeByAlias(e.Edge())
			ops = append(ops, &VarLenTraverse{Expr: e, Edge: edge})
		default:
			ops = append(ops, &ConditionalTraverse{Expr: e})
		}
		resolved[dest] = struct{}{}
	}
	if log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		for i := range ops {
			log.Debugf("op %d: %s", i, ops[i])
		}
	}
	return ops, nil
}

func variableLength(g *qgraph.Graph, e *algebra.Expr) bool {
	alias := e.Edge()
	if alias == "" {
		return false
	}
	edge, ok := g.EdgeByAlias(alias)
	return ok && edge.VariableLength()
}
