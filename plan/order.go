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

// Package plan implements the traversal-order planner:
// given the algebraic expressions of one connected pattern
// component, it decides the order in which the expressions
// execute and the orientation of each, then lowers the
// arranged expressions to traversal operators.
package plan

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"

	"github.com/tomerhekredis/RedisGraph/algebra"
	"github.com/tomerhekredis/RedisGraph/filter"
	"github.com/tomerhekredis/RedisGraph/qgraph"
)

var log = logrus.WithField("component", "plan")

// Scoring weights. A bound endpoint outranks a filtered
// endpoint, which outranks a labeled one; transposition is
// the cheapest concern of all.
const (
	transposePenalty = 1
	labelReward      = 2 * transposePenalty
	filterReward     = 4 * transposePenalty
	boundReward      = 8 * filterReward
)

// exprInfo caches the per-expression facts the validity
// filter and the scoring loop consult. Aliases are interned
// so the hot path compares ids, and node labels are looked
// up once here rather than per candidate ordering.
type exprInfo struct {
	src, dest    int32
	srcLabeled   bool
	destLabeled  bool
	srcFiltered  bool
	destFiltered bool
	srcBound     bool
	destBound    bool
	hasEdge      bool
	operands     int
	transposes   int
}

// orderer carries the state of one OrderExpressions call.
type orderer struct {
	exprs []*algebra.Expr // input expressions, original positions
	info  []exprInfo      // parallel to exprs
}

// OrderExpressions arranges exprs in place so that execution
// is cheapest: expressions are permuted into the best-scoring
// valid order, interior expressions are transposed until each
// source is resolved by a predecessor, and the opening
// expression is oriented toward the best entry point.
//
// exprs must describe one connected pattern component and be
// non-empty. tree may be nil and bound may be nil or empty.
// maintainTranspose indicates that transposed relation
// matrices are maintained by the storage layer, making
// transposition free; callers thread the engine setting.
func OrderExpressions(g *qgraph.Graph, exprs []*algebra.Expr, tree filter.Node, bound map[string]struct{}, maintainTranspose bool) {
	n := len(exprs)
	if n == 0 {
		panic("plan: OrderExpressions on an empty expression list")
	}
	// a lone self-loop scan has nothing to arrange and
	// must not be re-oriented
	if n == 1 && exprs[0].NumOperands() == 1 && exprs[0].Source() == exprs[0].Destination() {
		return
	}

	filtered := filter.CollectModifiedAliases(tree)
	o := newOrderer(g, exprs, filtered, bound)

	slots := make([]int32, n)
	for i := range slots {
		slots[i] = int32(i)
	}
	ps := permutations(slots)

	best := ps.orders[0]
	if len(ps.orders) > 1 {
		bestScore := 0
		found := false
		for _, ord := range ps.orders {
			if !o.valid(ord) {
				continue
			}
			s := o.score(ord, maintainTranspose)
			if !found || s > bestScore {
				best, bestScore, found = ord, s, true
			}
		}
		if !found {
			panic(fmt.Sprintf("plan: no valid arrangement for %d expressions; pattern is disconnected", n))
		}
		o.resolveSequence(best)
		if log.Logger.IsLevelEnabled(logrus.DebugLevel) {
			log.Debugf("arranged %d expressions, score %d", n, bestScore)
		}
	}
	o.selectEntryPoint(best[0])

	for i, idx := range best {
		exprs[i] = o.exprs[idx]
	}
}

func newOrderer(g *qgraph.Graph, exprs []*algebra.Expr, filtered, bound map[string]struct{}) *orderer {
	in := qgraph.NewInterner()
	labeled := func(alias string) bool {
		n, ok := g.NodeByAlias(alias)
		return ok && n.Labeled()
	}
	member := func(set map[string]struct{}, alias string) bool {
		_, ok := set[alias]
		return ok
	}
	o := &orderer{
		exprs: slices.Clone(exprs),
		info:  make([]exprInfo, len(exprs)),
	}
	for i, e := range exprs {
		src, dest := e.Source(), e.Destination()
		o.info[i] = exprInfo{
			src:          in.Intern(src),
			dest:         in.Intern(dest),
			srcLabeled:   labeled(src),
			destLabeled:  labeled(dest),
			srcFiltered:  member(filtered, src),
			destFiltered: member(filtered, dest),
			srcBound:     member(bound, src),
			destBound:    member(bound, dest),
			hasEdge:      e.Edge() != "",
			operands:     e.NumOperands(),
			transposes:   e.OpCount(algebra.OpTranspose),
		}
	}
	return o
}

// valid reports whether an ordering can be executed by the
// downstream traversal operators.
func (o *orderer) valid(order []int32) bool {
	// the opening expression is realized as a scan; a bare
	// edge cannot scan, and when a labeled endpoint exists
	// the label expression must open instead
	first := &o.info[order[0]]
	if first.hasEdge && first.operands == 1 && (first.srcLabeled || first.destLabeled) {
		return false
	}
	// every later expression must share an endpoint with
	// some predecessor
	for i := 1; i < len(order); i++ {
		ei := &o.info[order[i]]
		ok := false
		for j := 0; j < i; j++ {
			ej := &o.info[order[j]]
			if ej.src == ei.src || ej.src == ei.dest || ej.dest == ei.src || ej.dest == ei.dest {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func (o *orderer) score(order []int32, maintainTranspose bool) int {
	return o.reward(order) - o.penalty(order, maintainTranspose)
}

// penalty estimates the transposition work an ordering
// implies. With maintained transposed matrices the work is
// free. Otherwise an expression whose source is resolved by
// a predecessor pays for the transposes it already carries,
// while one that will have to be flipped by the sequence
// resolver pays for every operand that is not yet transposed.
func (o *orderer) penalty(order []int32, maintainTranspose bool) int {
	if maintainTranspose {
		return 0
	}
	cost := o.info[order[0]].transposes * transposePenalty
	for i := 1; i < len(order); i++ {
		ei := &o.info[order[i]]
		if o.sourceResolved(order, i) {
			cost += ei.transposes * transposePenalty
		} else {
			cost += (ei.operands - ei.transposes) * transposePenalty
		}
	}
	return cost
}

// reward scores the endpoints of each expression, weighted
// by position so that earlier expressions dominate. Only the
// source side earns the label reward here; the entry-point
// selector weighs both sides once the ordering is fixed.
func (o *orderer) reward(order []int32) int {
	n := len(order)
	r := 0
	for i := 0; i < n; i++ {
		ei := &o.info[order[i]]
		factor := n - i
		if ei.srcBound {
			r += boundReward * factor
		}
		if ei.destBound {
			r += boundReward * factor
		}
		if ei.srcFiltered {
			r += filterReward * factor
		}
		if ei.destFiltered {
			r += filterReward * factor
		}
		if ei.srcLabeled {
			r += labelReward * factor
		}
	}
	return r
}

// sourceResolved reports whether the source of the i'th
// expression of the ordering appears as an endpoint of an
// earlier expression.
func (o *orderer) sourceResolved(order []int32, i int) bool {
	ei := &o.info[order[i]]
	for j := 0; j < i; j++ {
		ej := &o.info[order[j]]
		if ej.src == ei.src || ej.dest == ei.src {
			return true
		}
	}
	return false
}

// resolveSequence transposes interior expressions whose
// source no predecessor resolves. The traversal operators
// rely on each expression extending an already-resolved
// frontier, and the winning ordering may hold a middle
// expression in its reversed orientation.
func (o *orderer) resolveSequence(order []int32) {
	for i := 1; i < len(order); i++ {
		if !o.sourceResolved(order, i) {
			o.transpose(order[i])
		}
	}
}

// transpose flips the expression at original position idx
// and keeps its cached info in sync.
func (o *orderer) transpose(idx int32) {
	e := o.exprs[idx]
	e.Transpose()
	inf := &o.info[idx]
	inf.src, inf.dest = inf.dest, inf.src
	inf.srcLabeled, inf.destLabeled = inf.destLabeled, inf.srcLabeled
	inf.srcFiltered, inf.destFiltered = inf.destFiltered, inf.srcFiltered
	inf.srcBound, inf.destBound = inf.destBound, inf.srcBound
	inf.transposes = e.OpCount(algebra.OpTranspose)
}

// selectEntryPoint decides whether the opening expression
// should be flipped so that execution starts from its
// destination instead. A bound endpoint wins outright since
// it eliminates the scan; otherwise the more selective side
// opens, with filters weighing above labels.
func (o *orderer) selectEntryPoint(idx int32) {
	inf := &o.info[idx]
	if inf.operands == 1 && inf.src == inf.dest {
		return
	}
	if inf.srcBound {
		return
	}
	if inf.destBound {
		o.transpose(idx)
		return
	}
	srcScore, destScore := 0, 0
	if inf.srcFiltered {
		srcScore += filterReward
	}
	if inf.srcLabeled {
		srcScore += labelReward
	}
	if inf.destFiltered {
		destScore += filterReward
	}
	if inf.destLabeled {
		destScore += labelReward
	}
	if destScore > srcScore {
		o.transpose(idx)
	}
}
