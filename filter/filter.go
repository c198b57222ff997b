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

// Package filter implements the boolean filter tree built
// from a query's WHERE clause. The traversal-order planner
// only asks which aliases the tree references; execution
// evaluates predicates against matched entities.
package filter

import (
	"fmt"

	"github.com/spf13/cast"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// CmpOp is a predicate comparison operator.
type CmpOp int

const (
	CmpEq CmpOp = iota
	CmpNe
	CmpLt
	CmpLe
	CmpGt
	CmpGe
)

// BoolOp combines filter sub-trees.
type BoolOp int

const (
	And BoolOp = iota
	Or
	Not
)

// Node is a filter tree node: either a Predicate leaf or
// a Condition over child trees.
type Node interface {
	filterNode()
}

// Predicate compares one attribute of the entity bound to
// Alias against a constant.
type Predicate struct {
	Alias     string
	Attribute string
	Cmp       CmpOp
	Value     any
}

// Condition combines children with a boolean operator.
// Not uses Left only; Right must be nil.
type Condition struct {
	Op    BoolOp
	Left  Node
	Right Node
}

func (*Predicate) filterNode() {}
func (*Condition) filterNode() {}

// CollectModifiedAliases returns the set of aliases the
// tree references. A nil tree yields an empty set.
func CollectModifiedAliases(n Node) map[string]struct{} {
	set := make(map[string]struct{})
	collect(n, set)
	return set
}

func collect(n Node, set map[string]struct{}) {
	switch n := n.(type) {
	case nil:
	case *Predicate:
		set[n.Alias] = struct{}{}
	case *Condition:
		collect(n.Left, set)
		collect(n.Right, set)
	}
}

// ModifiedAliases returns the referenced aliases in
// sorted order.
func ModifiedAliases(n Node) []string {
	aliases := maps.Keys(CollectModifiedAliases(n))
	slices.Sort(aliases)
	return aliases
}

// Eval evaluates p against the attribute map of the entity
// bound to p.Alias. A missing attribute compares as false.
//
// Values are weakly typed: both sides are coerced to
// float64 when possible and compared as strings otherwise.
func (p *Predicate) Eval(attrs map[string]any) (bool, error) {
	v, ok := attrs[p.Attribute]
	if !ok {
		return false, nil
	}
	lf, lerr := cast.ToFloat64E(v)
	rf, rerr := cast.ToFloat64E(p.Value)
	if lerr == nil && rerr == nil {
		return cmpOrdered(p.Cmp, lf, rf), nil
	}
	ls, err := cast.ToStringE(v)
	if err != nil {
		return false, fmt.Errorf("filter: %s.%s: %w", p.Alias, p.Attribute, err)
	}
	rs, err := cast.ToStringE(p.Value)
	if err != nil {
		return false, fmt.Errorf("filter: %s.%s: %w", p.Alias, p.Attribute, err)
	}
	return cmpOrdered(p.Cmp, ls, rs), nil
}

func cmpOrdered[T float64 | string](op CmpOp, l, r T) bool {
	switch op {
	case CmpEq:
		return l == r
	case CmpNe:
		return l != r
	case CmpLt:
		return l < r
	case CmpLe:
		return l <= r
	case CmpGt:
		return l > r
	case CmpGe:
		return l >= r
	}
	return false
}

// EvalTree evaluates the whole tree against a mapping of
// alias to entity attributes. A nil tree is true.
func EvalTree(n Node, entities map[string]map[string]any) (bool, error) {
	switch n := n.(type) {
	case nil:
		return true, nil
	case *Predicate:
		return n.Eval(entities[n.Alias])
	case *Condition:
		left, err := EvalTree(n.Left, entities)
		if err != nil {
			return false, err
		}
		switch n.Op {
		case Not:
			return !left, nil
		case And:
			if !left {
				return false, nil
			}
			return EvalTree(n.Right, entities)
		case Or:
			if left {
				return true, nil
			}
			return EvalTree(n.Right, entities)
		}
	}
	return false, fmt.Errorf("filter: unexpected node %T", n)
}
