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

// Package algebra implements the algebraic expressions
// that describe graph pattern matching as operations
// over matrix operands.
//
// A traversal step like (a)-[:R]->(b) is represented as
// a multiplication of matrix operands; a label scan is a
// diagonal operand. Expressions are built once by the
// compiler and then rearranged and transposed by the
// traversal-order planner.
package algebra

import (
	"strings"
)

// Op is an expression node kind.
type Op int

const (
	// OpOperand is a matrix operand leaf.
	OpOperand Op = iota
	// OpMul multiplies its child expressions left-to-right.
	OpMul
	// OpAdd sums its child expressions.
	OpAdd
	// OpTranspose transposes its single child expression.
	OpTranspose
)

func (o Op) String() string {
	switch o {
	case OpOperand:
		return "operand"
	case OpMul:
		return "mul"
	case OpAdd:
		return "add"
	case OpTranspose:
		return "transpose"
	default:
		return "invalid"
	}
}

// Expr is a node in an algebraic expression tree.
//
// Operation nodes (OpMul, OpAdd, OpTranspose) carry child
// expressions; OpOperand leaves carry the source, destination,
// and (for traversal operands) edge aliases of the pattern
// entity the matrix stands for.
//
// The zero Expr is not a valid expression; use the
// constructors.
type Expr struct {
	op   Op
	args []*Expr

	// operand fields; only meaningful when op == OpOperand
	src, dest, edge string
	diagonal        bool
}

// Operand constructs a matrix operand for a traversal
// from src to dest. edge may be empty if the operand
// does not correspond to a pattern edge.
func Operand(src, dest, edge string) *Expr {
	return &Expr{op: OpOperand, src: src, dest: dest, edge: edge}
}

// DiagonalOperand constructs a diagonal (label) operand
// whose source and destination are both alias.
func DiagonalOperand(alias string) *Expr {
	return &Expr{op: OpOperand, src: alias, dest: alias, diagonal: true}
}

// Mul constructs the product of args, evaluated left-to-right.
// Mul panics if args is empty; a single argument is returned
// unchanged.
func Mul(args ...*Expr) *Expr {
	if len(args) == 0 {
		panic("algebra: Mul of zero expressions")
	}
	if len(args) == 1 {
		return args[0]
	}
	return &Expr{op: OpMul, args: args}
}

// Add constructs the sum of args. All summands must share
// endpoints; Add panics if args is empty.
func Add(args ...*Expr) *Expr {
	if len(args) == 0 {
		panic("algebra: Add of zero expressions")
	}
	if len(args) == 1 {
		return args[0]
	}
	return &Expr{op: OpAdd, args: args}
}

// Kind returns the operation kind of the root node.
func (e *Expr) Kind() Op { return e.op }

// Diagonal returns whether e is a diagonal operand.
func (e *Expr) Diagonal() bool { return e.op == OpOperand && e.diagonal }

// Source returns the alias of the row domain of e:
// the source endpoint the expression traverses from.
// Transposition is taken into account, so the source of
// Tᵀ is the destination of T.
func (e *Expr) Source() string { return e.endpoint(false, false) }

// Destination returns the alias of the column domain of e;
// see Source.
func (e *Expr) Destination() string { return e.endpoint(true, false) }

// endpoint resolves the source (dest=false) or destination
// (dest=true) alias of e under an accumulated transposition
// parity. Multiplication reverses under transposition
// ((A·B)ᵀ = Bᵀ·Aᵀ), so a flipped product takes its source
// from its last factor.
func (e *Expr) endpoint(dest, flip bool) string {
	switch e.op {
	case OpOperand:
		if dest != flip {
			return e.dest
		}
		return e.src
	case OpTranspose:
		return e.args[0].endpoint(dest, !flip)
	case OpMul:
		if dest != flip {
			return e.args[len(e.args)-1].endpoint(dest, flip)
		}
		return e.args[0].endpoint(dest, flip)
	case OpAdd:
		// summands share endpoints
		return e.args[0].endpoint(dest, flip)
	}
	return ""
}

// Edge returns the alias of the first edge operand in e,
// or "" if e contains no edge operand.
func (e *Expr) Edge() string {
	if e.op == OpOperand {
		return e.edge
	}
	for i := range e.args {
		if edge := e.args[i].Edge(); edge != "" {
			return edge
		}
	}
	return ""
}

// NumOperands returns the number of operand leaves in e.
func (e *Expr) NumOperands() int { return e.OpCount(OpOperand) }

// OpCount returns the number of nodes of kind op in e.
func (e *Expr) OpCount(op Op) int {
	c := &opCounter{op: op}
	Walk(c, e)
	return c.n
}

// Transposed returns whether the top-level operation of e
// is a transpose.
func (e *Expr) Transposed() bool { return e.op == OpTranspose }

// Transpose flips e in place: its source and destination
// swap roles and Transposed toggles. Transposing twice
// restores the original expression.
func (e *Expr) Transpose() {
	if e.op == OpTranspose {
		*e = *e.args[0]
		return
	}
	inner := *e
	*e = Expr{op: OpTranspose, args: []*Expr{&inner}}
}

// Clone returns a deep copy of e sharing no nodes with it.
func (e *Expr) Clone() *Expr {
	c := *e
	if len(e.args) > 0 {
		c.args = make([]*Expr, len(e.args))
		for i := range e.args {
			c.args[i] = e.args[i].Clone()
		}
	}
	return &c
}

// String returns a compact rendering of e, e.g.
// T(((a)*(a-[r]->b))) for a transposed label-times-edge
// product.
func (e *Expr) String() string {
	var sb strings.Builder
	e.write(&sb)
	return sb.String()
}

func (e *Expr) write(sb *strings.Builder) {
	switch e.op {
	case OpOperand:
		sb.WriteByte('(')
		sb.WriteString(e.src)
		if !e.diagonal {
			if e.edge != "" {
				sb.WriteString("-[")
				sb.WriteString(e.edge)
				sb.WriteString("]->")
			} else {
				sb.WriteString("->")
			}
			sb.WriteString(e.dest)
		}
		sb.WriteByte(')')
	case OpTranspose:
		sb.WriteString("T(")
		e.args[0].write(sb)
		sb.WriteByte(')')
	case OpMul, OpAdd:
		sep := "*"
		if e.op == OpAdd {
			sep = "+"
		}
		sb.WriteByte('(')
		for i := range e.args {
			if i > 0 {
				sb.WriteString(sep)
			}
			e.args[i].write(sb)
		}
		sb.WriteByte(')')
	}
}

type opCounter struct {
	op Op
	n  int
}

func (c *opCounter) Visit(e *Expr) Visitor {
	if e != nil && e.op == c.op {
		c.n++
	}
	return c
}
