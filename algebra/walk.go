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

package algebra

// Visitor is an interface that must
// be satisfied by the argument to Walk.
//
// A Visitor's Visit method is invoked for each node
// encountered by Walk. If the result visitor w is not nil,
// Walk visits each of the children of the node with w,
// followed by a call of w.Visit(nil).
//
// (see also: ast.Visitor)
type Visitor interface {
	Visit(*Expr) Visitor
}

// Walk traverses an expression in depth-first order:
// it starts by calling v.Visit(e); e must not be nil.
// If the visitor w returned by v.Visit(e) is not nil,
// Walk is invoked recursively with w for each child of e,
// followed by a call of w.Visit(nil).
func Walk(v Visitor, e *Expr) {
	w := v.Visit(e)
	if w == nil {
		return
	}
	for i := range e.args {
		Walk(w, e.args[i])
	}
	w.Visit(nil)
}
