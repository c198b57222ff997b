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

// perms holds every ordering of a set of expression slots.
// All orderings are carved out of a single linear arena so
// that enumerating n! orderings costs one allocation for
// the clones rather than n!.
type perms struct {
	arena  []int32
	orders [][]int32
}

func factorial(n int) int {
	f := 1
	for i := 2; i <= n; i++ {
		f *= i
	}
	return f
}

// permutations enumerates every ordering of work.
// work is used as scratch space during enumeration and is
// restored to its original contents before returning.
// Enumeration order is deterministic for a given length.
func permutations(work []int32) *perms {
	n := len(work)
	total := factorial(n)
	p := &perms{
		arena:  make([]int32, 0, total*n),
		orders: make([][]int32, 0, total),
	}
	p.permute(work, 0)
	return p
}

// permute swaps position l with every position i >= l and
// recurses on the suffix, cloning the working array into
// the arena at each full prefix. The swap is undone on the
// way out, which is what restores work.
func (p *perms) permute(work []int32, l int) {
	if l == len(work)-1 {
		off := len(p.arena)
		p.arena = append(p.arena, work...)
		p.orders = append(p.orders, p.arena[off:off+len(work)])
		return
	}
	for i := l; i < len(work); i++ {
		work[l], work[i] = work[i], work[l]
		p.permute(work, l+1)
		work[l], work[i] = work[i], work[l]
	}
}
