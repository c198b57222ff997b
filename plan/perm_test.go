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
	"testing"

	"github.com/stretchr/testify/require"
)

func slots(n int) []int32 {
	s := make([]int32, n)
	for i := range s {
		s[i] = int32(i)
	}
	return s
}

func TestPermutations(t *testing.T) {
	for n := 1; n <= 6; n++ {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			require := require.New(t)
			work := slots(n)
			ps := permutations(work)
			require.Equal(factorial(n), len(ps.orders))

			// every ordering is a distinct permutation of [0, n)
			seen := make(map[string]struct{}, len(ps.orders))
			for _, ord := range ps.orders {
				require.Len(ord, n)
				var present [8]bool
				for _, v := range ord {
					require.False(present[v])
					present[v] = true
				}
				key := fmt.Sprint(ord)
				_, dup := seen[key]
				require.False(dup, "duplicate ordering %s", key)
				seen[key] = struct{}{}
			}

			// the working array is restored on return
			require.Equal(slots(n), work)
		})
	}
}

func TestPermutationsDeterministic(t *testing.T) {
	require := require.New(t)
	a := permutations(slots(4))
	b := permutations(slots(4))
	require.Equal(a.orders, b.orders)
}
