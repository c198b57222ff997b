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

package qgraph

import (
	"fmt"

	"github.com/dchest/siphash"
)

// Interner maps alias strings to small dense ids so that
// hot loops compare aliases as integers instead of bytes.
// Ids are assigned in first-seen order starting from 0.
type Interner struct {
	ids   map[uint64]int32
	names []string
}

// NewInterner constructs an empty interner.
func NewInterner() *Interner {
	return &Interner{ids: make(map[uint64]int32)}
}

// Intern returns the id for alias, assigning a fresh one
// on first sight.
func (in *Interner) Intern(alias string) int32 {
	h := siphash.Hash(0, 0, []byte(alias))
	if id, ok := in.ids[h]; ok {
		if in.names[id] != alias {
			// 64-bit siphash over a handful of aliases;
			// a collision here means a broken build
			panic(fmt.Sprintf("qgraph: alias hash collision: %q vs %q", in.names[id], alias))
		}
		return id
	}
	id := int32(len(in.names))
	in.ids[h] = id
	in.names = append(in.names, alias)
	return id
}

// Name returns the alias interned under id.
func (in *Interner) Name(id int32) string { return in.names[id] }

// Len returns the number of distinct aliases interned.
func (in *Interner) Len() int { return len(in.names) }
