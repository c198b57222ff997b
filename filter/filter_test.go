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

package filter

import (
	"reflect"
	"testing"
)

func TestModifiedAliases(t *testing.T) {
	cases := []struct {
		tree Node
		want []string
	}{
		{
			tree: nil,
			want: []string{},
		},
		{
			tree: &Predicate{Alias: "a", Attribute: "age", Cmp: CmpGt, Value: 30},
			want: []string{"a"},
		},
		{
			tree: &Condition{
				Op:   And,
				Left: &Predicate{Alias: "b", Attribute: "name", Cmp: CmpEq, Value: "x"},
				Right: &Condition{
					Op:    Or,
					Left:  &Predicate{Alias: "a", Attribute: "age", Cmp: CmpLt, Value: 10},
					Right: &Predicate{Alias: "b", Attribute: "age", Cmp: CmpGe, Value: 20},
				},
			},
			want: []string{"a", "b"},
		},
		{
			tree: &Condition{
				Op:   Not,
				Left: &Predicate{Alias: "c", Attribute: "active", Cmp: CmpEq, Value: true},
			},
			want: []string{"c"},
		},
	}
	for i := range cases {
		got := ModifiedAliases(cases[i].tree)
		if !reflect.DeepEqual(got, cases[i].want) {
			t.Errorf("case %d: ModifiedAliases = %v, want %v", i, got, cases[i].want)
		}
		set := CollectModifiedAliases(cases[i].tree)
		if len(set) != len(cases[i].want) {
			t.Errorf("case %d: set size %d, want %d", i, len(set), len(cases[i].want))
		}
	}
}

func TestPredicateEval(t *testing.T) {
	attrs := map[string]any{
		"age":  int64(42),
		"name": "omri",
	}
	cases := []struct {
		pred Predicate
		want bool
	}{
		{Predicate{Alias: "a", Attribute: "age", Cmp: CmpGt, Value: 30}, true},
		{Predicate{Alias: "a", Attribute: "age", Cmp: CmpLe, Value: 41.5}, false},
		{Predicate{Alias: "a", Attribute: "age", Cmp: CmpEq, Value: "42"}, true},
		{Predicate{Alias: "a", Attribute: "name", Cmp: CmpEq, Value: "omri"}, true},
		{Predicate{Alias: "a", Attribute: "name", Cmp: CmpLt, Value: "zzz"}, true},
		{Predicate{Alias: "a", Attribute: "missing", Cmp: CmpEq, Value: 1}, false},
	}
	for i := range cases {
		got, err := cases[i].pred.Eval(attrs)
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if got != cases[i].want {
			t.Errorf("case %d: Eval = %v, want %v", i, got, cases[i].want)
		}
	}
}

func TestEvalTree(t *testing.T) {
	entities := map[string]map[string]any{
		"a": {"age": 42},
		"b": {"name": "roi"},
	}
	tree := &Condition{
		Op:   And,
		Left: &Predicate{Alias: "a", Attribute: "age", Cmp: CmpGt, Value: 40},
		Right: &Condition{
			Op:   Not,
			Left: &Predicate{Alias: "b", Attribute: "name", Cmp: CmpEq, Value: "omri"},
		},
	}
	got, err := EvalTree(tree, entities)
	if err != nil {
		t.Fatal(err)
	}
	if !got {
		t.Error("EvalTree = false, want true")
	}
	if got, err := EvalTree(nil, entities); err != nil || !got {
		t.Errorf("EvalTree(nil) = %v, %v; want true", got, err)
	}
}
