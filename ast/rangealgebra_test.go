package ast

import (
	"testing"

	"github.com/hendersonlang/rexc/instructions"
)

func TestIntersectRange(t *testing.T) {
	tests := []struct {
		a, b rng
		want rng
		ok   bool
	}{
		{rng{0, 10}, rng{10, 20}, rng{10, 10}, true},
		{rng{0, 10}, rng{5, 8}, rng{5, 8}, true},
		{rng{0, 10}, rng{11, 20}, rng{}, false},
		{rng{5, 5}, rng{5, 5}, rng{5, 5}, true},
	}
	for _, tt := range tests {
		got, ok := intersectRange(tt.a, tt.b)
		if ok != tt.ok {
			t.Errorf("intersectRange(%v, %v): ok=%v, want %v", tt.a, tt.b, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("intersectRange(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

// TestSubtractRangeGeneralCases pins the 5-case subtraction, including the
// non-degenerate left/right-trim cases the source's `_remove_from_range`
// handled incorrectly.
func TestSubtractRangeGeneralCases(t *testing.T) {
	tests := []struct {
		name string
		r, x rng
		want []rng
	}{
		{"no overlap left", rng{10, 20}, rng{0, 5}, []rng{{10, 20}}},
		{"no overlap right", rng{10, 20}, rng{25, 30}, []rng{{10, 20}}},
		{"fully covers", rng{10, 20}, rng{0, 30}, nil},
		{"exact match", rng{10, 20}, rng{10, 20}, nil},
		{"left trim, single point", rng{10, 20}, rng{10, 10}, []rng{{11, 20}}},
		{"left trim, non-degenerate", rng{10, 20}, rng{10, 15}, []rng{{16, 20}}},
		{"right trim, single point", rng{10, 20}, rng{20, 20}, []rng{{10, 19}}},
		{"right trim, non-degenerate", rng{10, 20}, rng{15, 20}, []rng{{10, 14}}},
		{"strict interior split", rng{10, 20}, rng{13, 16}, []rng{{10, 12}, {17, 20}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := subtractRange(tt.r, tt.x)
			if len(got) != len(tt.want) {
				t.Fatalf("subtractRange(%v, %v) = %v, want %v", tt.r, tt.x, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("subtractRange(%v, %v)[%d] = %v, want %v", tt.r, tt.x, i, got[i], tt.want[i])
				}
			}
		})
	}
}

// TestSubtractRangeChain traces bare `\S`'s five sequential whitespace
// subtractions from the quirkSeed universal range down to its final shape.
func TestSubtractRangeChain(t *testing.T) {
	r := []rng{{0, quirkSeed}}
	whitespace := []rng{{9, 9}, {10, 10}, {11, 11}, {12, 12}, {13, 13}}
	for _, ex := range whitespace {
		var next []rng
		for _, piece := range r {
			next = append(next, subtractRange(piece, ex)...)
		}
		r = next
	}
	want := []rng{{0, 8}, {14, quirkSeed}}
	if len(r) != len(want) {
		t.Fatalf("got %v, want %v", r, want)
	}
	for i := range want {
		if r[i] != want[i] {
			t.Errorf("piece %d: got %v, want %v", i, r[i], want[i])
		}
	}
}

func TestIntersectAllSingleClass(t *testing.T) {
	got := intersectAll([][]rng{{{0, 100}}})
	if len(got) != 1 || got[0] != (rng{0, 100}) {
		t.Errorf("got %v", got)
	}
}

func TestIntersectAllSplitsAcrossUnion(t *testing.T) {
	// base [0,100] intersected against a class that is a union of two
	// disjoint pieces must split into two surviving pieces.
	got := intersectAll([][]rng{{{0, 100}}, {{10, 20}, {80, 90}}})
	want := []rng{{10, 20}, {80, 90}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTransformClassesEmptyIntersection(t *testing.T) {
	// [^\w\D]: (not w) AND d is empty, since w already contains all digits.
	got := TransformClasses([][]rng{{{48, 57}}}, []rng{{48, 57}})
	if len(got) != 0 {
		t.Errorf("expected no surviving alternatives, got %v", got)
	}
}

func TestTransformClassesComplement(t *testing.T) {
	// complement of a single digit range against the INF universal range.
	got := TransformClasses([][]rng{{{0, instructions.INF}}}, []rng{{48, 57}})
	want := [][]rng{{{0, 47}}, {{58, instructions.INF}}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if len(got[i]) != 1 || got[i][0] != want[i][0] {
			t.Errorf("alt %d: got %v, want %v", i, got[i], want[i])
		}
	}
}
