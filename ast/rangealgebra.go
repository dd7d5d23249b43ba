package ast

import "sort"

// rng is a closed integer interval [Lo, Hi], Lo <= Hi.
type rng struct {
	Lo, Hi int
}

// quirkSeed is the universal-range upper bound used to seed a non-matching
// bracket expression's positive alternative when no positive alternative was
// produced by its children. This is the literal `2 << 15` constant from the
// source algorithm, deliberately distinct from the INF-based universal range
// used by the matching-context nchar-to-char complement below.
const quirkSeed = 2 << 15

// intersectRange returns the true intersection of a and b, or ok=false if
// they do not overlap. This replaces the source's boundary-touch-first-match
// `_range_intersect`, which only recognized exact endpoint touches and
// strict containment rather than a general interval intersection.
func intersectRange(a, b rng) (rng, bool) {
	lo := a.Lo
	if b.Lo > lo {
		lo = b.Lo
	}
	hi := a.Hi
	if b.Hi < hi {
		hi = b.Hi
	}
	if lo > hi {
		return rng{}, false
	}
	return rng{Lo: lo, Hi: hi}, true
}

// subtractRange returns the 0, 1, or 2 ranges that remain after removing x
// from r. This is a general 5-case subtraction; the source's
// `_remove_from_range` falls through to an incorrect empty result for a
// non-degenerate left-trim or right-trim, a second bug beyond the one
// spec.md names explicitly - see the design notes for the trace.
func subtractRange(r, x rng) []rng {
	if x.Hi < r.Lo || x.Lo > r.Hi {
		return []rng{r}
	}
	if x.Lo <= r.Lo && x.Hi >= r.Hi {
		return nil
	}
	if x.Lo <= r.Lo {
		return []rng{{Lo: x.Hi + 1, Hi: r.Hi}}
	}
	if x.Hi >= r.Hi {
		return []rng{{Lo: r.Lo, Hi: x.Lo - 1}}
	}
	return []rng{{Lo: r.Lo, Hi: x.Lo - 1}, {Lo: x.Hi + 1, Hi: r.Hi}}
}

// intersectAll computes the pairwise AND of a family of range classes: the
// first class supplies the base candidate pieces, and each subsequent class
// is intersected against every piece so far, splitting a piece into several
// when the class it is checked against is itself a union of disjoint
// sub-ranges. This replaces the source's `_range_matches_class`, which kept
// only the first overlapping sub-range it found (an `or`) instead of
// combining the constraint from every family member.
func intersectAll(classes [][]rng) []rng {
	if len(classes) == 0 {
		return nil
	}
	pieces := append([]rng(nil), classes[0]...)
	for _, class := range classes[1:] {
		var next []rng
		for _, p := range pieces {
			for _, c := range class {
				if ix, ok := intersectRange(p, c); ok {
					next = append(next, ix)
				}
			}
		}
		pieces = next
		if len(pieces) == 0 {
			break
		}
	}
	return pieces
}

// dedupSorted removes duplicate ranges and returns them sorted by (Lo, Hi).
// The source relies on Python set iteration order, which happens to be
// stable for small non-negative integers; a Go map has no such guarantee, so
// transform_classes here sorts explicitly to keep bracket-expression
// lowering reproducible across runs.
func dedupSorted(in []rng) []rng {
	seen := make(map[rng]bool, len(in))
	out := make([]rng, 0, len(in))
	for _, r := range in {
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Lo != out[j].Lo {
			return out[i].Lo < out[j].Lo
		}
		return out[i].Hi < out[j].Hi
	})
	return out
}

// TransformClasses takes a family of positive range-classes (each an
// alternative, itself a union of ranges) and a list of excluded ranges, and
// returns the minimized list of single-range alternatives that satisfy every
// positive class and none of the exclusions. This is the set-algebra core of
// bracket-expression lowering (spec.md §4.2).
func TransformClasses(classes [][]rng, excludes []rng) [][]rng {
	working := dedupSorted(intersectAll(classes))
	for _, ex := range excludes {
		var next []rng
		for _, r := range working {
			next = append(next, subtractRange(r, ex)...)
		}
		working = dedupSorted(next)
	}
	out := make([][]rng, 0, len(working))
	for _, r := range working {
		out = append(out, []rng{r})
	}
	return out
}
