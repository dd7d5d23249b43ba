// Package ast holds the regex abstract syntax tree and its code emitters.
//
// Every node variant named in the data model is represented by one tagged
// Node struct rather than a family of per-variant types; GenerateInstructions
// is a single dispatch switch over Kind, in the same spirit as the
// switch-over-token-type dispatch the rest of this compiler uses elsewhere.
package ast

import "github.com/hendersonlang/rexc/compileerr"

// Kind tags which node variant a Node represents.
type Kind int

const (
	// Regex is the alternation root: subtype "alt" has two children
	// joined by `|`; subtype "plain" passes through to its one child
	// (only appears when the caller keeps unit productions).
	Regex Kind = iota

	// ReExpr is concatenation: subtype "concat" has two children (left,
	// right); subtype "plain" passes through.
	ReExpr

	// SimpleRe is duplication: subtype "dup" stores the operator rune
	// (*, +, ?) in Data and has one child; subtype "plain" passes
	// through.
	SimpleRe

	// NonDupRe is a literal character or a parenthesized group:
	// subtype "char" carries a codepoint in Data; subtype "group" wraps
	// one child.
	NonDupRe

	// OneChar carries a single codepoint (subtype "char", Data holds it)
	// or is the wildcard (subtype "wildcard", Data unused).
	OneChar

	// BrackExpr is a bracket expression: subtype "matching_list" for
	// `[...]`, "nonmatching_list" for `[^...]`. Its children are a
	// follow-list of EndRange/RangeExpr/CharClass nodes.
	BrackExpr

	// RangeExpr is an `a-z`-style range inside a bracket expression;
	// Data holds the low endpoint, Hi the high endpoint.
	RangeExpr

	// EndRange is a single character inside a bracket expression; Data
	// holds the codepoint.
	EndRange

	// CharClass is a named class escape inside a bracket expression;
	// Data holds the class letter (one of s d w S D W).
	CharClass
)

// Subtype string constants, named after the grammar productions they tag.
const (
	SubPlain            = "plain"
	SubAlt               = "alt"
	SubConcat            = "concat"
	SubDup               = "dup"
	SubChar              = "char"
	SubGroup             = "group"
	SubMatchingList       = "matching_list"
	SubNonMatchingList    = "nonmatching_list"
	SubWildcard           = "wildcard"
)

// NewWildcard builds the OneChar{wildcard} node for `.`.
func NewWildcard() *Node {
	return &Node{Kind: OneChar, Subtype: SubWildcard}
}

// Node is the single tagged-sum-type used for every AST variant. Data and Hi
// are only meaningful for the Kind values that document them above; a node
// created by the parser is never mutated once built.
type Node struct {
	Kind     Kind
	Subtype  string
	Children []*Node
	Data     rune
	Hi       rune
}

// NewLeaf builds a childless node carrying a single data rune (OneChar,
// NonDupRe{char}, EndRange, CharClass).
func NewLeaf(kind Kind, subtype string, data rune) *Node {
	return &Node{Kind: kind, Subtype: subtype, Data: data}
}

// NewRange builds a RangeExpr node over [lo, hi].
func NewRange(lo, hi rune) *Node {
	return &Node{Kind: RangeExpr, Data: lo, Hi: hi}
}

// NewValidRange builds a RangeExpr node over [lo, hi], rejecting a reversed
// range as a compile error rather than silently accepting an empty interval.
func NewValidRange(pos int, lo, hi rune) (*Node, error) {
	if lo > hi {
		return nil, compileerr.Sem(pos, "range %q-%q has its endpoints reversed", lo, hi)
	}
	return NewRange(lo, hi), nil
}

// NewUnary builds a node with exactly one child (NonDupRe{group},
// SimpleRe{dup}).
func NewUnary(kind Kind, subtype string, data rune, child *Node) *Node {
	return &Node{Kind: kind, Subtype: subtype, Data: data, Children: []*Node{child}}
}

// NewBinary builds a node with exactly two children (Regex{alt},
// ReExpr{concat}).
func NewBinary(kind Kind, subtype string, left, right *Node) *Node {
	return &Node{Kind: kind, Subtype: subtype, Children: []*Node{left, right}}
}

// NewBrackExpr builds a BrackExpr node over a follow-list of inner terms.
func NewBrackExpr(subtype string, children []*Node) *Node {
	return &Node{Kind: BrackExpr, Subtype: subtype, Children: children}
}
