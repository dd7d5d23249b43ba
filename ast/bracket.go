package ast

import "github.com/hendersonlang/rexc/instructions"

// rawOp tags an intermediate bracket-lowering instruction. BREAK is internal
// to this file - a synthetic marker that separates two same-polarity named
// class expansions - and never survives past generateBrackExpr into an
// instructions.Instruction, so it has no analogue in instructions.Opcode.
type rawOp int

const (
	rawChar rawOp = iota
	rawNchar
	rawBreak
)

// rawInstr is a char/nchar/BREAK instruction still under construction inside
// a bracket expression, before the matching/not-matching assembly rules
// decide which final ranges survive. Lo/Hi are always both set (a single
// character has Lo==Hi), unlike instructions.Instruction's NoArg convention.
type rawInstr struct {
	op     rawOp
	lo, hi int
}

// classRange is one element of a named character class's definition.
type classRange struct{ lo, hi rune }

// positiveClasses holds the frozen definitions of the positive named
// classes, per spec.md §4.1.
var positiveClasses = map[rune][]classRange{
	's': {{'\n', '\n'}, {'\r', '\r'}, {'\t', '\t'}, {'\f', '\f'}, {'\v', '\v'}},
	'd': {{'0', '9'}},
	'w': {{'0', '9'}, {'a', 'z'}, {'A', 'Z'}, {'_', '_'}},
}

// negativeAlias maps a negative class letter to the positive letter it
// complements.
var negativeAlias = map[rune]rune{
	'S': 's',
	'D': 'd',
	'W': 'w',
}

// allChars is the universal range used by the matching-context nchar-to-char
// complement. It is INF-based, and deliberately distinct from the
// not-matching seed's quirkSeed constant - see rangealgebra.go.
var allChars = rng{Lo: 0, Hi: instructions.INF}

// generateRaw appends the raw instructions produced by one bracket-expression
// follow-list term (an EndRange, RangeExpr, or CharClass node).
func generateRaw(n *Node, raw []rawInstr, matching bool) []rawInstr {
	switch n.Kind {
	case EndRange:
		if matching {
			return append(raw, rawInstr{op: rawChar, lo: int(n.Data), hi: int(n.Data)})
		}
		return append(raw, rawInstr{op: rawNchar, lo: int(n.Data), hi: int(n.Data)})
	case RangeExpr:
		if matching {
			return append(raw, rawInstr{op: rawChar, lo: int(n.Data), hi: int(n.Hi)})
		}
		return append(raw, rawInstr{op: rawNchar, lo: int(n.Data), hi: int(n.Hi)})
	case CharClass:
		return generateCharClassRaw(n, raw, matching)
	}
	return raw
}

// generateCharClassRaw implements the four CharClass branches of spec.md
// §4.5.5: matching/not-matching crossed with positive-letter/negative-alias.
func generateCharClassRaw(n *Node, raw []rawInstr, matching bool) []rawInstr {
	letter := n.Data
	positive, isNegativeAlias := negativeAlias[letter]

	var list []classRange
	var op rawOp

	switch {
	case matching && isNegativeAlias:
		// [\W] = [^\w]: nchar per element; BREAK if the previous
		// instruction was also an nchar, so the two complements stay
		// separate alternatives.
		list = positiveClasses[positive]
		op = rawNchar
		if len(raw) > 0 && raw[len(raw)-1].op == rawNchar {
			raw = append(raw, rawInstr{op: rawBreak})
		}
	case matching:
		// [\w]: char per element of the positive class directly.
		list = positiveClasses[letter]
		op = rawChar
	case isNegativeAlias:
		// [^\W] = [\w]: char per element; BREAK if the previous
		// instruction was also a char.
		list = positiveClasses[positive]
		op = rawChar
		if len(raw) > 0 && raw[len(raw)-1].op == rawChar {
			raw = append(raw, rawInstr{op: rawBreak})
		}
	default:
		// [^\w]: nchar per element. No BREAK: these are a global
		// requirement, not separate alternatives.
		list = positiveClasses[letter]
		op = rawNchar
	}

	for _, cr := range list {
		raw = append(raw, rawInstr{op: op, lo: int(cr.lo), hi: int(cr.hi)})
	}
	return raw
}

// assembleMatching builds the matching-context switch_instrs list: each char
// becomes its own alternative, each nchar is complemented against the full
// INF-based universal range, and BREAK starts a new (possibly empty)
// alternative.
func assembleMatching(raw []rawInstr) [][]rng {
	var alts [][]rng
	for _, r := range raw {
		switch r.op {
		case rawChar:
			alts = append(alts, []rng{{Lo: r.lo, Hi: r.hi}})
		case rawNchar:
			complement := TransformClasses([][]rng{{allChars}}, []rng{{Lo: r.lo, Hi: r.hi}})
			alts = append(alts, complement...)
		case rawBreak:
			alts = append(alts, []rng{})
		}
	}
	return alts
}

// assembleNotMatching builds the not-matching-context switch_instrs and
// tailing_nchars lists: consecutive chars accrue into the current
// alternative, an nchar closes the alternative and contributes to the
// tailing exclusions, and a BREAK also forces a new alternative. If no
// positive alternative was produced at all, the universal quirkSeed range
// seeds one.
func assembleNotMatching(raw []rawInstr) (switchInstrs [][]rng, tailingNchars []rng) {
	newAlt := true
	for _, r := range raw {
		switch r.op {
		case rawChar:
			if newAlt || len(switchInstrs) == 0 {
				switchInstrs = append(switchInstrs, []rng{{Lo: r.lo, Hi: r.hi}})
			} else {
				last := len(switchInstrs) - 1
				switchInstrs[last] = append(switchInstrs[last], rng{Lo: r.lo, Hi: r.hi})
			}
			newAlt = false
		case rawNchar:
			newAlt = true
			tailingNchars = append(tailingNchars, rng{Lo: r.lo, Hi: r.hi})
		case rawBreak:
			newAlt = true
		}
	}
	if len(switchInstrs) == 0 {
		switchInstrs = [][]rng{{{Lo: 0, Hi: quirkSeed}}}
	}
	return switchInstrs, tailingNchars
}

// toInstrGroups converts the final, post-TransformClasses alternative groups
// into instructions.Instruction groups. Every surviving range, whichever
// polarity it started as, is emitted as a `char` instruction: a bracket
// expression's lowering always reduces to a disjunction of positive ranges.
func toInstrGroups(alts [][]rng) [][]instructions.Instruction {
	out := make([][]instructions.Instruction, len(alts))
	for i, g := range alts {
		instrs := make([]instructions.Instruction, len(g))
		for j, r := range g {
			if r.Lo == r.Hi {
				instrs[j] = instructions.Char1(instructions.Char, rune(r.Lo))
			} else {
				instrs[j] = instructions.CharRange(instructions.Char, rune(r.Lo), rune(r.Hi))
			}
		}
		out[i] = instrs
	}
	return out
}

// emitScaffold appends the final split/jmp cascade (or the single
// instruction fast path) for a bracket expression's alternative groups,
// following the address arithmetic in spec.md §4.5.5 exactly.
func emitScaffold(instrs []instructions.Instruction, groups [][]instructions.Instruction) []instructions.Instruction {
	if len(groups) == 1 && len(groups[0]) == 1 {
		return append(instrs, groups[0][0])
	}

	base := len(instrs)
	k := len(groups)
	sumLen := 0
	for _, g := range groups {
		sumLen += len(g)
	}
	endOfSplits := base + k
	endOfJumps := base + 2*k - 1 + sumLen

	i := 0
	for _, g := range groups[:k-1] {
		instrs = append(instrs, instructions.Instruction{
			Op:   instructions.Split,
			Arg1: len(instrs) + 1,
			Arg2: endOfSplits + i,
		})
		i += 1 + len(g)
	}
	instrs = append(instrs, instructions.Instruction{Op: instructions.Jmp, Arg1: endOfSplits + i, Arg2: instructions.NoArg})

	for _, g := range groups[:k-1] {
		instrs = append(instrs, g...)
		instrs = append(instrs, instructions.Instruction{Op: instructions.Jmp, Arg1: endOfJumps, Arg2: instructions.NoArg})
	}
	instrs = append(instrs, groups[k-1]...)
	return instrs
}

// generateBrackExpr lowers a BrackExpr node's follow-list into its final
// char/split/jmp scaffold, per spec.md §4.5.5.
func generateBrackExpr(n *Node, instrs []instructions.Instruction) []instructions.Instruction {
	matching := n.Subtype == SubMatchingList

	var raw []rawInstr
	for _, c := range n.Children {
		raw = generateRaw(c, raw, matching)
	}

	var alts [][]rng
	if matching {
		alts = assembleMatching(raw)
	} else {
		switchInstrs, tailingNchars := assembleNotMatching(raw)
		alts = TransformClasses(switchInstrs, tailingNchars)
	}

	return emitScaffold(instrs, toInstrGroups(alts))
}
