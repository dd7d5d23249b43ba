package ast

import "github.com/hendersonlang/rexc/instructions"

// GenerateInstructions walks a node and appends its code to instrs,
// dispatching on Kind. It is the single entry point every other package
// should call; BrackExpr's children (EndRange/RangeExpr/CharClass) are only
// ever reached through generateBrackExpr, never through this function
// directly, since their emission rules depend on the enclosing bracket's
// matching/not-matching flag rather than on anything passed down here.
func GenerateInstructions(n *Node, instrs []instructions.Instruction) []instructions.Instruction {
	switch n.Kind {
	case Regex:
		return generateRegex(n, instrs)
	case ReExpr:
		return generateReExpr(n, instrs)
	case SimpleRe:
		return generateSimpleRe(n, instrs)
	case NonDupRe:
		return generateNonDupRe(n, instrs)
	case OneChar:
		return generateOneChar(n, instrs)
	case BrackExpr:
		return generateBrackExpr(n, instrs)
	default:
		for _, c := range n.Children {
			instrs = GenerateInstructions(c, instrs)
		}
		return instrs
	}
}

// generateRegex emits the alternation scaffold of spec.md §4.5.2:
//
//	L0: split L1, L2
//	L1: <code for a>
//	    jmp L3
//	L2: <code for b>
//	L3:
func generateRegex(n *Node, instrs []instructions.Instruction) []instructions.Instruction {
	if n.Subtype != SubAlt {
		return passThrough(n, instrs)
	}

	splitIdx := len(instrs)
	instrs = append(instrs, instructions.Instruction{Op: instructions.Split, Arg1: splitIdx + 1, Arg2: instructions.Placeholder})
	instrs = GenerateInstructions(n.Children[0], instrs)

	jmpIdx := len(instrs)
	instrs = append(instrs, instructions.Instruction{Op: instructions.Jmp, Arg1: instructions.Placeholder, Arg2: instructions.NoArg})
	instrs[splitIdx].Arg2 = len(instrs)

	instrs = GenerateInstructions(n.Children[1], instrs)
	instrs[jmpIdx].Arg1 = len(instrs)
	return instrs
}

// generateReExpr emits concatenation: left's code, then right's code.
func generateReExpr(n *Node, instrs []instructions.Instruction) []instructions.Instruction {
	if n.Subtype != SubConcat {
		return passThrough(n, instrs)
	}
	instrs = GenerateInstructions(n.Children[0], instrs)
	instrs = GenerateInstructions(n.Children[1], instrs)
	return instrs
}

// generateSimpleRe emits the duplication scaffolds of spec.md §4.5.3.
func generateSimpleRe(n *Node, instrs []instructions.Instruction) []instructions.Instruction {
	if n.Subtype != SubDup {
		return passThrough(n, instrs)
	}
	child := n.Children[0]

	switch n.Data {
	case '+':
		// L1: <code for e>
		//     split L1, L3
		// L3:
		backJump := len(instrs)
		instrs = GenerateInstructions(child, instrs)
		forwardJump := len(instrs) + 1
		instrs = append(instrs, instructions.Instruction{Op: instructions.Split, Arg1: backJump, Arg2: forwardJump})
		return instrs
	case '*':
		// L1: split L2, L3
		// L2: <code for e>
		//     jmp L1
		// L3:
		splitIdx := len(instrs)
		instrs = append(instrs, instructions.Instruction{Op: instructions.Split, Arg1: splitIdx + 1, Arg2: instructions.Placeholder})
		instrs = GenerateInstructions(child, instrs)
		instrs = append(instrs, instructions.Instruction{Op: instructions.Jmp, Arg1: splitIdx, Arg2: instructions.NoArg})
		instrs[splitIdx].Arg2 = len(instrs)
		return instrs
	case '?':
		// L0: split L1, L2
		// L1: <code for e>
		// L2:
		splitIdx := len(instrs)
		instrs = append(instrs, instructions.Instruction{Op: instructions.Split, Arg1: splitIdx + 1, Arg2: instructions.Placeholder})
		instrs = GenerateInstructions(child, instrs)
		instrs[splitIdx].Arg2 = len(instrs)
		return instrs
	}
	return instrs
}

// generateNonDupRe emits a literal character or delegates to a group's
// sub-regex.
func generateNonDupRe(n *Node, instrs []instructions.Instruction) []instructions.Instruction {
	switch n.Subtype {
	case SubChar:
		return append(instrs, instructions.Char1(instructions.Char, n.Data))
	case SubGroup:
		return GenerateInstructions(n.Children[0], instrs)
	}
	return passThrough(n, instrs)
}

// generateOneChar emits spec.md §4.5.4's wildcard/literal rule: `.` emits
// `char 0 INF`; an ordinary OneChar emits `char c`.
func generateOneChar(n *Node, instrs []instructions.Instruction) []instructions.Instruction {
	if n.Subtype == SubWildcard {
		return append(instrs, instructions.CharRange(instructions.Char, 0, instructions.INF))
	}
	return append(instrs, instructions.Char1(instructions.Char, n.Data))
}

// passThrough handles a "plain" unit-production node by delegating straight
// to its one child - the full_graph=false reduction is a cosmetic shortcut,
// so a full_graph=true tree must produce identical code through this path.
func passThrough(n *Node, instrs []instructions.Instruction) []instructions.Instruction {
	for _, c := range n.Children {
		instrs = GenerateInstructions(c, instrs)
	}
	return instrs
}
