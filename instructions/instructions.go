// Package instructions contains a series of types.
//
// The AST's code emitters build up a program as a slice of Instruction
// values; at serialization time each is converted into a final opcode
// triple - (opcode, arg1, arg2) - ready for the hendersonvm to execute.
package instructions

import (
	"fmt"

	"github.com/hendersonlang/rexc/compileerr"
)

// Opcode holds the numeric opcode of one VM instruction. The numbering is
// part of the wire format and must not change.
type Opcode int

const (
	// Match halts the VM with success. Takes no arguments.
	Match Opcode = 0

	// Char matches any codepoint in [Arg1, Arg2]. Arg2==0 means a
	// single character at Arg1.
	Char Opcode = 1

	// Split forks the VM to two program counters, Arg1 and Arg2.
	Split Opcode = 2

	// Jmp is an unconditional branch to Arg1.
	Jmp Opcode = 3

	// Nchar matches any codepoint NOT in [Arg1, Arg2], same argument
	// convention as Char.
	Nchar Opcode = 4
)

// String renders an Opcode as the lower-case mnemonic used by the
// pretty-printer.
func (o Opcode) String() string {
	switch o {
	case Match:
		return "match"
	case Char:
		return "char"
	case Split:
		return "split"
	case Jmp:
		return "jmp"
	case Nchar:
		return "nchar"
	default:
		return fmt.Sprintf("opcode(%d)", int(o))
	}
}

const (
	// INF is the highest Unicode codepoint, used as the upper bound of
	// a universal range.
	INF = 0x10FFFF

	// Wildcard is a synonym for INF used as the high end of an
	// all-chars range - kept distinct from INF in name only, per the
	// data model's own phrasing, so call sites can say what they mean.
	Wildcard = INF

	// NoArg marks an instruction argument that is simply absent (e.g.
	// Match's two arguments, or Char's Arg2 for a single character).
	// It serializes to 0.
	NoArg = -1

	// Placeholder marks an instruction argument - always a split/jmp
	// target - that has been emitted but not yet back-patched. A
	// Placeholder surviving to Serialize is a bug in the compiler.
	Placeholder = -2
)

// Instruction is a single VM instruction under construction: an opcode tag
// plus two argument cells that may hold a real value, NoArg, or (for
// split/jmp targets) an unresolved Placeholder pending back-patching.
type Instruction struct {
	Op   Opcode
	Arg1 int
	Arg2 int
}

// Char1 builds a `char`/`nchar` instruction for a single codepoint.
func Char1(op Opcode, c rune) Instruction {
	return Instruction{Op: op, Arg1: int(c), Arg2: NoArg}
}

// CharRange builds a `char`/`nchar` instruction over [lo, hi].
func CharRange(op Opcode, lo, hi rune) Instruction {
	return Instruction{Op: op, Arg1: int(lo), Arg2: int(hi)}
}

// Triple is the fully-resolved, serialized form of an Instruction: numeric
// opcode plus two non-negative integer arguments.
type Triple struct {
	Op   int
	Arg1 int
	Arg2 int
}

// Serialize converts a finished instruction list into its triple form. A
// residual Placeholder in any argument means a split/jmp target was never
// back-patched, which is a bug in the compiler rather than in the input -
// it is reported as an Internal error rather than silently zeroed.
func Serialize(list []Instruction) ([]Triple, error) {
	out := make([]Triple, 0, len(list))
	for idx, instr := range list {
		if instr.Arg1 == Placeholder || instr.Arg2 == Placeholder {
			return nil, compileerr.Int("instruction %d (%s) has an unresolved placeholder argument", idx, instr.Op)
		}
		a1 := instr.Arg1
		if a1 == NoArg {
			a1 = 0
		}
		a2 := instr.Arg2
		if a2 == NoArg {
			a2 = 0
		}
		out = append(out, Triple{Op: int(instr.Op), Arg1: a1, Arg2: a2})
	}
	return out, nil
}

// jsonTriple is the `-j/--json` wire shape: command name uppercased,
// followed by its two arguments.
type jsonTriple struct {
	Cmd  string
	Arg1 int
	Arg2 int
}

// SerializeJSON renders a serialized program as `[CMDNAME, arg1, arg2]`
// triples with uppercase opcode names, per the `-j/--json` CLI flag.
func SerializeJSON(program []Triple) []jsonTriple {
	out := make([]jsonTriple, 0, len(program))
	for _, t := range program {
		out = append(out, jsonTriple{
			Cmd:  opcodeName(t.Op),
			Arg1: t.Arg1,
			Arg2: t.Arg2,
		})
	}
	return out
}

// MarshalJSON renders a jsonTriple as a 3-element JSON array rather than
// an object, matching the original `[CMDNAME, arg1, arg2]` shape.
func (j jsonTriple) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("[%q,%d,%d]", j.Cmd, j.Arg1, j.Arg2)), nil
}

func opcodeName(op int) string {
	switch Opcode(op) {
	case Match:
		return "MATCH"
	case Char:
		return "CHAR"
	case Split:
		return "SPLIT"
	case Jmp:
		return "JMP"
	case Nchar:
		return "NCHAR"
	default:
		return fmt.Sprintf("OPCODE(%d)", op)
	}
}

// PrettyPrint renders a serialized program as an index-aligned listing,
// one instruction per line. INF (and Wildcard, which has the same value)
// prints as INF and 0 as ZERO; any other char/nchar argument prints as the
// literal character it represents.
func PrettyPrint(program []Triple) string {
	out := ""
	width := len(fmt.Sprintf("%d", len(program)-1))
	if width < 1 {
		width = 1
	}
	for idx, t := range program {
		op := Opcode(t.Op)
		switch op {
		case Char, Nchar:
			out += fmt.Sprintf("%*d: %-5s %3s %3s\n", width, idx, op, specialOrChar(t.Arg1), specialOrChar(t.Arg2))
		case Split:
			out += fmt.Sprintf("%*d: %-5s %3d %3d\n", width, idx, op, t.Arg1, t.Arg2)
		case Jmp:
			out += fmt.Sprintf("%*d: %-5s %3d\n", width, idx, op, t.Arg1)
		default:
			out += fmt.Sprintf("%*d: %-5s\n", width, idx, op)
		}
	}
	return out
}

// specialOrChar renders a char/nchar argument: INF/ZERO for the symbolic
// constants, else the literal character. WILD is not a distinct case: per
// the data model Wildcard is defined as a synonym for INF (not the
// original source's separate 0x11FFFF), so it is already covered by the
// INF branch.
func specialOrChar(v int) string {
	switch v {
	case INF:
		return "INF"
	case 0:
		return "ZERO"
	}
	return string(rune(v))
}
