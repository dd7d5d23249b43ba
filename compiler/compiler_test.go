package compiler

import (
	"strings"
	"testing"

	"github.com/hendersonlang/rexc/instructions"
)

// We try to compile several bogus regexes.
func TestBogusInput(t *testing.T) {
	tests := []string{
		"",
		"(a",
		"a)",
		"[abc",
		"a|",
		"()",
		"[z-a]",
	}

	for _, test := range tests {
		_, err := Compile(test, Options{})
		if err == nil {
			t.Errorf("We expected an error compiling %q, but got none!", test)
		}
	}
}

// TestValidPrograms pins the canonical scenarios of spec.md §8.
func TestValidPrograms(t *testing.T) {
	tests := []struct {
		regex string
		want  []instructions.Triple
	}{
		{"a", []instructions.Triple{{Op: int(instructions.Char), Arg1: 'a'}, {Op: int(instructions.Match)}}},
		{".", []instructions.Triple{{Op: int(instructions.Char), Arg2: instructions.INF}, {Op: int(instructions.Match)}}},
		{"ab", []instructions.Triple{
			{Op: int(instructions.Char), Arg1: 'a'},
			{Op: int(instructions.Char), Arg1: 'b'},
			{Op: int(instructions.Match)},
		}},
		{"a|b", []instructions.Triple{
			{Op: int(instructions.Split), Arg1: 1, Arg2: 3},
			{Op: int(instructions.Char), Arg1: 'a'},
			{Op: int(instructions.Jmp), Arg1: 4},
			{Op: int(instructions.Char), Arg1: 'b'},
			{Op: int(instructions.Match)},
		}},
		{"a*", []instructions.Triple{
			{Op: int(instructions.Split), Arg1: 1, Arg2: 3},
			{Op: int(instructions.Char), Arg1: 'a'},
			{Op: int(instructions.Jmp), Arg1: 0},
			{Op: int(instructions.Match)},
		}},
		{"a+", []instructions.Triple{
			{Op: int(instructions.Char), Arg1: 'a'},
			{Op: int(instructions.Split), Arg1: 0, Arg2: 2},
			{Op: int(instructions.Match)},
		}},
		{"a?", []instructions.Triple{
			{Op: int(instructions.Split), Arg1: 1, Arg2: 2},
			{Op: int(instructions.Char), Arg1: 'a'},
			{Op: int(instructions.Match)},
		}},
		// [^a]'s single exclusion still needs the full complement
		// algebra (the excluded char splits the universal range into
		// two surviving pieces), so it lowers to the same two-
		// alternative split/jmp cascade shape as a bare negated class
		// rather than a single `nchar`; see DESIGN.md's Open Questions.
		{"[^a]", []instructions.Triple{
			{Op: int(instructions.Split), Arg1: 1, Arg2: 2},
			{Op: int(instructions.Jmp), Arg1: 4},
			{Op: int(instructions.Char), Arg1: 0, Arg2: 'a' - 1},
			{Op: int(instructions.Jmp), Arg1: 5},
			{Op: int(instructions.Char), Arg1: 'a' + 1, Arg2: 2 << 15},
			{Op: int(instructions.Match)},
		}},
		{"[a-z]", []instructions.Triple{
			{Op: int(instructions.Char), Arg1: 'a', Arg2: 'z'},
			{Op: int(instructions.Match)},
		}},
	}

	for _, tt := range tests {
		got, err := Compile(tt.regex, Options{})
		if err != nil {
			t.Errorf("Compile(%q): unexpected error: %s", tt.regex, err)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("Compile(%q) = %+v, want %+v", tt.regex, got, tt.want)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("Compile(%q)[%d] = %+v, want %+v", tt.regex, i, got[i], tt.want[i])
			}
		}
	}
}

// TestEndsWithMatch confirms every compiled program terminates in `match`.
func TestEndsWithMatch(t *testing.T) {
	for _, regex := range []string{"a", "ab", "a|b", "a*", "[abc]", `\d`} {
		got, err := Compile(regex, Options{})
		if err != nil {
			t.Fatalf("Compile(%q): unexpected error: %s", regex, err)
		}
		last := got[len(got)-1]
		if instructions.Opcode(last.Op) != instructions.Match {
			t.Errorf("Compile(%q): expected a trailing match, got %+v", regex, got)
		}
	}
}

// TestFullGraphBitExact confirms full_graph=true and full_graph=false
// serialize to the same bytecode, per spec.md §8.
func TestFullGraphBitExact(t *testing.T) {
	for _, regex := range []string{"a", "ab", "a|b", "a*", "(ab)+", "[abc]"} {
		collapsed, err := Compile(regex, Options{})
		if err != nil {
			t.Fatalf("Compile(%q): unexpected error: %s", regex, err)
		}
		expanded, err := Compile(regex, Options{FullGraph: true})
		if err != nil {
			t.Fatalf("Compile(%q, full_graph): unexpected error: %s", regex, err)
		}
		if len(collapsed) != len(expanded) {
			t.Fatalf("Compile(%q): full_graph mismatch: %+v vs %+v", regex, collapsed, expanded)
		}
		for i := range collapsed {
			if collapsed[i] != expanded[i] {
				t.Errorf("Compile(%q)[%d]: full_graph mismatch: %+v vs %+v", regex, i, collapsed[i], expanded[i])
			}
		}
	}
}

// TestDeterminism confirms compiling the same regex twice yields bit-exact
// output, per spec.md §8.
func TestDeterminism(t *testing.T) {
	for _, regex := range []string{"[\\w\\D]", "[^\\d\\W]", `\S`} {
		first, err := Compile(regex, Options{})
		if err != nil {
			t.Fatalf("Compile(%q): unexpected error: %s", regex, err)
		}
		second, err := Compile(regex, Options{})
		if err != nil {
			t.Fatalf("Compile(%q): unexpected error: %s", regex, err)
		}
		if len(first) != len(second) {
			t.Fatalf("Compile(%q): nondeterministic length: %+v vs %+v", regex, first, second)
		}
		for i := range first {
			if first[i] != second[i] {
				t.Errorf("Compile(%q)[%d]: nondeterministic: %+v vs %+v", regex, i, first[i], second[i])
			}
		}
	}
}

// TestCompileWithASTAndRenderAST exercises the diagramming entry point end
// to end.
func TestCompileWithASTAndRenderAST(t *testing.T) {
	root, triples, err := CompileWithAST("a|b", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(triples) == 0 {
		t.Fatal("expected a non-empty program")
	}

	var buf strings.Builder
	if err := RenderAST(root, &buf, "AST"); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !strings.Contains(buf.String(), "digraph AST") {
		t.Errorf("expected a digraph header, got:\n%s", buf.String())
	}
}
