// Package diagram renders an AST as a graphviz dot document: nodes ranked
// by BFS depth into same-rank subgraphs, followed by one edge per
// parent/child pair.
package diagram

import (
	"fmt"
	"io"

	"github.com/hendersonlang/rexc/ast"
)

const (
	headerFmt      = "digraph %s {\n    node [shape=box];\n"
	subgraphPrefix = "    {\n        rank=same;\n"
	subgraphSuffix = "    }\n"
	nodeFmt        = "        n%d [label=%q];\n"
	nodeColorFmt   = "        n%d [label=%q, style=filled, fillcolor=%q];\n"
	edgeFmt        = "    n%d -> n%d;\n"
	footer         = "}\n"
)

// ranked pairs an AST node with the graphviz id it was assigned during the
// walk, so the edge-emission pass doesn't need to re-walk the tree.
type ranked struct {
	node *ast.Node
	id   int
}

// walk assigns a graphviz id to every node in preorder and buckets each one
// into the slice for its BFS rank (depth from root, root is rank 0), also
// recording each node's id in ids for the edge-emission pass.
func walk(n *ast.Node, rank int, nextID *int, ranks [][]ranked, ids map[*ast.Node]int) [][]ranked {
	for len(ranks) <= rank {
		ranks = append(ranks, nil)
	}
	*nextID++
	ranks[rank] = append(ranks[rank], ranked{node: n, id: *nextID})
	ids[n] = *nextID
	for _, c := range n.Children {
		ranks = walk(c, rank+1, nextID, ranks, ids)
	}
	return ranks
}

// label renders the printable form of a single node (spec.md §4.7): kind
// name, subtype when present, and the data payload for leaf-ish variants.
func label(n *ast.Node) string {
	s := kindName(n.Kind)
	if n.Subtype != "" {
		s += "/" + n.Subtype
	}
	switch n.Kind {
	case ast.NonDupRe, ast.OneChar, ast.EndRange, ast.CharClass:
		if n.Data != 0 {
			s += fmt.Sprintf(" %q", n.Data)
		}
	case ast.RangeExpr:
		s += fmt.Sprintf(" %q-%q", n.Data, n.Hi)
	case ast.SimpleRe:
		if n.Data != 0 {
			s += fmt.Sprintf(" %q", n.Data)
		}
	}
	return s
}

func kindName(k ast.Kind) string {
	switch k {
	case ast.Regex:
		return "Regex"
	case ast.ReExpr:
		return "ReExpr"
	case ast.SimpleRe:
		return "SimpleRe"
	case ast.NonDupRe:
		return "NonDupRe"
	case ast.OneChar:
		return "OneChar"
	case ast.BrackExpr:
		return "BrackExpr"
	case ast.RangeExpr:
		return "RangeExpr"
	case ast.EndRange:
		return "EndRange"
	case ast.CharClass:
		return "CharClass"
	default:
		return "Node"
	}
}

// color returns a fill color for a node's Kind, or "" for no fill -
// purely cosmetic, one color family per variant so a rendered graph is
// easier to scan.
func color(k ast.Kind) string {
	switch k {
	case ast.Regex:
		return "#e3f2fd"
	case ast.ReExpr:
		return "#e8f5e9"
	case ast.SimpleRe:
		return "#fff3e0"
	case ast.NonDupRe, ast.OneChar:
		return "#fce4ec"
	case ast.BrackExpr, ast.RangeExpr, ast.EndRange, ast.CharClass:
		return "#ede7f6"
	default:
		return ""
	}
}

// Write renders the AST rooted at root as a dot document named name.
func Write(w io.Writer, root *ast.Node, name string) error {
	var nextID int
	ids := make(map[*ast.Node]int)
	ranks := walk(root, 0, &nextID, nil, ids)

	if _, err := fmt.Fprintf(w, headerFmt, name); err != nil {
		return err
	}

	for _, rank := range ranks {
		if _, err := io.WriteString(w, subgraphPrefix); err != nil {
			return err
		}
		for _, r := range rank {
			lbl := label(r.node)
			c := color(r.node.Kind)
			var err error
			if c != "" {
				_, err = fmt.Fprintf(w, nodeColorFmt, r.id, lbl, c)
			} else {
				_, err = fmt.Fprintf(w, nodeFmt, r.id, lbl)
			}
			if err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, subgraphSuffix); err != nil {
			return err
		}
	}

	for _, rank := range ranks {
		for _, r := range rank {
			for _, c := range r.node.Children {
				if _, err := fmt.Fprintf(w, edgeFmt, r.id, ids[c]); err != nil {
					return err
				}
			}
		}
	}

	_, err := io.WriteString(w, footer)
	return err
}
