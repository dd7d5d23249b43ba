// Package parser implements the recursive-descent parser described in the
// grammar design: E (regex) / T (re-expr) / S (simple-re) / N (non-dup-re),
// with duplication binding tightest, concatenation left-associative, and
// alternation loosest.
package parser

import (
	"github.com/hendersonlang/rexc/ast"
	"github.com/hendersonlang/rexc/compileerr"
	"github.com/hendersonlang/rexc/lexer"
	"github.com/hendersonlang/rexc/token"
)

// Parser holds our object-state: the lexer feeding it, the current
// lookahead token, and whether unit productions should be kept (full_graph)
// or collapsed (the default).
type Parser struct {
	lex       *lexer.Lexer
	cur       token.Token
	fullGraph bool
}

// New creates a Parser over the given input and primes the first token.
func New(input string, fullGraph bool) (*Parser, error) {
	p := &Parser{lex: lexer.New(input), fullGraph: fullGraph}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

// Parse tokenizes and parses input in one step, returning the root node of
// the regex's AST.
func Parse(input string, fullGraph bool) (*ast.Node, error) {
	p, err := New(input, fullGraph)
	if err != nil {
		return nil, err
	}
	n, err := p.parseE()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != token.EOF {
		return nil, compileerr.Syn(p.cur.Pos, "unexpected trailing token %s", p.cur.Type)
	}
	return n, nil
}

// advance fetches the next token from the lexer into cur.
func (p *Parser) advance() error {
	tok, err := p.lex.NextToken()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

// wrapPlain wraps child in a unit-production node of the given kind when
// full_graph is requested; otherwise it returns child unchanged. codegen
// must produce identical output either way (see ast.TestPlainPassThrough).
func (p *Parser) wrapPlain(kind ast.Kind, child *ast.Node) *ast.Node {
	if !p.fullGraph {
		return child
	}
	return &ast.Node{Kind: kind, Subtype: ast.SubPlain, Children: []*ast.Node{child}}
}

// parseE parses the alternation production: E → T | E '|' T.
func (p *Parser) parseE() (*ast.Node, error) {
	left, err := p.parseT()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != token.PIPE {
		return p.wrapPlain(ast.Regex, left), nil
	}
	for p.cur.Type == token.PIPE {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseT()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(ast.Regex, ast.SubAlt, left, right)
	}
	return left, nil
}

// parseT parses the concatenation production: T → S | T S.
func (p *Parser) parseT() (*ast.Node, error) {
	left, err := p.parseS()
	if err != nil {
		return nil, err
	}
	if !p.startsS() {
		return p.wrapPlain(ast.ReExpr, left), nil
	}
	for p.startsS() {
		right, err := p.parseS()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(ast.ReExpr, ast.SubConcat, left, right)
	}
	return left, nil
}

// startsS reports whether cur can begin a new S, i.e. a fresh N.
func (p *Parser) startsS() bool {
	switch p.cur.Type {
	case token.ORD_CHAR, token.ES_NORMAL, token.ES_CHAR, token.DASH,
		token.DOT, token.LBRACK, token.LPAREN, token.ES_SPECIAL:
		return true
	}
	return false
}

// parseS parses the duplication production: S → N | N U.
func (p *Parser) parseS() (*ast.Node, error) {
	n, err := p.parseN()
	if err != nil {
		return nil, err
	}
	switch p.cur.Type {
	case token.STAR, token.PLUS, token.QMARK:
		op := p.cur.Value
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewUnary(ast.SimpleRe, ast.SubDup, op, n), nil
	}
	return p.wrapPlain(ast.SimpleRe, n), nil
}

// parseN parses N → one_char | '(' E ')'.
func (p *Parser) parseN() (*ast.Node, error) {
	switch p.cur.Type {
	case token.LPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseE()
		if err != nil {
			return nil, err
		}
		if p.cur.Type != token.RPAREN {
			return nil, compileerr.Syn(p.cur.Pos, "expected ')', got %s", p.cur.Type)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewUnary(ast.NonDupRe, ast.SubGroup, 0, e), nil

	case token.DOT:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewWildcard(), nil

	case token.LBRACK:
		return p.parseBrackExpr()

	case token.ES_SPECIAL:
		return p.parseBareSpecialEscape()

	case token.ORD_CHAR, token.ES_NORMAL, token.ES_CHAR, token.DASH:
		c := p.cur.Value
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.NewLeaf(ast.NonDupRe, ast.SubChar, c), nil

	default:
		return nil, compileerr.Syn(p.cur.Pos, "unexpected token %s", p.cur.Type)
	}
}

// parseBareSpecialEscape handles a bare \w \W \d \D \s \S outside a bracket
// expression: it is compiled as though it were a `[...]`/`[^...]` wrapping
// the class. The uppercase letters reduce to a nonmatching list over their
// lowercase counterpart rather than a matching list over themselves.
func (p *Parser) parseBareSpecialEscape() (*ast.Node, error) {
	letter := p.cur.Value
	pos := p.cur.Pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	switch letter {
	case 'd', 's', 'w':
		return ast.NewBrackExpr(ast.SubMatchingList, []*ast.Node{
			ast.NewLeaf(ast.CharClass, "", letter),
		}), nil
	case 'D', 'S', 'W':
		lower := letter + ('a' - 'A')
		return ast.NewBrackExpr(ast.SubNonMatchingList, []*ast.Node{
			ast.NewLeaf(ast.CharClass, "", lower),
		}), nil
	default:
		return nil, compileerr.Syn(pos, "unsupported character class %q", letter)
	}
}

// parseBrackExpr parses '[' matching_list ']' | '[' nonmatching_list ']'.
func (p *Parser) parseBrackExpr() (*ast.Node, error) {
	if err := p.advance(); err != nil { // consume '['
		return nil, err
	}
	matching := true
	if p.cur.Type == token.CARAT {
		matching = false
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	children, err := p.parseBracketList()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != token.RBRACK {
		return nil, compileerr.Syn(p.cur.Pos, "expected ']', got %s", p.cur.Type)
	}
	if len(children) == 0 {
		return nil, compileerr.Syn(p.cur.Pos, "empty bracket expression")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	subtype := ast.SubMatchingList
	if !matching {
		subtype = ast.SubNonMatchingList
	}
	return ast.NewBrackExpr(subtype, children), nil
}

// parseBracketList parses bracket_list → follow_list | follow_list '-',
// folding the trailing-dash production into parseExprTerm below rather
// than handling it as a separate step.
func (p *Parser) parseBracketList() ([]*ast.Node, error) {
	var children []*ast.Node
	for p.cur.Type != token.RBRACK {
		if p.cur.Type == token.EOF {
			return nil, compileerr.Syn(p.cur.Pos, "unterminated bracket expression")
		}
		var err error
		children, err = p.parseExprTerm(children)
		if err != nil {
			return nil, err
		}
	}
	return children, nil
}

// isEndRangeToken reports whether t can start an end_range: ORD_CHAR,
// ES_NORMAL, or escaped_char (ES_CHAR).
func isEndRangeToken(t token.Type) bool {
	switch t {
	case token.ORD_CHAR, token.ES_NORMAL, token.ES_CHAR:
		return true
	}
	return false
}

// parseEndRange consumes one end_range token and returns its rune and
// source position.
func (p *Parser) parseEndRange() (rune, int, error) {
	if !isEndRangeToken(p.cur.Type) {
		return 0, 0, compileerr.Syn(p.cur.Pos, "expected a character, got %s", p.cur.Type)
	}
	c, pos := p.cur.Value, p.cur.Pos
	if err := p.advance(); err != nil {
		return 0, 0, err
	}
	return c, pos, nil
}

// parseExprTerm parses expr_term → single_expr | range_expr | special_escape
// and appends the resulting node(s) to children, returning the updated
// slice. A range_expr whose second half never arrives (`start_range '-'`,
// i.e. two literal dashes, or a trailing dash right before ']') yields two
// nodes instead of one: the first character and a literal '-'.
func (p *Parser) parseExprTerm(children []*ast.Node) ([]*ast.Node, error) {
	if p.cur.Type == token.ES_SPECIAL {
		n := ast.NewLeaf(ast.CharClass, "", p.cur.Value)
		if err := p.advance(); err != nil {
			return nil, err
		}
		return append(children, n), nil
	}

	lo, pos, err := p.parseEndRange()
	if err != nil {
		return nil, err
	}

	if p.cur.Type != token.DASH {
		return append(children, ast.NewLeaf(ast.EndRange, "", lo)), nil
	}

	if err := p.advance(); err != nil { // consume the first '-'
		return nil, err
	}

	if isEndRangeToken(p.cur.Type) {
		hi, _, err := p.parseEndRange()
		if err != nil {
			return nil, err
		}
		rangeNode, err := ast.NewValidRange(pos, lo, hi)
		if err != nil {
			return nil, err
		}
		return append(children, rangeNode), nil
	}

	// start_range '-' (a literal trailing dash) or a dash immediately
	// before ']': either way lo and '-' are two literal characters.
	children = append(children, ast.NewLeaf(ast.EndRange, "", lo))
	if p.cur.Type == token.DASH {
		if err := p.advance(); err != nil { // consume the literal second '-'
			return nil, err
		}
	}
	children = append(children, ast.NewLeaf(ast.EndRange, "", '-'))
	return children, nil
}
