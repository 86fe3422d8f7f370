// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package parser implements the UCG recursive-descent parser,
// including the precedence-climbing reduction of binary operator
// expressions.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/oops"

	"github.com/holomush/ucg/internal/ucg/ast"
	"github.com/holomush/ucg/internal/ucg/lexer"
	"github.com/holomush/ucg/internal/ucg/token"
)

// ParseError is a syntax error carrying the offending Position and a
// message naming the expected construct.
type ParseError struct {
	Pos token.Position
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ParseError at %s: %s", e.Pos, e.Msg)
}

func errAt(pos token.Position, format string, args ...any) error {
	return &ParseError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Parser consumes a token stream and produces the UCG AST.
type Parser struct {
	file string
	toks []token.Token
	pos  int
}

// Parse lexes and parses a whole UCG source file into its top-level
// statement list.
func Parse(file string, src []byte) ([]ast.Statement, error) {
	toks, err := lexer.Tokens(file, src)
	if err != nil {
		return nil, oops.With("file", file).Wrapf(err, "lexing UCG source")
	}
	p := &Parser{file: file, toks: toks}
	stmts, err := p.parseFile()
	if err != nil {
		return nil, oops.With("file", file).Wrapf(err, "parsing UCG source")
	}
	return stmts, nil
}

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1] // END
	}
	return p.toks[p.pos]
}

func (p *Parser) next() token.Token {
	t := p.peek()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) peekIsPunct(frag string) bool {
	t := p.peek()
	return t.Kind == token.PUNCT && t.Fragment == frag
}

func (p *Parser) peekIsBareword(frag string) bool {
	t := p.peek()
	return t.Kind == token.BAREWORD && t.Fragment == frag
}

func (p *Parser) expectPunct(frag string) (token.Token, error) {
	t := p.peek()
	if t.Kind != token.PUNCT || t.Fragment != frag {
		return token.Token{}, errAt(t.Pos, "expected %q, found %s", frag, describe(t))
	}
	return p.next(), nil
}

func (p *Parser) expectBareword(frag string) (token.Token, error) {
	t := p.peek()
	if t.Kind != token.BAREWORD || t.Fragment != frag {
		return token.Token{}, errAt(t.Pos, "expected keyword %q, found %s", frag, describe(t))
	}
	return p.next(), nil
}

func (p *Parser) expectKind(k token.Kind, what string) (token.Token, error) {
	t := p.peek()
	if t.Kind != k {
		return token.Token{}, errAt(t.Pos, "expected %s, found %s", what, describe(t))
	}
	return p.next(), nil
}

func describe(t token.Token) string {
	if t.Kind == token.END {
		return "end of input"
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Fragment)
}

// --- file / statement ---

func (p *Parser) parseFile() ([]ast.Statement, error) {
	var stmts []ast.Statement
	for p.peek().Kind != token.END {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(";"); err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (p *Parser) parseStatements(endFrag string) ([]ast.Statement, error) {
	var stmts []ast.Statement
	for !p.peekIsPunct(endFrag) {
		if p.peek().Kind == token.END {
			return nil, errAt(p.peek().Pos, "unexpected end of input, expected %q", endFrag)
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(";"); err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	tok := p.peek()
	if tok.Kind == token.BAREWORD {
		switch tok.Fragment {
		case "let":
			return p.parseLet()
		case "import":
			return p.parseImport()
		case "assert":
			return p.parseAssert()
		case "out":
			return p.parseOutput()
		}
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expr: expr}, nil
}

func (p *Parser) parseLet() (ast.Statement, error) {
	p.next() // 'let'
	name, err := p.expectKind(token.BAREWORD, "binding name")
	if err != nil {
		return nil, err
	}
	if token.IsReserved(name.Fragment) {
		return nil, errAt(name.Pos, "%q is a reserved word and cannot be bound", name.Fragment)
	}
	if _, err := p.expectPunct("="); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Let{Name: name, Expr: expr}, nil
}

func (p *Parser) parseImport() (ast.Statement, error) {
	p.next() // 'import'
	path, err := p.expectKind(token.QUOTED, "import path string")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectBareword("as"); err != nil {
		return nil, err
	}
	alias, err := p.expectKind(token.BAREWORD, "import alias")
	if err != nil {
		return nil, err
	}
	if token.IsReserved(alias.Fragment) {
		return nil, errAt(alias.Pos, "%q is a reserved word and cannot be bound", alias.Fragment)
	}
	return &ast.Import{Path: path, Alias: alias}, nil
}

func (p *Parser) parseAssert() (ast.Statement, error) {
	p.next() // 'assert'
	src, err := p.expectKind(token.QUOTED, "assertion source string")
	if err != nil {
		return nil, err
	}
	return &ast.Assert{Source: src}, nil
}

func (p *Parser) parseOutput() (ast.Statement, error) {
	p.next() // 'out'
	typeTok, err := p.expectKind(token.BAREWORD, "output converter name")
	if err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Output{Type: typeTok, Expr: expr}, nil
}

// --- expressions ---

func (p *Parser) parseExpr() (ast.Expression, error) {
	return p.parseOpExpr()
}

// operatorPuncts maps every binary operator token fragment to its
// BinaryKind, for use by the flatten pass below.
var operatorPuncts = map[string]ast.BinaryKind{
	".":  ast.Dot,
	"+":  ast.Add,
	"-":  ast.Sub,
	"*":  ast.Mul,
	"/":  ast.Div,
	"==": ast.Eq,
	"!=": ast.Ne,
	"<":  ast.Lt,
	"<=": ast.Le,
	">":  ast.Gt,
	">=": ast.Ge,
}

// parseOpExpr runs a two-pass precedence climb: first flatten into an
// alternating operand/operator list, then reduce by precedence level,
// highest first, left-associatively.
func (p *Parser) parseOpExpr() (ast.Expression, error) {
	first, err := p.parseNonOpExpr()
	if err != nil {
		return nil, err
	}
	operands := []ast.Expression{first}
	var ops []ast.BinaryKind

	for {
		tok := p.peek()
		kind, isOp := operatorPuncts[tok.Fragment]
		if tok.Kind != token.PUNCT || !isOp {
			break
		}
		p.next()
		operand, err := p.parseNonOpExpr()
		if err != nil {
			return nil, err
		}
		ops = append(ops, kind)
		operands = append(operands, operand)
	}

	return reduceByPrecedence(operands, ops), nil
}

func reduceByPrecedence(operands []ast.Expression, ops []ast.BinaryKind) ast.Expression {
	for level := 4; level >= 1; level-- {
		i := 0
		for i < len(ops) {
			if ops[i].Precedence() != level {
				i++
				continue
			}
			combined := &ast.Binary{
				P:     operands[i].Pos(),
				Kind:  ops[i],
				Left:  operands[i],
				Right: operands[i+1],
			}
			operands = append(operands[:i], append([]ast.Expression{combined}, operands[i+2:]...)...)
			ops = append(ops[:i], ops[i+1:]...)
		}
	}
	return operands[0]
}

// --- non-operator expressions ---

func (p *Parser) parseNonOpExpr() (ast.Expression, error) {
	tok := p.peek()

	switch tok.Kind {
	case token.END:
		return nil, errAt(tok.Pos, "expected expression, found end of input")
	case token.BOOLEAN:
		p.next()
		return &ast.Simple{Val: &ast.Boolean{P: tok.Pos, Val: tok.Fragment == "true"}}, nil
	case token.DIGIT:
		p.next()
		return p.numberLiteral(tok)
	case token.QUOTED, token.PIPEQUOTE:
		p.next()
		return p.maybeFormat(tok)
	case token.PUNCT:
		switch tok.Fragment {
		case "[":
			return p.parseList()
		case "{":
			return p.parseTupleLiteral()
		case "(":
			return p.parseSelectorOrCopyOrCall()
		}
		return nil, errAt(tok.Pos, "unexpected token %s", describe(tok))
	case token.BAREWORD:
		switch tok.Fragment {
		case "NULL":
			p.next()
			return &ast.Simple{Val: &ast.Empty{P: tok.Pos}}, nil
		case "macro":
			return p.parseMacro()
		case "module":
			return p.parseModule()
		case "select":
			return p.parseSelect()
		case "map", "filter":
			return p.parseListOp()
		default:
			return p.parseSelectorOrCopyOrCall()
		}
	default:
		return nil, errAt(tok.Pos, "unexpected token %s", describe(tok))
	}
}

func (p *Parser) numberLiteral(tok token.Token) (ast.Expression, error) {
	if strings.Contains(tok.Fragment, ".") {
		f, err := strconv.ParseFloat(tok.Fragment, 64)
		if err != nil {
			return nil, errAt(tok.Pos, "invalid float literal %q: %v", tok.Fragment, err)
		}
		return &ast.Simple{Val: &ast.Float{P: tok.Pos, Val: f}}, nil
	}
	n, err := strconv.ParseInt(tok.Fragment, 10, 64)
	if err != nil {
		return nil, errAt(tok.Pos, "invalid int literal %q: %v", tok.Fragment, err)
	}
	return &ast.Simple{Val: &ast.Int{P: tok.Pos, Val: n}}, nil
}

func (p *Parser) maybeFormat(template token.Token) (ast.Expression, error) {
	if !p.peekIsPunct("%") {
		return &ast.Simple{Val: &ast.Str{P: template.Pos, Val: template.Fragment}}, nil
	}
	p.next() // '%'
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	args, err := p.parseExprList(")")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return &ast.Format{P: template.Pos, Template: template, Args: args}, nil
}

func (p *Parser) parseList() (ast.Expression, error) {
	open, err := p.expectPunct("[")
	if err != nil {
		return nil, err
	}
	elems, err := p.parseExprList("]")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct("]"); err != nil {
		return nil, err
	}
	return &ast.Simple{Val: &ast.List{P: open.Pos, Elements: elems}}, nil
}

func (p *Parser) parseExprList(closeFrag string) ([]ast.Expression, error) {
	var exprs []ast.Expression
	if p.peekIsPunct(closeFrag) {
		return exprs, nil
	}
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
		if p.peekIsPunct(",") {
			p.next()
			continue
		}
		break
	}
	return exprs, nil
}

func (p *Parser) parseTupleLiteral() (ast.Expression, error) {
	open, fields, err := p.parseFieldList()
	if err != nil {
		return nil, err
	}
	return &ast.Simple{Val: &ast.Tuple{P: open.Pos, Fields: fields}}, nil
}

// parseFieldList parses "{ NAME = expr (, NAME = expr)* }", where NAME
// is a BAREWORD or a true/false BOOLEAN token (so select branches can
// be named for a Boolean discriminant), rejecting duplicate field names
// within the list.
func (p *Parser) parseFieldList() (token.Token, []ast.TupleField, error) {
	open, err := p.expectPunct("{")
	if err != nil {
		return token.Token{}, nil, err
	}
	var fields []ast.TupleField
	seen := map[string]bool{}
	for !p.peekIsPunct("}") {
		name := p.peek()
		if name.Kind != token.BAREWORD && name.Kind != token.BOOLEAN {
			return token.Token{}, nil, errAt(name.Pos, "expected field name, found %s", describe(name))
		}
		p.next()
		if seen[name.Fragment] {
			return token.Token{}, nil, errAt(name.Pos, "duplicate field name %q", name.Fragment)
		}
		seen[name.Fragment] = true
		if _, err := p.expectPunct("="); err != nil {
			return token.Token{}, nil, err
		}
		expr, err := p.parseExpr()
		if err != nil {
			return token.Token{}, nil, err
		}
		fields = append(fields, ast.TupleField{Name: name, Expr: expr})
		if p.peekIsPunct(",") {
			p.next()
			continue
		}
		break
	}
	if _, err := p.expectPunct("}"); err != nil {
		return token.Token{}, nil, err
	}
	return open, fields, nil
}

// --- selector / copy / call ---

func (p *Parser) parseSelectorHead() (ast.Expression, error) {
	tok := p.peek()
	if tok.Kind == token.PUNCT && tok.Fragment == "(" {
		p.next()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return &ast.Grouped{P: tok.Pos, Inner: inner}, nil
	}
	if tok.Kind == token.BAREWORD {
		p.next()
		return &ast.Simple{Val: &ast.Symbol{P: tok.Pos, Name: tok.Fragment}}, nil
	}
	return nil, errAt(tok.Pos, "expected identifier or parenthesized expression, found %s", describe(tok))
}

// parseSelectorExpr parses the "selector" production: a head (symbol
// or grouped expression) plus a greedy chain of "." BAREWORD|DIGIT
// segments.
func (p *Parser) parseSelectorExpr() (ast.Expression, error) {
	head, err := p.parseSelectorHead()
	if err != nil {
		return nil, err
	}
	var tail []token.Token
	for p.peekIsPunct(".") {
		p.next()
		seg := p.peek()
		if seg.Kind != token.BAREWORD && seg.Kind != token.DIGIT {
			return nil, errAt(seg.Pos, "expected field name or index after '.', found %s", describe(seg))
		}
		p.next()
		tail = append(tail, seg)
	}
	if len(tail) == 0 {
		return head, nil
	}
	return &ast.Simple{Val: &ast.Selector{P: head.Pos(), Head: head, Tail: tail}}, nil
}

func (p *Parser) parseSelectorOrCopyOrCall() (ast.Expression, error) {
	sel, err := p.parseSelectorExpr()
	if err != nil {
		return nil, err
	}
	if p.peekIsPunct("{") {
		_, overrides, err := p.parseFieldList()
		if err != nil {
			return nil, err
		}
		return &ast.Copy{P: sel.Pos(), Selector: sel, Overrides: overrides}, nil
	}
	if p.peekIsPunct("(") {
		p.next()
		args, err := p.parseExprList(")")
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(")"); err != nil {
			return nil, err
		}
		return &ast.Call{P: sel.Pos(), Selector: sel, Args: args}, nil
	}
	return sel, nil
}

// --- macro / module / select / listop ---

func (p *Parser) parseMacro() (ast.Expression, error) {
	kw := p.next() // 'macro'
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var argdefs []token.Token
	for !p.peekIsPunct(")") {
		a, err := p.expectKind(token.BAREWORD, "macro parameter name")
		if err != nil {
			return nil, err
		}
		argdefs = append(argdefs, a)
		if p.peekIsPunct(",") {
			p.next()
			continue
		}
		break
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	if _, err := p.expectPunct("=>"); err != nil {
		return nil, err
	}
	_, fields, err := p.parseFieldList()
	if err != nil {
		return nil, err
	}
	return &ast.Macro{P: kw.Pos, Argdefs: argdefs, Fields: fields}, nil
}

func (p *Parser) parseModule() (ast.Expression, error) {
	kw := p.next() // 'module'
	_, argSet, err := p.parseFieldList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct("=>"); err != nil {
		return nil, err
	}
	if _, err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	stmts, err := p.parseStatements("}")
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	return &ast.Module{P: kw.Pos, ArgSet: argSet, Statements: stmts}, nil
}

func (p *Parser) parseSelect() (ast.Expression, error) {
	kw := p.next() // 'select'
	discriminant, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(","); err != nil {
		return nil, err
	}
	def, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(","); err != nil {
		return nil, err
	}
	_, branches, err := p.parseFieldList()
	if err != nil {
		return nil, err
	}
	return &ast.Select{P: kw.Pos, Discriminant: discriminant, Default: def, Branches: branches}, nil
}

// parseListOp parses "('map'|'filter') selector '.' BAREWORD expr".
// The "selector '.' BAREWORD" half is not two independently-parsed
// pieces: parseSelectorExpr greedily consumes every "." segment,
// including the field-name dot, so the field name is split back off
// the tail of the parsed selector rather than parsed as a second,
// separate dot.
func (p *Parser) parseListOp() (ast.Expression, error) {
	kw := p.next() // 'map' | 'filter'
	kind := ast.Map
	if kw.Fragment == "filter" {
		kind = ast.Filter
	}
	sel, err := p.parseSelectorExpr()
	if err != nil {
		return nil, err
	}
	macroSel, fieldName, err := splitTrailingSegment(sel)
	if err != nil {
		return nil, err
	}
	target, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.ListOp{P: kw.Pos, Kind: kind, MacroSelector: macroSel, FieldName: fieldName, Target: target}, nil
}

// splitTrailingSegment takes a parsed selector expression and peels its
// last dot-segment off as a field-name token, leaving the rest (which
// may be a bare head with no selector wrapper at all) as the macro
// selector expression.
func splitTrailingSegment(sel ast.Expression) (ast.Expression, token.Token, error) {
	simple, ok := sel.(*ast.Simple)
	if !ok {
		return nil, token.Token{}, errAt(sel.Pos(), "expected '.' field name after macro selector")
	}
	selector, ok := simple.Val.(*ast.Selector)
	if !ok || len(selector.Tail) == 0 {
		return nil, token.Token{}, errAt(sel.Pos(), "expected '.' field name after macro selector")
	}
	fieldName := selector.Tail[len(selector.Tail)-1]
	if fieldName.Kind != token.BAREWORD {
		return nil, token.Token{}, errAt(fieldName.Pos, "expected field name, found %s", describe(fieldName))
	}
	remaining := selector.Tail[:len(selector.Tail)-1]
	if len(remaining) == 0 {
		return selector.Head, fieldName, nil
	}
	return &ast.Simple{Val: &ast.Selector{P: selector.P, Head: selector.Head, Tail: remaining}}, fieldName, nil
}
