// Package parser implements a recursive-descent parser over the HLL token
// stream, producing the parse tree defined in pkg/hll/ast. It never
// backtracks beyond one token of lookahead: each production either consumes
// its construct and returns a tree, or fails with a syntax error naming the
// offending token.
package parser

import (
	"github.com/mlogc/mlogc/pkg/hll/ast"
	"github.com/mlogc/mlogc/pkg/hll/lexer"
	"github.com/mlogc/mlogc/pkg/hll/token"
	"github.com/mlogc/mlogc/pkg/util/source"
)

// Parser holds the token stream and current read position for one source
// file. It is not safe for concurrent use.
type Parser struct {
	srcfile source.File
	tokens  []token.Token
	index   int
}

// Parse lexes and parses one source file into its ordered list of
// top-level declarations.
func Parse(srcfile source.File) ([]ast.Declaration, []source.SyntaxError) {
	tokens, errs := lexer.Lex(srcfile)
	if len(errs) > 0 {
		return nil, errs
	}

	p := &Parser{srcfile: srcfile, tokens: tokens}

	var decls []ast.Declaration

	for !p.follows(token.EOF) {
		decl, errs := p.parseDeclaration()
		if len(errs) > 0 {
			return nil, errs
		}

		decls = append(decls, decl)
	}

	return decls, nil
}

// parseDeclaration parses one top-level construct: the entrypoint, or a
// Definition optionally preceded by the contextual `public` modifier. Since
// `public` is not part of the reserved word set (see pkg/hll/token), it is
// recognized only here, by text, immediately before a declaration keyword.
func (p *Parser) parseDeclaration() (ast.Declaration, []source.SyntaxError) {
	start := p.index
	public := false

	if p.lookahead().Kind == token.IDENTIFIER && p.lookahead().Text == "public" {
		p.index++

		public = true
	}

	switch p.lookahead().Kind {
	case token.ENTRYPOINT:
		if public {
			return nil, p.syntaxErrors(p.lookahead(), "entrypoint cannot be marked public")
		}

		return p.parseEntrypoint(start)
	case token.LINK:
		return p.parseLink(public, start)
	case token.USING:
		return p.parseUsing(public, start)
	case token.PROC:
		return p.parseProc(public, start)
	case token.CONST:
		return p.parseConst(public, start)
	case token.VAR:
		return p.parseGlobalVar(public, start)
	default:
		return nil, p.syntaxErrors(p.lookahead(), "expected a declaration")
	}
}

func (p *Parser) parseEntrypoint(start int) (*ast.Entrypoint, []source.SyntaxError) {
	if _, errs := p.expect(token.ENTRYPOINT); len(errs) > 0 {
		return nil, errs
	}

	body, errs := p.parseBlock()
	if len(errs) > 0 {
		return nil, errs
	}

	return &ast.Entrypoint{Body: body, Sp: p.spanOf(start, p.index-1)}, nil
}

func (p *Parser) parseLink(public bool, start int) (*ast.Link, []source.SyntaxError) {
	if _, errs := p.expect(token.LINK); len(errs) > 0 {
		return nil, errs
	}

	ident, errs := p.parseIdentifierText()
	if len(errs) > 0 {
		return nil, errs
	}

	building := ident

	if p.match(token.AS) {
		if building, errs = p.parseIdentifierText(); len(errs) > 0 {
			return nil, errs
		}
	}

	if _, errs := p.expect(token.SEMICOLON); len(errs) > 0 {
		return nil, errs
	}

	return &ast.Link{Identifier: ident, Public: public, Building: building, Sp: p.spanOf(start, p.index-1)}, nil
}

func (p *Parser) parseUsing(public bool, start int) (*ast.Using, []source.SyntaxError) {
	if _, errs := p.expect(token.USING); len(errs) > 0 {
		return nil, errs
	}

	target, errs := p.parseMention()
	if len(errs) > 0 {
		return nil, errs
	}

	if _, errs := p.expect(token.AS); len(errs) > 0 {
		return nil, errs
	}

	ident, errs := p.parseIdentifierText()
	if len(errs) > 0 {
		return nil, errs
	}

	if _, errs := p.expect(token.SEMICOLON); len(errs) > 0 {
		return nil, errs
	}

	return &ast.Using{Identifier: ident, Public: public, Target: target, Sp: p.spanOf(start, p.index-1)}, nil
}

func (p *Parser) parseProc(public bool, start int) (*ast.Proc, []source.SyntaxError) {
	if _, errs := p.expect(token.PROC); len(errs) > 0 {
		return nil, errs
	}

	ident, errs := p.parseIdentifierText()
	if len(errs) > 0 {
		return nil, errs
	}

	if _, errs := p.expect(token.LPAREN); len(errs) > 0 {
		return nil, errs
	}

	params, errs := p.parseParamList()
	if len(errs) > 0 {
		return nil, errs
	}

	if _, errs := p.expect(token.RPAREN); len(errs) > 0 {
		return nil, errs
	}

	body, errs := p.parseBlock()
	if len(errs) > 0 {
		return nil, errs
	}

	return &ast.Proc{Identifier: ident, Public: public, Params: params, Body: body, Sp: p.spanOf(start, p.index-1)}, nil
}

func (p *Parser) parseParamList() ([]ast.Param, []source.SyntaxError) {
	var params []ast.Param

	if p.follows(token.RPAREN) {
		return params, nil
	}

	for {
		start := p.index

		ident, errs := p.parseIdentifierText()
		if len(errs) > 0 {
			return nil, errs
		}

		output := p.match(token.AMP)
		params = append(params, ast.Param{Identifier: ident, Output: output, Sp: p.spanOf(start, p.index-1)})

		if !p.match(token.COMMA) {
			break
		}
	}

	return params, nil
}

func (p *Parser) parseConst(public bool, start int) (*ast.Const, []source.SyntaxError) {
	if _, errs := p.expect(token.CONST); len(errs) > 0 {
		return nil, errs
	}

	ident, errs := p.parseIdentifierText()
	if len(errs) > 0 {
		return nil, errs
	}

	if _, errs := p.expect(token.ASSIGN); len(errs) > 0 {
		return nil, errs
	}

	value, errs := p.parseExpression()
	if len(errs) > 0 {
		return nil, errs
	}

	if _, errs := p.expect(token.SEMICOLON); len(errs) > 0 {
		return nil, errs
	}

	return &ast.Const{Identifier: ident, Public: public, Value: value, Sp: p.spanOf(start, p.index-1)}, nil
}

func (p *Parser) parseGlobalVar(public bool, start int) (*ast.GlobalVar, []source.SyntaxError) {
	if _, errs := p.expect(token.VAR); len(errs) > 0 {
		return nil, errs
	}

	ident, errs := p.parseIdentifierText()
	if len(errs) > 0 {
		return nil, errs
	}

	var initial ast.Expression

	if p.match(token.ASSIGN) {
		if initial, errs = p.parseExpression(); len(errs) > 0 {
			return nil, errs
		}
	}

	if _, errs := p.expect(token.SEMICOLON); len(errs) > 0 {
		return nil, errs
	}

	return &ast.GlobalVar{Identifier: ident, Public: public, Initial: initial, Sp: p.spanOf(start, p.index-1)}, nil
}

func (p *Parser) parseLocalVarDecl() (*ast.LocalVar, []source.SyntaxError) {
	start := p.index

	if _, errs := p.expect(token.VAR); len(errs) > 0 {
		return nil, errs
	}

	ident, errs := p.parseIdentifierText()
	if len(errs) > 0 {
		return nil, errs
	}

	var initial ast.Expression

	if p.match(token.ASSIGN) {
		if initial, errs = p.parseExpression(); len(errs) > 0 {
			return nil, errs
		}
	}

	if _, errs := p.expect(token.SEMICOLON); len(errs) > 0 {
		return nil, errs
	}

	return &ast.LocalVar{Identifier: ident, Initial: initial, Sp: p.spanOf(start, p.index-1)}, nil
}

// parseIdentifierText consumes an IDENTIFIER token and returns its text.
func (p *Parser) parseIdentifierText() (string, []source.SyntaxError) {
	tok, errs := p.expect(token.IDENTIFIER)
	if len(errs) > 0 {
		return "", errs
	}

	return tok.Text, nil
}

// parseMention parses `ident` or `scope::ident`.
func (p *Parser) parseMention() (ast.Mention, []source.SyntaxError) {
	start := p.index

	first, errs := p.parseIdentifierText()
	if len(errs) > 0 {
		return ast.Mention{}, errs
	}

	qualifier, identifier := "", first

	if p.match(token.COLON_COLON) {
		if identifier, errs = p.parseIdentifierText(); len(errs) > 0 {
			return ast.Mention{}, errs
		}

		qualifier = first
	}

	return ast.Mention{Qualifier: qualifier, Identifier: identifier, Sp: p.spanOf(start, p.index-1)}, nil
}

// ---- helpers -------------------------------------------------------------

func (p *Parser) lookahead() token.Token {
	return p.tokens[p.index]
}

func (p *Parser) expect(kind token.Kind) (token.Token, []source.SyntaxError) {
	lookahead := p.lookahead()
	if lookahead.Kind != kind {
		return lookahead, p.syntaxErrors(lookahead, "expected "+kind.String()+", found "+lookahead.Explain())
	}

	p.index++

	return lookahead, nil
}

func (p *Parser) match(kind token.Kind) bool {
	if p.lookahead().Kind == kind {
		p.index++
		return true
	}

	return false
}

func (p *Parser) follows(kinds ...token.Kind) bool {
	la := p.lookahead().Kind
	for _, k := range kinds {
		if la == k {
			return true
		}
	}

	return false
}

// following checks the token kinds starting at the current position,
// without consuming anything; used for multi-token lookahead (e.g. the
// `identifier :` loop-label prefix before `while`).
func (p *Parser) following(kinds ...token.Kind) bool {
	for i, kind := range kinds {
		n := p.index + i
		if n >= len(p.tokens) || p.tokens[n].Kind != kind {
			return false
		}
	}

	return true
}

func (p *Parser) spanOf(firstToken, lastToken int) source.Span {
	start := p.tokens[firstToken].Span.Start()
	end := p.tokens[lastToken].Span.End()

	return source.NewSpan(start, end)
}

func (p *Parser) syntaxErrors(tok token.Token, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.srcfile.SyntaxError(tok.Span, msg)}
}
