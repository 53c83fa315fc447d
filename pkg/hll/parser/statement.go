package parser

import (
	"github.com/mlogc/mlogc/pkg/hll/ast"
	"github.com/mlogc/mlogc/pkg/hll/token"
	"github.com/mlogc/mlogc/pkg/util/source"
)

// parseStatement dispatches on the lookahead to the statement production it
// introduces. Variable declarations, break/continue/return, and loops with
// an optional leading label are each recognized by their keyword; anything
// else is parsed as an expression-starting simple statement (assignment,
// increment/decrement, or a discarded expression).
func (p *Parser) parseStatement() (ast.Statement, []source.SyntaxError) {
	switch {
	case p.follows(token.LBRACE):
		return p.parseBlock()
	case p.follows(token.IF):
		return p.parseIf()
	case p.follows(token.WHILE):
		return p.parseWhile("")
	case p.following(token.IDENTIFIER, token.COLON):
		label, errs := p.parseIdentifierText()
		if len(errs) > 0 {
			return nil, errs
		}

		if _, errs := p.expect(token.COLON); len(errs) > 0 {
			return nil, errs
		}

		if !p.follows(token.WHILE) {
			return nil, p.syntaxErrors(p.lookahead(), "expected 'while' after loop label")
		}

		return p.parseWhile(label)
	case p.follows(token.BREAK):
		return p.parseBreak()
	case p.follows(token.CONTINUE):
		return p.parseContinue()
	case p.follows(token.RETURN):
		return p.parseReturn()
	case p.follows(token.VAR):
		return p.parseLocalVarDecl()
	default:
		return p.parseSimpleStatement()
	}
}

func (p *Parser) parseBlock() (*ast.Block, []source.SyntaxError) {
	start := p.index

	if _, errs := p.expect(token.LBRACE); len(errs) > 0 {
		return nil, errs
	}

	var stmts []ast.Statement

	for !p.follows(token.RBRACE) {
		stmt, errs := p.parseStatement()
		if len(errs) > 0 {
			return nil, errs
		}

		stmts = append(stmts, stmt)
	}

	if _, errs := p.expect(token.RBRACE); len(errs) > 0 {
		return nil, errs
	}

	return &ast.Block{Stmts: stmts, Sp: p.spanOf(start, p.index-1)}, nil
}

// parseOptionalVarDecls consumes the semicolon-separated `var` declarations
// that may precede an `if`/`while` condition.
func (p *Parser) parseOptionalVarDecls() ([]*ast.LocalVar, []source.SyntaxError) {
	var vars []*ast.LocalVar

	for p.follows(token.VAR) {
		v, errs := p.parseLocalVarDecl()
		if len(errs) > 0 {
			return nil, errs
		}

		vars = append(vars, v)
	}

	return vars, nil
}

func (p *Parser) parseIf() (*ast.If, []source.SyntaxError) {
	start := p.index

	if _, errs := p.expect(token.IF); len(errs) > 0 {
		return nil, errs
	}

	vars, errs := p.parseOptionalVarDecls()
	if len(errs) > 0 {
		return nil, errs
	}

	cond, errs := p.parseExpression()
	if len(errs) > 0 {
		return nil, errs
	}

	then, errs := p.parseBlock()
	if len(errs) > 0 {
		return nil, errs
	}

	var elseBranch ast.Statement

	if p.match(token.ELSE) {
		if p.follows(token.IF) {
			if elseBranch, errs = p.parseIf(); len(errs) > 0 {
				return nil, errs
			}
		} else if elseBranch, errs = p.parseBlock(); len(errs) > 0 {
			return nil, errs
		}
	}

	return &ast.If{Vars: vars, Cond: cond, Then: then, Else: elseBranch, Sp: p.spanOf(start, p.index-1)}, nil
}

// parseWhile parses the loop body after an (already-consumed) optional
// label. The interleaved clause, run between iterations but not before the
// first, is introduced by a trailing `:` before the body; the zero-branch,
// taken when the condition is false on first entry, is introduced by a
// trailing `else` after the body — both reuse tokens the lexer already
// produces rather than adding new reserved words.
func (p *Parser) parseWhile(label string) (*ast.While, []source.SyntaxError) {
	start := p.index

	if _, errs := p.expect(token.WHILE); len(errs) > 0 {
		return nil, errs
	}

	vars, errs := p.parseOptionalVarDecls()
	if len(errs) > 0 {
		return nil, errs
	}

	cond, errs := p.parseExpression()
	if len(errs) > 0 {
		return nil, errs
	}

	var interleaved ast.Statement

	if p.match(token.COLON) {
		if interleaved, errs = p.parseStatement(); len(errs) > 0 {
			return nil, errs
		}
	}

	body, errs := p.parseBlock()
	if len(errs) > 0 {
		return nil, errs
	}

	var zeroBranch ast.Statement

	if p.match(token.ELSE) {
		if zeroBranch, errs = p.parseBlock(); len(errs) > 0 {
			return nil, errs
		}
	}

	return &ast.While{
		Label: label, Vars: vars, Cond: cond, Interleaved: interleaved,
		Body: body, ZeroBranch: zeroBranch, Sp: p.spanOf(start, p.index-1),
	}, nil
}

func (p *Parser) parseBreak() (*ast.Break, []source.SyntaxError) {
	start := p.index

	if _, errs := p.expect(token.BREAK); len(errs) > 0 {
		return nil, errs
	}

	label := ""

	if p.follows(token.IDENTIFIER) {
		var errs []source.SyntaxError
		if label, errs = p.parseIdentifierText(); len(errs) > 0 {
			return nil, errs
		}
	}

	if _, errs := p.expect(token.SEMICOLON); len(errs) > 0 {
		return nil, errs
	}

	return &ast.Break{Label: label, Sp: p.spanOf(start, p.index-1)}, nil
}

func (p *Parser) parseContinue() (*ast.Continue, []source.SyntaxError) {
	start := p.index

	if _, errs := p.expect(token.CONTINUE); len(errs) > 0 {
		return nil, errs
	}

	label := ""

	if p.follows(token.IDENTIFIER) {
		var errs []source.SyntaxError
		if label, errs = p.parseIdentifierText(); len(errs) > 0 {
			return nil, errs
		}
	}

	if _, errs := p.expect(token.SEMICOLON); len(errs) > 0 {
		return nil, errs
	}

	return &ast.Continue{Label: label, Sp: p.spanOf(start, p.index-1)}, nil
}

func (p *Parser) parseReturn() (*ast.Return, []source.SyntaxError) {
	start := p.index

	if _, errs := p.expect(token.RETURN); len(errs) > 0 {
		return nil, errs
	}

	var value ast.Expression

	if !p.follows(token.SEMICOLON) {
		var errs []source.SyntaxError
		if value, errs = p.parseExpression(); len(errs) > 0 {
			return nil, errs
		}
	}

	if _, errs := p.expect(token.SEMICOLON); len(errs) > 0 {
		return nil, errs
	}

	return &ast.Return{Value: value, Sp: p.spanOf(start, p.index-1)}, nil
}

var assignOps = map[token.Kind]ast.AssignOp{
	token.ASSIGN:         ast.AssignSet,
	token.STAR_ASSIGN:    ast.AssignMul,
	token.SLASH_ASSIGN:   ast.AssignDiv,
	token.IDIV_ASSIGN:    ast.AssignIDiv,
	token.PERCENT_ASSIGN: ast.AssignMod,
	token.PLUS_ASSIGN:    ast.AssignAdd,
	token.MINUS_ASSIGN:   ast.AssignSub,
	token.SHL_ASSIGN:     ast.AssignShl,
	token.SHR_ASSIGN:     ast.AssignShr,
	token.AMP_ASSIGN:     ast.AssignAnd,
	token.CARET_ASSIGN:   ast.AssignXor,
	token.PIPE_ASSIGN:    ast.AssignOr,
}

// parseSimpleStatement parses the statement forms that begin with an
// expression: increment, decrement, assignment (plain or compound), or a
// discarded expression.
func (p *Parser) parseSimpleStatement() (ast.Statement, []source.SyntaxError) {
	start := p.index

	target, errs := p.parseExpression()
	if len(errs) > 0 {
		return nil, errs
	}

	var stmt ast.Statement

	switch {
	case p.match(token.PLUS_PLUS):
		stmt = &ast.Increment{Target: target, Sp: p.spanOf(start, p.index-1)}
	case p.match(token.MINUS_MINUS):
		stmt = &ast.Decrement{Target: target, Sp: p.spanOf(start, p.index-1)}
	default:
		if op, ok := assignOps[p.lookahead().Kind]; ok {
			p.index++

			value, errs := p.parseExpression()
			if len(errs) > 0 {
				return nil, errs
			}

			stmt = &ast.Assign{Op: op, Target: target, Value: value, Sp: p.spanOf(start, p.index-1)}
		} else {
			stmt = &ast.Discard{Expr: target, Sp: p.spanOf(start, p.index-1)}
		}
	}

	if _, errs := p.expect(token.SEMICOLON); len(errs) > 0 {
		return nil, errs
	}

	return stmt, nil
}
