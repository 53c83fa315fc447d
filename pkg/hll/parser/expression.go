package parser

import (
	"github.com/mlogc/mlogc/pkg/hll/ast"
	"github.com/mlogc/mlogc/pkg/hll/token"
	"github.com/mlogc/mlogc/pkg/util/source"
)

// parseExpression parses at the lowest precedence level (logical or).
func (p *Parser) parseExpression() (ast.Expression, []source.SyntaxError) {
	return p.parseLogicalOr()
}

// binaryLevel generic-parses one left-associative precedence level: parse
// the next-higher level, then repeatedly fold in an operator from this
// level's set followed by another application of the next-higher level.
func (p *Parser) binaryLevel(next func() (ast.Expression, []source.SyntaxError), ops ...token.Kind) (ast.Expression, []source.SyntaxError) {
	start := p.index

	left, errs := next()
	if len(errs) > 0 {
		return nil, errs
	}

	for p.follows(ops...) {
		opTok := p.lookahead()
		p.index++

		right, errs := next()
		if len(errs) > 0 {
			return nil, errs
		}

		left = &ast.BinaryOp{Op: opTok.Kind.String(), Left: left, Right: right, Sp: p.spanOf(start, p.index-1)}
	}

	return left, nil
}

func (p *Parser) parseLogicalOr() (ast.Expression, []source.SyntaxError) {
	return p.binaryLevel(p.parseLogicalAnd, token.OR_OR)
}

func (p *Parser) parseLogicalAnd() (ast.Expression, []source.SyntaxError) {
	return p.binaryLevel(p.parseEquality, token.AND_AND)
}

func (p *Parser) parseEquality() (ast.Expression, []source.SyntaxError) {
	return p.binaryLevel(p.parseRelational, token.EQ, token.NE, token.STRICTEQ)
}

func (p *Parser) parseRelational() (ast.Expression, []source.SyntaxError) {
	return p.binaryLevel(p.parseBitwiseOr, token.LT, token.LE, token.GT, token.GE)
}

func (p *Parser) parseBitwiseOr() (ast.Expression, []source.SyntaxError) {
	return p.binaryLevel(p.parseBitwiseXor, token.PIPE)
}

func (p *Parser) parseBitwiseXor() (ast.Expression, []source.SyntaxError) {
	return p.binaryLevel(p.parseBitwiseAnd, token.CARET)
}

func (p *Parser) parseBitwiseAnd() (ast.Expression, []source.SyntaxError) {
	return p.binaryLevel(p.parseShift, token.AMP)
}

func (p *Parser) parseShift() (ast.Expression, []source.SyntaxError) {
	return p.binaryLevel(p.parseAdditive, token.SHL, token.SHR)
}

func (p *Parser) parseAdditive() (ast.Expression, []source.SyntaxError) {
	return p.binaryLevel(p.parseMultiplicative, token.PLUS, token.MINUS)
}

func (p *Parser) parseMultiplicative() (ast.Expression, []source.SyntaxError) {
	return p.binaryLevel(p.parseUnary, token.STAR, token.SLASH, token.IDIV, token.PERCENT)
}

func (p *Parser) parseUnary() (ast.Expression, []source.SyntaxError) {
	if p.follows(token.PLUS, token.MINUS, token.TILDE, token.BANG) {
		start := p.index
		opTok := p.lookahead()
		p.index++

		operand, errs := p.parseUnary()
		if len(errs) > 0 {
			return nil, errs
		}

		return &ast.UnaryOp{Op: opTok.Kind.String(), Operand: operand, Sp: p.spanOf(start, p.index-1)}, nil
	}

	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.Expression, []source.SyntaxError) {
	start := p.index

	expr, errs := p.parsePrimary()
	if len(errs) > 0 {
		return nil, errs
	}

	for {
		switch {
		case p.follows(token.LPAREN):
			mention, ok := expr.(*ast.SymbolAccess)
			if !ok {
				return expr, p.syntaxErrors(p.lookahead(), "only a named symbol can be called")
			}

			p.index++

			args, errs := p.parseArgList()
			if len(errs) > 0 {
				return nil, errs
			}

			if _, errs := p.expect(token.RPAREN); len(errs) > 0 {
				return nil, errs
			}

			expr = &ast.Call{Callee: mention.Mention, Args: args, Sp: p.spanOf(start, p.index-1)}
		case p.match(token.DOT):
			member, errs := p.parseIdentifierText()
			if len(errs) > 0 {
				return nil, errs
			}

			if p.match(token.LPAREN) {
				args, errs := p.parseArgList()
				if len(errs) > 0 {
					return nil, errs
				}

				if _, errs := p.expect(token.RPAREN); len(errs) > 0 {
					return nil, errs
				}

				expr = &ast.MemberCall{Receiver: expr, Member: member, Args: args, Sp: p.spanOf(start, p.index-1)}
			} else {
				expr = &ast.MemberAccess{Object: expr, Member: member, Sp: p.spanOf(start, p.index-1)}
			}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseArgList() ([]ast.Expression, []source.SyntaxError) {
	var args []ast.Expression

	if p.follows(token.RPAREN) {
		return args, nil
	}

	for {
		arg, errs := p.parseExpression()
		if len(errs) > 0 {
			return nil, errs
		}

		args = append(args, arg)

		if !p.match(token.COMMA) {
			break
		}
	}

	return args, nil
}

func (p *Parser) parsePrimary() (ast.Expression, []source.SyntaxError) {
	tok := p.lookahead()

	switch tok.Kind {
	case token.NUMBER:
		p.index++
		return &ast.NumberLiteral{Value: tok.Number, Sp: tok.Span}, nil
	case token.COLOR:
		p.index++
		return &ast.ColorLiteral{Value: tok.Color, Sp: tok.Span}, nil
	case token.STRING:
		p.index++
		return &ast.StringLiteral{Value: tok.Text, Sp: tok.Span}, nil
	case token.LPAREN:
		start := p.index
		p.index++

		inner, errs := p.parseExpression()
		if len(errs) > 0 {
			return nil, errs
		}

		if _, errs := p.expect(token.RPAREN); len(errs) > 0 {
			return nil, errs
		}

		return &ast.Grouping{Inner: inner, Sp: p.spanOf(start, p.index-1)}, nil
	case token.IDENTIFIER:
		mention, errs := p.parseMention()
		if len(errs) > 0 {
			return nil, errs
		}

		return &ast.SymbolAccess{Mention: mention, Sp: mention.Sp}, nil
	default:
		return nil, p.syntaxErrors(tok, "expected an expression, found "+tok.Explain())
	}
}
