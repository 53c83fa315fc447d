// Package lexer scans HLL source text into a token stream, sharing the
// scanner-combinator framework used elsewhere in this module.
package lexer

import (
	"github.com/mlogc/mlogc/pkg/hll/token"
	"github.com/mlogc/mlogc/pkg/util"
	"github.com/mlogc/mlogc/pkg/util/source"
	"github.com/mlogc/mlogc/pkg/util/source/lex"
)

// Internal-only tags, beyond the range of token.Kind, for lexemes that are
// discarded before the token stream is returned.
const (
	wspaceTag uint = 1000 + iota
	commentTag
)

var whitespace = lex.Many(lex.Or(lex.Unit(' '), lex.Unit('\t'), lex.Unit('\r'), lex.Unit('\n')))

var lineComment = lex.And(lex.Unit('#'), lex.Until('\n'))

var identifierStart = lex.Or(lex.Unit('_'), lex.Within('a', 'z'), lex.Within('A', 'Z'))

var identifierRest = lex.Many(lex.Or(
	lex.Unit('_'),
	lex.Within('0', '9'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z')))

var identifier = lex.And(identifierStart, identifierRest)

var stringLiteral = lex.Sequence(lex.Unit('"'), lex.Until('"'), lex.Unit('"'))

// rules enumerates the lexing rules in the order the underlying combinator
// requires: since it takes the first matching rule (not the longest),
// compound punctuation must be listed before the prefix it extends.
var rules = []lex.LexRule[rune]{
	lex.Rule(lineComment, commentTag),
	lex.Rule(whitespace, wspaceTag),

	lex.Rule(stringLiteral, uint(token.STRING)),
	lex.Rule(numberShape, uint(token.NUMBER)),
	lex.Rule(identifier, uint(token.IDENTIFIER)),

	lex.Rule(lex.Unit('{'), uint(token.LBRACE)),
	lex.Rule(lex.Unit('}'), uint(token.RBRACE)),
	lex.Rule(lex.Unit('('), uint(token.LPAREN)),
	lex.Rule(lex.Unit(')'), uint(token.RPAREN)),
	lex.Rule(lex.Unit(';'), uint(token.SEMICOLON)),
	lex.Rule(lex.Unit('.'), uint(token.DOT)),
	lex.Rule(lex.Unit(','), uint(token.COMMA)),

	lex.Rule(lex.Unit(':', ':'), uint(token.COLON_COLON)),
	lex.Rule(lex.Unit(':'), uint(token.COLON)),

	lex.Rule(lex.Unit('+', '+'), uint(token.PLUS_PLUS)),
	lex.Rule(lex.Unit('+', '='), uint(token.PLUS_ASSIGN)),
	lex.Rule(lex.Unit('+'), uint(token.PLUS)),

	lex.Rule(lex.Unit('-', '-'), uint(token.MINUS_MINUS)),
	lex.Rule(lex.Unit('-', '='), uint(token.MINUS_ASSIGN)),
	lex.Rule(lex.Unit('-'), uint(token.MINUS)),

	lex.Rule(lex.Unit('*', '='), uint(token.STAR_ASSIGN)),
	lex.Rule(lex.Unit('*'), uint(token.STAR)),

	lex.Rule(lex.Unit('/', '/', '='), uint(token.IDIV_ASSIGN)),
	lex.Rule(lex.Unit('/', '/'), uint(token.IDIV)),
	lex.Rule(lex.Unit('/', '='), uint(token.SLASH_ASSIGN)),
	lex.Rule(lex.Unit('/'), uint(token.SLASH)),

	lex.Rule(lex.Unit('%', '='), uint(token.PERCENT_ASSIGN)),
	lex.Rule(lex.Unit('%'), uint(token.PERCENT)),

	lex.Rule(lex.Unit('~'), uint(token.TILDE)),

	lex.Rule(lex.Unit('=', '=', '='), uint(token.STRICTEQ)),
	lex.Rule(lex.Unit('=', '='), uint(token.EQ)),
	lex.Rule(lex.Unit('='), uint(token.ASSIGN)),

	lex.Rule(lex.Unit('!', '='), uint(token.NE)),
	lex.Rule(lex.Unit('!'), uint(token.BANG)),

	lex.Rule(lex.Unit('&', '&'), uint(token.AND_AND)),
	lex.Rule(lex.Unit('&', '='), uint(token.AMP_ASSIGN)),
	lex.Rule(lex.Unit('&'), uint(token.AMP)),

	lex.Rule(lex.Unit('|', '|'), uint(token.OR_OR)),
	lex.Rule(lex.Unit('|', '='), uint(token.PIPE_ASSIGN)),
	lex.Rule(lex.Unit('|'), uint(token.PIPE)),

	lex.Rule(lex.Unit('^', '='), uint(token.CARET_ASSIGN)),
	lex.Rule(lex.Unit('^'), uint(token.CARET)),

	lex.Rule(lex.Unit('<', '<', '='), uint(token.SHL_ASSIGN)),
	lex.Rule(lex.Unit('<', '<'), uint(token.SHL)),
	lex.Rule(lex.Unit('<', '='), uint(token.LE)),
	lex.Rule(lex.Unit('<'), uint(token.LT)),

	lex.Rule(lex.Unit('>', '>', '='), uint(token.SHR_ASSIGN)),
	lex.Rule(lex.Unit('>', '>'), uint(token.SHR)),
	lex.Rule(lex.Unit('>', '='), uint(token.GE)),
	lex.Rule(lex.Unit('>'), uint(token.GT)),

	lex.Rule(lex.Eof[rune](), uint(token.EOF)),
}

// Lex scans a source file into a token stream. The returned tokens exclude
// whitespace and comments; an Identifier whose text matches a reserved word
// is reclassified to its keyword kind; NUMBER/COLOR lexemes carry their
// parsed value.
func Lex(srcfile source.File) ([]token.Token, []source.SyntaxError) {
	contents := srcfile.Contents()
	raw := lex.NewLexer(contents, rules...)
	scanned := raw.Collect()

	if raw.Remaining() != 0 {
		start := int(raw.Index())
		end := start + int(raw.Remaining())
		err := srcfile.SyntaxError(source.NewSpan(start, end), "unknown character encountered")

		return nil, []source.SyntaxError{*err}
	}

	scanned = util.RemoveMatching(scanned, func(t lex.Token) bool {
		return t.Kind == wspaceTag || t.Kind == commentTag
	})

	var (
		out  = make([]token.Token, 0, len(scanned))
		errs []source.SyntaxError
	)

	for _, t := range scanned {
		tok := token.Token{Kind: token.Kind(t.Kind), Span: t.Span}

		switch tok.Kind {
		case token.IDENTIFIER:
			text := string(contents[t.Span.Start():t.Span.End()])
			if kw, ok := token.Keywords[text]; ok {
				tok.Kind = kw
			} else {
				tok.Text = text
			}
		case token.STRING:
			// Strip the enclosing quotes; contents are kept verbatim with
			// no in-language escapes.
			tok.Text = string(contents[t.Span.Start()+1 : t.Span.End()-1])
		case token.NUMBER:
			text := string(contents[t.Span.Start():t.Span.End()])
			lit := parseNumber(text)

			switch {
			case lit.huge:
				errs = append(errs, *srcfile.SyntaxError(t.Span, "numeric literal too large"))
				continue
			case lit.unrepresentable:
				errs = append(errs, *srcfile.SyntaxError(t.Span, "numeric literal not representable"))
				continue
			case lit.isColor:
				tok.Kind = token.COLOR
				tok.Color = lit.color
			default:
				tok.Number = lit.number
			}
		}

		out = append(out, tok)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return out, nil
}
