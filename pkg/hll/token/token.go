// Package token enumerates the lexical tokens of the high-level language
// and pairs each with the source span it was scanned from.
package token

import "github.com/mlogc/mlogc/pkg/util/source"

// Kind discriminates a token's lexical class. The zero value is reserved for
// end-of-stream so an uninitialized Token cannot be mistaken for a real one.
type Kind uint

const (
	// EOF marks the end of the token stream.
	EOF Kind = iota

	// Keywords.
	ENTRYPOINT
	LINK
	USING
	AS
	PROC
	CONST
	VAR
	IF
	ELSE
	WHILE
	BREAK
	CONTINUE
	RETURN

	// Literals and names.
	IDENTIFIER
	NUMBER
	COLOR
	STRING

	// Braces, parens, separators.
	LBRACE    // {
	RBRACE    // }
	LPAREN    // (
	RPAREN    // )
	SEMICOLON // ;
	DOT       // .
	COMMA     // ,

	// Scoping and assignment.
	COLON       // :
	COLON_COLON // ::
	ASSIGN      // =

	// Increment/decrement.
	PLUS_PLUS   // ++
	MINUS_MINUS // --

	// Compound assignment.
	PLUS_ASSIGN     // +=
	MINUS_ASSIGN    // -=
	STAR_ASSIGN     // *=
	SLASH_ASSIGN    // /=
	IDIV_ASSIGN     // //=
	PERCENT_ASSIGN  // %=
	SHL_ASSIGN      // <<=
	SHR_ASSIGN      // >>=
	AMP_ASSIGN      // &=
	CARET_ASSIGN    // ^=
	PIPE_ASSIGN     // |=

	// Binary/unary operator punctuation.
	PLUS     // +
	MINUS    // -
	STAR     // *
	SLASH    // /
	IDIV     // //
	PERCENT  // %
	TILDE    // ~
	BANG     // !
	AMP      // &
	CARET    // ^
	PIPE     // |
	SHL      // <<
	SHR      // >>
	LT       // <
	LE       // <=
	GT       // >
	GE       // >=
	EQ       // ==
	NE       // !=
	STRICTEQ // ===
	AND_AND  // &&
	OR_OR    // ||
)

var names = map[Kind]string{
	EOF: "end of input", ENTRYPOINT: "entrypoint", LINK: "link", USING: "using", AS: "as",
	PROC: "proc", CONST: "const", VAR: "var", IF: "if", ELSE: "else", WHILE: "while",
	BREAK: "break", CONTINUE: "continue", RETURN: "return",
	IDENTIFIER: "identifier", NUMBER: "number", COLOR: "colour", STRING: "string",
	LBRACE: "{", RBRACE: "}", LPAREN: "(", RPAREN: ")", SEMICOLON: ";", DOT: ".", COMMA: ",",
	COLON: ":", COLON_COLON: "::", ASSIGN: "=",
	PLUS_PLUS: "++", MINUS_MINUS: "--",
	PLUS_ASSIGN: "+=", MINUS_ASSIGN: "-=", STAR_ASSIGN: "*=", SLASH_ASSIGN: "/=",
	IDIV_ASSIGN: "//=", PERCENT_ASSIGN: "%=", SHL_ASSIGN: "<<=", SHR_ASSIGN: ">>=",
	AMP_ASSIGN: "&=", CARET_ASSIGN: "^=", PIPE_ASSIGN: "|=",
	PLUS: "+", MINUS: "-", STAR: "*", SLASH: "/", IDIV: "//", PERCENT: "%",
	TILDE: "~", BANG: "!", AMP: "&", CARET: "^", PIPE: "|", SHL: "<<", SHR: ">>",
	LT: "<", LE: "<=", GT: ">", GE: ">=", EQ: "==", NE: "!=", STRICTEQ: "===",
	AND_AND: "&&", OR_OR: "||",
}

// String gives a human-readable explanation, used both in diagnostics and
// test expectations.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}

	return "?"
}

// Keywords maps reserved identifier text to its keyword kind.
var Keywords = map[string]Kind{
	"entrypoint": ENTRYPOINT, "link": LINK, "using": USING, "as": AS,
	"proc": PROC, "const": CONST, "var": VAR, "if": IF, "else": ELSE,
	"while": WHILE, "break": BREAK, "continue": CONTINUE, "return": RETURN,
}

// Token is one lexical unit: a kind, its source span, and — for the
// variants that carry data — the scanned value.
type Token struct {
	Kind Kind
	Span source.Span
	// Text holds the raw identifier text (IDENTIFIER) or string contents
	// (STRING).
	Text string
	// Number holds the parsed value for NUMBER.
	Number float64
	// Color holds the packed RGBA value for COLOR.
	Color uint32
}

// Explain renders the token for use in a SyntaxError message.
func (t Token) Explain() string {
	switch t.Kind {
	case IDENTIFIER:
		return "identifier '" + t.Text + "'"
	case STRING:
		return "string literal"
	case NUMBER:
		return "numeric literal"
	case COLOR:
		return "colour literal"
	default:
		return "'" + t.Kind.String() + "'"
	}
}
