package lexer

import (
	"strings"

	"github.com/mlogc/mlogc/pkg/num"
)

// numberShape recognizes the maximal run of a numeric literal starting at
// items[0], without validating its value. It is used as the lex.Scanner for
// the NUMBER/COLOR tag; the value itself is extracted afterwards by
// parseNumber once the span is known.
func numberShape(items []rune) uint {
	n := len(items)
	if n == 0 || !isDecDigit(items[0]) {
		return 0
	}

	radix, i := 10, 0

	if items[0] == '0' && n > 1 {
		switch items[1] {
		case 'b', 'B':
			radix, i = 2, 2
		case 'o', 'O':
			radix, i = 8, 2
		case 'd', 'D':
			radix, i = 10, 2
		case 'x', 'X':
			radix, i = 16, 2
		case 'p', 'P':
			// Colour literal: 0p followed by 6 or 8 hex digits.
			j := 2
			for j < n && isHexDigit(items[j]) {
				j++
			}

			return uint(j)
		}
	}

	digitsStart := i
	for i < n && (isRadixDigit(items[i], radix) || items[i] == '_') {
		i++
	}

	if i == digitsStart {
		// A radix prefix with no digits after it (e.g. "0x" alone) is not
		// a number. Without a prefix items[0] is already a digit, so only
		// prefixed literals reach this branch.
		if radix != 10 || digitsStart != 0 {
			return 0
		}
	}

	if i < n && items[i] == '.' {
		j := i + 1
		k := j

		for k < n && (isRadixDigit(items[k], radix) || items[k] == '_') {
			k++
		}

		if k > j {
			i = k
		}
	}

	if i < n {
		isExpLetter := (radix == 10 && (items[i] == 'e' || items[i] == 'E')) ||
			(radix != 10 && (items[i] == 'p' || items[i] == 'P'))

		if isExpLetter {
			j := i + 1
			if j < n && (items[j] == '+' || items[j] == '-') {
				j++
			}

			k := j
			for k < n && isDecDigit(items[k]) {
				k++
			}

			if k > j {
				i = k
			}
		}
	}

	return uint(i)
}

func isDecDigit(r rune) bool { return r >= '0' && r <= '9' }

func isHexDigit(r rune) bool {
	return isDecDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isRadixDigit(r rune, radix int) bool {
	switch radix {
	case 2:
		return r == '0' || r == '1'
	case 8:
		return r >= '0' && r <= '7'
	case 16:
		return isHexDigit(r)
	default:
		return isDecDigit(r)
	}
}

func digitValue(r rune) uint64 {
	switch {
	case r >= '0' && r <= '9':
		return uint64(r - '0')
	case r >= 'a' && r <= 'f':
		return uint64(r-'a') + 10
	case r >= 'A' && r <= 'F':
		return uint64(r-'A') + 10
	default:
		return 0
	}
}

// numberLiteral is the value produced by parsing a NUMBER or COLOR lexeme.
type numberLiteral struct {
	isColor bool
	number  float64
	color   uint32
	// huge is true when the accumulator overflowed 128 bits, or when a
	// colour literal has neither 6 nor 8 hex digits.
	huge bool
	// unrepresentable is true when the rescaled result escaped float64's
	// finite range.
	unrepresentable bool
}

// parseNumber interprets the raw text of a NUMBER/COLOR lexeme (as matched
// by numberShape) and computes its value.
func parseNumber(text string) numberLiteral {
	radix := 10
	body := text

	if len(text) > 1 && text[0] == '0' {
		switch text[1] {
		case 'b', 'B':
			radix, body = 2, text[2:]
		case 'o', 'O':
			radix, body = 8, text[2:]
		case 'd', 'D':
			radix, body = 10, text[2:]
		case 'x', 'X':
			radix, body = 16, text[2:]
		case 'p', 'P':
			return parseColor(text[2:])
		}
	}

	whole, frac, expSign, expDigits := splitNumberBody(body, radix)

	acc := num.Zero()
	ok := true
	fracDigits := 0

	for _, r := range whole {
		if r == '_' {
			continue
		}

		var good bool

		acc, good = acc.PushDigit(uint64(radix), digitValue(r))
		ok = ok && good
	}

	for _, r := range frac {
		if r == '_' {
			continue
		}

		var good bool

		acc, good = acc.PushDigit(uint64(radix), digitValue(r))
		ok = ok && good
		fracDigits++
	}

	if !ok {
		return numberLiteral{huge: true}
	}

	value := acc.Float64()

	// Shift by the fractional digit count, in the literal's own radix: each
	// fractional digit divides the accumulated value by one more power of
	// the radix.
	if fracDigits > 0 {
		scale := 1.0
		for i := 0; i < fracDigits; i++ {
			scale *= float64(radix)
		}

		value /= scale
	}

	if len(expDigits) > 0 {
		exp := 0
		for _, r := range expDigits {
			exp = exp*10 + int(r-'0')
		}

		if expSign == '-' {
			exp = -exp
		}

		if radix == 10 {
			value = num.RescaleDecimal(value, exp)
		} else {
			value = num.Rescale(value, exp)
		}
	}

	if num.NotRepresentable(value) {
		return numberLiteral{unrepresentable: true}
	}

	return numberLiteral{number: value}
}

func splitNumberBody(body string, radix int) (whole, frac string, expSign rune, expDigits string) {
	expLetter := byte('e')
	if radix != 10 {
		expLetter = 'p'
	}

	rest := body

	if idx := strings.IndexAny(rest, string([]byte{expLetter, expLetter - 'a' + 'A'})); idx >= 0 {
		expPart := rest[idx+1:]
		rest = rest[:idx]

		if len(expPart) > 0 && (expPart[0] == '+' || expPart[0] == '-') {
			expSign = rune(expPart[0])
			expPart = expPart[1:]
		}

		expDigits = expPart
	}

	if idx := strings.IndexByte(rest, '.'); idx >= 0 {
		whole, frac = rest[:idx], rest[idx+1:]
	} else {
		whole = rest
	}

	return whole, frac, expSign, expDigits
}

func parseColor(hex string) numberLiteral {
	if len(hex) != 6 && len(hex) != 8 {
		return numberLiteral{huge: true}
	}

	var v uint32

	for _, r := range hex {
		v = v<<4 | uint32(digitValue(r))
	}

	if len(hex) == 6 {
		v = v<<8 | 0xFF
	}

	return numberLiteral{isColor: true, color: v}
}
