package scicalc

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// notation maps calculator symbols to canonical text. The replacements are
// applied in order.
var notation = []struct{ from, to string }{
	{"×", "*"},
	{"÷", "/"},
	{"^", "**"},
	{"π", "pi"},
}

// Normalize rewrites calculator notation into the canonical text accepted by
// Parse. Full-width forms are folded to ASCII, "×" and "÷" become "*" and
// "/", "^" becomes "**", "π" becomes "pi", and each postfix "!" becomes a
// call to factorial. Text without any of those is returned unchanged.
//
// The factorial rewrite is a single backward-looking scan rather than a
// grammar rule. It handles "5!", "x!", and "(2+3)!", but "3!!" becomes
// "factorialfactorial(3)", which fails validation.
func Normalize(text string) string {
	text = width.Narrow.String(text)
	for _, r := range notation {
		text = strings.ReplaceAll(text, r.from, r.to)
	}
	if !strings.ContainsRune(text, '!') {
		return text
	}
	return factorials(text)
}

// factorials rewrites postfix ! into prefix factorial calls.
func factorials(text string) string {
	out := make([]rune, 0, len(text)+16)
	for _, r := range text {
		if r != '!' {
			out = append(out, r)
			continue
		}
		j := len(out) - 1
		if j >= 0 && out[j] == ')' {
			// Find the ( that balances the trailing ).
			depth := 0
			for ; j >= 0; j-- {
				switch out[j] {
				case ')':
					depth++
				case '(':
					depth--
				}
				if depth == 0 {
					break
				}
			}
			if j < 0 {
				// Unbalanced. Take everything and let the parser complain.
				j = 0
			}
			group := string(out[j:])
			out = append(out[:j], []rune("factorial"+group)...)
			continue
		}
		for j >= 0 && operandRune(out[j]) {
			j--
		}
		operand := string(out[j+1:])
		out = append(out[:j+1], []rune("factorial("+operand+")")...)
	}
	return string(out)
}

// operandRune reports whether r can be part of a bare factorial operand.
func operandRune(r rune) bool {
	return r == '.' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
