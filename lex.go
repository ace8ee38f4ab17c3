package scicalc

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is a numeric literal.
	tokenNum
	// tokenIdent is a variable or function name.
	tokenIdent
	// tokenStr is a quoted string. The text excludes the quotes.
	tokenStr
	// tokenOp is an operator, including = and :=.
	tokenOp
	// tokenOpen is an open bracket, ( or [.
	tokenOpen
	// tokenClose is a close bracket, ) or ].
	tokenClose
	// tokenSep is a separator, either , or ;.
	tokenSep
	// tokenDot is a . that does not begin a number.
	tokenDot
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenNum:
		return "Num"
	case tokenIdent:
		return "Ident"
	case tokenStr:
		return "Str"
	case tokenOp:
		return "Op"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	case tokenSep:
		return "Sep"
	case tokenDot:
		return "Dot"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the runes which begin operator tokens. Not all of them
// are allowed in an evaluated expression; see Env.Validate.
const Operators = "+-*/%^&|~<>=!:"

// twoRuneOps are the operators spelled with two runes.
var twoRuneOps = map[string]bool{
	"**": true,
	"//": true,
	"==": true,
	"!=": true,
	"<=": true,
	">=": true,
	"<<": true,
	">>": true,
	":=": true,
}

// OpenBrackets and CloseBrackets contain the bracket runes. Parentheses group
// and call; square brackets only appear in constructs validation rejects.
const (
	OpenBrackets  = "(["
	CloseBrackets = ")]"
)

// lexer splits expression text into tokens. Columns count runes from 1.
type lexer struct {
	src []rune
	// at is the index of the next unscanned rune.
	at  int
	p   lexToken
	eof bool
}

func lex(text string) *lexer {
	return &lexer{src: []rune(text)}
}

// peek returns the rune k places after the next one, or -1 past the end.
func (l *lexer) peek(k int) rune {
	if l.at+k >= len(l.src) {
		return -1
	}
	return l.src[l.at+k]
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok lexToken) {
	if l.p.kind != tokenNone {
		panic("scicalc: double push")
	}
	l.p = tok
}

// must scans the pushed token. Panics if there is no pushed token.
func (l *lexer) must() lexToken {
	tok := l.p
	if tok.kind == tokenNone {
		panic("scicalc: no pushed token")
	}
	l.p = lexToken{}
	return tok
}

// next scans the next token. The end of input is first a tokenEOF with a nil
// error, and after that io.EOF. After an invalid token, the result holds only
// the token's position, and scanning resumes after it.
func (l *lexer) next() (lexToken, error) {
	if l.p.kind != tokenNone {
		tok := l.p
		l.p = lexToken{}
		return tok, nil
	}
	if l.eof {
		return lexToken{}, io.EOF
	}
	for l.at < len(l.src) && unicode.IsSpace(l.src[l.at]) {
		l.at++
	}
	tok := lexToken{pos: l.at + 1}
	if l.at == len(l.src) {
		tok.kind = tokenEOF
		l.eof = true
		return tok, nil
	}
	start := l.at
	r := l.src[l.at]
	var err error
	switch {
	case isDigit(r), r == '.' && isDigit(l.peek(1)):
		tok.kind, err = tokenNum, l.scanNum()
	case r == '.':
		l.at++
		tok.kind = tokenDot
	case r == '_', unicode.IsLetter(r):
		l.scanIdent()
		tok.kind = tokenIdent
	case r == '\'', r == '"':
		tok.kind, err = tokenStr, l.scanStr(r)
		if err == nil {
			// Drop the quotes.
			tok.text = string(l.src[start+1 : l.at-1])
			return tok, nil
		}
	case r == ',', r == ';':
		l.at++
		tok.kind = tokenSep
	case strings.ContainsRune(Operators, r):
		l.at++
		if twoRuneOps[string(r)+string(l.peek(0))] {
			l.at++
		}
		tok.kind = tokenOp
	case strings.ContainsRune(OpenBrackets, r):
		l.at++
		tok.kind = tokenOpen
	case strings.ContainsRune(CloseBrackets, r):
		l.at++
		tok.kind = tokenClose
	default:
		l.at++
		err = l.error("", start)
	}
	if err != nil {
		return lexToken{pos: tok.pos}, err
	}
	tok.text = string(l.src[start:l.at])
	return tok, nil
}

// scanNum scans a numeric literal. Trailing identifier characters, as in 2j or
// 0x1f, are kept in the literal, which then fails to evaluate as a number.
func (l *lexer) scanNum() error {
	start := l.at
	// dig and ed record digits in the mantissa and exponent; le is set just
	// after the exponent marker, where a sign may appear.
	var dot, dig, e, le, ed, odd bool
	for r := l.peek(0); r >= 0; r = l.peek(0) {
		if r == '+' || r == '-' {
			if !le || odd {
				break
			}
			le = false
			l.at++
			continue
		}
		if r != '.' && !identRune(r) {
			break
		}
		l.at++
		if odd {
			continue
		}
		switch {
		case r == '.':
			if dot || e {
				return l.error("number", start)
			}
			dot = true
			le = false
		case (r == 'e' || r == 'E') && dig && !e:
			e = true
			le = true
		case isDigit(r):
			if e {
				ed = true
			} else {
				dig = true
			}
			le = false
		default:
			odd = true
		}
	}
	if odd {
		return nil
	}
	if !dig || (e && !ed) {
		return l.error("number", start)
	}
	return nil
}

func (l *lexer) scanIdent() {
	for identRune(l.peek(0)) {
		l.at++
	}
}

// scanStr scans a string literal including its quotes. A backslash escapes
// the following rune.
func (l *lexer) scanStr(q rune) error {
	start := l.at
	l.at++
	for l.at < len(l.src) {
		r := l.src[l.at]
		l.at++
		switch r {
		case '\\':
			if l.at < len(l.src) {
				l.at++
			}
		case q:
			return nil
		}
	}
	return l.error("string", start)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func identRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// error creates an error for the invalid token starting at index start and
// ending before the next rune to scan.
func (l *lexer) error(kind string, start int) error {
	return &LexError{
		Text: string(l.src[start:l.at]),
		Kind: kind,
		Col:  start + 1,
	}
}

// LexError is an invalid token.
type LexError struct {
	// Text is the invalid token, up to and including the rune that made it
	// invalid.
	Text string
	// Kind is the kind of token being scanned: "number", "string", or empty
	// for a rune that begins no token.
	Kind string
	Col  int
}

func (err *LexError) Error() string {
	switch err.Kind {
	case "":
		return errpos(err.Col, fmt.Sprintf("invalid character %q", err.Text))
	case "string":
		return errpos(err.Col, fmt.Sprintf("unterminated string %s", err.Text))
	default:
		return errpos(err.Col, fmt.Sprintf("malformed %s %q", err.Kind, err.Text))
	}
}

func (err *LexError) Pos() int { return err.Col }
