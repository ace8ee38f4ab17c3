package scicalc

import (
	"sort"
	"strings"
)

// Expr = num | name | str | Call | Attr | Index | List | Unary | Binary | '(' Expr ')'
// Call = Expr '(' [ Expr { ',' Expr } ] ')'
// Attr = Expr '.' name
// Index = Expr '[' Expr ']'
// List = '[' [ Expr { ',' Expr } ] ']'
// Unary = ('+' | '-' | '~' | '!') Expr
// Binary = Expr op Expr
// Lambda = 'lambda' params ':' Expr
// Cond = Expr 'if' Expr 'else' Expr
// Comp = Expr Clause { Clause }, inside (), [], or call arguments
// Clause = 'for' Expr { ',' Expr } 'in' Expr | 'if' Expr
//
// Only num, name, Call with a name callee, '+' and '-' as Unary, and the
// Binary operators + - * / % ** are allowed to evaluate. The rest exist so
// that validation can reject them by name.

// Expr is a parsed expression that can be evaluated with an Env. An Expr is
// immutable and safe to evaluate concurrently.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the list of identifiers used as values in the expression.
	names []string
}

// maxDepth limits how deeply expressions may nest.
const maxDepth = 256

// brackets maps each opening bracket to its closing bracket.
var brackets = map[string]string{"(": ")", "[": "]"}

// parser builds a tree from tokens by precedence climbing. Whenever a parse
// method returns without error, the token that ended its term has been pushed
// back to the lexer.
type parser struct {
	scan *lexer
	// depth is the current nesting of terms.
	depth int
}

// Parse parses canonical text into an expression. Calculator notation like
// "×" or "5!" must first go through Normalize. The result may contain
// constructs that Env.Validate rejects.
func Parse(text string) (*Expr, error) {
	p := parser{scan: lex(text)}
	n, err := p.term(exprprec)
	if err != nil {
		return nil, err
	}
	tok := p.scan.must()
	if n == nil || tok.kind != tokenEOF {
		return nil, endError(tok, "")
	}
	ex := Expr{n: n}
	seen := make(map[string]bool)
	n.walkNames(func(name string) {
		if !seen[name] {
			seen[name] = true
			ex.names = append(ex.names, name)
		}
	})
	sort.Strings(ex.names)
	return &ex, nil
}

// walkNames calls f with each identifier in the tree that is used as a value
// rather than as a callee.
func (n *node) walkNames(f func(string)) {
	if n == nil {
		return
	}
	switch n.kind {
	case nodeName:
		f(n.name)
		return
	case nodeLambda, nodeComp:
		// These bind their own names.
		return
	case nodeCall:
		if n.left.kind != nodeName {
			n.left.walkNames(f)
		}
		n.right.walkNames(f)
		return
	}
	n.left.walkNames(f)
	n.right.walkNames(f)
}

// term parses operands joined by operators that bind more tightly than until.
// An empty term gives a nil node and no error; callers decide whether that is
// allowed.
func (p *parser) term(until operator) (*node, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxDepth {
		tok, err := p.scan.next()
		if err != nil {
			return nil, err
		}
		return nil, &DepthError{Col: tok.pos, Max: maxDepth}
	}
	n, err := p.operand(until)
	if err != nil || n == nil {
		return nil, err
	}
	for {
		tok, err := p.scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenOp:
			op := binop(tok.text)
			if op.op == nodeNone {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text}
			}
			if !op.moreBinding(until) {
				p.scan.push(tok)
				return n, nil
			}
			rhs, err := p.required(op)
			if err != nil {
				return nil, err
			}
			n = &node{kind: op.op, name: tok.text, pos: tok.pos, left: n, right: rhs}
		case tokenClose, tokenSep, tokenEOF:
			p.scan.push(tok)
			return n, nil
		case tokenIdent:
			switch tok.text {
			case "if":
				if !condop.moreBinding(until) {
					p.scan.push(tok)
					return n, nil
				}
				if n, err = p.conditional(n, tok); err != nil {
					return nil, err
				}
				continue
			case "else", "for", "in":
				p.scan.push(tok)
				return n, nil
			}
			return nil, &UnexpectedError{Col: tok.pos, Text: tok.text}
		default:
			// Terms are never juxtaposed, so "import os" or "2 3" stops here.
			// Brackets and dots after an operand belong to postfix.
			return nil, &UnexpectedError{Col: tok.pos, Text: tok.text}
		}
	}
}

// required parses a term that must not be empty.
func (p *parser) required(until operator) (*node, error) {
	n, err := p.term(until)
	if err != nil {
		return nil, err
	}
	if n == nil {
		end := p.scan.must()
		return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
	}
	return n, nil
}

// operand parses a single operand with its prefix signs and postfix calls,
// subscripts, and attributes.
func (p *parser) operand(until operator) (*node, error) {
	tok, err := p.scan.next()
	if err != nil {
		return nil, err
	}
	var n *node
	switch tok.kind {
	case tokenNum:
		n = &node{kind: nodeNum, name: tok.text, pos: tok.pos}
	case tokenIdent:
		if tok.text == "lambda" {
			return p.lambda(tok)
		}
		n = &node{kind: nodeName, name: tok.text, pos: tok.pos}
	case tokenStr:
		n = &node{kind: nodeStr, name: tok.text, pos: tok.pos}
	case tokenOp:
		op := unop(tok.text)
		if op.op == nodeNone {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		if !op.moreBinding(until) {
			// In x**-y, the sign takes the precedence of ** so that it
			// applies to y alone.
			op.prec, op.right = until.prec, until.right
		}
		rhs, err := p.required(op)
		if err != nil {
			return nil, err
		}
		return &node{kind: op.op, name: tok.text, pos: tok.pos, left: rhs}, nil
	case tokenOpen:
		if tok.text == "[" {
			args, err := p.args(tok.text)
			if err != nil {
				return nil, err
			}
			if args != nil && args.right == nil && args.left.kind == nodeComp {
				n = &node{kind: nodeComp, name: "[", pos: tok.pos, left: args.left.left, right: args.left.right}
				break
			}
			n = &node{kind: nodeList, pos: tok.pos, right: args}
			break
		}
		if n, err = p.group(tok.text); err != nil {
			return nil, err
		}
	case tokenClose:
		// Empty, as in f(). The caller decides.
		p.scan.push(tok)
		return nil, nil
	case tokenSep:
		return nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenDot:
		return nil, &UnexpectedError{Col: tok.pos, Text: tok.text}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos}
	default:
		panic("scicalc: unknown token: " + tok.String())
	}
	return p.postfix(n)
}

// group parses a term closed by the bracket matching open.
func (p *parser) group(open string) (*node, error) {
	n, err := p.term(exprprec)
	if err != nil {
		return nil, err
	}
	end := p.scan.must()
	if n != nil && end.kind == tokenIdent && end.text == "for" {
		if n, err = p.comprehension(n, end); err != nil {
			return nil, err
		}
		end = p.scan.must()
	}
	if end.kind != tokenClose || end.text != brackets[open] {
		return nil, endError(end, open)
	}
	if n == nil {
		return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
	}
	return n, nil
}

// postfix parses calls, subscripts, and attribute accesses following n. They
// bind more tightly than any operator.
func (p *parser) postfix(n *node) (*node, error) {
	for {
		tok, err := p.scan.next()
		if err != nil {
			return nil, err
		}
		switch {
		case tok.kind == tokenOpen && tok.text == "(":
			args, err := p.args(tok.text)
			if err != nil {
				return nil, err
			}
			n = &node{kind: nodeCall, pos: n.pos, left: n, right: args}
		case tok.kind == tokenOpen && tok.text == "[":
			sub, err := p.group(tok.text)
			if err != nil {
				return nil, err
			}
			n = &node{kind: nodeIndex, pos: tok.pos, left: n, right: sub}
		case tok.kind == tokenDot:
			attr, err := p.scan.next()
			if err != nil {
				return nil, err
			}
			switch attr.kind {
			case tokenIdent:
				n = &node{kind: nodeAttr, name: attr.text, pos: tok.pos, left: n}
			case tokenEOF:
				return nil, &EmptyExpressionError{Col: attr.pos}
			default:
				return nil, &UnexpectedError{Col: attr.pos, Text: attr.text}
			}
		default:
			p.scan.push(tok)
			return n, nil
		}
	}
}

// args parses zero or more comma-separated terms through the bracket closing
// open. The result is a chain of nodeArg linked through right, or nil for an
// empty list.
func (p *parser) args(open string) (*node, error) {
	var head node
	last := &head
	for {
		arg, err := p.term(exprprec)
		if err != nil {
			// An unclosed bracket explains running out of input better than
			// an empty expression does.
			if ee, _ := err.(*EmptyExpressionError); ee != nil && ee.End == "" {
				err = &BracketError{Col: ee.Col, Left: open}
			}
			return nil, err
		}
		end := p.scan.must()
		if arg != nil && end.kind == tokenIdent && end.text == "for" {
			if arg, err = p.comprehension(arg, end); err != nil {
				return nil, err
			}
			end = p.scan.must()
		}
		switch end.kind {
		case tokenClose:
			if end.text != brackets[open] {
				return nil, &BracketError{Col: end.pos, Left: open, Right: end.text}
			}
			if arg == nil {
				// f() is allowed, but f(a,) isn't.
				if last != &head {
					return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
				}
				return nil, nil
			}
			last.right = &node{kind: nodeArg, pos: arg.pos, left: arg}
			return head.right, nil
		case tokenSep:
			if end.text != "," {
				return nil, &SeparatorError{Col: end.pos, Sep: end.text}
			}
			if arg == nil {
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			last.right = &node{kind: nodeArg, pos: arg.pos, left: arg}
			last = last.right
		case tokenEOF:
			return nil, &BracketError{Col: end.pos, Left: open}
		default:
			return nil, &UnexpectedError{Col: end.pos, Text: end.text}
		}
	}
}

// lambda parses a lambda expression after its keyword. The parameters are
// skipped; only the body is kept.
func (p *parser) lambda(kw lexToken) (*node, error) {
	for {
		tok, err := p.scan.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenEOF {
			return nil, &EmptyExpressionError{Col: tok.pos}
		}
		if tok.kind == tokenOp && tok.text == ":" {
			break
		}
	}
	body, err := p.required(exprprec)
	if err != nil {
		return nil, err
	}
	return &node{kind: nodeLambda, pos: kw.pos, left: body}, nil
}

// conditional parses the rest of "x if c else y" after the if token kw.
func (p *parser) conditional(x *node, kw lexToken) (*node, error) {
	c, err := p.required(iterprec)
	if err != nil {
		return nil, err
	}
	if tok := p.scan.must(); tok.kind != tokenIdent || tok.text != "else" {
		return nil, expected(tok)
	}
	y, err := p.required(iterprec)
	if err != nil {
		return nil, err
	}
	alt := &node{kind: nodeArg, name: "else", pos: y.pos, left: y}
	return &node{kind: nodeCond, pos: kw.pos, left: x, right: &node{kind: nodeArg, name: "if", pos: c.pos, left: c, right: alt}}, nil
}

// comprehension parses the for and if clauses following elem, starting after
// the first for token kw. Each clause expression is linked through right as a
// nodeArg named by the word before it.
func (p *parser) comprehension(elem *node, kw lexToken) (*node, error) {
	n := &node{kind: nodeComp, pos: kw.pos, left: elem}
	last := n
	add := func(word string, x *node) {
		last.right = &node{kind: nodeArg, name: word, pos: x.pos, left: x}
		last = last.right
	}
	for {
		if kw.text == "for" {
			word := "for"
			for {
				target, err := p.required(iterprec)
				if err != nil {
					return nil, err
				}
				add(word, target)
				tok := p.scan.must()
				if tok.kind == tokenIdent && tok.text == "in" {
					break
				}
				if tok.kind != tokenSep || tok.text != "," {
					return nil, expected(tok)
				}
				word = ","
			}
			kw.text = "in"
		}
		x, err := p.required(iterprec)
		if err != nil {
			return nil, err
		}
		add(kw.text, x)
		kw = p.scan.must()
		if kw.kind != tokenIdent || kw.text != "for" && kw.text != "if" {
			p.scan.push(kw)
			return n, nil
		}
	}
}

// expected describes tok, found where a keyword should have been.
func expected(tok lexToken) error {
	if tok.kind == tokenEOF {
		return &EmptyExpressionError{Col: tok.pos}
	}
	return &UnexpectedError{Col: tok.pos, Text: tok.text}
}

// endError describes tok, found where a term inside open should have ended.
// open is empty at the top level.
func endError(tok lexToken, open string) error {
	switch tok.kind {
	case tokenEOF:
		if open == "" {
			return &EmptyExpressionError{Col: tok.pos}
		}
		return &BracketError{Col: tok.pos, Left: open}
	case tokenClose:
		return &BracketError{Col: tok.pos, Left: open, Right: tok.text}
	case tokenSep:
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	default:
		return &UnexpectedError{Col: tok.pos, Text: tok.text}
	}
}

// Vars returns the identifiers used as values in the expression, sorted.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// String creates a string representation of the parsed expression, with
// parentheses grouping each term.
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b)
	return b.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "=", ":=":
		return operator{0, true, nodeAssign}
	case "==", "!=", "<", ">", "<=", ">=":
		return operator{2, false, nodeBinop}
	case "|", "&", "^", "<<", ">>":
		return operator{3, false, nodeBinop}
	case "+":
		return operator{4, false, nodeAdd}
	case "-":
		return operator{4, false, nodeSub}
	case "*":
		return operator{5, false, nodeMul}
	case "/":
		return operator{5, false, nodeDiv}
	case "%":
		return operator{5, false, nodeMod}
	case "//":
		return operator{5, false, nodeBinop}
	case "**":
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{10, true, nodeNop}
	case "-":
		return operator{10, true, nodeNeg}
	case "~", "!":
		return operator{10, true, nodeUnop}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, nodeNone}

// condop is the precedence of a conditional expression, between assignment
// and comparison.
var condop = operator{1, false, nodeCond}

// iterprec parses the parts of conditionals and comprehensions, which stop
// before a bare if.
var iterprec = operator{1, false, nodeNone}
