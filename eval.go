package scicalc

import (
	"math/big"
	"strconv"
	"strings"
)

// Eval validates an expression and reduces it to a number. If the expression
// is not on the allow-list, nothing is evaluated and the error is the one
// Validate returns. Otherwise, errors are those found during reduction, e.g.
// division by zero, an argument to a function outside the function's domain,
// or Ans without a value.
func (env *Env) Eval(e *Expr) (*big.Float, error) {
	if err := env.Validate(e); err != nil {
		return nil, err
	}
	m := machine{env: env, stack: make([]*big.Float, 0, 8)}
	if err := m.run(e.n); err != nil {
		return nil, err
	}
	if len(m.stack) != 1 {
		panic("scicalc: inconsistent stack: " + strconv.Itoa(len(m.stack)) + " items (bad AST?)")
	}
	return m.stack[0], nil
}

// EvalString is a shortcut to parse and evaluate canonical text in a new
// environment. It does not apply Normalize.
func EvalString(text string, opts ...EnvOption) (*big.Float, error) {
	e, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return NewEnv(opts...).Eval(e)
}

// machine is the state of a single reduction.
type machine struct {
	env   *Env
	stack []*big.Float
	// at is the node being reduced, for reporting undefined operations.
	at *node
}

// run reduces n, converting undefined big.Float operations like inf-inf into
// domain errors.
func (m *machine) run(n *node) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		nan, ok := r.(big.ErrNaN)
		if !ok {
			panic(r)
		}
		d := &DomainError{Reason: nan.Error()}
		if m.at != nil {
			d.Func = m.at.op()
		}
		err = d
	}()
	return n.eval(m)
}

// push ensures a settable value on the stack.
func (m *machine) push() *big.Float {
	if len(m.stack) < cap(m.stack) {
		m.stack = m.stack[:len(m.stack)+1]
		if m.stack[len(m.stack)-1] == nil {
			m.stack[len(m.stack)-1] = new(big.Float).SetPrec(m.env.prec)
		}
	} else {
		m.stack = append(m.stack, new(big.Float).SetPrec(m.env.prec))
	}
	return m.stack[len(m.stack)-1]
}

// pop removes the top from the stack and returns it. The returned value may be
// modified by future node evaluations.
func (m *machine) pop() *big.Float {
	r := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (m *machine) top() *big.Float {
	return m.stack[len(m.stack)-1]
}

// binary evaluates both operands of n and returns them, with the left operand
// remaining on the stack to receive the result.
func (m *machine) binary(n *node) (l, r *big.Float, err error) {
	if err := n.left.eval(m); err != nil {
		return nil, nil, err
	}
	if err := n.right.eval(m); err != nil {
		return nil, nil, err
	}
	m.at = n
	r = m.pop()
	l = m.top()
	return l, r, nil
}

// literal parses the text of a numeric literal at precision prec.
func literal(s string, prec uint) (*big.Float, error) {
	r, _, err := new(big.Float).SetPrec(prec).Parse(s, 10)
	switch {
	case err == nil:
		return r, nil
	case err.Error() == "exponent overflow",
		strings.HasSuffix(err.Error(), ": value out of range"):
		// There isn't realistically any better way to detect this error.
		// Literals are unsigned, so the only sign is the exponent's.
		if strings.Contains(s, "-") {
			return new(big.Float).SetPrec(prec), nil
		}
		return new(big.Float).SetInf(false), nil
	default:
		return nil, &LiteralError{Text: s}
	}
}

// eval pushes the node's value to the machine's stack.
func (n *node) eval(m *machine) error {
	switch n.kind {
	case nodeNum:
		v, err := literal(n.name, m.env.prec)
		if err != nil {
			return err
		}
		m.push().Set(v)
	case nodeName:
		if isAns(n.name) {
			if m.env.ans == nil {
				return &UninitializedError{Name: n.name}
			}
			m.push().Set(m.env.ans)
			break
		}
		v := m.env.consts[n.name]
		if v == nil {
			return &NameError{Col: n.pos, Name: n.name}
		}
		m.push().Set(v)
	case nodeCall:
		name := n.left.name
		f := m.env.funcs[name]
		if f == nil {
			return &FuncError{Col: n.pos, Name: name}
		}
		r := m.push()
		k := len(m.stack)
		for l := n.right; l != nil; l = l.right {
			if err := l.left.eval(m); err != nil {
				return err
			}
		}
		m.at = n.left
		invoc := m.stack[k:len(m.stack):len(m.stack)]
		if err := f.Call(m.env, invoc, r); err != nil {
			return asDomainError(err, name)
		}
		m.stack = m.stack[:k]
	case nodeArg:
		panic("scicalc: eval on nodeArg")
	case nodeNeg:
		if err := n.left.eval(m); err != nil {
			return err
		}
		v := m.top()
		v.Neg(v)
	case nodeNop:
		if err := n.left.eval(m); err != nil {
			return err
		}
	case nodeAdd:
		l, r, err := m.binary(n)
		if err != nil {
			return err
		}
		l.Add(l, r)
	case nodeSub:
		l, r, err := m.binary(n)
		if err != nil {
			return err
		}
		l.Sub(l, r)
	case nodeMul:
		l, r, err := m.binary(n)
		if err != nil {
			return err
		}
		l.Mul(l, r)
	case nodeDiv:
		l, r, err := m.binary(n)
		if err != nil {
			return err
		}
		if r.Sign() == 0 {
			return &ZeroDivisionError{Op: "/"}
		}
		if l.IsInf() && r.IsInf() {
			return &DomainError{X: new(big.Float).Copy(r), Func: "/"}
		}
		l.Quo(l, r)
	case nodeMod:
		l, r, err := m.binary(n)
		if err != nil {
			return err
		}
		switch {
		case r.Sign() == 0:
			return &ZeroDivisionError{Op: "%"}
		case l.IsInf():
			return &DomainError{X: new(big.Float).Copy(l), Func: "%"}
		case r.IsInf():
			// x % ±inf is x when the signs agree and ±inf otherwise.
			if l.Sign() != 0 && l.Sign() != r.Sign() {
				l.Set(r)
			}
		default:
			mod(l, l, r)
		}
	case nodePow:
		l, r, err := m.binary(n)
		if err != nil {
			return err
		}
		if err := pow(l, l, r); err != nil {
			return err
		}
	default:
		panic("scicalc: invalid AST node " + n.kind.String())
	}
	return nil
}
