package scicalc

import (
	"math/big"
	"reflect"
	"regexp"
	"testing"
)

type mockfn struct {
	can []int
}

func mockFunc(n ...int) Func {
	return mockfn{can: n}
}

func (f mockfn) Call(env *Env, args []*big.Float, r *big.Float) error {
	r.SetInt64(int64(len(args)))
	return nil
}

func (f mockfn) CanCall(n int) bool {
	for _, v := range f.can {
		if v == n {
			return true
		}
	}
	return false
}

func testEnv() *Env {
	return NewEnv(
		SetFunc("zero", mockFunc(0)),
		SetFunc("one", mockFunc(1)),
		SetFunc("zeroone", mockFunc(0, 1)),
		SetFunc("five", mockFunc(5)),
		SetVar("x", big.NewFloat(2)),
	)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  error
		res  []string
	}{
		{"num", "1", nil, nil},
		{"const", "x*pi+e", nil, nil},
		{"ans", "Ans+ans", nil, nil},
		{"arith", "-x+1-2*3/4%5**+6", nil, nil},
		{"call0", "zero()", nil, nil},
		{"call01", "zeroone() + zeroone(1)", nil, nil},
		{"call5", "five(1, 2, 3, 4, x)", nil, nil},
		{"nested", "one(one(one(x)))", nil, nil},

		{"str", "'a'", new(DisallowedError), []string{`(?i)\bstring\b`, `(?i)\bnot allowed\b`}},
		{"list", "[1]", new(DisallowedError), []string{`(?i)\blist\b`}},
		{"attr", "x.imag", new(DisallowedError), []string{`(?i)\battribute\b`, `\.imag\b`}},
		{"index", "x[0]", new(DisallowedError), []string{`(?i)\bsubscript\b`}},
		{"assign", "x = 1", new(DisallowedError), []string{`(?i)\bassignment\b`}},
		{"walrus", "(x := 1)", new(DisallowedError), []string{`(?i)\bassignment\b`}},
		{"compare", "x < 1", new(DisallowedError), []string{`(?i)\boperator <`}},
		{"shift", "x << 1", new(DisallowedError), []string{`(?i)\boperator <<`}},
		{"xor", "x ^ 1", new(DisallowedError), []string{`(?i)\boperator \^`}},
		{"invert", "~x", new(DisallowedError), []string{`(?i)\bunary operator ~`}},
		{"computed", "one(1)(2)", new(DisallowedError), []string{`(?i)\bcomputed\b`}},
		{"attr-callee", "x.conjugate()", new(DisallowedError), []string{`(?i)\battribute\b`, `\.conjugate\b`}},
		{"deep", "one(1 + one(2 * 'x'))", new(DisallowedError), []string{`(?i)\bstring\b`}},
		{"before-names", "nope(1) + [1]", new(DisallowedError), []string{`(?i)\blist\b`}},
		{"before-arity", "one(1, 2) + 'a'", new(DisallowedError), []string{`(?i)\bstring\b`}},
		{"lambda", "lambda: 1", new(DisallowedError), []string{`(?i)\blambda\b`, `(?i)\bnot allowed\b`}},
		{"lambda-call", "(lambda x: x)(1)", new(DisallowedError), []string{`(?i)\blambda\b`}},
		{"cond", "1 if x else 2", new(DisallowedError), []string{`(?i)\bconditional\b`}},
		{"listcomp", "[x for x in [1, 2]]", new(DisallowedError), []string{`(?i)\bcomprehension\b`}},
		{"genexp", "one(x for x in [1, 2])", new(DisallowedError), []string{`(?i)\bcomprehension\b`}},

		{"unknown-func", "nope(1)", new(FuncError), []string{`(?i)\bfunction\b`, `"nope"`}},
		{"const-call", "x(1)", new(FuncError), []string{`"x"`}},
		{"unknown-name", "y + 1", new(NameError), []string{`(?i)\bundef`, `"y"`}},
		{"func-value", "one", new(NameError), []string{`"one"`}},
		{"arg-name", "one(y)", new(NameError), []string{`"y"`}},
		{"arity-0", "one()", new(CallError), []string{`(?i)\bcall\b`, `\bone\b`, `\b0\b`}},
		{"arity-2", "one(x, x)", new(CallError), []string{`(?i)\bcall\b`, `\bone\b`, `\b2\b`}},
		{"arity-4", "five(1, 2, 3, 4)", new(CallError), []string{`\bfive\b`, `\b4\b`}},
		{"arity-first", "one(1, y)", new(CallError), []string{`\bone\b`}},
	}
	env := testEnv()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := Parse(c.src)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			err = env.Validate(a)
			if reflect.TypeOf(err) != reflect.TypeOf(c.err) {
				t.Fatalf("wrong error from %q: want %T, got %#v", c.src, c.err, err)
			}
			if err == nil {
				return
			}
			msg := err.Error()
			for _, re := range c.res {
				if !regexp.MustCompile(re).MatchString(msg) {
					t.Errorf("error message %q does not match %s", msg, re)
				}
			}
		})
	}
}

func TestValidatePositions(t *testing.T) {
	cases := []struct {
		src string
		col int
	}{
		{"1 + 'a'", 5},
		{"pi.real", 3},
		{"1 + nope(2)", 5},
		{"1 + 2 + y", 9},
		{"sqrt(1, 2)", 1},
	}
	env := NewEnv()
	for _, c := range cases {
		a, err := Parse(c.src)
		if err != nil {
			t.Errorf("%q failed to parse: %v", c.src, err)
			continue
		}
		err = env.Validate(a)
		ie, ok := err.(InputError)
		if !ok {
			t.Errorf("%q: want InputError, got %#v", c.src, err)
			continue
		}
		if ie.Pos() != c.col {
			t.Errorf("%q: error at column %d, want %d: %v", c.src, ie.Pos(), c.col, err)
		}
	}
}
