package scicalc_test

import (
	"math/rand"
	"strings"
	"testing"

	fuzz "github.com/google/gofuzz"

	"github.com/zephyrtronium/scicalc"
)

var hostile = []string{
	"1", "2.5", "1e3", "pi", "e", "Ans", "x", "sin", "sqrt", "factorial",
	"+", "-", "*", "/", "%", "**", "^", "×", "÷", "!", "(", ")", ",", " ",
	"'", `"`, "=", ":=", "[", "]", ".", "__import__", "os", "system",
	"lambda", "__class__", "__globals__", "exec", "eval", "open", "\n", "\\",
}

func hostileText(s *string, c fuzz.Continue) {
	var b strings.Builder
	n := c.Intn(24)
	for i := 0; i < n; i++ {
		if c.Intn(16) == 0 {
			b.WriteString(c.RandString())
			continue
		}
		b.WriteString(hostile[c.Intn(len(hostile))])
	}
	*s = b.String()
}

func TestEvaluateHostileInput(t *testing.T) {
	f := fuzz.New().RandSource(rand.NewSource(1)).Funcs(hostileText)
	for i := 0; i < 5000; i++ {
		var s string
		f.Fuzz(&s)
		r := scicalc.Evaluate(s, scicalc.Degrees, nil)
		if r.Err != nil && strings.Contains(r.Err.Error(), "internal error") {
			t.Errorf("%q: %v", s, r.Err)
		}
		if r.OK() == (r.Err != nil) {
			t.Errorf("%q: inconsistent result %#v", s, r)
		}
		if strings.ContainsAny(s, `'"[`) && r.OK() {
			t.Errorf("%q evaluated to %v", s, r)
		}
	}
}

func TestEvaluateEscapes(t *testing.T) {
	cases := []string{
		"__import__('os').system('ls')",
		"().__class__.__bases__[0]",
		"open('/etc/passwd').read()",
		"exec('1')",
		"eval('2+2')",
		"lambda: 1",
		"[x for x in (1, 2)]",
		"x = 1",
		"Ans := 3",
		"globals()",
		"pi.__class__",
		"sin.__globals__",
		"1; 2",
		"1 if 1 else 2",
	}
	for _, src := range cases {
		r := scicalc.Evaluate(src, scicalc.Radians, nil)
		if r.OK() {
			t.Errorf("%q evaluated to %v", src, r)
		}
	}
}
