package scicalc

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"canonical", "2+3*4", "2+3*4"},
		{"times", "2×3", "2*3"},
		{"divide", "6÷2", "6/2"},
		{"caret", "2^8", "2**8"},
		{"pi", "2*π", "2*pi"},
		{"fullwidth", "２＋３", "2+3"},
		{"fullwidth-bang", "５！", "factorial(5)"},
		{"factorial", "5!", "factorial(5)"},
		{"factorial-name", "x!", "factorial(x)"},
		{"factorial-dec", "2.5!", "factorial(2.5)"},
		{"factorial-group", "(2+3)!", "factorial(2+3)"},
		{"factorial-nested", "((1+2)*(3))!", "factorial((1+2)*(3))"},
		{"factorial-inner", "(1+3!)!", "factorial(1+factorial(3))"},
		{"factorial-sum", "3!+4!", "factorial(3)+factorial(4)"},
		{"factorial-call", "sqrt(4)!", "sqrtfactorial(4)"},
		{"factorial-space", "5 !", "5 factorial()"},
		{"factorial-empty", "!", "factorial()"},
		{"factorial-chain", "3!!", "factorialfactorial(3)"},
		{"factorial-unbalanced", "2+3)!", "factorial2+3)"},
		{"all", "2×π÷4^2!", "2*pi/4**factorial(2)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Normalize(c.in); got != c.want {
				t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestNormalizeIdentity(t *testing.T) {
	cases := []string{
		"",
		"1",
		"2+3*4",
		"(2+3)*4",
		"sin(90)+cos(pi)",
		"2**-1",
		"log(8, 2)",
		"Ans*10",
		"__import__('os')",
		"x.real[0] = 1",
	}
	for _, c := range cases {
		if got := Normalize(c); got != c {
			t.Errorf("Normalize changed canonical %q to %q", c, got)
		}
		// Normalizing twice is the same as normalizing once.
		if got := Normalize(Normalize(c)); got != c {
			t.Errorf("Normalize is not idempotent on %q: %q", c, got)
		}
	}
}
