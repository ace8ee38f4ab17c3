package scicalc

import (
	"math/big"
	"testing"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		digits int
		want   string
	}{
		{"int", "14", 0, "14"},
		{"neg-int", "-7", 0, "-7"},
		{"zero", "0", 0, "0"},
		{"neg-zero", "-0", 0, "0"},
		{"near-int", "0.1*3*10", 0, "3"},
		{"sum", "0.1+0.2", 0, "0.3"},
		{"third", "1/3", 0, "0.333333333333"},
		{"two-thirds", "2/3", 0, "0.666666666667"},
		{"half", "2.5", 0, "2.5"},
		{"neg-frac", "-0.5", 0, "-0.5"},
		{"tiny", "1e-13", 0, "0"},
		{"small", "1e-5", 0, "1e-05"},
		{"digits", "pi", 3, "3.14"},
		{"default-digits", "pi", 0, "3.14159265359"},
		{"big-int", "factorial(20)", 0, "2432902008176640000"},
		{"huge-int", "factorial(100)", 0, "9.33262154439e+157"},
		{"inf", "1e99999999999", 0, "inf"},
		{"neg-inf", "-1e99999999999", 0, "-inf"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			x, err := EvalString(c.src)
			if err != nil {
				t.Fatalf("%q: %v", c.src, err)
			}
			if got := Format(x, c.digits); got != c.want {
				t.Errorf("Format(%s, %d) = %q, want %q", c.src, c.digits, got, c.want)
			}
		})
	}
}

func TestFormatNil(t *testing.T) {
	if got := Format(nil, 0); got != "" {
		t.Errorf("Format(nil) = %q", got)
	}
	if got := Format(big.NewFloat(42), -1); got != "42" {
		t.Errorf("Format(42, -1) = %q", got)
	}
}
