package scicalc

import (
	"fmt"
	"math/big"
)

// Result is the outcome of evaluating calculator text: either a value or an
// error, never both.
type Result struct {
	// Value is the result of a successful evaluation.
	Value *big.Float
	// Err is the reason evaluation failed.
	Err error
}

// OK reports whether the evaluation succeeded.
func (r Result) OK() bool {
	return r.Err == nil && r.Value != nil
}

// Kind classifies the error of a failed evaluation. It is KindNone for
// successful results.
func (r Result) Kind() ErrorKind {
	return KindOf(r.Err)
}

// String formats the value with the default number of digits, or describes
// the error.
func (r Result) String() string {
	if r.Err != nil {
		return r.Kind().String() + ": " + r.Err.Error()
	}
	return Format(r.Value, DefaultDigits)
}

// Evaluate normalizes, parses, validates, and reduces calculator text. ans is
// the last answer, or nil if there is none. Evaluate never panics on any
// input; every failure is reported in the result.
func Evaluate(text string, mode Mode, ans *big.Float) Result {
	return evaluate(text, Angle(mode), Ans(ans))
}

func evaluate(text string, opts ...EnvOption) (r Result) {
	defer func() {
		if x := recover(); x != nil {
			r = Result{Err: fmt.Errorf("scicalc: internal error evaluating %q: %v", text, x)}
		}
	}()
	e, err := Parse(Normalize(text))
	if err != nil {
		return Result{Err: err}
	}
	v, err := NewEnv(opts...).Eval(e)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Value: v}
}
