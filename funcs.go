package scicalc

import (
	"errors"
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a function from reals to reals.
type Func interface {
	// Call evaluates the function. The function arguments are passed in args,
	// which has a length for which CanCall returned true. The function must
	// set r to its result and should not use the value of r otherwise. Call
	// may modify the elements of args. Out-of-domain arguments should produce
	// a *DomainError; the evaluator fills in the function name if it is empty.
	Call(env *Env, args []*big.Float, r *big.Float) error

	// CanCall returns whether the function can be called with n arguments.
	// Validation rejects calls with any other number of arguments.
	CanCall(n int) bool
}

// maxFactorial is the largest argument accepted by factorial.
const maxFactorial = 10000

// builtins creates the default function table with trigonometric functions
// bound for the given angle mode.
func builtins(mode Mode) map[string]Func {
	m := map[string]Func{
		"sinh": Real(math.Sinh),
		"cosh": Real(math.Cosh),
		"tanh": Real(math.Tanh),

		"exp":   Monadic(exp),
		"ln":    Monadic(ln),
		"log":   logFunc{},
		"log10": Monadic(log10),
		"sqrt":  Monadic((*big.Float).Sqrt),
		"abs":   Monadic((*big.Float).Abs),
		"round": roundFunc{},
		"floor": Monadic(floor),
		"ceil":  Monadic(ceil),

		"factorial": factorial{},
		"fact":      factorial{},
	}
	switch mode {
	case Degrees:
		m["sin"] = Real(func(x float64) float64 { return math.Sin(x * math.Pi / 180) })
		m["cos"] = Real(func(x float64) float64 { return math.Cos(x * math.Pi / 180) })
		m["tan"] = Real(func(x float64) float64 { return math.Tan(x * math.Pi / 180) })
		m["asin"] = Real(func(x float64) float64 { return math.Asin(x) * 180 / math.Pi })
		m["acos"] = Real(func(x float64) float64 { return math.Acos(x) * 180 / math.Pi })
		m["atan"] = Real(func(x float64) float64 { return math.Atan(x) * 180 / math.Pi })
	default:
		m["sin"] = Real(math.Sin)
		m["cos"] = Real(math.Cos)
		m["tan"] = Real(math.Tan)
		m["asin"] = Real(math.Asin)
		m["acos"] = Real(math.Acos)
		m["atan"] = Real(math.Atan)
	}
	return m
}

type monadic struct {
	f func(out, in *big.Float) *big.Float
}

func (m monadic) Call(env *Env, args []*big.Float, r *big.Float) (err error) {
	in := args[0]
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		nan, ok := r.(big.ErrNaN)
		if !ok {
			panic(r)
		}
		err = &DomainError{X: new(big.Float).Copy(in), Arg: 1, Reason: nan.Error()}
	}()
	r.SetPrec(env.Prec())
	r.Set(m.f(r, in))
	return nil
}

func (m monadic) CanCall(n int) bool {
	return n == 1
}

// Monadic wraps a function of one variable into a Func. f returns its result,
// which is usually out but need not be. If f is called on an argument outside
// its domain, it should panic with a big.ErrNaN.
func Monadic(f func(out, in *big.Float) *big.Float) Func {
	return monadic{f}
}

type realfn struct {
	f func(float64) float64
}

func (f realfn) Call(env *Env, args []*big.Float, r *big.Float) error {
	x, _ := args[0].Float64()
	y := f.f(x)
	if math.IsNaN(y) {
		return &DomainError{X: new(big.Float).Copy(args[0]), Arg: 1}
	}
	r.SetPrec(env.Prec()).SetFloat64(y)
	return nil
}

func (f realfn) CanCall(n int) bool {
	return n == 1
}

// Real wraps a float64 function of one variable, such as those from package
// math, into a Func. The argument is rounded to float64. A NaN result is
// reported as a domain error.
func Real(f func(float64) float64) Func {
	return realfn{f}
}

// exp sets out to e**in. The argument is reduced by a multiple k of ln 2
// before bigfloat.Exp sees it, and k goes directly into the exponent of out.
func exp(out, in *big.Float) *big.Float {
	prec := out.Prec()
	if prec == 0 {
		prec = in.Prec()
		if prec < 64 {
			prec = 64
		}
		out.SetPrec(prec)
	}
	switch {
	case in.IsInf():
		if in.Signbit() {
			return out.SetInt64(0)
		}
		return out.SetInf(false)
	case in.Sign() == 0:
		return out.SetInt64(1)
	}
	wp := prec + 64
	ln2 := bigfloat.Log(new(big.Float).SetPrec(wp), big.NewFloat(2))
	q := new(big.Float).SetPrec(wp).Quo(in, ln2)
	fq, _ := q.Float64()
	switch {
	case fq > big.MaxExp+1:
		return out.SetInf(false)
	case fq < big.MinExp-float64(prec)-2:
		return out.SetInt64(0)
	}
	floor(q, q)
	k, _ := q.Int64()
	r := new(big.Float).SetPrec(wp).Mul(q, ln2)
	r.Sub(in, r)
	er := bigfloat.Exp(new(big.Float).SetPrec(wp), r)
	return out.SetMantExp(er, int(k))
}

func ln(out, in *big.Float) *big.Float {
	if in.Sign() <= 0 {
		panic(big.ErrNaN{})
	}
	if in.IsInf() {
		return out.SetInf(false)
	}
	return out.Set(bigfloat.Log(out, in))
}

func log10(out, in *big.Float) *big.Float {
	ln(out, in)
	ten := new(big.Float).SetPrec(out.Prec()).SetInt64(10)
	return out.Quo(out, bigfloat.Log(ten, ten))
}

// logFunc is log(x) in base 10 or log(x, b) in base b.
type logFunc struct{}

func (logFunc) Call(env *Env, args []*big.Float, r *big.Float) error {
	r.SetPrec(env.Prec())
	x := args[0]
	if x.Sign() <= 0 {
		return &DomainError{X: new(big.Float).Copy(x), Arg: 1}
	}
	if len(args) == 1 {
		log10(r, x)
		return nil
	}
	b := args[1]
	if b.Sign() <= 0 || b.Cmp(big.NewFloat(1)) == 0 {
		return &DomainError{X: new(big.Float).Copy(b), Arg: 2}
	}
	if b.IsInf() {
		// ln x / ln b tends to 0 for finite x and is undefined for infinite x.
		if x.IsInf() {
			return &DomainError{X: new(big.Float).Copy(b), Arg: 2}
		}
		r.SetInt64(0)
		return nil
	}
	ln(r, x)
	lb := new(big.Float).SetPrec(env.Prec())
	ln(lb, b)
	r.Quo(r, lb)
	return nil
}

func (logFunc) CanCall(n int) bool {
	return n == 1 || n == 2
}

// roundFunc is round(x) to the nearest integer, ties to even, or round(x, n)
// to n decimal places.
type roundFunc struct{}

func (roundFunc) Call(env *Env, args []*big.Float, r *big.Float) error {
	r.SetPrec(env.Prec())
	x := args[0]
	if len(args) == 1 {
		roundEven(r, x)
		return nil
	}
	d := args[1]
	n, acc := d.Int64()
	if !d.IsInt() || acc != big.Exact {
		return &DomainError{X: new(big.Float).Copy(d), Arg: 2}
	}
	if x.IsInf() || x.Sign() == 0 {
		r.Set(x)
		return nil
	}
	// x is a multiple of 2**-f, so it already has at most f decimal places.
	f := int64(x.MinPrec()) - int64(x.MantExp(nil))
	if n >= 0 && n >= f {
		r.Set(x)
		return nil
	}
	prec := env.Prec() + 64
	scale := new(big.Float).SetPrec(prec)
	ten := new(big.Float).SetPrec(prec).SetInt64(10)
	if n >= 0 {
		powInt(scale, ten, n)
		if scale.IsInf() {
			r.Set(x)
			return nil
		}
		t := new(big.Float).SetPrec(prec).Mul(x, scale)
		roundEven(t, t)
		r.Quo(t, scale)
	} else {
		powInt(scale, ten, -n)
		if scale.IsInf() {
			r.SetInt64(0)
			return nil
		}
		t := new(big.Float).SetPrec(prec).Quo(x, scale)
		roundEven(t, t)
		r.Mul(t, scale)
	}
	return nil
}

func (roundFunc) CanCall(n int) bool {
	return n == 1 || n == 2
}

type factorial struct{}

func (factorial) Call(env *Env, args []*big.Float, r *big.Float) error {
	x := args[0]
	if x.Sign() < 0 || !x.IsInt() {
		return &DomainError{X: new(big.Float).Copy(x), Arg: 1, Reason: "not a non-negative integer"}
	}
	if x.Cmp(big.NewFloat(maxFactorial)) > 0 {
		return &DomainError{X: new(big.Float).Copy(x), Arg: 1, Reason: "argument exceeds " + strconv.Itoa(maxFactorial)}
	}
	n, _ := x.Int64()
	r.SetPrec(env.Prec()).SetInt(new(big.Int).MulRange(1, n))
	return nil
}

func (factorial) CanCall(n int) bool {
	return n == 1
}

var bigOne = big.NewInt(1)

// floor sets out to the greatest integer not greater than in.
func floor(out, in *big.Float) *big.Float {
	if in.IsInf() || in.IsInt() {
		return out.Set(in)
	}
	i, _ := in.Int(nil)
	if in.Sign() < 0 {
		i.Sub(i, bigOne)
	}
	return out.SetInt(i)
}

// ceil sets out to the least integer not less than in.
func ceil(out, in *big.Float) *big.Float {
	if in.IsInf() || in.IsInt() {
		return out.Set(in)
	}
	i, _ := in.Int(nil)
	if in.Sign() > 0 {
		i.Add(i, bigOne)
	}
	return out.SetInt(i)
}

// roundEven sets out to in rounded to the nearest integer, with ties going to
// the even neighbor.
func roundEven(out, in *big.Float) *big.Float {
	if in.IsInf() || in.IsInt() {
		return out.Set(in)
	}
	i, _ := in.Int(nil)
	frac := new(big.Float).SetPrec(in.Prec()).SetInt(i)
	frac.Sub(in, frac).Abs(frac)
	if c := frac.Cmp(big.NewFloat(0.5)); c > 0 || c == 0 && i.Bit(0) == 1 {
		if in.Sign() < 0 {
			i.Sub(i, bigOne)
		} else {
			i.Add(i, bigOne)
		}
	}
	return out.SetInt(i)
}

// powInt sets z to x**n by binary exponentiation. z may alias x.
func powInt(z, x *big.Float, n int64) *big.Float {
	prec := z.Prec()
	if prec == 0 {
		prec = x.Prec()
	}
	u := uint64(n)
	if n < 0 {
		u = uint64(-(n + 1)) + 1
	}
	b := new(big.Float).SetPrec(prec + 32).Set(x)
	r := new(big.Float).SetPrec(prec + 32).SetInt64(1)
	for u > 0 {
		if u&1 == 1 {
			r.Mul(r, b)
		}
		u >>= 1
		if u > 0 {
			b.Mul(b, b)
		}
	}
	if n < 0 {
		r.Quo(new(big.Float).SetInt64(1), r)
	}
	return z.Set(r)
}

// pow sets z to x**y. z may alias x.
func pow(z, x, y *big.Float) error {
	if x.IsInf() || y.IsInf() {
		fx, _ := x.Float64()
		fy, _ := y.Float64()
		f := math.Pow(fx, fy)
		if math.IsNaN(f) {
			return &DomainError{X: new(big.Float).Copy(x), Func: "**"}
		}
		z.SetFloat64(f)
		return nil
	}
	if y.IsInt() {
		if x.Sign() == 0 && y.Sign() < 0 {
			return &ZeroDivisionError{Op: "**"}
		}
		if n, acc := y.Int64(); acc == big.Exact {
			powInt(z, x, n)
			return nil
		}
		// The exponent is too large for int64. Its parity still decides the
		// sign of a negative base.
		i, _ := y.Int(nil)
		neg := x.Signbit() && i.Bit(0) == 1
		a := new(big.Float).Abs(x)
		if a.Sign() == 0 {
			z.SetInt64(0)
			return nil
		}
		powExp(z, a, y)
		if neg {
			z.Neg(z)
		}
		return nil
	}
	switch x.Sign() {
	case -1:
		return &DomainError{X: new(big.Float).Copy(x), Func: "**", Reason: "fractional power of a negative number"}
	case 0:
		if y.Sign() < 0 {
			return &ZeroDivisionError{Op: "**"}
		}
		z.SetInt64(0)
		return nil
	}
	powExp(z, x, y)
	return nil
}

// powExp sets z to e**(y ln x) for finite positive x and finite y.
func powExp(z, x, y *big.Float) {
	prec := z.Prec()
	if prec == 0 {
		prec = x.Prec()
	}
	t := new(big.Float).SetPrec(prec + 64)
	ln(t, x)
	t.Mul(t, y)
	exp(z.SetPrec(prec), t)
}

// mod sets z to x modulo y, floored so that the result has the sign of y.
// x and y must be finite with y nonzero. The remainder is computed exactly and
// rounded once into z, which may alias x or y.
func mod(z, x, y *big.Float) {
	xneg, yneg := x.Signbit(), y.Signbit()
	if x.Sign() == 0 {
		z.SetInt64(0)
		return
	}
	if new(big.Float).Abs(x).Cmp(new(big.Float).Abs(y)) < 0 {
		if xneg == yneg {
			z.Set(x)
		} else {
			z.Add(x, y)
		}
		return
	}
	// |x| = mx*2**ex and |y| = my*2**ey with integer mantissas. Since |x| >= |y|,
	// ey-ex is at most the precision of x.
	mx, ex := intMantExp(x)
	my, ey := intMantExp(y)
	e := ex
	if ey < e {
		e = ey
	}
	my.Lsh(my, uint(ey-e))
	rem := new(big.Int).Mod(mx, my)
	if ex > e {
		s := new(big.Int).Exp(big.NewInt(2), big.NewInt(ex-e), my)
		rem.Mul(rem, s).Mod(rem, my)
	}
	if rem.Sign() != 0 && xneg != yneg {
		rem.Sub(my, rem)
	}
	if z.Prec() == 0 {
		z.SetPrec(x.Prec())
	}
	z.SetInt(rem)
	z.SetMantExp(z, int(e))
	if yneg && rem.Sign() != 0 {
		z.Neg(z)
	}
}

// intMantExp returns m and e such that |x| = m*2**e with m an integer. x must
// be finite and nonzero.
func intMantExp(x *big.Float) (*big.Int, int64) {
	mant := new(big.Float)
	e := int64(x.MantExp(mant))
	p := int(x.MinPrec())
	mant.SetMantExp(mant, p).Abs(mant)
	m, _ := mant.Int(nil)
	return m, e - int64(p)
}

// DomainError is an error returned when a function or operator is applied to
// arguments outside its domain.
type DomainError struct {
	// X is the out-of-domain argument. It may be nil if the evaluator
	// recovered from an undefined operation without a single culprit.
	X *big.Float
	// Arg is the 1-based index of the argument, or 0 for operators.
	Arg int
	// Func is a name identifying the function or operator.
	Func string
	// Reason optionally explains the domain.
	Reason string
}

func (err *DomainError) Error() string {
	r := "outside domain"
	if err.X != nil {
		r = err.X.String() + " " + r
	}
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	if err.Reason != "" {
		r += ": " + err.Reason
	}
	return r
}

// asDomainError fills in the function name of a domain error returned from a
// call to name.
func asDomainError(err error, name string) error {
	var d *DomainError
	if errors.As(err, &d) && d.Func == "" {
		d.Func = name
	}
	return err
}
