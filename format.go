package scicalc

import "math/big"

// DefaultDigits is the number of significant digits Format uses when given a
// non-positive count.
const DefaultDigits = 12

// intTolerance is how close a value must be to an integer to display as one.
var intTolerance = big.NewFloat(1e-12)

// Format renders a result for display. A value within 1e-12 of an integer
// prints as that integer, so sin(pi)*0+3 prints as 3 and 0.1+0.2 prints as
// 0.3. Other values print with at most digits significant digits. Integers
// larger than the value's precision can represent exactly use exponent
// notation rather than printing digits that carry no information.
func Format(x *big.Float, digits int) string {
	if digits <= 0 {
		digits = DefaultDigits
	}
	switch {
	case x == nil:
		return ""
	case x.IsInf():
		if x.Signbit() {
			return "-inf"
		}
		return "inf"
	case x.Sign() == 0:
		return "0"
	}
	i := roundEven(new(big.Float).SetPrec(x.Prec()), x)
	d := new(big.Float).SetPrec(x.Prec()).Sub(x, i)
	if d.Abs(d).Cmp(intTolerance) <= 0 {
		if i.Sign() == 0 {
			return "0"
		}
		if i.MantExp(nil) <= int(x.Prec()) {
			return i.Text('f', 0)
		}
		return i.Text('g', digits)
	}
	return x.Text('g', digits)
}
