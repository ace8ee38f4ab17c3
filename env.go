package scicalc

import (
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// Mode is the unit in which trigonometric functions take and return angles.
type Mode int8

const (
	// Radians is the default angle mode.
	Radians Mode = iota
	// Degrees makes sin, cos, and tan take degrees and asin, acos, and atan
	// return degrees.
	Degrees
)

func (m Mode) String() string {
	switch m {
	case Radians:
		return "radians"
	case Degrees:
		return "degrees"
	default:
		return "Mode(" + strconv.Itoa(int(m)) + ")"
	}
}

// ParseMode parses an angle mode name. It accepts "rad", "radian", "radians",
// "deg", "degree", and "degrees", ignoring case.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rad", "radian", "radians":
		return Radians, true
	case "deg", "degree", "degrees":
		return Degrees, true
	default:
		return Radians, false
	}
}

// AnsNames are the identifiers bound to the last answer.
var AnsNames = []string{"Ans", "ans"}

func isAns(name string) bool {
	return name == "Ans" || name == "ans"
}

// DefaultPrec is the precision in bits used when no Prec option is given.
const DefaultPrec = 64

// Env is an evaluation environment: the allow-listed constants and functions,
// the angle mode, and the last answer. An Env is not modified after creation,
// so it is safe to use concurrently.
type Env struct {
	consts map[string]*big.Float
	funcs  map[string]Func
	// ans is the last answer, or nil if there is none.
	ans  *big.Float
	mode Mode
	prec uint
	opts []EnvOption
}

// EnvOption is an option used when creating an Env.
type EnvOption interface {
	envOption()
}

type (
	angleopt Mode
	precopt  uint
	ansopt   struct{ val *big.Float }
	varopt   struct {
		name string
		val  *big.Float
	}
	funcopt struct {
		name string
		fn   Func
	}
)

func (angleopt) envOption() {}
func (precopt) envOption()  {}
func (ansopt) envOption()   {}
func (varopt) envOption()   {}
func (funcopt) envOption()  {}

// Angle sets the angle mode.
func Angle(m Mode) EnvOption {
	return angleopt(m)
}

// Prec sets the precision of calculations in bits.
func Prec(prec uint) EnvOption {
	return precopt(prec)
}

// Ans sets the last answer. A nil value leaves Ans uninitialized.
func Ans(val *big.Float) EnvOption {
	if val == nil {
		return ansopt{}
	}
	return ansopt{new(big.Float).Copy(val)}
}

// SetVar adds a constant to the environment. Ans and ans cannot be set this
// way.
func SetVar(name string, val *big.Float) EnvOption {
	return varopt{name, new(big.Float).Copy(val)}
}

// SetFunc adds a function to the environment, replacing any builtin of the
// same name. A nil fn removes the function.
func SetFunc(name string, fn Func) EnvOption {
	return funcopt{name, fn}
}

// NewEnv creates a new evaluation environment. By default, angles are radians,
// the precision is 64 bits, and there is no last answer.
func NewEnv(opts ...EnvOption) *Env {
	env := Env{prec: DefaultPrec}
	// First, check for precision and angle settings. Loop backward so we apply
	// the last of each.
	var sawPrec, sawMode bool
	for i := len(opts) - 1; i >= 0 && !(sawPrec && sawMode); i-- {
		switch opt := opts[i].(type) {
		case precopt:
			if !sawPrec && opt > 0 {
				env.prec, sawPrec = uint(opt), true
			}
		case angleopt:
			if !sawMode {
				env.mode, sawMode = Mode(opt), true
			}
		}
	}
	pi := bigfloat.Pi(new(big.Float).SetPrec(env.prec))
	e := bigfloat.Exp(new(big.Float).SetPrec(env.prec), big.NewFloat(1))
	env.consts = map[string]*big.Float{"pi": pi, "e": e}
	env.funcs = builtins(env.mode)
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case angleopt, precopt:
			// Already done. Do nothing.
		case ansopt:
			env.ans = nil
			if opt.val != nil {
				env.ans = new(big.Float).SetPrec(env.prec).Set(opt.val)
			}
		case varopt:
			if isAns(opt.name) {
				continue
			}
			env.consts[opt.name] = new(big.Float).SetPrec(env.prec).Set(opt.val)
		case funcopt:
			if opt.fn == nil {
				delete(env.funcs, opt.name)
				continue
			}
			env.funcs[opt.name] = opt.fn
		default:
			panic("scicalc: unknown option type")
		}
	}
	env.opts = append([]EnvOption(nil), opts...)
	return &env
}

// With creates a new environment with the options of env followed by opts.
func (env *Env) With(opts ...EnvOption) *Env {
	all := make([]EnvOption, 0, len(env.opts)+len(opts))
	all = append(all, env.opts...)
	all = append(all, opts...)
	return NewEnv(all...)
}

// Mode returns the angle mode.
func (env *Env) Mode() Mode {
	return env.mode
}

// Prec returns the precision to which values are computed in the environment.
func (env *Env) Prec() uint {
	return env.prec
}

// LastAns returns a copy of the last answer, or nil if there is none.
func (env *Env) LastAns() *big.Float {
	if env.ans == nil {
		return nil
	}
	return new(big.Float).Copy(env.ans)
}

// Lookup returns a copy of the value of a constant, including Ans. If there is
// no such constant, or it is Ans without a value, the result is nil.
func (env *Env) Lookup(name string) *big.Float {
	if isAns(name) {
		return env.LastAns()
	}
	v := env.consts[name]
	if v == nil {
		return nil
	}
	return new(big.Float).Copy(v)
}

// Func returns the function bound to name, or nil.
func (env *Env) Func(name string) Func {
	return env.funcs[name]
}

// Names returns the names of the constants and functions in the environment,
// each sorted.
func (env *Env) Names() (consts, funcs []string) {
	consts = append(consts, AnsNames...)
	for k := range env.consts {
		consts = append(consts, k)
	}
	for k := range env.funcs {
		funcs = append(funcs, k)
	}
	sort.Strings(consts)
	sort.Strings(funcs)
	return consts, funcs
}
