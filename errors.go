package scicalc

import (
	"errors"
	"strconv"
)

// ErrorKind classifies the errors returned by this package.
type ErrorKind int8

const (
	// KindNone is the kind of a nil error.
	KindNone ErrorKind = iota
	// KindSyntax is text that does not parse as a single expression.
	KindSyntax
	// KindDisallowed is a parsed construct outside the allow-list.
	KindDisallowed
	// KindUnknownFunction is a call to a name that is not a function.
	KindUnknownFunction
	// KindUnknownName is an identifier that is not a constant.
	KindUnknownName
	// KindUninitialized is a use of the last answer before there is one.
	KindUninitialized
	// KindDivisionByZero is division or modulo by zero.
	KindDivisionByZero
	// KindDomain is a function or operator applied outside its domain.
	KindDomain
	// KindUnsupportedLiteral is a literal that is not a decimal number.
	KindUnsupportedLiteral
	// KindArgumentCount is a call with the wrong number of arguments.
	KindArgumentCount
	// KindOther is any error not produced by this package.
	KindOther
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindSyntax:
		return "SyntaxError"
	case KindDisallowed:
		return "DisallowedConstructError"
	case KindUnknownFunction:
		return "UnknownFunctionError"
	case KindUnknownName:
		return "UnknownNameError"
	case KindUninitialized:
		return "UninitializedValueError"
	case KindDivisionByZero:
		return "DivisionByZeroError"
	case KindDomain:
		return "DomainError"
	case KindUnsupportedLiteral:
		return "UnsupportedLiteralError"
	case KindArgumentCount:
		return "ArgumentCountError"
	case KindOther:
		return "Error"
	default:
		return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// KindOf classifies an error returned from parsing, validation, or
// evaluation.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.As(err, new(*DisallowedError)):
		return KindDisallowed
	case errors.As(err, new(*FuncError)):
		return KindUnknownFunction
	case errors.As(err, new(*NameError)):
		return KindUnknownName
	case errors.As(err, new(*CallError)):
		return KindArgumentCount
	case errors.As(err, new(*UninitializedError)):
		return KindUninitialized
	case errors.As(err, new(*ZeroDivisionError)):
		return KindDivisionByZero
	case errors.As(err, new(*DomainError)):
		return KindDomain
	case errors.As(err, new(*LiteralError)):
		return KindUnsupportedLiteral
	case errors.As(err, new(InputError)):
		// Everything else with a position comes from the parser.
		return KindSyntax
	default:
		return KindOther
	}
}

// DisallowedError is an error indicating a parsed construct that is not on the
// allow-list, like attribute access or assignment. It implements InputError.
type DisallowedError struct {
	// Col is the position of the construct.
	Col int
	// Construct describes what was rejected.
	Construct string
}

func (err *DisallowedError) Error() string {
	return errpos(err.Col, err.Construct+" is not allowed")
}

func (err *DisallowedError) Pos() int {
	return err.Col
}

// FuncError is an error indicating a call to a name that is not in the
// function table. It implements InputError.
type FuncError struct {
	// Col is the position of the name.
	Col int
	// Name is the unknown function name.
	Name string
}

func (err *FuncError) Error() string {
	return errpos(err.Col, "unknown function: "+strconv.Quote(err.Name))
}

func (err *FuncError) Pos() int {
	return err.Col
}

// NameError is an error from a lookup for a constant that is missing from the
// environment. It implements InputError.
type NameError struct {
	// Col is the position of the name.
	Col int
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return errpos(err.Col, "undefined variable: "+strconv.Quote(err.Name))
}

func (err *NameError) Pos() int {
	return err.Col
}

// UninitializedError is an error indicating a use of the last answer before
// any evaluation has succeeded.
type UninitializedError struct {
	// Name is the identifier used.
	Name string
}

func (err *UninitializedError) Error() string {
	return err.Name + " has no value yet"
}

// ZeroDivisionError is an error indicating division or modulo by zero, or
// zero raised to a negative power.
type ZeroDivisionError struct {
	// Op is the operator, "/", "%", or "**".
	Op string
}

func (err *ZeroDivisionError) Error() string {
	switch err.Op {
	case "%":
		return "modulo by zero"
	case "**":
		return "zero raised to a negative power"
	default:
		return "division by zero"
	}
}

// LiteralError is an error indicating a literal that is not a decimal number,
// such as 0x1f or 2j.
type LiteralError struct {
	// Text is the literal.
	Text string
}

func (err *LiteralError) Error() string {
	return "unsupported literal: " + strconv.Quote(err.Text)
}
