package scicalc

import (
	"fmt"
	"strconv"
)

// The errors in this file describe text that is not an expression at all.
// Each records the column of the token that broke the expression, counted in
// runes from 1, and KindOf classifies each as KindSyntax.

// OperatorError reports an operator where it cannot apply, like the * in *2.
type OperatorError struct {
	Col int
	// Operator is the operator text.
	Operator string
	// Unary is set when the parser was expecting an operand, so the operator
	// could only have been a sign.
	Unary bool
}

func (err *OperatorError) Error() string {
	if err.Unary {
		return errpos(err.Col, fmt.Sprintf("%q cannot be used as a unary operator", err.Operator))
	}
	return errpos(err.Col, fmt.Sprintf("%q cannot be used as a binary operator", err.Operator))
}

func (err *OperatorError) Pos() int { return err.Col }

// BracketError reports a bracket without a partner or closed by the wrong
// kind of bracket.
type BracketError struct {
	Col int
	// Left is the opening bracket, empty if there was none.
	Left string
	// Right is the closing bracket, empty if input ended first.
	Right string
}

func (err *BracketError) Error() string {
	switch {
	case err.Left == "":
		return errpos(err.Col, fmt.Sprintf("closing bracket %q was never opened", err.Right))
	case err.Right == "":
		return errpos(err.Col, fmt.Sprintf("bracket %q is never closed", err.Left))
	default:
		return errpos(err.Col, fmt.Sprintf("bracket %q closed by %q", err.Left, err.Right))
	}
}

func (err *BracketError) Pos() int { return err.Col }

// SeparatorError reports a comma or semicolon outside an argument list, or
// one that leaves an argument empty.
type SeparatorError struct {
	Col int
	// Sep is the separator text.
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, fmt.Sprintf("misplaced separator %q", err.Sep))
}

func (err *SeparatorError) Pos() int { return err.Col }

// CallError reports a call with a number of arguments its function does not
// accept. Validation returns it, so KindOf classifies it as
// KindArgumentCount instead of KindSyntax.
type CallError struct {
	// Col is the position of the call.
	Col int
	// Func is the name of the function.
	Func string
	// Len is the number of arguments given.
	Len int
}

func (err *CallError) Error() string {
	return errpos(err.Col, "cannot call "+err.Func+" with "+strconv.Itoa(err.Len)+" arguments")
}

func (err *CallError) Pos() int { return err.Col }

// EmptyExpressionError reports a place that needs an operand but has none,
// such as the whole of an empty input or the space between ( and ).
type EmptyExpressionError struct {
	Col int
	// End is the token found instead of an operand, empty at end of input.
	End string
}

func (err *EmptyExpressionError) Error() string {
	switch {
	case err.End != "":
		return errpos(err.Col, fmt.Sprintf("empty expression before %q", err.End))
	case err.Col > 1:
		return errpos(err.Col, "empty expression at end of input")
	default:
		return errpos(err.Col, "empty expression")
	}
}

func (err *EmptyExpressionError) Pos() int { return err.Col }

// UnexpectedError reports a token that cannot continue the expression before
// it, like the second term of 2 3 or the os of import os.
type UnexpectedError struct {
	Col int
	// Text is the token.
	Text string
}

func (err *UnexpectedError) Error() string {
	return errpos(err.Col, fmt.Sprintf("unexpected %q", err.Text))
}

func (err *UnexpectedError) Pos() int { return err.Col }

// DepthError reports brackets or signs nested past the parser's limit.
type DepthError struct {
	Col int
	// Max is the limit.
	Max int
}

func (err *DepthError) Error() string {
	return errpos(err.Col, "expression nested more than "+strconv.Itoa(err.Max)+" levels deep")
}

func (err *DepthError) Pos() int { return err.Col }

func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error located in the input text. All errors from Parse
// and Validate implement it.
type InputError interface {
	error
	// Pos is the 1-based column, in runes, of the start of the token at
	// fault.
	Pos() int
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*UnexpectedError)(nil)
	_ InputError = (*DepthError)(nil)
	_ InputError = (*LexError)(nil)
	_ InputError = (*DisallowedError)(nil)
	_ InputError = (*FuncError)(nil)
	_ InputError = (*NameError)(nil)
)
