// Package errors implements the error kind catalog of §7 and the *Error
// type (a Kind, a message, and an optional source span, in the teacher's
// InterpreterError/NewXxxError(f) constructor-pair style). The parser
// returns its syntax failures as *Error; the evaluator raises failures as
// *evaluator.ThrownError values whose exception name is the Kind string;
// the lexer reports invalid input with its own *lexer.Error.
package errors

import (
	"fmt"

	"github.com/cwbudde/go-script/internal/lexer"
)

// Kind identifies one of §7's error categories.
type Kind string

const (
	InvalidToken           Kind = "invalid-token"
	SyntaxError            Kind = "syntax-error"
	UndefinedVariable      Kind = "undefined-variable"
	TypeError              Kind = "type-error"
	DivisionByZero         Kind = "division-by-zero"
	OutOfBounds            Kind = "out-of-bounds"
	NotAnLValue            Kind = "not-an-lvalue"
	NotCallable            Kind = "not-callable"
	AlreadyDefined         Kind = "already-defined"
	CannotRebindConst      Kind = "cannot-rebind-const-or-builtin"
	CannotChangeConst      Kind = "cannot-change-const"
	InvalidArgument        Kind = "invalid-argument"
	ExpressionNotConst     Kind = "expression-is-not-const"
	AssertionFailure       Kind = "assertion-failure"
	CannotBindPureToConst  Kind = "cannot-bind-pure-function-to-const"
	UserException          Kind = "user-exception"
)

// Error is the structured language-level error the parser returns (see
// NewSyntaxError). The evaluator does not return *Error values.
type Error struct {
	Kind    Kind
	Message string
	Start   *lexer.Position
	End     *lexer.Position

	// ExpectedOp/ActualToken are populated for SyntaxError (§4.3's
	// `syntax-error(location, message, optional-token, optional-expected-op)`).
	ExpectedOp   string
	ActualToken  string
	// InPureFunction flags an UndefinedVariable built by
	// NewUndefinedVariable for a pure function body (§8 invariant 9). The
	// evaluator does not set it; it marks such errors by appending
	// " (in pure function)" to the thrown exception's payload.
	InPureFunction bool
}

func (e *Error) Error() string {
	if e.Start != nil {
		return fmt.Sprintf("%s at %s: %s", e.Kind, e.Start.String(), e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func New(kind Kind, message string, start, end *lexer.Position) *Error {
	return &Error{Kind: kind, Message: message, Start: start, End: end}
}

func Newf(kind Kind, start, end *lexer.Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Start: start, End: end}
}

func NewInvalidToken(start, end *lexer.Position, text string) *Error {
	return Newf(InvalidToken, start, end, "invalid token %q", text)
}

func NewSyntaxError(start, end *lexer.Position, message, expectedOp, actualToken string) *Error {
	return &Error{
		Kind: SyntaxError, Message: message, Start: start, End: end,
		ExpectedOp: expectedOp, ActualToken: actualToken,
	}
}

func NewUndefinedVariable(start, end *lexer.Position, name string, inPureFunction bool) *Error {
	return &Error{
		Kind:           UndefinedVariable,
		Message:        fmt.Sprintf("undefined variable %q", name),
		Start:          start,
		End:            end,
		InPureFunction: inPureFunction,
	}
}

func NewTypeError(start, end *lexer.Position, message string) *Error {
	return New(TypeError, message, start, end)
}

func NewTypeErrorf(start, end *lexer.Position, format string, args ...any) *Error {
	return Newf(TypeError, start, end, format, args...)
}

func NewDivisionByZero(start, end *lexer.Position) *Error {
	return New(DivisionByZero, "division by zero", start, end)
}

func NewOutOfBounds(start, end *lexer.Position, index, size int) *Error {
	return Newf(OutOfBounds, start, end, "index %d out of bounds (size %d)", index, size)
}

func NewNotAnLValue(start, end *lexer.Position, message string) *Error {
	return New(NotAnLValue, message, start, end)
}

func NewNotCallable(start, end *lexer.Position, typeName string) *Error {
	return Newf(NotCallable, start, end, "value of type %s is not callable", typeName)
}

func NewAlreadyDefined(start, end *lexer.Position, name string) *Error {
	return Newf(AlreadyDefined, start, end, "%q is already defined in this scope", name)
}

func NewCannotRebindConst(start, end *lexer.Position, name string) *Error {
	return Newf(CannotRebindConst, start, end, "cannot rebind const or built-in %q", name)
}

func NewCannotChangeConst(start, end *lexer.Position, message string) *Error {
	return New(CannotChangeConst, message, start, end)
}

func NewInvalidArgument(start, end *lexer.Position, message string) *Error {
	return New(InvalidArgument, message, start, end)
}

func NewInvalidArgumentf(start, end *lexer.Position, format string, args ...any) *Error {
	return Newf(InvalidArgument, start, end, format, args...)
}

func NewExpressionNotConst(start, end *lexer.Position, message string) *Error {
	return New(ExpressionNotConst, message, start, end)
}

func NewAssertionFailure(start, end *lexer.Position, message string) *Error {
	return New(AssertionFailure, message, start, end)
}

func NewCannotBindPureToConst(start, end *lexer.Position, name string) *Error {
	return Newf(CannotBindPureToConst, start, end, "cannot bind pure function %q to a const", name)
}

// NewUserException formats an exception's name and rendered payload as a
// UserException *Error (§7 "carries a name and payload"). The evaluator
// does not call it: an uncaught throw leaves Evaluator.Run as an
// *evaluator.ThrownError.
func NewUserException(start, end *lexer.Position, name, renderedPayload string) *Error {
	return Newf(UserException, start, end, "unhandled exception %s: %s", name, renderedPayload)
}
