package ll1

import (
	"fmt"

	"github.com/npillmayer/twiki"
)

// ErrorCode classifies errors of the grammar compiler and the parser.
type ErrorCode int

// Error codes. Grammar-level codes are reported by Compile, parse-level
// codes by Parser.Parse.
const (
	NoError            ErrorCode = iota
	MalformedGrammar             // empty grammar, undefined symbol, immediate left recursion
	GrammarNotLL1                // two non-empty alternatives predicted by the same terminal
	UnknownTerminal              // input terminal type not declared by the grammar
	UnexpectedTerminal           // no match or no prediction for the current terminal
)

func (c ErrorCode) String() string {
	switch c {
	case NoError:
		return "NoError"
	case MalformedGrammar:
		return "MalformedGrammar"
	case GrammarNotLL1:
		return "GrammarNotLL1"
	case UnknownTerminal:
		return "UnknownTerminal"
	case UnexpectedTerminal:
		return "UnexpectedTerminal"
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// Error is the error type of package ll1.
type Error struct {
	// Code is non-zero.
	Code ErrorCode

	// Message is a human readable description, including names of rules and terminals.
	Message string

	// Rule is the rule the error refers to, if any.
	Rule RuleType

	// Terminal is the terminal type the error refers to, if any.
	Terminal twiki.TokType

	// Conflict holds both alternatives of a GrammarNotLL1 error, the existing one first.
	Conflict [2]Alternative

	// Token is the offending input terminal of parse errors.
	Token twiki.Token

	// Position is the index of Token within the input stream (including the
	// end-of-input marker), or -1.
	Position int

	// Expected lists the terminal types which would have been accepted at Position.
	Expected []twiki.TokType
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is an *Error with the same code. Targets carrying a
// message are only equal to themselves; use the pre-defined ErrXxx variables
// for matching with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Message != "" {
		return t == e
	}
	return t.Code == e.Code
}

// Pre-defined errors for use with errors.Is.
var (
	ErrMalformedGrammar   = &Error{Code: MalformedGrammar}
	ErrGrammarNotLL1      = &Error{Code: GrammarNotLL1}
	ErrUnknownTerminal    = &Error{Code: UnknownTerminal}
	ErrUnexpectedTerminal = &Error{Code: UnexpectedTerminal}
)

func grammarError(code ErrorCode, rule RuleType, format string, args ...interface{}) *Error {
	return &Error{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Rule:     rule,
		Terminal: Epsilon,
		Position: -1,
	}
}

// --- Token positions -------------------------------------------------------

// Lined is implemented by tokens which know their source line.
type Lined interface {
	Line() int
}

// positionOf describes where a token has been found, preferring source lines
// over stream positions.
func positionOf(tok twiki.Token, pos int) string {
	if tok.TokType() == EOF {
		return "at end of input"
	}
	if l, ok := tok.(Lined); ok && l.Line() > 0 {
		return fmt.Sprintf("at line %d", l.Line())
	}
	if span := tok.Span(); !span.IsNull() {
		return fmt.Sprintf("at %s", span)
	}
	return fmt.Sprintf("at input position %d", pos)
}
