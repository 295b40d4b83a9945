package twiki

import "fmt"

// --- A general purpose interface for terminals -----------------------------

// TokType is a category type for a Token. We do not define any constants here, as
// it is up to grammars and tokenizers to define them.
type TokType int

// TokTypeStringer is a type to be provided by a tokenizer/grammar combination to be able
// to print out token categories.
type TokTypeStringer func(TokType) string

// Tokens represent input terminals. They are usually produced by a tokenizer and
// reflect terminals of a grammar.
//
// An example would be a token for a bold word:
//
//    TokType = BOLD_WORD           // identifier for this kind of token (application specific)
//    Lexeme  = "*important*"       // lexeme how it appeared in the input
//    Value   = "<b>important</b>"  // HTML fragment rendered by the tokenizer
//    Span    = 12…13               // occurred on line 12 of the input
//
// Parsers match tokens by TokType only; everything else is payload for
// the caller's attribute evaluation.
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a run of input lines. A span denotes a start
// line and the line just behind the end. Tokenizers working on lines will produce
// spans of length 1; parse tree nodes cover the union of their terminals' spans.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

// IsNull is true for the zero span, which is used for symbols not covering
// any input, e.g. epsilon derivations.
func (s Span) IsNull() bool {
	return s == Span{}
}

// Extend returns the smallest span covering s and other. Null spans are neutral.
func (s Span) Extend(other Span) Span {
	if s.IsNull() {
		return other
	}
	if other.IsNull() {
		return s
	}
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
