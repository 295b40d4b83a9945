package lexer

import (
	"fmt"

	"github.com/npillmayer/twiki"
)

// Terminal types of the twiki grammar.
const (
	WORD twiki.TokType = iota + 1
	PUNCTURE

	BOLD_WORD
	BOLD_START_WORD
	BOLD_END_WORD
	ITALICS_WORD
	ITALICS_START_WORD
	ITALICS_END_WORD
	FIXED_WIDTH_WORD
	FIXED_WIDTH_START_WORD
	FIXED_WIDTH_END_WORD

	SHORT_LINK
	LONG_LINK
	LONG_LINK_START
	LONG_LINK_END
	URL
	IMAGE_LINK

	COLOR_START
	ENDCOLOR

	TITLE_LEAD1
	TITLE_LEAD2
	TITLE_LEAD3
	TITLE_LEAD4
	TITLE_LEAD5
	TITLE_LEAD6

	UNORDERED_LIST_LEAD1
	UNORDERED_LIST_LEAD2
	UNORDERED_LIST_LEAD3
	UNORDERED_LIST_LEAD4
	ORDERED_LIST_LEAD1
	ORDERED_LIST_LEAD2
	ORDERED_LIST_LEAD3
	ORDERED_LIST_LEAD4

	LINE_LEAD_WHITESPACE
	TOC
	VERBATIM
	NEW_LINE
)

// MaxLevel is the deepest nesting level for titles, MaxListLevel for lists.
const (
	MaxLevel     = 6
	MaxListLevel = 4
)

var tokTypeNames = [...]string{
	"<none>",
	"WORD", "PUNCTURE",
	"BOLD_WORD", "BOLD_START_WORD", "BOLD_END_WORD",
	"ITALICS_WORD", "ITALICS_START_WORD", "ITALICS_END_WORD",
	"FIXED_WIDTH_WORD", "FIXED_WIDTH_START_WORD", "FIXED_WIDTH_END_WORD",
	"SHORT_LINK", "LONG_LINK", "LONG_LINK_START", "LONG_LINK_END", "URL", "IMAGE_LINK",
	"COLOR_START", "ENDCOLOR",
	"TITLE_LEAD1", "TITLE_LEAD2", "TITLE_LEAD3", "TITLE_LEAD4", "TITLE_LEAD5", "TITLE_LEAD6",
	"UNORDERED_LIST_LEAD1", "UNORDERED_LIST_LEAD2", "UNORDERED_LIST_LEAD3", "UNORDERED_LIST_LEAD4",
	"ORDERED_LIST_LEAD1", "ORDERED_LIST_LEAD2", "ORDERED_LIST_LEAD3", "ORDERED_LIST_LEAD4",
	"LINE_LEAD_WHITESPACE", "TOC", "VERBATIM", "NEW_LINE",
}

// TokTypeString returns the name of a terminal type. It is a twiki.TokTypeStringer.
func TokTypeString(t twiki.TokType) string {
	if t > 0 && int(t) < len(tokTypeNames) {
		return tokTypeNames[t]
	}
	return fmt.Sprintf("TokType(%d)", int(t))
}

var _ twiki.TokTypeStringer = TokTypeString

// TitleLead returns the terminal type for a title of a given level (1…MaxLevel).
func TitleLead(level int) twiki.TokType {
	return TITLE_LEAD1 + twiki.TokType(level-1)
}

// UnorderedListLead returns the terminal type for an unordered list item of a given
// level (1…MaxListLevel).
func UnorderedListLead(level int) twiki.TokType {
	return UNORDERED_LIST_LEAD1 + twiki.TokType(level-1)
}

// OrderedListLead returns the terminal type for an ordered list item of a given
// level (1…MaxListLevel).
func OrderedListLead(level int) twiki.TokType {
	return ORDERED_LIST_LEAD1 + twiki.TokType(level-1)
}

// --- Tokens ----------------------------------------------------------------

// Token is a terminal of the twiki grammar. It implements twiki.Token.
type Token struct {
	Type   twiki.TokType
	Source string // twiki source of the token
	HTML   string // HTML fragment this token renders to
	LineNo int    // 1-based
	Link   string // link target, for links and URLs
}

var _ twiki.Token = (*Token)(nil)

// TokType is part of interface twiki.Token.
func (t *Token) TokType() twiki.TokType {
	return t.Type
}

// Lexeme is part of interface twiki.Token.
func (t *Token) Lexeme() string {
	return t.Source
}

// Value is part of interface twiki.Token. It returns the HTML fragment (a string).
func (t *Token) Value() interface{} {
	return t.HTML
}

// Span is part of interface twiki.Token. Tokens span the line they occur on.
func (t *Token) Span() twiki.Span {
	return twiki.Span{uint64(t.LineNo), uint64(t.LineNo + 1)}
}

// Line returns the line number of a token.
func (t *Token) Line() int {
	return t.LineNo
}

func (t *Token) String() string {
	if t.Source != "" {
		return fmt.Sprintf("%s at line %d with value %q: %q", TokTypeString(t.Type), t.LineNo,
			t.Source, t.HTML)
	}
	return fmt.Sprintf("%s at line %d: %q", TokTypeString(t.Type), t.LineNo, t.HTML)
}

func makeToken(tt twiki.TokType, line int, source, html string) *Token {
	return &Token{Type: tt, LineNo: line, Source: source, HTML: html}
}

// --- Errors ----------------------------------------------------------------

// Error is returned for input the lexer cannot tokenize.
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}
