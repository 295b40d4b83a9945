package lexer

import (
	"strings"
	"sync"
	"unicode"

	"github.com/npillmayer/twiki"
	"github.com/timtadh/lexmachine"
)

// DefaultLinkPrefix is prepended to wiki words of short links.
const DefaultLinkPrefix = "/pwdoc/ViewPage/"

// Lexer tokenizes twiki source text. A Lexer holds no state between calls to
// Tokenize and may be used concurrently.
type Lexer struct {
	linkPrefix string
	dfa        *lexmachine.Lexer
}

// Option configures a Lexer.
type Option func(*Lexer)

// LinkPrefix sets the prefix for links created from wiki words, e.g.
// [[WikiWord]] → <a href='/pwdoc/ViewPage/WikiWord'>WikiWord</a>.
func LinkPrefix(prefix string) Option {
	return func(lx *Lexer) {
		lx.linkPrefix = prefix
	}
}

// New creates a lexer. It returns an error if the word classifier cannot be compiled.
func New(opts ...Option) (*Lexer, error) {
	dfa, err := compileWordDFA()
	if err != nil {
		return nil, err
	}
	lx := &Lexer{linkPrefix: DefaultLinkPrefix, dfa: dfa}
	for _, opt := range opts {
		opt(lx)
	}
	return lx, nil
}

var defaultLexer struct {
	once sync.Once
	lx   *Lexer
	err  error
}

// Tokenize splits source into tokens, using a lexer with default options.
func Tokenize(source string) ([]*Token, error) {
	defaultLexer.once.Do(func() {
		defaultLexer.lx, defaultLexer.err = New()
	})
	if defaultLexer.err != nil {
		return nil, defaultLexer.err
	}
	return defaultLexer.lx.Tokenize(source)
}

// Tokenize splits source into tokens. The only error condition is an unclosed
// <verbatim> block, reported as *Error.
func (lx *Lexer) Tokenize(source string) ([]*Token, error) {
	pieces := splitLines(source)
	v := &verbatim{}
	pieces = v.collect(pieces)
	if v.open {
		err := &Error{Line: v.line, Message: "unbalanced verbatim, start mark seen here"}
		tracer().Errorf(err.Error())
		return nil, err
	}
	pieces = eachText(pieces, lineLead)
	pieces = eachText(pieces, splitWords)
	pieces = eachText(pieces, puncture)
	pieces = eachText(pieces, variable)
	tokens := make([]*Token, len(pieces))
	for i, p := range pieces {
		if p.tok == nil {
			p.tok = lx.wordToken(p.text, p.line)
		}
		tokens[i] = p.tok
	}
	tracer().Debugf("tokenized %d lines into %d tokens", countLines(tokens), len(tokens))
	return tokens, nil
}

// TokenTypes is a helper returning the types of a list of tokens.
func TokenTypes(tokens []*Token) []twiki.TokType {
	tt := make([]twiki.TokType, len(tokens))
	for i, tok := range tokens {
		tt[i] = tok.Type
	}
	return tt
}

// Terminals converts tokens to the terminal stream interface of the parser.
func Terminals(tokens []*Token) []twiki.Token {
	terminals := make([]twiki.Token, len(tokens))
	for i, tok := range tokens {
		terminals[i] = tok
	}
	return terminals
}

func countLines(tokens []*Token) int {
	if len(tokens) == 0 {
		return 0
	}
	return tokens[len(tokens)-1].LineNo
}

// --- Passes ----------------------------------------------------------------

// piece is either a finished token or a fragment of text still to be tokenized.
type piece struct {
	tok  *Token
	text string
	line int
}

func text(s string, line int) piece {
	return piece{text: s, line: line}
}

func token(tok *Token) piece {
	return piece{tok: tok, line: tok.LineNo}
}

// eachText applies a pass to every text piece, leaving tokens untouched.
func eachText(pieces []piece, pass func(piece) []piece) []piece {
	out := make([]piece, 0, len(pieces))
	for _, p := range pieces {
		if p.tok != nil {
			out = append(out, p)
			continue
		}
		out = append(out, pass(p)...)
	}
	return out
}

// splitLines creates a text piece for every line, each followed by a NEW_LINE token.
// A final line terminator does not start a new line.
func splitLines(source string) []piece {
	if source == "" {
		return nil
	}
	source = strings.ReplaceAll(source, "\r\n", "\n")
	source = strings.ReplaceAll(source, "\r", "\n")
	source = strings.TrimSuffix(source, "\n")
	lines := strings.Split(source, "\n")
	pieces := make([]piece, 0, 2*len(lines))
	for i, line := range lines {
		pieces = append(pieces, text(line, i+1))
		pieces = append(pieces, token(makeToken(NEW_LINE, i+1, "\n", "\n")))
	}
	return pieces
}

// verbatim collects everything between a line <verbatim> and a line </verbatim>
// into a single token. The formatting of the lines in between is preserved.
type verbatim struct {
	open    bool
	line    int // line of the start mark
	content []string
}

func (v *verbatim) collect(pieces []piece) []piece {
	out := make([]piece, 0, len(pieces))
	for _, p := range pieces {
		switch {
		case !v.open && p.tok == nil && p.text == "<verbatim>":
			v.open, v.line = true, p.line
		case !v.open:
			out = append(out, p)
		case p.tok != nil: // NEW_LINE within verbatim block
		case p.text == "</verbatim>":
			source := strings.Join(v.content, "\n")
			html := "<pre>\n" + source + "\n</pre>\n"
			out = append(out, token(makeToken(VERBATIM, v.line, source, html)))
			v.open, v.content = false, nil
		default:
			v.content = append(v.content, p.text)
		}
	}
	return out
}

var titleLeads = []string{"---+", "---++", "---+++", "---++++", "---+++++", "---++++++"}

// lineLead recognizes titles, list items and leading whitespace. Blank lines
// are dropped.
func lineLead(p piece) []piece {
	if strings.TrimSpace(p.text) == "" {
		return nil
	}
	for level := MaxLevel; level >= 1; level-- {
		if lead := titleLeads[level-1]; strings.HasPrefix(p.text, lead) {
			return leadAndRest(TitleLead(level), lead, p)
		}
	}
	for level := 1; level <= MaxListLevel; level++ {
		indent := strings.Repeat(" ", 3*level)
		if lead := indent + "* "; strings.HasPrefix(p.text, lead) {
			return leadAndRest(UnorderedListLead(level), lead, p)
		}
	}
	for level := 1; level <= MaxListLevel; level++ {
		indent := strings.Repeat(" ", 3*level)
		for _, lead := range []string{indent + "1 ", indent + "# "} {
			if strings.HasPrefix(p.text, lead) {
				return leadAndRest(OrderedListLead(level), lead, p)
			}
		}
	}
	if strings.HasPrefix(p.text, " ") || strings.HasPrefix(p.text, "\t") {
		rest := strings.TrimLeftFunc(p.text, unicode.IsSpace)
		return []piece{
			token(makeToken(LINE_LEAD_WHITESPACE, p.line, "", "")),
			text(rest, p.line),
		}
	}
	return []piece{p}
}

func leadAndRest(tt twiki.TokType, lead string, p piece) []piece {
	return []piece{
		token(makeToken(tt, p.line, "", "")),
		text(p.text[len(lead):], p.line),
	}
}

func splitWords(p piece) []piece {
	words := strings.Fields(p.text)
	pieces := make([]piece, len(words))
	for i, w := range words {
		pieces[i] = text(w, p.line)
	}
	return pieces
}

// puncture splits a trailing punctuation character off a word. The remaining
// word may be empty.
func puncture(p piece) []piece {
	n := len(p.text)
	if n == 0 || !strings.ContainsRune(".,;:!?", rune(p.text[n-1])) {
		return []piece{p}
	}
	mark := p.text[n-1:]
	return []piece{
		text(p.text[:n-1], p.line),
		token(makeToken(PUNCTURE, p.line, mark, mark)),
	}
}

// variable recognizes twiki variables.
func variable(p piece) []piece {
	switch p.text {
	case "%RED%", "%BLUE%", "%GREEN%":
		color := p.text[1 : len(p.text)-1]
		return []piece{token(makeToken(COLOR_START, p.line, p.text, "<font color='"+color+"'>"))}
	case "%ENDCOLOR%":
		return []piece{token(makeToken(ENDCOLOR, p.line, p.text, "</font>"))}
	case "%TOC%":
		return []piece{token(makeToken(TOC, p.line, p.text, "<toc/>"))}
	}
	return []piece{p}
}
