package lexer

import (
	"fmt"
	"strings"
	"sync"

	"github.com/npillmayer/twiki"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Word patterns in order of priority. Every word is matched as a whole; if
// two patterns match a word, the one added first wins. Link patterns may be
// followed by arbitrary text.
var wordPatterns = []struct {
	regex string
	tt    twiki.TokType
}{
	{`\*(.*\*)?`, BOLD_WORD},
	{`\*.*`, BOLD_START_WORD},
	{`.*\*`, BOLD_END_WORD},
	{`_(.*_)?`, ITALICS_WORD},
	{`_.*`, ITALICS_START_WORD},
	{`.*_`, ITALICS_END_WORD},
	{`=(.*=)?`, FIXED_WIDTH_WORD},
	{`=.*`, FIXED_WIDTH_START_WORD},
	{`.*=`, FIXED_WIDTH_END_WORD},
	{`\[\[[^\]]+\]\].*`, SHORT_LINK},
	{`\[\[[^\]]+\]\[%IMAGE.*%\]\].*`, IMAGE_LINK},
	{`\[\[[^\]]+\]\[[^\]]+\]\].*`, LONG_LINK},
	{`\[\[[^\]]+\]\[[^\]]+.*`, LONG_LINK_START},
	{`[^\]]+\]\].*`, LONG_LINK_END},
	{`(http|https|mailto|ftp)://.+`, URL},
}

// wordDFA holds the word classifier, compiled once and shared by all lexers.
var wordDFA struct {
	once  sync.Once
	lexer *lexmachine.Lexer
	err   error
}

func compileWordDFA() (*lexmachine.Lexer, error) {
	wordDFA.once.Do(func() {
		lx := lexmachine.NewLexer()
		for _, p := range wordPatterns {
			lx.Add([]byte(p.regex), wordAction(p.tt))
		}
		if err := lx.Compile(); err != nil {
			tracer().Errorf("error compiling word DFA: %v", err)
			wordDFA.err = fmt.Errorf("cannot compile word classifier: %w", err)
			return
		}
		tracer().Debugf("word DFA compiled from %d patterns", len(wordPatterns))
		wordDFA.lexer = lx
	})
	return wordDFA.lexer, wordDFA.err
}

// wordAction is a lexmachine action which wraps a match into a lexmachine token
// of type tt.
func wordAction(tt twiki.TokType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(tt), string(m.Bytes), m), nil
	}
}

// classify returns the terminal type for a word. Words not matched in full by
// any of the word patterns are of type WORD.
func classify(dfa *lexmachine.Lexer, word string) twiki.TokType {
	if word == "" {
		return WORD
	}
	scanner, err := dfa.Scanner([]byte(word))
	if err != nil {
		return WORD
	}
	tok, err, eof := scanner.Next()
	if err != nil || eof { // no pattern matches a prefix of word
		return WORD
	}
	token := tok.(*lexmachine.Token)
	if len(token.Lexeme) != len(word) {
		return WORD
	}
	return twiki.TokType(token.Type)
}

// --- Rendering words -------------------------------------------------------

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// escape replaces the HTML special characters &, < and >. Quotes are left alone.
func escape(s string) string {
	return escaper.Replace(s)
}

var emphasisTags = map[twiki.TokType]string{
	BOLD_WORD: "b", BOLD_START_WORD: "b", BOLD_END_WORD: "b",
	ITALICS_WORD: "i", ITALICS_START_WORD: "i", ITALICS_END_WORD: "i",
	FIXED_WIDTH_WORD: "code", FIXED_WIDTH_START_WORD: "code", FIXED_WIDTH_END_WORD: "code",
}

// wordToken classifies a word and renders it to HTML.
func (lx *Lexer) wordToken(word string, line int) *Token {
	tt := classify(lx.dfa, word)
	tok := makeToken(tt, line, word, "")
	tag := emphasisTags[tt]
	switch tt {
	case BOLD_WORD, ITALICS_WORD, FIXED_WIDTH_WORD:
		inner := ""
		if len(word) > 1 {
			inner = word[1 : len(word)-1]
		}
		tok.HTML = fmt.Sprintf("<%s>%s</%s>", tag, escape(inner), tag)
	case BOLD_START_WORD, ITALICS_START_WORD, FIXED_WIDTH_START_WORD:
		tok.HTML = "<" + tag + ">" + escape(word[1:])
	case BOLD_END_WORD, ITALICS_END_WORD, FIXED_WIDTH_END_WORD:
		tok.HTML = escape(word[:len(word)-1]) + "</" + tag + ">"
	case SHORT_LINK:
		wikiWord := escape(strings.ReplaceAll(firstGroup(word), `"`, "_"))
		tok.Link = lx.linkPrefix + wikiWord
		tok.HTML = fmt.Sprintf("<a href='%s'>%s</a>", tok.Link, wikiWord)
	case IMAGE_LINK:
		tok.Link = firstGroup(word)
		tok.HTML = fmt.Sprintf("<img src='%s' %s/>", tok.Link, strings.Join(imageAttributes(word), " "))
	case LONG_LINK:
		tok.Link = firstGroup(word)
		tok.HTML = fmt.Sprintf("<a href='%s'>%s</a>", tok.Link, escape(secondGroup(word)))
	case LONG_LINK_START:
		tok.Link = firstGroup(word)
		tok.HTML = fmt.Sprintf("<a href='%s'>%s", tok.Link, escape(secondGroup(word)))
	case LONG_LINK_END:
		tok.HTML = escape(word[:strings.Index(word, "]")]) + "</a>"
	case URL:
		tok.Link = word
		tok.HTML = fmt.Sprintf("<a href='%s'>%s</a>", word, word)
	default:
		tok.HTML = escape(word)
	}
	return tok
}

// firstGroup extracts L from "[[L]…".
func firstGroup(word string) string {
	end := strings.Index(word, "]")
	return word[2:end]
}

// secondGroup extracts T from "[[L][T]…" or "[[L][T".
func secondGroup(word string) string {
	rest := word[strings.Index(word, "]")+2:]
	if end := strings.Index(rest, "]"); end >= 0 {
		return rest[:end]
	}
	return rest
}

// imageAttributes extracts the non-empty attributes a and b from "[[L][%IMAGE:a:b%]]".
func imageAttributes(word string) []string {
	const marker = "][%IMAGE"
	start := strings.Index(word, marker) + len(marker)
	end := strings.LastIndex(word, "%]]")
	if end < start {
		return nil
	}
	var attrs []string
	for _, attr := range strings.Split(word[start:end], ":") {
		if attr != "" {
			attrs = append(attrs, attr)
		}
	}
	return attrs
}
