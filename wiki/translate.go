package wiki

import (
	"fmt"

	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/twiki/ll1"
	"github.com/npillmayer/twiki/lexer"
)

// Translator translates twiki documents to HTML. A translator may be used
// concurrently; every call to Translate numbers its titles independently.
type Translator struct {
	lexer      *lexer.Lexer
	grammar    *ll1.Compiled
	anchorBase int
}

type options struct {
	linkPrefix string
	anchorBase int
}

// Option configures a Translator.
type Option func(*options)

// LinkPrefix sets the prefix for links created from wiki words.
// It overrides configuration key "wiki.link-prefix".
func LinkPrefix(prefix string) Option {
	return func(o *options) {
		o.linkPrefix = prefix
	}
}

// AnchorBase sets the anchor id of the first title of every document.
// It overrides configuration key "wiki.anchor-base".
func AnchorBase(base int) Option {
	return func(o *options) {
		o.anchorBase = base
	}
}

// NewTranslator creates a translator. Defaults are taken from the global
// configuration (see package gconf), if present.
//
// If configuration key "parser.dump-tables" is set, FIRST and FOLLOW sets and
// the parse table are written to the tracer (at Debug level).
func NewTranslator(opts ...Option) (*Translator, error) {
	o := options{
		linkPrefix: lexer.DefaultLinkPrefix,
		anchorBase: gconf.GetInt("wiki.anchor-base"),
	}
	if prefix := gconf.GetString("wiki.link-prefix"); prefix != "" {
		o.linkPrefix = prefix
	}
	for _, opt := range opts {
		opt(&o)
	}
	c, err := CompiledGrammar()
	if err != nil {
		return nil, fmt.Errorf("cannot compile twiki grammar: %w", err)
	}
	lx, err := lexer.New(lexer.LinkPrefix(o.linkPrefix))
	if err != nil {
		return nil, err
	}
	if gconf.GetBool("parser.dump-tables") {
		c.Grammar().Dump()
		c.Dump()
	}
	return &Translator{lexer: lx, grammar: c, anchorBase: o.anchorBase}, nil
}

// Grammar returns the compiled twiki grammar used by the translator.
func (t *Translator) Grammar() *ll1.Compiled {
	return t.grammar
}

// Tokenize splits source into terminals of the twiki grammar.
func (t *Translator) Tokenize(source string) ([]*lexer.Token, error) {
	return t.lexer.Tokenize(source)
}

// Parse tokenizes and parses a twiki document. Errors are of type *lexer.Error
// or *ll1.Error, wrapped with context.
func (t *Translator) Parse(source string) (*ll1.Tree, error) {
	tokens, err := t.lexer.Tokenize(source)
	if err != nil {
		return nil, fmt.Errorf("tokenizing twiki document: %w", err)
	}
	tree, err := t.grammar.Parse(lexer.Terminals(tokens))
	if err != nil {
		return nil, fmt.Errorf("parsing twiki document: %w", err)
	}
	return tree, nil
}

// Translate translates a twiki document to HTML.
func (t *Translator) Translate(source string) (string, error) {
	tree, err := t.Parse(source)
	if err != nil {
		tracer().Errorf(err.Error())
		return "", err
	}
	html, titles, err := render(tree, t.anchorBase)
	if err != nil {
		return "", fmt.Errorf("rendering twiki document: %w", err)
	}
	tracer().Debugf("rendered %d nodes, %d titles", tree.NodeCount(), titles.Size())
	return insertTOC(html, titles), nil
}
