package main

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/npillmayer/twiki/ll1"
	"github.com/npillmayer/twiki/lexer"
	"github.com/npillmayer/twiki/wiki"
	"github.com/pterm/pterm"
)

// readSource reads a twiki document from a file or, for an empty path, from stdin.
func readSource(path string) (string, error) {
	var data []byte
	var err error
	if path == "" {
		tracer().Debugf("reading twiki document from stdin")
		data, err = ioutil.ReadAll(os.Stdin)
	} else {
		data, err = ioutil.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("cannot read twiki document: %w", err)
	}
	return string(data), nil
}

func translate(path string, w io.Writer) error {
	source, err := readSource(path)
	if err != nil {
		return err
	}
	tr, err := wiki.NewTranslator()
	if err != nil {
		return err
	}
	html, err := tr.Translate(source)
	if err != nil {
		return explain(path, err)
	}
	_, err = io.WriteString(w, html)
	return err
}

// explain prefixes errors with the location in the input document.
func explain(path string, err error) error {
	if path == "" {
		path = "<stdin>"
	}
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return fmt.Errorf("%s:%d: %s", path, lexErr.Line, lexErr.Message)
	}
	var parseErr *ll1.Error
	if errors.As(err, &parseErr) && parseErr.Token != nil {
		if tok, ok := parseErr.Token.(*lexer.Token); ok {
			return fmt.Errorf("%s:%d: %s", path, tok.LineNo, parseErr.Message)
		}
	}
	return fmt.Errorf("%s: %w", path, err)
}

func tokens(path string, w io.Writer) error {
	source, err := readSource(path)
	if err != nil {
		return err
	}
	tr, err := wiki.NewTranslator()
	if err != nil {
		return err
	}
	toks, err := tr.Tokenize(source)
	if err != nil {
		return explain(path, err)
	}
	for _, tok := range toks {
		fmt.Fprintf(w, "%4d  %-24s %-20q %q\n", tok.LineNo, lexer.TokTypeString(tok.Type),
			tok.Source, tok.HTML)
	}
	return nil
}

// grammar prints the rules of the twiki grammar as a tree, followed by
// FIRST and FOLLOW sets.
func grammar(w io.Writer) error {
	c, err := wiki.CompiledGrammar()
	if err != nil {
		return err
	}
	g := c.Grammar()
	pterm.Info.Println(fmt.Sprintf("Grammar %s: %d rules, %d terminals, %d table entries",
		g.Name, g.Size(), len(c.Terminals()), c.Table().Size()))
	pterm.Info.Println("Fingerprint " + c.Fingerprint())
	ll := pterm.LeveledList{}
	g.EachRule(func(rule *ll1.Rule) {
		ll = append(ll, pterm.LeveledListItem{Level: 0, Text: g.RuleName(rule.Type)})
		for _, alt := range rule.Alternatives {
			ll = append(ll, pterm.LeveledListItem{Level: 1, Text: "➞ " + g.AlternativeString(alt)})
		}
	})
	pterm.DefaultTree.WithRoot(pterm.NewTreeFromLeveledList(ll)).Render()
	g.EachRule(func(rule *ll1.Rule) {
		fmt.Fprintf(w, "%-28s FIRST  = %s\n", g.RuleName(rule.Type), c.SetString(c.First(rule.Type)))
		fmt.Fprintf(w, "%-28s FOLLOW = %s\n", "", c.SetString(c.Follow(rule.Type)))
	})
	return nil
}

// grammarTable writes the parse table of the twiki grammar as HTML.
func grammarTable(w io.Writer) error {
	c, err := wiki.CompiledGrammar()
	if err != nil {
		return err
	}
	ll1.TableAsHTML(c, w)
	return nil
}
