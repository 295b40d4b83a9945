/*
Package wiki translates twiki markup to HTML.

The translation is driven by an LL(1) grammar for twiki documents (see
package ll1). Input is split into terminals by package lexer; every terminal
already carries the HTML fragment it renders to. After parsing, the analysis
sequence of the parse is scanned backwards, giving every rule node the chance
to synthesize its HTML from the HTML of its children.

    tr, err := wiki.NewTranslator()
    html, err := tr.Translate(source)

The grammar is compiled once per process and shared by all translators.

Titles receive anchors, numbered in document order. If a document contains
the %TOC% variable, a table of contents linking to these anchors replaces it.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package wiki

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'twiki.wiki'.
func tracer() tracing.Trace {
	return tracing.Select("twiki.wiki")
}
