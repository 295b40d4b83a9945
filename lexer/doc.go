/*
Package lexer splits twiki source text into typed terminals for the twiki grammar.

Tokenizing works in passes over a list of pieces, where each piece is either
a finished token or a fragment of text still waiting to be classified:

■ split the input into lines, each followed by a NEW_LINE token

■ collect <verbatim> blocks into single VERBATIM tokens

■ recognize line leads (titles, list items, leading whitespace), drop blank lines

■ split remaining text into words

■ split trailing punctuation off words

■ recognize variables such as %TOC% and %RED%

■ classify words (bold, italics, links, …) using a lexmachine DFA

Every token carries its twiki source, the HTML fragment it renders to and
the line it has been found on.

    tokens, err := lexer.Tokenize("---+ Title\nSome *bold* text.\n")

Clients needing a different link prefix for wiki words create their own lexer:

    lx, err := lexer.New(lexer.LinkPrefix("/wiki/"))
    tokens, err := lx.Tokenize(source)

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexer

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'twiki.lexer'.
func tracer() tracing.Trace {
	return tracing.Select("twiki.lexer")
}
