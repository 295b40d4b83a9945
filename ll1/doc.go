/*
Package ll1 implements an LL(1) grammar compiler and a table-driven predictive parser.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of rule tags and terminal types. Both are small integer
enumerations defined by the client; the first rule introduced with LHS is
the start rule. Grammars may contain epsilon-alternatives.

Example:

    const ( S ll1.RuleType = iota; A )
    const a twiki.TokType = 1

    b := ll1.NewGrammarBuilder("G")
    b.LHS(S).T(a).N(A).End()    // S  ->  a A
    b.LHS(A).T(a).N(A).End()    // A  ->  a A
    b.LHS(A).Epsilon()          // A  ->
    g, err := b.Grammar()

Compiling a Grammar

A grammar is compiled once. Compilation validates the grammar, computes
FIRST and FOLLOW sets by fixpoint iteration and builds the predictive parse
table. Compilation fails with an *Error of code MalformedGrammar for empty
grammars, undefined rules and immediate left recursion, and with code
GrammarNotLL1 for genuine prediction conflicts.

    c, err := ll1.Compile(g)
    c.First(A)     // => [#ε a]
    c.Follow(A)    // => [#eof]

Table construction is greedy: if a cell may either be predicted by an empty
alternative or by a non-empty one, the non-empty alternative wins. This
admits the one-or-more idiom

    A        ->  a A-follow
    A-follow ->  a A-follow  |  ε

without reporting a conflict. Only immediate left recursion (a rule starting
one of its alternatives with itself) is detected; indirect left recursion is not.

Parsing

A compiled grammar is immutable and may be shared by any number of
concurrent parsers. Each call to Parse works on its own stack and arena.

    tree, err := ll1.NewParser(c).Parse(tokens)

The result holds an analysis sequence of rule nodes and matched terminals in
preorder. Scanning it backwards visits every node after all of its children,
which is all a caller needs to synthesize attributes:

    tree.BottomUp(func(item ll1.Item) error {
        if !item.IsTerminal() {
            node := tree.Node(item.Node)
            … combine the attributes of node.Children …
        }
        return nil
    })

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ll1

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'twiki.ll1'.
func tracer() tracing.Trace {
	return tracing.Select("twiki.ll1")
}
