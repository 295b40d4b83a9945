/*
Command twiki translates twiki markup to HTML.

    twiki translate page.twiki --output page.html
    twiki tokens page.twiki
    twiki grammar --html --output table.html
    twiki repl

Input is read from standard input if no file is given. Settings may be
loaded from a TOML file with --config (see package config); --tracelevel
overrides the root trace level of the configuration.

The grammar subcommand prints the rules of the twiki grammar as a tree,
together with FIRST and FOLLOW sets and the fingerprint of the compiled
grammar. With --html, the LL(1) parse table is written as an HTML document.

The repl subcommand starts an interactive loop, translating one line at a
time. Enter ":tokens" to switch to printing tokens instead of HTML, and
":html" to switch back. Quit with <ctrl>D.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'twiki.cli'
func tracer() tracing.Trace {
	return tracing.Select("twiki.cli")
}
