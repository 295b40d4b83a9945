/*
Package twiki is a translator from twiki markup to HTML, built on a small
LL(1) parsing toolkit.

Package structure is as follows:

■ ll1: Package ll1 implements an LL(1) grammar compiler (FIRST/FOLLOW sets,
predictive parse tables) and a table-driven parser producing an analysis
sequence suitable for bottom-up attribute evaluation.

■ lexer: Package lexer splits twiki source text into typed terminals, each
carrying a pre-rendered HTML fragment.

■ wiki: Package wiki declares the twiki grammar, synthesizes HTML from parse
results and creates a table of contents.

■ config: Package config loads TOML configuration and wires it into the
application-wide configuration and tracing facilities.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package twiki
