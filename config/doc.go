/*
Package config loads twiki settings from TOML files and installs them as the
global configuration.

A configuration file looks like this:

    [tracelevel]
    root = "Error"
    "twiki.ll1" = "Debug"

    [wiki]
    link-prefix = "/pwdoc/ViewPage/"
    anchor-base = 0

    [parser]
    dump-tables = false

Settings are addressed by dotted keys, made of the table name and the key
within the table, e.g. "wiki.link-prefix" or "tracelevel.twiki.ll1".
Installing settings makes them available through package gconf and sets the
trace levels of the tracers of this module.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package config

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'twiki.config'.
func tracer() tracing.Trace {
	return tracing.Select("twiki.config")
}
