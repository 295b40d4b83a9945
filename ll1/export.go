package ll1

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/npillmayer/twiki"
)

// Dump is a debugging helper, writing FIRST and FOLLOW sets and the parse
// table to the tracer.
func (c *Compiled) Dump() {
	g := c.g
	tracer().Debugf("==================== FIRST sets ====================")
	for _, rule := range g.rules {
		tracer().Debugf("%-30s %s", g.RuleName(rule.Type), c.SetString(c.First(rule.Type)))
	}
	tracer().Debugf("==================== FOLLOW sets ===================")
	for _, rule := range g.rules {
		tracer().Debugf("%-30s %s", g.RuleName(rule.Type), c.SetString(c.Follow(rule.Type)))
	}
	tracer().Debugf("==================== Parse table ===================")
	c.table.Each(func(row int, t twiki.TokType, alt int) {
		rule := g.rules[row]
		tracer().Debugf("%s, %s ==> %s", g.RuleName(rule.Type), g.TerminalName(t),
			g.AlternativeString(rule.Alternatives[alt]))
	})
}

// SetString formats a set of terminal types, as returned by First or Follow.
func (c *Compiled) SetString(S []twiki.TokType) string {
	names := make([]string, len(S))
	for i, t := range S {
		names[i] = c.g.TerminalName(t)
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// TableAsHTML exports the parse table in HTML-format. Rows are rules, columns are
// terminals (including the end-of-input marker), cells show the predicted alternative.
func TableAsHTML(c *Compiled, w io.Writer) {
	if c == nil || c.table == nil {
		tracer().Errorf("parse table not yet created, cannot export to HTML")
		return
	}
	g := c.g
	columns := append([]twiki.TokType{EOF}, c.Terminals()...)
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, fmt.Sprintf("<p>%s: parse table of size = %d</p>\n",
		html.EscapeString(g.Name), c.table.Size()))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td>\n")
	for _, t := range columns {
		io.WriteString(w, fmt.Sprintf("<td>%s</td>", html.EscapeString(g.TerminalName(t))))
	}
	io.WriteString(w, "</tr>\n")
	var td string // table cell
	for row, rule := range g.rules {
		io.WriteString(w, fmt.Sprintf("<tr><td>%s</td>\n", html.EscapeString(g.RuleName(rule.Type))))
		for _, t := range columns {
			if k := c.table.lookup(row, t); k < 0 {
				td = "&nbsp;"
			} else {
				td = html.EscapeString(g.AlternativeString(rule.Alternatives[k]))
			}
			io.WriteString(w, "<td>")
			io.WriteString(w, td)
			io.WriteString(w, "</td>\n")
		}
		io.WriteString(w, "</tr>\n")
	}
	io.WriteString(w, "</table></body></html>\n")
}
