package wiki

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
)

// tocMarker is the HTML rendered for the %TOC% variable.
const tocMarker = "<toc/>"

// tableOfContents renders titles as nested lists, one level per title level.
func tableOfContents(titles *arraylist.List) string {
	var parts []string
	current := 0
	titles.Each(func(_ int, value interface{}) {
		entry := value.(tocEntry)
		for ; current < entry.level; current++ {
			parts = append(parts, "<ul>")
		}
		for ; current > entry.level; current-- {
			parts = append(parts, "</ul>")
		}
		parts = append(parts, fmt.Sprintf(`<li><a href="#%d">`, entry.anchor), entry.text, "</a></li>")
	})
	for ; current > 0; current-- {
		parts = append(parts, "</ul>")
	}
	return strings.Join(parts, "\n")
}

// insertTOC replaces every TOC marker in html by a table of contents.
func insertTOC(html string, titles *arraylist.List) string {
	if !strings.Contains(html, tocMarker) {
		return html
	}
	tracer().Debugf("inserting table of contents with %d entries", titles.Size())
	return strings.ReplaceAll(html, tocMarker, tableOfContents(titles))
}
