package wiki

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/twiki"
	"github.com/npillmayer/twiki/ll1"
	"github.com/npillmayer/twiki/lexer"
)

// renderer synthesizes HTML for a parse tree. It visits the analysis sequence
// backwards, i.e. every node after its children.
type renderer struct {
	tree   *ll1.Tree
	html   []string        // per node
	anchor int             // anchor id for the next title visited
	titles *arraylist.List // of tocEntry, in document order
}

// tocEntry is a title to be listed in a table of contents.
type tocEntry struct {
	level  int
	text   string // HTML
	anchor int
}

// render returns the HTML for a parse tree of a twiki document, together with
// the document's titles. Titles are numbered in document order, starting at
// anchorBase.
func render(tree *ll1.Tree, anchorBase int) (string, *arraylist.List, error) {
	r := &renderer{
		tree:   tree,
		html:   make([]string, tree.NodeCount()),
		titles: arraylist.New(),
	}
	// the scan is backwards, so anchors are counted down
	r.anchor = anchorBase + countTitles(tree) - 1
	err := tree.BottomUp(func(item ll1.Item) error {
		if item.IsTerminal() {
			return nil
		}
		html, err := r.synthesize(item.Node)
		r.html[item.Node] = html
		return err
	})
	if err != nil {
		return "", nil, err
	}
	return r.html[tree.Root()], r.titles, nil
}

func countTitles(tree *ll1.Tree) int {
	n := 0
	for h := 0; h < tree.NodeCount(); h++ {
		if start, _ := family(tree.Node(ll1.NodeHandle(h)).Rule); start == titleRules {
			n++
		}
	}
	return n
}

func (r *renderer) synthesize(h ll1.NodeHandle) (string, error) {
	node := r.tree.Node(h)
	children := make([]string, len(node.Children))
	for i, slot := range node.Children {
		if slot.Symbol.IsTerminal() {
			children[i] = terminalHTML(slot.Token)
			continue
		}
		children[i] = r.html[slot.Node]
		r.html[slot.Node] = "" // not needed any more
	}
	switch start, level := family(node.Rule); start {
	case titleRules:
		return r.title(level, children), nil
	case listRules:
		return r.list(node, children)
	case unorderedItemRules, orderedItemRules:
		return "<li>" + strings.Join(children, "") + "</li>\n", nil
	case itemFollowRules:
		if len(children) == 0 {
			return "", nil
		}
		if first := node.Children[0].Symbol; first.IsTerminal() && first.Terminal() == lexer.NEW_LINE {
			return "<p/>" + children[1], nil
		}
	}
	switch node.Rule {
	case PlainWordList, FormattedWordList, BoldWord, ItalicsWord, FixedWidthWord, LongLink:
		return strings.Join(children, " "), nil
	case Line:
		// an empty line separates paragraphs
		if len(children) == 2 && strings.TrimSpace(children[0]) == "" ||
			len(children) == 3 && strings.TrimSpace(children[1]) == "" {
			return "\n</p>\n<p>\n", nil
		}
		return strings.Join(children, " "), nil
	case Paragraph:
		return fmt.Sprintf("<p>\n%s\n%s</p>\n", children[0], children[1]), nil
	}
	return strings.Join(children, ""), nil
}

func (r *renderer) title(level int, children []string) string {
	anchor := r.anchor
	r.anchor--
	text := children[1] // children[0] is the title lead
	r.titles.Insert(0, tocEntry{level: level, text: text, anchor: anchor})
	return fmt.Sprintf("<h%d><a name=%d>%s</a></h%d>\n", level, anchor, text, level)
}

func (r *renderer) list(node *ll1.Node, children []string) (string, error) {
	if len(node.Children) != 1 || node.Children[0].Symbol.IsTerminal() {
		return "", fmt.Errorf("malformed list node %s", RuleName(node.Rule))
	}
	child := r.tree.Node(node.Children[0].Node)
	for _, kind := range listKinds {
		if start, _ := family(child.Rule); start == kind.lists {
			return fmt.Sprintf("\n<%s>\n%s\n</%s>\n", kind.tag, children[0], kind.tag), nil
		}
	}
	return "", fmt.Errorf("unknown list type: %s", RuleName(child.Rule))
}

func terminalHTML(tok twiki.Token) string {
	if tok == nil {
		return ""
	}
	if html, ok := tok.Value().(string); ok {
		return html
	}
	return ""
}
