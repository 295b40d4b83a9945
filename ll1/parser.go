package ll1

import (
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/twiki"
)

// NodeHandle identifies a parse node within a Tree.
type NodeHandle int

// NoNode is the parent handle of the root node.
const NoNode NodeHandle = -1

// Node is an instance of a rule within a parse tree. Its child slots are allocated
// when the node is expanded, one per symbol of the predicted alternative.
type Node struct {
	Rule     RuleType
	Alt      int        // index of the predicted alternative, -1 before expansion
	Parent   NodeHandle // NoNode for the root
	Index    int        // slot index within the parent's children
	Children []Slot
}

// Slot is a child position of a node. Rule slots reference a child node, terminal
// slots receive the matched input token.
type Slot struct {
	Symbol Symbol
	Node   NodeHandle  // for rule symbols
	Token  twiki.Token // for terminal symbols, nil until matched
}

// Item is an entry of the analysis sequence: either a node or a matched terminal.
type Item struct {
	Node  NodeHandle  // valid if Token is nil
	Token twiki.Token // matched terminal, or nil
}

// IsTerminal is true for matched terminals.
func (it Item) IsTerminal() bool {
	return it.Token != nil
}

// Tree is the result of a parse: an arena of nodes and the analysis sequence.
type Tree struct {
	nodes    []Node
	sequence []Item
	g        *Grammar
}

// Root returns the handle of the start rule's node.
func (t *Tree) Root() NodeHandle {
	return 0
}

// Node returns the node for handle h. The pointer is valid for the lifetime of the tree.
func (t *Tree) Node(h NodeHandle) *Node {
	return &t.nodes[h]
}

// NodeCount returns the number of nodes in the tree.
func (t *Tree) NodeCount() int {
	return len(t.nodes)
}

// Sequence returns the analysis sequence in preorder: every node precedes its descendants.
func (t *Tree) Sequence() []Item {
	return t.sequence
}

// BottomUp calls f for every item of the analysis sequence in reverse order, i.e.
// every node is visited after all of its descendants. Iteration stops at the
// first error, which is returned.
func (t *Tree) BottomUp(f func(Item) error) error {
	for i := len(t.sequence) - 1; i >= 0; i-- {
		if err := f(t.sequence[i]); err != nil {
			return err
		}
	}
	return nil
}

// Span returns the input span covered by node h, computed from its terminals.
// Nodes deriving ε have a null span.
func (t *Tree) Span(h NodeHandle) twiki.Span {
	var span twiki.Span
	for _, slot := range t.nodes[h].Children {
		if slot.Symbol.IsTerminal() {
			if slot.Token != nil {
				span = span.Extend(slot.Token.Span())
			}
		} else {
			span = span.Extend(t.Span(slot.Node))
		}
	}
	return span
}

// Grammar returns the grammar the tree has been parsed with.
func (t *Tree) Grammar() *Grammar {
	return t.g
}

func (t *Tree) newNode(r RuleType, parent NodeHandle, index int) NodeHandle {
	t.nodes = append(t.nodes, Node{Rule: r, Alt: -1, Parent: parent, Index: index})
	return NodeHandle(len(t.nodes) - 1)
}

// --- Parser ----------------------------------------------------------------

// Parser is a table-driven LL(1) parser for a compiled grammar.
type Parser struct {
	c *Compiled
}

// NewParser creates a parser for a compiled grammar.
func NewParser(c *Compiled) *Parser {
	return &Parser{c: c}
}

// prediction is an entry of the prediction stack.
type prediction struct {
	sym    Symbol
	node   NodeHandle // node of a rule symbol
	parent NodeHandle // node owning the slot
	index  int        // slot index within parent
}

// Parse parses a stream of terminals. Every terminal type has to be declared by the
// grammar, otherwise Parse fails with UnknownTerminal before parsing starts. The
// end-of-input marker is appended by Parse; the input slice is not modified.
//
// On success the returned tree holds the analysis sequence. Parse errors are
// reported as *Error with code UnexpectedTerminal; there is no error recovery.
func (p *Parser) Parse(input []twiki.Token) (*Tree, error) {
	g := p.c.g
	for i, tok := range input {
		if !p.c.IsTerminal(tok.TokType()) {
			return nil, &Error{
				Code: UnknownTerminal,
				Message: fmt.Sprintf("the type %s of terminal %q %s is not defined in grammar %s",
					g.TerminalName(tok.TokType()), tok.Lexeme(), positionOf(tok, i), g.Name),
				Terminal: tok.TokType(),
				Token:    tok,
				Position: i,
			}
		}
	}
	terminals := make([]twiki.Token, len(input), len(input)+1)
	copy(terminals, input)
	terminals = append(terminals, eofToken{span: endOfInput(input)})
	//
	tree := &Tree{g: g}
	stack := arraystack.New()
	stack.Push(prediction{sym: TermSymbol(EOF), parent: NoNode})
	root := tree.newNode(g.Start().Type, NoNode, 0)
	stack.Push(prediction{sym: RuleSymbol(g.Start().Type), node: root, parent: NoNode})
	pos := 0
	for {
		top, ok := stack.Pop()
		if !ok {
			panic("ll1: prediction stack exhausted without reaching end of input")
		}
		item := top.(prediction)
		tok := terminals[pos]
		if item.sym.IsTerminal() { // match a terminal
			if item.sym.Terminal() != tok.TokType() {
				return nil, p.unexpected(tok, pos, []twiki.TokType{item.sym.Terminal()})
			}
			if tok.TokType() == EOF {
				if !stack.Empty() || pos != len(terminals)-1 {
					panic("ll1: end of input matched with predictions left")
				}
				tracer().Debugf("parse accepted %d terminals, %d nodes", len(input), len(tree.nodes))
				return tree, nil
			}
			tree.nodes[item.parent].Children[item.index].Token = tok
			tree.sequence = append(tree.sequence, Item{Token: tok})
			pos++
			continue
		}
		row := g.index[item.sym.Rule()] // expand a rule
		k := p.c.table.lookup(row, tok.TokType())
		if k < 0 {
			return nil, p.unexpected(tok, pos, p.c.table.expected(row))
		}
		alt := g.rules[row].Alternatives[k]
		children := make([]Slot, len(alt))
		for i, sym := range alt {
			children[i] = Slot{Symbol: sym, Node: NoNode}
			if !sym.IsTerminal() {
				children[i].Node = tree.newNode(sym.Rule(), item.node, i)
			}
		}
		node := &tree.nodes[item.node]
		node.Alt = k
		node.Children = children
		tree.sequence = append(tree.sequence, Item{Node: item.node})
		for i := len(alt) - 1; i >= 0; i-- {
			stack.Push(prediction{
				sym:    alt[i],
				node:   children[i].Node,
				parent: item.node,
				index:  i,
			})
		}
	}
}

// Parse is a shortcut for NewParser(c).Parse(input).
func (c *Compiled) Parse(input []twiki.Token) (*Tree, error) {
	return NewParser(c).Parse(input)
}

func (p *Parser) unexpected(tok twiki.Token, pos int, expected []twiki.TokType) *Error {
	g := p.c.g
	names := make([]string, len(expected))
	for i, t := range expected {
		names[i] = g.TerminalName(t)
	}
	var msg string
	if tok.TokType() == EOF {
		msg = fmt.Sprintf("unexpected end of input, expecting one of %v", names)
	} else {
		msg = fmt.Sprintf("unexpected terminal %s %q %s, expecting one of %v",
			g.TerminalName(tok.TokType()), tok.Lexeme(), positionOf(tok, pos), names)
	}
	tracer().Debugf(msg)
	return &Error{
		Code:     UnexpectedTerminal,
		Message:  msg,
		Terminal: tok.TokType(),
		Token:    tok,
		Position: pos,
		Expected: expected,
	}
}

// --- End of input ----------------------------------------------------------

type eofToken struct {
	span twiki.Span
}

func (t eofToken) TokType() twiki.TokType { return EOF }
func (t eofToken) Lexeme() string         { return "" }
func (t eofToken) Value() interface{}     { return nil }
func (t eofToken) Span() twiki.Span       { return t.span }

func endOfInput(input []twiki.Token) twiki.Span {
	if len(input) == 0 {
		return twiki.Span{}
	}
	end := input[len(input)-1].Span().To()
	return twiki.Span{end, end}
}
