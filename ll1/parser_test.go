package ll1

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/twiki"
)

// S -> a S | ε
func repetitionGrammar(t *testing.T) *Compiled {
	bld := builder()
	bld.LHS(S).T(a).N(S).End()
	bld.LHS(S).Epsilon()
	return compile(t, bld)
}

// Expressions, with a = id, b = '+', c = '(', x = ')':
//
//    S -> B A
//    A -> b B A | ε
//    B -> a | c S x
//
func expressionGrammar(t *testing.T) *Compiled {
	bld := builder()
	bld.LHS(S).N(B).N(A).End()
	bld.LHS(A).T(b).N(B).N(A).End()
	bld.LHS(A).Epsilon()
	bld.LHS(B).T(a).End()
	bld.LHS(B).T(c).N(S).T(x).End()
	return compile(t, bld)
}

func TestParseRepetition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "twiki.ll1")
	defer teardown()
	//
	cg := repetitionGrammar(t)
	tree, err := cg.Parse(tokens(a, a, a))
	if err != nil {
		t.Fatal(err)
	}
	var terminals, expansions, empty int
	for _, item := range tree.Sequence() {
		if item.IsTerminal() {
			terminals++
			continue
		}
		if node := tree.Node(item.Node); len(node.Children) == 0 {
			empty++
		} else {
			expansions++
		}
	}
	if terminals != 3 || expansions != 3 || empty != 1 {
		t.Errorf("Expected 3 terminals, 3 expansions and 1 ε-expansion, have %d, %d, %d",
			terminals, expansions, empty)
	}
	seq := tree.Sequence()
	last := seq[len(seq)-1]
	if last.IsTerminal() || !cg.Grammar().Rule(S).Alternatives[tree.Node(last.Node).Alt].IsEmpty() {
		t.Errorf("Expected final item to be the expansion of the empty alternative")
	}
	if seq[0].IsTerminal() || seq[0].Node != tree.Root() || tree.Node(tree.Root()).Parent != NoNode {
		t.Errorf("Expected analysis sequence to start with the root node")
	}
	if span := tree.Span(tree.Root()); span != (twiki.Span{1, 4}) {
		t.Errorf("Expected root to span (1…4), is %s", span)
	}
}

func TestParseEmptyInputRejected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "twiki.ll1")
	defer teardown()
	//
	bld := builder()
	bld.LHS(S).T(a).N(A).End() // S -> a A
	bld.LHS(A).T(a).N(A).End() // A -> a A | ε
	bld.LHS(A).Epsilon()
	cg := compile(t, bld)
	_, err := cg.Parse(nil)
	if !errors.Is(err, ErrUnexpectedTerminal) {
		t.Fatalf("Expected UnexpectedTerminal, got %v", err)
	}
	e := err.(*Error)
	if e.Terminal != EOF || e.Position != 0 {
		t.Errorf("Expected error at #eof, position 0; is %s at %d", cg.Grammar().TerminalName(e.Terminal), e.Position)
	}
	if len(e.Expected) != 1 || e.Expected[0] != a {
		t.Errorf("Expected error to list 'a' as expected terminal, lists %v", e.Expected)
	}
	if !strings.Contains(e.Error(), "end of input") {
		t.Errorf("Expected message to mention end of input, is %q", e.Error())
	}
}

func TestParseBalanced(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "twiki.ll1")
	defer teardown()
	//
	bld := builder()
	bld.LHS(S).T(a).N(S).T(b).End() // S -> a S b | ε
	bld.LHS(S).Epsilon()
	cg := compile(t, bld)
	if _, err := cg.Parse(tokens(a, a, b, b)); err != nil {
		t.Errorf("Expected 'a a b b' to be accepted, got %v", err)
	}
	_, err := cg.Parse(tokens(a, a, b))
	if codeOf(err) != UnexpectedTerminal {
		t.Fatalf("Expected 'a a b' to be rejected with UnexpectedTerminal, got %v", err)
	}
	e := err.(*Error)
	if e.Terminal != EOF || e.Position != 3 {
		t.Errorf("Expected failure at end of input, position 3; is %s at %d",
			cg.Grammar().TerminalName(e.Terminal), e.Position)
	}
	if len(e.Expected) != 1 || e.Expected[0] != b {
		t.Errorf("Expected 'b' to be expected at end of input, is %v", e.Expected)
	}
}

func TestParseUnknownTerminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "twiki.ll1")
	defer teardown()
	//
	cg := repetitionGrammar(t)
	input := tokens(a, a)
	input = append(input, testToken{kind: 99, pos: 3})
	_, err := cg.Parse(input)
	if !errors.Is(err, ErrUnknownTerminal) {
		t.Fatalf("Expected UnknownTerminal, got %v", err)
	}
	if e := err.(*Error); e.Position != 2 || e.Terminal != 99 {
		t.Errorf("Expected unknown terminal t99 at position 2, is %d at %d", e.Terminal, e.Position)
	}
	if len(input) != 3 {
		t.Errorf("Expected input to be left untouched")
	}
}

func TestParseWrongTerminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "twiki.ll1")
	defer teardown()
	//
	cg := expressionGrammar(t)
	_, err := cg.Parse(tokens(a, b, x))
	if codeOf(err) != UnexpectedTerminal {
		t.Fatalf("Expected UnexpectedTerminal, got %v", err)
	}
	e := err.(*Error)
	if e.Position != 2 || e.Token.TokType() != x {
		t.Errorf("Expected ')' at position 2 to be rejected, is %v at %d", e.Token, e.Position)
	}
	if len(e.Expected) != 2 || !hasTerminal(e.Expected, a) || !hasTerminal(e.Expected, c) {
		t.Errorf("Expected 'a' or '(' to be expected, is %v", e.Expected)
	}
	t.Logf("error message: %s", e.Error())
}

func TestBottomUpVisitsChildrenFirst(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "twiki.ll1")
	defer teardown()
	//
	cg := expressionGrammar(t)
	input := tokens(a, b, c, a, b, a, x) // id + ( id + id )
	tree, err := cg.Parse(input)
	if err != nil {
		t.Fatal(err)
	}
	nodes := make(map[NodeHandle]bool)
	toks := make(map[twiki.Token]bool)
	var order []twiki.Token
	err = tree.BottomUp(func(item Item) error {
		if item.IsTerminal() {
			toks[item.Token] = true
			order = append(order, item.Token)
			return nil
		}
		for i, slot := range tree.Node(item.Node).Children {
			if slot.Symbol.IsTerminal() && !toks[slot.Token] {
				t.Errorf("node %d visited before its terminal #%d", item.Node, i)
			} else if !slot.Symbol.IsTerminal() && !nodes[slot.Node] {
				t.Errorf("node %d visited before its child node %d", item.Node, slot.Node)
			}
		}
		nodes[item.Node] = true
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != tree.NodeCount() {
		t.Errorf("Expected all %d nodes to be visited, visited %d", tree.NodeCount(), len(nodes))
	}
	if len(order) != len(input) || order[0] != input[len(input)-1] {
		t.Errorf("Expected terminals to be visited in reverse input order")
	}
	if span := tree.Span(tree.Root()); span != (twiki.Span{1, 8}) {
		t.Errorf("Expected root to span (1…8), is %s", span)
	}
}

func TestChildrenKnowTheirParent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "twiki.ll1")
	defer teardown()
	//
	cg := expressionGrammar(t)
	tree, err := cg.Parse(tokens(c, a, x, b, a))
	if err != nil {
		t.Fatal(err)
	}
	for h := 1; h < tree.NodeCount(); h++ {
		node := tree.Node(NodeHandle(h))
		parent := tree.Node(node.Parent)
		if slot := parent.Children[node.Index]; slot.Node != NodeHandle(h) || slot.Symbol.Rule() != node.Rule {
			t.Errorf("node %d is not found at slot %d of its parent", h, node.Index)
		}
	}
}

func TestBottomUpStopsAtError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "twiki.ll1")
	defer teardown()
	//
	cg := repetitionGrammar(t)
	tree, _ := cg.Parse(tokens(a, a))
	stop := errors.New("stop")
	calls := 0
	err := tree.BottomUp(func(item Item) error {
		calls++
		return stop
	})
	if err != stop || calls != 1 {
		t.Errorf("Expected iteration to stop after first error, calls = %d, err = %v", calls, err)
	}
}

func TestParserIsReusable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "twiki.ll1")
	defer teardown()
	//
	p := NewParser(repetitionGrammar(t))
	t1, err1 := p.Parse(tokens(a))
	t2, err2 := p.Parse(tokens(a, a, a, a))
	if err1 != nil || err2 != nil {
		t.Fatalf("Expected both inputs to be accepted, got %v / %v", err1, err2)
	}
	if t1.NodeCount() != 2 || t2.NodeCount() != 5 {
		t.Errorf("Expected trees with 2 and 5 nodes, have %d and %d", t1.NodeCount(), t2.NodeCount())
	}
}

func TestTableAsHTML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "twiki.ll1")
	defer teardown()
	//
	cg := expressionGrammar(t)
	var buf bytes.Buffer
	TableAsHTML(cg, &buf)
	out := buf.String()
	if !strings.Contains(out, "<table") || !strings.Contains(out, "#eof") {
		t.Errorf("Expected HTML table with #eof column, got %q", out)
	}
	if strings.Count(out, "<tr>") != cg.Grammar().Size() {
		t.Errorf("Expected one table row per rule")
	}
}
