package wiki

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/twiki/ll1"
	"github.com/npillmayer/twiki/lexer"
)

func translator(t *testing.T, opts ...Option) *Translator {
	t.Helper()
	tr, err := NewTranslator(opts...)
	if err != nil {
		t.Fatal(err)
	}
	return tr
}

func TestGrammarCompiles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "twiki.wiki")
	defer teardown()
	//
	c, err := CompiledGrammar()
	if err != nil {
		t.Fatalf("Expected twiki grammar to compile, got %v", err)
	}
	g := c.Grammar()
	if g.Size() != int(ruleCount) {
		t.Errorf("Expected %d rules, have %d", ruleCount, g.Size())
	}
	if g.Start().Type != Document {
		t.Errorf("Expected start rule to be document, is %s", RuleName(g.Start().Type))
	}
	if len(c.Terminals()) != int(lexer.NEW_LINE) {
		t.Errorf("Expected every lexer terminal type to be used by the grammar, have %d", len(c.Terminals()))
	}
	c2, _ := CompiledGrammar()
	if c2 != c {
		t.Errorf("Expected grammar to be compiled once")
	}
	g2, _ := NewGrammar()
	c3, err := ll1.Compile(g2)
	if err != nil || c3.Fingerprint() != c.Fingerprint() {
		t.Errorf("Expected recompilation to yield an identical fingerprint")
	}
}

func TestRuleNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "twiki.wiki")
	defer teardown()
	//
	names := map[ll1.RuleType]string{
		Document:               "document",
		FormattedWordList:      "formatted_word_list",
		TitleRule(1):           "title1",
		TitleRule(6):           "title6",
		ListRule(4):            "level4_list",
		itemFollowRule(2):      "level2_list_item_follow",
		listKinds[0].item(3):   "unorder_level3_list_item",
		listKinds[1].follow(1): "order_level1_list_follow",
		listKinds[1].list(4):   "order_level4_list",
	}
	for r, name := range names {
		if RuleName(r) != name {
			t.Errorf("Expected rule %d to be named %s, is %s", r, name, RuleName(r))
		}
	}
	seen := make(map[string]bool)
	for r := Document; r < ruleCount; r++ {
		if seen[RuleName(r)] {
			t.Errorf("Duplicate rule name %s", RuleName(r))
		}
		seen[RuleName(r)] = true
	}
}

func TestTranslate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "twiki.wiki")
	defer teardown()
	//
	tests := []struct {
		name, source, html string
	}{
		{"empty", "", ""},
		{"paragraphs",
			"Hello *bold* world.\n\nSecond para\n",
			"<p>\nHello <b>bold</b> world .  \n\n\n</p>\n<p>\nSecond para  \n</p>\n"},
		{"lists",
			"   * one\n   * two\n      1 sub\n      1 sub2\n   * three\n",
			"\n<ul>\n<li>one  \n</li>\n<li>two  \n\n<ol>\n<li>sub  \n</li>\n<li>sub2  \n</li>\n\n</ol>\n</li>\n<li>three  \n</li>\n\n</ul>\n"},
		{"list item continued",
			"   * item\n     continued\n\n   * next\n",
			"\n<ul>\n<li>item  \ncontinued  \n<p/></li>\n<li>next  \n</li>\n\n</ul>\n"},
		{"paragraph before list",
			"word\n   * a\n",
			"<p>\nword  \n\n</p>\n\n<ul>\n<li>a  \n</li>\n\n</ul>\n"},
		{"verbatim",
			"<verbatim>\n<b>x</b>\n</verbatim>\nafter\n",
			"<pre>\n<b>x</b>\n</pre>\n<p>\n\n</p>\n<p>\n\nafter  \n</p>\n"},
		{"links",
			"See [[WikiWord]] and [[http://x.org][the site]] at http://x.org now\n",
			"<p>\nSee <a href='/pwdoc/ViewPage/WikiWord'>WikiWord</a> and <a href='http://x.org'>the  site</a> at <a href='http://x.org'>http://x.org</a> now  \n\n</p>\n"},
		{"image and escapes",
			"[[img.png][%IMAGE:width=10%]] a&b <x>\n",
			"<p>\n<img src='img.png' width=10/> a&amp;b &lt;x&gt;  \n\n</p>\n"},
		{"colors and indentation",
			"%RED% red %ENDCOLOR% =code= *a b*\n  indented line\n",
			"<p>\n<font color='RED'> red </font> <code>code</code> <b>a  b</b>  \n\n indented line  \n</p>\n"},
	}
	tr := translator(t)
	for _, test := range tests {
		html, err := tr.Translate(test.source)
		if err != nil {
			t.Errorf("%s: %v", test.name, err)
			continue
		}
		if html != test.html {
			t.Errorf("%s: Expected\n%q\nhave\n%q", test.name, test.html, html)
		}
	}
}

func TestTableOfContents(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "twiki.wiki")
	defer teardown()
	//
	source := "%TOC%\n---+ Intro\nText here.\n---++ Details\nMore _text_.\n---+ End\n"
	expected := "<ul>\n<li><a href=\"#0\">\nIntro  \n\n</a></li>\n<ul>\n<li><a href=\"#1\">\nDetails  \n\n</a></li>\n</ul>\n" +
		"<li><a href=\"#2\">\nEnd  \n\n</a></li>\n</ul>\n" +
		"<h1><a name=0>Intro  \n</a></h1>\n<p>\nText here .  \n\n</p>\n" +
		"<h2><a name=1>Details  \n</a></h2>\n<p>\nMore <i>text</i> .  \n\n</p>\n" +
		"<h1><a name=2>End  \n</a></h1>\n"
	html, err := translator(t).Translate(source)
	if err != nil {
		t.Fatal(err)
	}
	if html != expected {
		t.Errorf("Expected\n%q\nhave\n%q", expected, html)
	}
	//
	source = "---+++ Deep *title*\n%TOC%\n---+ Top\n"
	expected = "<h3><a name=0>Deep <b>title</b>  \n</a></h3>\n" +
		"<ul>\n<ul>\n<ul>\n<li><a href=\"#0\">\nDeep <b>title</b>  \n\n</a></li>\n</ul>\n</ul>\n" +
		"<li><a href=\"#1\">\nTop  \n\n</a></li>\n</ul>\n<h1><a name=1>Top  \n</a></h1>\n"
	html, err = translator(t).Translate(source)
	if err != nil {
		t.Fatal(err)
	}
	if html != expected {
		t.Errorf("Expected\n%q\nhave\n%q", expected, html)
	}
}

func TestAnchorsPerDocument(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "twiki.wiki")
	defer teardown()
	//
	source := "---+ A\n---+ B\n"
	tr := translator(t, AnchorBase(10))
	var wg sync.WaitGroup
	results := make([]string, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = tr.Translate(source)
		}(i)
	}
	wg.Wait()
	for i, html := range results {
		if !strings.Contains(html, "<a name=10>A") || !strings.Contains(html, "<a name=11>B") {
			t.Errorf("Expected anchors 10 and 11 in translation #%d, have %q", i, html)
		}
	}
}

func TestLinkPrefixOption(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "twiki.wiki")
	defer teardown()
	//
	html, err := translator(t, LinkPrefix("/w/")).Translate("[[Home]]\n")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(html, "<a href='/w/Home'>Home</a>") {
		t.Errorf("Expected link with prefix /w/, have %q", html)
	}
}

func TestTranslateErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "twiki.wiki")
	defer teardown()
	//
	tr := translator(t)
	_, err := tr.Translate("*open bold\n")
	var perr *ll1.Error
	if !errors.As(err, &perr) || perr.Code != ll1.UnexpectedTerminal {
		t.Fatalf("Expected parse error for unclosed bold text, got %v", err)
	}
	if perr.Token.TokType() != lexer.NEW_LINE || perr.Token.(*lexer.Token).LineNo != 1 {
		t.Errorf("Expected error at NEW_LINE of line 1, is %v", perr.Token)
	}
	_, err = tr.Translate("<verbatim>\nnever closed\n")
	var lerr *lexer.Error
	if !errors.As(err, &lerr) {
		t.Errorf("Expected lexer error for unclosed verbatim block, got %v", err)
	}
}

func TestParseTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "twiki.wiki")
	defer teardown()
	//
	tree, err := translator(t).Parse("---++ Title\ntext\n")
	if err != nil {
		t.Fatal(err)
	}
	var titles []ll1.RuleType
	for _, item := range tree.Sequence() {
		if !item.IsTerminal() {
			if start, _ := family(tree.Node(item.Node).Rule); start == titleRules {
				titles = append(titles, tree.Node(item.Node).Rule)
			}
		}
	}
	if len(titles) != 1 || titles[0] != TitleRule(2) {
		t.Errorf("Expected a single title2 node, have %v", titles)
	}
	if span := tree.Span(tree.Root()); span.From() != 1 || span.To() != 3 {
		t.Errorf("Expected document to span lines 1 and 2, spans %s", span)
	}
}
