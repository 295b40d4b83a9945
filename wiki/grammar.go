package wiki

import (
	"fmt"
	"sync"

	"github.com/npillmayer/twiki"
	"github.com/npillmayer/twiki/ll1"
	"github.com/npillmayer/twiki/lexer"
)

// Rules of the twiki grammar.
const (
	Document ll1.RuleType = iota
	TextBlock
	Paragraph
	ParagraphFollow
	Line
	FormattedWordList
	FormattedWord
	PlainWordList
	PlainWord
	BoldWord
	ItalicsWord
	FixedWidthWord
	LongLink
	Title
	Toc
	firstFamilyRule // start of rule families, see below
)

// Rule families. Each family has one rule per nesting level.
const (
	titleRules           = firstFamilyRule                           // title1 … title6
	listRules            = titleRules + lexer.MaxLevel               // levelN_list
	itemFollowRules      = listRules + lexer.MaxListLevel            // levelN_list_item_follow
	unorderedListRules   = itemFollowRules + lexer.MaxListLevel      // unorder_levelN_list
	unorderedFollowRules = unorderedListRules + lexer.MaxListLevel   // unorder_levelN_list_follow
	unorderedItemRules   = unorderedFollowRules + lexer.MaxListLevel // unorder_levelN_list_item
	orderedListRules     = unorderedItemRules + lexer.MaxListLevel   // order_levelN_list
	orderedFollowRules   = orderedListRules + lexer.MaxListLevel     // order_levelN_list_follow
	orderedItemRules     = orderedFollowRules + lexer.MaxListLevel   // order_levelN_list_item
	ruleCount            = orderedItemRules + lexer.MaxListLevel
)

// TitleRule returns the rule for titles of a given level (1…6).
func TitleRule(level int) ll1.RuleType { return titleRules + ll1.RuleType(level-1) }

// ListRule returns the rule for lists of a given level (1…4).
func ListRule(level int) ll1.RuleType { return listRules + ll1.RuleType(level-1) }

func itemFollowRule(level int) ll1.RuleType { return itemFollowRules + ll1.RuleType(level-1) }

// listKind distinguishes unordered and ordered lists.
type listKind struct {
	tag     string // HTML tag
	lists   ll1.RuleType
	follows ll1.RuleType
	items   ll1.RuleType
	lead    func(int) twiki.TokType
}

var listKinds = []listKind{
	{"ul", unorderedListRules, unorderedFollowRules, unorderedItemRules, lexer.UnorderedListLead},
	{"ol", orderedListRules, orderedFollowRules, orderedItemRules, lexer.OrderedListLead},
}

func (k listKind) list(level int) ll1.RuleType   { return k.lists + ll1.RuleType(level-1) }
func (k listKind) follow(level int) ll1.RuleType { return k.follows + ll1.RuleType(level-1) }
func (k listKind) item(level int) ll1.RuleType   { return k.items + ll1.RuleType(level-1) }

// family returns the family start and the level of a rule, or level 0 for
// rules not belonging to a family.
func family(r ll1.RuleType) (ll1.RuleType, int) {
	switch {
	case r < firstFamilyRule || r >= ruleCount:
		return r, 0
	case r < listRules:
		return titleRules, int(r-titleRules) + 1
	}
	start := listRules + (r-listRules)/lexer.MaxListLevel*lexer.MaxListLevel
	return start, int(r-start) + 1
}

var ruleNames = map[ll1.RuleType]string{
	Document:          "document",
	TextBlock:         "text_block",
	Paragraph:         "paragraph",
	ParagraphFollow:   "paragraph_follow",
	Line:              "line",
	FormattedWordList: "formatted_word_list",
	FormattedWord:     "formatted_word",
	PlainWordList:     "plain_word_list",
	PlainWord:         "plain_word",
	BoldWord:          "bold_word",
	ItalicsWord:       "italics_word",
	FixedWidthWord:    "fixed_width_word",
	LongLink:          "long_link",
	Title:             "title",
	Toc:               "toc",
}

var familyNames = map[ll1.RuleType]string{
	titleRules:           "title%d",
	listRules:            "level%d_list",
	itemFollowRules:      "level%d_list_item_follow",
	unorderedListRules:   "unorder_level%d_list",
	unorderedFollowRules: "unorder_level%d_list_follow",
	unorderedItemRules:   "unorder_level%d_list_item",
	orderedListRules:     "order_level%d_list",
	orderedFollowRules:   "order_level%d_list_follow",
	orderedItemRules:     "order_level%d_list_item",
}

// RuleName returns the name of a rule of the twiki grammar. It is an ll1.RuleTypeStringer.
func RuleName(r ll1.RuleType) string {
	start, level := family(r)
	if level == 0 {
		if name, ok := ruleNames[r]; ok {
			return name
		}
		return fmt.Sprintf("R%d", int(r))
	}
	return fmt.Sprintf(familyNames[start], level)
}

// --- Grammar ---------------------------------------------------------------

// titleFamily declares titleN → TITLE_LEADn line and adds titleN as an
// alternative of title.
func titleFamily(b *ll1.GrammarBuilder, level int) {
	b.LHS(TitleRule(level)).T(lexer.TitleLead(level)).N(Line).End()
	b.LHS(Title).N(TitleRule(level)).End()
}

// listFamily declares the rules for lists of a given level. Lists of the
// last level cannot contain nested lists.
func listFamily(b *ll1.GrammarBuilder, level int, last bool) {
	follow := itemFollowRule(level)
	b.LHS(follow).T(lexer.LINE_LEAD_WHITESPACE).N(Line).N(follow).End()
	b.LHS(follow).T(lexer.NEW_LINE).N(follow).End()
	if !last {
		b.LHS(follow).N(ListRule(level + 1)).N(follow).End()
	}
	b.LHS(follow).Epsilon()
	for _, kind := range listKinds {
		item := kind.item(level)
		b.LHS(item).T(kind.lead(level)).N(Line).N(follow).End()
		b.LHS(kind.follow(level)).N(item).N(kind.follow(level)).End()
		b.LHS(kind.follow(level)).Epsilon()
		b.LHS(kind.list(level)).N(item).N(kind.follow(level)).End()
		b.LHS(ListRule(level)).N(kind.list(level)).End()
	}
}

// markup declares rule → single | start plain_word_list end, used for emphasis
// and long links.
func markup(b *ll1.GrammarBuilder, r ll1.RuleType, single, start, end twiki.TokType) {
	b.LHS(r).T(single).End()
	b.LHS(r).T(start).N(PlainWordList).T(end).End()
}

// NewGrammar declares the twiki grammar. The start rule is document.
func NewGrammar() (*ll1.Grammar, error) {
	b := ll1.NewGrammarBuilder("twiki").TokenNames(lexer.TokTypeString).RuleNames(RuleName)
	b.LHS(Document).N(TextBlock).N(Document).End()
	b.LHS(Document).Epsilon()
	b.LHS(TextBlock).N(Paragraph).End()
	b.LHS(TextBlock).N(Title).End()
	b.LHS(TextBlock).T(lexer.VERBATIM).End()
	b.LHS(TextBlock).N(Toc).End()
	b.LHS(TextBlock).N(ListRule(1)).End()
	//
	for _, t := range []twiki.TokType{lexer.WORD, lexer.PUNCTURE, lexer.COLOR_START, lexer.ENDCOLOR} {
		b.LHS(PlainWord).T(t).End()
	}
	b.LHS(PlainWordList).N(PlainWord).N(PlainWordList).End()
	b.LHS(PlainWordList).Epsilon()
	markup(b, BoldWord, lexer.BOLD_WORD, lexer.BOLD_START_WORD, lexer.BOLD_END_WORD)
	markup(b, ItalicsWord, lexer.ITALICS_WORD, lexer.ITALICS_START_WORD, lexer.ITALICS_END_WORD)
	markup(b, FixedWidthWord, lexer.FIXED_WIDTH_WORD, lexer.FIXED_WIDTH_START_WORD, lexer.FIXED_WIDTH_END_WORD)
	markup(b, LongLink, lexer.LONG_LINK, lexer.LONG_LINK_START, lexer.LONG_LINK_END)
	b.LHS(FormattedWord).N(PlainWord).End()
	b.LHS(FormattedWord).N(BoldWord).End()
	b.LHS(FormattedWord).N(ItalicsWord).End()
	b.LHS(FormattedWord).N(FixedWidthWord).End()
	b.LHS(FormattedWord).T(lexer.SHORT_LINK).End()
	b.LHS(FormattedWord).N(LongLink).End()
	b.LHS(FormattedWord).T(lexer.URL).End()
	b.LHS(FormattedWord).T(lexer.IMAGE_LINK).End()
	b.LHS(FormattedWordList).N(FormattedWord).N(FormattedWordList).End()
	b.LHS(FormattedWordList).Epsilon()
	//
	b.LHS(Line).N(FormattedWordList).T(lexer.NEW_LINE).End()
	b.LHS(Line).T(lexer.LINE_LEAD_WHITESPACE).N(FormattedWordList).T(lexer.NEW_LINE).End()
	b.LHS(ParagraphFollow).N(Line).N(ParagraphFollow).End()
	b.LHS(ParagraphFollow).Epsilon()
	b.LHS(Paragraph).N(Line).N(ParagraphFollow).End()
	for level := 1; level <= lexer.MaxLevel; level++ {
		titleFamily(b, level)
	}
	b.LHS(Toc).T(lexer.TOC).T(lexer.NEW_LINE).End()
	for level := 1; level <= lexer.MaxListLevel; level++ {
		listFamily(b, level, level == lexer.MaxListLevel)
	}
	return b.Grammar()
}

var twikiGrammar struct {
	once     sync.Once
	compiled *ll1.Compiled
	err      error
}

// CompiledGrammar returns the compiled twiki grammar. The grammar is compiled
// on first use; subsequent calls return the same instance.
func CompiledGrammar() (*ll1.Compiled, error) {
	twikiGrammar.once.Do(func() {
		g, err := NewGrammar()
		if err != nil {
			twikiGrammar.err = err
			return
		}
		twikiGrammar.compiled, twikiGrammar.err = ll1.Compile(g)
		if twikiGrammar.err == nil {
			tracer().Infof("twiki grammar compiled, %d rules, %d table entries", g.Size(),
				twikiGrammar.compiled.Table().Size())
		}
	})
	return twikiGrammar.compiled, twikiGrammar.err
}
