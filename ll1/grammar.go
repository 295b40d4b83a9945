package ll1

import (
	"fmt"
	"strings"

	"github.com/npillmayer/twiki"
)

// RuleType identifies a rule (non-terminal) of a grammar. We do not define any
// constants here, as it is up to grammars to define them.
type RuleType int

// RuleTypeStringer is a type to be provided by a grammar to be able to print out
// rule names.
type RuleTypeStringer func(RuleType) string

// Sentinels. Neither of them may be used as a terminal in an alternative.
const (
	EOF     twiki.TokType = -1 // end-of-input marker, implicitly part of every grammar
	Epsilon twiki.TokType = -2 // the empty derivation, only found in FIRST sets
)

// --- Symbols ---------------------------------------------------------------

// Symbol is an element of an alternative: either a terminal type or a rule type.
type Symbol struct {
	value  int
	isRule bool
}

// TermSymbol creates a symbol for terminal type t.
func TermSymbol(t twiki.TokType) Symbol {
	return Symbol{value: int(t)}
}

// RuleSymbol creates a symbol for rule type r.
func RuleSymbol(r RuleType) Symbol {
	return Symbol{value: int(r), isRule: true}
}

// IsTerminal is true for terminal symbols.
func (s Symbol) IsTerminal() bool {
	return !s.isRule
}

// Terminal returns the terminal type of a terminal symbol.
func (s Symbol) Terminal() twiki.TokType {
	return twiki.TokType(s.value)
}

// Rule returns the rule type of a rule symbol.
func (s Symbol) Rule() RuleType {
	return RuleType(s.value)
}

// Alternative is one right-hand side of a rule. The empty alternative derives ε.
type Alternative []Symbol

// IsEmpty is true for the ε-alternative.
func (alt Alternative) IsEmpty() bool {
	return len(alt) == 0
}

// Equal compares two alternatives symbol by symbol.
func (alt Alternative) Equal(other Alternative) bool {
	if len(alt) != len(other) {
		return false
	}
	for i, sym := range alt {
		if sym != other[i] {
			return false
		}
	}
	return true
}

// Rule is a non-terminal together with its ordered list of alternatives.
type Rule struct {
	Type         RuleType
	Alternatives []Alternative
}

// --- Grammar ---------------------------------------------------------------

// Grammar is a declared set of rules. Create one with a GrammarBuilder.
// The first rule is the start rule.
type Grammar struct {
	Name      string
	rules     []*Rule
	index     map[RuleType]int // rule type -> position in rules
	termNames twiki.TokTypeStringer
	ruleNames RuleTypeStringer
}

// Size returns the number of rules.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Start returns the start rule, or nil for an empty grammar.
func (g *Grammar) Start() *Rule {
	if len(g.rules) == 0 {
		return nil
	}
	return g.rules[0]
}

// Rule returns the rule for r, or nil if r has not been declared.
func (g *Grammar) Rule(r RuleType) *Rule {
	if inx, ok := g.index[r]; ok {
		return g.rules[inx]
	}
	return nil
}

// EachRule calls f for every rule in declaration order.
func (g *Grammar) EachRule(f func(rule *Rule)) {
	for _, rule := range g.rules {
		f(rule)
	}
}

// TerminalName returns a printable name for a terminal type.
func (g *Grammar) TerminalName(t twiki.TokType) string {
	switch t {
	case EOF:
		return "#eof"
	case Epsilon:
		return "#ε"
	}
	if g.termNames != nil {
		return g.termNames(t)
	}
	return fmt.Sprintf("t%d", int(t))
}

// RuleName returns a printable name for a rule type.
func (g *Grammar) RuleName(r RuleType) string {
	if g.ruleNames != nil {
		return g.ruleNames(r)
	}
	return fmt.Sprintf("R%d", int(r))
}

// SymbolName returns a printable name for a symbol.
func (g *Grammar) SymbolName(sym Symbol) string {
	if sym.IsTerminal() {
		return g.TerminalName(sym.Terminal())
	}
	return g.RuleName(sym.Rule())
}

// AlternativeString formats an alternative as "[a B c]".
func (g *Grammar) AlternativeString(alt Alternative) string {
	names := make([]string, len(alt))
	for i, sym := range alt {
		names[i] = g.SymbolName(sym)
	}
	return "[" + strings.Join(names, " ") + "]"
}

// Dump is a debugging helper, writing the grammar's rules to the tracer.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	n := 0
	for _, rule := range g.rules {
		for _, alt := range rule.Alternatives {
			tracer().Debugf("%3d: [%s] ::= %s", n, g.RuleName(rule.Type), g.AlternativeString(alt))
			n++
		}
	}
	tracer().Debugf("-------------------------------------------------------")
}

// --- Grammar Builder -------------------------------------------------------

// GrammarBuilder is a helper for declaring grammars.
//
//    b := ll1.NewGrammarBuilder("G")
//    b.LHS(S).T(a).N(S).End()   // S -> a S
//    b.LHS(S).Epsilon()         // S ->
//    g, err := b.Grammar()
//
type GrammarBuilder struct {
	g    *Grammar
	open int // number of unfinished alternatives
}

// NewGrammarBuilder creates a builder for a new grammar with a given name.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{
		g: &Grammar{
			Name:  name,
			index: make(map[RuleType]int),
		},
	}
}

// TokenNames sets a stringer for terminal types, used for diagnostics.
func (b *GrammarBuilder) TokenNames(f twiki.TokTypeStringer) *GrammarBuilder {
	b.g.termNames = f
	return b
}

// RuleNames sets a stringer for rule types, used for diagnostics.
func (b *GrammarBuilder) RuleNames(f RuleTypeStringer) *GrammarBuilder {
	b.g.ruleNames = f
	return b
}

// Declare introduces rule r without adding an alternative. This is useful to
// fix the start rule before adding any alternatives.
func (b *GrammarBuilder) Declare(r RuleType) *GrammarBuilder {
	b.rule(r)
	return b
}

func (b *GrammarBuilder) rule(r RuleType) *Rule {
	if inx, ok := b.g.index[r]; ok {
		return b.g.rules[inx]
	}
	rule := &Rule{Type: r}
	b.g.index[r] = len(b.g.rules)
	b.g.rules = append(b.g.rules, rule)
	return rule
}

// LHS starts a new alternative for rule r. The first rule ever introduced
// is the start rule of the grammar.
func (b *GrammarBuilder) LHS(r RuleType) *RuleBuilder {
	b.open++
	return &RuleBuilder{b: b, rule: b.rule(r)}
}

// Grammar returns the grammar built so far. It is an error to call Grammar
// while an alternative has not been finished with End or Epsilon. The grammar
// is not validated; this is done by Compile.
func (b *GrammarBuilder) Grammar() (*Grammar, error) {
	if b.open > 0 {
		return nil, fmt.Errorf("grammar %q has %d unfinished alternative(s)", b.g.Name, b.open)
	}
	return b.g, nil
}

// RuleBuilder collects the symbols of a single alternative.
type RuleBuilder struct {
	b    *GrammarBuilder
	rule *Rule
	alt  Alternative
}

// T appends a terminal to the alternative.
func (rb *RuleBuilder) T(t twiki.TokType) *RuleBuilder {
	rb.alt = append(rb.alt, TermSymbol(t))
	return rb
}

// N appends a rule (non-terminal) to the alternative.
func (rb *RuleBuilder) N(r RuleType) *RuleBuilder {
	rb.alt = append(rb.alt, RuleSymbol(r))
	return rb
}

// Symbols appends a sequence of symbols to the alternative.
func (rb *RuleBuilder) Symbols(syms ...Symbol) *RuleBuilder {
	rb.alt = append(rb.alt, syms...)
	return rb
}

// End finishes the alternative and adds it to the rule.
func (rb *RuleBuilder) End() *Rule {
	if rb.alt == nil {
		rb.alt = Alternative{}
	}
	rb.rule.Alternatives = append(rb.rule.Alternatives, rb.alt)
	rb.b.open--
	return rb.rule
}

// Epsilon finishes the alternative as an ε-alternative. Symbols collected so
// far are discarded.
func (rb *RuleBuilder) Epsilon() *Rule {
	rb.alt = Alternative{}
	return rb.End()
}
