package ll1

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/twiki"
)

// Compiled is the result of compiling a grammar: the set of terminals, FIRST and
// FOLLOW sets and the parse table. It is immutable and may be shared between
// parsers running concurrently.
type Compiled struct {
	g         *Grammar
	terminals *treeset.Set   // of int(TokType)
	first     []*treeset.Set // per rule index, of int(TokType), may contain Epsilon
	follow    []*treeset.Set // per rule index, of int(TokType), may contain EOF
	table     *Table
}

// Compile validates a grammar, runs the static analysis and builds the parse table.
// Grammar errors are reported as *Error with code MalformedGrammar or GrammarNotLL1.
func Compile(g *Grammar) (*Compiled, error) {
	c := &Compiled{g: g}
	if err := c.validate(); err != nil {
		tracer().Errorf(err.Error())
		return nil, err
	}
	if err := c.computeFirstSets(); err != nil {
		tracer().Errorf(err.Error())
		return nil, err
	}
	c.computeFollowSets()
	if err := c.buildTable(); err != nil {
		tracer().Errorf(err.Error())
		return nil, err
	}
	tracer().Debugf("grammar %q compiled: %d rules, %d terminals, %d table entries",
		g.Name, g.Size(), c.terminals.Size(), c.table.Size())
	return c, nil
}

// Grammar returns the grammar this analysis has been created for.
func (c *Compiled) Grammar() *Grammar {
	return c.g
}

// Terminals returns the set of terminal types the grammar references, in
// ascending order. The end-of-input marker is not included.
func (c *Compiled) Terminals() []twiki.TokType {
	return tokTypes(c.terminals)
}

// IsTerminal checks whether t is a terminal type declared by the grammar.
func (c *Compiled) IsTerminal(t twiki.TokType) bool {
	return c.terminals.Contains(int(t))
}

// First returns FIRST(r), in ascending order. Epsilon, if present, is the
// first element. Returns nil for undeclared rules.
func (c *Compiled) First(r RuleType) []twiki.TokType {
	if inx, ok := c.g.index[r]; ok {
		return tokTypes(c.first[inx])
	}
	return nil
}

// Follow returns FOLLOW(r), in ascending order. EOF, if present, is the
// first element. Returns nil for undeclared rules.
func (c *Compiled) Follow(r RuleType) []twiki.TokType {
	if inx, ok := c.g.index[r]; ok {
		return tokTypes(c.follow[inx])
	}
	return nil
}

// --- Validation ------------------------------------------------------------

func (c *Compiled) validate() error {
	if c.g == nil || c.g.Size() == 0 {
		return grammarError(MalformedGrammar, 0, "empty grammar")
	}
	c.terminals = newSymSet()
	for _, rule := range c.g.rules {
		for _, alt := range rule.Alternatives {
			for _, sym := range alt {
				if !sym.IsTerminal() {
					if c.g.Rule(sym.Rule()) == nil {
						return grammarError(MalformedGrammar, rule.Type,
							"undefined rule %s in alternative %s of rule %s",
							c.g.RuleName(sym.Rule()), c.g.AlternativeString(alt), c.g.RuleName(rule.Type))
					}
					continue
				}
				if t := sym.Terminal(); t < 0 {
					return grammarError(MalformedGrammar, rule.Type,
						"symbol %s in alternative %s of rule %s is neither a terminal nor a rule",
						c.g.TerminalName(t), c.g.AlternativeString(alt), c.g.RuleName(rule.Type))
				}
				c.terminals.Add(sym.value)
			}
		}
		if len(rule.Alternatives) == 0 {
			tracer().Infof("rule %s has no alternatives", c.g.RuleName(rule.Type))
		}
	}
	return nil
}

// --- FIRST sets ------------------------------------------------------------

func (c *Compiled) computeFirstSets() error {
	c.first = make([]*treeset.Set, c.g.Size())
	for i := range c.first {
		c.first[i] = newSymSet()
	}
	count := 0
	for {
		for i, rule := range c.g.rules {
			for _, alt := range rule.Alternatives {
				if err := c.addFirstOfAlternative(i, alt); err != nil {
					return err
				}
			}
		}
		newCount := setsTotal(c.first)
		if newCount == count {
			break
		}
		count = newCount
	}
	return nil
}

// addFirstOfAlternative adds FIRST(alt) to FIRST of rule #inx, skipping over
// nullable prefixes.
func (c *Compiled) addFirstOfAlternative(inx int, alt Alternative) error {
	F := c.first[inx]
	A := c.g.rules[inx].Type
	for i, sym := range alt {
		if sym.IsTerminal() {
			F.Add(sym.value)
			return nil
		}
		if i == 0 && sym.Rule() == A {
			return grammarError(MalformedGrammar, A, "left recursion is not allowed, found in rule %s: %s",
				c.g.RuleName(A), c.g.AlternativeString(alt))
		}
		nullable := false
		for _, t := range c.first[c.g.index[sym.Rule()]].Values() {
			if t.(int) == int(Epsilon) {
				nullable = true
			} else {
				F.Add(t)
			}
		}
		if !nullable {
			return nil
		}
	}
	F.Add(int(Epsilon)) // all of alt may derive ε
	return nil
}

// firstOfSequence returns FIRST of alt[from:]. The empty suffix has FIRST {ε}.
func (c *Compiled) firstOfSequence(alt Alternative, from int) *treeset.Set {
	S := newSymSet()
	for _, sym := range alt[from:] {
		if sym.IsTerminal() {
			S.Add(sym.value)
			return S
		}
		nullable := false
		for _, t := range c.first[c.g.index[sym.Rule()]].Values() {
			if t.(int) == int(Epsilon) {
				nullable = true
			} else {
				S.Add(t)
			}
		}
		if !nullable {
			return S
		}
	}
	S.Add(int(Epsilon))
	return S
}

// --- FOLLOW sets -----------------------------------------------------------

func (c *Compiled) computeFollowSets() {
	c.follow = make([]*treeset.Set, c.g.Size())
	for i := range c.follow {
		c.follow[i] = newSymSet()
	}
	c.follow[0].Add(int(EOF)) // start rule
	count := 0
	for {
		for i, rule := range c.g.rules {
			for _, alt := range rule.Alternatives {
				c.addFollowFromAlternative(i, alt)
			}
		}
		newCount := setsTotal(c.follow)
		if newCount == count {
			break
		}
		count = newCount
	}
}

// For A -> … B y we add FIRST(y) to FOLLOW(B). If y may derive ε, we add
// FOLLOW(A) to FOLLOW(B) as well.
func (c *Compiled) addFollowFromAlternative(inx int, alt Alternative) {
	for i, B := range alt {
		if B.IsTerminal() {
			continue
		}
		FB := c.follow[c.g.index[B.Rule()]]
		for _, t := range c.firstOfSequence(alt, i+1).Values() {
			if t.(int) == int(Epsilon) {
				FB.Add(c.follow[inx].Values()...)
			} else {
				FB.Add(t)
			}
		}
	}
}

// --- Helpers ---------------------------------------------------------------

func newSymSet() *treeset.Set {
	return treeset.NewWith(utils.IntComparator)
}

func setsTotal(sets []*treeset.Set) int {
	total := 0
	for _, S := range sets {
		total += S.Size()
	}
	return total
}

func tokTypes(S *treeset.Set) []twiki.TokType {
	values := S.Values()
	tt := make([]twiki.TokType, len(values))
	for i, v := range values {
		tt[i] = twiki.TokType(v.(int))
	}
	return tt
}
