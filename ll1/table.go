package ll1

import (
	"fmt"

	"github.com/npillmayer/twiki"
	"github.com/npillmayer/twiki/ll1/sparse"
)

// Table is an LL(1) parse table. Rows correspond to rules (in declaration order),
// columns to terminal types, and entries are indices of alternatives.
type Table struct {
	matrix *sparse.IntMatrix
	mincol twiki.TokType // lowest terminal value for index j => offset for access
}

func newTable(rows int, maxTerminal twiki.TokType) *Table {
	cols := int(maxTerminal-EOF) + 1
	return &Table{
		matrix: sparse.NewIntMatrix(rows, cols, sparse.DefaultNullValue),
		mincol: EOF,
	}
}

func (t *Table) column(tt twiki.TokType) int {
	j := tt - t.mincol
	if j < 0 {
		panic(fmt.Sprintf("ll1.Table with column index < 0: %d", j))
	}
	return int(j)
}

func (t *Table) set(row int, tt twiki.TokType, alt int) {
	t.matrix.Set(row, t.column(tt), int32(alt))
}

// lookup returns the alternative index at (row, tt) or -1.
func (t *Table) lookup(row int, tt twiki.TokType) int {
	j := tt - t.mincol
	if j < 0 || int(j) >= t.matrix.N() {
		return -1
	}
	v := t.matrix.Value(row, int(j))
	if v == t.matrix.NullValue() {
		return -1
	}
	return int(v)
}

// Size returns the number of table entries.
func (t *Table) Size() int {
	return t.matrix.ValueCount()
}

// Each calls f for every table entry, ordered by rule and terminal.
func (t *Table) Each(f func(row int, tt twiki.TokType, alt int)) {
	t.matrix.Each(func(i, j int, v int32) {
		f(i, twiki.TokType(j)+t.mincol, int(v))
	})
}

// expected returns the terminals with an entry in a row.
func (t *Table) expected(row int) []twiki.TokType {
	cols, _ := t.matrix.Row(row)
	tt := make([]twiki.TokType, len(cols))
	for k, j := range cols {
		tt[k] = twiki.TokType(j) + t.mincol
	}
	return tt
}

// --- Table construction ----------------------------------------------------

// For every alternative α of A, we add α to cell [A, a] for every terminal a in
// FIRST(α). If FIRST(α) contains ε, we add α to [A, b] for every b in FOLLOW(A).
func (c *Compiled) buildTable() error {
	var maxT twiki.TokType = EOF
	if c.terminals.Size() > 0 {
		values := c.terminals.Values()
		maxT = twiki.TokType(values[len(values)-1].(int))
	}
	c.table = newTable(c.g.Size(), maxT)
	for row, rule := range c.g.rules {
		for k, alt := range rule.Alternatives {
			for _, a := range c.firstOfSequence(alt, 0).Values() {
				if a.(int) != int(Epsilon) {
					if err := c.addEntry(row, twiki.TokType(a.(int)), k); err != nil {
						return err
					}
					continue
				}
				for _, b := range c.follow[row].Values() {
					if err := c.addEntry(row, twiki.TokType(b.(int)), k); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// addEntry is greedy: if a cell may be predicted by either an empty
// alternative or a non-empty one, the non-empty alternative wins. This is
// necessary for repetitions requiring at least one element:
//
//     A        ->  a A-follow
//     A-follow ->  a A-follow  |  ε
//
// Without greediness this is a conflict on [A-follow, a] whenever a may
// follow A.
func (c *Compiled) addEntry(row int, t twiki.TokType, alt int) error {
	rule := c.g.rules[row]
	current := c.table.lookup(row, t)
	switch {
	case current < 0:
		c.table.set(row, t, alt)
	case rule.Alternatives[current].Equal(rule.Alternatives[alt]):
		// nothing to do
	case rule.Alternatives[current].IsEmpty():
		tracer().Debugf("[%s, %s]: %s replaces empty prediction", c.g.RuleName(rule.Type),
			c.g.TerminalName(t), c.g.AlternativeString(rule.Alternatives[alt]))
		c.table.set(row, t, alt)
	case rule.Alternatives[alt].IsEmpty():
		tracer().Debugf("[%s, %s]: empty prediction dropped in favour of %s", c.g.RuleName(rule.Type),
			c.g.TerminalName(t), c.g.AlternativeString(rule.Alternatives[current]))
	default:
		err := grammarError(GrammarNotLL1, rule.Type,
			"grammar is not LL(1): (rule %s, terminal %s) has two conflicting alternatives %s and %s",
			c.g.RuleName(rule.Type), c.g.TerminalName(t),
			c.g.AlternativeString(rule.Alternatives[current]),
			c.g.AlternativeString(rule.Alternatives[alt]))
		err.Terminal = t
		err.Conflict = [2]Alternative{rule.Alternatives[current], rule.Alternatives[alt]}
		return err
	}
	return nil
}

// Table returns the parse table.
func (c *Compiled) Table() *Table {
	return c.table
}

// Predict returns the alternative predicted for rule r with lookahead t.
func (c *Compiled) Predict(r RuleType, t twiki.TokType) (Alternative, bool) {
	row, ok := c.g.index[r]
	if !ok {
		return nil, false
	}
	alt := c.table.lookup(row, t)
	if alt < 0 {
		return nil, false
	}
	return c.g.rules[row].Alternatives[alt], true
}
