package ll1

import (
	"github.com/cnf/structhash"
)

// snapshot is a value representation of a compiled grammar, suitable for hashing.
type snapshot struct {
	Name      string
	Rules     []int
	Terminals []int
	First     [][]int
	Follow    [][]int
	Table     [][3]int // rule row, terminal, alternative
}

func (c *Compiled) snapshot() snapshot {
	s := snapshot{Name: c.g.Name}
	for _, rule := range c.g.rules {
		s.Rules = append(s.Rules, int(rule.Type))
	}
	for _, t := range c.Terminals() {
		s.Terminals = append(s.Terminals, int(t))
	}
	for i := range c.g.rules {
		s.First = append(s.First, ints(c.first[i].Values()))
		s.Follow = append(s.Follow, ints(c.follow[i].Values()))
	}
	c.table.matrix.Each(func(i, j int, v int32) {
		s.Table = append(s.Table, [3]int{i, j, int(v)})
	})
	return s
}

// Fingerprint returns a hash over the grammar's rule order, terminals, FIRST and
// FOLLOW sets and the parse table. Compiling the same grammar twice yields the
// same fingerprint.
func (c *Compiled) Fingerprint() string {
	h, err := structhash.Hash(c.snapshot(), 1)
	if err != nil {
		tracer().Errorf("cannot create fingerprint: %v", err)
		return ""
	}
	return h
}

func ints(values []interface{}) []int {
	r := make([]int, len(values))
	for i, v := range values {
		r[i] = v.(int)
	}
	return r
}
