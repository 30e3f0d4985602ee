package market

// TickerState is the last known state of one tracked instrument.
type TickerState struct {
	Definition *Definition
	Average    float64
	Change     float64
	// Last is the most recent un-smoothed average, used by the rolling policy.
	Last float64
	// Direction is the value whose sign decides how the change is colored.
	Direction float64
}

// Group holds every tracked instrument sharing a base identifier,
// in the order each symbol was first observed.
type Group struct {
	Base    string
	Members []TickerState
}

// Table maps base identifiers to groups, keeping first-observation order.
// Groups never move and members are updated in place.
type Table struct {
	groups []*Group
	index  map[string]int
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		index: make(map[string]int),
	}
}

// Groups returns the groups in display order. Callers must treat it as read-only.
func (t *Table) Groups() []*Group {
	return t.groups
}

// Group returns the group for a base identifier.
func (t *Table) Group(base string) (*Group, bool) {
	i, ok := t.index[base]
	if !ok {
		return nil, false
	}
	return t.groups[i], true
}

// Len returns the number of groups.
func (t *Table) Len() int {
	return len(t.groups)
}

// Empty reports whether no snapshot has been merged yet.
func (t *Table) Empty() bool {
	return len(t.groups) == 0
}

// upsert returns the state slot for def, creating the group and/or member
// at the end of their sequences when absent. The pointer is only valid
// until the next upsert into the same group.
func (t *Table) upsert(def *Definition) (*TickerState, bool) {
	i, ok := t.index[def.Base]
	if !ok {
		t.index[def.Base] = len(t.groups)
		t.groups = append(t.groups, &Group{
			Base:    def.Base,
			Members: []TickerState{{Definition: def}},
		})
		return &t.groups[len(t.groups)-1].Members[0], true
	}

	g := t.groups[i]
	if idx := g.indexOf(def.Symbol); idx >= 0 {
		return &g.Members[idx], false
	}

	g.Members = append(g.Members, TickerState{Definition: def})
	return &g.Members[len(g.Members)-1], true
}

// indexOf finds a member by symbol. Groups are a handful of entries,
// so a linear scan keeps insertion order without a second index.
func (g *Group) indexOf(symbol string) int {
	for i := range g.Members {
		if g.Members[i].Definition.Symbol == symbol {
			return i
		}
	}
	return -1
}
