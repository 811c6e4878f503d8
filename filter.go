package goreql

// FilterNode is the result of Selection.Filter: a Selection restricted to
// rows for which predicate's lowered body is truthy. predicate is applied
// exactly once, at lowering time, against a freshly minted ClosureVar — see
// spec §4.1's hygienic filter lowering.
type FilterNode struct {
	source    Selection
	predicate func(ClosureVar) Node
}

func newFilter(source Selection, predicate func(ClosureVar) Node) *FilterNode {
	return &FilterNode{source: source, predicate: predicate}
}

// lower emits [FILTER, lower(source), [FUNC, [[MAKE_ARRAY, [cv.n]], lower(body)]]] —
// note this is a 3-element array, not the usual [termId, [args]] shape, per
// spec §4.1's filter lowering.
func (f *FilterNode) lower(state *GenState) WireTerm {
	cv := state.genVar()
	body := f.predicate(cv)
	funcTerm := termWithArgs(TermFunc, []interface{}{
		termWithArgs(TermMakeArray, []interface{}{cv.n}),
		body.lower(state),
	})
	return []interface{}{int(TermFilter), f.source.lower(state), funcTerm}
}

func (*FilterNode) isValue()     {}
func (*FilterNode) isSelection() {}

// Filter narrows this selection further. Nested filters each mint their own
// ClosureVar at lowering time, so identifiers never collide across levels.
func (f *FilterNode) Filter(predicate func(ClosureVar) Node) *FilterNode {
	return newFilter(f, predicate)
}

// Run sends this selection to conn and returns its ResultSet.
func (f *FilterNode) Run(conn *Connection) (*ResultSet, error) {
	return runQuery(conn, f)
}
