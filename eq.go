package goreql

// EqNode is the result of a.Eq(b): a boolean Value comparing two Values.
type EqNode struct{ a, b Value }

// Eq builds an equality term comparing a against b.
func Eq(a, b Value) *EqNode { return &EqNode{a: a, b: b} }

func (e *EqNode) lower(state *GenState) WireTerm {
	return termWithArgs(TermEq, []interface{}{e.a.lower(state), e.b.lower(state)})
}

func (*EqNode) isValue() {}
