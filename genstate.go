package goreql

// GenState mints fresh, pairwise-distinct ClosureVar identifiers within one
// lowering. It is created at the start of each Run and discarded after;
// nothing outlives the call. Implementations must mint identifiers via a
// single counter threaded through lowering so nested filters never collide.
type GenState struct {
	nvars int
}

func newGenState() *GenState { return &GenState{} }

func (s *GenState) genVar() ClosureVar {
	v := ClosureVar{n: s.nvars}
	s.nvars++
	return v
}

// ClosureVar is a variable reference bound by a predicate passed to Filter.
// It is minted fresh for each filter application and safe to copy freely.
type ClosureVar struct{ n int }

func (c ClosureVar) lower(*GenState) WireTerm { return termWithArgs(TermVar, []interface{}{c.n}) }

func (ClosureVar) isValue() {}

// Eq builds an equality term comparing c against other.
func (c ClosureVar) Eq(other Value) *EqNode { return Eq(c, other) }
