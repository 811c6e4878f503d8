package goreql

// Node is anything that can lower itself to a WireTerm given the GenState
// threaded through one query's lowering. The tree is immutable once built;
// lowering mutates only state, never the node.
type Node interface {
	lower(state *GenState) WireTerm
}

// Value is a Node that may appear anywhere a JSON value is acceptable and
// supports Eq.
type Value interface {
	Node
	isValue()
}

// Selection is a stream of rows. The interface itself is a marker; each
// Selection in this package (TableRef, FilterNode) also provides Filter and
// Run, and so satisfies Query.
type Selection interface {
	Value
	isSelection()
}

// Query is any Node that can be sent to a Connection and produce a
// ResultSet.
type Query interface {
	Node
	Run(conn *Connection) (*ResultSet, error)
}
