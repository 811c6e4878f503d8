package goreql

// DbRef names a database; its only capability is producing a TableRef.
type DbRef struct{ name string }

// Db names a database by name.
func Db(name string) *DbRef { return &DbRef{name: name} }

func (d *DbRef) lower(*GenState) WireTerm { return termWithArgs(TermDB, []interface{}{d.name}) }

// Table names a table within this database.
func (d *DbRef) Table(name string) *TableRef { return &TableRef{name: name, db: d} }

// TableRef is a Selection over the rows of a table.
type TableRef struct {
	name string
	db   *DbRef
}

// Table names a table with no preceding database handle.
func Table(name string) *TableRef { return &TableRef{name: name} }

func (t *TableRef) lower(state *GenState) WireTerm {
	if t.db == nil {
		return termWithArgs(TermTable, []interface{}{t.name})
	}
	return termWithArgs(TermTable, []interface{}{t.db.lower(state), t.name})
}

func (*TableRef) isValue()     {}
func (*TableRef) isSelection() {}

// Filter narrows the selection to rows where predicate returns a truthy
// term. predicate is invoked exactly once, at lowering time, with a fresh
// ClosureVar; it must be a pure function of that variable.
func (t *TableRef) Filter(predicate func(ClosureVar) Node) *FilterNode {
	return newFilter(t, predicate)
}

// Run sends this selection to conn and returns its ResultSet.
func (t *TableRef) Run(conn *Connection) (*ResultSet, error) {
	return runQuery(conn, t)
}
