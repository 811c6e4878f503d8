// Package goreql is a client library for a ReQL-style document database.
// It pairs an embedded query-builder DSL — a tree of term nodes lowering
// to a JSON wire term — with a connection engine that performs the binary
// magic handshake, SCRAM-SHA-256 authentication, and tokened framed I/O
// over TCP.
//
// Build a query from Db/Table, Filter, and Eq, then send it with Run:
//
//	conn, err := goreql.NewConnectionBuilder().Hostname("localhost").Connect(ctx)
//	rs, err := goreql.Db("blog").Table("users").
//		Filter(func(row goreql.ClosureVar) goreql.Node { return row }).
//		Run(conn)
//
// Connection pooling, reconnection, query planning, and cursor iteration
// beyond the raw reply are out of scope; see DESIGN.md.
package goreql
