package goreql

// TermID identifies a ReQL-style term type in the wire protocol.
type TermID int

const (
	TermDatum     TermID = 1
	TermMakeArray TermID = 2
	TermVar       TermID = 10
	TermDB        TermID = 14
	TermTable     TermID = 15
	TermEq        TermID = 17
	TermFilter    TermID = 39
	TermFunc      TermID = 69
)

// QueryType identifies the kind of envelope sent to the server.
type QueryType int

const (
	QueryStart       QueryType = 1
	QueryContinue    QueryType = 2
	QueryStop        QueryType = 3
	QueryNoreplyWait QueryType = 4
	QueryServerInfo  QueryType = 5
)

// Reply type codes in the server's top-level response envelope ({"t": ...}).
const (
	replySuccessAtom     = 1
	replySuccessSequence = 2
	replySuccessPartial  = 3
	replyWaitComplete    = 4
	replySuccessFeed     = 5
	replyClientError     = 16
	replyCompileError    = 17
	replyRuntimeError    = 18
)

// WireTerm is the JSON-shaped value a Node lowers to: nil, bool,
// float64/int, string, []interface{}, or map[string]interface{} — exactly
// what encoding/json produces for an arbitrary JSON value.
type WireTerm = interface{}

// termWithArgs builds the canonical [termId, [args...]] wire shape shared
// by every term except Filter, which has its own 3-element lowering.
func termWithArgs(id TermID, args []interface{}) WireTerm {
	return []interface{}{int(id), args}
}
