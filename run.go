package goreql

import "encoding/json"

// ResultSet is an opaque handle wrapping a query's raw reply JSON. Cursor
// iteration over sequence/partial replies is out of scope; callers that
// need it decode Raw() themselves.
type ResultSet struct {
	token uint64
	raw   json.RawMessage
}

// Token returns the query token this result answers.
func (r *ResultSet) Token() uint64 { return r.token }

// Raw returns the server's reply document, exactly as received.
func (r *ResultSet) Raw() json.RawMessage { return r.raw }

// replyEnvelope is the common shape of every server reply: a type tag plus
// the response body, decoded just enough to classify success vs. error.
type replyEnvelope struct {
	Type int `json:"t"`
}

// checkReplyType classifies reply by its "t" field and turns a
// ClientError/CompileError/RuntimeError reply into a *QueryError. Per the
// propagation policy (spec §7) these do not invalidate the Connection.
func checkReplyType(token uint64, reply json.RawMessage) error {
	var env replyEnvelope
	if err := json.Unmarshal(reply, &env); err != nil {
		return &ConnectionError{Err: err}
	}
	var kind QueryErrorKind
	switch env.Type {
	case replySuccessAtom, replySuccessSequence, replySuccessPartial, replyWaitComplete, replySuccessFeed:
		return nil
	case replyClientError:
		kind = QueryClientError
	case replyCompileError:
		kind = QueryCompileError
	case replyRuntimeError:
		kind = QueryRuntimeError
	default:
		return nil
	}
	return &QueryError{Kind: kind, Token: token, Reply: reply}
}

// runQuery lowers tree with a fresh GenState, wraps it in a START envelope,
// sends it over conn, and returns the ResultSet. On any error — transport
// or query-level — the returned ResultSet is nil.
func runQuery(conn *Connection, tree Node) (*ResultSet, error) {
	state := newGenState()
	term := tree.lower(state)
	envelope := []interface{}{int(QueryStart), term}

	token, err := conn.sendQuery(envelope)
	if err != nil {
		return nil, err
	}
	_, reply, err := conn.recvResponse()
	if err != nil {
		return nil, err
	}
	if err := checkReplyType(token, reply); err != nil {
		return nil, err
	}
	return &ResultSet{token: token, raw: reply}, nil
}
