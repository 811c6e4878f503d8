package goreql

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"github.com/arashi-io/goreql/internal/metrics"
	"github.com/arashi-io/goreql/internal/protocol"
)

// Connection owns an authenticated TCP stream and the monotonic token
// counter for queries sent over it. It is produced only by
// ConnectionBuilder.Connect and is not safe for concurrent use by multiple
// callers without external mutual exclusion — see spec §5's
// single-threaded-per-Connection model.
type Connection struct {
	nc        net.Conn
	r         *bufio.Reader
	nextToken atomic.Uint64
	mu        sync.Mutex
	closed    bool
	closeOnce sync.Once
}

func newConnection(nc net.Conn) *Connection {
	return newConnectionWithReader(nc, bufio.NewReader(nc))
}

// newConnectionWithReader wraps nc in a Connection reusing r, the buffered
// reader the handshake already read through, so no bytes it pre-fetched
// are dropped.
func newConnectionWithReader(nc net.Conn, r *bufio.Reader) *Connection {
	return &Connection{nc: nc, r: r}
}

// sendQuery serialises q, writes a framed request, and returns its token.
// The token counter advances even if the write subsequently fails.
func (c *Connection) sendQuery(q interface{}) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, &ConnectionError{Err: fmt.Errorf("goreql: connection closed")}
	}

	body, err := json.Marshal(q)
	if err != nil {
		return 0, fmt.Errorf("goreql: encode query: %w", err)
	}
	token := c.nextToken.Add(1) - 1
	if err := protocol.WriteFrame(c.nc, token, body); err != nil {
		metrics.QueriesFailed.Inc()
		return token, &ConnectionError{Err: err}
	}
	metrics.QueriesSent.Inc()
	metrics.BytesWritten.Add(float64(len(body)))
	return token, nil
}

// recvResponse reads one framed reply and parses it as JSON.
func (c *Connection) recvResponse() (uint64, json.RawMessage, error) {
	token, body, err := protocol.ReadFrame(c.r)
	if err != nil {
		return 0, nil, &ConnectionError{Err: err}
	}
	metrics.BytesRead.Add(float64(len(body)))
	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return token, nil, &ConnectionError{Err: fmt.Errorf("goreql: decode reply: %w", err)}
	}
	return token, raw, nil
}

// Close closes the underlying TCP stream exactly once. It is safe to call
// multiple times; Go has no destructors, so Close is the substitute for
// "closing is triggered by dropping the Connection on all exit paths."
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()
		err = c.nc.Close()
		metrics.OpenConnections.Dec()
	})
	return err
}

// NoReplyWait sends a NOREPLY_WAIT query and blocks until the server
// confirms all previously issued noreply queries have completed.
func (c *Connection) NoReplyWait() error {
	token, err := c.sendQuery([]interface{}{int(QueryNoreplyWait)})
	if err != nil {
		return err
	}
	_, reply, err := c.recvResponse()
	if err != nil {
		return err
	}
	return checkReplyType(token, reply)
}

// ServerInfo sends a SERVER_INFO query and returns the raw server
// description document.
func (c *Connection) ServerInfo() (*ResultSet, error) {
	token, err := c.sendQuery([]interface{}{int(QueryServerInfo)})
	if err != nil {
		return nil, err
	}
	_, reply, err := c.recvResponse()
	if err != nil {
		return nil, err
	}
	if err := checkReplyType(token, reply); err != nil {
		return nil, err
	}
	return &ResultSet{token: token, raw: reply}, nil
}
