package mock

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/risparfinance/camus/dataapi"
	"github.com/risparfinance/camus/record"
)

// Operation names recorded in Call.Op.
const (
	OpExecute  = "EXECUTE"
	OpBegin    = "BEGIN"
	OpCommit   = "COMMIT"
	OpRollback = "ROLLBACK"
)

// ErrUnknownTransaction is returned when committing or rolling back an id
// that is not open.
var ErrUnknownTransaction = errors.New("unknown transaction")

// Config configures the mock client.
type Config struct {
	// TransactionPrefix prefixes generated transaction ids. Defaults to "tx-".
	TransactionPrefix string
}

// Response describes a configured outcome.
type Response struct {
	// Output is returned by EXECUTE.
	Output *dataapi.ExecuteStatementOutput
	// Err is returned instead of Output.
	Err error
}

// ResponseBuilder allows fluent configuration of responses.
type ResponseBuilder struct {
	m   *Client
	key string
}

// ReturnRows answers the statement with the given columns and rows. Row
// values are converted with record.ValueOf; an unsupported value turns the
// response into an ErrUnsupportedParameterType failure.
func (b *ResponseBuilder) ReturnRows(columns []string, rows ...[]any) *ResponseBuilder {
	out := &dataapi.ExecuteStatementOutput{Records: make([][]dataapi.Field, 0, len(rows))}
	for _, c := range columns {
		out.ColumnMetadata = append(out.ColumnMetadata, dataapi.ColumnMetadata{Label: c})
	}

	var err error
	for i, row := range rows {
		fields := make([]dataapi.Field, len(row))
		for j, raw := range row {
			v, verr := record.ValueOf(raw)
			if verr != nil {
				err = fmt.Errorf("%w: row %d column %d: %w", dataapi.ErrUnsupportedParameterType, i, j, verr)
				break
			}
			fields[j] = dataapi.FieldFromValue(v)
		}
		out.Records = append(out.Records, fields)
	}

	b.m.set(b.key, Response{Output: out, Err: err})
	return b
}

// ReturnUpdated answers the statement with an update count and no rows.
func (b *ResponseBuilder) ReturnUpdated(n int64) *ResponseBuilder {
	b.m.set(b.key, Response{Output: &dataapi.ExecuteStatementOutput{NumberOfRecordsUpdated: n}})
	return b
}

// ReturnOutput answers the statement with out as is.
func (b *ResponseBuilder) ReturnOutput(out *dataapi.ExecuteStatementOutput) *ResponseBuilder {
	b.m.set(b.key, Response{Output: out})
	return b
}

// ReturnError fails the configured operation with err.
func (b *ResponseBuilder) ReturnError(err error) *Client {
	b.m.mu.Lock()
	r := b.m.responses[b.key]
	r.Err = err
	b.m.responses[b.key] = r
	b.m.mu.Unlock()
	return b.m
}

// Call records an operation performed against the mock.
type Call struct {
	Op            string
	SQL           string
	TransactionID string
	Parameters    []dataapi.SQLParameter
}

// Client implements dataapi.API for tests.
type Client struct {
	mu        sync.Mutex
	prefix    string
	seq       int
	open      map[string]bool
	responses map[string]Response

	// Calls stores a history of operations for assertions.
	Calls []Call
}

var _ dataapi.API = (*Client)(nil)

// New creates a new mock client.
func New(cfg Config) *Client {
	prefix := cfg.TransactionPrefix
	if prefix == "" {
		prefix = "tx-"
	}
	return &Client{
		prefix:    prefix,
		open:      make(map[string]bool),
		responses: make(map[string]Response),
		Calls:     []Call{},
	}
}

// OnExecute configures the response for a statement.
func (m *Client) OnExecute(sql string) *ResponseBuilder {
	return &ResponseBuilder{m: m, key: OpExecute + " " + sql}
}

// OnBegin configures BeginTransaction.
func (m *Client) OnBegin() *ResponseBuilder { return &ResponseBuilder{m: m, key: OpBegin} }

// OnCommit configures CommitTransaction.
func (m *Client) OnCommit() *ResponseBuilder { return &ResponseBuilder{m: m, key: OpCommit} }

// OnRollback configures RollbackTransaction.
func (m *Client) OnRollback() *ResponseBuilder { return &ResponseBuilder{m: m, key: OpRollback} }

// Open reports the transaction ids currently open.
func (m *Client) Open() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.open))
	for i := 1; i <= m.seq; i++ {
		if id := fmt.Sprintf("%s%d", m.prefix, i); m.open[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

// Ops returns the recorded operation names in call order.
func (m *Client) Ops() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ops := make([]string, len(m.Calls))
	for i, c := range m.Calls {
		ops[i] = c.Op
	}
	return ops
}

func (m *Client) set(key string, r Response) {
	m.mu.Lock()
	m.responses[key] = r
	m.mu.Unlock()
}

func (m *Client) record(c Call) {
	m.mu.Lock()
	m.Calls = append(m.Calls, c)
	m.mu.Unlock()
}

// ExecuteStatement implements dataapi.API.
func (m *Client) ExecuteStatement(ctx context.Context, in *dataapi.ExecuteStatementInput) (*dataapi.ExecuteStatementOutput, error) {
	m.record(Call{
		Op:            OpExecute,
		SQL:           in.SQL,
		TransactionID: in.TransactionID,
		Parameters:    append([]dataapi.SQLParameter(nil), in.Parameters...),
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if in.TransactionID != "" && !m.open[in.TransactionID] {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTransaction, in.TransactionID)
	}
	r, ok := m.responses[OpExecute+" "+in.SQL]
	if !ok {
		return &dataapi.ExecuteStatementOutput{Records: [][]dataapi.Field{}}, nil
	}
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Output, nil
}

// BeginTransaction implements dataapi.API.
func (m *Client) BeginTransaction(ctx context.Context, _ *dataapi.BeginTransactionInput) (*dataapi.BeginTransactionOutput, error) {
	m.record(Call{Op: OpBegin})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if r := m.responses[OpBegin]; r.Err != nil {
		return nil, r.Err
	}
	m.seq++
	id := fmt.Sprintf("%s%d", m.prefix, m.seq)
	m.open[id] = true
	return &dataapi.BeginTransactionOutput{TransactionID: id}, nil
}

// CommitTransaction implements dataapi.API.
func (m *Client) CommitTransaction(ctx context.Context, in *dataapi.CommitTransactionInput) (*dataapi.CommitTransactionOutput, error) {
	if err := m.finish(ctx, OpCommit, in.TransactionID); err != nil {
		return nil, err
	}
	return &dataapi.CommitTransactionOutput{TransactionStatus: "Transaction Committed"}, nil
}

// RollbackTransaction implements dataapi.API.
func (m *Client) RollbackTransaction(ctx context.Context, in *dataapi.RollbackTransactionInput) (*dataapi.RollbackTransactionOutput, error) {
	if err := m.finish(ctx, OpRollback, in.TransactionID); err != nil {
		return nil, err
	}
	return &dataapi.RollbackTransactionOutput{TransactionStatus: "Rollback Complete"}, nil
}

// finish closes id. A configured error leaves the transaction open.
func (m *Client) finish(ctx context.Context, op, id string) error {
	m.record(Call{Op: op, TransactionID: id})
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if r := m.responses[op]; r.Err != nil {
		return r.Err
	}
	if !m.open[id] {
		return fmt.Errorf("%w: %q", ErrUnknownTransaction, id)
	}
	delete(m.open, id)
	return nil
}
