package sqlcap

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/risparfinance/camus"
	"github.com/risparfinance/camus/dataapi"
	"github.com/risparfinance/camus/internal/hoststatus"
	sdkproto "github.com/tarmac-project/protobuf-go/sdk"
	proto "github.com/tarmac-project/protobuf-go/sdk/sql"
	wapc "github.com/wapc/wapc-guest-tinygo"
)

const (
	capabilityName = "sql"
	fnExec         = "exec"
	fnQuery        = "query"
)

var (
	// ErrInvalidQuery indicates an empty SQL statement.
	ErrInvalidQuery = errors.New("query is invalid")

	// ErrUnsupported indicates a feature the sql capability does not offer.
	ErrUnsupported = errors.New("not supported by the sql capability")

	// ErrMarshalRequest wraps failures while encoding the request payload.
	ErrMarshalRequest = errors.New("failed to marshal request")

	// ErrUnmarshalResponse wraps failures while decoding the host response.
	ErrUnmarshalResponse = errors.New("failed to unmarshal response")
)

var rowKeywords = map[string]bool{
	"select":   true,
	"with":     true,
	"show":     true,
	"explain":  true,
	"values":   true,
	"describe": true,
	"pragma":   true,
}

// HostCall defines the waPC host function signature used by SQL operations.
type HostCall func(string, string, string, []byte) ([]byte, error)

// Config controls how a Client instance interacts with the host runtime.
type Config struct {
	// SDKConfig provides the runtime namespace used for host calls.
	SDKConfig camus.RuntimeConfig

	// HostCall overrides the waPC host function used for SQL operations.
	HostCall HostCall
}

// Client is the sql capability transport.
type Client struct {
	runtime  camus.RuntimeConfig
	hostCall HostCall
}

var _ dataapi.API = (*Client)(nil)

// New creates a sql capability client.
func New(config Config) (*Client, error) {
	hostCall := config.HostCall
	if hostCall == nil {
		hostCall = wapc.HostCall
	}

	return &Client{runtime: config.SDKConfig.WithDefaults(), hostCall: hostCall}, nil
}

// ReturnsRows reports whether sql is sent to the query function: its first
// keyword reads rows, or it has a RETURNING clause outside parentheses.
// Comments and quoted text are skipped.
func ReturnsRows(sql string) bool {
	rows, first := false, true
	words(sql, func(word string, depth int) bool {
		word = strings.ToLower(word)
		if first {
			first = false
			rows = rowKeywords[word]
			return !rows
		}
		if depth == 0 && word == "returning" {
			rows = true
			return false
		}
		return true
	})
	return rows
}

// words calls fn with each bare word of sql and its parenthesis depth until
// fn returns false.
func words(sql string, fn func(word string, depth int) bool) {
	depth := 0
	for i := 0; i < len(sql); {
		c := sql[i]
		switch {
		case strings.HasPrefix(sql[i:], "--"):
			j := strings.IndexByte(sql[i:], '\n')
			if j < 0 {
				return
			}
			i += j + 1
		case strings.HasPrefix(sql[i:], "/*"):
			j := strings.Index(sql[i+2:], "*/")
			if j < 0 {
				return
			}
			i += j + 4
		case c == '\'' || c == '"' || c == '`':
			j := strings.IndexByte(sql[i+1:], c)
			if j < 0 {
				return
			}
			i += j + 2
		case c == '(':
			depth++
			i++
		case c == ')':
			if depth > 0 {
				depth--
			}
			i++
		case isWordByte(c):
			j := i
			for j < len(sql) && isWordByte(sql[j]) {
				j++
			}
			if c < '0' || c > '9' {
				if !fn(sql[i:j], depth) {
					return
				}
			}
			i = j
		default:
			i++
		}
	}
}

func isWordByte(c byte) bool {
	return c == '_' || c >= 0x80 ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// ExecuteStatement runs a statement through the host.
func (c *Client) ExecuteStatement(ctx context.Context, in *dataapi.ExecuteStatementInput) (*dataapi.ExecuteStatementOutput, error) {
	if in == nil || strings.TrimSpace(in.SQL) == "" {
		return nil, ErrInvalidQuery
	}
	if len(in.Parameters) > 0 {
		return nil, fmt.Errorf("%w: parameters", ErrUnsupported)
	}
	if in.TransactionID != "" {
		return nil, fmt.Errorf("%w: transactions", ErrUnsupported)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if ReturnsRows(in.SQL) {
		return c.query(in.SQL)
	}
	return c.exec(in.SQL)
}

func (c *Client) exec(query string) (*dataapi.ExecuteStatementOutput, error) {
	b, err := (&proto.SQLExec{Query: []byte(query)}).MarshalVT()
	if err != nil {
		return nil, errors.Join(ErrMarshalRequest, err)
	}

	respBytes, callErr := c.hostCall(c.runtime.Namespace, capabilityName, fnExec, b)
	if callErr != nil && len(respBytes) == 0 {
		return nil, errors.Join(camus.ErrHostCall, callErr)
	}

	var resp proto.SQLExecResponse
	if unmarshalErr := resp.UnmarshalVT(respBytes); unmarshalErr != nil {
		return nil, responseError(callErr, unmarshalErr)
	}
	if statusErr := validateStatus(resp.GetStatus(), callErr); statusErr != nil {
		return nil, statusErr
	}

	return &dataapi.ExecuteStatementOutput{NumberOfRecordsUpdated: resp.GetRowsAffected()}, nil
}

func (c *Client) query(query string) (*dataapi.ExecuteStatementOutput, error) {
	b, err := (&proto.SQLQuery{Query: []byte(query)}).MarshalVT()
	if err != nil {
		return nil, errors.Join(ErrMarshalRequest, err)
	}

	respBytes, callErr := c.hostCall(c.runtime.Namespace, capabilityName, fnQuery, b)
	if callErr != nil && len(respBytes) == 0 {
		return nil, errors.Join(camus.ErrHostCall, callErr)
	}

	var resp proto.SQLQueryResponse
	if unmarshalErr := resp.UnmarshalVT(respBytes); unmarshalErr != nil {
		return nil, responseError(callErr, unmarshalErr)
	}
	if statusErr := validateStatus(resp.GetStatus(), callErr); statusErr != nil {
		return nil, statusErr
	}

	columns := resp.GetColumns()
	rows, err := decodeRows(columns, resp.GetData())
	if err != nil {
		return nil, errors.Join(camus.ErrHostResponseInvalid, ErrUnmarshalResponse, err)
	}

	out := &dataapi.ExecuteStatementOutput{Records: rows}
	for _, col := range columns {
		out.ColumnMetadata = append(out.ColumnMetadata, dataapi.ColumnMetadata{Label: col})
	}
	return out, nil
}

// decodeRows turns the JSON row objects into wire rows in column order.
func decodeRows(columns []string, data []byte) ([][]dataapi.Field, error) {
	rows := [][]dataapi.Field{}
	if len(bytes.TrimSpace(data)) == 0 {
		return rows, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var objs []map[string]any
	if err := dec.Decode(&objs); err != nil {
		return nil, err
	}

	for i, obj := range objs {
		row := make([]dataapi.Field, len(columns))
		for j, col := range columns {
			f, err := toField(obj[col])
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", i, col, err)
			}
			row[j] = f
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func toField(v any) (dataapi.Field, error) {
	switch v := v.(type) {
	case nil:
		return dataapi.NullField(), nil
	case string:
		return dataapi.StringField(v), nil
	case bool:
		return dataapi.BooleanField(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return dataapi.LongField(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return dataapi.Field{}, fmt.Errorf("%w: number %s", dataapi.ErrUnsupportedField, v)
		}
		return dataapi.DoubleField(f), nil
	default:
		return dataapi.Field{}, fmt.Errorf("%w: %T", dataapi.ErrUnsupportedField, v)
	}
}

// BeginTransaction is not offered by the sql capability.
func (c *Client) BeginTransaction(context.Context, *dataapi.BeginTransactionInput) (*dataapi.BeginTransactionOutput, error) {
	return nil, fmt.Errorf("%w: transactions", ErrUnsupported)
}

// CommitTransaction is not offered by the sql capability.
func (c *Client) CommitTransaction(context.Context, *dataapi.CommitTransactionInput) (*dataapi.CommitTransactionOutput, error) {
	return nil, fmt.Errorf("%w: transactions", ErrUnsupported)
}

// RollbackTransaction is not offered by the sql capability.
func (c *Client) RollbackTransaction(context.Context, *dataapi.RollbackTransactionInput) (*dataapi.RollbackTransactionOutput, error) {
	return nil, fmt.Errorf("%w: transactions", ErrUnsupported)
}

func responseError(callErr, unmarshalErr error) error {
	if callErr != nil {
		return errors.Join(
			camus.ErrHostCall,
			callErr,
			camus.ErrHostResponseInvalid,
			ErrUnmarshalResponse,
			unmarshalErr,
		)
	}
	return errors.Join(camus.ErrHostResponseInvalid, ErrUnmarshalResponse, unmarshalErr)
}

func validateStatus(status *sdkproto.Status, callErr error) error {
	if status == nil {
		return hoststatus.Validate(0, "", false, callErr)
	}
	return hoststatus.Validate(status.GetCode(), status.GetStatus(), true, callErr)
}
