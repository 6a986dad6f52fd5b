package hostcall

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/risparfinance/camus"
	"github.com/risparfinance/camus/dataapi"
	"github.com/risparfinance/camus/internal/hoststatus"
	wapc "github.com/wapc/wapc-guest-tinygo"
)

const (
	capabilityName = "rdsdata"
	fnExecute      = "execute_statement"
	fnBegin        = "begin_transaction"
	fnCommit       = "commit_transaction"
	fnRollback     = "rollback_transaction"
)

var (
	// ErrInvalidQuery indicates an empty SQL statement.
	ErrInvalidQuery = errors.New("query is invalid")

	// ErrInvalidTransaction indicates a commit or rollback without a transaction id.
	ErrInvalidTransaction = errors.New("transaction id is invalid")

	// ErrMarshalRequest wraps failures while encoding the request payload.
	ErrMarshalRequest = errors.New("failed to marshal request")

	// ErrUnmarshalResponse wraps failures while decoding the host response.
	ErrUnmarshalResponse = errors.New("failed to unmarshal response")
)

// HostCall defines the waPC host function signature used by Data API operations.
type HostCall func(string, string, string, []byte) ([]byte, error)

// Config controls how a Client instance interacts with the host runtime.
type Config struct {
	// SDKConfig provides the runtime namespace used for host calls.
	SDKConfig camus.RuntimeConfig

	// HostCall overrides the waPC host function used for Data API operations.
	HostCall HostCall
}

// Client implements dataapi.API by forwarding JSON payloads to the host's
// rdsdata capability.
type Client struct {
	runtime  camus.RuntimeConfig
	hostCall HostCall
}

// Ensure Client satisfies the dataapi.API interface at compile time.
var _ dataapi.API = (*Client)(nil)

// status mirrors the status object every host response carries.
type status struct {
	Code   int32  `json:"code"`
	Status string `json:"status,omitempty"`
}

type envelope struct {
	Status *status `json:"status"`
}

// New creates a Data API client with namespace defaults and optional host-call override.
func New(config Config) (*Client, error) {
	hostCall := config.HostCall
	if hostCall == nil {
		hostCall = wapc.HostCall
	}

	return &Client{runtime: config.SDKConfig.WithDefaults(), hostCall: hostCall}, nil
}

// ExecuteStatement runs a statement through the host.
func (c *Client) ExecuteStatement(ctx context.Context, in *dataapi.ExecuteStatementInput) (*dataapi.ExecuteStatementOutput, error) {
	if in == nil || in.SQL == "" {
		return nil, ErrInvalidQuery
	}
	var out dataapi.ExecuteStatementOutput
	if err := c.call(ctx, fnExecute, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BeginTransaction starts a transaction through the host.
func (c *Client) BeginTransaction(ctx context.Context, in *dataapi.BeginTransactionInput) (*dataapi.BeginTransactionOutput, error) {
	var out dataapi.BeginTransactionOutput
	if err := c.call(ctx, fnBegin, in, &out); err != nil {
		return nil, err
	}
	if out.TransactionID == "" {
		return nil, errors.Join(camus.ErrHostResponseInvalid, ErrInvalidTransaction)
	}
	return &out, nil
}

// CommitTransaction commits a transaction through the host.
func (c *Client) CommitTransaction(ctx context.Context, in *dataapi.CommitTransactionInput) (*dataapi.CommitTransactionOutput, error) {
	if in == nil || in.TransactionID == "" {
		return nil, ErrInvalidTransaction
	}
	var out dataapi.CommitTransactionOutput
	if err := c.call(ctx, fnCommit, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RollbackTransaction rolls back a transaction through the host.
func (c *Client) RollbackTransaction(ctx context.Context, in *dataapi.RollbackTransactionInput) (*dataapi.RollbackTransactionOutput, error) {
	if in == nil || in.TransactionID == "" {
		return nil, ErrInvalidTransaction
	}
	var out dataapi.RollbackTransactionOutput
	if err := c.call(ctx, fnRollback, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// call encodes in, performs the host call and decodes the response into out
// after checking the host status.
func (c *Client) call(ctx context.Context, fn string, in, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b, err := json.Marshal(in)
	if err != nil {
		return errors.Join(ErrMarshalRequest, err)
	}

	respBytes, callErr := c.hostCall(c.runtime.Namespace, capabilityName, fn, b)
	if callErr != nil && len(respBytes) == 0 {
		return errors.Join(camus.ErrHostCall, callErr)
	}

	var env envelope
	if unmarshalErr := json.Unmarshal(respBytes, &env); unmarshalErr != nil {
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

	if statusErr := validateStatus(env.Status, callErr); statusErr != nil {
		return statusErr
	}

	if err := json.Unmarshal(respBytes, out); err != nil {
		return errors.Join(camus.ErrHostResponseInvalid, ErrUnmarshalResponse, err)
	}
	return nil
}

func validateStatus(st *status, callErr error) error {
	if st == nil {
		return hoststatus.Validate(0, "", false, callErr)
	}
	return hoststatus.Validate(st.Code, st.Status, true, callErr)
}
