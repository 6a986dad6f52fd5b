package dataapi

import "context"

// API is the remote SQL execution endpoint. Implementations make one
// blocking remote call per method and return remote failures unchanged.
type API interface {
	// ExecuteStatement runs a single SQL statement.
	ExecuteStatement(ctx context.Context, in *ExecuteStatementInput) (*ExecuteStatementOutput, error)

	// BeginTransaction starts a transaction and returns its identifier.
	BeginTransaction(ctx context.Context, in *BeginTransactionInput) (*BeginTransactionOutput, error)

	// CommitTransaction commits the transaction named in the input.
	CommitTransaction(ctx context.Context, in *CommitTransactionInput) (*CommitTransactionOutput, error)

	// RollbackTransaction rolls back the transaction named in the input.
	RollbackTransaction(ctx context.Context, in *RollbackTransactionInput) (*RollbackTransactionOutput, error)
}

// ExecuteStatementInput is the request payload of ExecuteStatement.
type ExecuteStatementInput struct {
	// SecretArn references the credentials used to connect.
	SecretArn string `json:"secretArn"`
	// ResourceArn references the database cluster.
	ResourceArn string `json:"resourceArn"`
	// Database is the database name.
	Database string `json:"database"`
	// SQL is the statement text.
	SQL string `json:"sql"`
	// Parameters are the named statement parameters, if any.
	Parameters []SQLParameter `json:"parameters,omitempty"`
	// TransactionID runs the statement inside an open transaction when set.
	TransactionID string `json:"transactionId,omitempty"`
	// IncludeResultMetadata asks for column metadata alongside the rows.
	IncludeResultMetadata bool `json:"includeResultMetadata"`
}

// ColumnMetadata describes one result column.
type ColumnMetadata struct {
	Label string `json:"label"`
}

// ExecuteStatementOutput is the response payload of ExecuteStatement. A
// statement that produces rows sets Records (possibly empty); one that only
// changes rows leaves Records nil and reports NumberOfRecordsUpdated.
type ExecuteStatementOutput struct {
	ColumnMetadata         []ColumnMetadata `json:"columnMetadata,omitempty"`
	Records                [][]Field        `json:"records"`
	NumberOfRecordsUpdated int64            `json:"numberOfRecordsUpdated"`
}

// HasRecords reports whether the response carried row data.
func (o *ExecuteStatementOutput) HasRecords() bool { return o.Records != nil }

// Columns returns the column labels in result order.
func (o *ExecuteStatementOutput) Columns() []string {
	cols := make([]string, len(o.ColumnMetadata))
	for i, m := range o.ColumnMetadata {
		cols[i] = m.Label
	}
	return cols
}

// BeginTransactionInput is the request payload of BeginTransaction.
type BeginTransactionInput struct {
	SecretArn   string `json:"secretArn"`
	ResourceArn string `json:"resourceArn"`
	Database    string `json:"database"`
}

// BeginTransactionOutput is the response payload of BeginTransaction.
type BeginTransactionOutput struct {
	TransactionID string `json:"transactionId"`
}

// CommitTransactionInput is the request payload of CommitTransaction.
type CommitTransactionInput struct {
	SecretArn     string `json:"secretArn"`
	ResourceArn   string `json:"resourceArn"`
	TransactionID string `json:"transactionId"`
}

// CommitTransactionOutput is the response payload of CommitTransaction.
type CommitTransactionOutput struct {
	TransactionStatus string `json:"transactionStatus,omitempty"`
}

// RollbackTransactionInput is the request payload of RollbackTransaction.
type RollbackTransactionInput struct {
	SecretArn     string `json:"secretArn"`
	ResourceArn   string `json:"resourceArn"`
	TransactionID string `json:"transactionId"`
}

// RollbackTransactionOutput is the response payload of RollbackTransaction.
type RollbackTransactionOutput struct {
	TransactionStatus string `json:"transactionStatus,omitempty"`
}
