package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/risparfinance/camus/dataapi"
)

func TestExecuteResponses(t *testing.T) {
	m := New(Config{})
	m.OnExecute("SELECT id FROM users").ReturnRows([]string{"id", "email"}, []any{1, "a@example.com"}, []any{2, nil})
	m.OnExecute("DELETE FROM users").ReturnUpdated(3)
	boom := errors.New("boom")
	m.OnExecute("SELECT broken").ReturnError(boom)
	ctx := context.Background()

	out, err := m.ExecuteStatement(ctx, &dataapi.ExecuteStatementInput{SQL: "SELECT id FROM users"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &dataapi.ExecuteStatementOutput{
		ColumnMetadata: []dataapi.ColumnMetadata{{Label: "id"}, {Label: "email"}},
		Records: [][]dataapi.Field{
			{dataapi.LongField(1), dataapi.StringField("a@example.com")},
			{dataapi.LongField(2), dataapi.NullField()},
		},
	}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}

	out, err = m.ExecuteStatement(ctx, &dataapi.ExecuteStatementInput{SQL: "DELETE FROM users"})
	if err != nil || out.HasRecords() || out.NumberOfRecordsUpdated != 3 {
		t.Fatalf("update mismatch: %+v %v", out, err)
	}

	if _, err := m.ExecuteStatement(ctx, &dataapi.ExecuteStatementInput{SQL: "SELECT broken"}); !errors.Is(err, boom) {
		t.Fatalf("expected %v got %v", boom, err)
	}

	out, err = m.ExecuteStatement(ctx, &dataapi.ExecuteStatementInput{SQL: "SELECT unknown"})
	if err != nil || !out.HasRecords() || len(out.Records) != 0 {
		t.Fatalf("unknown statement should return an empty row set: %+v %v", out, err)
	}

	if len(m.Calls) != 4 || m.Calls[0].SQL != "SELECT id FROM users" {
		t.Fatalf("calls not recorded: %+v", m.Calls)
	}
}

func TestReturnRowsUnsupportedValue(t *testing.T) {
	m := New(Config{})
	m.OnExecute("SELECT blob").ReturnRows([]string{"b"}, []any{[]byte("x")})

	_, err := m.ExecuteStatement(context.Background(), &dataapi.ExecuteStatementInput{SQL: "SELECT blob"})
	if !errors.Is(err, dataapi.ErrUnsupportedParameterType) {
		t.Fatalf("expected ErrUnsupportedParameterType, got %v", err)
	}
}

func TestTransactionLifecycle(t *testing.T) {
	m := New(Config{})
	ctx := context.Background()

	b1, err := m.BeginTransaction(ctx, &dataapi.BeginTransactionInput{})
	if err != nil || b1.TransactionID != "tx-1" {
		t.Fatalf("begin: %+v %v", b1, err)
	}
	b2, _ := m.BeginTransaction(ctx, &dataapi.BeginTransactionInput{})
	if b2.TransactionID != "tx-2" {
		t.Fatalf("want tx-2 got %q", b2.TransactionID)
	}
	if diff := cmp.Diff([]string{"tx-1", "tx-2"}, m.Open()); diff != "" {
		t.Fatalf("open mismatch (-want +got):\n%s", diff)
	}

	if _, err := m.ExecuteStatement(ctx, &dataapi.ExecuteStatementInput{SQL: "SELECT 1", TransactionID: "tx-1"}); err != nil {
		t.Fatalf("execute in transaction: %v", err)
	}
	if _, err := m.CommitTransaction(ctx, &dataapi.CommitTransactionInput{TransactionID: "tx-1"}); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if _, err := m.RollbackTransaction(ctx, &dataapi.RollbackTransactionInput{TransactionID: "tx-2"}); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if len(m.Open()) != 0 {
		t.Fatalf("expected no open transactions, got %v", m.Open())
	}

	if _, err := m.CommitTransaction(ctx, &dataapi.CommitTransactionInput{TransactionID: "tx-1"}); !errors.Is(err, ErrUnknownTransaction) {
		t.Fatalf("expected ErrUnknownTransaction, got %v", err)
	}
	if _, err := m.ExecuteStatement(ctx, &dataapi.ExecuteStatementInput{SQL: "SELECT 1", TransactionID: "tx-9"}); !errors.Is(err, ErrUnknownTransaction) {
		t.Fatalf("expected ErrUnknownTransaction, got %v", err)
	}

	want := []string{OpBegin, OpBegin, OpExecute, OpCommit, OpRollback, OpCommit, OpExecute}
	if diff := cmp.Diff(want, m.Ops()); diff != "" {
		t.Fatalf("ops mismatch (-want +got):\n%s", diff)
	}
}

func TestInjectedTransactionErrors(t *testing.T) {
	boom := errors.New("conflict")
	m := New(Config{TransactionPrefix: "txn-"}).OnCommit().ReturnError(boom)
	ctx := context.Background()

	b, err := m.BeginTransaction(ctx, &dataapi.BeginTransactionInput{})
	if err != nil || b.TransactionID != "txn-1" {
		t.Fatalf("begin: %+v %v", b, err)
	}
	if _, err := m.CommitTransaction(ctx, &dataapi.CommitTransactionInput{TransactionID: b.TransactionID}); !errors.Is(err, boom) {
		t.Fatalf("expected %v got %v", boom, err)
	}
	if diff := cmp.Diff([]string{"txn-1"}, m.Open()); diff != "" {
		t.Fatalf("failed commit should leave the transaction open (-want +got):\n%s", diff)
	}

	m.OnBegin().ReturnError(boom)
	if _, err := m.BeginTransaction(ctx, &dataapi.BeginTransactionInput{}); !errors.Is(err, boom) {
		t.Fatalf("expected %v got %v", boom, err)
	}
}

func TestCancelledContext(t *testing.T) {
	m := New(Config{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := m.ExecuteStatement(ctx, &dataapi.ExecuteStatementInput{SQL: "SELECT 1"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := m.BeginTransaction(ctx, &dataapi.BeginTransactionInput{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
