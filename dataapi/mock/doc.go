/*
Package mock provides an in-memory implementation of dataapi.API for tests.

Statements are answered from canned responses keyed by their SQL text, and
every call is recorded for assertions.

# Basic Usage

	m := mock.New(mock.Config{})
	m.OnExecute("SELECT id, email FROM users").
		ReturnRows([]string{"id", "email"}, []any{1, "a@example.com"}, []any{2, nil})
	m.OnExecute("DELETE FROM users").ReturnUpdated(2)

	db, _ := database.New(database.Config{API: m, SecretArn: "s", ResourceArn: "r", Database: "d"})

Statements without a configured response return an empty row set.

# Transactions

BeginTransaction hands out "tx-1", "tx-2" and so on. Commit and rollback of an
id that is not open fail with ErrUnknownTransaction. Failures can be injected
per operation:

	m.OnCommit().ReturnError(errors.New("conflict"))

# Inspecting Calls

	for _, c := range m.Calls {
		// c.Op, c.SQL, c.TransactionID, c.Parameters
	}
*/
package mock
