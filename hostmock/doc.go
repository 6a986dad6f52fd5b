/*
Package hostmock provides a pretend waPC host for tests.

It lets the capability clients in this module (dataapi/hostcall, logging,
metrics) be exercised end to end at the wire level without a real host: calls
are checked against the expected namespace and capability, answered by a
per-function Handler or a single canned Response, and recorded for later
assertions.

Quick start

	m, _ := hostmock.New(hostmock.Config{
	  ExpectedNamespace:  "tarmac",
	  ExpectedCapability: "rdsdata",
	  Handlers: map[string]hostmock.Handler{
	    "begin_transaction":  func(p []byte) ([]byte, error) { return []byte(`{"transactionId":"tx-1","status":{"code":200}}`), nil },
	    "execute_statement":  executeHandler,
	    "commit_transaction": okHandler,
	  },
	})

	client, _ := hostcall.New(hostcall.Config{HostCall: m.HostCall})

Behavior

  - Every call is recorded first; see Calls and Functions.
  - If Fail is true, HostCall returns Error, or ErrOperationFailed when Error is nil.
  - Non-empty ExpectedNamespace and ExpectedCapability are enforced.
  - With Handlers set, the handler for the function answers the call and
    unknown functions fail with ErrUnexpectedFunction.
  - Otherwise ExpectedFunction (when set) is enforced, PayloadValidator runs,
    and Response (when set) provides the return bytes.
*/
package hostmock
