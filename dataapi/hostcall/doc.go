/*
Package hostcall implements dataapi.API on top of a waPC host capability.

Each API method is sent to the host's "rdsdata" capability as a JSON payload
(execute_statement, begin_transaction, commit_transaction,
rollback_transaction); the host performs the remote call and answers with the
JSON response plus a status object:

	{"status": {"code": 200, "status": "OK"}, "numberOfRecordsUpdated": 1}

Status codes 200 and 206 are successes. 400, 404 and 500 surface as
camus.ErrHostError; anything else, or a missing status, as
camus.ErrHostResponseInvalid. Errors use sentinel values joined with the
underlying cause and can be checked with errors.Is.

The rdsdata capability is not one of the stock Tarmac host capabilities. The
host must register it and implement this contract, typically by forwarding
each payload to the RDS Data API. Against a host without it, use
dataapi/sqlcap or dataapi/rds instead.

Zero-value Config options fall back to camus.DefaultNamespace and the default
waPC host call. Tests can inject Config.HostCall, typically from hostmock.
*/
package hostcall
