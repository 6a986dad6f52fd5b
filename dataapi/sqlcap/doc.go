/*
Package sqlcap implements the statement half of dataapi.API on the host
runtime's generic "sql" capability.

Use it when the host exposes a plain SQL connection instead of the rdsdata
capability. Statements are sent as protobuf payloads (SQLQuery or SQLExec).
Statements whose first keyword reads rows (SELECT, WITH, SHOW, EXPLAIN,
VALUES, DESCRIBE, PRAGMA), or that carry a RETURNING clause, go to "query".
Everything else goes to "exec". Leading comments are skipped. Query
responses carry the column names plus a JSON array of row objects; each row is
decoded into wire fields in column order, with missing keys read as null.

The capability has no parameters and no transactions. Statements with
parameters or a transaction id, and every transaction call, fail with
ErrUnsupported.
*/
package sqlcap
