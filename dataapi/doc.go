/*
Package dataapi describes the remote SQL execution endpoint used by
database.Database: the API interface, its request and response payloads, and
the tagged Field form in which scalars travel on the wire.

Parameters are sent as

	{"name": "id", "value": {"longValue": 42}}

with one of stringValue, longValue, booleanValue, doubleValue or isNull
(always true) per value. Parameters builds that list from a map of Go values,
and Field.Value turns returned fields back into record values, mapping the
null marker to record.Null.

Transports live in subpackages: hostcall sends the payloads to a waPC host,
rds calls the AWS RDS Data API directly, and mock is a scripted in-memory
implementation for tests.
*/
package dataapi
