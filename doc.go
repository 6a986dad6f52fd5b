/*
Package camus provides a records-style API over a remote SQL Data API such as
the Aurora Serverless Data API.

Statements are sent through a database.Database, which returns results as a
record.Collection: a lazily consumed, memoizing sequence of record.Record
values that can be iterated any number of times, indexed, and sliced while
only pulling the rows each request needs.

The root package holds configuration and errors shared by the host capability
clients (dataapi/hostcall, logging, metrics). DefaultNamespace is used when a
namespace is not explicitly provided.
*/
package camus
