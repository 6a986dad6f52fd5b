/*
Package metrics creates counters, gauges and histograms through the host
runtime's metrics capability.

The database client uses it to count statements, time them and track
transaction outcomes. Each update is a protobuf payload sent over a waPC host
call.

Emission follows Prometheus-style ergonomics: Inc, Dec and Observe are
best-effort and do not return errors. Marshal or host-call failures are
swallowed. Handles from Nop() discard every update.
*/
package metrics
