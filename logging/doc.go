/*
Package logging sends log lines to the host runtime's logging capability.

The database client logs each statement and transaction phase at Debug level
through a Client. Pass Nop() to discard output, or use New to emit through
the host:

	logger, _ := logging.New(logging.Config{})
	db, _ := database.New(database.Config{Logger: logger, ...})

Logging is best-effort. Host-call failures are ignored and never reach the
caller.
*/
package logging
