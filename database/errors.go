package database

import "errors"

var (
	// ErrInvalidConfig indicates a missing identifier or transport.
	ErrInvalidConfig = errors.New("database config is invalid")

	// ErrTransactionInProgress is returned by Transaction while another
	// transaction is open on the same Database.
	ErrTransactionInProgress = errors.New("transaction already in progress")

	// ErrEmptyResponse is returned when the API reports success without a
	// statement response.
	ErrEmptyResponse = errors.New("statement response is missing")
)
