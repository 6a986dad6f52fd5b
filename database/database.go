package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/risparfinance/camus/dataapi"
	"github.com/risparfinance/camus/logging"
	"github.com/risparfinance/camus/metrics"
	"github.com/risparfinance/camus/record"
)

// UpdatedColumn names the single column of the record returned for
// statements that change rows without returning any.
const UpdatedColumn = "records_updated"

// Config identifies the remote database and the transport used to reach it.
type Config struct {
	// SecretArn references the credentials used to connect.
	SecretArn string

	// ResourceArn references the database cluster.
	ResourceArn string

	// Database is the database name.
	Database string

	// API performs the remote calls, typically a hostcall.Client or rds.API.
	API dataapi.API

	// Logger receives a Debug line per statement and transaction phase.
	// Defaults to logging.Nop().
	Logger logging.Client

	// Metrics reports statement and transaction metrics. Defaults to
	// metrics.Nop().
	Metrics metrics.Client
}

// Database issues statements against one remote database. Calls are made
// serially by the caller; the tracked transaction id is safe to read from
// any goroutine.
type Database struct {
	secretArn   string
	resourceArn string
	database    string
	api         dataapi.API
	log         logging.Client
	inst        instruments

	mu   sync.Mutex
	busy bool
	txID string
}

// New validates cfg and returns a Database.
func New(cfg Config) (*Database, error) {
	switch {
	case cfg.API == nil:
		return nil, fmt.Errorf("%w: API is required", ErrInvalidConfig)
	case cfg.SecretArn == "":
		return nil, fmt.Errorf("%w: SecretArn is required", ErrInvalidConfig)
	case cfg.ResourceArn == "":
		return nil, fmt.Errorf("%w: ResourceArn is required", ErrInvalidConfig)
	case cfg.Database == "":
		return nil, fmt.Errorf("%w: Database is required", ErrInvalidConfig)
	}

	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}
	m := cfg.Metrics
	if m == nil {
		m = metrics.Nop()
	}
	inst, err := newInstruments(m)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	return &Database{
		secretArn:   cfg.SecretArn,
		resourceArn: cfg.ResourceArn,
		database:    cfg.Database,
		api:         cfg.API,
		log:         log,
		inst:        inst,
	}, nil
}

// Name returns the database name.
func (d *Database) Name() string { return d.database }

// TransactionID returns the id of the open transaction, or "" outside one.
func (d *Database) TransactionID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.txID
}

// Execute runs sql with the named params and returns the result lazily. Rows
// are converted to records as the collection reaches them, so a malformed
// wire row surfaces from the collection rather than from Execute.
//
// Params are tagged for the wire by their Go type; see dataapi.Parameters.
// Inside Transaction the statement joins the open transaction.
func (d *Database) Execute(ctx context.Context, sql string, params map[string]any) (*record.Collection, error) {
	wire, err := dataapi.Parameters(params)
	if err != nil {
		return nil, err
	}

	txID := d.TransactionID()
	if txID != "" {
		d.log.Debug(fmt.Sprintf("camus: execute in transaction %s: %s", txID, sql))
	} else {
		d.log.Debug("camus: execute: " + sql)
	}

	start := time.Now()
	out, err := d.api.ExecuteStatement(ctx, &dataapi.ExecuteStatementInput{
		SecretArn:             d.secretArn,
		ResourceArn:           d.resourceArn,
		Database:              d.database,
		SQL:                   sql,
		Parameters:            wire,
		TransactionID:         txID,
		IncludeResultMetadata: true,
	})
	d.inst.statements.Inc()
	d.inst.duration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	return collect(out)
}

// ExecuteAll is Execute followed by draining the collection, so every row is
// converted before it returns.
func (d *Database) ExecuteAll(ctx context.Context, sql string, params map[string]any) (*record.Collection, error) {
	rows, err := d.Execute(ctx, sql, params)
	if err != nil {
		return nil, err
	}
	if _, err := rows.All(); err != nil {
		return nil, err
	}
	return rows, nil
}

// collect adapts a statement response into a collection.
func collect(out *dataapi.ExecuteStatementOutput) (*record.Collection, error) {
	if out == nil {
		return nil, ErrEmptyResponse
	}
	if !out.HasRecords() {
		rec, err := record.New([]string{UpdatedColumn}, []record.Value{record.Integer(out.NumberOfRecordsUpdated)})
		if err != nil {
			return nil, err
		}
		return record.Snapshot(rec), nil
	}

	keys := out.Columns()
	rows := out.Records
	next := 0
	return record.NewCollection(record.SourceFunc(func() (*record.Record, error) {
		if next >= len(rows) {
			return nil, record.ErrExhausted
		}
		i := next
		values, err := dataapi.RowValues(rows[i])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		rec, err := record.New(keys, values)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		next++
		return rec, nil
	})), nil
}

// Transaction runs fn inside a remote transaction. fn receives the
// transaction id; statements executed through d while fn runs join the
// transaction.
//
// The transaction commits when fn returns nil. It rolls back when fn returns
// an error, when fn panics (the panic continues after the rollback), when
// fn exits the goroutine through runtime.Goexit, or when the commit itself
// fails. Rollback failures are joined to the original
// error. The tracked id is cleared on every exit. Transactions do not nest:
// calling Transaction while one is open returns ErrTransactionInProgress.
func (d *Database) Transaction(ctx context.Context, fn func(ctx context.Context, txID string) error) error {
	d.mu.Lock()
	if d.busy {
		d.mu.Unlock()
		return ErrTransactionInProgress
	}
	d.busy = true
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.busy = false
		d.txID = ""
		d.mu.Unlock()
	}()

	begin, err := d.api.BeginTransaction(ctx, &dataapi.BeginTransactionInput{
		SecretArn:   d.secretArn,
		ResourceArn: d.resourceArn,
		Database:    d.database,
	})
	if err != nil {
		return err
	}
	id := begin.TransactionID

	d.mu.Lock()
	d.txID = id
	d.mu.Unlock()

	d.inst.open.Inc()
	defer d.inst.open.Dec()
	d.log.Debug("camus: begin transaction " + id)

	finished := false
	defer func() {
		if !finished {
			_ = d.rollback(ctx, id)
		}
	}()

	err = fn(ctx, id)
	finished = true
	if err != nil {
		return d.abort(ctx, id, err)
	}

	if _, err := d.api.CommitTransaction(ctx, &dataapi.CommitTransactionInput{
		SecretArn:     d.secretArn,
		ResourceArn:   d.resourceArn,
		TransactionID: id,
	}); err != nil {
		return d.abort(ctx, id, err)
	}
	d.inst.committed.Inc()
	d.log.Debug("camus: commit transaction " + id)
	return nil
}

func (d *Database) abort(ctx context.Context, id string, cause error) error {
	if err := d.rollback(ctx, id); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

// rollback runs even when ctx is already cancelled.
func (d *Database) rollback(ctx context.Context, id string) error {
	d.inst.rolledBack.Inc()
	d.log.Debug("camus: rollback transaction " + id)
	_, err := d.api.RollbackTransaction(context.WithoutCancel(ctx), &dataapi.RollbackTransactionInput{
		SecretArn:     d.secretArn,
		ResourceArn:   d.resourceArn,
		TransactionID: id,
	})
	return err
}
