package database

import (
	"errors"

	"github.com/risparfinance/camus/metrics"
)

// Metric names reported through Config.Metrics.
const (
	MetricStatements           = "camus_statements_total"
	MetricStatementDuration    = "camus_statement_duration_seconds"
	MetricTransactionsOpen     = "camus_transactions_open"
	MetricTransactionsCommit   = "camus_transactions_committed_total"
	MetricTransactionsRollback = "camus_transactions_rolled_back_total"
)

type instruments struct {
	statements *metrics.Counter
	duration   *metrics.Histogram
	open       *metrics.Gauge
	committed  *metrics.Counter
	rolledBack *metrics.Counter
}

func newInstruments(m metrics.Client) (instruments, error) {
	var (
		inst instruments
		errs []error
		err  error
	)
	inst.statements, err = m.NewCounter(MetricStatements)
	errs = append(errs, err)
	inst.duration, err = m.NewHistogram(MetricStatementDuration)
	errs = append(errs, err)
	inst.open, err = m.NewGauge(MetricTransactionsOpen)
	errs = append(errs, err)
	inst.committed, err = m.NewCounter(MetricTransactionsCommit)
	errs = append(errs, err)
	inst.rolledBack, err = m.NewCounter(MetricTransactionsRollback)
	errs = append(errs, err)
	return inst, errors.Join(errs...)
}
