package iskwet

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Lookup operations and their outcome labels.
const (
	opGet          = "get"
	opByDefinition = "by_definition"

	statusOK       = "ok"
	statusNotFound = "not_found"
	statusInvalid  = "invalid"
	statusError    = "error"
)

var (
	operations = []string{opGet, opByDefinition}
	statuses   = []string{statusOK, statusNotFound, statusInvalid, statusError}
)

// statusOf maps a lookup error to its outcome label.
func statusOf(err error) string {
	switch {
	case err == nil:
		return statusOK
	case errors.Is(err, ErrWordNotFound):
		return statusNotFound
	case errors.Is(err, ErrInvalidQuery):
		return statusInvalid
	default:
		return statusError
	}
}

// opMetrics holds the series of one operation, bound once so a lookup never resolves labels.
type opMetrics struct {
	byStatus map[string]prometheus.Counter
	duration prometheus.Observer
}

// newOpMetrics registers the client collectors on reg and binds every operation/status pair.
// Every pair is exported from the start, zero until the first lookup.
func newOpMetrics(reg prometheus.Registerer) (map[string]*opMetrics, error) {
	counter, err := registerVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "iskwet",
		Subsystem: "client",
		Name:      "operations_total",
		Help:      "Total client lookups by operation and status.",
	}, []string{"operation", "status"}))
	if err != nil {
		return nil, err
	}
	histogram, err := registerVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "iskwet",
		Subsystem: "client",
		Name:      "operation_duration_seconds",
		Help:      "Client lookup duration in seconds.",
		Buckets:   []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
	}, []string{"operation"}))
	if err != nil {
		return nil, err
	}

	ops := make(map[string]*opMetrics, len(operations))
	for _, op := range operations {
		m := &opMetrics{
			byStatus: make(map[string]prometheus.Counter, len(statuses)),
			duration: histogram.WithLabelValues(op),
		}
		for _, st := range statuses {
			m.byStatus[st] = counter.WithLabelValues(op, st)
		}
		ops[op] = m
	}
	return ops, nil
}

// registerVec registers v, or returns the collector of the same shape that reg already holds,
// so several clients can share one registry.
func registerVec[V *prometheus.CounterVec | *prometheus.HistogramVec](reg prometheus.Registerer, v V) (V, error) {
	err := reg.Register(prometheus.Collector(v))
	if err == nil {
		return v, nil
	}
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		return nil, fmt.Errorf("iskwet: register client metrics: %w", err)
	}
	existing, ok := are.ExistingCollector.(V)
	if !ok {
		return nil, fmt.Errorf("iskwet: client metric registered as %T", are.ExistingCollector)
	}
	return existing, nil
}

// observer logs and counts lookups. A nil observer, or one with neither sink, does nothing.
type observer struct {
	logger *slog.Logger
	ops    map[string]*opMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg != nil {
		ops, err := newOpMetrics(reg)
		if err != nil {
			return nil, err
		}
		o.ops = ops
	}
	return o, nil
}

func (o *observer) observe(op string, start time.Time, err error) {
	if o == nil {
		return
	}
	dur := time.Since(start)
	status := statusOf(err)

	if m, ok := o.ops[op]; ok {
		m.byStatus[status].Inc()
		m.duration.Observe(dur.Seconds())
	}

	if o.logger == nil {
		return
	}
	switch status {
	case statusOK, statusNotFound:
		o.logger.Debug("lookup completed", "op", op, "status", status, "duration", dur)
	default:
		o.logger.Warn("lookup failed", "op", op, "status", status, "duration", dur, "error", err)
	}
}
