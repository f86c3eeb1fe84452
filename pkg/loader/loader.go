// Package loader runs the one-shot directory fetch and publishes its
// outcome as a Loading, Ready or Failed state.
package loader

import (
	"context"
	"sync"

	"github.com/Sternrassler/employee-directory/pkg/client"
	"github.com/Sternrassler/employee-directory/pkg/directory"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// FailureMessage is the user-facing text for any failed load.
const FailureMessage = "Failed to fetch data"

// Prometheus metrics for the load lifecycle.
var (
	loadState = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "directory_load_state",
		Help: "Current load state (0=loading, 1=ready, 2=failed)",
	})

	recordsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "directory_records_loaded",
		Help: "Number of records held after the load completed",
	})
)

// Fetcher retrieves the full record set.
type Fetcher interface {
	Fetch(ctx context.Context) ([]directory.Record, error)
}

// Notifier delivers the user-facing failure message.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

// Notify calls f(message).
func (f NotifierFunc) Notify(message string) { f(message) }

// Loader owns the dataset and its load state.
type Loader struct {
	fetcher  Fetcher
	notifier Notifier
	logger   zerolog.Logger

	startOnce sync.Once
	done      chan struct{}

	mu      sync.RWMutex
	state   State
	records []directory.Record
	err     error
}

// New creates a loader in the Loading state. notifier may be nil.
func New(fetcher Fetcher, notifier Notifier, logger zerolog.Logger) *Loader {
	if notifier == nil {
		notifier = NotifierFunc(func(string) {})
	}
	loadState.Set(float64(StateLoading))

	return &Loader{
		fetcher:  fetcher,
		notifier: notifier,
		logger:   logger,
		done:     make(chan struct{}),
		state:    StateLoading,
	}
}

// Start issues the fetch in a new goroutine. Only the first call has an
// effect.
func (l *Loader) Start(ctx context.Context) {
	l.startOnce.Do(func() {
		l.logger.Debug().Msg("Starting directory load")
		go l.run(ctx)
	})
}

func (l *Loader) run(ctx context.Context) {
	records, err := l.fetcher.Fetch(ctx)
	if err != nil && ctx.Err() != nil {
		// Shutdown: the result is discarded without a notification.
		l.logger.Debug().Err(err).Msg("Directory load cancelled")
		l.finish(StateFailed, nil, err)
		return
	}
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("error_class", string(client.ClassOf(err))).
			Msg("Directory load failed")
		// The notification is delivered before Done is closed.
		l.notifier.Notify(FailureMessage)
		l.finish(StateFailed, nil, err)
		return
	}

	l.finish(StateReady, records, nil)
	l.logger.Info().
		Int("records", len(records)).
		Msg("Directory loaded")
}

// finish performs the single transition out of Loading.
func (l *Loader) finish(state State, records []directory.Record, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != StateLoading {
		return
	}
	if records == nil {
		records = []directory.Record{}
	}
	l.state = state
	l.records = records
	l.err = err

	loadState.Set(float64(state))
	recordsLoaded.Set(float64(len(records)))
	close(l.done)
}

// State returns the current load state.
func (l *Loader) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Records returns the dataset. It is empty until the state is Ready and
// stays empty after a failure. Callers must not modify it.
func (l *Loader) Records() []directory.Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.records
}

// Err returns the load error once the state is Failed.
func (l *Loader) Err() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.err
}

// Done is closed once the state has left Loading.
func (l *Loader) Done() <-chan struct{} {
	return l.done
}

// Wait blocks until the load has completed or ctx is done.
func (l *Loader) Wait(ctx context.Context) (State, error) {
	select {
	case <-l.done:
		return l.State(), nil
	case <-ctx.Done():
		return StateLoading, ctx.Err()
	}
}
