// Package compare runs one translation request through every configured
// backend and collects the results side by side.
package compare

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/valpere/tradcompare/internal/metrics"
	"github.com/valpere/tradcompare/internal/translator"
)

// Policy decides what a backend failure does to the rest of the run.
type Policy string

const (
	// PolicyAbort stops at the first failing backend.
	PolicyAbort Policy = "abort"
	// PolicyIsolate records the failure on its entry and carries on.
	PolicyIsolate Policy = "isolate"
)

func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyAbort, PolicyIsolate:
		return Policy(s), nil
	case "":
		return PolicyAbort, nil
	default:
		return "", fmt.Errorf("unknown failure policy: %s (supported: abort, isolate)", s)
	}
}

type Config struct {
	Policy Policy
	// Parallel runs backends concurrently. Entries keep configuration order.
	Parallel bool
	// Timeout bounds each backend call; zero means no deadline.
	Timeout time.Duration
}

type Entry struct {
	Backend string
	Result  translator.Result
	Elapsed time.Duration
	Err     error
}

type Report struct {
	ID          string
	Request     translator.Request
	Entries     []Entry
	Succeeded   int
	Unsupported int
	Failed      int
}

type Driver struct {
	backends []translator.Backend
	config   Config
	logger   *logrus.Logger
}

func New(backends []translator.Backend, config Config, logger *logrus.Logger) *Driver {
	if config.Policy == "" {
		config.Policy = PolicyAbort
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Driver{
		backends: backends,
		config:   config,
		logger:   logger,
	}
}

func (d *Driver) Backends() []translator.Backend {
	return d.backends
}

// Compare translates req with every backend. Under PolicyAbort a failure
// returns the report up to (not including) the failing backend together with
// the error; under PolicyIsolate the error is always nil.
func (d *Driver) Compare(ctx context.Context, req translator.Request) (*Report, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	report := &Report{
		ID:      uuid.New().String(),
		Request: req,
	}

	log := d.logger.WithFields(logrus.Fields{
		"run_id":   report.ID,
		"source":   req.Source.String(),
		"target":   req.Target.String(),
		"backends": len(d.backends),
	})
	log.Debug("Starting comparison")

	var entries []Entry
	if d.config.Parallel {
		entries = d.runParallel(ctx, req)
	} else {
		entries = d.runSequential(ctx, req)
	}

	for _, e := range entries {
		if e.Err != nil && d.config.Policy == PolicyAbort {
			metrics.RecordComparison("aborted")
			log.WithError(e.Err).WithField("backend", e.Backend).Warn("Comparison aborted")
			return report, fmt.Errorf("backend %s: %w", e.Backend, e.Err)
		}

		report.Entries = append(report.Entries, e)
		switch {
		case e.Err != nil:
			report.Failed++
		case e.Result.Supported():
			report.Succeeded++
		default:
			report.Unsupported++
		}
	}

	metrics.RecordComparison("ok")
	log.WithFields(logrus.Fields{
		"succeeded":   report.Succeeded,
		"unsupported": report.Unsupported,
		"failed":      report.Failed,
	}).Info("Comparison finished")

	return report, nil
}

func (d *Driver) runSequential(ctx context.Context, req translator.Request) []Entry {
	entries := make([]Entry, 0, len(d.backends))
	for _, b := range d.backends {
		e := d.invoke(ctx, b, req)
		entries = append(entries, e)
		if e.Err != nil && d.config.Policy == PolicyAbort {
			break
		}
	}
	return entries
}

// runParallel fills one slot per backend so completion order never leaks
// into the output. Under PolicyAbort a failure cancels the backends after it;
// the ones before it still run to completion.
func (d *Driver) runParallel(ctx context.Context, req translator.Request) []Entry {
	entries := make([]Entry, len(d.backends))

	slotCtx := make([]context.Context, len(d.backends))
	cancels := make([]context.CancelFunc, len(d.backends))
	for i := range d.backends {
		slotCtx[i], cancels[i] = context.WithCancel(ctx)
	}
	defer func() {
		for _, cancel := range cancels {
			cancel()
		}
	}()

	var g errgroup.Group
	for i, b := range d.backends {
		g.Go(func() error {
			entries[i] = d.invoke(slotCtx[i], b, req)
			if entries[i].Err != nil && d.config.Policy == PolicyAbort {
				for _, cancel := range cancels[i+1:] {
					cancel()
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	return entries
}

func (d *Driver) invoke(ctx context.Context, b translator.Backend, req translator.Request) Entry {
	callCtx := ctx
	if d.config.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, d.config.Timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := b.Translate(callCtx, req)
	entry := Entry{
		Backend: b.Name(),
		Result:  res,
		Elapsed: time.Since(start),
		Err:     err,
	}

	status := metrics.StatusTranslated
	switch {
	case err != nil:
		status = metrics.StatusError
	case !res.Supported():
		status = metrics.StatusUnsupported
	}
	metrics.RecordTranslation(entry.Backend, status, entry.Elapsed)

	d.logger.WithFields(logrus.Fields{
		"backend": entry.Backend,
		"status":  status,
		"elapsed": entry.Elapsed.Round(time.Millisecond).String(),
	}).Debug("Backend call finished")

	return entry
}
