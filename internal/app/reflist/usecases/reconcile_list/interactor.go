package reconcile_list

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	contracts "github.com/murkotick/reflist-service/internal/app/reflist/contracts"
	"github.com/murkotick/reflist-service/internal/app/reflist/domain"
	"github.com/murkotick/reflist-service/internal/app/reflist/dto"
	"github.com/murkotick/reflist-service/internal/pkg/clock"
	"github.com/murkotick/reflist-service/internal/pkg/keylock"
)

// Mode selects how a batch is committed.
type Mode string

const (
	// ModeBestEffort commits every write as it happens. A failure stops the
	// batch and leaves the writes before it in place.
	ModeBestEffort Mode = "best-effort"

	// ModeTransactional runs the whole batch in one store transaction and
	// rolls everything back on the first failure.
	ModeTransactional Mode = "transactional"
)

// ParseMode validates a configured mode; "" selects ModeBestEffort.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeBestEffort:
		return ModeBestEffort, nil
	case ModeTransactional:
		return ModeTransactional, nil
	}
	return "", fmt.Errorf("unknown reconcile mode %q", s)
}

// Recorder receives per-batch measurements. observability.Metrics implements it.
type Recorder interface {
	ObserveBatch(list, status string, d time.Duration)
	ObserveItems(list, phase string, n int)
}

// Options tune an Interactor beyond its required collaborators.
type Options struct {
	Mode Mode

	// Locks, when set, serialises batches of the same list within this process.
	Locks *keylock.Locker

	Events   contracts.EventSink
	Recorder Recorder
}

// Result is the outcome of one batch.
type Result struct {
	Report dto.ReconcileReport

	// Partial is set when the batch failed after some of its writes were
	// committed. Only best-effort runs can be partial.
	Partial bool
}

// Interactor reconciles one reference list against a submitted batch.
type Interactor struct {
	List   domain.ListSpec
	Store  contracts.ListStore
	Clock  clock.Clock
	Logger logrus.FieldLogger
	opts   Options
}

func NewInteractor(list domain.ListSpec, store contracts.ListStore, clk clock.Clock, logger logrus.FieldLogger, opts Options) *Interactor {
	if opts.Mode == "" {
		opts.Mode = ModeBestEffort
	}
	return &Interactor{
		List:   list,
		Store:  store,
		Clock:  clk,
		Logger: logger.WithField("list", string(list.Key)),
		opts:   opts,
	}
}

// Mode reports the commit strategy in use.
func (it *Interactor) Mode() Mode {
	return it.opts.Mode
}

// Execute applies b in the fixed order Added -> Edited -> Deleted and then
// assigns ranks from b.VisualOrder.
func (it *Interactor) Execute(ctx context.Context, b *dto.Batch) (Result, error) {
	if b == nil {
		b = &dto.Batch{}
	}
	if it.opts.Locks != nil {
		unlock := it.opts.Locks.Lock(string(it.List.Key))
		defer unlock()
	}

	start := it.Clock.Now()
	var (
		r   *run
		err error
	)

	switch it.opts.Mode {
	case ModeTransactional:
		err = it.Store.RunInTransaction(ctx, func(ctx context.Context, repo contracts.ItemRepo) error {
			// A retried transaction starts over with a fresh run.
			r = it.newRun(repo, start)
			return r.apply(ctx, b)
		})
	default:
		r = it.newRun(it.Store, start)
		err = r.apply(ctx, b)
	}

	res := Result{}
	if r != nil {
		res.Report = r.report
	}

	committed := err == nil || it.opts.Mode == ModeBestEffort
	if err != nil {
		if it.opts.Mode == ModeTransactional {
			res.Report = dto.ReconcileReport{}
		} else {
			res.Partial = res.Report.Writes() > 0
		}
	}
	if committed && r != nil {
		it.publish(ctx, r.events)
	}

	it.observe(res, err, start)
	if err != nil {
		entry := it.Logger.WithError(err).WithFields(logrus.Fields{
			"mode":    string(it.opts.Mode),
			"partial": res.Partial,
		})
		if errors.Is(err, domain.ErrStorage) {
			entry.Error("reconcile batch failed")
		} else {
			entry.Warn("reconcile batch rejected")
		}
		return res, err
	}

	it.Logger.WithFields(logrus.Fields{
		"added":   res.Report.Added,
		"renamed": res.Report.Renamed,
		"deleted": res.Report.Deleted,
		"ranked":  res.Report.Ranked,
		"skipped": res.Report.Skipped,
	}).Info("reconcile batch applied")
	return res, nil
}

func (it *Interactor) newRun(repo contracts.ItemRepo, now time.Time) *run {
	return &run{
		list:   it.List,
		repo:   repo,
		ids:    newIDResolver(),
		log:    it.Logger,
		now:    now,
		events: make([]domain.ListEvent, 0),
	}
}

func (it *Interactor) publish(ctx context.Context, events []domain.ListEvent) {
	if it.opts.Events == nil || len(events) == 0 {
		return
	}
	// The changes are committed already; a lost event is logged, not surfaced.
	if err := it.opts.Events.Publish(ctx, events); err != nil {
		it.Logger.WithError(err).WithField("events", len(events)).Error("publish list events")
	}
}

func (it *Interactor) observe(res Result, err error, start time.Time) {
	rec := it.opts.Recorder
	if rec == nil {
		return
	}
	list := string(it.List.Key)
	status := "success"
	if err != nil {
		status = "error"
		if res.Partial {
			status = "partial"
		}
	}
	rec.ObserveBatch(list, status, clock.Since(it.Clock, start))
	rec.ObserveItems(list, phaseAdded, res.Report.Added)
	rec.ObserveItems(list, phaseEdited, res.Report.Renamed)
	rec.ObserveItems(list, phaseDeleted, res.Report.Deleted)
	rec.ObserveItems(list, phaseOrder, res.Report.Ranked)
	rec.ObserveItems(list, phaseSkipped, res.Report.Skipped)
}
