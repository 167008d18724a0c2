// Package refresh decouples recomputation from the interactive surface.
// A single background worker rebuilds the aggregate snapshot and
// prediction off the ledger, then atomically republishes the pair;
// readers poll Current or subscribe for pushes and never block on a
// recompute in flight.
package refresh

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"FinanceSentinel/internal/aggregate"
	"FinanceSentinel/internal/ledger"
	"FinanceSentinel/internal/model"
	"FinanceSentinel/internal/predict"

	"github.com/robfig/cron/v3"
)

// Published is one complete, internally consistent result pair. Readers
// always see either the fully-old or the fully-new pair, never a mix.
type Published struct {
	LedgerVersion uint64
	Snapshot      *model.AggregateSnapshot
	// Prediction is nil while the snapshot history is still shorter
	// than the model's minimum; the snapshot alone is still published.
	Prediction *model.PredictionResult
}

// Subscriber is notified after each publication. It runs on the worker
// goroutine and must not block.
type Subscriber func(*Published)

// State is the scheduler's recompute phase.
type State int32

const (
	Idle State = iota
	Recomputing
	Publishing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Recomputing:
		return "recomputing"
	case Publishing:
		return "publishing"
	default:
		return "unknown"
	}
}

// Scheduler coordinates background recomputation of the aggregation
// engine and predictive model.
type Scheduler struct {
	ledger *ledger.Store
	engine *aggregate.Engine
	model  *predict.Model

	cron     *cron.Cron
	interval time.Duration

	// requests has capacity 1: a request arriving while one is already
	// pending is coalesced with it. The worker reads the ledger fresh
	// per recompute, so the surviving request always uses the state as
	// of the last trigger.
	requests chan struct{}

	current atomic.Pointer[Published]
	state   atomic.Int32

	subMu  sync.Mutex
	subs   map[int]Subscriber
	nextID int

	// history is the bounded run of recent snapshots feeding the
	// predictive model. Only the worker goroutine touches it.
	history    []*model.AggregateSnapshot
	historyCap int

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a Scheduler. historyCap bounds how many past
// snapshots are retained as prediction input.
func NewScheduler(ls *ledger.Store, eng *aggregate.Engine, mdl *predict.Model, interval time.Duration, historyCap int) *Scheduler {
	return &Scheduler{
		ledger:     ls,
		engine:     eng,
		model:      mdl,
		cron:       cron.New(),
		interval:   interval,
		requests:   make(chan struct{}, 1),
		subs:       make(map[int]Subscriber),
		historyCap: historyCap,
	}
}

// Start launches the background worker and the periodic timer trigger.
func (s *Scheduler) Start(ctx context.Context) error {
	ctx, s.cancel = context.WithCancel(ctx)

	if s.interval > 0 {
		if _, err := s.cron.AddFunc("@every "+s.interval.String(), s.Request); err != nil {
			return err
		}
		s.cron.Start()
	}

	s.wg.Add(1)
	go s.run(ctx)
	log.Printf("[INFO] refresh scheduler started (interval %s)", s.interval)
	return nil
}

// Stop halts the timer and waits for the worker to drain.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	log.Println("[INFO] refresh scheduler stopped")
}

// Request enqueues a recompute. It never blocks: if one is already
// pending the requests collapse into it, so rapid mutation bursts cost
// at most one extra recompute.
func (s *Scheduler) Request() {
	select {
	case s.requests <- struct{}{}:
	default:
	}
}

// Current returns the last published pair, nil before the first
// publication. Successive calls never go backwards in ledger version.
func (s *Scheduler) Current() *Published {
	return s.current.Load()
}

// State reports the worker's phase.
func (s *Scheduler) State() State {
	return State(s.state.Load())
}

// Subscribe registers a push notification callback and returns its
// handle for Unsubscribe.
func (s *Scheduler) Subscribe(fn Subscriber) int {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.nextID++
	s.subs[s.nextID] = fn
	return s.nextID
}

// Unsubscribe removes a previously registered subscriber.
func (s *Scheduler) Unsubscribe(id int) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	delete(s.subs, id)
}

func (s *Scheduler) run(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.requests:
			s.recompute()
		}
	}
}

func (s *Scheduler) recompute() {
	s.state.Store(int32(Recomputing))
	defer s.state.Store(int32(Idle))

	view := s.ledger.SnapshotForRead()
	snap := s.engine.Recompute(view)

	s.history = append(s.history, snap)
	if len(s.history) > s.historyCap {
		s.history = s.history[len(s.history)-s.historyCap:]
	}

	pred, err := s.model.Predict(s.history, view.Transactions)
	if err != nil {
		if errors.Is(err, predict.ErrInsufficientData) {
			log.Printf("[INFO] prediction unavailable: %v", err)
		} else {
			log.Printf("[ERROR] predict: %v", err)
		}
		pred = nil
	}

	s.state.Store(int32(Publishing))
	s.publish(&Published{LedgerVersion: view.Version, Snapshot: snap, Prediction: pred})
}

// publish swaps in the new pair unless a newer ledger version has
// already been published: last writer wins by ledger version, not by
// completion order, which keeps Current monotonic for readers. A pair
// for the same version replaces the current one, so a timer-triggered
// recompute can still refresh the prediction on an unchanged ledger.
func (s *Scheduler) publish(p *Published) {
	for {
		cur := s.current.Load()
		if cur != nil && cur.LedgerVersion > p.LedgerVersion {
			log.Printf("[INFO] discarding stale recompute for ledger version %d (current %d)",
				p.LedgerVersion, cur.LedgerVersion)
			return
		}
		if s.current.CompareAndSwap(cur, p) {
			break
		}
	}

	s.subMu.Lock()
	subs := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(p)
	}
}
