package persist

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

type recordKind uint8

const (
	recordWeapon recordKind = iota
	recordEvolution
	recordRun
)

type record struct {
	kind recordKind
	id   string
	run  RunResult
}

// Recorder is the fire-and-forget boundary between the simulation and a
// Store. Calls never block: records go onto a bounded queue drained by Run,
// a full queue drops the record, and store errors are logged and swallowed.
type Recorder struct {
	store   Store
	log     *zap.Logger
	queue   chan record
	timeout time.Duration
	dropped atomic.Int64
	written atomic.Int64
}

func NewRecorder(store Store, queueSize int, timeout time.Duration, log *zap.Logger) *Recorder {
	if queueSize < 1 {
		queueSize = 1
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Recorder{
		store:   store,
		log:     log,
		queue:   make(chan record, queueSize),
		timeout: timeout,
	}
}

func (r *Recorder) RecordWeaponDiscovered(id string) {
	r.enqueue(record{kind: recordWeapon, id: id})
}

func (r *Recorder) RecordEvolutionDiscovered(id string) {
	r.enqueue(record{kind: recordEvolution, id: id})
}

func (r *Recorder) RecordRunResult(res RunResult) {
	r.enqueue(record{kind: recordRun, run: res})
}

func (r *Recorder) enqueue(rec record) {
	select {
	case r.queue <- rec:
	default:
		r.dropped.Add(1)
		r.log.Warn("meta record dropped, queue full", zap.Uint8("kind", uint8(rec.kind)), zap.String("id", rec.id))
	}
}

// Run writes queued records until ctx is cancelled, then flushes whatever is
// still queued and returns. It always returns nil.
func (r *Recorder) Run(ctx context.Context) error {
	for {
		select {
		case rec := <-r.queue:
			r.write(ctx, rec)
		case <-ctx.Done():
			for {
				select {
				case rec := <-r.queue:
					r.write(ctx, rec)
				default:
					return nil
				}
			}
		}
	}
}

// Stats returns how many records were written and dropped.
func (r *Recorder) Stats() (written, dropped int64) {
	return r.written.Load(), r.dropped.Load()
}

func (r *Recorder) write(ctx context.Context, rec record) {
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	var err error
	switch rec.kind {
	case recordWeapon:
		err = r.store.DiscoverWeapon(wctx, rec.id)
	case recordEvolution:
		err = r.store.DiscoverEvolution(wctx, rec.id)
	case recordRun:
		err = r.store.SaveRun(wctx, rec.run)
	}
	if err != nil {
		r.log.Error("meta write failed", zap.Uint8("kind", uint8(rec.kind)), zap.String("id", rec.id), zap.Error(err))
		return
	}
	r.written.Add(1)
}
