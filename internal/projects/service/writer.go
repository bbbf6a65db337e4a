package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/projects/domain"
	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/projects/repository"
)

// ErrQueueFull is recorded for a write that was dropped because the backend
// could not keep up. The in-memory project is unaffected; Resave retries it.
var ErrQueueFull = errors.New("persistence queue full")

type jobKind int

const (
	jobSave jobKind = iota
	jobDelete
	jobBarrier
)

type persistJob struct {
	kind    jobKind
	project domain.Project
	id      string
	done    chan struct{}
}

// writer applies persistence jobs one at a time, in the order they were
// enqueued, on a single goroutine. A later write can never overtake an earlier one.
type writer struct {
	adapter   repository.Adapter
	queue     chan persistJob
	timeout   time.Duration
	onFailure func(*domain.PersistenceError)

	applied atomic.Int64
	failed  atomic.Int64

	closeOnce sync.Once
	stopped   chan struct{}
}

// Stats is a point-in-time view of the persistence writer.
type Stats struct {
	Applied int64 `json:"applied"`
	Failed  int64 `json:"failed"`
	Pending int   `json:"pending"`
}

func (w *writer) stats() Stats {
	return Stats{
		Applied: w.applied.Load(),
		Failed:  w.failed.Load(),
		Pending: len(w.queue),
	}
}

func newWriter(adapter repository.Adapter, size int, timeout time.Duration, onFailure func(*domain.PersistenceError)) *writer {
	if size <= 0 {
		size = defaultQueueSize
	}
	w := &writer{
		adapter:   adapter,
		queue:     make(chan persistJob, size),
		timeout:   timeout,
		onFailure: onFailure,
		stopped:   make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *writer) run() {
	defer close(w.stopped)
	for job := range w.queue {
		if job.kind == jobBarrier {
			close(job.done)
			continue
		}
		w.apply(job)
	}
}

func (w *writer) apply(job persistJob) {
	ctx := context.Background()
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	var err error
	switch job.kind {
	case jobSave:
		err = w.adapter.SaveProject(ctx, job.project)
	case jobDelete:
		err = w.adapter.DeleteProject(ctx, job.id)
	}
	if err == nil {
		w.applied.Add(1)
		return
	}
	w.fail(job, err)
}

func (w *writer) fail(job persistJob, err error) {
	w.failed.Add(1)

	perr := &domain.PersistenceError{Op: "save", ProjectID: job.project.ID, Err: err}
	if job.kind == jobDelete {
		perr.Op, perr.ProjectID = "delete", job.id
	}
	log.Printf("[persist] %v", perr)
	if w.onFailure != nil {
		w.onFailure(perr)
	}
}

// enqueue never blocks. When the queue is full the job is dropped and reported
// as a failure.
func (w *writer) enqueue(job persistJob) {
	select {
	case w.queue <- job:
	default:
		w.fail(job, ErrQueueFull)
	}
}

// flush waits until every job enqueued before the call has been applied.
func (w *writer) flush(ctx context.Context) error {
	done := make(chan struct{})
	select {
	case w.queue <- persistJob{kind: jobBarrier, done: done}:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// close drains the queue and stops the goroutine.
func (w *writer) close(ctx context.Context) error {
	w.closeOnce.Do(func() { close(w.queue) })
	select {
	case <-w.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
