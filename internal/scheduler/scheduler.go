// Package scheduler drives repeated pipeline runs in loop mode. The pipeline
// itself stays free of timing logic; gocron owns wake-up and pacing.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/yclin/taipei-brief/internal/pipeline"
	"github.com/yclin/taipei-brief/internal/store"
	"github.com/yclin/taipei-brief/internal/telegram"
)

// Scheduler re-runs the briefing pipeline on the hour (or at a short test
// interval) and dispatches the result.
type Scheduler struct {
	scheduler  *gocron.Scheduler
	runner     *pipeline.Runner
	dispatcher *telegram.Dispatcher
	runs       *store.MemoryStore
	mode       telegram.Mode

	interval   time.Duration // 0 = top of every hour
	iterations int           // 0 = unbounded
	runTimeout time.Duration

	completed int
	done      chan struct{}
}

// Options tune loop behaviour. Interval zero schedules on the hour boundary;
// Iterations bounds the number of runs for test loops.
type Options struct {
	Interval   time.Duration
	Iterations int
	RunTimeout time.Duration
}

func New(runner *pipeline.Runner, dispatcher *telegram.Dispatcher, runs *store.MemoryStore, mode telegram.Mode, opts Options) *Scheduler {
	runTimeout := opts.RunTimeout
	if runTimeout <= 0 {
		runTimeout = 5 * time.Minute
	}
	return &Scheduler{
		scheduler:  gocron.NewScheduler(time.Local),
		runner:     runner,
		dispatcher: dispatcher,
		runs:       runs,
		mode:       mode,
		interval:   opts.Interval,
		iterations: opts.Iterations,
		runTimeout: runTimeout,
		done:       make(chan struct{}),
	}
}

// Start schedules the job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	sched := s.scheduler
	if s.interval > 0 {
		sched = sched.Every(s.interval)
	} else {
		// Wake at the start of every hour, as the briefing always has.
		sched = sched.Cron("0 * * * *")
	}
	if s.iterations > 0 {
		sched = sched.LimitRunsTo(s.iterations)
	}
	// One run at a time; a slow iteration must not overlap the next tick.
	sched = sched.SingletonMode()

	_, err := sched.Do(s.tick)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// tick runs one iteration. Any failure is logged, recorded, and followed by a
// best-effort error notice; the loop always continues.
func (s *Scheduler) tick() {
	log.Println("scheduler: running briefing job")
	defer s.countRun()

	ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
	defer cancel()

	run := store.Run{GeneratedAt: time.Now()}

	msg, source, err := s.runner.RunOnce(ctx)
	if err != nil {
		log.Printf("scheduler: briefing run failed: %v", err)
		run.Error = err.Error()
		s.runs.Save(run)
		s.dispatcher.SendErrorNotice(err)
		return
	}

	run.Source = source
	run.Report = msg

	if err := s.dispatcher.Dispatch(msg, s.mode); err != nil {
		log.Printf("scheduler: dispatch failed: %v", err)
		run.Error = err.Error()
		s.runs.Save(run)
		s.dispatcher.SendErrorNotice(err)
		return
	}

	run.Delivered = s.mode == telegram.ModeSend
	s.runs.Save(run)
	log.Println("scheduler: completed briefing job")
}

func (s *Scheduler) countRun() {
	s.completed++
	if s.iterations > 0 && s.completed >= s.iterations {
		close(s.done)
	}
}

// WaitForCompletion blocks until the bounded number of iterations has run or
// the context ends. Only meaningful when Iterations > 0.
func (s *Scheduler) WaitForCompletion(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-s.done:
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
