package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"
)

type TaskID string

const (
	TaskStatus         TaskID = "status"
	TaskRecordingFiles TaskID = "recording-files"
	TaskFileManagement TaskID = "file-management"
	TaskVideoPreview   TaskID = "video-preview"
	TaskDuration       TaskID = "duration"
)

var ErrStopped = errors.New("scheduler stopped")

// Task is one recurring job. Enabled and Run are always called on the
// scheduler loop, so they may touch loop-owned state without locking.
type Task struct {
	ID       TaskID
	Interval time.Duration
	Enabled  func() bool
	Run      func()
	// RunOnArm runs the task once immediately when it is armed.
	RunOnArm bool
}

type handle struct {
	gen    uint64
	ticker Ticker
	stop   chan struct{}
}

// Scheduler owns a single loop goroutine. Tickers fire on their own
// goroutines but every task body, and every closure handed to Post, runs on
// the loop.
type Scheduler struct {
	clock   Clock
	tasks   map[TaskID]*Task
	order   []TaskID
	handles map[TaskID]*handle
	gen     uint64

	events chan func()
	quit   chan struct{}
}

func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = RealClock{}
	}
	return &Scheduler{
		clock:   clock,
		tasks:   make(map[TaskID]*Task),
		handles: make(map[TaskID]*handle),
		events:  make(chan func(), 64),
		quit:    make(chan struct{}),
	}
}

func (s *Scheduler) Clock() Clock {
	return s.clock
}

// Register adds a task. It must be called before Run.
func (s *Scheduler) Register(task Task) error {
	if task.ID == "" {
		return errors.New("task id is required")
	}
	if task.Interval <= 0 {
		return fmt.Errorf("task %s: interval must be positive", task.ID)
	}
	if task.Run == nil {
		return fmt.Errorf("task %s: run function is required", task.ID)
	}
	if _, exists := s.tasks[task.ID]; exists {
		return fmt.Errorf("task %s already registered", task.ID)
	}

	t := task
	s.tasks[t.ID] = &t
	s.order = append(s.order, t.ID)
	return nil
}

// Arm starts the task's ticker. A live handle for the same task is cancelled
// first, so there is never more than one.
func (s *Scheduler) Arm(id TaskID) {
	task, ok := s.tasks[id]
	if !ok {
		slog.Warn("arm of unknown task", "task", id)
		return
	}

	s.Disarm(id)

	s.gen++
	h := &handle{
		gen:    s.gen,
		ticker: s.clock.NewTicker(task.Interval),
		stop:   make(chan struct{}),
	}
	s.handles[id] = h
	go s.forward(id, h)

	slog.Debug("task armed", "task", id, "interval", task.Interval)

	if task.RunOnArm {
		task.Run()
	}
}

// Disarm stops the task's ticker. Ticks already queued for the loop are
// discarded; requests a task already started are left to finish.
func (s *Scheduler) Disarm(id TaskID) {
	h, ok := s.handles[id]
	if !ok {
		return
	}
	delete(s.handles, id)
	h.ticker.Stop()
	close(h.stop)
	slog.Debug("task disarmed", "task", id)
}

// Armed reports whether the task has a live handle.
func (s *Scheduler) Armed(id TaskID) bool {
	_, ok := s.handles[id]
	return ok
}

// LiveHandles lists the armed tasks in sorted order.
func (s *Scheduler) LiveHandles() []TaskID {
	ids := make([]TaskID, 0, len(s.handles))
	for id := range s.handles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Reevaluate arms every enabled task that is idle and disarms every disabled
// task that is live.
func (s *Scheduler) Reevaluate() {
	for _, id := range s.order {
		task := s.tasks[id]
		enabled := task.Enabled == nil || task.Enabled()
		live := s.Armed(id)

		switch {
		case enabled && !live:
			s.Arm(id)
		case !enabled && live:
			s.Disarm(id)
		}
	}
}

// Post queues fn to run on the loop. It is safe to call from any goroutine
// except the loop itself and returns false once the scheduler has stopped.
func (s *Scheduler) Post(fn func()) bool {
	select {
	case <-s.quit:
		return false
	default:
	}

	select {
	case s.events <- fn:
		return true
	case <-s.quit:
		return false
	}
}

// Call runs fn on the loop and waits for it to finish.
func (s *Scheduler) Call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	if !s.Post(func() {
		defer close(done)
		fn()
	}) {
		return ErrStopped
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.quit:
		return ErrStopped
	}
}

// Run is the loop. Tasks are reevaluated once on entry; on exit every handle
// is disarmed.
func (s *Scheduler) Run(ctx context.Context) error {
	slog.Info("scheduler started", "tasks", len(s.tasks))

	defer func() {
		for id := range s.handles {
			s.Disarm(id)
		}
		close(s.quit)
		slog.Info("scheduler stopped")
	}()

	s.Reevaluate()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-s.events:
			fn()
		}
	}
}

// forward turns ticks into loop events tagged with the handle generation.
func (s *Scheduler) forward(id TaskID, h *handle) {
	for {
		select {
		case <-h.stop:
			return
		case <-s.quit:
			return
		case <-h.ticker.C():
			gen := h.gen
			posted := s.Post(func() {
				current, ok := s.handles[id]
				if !ok || current.gen != gen {
					return
				}
				s.tasks[id].Run()
			})
			if !posted {
				return
			}
		}
	}
}
