// Package mirror keeps an optional secondary copy of the active task list in
// step with the primary store. Writes are fire-and-forget: the ledger never
// waits on them and a failure disables mirroring until it is granted again.
package mirror

import (
	"context"
	"sync"
	"time"

	"github.com/Burh0n/LogiTrack-Pro/internal/domain"
	"github.com/Burh0n/LogiTrack-Pro/internal/errors"
	"github.com/Burh0n/LogiTrack-Pro/internal/events"
	"github.com/Burh0n/LogiTrack-Pro/internal/logging"
	"github.com/Burh0n/LogiTrack-Pro/internal/notify"
)

// State is the mirror lifecycle.
type State int

const (
	Disabled State = iota
	Armed
	Failed
)

func (s State) String() string {
	switch s {
	case Disabled:
		return "disabled"
	case Armed:
		return "armed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Status is a snapshot for display.
type Status struct {
	State     State
	Target    string
	LastWrite time.Time
	LastError error
	Writes    int
}

// Mirror owns the sink and its state machine.
type Mirror struct {
	mu        sync.Mutex
	wg        sync.WaitGroup
	state     State
	sink      Sink
	gen       uint64
	pending   *pendingWrite
	running   bool
	lastWrite time.Time
	lastErr   error
	writes    int

	timeout  time.Duration
	events   events.Publisher
	notifier notify.Notifier
	now      func() time.Time
}

type pendingWrite struct {
	profile string
	tasks   []domain.Task
}

// Option configures a Mirror.
type Option func(*Mirror)

// WithTimeout bounds each sink write.
func WithTimeout(d time.Duration) Option {
	return func(m *Mirror) { m.timeout = d }
}

// WithEvents publishes MirrorFailed on the given bus.
func WithEvents(p events.Publisher) Option {
	return func(m *Mirror) { m.events = p }
}

// WithNotifier reports failures to the user.
func WithNotifier(n notify.Notifier) Option {
	return func(m *Mirror) { m.notifier = n }
}

// New creates a disabled mirror.
func New(opts ...Option) *Mirror {
	m := &Mirror{
		timeout:  10 * time.Second,
		events:   events.Nop{},
		notifier: notify.Multi{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Grant arms the mirror on sink and writes tasks to it right away. A failed
// initial write leaves the mirror Failed and is returned to the caller.
func (m *Mirror) Grant(ctx context.Context, sink Sink, tasks []domain.Task) error {
	m.mu.Lock()
	m.gen++
	gen := m.gen
	m.sink = sink
	m.state = Armed
	m.pending = nil
	m.lastErr = nil
	m.mu.Unlock()

	logging.Debugf("mirror granted on %s\n", sink.Describe())

	err := m.write(ctx, sink, snapshot(tasks))
	m.record(gen, err)
	if err != nil {
		return errors.NewMirrorWriteError(sink.Describe(), err)
	}
	return nil
}

// Arm re-attaches a sink granted in an earlier session without writing to
// it. The next ledger change is the first write.
func (m *Mirror) Arm(sink Sink) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	m.sink = sink
	m.state = Armed
	m.pending = nil
	m.lastErr = nil
}

// Revoke disables the mirror. Writes already running finish but their
// outcome is ignored.
func (m *Mirror) Revoke() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	m.state = Disabled
	m.sink = nil
	m.pending = nil
	m.lastErr = nil
}

// Mirror schedules an asynchronous write of tasks when the mirror is armed.
// Bursts coalesce so only the newest list is written once the sink is free.
func (m *Mirror) Mirror(profile string, tasks []domain.Task) {
	m.mu.Lock()
	if m.state != Armed {
		m.mu.Unlock()
		return
	}
	m.pending = &pendingWrite{profile: profile, tasks: snapshot(tasks)}
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.wg.Add(1)
	m.mu.Unlock()

	go m.drain()
}

// Wait blocks until every scheduled write has finished.
func (m *Mirror) Wait() {
	m.wg.Wait()
}

// Status returns the current state.
func (m *Mirror) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := Status{
		State:     m.state,
		LastWrite: m.lastWrite,
		LastError: m.lastErr,
		Writes:    m.writes,
	}
	if m.sink != nil {
		st.Target = m.sink.Describe()
	}
	return st
}

func (m *Mirror) drain() {
	defer m.wg.Done()
	for {
		m.mu.Lock()
		if m.pending == nil || m.state != Armed {
			m.pending = nil
			m.running = false
			m.mu.Unlock()
			return
		}
		job := m.pending
		m.pending = nil
		sink := m.sink
		gen := m.gen
		m.mu.Unlock()

		err := m.write(context.Background(), sink, job.tasks)
		if m.record(gen, err) {
			m.reportFailure(job.profile, sink, err)
		}
	}
}

func (m *Mirror) write(ctx context.Context, sink Sink, tasks []domain.Task) error {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}
	return sink.Write(ctx, tasks)
}

// record stores the outcome of a write made under gen. It reports whether
// the write moved the mirror into Failed.
func (m *Mirror) record(gen uint64, err error) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		return false
	}
	if err != nil {
		m.state = Failed
		m.lastErr = err
		return true
	}
	m.lastWrite = m.now()
	m.lastErr = nil
	m.writes++
	return false
}

func (m *Mirror) reportFailure(profile string, sink Sink, err error) {
	appErr := errors.NewMirrorWriteError(sink.Describe(), err)
	logging.L().Error("mirror write failed", "target", sink.Describe(), "err", err)
	m.events.Publish(events.Event{
		Kind:    events.MirrorFailed,
		Profile: profile,
		Message: appErr.Error(),
	})
	notify.Error(m.notifier, errors.GetUserMessage(appErr))
}

func snapshot(tasks []domain.Task) []domain.Task {
	out := make([]domain.Task, len(tasks))
	copy(out, tasks)
	return out
}
