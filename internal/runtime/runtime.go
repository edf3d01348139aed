/*
Package runtime owns the background execution context for navigation work.

A single goroutine consumes commands in FIFO order and awaits each fetch to
completion before dequeuing the next, so network round-trips are strictly
serialized in submission order. The UI thread never blocks on network I/O: it
submits work through a cheap, shareable Handle and polls a NavigationJob for
the result.
*/
package runtime

import (
	"context"
	"net/url"
	"sync"

	"go.uber.org/zap"

	"github.com/EliasL-git/ASTERIX-dev/internal/browser"
	"github.com/EliasL-git/ASTERIX-dev/internal/logging"
)

// commandBuffer bounds the pending-command queue. Submissions beyond this
// block the caller briefly instead of growing without limit.
const commandBuffer = 128

type command struct {
	shutdown bool
	req      browser.PageRequest
	respond  chan result
}

type result struct {
	page *browser.PageResponse
	err  error
}

// Runtime executes navigation commands on a background goroutine. Create one
// with New and release it with Close; Close blocks until the loop has exited,
// so no stray goroutine outlives the runtime.
type Runtime struct {
	core     *browser.Core
	log      *logging.Logger
	commands chan command
	done     chan struct{}

	mu      sync.Mutex
	stopped bool

	closeOnce sync.Once
}

// New starts the command loop. The logger may be nil.
func New(core *browser.Core, log *logging.Logger) *Runtime {
	if log == nil {
		log = logging.NewNop()
	}
	r := &Runtime{
		core:     core,
		log:      log,
		commands: make(chan command, commandBuffer),
		done:     make(chan struct{}),
	}
	go r.loop()
	return r
}

// Handle returns a lightweight handle for issuing commands from other
// goroutines. Handles are plain values; copy them freely.
func (r *Runtime) Handle() Handle {
	return Handle{runtime: r}
}

// Close asks the loop to stop and waits for it to exit. Commands already
// queued ahead of the shutdown marker are still executed; any submission
// after Close begins fails with ErrRuntimeStopped. Safe to call more than
// once.
func (r *Runtime) Close() {
	r.closeOnce.Do(func() {
		r.mu.Lock()
		r.stopped = true
		r.commands <- command{shutdown: true}
		r.mu.Unlock()
		<-r.done
	})
}

func (r *Runtime) loop() {
	defer close(r.done)
	for cmd := range r.commands {
		if cmd.shutdown {
			r.log.Info("browser runtime shutting down")
			return
		}

		page, err := r.core.FetchPage(context.Background(), cmd.req)
		// The reply channel is buffered, so delivery never blocks the loop.
		// If the consumer already discarded its job the buffered value is
		// simply collected with the channel.
		cmd.respond <- result{page: page, err: err}
	}
}

// Handle is the caller-facing capability for the runtime: tab operations pass
// straight through to the registry, navigation is enqueued onto the command
// loop.
type Handle struct {
	runtime *Runtime
}

// CreateTab allocates a new tab. Synchronous pass-through to the registry.
func (h Handle) CreateTab(title string) browser.TabSnapshot {
	return h.runtime.core.CreateTab(title)
}

// Tabs returns a snapshot of all tabs. Synchronous pass-through.
func (h Handle) Tabs() []browser.TabSnapshot {
	return h.runtime.core.Tabs()
}

// RequestNavigation enqueues a fetch for the given tab and returns a job the
// caller polls for completion. Fails with ErrRuntimeStopped, before creating
// any job or touching the registry, once the runtime has begun shutting down.
func (h Handle) RequestNavigation(tab browser.TabID, u *url.URL) (*NavigationJob, error) {
	r := h.runtime

	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return nil, browser.ErrRuntimeStopped
	}
	respond := make(chan result, 1)
	r.commands <- command{
		req:     browser.PageRequest{Tab: tab, URL: u},
		respond: respond,
	}
	r.mu.Unlock()

	r.log.Debug("navigation enqueued", zap.Stringer("url", u), zap.Uint64("tab", uint64(tab)))
	return &NavigationJob{respond: respond, runtimeDone: r.done}, nil
}

// NavigationJob represents one in-flight or completed navigation. It is a
// single-consumer object: poll it from one goroutine only.
type NavigationJob struct {
	respond     chan result
	runtimeDone <-chan struct{}
	resolved    *Result
}

// Result is the terminal state of a navigation: exactly one of Page or Err is
// set.
type Result struct {
	Page *browser.PageResponse
	Err  error
}

// TryComplete polls for completion without blocking. It returns (nil, false)
// while the navigation is outstanding. Once resolved it returns the same
// Result on every subsequent call. A runtime that shut down before producing
// a result resolves the job to browser.ErrCancelled rather than hanging.
func (j *NavigationJob) TryComplete() (*Result, bool) {
	if j.resolved != nil {
		return j.resolved, true
	}

	select {
	case res := <-j.respond:
		j.resolved = &Result{Page: res.page, Err: res.err}
		return j.resolved, true
	default:
	}

	select {
	case <-j.runtimeDone:
		// The loop has exited. A result may still have been delivered just
		// before shutdown, so check the buffer once more.
		select {
		case res := <-j.respond:
			j.resolved = &Result{Page: res.page, Err: res.err}
		default:
			j.resolved = &Result{Err: browser.ErrCancelled}
		}
		return j.resolved, true
	default:
		return nil, false
	}
}
