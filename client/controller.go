package client

import (
	"context"
	"sync"
	"time"
)

// State is the lifecycle state of a ListController.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSuccess
	StateError
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

const defaultDebounce = 400 * time.Millisecond

// ListController orchestrates QueryState and a ResourceClient behind a list
// view. It re-fetches on every query change, debounces search input, and
// guards against stale responses with a monotonic sequence number: only the
// latest issued request may apply its result. Failed refreshes keep the
// previous rows; there are no automatic retries, only an explicit Reload.
//
// All state is mutex-guarded; fetches run in their own goroutines carrying
// the context passed to the triggering mutation.
type ListController[T any] struct {
	mu    sync.Mutex
	res   *ResourceClient[T]
	query *QueryState

	state State
	rows  []T
	total int
	err   error

	seq      uint64
	debounce time.Duration
	timer    *time.Timer
	closed   bool

	onChange func()
}

// ControllerOption configures a ListController.
type ControllerOption[T any] func(*ListController[T])

// WithDebounce overrides the search debounce interval.
func WithDebounce[T any](d time.Duration) ControllerOption[T] {
	return func(c *ListController[T]) {
		if d > 0 {
			c.debounce = d
		}
	}
}

// WithOnChange registers a callback invoked after every state transition.
// The callback runs outside the controller lock.
func WithOnChange[T any](fn func()) ControllerOption[T] {
	return func(c *ListController[T]) {
		c.onChange = fn
	}
}

// NewListController creates an idle controller over the given resource.
func NewListController[T any](res *ResourceClient[T], opts ...ControllerOption[T]) *ListController[T] {
	c := &ListController[T]{
		res:      res,
		query:    NewQueryState(),
		state:    StateIdle,
		debounce: defaultDebounce,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load issues the initial fetch for the current query.
func (c *ListController[T]) Load(ctx context.Context) {
	c.mu.Lock()
	c.fetchLocked(ctx)
	c.mu.Unlock()
	c.notify()
}

// Reload re-fetches the current query. This is the explicit retry affordance
// after an error.
func (c *ListController[T]) Reload(ctx context.Context) {
	c.Load(ctx)
}

// Search updates the search term and schedules a fetch after the debounce
// interval. Further calls within the interval reset the timer, so a burst of
// keystrokes results in exactly one request for the final term.
func (c *ListController[T]) Search(ctx context.Context, term string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.query.SetSearch(term)

	if c.timer != nil {
		c.timer.Stop()
	}
	if c.closed {
		return
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return
		}
		c.fetchLocked(ctx)
		c.mu.Unlock()
		c.notify()
	})
}

// SetFilter sets a scalar filter and fetches immediately.
func (c *ListController[T]) SetFilter(ctx context.Context, key, value string) {
	c.mutate(ctx, func() { c.query.SetFilter(key, value) })
}

// SetRangeMin sets the lower bound of a range filter and fetches immediately.
func (c *ListController[T]) SetRangeMin(ctx context.Context, key, value string) {
	c.mutate(ctx, func() { c.query.SetRangeMin(key, value) })
}

// SetRangeMax sets the upper bound of a range filter and fetches immediately.
func (c *ListController[T]) SetRangeMax(ctx context.Context, key, value string) {
	c.mutate(ctx, func() { c.query.SetRangeMax(key, value) })
}

// SetPage moves to page n and fetches. Out-of-range pages are a no-op.
func (c *ListController[T]) SetPage(ctx context.Context, n int) {
	c.mu.Lock()
	before := c.query.Page()
	c.query.SetPage(n)
	changed := c.query.Page() != before
	if changed {
		c.fetchLocked(ctx)
	}
	c.mu.Unlock()
	if changed {
		c.notify()
	}
}

// SetPageSize changes the page size (resetting to page 1) and fetches.
func (c *ListController[T]) SetPageSize(ctx context.Context, n int) {
	c.mutate(ctx, func() { c.query.SetPageSize(n) })
}

// State returns the current lifecycle state.
func (c *ListController[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Rows returns a copy of the currently displayed rows.
func (c *ListController[T]) Rows() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	rows := make([]T, len(c.rows))
	copy(rows, c.rows)
	return rows
}

// Total returns the total matching count reported by the last successful fetch.
func (c *ListController[T]) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Err returns the error from the last failed fetch, or nil.
func (c *ListController[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Page returns the current page of the underlying query.
func (c *ListController[T]) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query.Page()
}

// PageCount returns the last known page count.
func (c *ListController[T]) PageCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query.PageCount()
}

// Close stops any pending debounce timer. In-flight fetches complete but
// their results are discarded.
func (c *ListController[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.seq++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// mutate applies a query change and fetches immediately.
func (c *ListController[T]) mutate(ctx context.Context, change func()) {
	c.mu.Lock()
	change()
	c.fetchLocked(ctx)
	c.mu.Unlock()
	c.notify()
}

// fetchLocked issues a new list request tagged with the next sequence number.
// Must be called with c.mu held.
func (c *ListController[T]) fetchLocked(ctx context.Context) {
	if c.closed {
		return
	}

	c.seq++
	seq := c.seq
	c.state = StateLoading

	// Serialize the query while holding the lock so the request reflects a
	// stable view even if the query changes before the response arrives.
	params := c.query.Params()
	page := c.query.Page()
	pageSize := c.query.PageSize()
	go func() {
		result, err := c.res.listWith(ctx, params, page, pageSize)
		c.apply(seq, result, err)
	}()
}

// apply installs a fetch result unless a newer request has been issued since.
func (c *ListController[T]) apply(seq uint64, result *PagedResult[T], err error) {
	c.mu.Lock()
	if seq != c.seq || c.closed {
		// Stale response: a newer query owns the state now.
		c.mu.Unlock()
		return
	}

	if err != nil {
		// Keep the previous rows so a transient failure never blanks the table.
		c.state = StateError
		c.err = err
	} else {
		c.state = StateSuccess
		c.err = nil
		c.rows = result.Items
		c.total = result.Total
		c.query.UpdatePageCount(result.PageCount)
	}
	c.mu.Unlock()
	c.notify()
}

func (c *ListController[T]) notify() {
	if c.onChange != nil {
		c.onChange()
	}
}
