// Package listing drives paginated, searchable and filterable lists backed by a remote source.
//
// A Controller owns the query of a list (page, page size, debounced search, filters)
// and re-fetches whenever it changes. Search input is debounced, and only the
// response of the most recently issued fetch is ever applied.
package listing

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/siddharth-debugs/college-erp-bite/core"
)

const (
	DefaultDebounce = 500 * time.Millisecond
	DefaultPageSize = 10
)

var ErrInvalidPageSize = errors.New("invalid page size")

// Status of a list.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusEmpty
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

type (
	// Timer is a pending debounce.
	Timer interface {
		Stop() bool
	}

	// AfterFunc schedules f after d, see time.AfterFunc.
	AfterFunc func(d time.Duration, f func()) Timer

	Options struct {
		Debounce  time.Duration
		PageSize  int
		PageSizes []int
		Filters   map[string]string // initial filters
		Logger    core.Logger
		// OnError is called with the error of a failed fetch, after the state was reset.
		OnError   func(error)
		AfterFunc AfterFunc
	}

	// State is a snapshot of a list.
	State[T any] struct {
		Query       Query
		SearchInput string // live, not yet debounced, search text
		Result      Result[T]
		Status      Status
		Err         error
		PageCount   int
	}

	Controller[T any] struct {
		fetcher Fetcher[T]
		opts    Options

		mu          sync.Mutex
		idle        *sync.Cond
		started     bool
		closed      bool
		query       Query
		searchInput string
		timer       Timer
		timerGen    uint64
		seq         uint64
		cancel      context.CancelFunc
		pending     int
		result      Result[T]
		status      Status
		err         error
		listenerID  int
		listeners   map[int]func(State[T])
	}
)

func (s State[T]) Loading() bool {
	return s.Status == StatusLoading
}

// New returns an idle Controller; nothing is fetched before Start.
func New[T any](fetcher Fetcher[T], opts Options) *Controller[T] {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if len(opts.PageSizes) == 0 {
		opts.PageSizes = DefaultPageSizes
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Logger == nil {
		opts.Logger = core.NopLogger{}
	}
	if opts.AfterFunc == nil {
		opts.AfterFunc = func(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
	}

	c := &Controller[T]{
		fetcher:   fetcher,
		opts:      opts,
		query:     Query{Page: 1, PageSize: opts.PageSize, Filters: map[string]string{}},
		result:    Result[T]{Items: []T{}},
		listeners: make(map[int]func(State[T])),
	}
	c.idle = sync.NewCond(&c.mu)
	mergeFilters(c.query.Filters, opts.Filters)
	return c
}

// Start issues the initial fetch. Later calls are no-ops.
func (c *Controller[T]) Start() {
	c.mu.Lock()
	if c.started || c.closed {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.load()
	c.unlockAndEmit()
}

// SetSearch records the live search text.
// The query follows once the text has been stable for the debounce delay.
func (c *Controller[T]) SetSearch(text string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.searchInput = text
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timerGen++
	gen := c.timerGen
	c.timer = c.opts.AfterFunc(c.opts.Debounce, func() { c.settle(gen) })
	c.unlockAndEmit()
}

// Flush settles a pending search immediately.
func (c *Controller[T]) Flush() {
	c.mu.Lock()
	if c.timer == nil || c.closed {
		c.mu.Unlock()
		return
	}
	c.timer.Stop()
	c.timer = nil
	c.timerGen++
	c.applySearch()
	c.unlockAndEmit()
}

// SetPage moves to page n, clamped to the known page range.
func (c *Controller[T]) SetPage(n int) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	maxPage := PageCount(c.result.TotalCount, c.query.PageSize)
	if maxPage < 1 {
		maxPage = 1
	}
	if n > maxPage {
		n = maxPage
	}
	if n < 1 {
		n = 1
	}
	if n == c.query.Page {
		c.mu.Unlock()
		return
	}
	c.query.Page = n
	c.loadIfStarted()
	c.unlockAndEmit()
}

// SetPageSize changes the page size and goes back to the first page.
// size must be one of the configured page sizes.
func (c *Controller[T]) SetPageSize(size int) error {
	if !containsInt(c.opts.PageSizes, size) {
		return errors.Wrapf(ErrInvalidPageSize, "%d not in %v", size, c.opts.PageSizes)
	}
	c.mu.Lock()
	if c.closed || (size == c.query.PageSize && c.query.Page == 1) {
		c.mu.Unlock()
		return nil
	}
	c.query.PageSize = size
	c.query.Page = 1
	c.loadIfStarted()
	c.unlockAndEmit()
	return nil
}

// SetFilters merges filters into the active ones and goes back to the first page.
// An empty or FilterAll value removes the filter.
func (c *Controller[T]) SetFilters(filters map[string]string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	merged := c.query.clone().Filters
	mergeFilters(merged, filters)
	if equalFilters(merged, c.query.Filters) && c.query.Page == 1 {
		c.mu.Unlock()
		return
	}
	c.query.Filters = merged
	c.query.Page = 1
	c.loadIfStarted()
	c.unlockAndEmit()
}

// Refresh fetches the current query again.
func (c *Controller[T]) Refresh() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.loadIfStarted()
	c.unlockAndEmit()
}

// MoveItem reorders the items of the current page locally.
func (c *Controller[T]) MoveItem(from, to int) {
	c.mu.Lock()
	c.result.Items = Move(c.result.Items, from, to)
	c.unlockAndEmit()
}

// Wait blocks until no fetch is in flight.
func (c *Controller[T]) Wait() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.pending > 0 {
		c.idle.Wait()
	}
}

// State returns a snapshot of the list.
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Subscribe registers fn to be called with every new state.
// The returned func unregisters it.
func (c *Controller[T]) Subscribe(fn func(State[T])) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listenerID++
	id := c.listenerID
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// Close stops the pending debounce and abandons the in-flight fetch.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.cancel != nil {
		c.cancel()
	}
}

func (c *Controller[T]) settle(gen uint64) {
	c.mu.Lock()
	if gen != c.timerGen || c.closed {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.applySearch()
	c.unlockAndEmit()
}

// applySearch promotes the live search text to the query. c.mu must be held.
func (c *Controller[T]) applySearch() {
	search := strings.TrimSpace(c.searchInput)
	if search == c.query.Search {
		return
	}
	c.query.Search = search
	c.query.Page = 1
	c.loadIfStarted()
}

func (c *Controller[T]) loadIfStarted() {
	if c.started {
		c.load()
	}
}

// load issues a fetch of the current query, superseding any in-flight one. c.mu must be held.
func (c *Controller[T]) load() {
	if c.cancel != nil {
		c.cancel()
	}
	c.seq++
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.status = StatusLoading
	c.err = nil
	c.pending++
	go c.run(ctx, cancel, c.seq, c.query.clone())
}

func (c *Controller[T]) run(ctx context.Context, cancel context.CancelFunc, seq uint64, q Query) {
	defer cancel()
	defer func() {
		c.mu.Lock()
		c.pending--
		c.idle.Broadcast()
		c.mu.Unlock()
	}()
	res, err := c.fetcher.Fetch(ctx, q)

	c.mu.Lock()
	if seq != c.seq || c.closed { // superseded
		c.mu.Unlock()
		return
	}
	if err != nil {
		c.result = Result[T]{Items: []T{}}
		c.status = StatusFailed
		c.err = err
	} else {
		if res.Items == nil {
			res.Items = []T{}
		}
		c.result = res
		c.status = StatusSuccess
		if len(res.Items) == 0 {
			c.status = StatusEmpty
		}
	}
	onError := c.opts.OnError
	c.unlockAndEmit()

	if err != nil {
		c.opts.Logger.Error("fetching list", errors.Wrapf(err, "page %d, search %q", q.Page, q.Search))
		if onError != nil {
			onError(err)
		}
	}
}

// snapshot copies the state. c.mu must be held.
func (c *Controller[T]) snapshot() State[T] {
	return State[T]{
		Query:       c.query.clone(),
		SearchInput: c.searchInput,
		Result:      c.result,
		Status:      c.status,
		Err:         c.err,
		PageCount:   PageCount(c.result.TotalCount, c.query.PageSize),
	}
}

// unlockAndEmit releases c.mu and notifies the listeners of the new state.
func (c *Controller[T]) unlockAndEmit() {
	st := c.snapshot()
	listeners := make([]func(State[T]), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(st)
	}
}

func mergeFilters(dst, src map[string]string) {
	for k, v := range src {
		if isUnset(v) {
			delete(dst, k)
		} else {
			dst[k] = v
		}
	}
}

func equalFilters(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
