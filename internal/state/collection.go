package state

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dvila/tally/internal/feed"
	"github.com/dvila/tally/internal/ledger"
	"github.com/dvila/tally/internal/poll"
)

const defaultFeedDebounce = 100 * time.Millisecond

// Snapshot is the latest view of the owner's collection available to the UI.
type Snapshot struct {
	Transactions []ledger.Transaction
	Monthly      []ledger.MonthlyBalance
	Total        decimal.Decimal
	Loading      bool
	Err          error
	LastUpdated  time.Time
	FeedStatus   feed.Status
}

// Live reports whether push-based freshness is currently available.
func (s Snapshot) Live() bool {
	return s.FeedStatus == feed.StatusSubscribed
}

// Options configure a Collection.
type Options struct {
	Store        ledger.Store
	Owner        uuid.UUID
	Feed         *feed.Listener // nil disables the change feed
	PollInterval time.Duration
	FeedDebounce time.Duration
	Log          zerolog.Logger
}

// Collection owns the authoritative in-memory copy of the owner's
// transactions for the current session. Initial load, feed-triggered refetch,
// and poll-triggered refetch all merge into one snapshot; every trigger
// replaces the collection wholesale rather than patching rows from event
// payloads.
type Collection struct {
	opts Options

	mu       sync.RWMutex
	snap     Snapshot
	issued   uint64 // generation of the most recently issued fetch
	applied  uint64 // generation of the most recently applied response
	stopped  bool
	debounce *time.Timer

	cancelPoll func()
	sub        *feed.Subscription
	stopOnce   sync.Once
}

// New builds a Collection in its pre-fetch state: empty, loading.
func New(opts Options) *Collection {
	if opts.PollInterval <= 0 {
		opts.PollInterval = poll.DefaultInterval
	}
	if opts.FeedDebounce <= 0 {
		opts.FeedDebounce = defaultFeedDebounce
	}
	return &Collection{
		opts: opts,
		snap: Snapshot{Loading: true},
	}
}

// Start performs the initial fetch synchronously, then starts the change feed
// listener and the poll scheduler. Feed failure is not fatal: it is logged
// and polling carries freshness alone.
func (c *Collection) Start(ctx context.Context) {
	c.fetch(ctx, c.nextGen(true))

	if c.opts.Feed != nil {
		sub, err := c.opts.Feed.Start(ctx, c.opts.Owner,
			func(e feed.Event) { c.handleFeedEvent(ctx, e) },
			c.handleFeedStatus)
		if err != nil {
			c.opts.Log.Warn().Err(err).Msg("change feed unavailable, polling only")
		}
		c.sub = sub
	}

	c.cancelPoll = poll.Schedule(c.opts.PollInterval, func() {
		c.Refetch(ctx, false)
	})
}

// Refetch triggers a fetch-and-replace. With showLoading the loading flag is
// raised immediately (user-initiated refresh); without it the last-known data
// stays visible while the fetch runs. Overlapping refetches may run
// concurrently; responses from superseded fetches are discarded.
func (c *Collection) Refetch(ctx context.Context, showLoading bool) {
	gen, ok := c.tryNextGen(showLoading)
	if !ok {
		return
	}
	go c.fetch(ctx, gen)
}

// Snapshot returns an independent copy of the current state.
func (c *Collection) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := c.snap
	snap.Transactions = cloneTransactions(c.snap.Transactions)
	snap.Monthly = cloneMonthly(c.snap.Monthly)
	return snap
}

// Stop cancels the poll scheduler and releases the feed subscription.
// In-flight fetches issued before Stop resolve harmlessly: their responses
// are discarded without touching the snapshot.
func (c *Collection) Stop() {
	c.stopOnce.Do(func() {
		c.mu.Lock()
		c.stopped = true
		if c.debounce != nil {
			c.debounce.Stop()
		}
		c.mu.Unlock()

		if c.cancelPoll != nil {
			c.cancelPoll()
		}
		c.sub.Stop()
	})
}

func (c *Collection) nextGen(showLoading bool) uint64 {
	gen, _ := c.tryNextGen(showLoading)
	return gen
}

func (c *Collection) tryNextGen(showLoading bool) (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return 0, false
	}
	c.issued++
	if showLoading {
		c.snap.Loading = true
	}
	return c.issued, true
}

// fetch round-trips the three gateway queries and applies the result under
// the generation guard.
func (c *Collection) fetch(ctx context.Context, gen uint64) {
	if gen == 0 {
		return
	}

	transactions, err := c.opts.Store.ListForOwner(ctx, c.opts.Owner)
	var (
		monthly []ledger.MonthlyBalance
		total   decimal.Decimal
	)
	if err == nil {
		monthly, err = c.opts.Store.MonthlyBalances(ctx, c.opts.Owner)
	}
	if err == nil {
		total, err = c.opts.Store.TotalBalance(ctx, c.opts.Owner)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// A response is applied only when nothing newer has landed and the
	// collection is still mounted. Without this guard the visible snapshot
	// would belong to whichever response resolved last.
	if c.stopped || gen <= c.applied {
		if err != nil {
			c.opts.Log.Debug().Err(err).Msg("discarding stale fetch error")
		}
		return
	}
	c.applied = gen

	c.snap.Loading = false
	c.snap.LastUpdated = time.Now()
	if err != nil {
		// Never clear good data on a failed refresh.
		c.snap.Err = err
		c.opts.Log.Error().Err(err).Msg("collection refresh failed")
		return
	}
	c.snap.Transactions = cloneTransactions(transactions)
	c.snap.Monthly = cloneMonthly(monthly)
	c.snap.Total = total
	c.snap.Err = nil
}

// handleFeedEvent coalesces bursts of change notifications into one refetch.
// The payload is never inspected; the event is only a trigger.
func (c *Collection) handleFeedEvent(ctx context.Context, e feed.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.opts.Log.Debug().Str("kind", string(e.Kind)).Msg("feed event")
	if c.debounce != nil {
		c.debounce.Reset(c.opts.FeedDebounce)
		return
	}
	c.debounce = time.AfterFunc(c.opts.FeedDebounce, func() {
		c.mu.Lock()
		c.debounce = nil
		c.mu.Unlock()
		c.Refetch(ctx, false)
	})
}

func (c *Collection) handleFeedStatus(status feed.Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.snap.FeedStatus = status
	switch status {
	case feed.StatusSubscribed:
		c.opts.Log.Info().Msg("change feed subscribed")
	case feed.StatusConnecting:
		c.opts.Log.Debug().Msg("change feed connecting")
	default:
		// Degraded feed is never user-visible; polling compensates.
		c.opts.Log.Warn().Str("status", string(status)).Msg("change feed degraded")
	}
}

func cloneTransactions(items []ledger.Transaction) []ledger.Transaction {
	if len(items) == 0 {
		return nil
	}
	dup := make([]ledger.Transaction, len(items))
	copy(dup, items)
	return dup
}

func cloneMonthly(items []ledger.MonthlyBalance) []ledger.MonthlyBalance {
	if len(items) == 0 {
		return nil
	}
	dup := make([]ledger.MonthlyBalance, len(items))
	copy(dup, items)
	return dup
}
