package app

import (
	"context"
	"sync"
	"time"

	"github.com/ecocart/storefront/internal/address/domain"
)

// Debounced spaces upstream searches at least `gap` apart so per-keystroke
// queries respect the lookup service's rate limits. A call arriving early
// waits out the remainder of the gap (or the context, whichever ends first).
type Debounced struct {
	inner Lookup
	gap   time.Duration

	mu   sync.Mutex
	last time.Time
}

func NewDebounced(inner Lookup, gap time.Duration) *Debounced {
	return &Debounced{inner: inner, gap: gap}
}

func (d *Debounced) Search(ctx context.Context, query string) ([]domain.Place, error) {
	if err := d.wait(ctx); err != nil {
		return nil, err
	}
	return d.inner.Search(ctx, query)
}

func (d *Debounced) wait(ctx context.Context) error {
	d.mu.Lock()
	now := time.Now()
	next := d.last.Add(d.gap)
	if next.Before(now) {
		next = now
	}
	d.last = next
	d.mu.Unlock()

	delay := time.Until(next)
	if delay <= 0 {
		return nil
	}

	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
