package refresh

import (
	"context"
	"time"
)

// staleCheckInterval is how often the event loop looks for the calendar
// day rolling over under a displayed payload.
const staleCheckInterval = time.Minute

// Run drives the controller's event loop until ctx is cancelled: it
// applies fetch results, schedules retries after failures, prefetches
// the other restaurants after a success and re-refreshes on the
// configured interval and on day rollover.
//
// The optional onChange hook runs after every applied result; callers
// use it to re-render the display.
func (c *Controller) Run(ctx context.Context, onChange func(DisplayState)) error {
	if !c.LoadCacheForCurrent() {
		c.StartRefresh()
	} else {
		c.MaybeRefreshOnSelection()
	}
	if onChange != nil {
		onChange(c.Snapshot())
	}

	staleTicker := time.NewTicker(staleCheckInterval)
	defer staleTicker.Stop()

	var intervalTicker *time.Ticker
	var intervalC <-chan time.Time
	if minutes := c.Settings().RefreshMinutes; minutes > 0 {
		intervalTicker = time.NewTicker(time.Duration(minutes) * time.Minute)
		defer intervalTicker.Stop()
		intervalC = intervalTicker.C
	}

	retryTimer := time.NewTimer(0)
	if !retryTimer.Stop() {
		<-retryTimer.C
	}
	defer retryTimer.Stop()
	retryArmed := false

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg := <-c.results:
			switch c.Apply(msg) {
			case CurrentSuccess:
				if retryArmed {
					if !retryTimer.Stop() {
						select {
						case <-retryTimer.C:
						default:
						}
					}
					retryArmed = false
				}
				c.PrefetchOthers()
			case CurrentFailure:
				if !retryArmed {
					retryTimer.Reset(c.NextRetryDelay())
					retryArmed = true
				}
			}
			if onChange != nil {
				onChange(c.Snapshot())
			}

		case <-retryTimer.C:
			retryArmed = false
			c.StartRefreshRetry()

		case <-staleTicker.C:
			c.CheckStaleDateAndRefresh()

		case <-intervalC:
			c.StartRefreshRetry()
		}
	}
}
