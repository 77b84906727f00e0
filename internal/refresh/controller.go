package refresh

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/lunch-tray/internal/catalog"
	"github.com/jonathan/lunch-tray/internal/httpget"
	"github.com/jonathan/lunch-tray/internal/menu"
	"github.com/jonathan/lunch-tray/internal/payloadcache"
	"github.com/jonathan/lunch-tray/internal/provider"
	"github.com/jonathan/lunch-tray/internal/settings"
)

// retrySteps is the backoff ladder for failed refreshes of the selected
// restaurant. The last step repeats until a fetch succeeds.
var retrySteps = []time.Duration{
	10 * time.Second,
	30 * time.Second,
	60 * time.Second,
	300 * time.Second,
}

// prefetchInterval rate-limits background prefetches of non-selected
// restaurants.
const prefetchInterval = 5 * time.Minute

// FetchMessage carries one finished fetch attempt back to the
// controller's event loop.
type FetchMessage struct {
	RequestID uuid.UUID
	Code      string
	Language  string
	Outcome   *menu.FetchOutcome
}

// DisplayState is a point-in-time copy of what the selected restaurant
// currently shows. StaleDateISO is set only when the shown payload
// describes a day other than today.
type DisplayState struct {
	Status         Status
	ErrorMessage   string
	NetworkError   bool
	TodayMenu      *menu.TodayMenu
	RestaurantName string
	RestaurantURL  string
	PayloadDate    string
	StaleDateISO   string
}

// Controller owns the refresh lifecycle: it dispatches fetch workers,
// applies their results to the display state, persists payloads and
// settings, and decides when retries and prefetches happen.
//
// Fetch workers run concurrently; everything else is serialized through
// the mutex so Apply and the read-side accessors can be called from the
// event loop and the rendering side without coordination.
type Controller struct {
	getter       httpget.Getter
	store        *payloadcache.Store
	log          zerolog.Logger
	now          func() time.Time
	settingsPath string

	results chan FetchMessage

	mu           sync.Mutex
	sett         settings.Settings
	display      DisplayState
	rawPayload   string
	inFlight     map[string]struct{}
	retryStep    int
	lastPrefetch time.Time
}

// New returns a controller over the given collaborators. The settings
// file at settingsPath is loaded immediately; a missing file yields the
// defaults.
func New(getter httpget.Getter, store *payloadcache.Store, settingsPath string, log zerolog.Logger) *Controller {
	return &Controller{
		getter:       getter,
		store:        store,
		log:          log,
		now:          time.Now,
		settingsPath: settingsPath,
		results:      make(chan FetchMessage, 32),
		sett:         settings.Load(settingsPath),
		inFlight:     make(map[string]struct{}),
	}
}

// Results exposes the channel fetch workers deliver on. The event loop
// in Run consumes it; tests may drain it directly.
func (c *Controller) Results() <-chan FetchMessage {
	return c.results
}

// Settings returns a copy of the current settings.
func (c *Controller) Settings() settings.Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sett
}

// Snapshot returns a copy of the current display state.
func (c *Controller) Snapshot() DisplayState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.display
}

// todayISO formats the controller clock's local date.
func (c *Controller) todayISO() string {
	return c.now().Format("2006-01-02")
}

func fetchKey(code, language string) string {
	return code + "|" + language
}

// StartRefresh fetches the selected restaurant, marking it loading.
func (c *Controller) StartRefresh() bool {
	c.mu.Lock()
	code := c.sett.RestaurantCode
	c.mu.Unlock()
	return c.StartRefreshForCode(code, true)
}

// StartRefreshRetry fetches the selected restaurant without disturbing
// whatever is currently shown.
func (c *Controller) StartRefreshRetry() bool {
	c.mu.Lock()
	code := c.sett.RestaurantCode
	c.mu.Unlock()
	return c.StartRefreshForCode(code, false)
}

// StartRefreshForCode dispatches a fetch worker for one restaurant. A
// fetch already in flight for the same (code, language) pair is not
// duplicated; the method reports whether a worker was started. When
// markLoading is set and the code is the selected restaurant, the
// display switches to the loading state.
func (c *Controller) StartRefreshForCode(code string, markLoading bool) bool {
	c.mu.Lock()
	language := c.sett.Language
	key := fetchKey(code, language)
	if _, dup := c.inFlight[key]; dup {
		c.mu.Unlock()
		return false
	}
	c.inFlight[key] = struct{}{}
	// Loading is shown only while nothing else is; a displayed payload
	// stays visible until the fetch resolves.
	if markLoading && code == c.sett.RestaurantCode && c.rawPayload == "" {
		c.display = DisplayState{Status: StatusLoading}
	}
	r := catalog.Lookup(code, c.sett.IncludeAntell)
	c.mu.Unlock()

	id := uuid.New()
	c.log.Debug().
		Str("request_id", id.String()).
		Str("code", code).
		Str("language", language).
		Msg("dispatching fetch")

	go c.fetchToday(id, code, r, language)
	return true
}

// fetchToday is the worker body: build the URL, fetch, parse, deliver.
// Workers always run to completion; results for restaurants the user
// has since switched away from still refresh the cache. The message
// carries the requested code, not the resolved one, so Apply clears
// the same in-flight key the dispatch inserted even when the catalog
// fell back to the default restaurant.
func (c *Controller) fetchToday(id uuid.UUID, code string, r catalog.Restaurant, language string) {
	todayISO := c.todayISO()
	outcome := c.fetchOutcome(r, language, todayISO)
	if !outcome.OK && outcome.RestaurantName == "" {
		outcome.RestaurantName = r.Name
		outcome.RestaurantURL = r.URL
	}
	c.results <- FetchMessage{RequestID: id, Code: code, Language: language, Outcome: outcome}
}

func (c *Controller) fetchOutcome(r catalog.Restaurant, language, todayISO string) *menu.FetchOutcome {
	url, err := feedURL(r, language, c.now())
	if err != nil {
		return &menu.FetchOutcome{ErrorMessage: err.Error(), Provider: r.Provider}
	}
	raw, err := c.getter.Get(context.Background(), url)
	if err != nil {
		return &menu.FetchOutcome{ErrorMessage: err.Error(), Provider: r.Provider}
	}
	return provider.Parse(raw, todayISO, language, r)
}

// Apply folds one fetch result into the controller state and reports
// how it was handled. Cache writes happen here, on the event loop, so
// the store never sees concurrent writers for one key.
func (c *Controller) Apply(msg FetchMessage) ApplyOutcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.inFlight, fetchKey(msg.Code, msg.Language))

	current := msg.Code == c.sett.RestaurantCode && msg.Language == c.sett.Language
	out := msg.Outcome

	c.log.Debug().
		Str("request_id", msg.RequestID.String()).
		Str("code", msg.Code).
		Bool("ok", out.OK).
		Msg("fetch completed")

	if !current {
		if out.OK {
			c.writeCacheLocked(out.Provider, msg.Code, msg.Language, out.RawPayload)
			return BackgroundSuccess
		}
		c.log.Debug().
			Str("code", msg.Code).
			Str("error", out.ErrorMessage).
			Msg("background fetch failed")
		return BackgroundFailure
	}

	if out.OK {
		c.writeCacheLocked(out.Provider, msg.Code, msg.Language, out.RawPayload)
		c.display = DisplayState{
			Status:         StatusOK,
			TodayMenu:      out.TodayMenu,
			RestaurantName: out.RestaurantName,
			RestaurantURL:  out.RestaurantURL,
			PayloadDate:    out.PayloadDate,
		}
		c.rawPayload = out.RawPayload
		c.retryStep = 0
		c.updateStaleDateLocked()
		c.sett.LastUpdatedEpochMS = c.now().UnixMilli()
		if err := settings.Save(c.settingsPath, c.sett); err != nil {
			c.log.Warn().Err(err).Msg("failed to save settings")
		}
		return CurrentSuccess
	}

	if c.rawPayload != "" {
		// Keep showing the last good payload; flag it stale.
		c.display.Status = StatusStale
		c.display.ErrorMessage = out.ErrorMessage
		c.display.NetworkError = isProbableNetworkError(out.ErrorMessage)
		c.updateStaleDateLocked()
	} else {
		c.display = DisplayState{
			Status:       StatusError,
			ErrorMessage: out.ErrorMessage,
			NetworkError: isProbableNetworkError(out.ErrorMessage),
		}
	}
	return CurrentFailure
}

func (c *Controller) writeCacheLocked(kind menu.ProviderKind, code, language, payload string) {
	if payload == "" {
		return
	}
	if err := c.store.Write(kind, code, language, payload); err != nil {
		c.log.Warn().Err(err).Str("code", code).Msg("failed to write payload cache")
	}
}

// updateStaleDateLocked records the shown payload's date when it is not
// today, clearing it otherwise.
func (c *Controller) updateStaleDateLocked() {
	if c.display.PayloadDate != "" && c.display.PayloadDate != c.todayISO() {
		c.display.StaleDateISO = c.display.PayloadDate
	} else {
		c.display.StaleDateISO = ""
	}
}

// LoadCacheForCurrent parses the cached payload for the selected
// restaurant into the display state, marking it stale when the payload
// describes a day other than today. It reports whether anything was
// loaded. Providers whose freshness comes from storage take their
// payload date from the cache file's modification time.
func (c *Controller) LoadCacheForCurrent() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	r := catalog.Lookup(c.sett.RestaurantCode, c.sett.IncludeAntell)
	raw, ok := c.store.Read(r.Provider, r.Code, c.sett.Language)
	if !ok {
		return false
	}

	todayISO := c.todayISO()
	out := provider.Parse(raw, todayISO, c.sett.Language, r)
	if !out.OK {
		return false
	}

	payloadDate := out.PayloadDate
	if r.Provider.Freshness() == menu.FreshnessStorageMtime {
		if mtime, ok := c.store.MTime(r.Provider, r.Code, c.sett.Language); ok {
			payloadDate = mtime.Local().Format("2006-01-02")
		}
	}

	status := StatusOK
	if payloadDate != todayISO {
		status = StatusStale
	}
	c.display = DisplayState{
		Status:         status,
		TodayMenu:      out.TodayMenu,
		RestaurantName: out.RestaurantName,
		RestaurantURL:  out.RestaurantURL,
		PayloadDate:    payloadDate,
	}
	c.rawPayload = raw
	c.updateStaleDateLocked()
	return true
}

// CheckStaleDateAndRefresh notices the calendar day rolling over under
// a displayed payload: the display is marked stale and a refresh is
// started without disturbing what is shown. It reports whether a
// refresh was started.
func (c *Controller) CheckStaleDateAndRefresh() bool {
	c.mu.Lock()
	status := c.display.Status
	payloadDate := c.display.PayloadDate
	code := c.sett.RestaurantCode
	rolledOver := (status == StatusOK || status == StatusStale) &&
		payloadDate != "" && payloadDate != c.todayISO()
	if rolledOver {
		c.display.Status = StatusStale
		c.display.StaleDateISO = payloadDate
	}
	c.mu.Unlock()

	if !rolledOver {
		return false
	}
	return c.StartRefreshForCode(code, false)
}

// PrefetchOthers warms the cache for every restaurant other than the
// selected one whose cached payload is missing or not from today.
// Calls within the rate-limit window are ignored.
func (c *Controller) PrefetchOthers() {
	c.mu.Lock()
	if !c.lastPrefetch.IsZero() && c.now().Sub(c.lastPrefetch) < prefetchInterval {
		c.mu.Unlock()
		return
	}
	c.lastPrefetch = c.now()
	current := c.sett.RestaurantCode
	language := c.sett.Language
	list := catalog.List(c.sett.IncludeAntell)
	c.mu.Unlock()

	todayISO := c.todayISO()
	for _, r := range list {
		if r.Code == current {
			continue
		}
		if mtime, ok := c.store.MTime(r.Provider, r.Code, language); ok {
			if mtime.Local().Format("2006-01-02") == todayISO {
				continue
			}
		}
		c.StartRefreshForCode(r.Code, false)
	}
}

// MaybeRefreshOnSelection refreshes the selected restaurant when its
// cache is missing or older than the configured refresh interval. An
// interval of zero disables interval refresh. It reports whether a
// refresh was started.
func (c *Controller) MaybeRefreshOnSelection() bool {
	c.mu.Lock()
	r := catalog.Lookup(c.sett.RestaurantCode, c.sett.IncludeAntell)
	language := c.sett.Language
	interval := time.Duration(c.sett.RefreshMinutes) * time.Minute
	c.mu.Unlock()

	if interval == 0 {
		return false
	}
	mtime, ok := c.store.MTime(r.Provider, r.Code, language)
	if ok && c.now().Sub(mtime) < interval {
		return false
	}
	return c.StartRefreshForCode(r.Code, true)
}

// NextRetryDelay returns the current backoff step and advances the
// ladder, holding at the last step.
func (c *Controller) NextRetryDelay() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	d := retrySteps[c.retryStep]
	if c.retryStep < len(retrySteps)-1 {
		c.retryStep++
	}
	return d
}

// ResetRetryBackoff rewinds the ladder to its first step.
func (c *Controller) ResetRetryBackoff() {
	c.mu.Lock()
	c.retryStep = 0
	c.mu.Unlock()
}

// OverrideSelection points the controller at a restaurant and language
// for this process only; empty arguments keep the loaded values and
// nothing is persisted.
func (c *Controller) OverrideSelection(code, language string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if code != "" {
		c.sett.RestaurantCode = code
	}
	if language != "" {
		c.sett.Language = language
	}
	c.display = DisplayState{Status: StatusIdle}
	c.rawPayload = ""
	c.retryStep = 0
}

// SetRestaurant switches the selection to code, persists the choice,
// resets the display, loads whatever the cache holds and refreshes when
// the cache is missing or expired.
func (c *Controller) SetRestaurant(code string) {
	c.mu.Lock()
	c.sett.RestaurantCode = code
	if err := settings.Save(c.settingsPath, c.sett); err != nil {
		c.log.Warn().Err(err).Msg("failed to save settings")
	}
	c.display = DisplayState{Status: StatusIdle}
	c.rawPayload = ""
	c.retryStep = 0
	c.mu.Unlock()

	loaded := c.LoadCacheForCurrent()
	if !loaded {
		c.StartRefresh()
		return
	}
	c.MaybeRefreshOnSelection()
}

// CycleRestaurant steps the selection forward or backward through the
// catalog and applies the same selection handling as SetRestaurant.
func (c *Controller) CycleRestaurant(direction int) {
	c.mu.Lock()
	next := catalog.Cycle(c.sett.RestaurantCode, direction, c.sett.IncludeAntell)
	c.mu.Unlock()
	c.SetRestaurant(next.Code)
}

// SetLanguage switches the menu language, persists it and reloads the
// selected restaurant from scratch; cached payloads are per-language.
func (c *Controller) SetLanguage(language string) {
	c.mu.Lock()
	if c.sett.Language == language {
		c.mu.Unlock()
		return
	}
	c.sett.Language = language
	if err := settings.Save(c.settingsPath, c.sett); err != nil {
		c.log.Warn().Err(err).Msg("failed to save settings")
	}
	c.display = DisplayState{Status: StatusIdle}
	c.rawPayload = ""
	c.retryStep = 0
	c.mu.Unlock()

	if !c.LoadCacheForCurrent() {
		c.StartRefresh()
		return
	}
	c.MaybeRefreshOnSelection()
}

// SetIncludeAntell toggles the optional restaurant group. Disabling the
// group while an optional restaurant is selected falls back to the
// first campus restaurant.
func (c *Controller) SetIncludeAntell(include bool) {
	c.mu.Lock()
	c.sett.IncludeAntell = include
	fallback := ""
	if !include && catalog.IsOptional(c.sett.RestaurantCode) {
		fallback = catalog.Lookup("", false).Code
	}
	if err := settings.Save(c.settingsPath, c.sett); err != nil {
		c.log.Warn().Err(err).Msg("failed to save settings")
	}
	c.mu.Unlock()

	if fallback != "" {
		c.SetRestaurant(fallback)
	}
}
