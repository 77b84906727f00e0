package refresh

// Status is the display state of the currently selected restaurant.
type Status int

const (
	// StatusIdle means nothing has been fetched or loaded yet.
	StatusIdle Status = iota
	// StatusLoading means a fetch is running and nothing is displayed.
	StatusLoading
	// StatusOK means the displayed payload came from a successful fetch.
	StatusOK
	// StatusStale means a previously successful payload is shown while
	// the latest fetch failed.
	StatusStale
	// StatusError means a fetch failed with no prior payload to show.
	StatusError
)

// String returns the status tag used in logs.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusOK:
		return "ok"
	case StatusStale:
		return "stale"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// ApplyOutcome classifies how one fetch result was handled.
type ApplyOutcome int

const (
	// CurrentSuccess updated the displayed restaurant.
	CurrentSuccess ApplyOutcome = iota
	// CurrentFailure failed for the displayed restaurant.
	CurrentFailure
	// BackgroundSuccess refreshed the cache of a non-selected restaurant.
	BackgroundSuccess
	// BackgroundFailure failed for a non-selected restaurant.
	BackgroundFailure
)
