package loader

// State is the status of the initial data fetch.
type State int

const (
	// StateLoading is the initial state while the fetch is in flight.
	StateLoading State = iota

	// StateReady means the dataset has been populated.
	StateReady

	// StateFailed means the fetch or decode failed; the dataset is empty.
	StateFailed
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state can no longer change.
func (s State) Terminal() bool {
	return s == StateReady || s == StateFailed
}
