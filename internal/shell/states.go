package shell

// State represents the current step of the acquisition view.
type State int

const (
	StateTitle       State = iota // Waiting for the song title
	StateArtist                   // Waiting for the optional artist
	StateSearching                // Catalog query in flight
	StateResults                  // Showing ranked candidates
	StateDownloading              // Download, tag and place running
	StateDone                     // Showing the outcome of the cycle
)

// IsInput returns true if a text input owns the keyboard.
func (s State) IsInput() bool {
	return s == StateTitle || s == StateArtist
}

// IsLoading returns true if this is a loading/async state.
func (s State) IsLoading() bool {
	switch s {
	case StateSearching, StateDownloading:
		return true
	case StateTitle, StateArtist, StateResults, StateDone:
		return false
	}
	return false
}
