package callstate

type View string

const (
	ViewStart      View = "start"
	ViewLoading    View = "loading"
	ViewActiveCall View = "active_call"
	ViewResult     View = "result"
)

// View picks the single screen to show. The precedence mirrors the flag
// checks: a result wins, then any loading, then an active call, and the
// start control only when none of those hold.
func (s State) View() View {
	f := s.Flags()
	switch {
	case f.CallResult != nil:
		return ViewResult
	case f.Loading || f.LoadingResult:
		return ViewLoading
	case f.Started:
		return ViewActiveCall
	default:
		return ViewStart
	}
}

type Snapshot struct {
	Version uint64 `json:"version"`
	Phase   Phase  `json:"phase"`
	View    View   `json:"view"`
	Flags
	Speech
	Error string `json:"error,omitempty"`
}

func (s State) Snapshot(version uint64) Snapshot {
	return Snapshot{
		Version: version,
		Phase:   s.Phase,
		View:    s.View(),
		Flags:   s.Flags(),
		Speech:  s.Speech,
		Error:   s.Error,
	}
}
