package model

// Application records a user's interest in a job. One row exists per
// (username, job id) pair; the composite key is enforced by the database.
type Application struct {
	Username string `json:"username,omitempty"`
	JobID    int64  `json:"jobId"`
	State    string `json:"state"`
}

// Application states form a flat set: any state may move to any other via an
// explicit update. Request validation checks submitted values against this
// enumeration; nothing recomputes legality from the current state.
const (
	StateInterested = "interested" // default when no state is supplied
	StateApplied    = "applied"
	StateAccepted   = "accepted"
	StateRejected   = "rejected"
)

// ApplicationStates lists every valid state in a stable order.
var ApplicationStates = []string{StateInterested, StateApplied, StateAccepted, StateRejected}

// ValidApplicationState reports whether s is one of the known states.
func ValidApplicationState(s string) bool {
	for _, st := range ApplicationStates {
		if s == st {
			return true
		}
	}
	return false
}
