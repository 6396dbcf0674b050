package syncengine

import "fmt"

var SyncInFlight = fmt.Errorf("a sync for this owner and kind is already running")
var UnknownJob = fmt.Errorf("no such sync job")

// WriteError marks a reconciliation transaction that could not be
// committed. The local store is unchanged when it surfaces; the run is
// recorded as failed and the cursor keeps its old position.
type WriteError struct {
	Kind Kind
	Err  error
}

func (e WriteError) Error() string {
	return fmt.Sprintf("failed to write %s reconciliation: %v", e.Kind, e.Err)
}

func (e WriteError) Unwrap() error { return e.Err }
