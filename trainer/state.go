package trainer

import "github.com/pkg/errors"

// State is the phase of the engine within one batch.
type State int32

const (
	Idle State = iota
	Predicting
	Dispatching
	AwaitingBarrier
	Updating
)

func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Predicting:
		return "PREDICTING"
	case Dispatching:
		return "DISPATCHING"
	case AwaitingBarrier:
		return "AWAITING_BARRIER"
	case Updating:
		return "UPDATING"
	}
	return "UNKNOWN"
}

// Mode decides how the per-example deltas of a batch become one update.
type Mode uint8

const (
	// ModeSum subtracts the sum of the deltas, each already scaled by the
	// learning rate.
	ModeSum Mode = iota
	// ModeMean subtracts their average over the batch.
	ModeMean
)

func (m Mode) String() string {
	if m == ModeMean {
		return "mean"
	}
	return "sum"
}

// ParseMode accepts "sum" or "mean".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "sum":
		return ModeSum, nil
	case "mean":
		return ModeMean, nil
	}
	return ModeSum, errors.Errorf("unknown update mode %q", s)
}
