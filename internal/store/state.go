package store

// Phase tracks where a mutating call is in its lifecycle.
//
// Every mutation walks Idle → InFlight → Refreshing → Idle. Both the success
// and the failure branch route through Refreshing: the refetch runs whether
// or not the server accepted the write, so the view converges to server
// truth either way.
type Phase int

const (
	Idle Phase = iota
	InFlight
	Refreshing
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case InFlight:
		return "in_flight"
	case Refreshing:
		return "refreshing"
	default:
		return ""
	}
}

// Notifier receives phase transitions for a named operation. Views use it to
// gate rendering while a mutation or its follow-up refetch is outstanding.
type Notifier func(op string, phase Phase)

// Confirmer gates irreversible operations behind an explicit user check.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a plain function to [Confirmer].
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// AlwaysConfirm is a [Confirmer] for flows where the confirmation already
// happened upstream (--yes flag, TUI confirm view).
var AlwaysConfirm = ConfirmFunc(func(string) bool { return true })
