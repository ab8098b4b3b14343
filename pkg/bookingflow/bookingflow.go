// Package bookingflow models the multi-step booking wizard as a pure state
// machine: explicit state, tagged action variants, and a Reduce function with
// no side effects. Any client (or test) can drive it deterministically.
package bookingflow

// Step identifies the active wizard screen.
type Step int

const (
	StepProvider Step = iota
	StepVisitType
	StepSlot
	StepReview
	StepConfirmation
)

func (s Step) String() string {
	switch s {
	case StepProvider:
		return "provider"
	case StepVisitType:
		return "visitType"
	case StepSlot:
		return "slot"
	case StepReview:
		return "review"
	case StepConfirmation:
		return "confirmation"
	default:
		return "unknown"
	}
}

// State is the complete wizard state. The zero value is not usable; start
// from New().
type State struct {
	Step      Step              `json:"step"`
	Provider  string            `json:"provider,omitempty"`
	VisitType string            `json:"visit_type,omitempty"`
	Slot      string            `json:"slot,omitempty"`
	Notes     string            `json:"notes,omitempty"`
	Meta      map[string]string `json:"meta,omitempty"`
	Loading   bool              `json:"loading"`
	Error     string            `json:"error,omitempty"`
}

// New returns the initial wizard state.
func New() State {
	return State{Step: StepProvider}
}

// Action is one wizard transition. Implementations are the *Action types in
// this package; Reduce ignores unknown implementations.
type Action interface {
	isAction()
}

// SelectProvider picks a provider, clearing any visit type and slot chosen
// for the previous provider, and advances to the visit type step.
type SelectProvider struct{ Provider string }

// SelectVisitType picks a visit type, clearing any slot chosen for the
// previous visit type, and advances to the slot step.
type SelectVisitType struct{ VisitType string }

// SelectSlot picks a slot and advances to review.
type SelectSlot struct{ Slot string }

// SetNotes records free-text notes without changing the step.
type SetNotes struct{ Notes string }

// SetMeta merges extra display data without changing the step.
type SetMeta struct{ Meta map[string]string }

// GoToStep jumps to an arbitrary step.
type GoToStep struct{ Step Step }

// NextStep advances linearly; it stops at confirmation.
type NextStep struct{}

// PrevStep goes back linearly; it stops at the provider step.
type PrevStep struct{}

// SetLoading toggles the in-flight flag around the booking call.
type SetLoading struct{ Loading bool }

// SetError records a submission error and clears the loading flag.
type SetError struct{ Error string }

// Reset returns the wizard to its initial state.
type Reset struct{}

// Hydrate replaces the whole state, e.g. from persisted client storage.
type Hydrate struct{ State State }

func (SelectProvider) isAction()  {}
func (SelectVisitType) isAction() {}
func (SelectSlot) isAction()      {}
func (SetNotes) isAction()        {}
func (SetMeta) isAction()         {}
func (GoToStep) isAction()        {}
func (NextStep) isAction()        {}
func (PrevStep) isAction()        {}
func (SetLoading) isAction()      {}
func (SetError) isAction()        {}
func (Reset) isAction()           {}
func (Hydrate) isAction()         {}

// Reduce applies one action to the state and returns the next state. It
// never mutates its input.
func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case SelectProvider:
		s.Provider = act.Provider
		s.VisitType = ""
		s.Slot = ""
		s.Error = ""
		s.Step = StepVisitType
	case SelectVisitType:
		s.VisitType = act.VisitType
		s.Slot = ""
		s.Error = ""
		s.Step = StepSlot
	case SelectSlot:
		s.Slot = act.Slot
		s.Error = ""
		s.Step = StepReview
	case SetNotes:
		s.Notes = act.Notes
	case SetMeta:
		merged := make(map[string]string, len(s.Meta)+len(act.Meta))
		for k, v := range s.Meta {
			merged[k] = v
		}
		for k, v := range act.Meta {
			merged[k] = v
		}
		s.Meta = merged
	case GoToStep:
		if act.Step >= StepProvider && act.Step <= StepConfirmation {
			s.Step = act.Step
		}
	case NextStep:
		if s.Step < StepConfirmation {
			s.Step++
		}
	case PrevStep:
		if s.Step > StepProvider {
			s.Step--
		}
	case SetLoading:
		s.Loading = act.Loading
	case SetError:
		s.Error = act.Error
		s.Loading = false
	case Reset:
		return New()
	case Hydrate:
		return act.State
	}
	return s
}

// CanAdvance reports whether the current step has the selection it needs to
// move forward.
func CanAdvance(s State) bool {
	switch s.Step {
	case StepProvider:
		return s.Provider != ""
	case StepVisitType:
		return s.VisitType != ""
	case StepSlot:
		return s.Slot != ""
	case StepReview:
		return !s.Loading
	default:
		return false
	}
}

// CanGoBack reports whether backward navigation is allowed. The confirmation
// screen is terminal.
func CanGoBack(s State) bool {
	return s.Step > StepProvider && s.Step < StepConfirmation
}
