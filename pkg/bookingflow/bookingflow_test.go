package bookingflow

import (
	"reflect"
	"testing"
)

func TestHappyPath(t *testing.T) {
	s := New()
	if s.Step != StepProvider {
		t.Fatalf("expected initial step provider, got %s", s.Step)
	}

	s = Reduce(s, SelectProvider{Provider: "doc-1"})
	if s.Step != StepVisitType {
		t.Errorf("expected visitType step, got %s", s.Step)
	}
	s = Reduce(s, SelectVisitType{VisitType: "follow_up"})
	if s.Step != StepSlot {
		t.Errorf("expected slot step, got %s", s.Step)
	}
	s = Reduce(s, SelectSlot{Slot: "slot-1"})
	if s.Step != StepReview {
		t.Errorf("expected review step, got %s", s.Step)
	}

	s = Reduce(s, SetLoading{Loading: true})
	s = Reduce(s, SetLoading{Loading: false})
	s = Reduce(s, NextStep{})
	if s.Step != StepConfirmation {
		t.Errorf("expected confirmation step, got %s", s.Step)
	}

	if s.Provider != "doc-1" || s.VisitType != "follow_up" || s.Slot != "slot-1" {
		t.Errorf("selections lost along the way: %+v", s)
	}
}

func TestSelectProvider_ClearsDownstreamChoices(t *testing.T) {
	s := New()
	s = Reduce(s, SelectProvider{Provider: "doc-1"})
	s = Reduce(s, SelectVisitType{VisitType: "follow_up"})
	s = Reduce(s, SelectSlot{Slot: "slot-1"})

	s = Reduce(s, SelectProvider{Provider: "doc-2"})
	if s.VisitType != "" || s.Slot != "" {
		t.Errorf("expected visit type and slot cleared, got %+v", s)
	}
	if s.Step != StepVisitType {
		t.Errorf("expected step visitType, got %s", s.Step)
	}
}

func TestSelectVisitType_ClearsSlot(t *testing.T) {
	s := New()
	s = Reduce(s, SelectProvider{Provider: "doc-1"})
	s = Reduce(s, SelectVisitType{VisitType: "follow_up"})
	s = Reduce(s, SelectSlot{Slot: "slot-1"})

	s = Reduce(s, SelectVisitType{VisitType: "sick_visit"})
	if s.Slot != "" {
		t.Errorf("expected slot cleared, got %q", s.Slot)
	}
	if s.Step != StepSlot {
		t.Errorf("expected step slot, got %s", s.Step)
	}
	if s.Provider != "doc-1" {
		t.Errorf("expected provider kept, got %q", s.Provider)
	}
}

func TestNavigationBounds(t *testing.T) {
	s := New()
	s = Reduce(s, PrevStep{})
	if s.Step != StepProvider {
		t.Errorf("expected to stay at provider, got %s", s.Step)
	}

	s = Reduce(s, GoToStep{Step: StepConfirmation})
	s = Reduce(s, NextStep{})
	if s.Step != StepConfirmation {
		t.Errorf("expected to stay at confirmation, got %s", s.Step)
	}

	s = Reduce(s, GoToStep{Step: Step(99)})
	if s.Step != StepConfirmation {
		t.Errorf("expected invalid step ignored, got %s", s.Step)
	}
}

func TestSetError_ClearsLoading(t *testing.T) {
	s := New()
	s = Reduce(s, SetLoading{Loading: true})
	s = Reduce(s, SetError{Error: "Selected slot is not available"})

	if s.Loading {
		t.Error("expected loading cleared on error")
	}
	if s.Error != "Selected slot is not available" {
		t.Errorf("unexpected error %q", s.Error)
	}

	s = Reduce(s, SelectSlot{Slot: "slot-2"})
	if s.Error != "" {
		t.Error("expected error cleared on new selection")
	}
}

func TestReset(t *testing.T) {
	s := New()
	s = Reduce(s, SelectProvider{Provider: "doc-1"})
	s = Reduce(s, SetNotes{Notes: "some notes"})
	s = Reduce(s, Reset{})

	if !reflect.DeepEqual(s, New()) {
		t.Errorf("expected initial state after reset, got %+v", s)
	}
}

func TestHydrate(t *testing.T) {
	saved := State{Step: StepReview, Provider: "doc-1", VisitType: "follow_up", Slot: "slot-1"}
	s := Reduce(New(), Hydrate{State: saved})
	if !reflect.DeepEqual(s, saved) {
		t.Errorf("expected hydrated state, got %+v", s)
	}
}

func TestSetMeta_MergesWithoutMutating(t *testing.T) {
	s := New()
	s = Reduce(s, SetMeta{Meta: map[string]string{"doctor_name": "Dr. Patel"}})
	next := Reduce(s, SetMeta{Meta: map[string]string{"hospital": "City General"}})

	if len(s.Meta) != 1 {
		t.Errorf("prior state mutated: %v", s.Meta)
	}
	if next.Meta["doctor_name"] != "Dr. Patel" || next.Meta["hospital"] != "City General" {
		t.Errorf("expected merged meta, got %v", next.Meta)
	}
}

func TestCanAdvance(t *testing.T) {
	cases := []struct {
		name string
		s    State
		want bool
	}{
		{"provider unselected", State{Step: StepProvider}, false},
		{"provider selected", State{Step: StepProvider, Provider: "doc-1"}, true},
		{"visit type unselected", State{Step: StepVisitType, Provider: "doc-1"}, false},
		{"slot selected", State{Step: StepSlot, Slot: "slot-1"}, true},
		{"review while loading", State{Step: StepReview, Loading: true}, false},
		{"review idle", State{Step: StepReview}, true},
		{"confirmation is terminal", State{Step: StepConfirmation}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanAdvance(tc.s); got != tc.want {
				t.Errorf("CanAdvance(%+v) = %v, want %v", tc.s, got, tc.want)
			}
		})
	}
}

func TestCanGoBack(t *testing.T) {
	if CanGoBack(State{Step: StepProvider}) {
		t.Error("should not go back from provider")
	}
	if !CanGoBack(State{Step: StepReview}) {
		t.Error("should go back from review")
	}
	if CanGoBack(State{Step: StepConfirmation}) {
		t.Error("confirmation is terminal")
	}
}
