package engine

import (
	"errors"
	"fmt"
	"testing"
)

// TestTichuTypeValid verifies which declarations the action API accepts.
func TestTichuTypeValid(t *testing.T) {
	tests := []struct {
		t    TichuType
		want bool
	}{
		{TichuNone, true},
		{TichuNormal, true},
		{TichuGrand, true},
		{TichuUnknown, false},
		{"", false},
		{"Grand", false},
	}
	for _, tt := range tests {
		if got := tt.t.Valid(); got != tt.want {
			t.Errorf("%q.Valid() = %v, want %v", tt.t, got, tt.want)
		}
	}
}

// TestCombinationTypeNames verifies the wire names of every combination type.
func TestCombinationTypeNames(t *testing.T) {
	want := map[CombinationType]string{
		TypeEmpty:        "empty",
		TypeSingle:       "single",
		TypePair:         "pair",
		TypeTriple:       "triple",
		TypeFullHouse:    "full_house",
		TypeStair:        "stair",
		TypeBomb:         "bomb",
		TypeStraightBomb: "straight_bomb",
		TypeStraight:     "straight",
		TypeNone:         "none",
	}
	for typ, name := range want {
		if string(typ) != name {
			t.Errorf("%v = %q, want %q", typ, string(typ), name)
		}
	}
}

func TestResult(t *testing.T) {
	if got := Result(nil); got != "OK" {
		t.Errorf("Result(nil) = %q, want OK", got)
	}
	if got := Result(ErrNotHighEnough); got != "not high enough" {
		t.Errorf("Result(ErrNotHighEnough) = %q", got)
	}
	wrapped := fmt.Errorf("table 1: %w", ErrNotBomb)
	if !errors.Is(wrapped, ErrNotBomb) {
		t.Error("wrapped rule error not matched by errors.Is")
	}
}

func TestColorsAndSymbols(t *testing.T) {
	if len(Colors)*len(Symbols)+4 != len(Deck()) {
		t.Errorf("%d colors x %d symbols + 4 specials != %d cards", len(Colors), len(Symbols), len(Deck()))
	}
}
