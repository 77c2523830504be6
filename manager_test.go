// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package abide

import "testing"

// TestInvalidVariableIdentifier checks the guard against a non-positive
// external variable identifier. Outside a debug build this is a
// programmer error recorded on the sticky status rather than a panic.
func TestInvalidVariableIdentifier(t *testing.T) {
	m := newTestManager(t, 2)

	if m.Errored() {
		t.Fatal("a fresh Manager should not start out errored")
	}

	got := m.Literal(0)
	if got != Zero {
		t.Errorf("Literal(0) = %v, want the Zero constant", got)
	}
	if !m.Errored() {
		t.Error("Literal(0) should set the sticky error flag")
	}

	m.clearError()
	if m.Literal(-3) != Zero {
		t.Error("Literal(-3) should also be rejected")
	}
	if !m.Errored() {
		t.Error("Literal(-3) should set the sticky error flag")
	}
}
