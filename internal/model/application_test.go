package model

import "testing"

func TestValidApplicationState(t *testing.T) {
	for _, s := range ApplicationStates {
		if !ValidApplicationState(s) {
			t.Fatalf("known state %q rejected", s)
		}
	}
	for _, s := range []string{"", "INTERESTED", "pending", "applied "} {
		if ValidApplicationState(s) {
			t.Fatalf("unknown state %q accepted", s)
		}
	}
}
