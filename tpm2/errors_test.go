package tpm2

import (
	"errors"
	"testing"
)

func TestFmt1Subjects(t *testing.T) {
	for name, tc := range map[string]struct {
		rc        RC
		handle    int
		parameter int
		session   int
	}{
		"Handle2":    {rc: RCValue | (2 << 8), handle: 2},
		"Parameter3": {rc: RCAuthFail | rcP | (3 << 8), parameter: 3},
		"Session1":   {rc: RCBadAuth | rcS | (1 << 8), session: 1},
	} {
		t.Run(name, func(t *testing.T) {
			isFmt1, fmt1 := tc.rc.isFmt1Error()
			if !isFmt1 {
				t.Fatalf("%v is not a format-1 error", tc.rc)
			}
			if ok, i := fmt1.Handle(); ok != (tc.handle != 0) || i != tc.handle {
				t.Errorf("Handle() = (%v, %d), want (%v, %d)", ok, i, tc.handle != 0, tc.handle)
			}
			if ok, i := fmt1.Parameter(); ok != (tc.parameter != 0) || i != tc.parameter {
				t.Errorf("Parameter() = (%v, %d), want (%v, %d)", ok, i, tc.parameter != 0, tc.parameter)
			}
			if ok, i := fmt1.Session(); ok != (tc.session != 0) || i != tc.session {
				t.Errorf("Session() = (%v, %d), want (%v, %d)", ok, i, tc.session != 0, tc.session)
			}
		})
	}
}

func TestFmt1Is(t *testing.T) {
	// A format-1 error compares equal to its canonical code regardless of
	// the subject and index bits.
	rc := RCAuthFail | rcS | (2 << 8)
	if !errors.Is(rc, RCAuthFail) {
		t.Errorf("errors.Is(%v, RCAuthFail) = false, want true", rc)
	}
	if errors.Is(rc, RCBadAuth) {
		t.Errorf("errors.Is(%v, RCBadAuth) = true, want false", rc)
	}
	var fmt1 Fmt1Error
	if !errors.As(rc, &fmt1) {
		t.Fatalf("errors.As(%v, *Fmt1Error) = false, want true", rc)
	}
	if ok, i := fmt1.Session(); !ok || i != 2 {
		t.Errorf("Session() = (%v, %d), want (true, 2)", ok, i)
	}
}

func TestIsWarning(t *testing.T) {
	if !RCRetry.IsWarning() {
		t.Error("RCRetry.IsWarning() = false, want true")
	}
	if RCAuthFail.IsWarning() {
		t.Error("RCAuthFail.IsWarning() = true, want false")
	}
	if RCSequence.IsWarning() {
		t.Error("RCSequence.IsWarning() = true, want false")
	}
}
