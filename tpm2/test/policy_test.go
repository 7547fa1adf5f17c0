package tpm2test

import (
	"bytes"
	"testing"

	. "github.com/cryptalis/esys/tpm2"
	"github.com/cryptalis/esys/transport/simulator"
)

// TestPolicyTrialCommandCode checks that the locally computed digest for a
// command-code policy matches what the TPM computes in a trial session.
func TestPolicyTrialCommandCode(t *testing.T) {
	sim, err := simulator.OpenSimulator()
	if err != nil {
		t.Fatalf("could not connect to TPM simulator: %v", err)
	}
	thetpm := NewTPM(sim)
	defer thetpm.Close()

	sess, cleanup, err := PolicySession(thetpm, AlgSHA256, 16, Trial())
	if err != nil {
		t.Fatalf("setting up trial policy session: %v", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			t.Errorf("cleaning up policy session: %v", err)
		}
	}()

	pcc := PolicyCommandCode{
		PolicySession: sess.Handle(),
		Code:          CCDuplicate,
	}
	if err := pcc.Execute(thetpm); err != nil {
		t.Fatalf("TPM2_PolicyCommandCode failed: %v", err)
	}

	pgd := PolicyGetDigest{
		PolicySession: sess.Handle(),
	}
	rsp, err := pgd.Execute(thetpm)
	if err != nil {
		t.Fatalf("TPM2_PolicyGetDigest failed: %v", err)
	}

	calc, err := NewPolicyCalculator(AlgSHA256)
	if err != nil {
		t.Fatalf("creating policy calculator: %v", err)
	}
	if err := pcc.Update(calc); err != nil {
		t.Fatalf("updating policy calculator: %v", err)
	}

	if !bytes.Equal(calc.Hash().Digest, rsp.PolicyDigest.Buffer) {
		t.Errorf("policy digest = %x, want %x",
			rsp.PolicyDigest.Buffer, calc.Hash().Digest)
	}
}

// TestPolicyTrialAuthValue covers a two-step policy to make sure ordering is
// reflected in trial sessions the same way as in the calculator.
func TestPolicyTrialAuthValue(t *testing.T) {
	sim, err := simulator.OpenSimulator()
	if err != nil {
		t.Fatalf("could not connect to TPM simulator: %v", err)
	}
	thetpm := NewTPM(sim)
	defer thetpm.Close()

	sess, cleanup, err := PolicySession(thetpm, AlgSHA256, 16, Trial())
	if err != nil {
		t.Fatalf("setting up trial policy session: %v", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			t.Errorf("cleaning up policy session: %v", err)
		}
	}()

	pav := PolicyAuthValue{
		PolicySession: sess.Handle(),
	}
	if err := pav.Execute(thetpm); err != nil {
		t.Fatalf("TPM2_PolicyAuthValue failed: %v", err)
	}
	pcc := PolicyCommandCode{
		PolicySession: sess.Handle(),
		Code:          CCObjectChangeAuth,
	}
	if err := pcc.Execute(thetpm); err != nil {
		t.Fatalf("TPM2_PolicyCommandCode failed: %v", err)
	}

	pgd := PolicyGetDigest{
		PolicySession: sess.Handle(),
	}
	rsp, err := pgd.Execute(thetpm)
	if err != nil {
		t.Fatalf("TPM2_PolicyGetDigest failed: %v", err)
	}

	calc, err := NewPolicyCalculator(AlgSHA256)
	if err != nil {
		t.Fatalf("creating policy calculator: %v", err)
	}
	if err := pav.Update(calc); err != nil {
		t.Fatalf("updating policy calculator: %v", err)
	}
	if err := pcc.Update(calc); err != nil {
		t.Fatalf("updating policy calculator: %v", err)
	}

	if !bytes.Equal(calc.Hash().Digest, rsp.PolicyDigest.Buffer) {
		t.Errorf("policy digest = %x, want %x",
			rsp.PolicyDigest.Buffer, calc.Hash().Digest)
	}
}
