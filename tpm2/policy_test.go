package tpm2

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"testing"
)

func TestPolicyCommandCodeDigest(t *testing.T) {
	pc, err := NewPolicyCalculator(AlgSHA256)
	if err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	cmd := PolicyCommandCode{Code: CCDuplicate}
	if err := cmd.Update(pc); err != nil {
		t.Fatalf("want nil, got %v", err)
	}

	// policyDigest = H(oldDigest || CC_PolicyCommandCode || code)
	h := sha256.New()
	h.Write(make([]byte, sha256.Size))
	binary.Write(h, binary.BigEndian, uint32(CCPolicyCommandCode))
	binary.Write(h, binary.BigEndian, uint32(CCDuplicate))
	want := h.Sum(nil)

	got := pc.Hash()
	if got.HashAlg != AlgSHA256 {
		t.Errorf("want %v got %v", AlgSHA256, got.HashAlg)
	}
	if !bytes.Equal(got.Digest, want) {
		t.Errorf("want %x got %x", want, got.Digest)
	}
}

func TestPolicyOrderSensitivity(t *testing.T) {
	authValue := PolicyAuthValue{}
	commandCode := PolicyCommandCode{Code: CCUnseal}

	forward, err := NewPolicyCalculator(AlgSHA256)
	if err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if err := authValue.Update(forward); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if err := commandCode.Update(forward); err != nil {
		t.Fatalf("want nil, got %v", err)
	}

	backward, err := NewPolicyCalculator(AlgSHA256)
	if err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if err := commandCode.Update(backward); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if err := authValue.Update(backward); err != nil {
		t.Fatalf("want nil, got %v", err)
	}

	if bytes.Equal(forward.Hash().Digest, backward.Hash().Digest) {
		t.Error("want different digests when the same assertions run in a different order")
	}
}

func TestPolicyReset(t *testing.T) {
	pc, err := NewPolicyCalculator(AlgSHA256)
	if err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	cmd := PolicyAuthValue{}
	if err := cmd.Update(pc); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	pc.Reset()
	if !bytes.Equal(pc.Hash().Digest, make([]byte, sha256.Size)) {
		t.Error("want all-zero digest after Reset")
	}
}

func TestPolicyPasswordMatchesPolicyAuthValue(t *testing.T) {
	// TPM2_PolicyPassword and TPM2_PolicyAuthValue extend the same value
	// into the policy digest, so either satisfies the same policy.
	pw, err := NewPolicyCalculator(AlgSHA256)
	if err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	pwCmd := PolicyPassword{}
	if err := pwCmd.Update(pw); err != nil {
		t.Fatalf("want nil, got %v", err)
	}

	av, err := NewPolicyCalculator(AlgSHA256)
	if err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	avCmd := PolicyAuthValue{}
	if err := avCmd.Update(av); err != nil {
		t.Fatalf("want nil, got %v", err)
	}

	if !bytes.Equal(pw.Hash().Digest, av.Hash().Digest) {
		t.Errorf("want matching digests, got %x and %x", pw.Hash().Digest, av.Hash().Digest)
	}
}

func TestPolicyOr(t *testing.T) {
	branch, err := NewPolicyCalculator(AlgSHA256)
	if err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	cmd := PolicyCommandCode{Code: CCNVRead}
	if err := cmd.Update(branch); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	branchDigest := branch.Hash().Digest

	or, err := NewPolicyCalculator(AlgSHA256)
	if err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	orCmd := PolicyOr{
		PHashList: TPMLDigest{Digests: []TPM2BDigest{
			{Buffer: branchDigest},
			{Buffer: make([]byte, sha256.Size)},
		}},
	}
	if err := orCmd.Update(or); err != nil {
		t.Fatalf("want nil, got %v", err)
	}

	// PolicyOr resets the digest to zero before extending the branch
	// list, so the result must not depend on any prior state.
	h := sha256.New()
	h.Write(make([]byte, sha256.Size))
	binary.Write(h, binary.BigEndian, uint32(CCPolicyOR))
	h.Write(branchDigest)
	h.Write(make([]byte, sha256.Size))
	want := h.Sum(nil)
	if !bytes.Equal(or.Hash().Digest, want) {
		t.Errorf("want %x got %x", want, or.Hash().Digest)
	}
}
