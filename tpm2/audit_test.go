package tpm2

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"testing"
)

func TestAuditExtend(t *testing.T) {
	audit, err := NewAudit(AlgSHA256)
	if err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if !bytes.Equal(audit.Digest(), make([]byte, sha256.Size)) {
		t.Fatal("want all-zero initial audit digest")
	}

	cmd := GetRandom{BytesRequested: 8}
	rsp := GetRandomResponse{RandomBytes: TPM2BDigest{Buffer: []byte{1, 2, 3, 4, 5, 6, 7, 8}}}
	if err := audit.Extend(&cmd, &rsp); err != nil {
		t.Fatalf("want nil, got %v", err)
	}

	// auditDigest = H(oldDigest || cpHash || rpHash)
	cp := sha256.New()
	binary.Write(cp, binary.BigEndian, uint32(CCGetRandom))
	binary.Write(cp, binary.BigEndian, cmd.BytesRequested)

	rp := sha256.New()
	binary.Write(rp, binary.BigEndian, uint32(RCSuccess))
	binary.Write(rp, binary.BigEndian, uint32(CCGetRandom))
	binary.Write(rp, binary.BigEndian, uint16(len(rsp.RandomBytes.Buffer)))
	rp.Write(rsp.RandomBytes.Buffer)

	h := sha256.New()
	h.Write(make([]byte, sha256.Size))
	h.Write(cp.Sum(nil))
	h.Write(rp.Sum(nil))
	want := h.Sum(nil)

	if !bytes.Equal(audit.Digest(), want) {
		t.Errorf("want %x got %x", want, audit.Digest())
	}
}

func TestAuditOrderMatters(t *testing.T) {
	first := GetRandom{BytesRequested: 8}
	firstRsp := GetRandomResponse{RandomBytes: TPM2BDigest{Buffer: make([]byte, 8)}}
	second := GetRandom{BytesRequested: 16}
	secondRsp := GetRandomResponse{RandomBytes: TPM2BDigest{Buffer: make([]byte, 16)}}

	a, err := NewAudit(AlgSHA256)
	if err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if err := a.Extend(&first, &firstRsp); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if err := a.Extend(&second, &secondRsp); err != nil {
		t.Fatalf("want nil, got %v", err)
	}

	b, err := NewAudit(AlgSHA256)
	if err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if err := b.Extend(&second, &secondRsp); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if err := b.Extend(&first, &firstRsp); err != nil {
		t.Fatalf("want nil, got %v", err)
	}

	if bytes.Equal(a.Digest(), b.Digest()) {
		t.Error("want different audit digests when commands run in a different order")
	}
}
