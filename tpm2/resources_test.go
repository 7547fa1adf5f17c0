package tpm2

import (
	"bytes"
	"errors"
	"testing"
)

func TestHandleTracking(t *testing.T) {
	tpm := NewTPM(&fakeTPM{t: t})
	h := Handle(0x80000001)
	name := TPM2BName{Buffer: []byte{0x00, 0x0B, 1, 2, 3, 4}}

	if _, ok := tpm.lookupName(h); ok {
		t.Error("want no tracked name for a fresh connection")
	}
	tpm.trackHandle(h, name)
	got, ok := tpm.lookupName(h)
	if !ok {
		t.Fatal("want tracked name after trackHandle")
	}
	if !bytes.Equal(got.Buffer, name.Buffer) {
		t.Errorf("want %x got %x", name.Buffer, got.Buffer)
	}

	tpm.Forget(h)
	if _, ok := tpm.lookupName(h); ok {
		t.Error("want no tracked name after Forget")
	}
}

func TestSetAuth(t *testing.T) {
	tpm := NewTPM(&fakeTPM{t: t})
	h := Handle(0x80000001)

	if auth := tpm.storedAuth(h); auth != nil {
		t.Errorf("want empty auth for an untracked handle, got %x", auth)
	}
	tpm.SetAuth(h, []byte("owner auth"))
	if auth := tpm.storedAuth(h); !bytes.Equal(auth, []byte("owner auth")) {
		t.Errorf("want stored auth, got %x", auth)
	}

	// SetAuth must not clobber the tracked name.
	tpm.trackHandle(h, TPM2BName{Buffer: []byte{1, 2, 3}})
	tpm.SetAuth(h, []byte("rotated"))
	if _, ok := tpm.lookupName(h); !ok {
		t.Error("want tracked name to survive SetAuth")
	}
}

func TestCmdNames(t *testing.T) {
	tpm := NewTPM(&fakeTPM{t: t})
	h := Handle(0x80000001)
	name := TPM2BName{Buffer: []byte{0x00, 0x0B, 9, 9, 9}}

	// An untracked transient handle with no explicit Name cannot be
	// authorized.
	cmd := Unseal{ItemHandle: AuthHandle{Handle: h}}
	_, err := tpm.cmdNames(&cmd)
	var unknown UnknownHandleError
	if !errors.As(err, &unknown) {
		t.Fatalf("want UnknownHandleError, got %v", err)
	}

	// Once tracked, the connection supplies the Name.
	tpm.trackHandle(h, name)
	names, err := tpm.cmdNames(&cmd)
	if err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if len(names) != 1 || !bytes.Equal(names[0].Buffer, name.Buffer) {
		t.Errorf("want %x got %v", name.Buffer, names)
	}

	// An explicit Name wins over the tracked one.
	explicit := TPM2BName{Buffer: []byte{0x00, 0x0B, 7, 7, 7}}
	cmd = Unseal{ItemHandle: AuthHandle{Handle: h, Name: explicit}}
	names, err = tpm.cmdNames(&cmd)
	if err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if !bytes.Equal(names[0].Buffer, explicit.Buffer) {
		t.Errorf("want %x got %x", explicit.Buffer, names[0].Buffer)
	}
}

func TestFromTPMPublicPermanent(t *testing.T) {
	tpm := NewTPM(&fakeTPM{t: t})

	// Permanent handles have well-known Names and require no TPM round
	// trip.
	nh, err := tpm.FromTPMPublic(RHOwner)
	if err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	want := []byte{0x40, 0x00, 0x00, 0x01}
	if !bytes.Equal(nh.Name.Buffer, want) {
		t.Errorf("want %x got %x", want, nh.Name.Buffer)
	}
}
