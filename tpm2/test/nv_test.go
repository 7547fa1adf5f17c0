package tpm2test

import (
	"bytes"
	"testing"

	. "github.com/cryptalis/esys/tpm2"
	"github.com/cryptalis/esys/transport/simulator"
)

func TestNVAuthWrite(t *testing.T) {
	sim, err := simulator.OpenSimulator()
	if err != nil {
		t.Fatalf("could not connect to TPM simulator: %v", err)
	}
	thetpm := NewTPM(sim)
	defer thetpm.Close()

	pub := TPMSNVPublic{
		NVIndex: Handle(0x0180000F),
		NameAlg: AlgSHA256,
		Attributes: TPMANV{
			OwnerWrite: true,
			OwnerRead:  true,
			AuthWrite:  true,
			AuthRead:   true,
			NT:         NTOrdinary,
			NoDA:       true,
		},
		DataSize: 4,
	}

	def := NVDefineSpace{
		AuthHandle: AuthHandle{Handle: RHOwner},
		Auth: TPM2BAuth{
			Buffer: []byte("p@ssw0rd"),
		},
		PublicInfo: TPM2BNVPublic{NVPublic: pub},
	}
	if err := def.Execute(thetpm); err != nil {
		t.Fatalf("TPM2_NV_DefineSpace failed: %v", err)
	}
	defer func() {
		undef := NVUndefineSpace{
			AuthHandle: AuthHandle{Handle: RHOwner},
			NVIndex:    NamedHandle{Handle: pub.NVIndex},
		}
		if err := undef.Execute(thetpm); err != nil {
			t.Errorf("TPM2_NV_UndefineSpace failed: %v", err)
		}
	}()

	nvName, err := NVName(&pub)
	if err != nil {
		t.Fatalf("calculating name of NV index: %v", err)
	}

	// The name reported by the TPM has to match the one computed from the
	// public area.
	read := NVReadPublic{
		NVIndex: Handle(pub.NVIndex),
	}
	readRsp, err := read.Execute(thetpm)
	if err != nil {
		t.Fatalf("TPM2_NV_ReadPublic failed: %v", err)
	}
	if !bytes.Equal(nvName.Buffer, readRsp.NVName.Buffer) {
		t.Errorf("NV name = %x, want %x", readRsp.NVName.Buffer, nvName.Buffer)
	}

	write := NVWrite{
		AuthHandle: AuthHandle{
			Handle: pub.NVIndex,
			Name:   *nvName,
			Auth:   PasswordAuth([]byte("p@ssw0rd")),
		},
		NVIndex: NamedHandle{
			Handle: pub.NVIndex,
			Name:   *nvName,
		},
		Data: TPM2BMaxNVBuffer{
			Buffer: []byte{0x01, 0x02, 0x03, 0x04},
		},
		Offset: 0,
	}
	if err := write.Execute(thetpm); err != nil {
		t.Fatalf("TPM2_NV_Write failed: %v", err)
	}

	// The first write sets the written attribute, which changes the name.
	written, err := read.Execute(thetpm)
	if err != nil {
		t.Fatalf("TPM2_NV_ReadPublic failed: %v", err)
	}
	if bytes.Equal(written.NVName.Buffer, nvName.Buffer) {
		t.Error("NV name did not change after the first write")
	}

	// Owner auth with an HMAC session works for reading back.
	nvRead := NVRead{
		AuthHandle: AuthHandle{
			Handle: RHOwner,
			Auth:   HMAC(AlgSHA256, 16, Auth([]byte{})),
		},
		NVIndex: NamedHandle{
			Handle: pub.NVIndex,
			Name:   written.NVName,
		},
		Size:   4,
		Offset: 0,
	}
	readData, err := nvRead.Execute(thetpm)
	if err != nil {
		t.Fatalf("TPM2_NV_Read failed: %v", err)
	}
	if !bytes.Equal(readData.Data.Buffer, []byte{0x01, 0x02, 0x03, 0x04}) {
		t.Errorf("NV data = %x, want 01020304", readData.Data.Buffer)
	}
}
