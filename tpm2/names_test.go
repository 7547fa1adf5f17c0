package tpm2

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"testing"
)

func TestHandleName(t *testing.T) {
	want := []byte{0x40, 0x00, 0x00, 0x0B}
	name := HandleName(RHEndorsement)
	if !bytes.Equal(want, name.Buffer) {
		t.Errorf("Incorrect name for RH_ENDORSEMENT (want %x got %x)", want, name.Buffer)
	}
}

func TestObjectName(t *testing.T) {
	pub := RSAEKTemplate
	name, err := ObjectName(&pub)
	if err != nil {
		t.Fatalf("error from ObjectName: %v", err)
	}

	// Name = nameAlg || H_nameAlg(marshalled public area)
	var marshalled bytes.Buffer
	if err := Marshal(&marshalled, pub); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	h := sha256.New()
	h.Write(marshalled.Bytes())
	want := make([]byte, 2)
	binary.BigEndian.PutUint16(want, uint16(AlgSHA256))
	want = h.Sum(want)

	if !bytes.Equal(want, name.Buffer) {
		t.Errorf("Incorrect name for RSA EK (want %x got %x)", want, name.Buffer)
	}

	// Different templates must have different Names.
	other, err := ObjectName(&ECCEKTemplate)
	if err != nil {
		t.Fatalf("error from ObjectName: %v", err)
	}
	if bytes.Equal(name.Buffer, other.Buffer) {
		t.Error("want distinct Names for distinct public areas")
	}
}

func TestNVName(t *testing.T) {
	pub := TPMSNVPublic{
		NVIndex: Handle(0x0180000F),
		NameAlg: AlgSHA256,
		Attributes: TPMANV{
			OwnerWrite: true,
			OwnerRead:  true,
			NT:         NTOrdinary,
		},
		DataSize: 4,
	}
	name, err := NVName(&pub)
	if err != nil {
		t.Fatalf("error from NVName: %v", err)
	}
	if len(name.Buffer) != 2+sha256.Size {
		t.Fatalf("want %d bytes of Name, got %d", 2+sha256.Size, len(name.Buffer))
	}
	if alg := binary.BigEndian.Uint16(name.Buffer); alg != uint16(AlgSHA256) {
		t.Errorf("want Name prefixed with the nameAlg, got %04x", alg)
	}
}
