package tpm2test

import (
	"testing"

	. "github.com/cryptalis/esys/tpm2"
	"github.com/cryptalis/esys/transport/simulator"
)

// TestEncryptedGetRandom requests random data over a response-encrypted
// session. The TPM encrypts the first response parameter and the session
// layer has to recover it.
func TestEncryptedGetRandom(t *testing.T) {
	sim, err := simulator.OpenSimulator()
	if err != nil {
		t.Fatalf("could not connect to TPM simulator: %v", err)
	}
	thetpm := NewTPM(sim)
	defer thetpm.Close()

	for name, sess := range map[string]Session{
		"AES": HMAC(AlgSHA256, 16, AESEncryption(128, EncryptOut)),
		"XOR": HMAC(AlgSHA256, 16, XORObfuscation(AlgSHA256, EncryptOut)),
	} {
		t.Run(name, func(t *testing.T) {
			grc := GetRandom{
				BytesRequested: 16,
			}
			rsp, err := grc.Execute(thetpm, sess)
			if err != nil {
				t.Fatalf("GetRandom failed: %v", err)
			}
			if len(rsp.RandomBytes.Buffer) != 16 {
				t.Errorf("got %d random bytes, want 16", len(rsp.RandomBytes.Buffer))
			}
		})
	}
}

// TestEncryptedNVWrite sends the written data encrypted into the TPM and
// reads it back over a cleartext path.
func TestEncryptedNVWrite(t *testing.T) {
	sim, err := simulator.OpenSimulator()
	if err != nil {
		t.Fatalf("could not connect to TPM simulator: %v", err)
	}
	thetpm := NewTPM(sim)
	defer thetpm.Close()

	pub := TPMSNVPublic{
		NVIndex: Handle(0x01800010),
		NameAlg: AlgSHA256,
		Attributes: TPMANV{
			OwnerWrite: true,
			OwnerRead:  true,
			NT:         NTOrdinary,
			NoDA:       true,
		},
		DataSize: 8,
	}
	def := NVDefineSpace{
		AuthHandle: AuthHandle{Handle: RHOwner},
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

	secret := []byte("s3kr3t!!")
	write := NVWrite{
		AuthHandle: AuthHandle{
			Handle: RHOwner,
			Auth:   HMAC(AlgSHA256, 16, AESEncryption(128, EncryptIn)),
		},
		NVIndex: NamedHandle{
			Handle: pub.NVIndex,
			Name:   *nvName,
		},
		Data: TPM2BMaxNVBuffer{
			Buffer: secret,
		},
		Offset: 0,
	}
	if err := write.Execute(thetpm); err != nil {
		t.Fatalf("TPM2_NV_Write failed: %v", err)
	}

	read := NVReadPublic{
		NVIndex: Handle(pub.NVIndex),
	}
	readRsp, err := read.Execute(thetpm)
	if err != nil {
		t.Fatalf("TPM2_NV_ReadPublic failed: %v", err)
	}

	nvRead := NVRead{
		AuthHandle: AuthHandle{
			Handle: RHOwner,
			Auth:   PasswordAuth(nil),
		},
		NVIndex: NamedHandle{
			Handle: pub.NVIndex,
			Name:   readRsp.NVName,
		},
		Size:   uint16(len(secret)),
		Offset: 0,
	}
	readData, err := nvRead.Execute(thetpm)
	if err != nil {
		t.Fatalf("TPM2_NV_Read failed: %v", err)
	}
	if got := readData.Data.Buffer; string(got) != string(secret) {
		t.Errorf("NV data = %q, want %q", got, secret)
	}
}
