package tpm2test

import (
	"bytes"
	"testing"

	. "github.com/cryptalis/esys/tpm2"
	"github.com/cryptalis/esys/transport/simulator"
)

func TestAuditSession(t *testing.T) {
	sim, err := simulator.OpenSimulator()
	if err != nil {
		t.Fatalf("could not connect to TPM simulator: %v", err)
	}
	thetpm := NewTPM(sim)
	defer thetpm.Close()

	// The audit session accumulates a digest of every command sent with it.
	sess, cleanup, err := HMACSession(thetpm, AlgSHA256, 16, Audit())
	if err != nil {
		t.Fatalf("setting up audit session: %v", err)
	}
	defer cleanup()

	// An attestation key to sign the audit digest with.
	createAKCmd := CreatePrimary{
		PrimaryHandle: AuthHandle{Handle: RHOwner},
		InPublic: TPM2BPublic{PublicArea: TPMTPublic{
			Type:    AlgECC,
			NameAlg: AlgSHA256,
			ObjectAttributes: TPMAObject{
				FixedTPM:            true,
				FixedParent:         true,
				SensitiveDataOrigin: true,
				UserWithAuth:        true,
				NoDA:                true,
				Restricted:          true,
				SignEncrypt:         true,
			},
			Parameters: TPMUPublicParms{
				ECCDetail: &TPMSECCParms{
					Scheme: TPMTECCScheme{
						Scheme: AlgECDSA,
						Details: TPMUAsymScheme{
							ECDSA: &TPMSSigSchemeECDSA{
								HashAlg: AlgSHA256,
							},
						},
					},
					CurveID: ECCNistP256,
				},
			},
		}},
	}
	createAKRsp, err := createAKCmd.Execute(thetpm)
	if err != nil {
		t.Fatalf("CreatePrimary failed: %v", err)
	}
	defer func() {
		flush := FlushContext{FlushHandle: createAKRsp.ObjectHandle}
		if err := flush.Execute(thetpm); err != nil {
			t.Errorf("FlushContext failed: %v", err)
		}
	}()

	audit, err := NewAudit(AlgSHA256)
	if err != nil {
		t.Fatalf("creating audit accumulator: %v", err)
	}

	// Run GetCapability a few times with the audit session and make sure
	// the TPM-side digest extends the same way as the local one.
	props := []PT{
		PTFamilyIndicator,
		PTLevel,
		PTRevision,
		PTDayofYear,
		PTYear,
		PTManufacturer,
	}
	for _, prop := range props {
		getCmd := GetCapability{
			Capability:    CapTPMProperties,
			Property:      uint32(prop),
			PropertyCount: 1,
		}
		getRsp, err := getCmd.Execute(thetpm, sess)
		if err != nil {
			t.Fatalf("GetCapability failed: %v", err)
		}
		if err := audit.Extend(&getCmd, getRsp); err != nil {
			t.Fatalf("extending audit digest: %v", err)
		}

		getAuditCmd := GetSessionAuditDigest{
			PrivacyAdminHandle: AuthHandle{Handle: RHEndorsement},
			SignHandle: AuthHandle{
				Handle: createAKRsp.ObjectHandle,
				Name:   createAKRsp.Name,
			},
			SessionHandle:  sess.Handle(),
			QualifyingData: TPM2BData{Buffer: []byte("foobar")},
			InScheme:       TPMTSigScheme{Scheme: AlgNull},
		}
		getAuditRsp, err := getAuditCmd.Execute(thetpm)
		if err != nil {
			t.Fatalf("GetSessionAuditDigest failed: %v", err)
		}

		attest := getAuditRsp.AuditInfo.AttestationData
		if err := attest.Magic.Check(); err != nil {
			t.Fatalf("attestation structure: %v", err)
		}
		aud := attest.Attested.SessionAudit
		if aud == nil {
			t.Fatalf("attestation is of type %v, want session audit", attest.Type)
		}
		want := audit.Digest()
		got := aud.SessionDigest.Buffer
		if !bytes.Equal(want, got) {
			t.Errorf("unexpected audit value:\ngot %x\nwant %x", got, want)
		}
	}
}
