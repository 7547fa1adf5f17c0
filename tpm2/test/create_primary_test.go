package tpm2test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	. "github.com/cryptalis/esys/tpm2"
	"github.com/cryptalis/esys/transport/simulator"
)

// ecdsaKeyTemplate is a P-256 signing key used by several tests in this
// package.
var ecdsaKeyTemplate = TPMTPublic{
	Type:    AlgECC,
	NameAlg: AlgSHA256,
	ObjectAttributes: TPMAObject{
		FixedTPM:            true,
		FixedParent:         true,
		SensitiveDataOrigin: true,
		UserWithAuth:        true,
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
}

func TestCreatePrimary(t *testing.T) {
	sim, err := simulator.OpenSimulator()
	if err != nil {
		t.Fatalf("could not connect to TPM simulator: %v", err)
	}
	thetpm := NewTPM(sim)
	defer thetpm.Close()

	createPrimary := CreatePrimary{
		PrimaryHandle: AuthHandle{Handle: RHOwner},
		InPublic:      TPM2BPublic{PublicArea: ecdsaKeyTemplate},
	}
	rspCP, err := createPrimary.Execute(thetpm)
	if err != nil {
		t.Fatalf("CreatePrimary failed: %v", err)
	}
	flush := FlushContext{FlushHandle: rspCP.ObjectHandle}
	defer flush.Execute(thetpm)

	// The returned Name has to be the digest of the returned public area.
	want, err := ObjectName(&rspCP.OutPublic.PublicArea)
	if err != nil {
		t.Fatalf("calculating name of primary: %v", err)
	}
	if !bytes.Equal(want.Buffer, rspCP.Name.Buffer) {
		t.Errorf("Name = %x, want %x", rspCP.Name.Buffer, want.Buffer)
	}
}

// TestReadPublicKey compares the CreatePrimary response parameter outPublic
// with the output of ReadPublic.
func TestReadPublicKey(t *testing.T) {
	sim, err := simulator.OpenSimulator()
	if err != nil {
		t.Fatalf("could not connect to TPM simulator: %v", err)
	}
	thetpm := NewTPM(sim)
	defer thetpm.Close()

	createPrimary := CreatePrimary{
		PrimaryHandle: AuthHandle{Handle: RHOwner},
		InPublic:      TPM2BPublic{PublicArea: ecdsaKeyTemplate},
	}
	rspCP, err := createPrimary.Execute(thetpm)
	if err != nil {
		t.Fatalf("CreatePrimary failed: %v", err)
	}
	flush := FlushContext{FlushHandle: rspCP.ObjectHandle}
	defer flush.Execute(thetpm)

	readPublic := ReadPublic{
		ObjectHandle: rspCP.ObjectHandle,
	}
	rspRP, err := readPublic.Execute(thetpm)
	if err != nil {
		t.Fatalf("ReadPublic failed: %v", err)
	}

	uniqueCreate := rspCP.OutPublic.PublicArea.Unique.ECC
	uniqueRead := rspRP.OutPublic.PublicArea.Unique.ECC
	if !cmp.Equal(uniqueCreate, uniqueRead) {
		t.Errorf("public key mismatch: %v", cmp.Diff(uniqueCreate, uniqueRead))
	}
	if !bytes.Equal(rspCP.Name.Buffer, rspRP.Name.Buffer) {
		t.Errorf("Name mismatch: CreatePrimary %x, ReadPublic %x",
			rspCP.Name.Buffer, rspRP.Name.Buffer)
	}
}
