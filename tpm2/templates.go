package tpm2

// Shared values referenced from the templates below. The union members are
// pointers, so the values need a home.
var (
	aes128KeyBits = KeyBits(128)
	aesCFBMode    = TPMIAlgSymMode(AlgCFB)

	// ekPolicy is the TCG reference EK auth policy:
	// TPM2_PolicySecret(RH_ENDORSEMENT) with SHA-256.
	ekPolicy = TPM2BDigest{
		Buffer: []byte{
			0x83, 0x71, 0x97, 0x67, 0x44, 0x84, 0xB3, 0xF8,
			0x1A, 0x90, 0xCC, 0x8D, 0x46, 0xA5, 0xD7, 0x24,
			0xFD, 0x52, 0xD7, 0x6E, 0x06, 0x52, 0x0B, 0x64,
			0xF2, 0xA1, 0xDA, 0x1B, 0x33, 0x14, 0x69, 0xAA,
		},
	}
)

var (
	// RSASRKTemplate contains the TCG reference RSA-2048 SRK template.
	// https://trustedcomputinggroup.org/wp-content/uploads/TCG-TPM-v2.0-Provisioning-Guidance-Published-v1r1.pdf
	RSASRKTemplate = TPMTPublic{
		Type:    AlgRSA,
		NameAlg: AlgSHA256,
		ObjectAttributes: TPMAObject{
			FixedTPM:            true,
			FixedParent:         true,
			SensitiveDataOrigin: true,
			UserWithAuth:        true,
			NoDA:                true,
			Restricted:          true,
			Decrypt:             true,
		},
		Parameters: TPMUPublicParms{
			RSADetail: &TPMSRSAParms{
				Symmetric: TPMTSymDefObject{
					Algorithm: AlgAES,
					KeyBits: TPMUSymKeyBits{
						AES: &aes128KeyBits,
					},
					Mode: TPMUSymMode{
						AES: &aesCFBMode,
					},
				},
				KeyBits: 2048,
			},
		},
		Unique: TPMUPublicID{
			RSA: &TPM2BPublicKeyRSA{
				Buffer: make([]byte, 256),
			},
		},
	}

	// RSAEKTemplate contains the TCG reference RSA-2048 EK template.
	RSAEKTemplate = TPMTPublic{
		Type:    AlgRSA,
		NameAlg: AlgSHA256,
		ObjectAttributes: TPMAObject{
			FixedTPM:            true,
			FixedParent:         true,
			SensitiveDataOrigin: true,
			AdminWithPolicy:     true,
			Restricted:          true,
			Decrypt:             true,
		},
		AuthPolicy: ekPolicy,
		Parameters: TPMUPublicParms{
			RSADetail: &TPMSRSAParms{
				Symmetric: TPMTSymDefObject{
					Algorithm: AlgAES,
					KeyBits: TPMUSymKeyBits{
						AES: &aes128KeyBits,
					},
					Mode: TPMUSymMode{
						AES: &aesCFBMode,
					},
				},
				KeyBits: 2048,
			},
		},
		Unique: TPMUPublicID{
			RSA: &TPM2BPublicKeyRSA{
				Buffer: make([]byte, 256),
			},
		},
	}

	// ECCSRKTemplate contains the TCG reference ECC-P256 SRK template.
	ECCSRKTemplate = TPMTPublic{
		Type:    AlgECC,
		NameAlg: AlgSHA256,
		ObjectAttributes: TPMAObject{
			FixedTPM:            true,
			FixedParent:         true,
			SensitiveDataOrigin: true,
			UserWithAuth:        true,
			NoDA:                true,
			Restricted:          true,
			Decrypt:             true,
		},
		Parameters: TPMUPublicParms{
			ECCDetail: &TPMSECCParms{
				Symmetric: TPMTSymDefObject{
					Algorithm: AlgAES,
					KeyBits: TPMUSymKeyBits{
						AES: &aes128KeyBits,
					},
					Mode: TPMUSymMode{
						AES: &aesCFBMode,
					},
				},
				CurveID: ECCNistP256,
			},
		},
		Unique: TPMUPublicID{
			ECC: &TPMSECCPoint{
				X: TPM2BECCParameter{
					Buffer: make([]byte, 32),
				},
				Y: TPM2BECCParameter{
					Buffer: make([]byte, 32),
				},
			},
		},
	}

	// ECCEKTemplate contains the TCG reference ECC-P256 EK template.
	ECCEKTemplate = TPMTPublic{
		Type:    AlgECC,
		NameAlg: AlgSHA256,
		ObjectAttributes: TPMAObject{
			FixedTPM:            true,
			FixedParent:         true,
			SensitiveDataOrigin: true,
			AdminWithPolicy:     true,
			Restricted:          true,
			Decrypt:             true,
		},
		AuthPolicy: ekPolicy,
		Parameters: TPMUPublicParms{
			ECCDetail: &TPMSECCParms{
				Symmetric: TPMTSymDefObject{
					Algorithm: AlgAES,
					KeyBits: TPMUSymKeyBits{
						AES: &aes128KeyBits,
					},
					Mode: TPMUSymMode{
						AES: &aesCFBMode,
					},
				},
				CurveID: ECCNistP256,
			},
		},
		Unique: TPMUPublicID{
			ECC: &TPMSECCPoint{
				X: TPM2BECCParameter{
					Buffer: make([]byte, 32),
				},
				Y: TPM2BECCParameter{
					Buffer: make([]byte, 32),
				},
			},
		},
	}
)
