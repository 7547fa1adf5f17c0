package tpm2

// This file defines the TPM 2.0 wire structures used by the command and
// session layers. Fields are annotated with "tpm2" tags that drive the
// reflection-based codec in reflect.go.

// KeyBits represents a TPM_KEY_BITS.
// See definition in Part 2: Structures, section 5.3.
type KeyBits uint16

// PTPCR represents a TPM_PT_PCR.
// See definition in Part 2: Structures, section 6.14.
type PTPCR uint32

// CmdHeader is the header structure in front of any TPM command.
// It is described in Part 1, Architecture.
type CmdHeader struct {
	Tag         TPMISTCommandTag
	Length      uint32
	CommandCode CC
}

// RspHeader is the header structure in front of any TPM response.
// It is described in Part 1, Architecture.
type RspHeader struct {
	Tag          TPMISTCommandTag
	Length       uint32
	ResponseCode RC
}

// TPMAAlgorithm represents a TPMA_ALGORITHM.
// See definition in Part 2: Structures, section 8.2.
type TPMAAlgorithm struct {
	// SET (1): an asymmetric algorithm with public and private portions
	Asymmetric bool `tpm2:"bit=0"`
	// SET (1): a symmetric block cipher
	Symmetric bool `tpm2:"bit=1"`
	// SET (1): a hash algorithm
	Hash bool `tpm2:"bit=2"`
	// SET (1): an algorithm that may be used as an object type
	Object   bool  `tpm2:"bit=3"`
	Reserved uint8 `tpm2:"bit=7:4"`
	// SET (1): a signing algorithm
	Signing bool `tpm2:"bit=8"`
	// SET (1): an encryption/decryption algorithm
	Encrypting bool `tpm2:"bit=9"`
	// SET (1): a method such as a key derivation function
	Method    bool   `tpm2:"bit=10"`
	Reserved2 uint32 `tpm2:"bit=31:11"`
}

// TPMAObject represents a TPMA_OBJECT.
// See definition in Part 2: Structures, section 8.3.2.
type TPMAObject struct {
	Reserved bool `tpm2:"bit=0"`
	// SET (1): The hierarchy of the object, as indicated by its Qualified
	// Name, may not change.
	FixedTPM bool `tpm2:"bit=1"`
	// SET (1): Previously saved contexts of this object may not be loaded
	// after Startup(CLEAR).
	STClear   bool `tpm2:"bit=2"`
	Reserved2 bool `tpm2:"bit=3"`
	// SET (1): The parent of the object may not change.
	FixedParent bool `tpm2:"bit=4"`
	// SET (1): When the object was created, the TPM generated all of the
	// sensitive data other than the authValue.
	SensitiveDataOrigin bool `tpm2:"bit=5"`
	// SET (1): Approval of USER role actions with this object may be with
	// an HMAC session or with a password using the authValue of the object
	// or a policy session.
	// CLEAR (0): Approval of USER role actions with this object may only
	// be done with a policy session.
	UserWithAuth bool `tpm2:"bit=6"`
	// SET (1): Approval of ADMIN role actions with this object may only be
	// done with a policy session.
	AdminWithPolicy bool  `tpm2:"bit=7"`
	Reserved3       uint8 `tpm2:"bit=9:8"`
	// SET (1): The object is not subject to dictionary attack protections.
	NoDA bool `tpm2:"bit=10"`
	// SET (1): If the object is duplicated, then symmetricAlg shall not be
	// TPM_ALG_NULL and newParentHandle shall not be TPM_RH_NULL.
	EncryptedDuplication bool  `tpm2:"bit=11"`
	Reserved4            uint8 `tpm2:"bit=15:12"`
	// SET (1): Key usage is restricted to manipulate structures of known
	// format; the parent of this key shall have restricted SET.
	Restricted bool `tpm2:"bit=16"`
	// SET (1): The private portion of the key may be used to decrypt.
	Decrypt bool `tpm2:"bit=17"`
	// SET (1): For a symmetric cipher object, the private portion of the
	// key may be used to encrypt. For other objects, the private portion
	// of the key may be used to sign.
	SignEncrypt bool `tpm2:"bit=18"`
	// SET (1): An asymmetric key that may not be used to sign with
	// TPM2_Sign().
	X509Sign  bool   `tpm2:"bit=19"`
	Reserved5 uint16 `tpm2:"bit=31:20"`
}

// TPMASession represents a TPMA_SESSION.
// See definition in Part 2: Structures, section 8.4.
type TPMASession struct {
	// SET (1): In a command, the session is to remain active after
	// successful completion of the command. In a response, the session is
	// still active. If SET in the command, this attribute shall be SET in
	// the response.
	// CLEAR (0): In a command, the TPM should close the session and flush
	// any related context when the command completes successfully. In a
	// response, the session is closed and the context is no longer active.
	ContinueSession bool `tpm2:"bit=0"`
	// SET (1): In a command, the command should only be executed if the
	// session is exclusive at the start of the command. In a response, the
	// session is exclusive.
	AuditExclusive bool `tpm2:"bit=1"`
	// SET (1): In a command, the audit digest of the session should be
	// initialized and the exclusive status of the session SET.
	AuditReset bool  `tpm2:"bit=2"`
	Reserved   uint8 `tpm2:"bit=4:3"`
	// SET (1): In a command, the first parameter in the command is
	// symmetrically encrypted using the parameter encryption scheme
	// described in TPM 2.0 Part 1. In a response, the attribute is copied
	// from the request but has no effect on the response.
	Decrypt bool `tpm2:"bit=5"`
	// SET (1): In a command, the TPM should use this session to encrypt
	// the first parameter in the response. In a response, the attribute
	// was set in the command and the TPM used the session to encrypt the
	// first parameter in the response.
	Encrypt bool `tpm2:"bit=6"`
	// SET (1): The session is for audit, and auditExclusive and auditReset
	// have meaning.
	// If SET in the command, then this attribute will be SET in the
	// response.
	Audit bool `tpm2:"bit=7"`
}

// TPMALocality represents a TPMA_LOCALITY.
// See definition in Part 2: Structures, section 8.5.
type TPMALocality struct {
	TPMLocZero  bool `tpm2:"bit=0"`
	TPMLocOne   bool `tpm2:"bit=1"`
	TPMLocTwo   bool `tpm2:"bit=2"`
	TPMLocThree bool `tpm2:"bit=3"`
	TPMLocFour  bool `tpm2:"bit=4"`
	// If any of these bits is set, an extended locality is indicated.
	Extended uint8 `tpm2:"bit=7:5"`
}

// TPMACC represents a TPMA_CC.
// See definition in Part 2: Structures, section 8.9.
type TPMACC struct {
	// the command being selected
	CommandIndex uint16 `tpm2:"bit=15:0"`
	Reserved     uint8  `tpm2:"bit=21:16"`
	// SET (1): the command may write to NV
	NV bool `tpm2:"bit=22"`
	// SET (1): the command could flush any number of loaded contexts
	Extensive bool `tpm2:"bit=23"`
	// SET (1): the context associated with any transient handle in the
	// command will be flushed when this command completes
	Flushed bool `tpm2:"bit=24"`
	// the number of handles in the handle area for this command
	CHandles uint8 `tpm2:"bit=27:25"`
	// SET (1): the response has a handle area
	RHandle bool `tpm2:"bit=28"`
	// SET (1): the command is vendor-specific
	V         bool  `tpm2:"bit=29"`
	Reserved2 uint8 `tpm2:"bit=31:30"`
}

// TPMAACT represents a TPMA_ACT.
// See definition in Part 2: Structures, section 8.12.
type TPMAACT struct {
	// SET (1): The ACT has signaled
	Signaled bool `tpm2:"bit=0"`
	// SET (1): The ACT signaled bit is preserved over a power cycle
	PreserveSignaled bool   `tpm2:"bit=1"`
	Reserved         uint32 `tpm2:"bit=31:2"`
}

// TPMIYesNo represents a TPMI_YES_NO.
// See definition in Part 2: Structures, section 9.2.
// Use native bool for TPMI_YES_NO; the codec already treats this as 8 bits
// wide.
type TPMIYesNo = bool

// Handle-typed interface types from Part 2: Structures, chapter 9. These are
// aliases because their type checking is the TPM's job; they exist to keep
// command definitions self-documenting.
type (
	TPMIDHObject        = Handle
	TPMIDHEntity        = Handle
	TPMIDHPCR           = Handle
	TPMISHAuthSession   = Handle
	TPMISHHMAC          = Handle
	TPMISHPolicy        = Handle
	TPMIDHContext       = Handle
	TPMIRHHierarchy     = Handle
	TPMIRHEnables       = Handle
	TPMIRHHierarchyAuth = Handle
	TPMIRHPlatform      = Handle
	TPMIRHOwner         = Handle
	TPMIRHEndorsement   = Handle
	TPMIRHProvision     = Handle
	TPMIRHClear         = Handle
	TPMIRHNVAuth        = Handle
	TPMIRHLockout       = Handle
	TPMIRHNVIndex       = Handle
	TPMIDHPersistent    = Handle
)

// Algorithm-typed interface types from Part 2: Structures, chapter 9.
type (
	TPMIAlgHash            = AlgID
	TPMIAlgSym             = AlgID
	TPMIAlgSymObject       = AlgID
	TPMIAlgSymMode         = AlgID
	TPMIAlgKDF             = AlgID
	TPMIAlgSigScheme       = AlgID
	TPMIAlgKeyedHashScheme = AlgID
	TPMIAlgRSAScheme       = AlgID
	TPMIAlgECCScheme       = AlgID
	TPMIAlgPublic          = AlgID
)

// TPMISTCommandTag represents a TPMI_ST_COMMAND_TAG.
// See definition in Part 2: Structures, section 9.35.
type TPMISTCommandTag = ST

// TPMIECCCurve represents a TPMI_ECC_CURVE.
// See definition in Part 2: Structures, section 11.2.5.5.
type TPMIECCCurve = ECCCurve

// TPMIRSAKeyBits represents a TPMI_RSA_KEY_BITS.
// See definition in Part 2: Structures, section 11.2.4.6.
type TPMIRSAKeyBits = KeyBits

// TPMSEmpty represents a TPMS_EMPTY.
// See definition in Part 2: Structures, section 10.1.
type TPMSEmpty = struct{}

// TPMTHA represents a TPMT_HA.
// See definition in Part 2: Structures, section 10.3.2.
type TPMTHA struct {
	// selector of the hash contained in the digest that implies the size
	// of the digest
	HashAlg TPMIAlgHash `tpm2:"nullable"`
	// the digest data
	// NOTE: For convenience, this is not implemented as a union.
	Digest []byte
}

// TPM2BData represents a TPM2B_DATA.
// See definition in Part 2: Structures, section 10.4.3.
type TPM2BData struct {
	// size in octets of the buffer field; may be 0
	Buffer []byte `tpm2:"sized"`
}

// TPM2BDigest represents a TPM2B_DIGEST.
// See definition in Part 2: Structures, section 10.4.2.
type TPM2BDigest TPM2BData

// TPM2BNonce represents a TPM2B_NONCE.
// See definition in Part 2: Structures, section 10.4.4.
type TPM2BNonce TPM2BDigest

// TPM2BAuth represents a TPM2B_AUTH.
// See definition in Part 2: Structures, section 10.4.5.
type TPM2BAuth TPM2BDigest

// TPM2BEvent represents a TPM2B_EVENT.
// See definition in Part 2: Structures, section 10.4.7.
type TPM2BEvent TPM2BData

// TPM2BMaxBuffer represents a TPM2B_MAX_BUFFER.
// See definition in Part 2: Structures, section 10.4.8.
type TPM2BMaxBuffer TPM2BData

// TPM2BMaxNVBuffer represents a TPM2B_MAX_NV_BUFFER.
// See definition in Part 2: Structures, section 10.4.9.
type TPM2BMaxNVBuffer TPM2BData

// TPM2BTimeout represents a TPM2B_TIMEOUT.
// See definition in Part 2: Structures, section 10.4.10.
type TPM2BTimeout TPM2BData

// TPM2BOperand represents a TPM2B_OPERAND.
// See definition in Part 2: Structures, section 10.4.11.
type TPM2BOperand TPM2BDigest

// TPM2BName represents a TPM2B_NAME.
// See definition in Part 2: Structures, section 10.5.3.
// NOTE: This structure does not contain a TPMUName, because that union is not
// tagged with a selector. Instead, TPM2B_Name is flattened and all helpers
// that deal with Names treat them as opaque buffers.
type TPM2BName TPM2BData

// TPMSPCRSelection represents a TPMS_PCR_SELECTION.
// See definition in Part 2: Structures, section 10.6.2.
type TPMSPCRSelection struct {
	Hash      TPMIAlgHash
	PCRSelect []byte `tpm2:"sized8"`
}

// TPMTTKCreation represents a TPMT_TK_CREATION.
// See definition in Part 2: Structures, section 10.7.3.
type TPMTTKCreation struct {
	// ticket structure tag
	Tag ST
	// the hierarchy containing name
	Hierarchy TPMIRHHierarchy
	// the HMAC produced using a proof value of hierarchy
	Digest TPM2BDigest
}

// TPMTTKVerified represents a TPMT_TK_VERIFIED.
// See definition in Part 2: Structures, section 10.7.4.
type TPMTTKVerified struct {
	// ticket structure tag
	Tag ST
	// the hierarchy containing keyName
	Hierarchy TPMIRHHierarchy
	// the HMAC produced using a proof value of hierarchy
	Digest TPM2BDigest
}

// TPMTTKAuth represents a TPMT_TK_AUTH.
// See definition in Part 2: Structures, section 10.7.5.
type TPMTTKAuth struct {
	// ticket structure tag
	Tag ST
	// the hierarchy of the object used to produce the ticket
	Hierarchy TPMIRHHierarchy `tpm2:"nullable"`
	// the HMAC produced using a proof value of hierarchy
	Digest TPM2BDigest
}

// TPMTTKHashCheck represents a TPMT_TK_HASHCHECK.
// See definition in Part 2: Structures, section 10.7.6.
type TPMTTKHashCheck struct {
	// ticket structure tag
	Tag ST
	// the hierarchy
	Hierarchy TPMIRHHierarchy
	// the HMAC produced using a proof value of hierarchy
	Digest TPM2BDigest
}

// TPMSAlgProperty represents a TPMS_ALG_PROPERTY.
// See definition in Part 2: Structures, section 10.8.1.
type TPMSAlgProperty struct {
	// an algorithm identifier
	Alg AlgID
	// the attributes of the algorithm
	AlgProperties TPMAAlgorithm
}

// TPMSTaggedProperty represents a TPMS_TAGGED_PROPERTY.
// See definition in Part 2: Structures, section 10.8.2.
type TPMSTaggedProperty struct {
	// a property identifier
	Property PT
	// the value of the property
	Value uint32
}

// TPMSTaggedPCRSelect represents a TPMS_TAGGED_PCR_SELECT.
// See definition in Part 2: Structures, section 10.8.3.
type TPMSTaggedPCRSelect struct {
	// the property identifier
	Tag PTPCR
	// the bit map of PCR with the identified property
	PCRSelect []byte `tpm2:"sized8"`
}

// TPMSTaggedPolicy represents a TPMS_TAGGED_POLICY.
// See definition in Part 2: Structures, section 10.8.4.
type TPMSTaggedPolicy struct {
	// a permanent handle
	Handle Handle
	// the policy algorithm and hash
	PolicyHash TPMTHA
}

// TPMSACTData represents a TPMS_ACT_DATA.
// See definition in Part 2: Structures, section 10.8.5.
type TPMSACTData struct {
	// a permanent handle
	Handle Handle
	// the current timeout of the ACT
	Timeout uint32
	// the state of the ACT
	Attributes TPMAACT
}

// TPMLCC represents a TPML_CC.
// See definition in Part 2: Structures, section 10.9.1.
type TPMLCC struct {
	CommandCodes []CC `tpm2:"list"`
}

// TPMLCCA represents a TPML_CCA.
// See definition in Part 2: Structures, section 10.9.2.
type TPMLCCA struct {
	CommandAttributes []TPMACC `tpm2:"list"`
}

// TPMLAlg represents a TPML_ALG.
// See definition in Part 2: Structures, section 10.9.3.
type TPMLAlg struct {
	Algorithms []AlgID `tpm2:"list"`
}

// TPMLHandle represents a TPML_HANDLE.
// See definition in Part 2: Structures, section 10.9.4.
type TPMLHandle struct {
	Handle []Handle `tpm2:"list"`
}

// TPMLDigest represents a TPML_DIGEST.
// See definition in Part 2: Structures, section 10.9.5.
type TPMLDigest struct {
	// a list of digests
	Digests []TPM2BDigest `tpm2:"list"`
}

// TPMLDigestValues represents a TPML_DIGEST_VALUES.
// See definition in Part 2: Structures, section 10.9.6.
type TPMLDigestValues struct {
	// a list of tagged digests
	Digests []TPMTHA `tpm2:"list"`
}

// TPMLPCRSelection represents a TPML_PCR_SELECTION.
// See definition in Part 2: Structures, section 10.9.7.
type TPMLPCRSelection struct {
	PCRSelections []TPMSPCRSelection `tpm2:"list"`
}

// TPMLAlgProperty represents a TPML_ALG_PROPERTY.
// See definition in Part 2: Structures, section 10.9.8.
type TPMLAlgProperty struct {
	AlgProperties []TPMSAlgProperty `tpm2:"list"`
}

// TPMLTaggedTPMProperty represents a TPML_TAGGED_TPM_PROPERTY.
// See definition in Part 2: Structures, section 10.9.9.
type TPMLTaggedTPMProperty struct {
	TPMProperty []TPMSTaggedProperty `tpm2:"list"`
}

// TPMLTaggedPCRProperty represents a TPML_TAGGED_PCR_PROPERTY.
// See definition in Part 2: Structures, section 10.9.10.
type TPMLTaggedPCRProperty struct {
	PCRProperty []TPMSTaggedPCRSelect `tpm2:"list"`
}

// TPMLECCCurve represents a TPML_ECC_CURVE.
// See definition in Part 2: Structures, section 10.9.11.
type TPMLECCCurve struct {
	ECCCurves []ECCCurve `tpm2:"list"`
}

// TPMLTaggedPolicy represents a TPML_TAGGED_POLICY.
// See definition in Part 2: Structures, section 10.9.12.
type TPMLTaggedPolicy struct {
	Policies []TPMSTaggedPolicy `tpm2:"list"`
}

// TPMLACTData represents a TPML_ACT_DATA.
// See definition in Part 2: Structures, section 10.9.13.
type TPMLACTData struct {
	ACTData []TPMSACTData `tpm2:"list"`
}

// TPMUCapabilities represents a TPMU_CAPABILITIES.
// See definition in Part 2: Structures, section 10.10.1.
type TPMUCapabilities struct {
	Algorithms    *TPMLAlgProperty       `tpm2:"selector=0x00000000"` // TPM_CAP_ALGS
	Handles       *TPMLHandle            `tpm2:"selector=0x00000001"` // TPM_CAP_HANDLES
	Command       *TPMLCCA               `tpm2:"selector=0x00000002"` // TPM_CAP_COMMANDS
	PPCommands    *TPMLCC                `tpm2:"selector=0x00000003"` // TPM_CAP_PP_COMMANDS
	AuditCommands *TPMLCC                `tpm2:"selector=0x00000004"` // TPM_CAP_AUDIT_COMMANDS
	AssignedPCR   *TPMLPCRSelection      `tpm2:"selector=0x00000005"` // TPM_CAP_PCRS
	TPMProperties *TPMLTaggedTPMProperty `tpm2:"selector=0x00000006"` // TPM_CAP_TPM_PROPERTIES
	PCRProperties *TPMLTaggedPCRProperty `tpm2:"selector=0x00000007"` // TPM_CAP_PCR_PROPERTIES
	ECCCurves     *TPMLECCCurve          `tpm2:"selector=0x00000008"` // TPM_CAP_ECC_CURVES
	AuthPolicies  *TPMLTaggedPolicy      `tpm2:"selector=0x00000009"` // TPM_CAP_AUTH_POLICIES
	ACTData       *TPMLACTData           `tpm2:"selector=0x0000000A"` // TPM_CAP_ACT
}

// TPMSCapabilityData represents a TPMS_CAPABILITY_DATA.
// See definition in Part 2: Structures, section 10.10.2.
type TPMSCapabilityData struct {
	// the capability
	Capability Cap
	// the capability data
	Data TPMUCapabilities `tpm2:"tag=Capability"`
}

// TPMSClockInfo represents a TPMS_CLOCK_INFO.
// See definition in Part 2: Structures, section 10.11.1.
type TPMSClockInfo struct {
	// time value in milliseconds that advances while the TPM is powered
	Clock uint64
	// number of occurrences of TPM Reset since the last TPM2_Clear()
	ResetCount uint32
	// number of times that TPM2_Shutdown() or _TPM_Hash_Start have
	// occurred since the last TPM Reset or TPM2_Clear()
	RestartCount uint32
	// no value of Clock greater than the current value of Clock has been
	// previously reported by the TPM; set to YES on TPM2_Clear()
	Safe TPMIYesNo
}

// TPMSTimeInfo represents a TPMS_TIME_INFO.
// See definition in Part 2: Structures, section 10.11.6.
type TPMSTimeInfo struct {
	// time in milliseconds since the Time circuit was last reset
	Time uint64
	// a structure containing the clock information
	ClockInfo TPMSClockInfo
}

// TPMSTimeAttestInfo represents a TPMS_TIME_ATTEST_INFO.
// See definition in Part 2: Structures, section 10.12.2.
type TPMSTimeAttestInfo struct {
	// the Time, Clock, resetCount, restartCount, and Safe indicator
	Time TPMSTimeInfo
	// a TPM vendor-specific value indicating the version number of the
	// firmware
	FirmwareVersion uint64
}

// TPMSCertifyInfo represents a TPMS_CERTIFY_INFO.
// See definition in Part 2: Structures, section 10.12.3.
type TPMSCertifyInfo struct {
	// Name of the certified object
	Name TPM2BName
	// Qualified Name of the certified object
	QualifiedName TPM2BName
}

// TPMSQuoteInfo represents a TPMS_QUOTE_INFO.
// See definition in Part 2: Structures, section 10.12.4.
type TPMSQuoteInfo struct {
	// information on algID, PCR selected and digest
	PCRSelect TPMLPCRSelection
	// digest of the selected PCR using the hash of the signing key
	PCRDigest TPM2BDigest
}

// TPMSCommandAuditInfo represents a TPMS_COMMAND_AUDIT_INFO.
// See definition in Part 2: Structures, section 10.12.5.
type TPMSCommandAuditInfo struct {
	// the monotonic audit counter
	AuditCounter uint64
	// hash algorithm used for the command audit
	DigestAlg AlgID
	// the current value of the audit digest
	AuditDigest TPM2BDigest
	// digest of the command codes being audited using digestAlg
	CommandDigest TPM2BDigest
}

// TPMSSessionAuditInfo represents a TPMS_SESSION_AUDIT_INFO.
// See definition in Part 2: Structures, section 10.12.6.
type TPMSSessionAuditInfo struct {
	// current exclusive status of the session
	ExclusiveSession TPMIYesNo
	// the current value of the session audit digest
	SessionDigest TPM2BDigest
}

// TPMSCreationInfo represents a TPMS_CREATION_INFO.
// See definition in Part 2: Structures, section 10.12.7.
type TPMSCreationInfo struct {
	// Name of the object
	ObjectName TPM2BName
	// creationHash
	CreationHash TPM2BDigest
}

// TPMSNVCertifyInfo represents a TPMS_NV_CERTIFY_INFO.
// See definition in Part 2: Structures, section 10.12.8.
type TPMSNVCertifyInfo struct {
	// Name of the NV Index
	IndexName TPM2BName
	// the offset parameter of TPM2_NV_Certify()
	Offset uint16
	// contents of the NV Index
	NVContents TPM2BData
}

// TPMSNVDigestCertifyInfo represents a TPMS_NV_DIGEST_CERTIFY_INFO.
// See definition in Part 2: Structures, section 10.12.9.
type TPMSNVDigestCertifyInfo struct {
	// Name of the NV Index
	IndexName TPM2BName
	// hash of the contents of the index
	NVDigest TPM2BDigest
}

// TPMISTAttest represents a TPMI_ST_ATTEST.
// See definition in Part 2: Structures, section 10.12.10.
type TPMISTAttest = ST

// TPMUAttest represents a TPMU_ATTEST.
// See definition in Part 2: Structures, section 10.12.11.
type TPMUAttest struct {
	NV           *TPMSNVCertifyInfo       `tpm2:"selector=0x8014"` // TPM_ST_ATTEST_NV
	CommandAudit *TPMSCommandAuditInfo    `tpm2:"selector=0x8015"` // TPM_ST_ATTEST_COMMAND_AUDIT
	SessionAudit *TPMSSessionAuditInfo    `tpm2:"selector=0x8016"` // TPM_ST_ATTEST_SESSION_AUDIT
	Certify      *TPMSCertifyInfo         `tpm2:"selector=0x8017"` // TPM_ST_ATTEST_CERTIFY
	Quote        *TPMSQuoteInfo           `tpm2:"selector=0x8018"` // TPM_ST_ATTEST_QUOTE
	Time         *TPMSTimeAttestInfo      `tpm2:"selector=0x8019"` // TPM_ST_ATTEST_TIME
	Creation     *TPMSCreationInfo        `tpm2:"selector=0x801A"` // TPM_ST_ATTEST_CREATION
	NVDigest     *TPMSNVDigestCertifyInfo `tpm2:"selector=0x801C"` // TPM_ST_ATTEST_NV_DIGEST
}

// TPMSAttest represents a TPMS_ATTEST.
// See definition in Part 2: Structures, section 10.12.12.
type TPMSAttest struct {
	// the indication that this structure was created by a TPM (always
	// TPM_GENERATED_VALUE)
	Magic Generated `tpm2:"check"`
	// type of the attestation structure
	Type TPMISTAttest
	// Qualified Name of the signing key
	QualifiedSigner TPM2BName
	// external information supplied by caller
	ExtraData TPM2BData
	// Clock, resetCount, restartCount, and Safe
	ClockInfo TPMSClockInfo
	// TPM-vendor-specific value identifying the version number of the
	// firmware
	FirmwareVersion uint64
	// the type-specific attestation information
	Attested TPMUAttest `tpm2:"tag=Type"`
}

// TPM2BAttest represents a TPM2B_ATTEST.
// See definition in Part 2: Structures, section 10.12.13.
// Note that in the spec, this is just a 2B_DATA with enough room for an
// S_ATTEST. For ergonomics, pretend that TPM2B_Attest wraps a TPMS_Attest
// just like other 2Bs.
type TPM2BAttest struct {
	// the signed structure
	AttestationData TPMSAttest `tpm2:"sized"`
}

// TPMSAuthCommand represents a TPMS_AUTH_COMMAND.
// See definition in Part 2: Structures, section 10.13.2.
type TPMSAuthCommand struct {
	Handle        TPMISHAuthSession
	Nonce         TPM2BNonce
	Attributes    TPMASession
	Authorization TPM2BData
}

// TPMSAuthResponse represents a TPMS_AUTH_RESPONSE.
// See definition in Part 2: Structures, section 10.13.3.
type TPMSAuthResponse struct {
	Nonce         TPM2BNonce
	Attributes    TPMASession
	Authorization TPM2BData
}

// TPMUSymKeyBits represents a TPMU_SYM_KEY_BITS.
// See definition in Part 2: Structures, section 11.1.3.
type TPMUSymKeyBits struct {
	AES *KeyBits     `tpm2:"selector=0x0006"` // TPM_ALG_AES
	XOR *TPMIAlgHash `tpm2:"selector=0x000A"` // TPM_ALG_XOR
}

// TPMUSymMode represents a TPMU_SYM_MODE.
// See definition in Part 2: Structures, section 11.1.4.
type TPMUSymMode struct {
	AES *TPMIAlgSymMode `tpm2:"selector=0x0006"` // TPM_ALG_AES
	XOR *struct{}       `tpm2:"selector=0x000A"` // TPM_ALG_XOR
}

// TPMUSymDetails represents a TPMU_SYM_DETAILS.
// See definition in Part 2: Structures, section 11.1.5.
type TPMUSymDetails struct {
	AES *struct{} `tpm2:"selector=0x0006"` // TPM_ALG_AES
	XOR *struct{} `tpm2:"selector=0x000A"` // TPM_ALG_XOR
}

// TPMTSymDef represents a TPMT_SYM_DEF.
// See definition in Part 2: Structures, section 11.1.6.
type TPMTSymDef struct {
	// indicates a symmetric algorithm
	Algorithm TPMIAlgSym `tpm2:"nullable"`
	// the key size
	KeyBits TPMUSymKeyBits `tpm2:"tag=Algorithm"`
	// the mode for the key
	Mode TPMUSymMode `tpm2:"tag=Algorithm"`
	// contains the additional algorithm details
	Details TPMUSymDetails `tpm2:"tag=Algorithm"`
}

// TPMTSymDefObject represents a TPMT_SYM_DEF_OBJECT.
// See definition in Part 2: Structures, section 11.1.7.
type TPMTSymDefObject struct {
	// selects a symmetric block cipher
	// When used in the parameter area of a parent object, this shall be a
	// supported block cipher and not TPM_ALG_NULL.
	Algorithm TPMIAlgSymObject `tpm2:"nullable"`
	// the key size
	KeyBits TPMUSymKeyBits `tpm2:"tag=Algorithm"`
	// default mode
	// When used in the parameter area of a parent object, this shall be
	// TPM_ALG_CFB.
	Mode TPMUSymMode `tpm2:"tag=Algorithm"`
	// contains the additional algorithm details, if any
	Details TPMUSymDetails `tpm2:"tag=Algorithm"`
}

// TPM2BSymKey represents a TPM2B_SYM_KEY.
// See definition in Part 2: Structures, section 11.1.8.
type TPM2BSymKey TPM2BData

// TPMSSymCipherParms represents a TPMS_SYMCIPHER_PARMS.
// See definition in Part 2: Structures, section 11.1.9.
type TPMSSymCipherParms struct {
	// a symmetric block cipher
	Sym TPMTSymDefObject
}

// TPM2BLabel represents a TPM2B_LABEL.
// See definition in Part 2: Structures, section 11.1.10.
type TPM2BLabel TPM2BData

// TPMSDerive represents a TPMS_DERIVE.
// See definition in Part 2: Structures, section 11.1.11.
type TPMSDerive struct {
	Label   TPM2BLabel
	Context TPM2BLabel
}

// TPM2BDerive represents a TPM2B_DERIVE.
// See definition in Part 2: Structures, section 11.1.12.
type TPM2BDerive struct {
	Buffer TPMSDerive `tpm2:"sized"`
}

// TPMUSensitiveCreate represents a TPMU_SENSITIVE_CREATE.
// See definition in Part 2: Structures, section 11.1.13.
// Since the TPM cannot return this type, it can be an interface.
type TPMUSensitiveCreate interface {
	tpmuSensitiveCreate()
}

func (TPM2BSensitiveData) tpmuSensitiveCreate() {}
func (TPM2BDerive) tpmuSensitiveCreate()        {}

// TPM2BSensitiveData represents a TPM2B_SENSITIVE_DATA.
// See definition in Part 2: Structures, section 11.1.14.
type TPM2BSensitiveData TPM2BData

// TPMSSensitiveCreate represents a TPMS_SENSITIVE_CREATE.
// See definition in Part 2: Structures, section 11.1.15.
type TPMSSensitiveCreate struct {
	// the USER auth secret value
	UserAuth TPM2BAuth
	// data to be sealed, a key, or derivation values
	Data TPMUSensitiveCreate
}

// TPM2BSensitiveCreate represents a TPM2B_SENSITIVE_CREATE.
// See definition in Part 2: Structures, section 11.1.16.
type TPM2BSensitiveCreate struct {
	// data to be sealed or a symmetric key value
	Sensitive TPMSSensitiveCreate `tpm2:"sized"`
}

// TPMSSchemeHash represents a TPMS_SCHEME_HASH.
// See definition in Part 2: Structures, section 11.1.17.
type TPMSSchemeHash struct {
	// the hash algorithm used to digest the message
	HashAlg TPMIAlgHash
}

// TPMSSchemeHMAC represents a TPMS_SCHEME_HMAC.
// See definition in Part 2: Structures, section 11.1.20.
type TPMSSchemeHMAC TPMSSchemeHash

// TPMSSchemeXOR represents a TPMS_SCHEME_XOR.
// See definition in Part 2: Structures, section 11.1.21.
type TPMSSchemeXOR struct {
	// the hash algorithm used to digest the message
	HashAlg TPMIAlgHash
	// the key derivation function
	KDF TPMIAlgKDF
}

// TPMUSchemeKeyedHash represents a TPMU_SCHEME_KEYEDHASH.
// See definition in Part 2: Structures, section 11.1.22.
type TPMUSchemeKeyedHash struct {
	HMAC *TPMSSchemeHMAC `tpm2:"selector=0x0005"` // TPM_ALG_HMAC
	XOR  *TPMSSchemeXOR  `tpm2:"selector=0x000A"` // TPM_ALG_XOR
}

// TPMTKeyedHashScheme represents a TPMT_KEYEDHASH_SCHEME.
// See definition in Part 2: Structures, section 11.1.23.
type TPMTKeyedHashScheme struct {
	Scheme  TPMIAlgKeyedHashScheme `tpm2:"nullable"`
	Details TPMUSchemeKeyedHash    `tpm2:"tag=Scheme"`
}

// TPMSSigSchemeRSASSA represents a TPMS_SIG_SCHEME_RSASSA.
// See definition in Part 2: Structures, section 11.2.1.2.
type TPMSSigSchemeRSASSA TPMSSchemeHash

// TPMSSigSchemeRSAPSS represents a TPMS_SIG_SCHEME_RSAPSS.
// See definition in Part 2: Structures, section 11.2.1.2.
type TPMSSigSchemeRSAPSS TPMSSchemeHash

// TPMSSigSchemeECDSA represents a TPMS_SIG_SCHEME_ECDSA.
// See definition in Part 2: Structures, section 11.2.1.3.
type TPMSSigSchemeECDSA TPMSSchemeHash

// TPMUSigScheme represents a TPMU_SIG_SCHEME.
// See definition in Part 2: Structures, section 11.2.1.4.
type TPMUSigScheme struct {
	HMAC   *TPMSSchemeHMAC `tpm2:"selector=0x0005"` // TPM_ALG_HMAC
	RSASSA *TPMSSchemeHash `tpm2:"selector=0x0014"` // TPM_ALG_RSASSA
	RSAPSS *TPMSSchemeHash `tpm2:"selector=0x0016"` // TPM_ALG_RSAPSS
	ECDSA  *TPMSSchemeHash `tpm2:"selector=0x0018"` // TPM_ALG_ECDSA
}

// TPMTSigScheme represents a TPMT_SIG_SCHEME.
// See definition in Part 2: Structures, section 11.2.1.5.
type TPMTSigScheme struct {
	Scheme  TPMIAlgSigScheme `tpm2:"nullable"`
	Details TPMUSigScheme    `tpm2:"tag=Scheme"`
}

// TPMSEncSchemeRSAES represents a TPMS_ENC_SCHEME_RSAES.
// See definition in Part 2: Structures, section 11.2.2.2.
type TPMSEncSchemeRSAES TPMSEmpty

// TPMSEncSchemeOAEP represents a TPMS_ENC_SCHEME_OAEP.
// See definition in Part 2: Structures, section 11.2.2.2.
type TPMSEncSchemeOAEP TPMSSchemeHash

// TPMSKeySchemeECDH represents a TPMS_KEY_SCHEME_ECDH.
// See definition in Part 2: Structures, section 11.2.2.3.
type TPMSKeySchemeECDH TPMSSchemeHash

// TPMSKDFSchemeMGF1 represents a TPMS_KDF_SCHEME_MGF1.
// See definition in Part 2: Structures, section 11.2.3.1.
type TPMSKDFSchemeMGF1 TPMSSchemeHash

// TPMSKDFSchemeECDH represents a TPMS_KDF_SCHEME_ECDH.
// See definition in Part 2: Structures, section 11.2.3.1.
type TPMSKDFSchemeECDH TPMSSchemeHash

// TPMSKDFSchemeKDF1SP80056A represents a TPMS_KDF_SCHEME_KDF1SP80056A.
// See definition in Part 2: Structures, section 11.2.3.1.
type TPMSKDFSchemeKDF1SP80056A TPMSSchemeHash

// TPMSKDFSchemeKDF2 represents a TPMS_KDF_SCHEME_KDF2.
// See definition in Part 2: Structures, section 11.2.3.1.
type TPMSKDFSchemeKDF2 TPMSSchemeHash

// TPMSKDFSchemeKDF1SP800108 represents a TPMS_KDF_SCHEME_KDF1SP800108.
// See definition in Part 2: Structures, section 11.2.3.1.
type TPMSKDFSchemeKDF1SP800108 TPMSSchemeHash

// TPMUKDFScheme represents a TPMU_KDF_SCHEME.
// See definition in Part 2: Structures, section 11.2.3.2.
type TPMUKDFScheme struct {
	MGF1         *TPMSKDFSchemeMGF1         `tpm2:"selector=0x0007"` // TPM_ALG_MGF1
	ECDH         *TPMSKDFSchemeECDH         `tpm2:"selector=0x0019"` // TPM_ALG_ECDH
	KDF1SP80056A *TPMSKDFSchemeKDF1SP80056A `tpm2:"selector=0x0020"` // TPM_ALG_KDF1_SP800_56A
	KDF2         *TPMSKDFSchemeKDF2         `tpm2:"selector=0x0021"` // TPM_ALG_KDF2
	KDF1SP800108 *TPMSKDFSchemeKDF1SP800108 `tpm2:"selector=0x0022"` // TPM_ALG_KDF1_SP800_108
}

// TPMTKDFScheme represents a TPMT_KDF_SCHEME.
// See definition in Part 2: Structures, section 11.2.3.3.
type TPMTKDFScheme struct {
	// scheme selector
	Scheme TPMIAlgKDF `tpm2:"nullable"`
	// scheme parameters
	Details TPMUKDFScheme `tpm2:"tag=Scheme"`
}

// TPMUAsymScheme represents a TPMU_ASYM_SCHEME.
// See definition in Part 2: Structures, section 11.2.3.5.
type TPMUAsymScheme struct {
	RSASSA *TPMSSigSchemeRSASSA `tpm2:"selector=0x0014"` // TPM_ALG_RSASSA
	RSAES  *TPMSEncSchemeRSAES  `tpm2:"selector=0x0015"` // TPM_ALG_RSAES
	RSAPSS *TPMSSigSchemeRSAPSS `tpm2:"selector=0x0016"` // TPM_ALG_RSAPSS
	OAEP   *TPMSEncSchemeOAEP   `tpm2:"selector=0x0017"` // TPM_ALG_OAEP
	ECDSA  *TPMSSigSchemeECDSA  `tpm2:"selector=0x0018"` // TPM_ALG_ECDSA
	ECDH   *TPMSKeySchemeECDH   `tpm2:"selector=0x0019"` // TPM_ALG_ECDH
}

// TPMTRSAScheme represents a TPMT_RSA_SCHEME.
// See definition in Part 2: Structures, section 11.2.4.2.
type TPMTRSAScheme struct {
	// scheme selector
	Scheme TPMIAlgRSAScheme `tpm2:"nullable"`
	// scheme parameters
	Details TPMUAsymScheme `tpm2:"tag=Scheme"`
}

// TPM2BPublicKeyRSA represents a TPM2B_PUBLIC_KEY_RSA.
// See definition in Part 2: Structures, section 11.2.4.5.
type TPM2BPublicKeyRSA TPM2BData

// TPM2BPrivateKeyRSA represents a TPM2B_PRIVATE_KEY_RSA.
// See definition in Part 2: Structures, section 11.2.4.7.
type TPM2BPrivateKeyRSA TPM2BData

// TPM2BECCParameter represents a TPM2B_ECC_PARAMETER.
// See definition in Part 2: Structures, section 11.2.5.1.
type TPM2BECCParameter TPM2BData

// TPMSECCPoint represents a TPMS_ECC_POINT.
// See definition in Part 2: Structures, section 11.2.5.2.
type TPMSECCPoint struct {
	// X coordinate
	X TPM2BECCParameter
	// Y coordinate
	Y TPM2BECCParameter
}

// TPM2BECCPoint represents a TPM2B_ECC_POINT.
// See definition in Part 2: Structures, section 11.2.5.3.
type TPM2BECCPoint struct {
	Point TPMSECCPoint `tpm2:"sized"`
}

// TPMTECCScheme represents a TPMT_ECC_SCHEME.
// See definition in Part 2: Structures, section 11.2.5.6.
type TPMTECCScheme struct {
	// scheme selector
	Scheme TPMIAlgECCScheme `tpm2:"nullable"`
	// scheme parameters
	Details TPMUAsymScheme `tpm2:"tag=Scheme"`
}

// TPMSSignatureRSA represents a TPMS_SIGNATURE_RSA.
// See definition in Part 2: Structures, section 11.3.1.
type TPMSSignatureRSA struct {
	// the hash algorithm used to digest the message
	Hash TPMIAlgHash
	// The signature is the size of a public key.
	Sig TPM2BPublicKeyRSA
}

// TPMSSignatureECC represents a TPMS_SIGNATURE_ECC.
// See definition in Part 2: Structures, section 11.3.2.
type TPMSSignatureECC struct {
	// the hash algorithm used in the signature process
	Hash       TPMIAlgHash
	SignatureR TPM2BECCParameter
	SignatureS TPM2BECCParameter
}

// TPMUSignature represents a TPMU_SIGNATURE.
// See definition in Part 2: Structures, section 11.3.3.
type TPMUSignature struct {
	HMAC   *TPMTHA           `tpm2:"selector=0x0005"` // TPM_ALG_HMAC
	RSASSA *TPMSSignatureRSA `tpm2:"selector=0x0014"` // TPM_ALG_RSASSA
	RSAPSS *TPMSSignatureRSA `tpm2:"selector=0x0016"` // TPM_ALG_RSAPSS
	ECDSA  *TPMSSignatureECC `tpm2:"selector=0x0018"` // TPM_ALG_ECDSA
}

// TPMTSignature represents a TPMT_SIGNATURE.
// See definition in Part 2: Structures, section 11.3.4.
type TPMTSignature struct {
	// selector of the algorithm used to construct the signature
	SigAlg TPMIAlgSigScheme `tpm2:"nullable"`
	// the actual signature information
	Signature TPMUSignature `tpm2:"tag=SigAlg"`
}

// TPM2BEncryptedSecret represents a TPM2B_ENCRYPTED_SECRET.
// See definition in Part 2: Structures, section 11.4.33.
type TPM2BEncryptedSecret TPM2BData

// TPMUPublicID represents a TPMU_PUBLIC_ID.
// See definition in Part 2: Structures, section 12.2.3.2.
type TPMUPublicID struct {
	KeyedHash *TPM2BDigest       `tpm2:"selector=0x0008"` // TPM_ALG_KEYEDHASH
	Sym       *TPM2BDigest       `tpm2:"selector=0x0025"` // TPM_ALG_SYMCIPHER
	RSA       *TPM2BPublicKeyRSA `tpm2:"selector=0x0001"` // TPM_ALG_RSA
	ECC       *TPMSECCPoint      `tpm2:"selector=0x0023"` // TPM_ALG_ECC
}

// TPMSKeyedHashParms represents a TPMS_KEYEDHASH_PARMS.
// See definition in Part 2: Structures, section 12.2.3.3.
type TPMSKeyedHashParms struct {
	// Indicates the signing method used for a keyedHash signing object.
	// This field also determines the size of the data field for a data
	// object created with TPM2_Create() or TPM2_CreatePrimary().
	Scheme TPMTKeyedHashScheme
}

// TPMSRSAParms represents a TPMS_RSA_PARMS.
// See definition in Part 2: Structures, section 12.2.3.5.
type TPMSRSAParms struct {
	// For a restricted decryption key, shall be set to a supported
	// symmetric algorithm, key size, and mode.
	// If the key is not a restricted decryption key, this field shall be
	// set to TPM_ALG_NULL.
	Symmetric TPMTSymDefObject
	// scheme.scheme shall be:
	// for an unrestricted signing key, either TPM_ALG_RSAPSS,
	// TPM_ALG_RSASSA or TPM_ALG_NULL
	// for a restricted signing key, either TPM_ALG_RSAPSS or
	// TPM_ALG_RSASSA
	// for an unrestricted decryption key, TPM_ALG_RSAES, TPM_ALG_OAEP, or
	// TPM_ALG_NULL unless the object also has the sign attribute
	// for a restricted decryption key, TPM_ALG_NULL
	Scheme TPMTRSAScheme
	// number of bits in the public modulus
	KeyBits TPMIRSAKeyBits
	// the public exponent
	// A prime number greater than 2.
	Exponent uint32
}

// TPMSECCParms represents a TPMS_ECC_PARMS.
// See definition in Part 2: Structures, section 12.2.3.6.
type TPMSECCParms struct {
	// For a restricted decryption key, shall be set to a supported
	// symmetric algorithm, key size, and mode.
	// If the key is not a restricted decryption key, this field shall be
	// set to TPM_ALG_NULL.
	Symmetric TPMTSymDefObject
	// If the sign attribute of the key is SET, then this shall be a valid
	// signing scheme.
	Scheme TPMTECCScheme
	// ECC curve ID
	CurveID TPMIECCCurve
	// an optional key derivation scheme for generating a symmetric key
	// from a Z value
	KDF TPMTKDFScheme
}

// TPMUPublicParms represents a TPMU_PUBLIC_PARMS.
// See definition in Part 2: Structures, section 12.2.3.7.
type TPMUPublicParms struct {
	// sign | decrypt | neither
	KeyedHashDetail *TPMSKeyedHashParms `tpm2:"selector=0x0008"` // TPM_ALG_KEYEDHASH
	// sign | decrypt | neither
	SymCipherDetail *TPMSSymCipherParms `tpm2:"selector=0x0025"` // TPM_ALG_SYMCIPHER
	// decrypt + sign
	RSADetail *TPMSRSAParms `tpm2:"selector=0x0001"` // TPM_ALG_RSA
	// decrypt + sign
	ECCDetail *TPMSECCParms `tpm2:"selector=0x0023"` // TPM_ALG_ECC
}

// TPMTPublic represents a TPMT_PUBLIC.
// See definition in Part 2: Structures, section 12.2.4.
type TPMTPublic struct {
	// "algorithm" associated with this object
	Type TPMIAlgPublic
	// algorithm used for computing the Name of the object
	NameAlg TPMIAlgHash
	// attributes that, along with type, determine the manipulations of
	// this object
	ObjectAttributes TPMAObject
	// optional policy for using this key
	// The policy is computed using the nameAlg of the object.
	AuthPolicy TPM2BDigest
	// the algorithm or structure details
	Parameters TPMUPublicParms `tpm2:"tag=Type"`
	// the unique identifier of the structure
	// For an asymmetric key, this would be the public key.
	Unique TPMUPublicID `tpm2:"tag=Type"`
}

// TPMTTemplate represents a TPMT_TEMPLATE. It is not defined in the spec.
// It represents the alternate form of TPMT_PUBLIC for TPM2B_TEMPLATE as
// described in Part 2: Structures, 12.2.6.
type TPMTTemplate struct {
	// "algorithm" associated with this object
	Type TPMIAlgPublic
	// algorithm used for computing the Name of the object
	NameAlg TPMIAlgHash
	// attributes that, along with type, determine the manipulations of
	// this object
	ObjectAttributes TPMAObject
	// optional policy for using this key
	AuthPolicy TPM2BDigest
	// the algorithm or structure details
	Parameters TPMUPublicParms `tpm2:"tag=Type"`
	// the derivation parameters
	Unique TPMSDerive
}

// TPMTPublicParms represents a TPMT_PUBLIC_PARMS.
// See definition in Part 2: Structures, section 12.2.6.
type TPMTPublicParms struct {
	// the algorithm to be tested
	Type TPMIAlgPublic
	// the algorithm details
	Parameters TPMUPublicParms `tpm2:"tag=Type"`
}

// TPM2BPublic represents a TPM2B_PUBLIC.
// See definition in Part 2: Structures, section 12.2.5.
type TPM2BPublic struct {
	// the public area
	PublicArea TPMTPublic `tpm2:"sized"`
}

// TPMUTemplate represents the possible contents of a TPM2B_Template. It is
// not defined or named in the spec, which instead describes how its contents
// may differ in the case of CreateLoaded with a derivation parent.
// Since the TPM cannot return this type, it can be an interface.
type TPMUTemplate interface {
	tpmuTemplate()
}

func (TPMTPublic) tpmuTemplate()   {}
func (TPMTTemplate) tpmuTemplate() {}

// TPM2BTemplate represents a TPM2B_TEMPLATE.
// See definition in Part 2: Structures, section 12.2.6.
type TPM2BTemplate struct {
	Template TPMUTemplate `tpm2:"sized"`
}

// TPMUSensitiveComposite represents a TPMU_SENSITIVE_COMPOSITE.
// See definition in Part 2: Structures, section 12.3.2.3.
type TPMUSensitiveComposite struct {
	// a prime factor of the public key
	RSA *TPM2BPrivateKeyRSA `tpm2:"selector=0x0001"` // TPM_ALG_RSA
	// the integer private key
	ECC *TPM2BECCParameter `tpm2:"selector=0x0023"` // TPM_ALG_ECC
	// the private data
	Bits *TPM2BSensitiveData `tpm2:"selector=0x0008"` // TPM_ALG_KEYEDHASH
	// the symmetric key
	Sym *TPM2BSymKey `tpm2:"selector=0x0025"` // TPM_ALG_SYMCIPHER
}

// TPMTSensitive represents a TPMT_SENSITIVE.
// See definition in Part 2: Structures, section 12.3.2.4.
type TPMTSensitive struct {
	// identifier for the sensitive area
	SensitiveType TPMIAlgPublic
	// user authorization data
	AuthValue TPM2BAuth
	// for a parent object, the optional protection seed; for other
	// objects, the obfuscation value
	SeedValue TPM2BDigest
	// the type-specific private data
	Sensitive TPMUSensitiveComposite `tpm2:"tag=SensitiveType"`
}

// TPM2BSensitive represents a TPM2B_SENSITIVE.
// See definition in Part 2: Structures, section 12.3.3.
type TPM2BSensitive struct {
	// an unencrypted sensitive area
	SensitiveArea TPMTSensitive `tpm2:"sized"`
}

// TPM2BPrivate represents a TPM2B_PRIVATE.
// See definition in Part 2: Structures, section 12.3.7.
type TPM2BPrivate TPM2BData

// TPM2BIDObject represents a TPM2B_ID_OBJECT.
// See definition in Part 2: Structures, section 12.4.3.
type TPM2BIDObject TPM2BData

// TPMANV represents a TPMA_NV.
// See definition in Part 2: Structures, section 13.4.
type TPMANV struct {
	// SET (1): The Index data can be written if Platform Authorization is
	// provided.
	PPWrite bool `tpm2:"bit=0"`
	// SET (1): The Index data can be written if Owner Authorization is
	// provided.
	OwnerWrite bool `tpm2:"bit=1"`
	// SET (1): Authorizations to change the Index contents that require
	// USER role may be provided with an HMAC session or password.
	AuthWrite bool `tpm2:"bit=2"`
	// SET (1): Authorizations to change the Index contents that require
	// USER role may be provided with a policy session.
	PolicyWrite bool `tpm2:"bit=3"`
	// the type of the index
	NT NT `tpm2:"bit=7:4"`
	// reserved by the TPM specification
	Reserved uint8 `tpm2:"bit=9:8"`
	// SET (1): Index may not be deleted unless the authPolicy is satisfied
	// using TPM2_NV_UndefineSpaceSpecial().
	PolicyDelete bool `tpm2:"bit=10"`
	// SET (1): Index cannot be written.
	WriteLocked bool `tpm2:"bit=11"`
	// SET (1): A partial write of the Index data is not allowed. The write
	// size shall match the defined space size.
	WriteAll bool `tpm2:"bit=12"`
	// SET (1): TPM2_NV_WriteLock() may be used to prevent further writes
	// to this location.
	WriteDefine bool `tpm2:"bit=13"`
	// SET (1): TPM2_NV_WriteLock() may be used to prevent further writes
	// to this location until the next TPM Reset or TPM Restart.
	WriteSTClear bool `tpm2:"bit=14"`
	// SET (1): If TPM2_NV_GlobalWriteLock() is successful,
	// TPMA_NV_WRITELOCKED is set.
	GlobalLock bool `tpm2:"bit=15"`
	// SET (1): The Index data can be read if Platform Authorization is
	// provided.
	PPRead bool `tpm2:"bit=16"`
	// SET (1): The Index data can be read if Owner Authorization is
	// provided.
	OwnerRead bool `tpm2:"bit=17"`
	// SET (1): The Index data may be read if the authValue is provided.
	AuthRead bool `tpm2:"bit=18"`
	// SET (1): The Index data may be read if the authPolicy is satisfied.
	PolicyRead bool `tpm2:"bit=19"`
	// reserved by the TPM specification
	Reserved2 uint8 `tpm2:"bit=24:20"`
	// SET (1): Authorization failures of the Index do not affect the DA
	// logic and authorization of the Index is not blocked when the TPM is
	// in Lockout mode.
	NoDA bool `tpm2:"bit=25"`
	// SET (1): NV Index state is only required to be saved when the TPM
	// performs an orderly shutdown.
	Orderly bool `tpm2:"bit=26"`
	// SET (1): TPMA_NV_WRITTEN for the Index is CLEAR by TPM Reset or TPM
	// Restart.
	ClearSTClear bool `tpm2:"bit=27"`
	// SET (1): Reads of the Index are blocked until the next TPM Reset or
	// TPM Restart.
	ReadLocked bool `tpm2:"bit=28"`
	// SET (1): Index has been written.
	Written bool `tpm2:"bit=29"`
	// SET (1): This Index may be undefined with Platform Authorization but
	// not with Owner Authorization.
	PlatformCreate bool `tpm2:"bit=30"`
	// SET (1): TPM2_NV_ReadLock() may be used to SET TPMA_NV_READLOCKED
	// for this Index.
	ReadSTClear bool `tpm2:"bit=31"`
}

// TPMSNVPublic represents a TPMS_NV_PUBLIC.
// See definition in Part 2: Structures, section 13.5.
type TPMSNVPublic struct {
	// the handle of the data area
	NVIndex TPMIRHNVIndex
	// hash algorithm used to compute the name of the Index and used for
	// the authPolicy. For an extend index, the hash algorithm used for the
	// extend.
	NameAlg TPMIAlgHash
	// the Index attributes
	Attributes TPMANV
	// optional access policy for the Index
	AuthPolicy TPM2BDigest
	// the size of the data area
	DataSize uint16
}

// TPM2BNVPublic represents a TPM2B_NV_PUBLIC.
// See definition in Part 2: Structures, section 13.6.
type TPM2BNVPublic struct {
	NVPublic TPMSNVPublic `tpm2:"sized"`
}

// TPM2BContextSensitive represents a TPM2B_CONTEXT_SENSITIVE.
// See definition in Part 2: Structures, section 14.2.
type TPM2BContextSensitive TPM2BData

// TPM2BContextData represents a TPM2B_CONTEXT_DATA.
// See definition in Part 2: Structures, section 14.4.
type TPM2BContextData TPM2BData

// TPMSContext represents a TPMS_CONTEXT.
// See definition in Part 2: Structures, section 14.5.
// The contextBlob is opaque to everything but the TPM that produced it; the
// surrounding fields let the TPM validate and restore the context.
type TPMSContext struct {
	// the sequence number of the context
	Sequence uint64
	// a handle indicating if the context is a session, object, or sequence
	// object
	SavedHandle TPMIDHContext
	// the hierarchy of the context
	Hierarchy TPMIRHHierarchy
	// the context data and integrity HMAC
	ContextBlob TPM2BContextData
}

// TPMSCreationData represents a TPMS_CREATION_DATA.
// See definition in Part 2: Structures, section 15.1.
type TPMSCreationData struct {
	// list indicating the PCR included in pcrDigest
	PCRSelect TPMLPCRSelection
	// digest of the selected PCR using nameAlg of the object for which
	// this structure is being created
	PCRDigest TPM2BDigest
	// the locality at which the object was created
	Locality TPMALocality
	// nameAlg of the parent
	ParentNameAlg AlgID
	// Name of the parent at time of creation
	ParentName TPM2BName
	// Qualified Name of the parent at the time of creation
	ParentQualifiedName TPM2BName
	// association with additional information added by the key creator
	OutsideInfo TPM2BData
}

// TPM2BCreationData represents a TPM2B_CREATION_DATA.
// See definition in Part 2: Structures, section 15.2.
type TPM2BCreationData struct {
	CreationData TPMSCreationData `tpm2:"sized"`
}
