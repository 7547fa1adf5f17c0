package tpm2

import (
	"crypto"
	"crypto/elliptic"

	// Register the hash implementations selectable by AlgID.
	_ "crypto/sha1"
	_ "crypto/sha256"
	_ "crypto/sha512"
	"encoding/binary"
	"fmt"
)

// Generated represents a TPM_GENERATED.
// See definition in Part 2: Structures, section 6.2.
type Generated uint32

// GeneratedValue is the only valid TPM_GENERATED value.
const GeneratedValue Generated = 0xff544347

// Check verifies that a Generated value is correct, and returns an error
// otherwise.
func (g Generated) Check() error {
	if g != GeneratedValue {
		return fmt.Errorf("TPM_GENERATED value should be 0x%x, was 0x%x", uint32(GeneratedValue), uint32(g))
	}
	return nil
}

// AlgID represents a TPM_ALG_ID.
// See definition in Part 2: Structures, section 6.3.
type AlgID uint16

// AlgID values come from Part 2: Structures, section 6.3.
const (
	AlgRSA          AlgID = 0x0001
	AlgTDES         AlgID = 0x0003
	AlgSHA1         AlgID = 0x0004
	AlgHMAC         AlgID = 0x0005
	AlgAES          AlgID = 0x0006
	AlgMGF1         AlgID = 0x0007
	AlgKeyedHash    AlgID = 0x0008
	AlgXOR          AlgID = 0x000A
	AlgSHA256       AlgID = 0x000B
	AlgSHA384       AlgID = 0x000C
	AlgSHA512       AlgID = 0x000D
	AlgNull         AlgID = 0x0010
	AlgSM3256       AlgID = 0x0012
	AlgSM4          AlgID = 0x0013
	AlgRSASSA       AlgID = 0x0014
	AlgRSAES        AlgID = 0x0015
	AlgRSAPSS       AlgID = 0x0016
	AlgOAEP         AlgID = 0x0017
	AlgECDSA        AlgID = 0x0018
	AlgECDH         AlgID = 0x0019
	AlgECDAA        AlgID = 0x001A
	AlgSM2          AlgID = 0x001B
	AlgECSchnorr    AlgID = 0x001C
	AlgECMQV        AlgID = 0x001D
	AlgKDF1SP80056A AlgID = 0x0020
	AlgKDF2         AlgID = 0x0021
	AlgKDF1SP800108 AlgID = 0x0022
	AlgECC          AlgID = 0x0023
	AlgSymCipher    AlgID = 0x0025
	AlgCamellia     AlgID = 0x0026
	AlgSHA3256      AlgID = 0x0027
	AlgSHA3384      AlgID = 0x0028
	AlgSHA3512      AlgID = 0x0029
	AlgCTR          AlgID = 0x0040
	AlgOFB          AlgID = 0x0041
	AlgCBC          AlgID = 0x0042
	AlgCFB          AlgID = 0x0043
	AlgECB          AlgID = 0x0044
)

// Hash returns the crypto.Hash associated with an AlgID, or an error if
// the algorithm is not a supported hash.
func (a AlgID) Hash() (crypto.Hash, error) {
	switch a {
	case AlgSHA1:
		return crypto.SHA1, nil
	case AlgSHA256:
		return crypto.SHA256, nil
	case AlgSHA384:
		return crypto.SHA384, nil
	case AlgSHA512:
		return crypto.SHA512, nil
	}
	return crypto.SHA256, fmt.Errorf("not a supported hash algorithm: 0x%x", uint16(a))
}

// ECCCurve represents a TPM_ECC_CURVE.
// See definition in Part 2: Structures, section 6.4.
type ECCCurve uint16

// ECCCurve values come from Part 2: Structures, section 6.4.
const (
	ECCNone     ECCCurve = 0x0000
	ECCNistP192 ECCCurve = 0x0001
	ECCNistP224 ECCCurve = 0x0002
	ECCNistP256 ECCCurve = 0x0003
	ECCNistP384 ECCCurve = 0x0004
	ECCNistP521 ECCCurve = 0x0005
	ECCBNP256   ECCCurve = 0x0010
	ECCBNP638   ECCCurve = 0x0011
	ECCSM2P256  ECCCurve = 0x0020
)

// Curve returns the elliptic.Curve associated with an ECCCurve, or an error
// if the curve is not supported.
func (c ECCCurve) Curve() (elliptic.Curve, error) {
	switch c {
	case ECCNistP224:
		return elliptic.P224(), nil
	case ECCNistP256:
		return elliptic.P256(), nil
	case ECCNistP384:
		return elliptic.P384(), nil
	case ECCNistP521:
		return elliptic.P521(), nil
	default:
		return nil, fmt.Errorf("unsupported ECC curve: 0x%x", uint16(c))
	}
}

// CC represents a TPM_CC.
// See definition in Part 2: Structures, section 6.5.2.
type CC uint32

// CC values come from Part 2: Structures, section 6.5.2.
const (
	CCNVUndefineSpaceSpecial     CC = 0x0000011F
	CCEvictControl               CC = 0x00000120
	CCHierarchyControl           CC = 0x00000121
	CCNVUndefineSpace            CC = 0x00000122
	CCChangeEPS                  CC = 0x00000124
	CCChangePPS                  CC = 0x00000125
	CCClear                      CC = 0x00000126
	CCClearControl               CC = 0x00000127
	CCClockSet                   CC = 0x00000128
	CCHierarchyChangeAuth        CC = 0x00000129
	CCNVDefineSpace              CC = 0x0000012A
	CCPCRAllocate                CC = 0x0000012B
	CCPCRSetAuthPolicy           CC = 0x0000012C
	CCPPCommands                 CC = 0x0000012D
	CCSetPrimaryPolicy           CC = 0x0000012E
	CCFieldUpgradeStart          CC = 0x0000012F
	CCClockRateAdjust            CC = 0x00000130
	CCCreatePrimary              CC = 0x00000131
	CCNVGlobalWriteLock          CC = 0x00000132
	CCGetCommandAuditDigest      CC = 0x00000133
	CCNVIncrement                CC = 0x00000134
	CCNVSetBits                  CC = 0x00000135
	CCNVExtend                   CC = 0x00000136
	CCNVWrite                    CC = 0x00000137
	CCNVWriteLock                CC = 0x00000138
	CCDictionaryAttackLockReset  CC = 0x00000139
	CCDictionaryAttackParameters CC = 0x0000013A
	CCNVChangeAuth               CC = 0x0000013B
	CCPCREvent                   CC = 0x0000013C
	CCPCRReset                   CC = 0x0000013D
	CCSequenceComplete           CC = 0x0000013E
	CCSetAlgorithmSet            CC = 0x0000013F
	CCSetCommandCodeAuditStatus  CC = 0x00000140
	CCFieldUpgradeData           CC = 0x00000141
	CCIncrementalSelfTest        CC = 0x00000142
	CCSelfTest                   CC = 0x00000143
	CCStartup                    CC = 0x00000144
	CCShutdown                   CC = 0x00000145
	CCStirRandom                 CC = 0x00000146
	CCActivateCredential         CC = 0x00000147
	CCCertify                    CC = 0x00000148
	CCPolicyNV                   CC = 0x00000149
	CCCertifyCreation            CC = 0x0000014A
	CCDuplicate                  CC = 0x0000014B
	CCGetTime                    CC = 0x0000014C
	CCGetSessionAuditDigest      CC = 0x0000014D
	CCNVRead                     CC = 0x0000014E
	CCNVReadLock                 CC = 0x0000014F
	CCObjectChangeAuth           CC = 0x00000150
	CCPolicySecret               CC = 0x00000151
	CCRewrap                     CC = 0x00000152
	CCCreate                     CC = 0x00000153
	CCECDHZGen                   CC = 0x00000154
	CCHMAC                       CC = 0x00000155
	CCImport                     CC = 0x00000156
	CCLoad                       CC = 0x00000157
	CCQuote                      CC = 0x00000158
	CCRSADecrypt                 CC = 0x00000159
	CCHMACStart                  CC = 0x0000015B
	CCSequenceUpdate             CC = 0x0000015C
	CCSign                       CC = 0x0000015D
	CCUnseal                     CC = 0x0000015E
	CCPolicySigned               CC = 0x00000160
	CCContextLoad                CC = 0x00000161
	CCContextSave                CC = 0x00000162
	CCECDHKeyGen                 CC = 0x00000163
	CCEncryptDecrypt             CC = 0x00000164
	CCFlushContext               CC = 0x00000165
	CCLoadExternal               CC = 0x00000167
	CCMakeCredential             CC = 0x00000168
	CCNVReadPublic               CC = 0x00000169
	CCPolicyAuthorize            CC = 0x0000016A
	CCPolicyAuthValue            CC = 0x0000016B
	CCPolicyCommandCode          CC = 0x0000016C
	CCPolicyCounterTimer         CC = 0x0000016D
	CCPolicyCpHash               CC = 0x0000016E
	CCPolicyLocality             CC = 0x0000016F
	CCPolicyNameHash             CC = 0x00000170
	CCPolicyOR                   CC = 0x00000171
	CCPolicyTicket               CC = 0x00000172
	CCReadPublic                 CC = 0x00000173
	CCRSAEncrypt                 CC = 0x00000174
	CCStartAuthSession           CC = 0x00000176
	CCVerifySignature            CC = 0x00000177
	CCECCParameters              CC = 0x00000178
	CCFirmwareRead               CC = 0x00000179
	CCGetCapability              CC = 0x0000017A
	CCGetRandom                  CC = 0x0000017B
	CCGetTestResult              CC = 0x0000017C
	CCHash                       CC = 0x0000017D
	CCPCRRead                    CC = 0x0000017E
	CCPolicyPCR                  CC = 0x0000017F
	CCPolicyRestart              CC = 0x00000180
	CCReadClock                  CC = 0x00000181
	CCPCRExtend                  CC = 0x00000182
	CCPCRSetAuthValue            CC = 0x00000183
	CCNVCertify                  CC = 0x00000184
	CCEventSequenceComplete      CC = 0x00000185
	CCHashSequenceStart          CC = 0x00000186
	CCPolicyPhysicalPresence     CC = 0x00000187
	CCPolicyDuplicationSelect    CC = 0x00000188
	CCPolicyGetDigest            CC = 0x00000189
	CCTestParms                  CC = 0x0000018A
	CCCommit                     CC = 0x0000018B
	CCPolicyPassword             CC = 0x0000018C
	CCZGen2Phase                 CC = 0x0000018D
	CCECEphemeral                CC = 0x0000018E
	CCPolicyNVWritten            CC = 0x0000018F
	CCPolicyTemplate             CC = 0x00000190
	CCCreateLoaded               CC = 0x00000191
	CCPolicyAuthorizeNV          CC = 0x00000192
	CCEncryptDecrypt2            CC = 0x00000193
	CCACGetCapability            CC = 0x00000194
	CCACSend                     CC = 0x00000195
	CCPolicyACSendSelect         CC = 0x00000196
	CCCertifyX509                CC = 0x00000197
	CCACTSetTimeout              CC = 0x00000198
)

var ccNames = map[CC]string{
	CCNVUndefineSpaceSpecial:    "TPM2_NV_UndefineSpaceSpecial",
	CCEvictControl:              "TPM2_EvictControl",
	CCHierarchyControl:          "TPM2_HierarchyControl",
	CCNVUndefineSpace:           "TPM2_NV_UndefineSpace",
	CCClear:                     "TPM2_Clear",
	CCClearControl:              "TPM2_ClearControl",
	CCHierarchyChangeAuth:       "TPM2_HierarchyChangeAuth",
	CCNVDefineSpace:             "TPM2_NV_DefineSpace",
	CCCreatePrimary:             "TPM2_CreatePrimary",
	CCNVIncrement:               "TPM2_NV_Increment",
	CCNVWrite:                   "TPM2_NV_Write",
	CCNVWriteLock:               "TPM2_NV_WriteLock",
	CCDictionaryAttackLockReset: "TPM2_DictionaryAttackLockReset",
	CCPCREvent:                  "TPM2_PCR_Event",
	CCPCRReset:                  "TPM2_PCR_Reset",
	CCSelfTest:                  "TPM2_SelfTest",
	CCStartup:                   "TPM2_Startup",
	CCShutdown:                  "TPM2_Shutdown",
	CCStirRandom:                "TPM2_StirRandom",
	CCActivateCredential:        "TPM2_ActivateCredential",
	CCCertify:                   "TPM2_Certify",
	CCCertifyCreation:           "TPM2_CertifyCreation",
	CCGetSessionAuditDigest:     "TPM2_GetSessionAuditDigest",
	CCNVRead:                    "TPM2_NV_Read",
	CCObjectChangeAuth:          "TPM2_ObjectChangeAuth",
	CCPolicySecret:              "TPM2_PolicySecret",
	CCCreate:                    "TPM2_Create",
	CCImport:                    "TPM2_Import",
	CCLoad:                      "TPM2_Load",
	CCQuote:                     "TPM2_Quote",
	CCRSADecrypt:                "TPM2_RSA_Decrypt",
	CCSign:                      "TPM2_Sign",
	CCUnseal:                    "TPM2_Unseal",
	CCPolicySigned:              "TPM2_PolicySigned",
	CCContextLoad:               "TPM2_ContextLoad",
	CCContextSave:               "TPM2_ContextSave",
	CCECDHKeyGen:                "TPM2_ECDH_KeyGen",
	CCFlushContext:              "TPM2_FlushContext",
	CCLoadExternal:              "TPM2_LoadExternal",
	CCMakeCredential:            "TPM2_MakeCredential",
	CCNVReadPublic:              "TPM2_NV_ReadPublic",
	CCPolicyAuthorize:           "TPM2_PolicyAuthorize",
	CCPolicyAuthValue:           "TPM2_PolicyAuthValue",
	CCPolicyCommandCode:         "TPM2_PolicyCommandCode",
	CCPolicyCpHash:              "TPM2_PolicyCpHash",
	CCPolicyOR:                  "TPM2_PolicyOR",
	CCReadPublic:                "TPM2_ReadPublic",
	CCRSAEncrypt:                "TPM2_RSA_Encrypt",
	CCStartAuthSession:          "TPM2_StartAuthSession",
	CCVerifySignature:           "TPM2_VerifySignature",
	CCGetCapability:             "TPM2_GetCapability",
	CCGetRandom:                 "TPM2_GetRandom",
	CCGetTestResult:             "TPM2_GetTestResult",
	CCHash:                      "TPM2_Hash",
	CCPCRRead:                   "TPM2_PCR_Read",
	CCPolicyPCR:                 "TPM2_PolicyPCR",
	CCPolicyRestart:             "TPM2_PolicyRestart",
	CCReadClock:                 "TPM2_ReadClock",
	CCPCRExtend:                 "TPM2_PCR_Extend",
	CCNVCertify:                 "TPM2_NV_Certify",
	CCHashSequenceStart:         "TPM2_HashSequenceStart",
	CCSequenceUpdate:            "TPM2_SequenceUpdate",
	CCSequenceComplete:          "TPM2_SequenceComplete",
	CCPolicyGetDigest:           "TPM2_PolicyGetDigest",
	CCTestParms:                 "TPM2_TestParms",
	CCPolicyPassword:            "TPM2_PolicyPassword",
	CCPolicyNVWritten:           "TPM2_PolicyNvWritten",
	CCPolicyTemplate:            "TPM2_PolicyTemplate",
	CCCreateLoaded:              "TPM2_CreateLoaded",
	CCPolicyAuthorizeNV:         "TPM2_PolicyAuthorizeNV",
	CCUnsupported:               "<unsupported command>",
}

// CCUnsupported is a sentinel for commands the TPM does not implement. It is
// used only inside capability results.
const CCUnsupported CC = 0xBBBBBBBB

// String returns the symbolic command name, for logging and error reporting.
func (c CC) String() string {
	if name, ok := ccNames[c]; ok {
		return name
	}
	return fmt.Sprintf("TPM command 0x%08x", uint32(c))
}

// ST represents a TPM_ST.
// See definition in Part 2: Structures, section 6.9.
type ST uint16

// ST values come from Part 2: Structures, section 6.9.
const (
	STRspCommand         ST = 0x00C4
	STNull               ST = 0x8000
	STNoSessions         ST = 0x8001
	STSessions           ST = 0x8002
	STAttestNV           ST = 0x8014
	STAttestCommandAudit ST = 0x8015
	STAttestSessionAudit ST = 0x8016
	STAttestCertify      ST = 0x8017
	STAttestQuote        ST = 0x8018
	STAttestTime         ST = 0x8019
	STAttestCreation     ST = 0x801A
	STAttestNVDigest     ST = 0x801C
	STCreation           ST = 0x8021
	STVerified           ST = 0x8022
	STAuthSecret         ST = 0x8023
	STHashCheck          ST = 0x8024
	STAuthSigned         ST = 0x8025
	STFuManifest         ST = 0x8029
)

// SU represents a TPM_SU.
// See definition in Part 2: Structures, section 6.10.
type SU uint16

// SU values come from Part 2: Structures, section 6.10.
const (
	SUClear SU = 0x0000
	SUState SU = 0x0001
)

// SE represents a TPM_SE.
// See definition in Part 2: Structures, section 6.11.
type SE uint8

// SE values come from Part 2: Structures, section 6.11.
const (
	SEHMAC   SE = 0x00
	SEPolicy SE = 0x01
	SETrial  SE = 0x03
)

// Cap represents a TPM_CAP.
// See definition in Part 2: Structures, section 6.12.
type Cap uint32

// Cap values come from Part 2: Structures, section 6.12.
const (
	CapAlgs          Cap = 0x00000000
	CapHandles       Cap = 0x00000001
	CapCommands      Cap = 0x00000002
	CapPPCommands    Cap = 0x00000003
	CapAuditCommands Cap = 0x00000004
	CapPCRs          Cap = 0x00000005
	CapTPMProperties Cap = 0x00000006
	CapPCRProperties Cap = 0x00000007
	CapECCCurves     Cap = 0x00000008
	CapAuthPolicies  Cap = 0x00000009
	CapACT           Cap = 0x0000000A
)

// PT represents a TPM_PT.
// See definition in Part 2: Structures, section 6.13.
type PT uint32

// PT values come from Part 2: Structures, section 6.13.
const (
	// a 4-octet character string containing the TPM Family value
	// (TPM_SPEC_FAMILY)
	PTFamilyIndicator PT = 0x00000100
	// the level of the specification
	PTLevel PT = 0x00000101
	// the specification Revision times 100
	PTRevision PT = 0x00000102
	// the specification day of year using TCG calendar
	PTDayofYear PT = 0x00000103
	// the specification year using the CE
	PTYear PT = 0x00000104
	// the vendor ID unique to each TPM manufacturer
	PTManufacturer PT = 0x00000105
	// the maximum size of a parameter (typically, a TPM2B_MAX_BUFFER)
	PTInputBuffer PT = 0x0000010D
	// the number of authorization sessions that may be active at a time
	PTActiveSessionsMax PT = 0x00000111
	// the number of PCR implemented
	PTPCRCount PT = 0x00000112
	// the algorithm used for the integrity HMAC on saved contexts
	PTContextHash PT = 0x0000011A
	// the maximum value for commandSize in a command
	PTMaxCommandSize PT = 0x0000011E
	// the maximum value for responseSize in a response
	PTMaxResponseSize PT = 0x0000011F
	// the maximum size of a digest that can be produced by the TPM
	PTMaxDigest PT = 0x00000120
	// the maximum data size in one NV write, NV read, or NV certify command
	PTNVBufferMax PT = 0x0000012C
	// the number of authorization sessions currently loaded into TPM RAM
	PTHRLoaded PT = 0x00000203
	// the number of transient objects currently loaded into TPM RAM
	PTHRTransient PT = 0x00000207
)

// NT represents a TPM_NT.
// See definition in Part 2: Structures, section 13.4.
type NT uint8

// NT values come from Part 2: Structures, section 13.2.
const (
	NTOrdinary NT = 0x0
	NTCounter  NT = 0x1
	NTBits     NT = 0x2
	NTExtend   NT = 0x4
	NTPinFail  NT = 0x8
	NTPinPass  NT = 0x9
)

// Handle represents a TPM_HANDLE.
// See definition in Part 2: Structures, section 7.1.
type Handle uint32

// HT represents a TPM_HT, the handle-class octet of a Handle.
// See definition in Part 2: Structures, section 7.2.
type HT uint8

// HT values come from Part 2: Structures, section 7.2.
const (
	HTPCR           HT = 0x00
	HTNVIndex       HT = 0x01
	HTHMACSession   HT = 0x02
	HTPolicySession HT = 0x03
	HTPermanent     HT = 0x40
	HTTransient     HT = 0x80
	HTPersistent    HT = 0x81
)

// Permanent handle values come from Part 2: Structures, section 7.4.
const (
	RHOwner       Handle = 0x40000001
	RHNull        Handle = 0x40000007
	RSPW          Handle = 0x40000009
	RHLockout     Handle = 0x4000000A
	RHEndorsement Handle = 0x4000000B
	RHPlatform    Handle = 0x4000000C
	RHPlatformNV  Handle = 0x4000000D
)

// HandleValue returns the handle value. This behavior is intended to satisfy
// an interface that can be implemented by other, more complex types as well.
func (h Handle) HandleValue() uint32 {
	return uint32(h)
}

// Class returns the handle-class octet of the handle.
func (h Handle) Class() HT {
	return HT(h >> 24)
}

// KnownName returns the TPM Name associated with the handle, if it can be
// known based only on the handle. This depends upon the value of the handle:
// only PCR, session, and permanent values have known constant Names.
// See definition in Part 1: Architecture, section 16.
func (h Handle) KnownName() *TPM2BName {
	switch h.Class() {
	case HTPCR, HTHMACSession, HTPolicySession, HTPermanent:
		result := make([]byte, 4)
		binary.BigEndian.PutUint32(result, h.HandleValue())
		return &TPM2BName{Buffer: result}
	default:
		return nil
	}
}
