package tpm2

// This file contains one input struct and one response struct per supported
// TPM 2.0 command, in Part 3 order. Fields are laid out in wire order and
// tagged for the codec; Execute sends the command over the connection and
// parses the response.

// Startup is the input to TPM2_Startup.
// See definition in Part 3, Commands, section 9.3.
type Startup struct {
	// TPM_SU_CLEAR or TPM_SU_STATE
	StartupType SU
}

// Command implements the Command interface.
func (*Startup) Command() CC { return CCStartup }

// Execute executes the command and returns the response.
func (cmd *Startup) Execute(t *TPM, s ...Session) error {
	var rsp StartupResponse
	return t.execute(cmd, &rsp, s...)
}

// StartupResponse is the response from TPM2_Startup.
type StartupResponse struct{}

// Response implements the Response interface.
func (*StartupResponse) Response() CC { return CCStartup }

// Shutdown is the input to TPM2_Shutdown.
// See definition in Part 3, Commands, section 9.4.
type Shutdown struct {
	// TPM_SU_CLEAR or TPM_SU_STATE
	ShutdownType SU
}

// Command implements the Command interface.
func (*Shutdown) Command() CC { return CCShutdown }

// Execute executes the command and returns the response.
func (cmd *Shutdown) Execute(t *TPM, s ...Session) error {
	var rsp ShutdownResponse
	return t.execute(cmd, &rsp, s...)
}

// ShutdownResponse is the response from TPM2_Shutdown.
type ShutdownResponse struct{}

// Response implements the Response interface.
func (*ShutdownResponse) Response() CC { return CCShutdown }

// SelfTest is the input to TPM2_SelfTest.
// See definition in Part 3, Commands, section 10.2.
type SelfTest struct {
	// YES if full test to be performed
	FullTest TPMIYesNo
}

// Command implements the Command interface.
func (*SelfTest) Command() CC { return CCSelfTest }

// Execute executes the command and returns the response.
func (cmd *SelfTest) Execute(t *TPM, s ...Session) error {
	var rsp SelfTestResponse
	return t.execute(cmd, &rsp, s...)
}

// SelfTestResponse is the response from TPM2_SelfTest.
type SelfTestResponse struct{}

// Response implements the Response interface.
func (*SelfTestResponse) Response() CC { return CCSelfTest }

// StartAuthSession is the input to TPM2_StartAuthSession.
// See definition in Part 3, Commands, section 11.1.
type StartAuthSession struct {
	// handle of a loaded decrypt key used to encrypt salt
	// may be TPM_RH_NULL
	TPMKey handle `tpm2:"handle,nullable"`
	// entity providing the authValue
	// may be TPM_RH_NULL
	Bind handle `tpm2:"handle,nullable"`
	// initial nonceCaller, sets nonceTPM size for the session
	// shall be at least 16 octets
	NonceCaller TPM2BNonce
	// value encrypted according to the type of tpmKey
	// If tpmKey is TPM_RH_NULL, this shall be the Empty Buffer.
	EncryptedSalt TPM2BEncryptedSecret
	// indicates the type of the session; simple HMAC or policy (including
	// a trial policy)
	SessionType SE
	// the algorithm and key size for parameter encryption
	// may select TPM_ALG_NULL
	Symmetric TPMTSymDef
	// hash algorithm to use for the session
	// Shall be a hash algorithm supported by the TPM and not TPM_ALG_NULL
	AuthHash TPMIAlgHash
}

// Command implements the Command interface.
func (*StartAuthSession) Command() CC { return CCStartAuthSession }

// Execute executes the command and returns the response.
func (cmd *StartAuthSession) Execute(t *TPM, s ...Session) (*StartAuthSessionResponse, error) {
	var rsp StartAuthSessionResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return nil, err
	}
	return &rsp, nil
}

// StartAuthSessionResponse is the response from TPM2_StartAuthSession.
type StartAuthSessionResponse struct {
	// handle for the newly created session
	SessionHandle TPMISHAuthSession `tpm2:"handle"`
	// the initial nonce from the TPM, used in the computation of the
	// sessionKey
	NonceTPM TPM2BNonce
}

// Response implements the Response interface.
func (*StartAuthSessionResponse) Response() CC { return CCStartAuthSession }

// PolicyRestart is the input to TPM2_PolicyRestart.
// See definition in Part 3, Commands, section 11.2.
type PolicyRestart struct {
	// the handle for the policy session
	SessionHandle handle `tpm2:"handle"`
}

// Command implements the Command interface.
func (*PolicyRestart) Command() CC { return CCPolicyRestart }

// Execute executes the command and returns the response.
func (cmd *PolicyRestart) Execute(t *TPM, s ...Session) error {
	var rsp PolicyRestartResponse
	return t.execute(cmd, &rsp, s...)
}

// PolicyRestartResponse is the response from TPM2_PolicyRestart.
type PolicyRestartResponse struct{}

// Response implements the Response interface.
func (*PolicyRestartResponse) Response() CC { return CCPolicyRestart }

// Create is the input to TPM2_Create.
// See definition in Part 3, Commands, section 12.1.
type Create struct {
	// handle of parent for new object
	ParentHandle AuthHandle `tpm2:"handle,auth"`
	// the sensitive data
	InSensitive TPM2BSensitiveCreate
	// the public template
	InPublic TPM2BPublic
	// data that will be included in the creation data for this object to
	// provide permanent, verifiable linkage between this object and its
	// parent
	OutsideInfo TPM2BData
	// PCR that will be used in creation data
	CreationPCR TPMLPCRSelection
}

// Command implements the Command interface.
func (*Create) Command() CC { return CCCreate }

// Execute executes the command and returns the response.
func (cmd *Create) Execute(t *TPM, s ...Session) (*CreateResponse, error) {
	var rsp CreateResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return nil, err
	}
	return &rsp, nil
}

// CreateResponse is the response from TPM2_Create.
type CreateResponse struct {
	// the private portion of the object
	OutPrivate TPM2BPrivate
	// the public portion of the created object
	OutPublic TPM2BPublic
	// contains a TPMS_CREATION_DATA
	CreationData TPM2BCreationData
	// digest of creationData using nameAlg of outPublic
	CreationHash TPM2BDigest
	// ticket used by TPM2_CertifyCreation() to validate that the
	// creation data was produced by the TPM
	CreationTicket TPMTTKCreation
}

// Response implements the Response interface.
func (*CreateResponse) Response() CC { return CCCreate }

// Load is the input to TPM2_Load.
// See definition in Part 3, Commands, section 12.2.
type Load struct {
	// handle of parent for new object
	ParentHandle AuthHandle `tpm2:"handle,auth"`
	// the private portion of the object
	InPrivate TPM2BPrivate
	// the public portion of the object
	InPublic TPM2BPublic
}

// Command implements the Command interface.
func (*Load) Command() CC { return CCLoad }

// Execute executes the command and returns the response.
func (cmd *Load) Execute(t *TPM, s ...Session) (*LoadResponse, error) {
	var rsp LoadResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return nil, err
	}
	t.trackHandle(rsp.ObjectHandle, rsp.Name)
	return &rsp, nil
}

// LoadResponse is the response from TPM2_Load.
type LoadResponse struct {
	// handle of type TPM_HT_TRANSIENT for loaded object
	ObjectHandle Handle `tpm2:"handle"`
	// Name of the loaded object
	Name TPM2BName
}

// Response implements the Response interface.
func (*LoadResponse) Response() CC { return CCLoad }

// LoadExternal is the input to TPM2_LoadExternal.
// See definition in Part 3, Commands, section 12.3.
type LoadExternal struct {
	// the sensitive portion of the object (optional)
	InPrivate TPM2BSensitive `tpm2:"optional"`
	// the public portion of the object
	InPublic TPM2BPublic
	// hierarchy with which the object area is associated
	Hierarchy TPMIRHHierarchy `tpm2:"nullable"`
}

// Command implements the Command interface.
func (*LoadExternal) Command() CC { return CCLoadExternal }

// Execute executes the command and returns the response.
func (cmd *LoadExternal) Execute(t *TPM, s ...Session) (*LoadExternalResponse, error) {
	var rsp LoadExternalResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return nil, err
	}
	t.trackHandle(rsp.ObjectHandle, rsp.Name)
	return &rsp, nil
}

// LoadExternalResponse is the response from TPM2_LoadExternal.
type LoadExternalResponse struct {
	// handle of type TPM_HT_TRANSIENT for loaded object
	ObjectHandle Handle `tpm2:"handle"`
	// Name of the loaded object
	Name TPM2BName
}

// Response implements the Response interface.
func (*LoadExternalResponse) Response() CC { return CCLoadExternal }

// ReadPublic is the input to TPM2_ReadPublic.
// See definition in Part 3, Commands, section 12.4.
type ReadPublic struct {
	// TPM handle of an object
	ObjectHandle TPMIDHObject `tpm2:"handle"`
}

// Command implements the Command interface.
func (*ReadPublic) Command() CC { return CCReadPublic }

// Execute executes the command and returns the response.
func (cmd *ReadPublic) Execute(t *TPM, s ...Session) (*ReadPublicResponse, error) {
	var rsp ReadPublicResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return nil, err
	}
	return &rsp, nil
}

// ReadPublicResponse is the response from TPM2_ReadPublic.
type ReadPublicResponse struct {
	// structure containing the public area of an object
	OutPublic TPM2BPublic
	// name of object
	Name TPM2BName
	// the Qualified Name of the object
	QualifiedName TPM2BName
}

// Response implements the Response interface.
func (*ReadPublicResponse) Response() CC { return CCReadPublic }

// Unseal is the input to TPM2_Unseal.
// See definition in Part 3, Commands, section 12.7.
type Unseal struct {
	ItemHandle AuthHandle `tpm2:"handle,auth"`
}

// Command implements the Command interface.
func (*Unseal) Command() CC { return CCUnseal }

// Execute executes the command and returns the response.
func (cmd *Unseal) Execute(t *TPM, s ...Session) (*UnsealResponse, error) {
	var rsp UnsealResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return nil, err
	}
	return &rsp, nil
}

// UnsealResponse is the response from TPM2_Unseal.
type UnsealResponse struct {
	OutData TPM2BSensitiveData
}

// Response implements the Response interface.
func (*UnsealResponse) Response() CC { return CCUnseal }

// ObjectChangeAuth is the input to TPM2_ObjectChangeAuth.
// See definition in Part 3, Commands, section 12.8.
type ObjectChangeAuth struct {
	// TPM handle of an object
	ObjectHandle AuthHandle `tpm2:"handle,auth"`
	// handle of the parent
	ParentHandle handle `tpm2:"handle"`
	// new authorization value
	NewAuth TPM2BAuth
}

// Command implements the Command interface.
func (*ObjectChangeAuth) Command() CC { return CCObjectChangeAuth }

// Execute executes the command and returns the response.
func (cmd *ObjectChangeAuth) Execute(t *TPM, s ...Session) (*ObjectChangeAuthResponse, error) {
	var rsp ObjectChangeAuthResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return nil, err
	}
	return &rsp, nil
}

// ObjectChangeAuthResponse is the response from TPM2_ObjectChangeAuth.
type ObjectChangeAuthResponse struct {
	// private area containing the new authorization value
	OutPrivate TPM2BPrivate
}

// Response implements the Response interface.
func (*ObjectChangeAuthResponse) Response() CC { return CCObjectChangeAuth }

// CreateLoaded is the input to TPM2_CreateLoaded.
// See definition in Part 3, Commands, section 12.9.
type CreateLoaded struct {
	// Handle of a transient storage key, a persistent storage key,
	// TPM_RH_ENDORSEMENT, TPM_RH_OWNER, TPM_RH_PLATFORM+{PP}, or
	// TPM_RH_NULL
	ParentHandle AuthHandle `tpm2:"handle,auth,nullable"`
	// the sensitive data, see TPM 2.0 Part 1 Sensitive Values
	InSensitive TPM2BSensitiveCreate
	// the public template
	InPublic TPM2BTemplate
}

// Command implements the Command interface.
func (*CreateLoaded) Command() CC { return CCCreateLoaded }

// Execute executes the command and returns the response.
func (cmd *CreateLoaded) Execute(t *TPM, s ...Session) (*CreateLoadedResponse, error) {
	var rsp CreateLoadedResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return nil, err
	}
	t.trackHandle(rsp.ObjectHandle, rsp.Name)
	return &rsp, nil
}

// CreateLoadedResponse is the response from TPM2_CreateLoaded.
type CreateLoadedResponse struct {
	// handle of type TPM_HT_TRANSIENT for loaded object
	ObjectHandle Handle `tpm2:"handle"`
	// the sensitive area of the object (optional)
	OutPrivate TPM2BPrivate `tpm2:"optional"`
	// the public portion of the created object
	OutPublic TPM2BPublic
	// the name of the created object
	Name TPM2BName
}

// Response implements the Response interface.
func (*CreateLoadedResponse) Response() CC { return CCCreateLoaded }

// Hash is the input to TPM2_Hash.
// See definition in Part 3, Commands, section 15.4.
type Hash struct {
	// data to be hashed
	Data TPM2BMaxBuffer
	// algorithm for the hash being computed - shall not be TPM_ALG_NULL
	HashAlg TPMIAlgHash
	// hierarchy to use for the ticket (TPM_RH_NULL allowed)
	Hierarchy TPMIRHHierarchy `tpm2:"nullable"`
}

// Command implements the Command interface.
func (*Hash) Command() CC { return CCHash }

// Execute executes the command and returns the response.
func (cmd *Hash) Execute(t *TPM, s ...Session) (*HashResponse, error) {
	var rsp HashResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return nil, err
	}
	return &rsp, nil
}

// HashResponse is the response from TPM2_Hash.
type HashResponse struct {
	// results
	OutHash TPM2BDigest
	// ticket indicating that the sequence of octets used to compute
	// outDigest did not start with TPM_GENERATED_VALUE
	Validation TPMTTKHashCheck
}

// Response implements the Response interface.
func (*HashResponse) Response() CC { return CCHash }

// GetRandom is the input to TPM2_GetRandom.
// See definition in Part 3, Commands, section 16.1.
type GetRandom struct {
	// number of octets to return
	BytesRequested uint16
}

// Command implements the Command interface.
func (*GetRandom) Command() CC { return CCGetRandom }

// Execute executes the command and returns the response.
func (cmd *GetRandom) Execute(t *TPM, s ...Session) (*GetRandomResponse, error) {
	var rsp GetRandomResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return nil, err
	}
	return &rsp, nil
}

// GetRandomResponse is the response from TPM2_GetRandom.
type GetRandomResponse struct {
	// the random octets
	RandomBytes TPM2BDigest
}

// Response implements the Response interface.
func (*GetRandomResponse) Response() CC { return CCGetRandom }

// StirRandom is the input to TPM2_StirRandom.
// See definition in Part 3, Commands, section 16.2.
type StirRandom struct {
	// additional information
	InData TPM2BSensitiveData
}

// Command implements the Command interface.
func (*StirRandom) Command() CC { return CCStirRandom }

// Execute executes the command and returns the response.
func (cmd *StirRandom) Execute(t *TPM, s ...Session) error {
	var rsp StirRandomResponse
	return t.execute(cmd, &rsp, s...)
}

// StirRandomResponse is the response from TPM2_StirRandom.
type StirRandomResponse struct{}

// Response implements the Response interface.
func (*StirRandomResponse) Response() CC { return CCStirRandom }

// Certify is the input to TPM2_Certify.
// See definition in Part 3, Commands, section 18.2.
type Certify struct {
	// handle of the object to be certified
	ObjectHandle AuthHandle `tpm2:"handle,auth"`
	// handle of the key used to sign the attestation structure
	SignHandle AuthHandle `tpm2:"handle,auth"`
	// user provided qualifying data
	QualifyingData TPM2BData
	// signing scheme to use if the scheme for signHandle is TPM_ALG_NULL
	InScheme TPMTSigScheme
}

// Command implements the Command interface.
func (*Certify) Command() CC { return CCCertify }

// Execute executes the command and returns the response.
func (cmd *Certify) Execute(t *TPM, s ...Session) (*CertifyResponse, error) {
	var rsp CertifyResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return nil, err
	}
	return &rsp, nil
}

// CertifyResponse is the response from TPM2_Certify.
type CertifyResponse struct {
	// the structure that was signed
	CertifyInfo TPM2BAttest
	// the asymmetric signature over certifyInfo using the key referenced
	// by signHandle
	Signature TPMTSignature
}

// Response implements the Response interface.
func (*CertifyResponse) Response() CC { return CCCertify }

// CertifyCreation is the input to TPM2_CertifyCreation.
// See definition in Part 3, Commands, section 18.3.
type CertifyCreation struct {
	// handle of the key that will sign the attestation block
	SignHandle AuthHandle `tpm2:"handle,auth"`
	// the object associated with the creation data
	ObjectHandle handle `tpm2:"handle"`
	// user-provided qualifying data
	QualifyingData TPM2BData
	// hash of the creation data produced by TPM2_Create() or
	// TPM2_CreatePrimary()
	CreationHash TPM2BDigest
	// signing scheme to use if the scheme for signHandle is TPM_ALG_NULL
	InScheme TPMTSigScheme
	// ticket produced by TPM2_Create() or TPM2_CreatePrimary()
	CreationTicket TPMTTKCreation
}

// Command implements the Command interface.
func (*CertifyCreation) Command() CC { return CCCertifyCreation }

// Execute executes the command and returns the response.
func (cmd *CertifyCreation) Execute(t *TPM, s ...Session) (*CertifyCreationResponse, error) {
	var rsp CertifyCreationResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return nil, err
	}
	return &rsp, nil
}

// CertifyCreationResponse is the response from TPM2_CertifyCreation.
type CertifyCreationResponse struct {
	// the structure that was signed
	CertifyInfo TPM2BAttest
	// the signature over certifyInfo
	Signature TPMTSignature
}

// Response implements the Response interface.
func (*CertifyCreationResponse) Response() CC { return CCCertifyCreation }

// Quote is the input to TPM2_Quote.
// See definition in Part 3, Commands, section 18.4.
type Quote struct {
	// handle of key that will perform signature
	SignHandle AuthHandle `tpm2:"handle,auth"`
	// data supplied by the caller
	QualifyingData TPM2BData
	// signing scheme to use if the scheme for signHandle is TPM_ALG_NULL
	InScheme TPMTSigScheme
	// PCR set to quote
	PCRSelect TPMLPCRSelection
}

// Command implements the Command interface.
func (*Quote) Command() CC { return CCQuote }

// Execute executes the command and returns the response.
func (cmd *Quote) Execute(t *TPM, s ...Session) (*QuoteResponse, error) {
	var rsp QuoteResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return nil, err
	}
	return &rsp, nil
}

// QuoteResponse is the response from TPM2_Quote.
type QuoteResponse struct {
	// the quoted information
	Quoted TPM2BAttest
	// the signature over quoted
	Signature TPMTSignature
}

// Response implements the Response interface.
func (*QuoteResponse) Response() CC { return CCQuote }

// GetSessionAuditDigest is the input to TPM2_GetSessionAuditDigest.
// See definition in Part 3, Commands, section 18.5.
type GetSessionAuditDigest struct {
	// handle of the privacy administrator (TPM_RH_ENDORSEMENT)
	PrivacyAdminHandle AuthHandle `tpm2:"handle,auth"`
	// handle of the signing key
	SignHandle AuthHandle `tpm2:"handle,auth"`
	// handle of the audit session
	SessionHandle handle `tpm2:"handle"`
	// user-provided qualifying data - may be zero-length
	QualifyingData TPM2BData
	// signing scheme to use if the scheme for signHandle is TPM_ALG_NULL
	InScheme TPMTSigScheme
}

// Command implements the Command interface.
func (*GetSessionAuditDigest) Command() CC { return CCGetSessionAuditDigest }

// Execute executes the command and returns the response.
func (cmd *GetSessionAuditDigest) Execute(t *TPM, s ...Session) (*GetSessionAuditDigestResponse, error) {
	var rsp GetSessionAuditDigestResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return nil, err
	}
	return &rsp, nil
}

// GetSessionAuditDigestResponse is the response from
// TPM2_GetSessionAuditDigest.
type GetSessionAuditDigestResponse struct {
	// the audit information that was signed
	AuditInfo TPM2BAttest
	// the signature over auditInfo
	Signature TPMTSignature
}

// Response implements the Response interface.
func (*GetSessionAuditDigestResponse) Response() CC { return CCGetSessionAuditDigest }

// Sign is the input to TPM2_Sign.
// See definition in Part 3, Commands, section 20.2.
type Sign struct {
	// Handle of key that will perform signing
	KeyHandle AuthHandle `tpm2:"handle,auth"`
	// digest to be signed
	Digest TPM2BDigest
	// signing scheme to use if the scheme for keyHandle is TPM_ALG_NULL
	InScheme TPMTSigScheme `tpm2:"nullable"`
	// proof that digest was created by the TPM.
	// If keyHandle is not a restricted signing key, then this may be a
	// NULL Ticket with tag = TPM_ST_CHECKHASH.
	Validation TPMTTKHashCheck
}

// Command implements the Command interface.
func (*Sign) Command() CC { return CCSign }

// Execute executes the command and returns the response.
func (cmd *Sign) Execute(t *TPM, s ...Session) (*SignResponse, error) {
	var rsp SignResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return nil, err
	}
	return &rsp, nil
}

// SignResponse is the response from TPM2_Sign.
type SignResponse struct {
	// the signature
	Signature TPMTSignature
}

// Response implements the Response interface.
func (*SignResponse) Response() CC { return CCSign }

// VerifySignature is the input to TPM2_VerifySignature.
// See definition in Part 3, Commands, section 20.1.
type VerifySignature struct {
	// handle of public key that will be used in the validation
	KeyHandle handle `tpm2:"handle"`
	// digest of the signed message
	Digest TPM2BDigest
	// signature to be tested
	Signature TPMTSignature
}

// Command implements the Command interface.
func (*VerifySignature) Command() CC { return CCVerifySignature }

// Execute executes the command and returns the response.
func (cmd *VerifySignature) Execute(t *TPM, s ...Session) (*VerifySignatureResponse, error) {
	var rsp VerifySignatureResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return nil, err
	}
	return &rsp, nil
}

// VerifySignatureResponse is the response from TPM2_VerifySignature.
type VerifySignatureResponse struct {
	Validation TPMTTKVerified
}

// Response implements the Response interface.
func (*VerifySignatureResponse) Response() CC { return CCVerifySignature }

// PCRExtend is the input to TPM2_PCR_Extend.
// See definition in Part 3, Commands, section 22.2.
type PCRExtend struct {
	// handle of the PCR
	PCRHandle AuthHandle `tpm2:"handle,auth"`
	// list of tagged digest values to be extended
	Digests TPMLDigestValues
}

// Command implements the Command interface.
func (*PCRExtend) Command() CC { return CCPCRExtend }

// Execute executes the command and returns the response.
func (cmd *PCRExtend) Execute(t *TPM, s ...Session) error {
	var rsp PCRExtendResponse
	return t.execute(cmd, &rsp, s...)
}

// PCRExtendResponse is the response from TPM2_PCR_Extend.
type PCRExtendResponse struct{}

// Response implements the Response interface.
func (*PCRExtendResponse) Response() CC { return CCPCRExtend }

// PCREvent is the input to TPM2_PCR_Event.
// See definition in Part 3, Commands, section 22.3.
type PCREvent struct {
	// Handle of the PCR
	PCRHandle AuthHandle `tpm2:"handle,auth"`
	// Event data in sized buffer
	EventData TPM2BEvent
}

// Command implements the Command interface.
func (*PCREvent) Command() CC { return CCPCREvent }

// Execute executes the command and returns the response.
func (cmd *PCREvent) Execute(t *TPM, s ...Session) (*PCREventResponse, error) {
	var rsp PCREventResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return nil, err
	}
	return &rsp, nil
}

// PCREventResponse is the response from TPM2_PCR_Event.
type PCREventResponse struct {
	// the digests computed from the event data, one per allocated bank
	Digests TPMLDigestValues
}

// Response implements the Response interface.
func (*PCREventResponse) Response() CC { return CCPCREvent }

// PCRRead is the input to TPM2_PCR_Read.
// See definition in Part 3, Commands, section 22.4.
type PCRRead struct {
	// The selection of PCR to read
	PCRSelectionIn TPMLPCRSelection
}

// Command implements the Command interface.
func (*PCRRead) Command() CC { return CCPCRRead }

// Execute executes the command and returns the response.
func (cmd *PCRRead) Execute(t *TPM, s ...Session) (*PCRReadResponse, error) {
	var rsp PCRReadResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return nil, err
	}
	return &rsp, nil
}

// PCRReadResponse is the response from TPM2_PCR_Read.
type PCRReadResponse struct {
	// the current value of the PCR update counter
	PCRUpdateCounter uint32
	// the PCR in the returned list
	PCRSelectionOut TPMLPCRSelection
	// the contents of the PCR indicated in pcrSelectOut-> pcrSelection[]
	// as tagged digests
	PCRValues TPMLDigest
}

// Response implements the Response interface.
func (*PCRReadResponse) Response() CC { return CCPCRRead }

// PCRReset is the input to TPM2_PCR_Reset.
// See definition in Part 3, Commands, section 22.5.
type PCRReset struct {
	// the PCR to reset
	PCRHandle AuthHandle `tpm2:"handle,auth"`
}

// Command implements the Command interface.
func (*PCRReset) Command() CC { return CCPCRReset }

// Execute executes the command and returns the response.
func (cmd *PCRReset) Execute(t *TPM, s ...Session) (*PCRResetResponse, error) {
	var rsp PCRResetResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return nil, err
	}
	return &rsp, nil
}

// PCRResetResponse is the response from TPM2_PCR_Reset.
type PCRResetResponse struct{}

// Response implements the Response interface.
func (*PCRResetResponse) Response() CC { return CCPCRReset }

// PolicySigned is the input to TPM2_PolicySigned.
// See definition in Part 3, Commands, section 23.3.
type PolicySigned struct {
	// handle for an entity providing the authorization
	AuthObject handle `tpm2:"handle"`
	// handle for the policy session being extended
	PolicySession handle `tpm2:"handle"`
	// the policy nonce for the session
	NonceTPM TPM2BNonce
	// digest of the command parameters to which this authorization is
	// limited
	CPHashA TPM2BDigest
	// a reference to a policy relating to the authorization - may be the
	// Empty Buffer
	PolicyRef TPM2BNonce
	// time when authorization will expire, measured in seconds from the
	// time that nonceTPM was generated
	Expiration int32
	// signed authorization (not optional)
	Auth TPMTSignature
}

// Command implements the Command interface.
func (*PolicySigned) Command() CC { return CCPolicySigned }

// Execute executes the command and returns the response.
func (cmd *PolicySigned) Execute(t *TPM, s ...Session) (*PolicySignedResponse, error) {
	var rsp PolicySignedResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return nil, err
	}
	return &rsp, nil
}

// policyUpdate implements the PolicyUpdate helper for the several TPM policy
// commands as defined in Part 3, 23.2.3.
func policyUpdate(policy *PolicyCalculator, cc CC, arg2, arg3 []byte) error {
	if err := policy.Update(cc, arg2); err != nil {
		return err
	}
	return policy.Update(arg3)
}

// Update implements the PolicyCommand interface.
func (cmd *PolicySigned) Update(policy *PolicyCalculator) error {
	return policyUpdate(policy, CCPolicySigned, cmd.AuthObject.KnownName().Buffer, cmd.PolicyRef.Buffer)
}

// PolicySignedResponse is the response from TPM2_PolicySigned.
type PolicySignedResponse struct {
	// implementation-specific time value used to indicate to the TPM
	// when the ticket expires
	Timeout TPM2BTimeout
	// produced if the command succeeds and expiration in the command was
	// non-zero
	PolicyTicket TPMTTKAuth
}

// Response implements the Response interface.
func (*PolicySignedResponse) Response() CC { return CCPolicySigned }

// PolicySecret is the input to TPM2_PolicySecret.
// See definition in Part 3, Commands, section 23.4.
type PolicySecret struct {
	// handle for an entity providing the authorization
	AuthHandle AuthHandle `tpm2:"handle,auth"`
	// handle for the policy session being extended
	PolicySession handle `tpm2:"handle"`
	// the policy nonce for the session
	NonceTPM TPM2BNonce
	// digest of the command parameters to which this authorization is
	// limited
	CPHashA TPM2BDigest
	// a reference to a policy relating to the authorization - may be the
	// Empty Buffer
	PolicyRef TPM2BNonce
	// time when authorization will expire, measured in seconds from the
	// time that nonceTPM was generated
	Expiration int32
}

// Command implements the Command interface.
func (*PolicySecret) Command() CC { return CCPolicySecret }

// Execute executes the command and returns the response.
func (cmd *PolicySecret) Execute(t *TPM, s ...Session) (*PolicySecretResponse, error) {
	var rsp PolicySecretResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return nil, err
	}
	return &rsp, nil
}

// Update implements the PolicyCommand interface.
func (cmd *PolicySecret) Update(policy *PolicyCalculator) error {
	return policyUpdate(policy, CCPolicySecret, cmd.AuthHandle.KnownName().Buffer, cmd.PolicyRef.Buffer)
}

// PolicySecretResponse is the response from TPM2_PolicySecret.
type PolicySecretResponse struct {
	// implementation-specific time value used to indicate to the TPM
	// when the ticket expires
	Timeout TPM2BTimeout
	// produced if the command succeeds and expiration in the command was
	// non-zero
	PolicyTicket TPMTTKAuth
}

// Response implements the Response interface.
func (*PolicySecretResponse) Response() CC { return CCPolicySecret }

// PolicyOr is the input to TPM2_PolicyOR.
// See definition in Part 3, Commands, section 23.6.
type PolicyOr struct {
	// handle for the policy session being extended
	PolicySession handle `tpm2:"handle"`
	// the list of hashes to check for a match
	PHashList TPMLDigest
}

// Command implements the Command interface.
func (*PolicyOr) Command() CC { return CCPolicyOR }

// Execute executes the command and returns the response.
func (cmd *PolicyOr) Execute(t *TPM, s ...Session) error {
	var rsp PolicyOrResponse
	return t.execute(cmd, &rsp, s...)
}

// Update implements the PolicyCommand interface.
func (cmd *PolicyOr) Update(policy *PolicyCalculator) error {
	policy.Reset()
	var digests []byte
	for _, digest := range cmd.PHashList.Digests {
		digests = append(digests, digest.Buffer...)
	}
	return policy.Update(CCPolicyOR, digests)
}

// PolicyOrResponse is the response from TPM2_PolicyOR.
type PolicyOrResponse struct{}

// Response implements the Response interface.
func (*PolicyOrResponse) Response() CC { return CCPolicyOR }

// PolicyPCR is the input to TPM2_PolicyPCR.
// See definition in Part 3, Commands, section 23.7.
type PolicyPCR struct {
	// handle for the policy session being extended
	PolicySession handle `tpm2:"handle"`
	// expected digest value of the selected PCR using the hash algorithm
	// of the session; may be zero length
	PcrDigest TPM2BDigest
	// the PCR to include in the check digest
	Pcrs TPMLPCRSelection
}

// Command implements the Command interface.
func (*PolicyPCR) Command() CC { return CCPolicyPCR }

// Execute executes the command and returns the response.
func (cmd *PolicyPCR) Execute(t *TPM, s ...Session) error {
	var rsp PolicyPCRResponse
	return t.execute(cmd, &rsp, s...)
}

// Update implements the PolicyCommand interface.
func (cmd *PolicyPCR) Update(policy *PolicyCalculator) error {
	return policy.Update(CCPolicyPCR, cmd.Pcrs, cmd.PcrDigest.Buffer)
}

// PolicyPCRResponse is the response from TPM2_PolicyPCR.
type PolicyPCRResponse struct{}

// Response implements the Response interface.
func (*PolicyPCRResponse) Response() CC { return CCPolicyPCR }

// PolicyCommandCode is the input to TPM2_PolicyCommandCode.
// See definition in Part 3, Commands, section 23.11.
type PolicyCommandCode struct {
	// handle for the policy session being extended
	PolicySession handle `tpm2:"handle"`
	// the allowed commandCode
	Code CC
}

// Command implements the Command interface.
func (*PolicyCommandCode) Command() CC { return CCPolicyCommandCode }

// Execute executes the command and returns the response.
func (cmd *PolicyCommandCode) Execute(t *TPM, s ...Session) error {
	var rsp PolicyCommandCodeResponse
	return t.execute(cmd, &rsp, s...)
}

// Update implements the PolicyCommand interface.
func (cmd *PolicyCommandCode) Update(policy *PolicyCalculator) error {
	return policy.Update(CCPolicyCommandCode, cmd.Code)
}

// PolicyCommandCodeResponse is the response from TPM2_PolicyCommandCode.
type PolicyCommandCodeResponse struct{}

// Response implements the Response interface.
func (*PolicyCommandCodeResponse) Response() CC { return CCPolicyCommandCode }

// PolicyCPHash is the input to TPM2_PolicyCpHash.
// See definition in Part 3, Commands, section 23.13.
type PolicyCPHash struct {
	// handle for the policy session being extended
	PolicySession handle `tpm2:"handle"`
	// the cpHash added to the policy
	CPHashA TPM2BDigest
}

// Command implements the Command interface.
func (*PolicyCPHash) Command() CC { return CCPolicyCpHash }

// Execute executes the command and returns the response.
func (cmd *PolicyCPHash) Execute(t *TPM, s ...Session) error {
	var rsp PolicyCPHashResponse
	return t.execute(cmd, &rsp, s...)
}

// Update implements the PolicyCommand interface.
func (cmd *PolicyCPHash) Update(policy *PolicyCalculator) error {
	return policy.Update(CCPolicyCpHash, cmd.CPHashA.Buffer)
}

// PolicyCPHashResponse is the response from TPM2_PolicyCpHash.
type PolicyCPHashResponse struct{}

// Response implements the Response interface.
func (*PolicyCPHashResponse) Response() CC { return CCPolicyCpHash }

// PolicyAuthorize is the input to TPM2_PolicyAuthorize.
// See definition in Part 3, Commands, section 23.16.
type PolicyAuthorize struct {
	// handle for the policy session being extended
	PolicySession handle `tpm2:"handle"`
	// digest of the policy being approved
	ApprovedPolicy TPM2BDigest
	// a policy qualifier
	PolicyRef TPM2BDigest
	// Name of a key that can sign a policy addition
	KeySign TPM2BName
	// ticket validating that approvedPolicy and policyRef were signed by
	// keySign
	CheckTicket TPMTTKVerified
}

// Command implements the Command interface.
func (*PolicyAuthorize) Command() CC { return CCPolicyAuthorize }

// Execute executes the command and returns the response.
func (cmd *PolicyAuthorize) Execute(t *TPM, s ...Session) error {
	var rsp PolicyAuthorizeResponse
	return t.execute(cmd, &rsp, s...)
}

// Update implements the PolicyCommand interface.
func (cmd *PolicyAuthorize) Update(policy *PolicyCalculator) error {
	return policyUpdate(policy, CCPolicyAuthorize, cmd.KeySign.Buffer, cmd.PolicyRef.Buffer)
}

// PolicyAuthorizeResponse is the response from TPM2_PolicyAuthorize.
type PolicyAuthorizeResponse struct{}

// Response implements the Response interface.
func (*PolicyAuthorizeResponse) Response() CC { return CCPolicyAuthorize }

// PolicyAuthValue is the input to TPM2_PolicyAuthValue.
// See definition in Part 3, Commands, section 23.17.
type PolicyAuthValue struct {
	// handle for the policy session being extended
	PolicySession handle `tpm2:"handle"`
}

// Command implements the Command interface.
func (*PolicyAuthValue) Command() CC { return CCPolicyAuthValue }

// Execute executes the command and returns the response.
func (cmd *PolicyAuthValue) Execute(t *TPM, s ...Session) error {
	var rsp PolicyAuthValueResponse
	return t.execute(cmd, &rsp, s...)
}

// Update implements the PolicyCommand interface.
func (cmd *PolicyAuthValue) Update(policy *PolicyCalculator) error {
	return policy.Update(CCPolicyAuthValue)
}

// PolicyAuthValueResponse is the response from TPM2_PolicyAuthValue.
type PolicyAuthValueResponse struct{}

// Response implements the Response interface.
func (*PolicyAuthValueResponse) Response() CC { return CCPolicyAuthValue }

// PolicyPassword is the input to TPM2_PolicyPassword.
// See definition in Part 3, Commands, section 23.18.
type PolicyPassword struct {
	// handle for the policy session being extended
	PolicySession handle `tpm2:"handle"`
}

// Command implements the Command interface.
func (*PolicyPassword) Command() CC { return CCPolicyPassword }

// Execute executes the command and returns the response.
func (cmd *PolicyPassword) Execute(t *TPM, s ...Session) error {
	var rsp PolicyPasswordResponse
	return t.execute(cmd, &rsp, s...)
}

// Update implements the PolicyCommand interface.
// PolicyPassword uses the same policy digest update as PolicyAuthValue.
// See Part 3, 23.18.3.
func (cmd *PolicyPassword) Update(policy *PolicyCalculator) error {
	return policy.Update(CCPolicyAuthValue)
}

// PolicyPasswordResponse is the response from TPM2_PolicyPassword.
type PolicyPasswordResponse struct{}

// Response implements the Response interface.
func (*PolicyPasswordResponse) Response() CC { return CCPolicyPassword }

// PolicyGetDigest is the input to TPM2_PolicyGetDigest.
// See definition in Part 3, Commands, section 23.19.
type PolicyGetDigest struct {
	// handle for the policy session
	PolicySession handle `tpm2:"handle"`
}

// Command implements the Command interface.
func (*PolicyGetDigest) Command() CC { return CCPolicyGetDigest }

// Execute executes the command and returns the response.
func (cmd *PolicyGetDigest) Execute(t *TPM, s ...Session) (*PolicyGetDigestResponse, error) {
	var rsp PolicyGetDigestResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return nil, err
	}
	return &rsp, nil
}

// PolicyGetDigestResponse is the response from TPM2_PolicyGetDigest.
type PolicyGetDigestResponse struct {
	// the current value of the policySession->policyDigest
	PolicyDigest TPM2BDigest
}

// Response implements the Response interface.
func (*PolicyGetDigestResponse) Response() CC { return CCPolicyGetDigest }

// PolicyNVWritten is the input to TPM2_PolicyNvWritten.
// See definition in Part 3, Commands, section 23.20.
type PolicyNVWritten struct {
	// handle for the policy session being extended
	PolicySession handle `tpm2:"handle"`
	// YES if NV Index is required to have been written
	// NO if NV Index is required not to have been written
	WrittenSet TPMIYesNo
}

// Command implements the Command interface.
func (*PolicyNVWritten) Command() CC { return CCPolicyNVWritten }

// Execute executes the command and returns the response.
func (cmd *PolicyNVWritten) Execute(t *TPM, s ...Session) error {
	var rsp PolicyNVWrittenResponse
	return t.execute(cmd, &rsp, s...)
}

// Update implements the PolicyCommand interface.
func (cmd *PolicyNVWritten) Update(policy *PolicyCalculator) error {
	return policy.Update(CCPolicyNVWritten, cmd.WrittenSet)
}

// PolicyNVWrittenResponse is the response from TPM2_PolicyNvWritten.
type PolicyNVWrittenResponse struct{}

// Response implements the Response interface.
func (*PolicyNVWrittenResponse) Response() CC { return CCPolicyNVWritten }

// PolicyAuthorizeNV is the input to TPM2_PolicyAuthorizeNV.
// See definition in Part 3, Commands, section 23.22.
type PolicyAuthorizeNV struct {
	// handle indicating the source of the authorization value
	AuthHandle AuthHandle `tpm2:"handle,auth"`
	// the NV Index of the area to read
	NVIndex handle `tpm2:"handle"`
	// handle for the policy session being extended
	PolicySession handle `tpm2:"handle"`
}

// Command implements the Command interface.
func (*PolicyAuthorizeNV) Command() CC { return CCPolicyAuthorizeNV }

// Execute executes the command and returns the response.
func (cmd *PolicyAuthorizeNV) Execute(t *TPM, s ...Session) error {
	var rsp PolicyAuthorizeNVResponse
	return t.execute(cmd, &rsp, s...)
}

// Update implements the PolicyCommand interface.
func (cmd *PolicyAuthorizeNV) Update(policy *PolicyCalculator) error {
	policy.Reset()
	return policy.Update(CCPolicyAuthorizeNV, cmd.NVIndex.KnownName().Buffer)
}

// PolicyAuthorizeNVResponse is the response from TPM2_PolicyAuthorizeNV.
type PolicyAuthorizeNVResponse struct{}

// Response implements the Response interface.
func (*PolicyAuthorizeNVResponse) Response() CC { return CCPolicyAuthorizeNV }

// CreatePrimary is the input to TPM2_CreatePrimary.
// See definition in Part 3, Commands, section 24.1.
type CreatePrimary struct {
	// TPM_RH_ENDORSEMENT, TPM_RH_OWNER, TPM_RH_PLATFORM+{PP}, or
	// TPM_RH_NULL
	PrimaryHandle AuthHandle `tpm2:"handle,auth"`
	// the sensitive data
	InSensitive TPM2BSensitiveCreate
	// the public template
	InPublic TPM2BPublic
	// data that will be included in the creation data for this object to
	// provide permanent, verifiable linkage between this object and its
	// parent
	OutsideInfo TPM2BData
	// PCR that will be used in creation data
	CreationPCR TPMLPCRSelection
}

// Command implements the Command interface.
func (*CreatePrimary) Command() CC { return CCCreatePrimary }

// Execute executes the command and returns the response.
func (cmd *CreatePrimary) Execute(t *TPM, s ...Session) (*CreatePrimaryResponse, error) {
	var rsp CreatePrimaryResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return nil, err
	}
	t.trackHandle(rsp.ObjectHandle, rsp.Name)
	return &rsp, nil
}

// CreatePrimaryResponse is the response from TPM2_CreatePrimary.
type CreatePrimaryResponse struct {
	// handle of type TPM_HT_TRANSIENT for created Primary Object
	ObjectHandle Handle `tpm2:"handle"`
	// the public portion of the created object
	OutPublic TPM2BPublic
	// contains a TPMS_CREATION_DATA
	CreationData TPM2BCreationData
	// digest of creationData using nameAlg of outPublic
	CreationHash TPM2BDigest
	// ticket used by TPM2_CertifyCreation() to validate that the
	// creation data was produced by the TPM
	CreationTicket TPMTTKCreation
	// the name of the created object
	Name TPM2BName
}

// Response implements the Response interface.
func (*CreatePrimaryResponse) Response() CC { return CCCreatePrimary }

// HierarchyChangeAuth is the input to TPM2_HierarchyChangeAuth.
// See definition in Part 3, Commands, section 24.8.
type HierarchyChangeAuth struct {
	// TPM_RH_LOCKOUT, TPM_RH_ENDORSEMENT, TPM_RH_OWNER or TPM_RH_PLATFORM+{PP}
	AuthHandle AuthHandle `tpm2:"handle,auth"`
	// new authorization value
	NewAuth TPM2BAuth
}

// Command implements the Command interface.
func (*HierarchyChangeAuth) Command() CC { return CCHierarchyChangeAuth }

// Execute executes the command and returns the response.
func (cmd *HierarchyChangeAuth) Execute(t *TPM, s ...Session) error {
	var rsp HierarchyChangeAuthResponse
	return t.execute(cmd, &rsp, s...)
}

// HierarchyChangeAuthResponse is the response from TPM2_HierarchyChangeAuth.
type HierarchyChangeAuthResponse struct{}

// Response implements the Response interface.
func (*HierarchyChangeAuthResponse) Response() CC { return CCHierarchyChangeAuth }

// DictionaryAttackLockReset is the input to
// TPM2_DictionaryAttackLockReset.
// See definition in Part 3, Commands, section 25.2.
type DictionaryAttackLockReset struct {
	// TPM_RH_LOCKOUT
	LockHandle AuthHandle `tpm2:"handle,auth"`
}

// Command implements the Command interface.
func (*DictionaryAttackLockReset) Command() CC { return CCDictionaryAttackLockReset }

// Execute executes the command and returns the response.
func (cmd *DictionaryAttackLockReset) Execute(t *TPM, s ...Session) error {
	var rsp DictionaryAttackLockResetResponse
	return t.execute(cmd, &rsp, s...)
}

// DictionaryAttackLockResetResponse is the response from
// TPM2_DictionaryAttackLockReset.
type DictionaryAttackLockResetResponse struct{}

// Response implements the Response interface.
func (*DictionaryAttackLockResetResponse) Response() CC { return CCDictionaryAttackLockReset }

// ContextSave is the input to TPM2_ContextSave.
// See definition in Part 3, Commands, section 28.2.
type ContextSave struct {
	// handle of the resource to save
	SaveHandle TPMIDHContext `tpm2:"handle"`
}

// Command implements the Command interface.
func (*ContextSave) Command() CC { return CCContextSave }

// Execute executes the command and returns the response.
func (cmd *ContextSave) Execute(t *TPM, s ...Session) (*ContextSaveResponse, error) {
	var rsp ContextSaveResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return nil, err
	}
	return &rsp, nil
}

// ContextSaveResponse is the response from TPM2_ContextSave.
type ContextSaveResponse struct {
	Context TPMSContext
}

// Response implements the Response interface.
func (*ContextSaveResponse) Response() CC { return CCContextSave }

// ContextLoad is the input to TPM2_ContextLoad.
// See definition in Part 3, Commands, section 28.3.
type ContextLoad struct {
	// the context blob
	Context TPMSContext
}

// Command implements the Command interface.
func (*ContextLoad) Command() CC { return CCContextLoad }

// Execute executes the command and returns the response.
func (cmd *ContextLoad) Execute(t *TPM, s ...Session) (*ContextLoadResponse, error) {
	var rsp ContextLoadResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return nil, err
	}
	// Re-bind the name of reloaded objects. Sessions have no public area,
	// and their name is implied by the handle value.
	if rsp.LoadedHandle.Class() == HTTransient {
		_, _ = t.FromTPMPublic(rsp.LoadedHandle)
	}
	return &rsp, nil
}

// ContextLoadResponse is the response from TPM2_ContextLoad.
type ContextLoadResponse struct {
	// the handle assigned to the resource after it has been successfully
	// loaded
	LoadedHandle TPMIDHContext `tpm2:"handle"`
}

// Response implements the Response interface.
func (*ContextLoadResponse) Response() CC { return CCContextLoad }

// FlushContext is the input to TPM2_FlushContext.
// See definition in Part 3, Commands, section 28.4.
type FlushContext struct {
	// the handle of the item to flush
	FlushHandle handle `tpm2:"handle"`
}

// Command implements the Command interface.
func (*FlushContext) Command() CC { return CCFlushContext }

// Execute executes the command and returns the response.
func (cmd *FlushContext) Execute(t *TPM, s ...Session) error {
	var rsp FlushContextResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return err
	}
	t.forgetHandle(Handle(cmd.FlushHandle.HandleValue()))
	return nil
}

// FlushContextResponse is the response from TPM2_FlushContext.
type FlushContextResponse struct{}

// Response implements the Response interface.
func (*FlushContextResponse) Response() CC { return CCFlushContext }

// EvictControl is the input to TPM2_EvictControl.
// See definition in Part 3, Commands, section 28.5.
type EvictControl struct {
	// TPM_RH_OWNER or TPM_RH_PLATFORM+{PP}
	Auth AuthHandle `tpm2:"handle,auth"`
	// the handle of a loaded object
	ObjectHandle handle `tpm2:"handle"`
	// if objectHandle is a transient object handle, then this is the
	// persistent handle for the object
	// if objectHandle is a persistent object handle, then it shall be
	// the same value as persistentHandle
	PersistentHandle TPMIDHPersistent
}

// Command implements the Command interface.
func (*EvictControl) Command() CC { return CCEvictControl }

// Execute executes the command and returns the response.
func (cmd *EvictControl) Execute(t *TPM, s ...Session) error {
	var rsp EvictControlResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return err
	}
	if cmd.ObjectHandle.HandleValue() == uint32(cmd.PersistentHandle) {
		// Eviction direction: the persistent object is gone.
		t.forgetHandle(cmd.PersistentHandle)
	} else if name := cmd.ObjectHandle.KnownName(); name != nil {
		// Persisting preserves the object's name.
		t.trackHandle(cmd.PersistentHandle, *name)
	}
	return nil
}

// EvictControlResponse is the response from TPM2_EvictControl.
type EvictControlResponse struct{}

// Response implements the Response interface.
func (*EvictControlResponse) Response() CC { return CCEvictControl }

// ReadClock is the input to TPM2_ReadClock.
// See definition in Part 3, Commands, section 29.1.
type ReadClock struct{}

// Command implements the Command interface.
func (*ReadClock) Command() CC { return CCReadClock }

// Execute executes the command and returns the response.
func (cmd *ReadClock) Execute(t *TPM, s ...Session) (*ReadClockResponse, error) {
	var rsp ReadClockResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return nil, err
	}
	return &rsp, nil
}

// ReadClockResponse is the response from TPM2_ReadClock.
type ReadClockResponse struct {
	CurrentTime TPMSTimeInfo
}

// Response implements the Response interface.
func (*ReadClockResponse) Response() CC { return CCReadClock }

// GetCapability is the input to TPM2_GetCapability.
// See definition in Part 3, Commands, section 30.2.
type GetCapability struct {
	// group selection; determines the format of the response
	Capability Cap
	// further definition of information
	Property uint32
	// number of properties of the indicated type to return
	PropertyCount uint32
}

// Command implements the Command interface.
func (*GetCapability) Command() CC { return CCGetCapability }

// Execute executes the command and returns the response.
func (cmd *GetCapability) Execute(t *TPM, s ...Session) (*GetCapabilityResponse, error) {
	var rsp GetCapabilityResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return nil, err
	}
	return &rsp, nil
}

// GetCapabilityResponse is the response from TPM2_GetCapability.
type GetCapabilityResponse struct {
	// flag to indicate if there are more values of this type
	MoreData TPMIYesNo
	// the capability data
	CapabilityData TPMSCapabilityData
}

// Response implements the Response interface.
func (*GetCapabilityResponse) Response() CC { return CCGetCapability }

// TestParms is the input to TPM2_TestParms.
// See definition in Part 3, Commands, section 30.3.
type TestParms struct {
	// algorithm parameters to be validated
	Parameters TPMTPublicParms
}

// Command implements the Command interface.
func (*TestParms) Command() CC { return CCTestParms }

// Execute executes the command and returns the response.
func (cmd *TestParms) Execute(t *TPM, s ...Session) error {
	var rsp TestParmsResponse
	return t.execute(cmd, &rsp, s...)
}

// TestParmsResponse is the response from TPM2_TestParms.
type TestParmsResponse struct{}

// Response implements the Response interface.
func (*TestParmsResponse) Response() CC { return CCTestParms }

// NVDefineSpace is the input to TPM2_NV_DefineSpace.
// See definition in Part 3, Commands, section 31.3.
type NVDefineSpace struct {
	// TPM_RH_OWNER or TPM_RH_PLATFORM+{PP}
	AuthHandle AuthHandle `tpm2:"handle,auth"`
	// the authorization value
	Auth TPM2BAuth
	// the public parameters of the NV area
	PublicInfo TPM2BNVPublic
}

// Command implements the Command interface.
func (*NVDefineSpace) Command() CC { return CCNVDefineSpace }

// Execute executes the command and returns the response.
func (cmd *NVDefineSpace) Execute(t *TPM, s ...Session) error {
	var rsp NVDefineSpaceResponse
	return t.execute(cmd, &rsp, s...)
}

// NVDefineSpaceResponse is the response from TPM2_NV_DefineSpace.
type NVDefineSpaceResponse struct{}

// Response implements the Response interface.
func (*NVDefineSpaceResponse) Response() CC { return CCNVDefineSpace }

// NVUndefineSpace is the input to TPM2_NV_UndefineSpace.
// See definition in Part 3, Commands, section 31.4.
type NVUndefineSpace struct {
	// TPM_RH_OWNER or TPM_RH_PLATFORM+{PP}
	AuthHandle AuthHandle `tpm2:"handle,auth"`
	// the NV Index to remove from NV space
	NVIndex handle `tpm2:"handle"`
}

// Command implements the Command interface.
func (*NVUndefineSpace) Command() CC { return CCNVUndefineSpace }

// Execute executes the command and returns the response.
func (cmd *NVUndefineSpace) Execute(t *TPM, s ...Session) error {
	var rsp NVUndefineSpaceResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return err
	}
	t.forgetHandle(Handle(cmd.NVIndex.HandleValue()))
	return nil
}

// NVUndefineSpaceResponse is the response from TPM2_NV_UndefineSpace.
type NVUndefineSpaceResponse struct{}

// Response implements the Response interface.
func (*NVUndefineSpaceResponse) Response() CC { return CCNVUndefineSpace }

// NVReadPublic is the input to TPM2_NV_ReadPublic.
// See definition in Part 3, Commands, section 31.6.
type NVReadPublic struct {
	// the NV index
	NVIndex handle `tpm2:"handle"`
}

// Command implements the Command interface.
func (*NVReadPublic) Command() CC { return CCNVReadPublic }

// Execute executes the command and returns the response.
func (cmd *NVReadPublic) Execute(t *TPM, s ...Session) (*NVReadPublicResponse, error) {
	var rsp NVReadPublicResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return nil, err
	}
	t.trackHandle(Handle(cmd.NVIndex.HandleValue()), rsp.NVName)
	return &rsp, nil
}

// NVReadPublicResponse is the response from TPM2_NV_ReadPublic.
type NVReadPublicResponse struct {
	NVPublic TPM2BNVPublic
	NVName   TPM2BName
}

// Response implements the Response interface.
func (*NVReadPublicResponse) Response() CC { return CCNVReadPublic }

// NVWrite is the input to TPM2_NV_Write.
// See definition in Part 3, Commands, section 31.7.
type NVWrite struct {
	// handle indicating the source of the authorization value
	AuthHandle AuthHandle `tpm2:"handle,auth"`
	// the NV index of the area to write
	NVIndex handle `tpm2:"handle"`
	// the data to write
	Data TPM2BMaxNVBuffer
	// the offset into the NV Area
	Offset uint16
}

// Command implements the Command interface.
func (*NVWrite) Command() CC { return CCNVWrite }

// Execute executes the command and returns the response.
func (cmd *NVWrite) Execute(t *TPM, s ...Session) error {
	var rsp NVWriteResponse
	return t.execute(cmd, &rsp, s...)
}

// NVWriteResponse is the response from TPM2_NV_Write.
type NVWriteResponse struct{}

// Response implements the Response interface.
func (*NVWriteResponse) Response() CC { return CCNVWrite }

// NVIncrement is the input to TPM2_NV_Increment.
// See definition in Part 3, Commands, section 31.8.
type NVIncrement struct {
	// handle indicating the source of the authorization value
	AuthHandle AuthHandle `tpm2:"handle,auth"`
	// the NV index of the counter to increment
	NVIndex handle `tpm2:"handle"`
}

// Command implements the Command interface.
func (*NVIncrement) Command() CC { return CCNVIncrement }

// Execute executes the command and returns the response.
func (cmd *NVIncrement) Execute(t *TPM, s ...Session) error {
	var rsp NVIncrementResponse
	return t.execute(cmd, &rsp, s...)
}

// NVIncrementResponse is the response from TPM2_NV_Increment.
type NVIncrementResponse struct{}

// Response implements the Response interface.
func (*NVIncrementResponse) Response() CC { return CCNVIncrement }

// NVWriteLock is the input to TPM2_NV_WriteLock.
// See definition in Part 3, Commands, section 31.11.
type NVWriteLock struct {
	// handle indicating the source of the authorization value
	AuthHandle AuthHandle `tpm2:"handle,auth"`
	// the NV index of the area to lock
	NVIndex handle `tpm2:"handle"`
}

// Command implements the Command interface.
func (*NVWriteLock) Command() CC { return CCNVWriteLock }

// Execute executes the command and returns the response.
func (cmd *NVWriteLock) Execute(t *TPM, s ...Session) error {
	var rsp NVWriteLockResponse
	return t.execute(cmd, &rsp, s...)
}

// NVWriteLockResponse is the response from TPM2_NV_WriteLock.
type NVWriteLockResponse struct{}

// Response implements the Response interface.
func (*NVWriteLockResponse) Response() CC { return CCNVWriteLock }

// NVRead is the input to TPM2_NV_Read.
// See definition in Part 3, Commands, section 31.13.
type NVRead struct {
	// handle indicating the source of the authorization value
	AuthHandle AuthHandle `tpm2:"handle,auth"`
	// the NV index to be read
	NVIndex handle `tpm2:"handle"`
	// number of octets to read
	Size uint16
	// octet offset into the NV area
	Offset uint16
}

// Command implements the Command interface.
func (*NVRead) Command() CC { return CCNVRead }

// Execute executes the command and returns the response.
func (cmd *NVRead) Execute(t *TPM, s ...Session) (*NVReadResponse, error) {
	var rsp NVReadResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return nil, err
	}
	return &rsp, nil
}

// NVReadResponse is the response from TPM2_NV_Read.
type NVReadResponse struct {
	// the data read
	Data TPM2BMaxNVBuffer
}

// Response implements the Response interface.
func (*NVReadResponse) Response() CC { return CCNVRead }

// NVCertify is the input to TPM2_NV_Certify.
// See definition in Part 3, Commands, section 31.16.
type NVCertify struct {
	// handle of the key used to sign the attestation structure
	SignHandle AuthHandle `tpm2:"handle,auth"`
	// handle indicating the source of the authorization value
	AuthHandle AuthHandle `tpm2:"handle,auth"`
	// the NV index of the area to certify
	NVIndex handle `tpm2:"handle"`
	// user-provided qualifying data
	QualifyingData TPM2BData
	// signing scheme to use if the scheme for signHandle is TPM_ALG_NULL
	InScheme TPMTSigScheme `tpm2:"nullable"`
	// number of octets to certify
	Size uint16
	// octet offset into the NV area
	Offset uint16
}

// Command implements the Command interface.
func (*NVCertify) Command() CC { return CCNVCertify }

// Execute executes the command and returns the response.
func (cmd *NVCertify) Execute(t *TPM, s ...Session) (*NVCertifyResponse, error) {
	var rsp NVCertifyResponse
	if err := t.execute(cmd, &rsp, s...); err != nil {
		return nil, err
	}
	return &rsp, nil
}

// NVCertifyResponse is the response from TPM2_NV_Certify.
type NVCertifyResponse struct {
	// the structure that was signed
	CertifyInfo TPM2BAttest
	// the asymmetric signature over certifyInfo using the key referenced
	// by signHandle
	Signature TPMTSignature
}

// Response implements the Response interface.
func (*NVCertifyResponse) Response() CC { return CCNVCertify }
