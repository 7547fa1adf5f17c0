package tpm2

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/elliptic"
	"crypto/hmac"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
)

// Session represents a session in the TPM.
type Session interface {
	// Init initializes the session, if needed. Has no effect if not
	// needed or already done. Some types of sessions may need to be
	// initialized just-in-time, e.g., to support calling patterns that
	// help the user not need to manage the session's lifetime.
	Init(tpm *TPM) error
	// CleanupFailure cleans up the session, if needed, after the command
	// it authorized failed. Some types of session need to be cleaned up
	// if the command failed, e.g., dangling TPM sessions.
	CleanupFailure(tpm *TPM) error
	// NonceTPM returns the last nonceTPM value from the session.
	// May be nil, if the session hasn't been initialized yet.
	NonceTPM() TPM2BNonce
	// NewNonceCaller updates the nonceCaller for this session.
	NewNonceCaller() error
	// Authorize computes the authorization structure for the session.
	// Unlike the TPM spec, authIndex is zero-based.
	Authorize(cc CC, parms, addNonces []byte, names []TPM2BName, authIndex int) (*TPMSAuthCommand, error)
	// Validate validates the response session structure for the session.
	// Updates NonceTPM from the response. Unlike the TPM spec, authIndex
	// is zero-based.
	Validate(rc RC, cc CC, parms []byte, names []TPM2BName, authIndex int, auth *TPMSAuthResponse) error
	// IsEncryption returns true if this session is used for parameter
	// encryption.
	IsEncryption() bool
	// IsDecryption returns true if this session is used for parameter
	// decryption.
	IsDecryption() bool
	// Encrypt mutates the parameter if this session is used for
	// parameter decryption. Otherwise, it is a no-op.
	Encrypt(parameter []byte) error
	// Decrypt mutates the parameter if this session is used for
	// parameter encryption. Otherwise, it is a no-op.
	Decrypt(parameter []byte) error
	// Handle returns the handle value of the session.
	// If the session is a password session, returns TPM_RS_PW.
	Handle() Handle
}

// cpHash calculates the TPM command parameter hash.
// cpHash = hash(CC || names || parms)
func cpHash(alg TPMIAlgHash, cc CC, names []TPM2BName, parms []byte) ([]byte, error) {
	ha, err := alg.Hash()
	if err != nil {
		return nil, err
	}
	h := ha.New()
	binary := make([]byte, 4)
	bigEndianPutUint32(binary, uint32(cc))
	h.Write(binary)
	for _, name := range names {
		h.Write(name.Buffer)
	}
	h.Write(parms)
	return h.Sum(nil), nil
}

// rpHash calculates the TPM response parameter hash.
// rpHash = hash(RC || CC || parms)
func rpHash(alg TPMIAlgHash, rc RC, cc CC, parms []byte) ([]byte, error) {
	ha, err := alg.Hash()
	if err != nil {
		return nil, err
	}
	h := ha.New()
	binary := make([]byte, 4)
	bigEndianPutUint32(binary, uint32(rc))
	h.Write(binary)
	bigEndianPutUint32(binary, uint32(cc))
	h.Write(binary)
	h.Write(parms)
	return h.Sum(nil), nil
}

func bigEndianPutUint32(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

// pwSession represents a password-pseudo-session.
type pwSession struct {
	auth []byte
}

// PasswordAuth assembles a password pseudo-session with the given auth value.
func PasswordAuth(auth []byte) Session {
	return &pwSession{
		auth: auth,
	}
}

// Init is not required and has no effect for a password session.
func (s *pwSession) Init(tpm *TPM) error { return nil }

// Cleanup is not required and has no effect for a password session.
func (s *pwSession) CleanupFailure(tpm *TPM) error { return nil }

// NonceTPM normally returns the last nonceTPM value from the session.
// Since a password session is a pseudo-session with the auth value stuffed
// in where the HMAC should go, this is not used.
func (s *pwSession) NonceTPM() TPM2BNonce { return TPM2BNonce{} }

// NewNonceCaller updates the nonceCaller for this session.
// Password sessions don't have nonces.
func (s *pwSession) NewNonceCaller() error { return nil }

// Authorize computes the authorization structure for the session.
func (s *pwSession) Authorize(cc CC, parms, addNonces []byte, names []TPM2BName, _ int) (*TPMSAuthCommand, error) {
	return &TPMSAuthCommand{
		Handle:     RSPW,
		Nonce:      TPM2BNonce{},
		Attributes: TPMASession{ContinueSession: true},
		Authorization: TPM2BData{
			Buffer: s.auth,
		},
	}, nil
}

// Validate validates the response session structure for the session.
func (s *pwSession) Validate(rc RC, cc CC, parms []byte, _ []TPM2BName, _ int, auth *TPMSAuthResponse) error {
	if len(auth.Nonce.Buffer) != 0 {
		return AuthVerificationError{msg: "expected empty nonce in password session response"}
	}
	expectedAttrs := TPMASession{
		ContinueSession: true,
	}
	if auth.Attributes != expectedAttrs {
		return AuthVerificationError{msg: fmt.Sprintf("expected only ContinueSession in password session response, got %v", auth.Attributes)}
	}
	if len(auth.Authorization.Buffer) != 0 {
		return AuthVerificationError{msg: "expected empty HMAC in password session response"}
	}
	return nil
}

// IsEncryption returns true if this session is used for parameter encryption.
func (s *pwSession) IsEncryption() bool { return false }

// IsDecryption returns true if this session is used for parameter decryption.
func (s *pwSession) IsDecryption() bool { return false }

// If this session is used for parameter decryption, encrypts the parameter.
// Otherwise, does not modify the parameter.
func (s *pwSession) Encrypt(parameter []byte) error { return nil }

// If this session is used for parameter encryption, encrypts the parameter.
// Otherwise, does not modify the parameter.
func (s *pwSession) Decrypt(parameter []byte) error { return nil }

// Handle returns the handle value associated with this session.
// In the case of a password session, this is always TPM_RS_PW.
func (s *pwSession) Handle() Handle { return RSPW }

// sessionOptions represents extra options used when setting up an HMAC or
// policy session.
type sessionOptions struct {
	auth        []byte
	attrs       TPMASession
	symmetric   TPMTSymDef
	bindHandle  TPMIDHEntity
	bindName    TPM2BName
	bindAuth    []byte
	saltHandle  TPMIDHObject
	saltPub     TPMTPublic
	trialPolicy bool
}

// defaultOptions represents the default options used when none are provided.
func defaultOptions() sessionOptions {
	return sessionOptions{
		symmetric: TPMTSymDef{
			Algorithm: AlgNull,
		},
		bindHandle: RHNull,
		saltHandle: RHNull,
	}
}

// AuthOption is an option for setting up an auth session variadically.
type AuthOption func(*sessionOptions)

// Auth uses the session to prove knowledge of the object's auth value.
func Auth(auth []byte) AuthOption {
	return func(o *sessionOptions) {
		o.auth = auth
	}
}

// Bound specifies that this session's session key should depend on the auth
// value of the given object.
func Bound(handle Handle, name TPM2BName, auth []byte) AuthOption {
	return func(o *sessionOptions) {
		o.bindHandle = handle
		o.bindName = name
		o.bindAuth = auth
	}
}

// Salted specifies that this session's session key should depend on an
// encrypted seed value using the given public key.
func Salted(handle Handle, pub TPMTPublic) AuthOption {
	return func(o *sessionOptions) {
		o.saltHandle = handle
		o.saltPub = pub
	}
}

// parameterEncryptionDirection specifies whether the session-encrypted
// parameters are encrypted on the way into the TPM, out of the TPM, or both.
type parameterEncryptionDirection int

const (
	// EncryptIn specifies a decrypt session.
	EncryptIn parameterEncryptionDirection = 1 + iota
	// EncryptOut specifies an encrypt session.
	EncryptOut
	// EncryptInOut specifies a decrypt+encrypt session.
	EncryptInOut
)

// AESEncryption uses the session to encrypt the first parameter sent to/from
// the TPM.
// Note that only commands whose first command/response parameter is a 2B can
// support session encryption.
func AESEncryption(keySize KeyBits, dir parameterEncryptionDirection) AuthOption {
	return func(o *sessionOptions) {
		o.attrs.Decrypt = (dir == EncryptIn || dir == EncryptInOut)
		o.attrs.Encrypt = (dir == EncryptOut || dir == EncryptInOut)
		mode := TPMIAlgSymMode(AlgCFB)
		o.symmetric = TPMTSymDef{
			Algorithm: AlgAES,
			KeyBits: TPMUSymKeyBits{
				AES: &keySize,
			},
			Mode: TPMUSymMode{
				AES: &mode,
			},
		}
	}
}

// XORObfuscation uses the session to mask the first parameter sent to/from
// the TPM with an XOR keystream derived from the session key and the given
// hash algorithm.
func XORObfuscation(hash TPMIAlgHash, dir parameterEncryptionDirection) AuthOption {
	return func(o *sessionOptions) {
		o.attrs.Decrypt = (dir == EncryptIn || dir == EncryptInOut)
		o.attrs.Encrypt = (dir == EncryptOut || dir == EncryptInOut)
		o.symmetric = TPMTSymDef{
			Algorithm: AlgXOR,
			KeyBits: TPMUSymKeyBits{
				XOR: &hash,
			},
		}
	}
}

// Audit uses the session to compute extra HMACs.
// An Audit session can be used with GetSessionAuditDigest to obtain attested
// audit information.
func Audit() AuthOption {
	return func(o *sessionOptions) {
		o.attrs.Audit = true
	}
}

// AuditExclusive is like an audit session, but even more powerful.
// This allows the audit session to additionally indicate whether any other
// auditable commands were executed other than the ones described by the
// audit session.
func AuditExclusive() AuthOption {
	return func(o *sessionOptions) {
		o.attrs.Audit = true
		o.attrs.AuditExclusive = true
	}
}

// Trial indicates that the policy session should be in trial-mode.
// This allows using the TPM to calculate policy hashes.
// This option only has an effect on policy sessions.
func Trial() AuthOption {
	return func(o *sessionOptions) {
		o.trialPolicy = true
	}
}

// hmacSession generally implements the HMAC session.
type hmacSession struct {
	sessionOptions
	hash       TPMIAlgHash
	nonceSize  int
	handle     Handle
	sessionKey []byte
	// last nonceCaller
	nonceCaller TPM2BNonce
	// last nonceTPM
	nonceTPM TPM2BNonce
}

// HMAC sets up a just-in-time HMAC session that is used only once.
// A real session is created, but just in time and it is flushed when used.
func HMAC(hash TPMIAlgHash, nonceSize int, opts ...AuthOption) Session {
	// Set up a one-off session that knows the auth value.
	sess := hmacSession{
		sessionOptions: defaultOptions(),
		hash:           hash,
		nonceSize:      nonceSize,
		handle:         RHNull,
	}
	for _, opt := range opts {
		opt(&sess.sessionOptions)
	}
	return &sess
}

// HMACSession sets up a reusable HMAC session that needs to be closed.
func HMACSession(t *TPM, hash TPMIAlgHash, nonceSize int, opts ...AuthOption) (s Session, close func() error, err error) {
	// Set up a not-one-off session that knows the auth value.
	sess := hmacSession{
		sessionOptions: defaultOptions(),
		hash:           hash,
		nonceSize:      nonceSize,
		handle:         RHNull,
	}
	for _, opt := range opts {
		opt(&sess.sessionOptions)
	}
	// This session is reusable and is closed with the function we'll
	// return.
	sess.sessionOptions.attrs.ContinueSession = true

	// Initialize the session.
	if err := sess.Init(t); err != nil {
		return nil, nil, err
	}

	closer := func() error {
		fc := FlushContext{FlushHandle: sess.handle}
		err := fc.Execute(t)
		sess.handle = RHNull
		return err
	}

	return &sess, closer, nil
}

// getEncryptedSaltRSA creates a salt value for salted sessions.
// Returns the encrypted salt and plaintext salt, or an error value.
func getEncryptedSaltRSA(nameAlg TPMIAlgHash, parms *TPMSRSAParms, pub *TPM2BPublicKeyRSA) (*TPM2BEncryptedSecret, []byte, error) {
	rsaPub, err := rsaPubKey(parms, pub)
	if err != nil {
		return nil, nil, fmt.Errorf("could not encrypt salt to RSA key: %w", err)
	}
	// Odd special case: the size of the salt depends on the RSA scheme's
	// hash alg.
	var hAlg TPMIAlgHash
	switch {
	case parms.Scheme.Scheme == AlgOAEP:
		hAlg = parms.Scheme.Details.OAEP.HashAlg
	case parms.Scheme.Scheme == AlgNull:
		hAlg = nameAlg
	default:
		return nil, nil, fmt.Errorf("unsupported RSA salt key scheme: %v", parms.Scheme.Scheme)
	}
	ha, err := hAlg.Hash()
	if err != nil {
		return nil, nil, err
	}
	salt := make([]byte, ha.Size())
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("generating random salt: %w", err)
	}
	// Part 1, section 4.6 specifies the trailing NULL byte for the label.
	encSalt, err := rsa.EncryptOAEP(ha.New(), rand.Reader, rsaPub, salt, []byte("SECRET\x00"))
	if err != nil {
		return nil, nil, fmt.Errorf("encrypting salt: %w", err)
	}
	return &TPM2BEncryptedSecret{
		Buffer: encSalt,
	}, salt, nil
}

// getEncryptedSaltECC creates a salt value for salted sessions.
// Returns the encrypted salt and plaintext salt, or an error value.
func getEncryptedSaltECC(nameAlg TPMIAlgHash, parms *TPMSECCParms, pub *TPMSECCPoint) (*TPM2BEncryptedSecret, []byte, error) {
	eccPub, err := eccPubKey(parms, pub)
	if err != nil {
		return nil, nil, fmt.Errorf("could not encrypt salt to ECC key: %w", err)
	}
	curve := eccPub.Curve
	ephPriv, ephPubX, ephPubY, err := elliptic.GenerateKey(curve, rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("could not encrypt salt to ECC key: %w", err)
	}
	zx, _ := curve.Params().ScalarMult(eccPub.X, eccPub.Y, ephPriv)
	// ScalarMult returns a big.Int, whose Bytes() removes any leading
	// zeroes. Pad zx to the size of the curve's coordinates.
	z := make([]byte, (curve.Params().BitSize+7)/8)
	zx.FillBytes(z)
	ha, err := nameAlg.Hash()
	if err != nil {
		return nil, nil, err
	}
	xBytes := make([]byte, (curve.Params().BitSize+7)/8)
	ephPubX.FillBytes(xBytes)
	salt, err := KDFe(AlgID(nameAlg), z, "SECRET", xBytes, pub.X.Buffer, ha.Size()*8)
	if err != nil {
		return nil, nil, fmt.Errorf("deriving salt: %w", err)
	}

	var encSalt bytes.Buffer
	ptPubX := make([]byte, (curve.Params().BitSize+7)/8)
	ephPubX.FillBytes(ptPubX)
	ptPubY := make([]byte, (curve.Params().BitSize+7)/8)
	ephPubY.FillBytes(ptPubY)
	if err := Marshal(&encSalt, &TPMSECCPoint{
		X: TPM2BECCParameter{Buffer: ptPubX},
		Y: TPM2BECCParameter{Buffer: ptPubY},
	}); err != nil {
		return nil, nil, err
	}
	return &TPM2BEncryptedSecret{
		Buffer: encSalt.Bytes(),
	}, salt, nil
}

// getEncryptedSalt creates a salt value for salted sessions.
// Returns the encrypted salt and plaintext salt, or an error value.
func getEncryptedSalt(pub TPMTPublic) (*TPM2BEncryptedSecret, []byte, error) {
	switch pub.Type {
	case AlgRSA:
		return getEncryptedSaltRSA(pub.NameAlg, pub.Parameters.RSADetail, pub.Unique.RSA)
	case AlgECC:
		return getEncryptedSaltECC(pub.NameAlg, pub.Parameters.ECCDetail, pub.Unique.ECC)
	default:
		return nil, nil, fmt.Errorf("salt encryption alg '%v' not supported", pub.Type)
	}
}

// Init initializes the session, just in time, if needed.
func (s *hmacSession) Init(t *TPM) error {
	if s.handle != RHNull {
		// Session is already initialized.
		return nil
	}

	// Get a high-quality nonceCaller for our use.
	// Store it with the session object for later reference.
	s.nonceCaller = TPM2BNonce{
		Buffer: make([]byte, s.nonceSize),
	}
	if _, err := rand.Read(s.nonceCaller.Buffer); err != nil {
		return err
	}

	// Start up the actual auth session.
	sasCmd := StartAuthSession{
		TPMKey:      s.saltHandle,
		Bind:        s.bindHandle,
		NonceCaller: s.nonceCaller,
		SessionType: SEHMAC,
		Symmetric:   s.symmetric,
		AuthHash:    s.hash,
	}
	var salt []byte
	if s.saltHandle != RHNull {
		var err error
		var encSalt *TPM2BEncryptedSecret
		encSalt, salt, err = getEncryptedSalt(s.saltPub)
		if err != nil {
			return err
		}
		sasCmd.EncryptedSalt = *encSalt
	}
	sasRsp, err := sasCmd.Execute(t)
	if err != nil {
		return err
	}
	s.handle = Handle(sasRsp.SessionHandle)
	s.nonceTPM = sasRsp.NonceTPM

	// Part 1, 19.6
	if s.bindHandle != RHNull || len(salt) != 0 {
		var authSalt []byte
		authSalt = append(authSalt, s.bindAuth...)
		authSalt = append(authSalt, salt...)
		ha, err := s.hash.Hash()
		if err != nil {
			return err
		}
		s.sessionKey, err = KDFa(AlgID(s.hash), authSalt, "ATH", s.nonceTPM.Buffer, s.nonceCaller.Buffer, ha.Size()*8)
		if err != nil {
			return err
		}
	}
	return nil
}

// CleanupFailure cleans up the session, if needed.
func (s *hmacSession) CleanupFailure(t *TPM) error {
	// The user is done with this session, so the TPM can be, too.
	if s.handle == RHNull {
		return nil
	}
	fc := FlushContext{FlushHandle: s.handle}
	if err := fc.Execute(t); err != nil {
		return err
	}
	s.handle = RHNull
	return nil
}

// NonceTPM returns the last nonceTPM value from the session.
// May be nil, if the session hasn't been initialized yet.
func (s *hmacSession) NonceTPM() TPM2BNonce { return s.nonceTPM }

// NewNonceCaller updates the nonceCaller for this session.
func (s *hmacSession) NewNonceCaller() error {
	_, err := rand.Read(s.nonceCaller.Buffer)
	return err
}

// attrsToBytes is a helper function for custom auth HMAC assembly.
func attrsToBytes(attrs TPMASession) []byte {
	var result byte
	if attrs.ContinueSession {
		result |= 0x01
	}
	if attrs.AuditExclusive {
		result |= 0x02
	}
	if attrs.AuditReset {
		result |= 0x04
	}
	if attrs.Decrypt {
		result |= 0x20
	}
	if attrs.Encrypt {
		result |= 0x40
	}
	if attrs.Audit {
		result |= 0x80
	}
	return []byte{result}
}

// computeHMAC computes an authorization HMAC according to various equations
// in Part 1.
// This applies to both commands and responses.
// The value of key depends on whether the session is bound and/or salted.
// pHash cpHash for a command, or rpHash for a response.
// nonceNewer in a command is the new nonceCaller sent in the command session
// packet.
// nonceNewer in a response is the new nonceTPM sent in the response session
// packet.
// nonceOlder in a command is the last nonceTPM sent by the TPM for this
// session. This may be when the session was created, or the last time it was
// used.
// nonceOlder in a response is the corresponding nonceCaller sent in the
// command.
func computeHMAC(alg TPMIAlgHash, key, pHash, nonceNewer, nonceOlder, addNonces []byte, attrs TPMASession) ([]byte, error) {
	ha, err := alg.Hash()
	if err != nil {
		return nil, err
	}
	mac := hmac.New(ha.New, key)
	mac.Write(pHash)
	mac.Write(nonceNewer)
	mac.Write(nonceOlder)
	mac.Write(addNonces)
	mac.Write(attrsToBytes(attrs))
	return mac.Sum(nil), nil
}

// Part 1, 19.6.5, Note 2
// The HMAC key for the auth is the session key concatenated with the
// object's auth value, unless the session is bound to that same object.
func (s *hmacSession) hmacKey(names []TPM2BName) []byte {
	hmacKey := []byte{}
	hmacKey = append(hmacKey, s.sessionKey...)
	// Add the auth value except when authorizing the bind entity itself.
	bound := false
	if len(s.bindName.Buffer) != 0 {
		for _, name := range names {
			if bytes.Equal(name.Buffer, s.bindName.Buffer) {
				bound = true
			}
		}
	}
	if !bound {
		hmacKey = append(hmacKey, s.auth...)
	}
	return hmacKey
}

// Authorize computes the authorization structure for the session.
// Unlike the TPM spec, authIndex is zero-based.
func (s *hmacSession) Authorize(cc CC, parms, addNonces []byte, names []TPM2BName, authIndex int) (*TPMSAuthCommand, error) {
	if s.handle == RHNull {
		// Session is not initialized.
		return nil, SessionNotActiveError{Handle: s.handle}
	}

	// Part 1, 19.6
	ph, err := cpHash(s.hash, cc, names, parms)
	if err != nil {
		return nil, err
	}
	// Compute the authorization HMAC.
	hm, err := computeHMAC(s.hash, s.hmacKey(names), ph, s.nonceCaller.Buffer, s.nonceTPM.Buffer, addNonces, s.attrs)
	if err != nil {
		return nil, err
	}
	result := TPMSAuthCommand{
		Handle:     s.handle,
		Nonce:      s.nonceCaller,
		Attributes: s.attrs,
		Authorization: TPM2BData{
			Buffer: hm,
		},
	}
	return &result, nil
}

// Validate validates the response session structure for the session.
// It updates nonceTPM from the TPM's response.
func (s *hmacSession) Validate(rc RC, cc CC, parms []byte, names []TPM2BName, authIndex int, auth *TPMSAuthResponse) error {
	if s.handle == RHNull {
		return SessionNotActiveError{Handle: s.handle}
	}
	// A TPM must generate a fresh nonce for every response. Seeing the
	// previous nonceTPM again means the response was replayed.
	if len(auth.Nonce.Buffer) != 0 && bytes.Equal(auth.Nonce.Buffer, s.nonceTPM.Buffer) {
		return ReplayError{msg: "TPM response reused the previous nonceTPM"}
	}
	// Track the new nonceTPM for the session.
	s.nonceTPM = auth.Nonce
	// Track the session being automatically flushed.
	if !auth.Attributes.ContinueSession {
		s.handle = RHNull
	}

	// Part 1, 19.6
	ph, err := rpHash(s.hash, rc, cc, parms)
	if err != nil {
		return err
	}
	// Compute the authorization HMAC.
	mac, err := computeHMAC(s.hash, s.hmacKey(names), ph, s.nonceTPM.Buffer, s.nonceCaller.Buffer, nil, auth.Attributes)
	if err != nil {
		return err
	}
	// Compare the HMAC (constant time).
	if !hmac.Equal(mac, auth.Authorization.Buffer) {
		return AuthVerificationError{msg: "incorrect authorization HMAC in TPM response"}
	}
	return nil
}

// IsEncryption returns true if this session is used for parameter encryption.
func (s *hmacSession) IsEncryption() bool {
	return s.attrs.Encrypt
}

// IsDecryption returns true if this session is used for parameter decryption.
func (s *hmacSession) IsDecryption() bool {
	return s.attrs.Decrypt
}

// sessionEncryptionKey derives the parameter encryption keystream material.
// nonceNewer/nonceOlder ordering follows the direction of the data: for data
// flowing into the TPM the caller's nonce is newer, for data flowing out the
// TPM's nonce is newer.
func (s *hmacSession) keystreamAES(decrypt bool, nonceNewer, nonceOlder []byte) (cipher.Stream, error) {
	if s.symmetric.KeyBits.AES == nil {
		return nil, fmt.Errorf("session is not configured for AES parameter encryption")
	}
	bits := int(*s.symmetric.KeyBits.AES)
	keyIVBytes, err := KDFa(AlgID(s.hash), append(s.sessionKey, s.auth...), "CFB", nonceNewer, nonceOlder, bits+(aes.BlockSize*8))
	if err != nil {
		return nil, err
	}
	keyBytes := keyIVBytes[:bits/8]
	iv := keyIVBytes[bits/8:]
	key, err := aes.NewCipher(keyBytes)
	if err != nil {
		return nil, err
	}
	if decrypt {
		return cipher.NewCFBDecrypter(key, iv), nil
	}
	return cipher.NewCFBEncrypter(key, iv), nil
}

// xorMask applies the XOR obfuscation keystream to the parameter in place.
func (s *hmacSession) xorMask(parameter, nonceNewer, nonceOlder []byte) error {
	if s.symmetric.KeyBits.XOR == nil {
		return fmt.Errorf("session is not configured for XOR parameter obfuscation")
	}
	mask, err := KDFa(AlgID(*s.symmetric.KeyBits.XOR), append(s.sessionKey, s.auth...), "XOR", nonceNewer, nonceOlder, len(parameter)*8)
	if err != nil {
		return err
	}
	for i := range parameter {
		parameter[i] ^= mask[i]
	}
	return nil
}

// Encrypt encrypts the parameter in place, if this session is used for
// parameter decryption. Otherwise, it is a no-op.
func (s *hmacSession) Encrypt(parameter []byte) error {
	if !s.IsDecryption() {
		return nil
	}
	switch s.symmetric.Algorithm {
	case AlgAES:
		// Only AES-CFB is supported.
		stream, err := s.keystreamAES(false, s.nonceCaller.Buffer, s.nonceTPM.Buffer)
		if err != nil {
			return err
		}
		stream.XORKeyStream(parameter, parameter)
		return nil
	case AlgXOR:
		return s.xorMask(parameter, s.nonceCaller.Buffer, s.nonceTPM.Buffer)
	default:
		return fmt.Errorf("unsupported parameter encryption algorithm '%v'", s.symmetric.Algorithm)
	}
}

// Decrypt decrypts the parameter in place, if this session is used for
// parameter encryption. Otherwise, it is a no-op.
func (s *hmacSession) Decrypt(parameter []byte) error {
	if !s.IsEncryption() {
		return nil
	}
	switch s.symmetric.Algorithm {
	case AlgAES:
		// The session's nonceTPM was rolled in Validate before response
		// parameter decryption.
		stream, err := s.keystreamAES(true, s.nonceTPM.Buffer, s.nonceCaller.Buffer)
		if err != nil {
			return err
		}
		stream.XORKeyStream(parameter, parameter)
		return nil
	case AlgXOR:
		return s.xorMask(parameter, s.nonceTPM.Buffer, s.nonceCaller.Buffer)
	default:
		return fmt.Errorf("unsupported parameter encryption algorithm '%v'", s.symmetric.Algorithm)
	}
}

// Handle returns the handle value of the session.
func (s *hmacSession) Handle() Handle { return s.handle }

// policySession generally implements the policy session.
type policySession struct {
	sessionOptions
	hash       TPMIAlgHash
	nonceSize  int
	handle     Handle
	sessionKey []byte
	// last nonceCaller
	nonceCaller TPM2BNonce
	// last nonceTPM
	nonceTPM TPM2BNonce
	callback *PolicyCallback
}

// Policy sets up a just-in-time policy session that created each time it's
// needed.
// Each time the policy is used, a new session is created and the policy is
// executed on the session.
func Policy(hash TPMIAlgHash, nonceSize int, callback *PolicyCallback, opts ...AuthOption) Session {
	// Set up a one-off session that knows the auth value.
	sess := policySession{
		sessionOptions: defaultOptions(),
		hash:           hash,
		nonceSize:      nonceSize,
		handle:         RHNull,
	}
	for _, opt := range opts {
		opt(&sess.sessionOptions)
	}
	sess.callback = callback
	return &sess
}

// PolicySession opens a policy session that needs to be closed.
// The caller is responsible to call whichever policy commands they want in
// the session.
// Note that the TPM resets a policy session after it is successfully used.
func PolicySession(t *TPM, hash TPMIAlgHash, nonceSize int, opts ...AuthOption) (s Session, close func() error, err error) {
	// Set up a not-one-off session that knows the auth value.
	sess := policySession{
		sessionOptions: defaultOptions(),
		hash:           hash,
		nonceSize:      nonceSize,
		handle:         RHNull,
	}
	for _, opt := range opts {
		opt(&sess.sessionOptions)
	}

	// This session is reusable and is closed with the function we'll
	// return.
	sess.sessionOptions.attrs.ContinueSession = true

	// Initialize the session.
	if err := sess.Init(t); err != nil {
		return nil, nil, err
	}

	closer := func() error {
		fc := FlushContext{FlushHandle: sess.handle}
		err := fc.Execute(t)
		sess.handle = RHNull
		return err
	}

	return &sess, closer, nil
}

// PolicyCallback represents an object's policy that must be satisfied each
// time the policy session is used.
type PolicyCallback = func(tpm *TPM, handle TPMISHPolicy, nonceTPM TPM2BNonce) error

// Init initializes the session, just in time, if needed.
func (s *policySession) Init(t *TPM) error {
	if s.handle != RHNull {
		// Session is already initialized.
		return nil
	}

	// Get a high-quality nonceCaller for our use.
	// Store it with the session object for later reference.
	s.nonceCaller = TPM2BNonce{
		Buffer: make([]byte, s.nonceSize),
	}
	if _, err := rand.Read(s.nonceCaller.Buffer); err != nil {
		return err
	}

	// Start up the actual auth session.
	sessType := SEPolicy
	if s.trialPolicy {
		sessType = SETrial
	}
	sasCmd := StartAuthSession{
		TPMKey:      s.saltHandle,
		Bind:        s.bindHandle,
		NonceCaller: s.nonceCaller,
		SessionType: sessType,
		Symmetric:   s.symmetric,
		AuthHash:    s.hash,
	}
	var salt []byte
	if s.saltHandle != RHNull {
		var err error
		var encSalt *TPM2BEncryptedSecret
		encSalt, salt, err = getEncryptedSalt(s.saltPub)
		if err != nil {
			return err
		}
		sasCmd.EncryptedSalt = *encSalt
	}
	sasRsp, err := sasCmd.Execute(t)
	if err != nil {
		return err
	}
	s.handle = Handle(sasRsp.SessionHandle)
	s.nonceTPM = sasRsp.NonceTPM

	// Part 1, 19.6
	if s.bindHandle != RHNull || len(salt) != 0 {
		var authSalt []byte
		authSalt = append(authSalt, s.bindAuth...)
		authSalt = append(authSalt, salt...)
		ha, err := s.hash.Hash()
		if err != nil {
			return err
		}
		s.sessionKey, err = KDFa(AlgID(s.hash), authSalt, "ATH", s.nonceTPM.Buffer, s.nonceCaller.Buffer, ha.Size()*8)
		if err != nil {
			return err
		}
	}

	// Call the callback to execute the policy, if needed.
	if s.callback != nil {
		if err := (*s.callback)(t, s.handle, s.nonceTPM); err != nil {
			return fmt.Errorf("executing policy: %w", err)
		}
	}

	return nil
}

// CleanupFailure cleans up the session, if needed.
func (s *policySession) CleanupFailure(t *TPM) error {
	if s.handle == RHNull {
		return nil
	}
	fc := FlushContext{FlushHandle: s.handle}
	if err := fc.Execute(t); err != nil {
		return err
	}
	s.handle = RHNull
	return nil
}

// NonceTPM returns the last nonceTPM value from the session.
// May be nil, if the session hasn't been initialized yet.
func (s *policySession) NonceTPM() TPM2BNonce { return s.nonceTPM }

// NewNonceCaller updates the nonceCaller for this session.
func (s *policySession) NewNonceCaller() error {
	_, err := rand.Read(s.nonceCaller.Buffer)
	return err
}

// Authorize computes the authorization structure for the session.
func (s *policySession) Authorize(cc CC, parms, addNonces []byte, names []TPM2BName, authIndex int) (*TPMSAuthCommand, error) {
	if s.handle == RHNull {
		// Session is not initialized.
		return nil, SessionNotActiveError{Handle: s.handle}
	}

	var hm []byte
	// Policy sessions that are bound or salted add an HMAC as if they
	// were HMAC sessions. Other policy sessions authorize purely by
	// their policy digest state.
	if len(s.sessionKey) != 0 || len(s.auth) != 0 {
		ph, err := cpHash(s.hash, cc, names, parms)
		if err != nil {
			return nil, err
		}
		key := append([]byte{}, s.sessionKey...)
		key = append(key, s.auth...)
		hm, err = computeHMAC(s.hash, key, ph, s.nonceCaller.Buffer, s.nonceTPM.Buffer, addNonces, s.attrs)
		if err != nil {
			return nil, err
		}
	}

	result := TPMSAuthCommand{
		Handle:     s.handle,
		Nonce:      s.nonceCaller,
		Attributes: s.attrs,
		Authorization: TPM2BData{
			Buffer: hm,
		},
	}
	return &result, nil
}

// Validate valides the response session structure for the session.
func (s *policySession) Validate(rc RC, cc CC, parms []byte, names []TPM2BName, authIndex int, auth *TPMSAuthResponse) error {
	if s.handle == RHNull {
		return SessionNotActiveError{Handle: s.handle}
	}
	if len(auth.Nonce.Buffer) != 0 && bytes.Equal(auth.Nonce.Buffer, s.nonceTPM.Buffer) {
		return ReplayError{msg: "TPM response reused the previous nonceTPM"}
	}
	// Track the new nonceTPM for the session.
	s.nonceTPM = auth.Nonce
	// Track the session being automatically flushed.
	if !auth.Attributes.ContinueSession {
		s.handle = RHNull
	}

	if len(s.sessionKey) != 0 || len(s.auth) != 0 {
		// Part 1, 19.6
		ph, err := rpHash(s.hash, rc, cc, parms)
		if err != nil {
			return err
		}
		key := append([]byte{}, s.sessionKey...)
		key = append(key, s.auth...)
		mac, err := computeHMAC(s.hash, key, ph, s.nonceTPM.Buffer, s.nonceCaller.Buffer, nil, auth.Attributes)
		if err != nil {
			return err
		}
		if !hmac.Equal(mac, auth.Authorization.Buffer) {
			return AuthVerificationError{msg: "incorrect authorization HMAC in TPM response"}
		}
	}
	return nil
}

// IsEncryption returns true if this session is used for parameter encryption.
func (s *policySession) IsEncryption() bool {
	return s.attrs.Encrypt
}

// IsDecryption returns true if this session is used for parameter decryption.
func (s *policySession) IsDecryption() bool {
	return s.attrs.Decrypt
}

// Encrypt encrypts the parameter in place, if this session is used for
// parameter decryption. Otherwise, it is a no-op.
func (s *policySession) Encrypt(parameter []byte) error {
	if !s.IsDecryption() {
		return nil
	}
	h := hmacSession{
		sessionOptions: s.sessionOptions,
		hash:           s.hash,
		sessionKey:     s.sessionKey,
		nonceCaller:    s.nonceCaller,
		nonceTPM:       s.nonceTPM,
	}
	return h.Encrypt(parameter)
}

// Decrypt decrypts the parameter in place, if this session is used for
// parameter encryption. Otherwise, it is a no-op.
func (s *policySession) Decrypt(parameter []byte) error {
	if !s.IsEncryption() {
		return nil
	}
	h := hmacSession{
		sessionOptions: s.sessionOptions,
		hash:           s.hash,
		sessionKey:     s.sessionKey,
		nonceCaller:    s.nonceCaller,
		nonceTPM:       s.nonceTPM,
	}
	return h.Decrypt(parameter)
}

// Handle returns the handle value of the session.
func (s *policySession) Handle() Handle { return s.handle }
