package tpm2

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"testing"
)

func TestAttrsToBytes(t *testing.T) {
	cases := []struct {
		name  string
		attrs TPMASession
		want  byte
	}{
		{"empty", TPMASession{}, 0x00},
		{"continue", TPMASession{ContinueSession: true}, 0x01},
		{"decrypt", TPMASession{Decrypt: true}, 0x20},
		{"encrypt", TPMASession{Encrypt: true}, 0x40},
		{"audit", TPMASession{Audit: true}, 0x80},
		{"all", TPMASession{
			ContinueSession: true,
			AuditExclusive:  true,
			AuditReset:      true,
			Decrypt:         true,
			Encrypt:         true,
			Audit:           true,
		}, 0xE7},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := attrsToBytes(c.attrs)
			if len(got) != 1 || got[0] != c.want {
				t.Errorf("want %02x got %x", c.want, got)
			}
		})
	}
}

// testSession returns an hmacSession with fixed nonces, as if it had already
// been started on a TPM.
func testSession(t *testing.T, opts ...AuthOption) *hmacSession {
	t.Helper()
	sess, ok := HMAC(AlgSHA256, 16, opts...).(*hmacSession)
	if !ok {
		t.Fatal("HMAC did not return an hmacSession")
	}
	sess.handle = Handle(0x02000001)
	sess.nonceCaller = TPM2BNonce{Buffer: bytes.Repeat([]byte{0x11}, 16)}
	sess.nonceTPM = TPM2BNonce{Buffer: bytes.Repeat([]byte{0x22}, 16)}
	return sess
}

func TestXORObfuscation(t *testing.T) {
	sess := testSession(t, Auth([]byte("auth")), XORObfuscation(AlgSHA256, EncryptInOut))

	plaintext := []byte("some sealed data")
	parameter := append([]byte(nil), plaintext...)
	if err := sess.Encrypt(parameter); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if bytes.Equal(parameter, plaintext) {
		t.Fatal("want the parameter to be masked")
	}

	// The mask is pure XOR, so applying the same keystream again recovers
	// the plaintext.
	if err := sess.xorMask(parameter, sess.nonceCaller.Buffer, sess.nonceTPM.Buffer); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if !bytes.Equal(parameter, plaintext) {
		t.Errorf("want %x got %x", plaintext, parameter)
	}
}

func TestAESEncryption(t *testing.T) {
	auth := []byte("auth")
	sess := testSession(t, Auth(auth), AESEncryption(128, EncryptInOut))

	plaintext := []byte("first parameter of the command")
	parameter := append([]byte(nil), plaintext...)
	if err := sess.Encrypt(parameter); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if bytes.Equal(parameter, plaintext) {
		t.Fatal("want the parameter to be encrypted")
	}

	// Recover the plaintext the way the TPM would: derive the same key
	// and IV and run CFB in the decrypt direction.
	keyIV, err := KDFa(AlgSHA256, auth, "CFB", sess.nonceCaller.Buffer, sess.nonceTPM.Buffer, 128+128)
	if err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	block, err := aes.NewCipher(keyIV[:16])
	if err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	cipher.NewCFBDecrypter(block, keyIV[16:]).XORKeyStream(parameter, parameter)
	if !bytes.Equal(parameter, plaintext) {
		t.Errorf("want %x got %x", plaintext, parameter)
	}
}

func TestAESDecryptInvertsEncrypt(t *testing.T) {
	auth := []byte("auth")
	enc := testSession(t, Auth(auth), AESEncryption(128, EncryptInOut))

	plaintext := []byte("first parameter of the response")
	parameter := append([]byte(nil), plaintext...)

	// Encrypt in the response direction (nonceTPM newer), as the TPM
	// would.
	stream, err := enc.keystreamAES(false, enc.nonceTPM.Buffer, enc.nonceCaller.Buffer)
	if err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	stream.XORKeyStream(parameter, parameter)

	if err := enc.Decrypt(parameter); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if !bytes.Equal(parameter, plaintext) {
		t.Errorf("want %x got %x", plaintext, parameter)
	}
}

func TestEncryptionIsDirectional(t *testing.T) {
	sess := testSession(t, AESEncryption(128, EncryptOut))

	// An encrypt-only session must not touch command parameters.
	parameter := []byte("command parameter")
	want := append([]byte(nil), parameter...)
	if err := sess.Encrypt(parameter); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if !bytes.Equal(parameter, want) {
		t.Error("want command parameters untouched by an encrypt-only session")
	}
	if !sess.IsEncryption() || sess.IsDecryption() {
		t.Error("want an encrypt-only session")
	}
}

func TestPasswordSessionValidate(t *testing.T) {
	sess := PasswordAuth([]byte("pw"))

	auth, err := sess.Authorize(CCUnseal, nil, nil, nil, 0)
	if err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if Handle(auth.Handle) != RSPW {
		t.Errorf("want TPM_RS_PW, got %v", auth.Handle)
	}
	if !bytes.Equal(auth.Authorization.Buffer, []byte("pw")) {
		t.Errorf("want the auth value in the authorization, got %x", auth.Authorization.Buffer)
	}

	good := TPMSAuthResponse{Attributes: TPMASession{ContinueSession: true}}
	if err := sess.Validate(RCSuccess, CCUnseal, nil, nil, 0, &good); err != nil {
		t.Errorf("want nil, got %v", err)
	}

	bad := TPMSAuthResponse{
		Attributes:    TPMASession{ContinueSession: true},
		Authorization: TPM2BData{Buffer: []byte{1}},
	}
	if err := sess.Validate(RCSuccess, CCUnseal, nil, nil, 0, &bad); err == nil {
		t.Error("want error for a non-empty password session response HMAC")
	}
}
