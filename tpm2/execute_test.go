package tpm2

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"reflect"
	"testing"
)

// fakeTPM is a scripted transport that implements just enough of the TPM's
// session machinery to exercise the full command cycle: it starts HMAC
// sessions and answers TPM2_GetRandom with a correctly-HMACed response.
// An unbound, unsalted session has an empty session key, so the response
// HMAC key is just the object's auth value, which the fake knows.
type fakeTPM struct {
	t *testing.T
	// auth value of the object the session proves knowledge of
	sessionAuth  []byte
	random       []byte
	nonceCounter uint32
	lastNonceTPM []byte
	flushes      int
	// fault injection
	tamperHMAC  bool
	replayNonce bool
}

func (f *fakeTPM) Close() error { return nil }

func (f *fakeTPM) nextNonce() []byte {
	f.nonceCounter++
	sum := sha256.Sum256([]byte{byte(f.nonceCounter)})
	return sum[:16]
}

func rspFrame(t *testing.T, tag ST, body []byte) []byte {
	t.Helper()
	hdr := RspHeader{
		Tag:          TPMISTCommandTag(tag),
		Length:       uint32(10 + len(body)),
		ResponseCode: RCSuccess,
	}
	var buf bytes.Buffer
	if err := marshal(&buf, reflect.ValueOf(hdr)); err != nil {
		t.Fatalf("marshalling response header: %v", err)
	}
	buf.Write(body)
	return buf.Bytes()
}

func (f *fakeTPM) Send(command []byte) ([]byte, error) {
	buf := bytes.NewBuffer(command)
	var hdr CmdHeader
	if err := unmarshal(buf, reflect.ValueOf(&hdr).Elem()); err != nil {
		return nil, fmt.Errorf("unmarshalling command header: %w", err)
	}
	switch hdr.CommandCode {
	case CCStartAuthSession:
		return f.startAuthSession(buf)
	case CCGetRandom:
		return f.getRandom(buf, ST(hdr.Tag))
	case CCFlushContext:
		f.flushes++
		return rspFrame(f.t, STNoSessions, nil), nil
	}
	return nil, fmt.Errorf("fake TPM does not support command code %v", hdr.CommandCode)
}

func (f *fakeTPM) startAuthSession(buf *bytes.Buffer) ([]byte, error) {
	// Skip the tpmKey and bind handles.
	var tpmKey, bind uint32
	if err := binary.Read(buf, binary.BigEndian, &tpmKey); err != nil {
		return nil, err
	}
	if err := binary.Read(buf, binary.BigEndian, &bind); err != nil {
		return nil, err
	}
	var nonceCaller TPM2BNonce
	if err := unmarshal(buf, reflect.ValueOf(&nonceCaller).Elem()); err != nil {
		return nil, err
	}

	f.lastNonceTPM = f.nextNonce()
	var body bytes.Buffer
	binary.Write(&body, binary.BigEndian, uint32(0x02000001))
	if err := marshal(&body, reflect.ValueOf(TPM2BNonce{Buffer: f.lastNonceTPM})); err != nil {
		return nil, err
	}
	return rspFrame(f.t, STNoSessions, body.Bytes()), nil
}

func (f *fakeTPM) getRandom(buf *bytes.Buffer, tag ST) ([]byte, error) {
	var auth TPMSAuthCommand
	hasSessions := tag == STSessions
	if hasSessions {
		var authSize uint32
		if err := binary.Read(buf, binary.BigEndian, &authSize); err != nil {
			return nil, err
		}
		if err := unmarshal(buf, reflect.ValueOf(&auth).Elem()); err != nil {
			return nil, err
		}
	}
	var bytesRequested uint16
	if err := binary.Read(buf, binary.BigEndian, &bytesRequested); err != nil {
		return nil, err
	}
	if int(bytesRequested) > len(f.random) {
		return nil, fmt.Errorf("fake TPM has only %d bytes of entropy", len(f.random))
	}

	var parms bytes.Buffer
	if err := marshal(&parms, reflect.ValueOf(TPM2BDigest{Buffer: f.random[:bytesRequested]})); err != nil {
		return nil, err
	}

	if !hasSessions {
		return rspFrame(f.t, STNoSessions, parms.Bytes()), nil
	}

	var sessionArea bytes.Buffer
	if Handle(auth.Handle) == RSPW {
		// Password sessions get an empty nonce and empty authorization.
		rspAuth := TPMSAuthResponse{
			Attributes: auth.Attributes,
		}
		if err := marshal(&sessionArea, reflect.ValueOf(rspAuth)); err != nil {
			return nil, err
		}
	} else {
		nonceTPM := f.lastNonceTPM
		if !f.replayNonce {
			nonceTPM = f.nextNonce()
			f.lastNonceTPM = nonceTPM
		}

		// rpHash = H(RC || CC || parms)
		h := sha256.New()
		binary.Write(h, binary.BigEndian, uint32(RCSuccess))
		binary.Write(h, binary.BigEndian, uint32(CCGetRandom))
		h.Write(parms.Bytes())

		mac := hmac.New(sha256.New, f.sessionAuth)
		mac.Write(h.Sum(nil))
		mac.Write(nonceTPM)
		mac.Write(auth.Nonce.Buffer)
		mac.Write(attrsToBytes(auth.Attributes))
		hm := mac.Sum(nil)
		if f.tamperHMAC {
			hm[0] ^= 1
		}

		rspAuth := TPMSAuthResponse{
			Nonce:         TPM2BNonce{Buffer: nonceTPM},
			Attributes:    auth.Attributes,
			Authorization: TPM2BData{Buffer: hm},
		}
		if err := marshal(&sessionArea, reflect.ValueOf(rspAuth)); err != nil {
			return nil, err
		}
	}

	var body bytes.Buffer
	binary.Write(&body, binary.BigEndian, uint32(parms.Len()))
	body.Write(parms.Bytes())
	body.Write(sessionArea.Bytes())
	return rspFrame(f.t, STSessions, body.Bytes()), nil
}

func TestGetRandomNoSessions(t *testing.T) {
	fake := &fakeTPM{t: t, random: []byte{1, 2, 3, 4, 5, 6, 7, 8}}
	tpm := NewTPM(fake)

	grc := GetRandom{BytesRequested: 8}
	rsp, err := grc.Execute(tpm)
	if err != nil {
		t.Fatalf("could not call TPM2_GetRandom: %v", err)
	}
	if !bytes.Equal(rsp.RandomBytes.Buffer, fake.random) {
		t.Errorf("want %x got %x", fake.random, rsp.RandomBytes.Buffer)
	}
}

func TestGetRandomPasswordSession(t *testing.T) {
	fake := &fakeTPM{t: t, random: []byte{9, 8, 7, 6}}
	tpm := NewTPM(fake)

	grc := GetRandom{BytesRequested: 4}
	rsp, err := grc.Execute(tpm, PasswordAuth(nil))
	if err != nil {
		t.Fatalf("could not call TPM2_GetRandom: %v", err)
	}
	if !bytes.Equal(rsp.RandomBytes.Buffer, fake.random) {
		t.Errorf("want %x got %x", fake.random, rsp.RandomBytes.Buffer)
	}
}

func TestGetRandomHMACSession(t *testing.T) {
	auth := []byte("p@ssw0rd")
	fake := &fakeTPM{t: t, sessionAuth: auth, random: make([]byte, 16)}
	tpm := NewTPM(fake)

	grc := GetRandom{BytesRequested: 16}
	rsp, err := grc.Execute(tpm, HMAC(AlgSHA256, 16, Auth(auth)))
	if err != nil {
		t.Fatalf("could not call TPM2_GetRandom: %v", err)
	}
	if !bytes.Equal(rsp.RandomBytes.Buffer, fake.random) {
		t.Errorf("want %x got %x", fake.random, rsp.RandomBytes.Buffer)
	}
}

func TestHMACSessionNonceRolling(t *testing.T) {
	fake := &fakeTPM{t: t, random: make([]byte, 8)}
	tpm := NewTPM(fake)

	sess, cleanup, err := HMACSession(tpm, AlgSHA256, 16)
	if err != nil {
		t.Fatalf("could not start session: %v", err)
	}

	grc := GetRandom{BytesRequested: 8}
	if _, err := grc.Execute(tpm, sess); err != nil {
		t.Fatalf("could not call TPM2_GetRandom: %v", err)
	}
	nonce1 := sess.NonceTPM()
	if _, err := grc.Execute(tpm, sess); err != nil {
		t.Fatalf("could not call TPM2_GetRandom: %v", err)
	}
	nonce2 := sess.NonceTPM()
	if bytes.Equal(nonce1.Buffer, nonce2.Buffer) {
		t.Error("want a fresh nonceTPM after each use of the session")
	}

	if err := cleanup(); err != nil {
		t.Fatalf("could not clean up session: %v", err)
	}
	if fake.flushes != 1 {
		t.Errorf("want 1 flush, got %d", fake.flushes)
	}
}

func TestResponseHMACTampering(t *testing.T) {
	fake := &fakeTPM{t: t, random: make([]byte, 8), tamperHMAC: true}
	tpm := NewTPM(fake)

	grc := GetRandom{BytesRequested: 8}
	_, err := grc.Execute(tpm, HMAC(AlgSHA256, 16))
	if err == nil {
		t.Fatal("want error for a tampered response HMAC, got nil")
	}
	var authErr AuthVerificationError
	if !errors.As(err, &authErr) {
		t.Errorf("want AuthVerificationError, got %v", err)
	}
}

func TestResponseReplay(t *testing.T) {
	fake := &fakeTPM{t: t, random: make([]byte, 8)}
	tpm := NewTPM(fake)

	sess, cleanup, err := HMACSession(tpm, AlgSHA256, 16)
	if err != nil {
		t.Fatalf("could not start session: %v", err)
	}
	defer cleanup()

	grc := GetRandom{BytesRequested: 8}
	if _, err := grc.Execute(tpm, sess); err != nil {
		t.Fatalf("could not call TPM2_GetRandom: %v", err)
	}

	// Answer the next command with the previous nonceTPM.
	fake.replayNonce = true
	_, err = grc.Execute(tpm, sess)
	if err == nil {
		t.Fatal("want error for a replayed nonceTPM, got nil")
	}
	var replayErr ReplayError
	if !errors.As(err, &replayErr) {
		t.Errorf("want ReplayError, got %v", err)
	}
}

func TestSessionNotActive(t *testing.T) {
	sess := HMAC(AlgSHA256, 16)
	_, err := sess.Authorize(CCGetRandom, nil, nil, nil, 0)
	var notActive SessionNotActiveError
	if !errors.As(err, &notActive) {
		t.Errorf("want SessionNotActiveError, got %v", err)
	}
}

func TestTooManySessions(t *testing.T) {
	fake := &fakeTPM{t: t, random: make([]byte, 8)}
	tpm := NewTPM(fake)

	grc := GetRandom{BytesRequested: 8}
	_, err := grc.Execute(tpm,
		PasswordAuth(nil), PasswordAuth(nil), PasswordAuth(nil), PasswordAuth(nil))
	if err == nil {
		t.Fatal("want error for more than three sessions, got nil")
	}
	var argErr InvalidArgumentError
	if !errors.As(err, &argErr) {
		t.Errorf("want InvalidArgumentError, got %v", err)
	}
}

func TestAuthAreaSlotOrder(t *testing.T) {
	// The encoded authorization area lists sessions in the order they
	// were passed to the command.
	sess := []Session{
		PasswordAuth([]byte("first")),
		PasswordAuth([]byte("second")),
	}
	area, err := cmdSessions(sess, CCGetRandom, nil, nil)
	if err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if len(area) < 4 {
		t.Fatalf("auth area too short: %d bytes", len(area))
	}
	if size := binary.BigEndian.Uint32(area); int(size) != len(area)-4 {
		t.Errorf("auth area size prefix = %d, want %d", size, len(area)-4)
	}

	buf := bytes.NewBuffer(area[4:])
	var got []string
	for buf.Len() > 0 {
		var auth TPMSAuthCommand
		if err := unmarshal(buf, reflect.ValueOf(&auth).Elem()); err != nil {
			t.Fatalf("parsing auth area slot %d: %v", len(got), err)
		}
		if auth.Handle != RSPW {
			t.Errorf("slot %d handle = %v, want TPM_RS_PW", len(got), auth.Handle)
		}
		got = append(got, string(auth.Authorization.Buffer))
	}
	want := []string{"first", "second"}
	if len(got) != len(want) {
		t.Fatalf("auth area has %d slots, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("slot %d = %q, want %q", i, got[i], want[i])
		}
	}
}
