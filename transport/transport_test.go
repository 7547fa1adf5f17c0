package transport

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
)

// loopbackRWC is a scripted TPM device stream: every Write is recorded, and
// every Read returns the next queued response.
type loopbackRWC struct {
	commands  [][]byte
	responses [][]byte
	closed    bool
}

func (l *loopbackRWC) Write(p []byte) (int, error) {
	l.commands = append(l.commands, append([]byte(nil), p...))
	return len(p), nil
}

func (l *loopbackRWC) Read(p []byte) (int, error) {
	if len(l.responses) == 0 {
		return 0, io.EOF
	}
	rsp := l.responses[0]
	l.responses = l.responses[1:]
	return copy(p, rsp), nil
}

func (l *loopbackRWC) Close() error {
	l.closed = true
	return nil
}

func frame(tag uint16, rc uint32, body []byte) []byte {
	rsp := make([]byte, 10+len(body))
	binary.BigEndian.PutUint16(rsp, tag)
	binary.BigEndian.PutUint32(rsp[2:], uint32(len(rsp)))
	binary.BigEndian.PutUint32(rsp[6:], rc)
	copy(rsp[10:], body)
	return rsp
}

func TestSend(t *testing.T) {
	want := frame(0x8001, 0, []byte{1, 2, 3, 4})
	rwc := &loopbackRWC{responses: [][]byte{want}}
	tpm := FromReadWriteCloser(rwc)

	cmd := []byte{0x80, 0x01, 0x00, 0x00, 0x00, 0x0C, 0x00, 0x00, 0x01, 0x7B, 0x00, 0x04}
	got, err := tpm.Send(cmd)
	if err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("want %x got %x", want, got)
	}
	if len(rwc.commands) != 1 || !bytes.Equal(rwc.commands[0], cmd) {
		t.Errorf("want the command written unmodified, got %x", rwc.commands)
	}
}

func TestSendShortResponse(t *testing.T) {
	rwc := &loopbackRWC{responses: [][]byte{{0x80, 0x01, 0x00}}}
	tpm := FromReadWriteCloser(rwc)

	if _, err := tpm.Send([]byte{0x80, 0x01}); err == nil {
		t.Error("want error for a response shorter than the header, got nil")
	}
}

func TestSendLengthMismatch(t *testing.T) {
	// Header claims 64 bytes but the device produced 10.
	rsp := frame(0x8001, 0, nil)
	binary.BigEndian.PutUint32(rsp[2:], 64)
	rwc := &loopbackRWC{responses: [][]byte{rsp}}
	tpm := FromReadWriteCloser(rwc)

	if _, err := tpm.Send([]byte{0x80, 0x01}); err == nil {
		t.Error("want error for a response length mismatch, got nil")
	}
}

func TestClose(t *testing.T) {
	rwc := &loopbackRWC{}
	tpm := FromReadWriteCloser(rwc)
	if err := tpm.Close(); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if !rwc.closed {
		t.Error("want the underlying device closed")
	}
}
