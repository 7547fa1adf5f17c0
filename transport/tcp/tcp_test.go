package tcp

import (
	"bytes"
	"encoding/binary"
	"io"
	"net"
	"testing"
)

// fakeServer speaks the TPM-over-TCP protocol on a loopback listener,
// accepting the command channel first and the platform channel second, the
// order in which Open dials them.
type fakeServer struct {
	t        *testing.T
	listener net.Listener
	response []byte
	platform chan uint32
	done     chan struct{}
}

func newFakeServer(t *testing.T, response []byte) *fakeServer {
	t.Helper()
	listener, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		t.Fatalf("could not listen: %v", err)
	}
	s := &fakeServer{
		t:        t,
		listener: listener,
		response: response,
		platform: make(chan uint32, 16),
		done:     make(chan struct{}),
	}
	go s.serve()
	return s
}

func (s *fakeServer) serve() {
	defer close(s.done)
	cmdConn, err := s.listener.Accept()
	if err != nil {
		return
	}
	defer cmdConn.Close()
	platConn, err := s.listener.Accept()
	if err != nil {
		return
	}
	defer platConn.Close()

	go s.servePlatform(platConn)

	for {
		var tcpCmd uint32
		if err := binary.Read(cmdConn, binary.BigEndian, &tcpCmd); err != nil {
			return
		}
		if regularCommand(tcpCmd) == tpmSessionEnd {
			return
		}
		var locality uint8
		var cmdLen uint32
		if err := binary.Read(cmdConn, binary.BigEndian, &locality); err != nil {
			return
		}
		if err := binary.Read(cmdConn, binary.BigEndian, &cmdLen); err != nil {
			return
		}
		if _, err := io.CopyN(io.Discard, cmdConn, int64(cmdLen)); err != nil {
			return
		}
		binary.Write(cmdConn, binary.BigEndian, uint32(len(s.response)))
		cmdConn.Write(s.response)
		binary.Write(cmdConn, binary.BigEndian, uint32(0))
	}
}

func (s *fakeServer) servePlatform(conn net.Conn) {
	for {
		var cmd uint32
		if err := binary.Read(conn, binary.BigEndian, &cmd); err != nil {
			return
		}
		if platformCommand(cmd) == platformCommand(tpmSessionEnd) {
			return
		}
		s.platform <- cmd
		binary.Write(conn, binary.BigEndian, uint32(0))
	}
}

func (s *fakeServer) addr() string {
	return s.listener.Addr().String()
}

func TestSendOverTCP(t *testing.T) {
	want := []byte{0x80, 0x01, 0x00, 0x00, 0x00, 0x0A, 0x00, 0x00, 0x00, 0x00}
	server := newFakeServer(t, want)
	defer server.listener.Close()

	tpm, err := Open(Config{
		CommandAddress:  server.addr(),
		PlatformAddress: server.addr(),
	})
	if err != nil {
		t.Fatalf("could not connect: %v", err)
	}
	defer tpm.Close()

	got, err := tpm.Send([]byte{0x80, 0x01, 0x00, 0x00, 0x00, 0x0A, 0x00, 0x00, 0x01, 0x44})
	if err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("want %x got %x", want, got)
	}
}

func TestPowerCycle(t *testing.T) {
	server := newFakeServer(t, nil)
	defer server.listener.Close()

	tpm, err := Open(Config{
		CommandAddress:  server.addr(),
		PlatformAddress: server.addr(),
	})
	if err != nil {
		t.Fatalf("could not connect: %v", err)
	}
	defer tpm.Close()

	if err := tpm.PowerOn(); err != nil {
		t.Fatalf("could not power on: %v", err)
	}
	if err := tpm.Reset(); err != nil {
		t.Fatalf("could not reset: %v", err)
	}

	wantCmds := []uint32{
		uint32(platformPowerOn),
		uint32(platformNVOn),
		uint32(platformReset),
	}
	for _, want := range wantCmds {
		got := <-server.platform
		if got != want {
			t.Errorf("want platform command %d, got %d", want, got)
		}
	}
}
