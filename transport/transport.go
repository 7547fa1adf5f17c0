// Package transport provides access to physical and emulated TPM 2.0
// devices: each connection type speaks full command/response buffers.
package transport

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// headerSize is the size of the TPM response header.
	headerSize = 10
	// maxTPMResponse bounds a single response from any TPM device.
	maxTPMResponse = 4096
)

// TPM represents a logical connection to a TPM device. Send transmits one
// full command buffer and returns the full response buffer.
type TPM interface {
	Send(input []byte) ([]byte, error)
	Close() error
}

// wrappedRWC is a TPM backed by a byte-stream device, e.g., /dev/tpmrm0 or
// an emulator socket.
type wrappedRWC struct {
	transport io.ReadWriteCloser
}

// FromReadWriteCloser adapts a raw TPM device stream into a TPM connection.
func FromReadWriteCloser(rwc io.ReadWriteCloser) TPM {
	return &wrappedRWC{
		transport: rwc,
	}
}

// Send implements the TPM interface.
func (t *wrappedRWC) Send(input []byte) ([]byte, error) {
	if n, err := t.transport.Write(input); err != nil {
		return nil, fmt.Errorf("writing TPM command: %w", err)
	} else if n != len(input) {
		return nil, fmt.Errorf("only wrote %d of %d bytes of the TPM command", n, len(input))
	}
	response := make([]byte, maxTPMResponse)
	n, err := t.transport.Read(response)
	if err != nil {
		return nil, fmt.Errorf("reading TPM response: %w", err)
	}
	if n < headerSize {
		return nil, fmt.Errorf("TPM response was only %d bytes, shorter than the response header", n)
	}
	// The header carries the total response length; check it against what
	// the device actually produced.
	size := binary.BigEndian.Uint32(response[2:6])
	if int(size) != n {
		return nil, fmt.Errorf("TPM response header claimed %d bytes but the device returned %d", size, n)
	}
	return response[:n], nil
}

// Close implements the TPM interface.
func (t *wrappedRWC) Close() error {
	return t.transport.Close()
}
