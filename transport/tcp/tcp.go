// Package tcp provides access to a TPM over TCP, speaking the de-facto
// TPM-over-TCP protocol defined by the reference implementation's simulator.
package tcp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net"
)

var (
	// ErrPlatformFailed indicates that a platform command failed.
	ErrPlatformFailed = errors.New("platform command failed")
	// ErrTPMFailed indicates that a TPM command failed at the TCP layer.
	ErrTPMFailed = errors.New("TPM command failed")
	// ErrResponseTooBig indicates that the server answered with an
	// implausibly large response.
	ErrResponseTooBig = errors.New("response too big")
	// ErrTransport indicates an I/O failure on one of the TCP channels.
	ErrTransport = errors.New("TCP transport error")
	// ErrEmptyResponse indicates the TPM returned an empty response,
	// usually because it has not been powered on.
	ErrEmptyResponse = errors.New("TPM returned empty response (does it need to be powered on?)")
)

const maxBufferSize = 1048576

// Command codes on the command channel.
type regularCommand uint32

const (
	tpmSendCommand regularCommand = 8
	tpmSessionEnd  regularCommand = 20
)

// Command codes on the platform channel.
type platformCommand uint32

const (
	platformPowerOn  platformCommand = 1
	platformPowerOff platformCommand = 2
	platformNVOn     platformCommand = 11
	platformNVOff    platformCommand = 12
	platformReset    platformCommand = 17
)

// TPM represents a connection to a TCP TPM. It satisfies the
// transport.TPM interface and additionally exposes the platform channel.
type TPM struct {
	cmd  *net.TCPConn
	plat *net.TCPConn
}

type tpmCommandHeader struct {
	TCPCommand regularCommand
	Locality   uint8
	CmdLen     uint32
}

// Send implements the transport.TPM interface.
func (t *TPM) Send(cmd []byte) ([]byte, error) {
	hdr := tpmCommandHeader{
		TCPCommand: tpmSendCommand,
		Locality:   0,
		CmdLen:     uint32(len(cmd)),
	}
	// Write the header followed by the request.
	if err := binary.Write(t.cmd, binary.BigEndian, hdr); err != nil {
		return nil, fmt.Errorf("%w: could not send TPM command to service: %v", ErrTransport, err)
	}
	if n, err := t.cmd.Write(cmd); err != nil {
		return nil, fmt.Errorf("%w: could not send TPM command to service: %v", ErrTransport, err)
	} else if n != len(cmd) {
		return nil, fmt.Errorf("%w: could not send full TPM command: only sent %v out of %v bytes", ErrTransport, n, len(cmd))
	}

	// Read the response.
	var rspLen uint32
	if err := binary.Read(t.cmd, binary.BigEndian, &rspLen); err != nil {
		return nil, fmt.Errorf("%w: could not read TPM response from service: %v", ErrTransport, err)
	}
	if rspLen > maxBufferSize {
		return nil, fmt.Errorf("%w: response (%v bytes) was bigger than max size (%v bytes)", ErrResponseTooBig, rspLen, maxBufferSize)
	}
	rsp := make([]byte, int(rspLen))
	if n, err := t.cmd.Read(rsp); err != nil {
		return nil, fmt.Errorf("%w: could not read TPM response from service: %v", ErrTransport, err)
	} else if n != len(rsp) {
		return nil, fmt.Errorf("%w: could not read full TPM response: only got %v out of %v bytes", ErrTransport, n, len(rsp))
	}
	// The server also provides a TCP result code at the end.
	var rspCode uint32
	if err := binary.Read(t.cmd, binary.BigEndian, &rspCode); err != nil {
		return nil, fmt.Errorf("%w: could not read TCP result code: %v", ErrTransport, err)
	}
	if rspCode != 0 {
		return nil, fmt.Errorf("%w: SEND_COMMAND returned %v", ErrTPMFailed, rspCode)
	}
	if rspLen == 0 {
		return nil, ErrEmptyResponse
	}
	return rsp, nil
}

// Close implements the transport.TPM interface.
func (t *TPM) Close() error {
	cmdErr := t.sendSessionEnd(t.cmd)
	platErr := t.sendSessionEnd(t.plat)
	closeCmdErr := t.cmd.Close()
	closePlatErr := t.plat.Close()
	for _, err := range []error{cmdErr, platErr, closeCmdErr, closePlatErr} {
		if err != nil {
			return err
		}
	}
	return nil
}

func (t *TPM) sendSessionEnd(conn *net.TCPConn) error {
	return binary.Write(conn, binary.BigEndian, tpmSessionEnd)
}

// sendBasicPlatformCommand sends a parameterless platform command and checks
// its result code.
func (t *TPM) sendBasicPlatformCommand(cmd platformCommand) error {
	if err := binary.Write(t.plat, binary.BigEndian, cmd); err != nil {
		return fmt.Errorf("%w: could not send platform command %v: %v", ErrTransport, uint32(cmd), err)
	}
	var rspCode uint32
	if err := binary.Read(t.plat, binary.BigEndian, &rspCode); err != nil {
		return fmt.Errorf("%w: could not read platform response: %v", ErrTransport, err)
	}
	if rspCode != 0 {
		return fmt.Errorf("%w: platform command %v returned %v", ErrPlatformFailed, uint32(cmd), rspCode)
	}
	return nil
}

// PowerOn powers on the TPM.
// Note: this is distinct from sending the TPM2_Startup command.
func (t *TPM) PowerOn() error {
	if err := t.sendBasicPlatformCommand(platformPowerOn); err != nil {
		return err
	}
	return t.sendBasicPlatformCommand(platformNVOn)
}

// PowerOff powers off the TPM.
func (t *TPM) PowerOff() error {
	if err := t.sendBasicPlatformCommand(platformPowerOff); err != nil {
		return err
	}
	return t.sendBasicPlatformCommand(platformNVOff)
}

// Reset power-cycles the TPM if it is already on. If it is not already on,
// nothing happens.
func (t *TPM) Reset() error {
	return t.sendBasicPlatformCommand(platformReset)
}

// Config provides the connection information for a running TCP TPM.
type Config struct {
	// CommandAddress is the full host:port address of the command server,
	// e.g., "localhost:2321".
	CommandAddress string
	// PlatformAddress is the full host:port address of the platform
	// server, e.g., "localhost:2322".
	PlatformAddress string
}

func resolveAndConnect(addr string) (*net.TCPConn, error) {
	tcpAddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("could not resolve %q: %w", addr, err)
	}

	conn, err := net.DialTCP("tcp", nil, tcpAddr)
	if err != nil {
		return nil, fmt.Errorf("could not dial %q: %w", addr, err)
	}
	return conn, nil
}

// Open opens a connection to the TPM. It may still need to be powered on
// using PowerOn().
func Open(config Config) (*TPM, error) {
	cmd, err := resolveAndConnect(config.CommandAddress)
	if err != nil {
		return nil, err
	}
	plat, err := resolveAndConnect(config.PlatformAddress)
	if err != nil {
		cmd.Close()
		return nil, err
	}
	return &TPM{
		cmd:  cmd,
		plat: plat,
	}, nil
}
