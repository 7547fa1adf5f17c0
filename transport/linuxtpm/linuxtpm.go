//go:build linux

// Package linuxtpm provides access to a physical TPM device via the device
// file, e.g., /dev/tpmrm0.
package linuxtpm

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/cryptalis/esys/transport"
)

var (
	// ErrFileIsNotDevice indicates that the TPM file mode was not a device.
	ErrFileIsNotDevice = errors.New("TPM file is not a device")
)

// Open opens the TPM device file at the given path.
func Open(path string) (transport.TPM, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if fi.Mode()&os.ModeDevice == 0 {
		return nil, fmt.Errorf("%w: %s (%s)", ErrFileIsNotDevice, fi.Mode().String(), path)
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0600)
	if err != nil {
		return nil, err
	}

	return transport.FromReadWriteCloser(&pollingFile{file: f}), nil
}

// pollingFile waits for the device to signal readability before each read.
// The kernel TPM device returns EOF-like short reads if polled too early.
type pollingFile struct {
	file *os.File
}

// Read implements the io.Reader interface.
func (f *pollingFile) Read(p []byte) (int, error) {
	if err := poll(f.file); err != nil {
		return 0, err
	}
	return f.file.Read(p)
}

// Write implements the io.Writer interface.
func (f *pollingFile) Write(p []byte) (int, error) {
	return f.file.Write(p)
}

// Close implements the io.Closer interface.
func (f *pollingFile) Close() error {
	return f.file.Close()
}

// poll blocks until the file descriptor is ready for reading or an error
// occurs.
func poll(f *os.File) error {
	const (
		events  = 0x001 // POLLIN
		timeout = -1
	)
	pollfds := []unix.PollFd{
		{Fd: int32(f.Fd()), Events: events},
	}
	_, err := unix.Poll(pollfds, timeout)
	return err
}
