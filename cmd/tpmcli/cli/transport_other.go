//go:build !linux

package cli

import (
	"errors"

	"github.com/cryptalis/esys/transport"
)

func openDevice(path string) (transport.TPM, error) {
	return nil, errors.New("local TPM devices are only supported on Linux; use --tcp")
}
