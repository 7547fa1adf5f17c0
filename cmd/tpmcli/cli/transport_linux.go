//go:build linux

package cli

import (
	"os"

	"github.com/cryptalis/esys/transport"
	"github.com/cryptalis/esys/transport/linuxtpm"
	"github.com/cryptalis/esys/transport/linuxudstpm"
)

// openDevice opens a local TPM at path, which may be either a character
// device or a Unix domain socket served by a software TPM.
func openDevice(path string) (transport.TPM, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.Mode()&os.ModeSocket != 0 {
		return linuxudstpm.Open(path)
	}
	return linuxtpm.Open(path)
}
