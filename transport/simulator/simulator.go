// Package simulator provides access to a local simulator for TPM testing.
package simulator

import (
	"github.com/google/go-tpm-tools/simulator"

	"github.com/cryptalis/esys/transport"
)

// OpenSimulator starts and opens a TPM simulator.
func OpenSimulator() (transport.TPM, error) {
	sim, err := simulator.Get()
	if err != nil {
		return nil, err
	}
	return transport.FromReadWriteCloser(sim), nil
}
