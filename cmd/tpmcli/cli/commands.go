// Package cli implements the tpmcli command tree.
package cli

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cryptalis/esys/tpm2"
	"github.com/cryptalis/esys/transport"
	"github.com/cryptalis/esys/transport/tcp"
)

var (
	flagDevice      string
	flagTCPCommand  string
	flagTCPPlatform string
	flagVerbose     bool
)

// New gets a new root cli command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tpmcli",
		Short: "Interact with a TPM 2.0 device",
		Long: `Send commands to a TPM 2.0 device, either a character device on the
local machine or a TPM reachable over TCP.
`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagVerbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	cmd.PersistentFlags().StringVar(&flagDevice, "device", "/dev/tpmrm0", "path to the TPM character device")
	cmd.PersistentFlags().StringVar(&flagTCPCommand, "tcp", "", "host:port of a TCP TPM command server (overrides --device)")
	cmd.PersistentFlags().StringVar(&flagTCPPlatform, "tcp-platform", "localhost:2322", "host:port of the TCP TPM platform server")
	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	cmd.AddCommand(startupCmd())
	cmd.AddCommand(shutdownCmd())
	cmd.AddCommand(getRandomCmd())
	cmd.AddCommand(pcrReadCmd())
	cmd.AddCommand(readClockCmd())
	cmd.AddCommand(flushCmd())
	return cmd
}

// withTPM connects to the TPM selected by the global flags, runs f against
// it and closes the connection.
func withTPM(f func(t *tpm2.TPM) error) error {
	var (
		tr  transport.TPM
		err error
	)
	if flagTCPCommand != "" {
		log.WithField("address", flagTCPCommand).Debug("connecting to TCP TPM")
		tr, err = tcp.Open(tcp.Config{
			CommandAddress:  flagTCPCommand,
			PlatformAddress: flagTCPPlatform,
		})
	} else {
		log.WithField("device", flagDevice).Debug("opening TPM device")
		tr, err = openDevice(flagDevice)
	}
	if err != nil {
		return fmt.Errorf("could not connect to TPM: %w", err)
	}

	t := tpm2.NewTPM(tr)
	if flagVerbose {
		t.SetLogger(log.StandardLogger())
	}
	defer func() {
		if err := t.Close(); err != nil {
			log.WithError(err).Warn("could not close TPM connection")
		}
	}()
	return f(t)
}

func parseHashAlg(name string) (tpm2.AlgID, error) {
	switch name {
	case "sha1":
		return tpm2.AlgSHA1, nil
	case "sha256":
		return tpm2.AlgSHA256, nil
	case "sha384":
		return tpm2.AlgSHA384, nil
	case "sha512":
		return tpm2.AlgSHA512, nil
	}
	return 0, fmt.Errorf("unsupported hash algorithm %q", name)
}
