package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cryptalis/esys/tpm2"
)

func flushCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "flush <handle>",
		Short:   "Flush a transient object or session from the TPM",
		Example: "tpmcli flush 0x80000000",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := strconv.ParseUint(args[0], 0, 32)
			if err != nil {
				return fmt.Errorf("invalid handle %q: %w", args[0], err)
			}
			return withTPM(func(t *tpm2.TPM) error {
				fcc := tpm2.FlushContext{FlushHandle: tpm2.Handle(v)}
				return fcc.Execute(t)
			})
		},
	}
}
