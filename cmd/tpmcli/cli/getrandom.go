package cli

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cryptalis/esys/tpm2"
)

func getRandomCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "getrandom [bytes]",
		Short:   "Read random bytes from the TPM",
		Example: "tpmcli getrandom 16",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count := uint64(16)
			if len(args) == 1 {
				var err error
				count, err = strconv.ParseUint(args[0], 10, 16)
				if err != nil {
					return fmt.Errorf("invalid byte count %q: %w", args[0], err)
				}
			}
			return withTPM(func(t *tpm2.TPM) error {
				grc := tpm2.GetRandom{BytesRequested: uint16(count)}
				rsp, err := grc.Execute(t)
				if err != nil {
					return err
				}
				fmt.Println(hex.EncodeToString(rsp.RandomBytes.Buffer))
				return nil
			})
		},
	}
}
