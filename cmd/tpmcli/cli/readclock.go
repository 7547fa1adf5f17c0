package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cryptalis/esys/tpm2"
)

func readClockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "readclock",
		Short: "Read the TPM clock and reset counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTPM(func(t *tpm2.TPM) error {
				rcc := tpm2.ReadClock{}
				rsp, err := rcc.Execute(t)
				if err != nil {
					return err
				}
				info := rsp.CurrentTime
				fmt.Printf("time:         %d ms\n", info.Time)
				fmt.Printf("clock:        %d ms\n", info.ClockInfo.Clock)
				fmt.Printf("resetCount:   %d\n", info.ClockInfo.ResetCount)
				fmt.Printf("restartCount: %d\n", info.ClockInfo.RestartCount)
				fmt.Printf("safe:         %v\n", info.ClockInfo.Safe)
				return nil
			})
		},
	}
}
